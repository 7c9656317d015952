// Package metrics provides Prometheus metrics for the tilebingo game service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the tilebingo service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// Core Game Metrics - reveal traffic and outcomes
	revealsTotal     prometheus.Counter
	revealRejections *prometheus.CounterVec
	undosTotal       prometheus.Counter
	moveLogSize      prometheus.Gauge

	// Persistence Metrics - move log durability
	persistLatency prometheus.Histogram
	persistErrors  prometheus.Counter

	// Command Metrics - chat command surface
	commandsTotal   *prometheus.CounterVec
	commandDuration *prometheus.HistogramVec

	// Queue Metrics - inbound command queue
	queueSize          prometheus.Gauge
	queueCapacity      prometheus.Gauge
	queueUtilization   prometheus.Gauge
	queueEnqueueErrors prometheus.Counter

	// Cooldown Metrics
	cooldownRejections prometheus.Counter
	cooldownResets     prometheus.Counter

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Team Metrics - derived board state
	teamScore *prometheus.GaugeVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "tilebingo",
		subsystem:        "game",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		registry:         prometheus.DefaultRegisterer,
	}

	// Apply all options
	for _, opt := range opts {
		opt(m)
	}

	// Initialize metrics
	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	// Ensure metrics are registered on the configured registry (custom by default)
	auto := promauto.With(m.registry)

	m.revealsTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "reveals_total",
		Help:      "Total number of tiles successfully revealed",
	})

	m.revealRejections = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "reveal_rejections_total",
			Help:      "Total number of rejected reveal attempts by reason",
		},
		[]string{"reason"},
	)

	m.undosTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "undos_total",
		Help:      "Total number of admin undo operations applied",
	})

	m.moveLogSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "move_log_size",
		Help:      "Current number of entries in the persisted move log",
	})

	m.persistLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "persist_latency_milliseconds",
		Help:      "Histogram of move log persistence latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.persistErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "persist_errors_total",
		Help:      "Total number of move log persistence failures (risk of state loss)",
	})

	m.commandsTotal = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "commands_total",
			Help:      "Total number of chat commands processed by command and status",
		},
		[]string{"command", "status"},
	)

	m.commandDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "command_duration_milliseconds",
			Help:      "Chat command processing duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"command"},
	)

	m.queueSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_size",
		Help:      "Current size of the inbound command queue",
	})

	m.queueCapacity = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_capacity",
		Help:      "Configured capacity of the inbound command queue",
	})

	m.queueUtilization = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_utilization_ratio",
		Help:      "Command queue utilization ratio (size / capacity)",
	})

	m.queueEnqueueErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_enqueue_errors_total",
		Help:      "Total number of failed command enqueue attempts",
	})

	m.cooldownRejections = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "cooldown_rejections_total",
		Help:      "Total number of reveal attempts denied by the cooldown gate",
	})

	m.cooldownResets = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "cooldown_resets_total",
		Help:      "Total number of admin cooldown resets",
	})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.teamScore = auto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "team_score",
			Help:      "Current projected score per team",
		},
		[]string{"team_id"},
	)
}

// GetRegistry returns the Prometheus registry backing the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Package-level helpers delegating to the global manager.

// RecordReveal increments the successful reveal counter.
func RecordReveal() {
	if globalManager.enabled {
		globalManager.revealsTotal.Inc()
	}
}

// RecordRevealRejection increments the rejection counter for a reason.
func RecordRevealRejection(reason string) {
	if globalManager.enabled {
		globalManager.revealRejections.WithLabelValues(reason).Inc()
	}
}

// RecordUndo increments the undo counter.
func RecordUndo() {
	if globalManager.enabled {
		globalManager.undosTotal.Inc()
	}
}

// UpdateMoveLogSize sets the current move log length.
func UpdateMoveLogSize(n int) {
	if globalManager.enabled {
		globalManager.moveLogSize.Set(float64(n))
	}
}

// RecordPersistLatency observes a persistence latency sample in milliseconds.
func RecordPersistLatency(ms float64) {
	if globalManager.enabled {
		globalManager.persistLatency.Observe(ms)
	}
}

// RecordPersistError increments the persistence failure counter.
func RecordPersistError() {
	if globalManager.enabled {
		globalManager.persistErrors.Inc()
	}
}

// RecordCommand increments the command counter for a command and status.
func RecordCommand(command, status string) {
	if globalManager.enabled {
		globalManager.commandsTotal.WithLabelValues(command, status).Inc()
	}
}

// RecordCommandDuration observes command processing duration in milliseconds.
func RecordCommandDuration(command string, ms float64) {
	if globalManager.enabled {
		globalManager.commandDuration.WithLabelValues(command).Observe(ms)
	}
}

// UpdateQueueSize sets the current command queue size.
func UpdateQueueSize(n int) {
	if globalManager.enabled {
		globalManager.queueSize.Set(float64(n))
	}
}

// UpdateQueueCapacity sets the configured command queue capacity.
func UpdateQueueCapacity(n int) {
	if globalManager.enabled {
		globalManager.queueCapacity.Set(float64(n))
	}
}

// UpdateQueueUtilization sets the command queue utilization ratio.
func UpdateQueueUtilization(ratio float64) {
	if globalManager.enabled {
		globalManager.queueUtilization.Set(ratio)
	}
}

// RecordQueueEnqueueError increments the enqueue failure counter.
func RecordQueueEnqueueError() {
	if globalManager.enabled {
		globalManager.queueEnqueueErrors.Inc()
	}
}

// RecordCooldownRejection increments the cooldown denial counter.
func RecordCooldownRejection() {
	if globalManager.enabled {
		globalManager.cooldownRejections.Inc()
	}
}

// RecordCooldownReset increments the admin cooldown reset counter.
func RecordCooldownReset() {
	if globalManager.enabled {
		globalManager.cooldownResets.Inc()
	}
}

// RecordHTTPRequest increments the HTTP request counter.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	if globalManager.enabled {
		globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	}
}

// RecordHTTPRequestDuration observes HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, ms float64) {
	if globalManager.enabled {
		globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(ms)
	}
}

// UpdateTeamScore sets the projected score gauge for a team.
func UpdateTeamScore(teamID string, score int) {
	if globalManager.enabled {
		globalManager.teamScore.WithLabelValues(teamID).Set(float64(score))
	}
}
