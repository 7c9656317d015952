// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...Option) initializer to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

// Default configuration values.
const (
	defaultAddr            = ":8080"
	defaultTilesPath       = "tiles.json"
	defaultTeamsPath       = "teams.json"
	defaultMoveLogPath     = "move_log.json"
	defaultCooldownMinutes = 20
	defaultCooldownPolicy  = "team"
	defaultQueueSize       = 1024
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// TilesPath points at the static tile definitions used to build boards.
	TilesPath string `koanf:"tiles_path"`

	// TeamsPath points at the static team roster definitions.
	TeamsPath string `koanf:"teams_path"`

	// MoveLogPath is the durable move log file.
	MoveLogPath string `koanf:"move_log_path"`

	// CooldownMinutes sets the reveal cooldown window length.
	CooldownMinutes int `koanf:"cooldown_minutes"`

	// CooldownPolicy selects the gate key shape: "team" or "member".
	CooldownPolicy string `koanf:"cooldown_policy"`

	// AdminIDs lists user ids allowed to run privileged commands.
	AdminIDs []int64 `koanf:"admin_ids"`

	// CommandQueueSize bounds the inbound command queue.
	CommandQueueSize int `koanf:"queue_size"`
}

// Option applies a configuration option to a Config.
type Option func(*Config)

// WithAddr overrides the HTTP listen address.
func WithAddr(addr string) Option {
	return func(c *Config) {
		if addr != "" {
			c.Addr = addr
		}
	}
}

// WithMoveLogPath overrides the move log location.
func WithMoveLogPath(path string) Option {
	return func(c *Config) {
		if path != "" {
			c.MoveLogPath = path
		}
	}
}

// New returns a Config populated with defaults.
func New(opts ...Option) *Config {
	c := &Config{
		LogLevel:         "info",
		Addr:             defaultAddr,
		TilesPath:        defaultTilesPath,
		TeamsPath:        defaultTeamsPath,
		MoveLogPath:      defaultMoveLogPath,
		CooldownMinutes:  defaultCooldownMinutes,
		CooldownPolicy:   defaultCooldownPolicy,
		CommandQueueSize: defaultQueueSize,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}
