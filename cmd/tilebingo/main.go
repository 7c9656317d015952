package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okian/tilebingo/internal/adapters/chat"
	"github.com/okian/tilebingo/internal/adapters/http/api"
	"github.com/okian/tilebingo/internal/adapters/mq/queue"
	"github.com/okian/tilebingo/internal/adapters/mq/worker"
	"github.com/okian/tilebingo/internal/adapters/repository"
	"github.com/okian/tilebingo/internal/app"
	"github.com/okian/tilebingo/internal/config"
	"github.com/okian/tilebingo/internal/domain/cooldown"
	"github.com/okian/tilebingo/internal/domain/roster"
	"github.com/okian/tilebingo/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	// Initialize logging
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	// Static game data: tile template and team rosters. Failures here are
	// fatal; a partial board is never acceptable.
	teams, err := roster.Load(ctx, cfg.TilesPath, cfg.TeamsPath)
	if err != nil {
		log.Error(ctx, "failed to load rosters", logger.Error(err))
		return
	}

	policy, err := cooldown.ParsePolicy(cfg.CooldownPolicy)
	if err != nil {
		log.Error(ctx, "invalid cooldown_policy", logger.Error(err))
		return
	}

	store := repository.NewFileStore(repository.WithPath(cfg.MoveLogPath))
	gate := cooldown.New(
		cooldown.WithWindow(time.Duration(cfg.CooldownMinutes)*time.Minute),
		cooldown.WithPolicy(policy),
	)

	// The engine replays the persisted move log onto every board at start.
	engine := app.New(teams, store, gate, app.WithLogger(log.Named("engine")))
	if err := engine.Start(ctx); err != nil {
		log.Error(ctx, "failed to start engine", logger.Error(err))
		return
	}

	// Command pipeline: bounded queue drained by a single worker, so all
	// game-state mutation is serialized.
	q := queue.NewInMemoryQueue(queue.WithCapacity(cfg.CommandQueueSize))
	defer func() {
		_ = q.Close()
	}()

	dispatcher := chat.New(engine, q, chat.WithAdmins(cfg.AdminIDs))
	w := worker.New(q, dispatcher)
	go w.Run(ctx)

	// HTTP mux and routes.
	mux := http.NewServeMux()
	api.NewServer(dispatcher, engine).Register(mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting HTTP server",
			logger.String("addr", cfg.Addr),
			logger.String("cooldown_policy", policy.String()),
			logger.Duration("cooldown_window", gate.Window()),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	log.Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}
	if err := w.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "worker shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "server stopped")
}
