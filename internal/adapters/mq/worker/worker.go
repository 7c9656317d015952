// Package worker runs the single command-processing loop. Exactly one
// worker drains the queue, making it the serialization point for all
// game-state mutation: two commands for the same team can never interleave.
package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/tilebingo/internal/adapters/mq/queue"
	"github.com/okian/tilebingo/internal/domain/model"
	"github.com/okian/tilebingo/pkg/logger"
	"github.com/okian/tilebingo/pkg/metrics"
)

// Default worker configuration constants.
const (
	workerShutdownTimeout = 5 * time.Second
)

// Command abstracts what the worker reads off the queue.
// Using the model.Command type for consistency.
type Command = queue.Command

// Executor turns one command into its user-facing reply.
type Executor interface {
	Execute(ctx context.Context, cmd Command) (string, error)
}

// Queue defines how the worker receives commands.
type Queue interface {
	Dequeue(ctx context.Context) <-chan Command
}

// Worker processes commands sequentially until stopped.
type Worker struct {
	queue    Queue
	executor Executor
	name     string

	// Shutdown control
	shutdown chan struct{}
	done     chan struct{}

	// Logging
	logger logger.Logger
}

// New creates a worker with configuration options.
func New(q Queue, executor Executor, opts ...Option) *Worker {
	w := &Worker{
		queue:    q,
		executor: executor,
		name:     "command-worker",
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
	}

	for _, opt := range opts {
		opt(w)
	}

	if w.logger == nil {
		w.logger = logger.Get().Named(w.name)
	}

	return w
}

// Run starts the worker loop.
func (w *Worker) Run(ctx context.Context) {
	defer close(w.done)

	commands := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case cmd, ok := <-commands:
			if !ok {
				// Channel closed, worker should stop
				return
			}
			w.process(ctx, cmd)
		}
	}
}

// Shutdown gracefully stops the worker.
func (w *Worker) Shutdown(ctx context.Context) error {
	close(w.shutdown)

	select {
	case <-w.done:
		return nil
	case <-time.After(workerShutdownTimeout):
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("worker shutdown timed out after %s", workerShutdownTimeout)
	case <-ctx.Done():
		return fmt.Errorf("worker shutdown cancelled: %w", ctx.Err())
	}
}

// process handles a single command and delivers its reply.
func (w *Worker) process(ctx context.Context, cmd Command) {
	start := time.Now()

	text, err := w.executor.Execute(ctx, cmd)
	if err != nil {
		// Executors render expected failures as text themselves; an error
		// here means something unexpected (e.g. persistence loss).
		w.logger.Error(ctx, "command failed",
			logger.String("id", cmd.ID),
			logger.Int64("discordID", cmd.DiscordID),
			logger.Error(err),
		)
	}

	metrics.RecordCommandDuration(firstWord(cmd.Text), float64(time.Since(start).Milliseconds()))

	if cmd.Reply == nil {
		return
	}
	// The dispatcher buffers Reply with capacity 1; the default arm keeps
	// the loop from blocking on a caller that already gave up.
	select {
	case cmd.Reply <- model.Reply{Text: text}:
	default:
	}
}

func firstWord(s string) string {
	for i, r := range s {
		if r == ' ' {
			return s[:i]
		}
	}
	return s
}
