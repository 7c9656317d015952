package chat

import (
	"github.com/okian/tilebingo/internal/domain/flavor"
	"github.com/okian/tilebingo/pkg/logger"
)

// Option applies a configuration option to the Dispatcher.
type Option func(*Dispatcher)

// WithAdmins sets the ids allowed to run admin commands.
func WithAdmins(ids []int64) Option {
	return func(d *Dispatcher) {
		for _, id := range ids {
			d.admins[id] = struct{}{}
		}
	}
}

// WithComposer injects the flavor composer, letting tests pin the random
// source.
func WithComposer(c *flavor.Composer) Option {
	return func(d *Dispatcher) {
		if c != nil {
			d.flavor = c
		}
	}
}

// WithLogger sets a custom logger for the dispatcher.
func WithLogger(l logger.Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}
