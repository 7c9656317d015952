package app

import (
	"time"

	"github.com/okian/tilebingo/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithClock injects the time source used to stamp moves.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets a custom logger for the engine.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}
