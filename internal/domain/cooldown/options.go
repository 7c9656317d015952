package cooldown

import "time"

// Option applies a configuration option to the Gate.
type Option func(*Gate)

// WithWindow sets the cooldown window length.
func WithWindow(window time.Duration) Option {
	return func(g *Gate) {
		if window > 0 {
			g.window = window
		}
	}
}

// WithPolicy sets the gate key policy.
func WithPolicy(policy Policy) Option {
	return func(g *Gate) {
		g.policy = policy
	}
}

// WithClock sets the time source, letting tests drive the window.
func WithClock(now func() time.Time) Option {
	return func(g *Gate) {
		if now != nil {
			g.now = now
		}
	}
}
