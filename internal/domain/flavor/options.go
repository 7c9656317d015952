package flavor

import "math/rand"

// Option applies a configuration option to the Composer.
type Option func(*Composer)

// WithRand sets the random source, letting tests pin variant selection.
func WithRand(rng *rand.Rand) Option {
	return func(c *Composer) {
		if rng != nil {
			c.rng = rng
		}
	}
}
