// SPDX-License-Identifier: MIT

package problem

import "math"

const (
	// DefaultCenter and DefaultRadius define the open sampling interval
	// (0.0001, 0.9999) used for xGen, c and the initial guess.
	DefaultCenter = 0.5
	DefaultRadius = 0.4999
)

const panicUniformInvalid = "problem: WithUniform: need finite center, 0 <= radius < center"

// Option customizes Assemble.
type Option func(*config)

type config struct {
	seed   int64
	center float64
	radius float64
}

func newConfig(opts ...Option) config {
	cfg := config{center: DefaultCenter, radius: DefaultRadius}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithSeed fixes the RNG seed. Seed 0 selects the package default seed, so
// runs are reproducible unless the caller supplies a varying seed.
func WithSeed(seed int64) Option {
	return func(c *config) { c.seed = seed }
}

// WithUniform changes the sampling interval to (center-radius,
// center+radius). The interval must stay strictly positive because xGen
// has to lie in the interior of the positive orthant.
// Panics on a non-finite center/radius, a negative radius or radius >= center.
func WithUniform(center, radius float64) Option {
	if math.IsNaN(center) || math.IsInf(center, 0) || math.IsNaN(radius) || math.IsInf(radius, 0) ||
		radius < 0 || radius >= center {
		panic(panicUniformInvalid)
	}
	return func(c *config) {
		c.center = center
		c.radius = radius
	}
}
