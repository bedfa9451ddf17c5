// SPDX-License-Identifier: MIT

package pipeline

import (
	"fmt"

	"github.com/katalvlaran/lpipm/lp"
)

const (
	// DefaultM and DefaultN are the instance dimensions of a default run.
	DefaultM = 2000
	DefaultN = 4000
)

// Config selects the instance and the work done on it.
type Config struct {
	M, N        int   // constraints, variables; 0 < M <= N
	RunMehrotra bool  // solve with the predictor-corrector variant
	RunIPF      bool  // solve with the infeasible path-following variant
	Display     bool  // print A, xGen, b, c before solving
	Interactive bool  // wait for a line on Deps.In before teardown
	Seed        int64 // 0 selects the default seed
	Workers     int   // <= 1 runs on a single local worker
}

// DefaultConfig runs both variants on the 2000×4000 instance with one
// worker.
func DefaultConfig() Config {
	return Config{
		M:           DefaultM,
		N:           DefaultN,
		RunMehrotra: true,
		RunIPF:      true,
		Workers:     1,
	}
}

// Validate reports a wrapped ErrInvalidConfig for non-positive dimensions
// or M > N. Running no variant is allowed.
func (c Config) Validate() error {
	if c.M <= 0 || c.N <= 0 {
		return fmt.Errorf("%w: m=%d n=%d must be > 0", ErrInvalidConfig, c.M, c.N)
	}
	if c.M > c.N {
		return fmt.Errorf("%w: m=%d must not exceed n=%d", ErrInvalidConfig, c.M, c.N)
	}
	return nil
}

// Variants returns the enabled variants in execution order.
func (c Config) Variants() []lp.Variant {
	var out []lp.Variant
	if c.RunMehrotra {
		out = append(out, lp.Mehrotra)
	}
	if c.RunIPF {
		out = append(out, lp.IPF)
	}
	return out
}
