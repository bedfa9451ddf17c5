// SPDX-License-Identifier: MIT

package pipeline

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/lpipm/lp"
)

// ErrInvalidConfig is returned by Config.Validate and Run for unusable
// configurations.
var ErrInvalidConfig = errors.New("pipeline: invalid config")

// Phase names a stage of a run.
type Phase string

const (
	PhaseGenerate Phase = "generate"
	PhaseAssemble Phase = "assemble"
	PhaseDisplay  Phase = "display"
	PhaseSolve    Phase = "solve"
	PhasePause    Phase = "pause"
	PhaseTeardown Phase = "teardown"
)

// PhaseError attributes err to the phase (and, for PhaseSolve, the
// variant) that produced it.
type PhaseError struct {
	Phase   Phase
	Variant *lp.Variant
	Err     error
}

func (e *PhaseError) Error() string {
	if e.Variant != nil {
		return fmt.Sprintf("pipeline: %s (%s): %v", e.Phase, *e.Variant, e.Err)
	}
	return fmt.Sprintf("pipeline: %s: %v", e.Phase, e.Err)
}

// Unwrap exposes the phase's own error.
func (e *PhaseError) Unwrap() error { return e.Err }

func phaseErr(p Phase, err error) error {
	return &PhaseError{Phase: p, Err: err}
}

func solveErr(v lp.Variant, err error) error {
	return &PhaseError{Phase: PhaseSolve, Variant: &v, Err: err}
}
