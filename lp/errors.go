// SPDX-License-Identifier: MIT

package lp

import (
	"errors"
	"fmt"
)

var (
	// ErrSolverFailure is matched by every *SolverFailure.
	ErrSolverFailure = errors.New("lp: solver failure")

	// ErrUnknownVariant is returned by ParseVariant for unrecognized names.
	ErrUnknownVariant = errors.New("lp: unknown variant")

	// ErrNonFiniteObjective is wrapped into a *SolverFailure when the
	// solver returned without error but cᵀx is NaN or ±Inf.
	ErrNonFiniteObjective = errors.New("lp: objective is not finite")

	// ErrNilInstance indicates a nil instance, start or solver.
	ErrNilInstance = errors.New("lp: nil instance, start or solver")

	// ErrUnsupportedShape is returned by SimplexSolver when A has fewer
	// nonzero columns than rows.
	ErrUnsupportedShape = errors.New("lp: fewer usable columns than rows")

	// ErrTooLarge is returned by SimplexSolver when m·n exceeds its dense
	// size limit.
	ErrTooLarge = errors.New("lp: instance too large for the dense simplex")

	// ErrRootSolve is returned on ranks other than 0 when the dense solve
	// on rank 0 failed; rank 0 returns the solver's own error.
	ErrRootSolve = errors.New("lp: dense solve failed on rank 0")
)

// SolverFailure reports that the solver for Variant did not produce a
// usable solution. Err is the backend's own error.
type SolverFailure struct {
	Variant Variant
	Err     error
}

func (e *SolverFailure) Error() string {
	return fmt.Sprintf("lp: %s solver failed: %v", e.Variant, e.Err)
}

// Unwrap exposes the backend error.
func (e *SolverFailure) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrSolverFailure) true for every SolverFailure.
func (e *SolverFailure) Is(target error) bool { return target == ErrSolverFailure }

func lpErrorf(method string, err error) error {
	return fmt.Errorf("lp.%s: %w", method, err)
}
