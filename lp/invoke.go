// SPDX-License-Identifier: MIT

package lp

import (
	"context"
	"math"
	"time"

	"github.com/katalvlaran/lpipm/dist"
	"github.com/katalvlaran/lpipm/matrix"
	"github.com/katalvlaran/lpipm/problem"
)

// Solver solves min cᵀx s.t. Ax = b, x ≥ 0 for inst with the requested
// variant, starting from and overwriting x (n), y (m) and z (n).
//
// Solve is collective: every worker of comm calls it with its own blocks of
// the working vectors. A nil error means x, y, z hold the solution.
type Solver interface {
	Solve(ctx context.Context, comm dist.Comm, variant Variant, inst *problem.Instance, x, y, z *matrix.Vector) error
}

// SolverFunc adapts a plain function to Solver.
type SolverFunc func(ctx context.Context, comm dist.Comm, variant Variant, inst *problem.Instance, x, y, z *matrix.Vector) error

// Solve calls f.
func (f SolverFunc) Solve(ctx context.Context, comm dist.Comm, variant Variant, inst *problem.Instance, x, y, z *matrix.Vector) error {
	return f(ctx, comm, variant, inst, x, y, z)
}

// Result is the outcome of one successful invocation. X, Y, Z are fresh
// vectors owned by the caller.
type Result struct {
	Variant   Variant
	X, Y, Z   *matrix.Vector
	Objective float64
	Elapsed   time.Duration
}

// Invoke runs solver for variant on inst from a private copy of start.
// Collective over inst.A.Comm().
//
// Elapsed covers the Solve call only. Objective is cᵀx. A solver error or
// a non-finite objective is returned as *SolverFailure (errors.Is
// ErrSolverFailure); no Result is returned in that case.
func Invoke(ctx context.Context, solver Solver, variant Variant, inst *problem.Instance, start *problem.Start) (*Result, error) {
	if solver == nil || inst == nil || start == nil {
		return nil, lpErrorf("Invoke", ErrNilInstance)
	}
	if start.X.Len() != inst.N() || start.Y.Len() != inst.M() || start.Z.Len() != inst.N() {
		return nil, lpErrorf("Invoke", matrix.ErrDimensionMismatch)
	}

	work := start.Clone()
	comm := inst.A.Comm()

	began := time.Now()
	err := solver.Solve(ctx, comm, variant, inst, work.X, work.Y, work.Z)
	elapsed := time.Since(began)
	if err != nil {
		return nil, &SolverFailure{Variant: variant, Err: err}
	}

	obj, err := matrix.Dot(ctx, inst.C, work.X)
	if err != nil {
		return nil, &SolverFailure{Variant: variant, Err: err}
	}
	if math.IsNaN(obj) || math.IsInf(obj, 0) {
		return nil, &SolverFailure{Variant: variant, Err: ErrNonFiniteObjective}
	}

	return &Result{
		Variant:   variant,
		X:         work.X,
		Y:         work.Y,
		Z:         work.Z,
		Objective: obj,
		Elapsed:   elapsed,
	}, nil
}
