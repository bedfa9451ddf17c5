// SPDX-License-Identifier: MIT

package lp

import (
	"context"
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
	convexlp "gonum.org/v1/gonum/optimize/convex/lp"

	"github.com/katalvlaran/lpipm/dist"
	"github.com/katalvlaran/lpipm/matrix"
	"github.com/katalvlaran/lpipm/problem"
)

// DefaultSimplexTol is the reduced-cost tolerance passed to gonum.
const DefaultSimplexTol = 1e-10

// DefaultSimplexMaxCells bounds m·n for SimplexSolver. A 400×800 instance
// (the limit) solves in a few seconds; cost grows roughly 12× per doubling
// of both dimensions.
const DefaultSimplexMaxCells = 400 * 800

// basicTol separates basic from nonbasic components of the simplex
// solution when recovering duals.
const basicTol = 1e-12

// denseSimplex is the gonum entry point; tests swap it to observe calls.
var denseSimplex = convexlp.Simplex

// SimplexSolver solves the instance with gonum's dense simplex method.
//
// A, b and c are gathered on every worker, but only rank 0 runs the
// simplex. It then shares x and the duals through one AllGather in which
// the other ranks contribute nothing, and every worker keeps its own block.
// Columns of A that are entirely zero are fixed at x_j = 0 before the
// solve (c > 0 makes that optimal) because gonum rejects them.
//
// Duals follow Aᵀy − z + c = 0: with λ solving A_Bᵀλ = c_B on the
// optimal basis B (least squares), y = −λ and z = c + Aᵀy.
//
// The simplex method does not warm start, so the incoming x, y, z only fix
// the output layout, and both variants run the same algorithm. Instances
// with m·n above MaxCells fail fast with ErrTooLarge.
type SimplexSolver struct {
	// Tol is the reduced-cost tolerance; zero selects DefaultSimplexTol.
	Tol float64
	// MaxCells bounds m·n; zero selects DefaultSimplexMaxCells, a negative
	// value disables the limit.
	MaxCells int
}

// Fits reports whether an m×n instance is within the size limit.
func (s SimplexSolver) Fits(m, n int) bool {
	limit := s.MaxCells
	if limit == 0 {
		limit = DefaultSimplexMaxCells
	}
	return limit < 0 || m*n <= limit
}

// Solve implements Solver. Collective.
func (s SimplexSolver) Solve(ctx context.Context, comm dist.Comm, variant Variant, inst *problem.Instance, x, y, z *matrix.Vector) error {
	m, n := inst.M(), inst.N()
	if !s.Fits(m, n) {
		return fmt.Errorf("%w: %d×%d", ErrTooLarge, m, n)
	}
	tol := s.Tol
	if tol == 0 {
		tol = DefaultSimplexTol
	}

	a, err := inst.A.ToDense(ctx)
	if err != nil {
		return err
	}
	b, err := inst.B.Gather(ctx)
	if err != nil {
		return err
	}
	c, err := inst.C.Gather(ctx)
	if err != nil {
		return err
	}
	if err = ctx.Err(); err != nil {
		return err
	}

	active := nonzeroColumns(a)
	if len(active) < m {
		return fmt.Errorf("%w: %d of %d columns for %d rows", ErrUnsupportedShape, len(active), n, m)
	}

	// payload layout on rank 0: [ok, x (n), y (m)]; ok is 1 or 0
	var (
		payload []float64
		rootErr error
	)
	if comm.Rank() == 0 {
		xFull, yFull, err := solveDense(a, b, c, active, tol)
		if err != nil {
			rootErr = fmt.Errorf("simplex (%s): %w", variant, err)
			payload = []float64{0}
		} else {
			payload = make([]float64, 0, 1+n+m)
			payload = append(payload, 1)
			payload = append(payload, xFull...)
			payload = append(payload, yFull...)
		}
	}

	shared, err := comm.AllGather(ctx, payload)
	if err != nil {
		return err
	}
	if shared[0] != 1 {
		if rootErr != nil {
			return rootErr
		}
		return fmt.Errorf("simplex (%s): %w", variant, ErrRootSolve)
	}
	if err = x.Scatter(shared[1 : 1+n]); err != nil {
		return err
	}
	if err = y.Scatter(shared[1+n:]); err != nil {
		return err
	}

	// z = c + Aᵀy
	if err = z.CopyFrom(inst.C); err != nil {
		return err
	}
	return matrix.Multiply(ctx, matrix.Transpose, 1, inst.A, y, 1, z)
}

// solveDense runs the simplex on the active columns and returns the full
// primal x and the duals y = −λ.
func solveDense(a *mat.Dense, b, c []float64, active []int, tol float64) ([]float64, []float64, error) {
	m, n := a.Dims()
	aAct := selectColumns(a, active)
	cAct := make([]float64, len(active))
	for k, j := range active {
		cAct[k] = c[j]
	}

	_, xAct, err := denseSimplex(cAct, aAct, b, tol, nil)
	if err != nil {
		return nil, nil, err
	}
	xFull := make([]float64, n)
	for k, j := range active {
		xFull[j] = xAct[k]
	}

	lambda, err := basisDuals(aAct, cAct, xAct)
	if err != nil {
		return nil, nil, fmt.Errorf("duals: %w", err)
	}
	yFull := make([]float64, m)
	for i := range yFull {
		yFull[i] = -lambda[i]
	}
	return xFull, yFull, nil
}

func nonzeroColumns(a *mat.Dense) []int {
	m, n := a.Dims()
	active := make([]int, 0, n)
	for j := 0; j < n; j++ {
		for i := 0; i < m; i++ {
			if a.At(i, j) != 0 {
				active = append(active, j)
				break
			}
		}
	}
	return active
}

func selectColumns(a *mat.Dense, cols []int) *mat.Dense {
	m, _ := a.Dims()
	out := mat.NewDense(m, len(cols), nil)
	for k, j := range cols {
		out.SetCol(k, mat.Col(nil, j, a))
	}
	return out
}

// basisDuals solves A_Bᵀλ = c_B in the least-squares sense over the
// columns with x_j > basicTol. An empty basis yields λ = 0.
func basisDuals(a *mat.Dense, c, x []float64) ([]float64, error) {
	m, _ := a.Dims()
	var basis []int
	for j, v := range x {
		if v > basicTol {
			basis = append(basis, j)
		}
	}
	lambda := make([]float64, m)
	if len(basis) == 0 {
		return lambda, nil
	}

	aB := selectColumns(a, basis)
	cB := make([]float64, len(basis))
	for k, j := range basis {
		cB[k] = c[j]
	}

	var sol mat.VecDense
	if err := sol.SolveVec(aB.T(), mat.NewVecDense(len(cB), cB)); err != nil {
		// ill-conditioning is reported but the solution is still usable
		var cond mat.Condition
		if !errors.As(err, &cond) {
			return nil, err
		}
	}
	for i := range lambda {
		lambda[i] = sol.AtVec(i)
	}
	return lambda, nil
}
