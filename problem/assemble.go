// SPDX-License-Identifier: MIT

// Package problem assembles a feasible LP instance around a generated
// constraint matrix.
//
// Given A (m×n), Assemble draws a strictly positive xGen, sets b = A·xGen so
// the instance min cᵀx s.t. Ax = b, x >= 0 is feasible by construction,
// draws a positive cost c, and draws the initial guess (x0, y0, z0) that
// every solver variant starts from. xGen is kept on the Instance as a
// certificate but is never given to a solver.
package problem

import (
	"context"
	"fmt"
	"io"

	"github.com/katalvlaran/lpipm/matrix"
)

// Instance is the LP data (A, b, c) plus the feasibility certificate xGen.
// It is read-only after Assemble.
type Instance struct {
	A    *matrix.Sparse
	B    *matrix.Vector // length m
	C    *matrix.Vector // length n
	XGen *matrix.Vector // length n, b = A·XGen
}

// M returns the number of constraints.
func (p *Instance) M() int { return p.A.Rows() }

// N returns the number of variables.
func (p *Instance) N() int { return p.A.Cols() }

// Start is an initial primal/dual/slack guess of lengths n, m, n.
type Start struct {
	X *matrix.Vector
	Y *matrix.Vector
	Z *matrix.Vector
}

// Clone returns an independent deep copy.
func (s *Start) Clone() *Start {
	return &Start{X: s.X.Clone(), Y: s.Y.Clone(), Z: s.Z.Clone()}
}

// Assemble builds (b, c) and the shared initial guess for A. Collective
// over A's comm.
//
// Draw order and streams (all in the open interval (center±radius)):
// xGen, c, x0 (n), y0 (m), z0 (n). Each vector has its own seeded stream,
// so the instance depends only on the seed, never on the worker count.
//
// Errors: matrix.ErrNilMatrix, matrix.ErrNotConsistent, collective errors.
func Assemble(ctx context.Context, a *matrix.Sparse, opts ...Option) (*Instance, *Start, error) {
	if a == nil {
		return nil, nil, problemErrorf("Assemble", matrix.ErrNilMatrix)
	}
	if !a.Consistent() {
		return nil, nil, problemErrorf("Assemble", matrix.ErrNotConsistent)
	}
	cfg := newConfig(opts...)
	comm := a.Comm()
	m, n := a.Rows(), a.Cols()

	draw := func(length int, stream uint64) (*matrix.Vector, error) {
		v, err := matrix.NewDistVector(comm, length)
		if err != nil {
			return nil, err
		}
		v.FillUniform(streamRNG(cfg.seed, stream), cfg.center, cfg.radius)
		return v, nil
	}

	// Stage 1: right-hand side in the positive image, b = A·xGen.
	xGen, err := draw(n, streamXGen)
	if err != nil {
		return nil, nil, problemErrorf("Assemble", err)
	}
	b, err := matrix.NewDistVector(comm, m)
	if err != nil {
		return nil, nil, problemErrorf("Assemble", err)
	}
	if err = matrix.Multiply(ctx, matrix.Normal, 1, a, xGen, 0, b); err != nil {
		return nil, nil, problemErrorf("Assemble", err)
	}

	// Stage 2: positive cost.
	c, err := draw(n, streamCost)
	if err != nil {
		return nil, nil, problemErrorf("Assemble", err)
	}

	// Stage 3: shared initial guess.
	x0, err := draw(n, streamX0)
	if err != nil {
		return nil, nil, problemErrorf("Assemble", err)
	}
	y0, err := draw(m, streamY0)
	if err != nil {
		return nil, nil, problemErrorf("Assemble", err)
	}
	z0, err := draw(n, streamZ0)
	if err != nil {
		return nil, nil, problemErrorf("Assemble", err)
	}

	return &Instance{A: a, B: b, C: c, XGen: xGen}, &Start{X: x0, Y: y0, Z: z0}, nil
}

// Residual returns ‖A·x − b‖₂. Collective.
func Residual(ctx context.Context, a *matrix.Sparse, x, b *matrix.Vector) (float64, error) {
	if a == nil || b == nil {
		return 0, problemErrorf("Residual", matrix.ErrNilMatrix)
	}
	r := b.Clone()
	// r = A·x − b
	if err := matrix.Multiply(ctx, matrix.Normal, 1, a, x, -1, r); err != nil {
		return 0, problemErrorf("Residual", err)
	}
	nrm, err := r.Nrm2(ctx)
	if err != nil {
		return 0, problemErrorf("Residual", err)
	}
	return nrm, nil
}

// Display prints A, xGen, b and c to w from rank 0. Collective.
func (p *Instance) Display(ctx context.Context, w io.Writer) error {
	if err := p.A.Display(ctx, w, "A"); err != nil {
		return err
	}
	for _, v := range []struct {
		name string
		vec  *matrix.Vector
	}{{"xGen", p.XGen}, {"b", p.B}, {"c", p.C}} {
		if err := v.vec.Display(ctx, w, v.name); err != nil {
			return err
		}
	}
	return nil
}

func problemErrorf(method string, err error) error {
	return fmt.Errorf("problem.%s: %w", method, err)
}
