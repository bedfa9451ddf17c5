// SPDX-License-Identifier: MIT

package generator

import (
	"context"
	"fmt"

	"github.com/katalvlaran/lpipm/dist"
	"github.com/katalvlaran/lpipm/matrix"
)

// Triple is one additive update A[Row, Col] += Value.
type Triple struct {
	Row   int
	Col   int
	Value float64
}

// Triples returns the updates of the rows in block, in row order and, within
// a row, in rule order (diag, left, right, down, up, dense column).
//
// Columns outside [0, n) are skipped; with m <= n this never happens, with
// m > n it drops the diagonal (and right neighbor) of rows s >= n.
//
// Errors: ErrInvalidDimension when m <= 0 or n <= 0; dist.ErrRankMismatch
// when block is not inside [0, m).
// Complexity: O(block.Height).
func Triples(m, n int, block dist.Range, st Stencil) ([]Triple, error) {
	if m <= 0 || n <= 0 {
		return nil, generatorErrorf(MethodTriples, fmt.Errorf("m=%d n=%d: %w", m, n, ErrInvalidDimension))
	}
	if block.First < 0 || block.Height < 0 || block.End() > m {
		return nil, generatorErrorf(MethodTriples, fmt.Errorf("rows [%d,%d) outside [0,%d): %w",
			block.First, block.End(), m, dist.ErrRankMismatch))
	}

	dense := st.DenseCol / float64(m)
	out := make([]Triple, 0, (nnzPerRow+1)*block.Height)
	add := func(s, j int, v float64) {
		if j >= 0 && j < n {
			out = append(out, Triple{Row: s, Col: j, Value: v})
		}
	}

	for s := block.First; s < block.End(); s++ {
		add(s, s, st.Diag)
		if s != 0 {
			add(s, s-1, st.Left)
		}
		if s != n-1 {
			add(s, s+1, st.Right)
		}
		if s >= m {
			add(s, s-m, st.Down)
		}
		if s < n-m {
			add(s, s+m, st.Up)
		}
		add(s, n-1, dense)
	}

	return out, nil
}

// Rectang builds the distributed m×n stencil matrix with a dense last
// column. Collective: every worker of comm calls it with the same m, n and
// options; each queues only its own rows.
//
// Errors: ErrInvalidDimension (fail fast, before any allocation), errors
// from the matrix package, and collective errors from MakeConsistent.
func Rectang(ctx context.Context, comm dist.Comm, m, n int, opts ...Option) (*matrix.Sparse, error) {
	if m <= 0 || n <= 0 {
		return nil, generatorErrorf(MethodRectang, fmt.Errorf("m=%d n=%d: %w", m, n, ErrInvalidDimension))
	}
	cfg := newConfig(opts...)

	a, err := matrix.NewDistSparse(comm, m, n, cfg.matrixOpts...)
	if err != nil {
		return nil, generatorErrorf(MethodRectang, err)
	}

	// Stage 1: reserve and queue the local rows only.
	if err = a.Reserve(nnzPerRow * a.LocalHeight()); err != nil {
		return nil, generatorErrorf(MethodRectang, err)
	}
	triples, err := Triples(m, n, a.LocalRange(), cfg.stencil)
	if err != nil {
		return nil, generatorErrorf(MethodRectang, err)
	}
	for _, t := range triples {
		if err = a.QueueUpdate(t.Row, t.Col, t.Value); err != nil {
			return nil, generatorErrorf(MethodRectang, err)
		}
	}

	// Stage 2: merge and synchronize.
	if err = a.MakeConsistent(ctx); err != nil {
		return nil, generatorErrorf(MethodRectang, err)
	}

	return a, nil
}
