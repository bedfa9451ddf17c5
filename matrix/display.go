// SPDX-License-Identifier: MIT

package matrix

import (
	"context"
	"fmt"
	"io"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// ToDense gathers the whole matrix into a gonum dense matrix on every
// worker. Collective. Memory is O(Rows*Cols); intended for display, small
// instances and dense solver backends.
func (s *Sparse) ToDense(ctx context.Context) (*mat.Dense, error) {
	if !s.consistent {
		return nil, matrixErrorf("Sparse.ToDense", ErrNotConsistent)
	}

	block := make([]float64, s.local.Height*s.cols)
	for r := 0; r < s.local.Height; r++ {
		cols, vals := s.localRow(r)
		for k, j := range cols {
			block[r*s.cols+j] = vals[k]
		}
	}

	// blocks are contiguous row ranges in rank order, so the gathered
	// buffer is already row-major for the global matrix
	full, err := s.comm.AllGather(ctx, block)
	if err != nil {
		return nil, matrixErrorf("Sparse.ToDense", err)
	}
	return mat.NewDense(s.rows, s.cols, full), nil
}

// Display writes name and the formatted matrix to w from rank 0 only.
// Collective: every worker must call it.
func (s *Sparse) Display(ctx context.Context, w io.Writer, name string) error {
	d, err := s.ToDense(ctx)
	if err != nil {
		return err
	}
	return display(s.comm.Rank(), w, name, d)
}

// Display writes name and the formatted vector to w from rank 0 only.
// Collective.
func (v *Vector) Display(ctx context.Context, w io.Writer, name string) error {
	d, err := v.ToVecDense(ctx)
	if err != nil {
		return err
	}
	return display(v.comm.Rank(), w, name, d)
}

func display(rank int, w io.Writer, name string, m mat.Matrix) error {
	if rank != 0 {
		return nil
	}
	prefix := name + " = "
	_, err := fmt.Fprintf(w, "%s%v\n", prefix, mat.Formatted(m, mat.Prefix(strings.Repeat(" ", len(prefix))), mat.Squeeze()))
	return err
}
