// SPDX-License-Identifier: MIT

package matrix

import (
	"context"

	"gonum.org/v1/gonum/floats"
)

// Orientation selects op(A) in Multiply.
type Orientation int

const (
	// Normal uses A as stored.
	Normal Orientation = iota
	// Transpose uses Aᵀ.
	Transpose
)

func (o Orientation) String() string {
	if o == Transpose {
		return "TRANSPOSE"
	}
	return "NORMAL"
}

// Multiply computes y = alpha*op(A)*x + beta*y. Collective.
//
// Normal: x (length Cols) is gathered on every worker, then each worker
// computes its own rows of y. Transpose: each worker forms the partial
// product of its rows, partials are gathered and summed in rank order, and
// each worker keeps its block of y.
//
// With beta == 0, y is overwritten without being read (NaNs in y do not
// propagate).
//
// Complexity: O(nnz_local + Cols) for Normal, O(nnz_local + P*Cols) for
// Transpose, plus one collective.
func Multiply(ctx context.Context, orient Orientation, alpha float64, a *Sparse, x *Vector, beta float64, y *Vector) error {
	if err := ValidateMultiply(orient, a, x, y); err != nil {
		return matrixErrorf("Multiply", err)
	}

	switch orient {
	case Transpose:
		return multiplyTrans(ctx, alpha, a, x, beta, y)
	default:
		return multiplyNormal(ctx, alpha, a, x, beta, y)
	}
}

func multiplyNormal(ctx context.Context, alpha float64, a *Sparse, x *Vector, beta float64, y *Vector) error {
	xFull, err := x.Gather(ctx)
	if err != nil {
		return matrixErrorf("Multiply", err)
	}

	for r := 0; r < a.local.Height; r++ {
		cols, vals := a.localRow(r)
		var acc float64
		for k, j := range cols {
			acc += vals[k] * xFull[j]
		}
		if beta == 0 {
			y.data[r] = alpha * acc
		} else {
			y.data[r] = alpha*acc + beta*y.data[r]
		}
	}
	return nil
}

func multiplyTrans(ctx context.Context, alpha float64, a *Sparse, x *Vector, beta float64, y *Vector) error {
	partial := make([]float64, a.cols)
	for r := 0; r < a.local.Height; r++ {
		cols, vals := a.localRow(r)
		xr := x.data[r]
		for k, j := range cols {
			partial[j] += vals[k] * xr
		}
	}

	all, err := a.comm.AllGather(ctx, partial)
	if err != nil {
		return matrixErrorf("Multiply", err)
	}
	sum := make([]float64, a.cols)
	for p := 0; p < a.comm.Size(); p++ {
		floats.Add(sum, all[p*a.cols:(p+1)*a.cols])
	}

	own := sum[y.local.First:y.local.End()]
	for i := range y.data {
		if beta == 0 {
			y.data[i] = alpha * own[i]
		} else {
			y.data[i] = alpha*own[i] + beta*y.data[i]
		}
	}
	return nil
}
