// SPDX-License-Identifier: MIT

package lp

import "gonum.org/v1/gonum/mat"

// DenseSimplexFunc is the signature of the gonum simplex entry point.
type DenseSimplexFunc func(c []float64, a mat.Matrix, b []float64, tol float64, initialBasic []int) (float64, []float64, error)

// SwapDenseSimplex_TestOnly replaces the dense solver and returns a restore
// function. Tests using it must not run in parallel.
func SwapDenseSimplex_TestOnly(f DenseSimplexFunc) (restore func()) {
	prev := denseSimplex
	denseSimplex = f
	return func() { denseSimplex = prev }
}

// DenseSimplex_TestOnly is the production solver, for wrapping.
func DenseSimplex_TestOnly() DenseSimplexFunc { return denseSimplex }
