// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Single source of truth for shape, index and numeric checks.
//  - Return plain sentinels (tagged with the validator name) so call sites
//    can wrap uniformly.
//
// All checks are pure, deterministic and allocate nothing.

package matrix

import "math"

// ValidateDims checks that rows and cols are both positive.
// Complexity: O(1).
func ValidateDims(rows, cols int) error {
	if rows <= 0 || cols <= 0 {
		return matrixErrorf("ValidateDims", ErrInvalidDimension)
	}
	return nil
}

// ValidateIndex checks 0 <= i < n.
func ValidateIndex(i, n int) error {
	if i < 0 || i >= n {
		return matrixErrorf("ValidateIndex", ErrOutOfRange)
	}
	return nil
}

// ValidateVecLen checks that x has exactly n entries.
func ValidateVecLen(x []float64, n int) error {
	if len(x) != n {
		return matrixErrorf("ValidateVecLen", ErrDimensionMismatch)
	}
	return nil
}

// ValidateFinite rejects NaN and ±Inf.
func ValidateFinite(v float64) error {
	if isNonFinite(v) {
		return matrixErrorf("ValidateFinite", ErrNaNInf)
	}
	return nil
}

// ValidateMultiply checks y = op(A)·x shapes, where op is the identity for
// Normal and the transpose for Transpose. Both A and the vectors must be
// non-nil and A must be consistent.
func ValidateMultiply(orient Orientation, a *Sparse, x, y *Vector) error {
	if a == nil || x == nil || y == nil {
		return matrixErrorf("ValidateMultiply", ErrNilMatrix)
	}
	if !a.Consistent() {
		return matrixErrorf("ValidateMultiply", ErrNotConsistent)
	}
	in, out := a.Cols(), a.Rows()
	if orient == Transpose {
		in, out = out, in
	}
	if x.Len() != in || y.Len() != out {
		return matrixErrorf("ValidateMultiply", ErrDimensionMismatch)
	}
	// the row-indexed operand must share A's row blocks
	rowVec := y
	if orient == Transpose {
		rowVec = x
	}
	if rowVec.LocalRange() != a.LocalRange() {
		return matrixErrorf("ValidateMultiply", ErrDimensionMismatch)
	}
	return nil
}

// isNonFinite reports NaN or ±Inf.
func isNonFinite(v float64) bool { return math.IsNaN(v) || math.IsInf(v, 0) }
