// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// Algorithms return these sentinels (optionally wrapped with %w for context)
// and callers/tests match them with errors.Is. No public method panics on a
// user-triggered condition; option constructors panic on nonsense values.

package matrix

import (
	"errors"
	"fmt"
)

// ERROR PRIORITY (checked in this order by every entry point):
// nil -> shape -> lifecycle (consistent/finalized) -> index/locality -> NaN/Inf.

var (
	// ErrInvalidDimension is returned when a requested dimension is not
	// positive (rows<=0, cols<=0, n<=0).
	ErrInvalidDimension = errors.New("matrix: dimensions must be > 0")

	// ErrOutOfRange indicates a row or column index outside the global shape.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrNonLocalRow indicates a row that exists globally but is owned by a
	// different worker.
	ErrNonLocalRow = errors.New("matrix: row is not owned by this worker")

	// ErrDimensionMismatch indicates incompatible operand shapes, e.g.
	// Multiply with len(x) != A.Cols().
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNaNInf signals a NaN or ±Inf value under the finite-value policy.
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrNotConsistent is returned by queries on a sparse matrix whose queued
	// updates have not been merged by MakeConsistent yet.
	ErrNotConsistent = errors.New("matrix: MakeConsistent has not been called")

	// ErrFinalized is returned by QueueUpdate/Reserve after MakeConsistent:
	// a consistent matrix is immutable.
	ErrFinalized = errors.New("matrix: matrix is already consistent")

	// ErrNilMatrix indicates a nil matrix or vector operand.
	ErrNilMatrix = errors.New("matrix: nil operand")
)

// matrixErrorf prefixes err with the call-site tag, keeping the sentinel
// reachable through errors.Is.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// sparseErrorf attaches a method and coordinates, mirroring At/Set style
// diagnostics: "Sparse.QueueUpdate(3,7): matrix: index out of range".
func sparseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Sparse.%s(%d,%d): %w", method, row, col, err)
}

// vectorErrorf is the Vector counterpart of sparseErrorf:
// "Vector.Set(4): matrix: NaN or Inf encountered".
func vectorErrorf(method string, i int, err error) error {
	return fmt.Errorf("Vector.%s(%d): %w", method, i, err)
}
