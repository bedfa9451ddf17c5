// SPDX-License-Identifier: MIT
// Package: lpipm/generator
//
// Package generator builds the synthetic constraint matrix of the LP test
// instance: an m×n banded stencil with a dense last column.
//
// For each row s in [0, m) the default stencil queues:
//
//	(s, s)    += 11
//	(s, s-1)  += 1     if s != 0
//	(s, s+1)  += 2     if s != n-1
//	(s, s-m)  += 3     if s >= m
//	(s, s+m)  += 4     if s <  n-m
//	(s, n-1)  += 5/m   always (dense last column)
//
// Updates are additive: when two rules hit the same cell (e.g. s == n-1 on
// a square instance, where the diagonal and the dense column coincide) the
// values are summed.
//
// Generation is embarrassingly parallel: each worker builds only its own
// row block (dist.Block) and the only communication is the final
// MakeConsistent barrier.
//
// Entry points:
//   - Rectang(ctx, comm, m, n, ...Option) — distributed matrix.
//   - Triples(m, n, rows, Stencil)        — the pure update list for a block.
//
// Errors:
//   - ErrInvalidDimension for m <= 0 or n <= 0.
package generator
