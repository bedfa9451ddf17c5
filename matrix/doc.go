// SPDX-License-Identifier: MIT

// Package matrix offers the distributed sparse matrix and vector types that
// the LP generator, assembler and solvers exchange.
//
// The matrix package provides:
//
//   - Sparse: a row-distributed matrix populated through
//     Reserve → QueueUpdate → MakeConsistent. Duplicate updates accumulate.
//     After MakeConsistent it is immutable CSR.
//   - Vector: a row-distributed column vector with seeded uniform fill,
//     Dot, Nrm2, Gather/Scatter and in-place access for solvers.
//   - Multiply: y = alpha*op(A)*x + beta*y with op ∈ {Normal, Transpose}.
//   - ToDense/Display: gonum bridges for small instances and debugging.
//
// Every method that communicates is collective and documented as such; all
// workers must call it in the same order. With a dist.Local comm (the
// default of NewSparse/NewVector) collectives are free.
//
// See the examples in this package for usage patterns.
package matrix
