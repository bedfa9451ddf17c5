// Package lpipm generates sparse linear-programming test instances and
// drives interior-point solvers over them.
//
// What it does
//
//	A reproducible, feasible-by-construction LP benchmark:
//		• Matrix generation: an m×n banded stencil with a dense last column
//		• Assembly: a positive xGen, b = A·xGen, a positive cost c and a
//		  shared initial guess, all from one seed
//		• Solving: each variant (Mehrotra, IPF) from a private copy of the
//		  guess, timed, with objective cᵀx
//		• Workers: every step is collective over a dist.Comm, either one
//		  local worker or an in-process world of goroutines
//
// Packages:
//
//	dist/      — rank/size, collectives, row partitions, worker worlds
//	matrix/    — distributed sparse matrix (reserve/queue/consistent), vectors, SpMV
//	generator/ — the Rectang stencil
//	problem/   — instance and initial guess assembly, residuals
//	lp/        — solver interface, Invoke, simplex and certificate backends
//	pipeline/  — configuration, phase sequencing, report
//	cmd/lpipm/ — command line
//
// Quick shape example (m=3, n=6, dense column d = 5/3):
//
//	11  2  0  4  0  d
//	 1 11  2  0  4  d
//	 0  1 11  2  0  4+d
//
//	go run github.com/katalvlaran/lpipm/cmd/lpipm --m 3 --n 6 --display
package lpipm
