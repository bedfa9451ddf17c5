// SPDX-License-Identifier: MIT

// Package lp invokes an LP solver on an assembled instance, once per
// interior-point variant, and records the solution, objective and timing.
//
// The solver itself is an external collaborator behind the Solver
// interface. It receives the instance (A, b, c) and overwrites the working
// vectors (x, y, z) in place. Invoke owns the bookkeeping around that call:
//
//   - the initial guess is copied into fresh vectors, so successive
//     variants never see each other's iterates;
//   - only the Solve call is timed;
//   - the objective is cᵀx, reduced over all workers;
//   - any failure is reported as *SolverFailure and never as a partial
//     Result.
//
// Backends shipped with the package:
//
//   - SimplexSolver: gonum's dense simplex (optimize/convex/lp) on the
//     gathered instance, with duals recovered from the optimal basis;
//   - CertificateSolver: returns the generator's feasibility certificate;
//   - SolverFunc: adapter for plain functions (tests, custom backends).
//
// Sign convention for duals: Aᵀy − z + c = 0 with z ≥ 0 at optimality.
package lp
