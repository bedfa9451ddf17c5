// SPDX-License-Identifier: MIT

// Package dist provides the distributed context that every collective
// operation in lpipm runs against.
//
// A Comm is one worker's handle on a group of P workers. Each worker owns
// a contiguous block of rows of every distributed object (see Block), and
// every collective (Barrier, AllReduceSum, AllGather) must be entered by
// all workers in the same order with matching shapes.
//
// Two implementations are provided:
//
//   - Local — a single worker (rank 0 of 1). Collectives are no-ops or
//     identity copies, so single-process callers and tests need no setup.
//   - World — P in-process workers (goroutines) sharing rendezvous state.
//     Run supervises the workers and aborts the whole world when one of
//     them fails, so no worker is left blocked in a collective.
//
// Teardown:
//
//	comm.Finalize() must be the last call a worker makes; any collective
//	after Finalize fails with ErrFinalized.
//
// Partitioning:
//
//	blocksize = total / P
//	rank r owns [r*blocksize, r*blocksize + blocksize), the last rank also
//	takes the remainder. The union over all ranks is exactly [0, total).
package dist
