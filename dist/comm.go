// SPDX-License-Identifier: MIT

package dist

import (
	"context"
	"sync/atomic"
)

// Comm is one worker's view of a group of cooperating workers.
//
// Every method except Rank/Size is collective: all workers of the group must
// call it, in the same order, before any of them returns.
type Comm interface {
	// Rank is this worker's index in [0, Size()).
	Rank() int

	// Size is the number of workers in the group.
	Size() int

	// Barrier blocks until every worker has entered it.
	Barrier(ctx context.Context) error

	// AllReduceSum returns the sum of v over all workers. The reduction is
	// performed in rank order, so every worker sees the bit-identical sum.
	AllReduceSum(ctx context.Context, v float64) (float64, error)

	// AllGather concatenates every worker's local slice in rank order and
	// returns the result (a fresh slice) to every worker.
	AllGather(ctx context.Context, local []float64) ([]float64, error)

	// Finalize releases the worker's share of the runtime. It must be the
	// last call the worker makes.
	Finalize() error
}

// Local is the single-worker Comm: rank 0 of 1.
// The zero value is ready to use.
type Local struct {
	finalized atomic.Bool
}

var _ Comm = (*Local)(nil)

// NewLocal returns a fresh single-worker Comm.
func NewLocal() *Local { return &Local{} }

// Rank always returns 0.
func (l *Local) Rank() int { return 0 }

// Size always returns 1.
func (l *Local) Size() int { return 1 }

// Barrier returns immediately unless the comm is finalized or ctx is done.
func (l *Local) Barrier(ctx context.Context) error {
	return l.check(ctx, "Barrier")
}

// AllReduceSum returns v.
func (l *Local) AllReduceSum(ctx context.Context, v float64) (float64, error) {
	if err := l.check(ctx, "AllReduceSum"); err != nil {
		return 0, err
	}
	return v, nil
}

// AllGather returns a copy of local.
func (l *Local) AllGather(ctx context.Context, local []float64) ([]float64, error) {
	if err := l.check(ctx, "AllGather"); err != nil {
		return nil, err
	}
	out := make([]float64, len(local))
	copy(out, local)
	return out, nil
}

// Finalize marks the comm as released. A second call fails with ErrFinalized.
func (l *Local) Finalize() error {
	if l.finalized.Swap(true) {
		return distErrorf("Finalize", ErrFinalized)
	}
	return nil
}

func (l *Local) check(ctx context.Context, op string) error {
	if l.finalized.Load() {
		return distErrorf(op, ErrFinalized)
	}
	if err := ctx.Err(); err != nil {
		return distErrorf(op, err)
	}
	return nil
}
