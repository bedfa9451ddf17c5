// SPDX-License-Identifier: MIT

package dist

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// op identifies the collective a round was opened for.
type op uint8

const (
	opBarrier op = iota + 1
	opAllReduceSum
	opAllGather
)

func (o op) String() string {
	switch o {
	case opBarrier:
		return "Barrier"
	case opAllReduceSum:
		return "AllReduceSum"
	case opAllGather:
		return "AllGather"
	default:
		return fmt.Sprintf("op(%d)", uint8(o))
	}
}

// round is the rendezvous state of one collective. Slots are written under
// World.mu before done is closed and only read afterwards.
type round struct {
	op      op
	arrived int
	slots   [][]float64
	done    chan struct{}
}

func newRound(size int) *round {
	return &round{
		slots: make([][]float64, size),
		done:  make(chan struct{}),
	}
}

// World is an in-process group of workers. Use Comm(rank) to obtain each
// worker's handle, or Run to launch and supervise all of them.
type World struct {
	size int

	mu        sync.Mutex
	cur       *round
	finalized []bool

	abortOnce sync.Once
	abort     chan struct{}
	cause     error
}

// NewWorld creates a world of size workers.
func NewWorld(size int) (*World, error) {
	if size <= 0 {
		return nil, distErrorf("NewWorld", fmt.Errorf("size %d: %w", size, ErrRuntime))
	}

	return &World{
		size:      size,
		cur:       newRound(size),
		finalized: make([]bool, size),
		abort:     make(chan struct{}),
	}, nil
}

// Size returns the number of workers.
func (w *World) Size() int { return w.size }

// Comm returns the handle of worker rank.
func (w *World) Comm(rank int) (Comm, error) {
	if rank < 0 || rank >= w.size {
		return nil, distErrorf("Comm", fmt.Errorf("rank %d of %d: %w", rank, w.size, ErrRankMismatch))
	}
	return &worldComm{w: w, rank: rank}, nil
}

// Abort wakes every worker blocked in a collective; they return ErrAborted.
// Only the first cause is kept.
func (w *World) Abort(cause error) {
	w.abortOnce.Do(func() {
		w.mu.Lock()
		w.cause = cause
		w.mu.Unlock()
		close(w.abort)
	})
}

// Cause returns the error passed to the first Abort, or nil.
func (w *World) Cause() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.cause
}

// collective deposits payload for rank and waits until all workers of the
// current round have done the same.
func (w *World) collective(ctx context.Context, rank int, kind op, payload []float64) ([][]float64, error) {
	select {
	case <-w.abort:
		return nil, distErrorf(kind.String(), ErrAborted)
	default:
	}

	w.mu.Lock()
	if w.finalized[rank] {
		w.mu.Unlock()
		return nil, distErrorf(kind.String(), ErrFinalized)
	}
	r := w.cur
	if r.op == 0 {
		r.op = kind
	} else if r.op != kind {
		w.mu.Unlock()
		err := distErrorf(kind.String(), fmt.Errorf("rank %d entered %s while round is %s: %w", rank, kind, r.op, ErrRankMismatch))
		w.Abort(err)
		return nil, err
	}
	// a non-nil slot marks arrival, even for empty payloads
	r.slots[rank] = append(make([]float64, 0, len(payload)), payload...)
	r.arrived++
	if r.arrived == w.size {
		w.cur = newRound(w.size)
		close(r.done)
	}
	w.mu.Unlock()

	select {
	case <-r.done:
		return r.slots, nil
	default:
	}

	select {
	case <-r.done:
		return r.slots, nil
	case <-w.abort:
		return nil, distErrorf(kind.String(), ErrAborted)
	case <-ctx.Done():
		err := distErrorf(kind.String(), ctx.Err())
		w.Abort(err)
		return nil, err
	}
}

func (w *World) finalize(rank int) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.finalized[rank] {
		return distErrorf("Finalize", ErrFinalized)
	}
	w.finalized[rank] = true
	return nil
}

// worldComm is a single worker's handle on a World.
type worldComm struct {
	w    *World
	rank int
}

var _ Comm = (*worldComm)(nil)

func (c *worldComm) Rank() int { return c.rank }
func (c *worldComm) Size() int { return c.w.size }

func (c *worldComm) Barrier(ctx context.Context) error {
	_, err := c.w.collective(ctx, c.rank, opBarrier, nil)
	return err
}

func (c *worldComm) AllReduceSum(ctx context.Context, v float64) (float64, error) {
	slots, err := c.w.collective(ctx, c.rank, opAllReduceSum, []float64{v})
	if err != nil {
		return 0, err
	}
	var sum float64
	for _, s := range slots { // rank order
		sum += s[0]
	}
	return sum, nil
}

func (c *worldComm) AllGather(ctx context.Context, local []float64) ([]float64, error) {
	slots, err := c.w.collective(ctx, c.rank, opAllGather, local)
	if err != nil {
		return nil, err
	}
	total := 0
	for _, s := range slots {
		total += len(s)
	}
	out := make([]float64, 0, total)
	for _, s := range slots {
		out = append(out, s...)
	}
	return out, nil
}

func (c *worldComm) Finalize() error { return c.w.finalize(c.rank) }

// Run launches size workers, each executing fn with its own Comm, and waits
// for all of them. The first worker error cancels the shared context, which
// aborts the world, and is the error returned.
// With size == 1, fn still runs on a World (not Local) so the collective
// code path is the same for every size.
func Run(ctx context.Context, size int, fn func(ctx context.Context, comm Comm) error) error {
	w, err := NewWorld(size)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	for rank := 0; rank < size; rank++ {
		comm, err := w.Comm(rank)
		if err != nil {
			return err
		}
		// a failing worker cancels gctx; peers blocked in a collective
		// observe it and abort the world
		g.Go(func() error { return fn(gctx, comm) })
	}

	return g.Wait()
}
