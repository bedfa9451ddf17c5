// SPDX-License-Identifier: MIT

// Package matrix - distributed sparse storage (row blocks, CSR after merge).
//
// Purpose:
//   - Hold the rows [FirstLocalRow, FirstLocalRow+LocalHeight) of a global
//     rows×cols matrix on each worker, with global column indices.
//   - Populate through the Reserve → QueueUpdate → MakeConsistent protocol.
//     Duplicate (row,col) updates accumulate; they never overwrite.
//   - After MakeConsistent the matrix is immutable and safe for concurrent
//     readers.
//
// Determinism:
//   - Queued updates are stable-sorted by (row,col) before merging, so
//     duplicates are summed in queue order and results are bit-reproducible.
//
// Complexity quicksheet:
//   - QueueUpdate: O(1) amortized; MakeConsistent: O(k log k) for k queued;
//     At: O(log nnz(row)); Multiply: O(nnz_local) plus one gather of x.

package matrix

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/katalvlaran/lpipm/dist"
)

const (
	ctxQueue      = "QueueUpdate"
	ctxQueueLocal = "QueueLocalUpdate"
	ctxAt         = "At"
	ctxRow        = "Row"
)

// triplet is one queued update (global row, global col, addend).
type triplet struct {
	i, j int
	v    float64
}

// Sparse is a row-distributed sparse matrix.
type Sparse struct {
	rows, cols int
	local      dist.Range
	comm       dist.Comm
	opts       Options

	queue      []triplet
	consistent bool

	// CSR over local rows: entries of local row r live in
	// colIdx[rowPtr[r]:rowPtr[r+1]] / vals[...] with ascending columns.
	rowPtr []int
	colIdx []int
	vals   []float64
}

// NewSparse creates a rows×cols matrix owned entirely by a single worker.
func NewSparse(rows, cols int, opts ...Option) (*Sparse, error) {
	return NewDistSparse(dist.NewLocal(), rows, cols, opts...)
}

// NewDistSparse creates a rows×cols matrix distributed over comm by the
// block rule (see dist.Block). Each worker calls it with the same shape.
//
// Errors: ErrNilMatrix (nil comm), ErrInvalidDimension.
func NewDistSparse(comm dist.Comm, rows, cols int, opts ...Option) (*Sparse, error) {
	if comm == nil {
		return nil, matrixErrorf("NewDistSparse", ErrNilMatrix)
	}
	if err := ValidateDims(rows, cols); err != nil {
		return nil, matrixErrorf("NewDistSparse", err)
	}
	local, err := dist.LocalBlock(comm, rows)
	if err != nil {
		return nil, matrixErrorf("NewDistSparse", err)
	}

	o := gatherOptions(opts...)
	s := &Sparse{
		rows:  rows,
		cols:  cols,
		local: local,
		comm:  comm,
		opts:  o,
	}
	if o.reserve > 0 {
		s.queue = make([]triplet, 0, o.reserve)
	}

	return s, nil
}

// Rows returns the global row count.
func (s *Sparse) Rows() int { return s.rows }

// Cols returns the global column count.
func (s *Sparse) Cols() int { return s.cols }

// FirstLocalRow returns the first global row owned by this worker.
func (s *Sparse) FirstLocalRow() int { return s.local.First }

// LocalHeight returns the number of rows owned by this worker.
func (s *Sparse) LocalHeight() int { return s.local.Height }

// LocalRange returns the owned row block.
func (s *Sparse) LocalRange() dist.Range { return s.local }

// Comm returns the distributed context the matrix lives on.
func (s *Sparse) Comm() dist.Comm { return s.comm }

// Consistent reports whether MakeConsistent has completed.
func (s *Sparse) Consistent() bool { return s.consistent }

// Reserve grows the update queue so that k more updates can be queued
// without reallocation. It is only a capacity hint.
func (s *Sparse) Reserve(k int) error {
	if s.consistent {
		return matrixErrorf("Sparse.Reserve", ErrFinalized)
	}
	if k > 0 {
		s.queue = slices.Grow(s.queue, k)
	}
	return nil
}

// QueueUpdate schedules A[row,col] += v. row is a global index and must be
// owned by this worker.
func (s *Sparse) QueueUpdate(row, col int, v float64) error {
	if s.consistent {
		return sparseErrorf(ctxQueue, row, col, ErrFinalized)
	}
	if row < 0 || row >= s.rows || col < 0 || col >= s.cols {
		return sparseErrorf(ctxQueue, row, col, ErrOutOfRange)
	}
	if !s.local.Contains(row) {
		return sparseErrorf(ctxQueue, row, col, ErrNonLocalRow)
	}
	if s.opts.validateNaNInf && isNonFinite(v) {
		return sparseErrorf(ctxQueue, row, col, ErrNaNInf)
	}
	s.queue = append(s.queue, triplet{i: row, j: col, v: v})
	return nil
}

// QueueLocalUpdate is QueueUpdate with a row index relative to
// FirstLocalRow.
func (s *Sparse) QueueLocalUpdate(localRow, col int, v float64) error {
	if localRow < 0 || localRow >= s.local.Height {
		return sparseErrorf(ctxQueueLocal, localRow, col, ErrNonLocalRow)
	}
	return s.QueueUpdate(s.local.First+localRow, col, v)
}

// MakeConsistent merges all queued updates into CSR form and synchronizes
// with the other workers. It is collective. Calling it twice is a no-op
// merge (nothing is queued) but still a collective.
func (s *Sparse) MakeConsistent(ctx context.Context) error {
	if !s.consistent {
		s.merge()
	}
	if err := s.comm.Barrier(ctx); err != nil {
		return matrixErrorf("Sparse.MakeConsistent", err)
	}
	return nil
}

// merge compresses the queue into CSR, summing duplicates in queue order.
func (s *Sparse) merge() {
	q := s.queue
	slices.SortStableFunc(q, func(a, b triplet) int {
		if c := cmp.Compare(a.i, b.i); c != 0 {
			return c
		}
		return cmp.Compare(a.j, b.j)
	})

	h := s.local.Height
	s.rowPtr = make([]int, h+1)
	s.colIdx = make([]int, 0, len(q))
	s.vals = make([]float64, 0, len(q))

	for k := 0; k < len(q); {
		i, j := q[k].i, q[k].j
		var sum float64
		for ; k < len(q) && q[k].i == i && q[k].j == j; k++ {
			sum += q[k].v
		}
		if s.opts.dropZeros && sum == 0 {
			continue
		}
		s.colIdx = append(s.colIdx, j)
		s.vals = append(s.vals, sum)
		s.rowPtr[i-s.local.First+1]++
	}
	for r := 0; r < h; r++ {
		s.rowPtr[r+1] += s.rowPtr[r]
	}

	s.queue = nil
	s.consistent = true
}

// At returns A[row,col] (0 for structural zeros). row must be local.
func (s *Sparse) At(row, col int) (float64, error) {
	if !s.consistent {
		return 0, sparseErrorf(ctxAt, row, col, ErrNotConsistent)
	}
	if row < 0 || row >= s.rows || col < 0 || col >= s.cols {
		return 0, sparseErrorf(ctxAt, row, col, ErrOutOfRange)
	}
	if !s.local.Contains(row) {
		return 0, sparseErrorf(ctxAt, row, col, ErrNonLocalRow)
	}

	cols, vals := s.localRow(row - s.local.First)
	if k, ok := slices.BinarySearch(cols, col); ok {
		return vals[k], nil
	}
	return 0, nil
}

// Row returns copies of the column indices (ascending) and values stored in
// global row row, which must be local.
func (s *Sparse) Row(row int) ([]int, []float64, error) {
	if !s.consistent {
		return nil, nil, sparseErrorf(ctxRow, row, 0, ErrNotConsistent)
	}
	if row < 0 || row >= s.rows {
		return nil, nil, sparseErrorf(ctxRow, row, 0, ErrOutOfRange)
	}
	if !s.local.Contains(row) {
		return nil, nil, sparseErrorf(ctxRow, row, 0, ErrNonLocalRow)
	}
	cols, vals := s.localRow(row - s.local.First)
	return slices.Clone(cols), slices.Clone(vals), nil
}

func (s *Sparse) localRow(r int) ([]int, []float64) {
	lo, hi := s.rowPtr[r], s.rowPtr[r+1]
	return s.colIdx[lo:hi], s.vals[lo:hi]
}

// LocalNNZ returns the number of stored entries on this worker.
func (s *Sparse) LocalNNZ() int { return len(s.vals) }

// NNZ returns the global number of stored entries. Collective.
func (s *Sparse) NNZ(ctx context.Context) (int, error) {
	if !s.consistent {
		return 0, matrixErrorf("Sparse.NNZ", ErrNotConsistent)
	}
	total, err := s.comm.AllReduceSum(ctx, float64(len(s.vals)))
	if err != nil {
		return 0, matrixErrorf("Sparse.NNZ", err)
	}
	return int(total), nil
}

// Triplets calls fn for every stored local entry in row-major order.
// Iteration stops at the first error, which is returned.
func (s *Sparse) Triplets(fn func(row, col int, v float64) error) error {
	if !s.consistent {
		return matrixErrorf("Sparse.Triplets", ErrNotConsistent)
	}
	for r := 0; r < s.local.Height; r++ {
		cols, vals := s.localRow(r)
		for k, j := range cols {
			if err := fn(s.local.First+r, j, vals[k]); err != nil {
				return err
			}
		}
	}
	return nil
}

// String summarizes shape and local storage; it does not print entries.
func (s *Sparse) String() string {
	return fmt.Sprintf("Sparse(%dx%d, rows [%d,%d), nnz_local=%d, consistent=%t)",
		s.rows, s.cols, s.local.First, s.local.End(), len(s.vals), s.consistent)
}
