// SPDX-License-Identifier: MIT

package dist

import "fmt"

// Range is a contiguous half-open block [First, First+Height) of a
// distributed dimension.
type Range struct {
	First  int // first owned global index
	Height int // number of owned indices (may be 0)
}

// End returns the exclusive upper bound First+Height.
func (r Range) End() int { return r.First + r.Height }

// Contains reports whether global index i lies in the block.
func (r Range) Contains(i int) bool { return i >= r.First && i < r.End() }

// Block returns the rows of a dimension of length total owned by rank in a
// group of size workers.
//
// Rule: blocksize = total/size; rank r starts at r*blocksize; every rank
// owns blocksize indices except the last, which also takes the remainder.
// When size > total, only the last rank owns anything.
//
// Complexity: O(1).
func Block(total, size, rank int) (Range, error) {
	if total < 0 || size <= 0 {
		return Range{}, distErrorf("Block", fmt.Errorf("total=%d size=%d: %w", total, size, ErrRuntime))
	}
	if rank < 0 || rank >= size {
		return Range{}, distErrorf("Block", fmt.Errorf("rank %d of %d: %w", rank, size, ErrRankMismatch))
	}

	blocksize := total / size
	first := rank * blocksize
	height := blocksize
	if rank == size-1 {
		height = total - first
	}

	return Range{First: first, Height: height}, nil
}

// Blocks returns Block(total, size, r) for every rank r, in rank order.
func Blocks(total, size int) ([]Range, error) {
	if total < 0 || size <= 0 {
		return nil, distErrorf("Blocks", fmt.Errorf("total=%d size=%d: %w", total, size, ErrRuntime))
	}
	out := make([]Range, size)
	for r := 0; r < size; r++ {
		out[r], _ = Block(total, size, r) // arguments already validated
	}
	return out, nil
}

// Owner returns the rank that owns global index i under the Block rule.
func Owner(total, size, i int) (int, error) {
	if total < 0 || size <= 0 {
		return 0, distErrorf("Owner", fmt.Errorf("total=%d size=%d: %w", total, size, ErrRuntime))
	}
	if i < 0 || i >= total {
		return 0, distErrorf("Owner", fmt.Errorf("index %d of %d: %w", i, total, ErrRankMismatch))
	}

	blocksize := total / size
	if blocksize == 0 {
		return size - 1, nil
	}
	if r := i / blocksize; r < size {
		return r, nil
	}
	return size - 1, nil
}

// LocalBlock is Block for comm's rank and size.
func LocalBlock(comm Comm, total int) (Range, error) {
	return Block(total, comm.Size(), comm.Rank())
}
