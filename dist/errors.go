// SPDX-License-Identifier: MIT

package dist

import (
	"errors"
	"fmt"
)

var (
	// ErrRuntime marks a failure of the distributed runtime itself
	// (bad world size, init/finalize failure).
	ErrRuntime = errors.New("dist: distributed runtime error")

	// ErrRankMismatch indicates that workers entered different collectives
	// in the same round, or that a rank is outside [0, size).
	ErrRankMismatch = errors.New("dist: rank/collective mismatch")

	// ErrAborted is returned from a blocked collective after another worker
	// of the same world failed.
	ErrAborted = errors.New("dist: world aborted")

	// ErrFinalized is returned by collectives issued after Finalize.
	ErrFinalized = errors.New("dist: comm already finalized")
)

// distErrorf tags err with the operation that observed it.
func distErrorf(op string, err error) error {
	return fmt.Errorf("dist.%s: %w", op, err)
}
