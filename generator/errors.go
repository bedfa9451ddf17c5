// SPDX-License-Identifier: MIT

package generator

import (
	"fmt"

	"github.com/katalvlaran/lpipm/matrix"
)

// ErrInvalidDimension is returned for m <= 0 or n <= 0. It is the matrix
// package sentinel, so errors.Is matches either name.
var ErrInvalidDimension = matrix.ErrInvalidDimension

// Method names used as error prefixes.
const (
	MethodRectang = "Rectang"
	MethodTriples = "Triples"
)

// generatorErrorf prefixes err with the method name and keeps it matchable.
func generatorErrorf(method string, err error) error {
	return fmt.Errorf("generator.%s: %w", method, err)
}
