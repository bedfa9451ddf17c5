// SPDX-License-Identifier: MIT

package lp

import (
	"fmt"
	"strings"
)

// Variant selects the interior-point algorithm requested from the solver.
type Variant int

const (
	// Mehrotra is the predictor-corrector method.
	Mehrotra Variant = iota
	// IPF is the infeasible path-following method.
	IPF
)

// Variants lists every variant in the order a run executes them.
var Variants = []Variant{Mehrotra, IPF}

func (v Variant) String() string {
	switch v {
	case Mehrotra:
		return "Mehrotra"
	case IPF:
		return "IPF"
	default:
		return fmt.Sprintf("Variant(%d)", int(v))
	}
}

// ParseVariant accepts the String form case-insensitively.
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mehrotra":
		return Mehrotra, nil
	case "ipf":
		return IPF, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownVariant, s)
}
