// SPDX-License-Identifier: MIT

// Package matrix: functional configuration for sparse matrices and vectors.
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//   - No dead switches: each flag impacts behavior and is covered by tests.
//   - Safe by construction: panic only on invalid parameters (programmer error).
//   - Options fields are unexported; public constructors consume ...Option.
package matrix

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultValidateNaNInf rejects NaN/±Inf in QueueUpdate and Vector.Set.
	DefaultValidateNaNInf = true

	// DefaultDropZeros keeps explicit zeros produced by merging duplicates
	// (e.g. +1 and -1 on the same cell) as stored entries.
	DefaultDropZeros = false
)

const panicReserveNegative = "matrix: WithReserve: capacity must be >= 0"

// Option mutates internal options. Safe to apply repeatedly.
type Option func(*Options)

// Options is the resolved configuration. Fields are unexported so that the
// only way to change them is through Option setters.
type Options struct {
	validateNaNInf bool // DefaultValidateNaNInf
	dropZeros      bool // DefaultDropZeros
	reserve        int  // initial queue capacity, >= 0
}

// WithValidateNaNInf enables strict finite-value validation (the default).
func WithValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = true }
}

// WithNoValidateNaNInf disables finite-value validation. Intended for
// controlled experiments only; solvers expect finite data.
func WithNoValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = false }
}

// WithDropZeros removes entries whose merged value is exactly 0 during
// MakeConsistent.
func WithDropZeros() Option {
	return func(o *Options) { o.dropZeros = true }
}

// WithReserve preallocates room for k queued updates, like calling
// Reserve(k) right after construction.
// Panics if k < 0.
func WithReserve(k int) Option {
	if k < 0 {
		panic(panicReserveNegative)
	}
	return func(o *Options) { o.reserve = k }
}

func defaultOptions() Options {
	return Options{
		validateNaNInf: DefaultValidateNaNInf,
		dropZeros:      DefaultDropZeros,
	}
}

// gatherOptions applies user options over the defaults, last one wins.
func gatherOptions(user ...Option) Options {
	o := defaultOptions()
	for _, fn := range user {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
