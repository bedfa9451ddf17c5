// SPDX-License-Identifier: MIT

package generator

import (
	"math"

	"github.com/katalvlaran/lpipm/matrix"
)

// Stencil holds the coefficients of the six generation rules. The dense
// column addend is DenseCol/m.
type Stencil struct {
	Diag     float64 // (s, s)
	Left     float64 // (s, s-1)
	Right    float64 // (s, s+1)
	Down     float64 // (s, s-m)
	Up       float64 // (s, s+m)
	DenseCol float64 // (s, n-1), divided by m
}

// DefaultStencil returns the reference coefficients 11, 1, 2, 3, 4, 5.
func DefaultStencil() Stencil {
	return Stencil{
		Diag:     defaultDiag,
		Left:     defaultLeft,
		Right:    defaultRight,
		Down:     defaultDown,
		Up:       defaultUp,
		DenseCol: defaultDenseCol,
	}
}

const (
	defaultDiag     = 11.0
	defaultLeft     = 1.0
	defaultRight    = 2.0
	defaultDown     = 3.0
	defaultUp       = 4.0
	defaultDenseCol = 5.0

	// nnzPerRow is the reservation hint per local row.
	nnzPerRow = 5
)

const panicStencilNonFinite = "generator: WithStencil: coefficients must be finite"

// Option customizes Rectang.
type Option func(*config)

type config struct {
	stencil    Stencil
	matrixOpts []matrix.Option
}

func newConfig(opts ...Option) config {
	cfg := config{stencil: DefaultStencil()}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithStencil replaces the default coefficients.
// Panics if any coefficient is NaN or ±Inf.
func WithStencil(s Stencil) Option {
	for _, c := range []float64{s.Diag, s.Left, s.Right, s.Down, s.Up, s.DenseCol} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			panic(panicStencilNonFinite)
		}
	}
	return func(c *config) { c.stencil = s }
}

// WithMatrixOptions forwards options to the underlying matrix.NewDistSparse.
func WithMatrixOptions(opts ...matrix.Option) Option {
	return func(c *config) { c.matrixOpts = append(c.matrixOpts, opts...) }
}
