// SPDX-License-Identifier: MIT

package matrix

import (
	"context"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/lpipm/dist"
)

// Vector is a row-distributed column vector (a multivector of width 1).
// Each worker owns the block dist.Block(Len(), size, rank) of entries.
type Vector struct {
	n              int
	local          dist.Range
	comm           dist.Comm
	data           []float64
	validateNaNInf bool
}

// NewVector returns a zero vector of global length n owned by one worker.
func NewVector(n int, opts ...Option) (*Vector, error) {
	return NewDistVector(dist.NewLocal(), n, opts...)
}

// NewDistVector returns a zero vector of global length n distributed over comm.
func NewDistVector(comm dist.Comm, n int, opts ...Option) (*Vector, error) {
	if comm == nil {
		return nil, matrixErrorf("NewDistVector", ErrNilMatrix)
	}
	if n <= 0 {
		return nil, matrixErrorf("NewDistVector", ErrInvalidDimension)
	}
	local, err := dist.LocalBlock(comm, n)
	if err != nil {
		return nil, matrixErrorf("NewDistVector", err)
	}
	o := gatherOptions(opts...)

	return &Vector{
		n:              n,
		local:          local,
		comm:           comm,
		data:           make([]float64, local.Height),
		validateNaNInf: o.validateNaNInf,
	}, nil
}

// Len returns the global length.
func (v *Vector) Len() int { return v.n }

// LocalRange returns the owned block.
func (v *Vector) LocalRange() dist.Range { return v.local }

// Comm returns the distributed context.
func (v *Vector) Comm() dist.Comm { return v.comm }

// Local exposes the owned entries. Writes through the returned slice modify
// the vector; solvers use it to overwrite their outputs in place.
func (v *Vector) Local() []float64 { return v.data }

// At returns entry i (global index, must be local).
func (v *Vector) At(i int) (float64, error) {
	if i < 0 || i >= v.n {
		return 0, vectorErrorf("At", i, ErrOutOfRange)
	}
	if !v.local.Contains(i) {
		return 0, vectorErrorf("At", i, ErrNonLocalRow)
	}
	return v.data[i-v.local.First], nil
}

// Set assigns entry i (global index, must be local).
func (v *Vector) Set(i int, x float64) error {
	if i < 0 || i >= v.n {
		return vectorErrorf("Set", i, ErrOutOfRange)
	}
	if !v.local.Contains(i) {
		return vectorErrorf("Set", i, ErrNonLocalRow)
	}
	if v.validateNaNInf && isNonFinite(x) {
		return vectorErrorf("Set", i, ErrNaNInf)
	}
	v.data[i-v.local.First] = x
	return nil
}

// Clone returns a deep copy on the same comm.
func (v *Vector) Clone() *Vector {
	out := *v
	out.data = make([]float64, len(v.data))
	copy(out.data, v.data)
	return &out
}

// CopyFrom overwrites v with src. Shapes and distributions must match.
func (v *Vector) CopyFrom(src *Vector) error {
	if src == nil {
		return matrixErrorf("Vector.CopyFrom", ErrNilMatrix)
	}
	if src.n != v.n || src.local != v.local {
		return matrixErrorf("Vector.CopyFrom", ErrDimensionMismatch)
	}
	copy(v.data, src.data)
	return nil
}

// Zero sets every owned entry to 0.
func (v *Vector) Zero() {
	for i := range v.data {
		v.data[i] = 0
	}
}

// FillUniform draws Len() samples from the open interval
// (center-radius, center+radius) in global index order and keeps the owned
// block. Every worker must pass an identically seeded src, which makes the
// result independent of the number of workers.
//
// Panics if radius is negative or not finite (programmer error).
func (v *Vector) FillUniform(src *rand.Rand, center, radius float64) {
	if radius < 0 || isNonFinite(radius) || isNonFinite(center) {
		panic("matrix: FillUniform: center/radius must be finite, radius >= 0")
	}
	for i := 0; i < v.n; i++ {
		u := src.Float64()
		for u == 0 { // [0,1) -> (0,1): the boundary is never produced
			u = src.Float64()
		}
		if v.local.Contains(i) {
			v.data[i-v.local.First] = center + radius*(2*u-1)
		}
	}
}

// Scatter sets the owned block from a full-length slice.
func (v *Vector) Scatter(global []float64) error {
	if err := ValidateVecLen(global, v.n); err != nil {
		return matrixErrorf("Vector.Scatter", err)
	}
	copy(v.data, global[v.local.First:v.local.End()])
	return nil
}

// Gather returns the full vector on every worker. Collective.
func (v *Vector) Gather(ctx context.Context) ([]float64, error) {
	out, err := v.comm.AllGather(ctx, v.data)
	if err != nil {
		return nil, matrixErrorf("Vector.Gather", err)
	}
	return out, nil
}

// ToVecDense gathers v into a gonum vector. Collective.
func (v *Vector) ToVecDense(ctx context.Context) (*mat.VecDense, error) {
	full, err := v.Gather(ctx)
	if err != nil {
		return nil, err
	}
	return mat.NewVecDense(v.n, full), nil
}

// Nrm2 returns the Euclidean norm of v. Collective.
func (v *Vector) Nrm2(ctx context.Context) (float64, error) {
	sq := floats.Dot(v.data, v.data)
	total, err := v.comm.AllReduceSum(ctx, sq)
	if err != nil {
		return 0, matrixErrorf("Vector.Nrm2", err)
	}
	return math.Sqrt(total), nil
}

// Dot returns aᵀb. Collective; both vectors must share shape and distribution.
func Dot(ctx context.Context, a, b *Vector) (float64, error) {
	if a == nil || b == nil {
		return 0, matrixErrorf("Dot", ErrNilMatrix)
	}
	if a.n != b.n || a.local != b.local {
		return 0, matrixErrorf("Dot", ErrDimensionMismatch)
	}
	partial := floats.Dot(a.data, b.data)
	total, err := a.comm.AllReduceSum(ctx, partial)
	if err != nil {
		return 0, matrixErrorf("Dot", err)
	}
	return total, nil
}

// Axpy computes y += alpha*x on the owned blocks. Not collective.
func Axpy(alpha float64, x, y *Vector) error {
	if x == nil || y == nil {
		return matrixErrorf("Axpy", ErrNilMatrix)
	}
	if x.n != y.n || x.local != y.local {
		return matrixErrorf("Axpy", ErrDimensionMismatch)
	}
	floats.AddScaled(y.data, alpha, x.data)
	return nil
}
