package matrix_test

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lpipm/dist"
	"github.com/katalvlaran/lpipm/matrix"
)

func TestVector_SetAtCloneCopy(t *testing.T) {
	v, err := matrix.NewVector(3)
	require.NoError(t, err)
	require.NoError(t, v.Set(1, 2.5))

	got, err := v.At(1)
	require.NoError(t, err)
	require.Equal(t, 2.5, got)

	_, err = v.At(3)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
	require.EqualError(t, err, "Vector.At(3): "+matrix.ErrOutOfRange.Error())
	err = v.Set(0, math.NaN())
	require.ErrorIs(t, err, matrix.ErrNaNInf)
	require.EqualError(t, err, "Vector.Set(0): "+matrix.ErrNaNInf.Error())

	c := v.Clone()
	require.NoError(t, c.Set(1, -1))
	got, _ = v.At(1)
	require.Equal(t, 2.5, got, "Clone must not alias")

	require.NoError(t, v.CopyFrom(c))
	got, _ = v.At(1)
	require.Equal(t, -1.0, got)

	w, err := matrix.NewVector(4)
	require.NoError(t, err)
	require.ErrorIs(t, v.CopyFrom(w), matrix.ErrDimensionMismatch)

	_, err = matrix.NewVector(0)
	require.ErrorIs(t, err, matrix.ErrInvalidDimension)
}

// TestVector_FillUniformOpenInterval draws many samples and checks they never
// reach the interval boundary.
func TestVector_FillUniformOpenInterval(t *testing.T) {
	v, err := matrix.NewVector(20000)
	require.NoError(t, err)
	v.FillUniform(rand.New(rand.NewSource(7)), 0.5, 0.4999)
	for _, x := range v.Local() {
		require.Greater(t, x, 0.0001)
		require.Less(t, x, 0.9999)
	}
}

func TestVector_FillUniformPanicsOnBadRadius(t *testing.T) {
	v, err := matrix.NewVector(1)
	require.NoError(t, err)
	require.Panics(t, func() { v.FillUniform(rand.New(rand.NewSource(1)), 0.5, -1) })
}

func TestVector_DotNrm2Axpy(t *testing.T) {
	ctx := context.Background()
	a, _ := matrix.NewVector(3)
	b, _ := matrix.NewVector(3)
	require.NoError(t, a.Scatter([]float64{1, 2, 3}))
	require.NoError(t, b.Scatter([]float64{4, 5, 6}))

	d, err := matrix.Dot(ctx, a, b)
	require.NoError(t, err)
	require.Equal(t, 32.0, d)

	n, err := a.Nrm2(ctx)
	require.NoError(t, err)
	require.InDelta(t, math.Sqrt(14), n, 1e-15)

	require.NoError(t, matrix.Axpy(2, a, b))
	require.Equal(t, []float64{6, 9, 12}, b.Local())

	short, _ := matrix.NewVector(2)
	_, err = matrix.Dot(ctx, a, short)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	require.ErrorIs(t, a.Scatter([]float64{1}), matrix.ErrDimensionMismatch)
}

// TestVector_FillUniformIndependentOfWorkers gathers a distributed fill and
// compares it with the single-worker fill from the same seed.
func TestVector_FillUniformIndependentOfWorkers(t *testing.T) {
	const n = 37
	ref, _ := matrix.NewVector(n)
	ref.FillUniform(rand.New(rand.NewSource(99)), 0.5, 0.4999)

	for _, workers := range []int{2, 3, 5} {
		gathered := make([][]float64, workers)
		err := dist.Run(context.Background(), workers, func(ctx context.Context, comm dist.Comm) error {
			v, err := matrix.NewDistVector(comm, n)
			if err != nil {
				return err
			}
			v.FillUniform(rand.New(rand.NewSource(99)), 0.5, 0.4999)
			full, err := v.Gather(ctx)
			gathered[comm.Rank()] = full
			return err
		})
		require.NoError(t, err)
		for r := range gathered {
			if diff := cmp.Diff(ref.Local(), gathered[r], cmpopts.EquateEmpty()); diff != "" {
				t.Fatalf("workers=%d rank=%d (-want +got):\n%s", workers, r, diff)
			}
		}
	}
}
