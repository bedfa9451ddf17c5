// Package matrix_test contains unit tests for the Sparse implementation.
package matrix_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lpipm/dist"
	"github.com/katalvlaran/lpipm/matrix"
)

// TestNewSparseInvalidDimensions ensures non-positive shapes are rejected.
func TestNewSparseInvalidDimensions(t *testing.T) {
	_, err := matrix.NewSparse(0, 5)
	require.ErrorIs(t, err, matrix.ErrInvalidDimension)

	_, err = matrix.NewSparse(5, -1)
	require.ErrorIs(t, err, matrix.ErrInvalidDimension)

	_, err = matrix.NewDistSparse(nil, 2, 2)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

// TestQueueUpdateAccumulates checks that duplicate keys are summed, not overwritten.
func TestQueueUpdateAccumulates(t *testing.T) {
	ctx := context.Background()
	s, err := matrix.NewSparse(2, 3)
	require.NoError(t, err)
	require.NoError(t, s.Reserve(4))

	require.NoError(t, s.QueueUpdate(1, 2, 1.5))
	require.NoError(t, s.QueueUpdate(0, 0, 4))
	require.NoError(t, s.QueueUpdate(1, 2, 2.0)) // same cell again
	require.NoError(t, s.QueueLocalUpdate(1, 0, -1))
	require.NoError(t, s.MakeConsistent(ctx))

	v, err := s.At(1, 2)
	require.NoError(t, err)
	require.Equal(t, 3.5, v) // additive merge

	v, err = s.At(0, 1)
	require.NoError(t, err)
	require.Zero(t, v) // structural zero

	require.Equal(t, 3, s.LocalNNZ())
	nnz, err := s.NNZ(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, nnz)

	cols, vals, err := s.Row(1)
	require.NoError(t, err)
	require.Equal(t, []int{0, 2}, cols) // ascending columns
	require.Equal(t, []float64{-1, 3.5}, vals)
}

// TestLifecycleErrors checks the consistent/finalized guards.
func TestLifecycleErrors(t *testing.T) {
	ctx := context.Background()
	s, err := matrix.NewSparse(2, 2)
	require.NoError(t, err)

	_, err = s.At(0, 0)
	require.ErrorIs(t, err, matrix.ErrNotConsistent)
	require.ErrorIs(t, s.Triplets(func(int, int, float64) error { return nil }), matrix.ErrNotConsistent)

	require.ErrorIs(t, s.QueueUpdate(2, 0, 1), matrix.ErrOutOfRange)
	require.ErrorIs(t, s.QueueUpdate(0, -1, 1), matrix.ErrOutOfRange)
	require.ErrorIs(t, s.QueueUpdate(0, 0, math.NaN()), matrix.ErrNaNInf)
	require.ErrorIs(t, s.QueueLocalUpdate(5, 0, 1), matrix.ErrNonLocalRow)

	require.NoError(t, s.MakeConsistent(ctx))
	require.True(t, s.Consistent())
	require.ErrorIs(t, s.QueueUpdate(0, 0, 1), matrix.ErrFinalized)
	require.ErrorIs(t, s.Reserve(1), matrix.ErrFinalized)
}

// TestNoValidateNaNInf checks the numeric policy switch.
func TestNoValidateNaNInf(t *testing.T) {
	s, err := matrix.NewSparse(1, 1, matrix.WithNoValidateNaNInf())
	require.NoError(t, err)
	require.NoError(t, s.QueueUpdate(0, 0, math.Inf(1)))
}

// TestDropZeros removes cancelled entries only when asked.
func TestDropZeros(t *testing.T) {
	ctx := context.Background()
	for _, tc := range []struct {
		name string
		opts []matrix.Option
		want int
	}{
		{name: "keep", want: 2},
		{name: "drop", opts: []matrix.Option{matrix.WithDropZeros()}, want: 1},
	} {
		t.Run(tc.name, func(t *testing.T) {
			s, err := matrix.NewSparse(1, 2, tc.opts...)
			require.NoError(t, err)
			require.NoError(t, s.QueueUpdate(0, 0, 1))
			require.NoError(t, s.QueueUpdate(0, 0, -1))
			require.NoError(t, s.QueueUpdate(0, 1, 7))
			require.NoError(t, s.MakeConsistent(ctx))
			require.Equal(t, tc.want, s.LocalNNZ())
		})
	}
}

func TestWithReservePanicsOnNegative(t *testing.T) {
	require.Panics(t, func() { matrix.WithReserve(-1) })
}

// TestTripletsStopsOnError ensures iteration returns the callback error.
func TestTripletsStopsOnError(t *testing.T) {
	s, err := matrix.NewSparse(2, 2)
	require.NoError(t, err)
	require.NoError(t, s.QueueUpdate(0, 0, 1))
	require.NoError(t, s.QueueUpdate(1, 1, 1))
	require.NoError(t, s.MakeConsistent(context.Background()))

	stop := errors.New("stop")
	calls := 0
	err = s.Triplets(func(int, int, float64) error {
		calls++
		return stop
	})
	require.ErrorIs(t, err, stop)
	require.Equal(t, 1, calls)
}

// TestDistSparse_NonLocalRows builds a 5-row matrix on 2 workers and checks
// that each worker only accepts and answers for its own rows.
func TestDistSparse_NonLocalRows(t *testing.T) {
	err := dist.Run(context.Background(), 2, func(ctx context.Context, comm dist.Comm) error {
		s, err := matrix.NewDistSparse(comm, 5, 5)
		if err != nil {
			return err
		}
		for i := s.FirstLocalRow(); i < s.FirstLocalRow()+s.LocalHeight(); i++ {
			if err := s.QueueUpdate(i, i, float64(i+1)); err != nil {
				return err
			}
		}
		foreign := 0
		if comm.Rank() == 0 {
			foreign = 4
		}
		if err := s.QueueUpdate(foreign, 0, 1); !errors.Is(err, matrix.ErrNonLocalRow) {
			return errors.New("foreign row accepted")
		}
		if err := s.MakeConsistent(ctx); err != nil {
			return err
		}
		nnz, err := s.NNZ(ctx)
		if err != nil {
			return err
		}
		if nnz != 5 {
			return errors.New("global nnz mismatch")
		}
		d, err := s.ToDense(ctx)
		if err != nil {
			return err
		}
		for i := 0; i < 5; i++ {
			if d.At(i, i) != float64(i+1) {
				return errors.New("gathered dense matrix mismatch")
			}
		}
		return nil
	})
	require.NoError(t, err)
}
