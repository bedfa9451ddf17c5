// Package generator_test validates the stencil generator: shape errors,
// per-row structure, additive merging and worker-count independence.
package generator_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/katalvlaran/lpipm/dist"
	"github.com/katalvlaran/lpipm/generator"
	"github.com/katalvlaran/lpipm/matrix"
)

func TestRectang_InvalidDimension(t *testing.T) {
	ctx := context.Background()
	for _, tc := range []struct{ m, n int }{{0, 4}, {4, 0}, {-1, 3}} {
		_, err := generator.Rectang(ctx, dist.NewLocal(), tc.m, tc.n)
		require.ErrorIs(t, err, generator.ErrInvalidDimension, "m=%d n=%d", tc.m, tc.n)
		require.ErrorIs(t, err, matrix.ErrInvalidDimension)
	}
}

// TestRectang_SmallLayout pins every entry of the 3×6 instance.
func TestRectang_SmallLayout(t *testing.T) {
	a, err := generator.Rectang(context.Background(), dist.NewLocal(), 3, 6)
	require.NoError(t, err)

	d, err := a.ToDense(context.Background())
	require.NoError(t, err)

	dc := 5.0 / 3.0
	want := [][]float64{
		{11, 2, 0, 4, 0, dc},
		{1, 11, 2, 0, 4, dc},
		{0, 1, 11, 2, 0, 4 + dc}, // s+m == n-1: up rule and dense column share a cell
	}
	for i := range want {
		for j := range want[i] {
			require.Equal(t, want[i][j], d.At(i, j), "A[%d][%d]", i, j)
		}
	}
}

// TestRectang_DiagonalMeetsDenseColumn covers the square case where row n-1
// receives both the diagonal and the dense-column addend in the same cell.
func TestRectang_DiagonalMeetsDenseColumn(t *testing.T) {
	for _, m := range []int{3, 5} {
		t.Run(fmt.Sprintf("m=n=%d", m), func(t *testing.T) {
			a, err := generator.Rectang(context.Background(), dist.NewLocal(), m, m)
			require.NoError(t, err)

			dense := 5.0 / float64(m)
			got, err := a.At(m-1, m-1)
			require.NoError(t, err)
			require.Equal(t, 11+dense, got)

			cols, _, err := a.Row(m - 1)
			require.NoError(t, err)
			require.Equal(t, []int{m - 2, m - 1}, cols) // left neighbor + merged cell
		})
	}
}

// TestRectang_RowInvariants checks, for random 0 < m <= n and worker counts,
// that every row has at most 5 stored entries, a nonzero dense last column,
// and a diagonal of exactly 11 except where it merges with the dense column.
func TestRectang_RowInvariants(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 60).Draw(t, "n")
		m := rapid.IntRange(1, n).Draw(t, "m")
		workers := rapid.IntRange(1, 4).Draw(t, "workers")

		err := dist.Run(context.Background(), workers, func(ctx context.Context, comm dist.Comm) error {
			a, err := generator.Rectang(ctx, comm, m, n)
			if err != nil {
				return err
			}
			for s := a.FirstLocalRow(); s < a.FirstLocalRow()+a.LocalHeight(); s++ {
				cols, _, err := a.Row(s)
				if err != nil {
					return err
				}
				if len(cols) > 5 {
					return fmt.Errorf("row %d has %d entries", s, len(cols))
				}
				last, _ := a.At(s, n-1)
				if last == 0 {
					return fmt.Errorf("row %d: dense column is zero", s)
				}
				diag, _ := a.At(s, s)
				want := 11.0
				if s == n-1 {
					want += 5.0 / float64(m)
				}
				if diag != want {
					return fmt.Errorf("row %d: diag=%v want %v", s, diag, want)
				}
			}
			return nil
		})
		require.NoError(t, err)
	})
}

// TestRectang_IndependentOfWorkers compares the gathered matrix of several
// worker counts with the single-worker matrix.
func TestRectang_IndependentOfWorkers(t *testing.T) {
	const m, n = 7, 12
	ref, err := generator.Rectang(context.Background(), dist.NewLocal(), m, n)
	require.NoError(t, err)
	refDense, err := ref.ToDense(context.Background())
	require.NoError(t, err)

	for _, workers := range []int{2, 3, 7, 9} {
		err := dist.Run(context.Background(), workers, func(ctx context.Context, comm dist.Comm) error {
			a, err := generator.Rectang(ctx, comm, m, n)
			if err != nil {
				return err
			}
			d, err := a.ToDense(ctx)
			if err != nil {
				return err
			}
			for i := 0; i < m; i++ {
				for j := 0; j < n; j++ {
					if d.At(i, j) != refDense.At(i, j) {
						return errors.New("distributed matrix differs from reference")
					}
				}
			}
			return nil
		})
		require.NoError(t, err, "workers=%d", workers)
	}
}

func TestRectang_CustomStencil(t *testing.T) {
	st := generator.DefaultStencil()
	st.Diag = 1
	a, err := generator.Rectang(context.Background(), dist.NewLocal(), 2, 4, generator.WithStencil(st))
	require.NoError(t, err)
	v, err := a.At(0, 0)
	require.NoError(t, err)
	require.Equal(t, 1.0, v)
}

func TestWithStencil_PanicsOnNaN(t *testing.T) {
	st := generator.DefaultStencil()
	st.Up = st.Up / 0 * 0 // NaN
	require.Panics(t, func() { generator.WithStencil(st) })
}

func TestTriples_BlockOutsideRows(t *testing.T) {
	_, err := generator.Triples(3, 5, dist.Range{First: 2, Height: 2}, generator.DefaultStencil())
	require.ErrorIs(t, err, dist.ErrRankMismatch)

	tr, err := generator.Triples(3, 5, dist.Range{First: 0, Height: 0}, generator.DefaultStencil())
	require.NoError(t, err)
	require.Empty(t, tr)
}

// TestTriples_TallMatrixSkipsOutOfRangeColumns: with m > n the generator
// skips columns outside [0,n) instead of failing.
func TestTriples_TallMatrixSkipsOutOfRangeColumns(t *testing.T) {
	tr, err := generator.Triples(4, 2, dist.Range{First: 0, Height: 4}, generator.DefaultStencil())
	require.NoError(t, err)
	for _, x := range tr {
		require.GreaterOrEqual(t, x.Col, 0)
		require.Less(t, x.Col, 2)
	}
}

// TestRectang_ForwardsMatrixOptions: with a zero left coefficient the
// explicit zeros are stored unless the drop-zeros matrix option is passed.
func TestRectang_ForwardsMatrixOptions(t *testing.T) {
	st := generator.DefaultStencil()
	st.Left = 0
	ctx := context.Background()

	kept, err := generator.Rectang(ctx, dist.NewLocal(), 3, 6, generator.WithStencil(st))
	require.NoError(t, err)
	dropped, err := generator.Rectang(ctx, dist.NewLocal(), 3, 6,
		generator.WithStencil(st), generator.WithMatrixOptions(matrix.WithDropZeros()))
	require.NoError(t, err)

	// rows 1 and 2 each carry one left-neighbor entry
	require.Equal(t, kept.LocalNNZ()-2, dropped.LocalNNZ())
	cols, _, err := dropped.Row(1)
	require.NoError(t, err)
	require.NotContains(t, cols, 0)
}
