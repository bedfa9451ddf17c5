// SPDX-License-Identifier: MIT

package pipeline

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/katalvlaran/lpipm/lp"
)

// Row is one variant's line of a Report. Err is set for failed variants.
type Row struct {
	Variant   lp.Variant
	Objective float64
	Elapsed   time.Duration
	Residual  float64 // ‖A·x − b‖₂ of the returned x
	Err       error
}

// Report summarizes a run as seen by rank 0.
type Report struct {
	M, N    int
	Workers int
	Seed    int64
	Rows    []Row
}

// Row returns the line for v, if v was run.
func (r *Report) Row(v lp.Variant) (Row, bool) {
	for _, row := range r.Rows {
		if row.Variant == v {
			return row, true
		}
	}
	return Row{}, false
}

// Render writes the report as a table.
func (r *Report) Render(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "instance %d x %d, seed %d, %d worker(s)\n", r.M, r.N, r.Seed, r.Workers); err != nil {
		return err
	}

	rows := make([][]string, 0, len(r.Rows))
	for _, row := range r.Rows {
		if row.Err != nil {
			rows = append(rows, []string{row.Variant.String(), "-", "-", "-", "failed: " + row.Err.Error()})
			continue
		}
		rows = append(rows, []string{
			row.Variant.String(),
			strconv.FormatFloat(row.Objective, 'g', 12, 64),
			row.Elapsed.Round(time.Microsecond).String(),
			strconv.FormatFloat(row.Residual, 'e', 3, 64),
			"ok",
		})
	}

	table := tablewriter.NewWriter(w)
	table.Header("Variant", "Objective", "Time", "Residual", "Status")
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}
