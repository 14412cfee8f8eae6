package reports

import (
	"errors"
	"fmt"
	"time"
)

// ErrMalformedReport indicates a report whose rows do not match its columns.
var ErrMalformedReport = errors.New("malformed report")

// Report is the tabular data shape every handler renders.
type Report struct {
	Title       string
	GeneratedAt time.Time
	Columns     []string
	Rows        [][]string
}

// checkShape verifies every row has exactly one cell per column.
func checkShape(report Report) error {
	if len(report.Columns) == 0 {
		return fmt.Errorf("%w: no columns", ErrMalformedReport)
	}
	for i, row := range report.Rows {
		if len(row) != len(report.Columns) {
			return fmt.Errorf("%w: row %d has %d cells, expected %d",
				ErrMalformedReport, i, len(row), len(report.Columns))
		}
	}
	return nil
}
