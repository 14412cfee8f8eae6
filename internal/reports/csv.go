package reports

import (
	"encoding/csv"
	"fmt"
	"strings"
)

// CSVHandler renders reports as RFC 4180 CSV with a header row.
type CSVHandler struct{}

func NewCSVHandler() *CSVHandler {
	return &CSVHandler{}
}

func (h *CSVHandler) Generate(report Report) (string, error) {
	if err := checkShape(report); err != nil {
		return "", err
	}

	var builder strings.Builder
	writer := csv.NewWriter(&builder)

	if err := writer.Write(report.Columns); err != nil {
		return "", fmt.Errorf("failed to write header: %w", err)
	}
	for _, row := range report.Rows {
		if err := writer.Write(row); err != nil {
			return "", fmt.Errorf("failed to write row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("failed to flush csv: %w", err)
	}
	return builder.String(), nil
}
