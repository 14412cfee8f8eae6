package reports

import (
	"encoding/json"
	"fmt"
	"time"
)

// JSONHandler renders reports as indented JSON with one object per row,
// keyed by column name.
type JSONHandler struct{}

func NewJSONHandler() *JSONHandler {
	return &JSONHandler{}
}

type jsonReport struct {
	Title       string              `json:"title"`
	GeneratedAt time.Time           `json:"generated_at"`
	Rows        []map[string]string `json:"rows"`
}

func (h *JSONHandler) Generate(report Report) (string, error) {
	if err := checkShape(report); err != nil {
		return "", err
	}

	rows := make([]map[string]string, 0, len(report.Rows))
	for _, row := range report.Rows {
		record := make(map[string]string, len(report.Columns))
		for i, column := range report.Columns {
			record[column] = row[i]
		}
		rows = append(rows, record)
	}

	out, err := json.MarshalIndent(jsonReport{
		Title:       report.Title,
		GeneratedAt: report.GeneratedAt,
		Rows:        rows,
	}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal report: %w", err)
	}
	return string(out), nil
}
