package reports

import (
	"fmt"
	"strings"
)

// MarkdownHandler renders reports as markdown documents with YAML frontmatter.
type MarkdownHandler struct{}

func NewMarkdownHandler() *MarkdownHandler {
	return &MarkdownHandler{}
}

func (h *MarkdownHandler) Generate(report Report) (string, error) {
	if err := checkShape(report); err != nil {
		return "", err
	}

	var builder strings.Builder

	fmt.Fprintf(&builder, "---\n")
	fmt.Fprintf(&builder, "content_type: report\n")
	fmt.Fprintf(&builder, "created_at: %s\n", report.GeneratedAt.Format("2006-01-02"))
	fmt.Fprintf(&builder, "title: \"%s\"\n", escapeYAMLString(report.Title))
	fmt.Fprintf(&builder, "---\n\n")
	fmt.Fprintf(&builder, "## %s\n\n", report.Title)

	fmt.Fprintf(&builder, "| %s |\n", strings.Join(report.Columns, " | "))
	separators := make([]string, len(report.Columns))
	for i := range separators {
		separators[i] = "---"
	}
	fmt.Fprintf(&builder, "| %s |\n", strings.Join(separators, " | "))

	for _, row := range report.Rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			// Pipes would break table cells
			cells[i] = strings.ReplaceAll(cell, "|", "\\|")
		}
		fmt.Fprintf(&builder, "| %s |\n", strings.Join(cells, " | "))
	}

	return builder.String(), nil
}

// escapeYAMLString makes a value safe inside a double-quoted YAML scalar.
// Backslashes must go first, otherwise a title ending in one would escape
// the closing quote.
func escapeYAMLString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}
