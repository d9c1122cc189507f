// Package table models the small tables scenarios print and LLM answers carry.
package table

import (
	"strconv"
	"strings"
)

// Table is a header row plus string cells.
type Table struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// New creates a table with the given headers.
func New(headers ...string) *Table {
	return &Table{Headers: headers}
}

// Append adds a row. Short rows are padded; long rows are kept as-is so no
// data is silently dropped.
func (t *Table) Append(cells ...string) {
	row := make([]string, max(len(cells), len(t.Headers)))
	copy(row, cells)
	t.Rows = append(t.Rows, row)
}

// Markdown renders a GitHub-style pipe table.
func (t *Table) Markdown() string {
	var b strings.Builder
	writeRow(&b, t.Headers)
	sep := make([]string, len(t.Headers))
	for i := range sep {
		sep[i] = "---"
	}
	writeRow(&b, sep)
	for _, r := range t.Rows {
		writeRow(&b, r)
	}
	return b.String()
}

func writeRow(b *strings.Builder, cells []string) {
	b.WriteString("|")
	for _, c := range cells {
		b.WriteString(" ")
		b.WriteString(strings.ReplaceAll(c, "|", `\|`))
		b.WriteString(" |")
	}
	b.WriteString("\n")
}

// FormatFloat formats v with two decimals, the precision the reports use.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
