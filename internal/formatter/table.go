// Package formatter provides tabular and JSON output helpers for aiscope
// commands.
package formatter

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// Table writes columnar output through a tabwriter, emitting the header and
// its dashed separator before the first row.
type Table struct {
	w           *tabwriter.Writer
	cols        []string
	wroteHeader bool
}

// NewTable creates a table writing to w with the given column headers.
func NewTable(w io.Writer, cols ...string) *Table {
	return &Table{
		w:    tabwriter.NewWriter(w, 0, 0, 2, ' ', 0),
		cols: cols,
	}
}

// Row appends one data row. Missing cells are left empty; extra cells are
// dropped.
func (t *Table) Row(cells ...string) {
	if !t.wroteHeader {
		t.wroteHeader = true
		fmt.Fprintln(t.w, strings.Join(t.cols, "\t"))
		seps := make([]string, len(t.cols))
		for i, c := range t.cols {
			seps[i] = strings.Repeat("-", len(c))
		}
		fmt.Fprintln(t.w, strings.Join(seps, "\t"))
	}

	row := make([]string, len(t.cols))
	for i := range row {
		if i < len(cells) {
			row[i] = cells[i]
		}
	}
	fmt.Fprintln(t.w, strings.Join(row, "\t"))
}

// Flush renders all buffered rows. Call once after the last Row.
func (t *Table) Flush() error {
	return t.w.Flush()
}

// Truncate shortens s to max characters, marking the cut with "...".
func Truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}

// JSON writes v as indented JSON followed by a newline.
func JSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
