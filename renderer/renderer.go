// Package renderer builds markdown reports from portfolio and advisory
// data. Rendering to a terminal is the caller's concern.
package renderer

import (
	"fmt"
	"strings"
)

// table writes a markdown table with right-aligned numeric columns.
type table struct {
	header []string
	align  []string // ":--" or "--:"
	rows   [][]string
}

func newTable(header ...string) *table {
	align := make([]string, len(header))
	for i := range align {
		align[i] = ":--"
	}
	return &table{header: header, align: align}
}

// alignRight marks the given columns as numeric.
func (t *table) alignRight(cols ...int) *table {
	for _, c := range cols {
		t.align[c] = "--:"
	}
	return t
}

func (t *table) row(cells ...string) *table {
	t.rows = append(t.rows, cells)
	return t
}

func (t *table) writeTo(b *strings.Builder) {
	fmt.Fprintf(b, "| %s |\n", strings.Join(t.header, " | "))
	fmt.Fprintf(b, "| %s |\n", strings.Join(t.align, " | "))
	for _, row := range t.rows {
		fmt.Fprintf(b, "| %s |\n", strings.Join(row, " | "))
	}
}
