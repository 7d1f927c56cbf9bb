// Package table renders simple ASCII tables for terminal display.
package table

import (
	"fmt"
	"io"
	"regexp"
	"strings"
)

// Alignment controls how cell content is positioned within a column.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
	AlignCenter
)

var ansiPattern = regexp.MustCompile("\x1b\\[[0-9;]*m")

// displayWidth returns the visible width of a string, ignoring ANSI
// color codes.
func displayWidth(s string) int {
	return len(ansiPattern.ReplaceAllString(s, ""))
}

// Table accumulates rows and renders them with box-drawing borders.
type Table struct {
	w               io.Writer
	header          []string
	rows            [][]string
	columnAlignment []Alignment
	headerAlignment []Alignment
}

// NewTable creates a table that renders to the given writer.
func NewTable(w io.Writer) *Table {
	return &Table{w: w}
}

// WithHeader sets the header row.
func (t *Table) WithHeader(header []string) *Table {
	t.header = header
	return t
}

// WithColumnAlignment sets the per-column alignment for body rows.
func (t *Table) WithColumnAlignment(alignments []Alignment) *Table {
	t.columnAlignment = alignments
	return t
}

// WithHeaderAlignment sets the per-column alignment for the header row.
func (t *Table) WithHeaderAlignment(alignments []Alignment) *Table {
	t.headerAlignment = alignments
	return t
}

// Append adds a body row.
func (t *Table) Append(row []string) *Table {
	t.rows = append(t.rows, row)
	return t
}

func (t *Table) columnCount() int {
	count := len(t.header)
	for _, row := range t.rows {
		if len(row) > count {
			count = len(row)
		}
	}
	return count
}

func (t *Table) columnWidths() []int {
	widths := make([]int, t.columnCount())
	for i, cell := range t.header {
		if w := displayWidth(cell); w > widths[i] {
			widths[i] = w
		}
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if w := displayWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

func pad(cell string, width int, alignment Alignment) string {
	gap := width - displayWidth(cell)
	if gap <= 0 {
		return cell
	}
	switch alignment {
	case AlignRight:
		return strings.Repeat(" ", gap) + cell
	case AlignCenter:
		left := gap / 2
		return strings.Repeat(" ", left) + cell + strings.Repeat(" ", gap-left)
	default:
		return cell + strings.Repeat(" ", gap)
	}
}

func (t *Table) alignmentFor(alignments []Alignment, col int) Alignment {
	if col < len(alignments) {
		return alignments[col]
	}
	return AlignLeft
}

func (t *Table) writeSeparator(widths []int) {
	for _, width := range widths {
		fmt.Fprintf(t.w, "+%s", strings.Repeat("-", width+2))
	}
	fmt.Fprintln(t.w, "+")
}

func (t *Table) writeRow(row []string, widths []int, alignments []Alignment) {
	for i, width := range widths {
		cell := ""
		if i < len(row) {
			cell = row[i]
		}
		fmt.Fprintf(t.w, "| %s ", pad(cell, width, t.alignmentFor(alignments, i)))
	}
	fmt.Fprintln(t.w, "|")
}

// Render writes the table to the writer.
func (t *Table) Render() {
	widths := t.columnWidths()
	if len(widths) == 0 {
		return
	}
	t.writeSeparator(widths)
	if len(t.header) > 0 {
		t.writeRow(t.header, widths, t.headerAlignment)
		t.writeSeparator(widths)
	}
	for _, row := range t.rows {
		t.writeRow(row, widths, t.columnAlignment)
	}
	t.writeSeparator(widths)
}
