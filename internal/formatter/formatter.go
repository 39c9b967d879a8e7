// package formatter renders report rows as aligned console tables or CSV.
//
// A [Table] is an explicit value built per report call; header printing is
// part of rendering, not shared process state.
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Table is a rectangular report: a header row and data rows.
type Table struct {
	headers []string
	rows    [][]string
}

// NewTable creates a [Table] with the given column headers.
func NewTable(headers ...string) *Table {
	return &Table{headers: headers}
}

// AddRow appends one data row. Missing cells render empty; extra cells are
// dropped.
func (t *Table) AddRow(cells ...string) {
	row := make([]string, len(t.headers))
	copy(row, cells)
	t.rows = append(t.rows, row)
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Render returns the table as aligned text with a header separator line.
// Widths are measured in runes so non-ASCII cells keep the columns aligned.
func (t *Table) Render() string {
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = utf8.RuneCountInString(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if w := utf8.RuneCountInString(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var buf bytes.Buffer
	writeRow := func(cells []string) {
		for i, cell := range cells {
			if i > 0 {
				buf.WriteString(" | ")
			}
			buf.WriteString(cell)
			buf.WriteString(strings.Repeat(" ", widths[i]-utf8.RuneCountInString(cell)))
		}
		buf.WriteString("\n")
	}

	writeRow(t.headers)

	total := 0
	for _, w := range widths {
		total += w + 3
	}
	buf.WriteString(strings.Repeat("-", total))
	buf.WriteString("\n")

	for _, row := range t.rows {
		writeRow(row)
	}

	return buf.String()
}

// ToCSV returns the table as CSV with the header row first.
func (t *Table) ToCSV() ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(t.headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, row := range t.rows {
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// Money formats an amount with two decimals.
func Money(amount float64) string {
	return strconv.FormatFloat(amount, 'f', 2, 64)
}

// Int formats an integer cell.
func Int(n int) string {
	return strconv.Itoa(n)
}

// ID formats an identifier cell.
func ID(id int64) string {
	return strconv.FormatInt(id, 10)
}
