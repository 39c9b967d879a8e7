package formatter

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTableRender(t *testing.T) {
	table := NewTable("ID", "Company", "Price")
	table.AddRow("1", "Sony Music", "19.99")
	table.AddRow("2", "EMI", "9.50")

	out := table.Render()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header, separator and 2 rows, got %d lines:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "Company") {
		t.Errorf("header line missing: %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "---") {
		t.Errorf("expected separator line, got %q", lines[1])
	}
	if !strings.Contains(lines[2], "Sony Music") || !strings.Contains(lines[3], "EMI") {
		t.Errorf("unexpected data rows:\n%s", out)
	}

	// The company column must be padded to its widest cell.
	if !strings.Contains(lines[3], "EMI       ") {
		t.Errorf("expected padded cell in %q", lines[3])
	}
}

func TestTableRenderNonASCII(t *testing.T) {
	table := NewTable("Author", "Sold")
	table.AddRow("Dvořák", "3")
	table.AddRow("Chopin", "20")

	out := table.Render()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d:\n%s", len(lines), out)
	}

	// Both names are six letters, so the separator must sit at the same
	// visual position despite the multi-byte runes in the first row.
	columnOf := func(line string) int {
		idx := strings.IndexRune(line, '|')
		if idx < 0 {
			t.Fatalf("missing separator in %q", line)
		}
		return utf8.RuneCountInString(line[:idx])
	}
	if columnOf(lines[2]) != columnOf(lines[3]) {
		t.Errorf("columns misaligned:\n%s", out)
	}
}

func TestTableAddRow(t *testing.T) {
	table := NewTable("A", "B")

	table.AddRow("1")
	table.AddRow("1", "2", "3")
	if table.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", table.Len())
	}

	out := table.Render()
	if strings.Contains(out, "3") {
		t.Errorf("extra cell should be dropped:\n%s", out)
	}
}

func TestTableToCSV(t *testing.T) {
	table := NewTable("ID", "Company")
	table.AddRow("1", "Sony, Music")

	data, err := table.ToCSV()
	if err != nil {
		t.Fatalf("failed to render CSV: %v", err)
	}

	got := string(data)
	if !strings.HasPrefix(got, "ID,Company\n") {
		t.Errorf("unexpected CSV header: %q", got)
	}
	if !strings.Contains(got, `"Sony, Music"`) {
		t.Errorf("comma in cell should be quoted: %q", got)
	}
}

func TestCellHelpers(t *testing.T) {
	if got := Money(199.9); got != "199.90" {
		t.Errorf("Money(199.9) = %q", got)
	}
	if got := Money(0); got != "0.00" {
		t.Errorf("Money(0) = %q", got)
	}
	if got := Int(42); got != "42" {
		t.Errorf("Int(42) = %q", got)
	}
	if got := ID(7); got != "7" {
		t.Errorf("ID(7) = %q", got)
	}
}
