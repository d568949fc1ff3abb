package presenter

import (
	"fmt"
)

// ColumnKind tells writers how to format a column's values
type ColumnKind int

const (
	KindText ColumnKind = iota
	KindInteger
	KindPercent
	KindCurrency
)

// Column is a named, typed table column
type Column struct {
	Name string
	Kind ColumnKind
}

// Text returns a text column
func Text(name string) Column { return Column{Name: name, Kind: KindText} }

// Integer returns an integer column
func Integer(name string) Column { return Column{Name: name, Kind: KindInteger} }

// Percent returns a 0-100 percentage column
func Percent(name string) Column { return Column{Name: name, Kind: KindPercent} }

// Currency returns a salary column
func Currency(name string) Column { return Column{Name: name, Kind: KindCurrency} }

// Table is a fully prepared result table. Rows hold string, int or float64
// cells matching the column kinds.
type Table struct {
	Name    string
	Title   string
	Columns []Column
	Rows    [][]any
}

// NewTable creates an empty table
func NewTable(name, title string, columns ...Column) *Table {
	return &Table{Name: name, Title: title, Columns: columns}
}

// AddRow appends one row; it panics when the cell count does not match the columns
func (t *Table) AddRow(cells ...any) {
	if len(cells) != len(t.Columns) {
		panic(fmt.Sprintf("table %s: row has %d cells, want %d", t.Name, len(cells), len(t.Columns)))
	}
	t.Rows = append(t.Rows, cells)
}

// Headers returns the column names
func (t *Table) Headers() []string {
	headers := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		headers[i] = c.Name
	}
	return headers
}

// ColumnIndex returns the position of the named column, or -1
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// Len returns the number of rows
func (t *Table) Len() int {
	return len(t.Rows)
}

// Float returns a numeric cell as float64
func Float(cell any) (float64, bool) {
	switch v := cell.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}
