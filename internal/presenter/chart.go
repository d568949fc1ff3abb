package presenter

import (
	"fmt"

	apperrors "skillpulse/internal/errors"
)

// ChartKind is the chart family
type ChartKind string

const (
	ChartBar     ChartKind = "bar"
	ChartLine    ChartKind = "line"
	ChartBox     ChartKind = "box"
	ChartScatter ChartKind = "scatter"
)

// Box chart value columns, in order
const (
	BoxMin    = "min"
	BoxQ1     = "q1"
	BoxMedian = "median"
	BoxQ3     = "q3"
	BoxMax    = "max"
)

// ChartSpec declares a chart over a Table's columns
type ChartSpec struct {
	Kind  ChartKind
	Title string
	// X is the category column, or the x value column for scatter charts
	X string
	// Y is the value column. Box charts read BoxMin..BoxMax instead.
	Y string
	// Group splits rows: one series per group for line and scatter charts,
	// one chart per group for bar charts
	Group string
	// PercentAxis formats the value axis as 0-100 percent
	PercentAxis bool
	// CurrencyAxis formats the value axis as salary
	CurrencyAxis bool
	// Horizontal draws bars left to right
	Horizontal bool
}

// Validate checks that the spec can be drawn from t
func (s ChartSpec) Validate(t *Table) error {
	var required []string
	switch s.Kind {
	case ChartBar, ChartLine, ChartScatter:
		required = []string{s.X, s.Y}
	case ChartBox:
		required = []string{s.X, BoxMin, BoxQ1, BoxMedian, BoxQ3, BoxMax}
	default:
		return apperrors.NewRenderError(fmt.Sprintf("unknown chart kind %q", s.Kind), nil)
	}
	if s.Group != "" {
		required = append(required, s.Group)
	}

	for _, name := range required {
		if name == "" || t.ColumnIndex(name) < 0 {
			return apperrors.NewRenderError(fmt.Sprintf("chart %q: table %s has no column %q", s.Title, t.Name, name), nil).
				WithContext("table", t.Name)
		}
	}
	return nil
}

// rowGroup is a contiguous run of rows sharing a group value
type rowGroup struct {
	Name  string
	First int
	Last  int
}

// groupRows orders row indexes so equal group values are contiguous, groups in
// first-appearance order and rows stable within a group
func groupRows(t *Table, column string) ([]int, []rowGroup) {
	order := make([]int, 0, len(t.Rows))
	if column == "" {
		for i := range t.Rows {
			order = append(order, i)
		}
		if len(order) == 0 {
			return order, nil
		}
		return order, []rowGroup{{First: 0, Last: len(order) - 1}}
	}

	col := t.ColumnIndex(column)
	var names []string
	members := make(map[string][]int)
	for i, row := range t.Rows {
		name := fmt.Sprint(row[col])
		if _, ok := members[name]; !ok {
			names = append(names, name)
		}
		members[name] = append(members[name], i)
	}

	groups := make([]rowGroup, 0, len(names))
	for _, name := range names {
		first := len(order)
		order = append(order, members[name]...)
		groups = append(groups, rowGroup{Name: name, First: first, Last: len(order) - 1})
	}
	return order, groups
}
