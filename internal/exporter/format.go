package exporter

import (
	"fmt"
	"strconv"

	"skillpulse/internal/presenter"
)

// formatFloat formats a float64 value with the shortest exact representation
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// formatFixed formats a float64 value with exactly 2 decimal places
func formatFixed(f float64) string {
	return fmt.Sprintf("%.2f", f)
}

// formatInt formats an int64 value for CSV output
func formatInt(i int64) string {
	return strconv.FormatInt(i, 10)
}

// formatCell renders a table cell for CSV output according to its column kind
func formatCell(kind presenter.ColumnKind, cell any) string {
	v, numeric := presenter.Float(cell)
	if !numeric {
		if cell == nil {
			return ""
		}
		return fmt.Sprint(cell)
	}

	switch kind {
	case presenter.KindInteger:
		return formatInt(int64(v))
	case presenter.KindPercent:
		return formatFixed(v)
	}
	return formatFloat(v)
}

// formatRow renders one table row
func formatRow(columns []presenter.Column, row []any) []string {
	record := make([]string, len(row))
	for i, cell := range row {
		record[i] = formatCell(columns[i].Kind, cell)
	}
	return record
}
