package presenter

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	apperrors "skillpulse/internal/errors"
	"skillpulse/internal/infrastructure"
)

const (
	overviewSheet = "overview"
	chartWidth    = 720
	chartHeight   = 400
	// rows between stacked charts on one sheet
	chartRowStride = 22

	percentNumFmt  = `0.0"%"`
	currencyNumFmt = `"$"#,##0`
)

// WorkbookPresenter writes views to an XLSX workbook with native charts,
// one sheet per view plus an overview sheet
type WorkbookPresenter struct {
	path    string
	logger  *slog.Logger
	metrics *infrastructure.PipelineMetrics
}

// NewWorkbookPresenter creates a presenter that saves to path
func NewWorkbookPresenter(path string, logger *slog.Logger, metrics *infrastructure.PipelineMetrics) *WorkbookPresenter {
	if logger == nil {
		logger = slog.Default()
	}
	return &WorkbookPresenter{path: path, logger: logger, metrics: metrics}
}

// Path returns the workbook location
func (p *WorkbookPresenter) Path() string {
	return p.path
}

// Outputs lists the files Present writes
func (p *WorkbookPresenter) Outputs([]View) []string {
	return []string{p.path}
}

// Present renders all views and saves the workbook
func (p *WorkbookPresenter) Present(ctx context.Context, views []View) error {
	f := excelize.NewFile()
	defer f.Close()

	w := &workbook{file: f, styles: make(map[ColumnKind]int)}
	if err := w.init(); err != nil {
		return apperrors.NewRenderError("failed to prepare workbook", err)
	}

	if err := f.SetSheetName(f.GetSheetName(0), overviewSheet); err != nil {
		return apperrors.NewRenderError("failed to name overview sheet", err)
	}
	overview := NewTable(overviewSheet, "Report contents",
		Text("question"), Text("sheet"), Text("title"), Integer("rows"), Text("chart"))

	for _, v := range views {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := w.writeView(v); err != nil {
			return err
		}

		chartKind := ""
		if v.Chart != nil {
			chartKind = string(v.Chart.Kind)
			p.metrics.RecordChart(ctx, chartKind)
		}
		overview.AddRow(v.Question.Title(), v.Table.Name, v.Table.Title, v.Table.Len(), chartKind)

		p.logger.DebugContext(ctx, "Rendered sheet",
			slog.String("sheet", v.Table.Name),
			slog.Int("rows", v.Table.Len()),
			slog.String("chart", chartKind))
	}

	if _, err := w.writeTable(overviewSheet, overview, nil); err != nil {
		return err
	}
	f.SetActiveSheet(0)

	if err := os.MkdirAll(filepath.Dir(p.path), 0755); err != nil {
		return apperrors.NewStorageError("failed to create workbook directory", err)
	}
	if err := f.SaveAs(p.path); err != nil {
		return apperrors.NewStorageError(fmt.Sprintf("failed to save workbook %s", p.path), err).
			WithContext("path", p.path)
	}

	p.logger.InfoContext(ctx, "Workbook saved",
		slog.String("path", p.path),
		slog.Int("sheets", len(views)+1))
	return nil
}

// workbook tracks styles for one file
type workbook struct {
	file        *excelize.File
	headerStyle int
	styles      map[ColumnKind]int
}

func (w *workbook) init() error {
	var err error
	w.headerStyle, err = w.file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	formats := map[ColumnKind]string{
		KindPercent:  percentNumFmt,
		KindCurrency: currencyNumFmt,
	}
	for kind, numFmt := range formats {
		numFmt := numFmt
		id, err := w.file.NewStyle(&excelize.Style{CustomNumFmt: &numFmt})
		if err != nil {
			return err
		}
		w.styles[kind] = id
	}
	return nil
}

func (w *workbook) writeView(v View) error {
	if v.Chart != nil {
		if err := v.Chart.Validate(v.Table); err != nil {
			return err
		}
	}

	if _, err := w.file.NewSheet(v.Table.Name); err != nil {
		return apperrors.NewRenderError(fmt.Sprintf("failed to add sheet %s", v.Table.Name), err)
	}

	groupBy := ""
	if v.Chart != nil {
		groupBy = v.Chart.Group
	}
	order, groups := groupRows(v.Table, groupBy)

	layout, err := w.writeTable(v.Table.Name, v.Table, order)
	if err != nil {
		return err
	}

	if v.Chart == nil || v.Table.Len() == 0 {
		return nil
	}
	return w.addCharts(v.Table.Name, v.Table, *v.Chart, layout, groups)
}

// sheetLayout records where a table landed on its sheet
type sheetLayout struct {
	// next free column, 1-based
	nextCol int
	// extra columns written for box charts, by name
	helpers map[string]int
}

// writeTable writes a header row and the rows in order (all rows when order is nil)
func (w *workbook) writeTable(sheet string, t *Table, order []int) (sheetLayout, error) {
	if order == nil {
		order = make([]int, len(t.Rows))
		for i := range order {
			order[i] = i
		}
	}

	headers := t.Headers()
	if err := w.file.SetSheetRow(sheet, "A1", &headers); err != nil {
		return sheetLayout{}, apperrors.NewRenderError("failed to write header", err)
	}
	last, _ := excelize.CoordinatesToCellName(len(headers), 1)
	if err := w.file.SetCellStyle(sheet, "A1", last, w.headerStyle); err != nil {
		return sheetLayout{}, apperrors.NewRenderError("failed to style header", err)
	}

	for i, idx := range order {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := t.Rows[idx]
		if err := w.file.SetSheetRow(sheet, cell, &row); err != nil {
			return sheetLayout{}, apperrors.NewRenderError(fmt.Sprintf("failed to write row %d", i+2), err)
		}
	}

	for c, col := range t.Columns {
		name, _ := excelize.ColumnNumberToName(c + 1)
		width := 14.0
		if col.Kind == KindText {
			width = 24
		}
		if err := w.file.SetColWidth(sheet, name, name, width); err != nil {
			return sheetLayout{}, apperrors.NewRenderError("failed to size column", err)
		}
		style, ok := w.styles[col.Kind]
		if !ok || len(order) == 0 {
			continue
		}
		top, _ := excelize.CoordinatesToCellName(c+1, 2)
		bottom, _ := excelize.CoordinatesToCellName(c+1, len(order)+1)
		if err := w.file.SetCellStyle(sheet, top, bottom, style); err != nil {
			return sheetLayout{}, apperrors.NewRenderError("failed to style column", err)
		}
	}

	return sheetLayout{nextCol: len(t.Columns) + 1, helpers: map[string]int{}}, nil
}

// columnRange returns an absolute sheet reference for rows first..last (0-based data rows)
func columnRange(sheet string, col, first, last int) string {
	name, _ := excelize.ColumnNumberToName(col)
	return fmt.Sprintf("'%s'!$%s$%d:$%s$%d", sheet, name, first+2, name, last+2)
}

func valueAxis(spec ChartSpec) excelize.ChartAxis {
	axis := excelize.ChartAxis{MajorGridLines: true}
	switch {
	case spec.PercentAxis:
		axis.NumFmt = excelize.ChartNumFmt{CustomNumFmt: `0"%"`}
	case spec.CurrencyAxis:
		axis.NumFmt = excelize.ChartNumFmt{CustomNumFmt: currencyNumFmt}
	}
	return axis
}

func (w *workbook) addCharts(sheet string, t *Table, spec ChartSpec, layout sheetLayout, groups []rowGroup) error {
	x := t.ColumnIndex(spec.X) + 1
	y := t.ColumnIndex(spec.Y) + 1

	switch spec.Kind {
	case ChartBar:
		chartType := excelize.Col
		if spec.Horizontal {
			chartType = excelize.Bar
		}
		for i, g := range groups {
			title := spec.Title
			if g.Name != "" {
				title = fmt.Sprintf("%s: %s", spec.Title, g.Name)
			}
			chart := &excelize.Chart{
				Type: chartType,
				Series: []excelize.ChartSeries{{
					Name:       fmt.Sprintf("'%s'!$%s$1", sheet, mustColumnName(y)),
					Categories: columnRange(sheet, x, g.First, g.Last),
					Values:     columnRange(sheet, y, g.First, g.Last),
				}},
				Title:     []excelize.RichTextRun{{Text: title}},
				Legend:    excelize.ChartLegend{Position: "none"},
				XAxis:     excelize.ChartAxis{ReverseOrder: spec.Horizontal},
				YAxis:     valueAxis(spec),
				Dimension: excelize.ChartDimension{Width: chartWidth, Height: chartHeight},
			}
			if err := w.placeChart(sheet, layout, i, chart); err != nil {
				return err
			}
		}
		return nil

	case ChartLine, ChartScatter:
		chart := &excelize.Chart{
			Type:      excelize.Line,
			Title:     []excelize.RichTextRun{{Text: spec.Title}},
			Legend:    excelize.ChartLegend{Position: "bottom"},
			YAxis:     valueAxis(spec),
			Dimension: excelize.ChartDimension{Width: chartWidth, Height: chartHeight},
		}
		if spec.Kind == ChartScatter {
			chart.Type = excelize.Scatter
			chart.XAxis = excelize.ChartAxis{NumFmt: excelize.ChartNumFmt{CustomNumFmt: `0"%"`}}
		}
		for _, g := range groups {
			series := excelize.ChartSeries{
				Name:       g.Name,
				Categories: columnRange(sheet, x, g.First, g.Last),
				Values:     columnRange(sheet, y, g.First, g.Last),
			}
			if spec.Kind == ChartScatter {
				series.Line = excelize.ChartLine{Type: excelize.ChartLineNone}
				series.Marker = excelize.ChartMarker{Symbol: "circle", Size: 7}
			}
			chart.Series = append(chart.Series, series)
		}
		return w.placeChart(sheet, layout, 0, chart)

	case ChartBox:
		return w.addBoxChart(sheet, t, spec, layout)
	}

	return apperrors.NewRenderError(fmt.Sprintf("unknown chart kind %q", spec.Kind), nil)
}

// addBoxChart draws quartile bands as stacked columns over an invisible base.
// Band sizes are written as helper columns next to the table.
func (w *workbook) addBoxChart(sheet string, t *Table, spec ChartSpec, layout sheetLayout) error {
	bands := []struct {
		name     string
		from, to string
		fill     string
	}{
		{name: "base", to: BoxMin, fill: "FFFFFF"},
		{name: "min to q1", from: BoxMin, to: BoxQ1, fill: "BDD7EE"},
		{name: "q1 to median", from: BoxQ1, to: BoxMedian, fill: "5B9BD5"},
		{name: "median to q3", from: BoxMedian, to: BoxQ3, fill: "2E75B6"},
		{name: "q3 to max", from: BoxQ3, to: BoxMax, fill: "BDD7EE"},
	}

	x := t.ColumnIndex(spec.X) + 1
	last := len(t.Rows) - 1

	chart := &excelize.Chart{
		Type:      excelize.ColStacked,
		Title:     []excelize.RichTextRun{{Text: spec.Title}},
		Legend:    excelize.ChartLegend{Position: "none"},
		YAxis:     valueAxis(spec),
		Dimension: excelize.ChartDimension{Width: chartWidth, Height: chartHeight},
	}

	for b, band := range bands {
		col := layout.nextCol + b
		header, _ := excelize.CoordinatesToCellName(col, 1)
		if err := w.file.SetCellValue(sheet, header, band.name); err != nil {
			return apperrors.NewRenderError("failed to write box band header", err)
		}

		to := t.ColumnIndex(band.to)
		from := t.ColumnIndex(band.from)
		for r, row := range t.Rows {
			top, _ := Float(row[to])
			bottom := 0.0
			if from >= 0 {
				bottom, _ = Float(row[from])
			}
			cell, _ := excelize.CoordinatesToCellName(col, r+2)
			if err := w.file.SetCellValue(sheet, cell, top-bottom); err != nil {
				return apperrors.NewRenderError("failed to write box band", err)
			}
		}

		layout.helpers[band.name] = col
		chart.Series = append(chart.Series, excelize.ChartSeries{
			Name:       band.name,
			Categories: columnRange(sheet, x, 0, last),
			Values:     columnRange(sheet, col, 0, last),
			Fill:       excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{band.fill}},
		})
	}

	layout.nextCol += len(bands)
	return w.placeChart(sheet, layout, 0, chart)
}

// placeChart anchors the i-th chart of a sheet to the right of the data
func (w *workbook) placeChart(sheet string, layout sheetLayout, i int, chart *excelize.Chart) error {
	cell, _ := excelize.CoordinatesToCellName(layout.nextCol+1, 1+i*chartRowStride)
	if err := w.file.AddChart(sheet, cell, chart); err != nil {
		return apperrors.NewRenderError(fmt.Sprintf("failed to add chart to %s", sheet), err).
			WithContext("sheet", sheet)
	}
	return nil
}

func mustColumnName(col int) string {
	name, err := excelize.ColumnNumberToName(col)
	if err != nil {
		panic(err)
	}
	return name
}
