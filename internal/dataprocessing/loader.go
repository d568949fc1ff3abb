package dataprocessing

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "skillpulse/internal/errors"
	"skillpulse/pkg/contracts/domain"
)

const utf8BOM = "\ufeff"

// LoadOptions controls cleaning and filtering at load time
type LoadOptions struct {
	// Country keeps only postings for this country when set
	Country string
	Logger  *slog.Logger
}

// Dataset is the cleaned, read-only posting table
type Dataset struct {
	Source   string
	Postings []domain.JobPosting
	Report   CleanReport
}

// LoadFile reads a CSV or XLSX file of job postings and cleans it
func LoadFile(ctx context.Context, path string, opts LoadOptions) (*Dataset, error) {
	table, err := readTable(path)
	if err != nil {
		return nil, err
	}

	ds, err := buildDataset(ctx, table, opts)
	if err != nil {
		return nil, err
	}
	ds.Source = path
	return ds, nil
}

// Load reads CSV postings from r and cleans them
func Load(ctx context.Context, r io.Reader, opts LoadOptions) (*Dataset, error) {
	table, err := readCSV(r)
	if err != nil {
		return nil, err
	}
	return buildDataset(ctx, table, opts)
}

func buildDataset(ctx context.Context, table *rawTable, opts LoadOptions) (*Dataset, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	columns, err := resolveColumns(table.header)
	if err != nil {
		return nil, err
	}

	postings, report, err := cleanRows(ctx, columns, table.rows, table.lines, logger)
	if err != nil {
		return nil, err
	}

	for _, bad := range table.malformed {
		report.RowsRead++
		report.DroppedMalformedRecord++
		logger.WarnContext(ctx, "Dropping unreadable CSV record",
			slog.Int("line", bad.line),
			slog.String("error", apperrors.NewMalformedRowError(bad.line, "record", bad.err).Error()))
	}

	if opts.Country != "" {
		before := len(postings)
		postings = FilterCountry(postings, opts.Country)
		report.FilteredByCountry = before - len(postings)
	}
	report.Kept = len(postings)

	for _, p := range postings {
		if !p.Salary.Valid {
			report.MissingSalary++
		}
	}

	logger.InfoContext(ctx, "Postings loaded",
		slog.Int("rows_read", report.RowsRead),
		slog.Int("kept", report.Kept),
		slog.Int("dropped", report.DroppedRows()),
		slog.Int("malformed_dates", report.MalformedDates),
		slog.Int("filtered_by_country", report.FilteredByCountry),
		slog.Int("missing_salary", report.MissingSalary))

	return &Dataset{Postings: postings, Report: report}, nil
}

// rawTable is the header and data rows of an input source before cleaning
type rawTable struct {
	header []string
	rows   [][]string
	// lines holds the source line of each row; nil when rows are contiguous after the header
	lines     []int
	malformed []malformedRecord
}

// malformedRecord is a CSV record the reader could not split into fields
type malformedRecord struct {
	line int
	err  error
}

// readTable picks a reader by file extension
func readTable(path string) (*rawTable, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return readWorkbook(path)
	default:
		file, err := os.Open(path)
		if err != nil {
			return nil, apperrors.NewInputError(fmt.Sprintf("cannot open input %s", path), err).
				WithContext("path", path)
		}
		defer file.Close()
		return readCSV(file)
	}
}

// readCSV reads a header row followed by data rows. A leading UTF-8 BOM is ignored.
// Records with broken quoting are set aside and reading continues with the next one.
func readCSV(r io.Reader) (*rawTable, error) {
	br := bufio.NewReader(r)
	if prefix, err := br.Peek(len(utf8BOM)); err == nil && string(prefix) == utf8BOM {
		br.Discard(len(utf8BOM))
	}

	reader := csv.NewReader(br)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, apperrors.NewInputError("input is empty", nil)
	}
	if err != nil {
		return nil, apperrors.NewInputError("cannot read CSV header", err)
	}

	table := &rawTable{header: header}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			table.malformed = append(table.malformed, malformedRecord{line: parseErr.StartLine, err: parseErr})
			continue
		}
		if err != nil {
			return nil, apperrors.NewInputError("cannot read CSV record", err)
		}
		line, _ := reader.FieldPos(0)
		table.rows = append(table.rows, record)
		table.lines = append(table.lines, line)
	}

	return table, nil
}

// readWorkbook reads the first sheet whose first row holds the required columns
func readWorkbook(path string) (*rawTable, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.NewInputError(fmt.Sprintf("cannot open workbook %s", path), err).
			WithContext("path", path)
	}
	defer f.Close()

	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil || len(rows) == 0 {
			continue
		}
		if _, err := resolveColumns(rows[0]); err != nil {
			continue
		}
		return &rawTable{header: rows[0], rows: rows[1:]}, nil
	}

	return nil, apperrors.NewInputError("no sheet with the required columns", nil).
		WithContext("path", path).
		WithContext("required", strings.Join(RequiredColumns, ","))
}

// columnIndex maps column names to their position in a row
type columnIndex map[string]int

// resolveColumns locates columns by header name
func resolveColumns(header []string) (columnIndex, error) {
	columns := make(columnIndex, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, utf8BOM)))
		if _, dup := columns[name]; !dup {
			columns[name] = i
		}
	}

	var missing []string
	for _, name := range RequiredColumns {
		if _, ok := columns[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, apperrors.NewInputError(fmt.Sprintf("missing required columns: %s", strings.Join(missing, ", ")), nil).
			WithContext("missing", missing)
	}
	return columns, nil
}

// get returns the trimmed cell for column, or "" when the row is short
func (c columnIndex) get(row []string, column string) string {
	i, ok := c[column]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
