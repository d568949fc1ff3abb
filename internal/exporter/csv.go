package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"skillpulse/internal/config"
	apperrors "skillpulse/internal/errors"
)

// utf8BOM helps Excel recognise UTF-8 CSV files
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVWriter provides CSV export functionality
type CSVWriter struct {
	paths  *config.Paths
	logger *slog.Logger
}

// NewCSVWriter creates a new CSV writer instance
func NewCSVWriter(paths *config.Paths, logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{paths: paths, logger: logger}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	BOMPrefix bool
}

// WriteCSV writes data to a CSV file, replacing any existing file
func (w *CSVWriter) WriteCSV(filePath string, options WriteOptions) error {
	stream, err := w.createStream(filePath, options.Headers, options.BOMPrefix)
	if err != nil {
		return err
	}

	for i, record := range options.Records {
		if err := stream.WriteRecord(record); err != nil {
			stream.Close()
			return apperrors.NewStorageError(fmt.Sprintf("failed to write record %d", i), err)
		}
	}

	return stream.Close()
}

// WriteSimpleCSV writes a CSV file with headers, records and a BOM
func (w *CSVWriter) WriteSimpleCSV(filePath string, headers []string, records [][]string) error {
	return w.WriteCSV(filePath, WriteOptions{
		Headers:   headers,
		Records:   records,
		BOMPrefix: true,
	})
}

// StreamWriter provides streaming CSV writing for large tables
type StreamWriter struct {
	path   string
	file   *os.File
	writer *csv.Writer
}

// CreateStreamWriter creates a new streaming CSV writer with a BOM and headers
func (w *CSVWriter) CreateStreamWriter(filePath string, headers []string) (*StreamWriter, error) {
	return w.createStream(filePath, headers, true)
}

func (w *CSVWriter) createStream(filePath string, headers []string, bom bool) (*StreamWriter, error) {
	fullPath := w.resolvePath(filePath)

	w.logger.Debug("Creating CSV file",
		slog.String("file_path", filePath),
		slog.String("full_path", fullPath),
		slog.Int("header_count", len(headers)))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return nil, apperrors.NewStorageError("failed to create directory", err).WithContext("path", fullPath)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to create file", err).WithContext("path", fullPath)
	}

	if bom {
		if _, err := file.Write(utf8BOM); err != nil {
			file.Close()
			return nil, apperrors.NewStorageError("failed to write BOM", err).WithContext("path", fullPath)
		}
	}

	writer := csv.NewWriter(file)
	if len(headers) > 0 {
		if err := writer.Write(headers); err != nil {
			file.Close()
			return nil, apperrors.NewStorageError("failed to write headers", err).WithContext("path", fullPath)
		}
	}

	return &StreamWriter{path: fullPath, file: file, writer: writer}, nil
}

// Path returns the resolved file location
func (s *StreamWriter) Path() string {
	return s.path
}

// WriteRecord writes a single record to the stream
func (s *StreamWriter) WriteRecord(record []string) error {
	return s.writer.Write(record)
}

// Close flushes and closes the stream writer
func (s *StreamWriter) Close() error {
	s.writer.Flush()
	if err := s.writer.Error(); err != nil {
		s.file.Close()
		return apperrors.NewStorageError("failed to flush CSV", err).WithContext("path", s.path)
	}
	return s.file.Close()
}

// resolvePath keeps absolute paths and places relative ones under the tables directory
func (w *CSVWriter) resolvePath(filePath string) string {
	if filepath.IsAbs(filePath) {
		return filePath
	}
	return filepath.Join(w.paths.TablesDir, filePath)
}
