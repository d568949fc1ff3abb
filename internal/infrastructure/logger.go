package infrastructure

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"skillpulse/internal/config"
)

var (
	// globalLogFile holds the open log file for cleanup
	globalLogFile *os.File
	// logFileMu protects globalLogFile
	logFileMu sync.Mutex
)

// NewLogger creates a logger writing to console, to cfg.FilePath, or both.
// The caller decides whether to install it with slog.SetDefault.
func NewLogger(cfg config.LoggingConfig, console io.Writer) (*slog.Logger, error) {
	opts := &slog.HandlerOptions{
		AddSource: parseLogLevel(cfg.Level) == slog.LevelDebug,
		Level:     parseLogLevel(cfg.Level),
	}

	var output io.Writer

	switch strings.ToLower(cfg.Output) {
	case "file":
		file, err := openLogFile(cfg.FilePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		setLogFile(file)
		output = file
	case "both":
		file, err := openLogFile(cfg.FilePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		setLogFile(file)
		output = io.MultiWriter(console, file)
	default:
		output = console
	}

	var handler slog.Handler
	if strings.ToLower(cfg.Format) == "text" {
		handler = slog.NewTextHandler(output, opts)
	} else {
		handler = slog.NewJSONHandler(output, opts)
	}

	return slog.New(&traceHandler{Handler: handler}), nil
}

// traceHandler wraps a slog.Handler to inject run_id and trace_id from context
type traceHandler struct {
	slog.Handler
}

// Handle adds correlation ids to the record if present in context
func (h *traceHandler) Handle(ctx context.Context, r slog.Record) error {
	if runID := GetRunID(ctx); runID != "" {
		r.AddAttrs(slog.String("run_id", runID))
	}
	if traceID := TraceIDFromContext(ctx); traceID != "" {
		r.AddAttrs(slog.String("trace_id", traceID))
	}

	return h.Handler.Handle(ctx, r)
}

// WithAttrs returns a new Handler with additional attributes
func (h *traceHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &traceHandler{Handler: h.Handler.WithAttrs(attrs)}
}

// WithGroup returns a new Handler with the given group name
func (h *traceHandler) WithGroup(name string) slog.Handler {
	return &traceHandler{Handler: h.Handler.WithGroup(name)}
}

// parseLogLevel converts string log level to slog.Level
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func setLogFile(file *os.File) {
	logFileMu.Lock()
	defer logFileMu.Unlock()
	if globalLogFile != nil {
		globalLogFile.Close()
	}
	globalLogFile = file
}

// CloseLogFile closes the global log file if open.
// This should be called during shutdown or in tests.
func CloseLogFile() error {
	logFileMu.Lock()
	defer logFileMu.Unlock()

	if globalLogFile != nil {
		err := globalLogFile.Close()
		globalLogFile = nil
		return err
	}
	return nil
}

// openLogFile opens or creates a log file in append mode
func openLogFile(filePath string) (*os.File, error) {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory %s: %w", dir, err)
	}

	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", filePath, err)
	}

	return file, nil
}
