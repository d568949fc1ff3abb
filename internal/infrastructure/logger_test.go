package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillpulse/internal/config"
)

func TestNewLogger_FileOutput(t *testing.T) {
	defer CloseLogFile()

	logFile := filepath.Join(t.TempDir(), "logs", "test.log")

	cfg := config.LoggingConfig{
		Level:    "info",
		Format:   "json",
		Output:   "file",
		FilePath: logFile,
	}

	var console bytes.Buffer
	logger, err := NewLogger(cfg, &console)
	require.NoError(t, err)
	require.NotNil(t, logger)
	assert.FileExists(t, logFile)

	logger.Info("test message", "key", "value")
	require.NoError(t, CloseLogFile())

	content, err := os.ReadFile(logFile)
	require.NoError(t, err)

	var logEntry map[string]interface{}
	require.NoError(t, json.Unmarshal(content, &logEntry))
	assert.Equal(t, "test message", logEntry["msg"])
	assert.Equal(t, "value", logEntry["key"])
	assert.Equal(t, "INFO", logEntry["level"])
	assert.Empty(t, console.String())
}

func TestNewLogger_BothOutputs(t *testing.T) {
	defer CloseLogFile()

	logFile := filepath.Join(t.TempDir(), "both.log")
	var console bytes.Buffer

	logger, err := NewLogger(config.LoggingConfig{Level: "info", Format: "json", Output: "both", FilePath: logFile}, &console)
	require.NoError(t, err)

	logger.Warn("dual")
	require.NoError(t, CloseLogFile())

	content, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), `"msg":"dual"`)
	assert.Contains(t, console.String(), `"msg":"dual"`)
}

func TestNewLogger_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(config.LoggingConfig{Level: "info", Format: "text", Output: "console"}, &buf)
	require.NoError(t, err)

	logger.Info("plain", "rows", 3)
	assert.Contains(t, buf.String(), "msg=plain")
	assert.Contains(t, buf.String(), "rows=3")
}

func TestRunIDInjection(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(config.LoggingConfig{Level: "debug", Format: "json", Output: "console"}, &buf)
	require.NoError(t, err)

	ctx := WithRunID(context.Background(), "run-123")
	logger.InfoContext(ctx, "with run")
	logger.Info("without run")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var first, second map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))

	assert.Equal(t, "run-123", first["run_id"])
	assert.NotContains(t, second, "run_id")
}

func TestLogLevels(t *testing.T) {
	tests := []struct {
		level    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"ERROR", slog.LevelError},
		{"bogus", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLogLevel(tt.level))
		})
	}
}

func TestLogLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(config.LoggingConfig{Level: "warn", Format: "json", Output: "console"}, &buf)
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Error("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestLoggerHelpers(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(config.LoggingConfig{Level: "info", Format: "json", Output: "console"}, &buf)
	require.NoError(t, err)

	WithError(WithComponent(logger, "loader"), assert.AnError).Info("helper")
	assert.Contains(t, buf.String(), `"component":"loader"`)
	assert.Contains(t, buf.String(), assert.AnError.Error())

	assert.Same(t, logger, WithError(logger, nil))
}

func TestNewLogger_DefaultConfig(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(config.Default().Logging, &buf)
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
}
