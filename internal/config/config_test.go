package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "skillpulse/internal/errors"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "skillpulse.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// TestLoad tests the Load function with various scenarios
func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		file        string
		wantErr     bool
		validateCfg func(*testing.T, *Config)
	}{
		{
			name: "defaults with no env vars",
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, Default(), cfg)
			},
		},
		{
			name: "environment overrides defaults",
			env: map[string]string{
				"SKILLPULSE_ANALYSIS_COUNTRY":   "Canada",
				"SKILLPULSE_ANALYSIS_TOP_N":     "7",
				"SKILLPULSE_OUTPUT_WORKBOOK":    "false",
				"SKILLPULSE_LOGGING_LEVEL":      "DEBUG",
				"SKILLPULSE_ANALYSIS_ASCENDING": "true",
			},
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "Canada", cfg.Analysis.Country)
				assert.Equal(t, 7, cfg.Analysis.TopN)
				assert.False(t, cfg.Output.Workbook)
				assert.True(t, cfg.Analysis.Ascending)
				assert.Equal(t, "debug", cfg.Logging.Level)
				assert.Equal(t, 10, cfg.Analysis.SalaryTopN)
			},
		},
		{
			name: "file overlays only the keys it sets",
			env: map[string]string{
				"SKILLPULSE_ANALYSIS_COUNTRY": "Canada",
				"SKILLPULSE_ANALYSIS_TOP_N":   "7",
			},
			file: "analysis:\n  country: Germany\n  focus_title: Data Engineer\noutput:\n  dir: reports\n",
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "Germany", cfg.Analysis.Country)
				assert.Equal(t, "Data Engineer", cfg.Analysis.FocusTitle)
				assert.Equal(t, 7, cfg.Analysis.TopN)
				assert.Equal(t, "reports", cfg.Output.Dir)
				assert.True(t, cfg.Output.Tables)
			},
		},
		{
			name:    "invalid yaml",
			file:    "analysis: [unterminated",
			wantErr: true,
		},
		{
			name:    "validation failure",
			file:    "analysis:\n  top_n: 0\n",
			wantErr: true,
		},
		{
			name:    "unknown trace exporter",
			env:     map[string]string{"SKILLPULSE_TELEMETRY_TRACE_EXPORTER": "jaeger"},
			wantErr: true,
		},
		{
			name:    "malformed env value",
			env:     map[string]string{"SKILLPULSE_ANALYSIS_TOP_N": "five"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			path := ""
			if tt.file != "" {
				path = writeConfigFile(t, tt.file)
			}

			cfg, err := Load(path)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, apperrors.ErrConfig))
				return
			}

			require.NoError(t, err)
			tt.validateCfg(t, cfg)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.ErrTypeConfig, appErr.Type)
	assert.Contains(t, appErr.Context["path"], "absent.yaml")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		key     string
		wantErr bool
	}{
		{name: "default is valid", mutate: func(*Config) {}},
		{name: "min demand above 100", mutate: func(c *Config) { c.Analysis.MinDemandPercent = 120 }, key: "analysis.min_demand_percent", wantErr: true},
		{name: "negative min demand", mutate: func(c *Config) { c.Analysis.MinDemandPercent = -1 }, key: "analysis.min_demand_percent", wantErr: true},
		{name: "empty country", mutate: func(c *Config) { c.Analysis.Country = "" }, key: "analysis.country", wantErr: true},
		{name: "unknown log format", mutate: func(c *Config) { c.Logging.Format = "xml" }, key: "logging.format", wantErr: true},
		{name: "sample ratio out of range", mutate: func(c *Config) { c.Telemetry.SampleRatio = 2 }, key: "telemetry.sample_ratio", wantErr: true},
		{name: "zero salary top n", mutate: func(c *Config) { c.Analysis.SalaryTopN = 0 }, key: "analysis.salary_top_n", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.key)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
