package config

import (
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apperrors "skillpulse/internal/errors"
)

// EnvPrefix is the prefix for all environment variables, e.g. SKILLPULSE_ANALYSIS_COUNTRY
const EnvPrefix = "SKILLPULSE"

// Config represents the complete application configuration
type Config struct {
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Analysis  AnalysisConfig  `yaml:"analysis" envconfig:"ANALYSIS"`
	Output    OutputConfig    `yaml:"output" envconfig:"OUTPUT"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn warning error"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"json" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/skillpulse.log"`
}

// AnalysisConfig controls which postings are analysed and how results are ranked
type AnalysisConfig struct {
	Input              string  `yaml:"input" envconfig:"INPUT" default:"data/data_jobs.csv" validate:"required"`
	Country            string  `yaml:"country" envconfig:"COUNTRY" default:"United States" validate:"required"`
	FocusTitle         string  `yaml:"focus_title" envconfig:"FOCUS_TITLE" default:"Data Analyst" validate:"required"`
	TopTitles          int     `yaml:"top_titles" envconfig:"TOP_TITLES" default:"3" validate:"min=1"`
	TopN               int     `yaml:"top_n" envconfig:"TOP_N" default:"5" validate:"min=1"`
	SalaryTopN         int     `yaml:"salary_top_n" envconfig:"SALARY_TOP_N" default:"10" validate:"min=1"`
	DistributionTitles int     `yaml:"distribution_titles" envconfig:"DISTRIBUTION_TITLES" default:"6" validate:"min=1"`
	MinDemandPercent   float64 `yaml:"min_demand_percent" envconfig:"MIN_DEMAND_PERCENT" default:"5" validate:"min=0,max=100"`
	Ascending          bool    `yaml:"ascending" envconfig:"ASCENDING" default:"false"`
}

// OutputConfig controls which artifacts a run writes
type OutputConfig struct {
	Dir      string `yaml:"dir" envconfig:"DIR" default:"output" validate:"required"`
	Tables   bool   `yaml:"tables" envconfig:"TABLES" default:"true"`
	Workbook bool   `yaml:"workbook" envconfig:"WORKBOOK" default:"true"`
	Console  bool   `yaml:"console" envconfig:"CONSOLE" default:"true"`
	Manifest bool   `yaml:"manifest" envconfig:"MANIFEST" default:"true"`
}

// TelemetryConfig contains tracing and metrics configuration
type TelemetryConfig struct {
	TraceExporter string  `yaml:"trace_exporter" envconfig:"TRACE_EXPORTER" default:"none" validate:"oneof=stdout file none"`
	SampleRatio   float64 `yaml:"sample_ratio" envconfig:"SAMPLE_RATIO" default:"1" validate:"min=0,max=1"`
	MetricsFile   bool    `yaml:"metrics_file" envconfig:"METRICS_FILE" default:"true"`
}

// Load builds the configuration from defaults and environment variables, then
// overlays the YAML file at configFile when one is given or found. Keys present
// in the file override the environment.
func Load(configFile string) (*Config, error) {
	var cfg Config

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, apperrors.NewConfigError("failed to load config from env", err)
	}

	if configFile == "" {
		configFile = getConfigFilePath()
	}
	if configFile != "" {
		if err := loadFromFile(configFile, &cfg); err != nil {
			return nil, apperrors.NewConfigError(fmt.Sprintf("failed to load config file %s", configFile), err).
				WithContext("path", configFile)
		}
	}

	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// loadFromFile overlays YAML values onto cfg
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// normalize trims free-form values
func (c *Config) normalize() {
	c.Analysis.Input = strings.TrimSpace(c.Analysis.Input)
	c.Analysis.Country = strings.TrimSpace(c.Analysis.Country)
	c.Analysis.FocusTitle = strings.TrimSpace(c.Analysis.FocusTitle)
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
}

// configValidator reports fields by their YAML keys
var configValidator = newConfigValidator()

func newConfigValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks struct constraints
func (c *Config) Validate() error {
	if err := configValidator.Struct(c); err != nil {
		return apperrors.NewConfigError("config validation failed", err)
	}
	return nil
}

// getConfigFilePath returns the first config file found in common locations
func getConfigFilePath() string {
	locations := []string{
		"skillpulse.yaml",
		"configs/skillpulse.yaml",
	}

	for _, location := range locations {
		if FileExists(location) {
			return location
		}
	}

	return ""
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: "logs/skillpulse.log",
		},
		Analysis: AnalysisConfig{
			Input:              "data/data_jobs.csv",
			Country:            "United States",
			FocusTitle:         "Data Analyst",
			TopTitles:          3,
			TopN:               5,
			SalaryTopN:         10,
			DistributionTitles: 6,
			MinDemandPercent:   5,
		},
		Output: OutputConfig{
			Dir:      "output",
			Tables:   true,
			Workbook: true,
			Console:  true,
			Manifest: true,
		},
		Telemetry: TelemetryConfig{
			TraceExporter: "none",
			SampleRatio:   1,
			MetricsFile:   true,
		},
	}
}
