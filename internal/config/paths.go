package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Paths contains every file a run writes.
// This is the single source of truth for output locations.
type Paths struct {
	OutputDir string
	TablesDir string
	LogsDir   string

	WorkbookFile string
	ManifestFile string
	MetricsFile  string
	TracesFile   string
}

// GetPaths resolves the output layout under outputDir.
// Relative directories resolve against the working directory.
//
//	output/
//	  ├── tables/          (one CSV per analysis table)
//	  ├── charts.xlsx      (one sheet and chart per analysis)
//	  ├── manifest.json
//	  ├── metrics.prom
//	  └── traces.json      (only with trace_exporter=file)
func GetPaths(outputDir string) (*Paths, error) {
	if outputDir == "" {
		outputDir = "output"
	}

	abs, err := filepath.Abs(outputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve output directory %s: %v", outputDir, err)
	}

	return &Paths{
		OutputDir:    abs,
		TablesDir:    filepath.Join(abs, "tables"),
		LogsDir:      filepath.Join(abs, "logs"),
		WorkbookFile: filepath.Join(abs, "charts.xlsx"),
		ManifestFile: filepath.Join(abs, "manifest.json"),
		MetricsFile:  filepath.Join(abs, "metrics.prom"),
		TracesFile:   filepath.Join(abs, "traces.json"),
	}, nil
}

// EnsureDirectories creates all required directories if they don't exist
func (p *Paths) EnsureDirectories() error {
	directories := []string{
		p.OutputDir,
		p.TablesDir,
	}

	logger := slog.Default()

	for _, dir := range directories {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %v", dir, err)
		}
		logger.Debug("Ensured directory exists",
			slog.String("directory", dir))
	}

	return nil
}

// TableFile returns the CSV path for the named table
func (p *Paths) TableFile(name string) string {
	return filepath.Join(p.TablesDir, name+".csv")
}

// Relative returns path relative to the output directory, or path itself
// when it lies outside it
func (p *Paths) Relative(path string) string {
	rel, err := filepath.Rel(p.OutputDir, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
