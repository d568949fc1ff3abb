package validation

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	apperrors "skillpulse/internal/errors"
)

// SupportedInputExtensions lists the postings file formats the loader reads
var SupportedInputExtensions = []string{".csv", ".xlsx", ".xlsm"}

// FileValidator checks input and output locations before a run starts
type FileValidator struct {
	logger *slog.Logger
}

// NewFileValidator creates a new file validator
func NewFileValidator(logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{
		logger: logger,
	}
}

// ValidateInputFile checks that path is a readable, non-empty postings file
// in a supported format
func (v *FileValidator) ValidateInputFile(path string) error {
	if err := v.ValidateFile(path); err != nil {
		return err
	}

	ext := strings.ToLower(filepath.Ext(path))
	if !isSupported(ext) {
		v.logger.Error("Unsupported input format",
			slog.String("file", path),
			slog.String("extension", ext))
		return apperrors.NewInputError(
			fmt.Sprintf("input %s has unsupported extension %q (want one of %s)", path, ext, strings.Join(SupportedInputExtensions, ", ")), nil).
			WithContext("path", path)
	}

	if strings.HasPrefix(filepath.Base(path), "~$") {
		v.logger.Warn("Rejecting temporary Excel file",
			slog.String("file", path))
		return apperrors.NewInputError(fmt.Sprintf("input %s is a temporary Excel file", path), nil).
			WithContext("path", path)
	}

	info, err := os.Stat(path)
	if err == nil && info.Size() == 0 {
		return apperrors.NewInputError(fmt.Sprintf("input %s is empty", path), nil).
			WithContext("path", path)
	}

	return nil
}

// ValidateFile checks if a specific file exists and is readable
func (v *FileValidator) ValidateFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		v.logger.Error("File does not exist",
			slog.String("file", path))
		return apperrors.NewInputError(fmt.Sprintf("file %s does not exist", path), err).WithContext("path", path)
	}
	if err != nil {
		v.logger.Error("Failed to stat file",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return apperrors.NewInputError(fmt.Sprintf("failed to stat file %s", path), err).WithContext("path", path)
	}
	if info.IsDir() {
		v.logger.Error("Path is a directory, not a file",
			slog.String("path", path))
		return apperrors.NewInputError(fmt.Sprintf("%s is a directory, not a file", path), nil).WithContext("path", path)
	}

	file, err := os.Open(path)
	if err != nil {
		v.logger.Error("File is not readable",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return apperrors.NewInputError(fmt.Sprintf("file %s is not readable", path), err).WithContext("path", path)
	}
	file.Close()

	v.logger.Debug("File validated",
		slog.String("file", path),
		slog.Int64("size", info.Size()))
	return nil
}

// ValidateOutputDirectory ensures output directory exists or can be created
func (v *FileValidator) ValidateOutputDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		v.logger.Error("Failed to create output directory",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError(fmt.Sprintf("failed to create output directory %s", dir), err)
	}

	// Verify it's writable by creating a test file
	testFile := filepath.Join(dir, ".write_test")
	file, err := os.Create(testFile)
	if err != nil {
		v.logger.Error("Output directory is not writable",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError(fmt.Sprintf("output directory %s is not writable", dir), err)
	}
	file.Close()
	os.Remove(testFile)

	v.logger.Debug("Output directory validated",
		slog.String("directory", dir))
	return nil
}

func isSupported(ext string) bool {
	for _, s := range SupportedInputExtensions {
		if ext == s {
			return true
		}
	}
	return false
}
