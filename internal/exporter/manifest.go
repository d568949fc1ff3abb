package exporter

import (
	"encoding/hex"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"golang.org/x/crypto/blake2b"

	"skillpulse/internal/config"
	"skillpulse/internal/dataprocessing"
	apperrors "skillpulse/internal/errors"
	"skillpulse/pkg/contracts"
)

// Manifest describes one run: what went in, how it was analysed and what came out
type Manifest struct {
	RunID       string                         `json:"run_id"`
	Version     contracts.VersionInfo          `json:"version"`
	StartedAt   time.Time                      `json:"started_at"`
	FinishedAt  time.Time                      `json:"finished_at"`
	Questions   []string                       `json:"questions"`
	Input       InputInfo                      `json:"input"`
	Country     string                         `json:"country"`
	Options     dataprocessing.AnalysisOptions `json:"options"`
	CleanReport dataprocessing.CleanReport     `json:"clean_report"`
	Artifacts   []string                       `json:"artifacts"`
}

// InputInfo identifies the input file
type InputInfo struct {
	Path   string `json:"path"`
	Size   int64  `json:"size"`
	Digest string `json:"blake2b_256"`
}

// FileDigest returns the hex BLAKE2b-256 digest and size of the file at path
func FileDigest(path string) (string, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", 0, apperrors.NewInputError("cannot open input for digest", err).WithContext("path", path)
	}
	defer f.Close()

	h, err := blake2b.New256(nil)
	if err != nil {
		return "", 0, err
	}
	n, err := io.Copy(h, f)
	if err != nil {
		return "", 0, apperrors.NewInputError("cannot read input for digest", err).WithContext("path", path)
	}
	return hex.EncodeToString(h.Sum(nil)), n, nil
}

// DescribeInput fingerprints the input file
func DescribeInput(path string) (InputInfo, error) {
	digest, size, err := FileDigest(path)
	if err != nil {
		return InputInfo{}, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return InputInfo{Path: abs, Size: size, Digest: digest}, nil
}

// AddArtifacts records files relative to the output directory, sorted and deduplicated
func (m *Manifest) AddArtifacts(paths *config.Paths, files ...string) {
	seen := make(map[string]bool, len(m.Artifacts))
	for _, a := range m.Artifacts {
		seen[a] = true
	}
	for _, f := range files {
		rel := paths.Relative(f)
		if !seen[rel] {
			seen[rel] = true
			m.Artifacts = append(m.Artifacts, rel)
		}
	}
	sort.Strings(m.Artifacts)
}

// WriteManifest writes m as indented JSON to path
func WriteManifest(path string, m *Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return apperrors.NewStorageError("failed to encode manifest", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return apperrors.NewStorageError("failed to create manifest directory", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return apperrors.NewStorageError("failed to write manifest", err).WithContext("path", path)
	}
	return nil
}

// ReadManifest loads a manifest written by WriteManifest
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to read manifest", err).WithContext("path", path)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, apperrors.NewStorageError("failed to decode manifest", err).WithContext("path", path)
	}
	return &m, nil
}
