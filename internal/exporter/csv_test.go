package exporter

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillpulse/internal/config"
)

// setupTestEnv creates a writer rooted at a temporary output directory
func setupTestEnv(t *testing.T) (*CSVWriter, *config.Paths) {
	t.Helper()

	paths, err := config.GetPaths(t.TempDir())
	require.NoError(t, err)
	return NewCSVWriter(paths, nil), paths
}

func readCSVFile(t *testing.T, path string) ([][]string, bool) {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	hasBOM := bytes.HasPrefix(data, utf8BOM)

	records, err := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM))).ReadAll()
	require.NoError(t, err)
	return records, hasBOM
}

func TestCSVWriter_WriteCSV(t *testing.T) {
	writer, paths := setupTestEnv(t)

	tests := []struct {
		name     string
		filePath string
		options  WriteOptions
		wantPath string
		wantBOM  bool
		want     [][]string
	}{
		{
			name:     "relative path lands in tables",
			filePath: "skills.csv",
			options: WriteOptions{
				Headers:   []string{"skill", "count"},
				Records:   [][]string{{"sql", "3"}, {"python", "2"}},
				BOMPrefix: true,
			},
			wantPath: filepath.Join(paths.TablesDir, "skills.csv"),
			wantBOM:  true,
			want:     [][]string{{"skill", "count"}, {"sql", "3"}, {"python", "2"}},
		},
		{
			name:     "absolute path without BOM",
			filePath: filepath.Join(paths.OutputDir, "nested", "plain.csv"),
			options: WriteOptions{
				Headers: []string{"a"},
				Records: [][]string{{"quoted, value"}},
			},
			wantPath: filepath.Join(paths.OutputDir, "nested", "plain.csv"),
			want:     [][]string{{"a"}, {"quoted, value"}},
		},
		{
			name:     "headers only",
			filePath: "empty.csv",
			options:  WriteOptions{Headers: []string{"skill"}, BOMPrefix: true},
			wantPath: filepath.Join(paths.TablesDir, "empty.csv"),
			wantBOM:  true,
			want:     [][]string{{"skill"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, writer.WriteCSV(tt.filePath, tt.options))

			records, hasBOM := readCSVFile(t, tt.wantPath)
			assert.Equal(t, tt.wantBOM, hasBOM)
			assert.Equal(t, tt.want, records)
		})
	}
}

func TestCSVWriter_WriteSimpleCSV_Overwrites(t *testing.T) {
	writer, paths := setupTestEnv(t)

	require.NoError(t, writer.WriteSimpleCSV("t.csv", []string{"h"}, [][]string{{"1"}, {"2"}}))
	require.NoError(t, writer.WriteSimpleCSV("t.csv", []string{"h"}, [][]string{{"3"}}))

	records, hasBOM := readCSVFile(t, paths.TableFile("t"))
	assert.True(t, hasBOM)
	assert.Equal(t, [][]string{{"h"}, {"3"}}, records)
}

func TestCSVWriter_CreateStreamWriter(t *testing.T) {
	writer, paths := setupTestEnv(t)

	stream, err := writer.CreateStreamWriter("stream.csv", []string{"month", "count"})
	require.NoError(t, err)
	assert.Equal(t, paths.TableFile("stream"), stream.Path())

	for _, rec := range [][]string{{"2023-01", "4"}, {"2023-02", "6"}} {
		require.NoError(t, stream.WriteRecord(rec))
	}
	require.NoError(t, stream.Close())

	records, _ := readCSVFile(t, stream.Path())
	assert.Equal(t, [][]string{{"month", "count"}, {"2023-01", "4"}, {"2023-02", "6"}}, records)
}

func TestCSVWriter_CreateStreamWriter_Unwritable(t *testing.T) {
	writer, paths := setupTestEnv(t)

	// a file where the directory should be
	blocker := filepath.Join(paths.OutputDir, "blocked")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	_, err := writer.CreateStreamWriter(filepath.Join(blocker, "t.csv"), []string{"h"})
	assert.Error(t, err)
}
