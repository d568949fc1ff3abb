package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPaths(t *testing.T) {
	t.Run("absolute output directory", func(t *testing.T) {
		dir := t.TempDir()
		paths, err := GetPaths(dir)
		require.NoError(t, err)

		assert.Equal(t, dir, paths.OutputDir)
		assert.Equal(t, filepath.Join(dir, "tables"), paths.TablesDir)
		assert.Equal(t, filepath.Join(dir, "charts.xlsx"), paths.WorkbookFile)
		assert.Equal(t, filepath.Join(dir, "manifest.json"), paths.ManifestFile)
		assert.Equal(t, filepath.Join(dir, "metrics.prom"), paths.MetricsFile)
		assert.Equal(t, filepath.Join(dir, "traces.json"), paths.TracesFile)
	})

	t.Run("relative directory is resolved", func(t *testing.T) {
		paths, err := GetPaths("out")
		require.NoError(t, err)
		assert.True(t, filepath.IsAbs(paths.OutputDir))
		assert.Equal(t, "out", filepath.Base(paths.OutputDir))
	})

	t.Run("empty directory uses default", func(t *testing.T) {
		paths, err := GetPaths("")
		require.NoError(t, err)
		assert.Equal(t, "output", filepath.Base(paths.OutputDir))
	})
}

func TestPaths_EnsureDirectories(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "output")
	paths, err := GetPaths(dir)
	require.NoError(t, err)

	require.NoError(t, paths.EnsureDirectories())
	assert.DirExists(t, paths.OutputDir)
	assert.DirExists(t, paths.TablesDir)

	// Idempotent
	require.NoError(t, paths.EnsureDirectories())
}

func TestPaths_TableFileAndRelative(t *testing.T) {
	paths, err := GetPaths(t.TempDir())
	require.NoError(t, err)

	file := paths.TableFile("skill_demand")
	assert.Equal(t, filepath.Join(paths.TablesDir, "skill_demand.csv"), file)
	assert.Equal(t, "tables/skill_demand.csv", paths.Relative(file))
	assert.Equal(t, "charts.xlsx", paths.Relative(paths.WorkbookFile))
}

func TestFileExists(t *testing.T) {
	file := filepath.Join(t.TempDir(), "present.txt")
	assert.False(t, FileExists(file))
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))
	assert.True(t, FileExists(file))
}
