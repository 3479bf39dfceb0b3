package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arxos/cadtool/pkg/floorplan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsOnly(t *testing.T) {
	s, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, floorplan.DefaultSettings(), s)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")
	body := "density: 40\ncorridorWidth: 1500\nalgorithm: evolutionary\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 40.0, s.DensityPct)
	assert.Equal(t, 1500.0, s.CorridorWidthMM)
	assert.Equal(t, floorplan.AlgorithmEvolutionary, s.Algorithm)
	// Fields untouched by the file fall back to defaults.
	assert.Equal(t, floorplan.DefaultSettings().MinClearanceMM, s.MinClearanceMM)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("density: 40\n"), 0o644))

	t.Setenv("CADTOOL_DENSITY", "60")
	t.Setenv("CADTOOL_ALGORITHM", "annealing")

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 60.0, s.DensityPct)
	assert.Equal(t, floorplan.AlgorithmAnnealing, s.Algorithm)
}

func TestLoadRejectsOutOfRangeSettings(t *testing.T) {
	t.Setenv("CADTOOL_DENSITY", "5")
	_, err := Load("")
	assert.Error(t, err)
}

func TestLoadMissingFileErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoaderPriorityOrdering(t *testing.T) {
	l := NewLoader()
	l.AddSource(EnvSource{})
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("density: 33\n"), 0o644))
	l.AddSource(FileSource{Path: path})

	t.Setenv("CADTOOL_DENSITY", "77")

	s, err := l.Load()
	require.NoError(t, err)
	// Environment has higher priority than file, so it applies last and wins.
	assert.Equal(t, 77.0, s.DensityPct)
}
