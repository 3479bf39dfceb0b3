// Package config loads floorplan.Settings from layered sources: built-in
// defaults, an optional YAML file, and environment variables, merged by
// priority (teacher's ConfigLoader/ConfigSource shape, adapted from
// connection-string configuration to placement settings).
package config

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/arxos/cadtool/pkg/floorplan"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the environment variable prefix cadtool recognizes, e.g.
// CADTOOL_DENSITY, CADTOOL_ALGORITHM.
const EnvPrefix = "CADTOOL_"

// Source supplies a partial settings overlay and a priority: higher
// priority sources override lower priority ones once merged.
type Source interface {
	Load() (floorplan.Settings, error)
	Priority() int
	Name() string
}

// Loader merges settings from all registered sources, starting from
// floorplan.DefaultSettings(), and validates the result.
type Loader struct {
	sources []Source
}

// NewLoader creates a Loader with no sources registered.
func NewLoader() *Loader {
	return &Loader{}
}

// AddSource registers a Source.
func (l *Loader) AddSource(s Source) {
	l.sources = append(l.sources, s)
}

// Load merges every registered source over the defaults, highest priority
// last-applied-wins, then validates.
func (l *Loader) Load() (floorplan.Settings, error) {
	settings := floorplan.DefaultSettings()

	sorted := append([]Source(nil), l.sources...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Priority() < sorted[j].Priority() })

	for _, src := range sorted {
		overlay, err := src.Load()
		if err != nil {
			return floorplan.Settings{}, fmt.Errorf("config source %s: %w", src.Name(), err)
		}
		settings = mergeNonZero(settings, overlay)
	}

	if err := floorplan.Validate(settings); err != nil {
		return floorplan.Settings{}, err
	}
	return settings, nil
}

// FileSource loads a YAML document into floorplan.Settings.
type FileSource struct {
	Path string
}

func (f FileSource) Name() string  { return "file:" + f.Path }
func (f FileSource) Priority() int { return 50 }

func (f FileSource) Load() (floorplan.Settings, error) {
	var s floorplan.Settings
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return s, err
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parsing %s: %w", f.Path, err)
	}
	return s, nil
}

// EnvSource loads settings overrides from CADTOOL_-prefixed environment
// variables.
type EnvSource struct{}

func (EnvSource) Name() string  { return "environment" }
func (EnvSource) Priority() int { return 100 }

func (EnvSource) Load() (floorplan.Settings, error) {
	var s floorplan.Settings
	if v, ok := lookupFloat("DENSITY"); ok {
		s.DensityPct = v
	}
	if v, ok := lookupFloat("CORRIDOR_WIDTH"); ok {
		s.CorridorWidthMM = v
	}
	if v, ok := lookupFloat("MIN_CLEARANCE"); ok {
		s.MinClearanceMM = v
	}
	if v, ok := os.LookupEnv(EnvPrefix + "ALGORITHM"); ok {
		s.Algorithm = floorplan.Algorithm(strings.TrimSpace(v))
	}
	if v, ok := os.LookupEnv(EnvPrefix + "OPTIMIZATION_TARGET"); ok {
		s.OptimizationTarget = floorplan.OptimizationTarget(strings.TrimSpace(v))
	}
	if v, ok := lookupInt("MAX_ITERATIONS"); ok {
		s.MaxIterations = v
	}
	if v, ok := lookupFloat("CONVERGENCE_THRESHOLD"); ok {
		s.ConvergenceThreshold = v
	}
	if v, ok := lookupFloat("MIN_CORRIDOR_WIDTH"); ok {
		s.MinCorridorWidthMM = v
	}
	if v, ok := lookupInt64("SEED"); ok {
		s.Seed = v
	}
	return s, nil
}

func lookupFloat(suffix string) (float64, bool) {
	v, ok := os.LookupEnv(EnvPrefix + suffix)
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	return f, err == nil
}

func lookupInt(suffix string) (int, bool) {
	v, ok := os.LookupEnv(EnvPrefix + suffix)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	return n, err == nil
}

func lookupInt64(suffix string) (int64, bool) {
	v, ok := os.LookupEnv(EnvPrefix + suffix)
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	return n, err == nil
}

// mergeNonZero overlays every non-zero-valued field of overlay onto base.
func mergeNonZero(base, overlay floorplan.Settings) floorplan.Settings {
	if overlay.DensityPct != 0 {
		base.DensityPct = overlay.DensityPct
	}
	if overlay.CorridorWidthMM != 0 {
		base.CorridorWidthMM = overlay.CorridorWidthMM
	}
	if overlay.MinClearanceMM != 0 {
		base.MinClearanceMM = overlay.MinClearanceMM
	}
	if overlay.Algorithm != "" {
		base.Algorithm = overlay.Algorithm
	}
	if overlay.OptimizationTarget != "" {
		base.OptimizationTarget = overlay.OptimizationTarget
	}
	if overlay.MaxIterations != 0 {
		base.MaxIterations = overlay.MaxIterations
	}
	if overlay.ConvergenceThreshold != 0 {
		base.ConvergenceThreshold = overlay.ConvergenceThreshold
	}
	if overlay.MinCorridorWidthMM != 0 {
		base.MinCorridorWidthMM = overlay.MinCorridorWidthMM
	}
	if overlay.Seed != 0 {
		base.Seed = overlay.Seed
	}
	return base
}

// Load is the common-case entry point: defaults, optionally a YAML file if
// path is non-empty, then environment overrides.
func Load(path string) (floorplan.Settings, error) {
	l := NewLoader()
	if path != "" {
		l.AddSource(FileSource{Path: path})
	}
	l.AddSource(EnvSource{})
	return l.Load()
}
