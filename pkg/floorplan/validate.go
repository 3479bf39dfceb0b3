package floorplan

import (
	"fmt"

	"github.com/arxos/cadtool/pkg/errors"
)

// ValidationError is a single field-level validation failure.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// SettingsValidator collects Settings validation failures, following the
// teacher's collect-don't-fail-fast validator shape.
type SettingsValidator struct {
	errs []ValidationError
}

// NewSettingsValidator returns an empty validator.
func NewSettingsValidator() *SettingsValidator {
	return &SettingsValidator{errs: make([]ValidationError, 0)}
}

func (v *SettingsValidator) add(field, message string) {
	v.errs = append(v.errs, ValidationError{Field: field, Message: message})
}

// InRange records an error if value falls outside [min, max].
func (v *SettingsValidator) InRange(field string, value, min, max float64) *SettingsValidator {
	if value < min || value > max {
		v.add(field, rangeMessage(min, max))
	}
	return v
}

func rangeMessage(min, max float64) string {
	return fmt.Sprintf("must be between %g and %g", min, max)
}

// Validate checks Settings against its field bounds and returns an
// *errors.AppError wrapping every violation found, or nil if valid.
func Validate(s Settings) error {
	v := NewSettingsValidator()
	v.InRange("density", s.DensityPct, 10, 90)
	v.InRange("corridorWidth", s.CorridorWidthMM, 1000, 2000)
	v.InRange("minClearance", s.MinClearanceMM, 50, 150)
	if s.MaxIterations <= 0 {
		v.add("maxIterations", "must be positive")
	}
	if s.ConvergenceThreshold < 0 {
		v.add("convergenceThreshold", "must be non-negative")
	}
	if s.MinCorridorWidthMM <= 0 {
		v.add("minCorridorWidth", "must be positive")
	}
	switch s.Algorithm {
	case AlgorithmGrid, AlgorithmSpiral, AlgorithmCornerFirst, AlgorithmWallAligned,
		AlgorithmEvolutionary, AlgorithmAnnealing, AlgorithmSwarm:
	default:
		v.add("algorithm", "unrecognized algorithm")
	}
	switch s.OptimizationTarget {
	case TargetArea, TargetAccessibility, TargetFire, TargetFlow:
	default:
		v.add("optimizationTarget", "unrecognized optimization target")
	}
	if len(v.errs) == 0 {
		return nil
	}
	appErr := errors.New(errors.CodeInternal, "invalid settings")
	appErr.WithDetail("violations", v.errs)
	return appErr
}
