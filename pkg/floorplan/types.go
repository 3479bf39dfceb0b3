// Package floorplan holds the value types produced and consumed by the
// cadtool core: the classified drawing model (ProcessedPlan), the placement
// output (Layout), and the Settings that parameterize placement. Every type
// here is immutable once constructed and carries JSON tags so a storage or
// transport layer outside this module can serialize it without translation.
package floorplan

import "github.com/arxos/cadtool/pkg/geometry"

// DoorSwing describes which way a door swings.
type DoorSwing string

const (
	SwingLeft   DoorSwing = "left"
	SwingRight  DoorSwing = "right"
	SwingDouble DoorSwing = "double"
)

// RestrictedCategory classifies a RestrictedArea.
type RestrictedCategory string

const (
	CategoryStairs    RestrictedCategory = "stairs"
	CategoryElevator  RestrictedCategory = "elevator"
	CategoryRestroom  RestrictedCategory = "restroom"
	CategoryUtility   RestrictedCategory = "utility"
	CategoryOther     RestrictedCategory = "other"
)

// IlotType buckets an Ilot by its floor area.
type IlotType string

const (
	IlotSmall  IlotType = "small"  // <= 5 m²
	IlotMedium IlotType = "medium" // 5-10 m²
	IlotLarge  IlotType = "large"  // 10-15 m²
	IlotXLarge IlotType = "xlarge" // > 15 m²
)

// ClassifyIlotType buckets an area in square meters into one of the four
// size classes.
func ClassifyIlotType(areaM2 float64) IlotType {
	switch {
	case areaM2 <= 5:
		return IlotSmall
	case areaM2 <= 10:
		return IlotMedium
	case areaM2 <= 15:
		return IlotLarge
	default:
		return IlotXLarge
	}
}

// CorridorKind describes a corridor's role in the network.
type CorridorKind string

const (
	CorridorHorizontal CorridorKind = "horizontal"
	CorridorVertical   CorridorKind = "vertical"
	CorridorConnection CorridorKind = "connection"
)

// Algorithm selects a placement strategy.
type Algorithm string

const (
	AlgorithmGrid        Algorithm = "grid"
	AlgorithmSpiral      Algorithm = "spiral"
	AlgorithmCornerFirst Algorithm = "cornerFirst"
	AlgorithmWallAligned Algorithm = "wallAligned"
	AlgorithmEvolutionary Algorithm = "evolutionary"
	AlgorithmAnnealing   Algorithm = "annealing"
	AlgorithmSwarm       Algorithm = "swarm"
)

// OptimizationTarget selects the fitness weighting profile.
type OptimizationTarget string

const (
	TargetArea          OptimizationTarget = "area"
	TargetAccessibility OptimizationTarget = "accessibility"
	TargetFire          OptimizationTarget = "fire"
	TargetFlow          OptimizationTarget = "flow"
)

// Wall is a load-bearing or partition segment discovered by classification.
type Wall struct {
	ID        string           `json:"id"`
	Segment   geometry.Segment `json:"segment"`
	Thickness float64          `json:"thicknessMm"`
	Layer     string           `json:"layer,omitempty"`
}

// LengthMM returns the wall's segment length in millimeters.
func (w Wall) LengthMM() float64 { return geometry.SegmentLength(w.Segment) }

// Door is an opening with a swing radius.
type Door struct {
	ID         string    `json:"id"`
	Center     geometry.Point `json:"center"`
	Radius     float64   `json:"radiusMm"`
	IsEntrance bool      `json:"isEntrance"`
	Swing      DoorSwing `json:"swing"`
}

// Window is a glazed opening in a wall.
type Window struct {
	ID     string        `json:"id"`
	Bounds geometry.Rect `json:"bounds"`
}

// AreaM2 returns the window's area in square meters.
func (w Window) AreaM2() float64 { return w.Bounds.AreaM2() }

// RestrictedArea is a zone îlots may not overlap.
type RestrictedArea struct {
	ID       string             `json:"id"`
	Bounds   geometry.Rect      `json:"bounds"`
	Category RestrictedCategory `json:"category"`
}

// AreaM2 returns the restricted area's footprint in square meters.
func (r RestrictedArea) AreaM2() float64 { return r.Bounds.AreaM2() }

// SpaceAnalysis summarizes how a plan's bounding box is used.
type SpaceAnalysis struct {
	TotalAreaM2      float64 `json:"totalArea"`
	UsableAreaM2     float64 `json:"usableArea"`
	WallAreaM2       float64 `json:"wallArea"`
	RestrictedAreaM2 float64 `json:"restrictedArea"`
	EfficiencyPct    float64 `json:"efficiency"`
}

// ProcessedPlan is the immutable classified model produced by the
// classifier from raw CAD entities.
type ProcessedPlan struct {
	Walls           []Wall           `json:"walls"`
	Doors           []Door           `json:"doors"`
	Windows         []Window         `json:"windows"`
	RestrictedAreas []RestrictedArea `json:"restrictedAreas"`
	Bounds          geometry.Bounds  `json:"bounds"`
	SpaceAnalysis   SpaceAnalysis    `json:"spaceAnalysis"`
}

// Ilot is a placed, axis-aligned workstation cluster.
type Ilot struct {
	ID   string        `json:"id"`
	Rect geometry.Rect `json:"rect"`
	Type IlotType      `json:"type"`
}

// AreaM2 returns the îlot's floor area in square meters.
func (i Ilot) AreaM2() float64 { return i.Rect.AreaM2() }

// Corridor is an axis-aligned walkway segment.
type Corridor struct {
	ID     string       `json:"id"`
	X1     float64      `json:"x1"`
	Y1     float64      `json:"y1"`
	X2     float64      `json:"x2"`
	Y2     float64      `json:"y2"`
	Width  float64      `json:"widthMm"`
	Kind   CorridorKind `json:"kind"`
}

// LengthMM returns the corridor's centerline length.
func (c Corridor) LengthMM() float64 {
	return geometry.SegmentLength(geometry.Segment{
		A: geometry.Point{X: c.X1, Y: c.Y1},
		B: geometry.Point{X: c.X2, Y: c.Y2},
	})
}

// LayoutMetrics scores a Layout against the multi-objective fitness
// function.
type LayoutMetrics struct {
	IlotCount               int     `json:"ilotCount"`
	TotalIlotAreaM2         float64 `json:"totalIlotArea"`
	TotalCorridorLengthMM   float64 `json:"totalCorridorLength"`
	OccupancyPct            float64 `json:"occupancy"`
	AccessibilityScore      float64 `json:"accessibilityScore"`
	FireComplianceScore     float64 `json:"fireComplianceScore"`
	FlowEfficiencyScore     float64 `json:"flowEfficiencyScore"`
	OverallScore            float64 `json:"overallScore"`
}

// Layout is the output of placement (îlots only) and/or routing (îlots and
// corridors together).
type Layout struct {
	Ilots     []Ilot        `json:"ilots"`
	Corridors []Corridor    `json:"corridors"`
	Metrics   LayoutMetrics `json:"metrics"`
}

// Settings parameterizes the placement engine. Zero-value Settings is not
// valid; use DefaultSettings and override fields, then call Validate.
type Settings struct {
	DensityPct            float64            `json:"density" yaml:"density"`
	CorridorWidthMM       float64            `json:"corridorWidth" yaml:"corridorWidth"`
	MinClearanceMM        float64            `json:"minClearance" yaml:"minClearance"`
	Algorithm             Algorithm          `json:"algorithm" yaml:"algorithm"`
	OptimizationTarget    OptimizationTarget `json:"optimizationTarget" yaml:"optimizationTarget"`
	MaxIterations         int                `json:"maxIterations" yaml:"maxIterations"`
	ConvergenceThreshold  float64            `json:"convergenceThreshold" yaml:"convergenceThreshold"`
	MinCorridorWidthMM    float64            `json:"minCorridorWidth" yaml:"minCorridorWidth"`
	Seed                  int64              `json:"seed" yaml:"seed"`
}

// DefaultSettings returns cadtool's default placement configuration.
func DefaultSettings() Settings {
	return Settings{
		DensityPct:           25,
		CorridorWidthMM:      1200,
		MinClearanceMM:       80,
		Algorithm:            AlgorithmGrid,
		OptimizationTarget:   TargetArea,
		MaxIterations:        500,
		ConvergenceThreshold: 0.001,
		MinCorridorWidthMM:   1200,
		Seed:                 1,
	}
}
