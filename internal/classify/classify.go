package classify

import (
	"math"

	"github.com/arxos/cadtool/internal/dxf"
	"github.com/arxos/cadtool/internal/logger"
	cadtoolerrors "github.com/arxos/cadtool/pkg/errors"
	"github.com/arxos/cadtool/pkg/floorplan"
	"github.com/arxos/cadtool/pkg/geometry"
)

const (
	minWallLengthMM      = 10
	wallThicknessDefault = 150.0
	wallThicknessWall    = 200.0
	wallThicknessPartition = 100.0

	doorRadiusMin = 400.0
	doorRadiusMax = 1200.0
	doorWidthDefault = 800.0

	windowThinThresholdMM = 50.0
	windowMinAreaM2       = 0.1
	windowMaxAreaM2       = 5.0

	restrictedMinAreaM2 = 1.0
)

// Classify lifts raw parsed entities into a ProcessedPlan. It returns a
// ClassifyError if zero walls survive or the resulting bounds are
// degenerate or empty.
func Classify(entities []dxf.RawEntity) (floorplan.ProcessedPlan, error) {
	var walls []floorplan.Wall
	var doors []floorplan.Door
	var windows []floorplan.Window
	var restricted []floorplan.RestrictedArea
	bounds := geometry.EmptyBounds()

	wallSeq, doorSeq, windowSeq, restrictedSeq := 0, 0, 0, 0
	touchedGeometry := false

	for _, e := range entities {
		layer := e.LayerName()

		if segs, thickOverride, ok := wallSegmentsOf(e); ok && isWallLayer(layer) {
			for _, seg := range segs {
				if geometry.SegmentLength(seg) <= minWallLengthMM {
					continue
				}
				thickness := wallThickness(layer, thickOverride)
				walls = append(walls, floorplan.Wall{
					ID:        floorplan.DeterministicID("wall", wallSeq),
					Segment:   seg,
					Thickness: thickness,
					Layer:     layer,
				})
				wallSeq++
				bounds = bounds.Expand(seg.A).Expand(seg.B)
				touchedGeometry = true
			}
		}

		if door, ok := classifyDoor(e, layer, doorSeq); ok {
			doors = append(doors, door)
			doorSeq++
			bounds = bounds.Expand(geometry.Point{X: door.Center.X - door.Radius, Y: door.Center.Y - door.Radius})
			bounds = bounds.Expand(geometry.Point{X: door.Center.X + door.Radius, Y: door.Center.Y + door.Radius})
			touchedGeometry = true
		}

		if win, ok := classifyWindow(e, layer, windowSeq); ok {
			windows = append(windows, win)
			windowSeq++
			bounds = bounds.Expand(geometry.Point{X: win.Bounds.X, Y: win.Bounds.Y})
			bounds = bounds.Expand(geometry.Point{X: win.Bounds.MaxX(), Y: win.Bounds.MaxY()})
			touchedGeometry = true
		}

		if ra, ok := classifyRestricted(e, layer, restrictedSeq); ok {
			restricted = append(restricted, ra)
			restrictedSeq++
			bounds = bounds.Expand(geometry.Point{X: ra.Bounds.X, Y: ra.Bounds.Y})
			bounds = bounds.Expand(geometry.Point{X: ra.Bounds.MaxX(), Y: ra.Bounds.MaxY()})
			touchedGeometry = true
		}
	}

	if !touchedGeometry || !bounds.Valid() {
		return floorplan.ProcessedPlan{}, cadtoolerrors.New(cadtoolerrors.CodeNoGeometry,
			"no entity survived classification")
	}
	if bounds.Width() <= 0 || bounds.Height() <= 0 {
		return floorplan.ProcessedPlan{}, cadtoolerrors.New(cadtoolerrors.CodeDegenerateBounds,
			"drawing bounds have zero area")
	}
	if len(walls) == 0 {
		return floorplan.ProcessedPlan{}, cadtoolerrors.New(cadtoolerrors.CodeNoWalls,
			"zero walls survived classification; cannot proceed to placement")
	}

	analysis := computeSpaceAnalysis(bounds, walls, restricted)

	logger.Info("classify: %d walls, %d doors, %d windows, %d restricted areas, efficiency %.1f%%",
		len(walls), len(doors), len(windows), len(restricted), analysis.EfficiencyPct)

	return floorplan.ProcessedPlan{
		Walls:           walls,
		Doors:           doors,
		Windows:         windows,
		RestrictedAreas: restricted,
		Bounds:          bounds,
		SpaceAnalysis:   analysis,
	}, nil
}

// wallSegmentsOf extracts the candidate wall segments from an entity
// (decomposing polylines into consecutive two-point segments) and any
// explicit thickness override carried on it.
func wallSegmentsOf(e dxf.RawEntity) ([]geometry.Segment, *float64, bool) {
	switch v := e.(type) {
	case dxf.LineEntity:
		return []geometry.Segment{{A: v.Start, B: v.End}}, v.Thickness, true
	case dxf.PolylineEntity:
		return v.Segments(), v.Thickness, true
	default:
		return nil, nil, false
	}
}

func wallThickness(layer string, explicit *float64) float64 {
	if explicit != nil && *explicit > 0 {
		return *explicit
	}
	if wallThickKeywords.matchesAny(layer) {
		return wallThicknessWall
	}
	if partitionThinKeywords.matchesAny(layer) {
		return wallThicknessPartition
	}
	return wallThicknessDefault
}

func classifyDoor(e dxf.RawEntity, layer string, seq int) (floorplan.Door, bool) {
	isEntrance := entranceKeywords.matchesAny(layer)

	if arc, ok := e.(dxf.ArcEntity); ok {
		if arc.Radius >= doorRadiusMin && arc.Radius <= doorRadiusMax {
			return floorplan.Door{
				ID:         floorplan.DeterministicID("door", seq),
				Center:     arc.Center,
				Radius:     arc.Radius,
				IsEntrance: isEntrance,
				Swing:      swingFromSweep(arc.SweepDegrees()),
			}, true
		}
		if doorKeywords.matchesAny(layer) {
			// layer says door but radius is out of the typical swing band;
			// keep it as a door, radius clamped into the band, rather than
			// discard outright.
			return floorplan.Door{
				ID:         floorplan.DeterministicID("door", seq),
				Center:     arc.Center,
				Radius:     clamp(arc.Radius, doorRadiusMin, doorRadiusMax),
				IsEntrance: isEntrance,
				Swing:      swingFromSweep(arc.SweepDegrees()),
			}, true
		}
		return floorplan.Door{}, false
	}

	if !doorKeywords.matchesAny(layer) {
		return floorplan.Door{}, false
	}

	switch v := e.(type) {
	case dxf.LineEntity:
		width := geometry.SegmentLength(geometry.Segment{A: v.Start, B: v.End})
		center := geometry.RectCenter(boundsOfPoints(v.Start, v.End))
		return floorplan.Door{
			ID:         floorplan.DeterministicID("door", seq),
			Center:     center,
			Radius:     clamp(width, doorRadiusMin, doorRadiusMax),
			IsEntrance: isEntrance,
			Swing:      floorplan.SwingLeft,
		}, true
	case dxf.CircleEntity:
		return floorplan.Door{
			ID:         floorplan.DeterministicID("door", seq),
			Center:     v.Center,
			Radius:     clamp(doorWidthDefault, doorRadiusMin, doorRadiusMax),
			IsEntrance: isEntrance,
			Swing:      floorplan.SwingLeft,
		}, true
	case dxf.PolylineEntity:
		if len(v.Vertices) == 0 {
			return floorplan.Door{}, false
		}
		b, ok := polylineBounds(v)
		if !ok {
			return floorplan.Door{}, false
		}
		return floorplan.Door{
			ID:         floorplan.DeterministicID("door", seq),
			Center:     geometry.RectCenter(b),
			Radius:     clamp(doorWidthDefault, doorRadiusMin, doorRadiusMax),
			IsEntrance: isEntrance,
			Swing:      floorplan.SwingLeft,
		}, true
	default:
		return floorplan.Door{}, false
	}
}

func swingFromSweep(sweep float64) floorplan.DoorSwing {
	switch {
	case sweep > 180:
		return floorplan.SwingDouble
	case sweep > 0:
		return floorplan.SwingRight
	default:
		return floorplan.SwingLeft
	}
}

func classifyWindow(e dxf.RawEntity, layer string, seq int) (floorplan.Window, bool) {
	if !windowKeywords.matchesAny(layer) {
		return floorplan.Window{}, false
	}
	var bounds geometry.Rect
	var ok bool
	switch v := e.(type) {
	case dxf.LineEntity:
		bounds = boundsOfPoints(v.Start, v.End)
		ok = true
	case dxf.PolylineEntity:
		bounds, ok = polylineBounds(v)
	default:
		ok = false
	}
	if !ok {
		return floorplan.Window{}, false
	}
	if math.Min(bounds.Width, bounds.Height) >= windowThinThresholdMM {
		return floorplan.Window{}, false
	}
	area := bounds.AreaM2()
	if area < windowMinAreaM2 || area > windowMaxAreaM2 {
		return floorplan.Window{}, false
	}
	return floorplan.Window{ID: floorplan.DeterministicID("window", seq), Bounds: bounds}, true
}

func classifyRestricted(e dxf.RawEntity, layer string, seq int) (floorplan.RestrictedArea, bool) {
	if !restrictedKeywords.matchesAny(layer) {
		return floorplan.RestrictedArea{}, false
	}
	bounds, ok := anyEntityBounds(e)
	if !ok {
		return floorplan.RestrictedArea{}, false
	}
	if bounds.AreaM2() < restrictedMinAreaM2 {
		return floorplan.RestrictedArea{}, false
	}
	return floorplan.RestrictedArea{
		ID:       floorplan.DeterministicID("restricted", seq),
		Bounds:   bounds,
		Category: restrictedCategory(layer),
	}, true
}

func restrictedCategory(layer string) floorplan.RestrictedCategory {
	switch {
	case stairsKeywords.matchesAny(layer):
		return floorplan.CategoryStairs
	case elevatorKeywords.matchesAny(layer):
		return floorplan.CategoryElevator
	case restroomKeywords.matchesAny(layer):
		return floorplan.CategoryRestroom
	case utilityKeywords.matchesAny(layer):
		return floorplan.CategoryUtility
	default:
		return floorplan.CategoryOther
	}
}

func anyEntityBounds(e dxf.RawEntity) (geometry.Rect, bool) {
	switch v := e.(type) {
	case dxf.LineEntity:
		return boundsOfPoints(v.Start, v.End), true
	case dxf.PolylineEntity:
		return polylineBounds(v)
	case dxf.CircleEntity:
		return geometry.NewRect(v.Center.X-v.Radius, v.Center.Y-v.Radius, 2*v.Radius, 2*v.Radius), true
	case dxf.ArcEntity:
		return geometry.NewRect(v.Center.X-v.Radius, v.Center.Y-v.Radius, 2*v.Radius, 2*v.Radius), true
	case dxf.InsertEntity:
		return geometry.NewRect(v.Point.X, v.Point.Y, 0, 0), true
	default:
		return geometry.Rect{}, false
	}
}

func boundsOfPoints(pts ...geometry.Point) geometry.Rect {
	b := geometry.EmptyBounds()
	for _, p := range pts {
		b = b.Expand(p)
	}
	return b.ToRect()
}

func polylineBounds(p dxf.PolylineEntity) (geometry.Rect, bool) {
	if len(p.Vertices) == 0 {
		return geometry.Rect{}, false
	}
	b := geometry.EmptyBounds()
	for _, v := range p.Vertices {
		b = b.Expand(v)
	}
	return b.ToRect(), true
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func computeSpaceAnalysis(bounds geometry.Bounds, walls []floorplan.Wall, restricted []floorplan.RestrictedArea) floorplan.SpaceAnalysis {
	total := bounds.AreaM2()

	var wallArea float64
	for _, w := range walls {
		wallArea += (w.LengthMM() * w.Thickness) / 1e6
	}

	var restrictedArea float64
	for _, r := range restricted {
		restrictedArea += r.AreaM2()
	}

	usable := total - wallArea - restrictedArea
	if usable < 0 {
		usable = 0
	}

	efficiency := 0.0
	if total > 0 {
		efficiency = 100 * usable / total
	}

	return floorplan.SpaceAnalysis{
		TotalAreaM2:      total,
		UsableAreaM2:     usable,
		WallAreaM2:       wallArea,
		RestrictedAreaM2: restrictedArea,
		EfficiencyPct:    efficiency,
	}
}
