package placement

import (
	"math"
	"sort"

	"github.com/arxos/cadtool/pkg/floorplan"
	"github.com/arxos/cadtool/pkg/geometry"
)

func newIlot(rect geometry.Rect, seq int) floorplan.Ilot {
	return floorplan.Ilot{
		ID:   floorplan.DeterministicID("ilot", seq),
		Rect: rect,
		Type: floorplan.ClassifyIlotType(rect.AreaM2()),
	}
}

func rectFor(topLeft geometry.Point, req sizingRequest) geometry.Rect {
	return geometry.NewRect(topLeft.X, topLeft.Y, req.widthMM, req.heightMM)
}

// placeGrid scans left-to-right, top-to-bottom, placing each sizing
// request at the first valid position on a row grid spaced by the
// request's own height plus the corridor width.
func placeGrid(v *validator, requests []sizingRequest, corridorWidthMM float64) []floorplan.Ilot {
	placed := make([]floorplan.Ilot, 0, len(requests))
	seq := 0
	minX, minY := v.bounds.X+v.minClearance, v.bounds.Y+v.minClearance
	maxX, maxY := v.bounds.MaxX()-v.minClearance, v.bounds.MaxY()-v.minClearance

	for _, req := range requests {
		placedThis := false
		for y := maxY - req.heightMM; y >= minY && !placedThis; y -= req.heightMM + corridorWidthMM {
			for x := minX; x+req.widthMM <= maxX && !placedThis; x += req.widthMM {
				candidate := rectFor(geometry.Point{X: x, Y: y}, req)
				if v.valid(candidate, placed) {
					placed = append(placed, newIlot(candidate, seq))
					seq++
					placedThis = true
				}
			}
		}
	}
	return placed
}

// placeSpiral emits candidates along an Archimedean spiral from the plan
// center, radius stepped 80mm per full turn at 22.5° resolution.
func placeSpiral(v *validator, requests []sizingRequest) []floorplan.Ilot {
	placed := make([]floorplan.Ilot, 0, len(requests))
	seq := 0
	center := geometry.RectCenter(v.bounds)
	maxRadius := math.Hypot(v.bounds.Width, v.bounds.Height)
	const angleStepDeg = 22.5
	const stepsPerTurn = 360 / angleStepDeg
	const radiusPerTurn = 80.0

	for _, req := range requests {
		placedThis := false
		for step := 0; !placedThis; step++ {
			radius := float64(step) * (radiusPerTurn / stepsPerTurn)
			if radius > maxRadius {
				break
			}
			angle := float64(step) * angleStepDeg * math.Pi / 180
			cx := center.X + radius*math.Cos(angle)
			cy := center.Y + radius*math.Sin(angle)
			candidate := geometry.NewRect(cx-req.widthMM/2, cy-req.heightMM/2, req.widthMM, req.heightMM)
			if v.valid(candidate, placed) {
				placed = append(placed, newIlot(candidate, seq))
				seq++
				placedThis = true
			}
		}
	}
	return placed
}

// placeCornerFirst attempts each of the four corners, with minClearance
// margin, in sequence for each sizing request.
func placeCornerFirst(v *validator, requests []sizingRequest) []floorplan.Ilot {
	placed := make([]floorplan.Ilot, 0, len(requests))
	seq := 0

	for _, req := range requests {
		corners := []geometry.Point{
			{X: v.bounds.X + v.minClearance, Y: v.bounds.Y + v.minClearance},                                   // bottom-left
			{X: v.bounds.MaxX() - v.minClearance - req.widthMM, Y: v.bounds.Y + v.minClearance},                 // bottom-right
			{X: v.bounds.X + v.minClearance, Y: v.bounds.MaxY() - v.minClearance - req.heightMM},                // top-left
			{X: v.bounds.MaxX() - v.minClearance - req.widthMM, Y: v.bounds.MaxY() - v.minClearance - req.heightMM}, // top-right
		}
		for _, corner := range corners {
			candidate := rectFor(corner, req)
			if v.valid(candidate, placed) {
				placed = append(placed, newIlot(candidate, seq))
				seq++
				break
			}
		}
	}
	return placed
}

// placeWallAligned iterates walls sorted by length descending and attempts
// to place each request flush along a wall at minClearance. Only
// near-axis-aligned walls support flush placement of an axis-aligned
// rectangle; diagonal walls are skipped.
func placeWallAligned(v *validator, plan floorplan.ProcessedPlan, requests []sizingRequest) []floorplan.Ilot {
	walls := append([]floorplan.Wall(nil), plan.Walls...)
	sort.Slice(walls, func(i, j int) bool { return walls[i].LengthMM() > walls[j].LengthMM() })

	placed := make([]floorplan.Ilot, 0, len(requests))
	seq := 0

	for _, req := range requests {
		placedThis := false
		for _, w := range walls {
			if placedThis {
				break
			}
			candidate, ok := flushCandidate(w, req, v, placed)
			if ok {
				placed = append(placed, newIlot(candidate, seq))
				seq++
				placedThis = true
			}
		}
	}
	return placed
}

func flushCandidate(w floorplan.Wall, req sizingRequest, v *validator, placed []floorplan.Ilot) (geometry.Rect, bool) {
	a, b := w.Segment.A, w.Segment.B
	dx, dy := math.Abs(b.X-a.X), math.Abs(b.Y-a.Y)
	offset := v.minClearance + w.Thickness/2

	switch {
	case dy <= dx: // near-horizontal wall
		minX, maxX := math.Min(a.X, b.X), math.Max(a.X, b.X)
		wallY := (a.Y + b.Y) / 2
		for _, side := range []float64{1, -1} {
			for x := minX; x+req.widthMM <= maxX; x += req.widthMM {
				y := wallY + side*offset
				if side < 0 {
					y -= req.heightMM
				}
				candidate := rectFor(geometry.Point{X: x, Y: y}, req)
				if v.valid(candidate, placed) {
					return candidate, true
				}
			}
		}
	default: // near-vertical wall
		minY, maxY := math.Min(a.Y, b.Y), math.Max(a.Y, b.Y)
		wallX := (a.X + b.X) / 2
		for _, side := range []float64{1, -1} {
			for y := minY; y+req.heightMM <= maxY; y += req.heightMM {
				x := wallX + side*offset
				if side < 0 {
					x -= req.widthMM
				}
				candidate := rectFor(geometry.Point{X: x, Y: y}, req)
				if v.valid(candidate, placed) {
					return candidate, true
				}
			}
		}
	}
	return geometry.Rect{}, false
}

func runDeterministic(algo floorplan.Algorithm, v *validator, plan floorplan.ProcessedPlan, requests []sizingRequest, corridorWidthMM float64) []floorplan.Ilot {
	switch algo {
	case floorplan.AlgorithmSpiral:
		return placeSpiral(v, requests)
	case floorplan.AlgorithmCornerFirst:
		return placeCornerFirst(v, requests)
	case floorplan.AlgorithmWallAligned:
		return placeWallAligned(v, plan, requests)
	default:
		return placeGrid(v, requests, corridorWidthMM)
	}
}
