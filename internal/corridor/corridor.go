// Package corridor turns a placed layout into a routed one: it groups
// placed îlots into rows, emits inter-row walkways, connects doors to
// their nearest îlot, and deduplicates the result.
package corridor

import (
	"math"
	"sort"

	"github.com/arxos/cadtool/internal/logger"
	"github.com/arxos/cadtool/pkg/floorplan"
	"github.com/arxos/cadtool/pkg/geometry"
)

const rowCohesionMM = 200
const endpointCoincidenceMM = 100

// row is an intermediate grouping of îlots that share a Y-band.
type row struct {
	meanY      float64
	minX, maxX float64
	members    []floorplan.Ilot
}

func groupRows(ilots []floorplan.Ilot) []row {
	var rows []row
	for _, ilot := range ilots {
		center := geometry.RectCenter(ilot.Rect)
		best := -1
		bestDist := math.Inf(1)
		for i, r := range rows {
			d := math.Abs(r.meanY - center.Y)
			if d < bestDist {
				bestDist = d
				best = i
			}
		}
		if best >= 0 && bestDist <= rowCohesionMM {
			r := &rows[best]
			n := float64(len(r.members))
			r.meanY = (r.meanY*n + center.Y) / (n + 1)
			r.minX = math.Min(r.minX, ilot.Rect.X)
			r.maxX = math.Max(r.maxX, ilot.Rect.MaxX())
			r.members = append(r.members, ilot)
			continue
		}
		rows = append(rows, row{
			meanY:   center.Y,
			minX:    ilot.Rect.X,
			maxX:    ilot.Rect.MaxX(),
			members: []floorplan.Ilot{ilot},
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].meanY < rows[j].meanY })
	return rows
}

// interRowCorridors emits one horizontal corridor per adjacent row pair
// whose mean Y values lie within three corridor widths of each other and
// whose horizontal extents overlap by at least rowCohesionMM.
func interRowCorridors(rows []row, corridorWidthMM float64) []floorplan.Corridor {
	var out []floorplan.Corridor
	for i := 0; i+1 < len(rows); i++ {
		a, b := rows[i], rows[i+1]
		gap := math.Abs(b.meanY - a.meanY)
		if gap > 3*corridorWidthMM {
			continue
		}
		left := math.Max(a.minX, b.minX)
		right := math.Min(a.maxX, b.maxX)
		if right-left < rowCohesionMM {
			continue
		}
		y := (a.meanY + b.meanY) / 2
		out = append(out, floorplan.Corridor{
			X1: left, Y1: y, X2: right, Y2: y,
			Width: corridorWidthMM,
			Kind:  floorplan.CorridorHorizontal,
		})
	}
	return out
}

// doorConnections emits one connection corridor per door, to its nearest
// îlot by rect_distance.
func doorConnections(doors []floorplan.Door, ilots []floorplan.Ilot, corridorWidthMM float64) []floorplan.Corridor {
	if len(ilots) == 0 {
		return nil
	}
	var out []floorplan.Corridor
	for _, d := range doors {
		doorPoint := geometry.Rect{X: d.Center.X, Y: d.Center.Y}
		best := ilots[0]
		bestDist := geometry.RectDistance(best.Rect, doorPoint)
		for _, ilot := range ilots[1:] {
			dist := geometry.RectDistance(ilot.Rect, doorPoint)
			if dist < bestDist {
				best, bestDist = ilot, dist
			}
		}
		center := geometry.RectCenter(best.Rect)
		out = append(out, floorplan.Corridor{
			X1: center.X, Y1: center.Y, X2: d.Center.X, Y2: d.Center.Y,
			Width: corridorWidthMM,
			Kind:  floorplan.CorridorConnection,
		})
	}
	return out
}

// dedupe removes corridors whose endpoints coincide within 100mm and
// whose orientation matches an earlier-kept corridor.
func dedupe(corridors []floorplan.Corridor) []floorplan.Corridor {
	var kept []floorplan.Corridor
	for _, c := range corridors {
		duplicate := false
		for _, k := range kept {
			if sameOrientation(c, k) && endpointsCoincide(c, k) {
				duplicate = true
				break
			}
		}
		if !duplicate {
			kept = append(kept, c)
		}
	}
	return kept
}

func sameOrientation(a, b floorplan.Corridor) bool {
	return isHorizontal(a) == isHorizontal(b)
}

func isHorizontal(c floorplan.Corridor) bool {
	return math.Abs(c.Y2-c.Y1) <= math.Abs(c.X2-c.X1)
}

func endpointsCoincide(a, b floorplan.Corridor) bool {
	direct := pointClose(a.X1, a.Y1, b.X1, b.Y1) && pointClose(a.X2, a.Y2, b.X2, b.Y2)
	reversed := pointClose(a.X1, a.Y1, b.X2, b.Y2) && pointClose(a.X2, a.Y2, b.X1, b.Y1)
	return direct || reversed
}

func pointClose(x1, y1, x2, y2 float64) bool {
	return math.Hypot(x2-x1, y2-y1) <= endpointCoincidenceMM
}

// Route computes the corridor network for a placed layout. It never
// errors: a layout with no îlots yields no corridors.
func Route(plan floorplan.ProcessedPlan, layout floorplan.Layout, settings floorplan.Settings) floorplan.Layout {
	if len(layout.Ilots) == 0 {
		layout.Corridors = nil
		return layout
	}

	rows := groupRows(layout.Ilots)
	corridors := interRowCorridors(rows, settings.CorridorWidthMM)
	corridors = append(corridors, doorConnections(plan.Doors, layout.Ilots, settings.CorridorWidthMM)...)
	corridors = dedupe(corridors)

	final := corridors[:0]
	for _, c := range corridors {
		if c.Width < settings.MinCorridorWidthMM {
			logger.Warn("dropping corridor narrower than minimum: width=%.1f min=%.1f", c.Width, settings.MinCorridorWidthMM)
			continue
		}
		final = append(final, c)
	}

	for i := range final {
		final[i].ID = floorplan.DeterministicID("corridor", i)
	}

	layout.Corridors = final
	return layout
}
