package placement

import (
	"github.com/arxos/cadtool/pkg/floorplan"
	"github.com/arxos/cadtool/pkg/geometry"
)

const accessibilityCutoffMM = 3000
const fireDoorRangeMM = 30000
const fireMinCorridorWidthMM = 1200

type fitnessWeights struct {
	area, accessibility, fire, flow float64
}

func weightsFor(target floorplan.OptimizationTarget) fitnessWeights {
	switch target {
	case floorplan.TargetAccessibility:
		return fitnessWeights{0.2, 0.5, 0.2, 0.1}
	case floorplan.TargetFire:
		return fitnessWeights{0.2, 0.2, 0.5, 0.1}
	case floorplan.TargetFlow:
		return fitnessWeights{0.2, 0.2, 0.1, 0.5}
	default:
		return fitnessWeights{0.5, 0.2, 0.2, 0.1}
	}
}

// dynamicBoost applies the door-count and restricted-density adjustments
// to the base fitness weights and renormalizes them to sum to 1.
func dynamicBoost(w fitnessWeights, doorCount int, restrictedDensity float64) fitnessWeights {
	if doorCount > 3 {
		w.flow *= 1.3
		w.area *= 0.8
	}
	if restrictedDensity > 0.2 {
		w.accessibility *= 1.4
		w.fire *= 1.2
	}
	sum := w.area + w.accessibility + w.fire + w.flow
	if sum <= 0 {
		return fitnessWeights{0.25, 0.25, 0.25, 0.25}
	}
	return fitnessWeights{w.area / sum, w.accessibility / sum, w.fire / sum, w.flow / sum}
}

// inverseProximity maps a distance to [0,1], 1 at distance 0, 0 at or
// beyond cutoff.
func inverseProximity(dist, cutoff float64) float64 {
	if cutoff <= 0 {
		return 0
	}
	score := 1 - dist/cutoff
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

func ilotCenter(i floorplan.Ilot) geometry.Point {
	return geometry.RectCenter(i.Rect)
}

func accessibilityScore(ilots []floorplan.Ilot, corridors []floorplan.Corridor, plan floorplan.ProcessedPlan) float64 {
	if len(ilots) == 0 {
		return 0
	}
	total := 0.0
	for idx, ilot := range ilots {
		center := ilotCenter(ilot)

		doorScore := 1.0
		if len(plan.Doors) > 0 {
			best := minDistance(center, doorCenters(plan.Doors))
			doorScore = inverseProximity(best, accessibilityCutoffMM)
		}

		peerScore := 1.0
		if len(ilots) > 1 {
			best := -1.0
			for j, other := range ilots {
				if j == idx {
					continue
				}
				d := geometry.PointDistance(center, ilotCenter(other))
				if best < 0 || d < best {
					best = d
				}
			}
			peerScore = inverseProximity(best, accessibilityCutoffMM)
		}

		corridorScore := 1.0
		if len(corridors) > 0 {
			best := -1.0
			for _, c := range corridors {
				d := geometry.PointSegmentDistance(center, geometry.Segment{
					A: geometry.Point{X: c.X1, Y: c.Y1},
					B: geometry.Point{X: c.X2, Y: c.Y2},
				})
				if best < 0 || d < best {
					best = d
				}
			}
			corridorScore = inverseProximity(best, accessibilityCutoffMM)
		}

		emergencyScore := 1.0
		entrances := entranceCenters(plan.Doors)
		if len(entrances) > 0 {
			emergencyScore = inverseProximity(minDistance(center, entrances), accessibilityCutoffMM)
		} else if len(plan.Doors) > 0 {
			emergencyScore = inverseProximity(minDistance(center, doorCenters(plan.Doors)), accessibilityCutoffMM)
		}

		total += 0.3*doorScore + 0.25*peerScore + 0.25*corridorScore + 0.2*emergencyScore
	}
	return total / float64(len(ilots))
}

func doorCenters(doors []floorplan.Door) []geometry.Point {
	pts := make([]geometry.Point, len(doors))
	for i, d := range doors {
		pts[i] = d.Center
	}
	return pts
}

func entranceCenters(doors []floorplan.Door) []geometry.Point {
	var pts []geometry.Point
	for _, d := range doors {
		if d.IsEntrance {
			pts = append(pts, d.Center)
		}
	}
	return pts
}

func minDistance(from geometry.Point, pts []geometry.Point) float64 {
	best := -1.0
	for _, p := range pts {
		d := geometry.PointDistance(from, p)
		if best < 0 || d < best {
			best = d
		}
	}
	return best
}

// fireComplianceScore is the fraction of fire-egress compliance checks
// that pass across the whole candidate layout.
func fireComplianceScore(ilots []floorplan.Ilot, corridors []floorplan.Corridor, plan floorplan.ProcessedPlan, minClearance float64) float64 {
	pass, total := 0, 0

	for _, ilot := range ilots {
		total++
		if len(plan.Doors) == 0 || minDistance(ilotCenter(ilot), doorCenters(plan.Doors)) <= fireDoorRangeMM {
			pass++
		}
		for _, w := range plan.Walls {
			for _, endpoint := range []geometry.Point{w.Segment.A, w.Segment.B} {
				total++
				if geometry.RectToPointDistance(ilot.Rect, endpoint) >= minClearance {
					pass++
				}
			}
		}
	}
	for _, c := range corridors {
		total++
		if c.Width >= fireMinCorridorWidthMM {
			pass++
		}
	}

	if total == 0 {
		return 1
	}
	return float64(pass) / float64(total)
}

// flowEfficiencyScore always returns 1: flow-path identification is not
// implemented, so this dimension contributes a neutral score.
func flowEfficiencyScore(ilots []floorplan.Ilot, plan floorplan.ProcessedPlan) float64 {
	return 1
}

// evaluate scores a candidate îlot set against the plan, returning the
// full metrics breakdown.
func evaluate(ilots []floorplan.Ilot, corridors []floorplan.Corridor, plan floorplan.ProcessedPlan, settings floorplan.Settings) floorplan.LayoutMetrics {
	var m floorplan.LayoutMetrics
	m.IlotCount = len(ilots)
	for _, i := range ilots {
		m.TotalIlotAreaM2 += i.AreaM2()
	}
	for _, c := range corridors {
		m.TotalCorridorLengthMM += c.LengthMM()
	}

	areaUtil := 0.0
	if plan.SpaceAnalysis.UsableAreaM2 > 0 {
		areaUtil = m.TotalIlotAreaM2 / plan.SpaceAnalysis.UsableAreaM2
		if areaUtil > 1 {
			areaUtil = 1
		}
	}
	m.OccupancyPct = areaUtil * 100

	m.AccessibilityScore = accessibilityScore(ilots, corridors, plan)
	m.FireComplianceScore = fireComplianceScore(ilots, corridors, plan, settings.MinClearanceMM)
	m.FlowEfficiencyScore = flowEfficiencyScore(ilots, plan)

	totalAreaM2 := plan.Bounds.AreaM2()
	restrictedDensity := 0.0
	if totalAreaM2 > 0 {
		restrictedDensity = plan.SpaceAnalysis.RestrictedAreaM2 / totalAreaM2
	}
	w := dynamicBoost(weightsFor(settings.OptimizationTarget), len(plan.Doors), restrictedDensity)

	m.OverallScore = w.area*areaUtil + w.accessibility*m.AccessibilityScore +
		w.fire*m.FireComplianceScore + w.flow*m.FlowEfficiencyScore
	return m
}
