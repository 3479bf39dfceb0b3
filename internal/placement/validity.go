package placement

import (
	"github.com/arxos/cadtool/internal/cache"
	"github.com/arxos/cadtool/pkg/floorplan"
	"github.com/arxos/cadtool/pkg/geometry"
)

// validator holds the per-call inputs needed to check candidate validity.
// It is constructed once per Place call and is safe for concurrent
// read-only use by multiple fitness-evaluation workers.
type validator struct {
	bounds       geometry.Rect
	plan         floorplan.ProcessedPlan
	minClearance float64
	cache        *cache.DistanceCache
}

func newValidator(plan floorplan.ProcessedPlan, minClearance float64, c *cache.DistanceCache) *validator {
	return &validator{
		bounds:       plan.Bounds.ToRect(),
		plan:         plan,
		minClearance: minClearance,
		cache:        c,
	}
}

// valid reports whether candidate c may be placed given the îlots already
// committed in placed.
func (v *validator) valid(c geometry.Rect, placed []floorplan.Ilot) bool {
	if !geometry.RectContainsWithMargin(v.bounds, c, v.minClearance) {
		return false
	}
	for _, e := range placed {
		if geometry.RectOverlap(c, e.Rect, v.minClearance) {
			return false
		}
	}
	for _, r := range v.plan.RestrictedAreas {
		if geometry.RectOverlap(c, r.Bounds, v.minClearance) {
			return false
		}
	}
	for _, d := range v.plan.Doors {
		key := cache.Key("door-dist", c.X, c.Y, c.Width, c.Height, d.Center.X, d.Center.Y)
		dist := v.cache.GetOrCompute(key, func() float64 {
			return geometry.RectToPointDistance(c, d.Center)
		})
		if dist < d.Radius+v.minClearance {
			return false
		}
	}
	return true
}
