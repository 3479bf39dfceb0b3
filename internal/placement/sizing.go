package placement

import (
	"math/rand"

	"github.com/arxos/cadtool/pkg/floorplan"
)

// sizeClass is one of the four base îlot size buckets.
type sizeClass struct {
	kind   floorplan.IlotType
	widthMM, heightMM float64
	weight float64
}

func baseSizeClasses() []sizeClass {
	return []sizeClass{
		{floorplan.IlotSmall, 120, 80, 0.5},
		{floorplan.IlotMedium, 160, 100, 0.3},
		{floorplan.IlotLarge, 200, 120, 0.15},
		{floorplan.IlotXLarge, 240, 140, 0.05},
	}
}

const minClassWidthMM = 80
const minClassHeightMM = 60

// adjustedSizeClasses clamps each base class to 30% of the plan's bounding
// box and applies the aspect-ratio, restricted-density, and door-count
// adjustments.
func adjustedSizeClasses(plan floorplan.ProcessedPlan) []sizeClass {
	boundsW := plan.Bounds.Width()
	boundsH := plan.Bounds.Height()
	maxW := boundsW * 0.3
	maxH := boundsH * 0.3

	classes := baseSizeClasses()
	for i := range classes {
		classes[i].widthMM = clampDim(classes[i].widthMM, minClassWidthMM, maxW)
		classes[i].heightMM = clampDim(classes[i].heightMM, minClassHeightMM, maxH)
	}

	if boundsH > 0 && boundsW > 2.5*boundsH {
		scaleClasses(classes, 1.3, 0.8)
	} else if boundsW > 0 && boundsH > 2.5*boundsW {
		scaleClasses(classes, 0.8, 1.3)
	}

	totalAreaM2 := plan.Bounds.AreaM2()
	if totalAreaM2 > 0 {
		restrictedDensity := plan.SpaceAnalysis.RestrictedAreaM2 / totalAreaM2
		if restrictedDensity > 0.15 {
			scaleClasses(classes, 0.85, 0.85)
		}
	}

	if len(plan.Doors) > 3 {
		scaleClasses(classes, 1.1, 1.0)
	}

	return classes
}

func clampDim(v, min, max float64) float64 {
	if max > 0 && v > max {
		v = max
	}
	if v < min {
		v = min
	}
	return v
}

func scaleClasses(classes []sizeClass, widthFactor, heightFactor float64) {
	for i := range classes {
		classes[i].widthMM *= widthFactor
		classes[i].heightMM *= heightFactor
	}
}

// sizingRequest is one îlot's target dimensions before jitter is applied.
type sizingRequest struct {
	kind              floorplan.IlotType
	widthMM, heightMM float64
}

// planSizing computes the weighted, count-capped, jittered list of target
// îlot sizes to attempt placement for.
func planSizing(plan floorplan.ProcessedPlan, settings floorplan.Settings, rng *rand.Rand) []sizingRequest {
	classes := adjustedSizeClasses(plan)
	targetAreaM2 := plan.SpaceAnalysis.UsableAreaM2 * settings.DensityPct / 100
	if targetAreaM2 <= 0 {
		return nil
	}

	smallestAreaM2 := areaM2(classes[0].widthMM, classes[0].heightMM)
	for _, c := range classes[1:] {
		if a := areaM2(c.widthMM, c.heightMM); a < smallestAreaM2 {
			smallestAreaM2 = a
		}
	}
	if smallestAreaM2 <= 0 {
		return nil
	}

	count := int(targetAreaM2 / smallestAreaM2)
	if count > 25 {
		count = 25
	}
	if count <= 0 {
		return nil
	}

	requests := make([]sizingRequest, 0, count)
	assigned := 0
	for i, c := range classes {
		var n int
		if i == len(classes)-1 {
			n = count - assigned
		} else {
			n = int(c.weight*float64(count) + 0.5)
			if assigned+n > count {
				n = count - assigned
			}
		}
		for j := 0; j < n; j++ {
			requests = append(requests, sizingRequest{kind: c.kind, widthMM: c.widthMM, heightMM: c.heightMM})
		}
		assigned += n
	}

	for i := range requests {
		requests[i].widthMM = jitter(requests[i].widthMM, rng)
		requests[i].heightMM = jitter(requests[i].heightMM, rng)
	}
	return requests
}

func jitter(v float64, rng *rand.Rand) float64 {
	factor := 1 + (rng.Float64()*2-1)*0.15
	return v * factor
}

func areaM2(widthMM, heightMM float64) float64 {
	return widthMM * heightMM / 1e6
}
