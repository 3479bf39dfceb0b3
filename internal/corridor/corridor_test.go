package corridor

import (
	"testing"

	"github.com/arxos/cadtool/pkg/floorplan"
	"github.com/arxos/cadtool/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rowOfIlots(y float64, xs []float64) []floorplan.Ilot {
	ilots := make([]floorplan.Ilot, len(xs))
	for i, x := range xs {
		ilots[i] = floorplan.Ilot{
			ID:   floorplan.DeterministicID("ilot", i),
			Rect: geometry.NewRect(x, y-500, 1000, 1000),
		}
	}
	return ilots
}

func TestRouteInterRowCorridor(t *testing.T) {
	// S3: two rows of 3 at Y=1000 and Y=3000 with overlapping X spans.
	ilots := append(rowOfIlots(1000, []float64{0, 2000, 4000}), rowOfIlots(3000, []float64{0, 2000, 4000})...)
	layout := floorplan.Layout{Ilots: ilots}
	settings := floorplan.DefaultSettings()
	settings.CorridorWidthMM = 1200
	settings.MinCorridorWidthMM = 1200

	routed := Route(floorplan.ProcessedPlan{}, layout, settings)

	horizontal := 0
	for _, c := range routed.Corridors {
		if c.Kind == floorplan.CorridorHorizontal {
			horizontal++
			assert.InDelta(t, 2000, c.Y1, 1e-9)
			assert.InDelta(t, 2000, c.Y2, 1e-9)
			assert.Equal(t, 1200.0, c.Width)
		}
	}
	assert.Equal(t, 1, horizontal)
}

func TestRouteDoorConnection(t *testing.T) {
	// S4: door at (5000,0) radius 500, one îlot centered at (5000,2000).
	plan := floorplan.ProcessedPlan{
		Doors: []floorplan.Door{{ID: "d1", Center: geometry.Point{X: 5000, Y: 0}, Radius: 500}},
	}
	layout := floorplan.Layout{
		Ilots: []floorplan.Ilot{{ID: "i1", Rect: geometry.NewRect(4500, 1500, 1000, 1000)}},
	}
	settings := floorplan.DefaultSettings()
	settings.CorridorWidthMM = 1200
	settings.MinCorridorWidthMM = 1200

	routed := Route(plan, layout, settings)
	require.Len(t, routed.Corridors, 1)
	c := routed.Corridors[0]
	assert.Equal(t, floorplan.CorridorConnection, c.Kind)
	assert.InDelta(t, 5000, c.X1, 1e-9)
	assert.InDelta(t, 2000, c.Y1, 1e-9)
	assert.InDelta(t, 5000, c.X2, 1e-9)
	assert.InDelta(t, 0, c.Y2, 1e-9)
}

func TestRouteEmptyIlotsReturnsEmpty(t *testing.T) {
	routed := Route(floorplan.ProcessedPlan{}, floorplan.Layout{}, floorplan.DefaultSettings())
	assert.Empty(t, routed.Corridors)
}

func TestRouteSkipsDistantRows(t *testing.T) {
	ilots := append(rowOfIlots(0, []float64{0, 2000}), rowOfIlots(10000, []float64{0, 2000})...)
	settings := floorplan.DefaultSettings()
	settings.CorridorWidthMM = 1200
	settings.MinCorridorWidthMM = 1200
	routed := Route(floorplan.ProcessedPlan{}, floorplan.Layout{Ilots: ilots}, settings)
	for _, c := range routed.Corridors {
		assert.NotEqual(t, floorplan.CorridorHorizontal, c.Kind)
	}
}

func TestRouteEnforcesMinCorridorWidth(t *testing.T) {
	ilots := append(rowOfIlots(1000, []float64{0, 2000}), rowOfIlots(3000, []float64{0, 2000})...)
	settings := floorplan.DefaultSettings()
	settings.CorridorWidthMM = 900
	settings.MinCorridorWidthMM = 1200
	routed := Route(floorplan.ProcessedPlan{}, floorplan.Layout{Ilots: ilots}, settings)
	assert.Empty(t, routed.Corridors, "corridors narrower than minCorridorWidth must be dropped")
}

func TestRouteDedupesCoincidentCorridors(t *testing.T) {
	corridors := []floorplan.Corridor{
		{X1: 0, Y1: 0, X2: 1000, Y2: 0, Width: 1200, Kind: floorplan.CorridorHorizontal},
		{X1: 1000, Y1: 0, X2: 0, Y2: 0, Width: 1200, Kind: floorplan.CorridorHorizontal},
	}
	deduped := dedupe(corridors)
	assert.Len(t, deduped, 1)
}
