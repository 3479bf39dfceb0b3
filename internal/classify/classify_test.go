package classify

import (
	"testing"

	"github.com/arxos/cadtool/internal/dxf"
	cadtoolerrors "github.com/arxos/cadtool/pkg/errors"
	"github.com/arxos/cadtool/pkg/floorplan"
	"github.com/arxos/cadtool/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rectWalls(w, h float64, layer string) []dxf.RawEntity {
	return []dxf.RawEntity{
		dxf.LineEntity{Layer: layer, Start: geometry.Point{X: 0, Y: 0}, End: geometry.Point{X: w, Y: 0}},
		dxf.LineEntity{Layer: layer, Start: geometry.Point{X: w, Y: 0}, End: geometry.Point{X: w, Y: h}},
		dxf.LineEntity{Layer: layer, Start: geometry.Point{X: w, Y: h}, End: geometry.Point{X: 0, Y: h}},
		dxf.LineEntity{Layer: layer, Start: geometry.Point{X: 0, Y: h}, End: geometry.Point{X: 0, Y: 0}},
	}
}

func TestClassifySingleRoomBox(t *testing.T) {
	// S2: 10000x8000mm box on layer WALL.
	plan, err := Classify(rectWalls(10000, 8000, "WALL"))
	require.NoError(t, err)
	require.Len(t, plan.Walls, 4)
	assert.Equal(t, geometry.Bounds{MinX: 0, MinY: 0, MaxX: 10000, MaxY: 8000}, plan.Bounds)
	assert.InDelta(t, 80, plan.SpaceAnalysis.TotalAreaM2, 1e-9)
	// wallArea ~= 4 * avg(10000,10000,8000,8000... ) * 200mm thickness summed /1e6
	expectedWallArea := (2*10000 + 2*8000) * 200.0 / 1e6
	assert.InDelta(t, expectedWallArea, plan.SpaceAnalysis.WallAreaM2, 1e-6)
	assert.InDelta(t, 80-expectedWallArea, plan.SpaceAnalysis.UsableAreaM2, 1e-6)
}

func TestClassifyNoWalls(t *testing.T) {
	entities := []dxf.RawEntity{
		dxf.CircleEntity{Layer: "DOOR", Center: geometry.Point{X: 100, Y: 100}, Radius: 450},
	}
	_, err := Classify(entities)
	require.Error(t, err)
	code, ok := cadtoolerrors.CodeOf(err)
	require.True(t, ok)
	assert.Equal(t, cadtoolerrors.CodeNoWalls, code)
}

func TestClassifyNoGeometry(t *testing.T) {
	_, err := Classify(nil)
	require.Error(t, err)
	code, _ := cadtoolerrors.CodeOf(err)
	assert.Equal(t, cadtoolerrors.CodeNoGeometry, code)
}

func TestClassifyDoorFromArc(t *testing.T) {
	entities := append(rectWalls(5000, 5000, "WALL"),
		dxf.ArcEntity{Layer: "DOOR", Center: geometry.Point{X: 2500, Y: 0}, Radius: 500, StartAngle: 0, EndAngle: 90},
	)
	plan, err := Classify(entities)
	require.NoError(t, err)
	require.Len(t, plan.Doors, 1)
	assert.Equal(t, floorplan.SwingRight, plan.Doors[0].Swing)
	assert.InDelta(t, 500, plan.Doors[0].Radius, 1e-9)
}

func TestClassifyDoubleDoorFromWideSweep(t *testing.T) {
	entities := append(rectWalls(5000, 5000, "WALL"),
		dxf.ArcEntity{Layer: "DOOR", Center: geometry.Point{X: 2500, Y: 0}, Radius: 500, StartAngle: 0, EndAngle: 200},
	)
	plan, err := Classify(entities)
	require.NoError(t, err)
	require.Len(t, plan.Doors, 1)
	assert.Equal(t, floorplan.SwingDouble, plan.Doors[0].Swing)
}

func TestClassifyEntranceFlag(t *testing.T) {
	entities := append(rectWalls(5000, 5000, "WALL"),
		dxf.ArcEntity{Layer: "MAIN-ENTRANCE", Center: geometry.Point{X: 2500, Y: 0}, Radius: 500, StartAngle: 0, EndAngle: 90},
	)
	plan, err := Classify(entities)
	require.NoError(t, err)
	require.Len(t, plan.Doors, 1)
	assert.True(t, plan.Doors[0].IsEntrance)
}

func TestClassifyWindow(t *testing.T) {
	entities := append(rectWalls(5000, 5000, "WALL"),
		dxf.LineEntity{Layer: "WINDOW", Start: geometry.Point{X: 500, Y: 0}, End: geometry.Point{X: 4500, Y: 30}},
	)
	plan, err := Classify(entities)
	require.NoError(t, err)
	require.Len(t, plan.Windows, 1)
}

func TestClassifyRestrictedAreaAndCategory(t *testing.T) {
	entities := append(rectWalls(10000, 10000, "WALL"),
		dxf.PolylineEntity{Layer: "STAIRS", Vertices: []geometry.Point{
			{X: 1000, Y: 1000}, {X: 3000, Y: 1000}, {X: 3000, Y: 3000}, {X: 1000, Y: 3000},
		}},
	)
	plan, err := Classify(entities)
	require.NoError(t, err)
	require.Len(t, plan.RestrictedAreas, 1)
	assert.Equal(t, floorplan.CategoryStairs, plan.RestrictedAreas[0].Category)
	assert.InDelta(t, 4, plan.RestrictedAreas[0].AreaM2(), 1e-9)
}

func TestClassifyDiscardsShortWalls(t *testing.T) {
	entities := append(rectWalls(5000, 5000, "WALL"),
		dxf.LineEntity{Layer: "WALL", Start: geometry.Point{X: 10, Y: 10}, End: geometry.Point{X: 15, Y: 10}},
	)
	plan, err := Classify(entities)
	require.NoError(t, err)
	assert.Len(t, plan.Walls, 4)
}

func TestClassifyDefaultLayerIsWall(t *testing.T) {
	plan, err := Classify(rectWalls(1000, 1000, "0"))
	require.NoError(t, err)
	assert.Len(t, plan.Walls, 4)
	for _, w := range plan.Walls {
		assert.Equal(t, 150.0, w.Thickness)
	}
}

func TestClassifyPartitionThickness(t *testing.T) {
	plan, err := Classify(rectWalls(1000, 1000, "PARTITION-A"))
	require.NoError(t, err)
	for _, w := range plan.Walls {
		assert.Equal(t, 100.0, w.Thickness)
	}
}
