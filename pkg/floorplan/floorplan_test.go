package floorplan

import (
	"testing"

	"github.com/arxos/cadtool/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyIlotType(t *testing.T) {
	assert.Equal(t, IlotSmall, ClassifyIlotType(4.9))
	assert.Equal(t, IlotMedium, ClassifyIlotType(7))
	assert.Equal(t, IlotLarge, ClassifyIlotType(12))
	assert.Equal(t, IlotXLarge, ClassifyIlotType(20))
}

func TestDeterministicIDStable(t *testing.T) {
	a := DeterministicID("ilot", 3)
	b := DeterministicID("ilot", 3)
	assert.Equal(t, a, b)

	c := DeterministicID("ilot", 4)
	assert.NotEqual(t, a, c)
}

func TestDefaultSettingsValid(t *testing.T) {
	err := Validate(DefaultSettings())
	assert.NoError(t, err)
}

func TestValidateRejectsOutOfRange(t *testing.T) {
	s := DefaultSettings()
	s.DensityPct = 150
	s.Algorithm = "bogus"
	err := Validate(s)
	require.Error(t, err)
}

func TestWallLengthAndWindowArea(t *testing.T) {
	w := Wall{Segment: geometry.Segment{A: geometry.Point{X: 0, Y: 0}, B: geometry.Point{X: 3000, Y: 4000}}}
	assert.InDelta(t, 5000, w.LengthMM(), 1e-6)

	win := Window{Bounds: geometry.NewRect(0, 0, 1000, 1500)}
	assert.InDelta(t, 1.5, win.AreaM2(), 1e-9)
}
