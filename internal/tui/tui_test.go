package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arxos/cadtool/pkg/floorplan"
	"github.com/arxos/cadtool/pkg/geometry"
)

func samplePlan() floorplan.ProcessedPlan {
	return floorplan.ProcessedPlan{
		Walls: []floorplan.Wall{
			{ID: "w1", Segment: geometry.Segment{A: geometry.Point{X: 0, Y: 0}, B: geometry.Point{X: 10000, Y: 0}}, Thickness: 100},
		},
		Doors: []floorplan.Door{
			{ID: "d1", Center: geometry.Point{X: 5000, Y: 0}, Radius: 450},
		},
		Bounds: geometry.Bounds{MinX: 0, MinY: 0, MaxX: 10000, MaxY: 8000},
	}
}

func sampleLayout() floorplan.Layout {
	return floorplan.Layout{
		Ilots: []floorplan.Ilot{
			{ID: "i1", Rect: geometry.Rect{X: 100, Y: 100, Width: 2000, Height: 2000}, Type: floorplan.IlotSmall},
			{ID: "i2", Rect: geometry.Rect{X: 3000, Y: 100, Width: 3000, Height: 4000}, Type: floorplan.IlotXLarge},
		},
		Corridors: []floorplan.Corridor{
			{ID: "c1", X1: 0, Y1: 3000, X2: 10000, Y2: 3000, Width: 1200, Kind: floorplan.CorridorHorizontal},
		},
		Metrics: floorplan.LayoutMetrics{IlotCount: 2, OverallScore: 0.75},
	}
}

func TestRenderIncludesLegendAndHeader(t *testing.T) {
	styles := NewStyles(DefaultTheme)
	renderer := NewRenderer(80, 24, samplePlan().Bounds, styles)
	out := renderer.Render(samplePlan(), sampleLayout())

	assert.Contains(t, out, "cadtool layout")
	assert.Contains(t, out, "legend:")
	assert.Contains(t, out, "2 îlots")
}

func TestRenderHandlesEmptyLayout(t *testing.T) {
	styles := NewStyles(DefaultTheme)
	renderer := NewRenderer(40, 10, geometry.Bounds{}, styles)
	out := renderer.Render(floorplan.ProcessedPlan{}, floorplan.Layout{})
	assert.Contains(t, out, "0 îlots")
}

func TestIlotGlyphCoversAllTypes(t *testing.T) {
	styles := NewStyles(DefaultTheme)
	renderer := NewRenderer(80, 24, geometry.Bounds{MaxX: 1000, MaxY: 1000}, styles)

	types := []floorplan.IlotType{floorplan.IlotSmall, floorplan.IlotMedium, floorplan.IlotLarge, floorplan.IlotXLarge}
	seen := map[rune]bool{}
	for _, tp := range types {
		_, glyph := renderer.ilotGlyph(tp)
		seen[glyph] = true
	}
	assert.Len(t, seen, 4)
}

func TestModelInitTriggersRecompute(t *testing.T) {
	called := false
	recompute := func(ctx context.Context) (floorplan.Layout, error) {
		called = true
		return sampleLayout(), nil
	}
	m := NewModel(samplePlan(), floorplan.DefaultSettings(), recompute)
	cmd := m.Init()
	require.NotNil(t, cmd)

	msg := cmd()
	_, ok := msg.(layoutMsg)
	require.True(t, ok)
	assert.True(t, called)
}

func TestModelUpdateHandlesLayoutMsg(t *testing.T) {
	m := NewModel(samplePlan(), floorplan.DefaultSettings(), nil)
	updated, cmd := m.Update(layoutMsg{layout: sampleLayout()})
	next := updated.(Model)

	assert.False(t, next.loading)
	assert.Nil(t, next.err)
	assert.Equal(t, 2, next.layout.Metrics.IlotCount)
	assert.Nil(t, cmd)
}

func TestModelUpdateHandlesErrMsg(t *testing.T) {
	m := NewModel(samplePlan(), floorplan.DefaultSettings(), nil)
	updated, _ := m.Update(errMsg{err: errors.New("boom")})
	next := updated.(Model)

	assert.False(t, next.loading)
	require.Error(t, next.err)
}

func TestModelUpdateQuitsOnCtrlC(t *testing.T) {
	m := NewModel(samplePlan(), floorplan.DefaultSettings(), nil)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
}

func TestModelUpdateCyclesTabs(t *testing.T) {
	m := NewModel(samplePlan(), floorplan.DefaultSettings(), nil)
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	next := updated.(Model)
	assert.Equal(t, tabMetrics, next.selectedTab)

	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyTab})
	next = updated.(Model)
	assert.Equal(t, tabLayout, next.selectedTab)
}

func TestModelUpdateRecomputeResetsLoading(t *testing.T) {
	recompute := func(ctx context.Context) (floorplan.Layout, error) {
		return sampleLayout(), nil
	}
	m := NewModel(samplePlan(), floorplan.DefaultSettings(), recompute)
	m.loading = false
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	next := updated.(Model)

	assert.True(t, next.loading)
	require.NotNil(t, cmd)
}

func TestModelViewRendersMetricsTab(t *testing.T) {
	m := NewModel(samplePlan(), floorplan.DefaultSettings(), nil)
	m.loading = false
	m.layout = sampleLayout()
	m.selectedTab = tabMetrics

	view := m.View()
	assert.Contains(t, view, "overall score")
}

func TestModelViewShowsLoadingState(t *testing.T) {
	m := NewModel(samplePlan(), floorplan.DefaultSettings(), nil)
	view := m.View()
	assert.Contains(t, view, "computing layout")
}
