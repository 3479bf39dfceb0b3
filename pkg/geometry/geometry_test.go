package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRectOverlap(t *testing.T) {
	a := NewRect(0, 0, 100, 100)
	b := NewRect(50, 50, 100, 100)
	assert.True(t, RectOverlap(a, b, 0))

	c := NewRect(200, 200, 50, 50)
	assert.False(t, RectOverlap(a, c, 0))

	// touching rectangles, no buffer: not overlapping (edges coincide)
	d := NewRect(100, 0, 50, 50)
	assert.False(t, RectOverlap(a, d, 0))
	// with a buffer the inflated rectangles now overlap
	assert.True(t, RectOverlap(a, d, 10))
}

func TestRectDistance(t *testing.T) {
	a := NewRect(0, 0, 100, 100)
	b := NewRect(200, 0, 100, 100)
	assert.InDelta(t, 100, RectDistance(a, b), 1e-9)

	c := NewRect(200, 200, 100, 100)
	assert.InDelta(t, PointDistance(Point{100, 100}, Point{200, 200}), RectDistance(a, c), 1e-9)

	overlapping := NewRect(50, 50, 100, 100)
	assert.Equal(t, 0.0, RectDistance(a, overlapping))
}

func TestPointSegmentDistance(t *testing.T) {
	s := Segment{A: Point{0, 0}, B: Point{100, 0}}
	assert.InDelta(t, 10, PointSegmentDistance(Point{50, 10}, s), 1e-9)
	// beyond the endpoint, clamp to B
	assert.InDelta(t, PointDistance(Point{150, 0}, Point{100, 0}), PointSegmentDistance(Point{150, 0}, s), 1e-9)
}

func TestSegmentLength(t *testing.T) {
	s := Segment{A: Point{0, 0}, B: Point{3, 4}}
	assert.InDelta(t, 5, SegmentLength(s), 1e-9)
}

func TestRectUnionCenterExpand(t *testing.T) {
	a := NewRect(0, 0, 10, 10)
	b := NewRect(20, 20, 10, 10)
	u := RectUnion(a, b)
	assert.Equal(t, Rect{X: 0, Y: 0, Width: 30, Height: 30}, u)

	c := RectCenter(NewRect(0, 0, 10, 20))
	assert.Equal(t, Point{5, 10}, c)

	e := RectExpand(NewRect(10, 10, 10, 10), 5)
	assert.Equal(t, Rect{X: 5, Y: 5, Width: 20, Height: 20}, e)
}

func TestSegmentIntersection(t *testing.T) {
	a := Segment{A: Point{0, 0}, B: Point{10, 10}}
	b := Segment{A: Point{0, 10}, B: Point{10, 0}}
	p, ok := SegmentIntersection(a, b)
	require.True(t, ok)
	assert.InDelta(t, 5, p.X, 1e-9)
	assert.InDelta(t, 5, p.Y, 1e-9)

	parallel := Segment{A: Point{0, 0}, B: Point{10, 0}}
	other := Segment{A: Point{0, 5}, B: Point{10, 5}}
	_, ok = SegmentIntersection(parallel, other)
	assert.False(t, ok)

	nonIntersecting := Segment{A: Point{100, 100}, B: Point{200, 200}}
	_, ok = SegmentIntersection(a, nonIntersecting)
	assert.False(t, ok)
}

func TestBoundsExpandMerge(t *testing.T) {
	b := EmptyBounds()
	assert.False(t, b.Valid())
	b = b.Expand(Point{1, 2})
	b = b.Expand(Point{-3, 4})
	assert.True(t, b.Valid())
	assert.Equal(t, Bounds{MinX: -3, MinY: 2, MaxX: 1, MaxY: 4}, b)

	other := Bounds{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10}
	merged := MergeBounds(b, other)
	assert.Equal(t, Bounds{MinX: -3, MinY: 0, MaxX: 10, MaxY: 10}, merged)
}

func TestRectContainsWithMargin(t *testing.T) {
	outer := NewRect(0, 0, 1000, 1000)
	inside := NewRect(100, 100, 100, 100)
	assert.True(t, RectContainsWithMargin(outer, inside, 80))

	tooClose := NewRect(10, 10, 100, 100)
	assert.False(t, RectContainsWithMargin(outer, tooClose, 80))
}
