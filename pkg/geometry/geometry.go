// Package geometry provides the pure, stateless geometric primitives shared
// by every other package in cadtool: points, segments, rectangles and
// bounds, plus the distance and overlap predicates the placement and
// corridor engines build on. Every value here is immutable; nothing in this
// package performs I/O or holds state across calls.
package geometry

import "math"

// GeometryEpsilonMM is the tolerance used for all "equal" comparisons on
// millimeter-valued geometry in this module. Distances at or below this
// value are treated as coincident.
const GeometryEpsilonMM = 1e-3

// Point is a 2D position in millimeters.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Segment is an ordered pair of points.
type Segment struct {
	A Point `json:"a"`
	B Point `json:"b"`
}

// Rect is an axis-aligned rectangle in millimeters. Width and Height are
// always non-negative.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Bounds is an axis-aligned bounding box expressed as min/max corners.
type Bounds struct {
	MinX float64 `json:"minX"`
	MinY float64 `json:"minY"`
	MaxX float64 `json:"maxX"`
	MaxY float64 `json:"maxY"`
}

// NewRect builds a Rect, normalizing negative width/height so the stored
// rectangle always has a non-negative extent.
func NewRect(x, y, w, h float64) Rect {
	if w < 0 {
		x += w
		w = -w
	}
	if h < 0 {
		y += h
		h = -h
	}
	return Rect{X: x, Y: y, Width: w, Height: h}
}

// MaxX returns the right edge of the rectangle.
func (r Rect) MaxX() float64 { return r.X + r.Width }

// MaxY returns the top edge of the rectangle.
func (r Rect) MaxY() float64 { return r.Y + r.Height }

// AreaMM2 returns the rectangle's area in square millimeters.
func (r Rect) AreaMM2() float64 { return r.Width * r.Height }

// AreaM2 returns the rectangle's area in square meters.
func (r Rect) AreaM2() float64 { return r.AreaMM2() / 1e6 }

// Inflate returns a copy of r expanded by buffer on every side. A negative
// buffer shrinks the rectangle, clamped to a minimum zero-size rect
// centered on the original.
func (r Rect) Inflate(buffer float64) Rect {
	w := r.Width + 2*buffer
	h := r.Height + 2*buffer
	cx := r.X + r.Width/2
	cy := r.Y + r.Height/2
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return Rect{X: cx - w/2, Y: cy - h/2, Width: w, Height: h}
}

// RectExpand returns r expanded by m on every side. Alias of Rect.Inflate
// kept as a free function to match the kernel's function-first vocabulary.
func RectExpand(r Rect, m float64) Rect { return r.Inflate(m) }

// RectCenter returns the center point of r.
func RectCenter(r Rect) Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// RectUnion returns the smallest rectangle containing both a and b.
func RectUnion(a, b Rect) Rect {
	minX := math.Min(a.X, b.X)
	minY := math.Min(a.Y, b.Y)
	maxX := math.Max(a.MaxX(), b.MaxX())
	maxY := math.Max(a.MaxY(), b.MaxY())
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// RectOverlap reports whether a and b, each inflated by buffer on every
// side, share any area. buffer must be >= 0.
func RectOverlap(a, b Rect, buffer float64) bool {
	ai := a.Inflate(buffer)
	bi := b.Inflate(buffer)
	if ai.MaxX() <= bi.X+GeometryEpsilonMM || bi.MaxX() <= ai.X+GeometryEpsilonMM {
		return false
	}
	if ai.MaxY() <= bi.Y+GeometryEpsilonMM || bi.MaxY() <= ai.Y+GeometryEpsilonMM {
		return false
	}
	return true
}

// RectDistance returns the shortest Euclidean distance in millimeters
// between two closed, axis-aligned rectangles. Overlapping or touching
// rectangles return 0.
func RectDistance(a, b Rect) float64 {
	dx := 0.0
	if a.MaxX() < b.X {
		dx = b.X - a.MaxX()
	} else if b.MaxX() < a.X {
		dx = a.X - b.MaxX()
	}
	dy := 0.0
	if a.MaxY() < b.Y {
		dy = b.Y - a.MaxY()
	} else if b.MaxY() < a.Y {
		dy = a.Y - b.MaxY()
	}
	if dx <= GeometryEpsilonMM && dy <= GeometryEpsilonMM {
		return 0
	}
	return math.Hypot(dx, dy)
}

// RectContainsPoint reports whether p lies within the closed rectangle r.
func RectContainsPoint(r Rect, p Point) bool {
	return p.X >= r.X-GeometryEpsilonMM && p.X <= r.MaxX()+GeometryEpsilonMM &&
		p.Y >= r.Y-GeometryEpsilonMM && p.Y <= r.MaxY()+GeometryEpsilonMM
}

// RectContainsWithMargin reports whether r lies strictly inside outer,
// shrunk by margin on every side.
func RectContainsWithMargin(outer, r Rect, margin float64) bool {
	inner := Rect{
		X:      outer.X + margin,
		Y:      outer.Y + margin,
		Width:  outer.Width - 2*margin,
		Height: outer.Height - 2*margin,
	}
	if inner.Width < 0 || inner.Height < 0 {
		return false
	}
	return r.X >= inner.X-GeometryEpsilonMM &&
		r.Y >= inner.Y-GeometryEpsilonMM &&
		r.MaxX() <= inner.MaxX()+GeometryEpsilonMM &&
		r.MaxY() <= inner.MaxY()+GeometryEpsilonMM
}

// PointDistance returns the Euclidean distance between two points.
func PointDistance(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// RectToPointDistance returns the shortest distance between the closed
// rectangle r and the point p; 0 if p lies within r.
func RectToPointDistance(r Rect, p Point) float64 {
	dx := 0.0
	if p.X < r.X {
		dx = r.X - p.X
	} else if p.X > r.MaxX() {
		dx = p.X - r.MaxX()
	}
	dy := 0.0
	if p.Y < r.Y {
		dy = r.Y - p.Y
	} else if p.Y > r.MaxY() {
		dy = p.Y - r.MaxY()
	}
	return math.Hypot(dx, dy)
}

// SegmentLength returns the length of a segment.
func SegmentLength(s Segment) float64 {
	return PointDistance(s.A, s.B)
}

// PointSegmentDistance returns the perpendicular distance from p to the
// segment s, clamped to the segment's endpoints.
func PointSegmentDistance(p Point, s Segment) float64 {
	abx := s.B.X - s.A.X
	aby := s.B.Y - s.A.Y
	lenSq := abx*abx + aby*aby
	if lenSq < GeometryEpsilonMM*GeometryEpsilonMM {
		return PointDistance(p, s.A)
	}
	t := ((p.X-s.A.X)*abx + (p.Y-s.A.Y)*aby) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	proj := Point{X: s.A.X + t*abx, Y: s.A.Y + t*aby}
	return PointDistance(p, proj)
}

// SegmentIntersection returns the intersection point of segments a and b,
// and true if they intersect within both segments' extents. Parallel or
// coincident segments return the zero Point and false.
func SegmentIntersection(a, b Segment) (Point, bool) {
	r := Point{X: a.B.X - a.A.X, Y: a.B.Y - a.A.Y}
	s := Point{X: b.B.X - b.A.X, Y: b.B.Y - b.A.Y}
	denom := r.X*s.Y - r.Y*s.X
	if math.Abs(denom) < GeometryEpsilonMM {
		return Point{}, false
	}
	qp := Point{X: b.A.X - a.A.X, Y: b.A.Y - a.A.Y}
	t := (qp.X*s.Y - qp.Y*s.X) / denom
	u := (qp.X*r.Y - qp.Y*r.X) / denom
	if t < -GeometryEpsilonMM || t > 1+GeometryEpsilonMM || u < -GeometryEpsilonMM || u > 1+GeometryEpsilonMM {
		return Point{}, false
	}
	return Point{X: a.A.X + t*r.X, Y: a.A.Y + t*r.Y}, true
}

// BoundsFromRect returns the Bounds equivalent to r.
func BoundsFromRect(r Rect) Bounds {
	return Bounds{MinX: r.X, MinY: r.Y, MaxX: r.MaxX(), MaxY: r.MaxY()}
}

// ToRect returns the Rect equivalent to b.
func (b Bounds) ToRect() Rect {
	return Rect{X: b.MinX, Y: b.MinY, Width: b.MaxX - b.MinX, Height: b.MaxY - b.MinY}
}

// Width returns the bounds' horizontal extent.
func (b Bounds) Width() float64 { return b.MaxX - b.MinX }

// Height returns the bounds' vertical extent.
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

// AreaM2 returns the bounds' area in square meters.
func (b Bounds) AreaM2() float64 { return (b.Width() * b.Height()) / 1e6 }

// Expand grows b, in place semantics via return value, to include p.
func (b Bounds) Expand(p Point) Bounds {
	return Bounds{
		MinX: math.Min(b.MinX, p.X),
		MinY: math.Min(b.MinY, p.Y),
		MaxX: math.Max(b.MaxX, p.X),
		MaxY: math.Max(b.MaxY, p.Y),
	}
}

// MergeBounds returns the smallest Bounds containing both a and b.
func MergeBounds(a, b Bounds) Bounds {
	return Bounds{
		MinX: math.Min(a.MinX, b.MinX),
		MinY: math.Min(a.MinY, b.MinY),
		MaxX: math.Max(a.MaxX, b.MaxX),
		MaxY: math.Max(a.MaxY, b.MaxY),
	}
}

// EmptyBounds returns a degenerate bounds suitable as the identity element
// for repeated Expand calls when accumulating from an unknown first point.
func EmptyBounds() Bounds {
	return Bounds{
		MinX: math.Inf(1), MinY: math.Inf(1),
		MaxX: math.Inf(-1), MaxY: math.Inf(-1),
	}
}

// Valid reports whether b has been expanded by at least one point.
func (b Bounds) Valid() bool {
	return b.MinX <= b.MaxX && b.MinY <= b.MaxY && !math.IsInf(b.MinX, 1)
}
