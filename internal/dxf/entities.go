// Package dxf streams the vendor-neutral ASCII group-code drawing exchange
// format into a flat, ordered list of typed RawEntity values. It performs
// no classification — that is internal/classify's job — only recognizes
// entity shape and carries raw coordinates forward.
package dxf

import "github.com/arxos/cadtool/pkg/geometry"

// EntityKind identifies which concrete RawEntity variant a record holds.
type EntityKind string

const (
	KindLine     EntityKind = "LINE"
	KindPolyline EntityKind = "POLYLINE"
	KindCircle   EntityKind = "CIRCLE"
	KindArc      EntityKind = "ARC"
	KindInsert   EntityKind = "INSERT"
)

// RawEntity is the tagged-variant interface every recognized entity kind
// implements; each concrete type below carries only the fields valid for
// its kind, in place of an untyped bag of optional fields.
type RawEntity interface {
	Kind() EntityKind
	LayerName() string
}

// LineEntity is a two-point LINE record.
type LineEntity struct {
	Layer     string
	Start     geometry.Point
	End       geometry.Point
	Thickness *float64 // explicit thickness/lineweight override, mm, if present
}

func (e LineEntity) Kind() EntityKind   { return KindLine }
func (e LineEntity) LayerName() string  { return e.Layer }

// PolylineEntity is an LWPOLYLINE/POLYLINE record with two or more vertices.
type PolylineEntity struct {
	Layer     string
	Vertices  []geometry.Point
	Closed    bool
	Thickness *float64
}

func (e PolylineEntity) Kind() EntityKind  { return KindPolyline }
func (e PolylineEntity) LayerName() string { return e.Layer }

// Segments decomposes the polyline into consecutive two-point segments,
// closing the loop if Closed is set.
func (e PolylineEntity) Segments() []geometry.Segment {
	if len(e.Vertices) < 2 {
		return nil
	}
	segs := make([]geometry.Segment, 0, len(e.Vertices))
	for i := 0; i+1 < len(e.Vertices); i++ {
		segs = append(segs, geometry.Segment{A: e.Vertices[i], B: e.Vertices[i+1]})
	}
	if e.Closed {
		segs = append(segs, geometry.Segment{A: e.Vertices[len(e.Vertices)-1], B: e.Vertices[0]})
	}
	return segs
}

// CircleEntity is a CIRCLE record.
type CircleEntity struct {
	Layer  string
	Center geometry.Point
	Radius float64
}

func (e CircleEntity) Kind() EntityKind  { return KindCircle }
func (e CircleEntity) LayerName() string { return e.Layer }

// ArcEntity is an ARC record with a start/end angle sweep in degrees.
type ArcEntity struct {
	Layer      string
	Center     geometry.Point
	Radius     float64
	StartAngle float64
	EndAngle   float64
}

func (e ArcEntity) Kind() EntityKind  { return KindArc }
func (e ArcEntity) LayerName() string { return e.Layer }

// SweepDegrees returns the arc's angular sweep, normalized to [0, 360).
func (e ArcEntity) SweepDegrees() float64 {
	sweep := e.EndAngle - e.StartAngle
	for sweep < 0 {
		sweep += 360
	}
	for sweep >= 360 {
		sweep -= 360
	}
	return sweep
}

// InsertEntity is a block reference, retained only when the classifier
// decides its layer suggests a restricted fixture.
type InsertEntity struct {
	Layer       string
	Point       geometry.Point
	BlockName   string
}

func (e InsertEntity) Kind() EntityKind  { return KindInsert }
func (e InsertEntity) LayerName() string { return e.Layer }

// ParseStats summarizes a successful parse.
type ParseStats struct {
	EntityCount int
	LayerSet    map[string]bool
	TypesSeen   map[EntityKind]int
}

func newParseStats() *ParseStats {
	return &ParseStats{
		LayerSet:  make(map[string]bool),
		TypesSeen: make(map[EntityKind]int),
	}
}

func (s *ParseStats) record(e RawEntity) {
	s.EntityCount++
	s.LayerSet[e.LayerName()] = true
	s.TypesSeen[e.Kind()]++
}
