package dxf

import (
	"strings"
	"testing"

	cadtoolerrors "github.com/arxos/cadtool/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func joinLines(lines ...string) []byte {
	return []byte(strings.Join(lines, "\n") + "\n")
}

func TestParseEmptyEntitiesRejected(t *testing.T) {
	// S1: SECTION/ENTITIES/ENDSEC present but no records.
	data := joinLines(
		"0", "SECTION",
		"2", "ENTITIES",
		"0", "ENDSEC",
		"0", "EOF",
	)
	_, _, err := Parse(data)
	require.Error(t, err)
	code, ok := cadtoolerrors.CodeOf(err)
	require.True(t, ok)
	assert.Equal(t, cadtoolerrors.CodeEmptyEntities, code)
}

func TestParseSingleRoomBox(t *testing.T) {
	// S2: four LINE entities on layer WALL forming a 10000x8000 rectangle.
	data := joinLines(
		"0", "SECTION",
		"2", "ENTITIES",
		"0", "LINE", "8", "WALL", "10", "0", "20", "0", "11", "10000", "21", "0",
		"0", "LINE", "8", "WALL", "10", "10000", "20", "0", "11", "10000", "21", "8000",
		"0", "LINE", "8", "WALL", "10", "10000", "20", "8000", "11", "0", "21", "8000",
		"0", "LINE", "8", "WALL", "10", "0", "20", "8000", "11", "0", "21", "0",
		"0", "ENDSEC",
		"0", "EOF",
	)
	entities, stats, err := Parse(data)
	require.NoError(t, err)
	require.Len(t, entities, 4)
	assert.Equal(t, 4, stats.TypesSeen[KindLine])
	assert.True(t, stats.LayerSet["WALL"])

	line, ok := entities[0].(LineEntity)
	require.True(t, ok)
	assert.Equal(t, "WALL", line.Layer)
	assert.Equal(t, 0.0, line.Start.X)
	assert.Equal(t, 10000.0, line.End.X)
}

func TestParseTruncatedSection(t *testing.T) {
	data := joinLines(
		"0", "SECTION",
		"2", "ENTITIES",
		"0", "LINE", "8", "WALL", "10", "0", "20", "0", "11", "100", "21", "0",
	)
	_, _, err := Parse(data)
	require.Error(t, err)
	code, ok := cadtoolerrors.CodeOf(err)
	require.True(t, ok)
	assert.Equal(t, cadtoolerrors.CodeTruncated, code)
}

func TestParseUnsupportedFormat(t *testing.T) {
	_, _, err := Parse([]byte("%PDF-1.4\nnot a cad file\n"))
	require.Error(t, err)
	code, ok := cadtoolerrors.CodeOf(err)
	require.True(t, ok)
	assert.Equal(t, cadtoolerrors.CodeUnsupportedInput, code)
}

func TestParseDropsMalformedAndIncompleteRecords(t *testing.T) {
	data := joinLines(
		"0", "SECTION",
		"2", "ENTITIES",
		// LINE missing its end point: dropped
		"0", "LINE", "8", "WALL", "10", "0", "20", "0",
		// LINE with malformed numeric: dropped
		"0", "LINE", "8", "WALL", "10", "abc", "20", "0", "11", "10", "21", "0",
		// valid circle
		"0", "CIRCLE", "8", "DOOR", "10", "500", "20", "500", "40", "450",
		"0", "ENDSEC",
		"0", "EOF",
	)
	entities, stats, err := Parse(data)
	require.NoError(t, err)
	require.Len(t, entities, 1)
	assert.Equal(t, 1, stats.TypesSeen[KindCircle])
}

func TestParsePolylineDecomposesSegmentsAndClosedFlag(t *testing.T) {
	data := joinLines(
		"0", "SECTION",
		"2", "ENTITIES",
		"0", "LWPOLYLINE", "8", "WALL",
		"10", "0", "20", "0",
		"10", "1000", "20", "0",
		"10", "1000", "20", "1000",
		"70", "1",
		"0", "ENDSEC",
		"0", "EOF",
	)
	entities, _, err := Parse(data)
	require.NoError(t, err)
	require.Len(t, entities, 1)
	poly, ok := entities[0].(PolylineEntity)
	require.True(t, ok)
	assert.True(t, poly.Closed)
	segs := poly.Segments()
	assert.Len(t, segs, 3) // 2 open segments + 1 closing segment
}

func TestParseIgnoresEntitiesOutsideEntitiesSection(t *testing.T) {
	data := joinLines(
		"0", "SECTION",
		"2", "HEADER",
		"0", "LINE", "8", "WALL", "10", "0", "20", "0", "11", "100", "21", "0",
		"0", "ENDSEC",
		"0", "SECTION",
		"2", "ENTITIES",
		"0", "LINE", "8", "WALL", "10", "0", "20", "0", "11", "100", "21", "0",
		"0", "ENDSEC",
		"0", "EOF",
	)
	entities, _, err := Parse(data)
	require.NoError(t, err)
	assert.Len(t, entities, 1)
}

func TestArcSweepDegrees(t *testing.T) {
	a := ArcEntity{StartAngle: 10, EndAngle: 200}
	assert.InDelta(t, 190, a.SweepDegrees(), 1e-9)
}
