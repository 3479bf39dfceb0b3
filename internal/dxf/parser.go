package dxf

import (
	"bufio"
	"bytes"
	"strconv"
	"strings"

	cadtoolerrors "github.com/arxos/cadtool/pkg/errors"
	"github.com/arxos/cadtool/internal/logger"
	"github.com/arxos/cadtool/pkg/geometry"
)

// recognizedTypeNames are the group-code entity type values this parser
// understands; anything else is ignored at the 0-code level.
var recognizedTypeNames = map[string]EntityKind{
	"LINE":       KindLine,
	"LWPOLYLINE": KindPolyline,
	"POLYLINE":   KindPolyline,
	"CIRCLE":     KindCircle,
	"ARC":        KindArc,
	"INSERT":     KindInsert,
}

type parserState int

const (
	stOutside parserState = iota
	stSectionHeader
	stEntities
	stOtherSection
)

// codePair is one group-code line and its following value line.
type codePair struct {
	code  int
	value string
}

// record accumulates the group codes for one in-progress entity.
type record struct {
	typeName string
	layer    string
	pairs    []codePair
}

// Parse streams raw bytes in the group-code format and returns the ordered
// RawEntity list found inside the ENTITIES section, plus summary stats.
// Result and Stats is nil, nil only on error.
func Parse(data []byte) ([]RawEntity, *ParseStats, error) {
	if !looksLikeGroupCodeFormat(data) {
		return nil, nil, cadtoolerrors.New(cadtoolerrors.CodeUnsupportedInput,
			"input is not the vendor-neutral ASCII group-code drawing exchange format")
	}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)

	state := stOutside
	var cur *record
	var entities []RawEntity
	stats := newParseStats()
	sawEntitiesSection := false

	finalizeRecord := func() {
		if cur == nil {
			return
		}
		if state == stEntities {
			if e := buildEntity(*cur); e != nil {
				entities = append(entities, e)
				stats.record(e)
			}
		}
		cur = nil
	}

	for {
		pair, ok := nextCodePair(scanner)
		if !ok {
			break
		}
		code, value := pair.code, pair.value
		if code == 0 {
			finalizeRecord()
			switch value {
			case "SECTION":
				state = stSectionHeader
			case "ENDSEC":
				state = stOutside
			case "EOF":
				state = stOutside
			default:
				if state == stEntities {
					if _, ok := recognizedTypeNames[value]; ok {
						cur = &record{typeName: value, layer: "0"}
					} else {
						cur = nil
					}
				}
			}
			continue
		}

		switch state {
		case stSectionHeader:
			if code == 2 {
				if value == "ENTITIES" {
					state = stEntities
					sawEntitiesSection = true
				} else {
					state = stOtherSection
				}
			}
		case stEntities:
			if cur == nil {
				continue
			}
			if code == 8 {
				cur.layer = value
			}
			cur.pairs = append(cur.pairs, codePair{code: code, value: value})
		default:
			// outside ENTITIES: ignore all other group codes
		}
	}
	finalizeRecord()

	if state != stOutside {
		return nil, nil, cadtoolerrors.New(cadtoolerrors.CodeTruncated,
			"input ended inside an unfinished SECTION")
	}
	if !sawEntitiesSection || len(entities) == 0 {
		return nil, nil, cadtoolerrors.New(cadtoolerrors.CodeEmptyEntities,
			"ENTITIES section contains no valid records")
	}

	logger.Debug("dxf: parsed %d entities across %d layers", stats.EntityCount, len(stats.LayerSet))
	return entities, stats, nil
}

// nextCodePair reads the next group-code/value line pair from scanner,
// skipping blank lines and any code line that fails to parse as an
// integer (malformed input; parsing continues regardless). Returns
// ok=false once the stream is exhausted. A trailing unpaired code line at
// end of stream is dropped silently — the caller's SECTION-balance check
// catches a truncated input regardless.
func nextCodePair(scanner *bufio.Scanner) (codePair, bool) {
	for scanner.Scan() {
		codeLine := strings.TrimSpace(scanner.Text())
		if codeLine == "" {
			continue
		}
		code, err := strconv.Atoi(codeLine)
		if err != nil {
			logger.Debug("dxf: skipping malformed group code line %q", codeLine)
			continue
		}
		if !scanner.Scan() {
			return codePair{}, false
		}
		value := strings.TrimSpace(scanner.Text())
		return codePair{code: code, value: value}, true
	}
	return codePair{}, false
}

// looksLikeGroupCodeFormat does a cheap structural sniff: the first
// non-blank line must parse as an integer group code, matching this
// format's pair-of-lines grammar. PDFs, images, and DWG binaries all fail
// this check immediately.
func looksLikeGroupCodeFormat(data []byte) bool {
	lines := bytes.SplitN(data, []byte("\n"), 4)
	for _, l := range lines {
		line := strings.TrimSpace(string(l))
		if line == "" {
			continue
		}
		_, err := strconv.Atoi(line)
		return err == nil
	}
	return false
}

// buildEntity converts an accumulated record into a concrete RawEntity,
// returning nil if the record carries no valid geometry.
func buildEntity(r record) RawEntity {
	kind, ok := recognizedTypeNames[r.typeName]
	if !ok {
		return nil
	}
	switch kind {
	case KindLine:
		return buildLine(r)
	case KindPolyline:
		return buildPolyline(r)
	case KindCircle:
		return buildCircle(r)
	case KindArc:
		return buildArc(r)
	case KindInsert:
		return buildInsert(r)
	default:
		return nil
	}
}

func parseFloatOK(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func buildLine(r record) RawEntity {
	var x1, y1, x2, y2 float64
	var hasX1, hasY1, hasX2, hasY2 bool
	var thickness *float64
	for _, p := range r.pairs {
		switch p.code {
		case 10:
			if v, ok := parseFloatOK(p.value); ok {
				x1, hasX1 = v, true
			}
		case 20:
			if v, ok := parseFloatOK(p.value); ok {
				y1, hasY1 = v, true
			}
		case 11:
			if v, ok := parseFloatOK(p.value); ok {
				x2, hasX2 = v, true
			}
		case 21:
			if v, ok := parseFloatOK(p.value); ok {
				y2, hasY2 = v, true
			}
		case 39, 370:
			if v, ok := parseFloatOK(p.value); ok {
				thickness = &v
			}
		}
	}
	if !hasX1 || !hasY1 || !hasX2 || !hasY2 {
		return nil
	}
	return LineEntity{
		Layer:     r.layer,
		Start:     geometry.Point{X: x1, Y: y1},
		End:       geometry.Point{X: x2, Y: y2},
		Thickness: thickness,
	}
}

func buildPolyline(r record) RawEntity {
	var vertices []geometry.Point
	var pendingX float64
	var havePendingX bool
	flag70 := 0
	var thickness *float64
	for _, p := range r.pairs {
		switch p.code {
		case 10:
			if v, ok := parseFloatOK(p.value); ok {
				pendingX, havePendingX = v, true
			}
		case 20:
			if v, ok := parseFloatOK(p.value); ok && havePendingX {
				vertices = append(vertices, geometry.Point{X: pendingX, Y: v})
				havePendingX = false
			}
		case 70:
			if v, err := strconv.Atoi(strings.TrimSpace(p.value)); err == nil {
				flag70 = v
			}
		case 39, 370:
			if v, ok := parseFloatOK(p.value); ok {
				thickness = &v
			}
		}
	}
	if len(vertices) < 2 {
		return nil
	}
	return PolylineEntity{
		Layer:     r.layer,
		Vertices:  vertices,
		Closed:    flag70&1 == 1,
		Thickness: thickness,
	}
}

func buildCircle(r record) RawEntity {
	var cx, cy, radius float64
	var hasCx, hasCy, hasR bool
	for _, p := range r.pairs {
		switch p.code {
		case 10:
			if v, ok := parseFloatOK(p.value); ok {
				cx, hasCx = v, true
			}
		case 20:
			if v, ok := parseFloatOK(p.value); ok {
				cy, hasCy = v, true
			}
		case 40:
			if v, ok := parseFloatOK(p.value); ok {
				radius, hasR = v, true
			}
		}
	}
	if !hasCx || !hasCy || !hasR {
		return nil
	}
	return CircleEntity{Layer: r.layer, Center: geometry.Point{X: cx, Y: cy}, Radius: radius}
}

func buildArc(r record) RawEntity {
	var cx, cy, radius, startAngle, endAngle float64
	var hasCx, hasCy, hasR bool
	for _, p := range r.pairs {
		switch p.code {
		case 10:
			if v, ok := parseFloatOK(p.value); ok {
				cx, hasCx = v, true
			}
		case 20:
			if v, ok := parseFloatOK(p.value); ok {
				cy, hasCy = v, true
			}
		case 40:
			if v, ok := parseFloatOK(p.value); ok {
				radius, hasR = v, true
			}
		case 50:
			if v, ok := parseFloatOK(p.value); ok {
				startAngle = v
			}
		case 51:
			if v, ok := parseFloatOK(p.value); ok {
				endAngle = v
			}
		}
	}
	if !hasCx || !hasCy || !hasR {
		return nil
	}
	return ArcEntity{
		Layer: r.layer, Center: geometry.Point{X: cx, Y: cy},
		Radius: radius, StartAngle: startAngle, EndAngle: endAngle,
	}
}

func buildInsert(r record) RawEntity {
	var x, y float64
	var hasX, hasY bool
	blockName := ""
	for _, p := range r.pairs {
		switch p.code {
		case 10:
			if v, ok := parseFloatOK(p.value); ok {
				x, hasX = v, true
			}
		case 20:
			if v, ok := parseFloatOK(p.value); ok {
				y, hasY = v, true
			}
		case 2:
			blockName = p.value
		}
	}
	if !hasX || !hasY {
		return nil
	}
	return InsertEntity{Layer: r.layer, Point: geometry.Point{X: x, Y: y}, BlockName: blockName}
}
