package tui

import (
	"fmt"
	"strings"

	"github.com/arxos/cadtool/pkg/floorplan"
	"github.com/arxos/cadtool/pkg/geometry"
)

// Renderer draws a Layout onto a fixed-size character grid (teacher's
// internal/tui/services.FloorPlanRenderer box-drawing/grid shape, adapted
// from building-equipment symbols to îlot/corridor/door glyphs).
type Renderer struct {
	cols, rows int
	scaleMM    float64 // millimeters per character
	originX    float64
	originY    float64
	styles     Styles
}

// NewRenderer builds a Renderer that fits plan.Bounds into a cols x rows
// character grid.
func NewRenderer(cols, rows int, bounds geometry.Bounds, styles Styles) *Renderer {
	scaleX := bounds.Width() / float64(maxInt(cols-2, 1))
	scaleY := bounds.Height() / float64(maxInt(rows-4, 1))
	scale := scaleX
	if scaleY > scale {
		scale = scaleY
	}
	if scale <= 0 {
		scale = 1
	}
	return &Renderer{
		cols: cols, rows: rows, scaleMM: scale,
		originX: bounds.MinX, originY: bounds.MinY,
		styles: styles,
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

type cell struct {
	r     rune
	style func(string) string
}

// Render draws plan's walls, doors, routed corridors, and placed îlots
// onto an ASCII grid.
func (rd *Renderer) Render(plan floorplan.ProcessedPlan, layout floorplan.Layout) string {
	gridW := maxInt(rd.cols-2, 10)
	gridH := maxInt(rd.rows-4, 5)
	grid := make([][]cell, gridH)
	for i := range grid {
		grid[i] = make([]cell, gridW)
		for j := range grid[i] {
			grid[i][j] = cell{r: ' '}
		}
	}

	rd.drawWalls(grid, plan)
	rd.drawCorridors(grid, layout.Corridors)
	rd.drawIlots(grid, layout.Ilots)
	rd.drawDoors(grid, plan.Doors)

	var out strings.Builder
	out.WriteString(rd.styles.Header.Render(fmt.Sprintf(
		"cadtool layout — %d îlots, %d corridors, score %.2f",
		len(layout.Ilots), len(layout.Corridors), layout.Metrics.OverallScore)))
	out.WriteString("\n\n")
	for _, row := range grid {
		for _, c := range row {
			if c.style != nil {
				out.WriteString(c.style(string(c.r)))
			} else {
				out.WriteRune(c.r)
			}
		}
		out.WriteString("\n")
	}
	out.WriteString("\n")
	out.WriteString(rd.legend())
	return out.String()
}

func (rd *Renderer) toGrid(x, y float64, gridW, gridH int) (int, int, bool) {
	gx := int((x - rd.originX) / rd.scaleMM)
	gy := int((y - rd.originY) / rd.scaleMM)
	return gx, gy, gx >= 0 && gx < gridW && gy >= 0 && gy < gridH
}

func (rd *Renderer) drawWalls(grid [][]cell, plan floorplan.ProcessedPlan) {
	gridH := len(grid)
	if gridH == 0 {
		return
	}
	gridW := len(grid[0])
	for _, w := range plan.Walls {
		steps := int(w.LengthMM()/rd.scaleMM) + 1
		for s := 0; s <= steps; s++ {
			t := float64(s) / float64(maxInt(steps, 1))
			x := w.Segment.A.X + t*(w.Segment.B.X-w.Segment.A.X)
			y := w.Segment.A.Y + t*(w.Segment.B.Y-w.Segment.A.Y)
			if gx, gy, ok := rd.toGrid(x, y, gridW, gridH); ok {
				grid[gy][gx] = cell{r: '#', style: rd.styles.Wall.Render}
			}
		}
	}
}

func (rd *Renderer) drawCorridors(grid [][]cell, corridors []floorplan.Corridor) {
	gridH := len(grid)
	if gridH == 0 {
		return
	}
	gridW := len(grid[0])
	for _, c := range corridors {
		length := c.LengthMM()
		steps := int(length/rd.scaleMM) + 1
		for s := 0; s <= steps; s++ {
			t := float64(s) / float64(maxInt(steps, 1))
			x := c.X1 + t*(c.X2-c.X1)
			y := c.Y1 + t*(c.Y2-c.Y1)
			if gx, gy, ok := rd.toGrid(x, y, gridW, gridH); ok {
				grid[gy][gx] = cell{r: '.', style: rd.styles.Corridor.Render}
			}
		}
	}
}

func (rd *Renderer) drawDoors(grid [][]cell, doors []floorplan.Door) {
	gridH := len(grid)
	if gridH == 0 {
		return
	}
	gridW := len(grid[0])
	for _, d := range doors {
		if gx, gy, ok := rd.toGrid(d.Center.X, d.Center.Y, gridW, gridH); ok {
			grid[gy][gx] = cell{r: 'D', style: rd.styles.Door.Render}
		}
	}
}

func (rd *Renderer) drawIlots(grid [][]cell, ilots []floorplan.Ilot) {
	gridH := len(grid)
	if gridH == 0 {
		return
	}
	gridW := len(grid[0])
	for i, ilot := range ilots {
		style, glyph := rd.ilotGlyph(ilot.Type)
		minX, minY, okMin := rd.toGrid(ilot.Rect.X, ilot.Rect.Y, gridW, gridH)
		maxX, maxY, okMax := rd.toGrid(ilot.Rect.MaxX(), ilot.Rect.MaxY(), gridW, gridH)
		if !okMin && !okMax {
			continue
		}
		minX, minY = clampInt(minX, 0, gridW-1), clampInt(minY, 0, gridH-1)
		maxX, maxY = clampInt(maxX, 0, gridW-1), clampInt(maxY, 0, gridH-1)

		for y := minY; y <= maxY; y++ {
			for x := minX; x <= maxX; x++ {
				grid[y][x] = cell{r: glyph, style: style}
			}
		}
		label := fmt.Sprintf("%d", i+1)
		cx, cy := (minX+maxX)/2, (minY+maxY)/2
		for k, ch := range label {
			if cx+k <= maxX {
				grid[cy][cx+k] = cell{r: ch, style: style}
			}
		}
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (rd *Renderer) ilotGlyph(t floorplan.IlotType) (func(string) string, rune) {
	switch t {
	case floorplan.IlotSmall:
		return rd.styles.Small.Render, 's'
	case floorplan.IlotMedium:
		return rd.styles.Medium.Render, 'm'
	case floorplan.IlotLarge:
		return rd.styles.Large.Render, 'l'
	default:
		return rd.styles.XLarge.Render, 'X'
	}
}

func (rd *Renderer) legend() string {
	var b strings.Builder
	b.WriteString(rd.styles.Muted.Render("legend: "))
	b.WriteString(rd.styles.Wall.Render("#") + " wall  ")
	b.WriteString(rd.styles.Corridor.Render(".") + " corridor  ")
	b.WriteString(rd.styles.Door.Render("D") + " door  ")
	b.WriteString(rd.styles.Small.Render("s") + " small  ")
	b.WriteString(rd.styles.Medium.Render("m") + " medium  ")
	b.WriteString(rd.styles.Large.Render("l") + " large  ")
	b.WriteString(rd.styles.XLarge.Render("X") + " xlarge")
	return b.String()
}
