package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/arxos/cadtool/pkg/errors"
	"github.com/arxos/cadtool/pkg/floorplan"
)

func stageErrorCode(err error) string {
	if code, ok := errors.CodeOf(err); ok {
		return string(code)
	}
	return "unknown"
}

// writeJSON marshals v as indented JSON to w.
func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeLayoutTable prints a human-readable summary of a layout, used by
// `cadtool analyze --format table` (the default).
func writeLayoutTable(w io.Writer, layout floorplan.Layout) {
	m := layout.Metrics
	fmt.Fprintf(w, "îlots placed:     %d\n", m.IlotCount)
	fmt.Fprintf(w, "total îlot area:  %.1f m²\n", m.TotalIlotAreaM2)
	fmt.Fprintf(w, "corridor length:  %.1f mm\n", m.TotalCorridorLengthMM)
	fmt.Fprintf(w, "occupancy:        %.1f%%\n", m.OccupancyPct)
	fmt.Fprintf(w, "accessibility:    %.2f\n", m.AccessibilityScore)
	fmt.Fprintf(w, "fire compliance:  %.2f\n", m.FireComplianceScore)
	fmt.Fprintf(w, "flow efficiency:  %.2f\n", m.FlowEfficiencyScore)
	fmt.Fprintf(w, "overall score:    %.2f\n", m.OverallScore)
}
