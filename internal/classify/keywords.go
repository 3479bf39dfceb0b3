// Package classify lifts the raw entities streamed by internal/dxf into the
// domain model in pkg/floorplan: walls, doors, windows, restricted areas,
// drawing bounds, and the SpaceAnalysis summary.
package classify

import "strings"

// keywordTable centralizes the layer-name heuristics so every rule is
// defined once and is independently testable, keeping the layer-matching
// rules auditable in one place instead of scattered across classify.go.
type keywordTable []string

func (k keywordTable) matchesAny(layer string) bool {
	lower := strings.ToLower(layer)
	for _, kw := range k {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

var (
	wallKeywords = keywordTable{
		"wall", "mur", "partition", "structure", "arch", "external", "internal",
	}
	// wallThickKeywords get 200mm default thickness; partitionThinKeywords get
	// 100mm; anything else matched as a wall gets 150mm.
	wallThickKeywords      = keywordTable{"wall", "mur"}
	partitionThinKeywords  = keywordTable{"partition"}

	doorKeywords = keywordTable{
		"door", "porte", "opening", "entrance", "exit",
	}
	entranceKeywords = keywordTable{
		"entrance", "entree", "sortie", "exit", "main", "principal",
	}

	windowKeywords = keywordTable{
		"window", "fenetre", "glazing", "glass",
	}

	restrictedKeywords = keywordTable{
		"stair", "escalier", "elev", "ascens", "toilet", "wc", "tech", "util", "mech",
	}
	stairsKeywords   = keywordTable{"stair", "escalier"}
	elevatorKeywords = keywordTable{"elev", "ascens"}
	restroomKeywords = keywordTable{"toilet", "wc"}
	utilityKeywords  = keywordTable{"util", "tech", "mech"}
)

// isWallLayer reports whether layer should be treated as a wall layer:
// matches the wall keyword table, or is literally the default layer "0".
func isWallLayer(layer string) bool {
	return wallKeywords.matchesAny(layer) || layer == "0"
}
