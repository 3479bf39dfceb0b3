package httpapi

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/arxos/cadtool/internal/classify"
	"github.com/arxos/cadtool/internal/corridor"
	"github.com/arxos/cadtool/internal/dxf"
	"github.com/arxos/cadtool/internal/metrics"
	"github.com/arxos/cadtool/internal/placement"
	cadtoolerrors "github.com/arxos/cadtool/pkg/errors"
	"github.com/arxos/cadtool/pkg/floorplan"
)

type handlers struct {
	recorder *metrics.Recorder
}

// handleParse parses a raw DXF body into RawEntity records.
func (h *handlers) handleParse(w http.ResponseWriter, r *http.Request) {
	sw := h.recorder.StartStage("parse")
	defer sw.Stop()

	body, err := io.ReadAll(io.LimitReader(r.Body, 64<<20))
	if err != nil {
		respondError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	entities, stats, err := dxf.Parse(body)
	if err != nil {
		h.recordStageError("parse", err)
		respondAppError(w, err)
		return
	}

	wire := make([]wireEntity, len(entities))
	for i, e := range entities {
		wire[i] = wireEntity{Kind: e.Kind(), Entity: e}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"entities": wire,
		"stats":    stats,
	})
}

// wireEntity tags a RawEntity with its discriminator so JSON consumers can
// tell a LineEntity from a CircleEntity — RawEntity itself has no field
// that survives a plain json.Marshal of the interface value.
type wireEntity struct {
	Kind   dxf.EntityKind `json:"kind"`
	Entity dxf.RawEntity  `json:"entity"`
}

// handleClassify parses and classifies a raw DXF body into a ProcessedPlan
// in one request. RawEntity is a tagged-variant interface with no canonical
// wire encoding to round-trip through JSON, so classify takes the same raw
// body as parse rather than a pre-parsed entity list.
func (h *handlers) handleClassify(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 64<<20))
	if err != nil {
		respondError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	parseSW := h.recorder.StartStage("parse")
	entities, _, err := dxf.Parse(body)
	parseSW.Stop()
	if err != nil {
		h.recordStageError("parse", err)
		respondAppError(w, err)
		return
	}

	classifySW := h.recorder.StartStage("classify")
	plan, err := classify.Classify(entities)
	classifySW.Stop()
	if err != nil {
		h.recordStageError("classify", err)
		respondAppError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, plan)
}

type placeRequest struct {
	Plan     floorplan.ProcessedPlan `json:"plan"`
	Settings floorplan.Settings      `json:"settings"`
}

// handlePlace runs the placement engine against a previously classified
// plan. The request's context is the run's cancel token: a cancelled
// request stops the search at its next iteration boundary with the best
// layout found so far; otherwise the run goes to completion or to its
// settings' MaxIterations.
func (h *handlers) handlePlace(w http.ResponseWriter, r *http.Request) {
	sw := h.recorder.StartStage("place")
	defer sw.Stop()

	var req placeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := floorplan.Validate(req.Settings); err != nil {
		respondAppError(w, err)
		return
	}

	layout, err := placement.Place(req.Plan, req.Settings, placement.NewCancelToken(r.Context()), h.recorder)
	if err != nil {
		h.recordStageError("place", err)
		respondAppError(w, err)
		return
	}

	h.recorder.ObservePlacement(layout.Metrics.IlotCount, layout.Metrics.OverallScore, len(layout.Ilots))
	respondJSON(w, http.StatusOK, layout)
}

type routeRequest struct {
	Plan     floorplan.ProcessedPlan `json:"plan"`
	Layout   floorplan.Layout        `json:"layout"`
	Settings floorplan.Settings      `json:"settings"`
}

// handleRoute runs the corridor router against an already-placed layout.
func (h *handlers) handleRoute(w http.ResponseWriter, r *http.Request) {
	sw := h.recorder.StartStage("route")
	defer sw.Stop()

	var req routeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	routed := corridor.Route(req.Plan, req.Layout, req.Settings)
	h.recorder.ObserveRouting(len(routed.Corridors))
	respondJSON(w, http.StatusOK, routed)
}

type analyzeRequest struct {
	Settings floorplan.Settings `json:"settings"`
}

// handleAnalyze runs the full pipeline (parse -> classify -> place ->
// route) over a raw DXF body plus a settings sidecar, for callers who
// don't need the intermediate artifacts.
func (h *handlers) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	settingsHeader := r.Header.Get("X-Cadtool-Settings")
	settings := floorplan.DefaultSettings()
	if settingsHeader != "" {
		var req analyzeRequest
		if err := json.Unmarshal([]byte(settingsHeader), &req); err == nil {
			settings = req.Settings
		}
	}
	if err := floorplan.Validate(settings); err != nil {
		respondAppError(w, err)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, 64<<20))
	if err != nil {
		respondError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	parseSW := h.recorder.StartStage("parse")
	entities, _, err := dxf.Parse(body)
	parseSW.Stop()
	if err != nil {
		h.recordStageError("parse", err)
		respondAppError(w, err)
		return
	}

	classifySW := h.recorder.StartStage("classify")
	plan, err := classify.Classify(entities)
	classifySW.Stop()
	if err != nil {
		h.recordStageError("classify", err)
		respondAppError(w, err)
		return
	}

	placeSW := h.recorder.StartStage("place")
	layout, err := placement.Place(plan, settings, placement.NewCancelToken(r.Context()), h.recorder)
	placeSW.Stop()
	if err != nil {
		h.recordStageError("place", err)
		respondAppError(w, err)
		return
	}
	h.recorder.ObservePlacement(layout.Metrics.IlotCount, layout.Metrics.OverallScore, len(layout.Ilots))

	routeSW := h.recorder.StartStage("route")
	routed := corridor.Route(plan, layout, settings)
	routeSW.Stop()
	h.recorder.ObserveRouting(len(routed.Corridors))

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"plan":   plan,
		"layout": routed,
	})
}

func (h *handlers) recordStageError(stage string, err error) {
	code := "unknown"
	if c, ok := cadtoolerrors.CodeOf(err); ok {
		code = string(c)
	}
	h.recorder.RecordStageError(stage, code)
}
