package metrics

import (
	"net/http/httptest"
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderObservesStageDuration(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewRecorder(reg)

	sw := r.StartStage("place")
	time.Sleep(time.Millisecond)
	sw.Stop()

	metrics, err := reg.Gather()
	require.NoError(t, err)
	assert.True(t, hasMetric(metrics, "cadtool_stage_duration_seconds"))
}

func TestRecorderCountsStageErrors(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewRecorder(reg)

	r.RecordStageError("parse", "ParseError")

	metrics, err := reg.Gather()
	require.NoError(t, err)
	assert.True(t, hasMetric(metrics, "cadtool_stage_errors_total"))
}

func TestRecorderObservesPlacementOutcome(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewRecorder(reg)

	r.ObservePlacement(42, 0.81, 12)

	metrics, err := reg.Gather()
	require.NoError(t, err)
	assert.True(t, hasMetric(metrics, "cadtool_placement_iterations"))
	assert.True(t, hasMetric(metrics, "cadtool_placement_overall_score"))
	assert.True(t, hasMetric(metrics, "cadtool_ilots_placed"))
}

func TestNilRecorderIsSafe(t *testing.T) {
	var r *Recorder
	assert.NotPanics(t, func() {
		r.ObserveStage("place", time.Millisecond)
		r.RecordStageError("place", "x")
		r.ObservePlacement(1, 1, 1)
		r.ObserveRouting(1)
		r.RecordCacheAccess(true)
	})
}

func TestHandlerServesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewRecorder(reg)
	r.RecordCacheAccess(true)

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, req)

	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), "cadtool_distance_cache_hits_total")
}

func hasMetric(families []*dto.MetricFamily, name string) bool {
	for _, f := range families {
		if f.GetName() == name {
			return true
		}
	}
	return false
}
