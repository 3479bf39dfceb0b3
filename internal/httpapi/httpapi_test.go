package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arxos/cadtool/internal/metrics"
	"github.com/arxos/cadtool/pkg/floorplan"
)

func testRouter() http.Handler {
	reg := prometheus.NewRegistry()
	return NewRouter(Options{
		Recorder: metrics.NewRecorder(reg),
		Registry: reg,
	})
}

const sampleDXF = `0
SECTION
2
ENTITIES
0
LINE
8
A-WALL
10
0.0
20
0.0
11
10000.0
21
0.0
0
LINE
8
A-WALL
10
10000.0
20
0.0
11
10000.0
21
8000.0
0
LINE
8
A-WALL
10
10000.0
20
8000.0
11
0.0
21
8000.0
0
LINE
8
A-WALL
10
0.0
20
8000.0
11
0.0
21
0.0
0
ENDSEC
0
EOF
`

func TestHandleHealth(t *testing.T) {
	router := testRouter()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandleParse(t *testing.T) {
	router := testRouter()
	req := httptest.NewRequest(http.MethodPost, "/v1/parse", bytes.NewBufferString(sampleDXF))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body, "entities")
}

func TestHandleParseEmptyBodyErrors(t *testing.T) {
	router := testRouter()
	req := httptest.NewRequest(http.MethodPost, "/v1/parse", bytes.NewBufferString(""))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.NotEqual(t, http.StatusOK, rec.Code)
}

func TestHandleClassify(t *testing.T) {
	router := testRouter()
	req := httptest.NewRequest(http.MethodPost, "/v1/classify", bytes.NewBufferString(sampleDXF))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandlePlaceRejectsInvalidSettings(t *testing.T) {
	router := testRouter()
	settings := floorplan.DefaultSettings()
	settings.DensityPct = 999 // out of [10, 90]

	body, _ := json.Marshal(map[string]interface{}{
		"plan":     floorplan.ProcessedPlan{},
		"settings": settings,
	})
	req := httptest.NewRequest(http.MethodPost, "/v1/place", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHandlePlaceRateLimited(t *testing.T) {
	reg := prometheus.NewRegistry()
	router := NewRouter(Options{
		Recorder:       metrics.NewRecorder(reg),
		PlacementRPS:   1,
		PlacementBurst: 1,
	})

	settings := floorplan.DefaultSettings()
	body, _ := json.Marshal(map[string]interface{}{
		"plan":     floorplan.ProcessedPlan{},
		"settings": settings,
	})

	var lastCode int
	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodPost, "/v1/place", bytes.NewReader(body))
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		lastCode = rec.Code
	}
	assert.Equal(t, http.StatusTooManyRequests, lastCode)
}

func TestHandleRouteEmptyLayout(t *testing.T) {
	router := testRouter()
	body, _ := json.Marshal(map[string]interface{}{
		"plan":     floorplan.ProcessedPlan{},
		"layout":   floorplan.Layout{},
		"settings": floorplan.DefaultSettings(),
	})
	req := httptest.NewRequest(http.MethodPost, "/v1/route", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
