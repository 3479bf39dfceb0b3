// Package metrics instruments the parse/classify/place/route pipeline with
// Prometheus collectors (teacher's arx-backend/gateway/metrics.go shape,
// adapted from HTTP gateway metrics to pipeline-stage metrics).
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder holds every collector cadtool registers. It is constructed once
// per process and passed to whatever needs to record observations, rather
// than reached for through a package-level global.
type Recorder struct {
	stageDuration   *prometheus.HistogramVec
	stageErrors     *prometheus.CounterVec
	placementIters  prometheus.Histogram
	placementScore  prometheus.Histogram
	ilotsPlaced     prometheus.Histogram
	corridorsRouted prometheus.Histogram
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
}

// NewRecorder registers cadtool's collectors against reg. Pass
// prometheus.NewRegistry() in tests to avoid collisions with the global
// default registry across parallel test runs.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)

	return &Recorder{
		stageDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "cadtool_stage_duration_seconds",
				Help:    "Duration of a pipeline stage (parse, classify, place, route).",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"stage"},
		),
		stageErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cadtool_stage_errors_total",
				Help: "Total errors raised by a pipeline stage.",
			},
			[]string{"stage", "code"},
		),
		placementIters: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "cadtool_placement_iterations",
			Help:    "Number of search iterations a placement run consumed.",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 200, 500},
		}),
		placementScore: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "cadtool_placement_overall_score",
			Help:    "Overall fitness score of the returned layout.",
			Buckets: prometheus.LinearBuckets(0, 0.1, 11),
		}),
		ilotsPlaced: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "cadtool_ilots_placed",
			Help:    "Number of îlots in the returned layout.",
			Buckets: []float64{1, 5, 10, 15, 20, 25, 30},
		}),
		corridorsRouted: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "cadtool_corridors_routed",
			Help:    "Number of corridors in the routed layout.",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 40},
		}),
		cacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "cadtool_distance_cache_hits_total",
			Help: "Distance cache hits during validity checking.",
		}),
		cacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Name: "cadtool_distance_cache_misses_total",
			Help: "Distance cache misses during validity checking.",
		}),
	}
}

// ObserveStage records how long a named pipeline stage took.
func (r *Recorder) ObserveStage(stage string, d time.Duration) {
	if r == nil {
		return
	}
	r.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// RecordStageError records a stage failure by its error code.
func (r *Recorder) RecordStageError(stage, code string) {
	if r == nil {
		return
	}
	r.stageErrors.WithLabelValues(stage, code).Inc()
}

// ObservePlacement records the outcome of a single Place call.
func (r *Recorder) ObservePlacement(iterations int, score float64, ilotCount int) {
	if r == nil {
		return
	}
	r.placementIters.Observe(float64(iterations))
	r.placementScore.Observe(score)
	r.ilotsPlaced.Observe(float64(ilotCount))
}

// ObserveRouting records the outcome of a single Route call.
func (r *Recorder) ObserveRouting(corridorCount int) {
	if r == nil {
		return
	}
	r.corridorsRouted.Observe(float64(corridorCount))
}

// RecordCacheAccess records a cache hit or miss.
func (r *Recorder) RecordCacheAccess(hit bool) {
	if r == nil {
		return
	}
	if hit {
		r.cacheHits.Inc()
		return
	}
	r.cacheMisses.Inc()
}

// Handler returns the Prometheus scrape endpoint for reg.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

// Stopwatch times a stage and records it to r on Stop.
type Stopwatch struct {
	r     *Recorder
	stage string
	start time.Time
}

// StartStage begins timing a named pipeline stage.
func (r *Recorder) StartStage(stage string) Stopwatch {
	return Stopwatch{r: r, stage: stage, start: time.Now()}
}

// Stop records the elapsed duration since StartStage.
func (s Stopwatch) Stop() {
	s.r.ObserveStage(s.stage, time.Since(s.start))
}
