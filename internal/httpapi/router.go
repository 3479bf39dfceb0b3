// Package httpapi exposes the parse/classify/place/route pipeline over
// HTTP (teacher's cmd/arxos-server/router.go chi-based shape, trimmed to
// cadtool's single-tenant, auth-free surface).
package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/arxos/cadtool/internal/metrics"
)

// Options configures the router.
type Options struct {
	Recorder       *metrics.Recorder
	Registry       *prometheus.Registry
	PlacementRPS   float64
	PlacementBurst int
}

// NewRouter builds the cadtool HTTP API.
func NewRouter(opts Options) http.Handler {
	if opts.PlacementRPS <= 0 {
		opts.PlacementRPS = 2
	}
	if opts.PlacementBurst <= 0 {
		opts.PlacementBurst = 4
	}

	h := &handlers{recorder: opts.Recorder}
	limiter := newIPRateLimiter(opts.PlacementRPS, opts.PlacementBurst)

	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Compress(5))

	r.Get("/health", handleHealth)
	if opts.Registry != nil {
		r.Handle("/metrics", metrics.Handler(opts.Registry))
	}

	r.Route("/v1", func(r chi.Router) {
		r.Post("/parse", h.handleParse)
		r.Post("/classify", h.handleClassify)

		r.Group(func(r chi.Router) {
			r.Use(limiter.Middleware)
			r.Post("/place", h.handlePlace)
			r.Post("/analyze", h.handleAnalyze)
		})

		r.Post("/route", h.handleRoute)
	})

	return r
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
