package main

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/arxos/cadtool/internal/httpapi"
	"github.com/arxos/cadtool/internal/logger"
	"github.com/arxos/cadtool/internal/metrics"
)

var (
	flagServeAddr           string
	flagServePlacementRPS   float64
	flagServePlacementBurst int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the cadtool HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		registry := prometheus.NewRegistry()
		recorder := metrics.NewRecorder(registry)

		router := httpapi.NewRouter(httpapi.Options{
			Recorder:       recorder,
			Registry:       registry,
			PlacementRPS:   flagServePlacementRPS,
			PlacementBurst: flagServePlacementBurst,
		})

		logger.Info("cadtool API listening on %s", flagServeAddr)
		return http.ListenAndServe(flagServeAddr, router)
	},
}

func init() {
	serveCmd.Flags().StringVar(&flagServeAddr, "addr", ":8088", "address to listen on")
	serveCmd.Flags().Float64Var(&flagServePlacementRPS, "placement-rps", 2, "rate limit for /v1/place and /v1/analyze, requests/sec/client")
	serveCmd.Flags().IntVar(&flagServePlacementBurst, "placement-burst", 4, "burst size for the placement rate limiter")
}
