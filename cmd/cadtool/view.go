package main

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/arxos/cadtool/internal/metrics"
	"github.com/arxos/cadtool/internal/tui"
	"github.com/arxos/cadtool/pkg/floorplan"
)

var viewCmd = &cobra.Command{
	Use:   "view <file.dxf>",
	Short: "Open an interactive terminal viewer over a layout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings()
		if err != nil {
			return err
		}
		data, err := readDXF(args[0])
		if err != nil {
			return err
		}

		recorder := metrics.NewRecorder(prometheus.NewRegistry())
		p := newPipeline(recorder)

		plan, err := p.parseAndClassify(data)
		if err != nil {
			return err
		}

		recompute := func(ctx context.Context) (floorplan.Layout, error) {
			return p.placeAndRoute(ctx, plan, settings)
		}

		viewer := tui.NewViewer(plan, settings, recompute)
		return viewer.Run()
	},
}
