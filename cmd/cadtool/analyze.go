package main

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/arxos/cadtool/internal/metrics"
)

var flagAnalyzeFormat string

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file.dxf>",
	Short: "Run the full parse -> classify -> place -> route pipeline",
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
		plan, layout, err := p.run(context.Background(), data, settings)
		if err != nil {
			return err
		}

		if flagAnalyzeFormat == "json" {
			return writeJSON(cmd.OutOrStdout(), map[string]interface{}{
				"plan":   plan,
				"layout": layout,
			})
		}
		writeLayoutTable(cmd.OutOrStdout(), layout)
		return nil
	},
}

func init() {
	analyzeCmd.Flags().StringVar(&flagAnalyzeFormat, "format", "table", "output format (table, json)")
}
