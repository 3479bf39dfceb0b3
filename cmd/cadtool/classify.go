package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arxos/cadtool/internal/classify"
	"github.com/arxos/cadtool/internal/dxf"
)

var flagClassifyFormat string

var classifyCmd = &cobra.Command{
	Use:   "classify <file.dxf>",
	Short: "Parse and classify a DXF file into a processed plan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := readDXF(args[0])
		if err != nil {
			return err
		}
		entities, _, err := dxf.Parse(data)
		if err != nil {
			return err
		}
		plan, err := classify.Classify(entities)
		if err != nil {
			return err
		}
		if flagClassifyFormat == "json" {
			return writeJSON(os.Stdout, plan)
		}
		fmt.Printf("walls: %d, doors: %d, windows: %d, restricted: %d\n",
			len(plan.Walls), len(plan.Doors), len(plan.Windows), len(plan.RestrictedAreas))
		fmt.Printf("total area: %.1f m², usable: %.1f m², efficiency: %.1f%%\n",
			plan.SpaceAnalysis.TotalAreaM2, plan.SpaceAnalysis.UsableAreaM2, plan.SpaceAnalysis.EfficiencyPct)
		return nil
	},
}

func init() {
	classifyCmd.Flags().StringVar(&flagClassifyFormat, "format", "table", "output format (table, json)")
}
