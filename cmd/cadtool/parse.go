package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arxos/cadtool/internal/dxf"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file.dxf>",
	Short: "Parse a DXF file and print entity statistics",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := readDXF(args[0])
		if err != nil {
			return err
		}
		entities, stats, err := dxf.Parse(data)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "parsed %d entities across %d layers\n", len(entities), len(stats.LayerSet))
		for kind, count := range stats.TypesSeen {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s: %d\n", kind, count)
		}
		return nil
	},
}
