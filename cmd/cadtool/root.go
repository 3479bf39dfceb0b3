package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/arxos/cadtool/internal/logger"
)

var (
	// Version information (set during build via -ldflags).
	Version   = "dev"
	BuildTime = "unknown"
	Commit    = "unknown"
)

var (
	flagConfigPath string
	flagLogLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "cadtool",
	Short: "cadtool ingests CAD floor plans and computes îlot layouts",
	Long: `cadtool turns a DXF floor plan into a validated space layout:

  • parse    - read raw DXF entities and report parse statistics
  • classify - lift parsed entities into walls/doors/windows/restricted areas
  • analyze  - run the full parse -> classify -> place -> route pipeline
  • view     - open an interactive terminal viewer over a layout
  • serve    - run the cadtool HTTP API
  • watch    - watch a directory and re-run analyze on every .dxf change

Settings (density, corridor width, algorithm, ...) are loaded from a YAML
file (--config) overlaid by CADTOOL_-prefixed environment variables.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		switch strings.ToLower(flagLogLevel) {
		case "debug":
			logger.SetLevel(logger.DEBUG)
		case "warn", "warning":
			logger.SetLevel(logger.WARN)
		case "error":
			logger.SetLevel(logger.ERROR)
		default:
			logger.SetLevel(logger.INFO)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "path to a YAML settings file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(
		parseCmd,
		classifyCmd,
		analyzeCmd,
		viewCmd,
		serveCmd,
		watchCmd,
		versionCmd,
	)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("cadtool %s (commit %s, built %s)\n", Version, Commit, BuildTime)
	},
}
