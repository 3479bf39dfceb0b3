// Command cadtool parses CAD floor plans, classifies their geometry, and
// computes îlot placement and corridor layouts (teacher's cmd/arx/main.go
// root-command shape, trimmed to this tool's single-purpose CLI surface).
package main

import (
	"os"

	"github.com/arxos/cadtool/internal/logger"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error("command failed: %v", err)
		os.Exit(1)
	}
}
