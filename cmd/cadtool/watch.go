package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/arxos/cadtool/internal/logger"
	"github.com/arxos/cadtool/internal/metrics"
	"github.com/arxos/cadtool/pkg/floorplan"
)

var flagWatchFormat string

var watchCmd = &cobra.Command{
	Use:   "watch <directory>",
	Short: "Watch a directory and re-run analyze on every .dxf change",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := args[0]
		info, err := os.Stat(dir)
		if err != nil {
			return fmt.Errorf("directory not accessible: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("not a directory: %s", dir)
		}

		settings, err := loadSettings()
		if err != nil {
			return err
		}

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("failed to create watcher: %w", err)
		}
		defer watcher.Close()

		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch directory: %w", err)
		}

		logger.Info("watching %s for .dxf changes", dir)
		recorder := metrics.NewRecorder(prometheus.NewRegistry())
		p := newPipeline(recorder)

		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if !shouldAnalyze(event) {
					continue
				}
				runWatchAnalysis(p, event.Name, settings)
			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				logger.Error("watcher error: %v", err)
			}
		}
	},
}

func shouldAnalyze(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
		return false
	}
	return strings.EqualFold(filepath.Ext(event.Name), ".dxf")
}

func runWatchAnalysis(p *pipeline, path string, settings floorplan.Settings) {
	data, err := readDXF(path)
	if err != nil {
		logger.Error("%s: %v", path, err)
		return
	}
	plan, layout, err := p.run(context.Background(), data, settings)
	if err != nil {
		logger.Error("%s: %v", path, err)
		return
	}

	if flagWatchFormat == "json" {
		if err := writeJSON(os.Stdout, map[string]interface{}{
			"file":   path,
			"plan":   plan,
			"layout": layout,
		}); err != nil {
			logger.Error("%s: %v", path, err)
		}
		return
	}

	logger.Info("%s: %d îlots, %d corridors, score %.2f",
		path, layout.Metrics.IlotCount, len(layout.Corridors), layout.Metrics.OverallScore)
}

func init() {
	watchCmd.Flags().StringVar(&flagWatchFormat, "format", "table", "output format for each re-analysis (table, json)")
}
