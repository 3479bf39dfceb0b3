package main

import (
	"context"
	"fmt"
	"os"

	"github.com/arxos/cadtool/internal/classify"
	"github.com/arxos/cadtool/internal/config"
	"github.com/arxos/cadtool/internal/corridor"
	"github.com/arxos/cadtool/internal/dxf"
	"github.com/arxos/cadtool/internal/metrics"
	"github.com/arxos/cadtool/internal/placement"
	"github.com/arxos/cadtool/pkg/floorplan"
)

// loadSettings resolves Settings from --config (if set) overlaid by
// CADTOOL_-prefixed environment variables, per internal/config.Load.
func loadSettings() (floorplan.Settings, error) {
	return config.Load(flagConfigPath)
}

func readDXF(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

// pipeline bundles parse, classify, place, and route with a shared
// *metrics.Recorder, used by cmd/cadtool (analyze, watch) and by
// internal/tui's RecomputeFunc closure for `cadtool view`.
type pipeline struct {
	recorder *metrics.Recorder
}

func newPipeline(recorder *metrics.Recorder) *pipeline {
	return &pipeline{recorder: recorder}
}

func (p *pipeline) parseAndClassify(data []byte) (floorplan.ProcessedPlan, error) {
	sw := p.recorder.StartStage("parse")
	entities, _, err := dxf.Parse(data)
	sw.Stop()
	if err != nil {
		p.recorder.RecordStageError("parse", stageErrorCode(err))
		return floorplan.ProcessedPlan{}, err
	}

	sw = p.recorder.StartStage("classify")
	plan, err := classify.Classify(entities)
	sw.Stop()
	if err != nil {
		p.recorder.RecordStageError("classify", stageErrorCode(err))
		return floorplan.ProcessedPlan{}, err
	}
	return plan, nil
}

func (p *pipeline) placeAndRoute(ctx context.Context, plan floorplan.ProcessedPlan, settings floorplan.Settings) (floorplan.Layout, error) {
	if err := floorplan.Validate(settings); err != nil {
		return floorplan.Layout{}, err
	}

	sw := p.recorder.StartStage("place")
	layout, err := placement.Place(plan, settings, placement.NewCancelToken(ctx), p.recorder)
	sw.Stop()
	if err != nil {
		p.recorder.RecordStageError("place", stageErrorCode(err))
		return floorplan.Layout{}, err
	}
	p.recorder.ObservePlacement(layout.Metrics.IlotCount, layout.Metrics.OverallScore, len(layout.Ilots))

	sw = p.recorder.StartStage("route")
	routed := corridor.Route(plan, layout, settings)
	sw.Stop()
	p.recorder.ObserveRouting(len(routed.Corridors))

	return routed, nil
}

// run executes the full parse -> classify -> place -> route pipeline.
func (p *pipeline) run(ctx context.Context, data []byte, settings floorplan.Settings) (floorplan.ProcessedPlan, floorplan.Layout, error) {
	plan, err := p.parseAndClassify(data)
	if err != nil {
		return floorplan.ProcessedPlan{}, floorplan.Layout{}, err
	}
	layout, err := p.placeAndRoute(ctx, plan, settings)
	if err != nil {
		return plan, floorplan.Layout{}, err
	}
	return plan, layout, nil
}
