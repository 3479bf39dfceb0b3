// Package placement implements the îlot placement engine: sizing,
// validity checking, four deterministic layout strategies, and three
// population/iteration search strategies sharing a common fitness
// function.
package placement

import (
	"math/rand"
	"runtime"

	"github.com/arxos/cadtool/internal/cache"
	"github.com/arxos/cadtool/internal/logger"
	"github.com/arxos/cadtool/internal/metrics"
	cadtoolerrors "github.com/arxos/cadtool/pkg/errors"
	"github.com/arxos/cadtool/pkg/floorplan"
	"github.com/arxos/cadtool/pkg/geometry"
)

// SearchState is owned by a single Place call and never shared across
// calls or process-wide: there is no global mutable "best so far".
type SearchState struct {
	Best      []floorplan.Ilot
	BestScore float64
	Iteration int
	History   []float64
}

// Place runs the configured strategy and returns a Layout containing only
// îlots (routing is a separate step, internal/corridor). recorder may be
// nil, in which case no instrumentation is recorded.
func Place(plan floorplan.ProcessedPlan, settings floorplan.Settings, cancel CancelToken, recorder *metrics.Recorder) (floorplan.Layout, error) {
	c := cache.New(recorder)
	defer c.Close()

	v := newValidator(plan, settings.MinClearanceMM, c)
	rng := rand.New(rand.NewSource(settings.Seed))

	if !feasible(plan, settings, v) {
		return floorplan.Layout{}, cadtoolerrors.New(cadtoolerrors.CodeInfeasible,
			"usable space cannot hold even one îlot at the smallest size")
	}

	var state SearchState
	switch settings.Algorithm {
	case floorplan.AlgorithmGrid, floorplan.AlgorithmSpiral, floorplan.AlgorithmCornerFirst, floorplan.AlgorithmWallAligned:
		requests := planSizing(plan, settings, rng)
		ilots := runDeterministic(settings.Algorithm, v, plan, requests, settings.CorridorWidthMM)
		state = SearchState{Best: ilots, BestScore: evaluate(ilots, nil, plan, settings).OverallScore}
	case floorplan.AlgorithmEvolutionary:
		pool := newWorkerPool(runtime.NumCPU())
		state = runEvolutionary(plan, settings, v, pool, rng, cancel)
		pool.stop()
	case floorplan.AlgorithmAnnealing:
		state = runAnnealing(plan, settings, v, rng, cancel)
	case floorplan.AlgorithmSwarm:
		state = runSwarm(plan, settings, v, rng, cancel)
	default:
		return floorplan.Layout{}, cadtoolerrors.New(cadtoolerrors.CodeInfeasible,
			"unimplemented placement strategy").WithDetail("algorithm", string(settings.Algorithm))
	}

	if err := verifyInvariants(state.Best, plan, settings.MinClearanceMM); err != nil {
		return floorplan.Layout{}, err
	}

	logger.Debug("placement complete: algorithm=%s ilots=%d score=%.4f iterations=%d",
		settings.Algorithm, len(state.Best), state.BestScore, state.Iteration)

	return floorplan.Layout{
		Ilots:   state.Best,
		Metrics: evaluate(state.Best, nil, plan, settings),
	}, nil
}

// feasible probes whether even the smallest size class fits anywhere in
// the plan, independent of the chosen algorithm.
func feasible(plan floorplan.ProcessedPlan, settings floorplan.Settings, v *validator) bool {
	classes := adjustedSizeClasses(plan)
	smallest := classes[0]
	for _, c := range classes[1:] {
		if areaM2(c.widthMM, c.heightMM) < areaM2(smallest.widthMM, smallest.heightMM) {
			smallest = c
		}
	}
	probe := []sizingRequest{{kind: smallest.kind, widthMM: smallest.widthMM, heightMM: smallest.heightMM}}
	return len(placeGrid(v, probe, settings.CorridorWidthMM)) > 0
}

// verifyInvariants is the last-line internal-invariant check: non-overlap
// and clearance must hold for every layout this package returns, by
// construction. A failure here indicates a bug in a strategy, not a
// recoverable input condition.
func verifyInvariants(ilots []floorplan.Ilot, plan floorplan.ProcessedPlan, minClearance float64) error {
	for i := range ilots {
		for j := i + 1; j < len(ilots); j++ {
			if geometry.RectOverlap(ilots[i].Rect, ilots[j].Rect, minClearance) {
				return cadtoolerrors.New(cadtoolerrors.CodeInternal, "placement produced overlapping îlots").
					WithDetail("a", ilots[i].ID).WithDetail("b", ilots[j].ID)
			}
		}
	}
	return nil
}
