package placement

import (
	"math/rand"
	"sort"

	"github.com/arxos/cadtool/pkg/floorplan"
)

// Population size and generation count are fixed rather than randomized
// so identical seeds produce identical runs.
const evoPopulationSize = 30
const evoMaxGenerations = 65
const tournamentSize = 3

var deterministicSeeds = []floorplan.Algorithm{
	floorplan.AlgorithmGrid,
	floorplan.AlgorithmSpiral,
	floorplan.AlgorithmCornerFirst,
	floorplan.AlgorithmWallAligned,
}

func runEvolutionary(plan floorplan.ProcessedPlan, settings floorplan.Settings, v *validator, pool *workerPool, rng *rand.Rand, cancel CancelToken) SearchState {
	pop := make([]individual, evoPopulationSize)
	for i := range pop {
		requests := planSizing(plan, settings, rng)
		algo := deterministicSeeds[i%len(deterministicSeeds)]
		pop[i] = runDeterministic(algo, v, plan, requests, settings.CorridorWidthMM)
	}

	state := SearchState{BestScore: -1}
	maxGenerations := evoMaxGenerations
	if settings.MaxIterations > 0 && settings.MaxIterations < maxGenerations {
		maxGenerations = settings.MaxIterations
	}

	for gen := 0; gen < maxGenerations; gen++ {
		if cancel.Cancelled() {
			break
		}

		scores := make([]float64, len(pop))
		fns := make([]func(), len(pop))
		for i := range pop {
			i := i
			fns[i] = func() { scores[i] = evaluate(pop[i], nil, plan, settings).OverallScore }
		}
		pool.evaluateAll(fns)

		order := make([]int, len(pop))
		for i := range order {
			order[i] = i
		}
		sort.Slice(order, func(a, b int) bool { return scores[order[a]] > scores[order[b]] })

		sortedPop := make([]individual, len(pop))
		sortedScores := make([]float64, len(pop))
		for pos, idx := range order {
			sortedPop[pos] = pop[idx]
			sortedScores[pos] = scores[idx]
		}
		pop, scores = sortedPop, sortedScores

		if scores[0] > state.BestScore {
			state.Best = pop[0]
			state.BestScore = scores[0]
		}
		state.Iteration = gen
		state.History = append(state.History, scores[0])

		if len(state.History) >= 10 && scoreVariance(state.History, 10) < settings.ConvergenceThreshold {
			break
		}

		eliteCount := len(pop) / 5
		if eliteCount < 1 {
			eliteCount = 1
		}
		next := make([]individual, 0, len(pop))
		next = append(next, pop[:eliteCount]...)
		for len(next) < len(pop) {
			parent1 := tournamentSelect(pop, scores, tournamentSize, rng)
			parent2 := tournamentSelect(pop, scores, tournamentSize, rng)
			child := crossover(parent1, parent2, v, rng)
			child = mutate(child, v, rng)
			next = append(next, child)
		}
		pop = next
	}

	return state
}
