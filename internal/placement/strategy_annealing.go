package placement

import (
	"math"
	"math/rand"

	"github.com/arxos/cadtool/pkg/floorplan"
)

const annealingStartTemp = 1000.0
const annealingCoolingRate = 0.95
const annealingStopTemp = 1.0

func runAnnealing(plan floorplan.ProcessedPlan, settings floorplan.Settings, v *validator, rng *rand.Rand, cancel CancelToken) SearchState {
	current := runDeterministic(floorplan.AlgorithmGrid, v, plan, planSizing(plan, settings, rng), settings.CorridorWidthMM)
	currentScore := evaluate(current, nil, plan, settings).OverallScore

	state := SearchState{Best: current, BestScore: currentScore}

	temp := annealingStartTemp
	iter := 0
	for temp >= annealingStopTemp {
		if cancel.Cancelled() {
			break
		}
		if settings.MaxIterations > 0 && iter >= settings.MaxIterations {
			break
		}

		neighbor := mutate(current, v, rng)
		neighborScore := evaluate(neighbor, nil, plan, settings).OverallScore
		delta := neighborScore - currentScore

		if delta >= 0 {
			current, currentScore = neighbor, neighborScore
		} else if rng.Float64() < math.Exp(delta/temp) {
			current, currentScore = neighbor, neighborScore
		}

		if currentScore > state.BestScore {
			state.Best = current
			state.BestScore = currentScore
		}
		state.Iteration = iter
		state.History = append(state.History, currentScore)

		temp *= annealingCoolingRate
		iter++
	}

	return state
}
