package placement

import (
	"math/rand"

	"github.com/arxos/cadtool/pkg/floorplan"
	"github.com/arxos/cadtool/pkg/geometry"
)

// individual is one candidate îlot placement in a search population.
type individual []floorplan.Ilot

func cloneIndividual(ind individual) individual {
	out := make(individual, len(ind))
	copy(out, ind)
	return out
}

// repairIndividual rebuilds ind by walking its îlots in order and keeping
// only those that remain valid against everything kept so far, then
// reassigning deterministic ids in placement order. Genetic operators
// (crossover, mutation) can produce overlaps between îlots drawn from
// different parents; repair restores the non-overlap invariant that must
// hold for every layout this package returns.
func repairIndividual(ind individual, v *validator) individual {
	kept := make([]floorplan.Ilot, 0, len(ind))
	for _, ilot := range ind {
		if v.valid(ilot.Rect, kept) {
			kept = append(kept, ilot)
		}
	}
	for i := range kept {
		kept[i].ID = floorplan.DeterministicID("ilot", i)
		kept[i].Type = floorplan.ClassifyIlotType(kept[i].Rect.AreaM2())
	}
	return kept
}

// tournamentSelect picks the best of k random individuals (with
// replacement) as a crossover parent.
func tournamentSelect(pop []individual, scores []float64, k int, rng *rand.Rand) individual {
	bestIdx := rng.Intn(len(pop))
	for i := 1; i < k; i++ {
		candidate := rng.Intn(len(pop))
		if scores[candidate] > scores[bestIdx] {
			bestIdx = candidate
		}
	}
	return pop[bestIdx]
}

// crossover splices two parents at a random cut point in their shorter
// length and lets repairIndividual resolve any resulting overlaps.
func crossover(a, b individual, v *validator, rng *rand.Rand) individual {
	shorter := len(a)
	if len(b) < shorter {
		shorter = len(b)
	}
	if shorter < 2 {
		return repairIndividual(append(cloneIndividual(a), b...), v)
	}
	cut := 1 + rng.Intn(shorter-1)
	child := append(cloneIndividual(a[:cut]), b[cut:]...)
	return repairIndividual(child, v)
}

// mutate nudges one îlot's position by up to ±300mm, keeping the change
// only if the result stays valid.
func mutate(ind individual, v *validator, rng *rand.Rand) individual {
	if len(ind) == 0 {
		return ind
	}
	out := cloneIndividual(ind)
	i := rng.Intn(len(out))
	others := append(cloneIndividual(out[:i]), out[i+1:]...)

	dx := (rng.Float64()*2 - 1) * 300
	dy := (rng.Float64()*2 - 1) * 300
	moved := geometry.NewRect(out[i].Rect.X+dx, out[i].Rect.Y+dy, out[i].Rect.Width, out[i].Rect.Height)
	if v.valid(moved, others) {
		out[i].Rect = moved
	}
	return out
}

// scoreVariance computes the variance of the last n values in history (or
// all of history if shorter), used for the evolutionary convergence check.
func scoreVariance(history []float64, n int) float64 {
	if len(history) == 0 {
		return 0
	}
	if n > len(history) {
		n = len(history)
	}
	window := history[len(history)-n:]
	mean := 0.0
	for _, v := range window {
		mean += v
	}
	mean /= float64(len(window))
	variance := 0.0
	for _, v := range window {
		variance += (v - mean) * (v - mean)
	}
	return variance / float64(len(window))
}
