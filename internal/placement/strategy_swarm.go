package placement

import (
	"math/rand"

	"github.com/arxos/cadtool/pkg/floorplan"
	"github.com/arxos/cadtool/pkg/geometry"
)

// PSO coefficients follow the standard textbook values rather than any
// domain-tuned figures, and are treated as tunable.
const (
	swarmParticleCount = 30
	swarmIterations    = 200
	psoInertia         = 0.7
	psoCognitive       = 1.5
	psoSocial          = 1.5
)

type swarmParticle struct {
	pos       []geometry.Point
	vel       []geometry.Point
	bestPos   []geometry.Point
	bestScore float64
}

func runSwarm(plan floorplan.ProcessedPlan, settings floorplan.Settings, v *validator, rng *rand.Rand, cancel CancelToken) SearchState {
	requests := planSizing(plan, settings, rng)
	n := len(requests)
	if n == 0 {
		return SearchState{BestScore: -1}
	}

	toIndividual := func(positions []geometry.Point) individual {
		raw := make([]floorplan.Ilot, 0, n)
		for i, p := range positions {
			rect := geometry.NewRect(p.X-requests[i].widthMM/2, p.Y-requests[i].heightMM/2, requests[i].widthMM, requests[i].heightMM)
			raw = append(raw, floorplan.Ilot{ID: floorplan.DeterministicID("ilot", i), Rect: rect})
		}
		return repairIndividual(raw, v)
	}

	randomPositions := func() []geometry.Point {
		usableW := max(v.bounds.Width-2*v.minClearance, 0)
		usableH := max(v.bounds.Height-2*v.minClearance, 0)
		pts := make([]geometry.Point, n)
		for i := range pts {
			pts[i] = geometry.Point{
				X: v.bounds.X + v.minClearance + rng.Float64()*usableW,
				Y: v.bounds.Y + v.minClearance + rng.Float64()*usableH,
			}
		}
		return pts
	}

	particles := make([]*swarmParticle, swarmParticleCount)
	var gBestPos []geometry.Point
	gBestScore := -1.0

	for p := 0; p < swarmParticleCount; p++ {
		pos := randomPositions()
		score := evaluate(toIndividual(pos), nil, plan, settings).OverallScore
		particles[p] = &swarmParticle{
			pos:       pos,
			vel:       make([]geometry.Point, n),
			bestPos:   append([]geometry.Point(nil), pos...),
			bestScore: score,
		}
		if score > gBestScore {
			gBestScore = score
			gBestPos = append([]geometry.Point(nil), pos...)
		}
	}

	state := SearchState{Best: toIndividual(gBestPos), BestScore: gBestScore}

	maxIter := swarmIterations
	if settings.MaxIterations > 0 && settings.MaxIterations < maxIter {
		maxIter = settings.MaxIterations
	}

	for iter := 0; iter < maxIter; iter++ {
		if cancel.Cancelled() {
			break
		}
		for _, particle := range particles {
			for d := 0; d < n; d++ {
				r1, r2 := rng.Float64(), rng.Float64()
				velX := psoInertia*particle.vel[d].X + psoCognitive*r1*(particle.bestPos[d].X-particle.pos[d].X) + psoSocial*r2*(gBestPos[d].X-particle.pos[d].X)
				velY := psoInertia*particle.vel[d].Y + psoCognitive*r1*(particle.bestPos[d].Y-particle.pos[d].Y) + psoSocial*r2*(gBestPos[d].Y-particle.pos[d].Y)
				particle.vel[d] = geometry.Point{X: velX, Y: velY}
				particle.pos[d] = geometry.Point{X: particle.pos[d].X + velX, Y: particle.pos[d].Y + velY}
			}
			score := evaluate(toIndividual(particle.pos), nil, plan, settings).OverallScore
			if score > particle.bestScore {
				particle.bestScore = score
				particle.bestPos = append([]geometry.Point(nil), particle.pos...)
			}
			if score > gBestScore {
				gBestScore = score
				gBestPos = append([]geometry.Point(nil), particle.pos...)
			}
		}
		state.Iteration = iter
		state.History = append(state.History, gBestScore)
		if gBestScore > state.BestScore {
			state.BestScore = gBestScore
			state.Best = toIndividual(gBestPos)
		}
	}

	return state
}
