package agent

import "github.com/owizdom/swarm-mind/internal/pheromone"

// Movement constants. The damping factor keeps velocity bounded; the pull
// and orbit factors make synchronized agents spiral into a stable orbit
// around the collective center instead of collapsing onto a point.
const (
	dampingFactor  = 0.85
	centerPull     = 0.05
	orbitFactor    = 0.01
	wanderScale    = 4.0 // uniform noise per axis: (rand-0.5)*4
	chemotaxisGain = 3.0 // per strong unabsorbed signal: (rand-0.5)*strength*3
	strongSignal   = 0.5 // only pheromones above this strength attract
)

// Move advances the agent's position by one tick.
//
// Synchronized agents feel a linear pull toward the collective center and
// an orbital term around it. Unsynchronized agents wander with uniform
// noise and drift toward strong channel signals they have not absorbed and
// did not emit themselves (chemotaxis). Velocity is damped every tick and
// position is clamped to the bounded rectangle.
func (a *Agent) Move(ch *pheromone.Channel) {
	a.StepCount++

	if a.Synchronized {
		cx, cy := a.bounds.Center()
		a.DX += (cx - a.X) * centerPull
		a.DY += (cy - a.Y) * centerPull
		a.DX += -(a.Y - cy) * orbitFactor
		a.DY += (a.X - cx) * orbitFactor
	} else {
		a.DX += (a.rng.Float64() - 0.5) * wanderScale
		a.DY += (a.rng.Float64() - 0.5) * wanderScale

		for _, v := range ch.Views() {
			if v.AgentID == a.ID || v.Strength <= strongSignal {
				continue
			}
			if _, ok := a.Absorbed[v.ID]; ok {
				continue
			}
			a.DX += (a.rng.Float64() - 0.5) * v.Strength * chemotaxisGain
			a.DY += (a.rng.Float64() - 0.5) * v.Strength * chemotaxisGain
		}
	}

	a.DX *= dampingFactor
	a.DY *= dampingFactor
	a.X = clampRange(a.X+a.DX, a.bounds.MinX, a.bounds.MaxX)
	a.Y = clampRange(a.Y+a.DY, a.bounds.MinY, a.bounds.MaxY)
}

func clampRange(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
