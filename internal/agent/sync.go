package agent

import "github.com/owizdom/swarm-mind/internal/pheromone"

// Synchronization thresholds.
const (
	minAbsorbedForSync = 3
	minEnergyForSync   = 0.5
)

// CheckSync evaluates the one-way transition into the synchronized
// collective state. An unsynchronized agent synchronizes iff the channel
// density has reached the critical threshold, the agent has absorbed at
// least three distinct pheromones, and its energy is above 0.5.
//
// Synchronization is terminal: once entered, no sequence of ticks exits
// it. Joining the collective restores the agent to full energy.
//
// Must run after Move and AbsorbPheromones within the agent's tick, since
// this tick's absorptions count toward the threshold. Returns true only
// on the tick the agent transitions.
func (a *Agent) CheckSync(ch *pheromone.Channel) bool {
	if a.Synchronized {
		return false
	}
	if ch.Density() < ch.CriticalThreshold() {
		return false
	}
	if len(a.Absorbed) < minAbsorbedForSync {
		return false
	}
	if a.Energy <= minEnergyForSync {
		return false
	}

	a.Synchronized = true
	a.Energy = 1.0
	return true
}
