package agent

import "github.com/owizdom/swarm-mind/internal/pheromone"

// Absorption constants.
const (
	minAbsorbableStrength = 0.2  // weaker signals are ignored entirely
	absorbProbabilityGain = 0.6  // P(absorb) = strength * 0.6
	absorbEnergyGain      = 0.05 // energy gained per absorbed signal
	recentAbsorbedKept    = 3    // lineage links carried to the next emission
)

// AbsorbPheromones evaluates every channel pheromone the agent has not
// emitted itself and not yet absorbed. Absorption is probabilistic in the
// signal's strength, and idempotent per pheromone id: once absorbed (or
// rather, once marked) a pheromone is never evaluated again for this
// agent.
//
// Each absorption feeds back into the channel by boosting the source
// pheromone's strength, which is the loop that lets density grow
// superlinearly and eventually trigger the phase transition.
//
// Returns the number of pheromones absorbed this tick.
func (a *Agent) AbsorbPheromones(ch *pheromone.Channel) int {
	absorbed := 0
	for _, v := range ch.Views() {
		if v.AgentID == a.ID {
			continue
		}
		if _, ok := a.Absorbed[v.ID]; ok {
			continue
		}
		if v.Strength <= minAbsorbableStrength {
			continue
		}
		if a.rng.Float64() >= v.Strength*absorbProbabilityGain {
			continue
		}

		a.Absorbed[v.ID] = struct{}{}
		a.Energy = clamp01(a.Energy + absorbEnergyGain)
		ch.Boost(v.ID)

		a.recentAbsorbed = append(a.recentAbsorbed, v.ID)
		if len(a.recentAbsorbed) > recentAbsorbedKept {
			a.recentAbsorbed = a.recentAbsorbed[len(a.recentAbsorbed)-recentAbsorbedKept:]
		}
		absorbed++
	}
	return absorbed
}
