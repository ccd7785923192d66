package decision

import (
	"math"
	"math/rand"

	"github.com/owizdom/swarm-mind/internal/types"
)

// Select draws one candidate by softmax sampling over priorities.
//
// temperature 0 degenerates to pure greedy: the highest-priority
// candidate wins, ties broken by first occurrence. For temperature > 0
// candidate i is weighted exp((priority_i - maxPriority) / temperature)
// and drawn from the normalized distribution, keeping selection
// exploitative without locking onto a single action kind.
//
// Returns nil for an empty pool.
func (e *Engine) Select(cands []*types.AgentDecision, temperature float64, rng *rand.Rand) *types.AgentDecision {
	if len(cands) == 0 {
		return nil
	}

	best := cands[0]
	for _, d := range cands[1:] {
		if d.Priority > best.Priority {
			best = d
		}
	}
	if temperature <= 0 {
		return best
	}

	weights := make([]float64, len(cands))
	var total float64
	for i, d := range cands {
		weights[i] = math.Exp((d.Priority - best.Priority) / temperature)
		total += weights[i]
	}

	r := rng.Float64() * total
	for i, w := range weights {
		r -= w
		if r <= 0 {
			return cands[i]
		}
	}
	// Floating-point slack: the loop can fall through when r lands on
	// the tail of the accumulated error.
	return cands[len(cands)-1]
}
