package decision

import (
	"github.com/owizdom/swarm-mind/internal/agent"
	"github.com/owizdom/swarm-mind/internal/types"
)

// Switching probabilities for in-flight multi-step decisions.
const (
	switchAfterSuccess = 0.3 // occasional variety-seeking even on success
	switchAfterFailure = 0.7 // strong bias to abandon failing plans
)

// ShouldSwitch decides whether an agent abandons its in-flight decision.
//
// Unconditionally true when no decision is in flight — none selected yet,
// or the current one already resolved — or the token budget is exhausted.
// Otherwise the agent switches with probability 0.3 if the last step
// succeeded and 0.7 if it failed; with no step result to judge, the agent
// continues.
func (e *Engine) ShouldSwitch(a *agent.Agent, lastResult *types.DecisionResult) bool {
	if !a.CurrentDecision.InFlight() || a.BudgetExhausted() {
		return true
	}
	if lastResult == nil {
		return false
	}
	if lastResult.Success {
		return a.Rand().Float64() < switchAfterSuccess
	}
	return a.Rand().Float64() < switchAfterFailure
}
