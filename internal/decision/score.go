package decision

import (
	"github.com/owizdom/swarm-mind/internal/agent"
	"github.com/owizdom/swarm-mind/internal/pheromone"
	"github.com/owizdom/swarm-mind/internal/types"
)

// Scoring weights. The positive weights sum to 1.0; the risk penalty is
// subtractive with its own multiplier per risk level.
const (
	weightBasePriority   = 0.20
	weightCostEfficiency = 0.25
	stalenessBonus       = 0.15
	swarmAlignmentBonus  = 0.10
	weightPersonalFit    = 0.10

	recentDecisionWindow = 10
)

// basePriority is the fixed priority table per action kind. fix_issue and
// contribute_pr sit at the bottom, reflecting their out-of-scope status.
var basePriority = map[types.ActionKind]float64{
	types.ActionShareTechnique: 0.90,
	types.ActionStudyRepo:      0.85,
	types.ActionExploreTopic:   0.80,
	types.ActionWriteCode:      0.70,
	types.ActionRefactor:       0.65,
	types.ActionDocument:       0.60,
	types.ActionFixIssue:       0.05,
	types.ActionContributePR:   0.05,
}

// Score computes the decision's priority as a deterministic weighted sum
// of six signals and stores it on the decision:
//
//   - base priority by action kind,
//   - cost efficiency against the remaining budget,
//   - a staleness bonus when the kind is absent from the agent's last ten
//     completed decisions,
//   - a risk penalty that grows as the budget depletes,
//   - a swarm-alignment bonus for engineering (non-explore) actions once
//     the channel has phase-transitioned,
//   - personal fit from the personality trait most relevant to the kind.
//
// Scoring contains no randomness; identical inputs always produce the
// same priority. Randomness lives only in Select.
func (e *Engine) Score(d *types.AgentDecision, a *agent.Agent, ch *pheromone.Channel) float64 {
	kind := d.Action.Kind()
	score := basePriority[kind] * weightBasePriority

	// Cost efficiency: cheap actions relative to what is left to spend.
	remaining := a.RemainingBudget()
	if remaining > 0 {
		eff := 1 - float64(d.Cost.EstimatedTokens)/float64(remaining)
		if eff < 0 {
			eff = 0
		}
		score += eff * weightCostEfficiency
	}

	// Staleness: reward kinds the agent has not done recently.
	stale := true
	for _, k := range a.RecentCompletedKinds(recentDecisionWindow) {
		if k == kind {
			stale = false
			break
		}
	}
	if stale {
		score += stalenessBonus
	}

	// Risk penalty, harsher as the budget runs down.
	score -= d.Cost.Risk.Multiplier() * (1 - a.BudgetRatio())

	// Post-transition the swarm biases toward engineering over pure
	// exploration.
	if ch.PhaseTransitioned() && kind != types.ActionExploreTopic {
		score += swarmAlignmentBonus
	}

	score += traitFor(kind, a.Personality) * weightPersonalFit

	d.Priority = score
	return score
}

// ScoreAll scores every candidate in place.
func (e *Engine) ScoreAll(cands []*types.AgentDecision, a *agent.Agent, ch *pheromone.Channel) {
	for _, d := range cands {
		e.Score(d, a, ch)
	}
}

// traitFor maps an action kind to the personality trait that most
// predicts an agent's affinity for it.
func traitFor(kind types.ActionKind, p agent.Personality) float64 {
	switch kind {
	case types.ActionStudyRepo, types.ActionExploreTopic:
		return p.Curiosity
	case types.ActionFixIssue, types.ActionContributePR, types.ActionWriteCode:
		return p.Boldness
	case types.ActionShareTechnique:
		return p.Sociability
	case types.ActionRefactor, types.ActionDocument:
		return p.Diligence
	default:
		return 0
	}
}
