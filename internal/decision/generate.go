package decision

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/owizdom/swarm-mind/internal/agent"
	"github.com/owizdom/swarm-mind/internal/pheromone"
	"github.com/owizdom/swarm-mind/internal/types"
)

// Candidate generation thresholds.
const (
	minChannelSizeForSharing = 5   // share_technique needs a swarm worth talking to
	minSociabilityForSharing = 0.5 // and an agent inclined to talk
)

// GenerateCandidates produces the pool of pending decisions an agent can
// choose from, drawn from four independent sources:
//
//  1. the agent's recent thoughts, parsed on a small action vocabulary;
//  2. freshly discovered repositories the agent has not studied yet;
//  3. a share_technique candidate when the channel holds more than five
//     pheromones and the agent is sociable enough;
//  4. always one explore_topic fallback on the current exploration
//     target, so the pool is never empty while budget remains.
//
// Candidates whose estimated token cost exceeds the remaining budget are
// filtered out. The fallback is exempt from that filter: as long as any
// budget remains the pool is non-empty, so an empty pool always means
// full exhaustion. Issues are accepted as material but never become
// fix_issue candidates: that kind, like contribute_pr, is out of scope
// for autonomous execution.
func (e *Engine) GenerateCandidates(
	a *agent.Agent,
	ch *pheromone.Channel,
	repos []types.RepoInfo,
	issues []types.IssueInfo,
	recentThoughts []types.Thought,
) []*types.AgentDecision {
	_ = issues

	remaining := a.RemainingBudget()
	if remaining == 0 {
		return nil
	}

	var pool []*types.AgentDecision
	add := func(action types.Action) {
		d := newPending(a.ID, action)
		if d.Cost.EstimatedTokens > remaining {
			return
		}
		pool = append(pool, d)
	}

	// Source 1: suggested actions from recent thoughts.
	for _, th := range recentThoughts {
		for _, s := range th.SuggestedActions {
			if action, ok := parseSuggestion(s, a); ok {
				add(action)
			}
		}
	}

	// Source 2: freshly discovered repositories not yet studied.
	for _, r := range repos {
		if a.HasStudied(r.FullName()) {
			continue
		}
		add(types.StudyRepo{Owner: r.Owner, Repo: r.Repo})
	}

	// Source 3: share a technique with a sociable-enough swarm.
	if ch.Len() > minChannelSizeForSharing && a.Personality.Sociability > minSociabilityForSharing {
		add(types.ShareTechnique{
			Technique: fmt.Sprintf("%s patterns from %d absorbed signals", a.Specialization, len(a.Absorbed)),
			Domain:    a.Specialization,
		})
	}

	// Source 4: the exploration fallback, added unfiltered so the pool
	// is never empty while budget remains.
	pool = append(pool, newPending(a.ID, types.ExploreTopic{Topic: a.ExplorationTarget}))

	e.log.Debug("generated candidate pool",
		zap.String("agent", a.Name),
		zap.Int("candidates", len(pool)),
		zap.Int("remaining_budget", remaining))
	return pool
}
