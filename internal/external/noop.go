package external

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/owizdom/swarm-mind/internal/types"
)

// NoopDiscovery finds nothing. It stands in for an unreachable or
// rate-limited code-hosting API.
type NoopDiscovery struct{}

func (NoopDiscovery) Discover(ctx context.Context, query string, filters DiscoveryFilters) ([]types.RepoInfo, error) {
	return nil, nil
}

func (NoopDiscovery) ListIssues(ctx context.Context, owner, repo string, limit int) ([]types.IssueInfo, error) {
	return nil, nil
}

// FallbackThought is the degraded thought a failing reasoner resolves to:
// low confidence, no suggested actions.
func FallbackThought(agentID string) types.Thought {
	return types.Thought{
		ID:         uuid.NewString(),
		AgentID:    agentID,
		Reasoning:  "reasoning unavailable",
		Conclusion: "continue current exploration",
		Confidence: 0.1,
		CreatedAt:  time.Now(),
	}
}

// NoopReasoner always degrades: every call returns the fallback result
// for its operation.
type NoopReasoner struct{}

func (NoopReasoner) Reason(ctx context.Context, rc types.ReasoningContext) (types.Thought, error) {
	return FallbackThought(rc.AgentID), nil
}

func (NoopReasoner) GeneratePatch(ctx context.Context, rc types.ReasoningContext, goal string) ([]types.FilePatch, error) {
	return nil, nil
}

func (NoopReasoner) Review(ctx context.Context, patches []types.FilePatch) (types.ReviewReport, error) {
	return types.ReviewReport{Passed: false, Issues: []string{"review unavailable"}}, nil
}

// NoopPersistence drops everything on the floor.
type NoopPersistence struct{}

func (NoopPersistence) SaveThought(ctx context.Context, t types.Thought) error { return nil }

func (NoopPersistence) SaveDecision(ctx context.Context, d *types.AgentDecision) error { return nil }

func (NoopPersistence) UpdateDecisionStatus(ctx context.Context, id string, status types.DecisionStatus, result *types.DecisionResult) error {
	return nil
}
