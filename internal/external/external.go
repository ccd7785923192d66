// Package external defines the narrow contracts the simulation core
// depends on for everything I/O-bound: repository and issue discovery,
// natural-language reasoning, decision execution, and persistence.
//
// The core must remain correct when any of these degrade to empty or
// no-op results, so each interface ships with a degraded implementation
// that tests and offline runs plug in directly.
package external

import (
	"context"

	"github.com/owizdom/swarm-mind/internal/types"
)

// DiscoveryFilters narrows a repository search.
type DiscoveryFilters struct {
	Language string
	MinStars int
	Topics   []string
	Limit    int
}

// RepoDiscovery finds repositories matching a query. Implementations may
// return an empty list; they must not return partial garbage on failure.
type RepoDiscovery interface {
	Discover(ctx context.Context, query string, filters DiscoveryFilters) ([]types.RepoInfo, error)
}

// IssueDiscovery lists issues for a repository.
type IssueDiscovery interface {
	ListIssues(ctx context.Context, owner, repo string, limit int) ([]types.IssueInfo, error)
}

// Reasoner turns observations into structured thoughts and code edits.
//
// Implementations must degrade, never throw into the core's control
// flow: on failure, Reason returns a low-confidence thought with an
// empty action list, GeneratePatch returns no patches, and Review
// returns a failed report.
type Reasoner interface {
	Reason(ctx context.Context, rc types.ReasoningContext) (types.Thought, error)
	GeneratePatch(ctx context.Context, rc types.ReasoningContext, goal string) ([]types.FilePatch, error)
	Review(ctx context.Context, patches []types.FilePatch) (types.ReviewReport, error)
}

// Executor carries out a decision against the outside world (or a
// simulation of it) and reports what happened and what it cost.
type Executor interface {
	Execute(ctx context.Context, d *types.AgentDecision) (*types.DecisionResult, error)
}

// Persistence stores thoughts and decisions durably, best-effort: the
// core logs and swallows persistence failures, it never propagates them.
type Persistence interface {
	SaveThought(ctx context.Context, t types.Thought) error
	SaveDecision(ctx context.Context, d *types.AgentDecision) error
	UpdateDecisionStatus(ctx context.Context, id string, status types.DecisionStatus, result *types.DecisionResult) error
}
