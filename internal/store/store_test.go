package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/owizdom/swarm-mind/internal/types"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveThoughtRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	th := types.Thought{
		ID:               uuid.NewString(),
		AgentID:          "agent-1",
		Reasoning:        "the channel is quiet",
		Conclusion:       "explore",
		SuggestedActions: []string{"explore lock-free queues"},
		Confidence:       0.7,
		CreatedAt:        time.Now(),
	}
	require.NoError(t, s.SaveThought(ctx, th))
	// Re-saving the same id must not duplicate.
	require.NoError(t, s.SaveThought(ctx, th))

	n, err := s.CountThoughts(ctx, "agent-1")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestDecisionLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	d := &types.AgentDecision{
		ID:      uuid.NewString(),
		AgentID: "agent-2",
		Action:  types.StudyRepo{Owner: "quietbyte", Repo: "ledgerkv"},
		Status:  types.DecisionExecuting,
		Cost: types.ActionCost{
			EstimatedTokens: 3000,
			Risk:            types.RiskLow,
		},
		CreatedAt: time.Now(),
	}
	require.NoError(t, s.SaveDecision(ctx, d))

	res := &types.DecisionResult{Success: true, Summary: "studied", TokensUsed: 2800}
	require.NoError(t, s.UpdateDecisionStatus(ctx, d.ID, types.DecisionCompleted, res))

	status, err := s.DecisionStatus(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, types.DecisionCompleted, status)

	err = s.UpdateDecisionStatus(ctx, "missing-id", types.DecisionFailed, nil)
	assert.Error(t, err, "updating an unknown decision must fail")
}

func TestSnapshotLatestWins(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.LatestSnapshot(ctx)
	require.Error(t, err, "no snapshots stored yet")

	for step := 1; step <= 3; step++ {
		snap := types.SwarmSnapshot{
			Step:    step,
			Density: float64(step) / 10,
			Agents: []types.AgentSummary{
				{ID: "a", Name: "ant-1", Energy: 0.5},
			},
		}
		require.NoError(t, s.SaveSnapshot(ctx, snap))
	}

	got, err := s.LatestSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Step)
	require.Len(t, got.Agents, 1)
	assert.Equal(t, "ant-1", got.Agents[0].Name)
}

func TestSavePheromoneAndProject(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	rec := PheromoneRecord{
		ID:        uuid.NewString(),
		AgentID:   "agent-3",
		Content:   "use errgroup for bounded fan-out",
		Domain:    "concurrency",
		Strength:  0.8,
		CreatedAt: time.Now(),
	}
	require.NoError(t, s.SavePheromone(ctx, rec))

	require.NoError(t, s.SaveProject(ctx, uuid.NewString(), "Joint work on quietbyte/ledgerkv",
		"repo_overlap", "proposed", []string{"agent-2", "agent-3"}, 42))
}
