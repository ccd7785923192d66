package swarm

import (
	"context"
	"fmt"
	"math/rand"
	"sync"

	"github.com/owizdom/swarm-mind/internal/types"
)

// Execution outcome tuning for the simulated executor.
const (
	baseSuccessRate = 0.9 // low-risk actions land this often
	riskSuccessDrop = 2.0 // each risk multiplier step costs 0.2 success
	spendJitter     = 0.4 // actual spend is estimate * [0.8, 1.2)
)

// SimulatedExecutor resolves decisions without touching the outside
// world. Success is probabilistic in the action's risk, and actual token
// spend jitters around the estimate. Safe for concurrent use.
type SimulatedExecutor struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSimulatedExecutor creates an executor driven by rng. A nil rng
// panics; the caller owns seeding.
func NewSimulatedExecutor(rng *rand.Rand) *SimulatedExecutor {
	if rng == nil {
		panic("swarm: SimulatedExecutor requires a rand source")
	}
	return &SimulatedExecutor{rng: rng}
}

// Execute resolves the decision in one call. It never returns an error;
// failed work is reported through the result so the caller's control
// flow stays uniform.
func (e *SimulatedExecutor) Execute(ctx context.Context, d *types.AgentDecision) (*types.DecisionResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e.mu.Lock()
	roll := e.rng.Float64()
	jitter := 1 - spendJitter/2 + e.rng.Float64()*spendJitter
	e.mu.Unlock()

	success := roll < baseSuccessRate-d.Cost.Risk.Multiplier()*riskSuccessDrop
	tokens := int(float64(d.Cost.EstimatedTokens) * jitter)

	res := &types.DecisionResult{
		Success:    success,
		TokensUsed: tokens,
	}
	if success {
		res.Summary = fmt.Sprintf("completed: %s", d.Action.Describe())
		res.Artifacts = []types.Artifact{artifactFor(d.Action)}
	} else {
		res.Summary = fmt.Sprintf("failed: %s", d.Action.Describe())
	}
	return res, nil
}

func artifactFor(a types.Action) types.Artifact {
	switch a.Kind() {
	case types.ActionStudyRepo, types.ActionExploreTopic:
		return types.Artifact{Kind: "note", Content: a.Describe()}
	case types.ActionShareTechnique:
		return types.Artifact{Kind: "technique", Content: a.Describe()}
	case types.ActionWriteCode, types.ActionRefactor, types.ActionFixIssue, types.ActionContributePR:
		return types.Artifact{Kind: "patch", Content: a.Describe()}
	default:
		return types.Artifact{Kind: "summary", Content: a.Describe()}
	}
}
