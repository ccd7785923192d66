// Package decision implements the swarm's decision engine: candidate
// generation from observations, multi-factor weighted scoring, and
// temperature-controlled stochastic selection.
//
// The engine owns no per-agent state; it operates on a single agent's
// state plus read-only views of the channel and externally supplied
// candidate material. All randomness is drawn from the agent's own random
// source so that ticks can fan out to concurrent workers.
package decision

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/owizdom/swarm-mind/internal/types"
)

// Engine generates, scores, and selects agent decisions.
type Engine struct {
	log *zap.Logger
}

// NewEngine creates a decision engine. A nil logger is replaced with a
// no-op logger.
func NewEngine(log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{log: log}
}

// newPending wraps an action in a pending, unscored decision with its
// fixed cost estimate attached.
func newPending(agentID string, action types.Action) *types.AgentDecision {
	return &types.AgentDecision{
		ID:        uuid.NewString(),
		AgentID:   agentID,
		Action:    action,
		Priority:  0,
		Cost:      EstimateCost(action),
		Status:    types.DecisionPending,
		CreatedAt: time.Now(),
	}
}
