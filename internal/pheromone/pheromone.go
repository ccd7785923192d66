// Package pheromone implements the shared signal channel the swarm
// coordinates through. Agents append pheromones when they discover
// something and boost the strength of pheromones they absorb; the channel
// derives an aggregate density and detects the one-time phase transition
// when density crosses the critical threshold.
package pheromone

import (
	"time"

	"github.com/google/uuid"
)

// Pheromone is a persistent knowledge signal emitted by an agent.
//
// Strength only ever changes through absorption feedback (+0.1, capped at
// 1.0) or through channel-level decay applied by the orchestrator.
// Pheromones are never deleted; they are retained for density and lineage.
type Pheromone struct {
	ID          string
	AgentID     string
	Content     string
	Domain      string
	Confidence  float64 // in [0,1]
	Strength    float64 // in [0,1]
	Connections map[string]struct{}
	Timestamp   time.Time
	Attestation string
}

// New creates a pheromone with a fresh id, clamping confidence and
// strength into [0,1].
func New(agentID, content, domain string, confidence, strength float64) *Pheromone {
	return &Pheromone{
		ID:          uuid.NewString(),
		AgentID:     agentID,
		Content:     content,
		Domain:      domain,
		Confidence:  clamp01(confidence),
		Strength:    clamp01(strength),
		Connections: make(map[string]struct{}),
		Timestamp:   time.Now(),
	}
}

// View is an immutable copy of a pheromone's fields handed to agents.
// Agents read views and feed back through Channel.Boost, so concurrent
// ticks never touch shared pheromone memory directly.
type View struct {
	ID         string
	AgentID    string
	Content    string
	Domain     string
	Confidence float64
	Strength   float64
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
