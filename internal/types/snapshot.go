package types

import "time"

// AgentSummary is the read-only view of one agent exposed in snapshots.
type AgentSummary struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Specialization string  `json:"specialization"`
	X              float64 `json:"x"`
	Y              float64 `json:"y"`
	Energy         float64 `json:"energy"`
	Synchronized   bool    `json:"synchronized"`
	Absorbed       int     `json:"absorbed"`
	Discoveries    int     `json:"discoveries"`
	TokensUsed     int     `json:"tokens_used"`
	TokenBudget    int     `json:"token_budget"`
	Decisions      int     `json:"decisions"`
	CurrentAction  string  `json:"current_action,omitempty"`
}

// SwarmSnapshot is a read-only view of the whole simulation at one step.
// Snapshots are persisted best-effort and rendered by the status command;
// the simulation core never reads them back.
type SwarmSnapshot struct {
	Step              int            `json:"step"`
	Density           float64        `json:"density"`
	PheromoneCount    int            `json:"pheromone_count"`
	PhaseTransitioned bool           `json:"phase_transitioned"`
	TransitionStep    int            `json:"transition_step,omitempty"`
	Agents            []AgentSummary `json:"agents"`
	Projects          int            `json:"projects"`
	TakenAt           time.Time      `json:"taken_at"`
}

// Synchronized counts agents that have entered the collective state.
func (s *SwarmSnapshot) Synchronized() int {
	n := 0
	for _, a := range s.Agents {
		if a.Synchronized {
			n++
		}
	}
	return n
}
