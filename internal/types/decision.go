package types

import "time"

// RiskLevel classifies how risky executing an action is.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Multiplier returns the scoring penalty multiplier for the risk level.
// Risky actions are penalized harder as the agent's budget depletes.
func (r RiskLevel) Multiplier() float64 {
	switch r {
	case RiskLow:
		return 0
	case RiskMedium:
		return 0.1
	case RiskHigh:
		return 0.2
	default:
		return 0
	}
}

// ActionCost is the fixed estimate of what executing an action will spend.
type ActionCost struct {
	EstimatedTokens int
	EstimatedTime   time.Duration
	Risk            RiskLevel
}

// DecisionStatus is the lifecycle state of a decision.
type DecisionStatus string

const (
	DecisionPending   DecisionStatus = "pending"
	DecisionExecuting DecisionStatus = "executing"
	DecisionCompleted DecisionStatus = "completed"
	DecisionFailed    DecisionStatus = "failed"
)

// Artifact is a piece of output produced by executing a decision.
type Artifact struct {
	Kind    string // "summary", "patch", "note", "technique"
	Content string
	URL     string
}

// DecisionResult is the outcome reported by the execution collaborator.
type DecisionResult struct {
	Success    bool
	Summary    string
	Artifacts  []Artifact
	TokensUsed int
}

// AgentDecision is a scored, possibly in-flight action chosen by an agent.
//
// Lifecycle: created pending with Priority 0, scored, at most one selected
// per agent and moved to executing, then completed or failed when
// execution resolves. An agent never has more than one executing decision.
type AgentDecision struct {
	ID       string
	AgentID  string
	Action   Action
	Priority float64
	Cost     ActionCost
	Status   DecisionStatus
	Result   *DecisionResult

	CreatedAt   time.Time
	CompletedAt time.Time
}

// InFlight reports whether the decision is currently executing.
func (d *AgentDecision) InFlight() bool {
	return d != nil && d.Status == DecisionExecuting
}

// Finalize records the terminal status and result of the decision.
func (d *AgentDecision) Finalize(res *DecisionResult) {
	d.Result = res
	d.CompletedAt = time.Now()
	if res != nil && res.Success {
		d.Status = DecisionCompleted
	} else {
		d.Status = DecisionFailed
	}
}
