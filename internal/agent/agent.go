// Package agent implements the per-agent state machine: continuous
// movement through the abstract idea space, probabilistic absorption of
// channel pheromones, and the one-way transition into the synchronized
// collective state.
//
// An Agent is exclusively owned by whichever goroutine is processing its
// tick; nothing here is locked. The only shared object an agent touches
// is the pheromone channel, which synchronizes internally.
package agent

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/owizdom/swarm-mind/internal/pheromone"
	"github.com/owizdom/swarm-mind/internal/types"
)

// Bounds is the fixed rectangle the simulation space is clamped to.
// Walls are soft: position is clamped, velocity is not bounced.
type Bounds struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// DefaultBounds is the standard simulation rectangle.
func DefaultBounds() Bounds {
	return Bounds{MinX: 0, MinY: 0, MaxX: 1000, MaxY: 1000}
}

// Center returns the collective center synchronized agents orbit.
func (b Bounds) Center() (float64, float64) {
	return (b.MinX + b.MaxX) / 2, (b.MinY + b.MaxY) / 2
}

// Config holds the creation-time parameters of an agent.
type Config struct {
	Name           string
	Specialization string
	TokenBudget    int
	Bounds         Bounds
	Rand           *rand.Rand
}

// Agent is the full state of one autonomous agent.
//
// synchronized is monotone: once an agent joins the collective it never
// leaves. absorbed is idempotent per pheromone id. thoughts and decisions
// are append-only logs; at most one decision is in flight at a time.
type Agent struct {
	ID   string
	Name string

	X, Y   float64
	DX, DY float64

	Knowledge         []*pheromone.Pheromone
	Absorbed          map[string]struct{}
	ExplorationTarget string
	Energy            float64
	Synchronized      bool
	StepCount         int
	Discoveries       int

	Personality    Personality
	Specialization string

	TokensUsed  int
	TokenBudget int

	Thoughts        []types.Thought
	Decisions       []*types.AgentDecision
	CurrentDecision *types.AgentDecision

	StudiedRepos map[string]struct{}

	bounds Bounds
	rng    *rand.Rand

	// ids of the most recently absorbed pheromones, newest last; used to
	// link emitted pheromones to their lineage.
	recentAbsorbed []string
}

// New creates an agent at a random position with full energy.
func New(cfg Config) *Agent {
	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	bounds := cfg.Bounds
	if bounds.MaxX == bounds.MinX || bounds.MaxY == bounds.MinY {
		bounds = DefaultBounds()
	}
	spec := cfg.Specialization
	if spec == "" {
		spec = PickSpecialization(rng)
	}
	budget := cfg.TokenBudget
	if budget <= 0 {
		budget = 50000
	}

	return &Agent{
		ID:                uuid.NewString(),
		Name:              cfg.Name,
		X:                 bounds.MinX + rng.Float64()*(bounds.MaxX-bounds.MinX),
		Y:                 bounds.MinY + rng.Float64()*(bounds.MaxY-bounds.MinY),
		Absorbed:          make(map[string]struct{}),
		ExplorationTarget: spec,
		Energy:            1.0,
		Personality:       newPersonality(spec, rng),
		Specialization:    spec,
		TokenBudget:       budget,
		StudiedRepos:      make(map[string]struct{}),
		bounds:            bounds,
		rng:               rng,
	}
}

// Rand returns the agent's random source. All of the agent's stochastic
// behavior flows through it so tests can pin outcomes.
func (a *Agent) Rand() *rand.Rand { return a.rng }

// RemainingBudget returns the unspent token budget, never negative.
func (a *Agent) RemainingBudget() int {
	r := a.TokenBudget - a.TokensUsed
	if r < 0 {
		return 0
	}
	return r
}

// BudgetRatio returns remaining/total budget in [0,1].
func (a *Agent) BudgetRatio() float64 {
	if a.TokenBudget <= 0 {
		return 0
	}
	return float64(a.RemainingBudget()) / float64(a.TokenBudget)
}

// BudgetExhausted reports whether the agent has nothing left to spend.
func (a *Agent) BudgetExhausted() bool { return a.RemainingBudget() == 0 }

// ConsumeTokens records spend against the budget. Spend is monotone; the
// cap is structural (candidates over budget are filtered out), so this
// only tracks, it does not reject.
func (a *Agent) ConsumeTokens(n int) {
	if n > 0 {
		a.TokensUsed += n
	}
}

// RecordThought appends a thought to the agent's log.
func (a *Agent) RecordThought(t types.Thought) {
	a.Thoughts = append(a.Thoughts, t)
}

// RecentThoughts returns up to n of the newest thoughts, newest last.
func (a *Agent) RecentThoughts(n int) []types.Thought {
	if n <= 0 || len(a.Thoughts) == 0 {
		return nil
	}
	if len(a.Thoughts) < n {
		n = len(a.Thoughts)
	}
	return a.Thoughts[len(a.Thoughts)-n:]
}

// RecordDecision appends a decision to the log.
func (a *Agent) RecordDecision(d *types.AgentDecision) {
	a.Decisions = append(a.Decisions, d)
}

// RecentCompletedKinds returns the action kinds of the last n completed
// decisions. Used by the scoring staleness bonus.
func (a *Agent) RecentCompletedKinds(n int) []types.ActionKind {
	var kinds []types.ActionKind
	for i := len(a.Decisions) - 1; i >= 0 && len(kinds) < n; i-- {
		if a.Decisions[i].Status == types.DecisionCompleted {
			kinds = append(kinds, a.Decisions[i].Action.Kind())
		}
	}
	return kinds
}

// MarkStudied records that the agent has studied a repository.
func (a *Agent) MarkStudied(fullName string) {
	a.StudiedRepos[fullName] = struct{}{}
}

// HasStudied reports whether the agent already studied a repository.
func (a *Agent) HasStudied(fullName string) bool {
	_, ok := a.StudiedRepos[fullName]
	return ok
}

// Emit creates a pheromone from a discovery, appends it to the agent's
// knowledge and to the channel, and links it to the agent's most recently
// absorbed signals. Initial strength scales with confidence so confident
// discoveries pull harder on the rest of the swarm.
func (a *Agent) Emit(ch *pheromone.Channel, content, domain string, confidence float64) *pheromone.Pheromone {
	p := pheromone.New(a.ID, content, domain, confidence, 0.4+0.4*clamp01(confidence))
	p.Attestation = fmt.Sprintf("%s@step%d", a.Name, a.StepCount)
	ch.Emit(p)
	for _, parent := range a.recentAbsorbed {
		ch.Link(p.ID, parent)
	}
	a.Knowledge = append(a.Knowledge, p)
	a.Discoveries++
	return p
}

// Summary builds the read-only snapshot view of the agent.
func (a *Agent) Summary() types.AgentSummary {
	s := types.AgentSummary{
		ID:             a.ID,
		Name:           a.Name,
		Specialization: a.Specialization,
		X:              a.X,
		Y:              a.Y,
		Energy:         a.Energy,
		Synchronized:   a.Synchronized,
		Absorbed:       len(a.Absorbed),
		Discoveries:    a.Discoveries,
		TokensUsed:     a.TokensUsed,
		TokenBudget:    a.TokenBudget,
		Decisions:      len(a.Decisions),
	}
	if a.CurrentDecision.InFlight() {
		s.CurrentAction = a.CurrentDecision.Action.Describe()
	}
	return s
}
