// Package swarm runs the simulation loop: it owns the agents, the shared
// pheromone channel, the decision engine, and the collaboration
// detector, and advances them tick by tick until the run ends or the
// context is cancelled.
package swarm

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/owizdom/swarm-mind/internal/agent"
	"github.com/owizdom/swarm-mind/internal/collab"
	"github.com/owizdom/swarm-mind/internal/config"
	"github.com/owizdom/swarm-mind/internal/decision"
	"github.com/owizdom/swarm-mind/internal/external"
	"github.com/owizdom/swarm-mind/internal/pheromone"
	"github.com/owizdom/swarm-mind/internal/types"
)

// Loop tuning.
const (
	maxConcurrentAgents = 8 // errgroup limit for the per-tick fan-out
	tokensPerExecTick   = 2000
	stepSuccessRate     = 0.85 // intermediate progress checks while in flight
	discoveryLimit      = 3
	recentThoughtWindow = 3
	emitConfidence      = 0.75
	nearbySignalLimit   = 5
)

// Collaborators bundles the external services a swarm runs against.
// Reasoner and Executor are required; the rest default to no-ops.
type Collaborators struct {
	Reasoner external.Reasoner
	Executor external.Executor
	Repos    external.RepoDiscovery
	Issues   external.IssueDiscovery
	Persist  external.Persistence
}

// member pairs an agent with the orchestrator's bookkeeping for it.
// Execution progress and the last result live here, not on the agent,
// because they belong to the loop, not the state machine.
type member struct {
	agent         *agent.Agent
	execTicksLeft int
	lastResult    *types.DecisionResult
	lastRepos     []types.RepoInfo // previous discovery, fed to the next reasoning call
}

// Swarm is one simulation run.
type Swarm struct {
	cfg      *config.Config
	channel  *pheromone.Channel
	members  []*member
	engine   *decision.Engine
	detector *collab.Detector
	ext      Collaborators
	log      *zap.Logger

	step     int
	projects []*collab.Project
	proposed map[string]bool // dedupe key: participants + repos
	snapshot types.SwarmSnapshot
}

// New builds a swarm from configuration. Agents are named and seeded
// deterministically from cfg.Swarm.Seed; a zero seed draws from the
// clock. Specializations rotate through the standard set.
func New(cfg *config.Config, ext Collaborators, log *zap.Logger) (*Swarm, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if ext.Reasoner == nil {
		return nil, fmt.Errorf("swarm requires a reasoner")
	}
	if ext.Executor == nil {
		return nil, fmt.Errorf("swarm requires an executor")
	}
	if ext.Repos == nil {
		ext.Repos = external.NoopDiscovery{}
	}
	if ext.Issues == nil {
		ext.Issues = external.NoopDiscovery{}
	}
	if ext.Persist == nil {
		ext.Persist = external.NoopPersistence{}
	}
	if log == nil {
		log = zap.NewNop()
	}

	seed := cfg.Swarm.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	bounds := agent.Bounds{MaxX: cfg.Swarm.WorldSize, MaxY: cfg.Swarm.WorldSize}
	members := make([]*member, cfg.Swarm.Agents)
	for i := range members {
		spec := agent.Specializations[i%len(agent.Specializations)]
		a := agent.New(agent.Config{
			Name:           fmt.Sprintf("ant-%02d", i+1),
			Specialization: spec,
			TokenBudget:    cfg.Swarm.TokenBudget,
			Bounds:         bounds,
			Rand:           rand.New(rand.NewSource(seed + int64(i))),
		})
		members[i] = &member{agent: a}
	}

	return &Swarm{
		cfg:      cfg,
		channel:  pheromone.NewChannel(cfg.Channel.CriticalThreshold),
		members:  members,
		engine:   decision.NewEngine(log),
		detector: collab.NewDetector(log),
		ext:      ext,
		log:      log,
		proposed: make(map[string]bool),
	}, nil
}

// Channel exposes the shared pheromone channel, mostly for tests and
// the status renderer.
func (s *Swarm) Channel() *pheromone.Channel { return s.channel }

// Agents returns the live agent population.
func (s *Swarm) Agents() []*agent.Agent {
	out := make([]*agent.Agent, len(s.members))
	for i, m := range s.members {
		out[i] = m.agent
	}
	return out
}

// Projects returns the collaboration projects detected so far.
func (s *Swarm) Projects() []*collab.Project { return s.projects }

// Run advances the simulation for the configured number of ticks or
// until ctx is cancelled, whichever comes first.
func (s *Swarm) Run(ctx context.Context) error {
	s.log.Info("swarm starting",
		zap.Int("agents", len(s.members)),
		zap.Int("ticks", s.cfg.Swarm.Ticks),
		zap.Float64("critical_threshold", s.cfg.Channel.CriticalThreshold))

	for i := 0; i < s.cfg.Swarm.Ticks; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.Tick(ctx); err != nil {
			return err
		}
	}

	s.log.Info("swarm finished",
		zap.Int("ticks", s.step),
		zap.Float64("density", s.channel.Density()),
		zap.Bool("phase_transitioned", s.channel.PhaseTransitioned()),
		zap.Int("synchronized", s.snapshot.Synchronized()),
		zap.Int("projects", len(s.projects)))
	return nil
}

// Tick advances the simulation by one step: channel physics first, then
// every agent concurrently, then periodic collaboration detection, then
// the snapshot.
func (s *Swarm) Tick(ctx context.Context) error {
	s.step++

	s.channel.Decay(s.cfg.Channel.DecayFactor)
	s.channel.Recompute()
	already := s.channel.PhaseTransitioned()
	if s.channel.CheckPhaseTransition(s.step) && !already {
		s.log.Info("phase transition",
			zap.Int("step", s.step),
			zap.Float64("density", s.channel.Density()))
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentAgents)
	for _, m := range s.members {
		m := m
		g.Go(func() error {
			return s.agentTick(gctx, m)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if s.step%s.cfg.Swarm.CollabInterval == 0 {
		s.detectCollaboration(ctx)
	}

	s.takeSnapshot(ctx)
	return nil
}

// agentTick runs one agent's full step. The agent is exclusively owned
// here; the only shared objects touched are the channel, the external
// collaborators, and the persistence sink, all of which synchronize
// internally.
func (s *Swarm) agentTick(ctx context.Context, m *member) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	a := m.agent

	a.Move(s.channel)
	a.AbsorbPheromones(s.channel)

	if !a.BudgetExhausted() {
		if a.CurrentDecision.InFlight() {
			s.stepDecision(ctx, m)
		} else if s.engine.ShouldSwitch(a, m.lastResult) {
			s.decide(ctx, m)
		}
	}

	if a.CheckSync(s.channel) {
		s.log.Info("agent synchronized",
			zap.String("agent", a.Name),
			zap.Int("step", s.step),
			zap.Int("absorbed", len(a.Absorbed)))
	}
	return nil
}
