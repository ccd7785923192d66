package swarm

import (
	"context"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/owizdom/swarm-mind/internal/collab"
	"github.com/owizdom/swarm-mind/internal/external"
	"github.com/owizdom/swarm-mind/internal/store"
	"github.com/owizdom/swarm-mind/internal/types"
)

// decide runs one full decision cycle for an agent: reason about the
// current observations, discover material, generate and score the
// candidate pool, and select a decision into flight.
func (s *Swarm) decide(ctx context.Context, m *member) {
	a := m.agent

	rc := s.buildContext(m)
	thought, err := s.ext.Reasoner.Reason(ctx, rc)
	if err != nil {
		// Reasoners degrade rather than fail, so an error here means the
		// collaborator itself broke; keep the loop alive regardless.
		s.log.Warn("reasoner error", zap.String("agent", a.Name), zap.Error(err))
		return
	}
	a.RecordThought(thought)
	if perr := s.ext.Persist.SaveThought(ctx, thought); perr != nil {
		s.log.Warn("thought not persisted", zap.String("agent", a.Name), zap.Error(perr))
	}

	repos, err := s.ext.Repos.Discover(ctx, a.ExplorationTarget, s.discoveryFilters())
	if err != nil {
		s.log.Warn("discovery error", zap.String("agent", a.Name), zap.Error(err))
		repos = nil
	}
	m.lastRepos = repos
	var issues []types.IssueInfo
	if len(repos) > 0 {
		issues, err = s.ext.Issues.ListIssues(ctx, repos[0].Owner, repos[0].Repo, discoveryLimit)
		if err != nil {
			s.log.Warn("issue listing error", zap.String("agent", a.Name), zap.Error(err))
			issues = nil
		}
	}

	pool := s.engine.GenerateCandidates(a, s.channel, repos, issues, a.RecentThoughts(recentThoughtWindow))
	s.engine.ScoreAll(pool, a, s.channel)

	sel := s.engine.Select(pool, s.cfg.Swarm.Temperature, a.Rand())
	if sel == nil {
		return
	}
	sel.Status = types.DecisionExecuting
	a.CurrentDecision = sel
	a.RecordDecision(sel)
	m.execTicksLeft = execTicks(sel.Cost)
	m.lastResult = nil

	if perr := s.ext.Persist.SaveDecision(ctx, sel); perr != nil {
		s.log.Warn("decision not persisted", zap.String("agent", a.Name), zap.Error(perr))
	}
	s.log.Debug("decision selected",
		zap.String("agent", a.Name),
		zap.String("action", sel.Action.Describe()),
		zap.Float64("priority", sel.Priority))
}

// stepDecision advances an in-flight decision by one tick. Work takes
// several ticks; each intermediate tick the agent judges its progress
// and may abandon, and on the final tick the executor resolves it.
func (s *Swarm) stepDecision(ctx context.Context, m *member) {
	a := m.agent
	d := a.CurrentDecision

	m.execTicksLeft--
	if m.execTicksLeft > 0 {
		stepRes := &types.DecisionResult{Success: a.Rand().Float64() < stepSuccessRate}
		if !s.engine.ShouldSwitch(a, stepRes) {
			return
		}
		s.abandon(ctx, m, d)
		return
	}

	res, err := s.ext.Executor.Execute(ctx, d)
	if err != nil {
		s.log.Warn("executor error", zap.String("agent", a.Name), zap.Error(err))
		res = &types.DecisionResult{Success: false, Summary: "execution error: " + err.Error()}
	}
	s.finalize(ctx, m, d, res)
}

// abandon fails an in-flight decision partway through, charging the
// agent for the ticks already spent.
func (s *Swarm) abandon(ctx context.Context, m *member, d *types.AgentDecision) {
	a := m.agent
	spent := partialSpend(d.Cost, m.execTicksLeft)
	res := &types.DecisionResult{
		Success:    false,
		Summary:    "abandoned: " + d.Action.Describe(),
		TokensUsed: spent,
	}
	s.finalize(ctx, m, d, res)
	s.log.Debug("decision abandoned",
		zap.String("agent", a.Name),
		zap.String("action", d.Action.Describe()),
		zap.Int("tokens_spent", spent))
}

// finalize settles a resolved decision: budget, studied-repo memory,
// pheromone emission on success, and persistence.
func (s *Swarm) finalize(ctx context.Context, m *member, d *types.AgentDecision, res *types.DecisionResult) {
	a := m.agent

	d.Finalize(res)
	a.ConsumeTokens(res.TokensUsed)
	a.CurrentDecision = nil // only an in-flight decision occupies the slot
	m.lastResult = res

	if res.Success {
		if repo := types.ActionRepo(d.Action); repo != "" && d.Action.Kind() == types.ActionStudyRepo {
			a.MarkStudied(repo)
		}
		p := a.Emit(s.channel, res.Summary, a.Specialization, emitConfidence)
		s.persistPheromone(ctx, a.ID, p.ID)
	}

	if perr := s.ext.Persist.UpdateDecisionStatus(ctx, d.ID, d.Status, res); perr != nil {
		s.log.Warn("decision status not persisted", zap.String("agent", a.Name), zap.Error(perr))
	}
}

// buildContext assembles the observation bundle handed to the reasoner.
func (s *Swarm) buildContext(m *member) types.ReasoningContext {
	a := m.agent

	var signals []string
	for _, v := range s.channel.Views() {
		if _, ok := a.Absorbed[v.ID]; ok {
			signals = append(signals, v.Content)
			if len(signals) >= nearbySignalLimit {
				break
			}
		}
	}

	return types.ReasoningContext{
		AgentID:           a.ID,
		AgentName:         a.Name,
		Specialization:    a.Specialization,
		Target:            a.ExplorationTarget,
		Step:              s.step,
		Energy:            a.Energy,
		Synchronized:      a.Synchronized,
		ChannelDensity:    s.channel.Density(),
		PhaseTransitioned: s.channel.PhaseTransitioned(),
		NearbySignals:     signals,
		RecentRepos:       m.lastRepos,
	}
}

func (s *Swarm) discoveryFilters() external.DiscoveryFilters {
	return external.DiscoveryFilters{Limit: discoveryLimit}
}

// detectCollaboration runs one detector sweep, recording and persisting
// a newly proposed project. Proposals are deduplicated by membership
// (participants plus repos), so the same effort is not re-proposed every
// sweep but a changed lineup — say a grown synchronized core — is.
func (s *Swarm) detectCollaboration(ctx context.Context) {
	p := s.detector.Detect(s.Agents(), s.channel)
	if p == nil {
		return
	}
	key := proposalKey(p)
	if s.proposed[key] {
		return
	}
	s.proposed[key] = true
	s.projects = append(s.projects, p)
	s.log.Info("collaboration proposed",
		zap.String("title", p.Title),
		zap.Int("participants", len(p.Participants)),
		zap.Int("step", s.step))

	if saver, ok := s.ext.Persist.(*store.Store); ok {
		kind := "repo_overlap"
		if len(p.Repos) == 0 {
			kind = "cross_domain"
		}
		if err := saver.SaveProject(ctx, p.ID, p.Title, kind, string(p.Status), p.Participants, s.step); err != nil {
			s.log.Warn("project not persisted", zap.Error(err))
		}
	}
}

// takeSnapshot captures the read-only view of this tick and persists it
// best-effort when the sink supports snapshots.
func (s *Swarm) takeSnapshot(ctx context.Context) {
	snap := types.SwarmSnapshot{
		Step:              s.step,
		Density:           s.channel.Density(),
		PheromoneCount:    s.channel.Len(),
		PhaseTransitioned: s.channel.PhaseTransitioned(),
		Projects:          len(s.projects),
		TakenAt:           time.Now(),
	}
	if ts, ok := s.channel.TransitionStep(); ok {
		snap.TransitionStep = ts
	}
	for _, m := range s.members {
		snap.Agents = append(snap.Agents, m.agent.Summary())
	}
	s.snapshot = snap

	if saver, ok := s.ext.Persist.(*store.Store); ok {
		if err := saver.SaveSnapshot(ctx, snap); err != nil {
			s.log.Warn("snapshot not persisted", zap.Error(err))
		}
	}
}

// Snapshot returns the view captured at the end of the latest tick.
func (s *Swarm) Snapshot() types.SwarmSnapshot { return s.snapshot }

// persistPheromone stores an emitted pheromone when the sink supports it.
func (s *Swarm) persistPheromone(ctx context.Context, agentID, pheromoneID string) {
	saver, ok := s.ext.Persist.(*store.Store)
	if !ok {
		return
	}
	for _, v := range s.channel.Views() {
		if v.ID != pheromoneID {
			continue
		}
		rec := store.PheromoneRecord{
			ID:         v.ID,
			AgentID:    agentID,
			Content:    v.Content,
			Domain:     v.Domain,
			Strength:   v.Strength,
			Confidence: v.Confidence,
			CreatedAt:  time.Now(),
		}
		if err := saver.SavePheromone(ctx, rec); err != nil {
			s.log.Warn("pheromone not persisted", zap.Error(err))
		}
		return
	}
}

// proposalKey identifies a proposal by who is involved, not what it is
// called: sorted participants plus sorted repos.
func proposalKey(p *collab.Project) string {
	participants := append([]string(nil), p.Participants...)
	sort.Strings(participants)
	repos := append([]string(nil), p.Repos...)
	sort.Strings(repos)
	return strings.Join(participants, ",") + "|" + strings.Join(repos, ",")
}

// execTicks maps an action's cost to how many loop ticks it occupies.
func execTicks(c types.ActionCost) int {
	n := c.EstimatedTokens / tokensPerExecTick
	if n < 1 {
		n = 1
	}
	return n
}

// partialSpend charges an abandoned decision for the fraction of its
// estimate already worked, at least one tick's worth.
func partialSpend(c types.ActionCost, ticksLeft int) int {
	total := execTicks(c)
	done := total - ticksLeft
	if done < 1 {
		done = 1
	}
	return c.EstimatedTokens * done / total
}
