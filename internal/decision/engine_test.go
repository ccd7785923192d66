package decision

import (
	"math/rand"
	"testing"

	"github.com/owizdom/swarm-mind/internal/agent"
	"github.com/owizdom/swarm-mind/internal/pheromone"
	"github.com/owizdom/swarm-mind/internal/types"
)

func newTestAgent(seed int64) *agent.Agent {
	return agent.New(agent.Config{
		Name:           "grace",
		Specialization: "storage",
		TokenBudget:    50000,
		Rand:           rand.New(rand.NewSource(seed)),
	})
}

func TestBudgetFilterKeepsOnlyAffordableCandidates(t *testing.T) {
	e := NewEngine(nil)

	// Budget 50000 with 49500 spent: study_repo (3000) is filtered out;
	// the explore_topic fallback survives as the last resort.
	a2 := newTestAgent(2)
	a2.ConsumeTokens(49500)

	ch := pheromone.NewChannel(0.6)
	repos := []types.RepoInfo{{Owner: "octo", Repo: "widget"}}

	pool := e.GenerateCandidates(a2, ch, repos, nil, nil)
	if len(pool) != 1 {
		t.Fatalf("pool size = %d, want 1 (only explore_topic survives)", len(pool))
	}
	if pool[0].Action.Kind() != types.ActionExploreTopic {
		t.Errorf("surviving kind = %s, want explore_topic", pool[0].Action.Kind())
	}
}

func TestEmptyPoolOnlyWhenBudgetExhausted(t *testing.T) {
	e := NewEngine(nil)
	ch := pheromone.NewChannel(0.6)

	a := newTestAgent(3)
	a.ConsumeTokens(50000)
	if pool := e.GenerateCandidates(a, ch, nil, nil, nil); pool != nil {
		t.Errorf("exhausted agent got %d candidates, want none", len(pool))
	}

	// With any budget left the explore_topic fallback guarantees a
	// non-empty pool even with no material at all.
	b := newTestAgent(4)
	pool := e.GenerateCandidates(b, ch, nil, nil, nil)
	if len(pool) == 0 {
		t.Fatal("pool empty despite remaining budget")
	}
	if pool[len(pool)-1].Action.Kind() != types.ActionExploreTopic {
		t.Error("fallback explore_topic candidate missing")
	}
}

func TestGenerateNeverOffersOutOfScopeKinds(t *testing.T) {
	e := NewEngine(nil)
	a := newTestAgent(5)
	a.Personality.Sociability = 0.9
	ch := pheromone.NewChannel(0.6)
	for i := 0; i < 8; i++ {
		ch.Emit(pheromone.New("seed", "s", "d", 0.5, 0.5))
	}

	thoughts := []types.Thought{{
		AgentID: a.ID,
		SuggestedActions: []string{
			"fix the flaky test in octo/widget",
			"contribute a patch to octo/widget",
			"study octo/widget internals",
			"share technique: context-aware batching",
			"explore write-ahead logging",
			"refactor the compaction loop",
			"document the replication protocol",
		},
	}}
	repos := []types.RepoInfo{{Owner: "octo", Repo: "gadget"}}
	issues := []types.IssueInfo{{Number: 1, Title: "panic on restart"}}

	pool := e.GenerateCandidates(a, ch, repos, issues, thoughts)
	if len(pool) == 0 {
		t.Fatal("empty pool")
	}

	kinds := make(map[types.ActionKind]int)
	for _, d := range pool {
		kinds[d.Action.Kind()]++
		if d.Status != types.DecisionPending {
			t.Errorf("candidate created with status %s, want pending", d.Status)
		}
		if d.Priority != 0 {
			t.Errorf("candidate created with priority %v, want 0 before scoring", d.Priority)
		}
	}
	if kinds[types.ActionFixIssue] != 0 || kinds[types.ActionContributePR] != 0 {
		t.Fatalf("out-of-scope kinds offered: %v", kinds)
	}
	// Fix/contribute intents must have been redirected to study_repo.
	if kinds[types.ActionStudyRepo] < 3 {
		t.Errorf("study_repo count = %d, want >= 3 (two redirects + one discovery)", kinds[types.ActionStudyRepo])
	}
	for _, want := range []types.ActionKind{
		types.ActionShareTechnique, types.ActionExploreTopic,
		types.ActionRefactor, types.ActionDocument,
	} {
		if kinds[want] == 0 {
			t.Errorf("kind %s missing from pool", want)
		}
	}
}

func TestGenerateSkipsStudiedRepos(t *testing.T) {
	e := NewEngine(nil)
	a := newTestAgent(6)
	a.MarkStudied("octo/widget")
	ch := pheromone.NewChannel(0.6)

	pool := e.GenerateCandidates(a, ch, []types.RepoInfo{{Owner: "octo", Repo: "widget"}}, nil, nil)
	for _, d := range pool {
		if d.Action.Kind() == types.ActionStudyRepo {
			t.Errorf("already-studied repo offered again: %s", d.Action.Describe())
		}
	}
}

func TestShareTechniqueNeedsCrowdAndSociability(t *testing.T) {
	e := NewEngine(nil)
	ch := pheromone.NewChannel(0.6)
	for i := 0; i < 6; i++ {
		ch.Emit(pheromone.New("seed", "s", "d", 0.5, 0.5))
	}

	shy := newTestAgent(7)
	shy.Personality.Sociability = 0.3
	for _, d := range e.GenerateCandidates(shy, ch, nil, nil, nil) {
		if d.Action.Kind() == types.ActionShareTechnique {
			t.Error("shy agent offered share_technique")
		}
	}

	social := newTestAgent(8)
	social.Personality.Sociability = 0.8
	found := false
	for _, d := range e.GenerateCandidates(social, ch, nil, nil, nil) {
		if d.Action.Kind() == types.ActionShareTechnique {
			found = true
		}
	}
	if !found {
		t.Error("sociable agent in a crowded channel not offered share_technique")
	}
}

func TestScoreIsDeterministic(t *testing.T) {
	e := NewEngine(nil)
	a := newTestAgent(9)
	ch := pheromone.NewChannel(0.6)
	d := newPending(a.ID, types.StudyRepo{Owner: "octo", Repo: "widget"})

	first := e.Score(d, a, ch)
	for i := 0; i < 10; i++ {
		if got := e.Score(d, a, ch); got != first {
			t.Fatalf("score changed between identical calls: %v -> %v", first, got)
		}
	}
	if d.Priority != first {
		t.Errorf("priority not stored on decision: %v != %v", d.Priority, first)
	}
}

func TestScoreStalenessBonus(t *testing.T) {
	e := NewEngine(nil)
	a := newTestAgent(10)
	ch := pheromone.NewChannel(0.6)

	fresh := e.Score(newPending(a.ID, types.Document{Subject: "x"}), a, ch)

	a.RecordDecision(&types.AgentDecision{
		AgentID: a.ID,
		Action:  types.Document{Subject: "y"},
		Status:  types.DecisionCompleted,
	})
	repeat := e.Score(newPending(a.ID, types.Document{Subject: "x"}), a, ch)

	if diff := fresh - repeat; diff < 0.149 || diff > 0.151 {
		t.Errorf("staleness bonus = %v, want 0.15", diff)
	}
}

func TestScoreRiskPenaltyGrowsAsBudgetDepletes(t *testing.T) {
	e := NewEngine(nil)
	ch := pheromone.NewChannel(0.6)

	rich := newTestAgent(11)
	poor := newTestAgent(11)
	poor.ConsumeTokens(40000)

	// contribute_pr is high risk; with an identical personality the only
	// scoring difference between the two agents is budget-driven.
	poor.Personality = rich.Personality
	d := types.ContributePR{Owner: "octo", Repo: "widget", Title: "t"}

	richScore := e.Score(newPending(rich.ID, d), rich, ch)
	poorScore := e.Score(newPending(poor.ID, d), poor, ch)
	if poorScore >= richScore {
		t.Errorf("risk penalty did not grow with depletion: rich=%v poor=%v", richScore, poorScore)
	}
}

func TestScoreSwarmAlignmentAfterTransition(t *testing.T) {
	e := NewEngine(nil)
	a := newTestAgent(12)

	pre := pheromone.NewChannel(0.5)
	preStudy := e.Score(newPending(a.ID, types.StudyRepo{Owner: "o", Repo: "r"}), a, pre)
	preExplore := e.Score(newPending(a.ID, types.ExploreTopic{Topic: "t"}), a, pre)

	post := pheromone.NewChannel(0.5)
	for i := 0; i < 60; i++ {
		post.Emit(pheromone.New("seed", "s", "d", 0.9, 1.0))
	}
	post.Recompute()
	if !post.CheckPhaseTransition(1) {
		t.Fatal("precondition: channel did not transition")
	}

	postStudy := e.Score(newPending(a.ID, types.StudyRepo{Owner: "o", Repo: "r"}), a, post)
	postExplore := e.Score(newPending(a.ID, types.ExploreTopic{Topic: "t"}), a, post)

	if diff := postStudy - preStudy; diff < 0.099 || diff > 0.101 {
		t.Errorf("alignment bonus for study_repo = %v, want 0.10", diff)
	}
	if postExplore != preExplore {
		t.Errorf("explore_topic received alignment bonus: %v -> %v", preExplore, postExplore)
	}
}

func TestSelectGreedyAtZeroTemperature(t *testing.T) {
	e := NewEngine(nil)
	rng := rand.New(rand.NewSource(1))

	low := newPending("a", types.Document{Subject: "x"})
	low.Priority = 0.2
	firstHigh := newPending("a", types.StudyRepo{Owner: "o", Repo: "r"})
	firstHigh.Priority = 0.9
	secondHigh := newPending("a", types.ExploreTopic{Topic: "t"})
	secondHigh.Priority = 0.9

	cands := []*types.AgentDecision{low, firstHigh, secondHigh}
	for i := 0; i < 20; i++ {
		got := e.Select(cands, 0, rng)
		if got != firstHigh {
			t.Fatalf("greedy select returned %s, want first max-priority candidate", got.Action.Describe())
		}
	}

	if e.Select(nil, 0, rng) != nil {
		t.Error("Select(nil) != nil")
	}
}

func TestSelectSoftmaxMixesCandidates(t *testing.T) {
	e := NewEngine(nil)
	rng := rand.New(rand.NewSource(42))

	a := newPending("a", types.StudyRepo{Owner: "o", Repo: "r"})
	a.Priority = 0.8
	b := newPending("a", types.ExploreTopic{Topic: "t"})
	b.Priority = 0.6

	counts := map[*types.AgentDecision]int{}
	for i := 0; i < 2000; i++ {
		counts[e.Select([]*types.AgentDecision{a, b}, 0.5, rng)]++
	}
	if counts[a] == 0 || counts[b] == 0 {
		t.Fatalf("softmax never mixed: %d vs %d", counts[a], counts[b])
	}
	if counts[a] <= counts[b] {
		t.Errorf("higher-priority candidate selected less often: %d vs %d", counts[a], counts[b])
	}
}

func TestShouldSwitchUnconditionalCases(t *testing.T) {
	e := NewEngine(nil)

	idle := newTestAgent(13)
	if !e.ShouldSwitch(idle, &types.DecisionResult{Success: true}) {
		t.Error("agent without a current decision must switch")
	}

	broke := newTestAgent(14)
	broke.CurrentDecision = inFlightDecision(broke.ID)
	broke.ConsumeTokens(50000)
	if !e.ShouldSwitch(broke, nil) {
		t.Error("budget-exhausted agent must switch")
	}

	steady := newTestAgent(15)
	steady.CurrentDecision = inFlightDecision(steady.ID)
	if e.ShouldSwitch(steady, nil) {
		t.Error("agent with no step result must continue")
	}
}

func inFlightDecision(agentID string) *types.AgentDecision {
	d := newPending(agentID, types.ExploreTopic{Topic: "t"})
	d.Status = types.DecisionExecuting
	return d
}

func TestShouldSwitchAfterResolvedDecision(t *testing.T) {
	e := NewEngine(nil)

	done := newTestAgent(17)
	done.CurrentDecision = inFlightDecision(done.ID)
	done.CurrentDecision.Finalize(&types.DecisionResult{Success: true, Summary: "done"})
	for i := 0; i < 500; i++ {
		if !e.ShouldSwitch(done, done.CurrentDecision.Result) {
			t.Fatal("agent with a completed current decision must always switch")
		}
	}

	failed := newTestAgent(18)
	failed.CurrentDecision = inFlightDecision(failed.ID)
	failed.CurrentDecision.Finalize(&types.DecisionResult{Success: false})
	for i := 0; i < 500; i++ {
		if !e.ShouldSwitch(failed, failed.CurrentDecision.Result) {
			t.Fatal("agent with a failed current decision must always switch")
		}
	}
}

func TestShouldSwitchProbabilities(t *testing.T) {
	e := NewEngine(nil)
	a := newTestAgent(16)
	a.CurrentDecision = inFlightDecision(a.ID)

	trials := 5000
	successSwitches, failureSwitches := 0, 0
	for i := 0; i < trials; i++ {
		if e.ShouldSwitch(a, &types.DecisionResult{Success: true}) {
			successSwitches++
		}
		if e.ShouldSwitch(a, &types.DecisionResult{Success: false}) {
			failureSwitches++
		}
	}

	successRate := float64(successSwitches) / float64(trials)
	failureRate := float64(failureSwitches) / float64(trials)
	if successRate < 0.25 || successRate > 0.35 {
		t.Errorf("switch rate after success = %v, want ~0.3", successRate)
	}
	if failureRate < 0.65 || failureRate > 0.75 {
		t.Errorf("switch rate after failure = %v, want ~0.7", failureRate)
	}
}

func TestEstimateCostTable(t *testing.T) {
	tests := []struct {
		action types.Action
		tokens int
		risk   types.RiskLevel
	}{
		{types.ExploreTopic{Topic: "t"}, 800, types.RiskLow},
		{types.StudyRepo{Owner: "o", Repo: "r"}, 3000, types.RiskLow},
		{types.ShareTechnique{Technique: "t"}, 600, types.RiskLow},
		{types.Document{Subject: "s"}, 1500, types.RiskLow},
		{types.Refactor{Target: "t"}, 3500, types.RiskMedium},
		{types.WriteCode{Description: "d"}, 5000, types.RiskMedium},
		{types.FixIssue{Owner: "o", Repo: "r", Number: 1}, 4000, types.RiskMedium},
		{types.ContributePR{Owner: "o", Repo: "r"}, 6000, types.RiskHigh},
	}
	for _, tt := range tests {
		c := EstimateCost(tt.action)
		if c.EstimatedTokens != tt.tokens {
			t.Errorf("%s tokens = %d, want %d", tt.action.Kind(), c.EstimatedTokens, tt.tokens)
		}
		if c.Risk != tt.risk {
			t.Errorf("%s risk = %s, want %s", tt.action.Kind(), c.Risk, tt.risk)
		}
	}
}
