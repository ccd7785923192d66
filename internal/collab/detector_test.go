package collab

import (
	"math/rand"
	"testing"

	"github.com/owizdom/swarm-mind/internal/agent"
	"github.com/owizdom/swarm-mind/internal/pheromone"
	"github.com/owizdom/swarm-mind/internal/types"
)

func newAgent(name, spec string, seed int64) *agent.Agent {
	return agent.New(agent.Config{
		Name:           name,
		Specialization: spec,
		Rand:           rand.New(rand.NewSource(seed)),
	})
}

func executing(a *agent.Agent, action types.Action) {
	a.CurrentDecision = &types.AgentDecision{
		ID:      "d-" + a.Name,
		AgentID: a.ID,
		Action:  action,
		Status:  types.DecisionExecuting,
	}
}

func TestDetectRepoOverlap(t *testing.T) {
	d := NewDetector(nil)
	ch := pheromone.NewChannel(0.6)

	a := newAgent("ada", "storage", 1)
	b := newAgent("bo", "testing", 2)
	c := newAgent("cy", "tooling", 3)
	executing(a, types.StudyRepo{Owner: "octo", Repo: "widget"})
	executing(b, types.StudyRepo{Owner: "octo", Repo: "widget"})
	executing(c, types.ExploreTopic{Topic: "parsing"}) // no repo reference

	p := d.Detect([]*agent.Agent{a, b, c}, ch)
	if p == nil {
		t.Fatal("no project proposed for repo overlap")
	}
	if p.Status != ProjectProposed {
		t.Errorf("status = %s, want proposed", p.Status)
	}
	if len(p.Repos) != 1 || p.Repos[0] != "octo/widget" {
		t.Errorf("repos = %v, want [octo/widget]", p.Repos)
	}
	if len(p.Participants) != 2 {
		t.Fatalf("participants = %v, want both overlapping agents", p.Participants)
	}
	found := map[string]bool{}
	for _, id := range p.Participants {
		found[id] = true
	}
	if !found[a.ID] || !found[b.ID] || found[c.ID] {
		t.Errorf("participants = %v, want exactly {%s, %s}", p.Participants, a.ID, b.ID)
	}
}

func TestNoOverlapWithoutTwoAgentsOnSameRepo(t *testing.T) {
	d := NewDetector(nil)
	ch := pheromone.NewChannel(0.6)

	a := newAgent("ada", "storage", 1)
	b := newAgent("bo", "testing", 2)
	executing(a, types.StudyRepo{Owner: "octo", Repo: "widget"})
	executing(b, types.StudyRepo{Owner: "octo", Repo: "gadget"})

	if p := d.Detect([]*agent.Agent{a, b}, ch); p != nil {
		t.Errorf("proposed %q for disjoint repos", p.Title)
	}
}

func TestPendingDecisionsDoNotTriggerOverlap(t *testing.T) {
	d := NewDetector(nil)
	ch := pheromone.NewChannel(0.6)

	a := newAgent("ada", "storage", 1)
	b := newAgent("bo", "testing", 2)
	executing(a, types.StudyRepo{Owner: "octo", Repo: "widget"})
	b.CurrentDecision = &types.AgentDecision{
		AgentID: b.ID,
		Action:  types.StudyRepo{Owner: "octo", Repo: "widget"},
		Status:  types.DecisionPending, // not yet executing
	}

	if p := d.Detect([]*agent.Agent{a, b}, ch); p != nil {
		t.Errorf("pending decision counted toward overlap: %q", p.Title)
	}
}

func TestDetectCrossDomain(t *testing.T) {
	d := NewDetector(nil)
	ch := pheromone.NewChannel(0.6)

	agents := []*agent.Agent{
		newAgent("ada", "storage", 1),
		newAgent("bo", "storage", 2),
		newAgent("cy", "networking", 3),
	}
	for _, a := range agents {
		a.Synchronized = true
	}

	p := d.Detect(agents, ch)
	if p == nil {
		t.Fatal("no cross-domain project proposed")
	}
	if len(p.Participants) != 3 {
		t.Errorf("participants = %d, want 3", len(p.Participants))
	}
	// The title names the first two distinct specializations in
	// population order.
	want := "Cross-domain effort: storage meets networking"
	if p.Title != want {
		t.Errorf("title = %q, want %q", p.Title, want)
	}
}

func TestCrossDomainNeedsThreeSyncedAndTwoSpecs(t *testing.T) {
	d := NewDetector(nil)
	ch := pheromone.NewChannel(0.6)

	// Only two synchronized agents.
	two := []*agent.Agent{newAgent("ada", "storage", 1), newAgent("bo", "testing", 2)}
	for _, a := range two {
		a.Synchronized = true
	}
	if p := d.Detect(two, ch); p != nil {
		t.Errorf("proposed %q with only two synchronized agents", p.Title)
	}

	// Three synchronized agents, one specialization.
	same := []*agent.Agent{
		newAgent("ada", "storage", 1),
		newAgent("bo", "storage", 2),
		newAgent("cy", "storage", 3),
	}
	for _, a := range same {
		a.Synchronized = true
	}
	if p := d.Detect(same, ch); p != nil {
		t.Errorf("proposed %q for a single-specialization group", p.Title)
	}
}

func TestRepoOverlapWinsOverCrossDomain(t *testing.T) {
	d := NewDetector(nil)
	ch := pheromone.NewChannel(0.6)

	agents := []*agent.Agent{
		newAgent("ada", "storage", 1),
		newAgent("bo", "networking", 2),
		newAgent("cy", "testing", 3),
	}
	for _, a := range agents {
		a.Synchronized = true
	}
	executing(agents[0], types.StudyRepo{Owner: "octo", Repo: "widget"})
	executing(agents[1], types.StudyRepo{Owner: "octo", Repo: "widget"})

	p := d.Detect(agents, ch)
	if p == nil {
		t.Fatal("no project proposed")
	}
	if len(p.Repos) == 0 {
		t.Errorf("cross-domain proposed (%q); repo overlap must win", p.Title)
	}
}

func TestDetectNothingOnQuietPopulation(t *testing.T) {
	d := NewDetector(nil)
	ch := pheromone.NewChannel(0.6)
	agents := []*agent.Agent{newAgent("ada", "storage", 1)}
	if p := d.Detect(agents, ch); p != nil {
		t.Errorf("proposed %q for a quiet population", p.Title)
	}
	if p := d.Detect(nil, ch); p != nil {
		t.Errorf("proposed %q for an empty population", p.Title)
	}
}
