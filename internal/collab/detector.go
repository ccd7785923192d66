// Package collab scans the agent population for emergent collaboration
// opportunities: several agents working the same repository, or a
// synchronized cross-section of the swarm spanning multiple
// specializations.
package collab

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/owizdom/swarm-mind/internal/agent"
	"github.com/owizdom/swarm-mind/internal/pheromone"
	"github.com/owizdom/swarm-mind/internal/types"
)

// ProjectStatus is the lifecycle state of a collaborative project.
type ProjectStatus string

const (
	ProjectProposed  ProjectStatus = "proposed"
	ProjectActive    ProjectStatus = "active"
	ProjectCompleted ProjectStatus = "completed"
)

// Project is a proposed joint effort between agents. The detector only
// ever proposes; activation is up to the orchestrator's operator.
type Project struct {
	ID           string
	Title        string
	Description  string
	Participants []string // agent ids
	Repos        []string
	Status       ProjectStatus
	CreatedAt    time.Time
}

// Detection thresholds.
const (
	minAgentsPerRepo    = 2 // repo-overlap trigger
	minSyncedForCross   = 3 // cross-domain trigger needs a synced core
	minSpecializations  = 2 // spanning at least two domains
	crossDomainNamedMax = 2 // project title names up to the first two
)

// Detector proposes collaborative projects from population scans. It
// holds no state between scans; callers re-invoke it periodically.
type Detector struct {
	log *zap.Logger
}

// NewDetector creates a detector. A nil logger becomes a no-op logger.
func NewDetector(log *zap.Logger) *Detector {
	if log == nil {
		log = zap.NewNop()
	}
	return &Detector{log: log}
}

// Detect scans the population for a collaboration opportunity. Two
// independent triggers, first match wins:
//
//  1. Repo overlap: two or more agents whose executing decisions
//     reference the same repository — proposes joint work on that repo
//     before the agents duplicate or conflict with each other.
//  2. Cross-domain: at least three synchronized agents whose
//     specializations span at least two distinct values — proposes a
//     cross-domain project named after the first two specializations.
//
// Returns nil when neither trigger fires.
func (d *Detector) Detect(agents []*agent.Agent, ch *pheromone.Channel) *Project {
	if p := d.detectRepoOverlap(agents); p != nil {
		return p
	}
	return d.detectCrossDomain(agents, ch)
}

func (d *Detector) detectRepoOverlap(agents []*agent.Agent) *Project {
	byRepo := make(map[string][]string)
	var repoOrder []string
	for _, a := range agents {
		if !a.CurrentDecision.InFlight() {
			continue
		}
		repo := types.ActionRepo(a.CurrentDecision.Action)
		if repo == "" {
			continue
		}
		if _, seen := byRepo[repo]; !seen {
			repoOrder = append(repoOrder, repo)
		}
		byRepo[repo] = append(byRepo[repo], a.ID)
	}

	for _, repo := range repoOrder {
		ids := byRepo[repo]
		if len(ids) < minAgentsPerRepo {
			continue
		}
		d.log.Info("repo overlap detected",
			zap.String("repo", repo),
			zap.Int("agents", len(ids)))
		return &Project{
			ID:    uuid.NewString(),
			Title: fmt.Sprintf("Joint work on %s", repo),
			Description: fmt.Sprintf(
				"%d agents are independently acting on %s; coordinating avoids duplicated or conflicting changes.",
				len(ids), repo),
			Participants: ids,
			Repos:        []string{repo},
			Status:       ProjectProposed,
			CreatedAt:    time.Now(),
		}
	}
	return nil
}

func (d *Detector) detectCrossDomain(agents []*agent.Agent, ch *pheromone.Channel) *Project {
	var synced []*agent.Agent
	specs := make(map[string]struct{})
	var specOrder []string
	for _, a := range agents {
		if !a.Synchronized {
			continue
		}
		synced = append(synced, a)
		if _, seen := specs[a.Specialization]; !seen {
			specs[a.Specialization] = struct{}{}
			specOrder = append(specOrder, a.Specialization)
		}
	}
	if len(synced) < minSyncedForCross || len(specs) < minSpecializations {
		return nil
	}

	named := specOrder
	if len(named) > crossDomainNamedMax {
		named = named[:crossDomainNamedMax]
	}
	ids := make([]string, len(synced))
	for i, a := range synced {
		ids[i] = a.ID
	}

	d.log.Info("cross-domain collaboration detected",
		zap.Strings("specializations", named),
		zap.Int("synchronized", len(synced)),
		zap.Float64("density", ch.Density()))
	return &Project{
		ID:    uuid.NewString(),
		Title: fmt.Sprintf("Cross-domain effort: %s meets %s", named[0], named[1]),
		Description: fmt.Sprintf(
			"%d synchronized agents spanning %d specializations can combine their knowledge.",
			len(synced), len(specs)),
		Participants: ids,
		Status:       ProjectProposed,
		CreatedAt:    time.Now(),
	}
}
