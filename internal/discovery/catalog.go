// Package discovery implements the repository and issue discovery
// collaborators over a fixed in-memory catalog of a plausible software
// ecosystem. It is the simulation's default world: deterministic, always
// reachable, and free.
package discovery

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/owizdom/swarm-mind/internal/external"
	"github.com/owizdom/swarm-mind/internal/types"
)

// catalog is the fixed ecosystem. Topics line up with the agent
// specialization labels so searches by specialization find material.
var catalog = []types.RepoInfo{
	{Owner: "riverflow", Repo: "torrentd", Description: "streaming data pipeline daemon", Language: "Go", Stars: 4200, Topics: []string{"networking", "concurrency"}},
	{Owner: "riverflow", Repo: "chanmux", Description: "multiplexed channel fan-out primitives", Language: "Go", Stars: 980, Topics: []string{"concurrency"}},
	{Owner: "quietbyte", Repo: "ledgerkv", Description: "embedded key-value store with WAL", Language: "Go", Stars: 7600, Topics: []string{"storage"}},
	{Owner: "quietbyte", Repo: "pagecache", Description: "mmap-backed page cache library", Language: "C", Stars: 1500, Topics: []string{"storage", "performance"}},
	{Owner: "octo", Repo: "widget", Description: "composable UI widget toolkit", Language: "TypeScript", Stars: 12800, Topics: []string{"tooling"}},
	{Owner: "octo", Repo: "gadget", Description: "build graph visualizer", Language: "Go", Stars: 640, Topics: []string{"tooling"}},
	{Owner: "lampwick", Repo: "flaketrack", Description: "flaky test quarantine service", Language: "Go", Stars: 2100, Topics: []string{"testing"}},
	{Owner: "lampwick", Repo: "fuzzharness", Description: "coverage-guided fuzzing harness", Language: "Go", Stars: 3300, Topics: []string{"testing", "tooling"}},
	{Owner: "tailfin", Repo: "quicproxy", Description: "QUIC-aware reverse proxy", Language: "Go", Stars: 5400, Topics: []string{"networking"}},
	{Owner: "tailfin", Repo: "backpressure", Description: "adaptive backpressure middleware", Language: "Go", Stars: 870, Topics: []string{"networking", "performance"}},
	{Owner: "embermath", Repo: "profiler", Description: "continuous allocation profiler", Language: "Go", Stars: 4900, Topics: []string{"performance"}},
	{Owner: "embermath", Repo: "latencylab", Description: "tail latency experiment toolkit", Language: "Go", Stars: 1100, Topics: []string{"performance", "testing"}},
}

// issueTemplates seed deterministic per-repo issues.
var issueTemplates = []struct {
	title      string
	difficulty string
	labels     []string
}{
	{"panic on concurrent shutdown", "medium", []string{"bug", "concurrency"}},
	{"docs: quickstart is out of date", "easy", []string{"documentation", "good-first-issue"}},
	{"memory growth under sustained load", "hard", []string{"bug", "performance"}},
	{"add structured logging hooks", "medium", []string{"enhancement"}},
	{"flaky integration test on slow runners", "easy", []string{"bug", "testing"}},
}

// Catalog serves discovery queries from the fixed ecosystem. The zero
// value is ready to use; it implements external.RepoDiscovery and
// external.IssueDiscovery.
type Catalog struct{}

var (
	_ external.RepoDiscovery  = Catalog{}
	_ external.IssueDiscovery = Catalog{}
)

// Discover returns repositories whose description or topics match the
// query, honoring the language, star, topic, and limit filters. An
// unmatched query returns an empty list, never an error.
func (Catalog) Discover(ctx context.Context, query string, filters external.DiscoveryFilters) ([]types.RepoInfo, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	limit := filters.Limit
	if limit <= 0 {
		limit = 5
	}

	var out []types.RepoInfo
	for _, r := range catalog {
		if q != "" && !matches(r, q) {
			continue
		}
		if filters.Language != "" && !strings.EqualFold(r.Language, filters.Language) {
			continue
		}
		if r.Stars < filters.MinStars {
			continue
		}
		if len(filters.Topics) > 0 && !hasAnyTopic(r, filters.Topics) {
			continue
		}
		out = append(out, r)
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

// ListIssues returns a deterministic set of open issues for the repo,
// derived from the repo name so runs are reproducible. Unknown repos get
// an empty list.
func (Catalog) ListIssues(ctx context.Context, owner, repo string, limit int) ([]types.IssueInfo, error) {
	full := owner + "/" + repo
	if !known(full) {
		return nil, nil
	}
	if limit <= 0 {
		limit = 3
	}

	h := fnv.New32a()
	h.Write([]byte(full))
	seed := int(h.Sum32())

	count := 1 + seed%len(issueTemplates)
	if count > limit {
		count = limit
	}
	out := make([]types.IssueInfo, 0, count)
	for i := 0; i < count; i++ {
		tpl := issueTemplates[(seed+i)%len(issueTemplates)]
		out = append(out, types.IssueInfo{
			Number:     100 + (seed+i)%900,
			Title:      tpl.title,
			Body:       fmt.Sprintf("Reported against %s.", full),
			Labels:     tpl.labels,
			Difficulty: tpl.difficulty,
		})
	}
	return out, nil
}

func matches(r types.RepoInfo, q string) bool {
	if strings.Contains(strings.ToLower(r.Description), q) {
		return true
	}
	if strings.Contains(strings.ToLower(r.FullName()), q) {
		return true
	}
	for _, t := range r.Topics {
		if strings.Contains(strings.ToLower(t), q) {
			return true
		}
	}
	return false
}

func hasAnyTopic(r types.RepoInfo, topics []string) bool {
	for _, want := range topics {
		for _, t := range r.Topics {
			if strings.EqualFold(t, want) {
				return true
			}
		}
	}
	return false
}

func known(fullName string) bool {
	for _, r := range catalog {
		if r.FullName() == fullName {
			return true
		}
	}
	return false
}
