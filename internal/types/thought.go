package types

import "time"

// Thought is a structured observation produced by the reasoning
// collaborator from an agent's current context.
type Thought struct {
	ID               string
	AgentID          string
	Reasoning        string
	Conclusion       string
	SuggestedActions []string // free-text, parsed by the decision engine
	Confidence       float64  // in [0,1]
	CreatedAt        time.Time
}

// ReasoningContext is the observation bundle handed to a reasoner.
type ReasoningContext struct {
	AgentID        string
	AgentName      string
	Specialization string
	Target         string // current exploration target
	Step           int
	Energy         float64
	Synchronized   bool

	ChannelDensity    float64
	PhaseTransitioned bool
	NearbySignals     []string // content of recently absorbed pheromones
	RecentRepos       []RepoInfo
}

// RepoInfo describes a repository returned by the discovery collaborator.
type RepoInfo struct {
	Owner       string
	Repo        string
	Description string
	Language    string
	Stars       int
	Topics      []string
}

// FullName returns the owner/repo identifier.
func (r RepoInfo) FullName() string { return r.Owner + "/" + r.Repo }

// IssueInfo describes an issue returned by the discovery collaborator.
type IssueInfo struct {
	Number     int
	Title      string
	Body       string
	Labels     []string
	Difficulty string // "easy", "medium", "hard"
}

// FilePatch is a single proposed file edit from the reasoning collaborator.
type FilePatch struct {
	Path        string
	Original    string
	Modified    string
	Explanation string
}

// ReviewReport is the outcome of reviewing a set of patches.
type ReviewReport struct {
	Passed      bool
	Issues      []string
	Suggestions []string
	Score       float64
}
