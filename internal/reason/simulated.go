// Package reason provides the natural-language reasoning collaborators:
// a deterministic simulated reasoner for offline runs and tests, and an
// adapter over the Gemini API for live runs. Both satisfy
// external.Reasoner and degrade instead of failing into the core.
package reason

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/owizdom/swarm-mind/internal/types"
)

// topicPool offers per-specialization topics the simulated reasoner
// rotates through when suggesting exploration.
var topicPool = map[string][]string{
	"concurrency": {"lock-free queues", "structured concurrency", "work stealing"},
	"storage":     {"write-ahead logging", "LSM compaction", "page caching"},
	"networking":  {"connection pooling", "backpressure", "QUIC migration"},
	"tooling":     {"incremental builds", "code generation", "release automation"},
	"testing":     {"property-based testing", "fault injection", "flake triage"},
	"performance": {"allocation profiling", "cache locality", "tail latency"},
}

// Simulated is a rule-based reasoner: it produces plausible structured
// thoughts from the observation alone, with all randomness drawn from an
// injectable source. Safe for concurrent use.
type Simulated struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSimulated creates a simulated reasoner. A nil source is seeded from
// the clock.
func NewSimulated(rng *rand.Rand) *Simulated {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Simulated{rng: rng}
}

// Reason builds a thought from the observation. Suggested actions follow
// the decision engine's parse vocabulary; which ones appear depends on
// the observation and a little noise.
func (s *Simulated) Reason(ctx context.Context, rc types.ReasoningContext) (types.Thought, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var suggestions []string
	if len(rc.RecentRepos) > 0 {
		r := rc.RecentRepos[s.rng.Intn(len(rc.RecentRepos))]
		suggestions = append(suggestions, fmt.Sprintf("study %s for %s ideas", r.FullName(), rc.Specialization))
	}
	if rc.ChannelDensity > 0.3 && s.rng.Float64() < 0.4 {
		suggestions = append(suggestions, fmt.Sprintf("share technique: %s heuristics", rc.Specialization))
	}
	if s.rng.Float64() < 0.3 {
		suggestions = append(suggestions, "document "+rc.Target)
	}
	if rc.PhaseTransitioned && s.rng.Float64() < 0.3 {
		suggestions = append(suggestions, "refactor "+rc.Target)
	}
	suggestions = append(suggestions, "explore "+s.nextTopic(rc.Specialization))

	reasoning := fmt.Sprintf(
		"step %d: density %.2f, energy %.2f, %d nearby signals",
		rc.Step, rc.ChannelDensity, rc.Energy, len(rc.NearbySignals))
	conclusion := "keep exploring " + rc.Target
	if rc.Synchronized {
		conclusion = "work with the collective on " + rc.Specialization
	}

	return types.Thought{
		ID:               uuid.NewString(),
		AgentID:          rc.AgentID,
		Reasoning:        reasoning,
		Conclusion:       conclusion,
		SuggestedActions: suggestions,
		Confidence:       0.5 + s.rng.Float64()*0.4,
		CreatedAt:        time.Now(),
	}, nil
}

// GeneratePatch fabricates a single illustrative patch.
func (s *Simulated) GeneratePatch(ctx context.Context, rc types.ReasoningContext, goal string) ([]types.FilePatch, error) {
	return []types.FilePatch{{
		Path:        "notes/" + rc.Specialization + ".md",
		Original:    "",
		Modified:    "## " + goal + "\n",
		Explanation: "simulated change toward: " + goal,
	}}, nil
}

// Review scores patches by count alone.
func (s *Simulated) Review(ctx context.Context, patches []types.FilePatch) (types.ReviewReport, error) {
	if len(patches) == 0 {
		return types.ReviewReport{Passed: false, Issues: []string{"nothing to review"}}, nil
	}
	return types.ReviewReport{Passed: true, Score: 0.8}, nil
}

func (s *Simulated) nextTopic(specialization string) string {
	topics, ok := topicPool[specialization]
	if !ok || len(topics) == 0 {
		return specialization
	}
	return topics[s.rng.Intn(len(topics))]
}
