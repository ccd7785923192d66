package reason

import (
	"context"
	"math/rand"
	"testing"

	"github.com/owizdom/swarm-mind/internal/types"
)

func TestSimulatedReasonIsDeterministicUnderSeed(t *testing.T) {
	rc := types.ReasoningContext{
		AgentID:        "a1",
		AgentName:      "ada",
		Specialization: "storage",
		Target:         "storage",
		Step:           12,
		Energy:         0.8,
		ChannelDensity: 0.5,
		RecentRepos:    []types.RepoInfo{{Owner: "octo", Repo: "widget", Description: "d"}},
	}

	first, err := NewSimulated(rand.New(rand.NewSource(7))).Reason(context.Background(), rc)
	if err != nil {
		t.Fatalf("Reason: %v", err)
	}
	second, err := NewSimulated(rand.New(rand.NewSource(7))).Reason(context.Background(), rc)
	if err != nil {
		t.Fatalf("Reason: %v", err)
	}

	if first.Reasoning != second.Reasoning || first.Conclusion != second.Conclusion {
		t.Error("identical seeds produced different narrative")
	}
	if len(first.SuggestedActions) != len(second.SuggestedActions) {
		t.Fatalf("suggestion counts differ: %d vs %d", len(first.SuggestedActions), len(second.SuggestedActions))
	}
	for i := range first.SuggestedActions {
		if first.SuggestedActions[i] != second.SuggestedActions[i] {
			t.Errorf("suggestion %d differs: %q vs %q", i, first.SuggestedActions[i], second.SuggestedActions[i])
		}
	}
	if first.Confidence != second.Confidence {
		t.Errorf("confidence differs: %v vs %v", first.Confidence, second.Confidence)
	}
}

func TestSimulatedReasonAlwaysSuggestsSomething(t *testing.T) {
	s := NewSimulated(rand.New(rand.NewSource(3)))
	for step := 0; step < 100; step++ {
		th, err := s.Reason(context.Background(), types.ReasoningContext{
			AgentID:        "a1",
			Specialization: "testing",
			Target:         "testing",
			Step:           step,
		})
		if err != nil {
			t.Fatalf("Reason: %v", err)
		}
		if len(th.SuggestedActions) == 0 {
			t.Fatalf("step %d: no suggested actions", step)
		}
		if th.Confidence < 0 || th.Confidence > 1 {
			t.Fatalf("step %d: confidence %v outside [0,1]", step, th.Confidence)
		}
	}
}

func TestSimulatedReviewAndPatch(t *testing.T) {
	s := NewSimulated(rand.New(rand.NewSource(4)))
	ctx := context.Background()

	patches, err := s.GeneratePatch(ctx, types.ReasoningContext{Specialization: "tooling"}, "speed up builds")
	if err != nil || len(patches) == 0 {
		t.Fatalf("GeneratePatch = (%v, %v)", patches, err)
	}

	report, err := s.Review(ctx, patches)
	if err != nil || !report.Passed {
		t.Errorf("Review of real patches = (%+v, %v), want passed", report, err)
	}

	empty, err := s.Review(ctx, nil)
	if err != nil || empty.Passed {
		t.Errorf("Review of nothing = (%+v, %v), want failed", empty, err)
	}
}
