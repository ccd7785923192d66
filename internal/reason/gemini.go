package reason

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/owizdom/swarm-mind/internal/external"
	"github.com/owizdom/swarm-mind/internal/types"
)

// Gemini reasons over observations with the Gemini API. Any API or
// decoding failure degrades to the low-confidence fallback thought; the
// simulation never sees an error from this collaborator.
type Gemini struct {
	client *genai.Client
	model  string
	log    *zap.Logger
}

// NewGemini creates a Gemini-backed reasoner.
func NewGemini(ctx context.Context, apiKey, model string, log *zap.Logger) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}
	if log == nil {
		log = zap.NewNop()
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &Gemini{client: client, model: model, log: log}, nil
}

// geminiThought mirrors the JSON shape the model is asked to produce.
type geminiThought struct {
	Reasoning        string   `json:"reasoning"`
	Conclusion       string   `json:"conclusion"`
	SuggestedActions []string `json:"suggested_actions"`
	Confidence       float64  `json:"confidence"`
}

// Reason asks the model for a structured thought about the observation.
func (g *Gemini) Reason(ctx context.Context, rc types.ReasoningContext) (types.Thought, error) {
	prompt := buildReasonPrompt(rc)
	contents := []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}
	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		g.log.Warn("gemini reasoning failed, degrading", zap.Error(err))
		return external.FallbackThought(rc.AgentID), nil
	}

	var gt geminiThought
	if err := json.Unmarshal([]byte(resp.Text()), &gt); err != nil {
		g.log.Warn("gemini returned malformed thought, degrading", zap.Error(err))
		return external.FallbackThought(rc.AgentID), nil
	}
	if gt.Confidence < 0 {
		gt.Confidence = 0
	}
	if gt.Confidence > 1 {
		gt.Confidence = 1
	}

	return types.Thought{
		ID:               uuid.NewString(),
		AgentID:          rc.AgentID,
		Reasoning:        gt.Reasoning,
		Conclusion:       gt.Conclusion,
		SuggestedActions: gt.SuggestedActions,
		Confidence:       gt.Confidence,
		CreatedAt:        time.Now(),
	}, nil
}

// GeneratePatch is intentionally degraded for the Gemini adapter: code
// edits against real repositories are outside what this simulation
// executes, so the adapter reports no patches.
func (g *Gemini) GeneratePatch(ctx context.Context, rc types.ReasoningContext, goal string) ([]types.FilePatch, error) {
	return nil, nil
}

// Review returns a failed report; see GeneratePatch.
func (g *Gemini) Review(ctx context.Context, patches []types.FilePatch) (types.ReviewReport, error) {
	return types.ReviewReport{Passed: false, Issues: []string{"review not supported by this adapter"}}, nil
}

func buildReasonPrompt(rc types.ReasoningContext) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are %s, an autonomous software engineering agent specializing in %s.\n",
		rc.AgentName, rc.Specialization)
	fmt.Fprintf(&b, "Simulation step %d. Swarm signal density %.2f. Your energy %.2f.\n",
		rc.Step, rc.ChannelDensity, rc.Energy)
	if rc.Synchronized {
		b.WriteString("You are synchronized with the collective.\n")
	}
	if len(rc.NearbySignals) > 0 {
		b.WriteString("Signals you recently absorbed:\n")
		for _, s := range rc.NearbySignals {
			fmt.Fprintf(&b, "- %s\n", s)
		}
	}
	if len(rc.RecentRepos) > 0 {
		b.WriteString("Recently discovered repositories:\n")
		for _, r := range rc.RecentRepos {
			fmt.Fprintf(&b, "- %s: %s\n", r.FullName(), r.Description)
		}
	}
	fmt.Fprintf(&b, `Respond with JSON only:
{"reasoning": "...", "conclusion": "...", "suggested_actions": ["study owner/repo ...", "explore ...", "share technique: ...", "document ...", "refactor ..."], "confidence": 0.0-1.0}
Suggest 1-3 actions using those verb forms. Current focus: %s.`, rc.Target)
	return b.String()
}
