package decision

import (
	"regexp"
	"strings"

	"github.com/owizdom/swarm-mind/internal/agent"
	"github.com/owizdom/swarm-mind/internal/types"
)

// repoPattern matches an owner/repo identifier inside free text.
var repoPattern = regexp.MustCompile(`([A-Za-z0-9_.-]+)/([A-Za-z0-9_.-]+)`)

// parseSuggestion turns one free-text suggested action from a thought into
// a structured action, matching on a small vocabulary: study,
// share_technique, explore_topic, refactor, document.
//
// "fix" and "contribute" intents are deliberately redirected to studying
// the referenced repository: fix_issue and contribute_pr are out of scope
// for autonomous execution and are never offered as candidates.
//
// Returns false for suggestions outside the vocabulary.
func parseSuggestion(text string, a *agent.Agent) (types.Action, bool) {
	lower := strings.ToLower(strings.TrimSpace(text))
	if lower == "" {
		return nil, false
	}

	switch {
	case strings.Contains(lower, "share") && strings.Contains(lower, "technique"),
		strings.Contains(lower, "share_technique"):
		return types.ShareTechnique{
			Technique: remainder(text, "technique"),
			Domain:    a.Specialization,
		}, true

	case strings.Contains(lower, "refactor"):
		target := remainder(text, "refactor")
		if target == "" {
			target = a.ExplorationTarget
		}
		return types.Refactor{Target: target}, true

	case strings.Contains(lower, "document"):
		subject := remainder(text, "document")
		if subject == "" {
			subject = a.ExplorationTarget
		}
		return types.Document{Subject: subject}, true

	case strings.Contains(lower, "fix"), strings.Contains(lower, "contribute"):
		// Softer fallback: study the repo instead of acting on it.
		if owner, repo, ok := extractRepo(text); ok {
			return types.StudyRepo{Owner: owner, Repo: repo}, true
		}
		return types.ExploreTopic{Topic: a.ExplorationTarget}, true

	case strings.Contains(lower, "study"):
		if owner, repo, ok := extractRepo(text); ok {
			return types.StudyRepo{Owner: owner, Repo: repo}, true
		}
		// A study intent without a parseable repo degrades to topic
		// exploration of whatever was named.
		topic := remainder(text, "study")
		if topic == "" {
			topic = a.ExplorationTarget
		}
		return types.ExploreTopic{Topic: topic}, true

	case strings.Contains(lower, "explore"):
		topic := remainder(text, "explore")
		if topic == "" {
			topic = a.ExplorationTarget
		}
		return types.ExploreTopic{Topic: topic}, true
	}

	return nil, false
}

// extractRepo pulls the first owner/repo identifier out of free text.
func extractRepo(text string) (owner, repo string, ok bool) {
	m := repoPattern.FindStringSubmatch(text)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

// remainder returns the trimmed text following the first occurrence of
// keyword, "" when nothing follows.
func remainder(text, keyword string) string {
	lower := strings.ToLower(text)
	idx := strings.Index(lower, keyword)
	if idx < 0 {
		return ""
	}
	rest := strings.TrimSpace(text[idx+len(keyword):])
	return strings.Trim(rest, ":,. ")
}
