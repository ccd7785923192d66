// Package types contains shared domain types used across the swarm-mind
// codebase. Keeping them here avoids import cycles between the agent,
// decision, and swarm packages.
package types

import "fmt"

// ActionKind identifies one of the closed set of engineering actions an
// agent can take. The set is closed: every switch over ActionKind in this
// codebase handles all kinds explicitly.
type ActionKind string

const (
	ActionStudyRepo      ActionKind = "study_repo"
	ActionFixIssue       ActionKind = "fix_issue"
	ActionWriteCode      ActionKind = "write_code"
	ActionRefactor       ActionKind = "refactor"
	ActionDocument       ActionKind = "document"
	ActionShareTechnique ActionKind = "share_technique"
	ActionContributePR   ActionKind = "contribute_pr"
	ActionExploreTopic   ActionKind = "explore_topic"
)

// AllActionKinds lists every action kind, in declaration order.
var AllActionKinds = []ActionKind{
	ActionStudyRepo,
	ActionFixIssue,
	ActionWriteCode,
	ActionRefactor,
	ActionDocument,
	ActionShareTechnique,
	ActionContributePR,
	ActionExploreTopic,
}

// Action is the tagged union over action kinds. Each variant carries only
// the fields relevant to it. The unexported marker method keeps the union
// closed to this package.
type Action interface {
	Kind() ActionKind
	// Describe returns a short human-readable summary for logs.
	Describe() string

	isAction()
}

// StudyRepo reads and summarizes an external repository.
type StudyRepo struct {
	Owner string
	Repo  string
}

func (StudyRepo) Kind() ActionKind { return ActionStudyRepo }
func (a StudyRepo) Describe() string {
	return fmt.Sprintf("study %s/%s", a.Owner, a.Repo)
}
func (StudyRepo) isAction() {}

// FullName returns the owner/repo identifier.
func (a StudyRepo) FullName() string { return a.Owner + "/" + a.Repo }

// FixIssue resolves a specific issue in a repository.
type FixIssue struct {
	Owner  string
	Repo   string
	Number int
	Title  string
}

func (FixIssue) Kind() ActionKind { return ActionFixIssue }
func (a FixIssue) Describe() string {
	return fmt.Sprintf("fix %s/%s#%d", a.Owner, a.Repo, a.Number)
}
func (FixIssue) isAction() {}

// WriteCode implements new functionality described free-form.
type WriteCode struct {
	Description string
}

func (WriteCode) Kind() ActionKind   { return ActionWriteCode }
func (a WriteCode) Describe() string { return "write code: " + a.Description }
func (WriteCode) isAction()          {}

// Refactor restructures existing code around a focus area.
type Refactor struct {
	Target string
}

func (Refactor) Kind() ActionKind   { return ActionRefactor }
func (a Refactor) Describe() string { return "refactor " + a.Target }
func (Refactor) isAction()          {}

// Document writes or improves documentation for a subject.
type Document struct {
	Subject string
}

func (Document) Kind() ActionKind   { return ActionDocument }
func (a Document) Describe() string { return "document " + a.Subject }
func (Document) isAction()          {}

// ShareTechnique broadcasts a learned technique to the swarm channel.
type ShareTechnique struct {
	Technique string
	Domain    string
}

func (ShareTechnique) Kind() ActionKind   { return ActionShareTechnique }
func (a ShareTechnique) Describe() string { return "share technique: " + a.Technique }
func (ShareTechnique) isAction()          {}

// ContributePR opens a pull request against an external repository.
type ContributePR struct {
	Owner string
	Repo  string
	Title string
}

func (ContributePR) Kind() ActionKind { return ActionContributePR }
func (a ContributePR) Describe() string {
	return fmt.Sprintf("contribute to %s/%s: %s", a.Owner, a.Repo, a.Title)
}
func (ContributePR) isAction() {}

// ExploreTopic surveys an abstract topic in the idea space.
type ExploreTopic struct {
	Topic string
}

func (ExploreTopic) Kind() ActionKind   { return ActionExploreTopic }
func (a ExploreTopic) Describe() string { return "explore " + a.Topic }
func (ExploreTopic) isAction()          {}

// ActionRepo returns the owner/repo identifier an action references, or
// "" when the action is not tied to a repository. Used by the
// collaboration detector to group in-flight work by repo.
func ActionRepo(a Action) string {
	switch v := a.(type) {
	case StudyRepo:
		return v.FullName()
	case FixIssue:
		return v.Owner + "/" + v.Repo
	case ContributePR:
		return v.Owner + "/" + v.Repo
	case WriteCode, Refactor, Document, ShareTechnique, ExploreTopic:
		return ""
	default:
		return ""
	}
}
