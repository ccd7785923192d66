// Package report renders swarm snapshots for the terminal.
package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/owizdom/swarm-mind/internal/types"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#8BC34A"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#2196F3"))

	syncedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8BC34A"))

	wanderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFC107"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6b7280"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#2a3850")).
			Padding(0, 1)
)

// Render formats a full snapshot view: channel state on top, then one
// line per agent.
func Render(snap types.SwarmSnapshot) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("swarm-mind"))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  step %d", snap.Step)))
	b.WriteString("\n\n")

	b.WriteString(headerStyle.Render("channel"))
	b.WriteString("\n")
	phase := "subcritical"
	if snap.PhaseTransitioned {
		phase = fmt.Sprintf("transitioned at step %d", snap.TransitionStep)
	}
	b.WriteString(fmt.Sprintf("  density %s  pheromones %d  %s\n\n",
		densityBar(snap.Density), snap.PheromoneCount, phase))

	b.WriteString(headerStyle.Render(fmt.Sprintf("agents (%d/%d synchronized)",
		snap.Synchronized(), len(snap.Agents))))
	b.WriteString("\n")
	for _, a := range snap.Agents {
		b.WriteString("  " + agentLine(a) + "\n")
	}

	if snap.Projects > 0 {
		b.WriteString("\n")
		b.WriteString(headerStyle.Render(fmt.Sprintf("collaborations proposed: %d", snap.Projects)))
		b.WriteString("\n")
	}

	return boxStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func agentLine(a types.AgentSummary) string {
	// Pad before styling: ANSI escape bytes must not count toward the
	// column width.
	state := wanderStyle.Render(fmt.Sprintf("%-12s", "wandering"))
	if a.Synchronized {
		state = syncedStyle.Render(fmt.Sprintf("%-12s", "synchronized"))
	}
	line := fmt.Sprintf("%-8s %-12s %s energy %.2f  absorbed %-3d  discoveries %-3d  tokens %d/%d",
		a.Name, a.Specialization, state, a.Energy, a.Absorbed, a.Discoveries, a.TokensUsed, a.TokenBudget)
	if a.CurrentAction != "" {
		line += dimStyle.Render("  › " + a.CurrentAction)
	}
	return line
}

// densityBar renders density as a ten-cell bar plus the number.
func densityBar(d float64) string {
	if d < 0 {
		d = 0
	}
	if d > 1 {
		d = 1
	}
	filled := int(d * 10)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", 10-filled)
	return fmt.Sprintf("[%s] %.3f", bar, d)
}
