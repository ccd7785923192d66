package report

import (
	"regexp"
	"strings"
	"testing"

	"github.com/owizdom/swarm-mind/internal/types"
)

var ansiSeq = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func TestRenderIncludesAgentsAndChannel(t *testing.T) {
	snap := types.SwarmSnapshot{
		Step:           42,
		Density:        0.37,
		PheromoneCount: 18,
		Projects:       1,
		Agents: []types.AgentSummary{
			{Name: "ant-01", Specialization: "storage", Energy: 0.8, Synchronized: true, TokensUsed: 1200, TokenBudget: 50000},
			{Name: "ant-02", Specialization: "networking", Energy: 0.4, CurrentAction: "explore quic"},
		},
	}

	out := Render(snap)
	for _, want := range []string{"ant-01", "ant-02", "storage", "0.370", "explore quic", "1/2 synchronized"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q", want)
		}
	}
}

func TestAgentColumnsStayAligned(t *testing.T) {
	// One synchronized and one wandering agent: the state labels differ in
	// length and styling, but the columns after them must line up once
	// escape sequences are stripped.
	lines := []string{
		agentLine(types.AgentSummary{Name: "ant-01", Specialization: "storage", Synchronized: true}),
		agentLine(types.AgentSummary{Name: "ant-02", Specialization: "networking"}),
	}

	var cols []int
	for _, line := range lines {
		plain := ansiSeq.ReplaceAllString(line, "")
		idx := strings.Index(plain, "energy")
		if idx < 0 {
			t.Fatalf("agent line missing energy column: %q", plain)
		}
		cols = append(cols, idx)
	}
	if cols[0] != cols[1] {
		t.Errorf("energy column drifts between states: %d vs %d", cols[0], cols[1])
	}
}

func TestDensityBarClamps(t *testing.T) {
	if !strings.Contains(densityBar(-0.5), "░░░░░░░░░░") {
		t.Error("negative density should render empty")
	}
	if !strings.Contains(densityBar(2), "██████████") {
		t.Error("overflowing density should render full")
	}
}
