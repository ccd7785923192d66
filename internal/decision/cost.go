package decision

import (
	"time"

	"github.com/owizdom/swarm-mind/internal/types"
)

// EstimateCost returns the fixed token, wall-clock, and risk estimate for
// an action. The table is a pure lookup by kind; risk follows the kind:
// opening a PR is high risk, the code-touching family is medium, and
// everything else is low.
func EstimateCost(a types.Action) types.ActionCost {
	switch a.Kind() {
	case types.ActionStudyRepo:
		return types.ActionCost{EstimatedTokens: 3000, EstimatedTime: 8 * time.Second, Risk: types.RiskLow}
	case types.ActionFixIssue:
		return types.ActionCost{EstimatedTokens: 4000, EstimatedTime: 15 * time.Second, Risk: types.RiskMedium}
	case types.ActionWriteCode:
		return types.ActionCost{EstimatedTokens: 5000, EstimatedTime: 20 * time.Second, Risk: types.RiskMedium}
	case types.ActionRefactor:
		return types.ActionCost{EstimatedTokens: 3500, EstimatedTime: 12 * time.Second, Risk: types.RiskMedium}
	case types.ActionDocument:
		return types.ActionCost{EstimatedTokens: 1500, EstimatedTime: 6 * time.Second, Risk: types.RiskLow}
	case types.ActionShareTechnique:
		return types.ActionCost{EstimatedTokens: 600, EstimatedTime: 2 * time.Second, Risk: types.RiskLow}
	case types.ActionContributePR:
		return types.ActionCost{EstimatedTokens: 6000, EstimatedTime: 30 * time.Second, Risk: types.RiskHigh}
	case types.ActionExploreTopic:
		return types.ActionCost{EstimatedTokens: 800, EstimatedTime: 4 * time.Second, Risk: types.RiskLow}
	default:
		// Unreachable for the closed union; a zero-cost low-risk
		// estimate keeps the engine total.
		return types.ActionCost{Risk: types.RiskLow}
	}
}
