package selection

import (
	"github.com/rulekit/ruleaudit/internal/catalog"
	"github.com/rulekit/ruleaudit/internal/detect"
)

// RuleJustification records why a rule was selected and its relevance score.
type RuleJustification struct {
	Rule   string `json:"rule"`
	Reason string `json:"reason"`
	Score  int    `json:"score"`
}

// CategoryBreakdown counts selected rules per category bucket.
type CategoryBreakdown struct {
	Base      int `json:"base"`
	Language  int `json:"language"`
	Framework int `json:"framework"`
	Cloud     int `json:"cloud"`
}

// Report aggregates the rule selection outcome for a project context.
type Report struct {
	TotalRulesAvailable  int                   `json:"total_rules_available"`
	TotalRulesSelected   int                   `json:"total_rules_selected"`
	TotalEstimatedTokens int                   `json:"total_estimated_tokens"`
	SelectionEfficiency  string                `json:"selection_efficiency"`
	SelectedRules        []catalog.RuleRecord  `json:"selected_rules"`
	SelectionReasoning   []RuleJustification   `json:"selection_reasoning"`
	Breakdown            CategoryBreakdown     `json:"breakdown"`
	ProjectContext       detect.ProjectContext `json:"project_context"`
}
