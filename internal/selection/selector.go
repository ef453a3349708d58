package selection

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rulekit/ruleaudit/internal/catalog"
	"github.com/rulekit/ruleaudit/internal/detect"
)

// Relevance scores assigned by the fixed selection policy. The values are
// tunable policy constants carried over from the original heuristic; no
// derivation beyond "reasonable ranking" is implied.
const (
	criticalBaseRuleScoreConstant   = 100
	languageMatchScoreConstant      = 90
	frameworkMatchScoreConstant     = 90
	cloudProviderMatchScoreConstant = 85
)

const (
	criticalBaseReasonConstant           = "Critical base rule"
	languageMatchReasonTemplateConstant  = "Matches project language: %s"
	frameworkMatchReasonTemplateConstant = "Matches project framework: %s"
	cloudMatchReasonTemplateConstant     = "Matches cloud provider: %s"

	selectionEfficiencyTemplateConstant = "%.1f%%"
	emptyCatalogEfficiencyConstant      = "0%"
)

// criticalBaseRuleStems is the fixed allow-list of base rules that are always
// selected regardless of the detected context.
var criticalBaseRuleStems = map[string]struct{}{
	"code-quality":        {},
	"security-principles": {},
	"git-workflow":        {},
}

// Selector scores catalog records against a detected project context.
type Selector struct{}

// NewSelector constructs a rule selector applying the fixed scoring policy.
func NewSelector() *Selector {
	return &Selector{}
}

// Select produces a selection report for the provided catalog and project context.
// Each record belongs to exactly one category and is evaluated once, so no
// deduplication pass is needed.
func (selector *Selector) Select(ruleCatalog catalog.Catalog, projectContext detect.ProjectContext) Report {
	selectedRules := []catalog.RuleRecord{}
	selectionReasoning := []RuleJustification{}

	for _, baseRule := range ruleCatalog.Base {
		ruleStem := filenameStem(baseRule.Path)
		if _, isCritical := criticalBaseRuleStems[ruleStem]; !isCritical {
			continue
		}
		selectedRules = append(selectedRules, baseRule)
		selectionReasoning = append(selectionReasoning, RuleJustification{
			Rule:   baseRule.Name,
			Reason: criticalBaseReasonConstant,
			Score:  criticalBaseRuleScoreConstant,
		})
	}

	for _, languageRule := range ruleCatalog.Language {
		if !containsFacet(projectContext.Languages, languageRule.SubKey) {
			continue
		}
		selectedRules = append(selectedRules, languageRule)
		selectionReasoning = append(selectionReasoning, RuleJustification{
			Rule:   languageRule.Name,
			Reason: fmt.Sprintf(languageMatchReasonTemplateConstant, languageRule.SubKey),
			Score:  languageMatchScoreConstant,
		})
	}

	for _, frameworkRule := range ruleCatalog.Framework {
		if !containsFacet(projectContext.Frameworks, frameworkRule.SubKey) {
			continue
		}
		selectedRules = append(selectedRules, frameworkRule)
		selectionReasoning = append(selectionReasoning, RuleJustification{
			Rule:   frameworkRule.Name,
			Reason: fmt.Sprintf(frameworkMatchReasonTemplateConstant, frameworkRule.SubKey),
			Score:  frameworkMatchScoreConstant,
		})
	}

	for _, cloudRule := range ruleCatalog.Cloud {
		if !containsFacet(projectContext.CloudProviders, cloudRule.SubKey) {
			continue
		}
		selectedRules = append(selectedRules, cloudRule)
		selectionReasoning = append(selectionReasoning, RuleJustification{
			Rule:   cloudRule.Name,
			Reason: fmt.Sprintf(cloudMatchReasonTemplateConstant, cloudRule.SubKey),
			Score:  cloudProviderMatchScoreConstant,
		})
	}

	totalEstimatedTokens := 0
	breakdown := CategoryBreakdown{}
	for _, selectedRule := range selectedRules {
		totalEstimatedTokens += selectedRule.EstimatedTokens
		switch selectedRule.Category {
		case catalog.CategoryBase:
			breakdown.Base++
		case catalog.CategoryLanguage:
			breakdown.Language++
		case catalog.CategoryFramework:
			breakdown.Framework++
		case catalog.CategoryCloud:
			breakdown.Cloud++
		}
	}

	return Report{
		TotalRulesAvailable:  ruleCatalog.TotalCount(),
		TotalRulesSelected:   len(selectedRules),
		TotalEstimatedTokens: totalEstimatedTokens,
		SelectionEfficiency:  formatSelectionEfficiency(len(selectedRules), ruleCatalog.TotalCount()),
		SelectedRules:        selectedRules,
		SelectionReasoning:   selectionReasoning,
		Breakdown:            breakdown,
		ProjectContext:       projectContext,
	}
}

// formatSelectionEfficiency renders selected/available as a percentage with one
// decimal place; an empty catalog reports the literal "0%" to avoid dividing by zero.
func formatSelectionEfficiency(selectedCount int, availableCount int) string {
	if availableCount == 0 {
		return emptyCatalogEfficiencyConstant
	}
	return fmt.Sprintf(selectionEfficiencyTemplateConstant, float64(selectedCount)/float64(availableCount)*100)
}

func filenameStem(rulePath string) string {
	return strings.TrimSuffix(filepath.Base(rulePath), filepath.Ext(rulePath))
}

func containsFacet(facets []string, candidate string) bool {
	for _, facet := range facets {
		if facet == candidate {
			return true
		}
	}
	return false
}
