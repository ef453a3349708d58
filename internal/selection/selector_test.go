package selection_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rulekit/ruleaudit/internal/catalog"
	"github.com/rulekit/ruleaudit/internal/detect"
	"github.com/rulekit/ruleaudit/internal/selection"
)

func buildTestCatalog() catalog.Catalog {
	return catalog.Catalog{
		Base: []catalog.RuleRecord{
			{Name: "Code Quality", Path: "base/code-quality.md", Category: catalog.CategoryBase, EstimatedTokens: 800},
			{Name: "Security Principles", Path: "base/security-principles.md", Category: catalog.CategoryBase, EstimatedTokens: 800},
			{Name: "Refactoring", Path: "base/refactoring.md", Category: catalog.CategoryBase, EstimatedTokens: 800},
		},
		Language: []catalog.RuleRecord{
			{Name: "Go Standards", Path: "languages/go/coding-standards.md", Category: catalog.CategoryLanguage, SubKey: "go", EstimatedTokens: 1000},
			{Name: "Python Testing", Path: "languages/python/testing.md", Category: catalog.CategoryLanguage, SubKey: "python", EstimatedTokens: 1000},
		},
		Framework: []catalog.RuleRecord{
			{Name: "React Components", Path: "frameworks/react/components.md", Category: catalog.CategoryFramework, SubKey: "react", EstimatedTokens: 1200},
		},
		Cloud: []catalog.RuleRecord{
			{Name: "AWS IAM", Path: "cloud/aws/iam.md", Category: catalog.CategoryCloud, SubKey: "aws", EstimatedTokens: 1400},
		},
	}
}

func TestSelectScoringPolicy(testInstance *testing.T) {
	testCases := []struct {
		name              string
		projectContext    detect.ProjectContext
		expectedSelected  int
		expectedTokens    int
		expectedBreakdown selection.CategoryBreakdown
	}{
		{
			name:              "no_context_selects_critical_base_only",
			projectContext:    detect.ProjectContext{Maturity: detect.MaturityPrototype},
			expectedSelected:  2,
			expectedTokens:    1600,
			expectedBreakdown: selection.CategoryBreakdown{Base: 2},
		},
		{
			name:              "language_match_adds_language_rules",
			projectContext:    detect.ProjectContext{Languages: []string{"go"}, Maturity: detect.MaturityPrototype},
			expectedSelected:  3,
			expectedTokens:    2600,
			expectedBreakdown: selection.CategoryBreakdown{Base: 2, Language: 1},
		},
		{
			name: "all_facets_match",
			projectContext: detect.ProjectContext{
				Languages:      []string{"go", "python"},
				Frameworks:     []string{"react"},
				CloudProviders: []string{"aws"},
				Maturity:       detect.MaturityProduction,
			},
			expectedSelected:  6,
			expectedTokens:    6200,
			expectedBreakdown: selection.CategoryBreakdown{Base: 2, Language: 2, Framework: 1, Cloud: 1},
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf("%d_%s", testCaseIndex, testCase.name), func(testInstance *testing.T) {
			selector := selection.NewSelector()
			report := selector.Select(buildTestCatalog(), testCase.projectContext)

			require.Equal(testInstance, 7, report.TotalRulesAvailable)
			require.Equal(testInstance, testCase.expectedSelected, report.TotalRulesSelected)
			require.Equal(testInstance, testCase.expectedTokens, report.TotalEstimatedTokens)
			require.Equal(testInstance, testCase.expectedBreakdown, report.Breakdown)
			require.Len(testInstance, report.SelectionReasoning, testCase.expectedSelected)
			require.Equal(testInstance, testCase.projectContext, report.ProjectContext)
		})
	}
}

func TestSelectScoresAndReasons(testInstance *testing.T) {
	selector := selection.NewSelector()
	report := selector.Select(buildTestCatalog(), detect.ProjectContext{
		Languages:      []string{"python"},
		Frameworks:     []string{"react"},
		CloudProviders: []string{"aws"},
		Maturity:       detect.MaturityPreProduction,
	})

	scoresByRule := map[string]int{}
	reasonsByRule := map[string]string{}
	for _, justification := range report.SelectionReasoning {
		scoresByRule[justification.Rule] = justification.Score
		reasonsByRule[justification.Rule] = justification.Reason
	}

	require.Equal(testInstance, 100, scoresByRule["Code Quality"])
	require.Equal(testInstance, "Critical base rule", reasonsByRule["Code Quality"])
	require.Equal(testInstance, 90, scoresByRule["Python Testing"])
	require.Equal(testInstance, "Matches project language: python", reasonsByRule["Python Testing"])
	require.Equal(testInstance, 90, scoresByRule["React Components"])
	require.Equal(testInstance, 85, scoresByRule["AWS IAM"])
	require.NotContains(testInstance, scoresByRule, "Refactoring")
}

func TestSelectionEfficiencyFormatting(testInstance *testing.T) {
	selector := selection.NewSelector()

	emptyReport := selector.Select(catalog.Catalog{}, detect.ProjectContext{Maturity: detect.MaturityPrototype})
	require.Equal(testInstance, "0%", emptyReport.SelectionEfficiency)
	require.Zero(testInstance, emptyReport.TotalRulesSelected)

	partialReport := selector.Select(buildTestCatalog(), detect.ProjectContext{Maturity: detect.MaturityPrototype})
	require.Equal(testInstance, "28.6%", partialReport.SelectionEfficiency)
}

func TestSelectionEfficiencyMonotonicInContextFacets(testInstance *testing.T) {
	selector := selection.NewSelector()

	baseContext := detect.ProjectContext{Languages: []string{"go"}, Maturity: detect.MaturityPrototype}
	baseReport := selector.Select(buildTestCatalog(), baseContext)

	widerContext := detect.ProjectContext{Languages: []string{"go"}, Frameworks: []string{"react"}, Maturity: detect.MaturityPrototype}
	widerReport := selector.Select(buildTestCatalog(), widerContext)

	require.GreaterOrEqual(testInstance, widerReport.TotalRulesSelected, baseReport.TotalRulesSelected)
}
