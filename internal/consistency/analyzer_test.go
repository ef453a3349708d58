package consistency_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rulekit/ruleaudit/internal/consistency"
)

func writeRuleDocument(testInstance *testing.T, repositoryRoot string, relativePath string, documentContent string) {
	testInstance.Helper()
	documentPath := filepath.Join(repositoryRoot, filepath.FromSlash(relativePath))
	require.NoError(testInstance, os.MkdirAll(filepath.Dir(documentPath), 0o755))
	require.NoError(testInstance, os.WriteFile(documentPath, []byte(documentContent), 0o644))
}

func TestAnalyzeEmptyCorpus(testInstance *testing.T) {
	repositoryRoot := testInstance.TempDir()

	report := consistency.NewAnalyzer(repositoryRoot).Analyze()

	require.Equal(testInstance, 0, report.FilesAnalyzed)
	require.Equal(testInstance, 0, report.TotalOverlaps)
	require.Empty(testInstance, report.OverlapReports)
	require.Empty(testInstance, report.SkippedDocuments)

	// 9 base topics plus one aggregate gap per expected language (5),
	// framework (4), and cloud provider (2).
	require.Equal(testInstance, 20, report.TotalGaps)
	require.Len(testInstance, report.GapReports, 20)
	require.Equal(testInstance, 9, report.Summary.CriticalGaps)
	require.Equal(testInstance, "40% - Needs Improvement", report.Summary.Score)
}

func TestAnalyzeEmptyCorpusGapRecommendations(testInstance *testing.T) {
	repositoryRoot := testInstance.TempDir()

	report := consistency.NewAnalyzer(repositoryRoot).Analyze()

	recommendations := []string{}
	for _, gapFinding := range report.GapReports {
		recommendations = append(recommendations, gapFinding.Recommendation)
	}

	require.Contains(testInstance, recommendations,
		"Create base/code-quality.md to cover code quality best practices")
	require.Contains(testInstance, recommendations,
		"Create base/error-handling.md to cover error handling best practices")
	require.Contains(testInstance, recommendations,
		"Add rust language support with rules covering coding-standards, testing, ownership, error-handling")
	require.Contains(testInstance, recommendations,
		"Add vercel cloud support with rules covering deployment, environment, performance, preview")
}

func TestAnalyzeDetectsBaseOverlap(testInstance *testing.T) {
	repositoryRoot := testInstance.TempDir()

	overlappingContent := "# Testing\n\n# Security\n\nTesting and security reviews cover authentication, api design, database access, and deployment pipelines.\n"
	writeRuleDocument(testInstance, repositoryRoot, "base/security-review.md", overlappingContent)
	writeRuleDocument(testInstance, repositoryRoot, "base/secure-coding.md", overlappingContent)

	report := consistency.NewAnalyzer(repositoryRoot).Analyze()

	require.Equal(testInstance, 2, report.FilesAnalyzed)
	require.Equal(testInstance, 1, report.TotalOverlaps)
	require.Len(testInstance, report.OverlapReports, 1)

	overlapFinding := report.OverlapReports[0]
	require.Equal(testInstance, "base", overlapFinding.Category)
	require.Equal(testInstance, "base/secure-coding.md", overlapFinding.FirstFile)
	require.Equal(testInstance, "base/security-review.md", overlapFinding.SecondFile)
	require.InDelta(testInstance, 0.83, overlapFinding.OverlapScore, 0.0001)
	require.Contains(testInstance, overlapFinding.CommonKeywords, "testing")
	require.Contains(testInstance, overlapFinding.CommonKeywords, "security")
	require.Equal(testInstance, 1, report.Summary.HighOverlapCount)
}

func TestAnalyzeIgnoresCrossCategorySimilarity(testInstance *testing.T) {
	repositoryRoot := testInstance.TempDir()

	sharedContent := "# Testing\n\n# Security\n\nTesting and security reviews cover authentication, api design, database access, and deployment pipelines.\n"
	writeRuleDocument(testInstance, repositoryRoot, "base/security-review.md", sharedContent)
	writeRuleDocument(testInstance, repositoryRoot, "languages/go/security-review.md", sharedContent)
	writeRuleDocument(testInstance, repositoryRoot, "languages/python/security-review.md", sharedContent)

	report := consistency.NewAnalyzer(repositoryRoot).Analyze()

	require.Equal(testInstance, 3, report.FilesAnalyzed)
	require.Equal(testInstance, 0, report.TotalOverlaps)
}

func TestAnalyzeFullyCoveredCorpusScoresExcellent(testInstance *testing.T) {
	repositoryRoot := testInstance.TempDir()

	baseTopics := []string{
		"code-quality", "security", "testing", "git", "architecture",
		"refactoring", "documentation", "error-handling", "logging",
	}
	for _, baseTopic := range baseTopics {
		writeRuleDocument(testInstance, repositoryRoot, "base/"+baseTopic+".md", "")
	}

	writeRuleDocument(testInstance, repositoryRoot, "languages/python/overview.md",
		"# Coding Standards\n# Testing\n# Async\n# Packaging\n")
	writeRuleDocument(testInstance, repositoryRoot, "languages/typescript/overview.md",
		"# Coding Standards\n# Testing\n# Types\n# Async\n")
	writeRuleDocument(testInstance, repositoryRoot, "languages/go/overview.md",
		"# Coding Standards\n# Testing\n# Concurrency\n# Error Handling\n")
	writeRuleDocument(testInstance, repositoryRoot, "languages/java/overview.md",
		"# Coding Standards\n# Testing\n# Spring\n# Design Patterns\n")
	writeRuleDocument(testInstance, repositoryRoot, "languages/rust/overview.md",
		"# Coding Standards\n# Testing\n# Ownership\n# Error Handling\n")

	writeRuleDocument(testInstance, repositoryRoot, "frameworks/fastapi/overview.md",
		"# Routing\n# Async\n# Testing\n# Validation\n# Auth\n")
	writeRuleDocument(testInstance, repositoryRoot, "frameworks/django/overview.md",
		"# Models\n# Views\n# Testing\n# Authentication\n# Admin\n")
	writeRuleDocument(testInstance, repositoryRoot, "frameworks/react/overview.md",
		"# Components\n# Hooks\n# Testing\n# State\n# Routing\n")
	writeRuleDocument(testInstance, repositoryRoot, "frameworks/nextjs/overview.md",
		"# Routing\n# SSR\n# API Routes\n# Testing\n# Optimization\n")

	writeRuleDocument(testInstance, repositoryRoot, "cloud/aws/overview.md",
		"# IAM\n# Security\n# Deployment\n# Monitoring\n# Cost Optimization\n")
	writeRuleDocument(testInstance, repositoryRoot, "cloud/vercel/overview.md",
		"# Deployment\n# Environment\n# Performance\n# Preview\n")

	report := consistency.NewAnalyzer(repositoryRoot).Analyze()

	require.Equal(testInstance, 20, report.FilesAnalyzed)
	require.Equal(testInstance, 0, report.TotalOverlaps)
	require.Equal(testInstance, 0, report.TotalGaps)
	require.Equal(testInstance, "100% - Excellent", report.Summary.Score)
	require.Equal(testInstance, 9, report.Summary.ByCategory["base"])
	require.Equal(testInstance, 5, report.Summary.ByCategory["language"])
	require.Equal(testInstance, 4, report.Summary.ByCategory["framework"])
	require.Equal(testInstance, 2, report.Summary.ByCategory["cloud"])
}

func TestAnalyzeSkipsUnreadableDocuments(testInstance *testing.T) {
	repositoryRoot := testInstance.TempDir()

	writeRuleDocument(testInstance, repositoryRoot, "base/testing.md", "# Testing\n")
	brokenDocumentPath := filepath.Join(repositoryRoot, "base", "broken.md")
	require.NoError(testInstance, os.Symlink(filepath.Join(repositoryRoot, "missing-target"), brokenDocumentPath))

	report := consistency.NewAnalyzer(repositoryRoot).Analyze()

	require.Equal(testInstance, 1, report.FilesAnalyzed)
	require.Len(testInstance, report.SkippedDocuments, 1)
	require.Equal(testInstance, "base/broken.md", report.SkippedDocuments[0].Path)
	require.NotEmpty(testInstance, report.SkippedDocuments[0].Reason)
}
