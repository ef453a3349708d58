package consistency

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func setOf(members ...string) map[string]struct{} {
	built := map[string]struct{}{}
	for _, member := range members {
		built[member] = struct{}{}
	}
	return built
}

func TestOverlapBetween(testInstance *testing.T) {
	richProfile := func(filePath string, category string) DocumentProfile {
		return DocumentProfile{
			FilePath: filePath,
			Category: category,
			Keywords: setOf("testing", "security", "api", "database", "deployment"),
			Topics:   setOf("testing", "security", "shared heading"),
		}
	}

	testCases := []struct {
		name            string
		firstProfile    DocumentProfile
		secondProfile   DocumentProfile
		expectedOverlap bool
	}{
		{
			name:            "same_category_rich_overlap",
			firstProfile:    richProfile("base/a.md", "base"),
			secondProfile:   richProfile("base/b.md", "base"),
			expectedOverlap: true,
		},
		{
			name:            "different_categories_never_compared",
			firstProfile:    richProfile("base/a.md", "base"),
			secondProfile:   richProfile("languages/go/b.md", "language/go"),
			expectedOverlap: false,
		},
		{
			name: "prefilter_rejects_sparse_sharing",
			firstProfile: DocumentProfile{
				FilePath: "base/a.md",
				Category: "base",
				Keywords: setOf("testing", "security", "api"),
				Topics:   setOf("a topic", "shared"),
			},
			secondProfile: DocumentProfile{
				FilePath: "base/b.md",
				Category: "base",
				Keywords: setOf("testing", "security", "api"),
				Topics:   setOf("b topic", "shared"),
			},
			expectedOverlap: false,
		},
		{
			name: "score_threshold_rejects_weak_overlap",
			firstProfile: DocumentProfile{
				FilePath: "base/a.md",
				Category: "base",
				Keywords: setOf("testing", "security", "api", "database", "a1", "a2", "a3", "a4", "a5", "a6", "a7", "a8", "a9", "a10", "a11", "a12"),
				Topics:   setOf("a topic"),
			},
			secondProfile: DocumentProfile{
				FilePath: "base/b.md",
				Category: "base",
				Keywords: setOf("testing", "security", "api", "database", "b1", "b2", "b3", "b4", "b5", "b6", "b7", "b8", "b9", "b10", "b11", "b12"),
				Topics:   setOf("b topic"),
			},
			expectedOverlap: false,
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf("%d_%s", testCaseIndex, testCase.name), func(testInstance *testing.T) {
			_, isOverlap := overlapBetween(testCase.firstProfile, testCase.secondProfile)
			require.Equal(testInstance, testCase.expectedOverlap, isOverlap)
		})
	}
}

func TestOverlapScoreIsSymmetric(testInstance *testing.T) {
	firstProfile := DocumentProfile{
		FilePath: "base/first.md",
		Category: "base",
		Keywords: setOf("testing", "security", "api", "database", "deployment", "error"),
		Topics:   setOf("first", "testing", "security"),
	}
	secondProfile := DocumentProfile{
		FilePath: "base/second.md",
		Category: "base",
		Keywords: setOf("testing", "security", "api", "database", "performance"),
		Topics:   setOf("second", "testing", "security", "extra"),
	}

	forwardFinding, forwardOverlap := overlapBetween(firstProfile, secondProfile)
	reverseFinding, reverseOverlap := overlapBetween(secondProfile, firstProfile)

	require.True(testInstance, forwardOverlap)
	require.True(testInstance, reverseOverlap)
	require.Equal(testInstance, forwardFinding.OverlapScore, reverseFinding.OverlapScore)
	require.ElementsMatch(testInstance, forwardFinding.CommonKeywords, reverseFinding.CommonKeywords)
	require.ElementsMatch(testInstance, forwardFinding.CommonTopics, reverseFinding.CommonTopics)
}

func TestFormatConsistencyScoreBands(testInstance *testing.T) {
	testCases := []struct {
		name          string
		overlapCount  int
		gapCount      int
		expectedScore string
	}{
		{name: "perfect", overlapCount: 0, gapCount: 0, expectedScore: "100% - Excellent"},
		{name: "excellent_boundary", overlapCount: 5, gapCount: 0, expectedScore: "90% - Excellent"},
		{name: "good_band", overlapCount: 10, gapCount: 3, expectedScore: "71% - Good"},
		{name: "fair_band", overlapCount: 10, gapCount: 10, expectedScore: "50% - Fair"},
		{name: "needs_improvement", overlapCount: 20, gapCount: 5, expectedScore: "45% - Needs Improvement"},
		{name: "floor_at_zero", overlapCount: 40, gapCount: 20, expectedScore: "0% - Needs Improvement"},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf("%d_%s", testCaseIndex, testCase.name), func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expectedScore, formatConsistencyScore(testCase.overlapCount, testCase.gapCount))
		})
	}
}
