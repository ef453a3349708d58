package consistency

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const (
	baseCategoryDirectoryConstant      = "base"
	languageCategoryDirectoryConstant  = "languages"
	frameworkCategoryDirectoryConstant = "frameworks"
	cloudCategoryDirectoryConstant     = "cloud"

	baseCategoryLabelConstant      = "base"
	languageCategoryLabelConstant  = "language"
	frameworkCategoryLabelConstant = "framework"
	cloudCategoryLabelConstant     = "cloud"

	ruleDocumentExtensionConstant = ".md"
)

// Tunable heuristic constants carried over from the original analyzer. The
// pre-filter thresholds and penalty weights encode "reasonable heuristic"
// judgment, not derived values; a gap is weighted 1.5x as severe as an overlap.
const (
	sharedKeywordPrefilterThresholdConstant = 3
	sharedTopicPrefilterThresholdConstant   = 2
	overlapScoreThresholdConstant           = 0.3
	highOverlapScoreThresholdConstant       = 0.5
	overlapPenaltyWeightConstant            = 2
	gapPenaltyWeightConstant                = 3
	maxDetailedOverlapFindingsConstant      = 10
	maxCommonKeywordsListedConstant         = 10
	maxCommonTopicsListedConstant           = 5
)

const (
	scoreBandExcellentConstant        = "Excellent"
	scoreBandGoodConstant             = "Good"
	scoreBandFairConstant             = "Fair"
	scoreBandNeedsImprovementConstant = "Needs Improvement"
	scoreTemplateConstant             = "%d%% - %s"

	baseGapRecommendationTemplateConstant       = "Create base/%s.md to cover %s best practices"
	missingSubKeyRecommendationTemplateConstant = "Add %s %s support with rules covering %s"
	subKeyTopicRecommendationTemplateConstant   = "Add %s/%s/%s.md"
	missingTopicsJoinSeparatorConstant          = ", "
)

// Analyzer checks a rules document corpus for overlapping content and coverage gaps.
type Analyzer struct {
	repositoryRoot string
}

// NewAnalyzer constructs an analyzer rooted at the rules repository.
func NewAnalyzer(repositoryRoot string) *Analyzer {
	return &Analyzer{repositoryRoot: repositoryRoot}
}

// Analyze profiles every rule document, detects same-category overlaps and
// per-category coverage gaps, and computes the composite consistency score.
func (analyzer *Analyzer) Analyze() Report {
	profiles, skippedDocuments := analyzer.profileCorpus()

	overlaps := findOverlaps(profiles)
	gaps := findGaps(profiles)

	detailedOverlaps := overlaps
	if len(detailedOverlaps) > maxDetailedOverlapFindingsConstant {
		detailedOverlaps = detailedOverlaps[:maxDetailedOverlapFindingsConstant]
	}

	return Report{
		FilesAnalyzed:    len(profiles),
		TotalOverlaps:    len(overlaps),
		TotalGaps:        len(gaps),
		OverlapReports:   detailedOverlaps,
		GapReports:       gaps,
		SkippedDocuments: skippedDocuments,
		Summary:          buildSummary(profiles, overlaps, gaps),
	}
}

// profileCorpus walks the four fixed category directories. Base documents sit
// directly under base/; the other categories nest one sub-key directory deep.
// Unreadable documents are recorded as skipped without aborting the run.
func (analyzer *Analyzer) profileCorpus() ([]DocumentProfile, []SkippedDocument) {
	profiles := []DocumentProfile{}
	skippedDocuments := []SkippedDocument{}

	appendProfile := func(documentPath string, category string) {
		documentContent, readError := os.ReadFile(documentPath)
		relativePath := analyzer.relativeDocumentPath(documentPath)
		if readError != nil {
			skippedDocuments = append(skippedDocuments, SkippedDocument{Path: relativePath, Reason: readError.Error()})
			return
		}
		profiles = append(profiles, buildDocumentProfile(relativePath, category, string(documentContent)))
	}

	baseDirectory := filepath.Join(analyzer.repositoryRoot, baseCategoryDirectoryConstant)
	for _, documentPath := range listRuleDocuments(baseDirectory) {
		appendProfile(documentPath, baseCategoryLabelConstant)
	}

	nestedCategories := []struct {
		directoryName string
		categoryLabel string
	}{
		{directoryName: languageCategoryDirectoryConstant, categoryLabel: languageCategoryLabelConstant},
		{directoryName: frameworkCategoryDirectoryConstant, categoryLabel: frameworkCategoryLabelConstant},
		{directoryName: cloudCategoryDirectoryConstant, categoryLabel: cloudCategoryLabelConstant},
	}

	for _, nestedCategory := range nestedCategories {
		categoryDirectory := filepath.Join(analyzer.repositoryRoot, nestedCategory.directoryName)
		for _, subKey := range listSubDirectories(categoryDirectory) {
			categoryLabel := fmt.Sprintf("%s/%s", nestedCategory.categoryLabel, subKey)
			for _, documentPath := range listRuleDocuments(filepath.Join(categoryDirectory, subKey)) {
				appendProfile(documentPath, categoryLabel)
			}
		}
	}

	return profiles, skippedDocuments
}

func (analyzer *Analyzer) relativeDocumentPath(documentPath string) string {
	relativePath, relativeError := filepath.Rel(analyzer.repositoryRoot, documentPath)
	if relativeError != nil {
		return documentPath
	}
	return filepath.ToSlash(relativePath)
}

// listRuleDocuments returns the markdown documents directly inside a directory.
// A missing directory yields an empty slice: an absent category is not an error.
func listRuleDocuments(directoryPath string) []string {
	directoryEntries, readError := os.ReadDir(directoryPath)
	if readError != nil {
		return nil
	}

	documentPaths := []string{}
	for _, directoryEntry := range directoryEntries {
		if directoryEntry.IsDir() {
			continue
		}
		if !strings.HasSuffix(directoryEntry.Name(), ruleDocumentExtensionConstant) {
			continue
		}
		documentPaths = append(documentPaths, filepath.Join(directoryPath, directoryEntry.Name()))
	}
	sort.Strings(documentPaths)
	return documentPaths
}

func listSubDirectories(directoryPath string) []string {
	directoryEntries, readError := os.ReadDir(directoryPath)
	if readError != nil {
		return nil
	}

	subDirectories := []string{}
	for _, directoryEntry := range directoryEntries {
		if directoryEntry.IsDir() {
			subDirectories = append(subDirectories, directoryEntry.Name())
		}
	}
	sort.Strings(subDirectories)
	return subDirectories
}

// findOverlaps compares every unordered pair of documents within the same
// category. Cross-category similarity is expected and never penalized.
func findOverlaps(profiles []DocumentProfile) []OverlapFinding {
	overlaps := []OverlapFinding{}

	for firstIndex := 0; firstIndex < len(profiles); firstIndex++ {
		for secondIndex := firstIndex + 1; secondIndex < len(profiles); secondIndex++ {
			finding, isOverlap := overlapBetween(profiles[firstIndex], profiles[secondIndex])
			if isOverlap {
				overlaps = append(overlaps, finding)
			}
		}
	}

	sort.SliceStable(overlaps, func(leftIndex int, rightIndex int) bool {
		return overlaps[leftIndex].OverlapScore > overlaps[rightIndex].OverlapScore
	})

	return overlaps
}

// overlapBetween computes the pairwise overlap finding. The coarse pre-filter
// (shared keyword/topic counts) runs before the ratio computation so that the
// quadratic comparison stays cheap on unrelated documents.
func overlapBetween(firstProfile DocumentProfile, secondProfile DocumentProfile) (OverlapFinding, bool) {
	if firstProfile.Category != secondProfile.Category {
		return OverlapFinding{}, false
	}

	commonKeywords := intersectSets(firstProfile.Keywords, secondProfile.Keywords)
	commonTopics := intersectSets(firstProfile.Topics, secondProfile.Topics)

	if len(commonKeywords) <= sharedKeywordPrefilterThresholdConstant && len(commonTopics) <= sharedTopicPrefilterThresholdConstant {
		return OverlapFinding{}, false
	}

	keywordOverlapRatio := overlapRatio(len(commonKeywords), len(firstProfile.Keywords), len(secondProfile.Keywords))
	topicOverlapRatio := overlapRatio(len(commonTopics), len(firstProfile.Topics), len(secondProfile.Topics))
	overlapScore := (keywordOverlapRatio + topicOverlapRatio) / 2

	if overlapScore <= overlapScoreThresholdConstant {
		return OverlapFinding{}, false
	}

	return OverlapFinding{
		Category:       firstProfile.Category,
		FirstFile:      firstProfile.FilePath,
		SecondFile:     secondProfile.FilePath,
		OverlapScore:   math.Round(overlapScore*100) / 100,
		CommonKeywords: truncateSorted(commonKeywords, maxCommonKeywordsListedConstant),
		CommonTopics:   truncateSorted(commonTopics, maxCommonTopicsListedConstant),
	}, true
}

func overlapRatio(sharedCount int, firstCount int, secondCount int) float64 {
	largestCount := firstCount
	if secondCount > largestCount {
		largestCount = secondCount
	}
	if largestCount == 0 {
		return 0
	}
	return float64(sharedCount) / float64(largestCount)
}

// findGaps checks every category corpus against its expected-topic taxonomy.
func findGaps(profiles []DocumentProfile) []GapFinding {
	gaps := []GapFinding{}

	baseTopicUnion := topicUnionForCategory(profiles, baseCategoryLabelConstant)
	for _, expectedTopic := range expectedBaseTopics {
		if topicUnionCovers(baseTopicUnion, expectedTopic) {
			continue
		}
		gaps = append(gaps, GapFinding{
			Category:       baseCategoryLabelConstant,
			MissingTopics:  []string{expectedTopic},
			Recommendation: fmt.Sprintf(baseGapRecommendationTemplateConstant, expectedTopic, strings.ReplaceAll(expectedTopic, "-", " ")),
		})
	}

	gaps = append(gaps, subKeyGaps(profiles, languageCategoryLabelConstant, languageCategoryDirectoryConstant, expectedLanguageTopics)...)
	gaps = append(gaps, subKeyGaps(profiles, frameworkCategoryLabelConstant, frameworkCategoryDirectoryConstant, expectedFrameworkTopics)...)
	gaps = append(gaps, subKeyGaps(profiles, cloudCategoryLabelConstant, cloudCategoryDirectoryConstant, expectedCloudTopics)...)

	return gaps
}

// subKeyGaps applies the shared gap pattern for nested categories: a sub-key
// with no documents at all yields one aggregate gap, otherwise each expected
// topic is checked individually against the sub-key's topic union.
func subKeyGaps(profiles []DocumentProfile, categoryLabel string, categoryDirectory string, taxonomies []subKeyTaxonomy) []GapFinding {
	gaps := []GapFinding{}

	for _, taxonomy := range taxonomies {
		subKeyCategoryLabel := fmt.Sprintf("%s/%s", categoryLabel, taxonomy.subKey)

		subKeyProfiles := []DocumentProfile{}
		for _, profile := range profiles {
			if profile.Category == subKeyCategoryLabel {
				subKeyProfiles = append(subKeyProfiles, profile)
			}
		}

		if len(subKeyProfiles) == 0 {
			gaps = append(gaps, GapFinding{
				Category:      subKeyCategoryLabel,
				MissingTopics: append([]string{}, taxonomy.expectedTopics...),
				Recommendation: fmt.Sprintf(
					missingSubKeyRecommendationTemplateConstant,
					taxonomy.subKey,
					categoryLabel,
					strings.Join(taxonomy.expectedTopics, missingTopicsJoinSeparatorConstant),
				),
			})
			continue
		}

		topicUnion := topicUnionForCategory(subKeyProfiles, subKeyCategoryLabel)
		for _, expectedTopic := range taxonomy.expectedTopics {
			if topicUnionCovers(topicUnion, expectedTopic) {
				continue
			}
			gaps = append(gaps, GapFinding{
				Category:       subKeyCategoryLabel,
				MissingTopics:  []string{expectedTopic},
				Recommendation: fmt.Sprintf(subKeyTopicRecommendationTemplateConstant, categoryDirectory, taxonomy.subKey, expectedTopic),
			})
		}
	}

	return gaps
}

func topicUnionForCategory(profiles []DocumentProfile, categoryLabel string) string {
	topicUnion := map[string]struct{}{}
	for _, profile := range profiles {
		if profile.Category != categoryLabel {
			continue
		}
		for topic := range profile.Topics {
			topicUnion[topic] = struct{}{}
		}
	}

	sortedTopics := make([]string, 0, len(topicUnion))
	for topic := range topicUnion {
		sortedTopics = append(sortedTopics, topic)
	}
	sort.Strings(sortedTopics)
	return strings.Join(sortedTopics, " ")
}

// topicUnionCovers reports whether the expected topic appears as a substring of
// the joined topic union, matching hyphenated topics against spaced variants.
func topicUnionCovers(topicUnion string, expectedTopic string) bool {
	return strings.Contains(topicUnion, strings.ReplaceAll(expectedTopic, "-", " "))
}

func buildSummary(profiles []DocumentProfile, overlaps []OverlapFinding, gaps []GapFinding) Summary {
	categoryCounts := map[string]int{}
	for _, profile := range profiles {
		topLevelCategory := profile.Category
		if separatorIndex := strings.Index(topLevelCategory, "/"); separatorIndex >= 0 {
			topLevelCategory = topLevelCategory[:separatorIndex]
		}
		categoryCounts[topLevelCategory]++
	}

	highOverlapCount := 0
	for _, overlap := range overlaps {
		if overlap.OverlapScore > highOverlapScoreThresholdConstant {
			highOverlapCount++
		}
	}

	criticalGapCount := 0
	for _, gap := range gaps {
		if gap.Category == baseCategoryLabelConstant {
			criticalGapCount++
		}
	}

	return Summary{
		TotalFiles:       len(profiles),
		ByCategory:       categoryCounts,
		HighOverlapCount: highOverlapCount,
		CriticalGaps:     criticalGapCount,
		Score:            formatConsistencyScore(len(overlaps), len(gaps)),
	}
}

// formatConsistencyScore applies the composite penalty and banding:
// score = max(0, 100 - 2*overlaps - 3*gaps).
func formatConsistencyScore(overlapCount int, gapCount int) string {
	penalty := overlapPenaltyWeightConstant*overlapCount + gapPenaltyWeightConstant*gapCount
	score := 100 - penalty
	if score < 0 {
		score = 0
	}

	band := scoreBandNeedsImprovementConstant
	switch {
	case score >= 90:
		band = scoreBandExcellentConstant
	case score >= 70:
		band = scoreBandGoodConstant
	case score >= 50:
		band = scoreBandFairConstant
	}

	return fmt.Sprintf(scoreTemplateConstant, score, band)
}

func intersectSets(firstSet map[string]struct{}, secondSet map[string]struct{}) []string {
	shared := []string{}
	for member := range firstSet {
		if _, inSecond := secondSet[member]; inSecond {
			shared = append(shared, member)
		}
	}
	return shared
}

func truncateSorted(members []string, limit int) []string {
	sorted := append([]string{}, members...)
	sort.Strings(sorted)
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}
