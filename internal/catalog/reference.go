package catalog

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

const referenceDocumentNameConstant = "AGENTS.md"

var (
	referenceLinkPattern = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+\.md)\)`)
	codeSamplePattern    = regexp.MustCompile("(?s)```(\\w+)\\n(.*?)```")
)

// ReferenceLink records a markdown link to a rule document inside the narrative reference.
type ReferenceLink struct {
	Title string `json:"title"`
	Path  string `json:"path"`
}

// CodeSample records an embedded, language-tagged code block.
type CodeSample struct {
	Language   string `json:"language"`
	CodeSample string `json:"code_sample"`
}

// ReferenceAnalysis summarizes the narrative reference document for reporting.
// It never feeds selection scoring.
type ReferenceAnalysis struct {
	Rules            []ReferenceLink `json:"rules"`
	Patterns         []CodeSample    `json:"patterns"`
	TotalReferences  int             `json:"total_references"`
	LanguagesCovered []string        `json:"languages_covered"`
}

// ParseReferenceDocument extracts linked rule references and labeled code samples
// from the narrative reference document. A missing document yields an empty analysis.
func (loader *Loader) ParseReferenceDocument() (ReferenceAnalysis, error) {
	referencePath := filepath.Join(loader.repositoryRoot, referenceDocumentNameConstant)

	referenceContent, readError := os.ReadFile(referencePath)
	if readError != nil {
		if os.IsNotExist(readError) {
			return emptyReferenceAnalysis(), nil
		}
		return ReferenceAnalysis{}, readError
	}

	return analyzeReferenceContent(string(referenceContent)), nil
}

func analyzeReferenceContent(referenceContent string) ReferenceAnalysis {
	analysis := emptyReferenceAnalysis()

	for _, linkMatch := range referenceLinkPattern.FindAllStringSubmatch(referenceContent, -1) {
		analysis.Rules = append(analysis.Rules, ReferenceLink{Title: linkMatch[1], Path: linkMatch[2]})
	}

	coveredLanguages := map[string]struct{}{}
	for _, sampleMatch := range codeSamplePattern.FindAllStringSubmatch(referenceContent, -1) {
		sampleLanguage := sampleMatch[1]
		analysis.Patterns = append(analysis.Patterns, CodeSample{
			Language:   sampleLanguage,
			CodeSample: strings.TrimSpace(sampleMatch[2]),
		})
		coveredLanguages[sampleLanguage] = struct{}{}
	}

	for coveredLanguage := range coveredLanguages {
		analysis.LanguagesCovered = append(analysis.LanguagesCovered, coveredLanguage)
	}
	sort.Strings(analysis.LanguagesCovered)

	analysis.TotalReferences = len(analysis.Rules)
	return analysis
}

func emptyReferenceAnalysis() ReferenceAnalysis {
	return ReferenceAnalysis{
		Rules:            []ReferenceLink{},
		Patterns:         []CodeSample{},
		TotalReferences:  0,
		LanguagesCovered: []string{},
	}
}
