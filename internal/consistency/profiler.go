package consistency

import (
	"path/filepath"
	"regexp"
	"strings"
)

var (
	headingLinePattern      = regexp.MustCompile(`(?m)^#+\s+(.+)$`)
	fencedCodeBlockPattern  = regexp.MustCompile("(?s)```\\w*\\n(.*?)```")
	anyFencedBlockPattern   = regexp.MustCompile("(?s)```.*?```")
	topicPunctuationPattern = regexp.MustCompile(`[^\w\s-]`)
)

// buildDocumentProfile extracts the lexical features of one rule document.
func buildDocumentProfile(relativePath string, category string, documentContent string) DocumentProfile {
	headings := extractHeadings(documentContent)

	return DocumentProfile{
		FilePath:   relativePath,
		Category:   category,
		Topics:     extractTopics(relativePath, headings),
		Keywords:   extractKeywords(documentContent),
		Headings:   headings,
		CodeBlocks: extractCodeBlocks(documentContent),
		WordCount:  len(strings.Fields(documentContent)),
	}
}

func extractHeadings(documentContent string) []string {
	headings := []string{}
	for _, headingMatch := range headingLinePattern.FindAllStringSubmatch(documentContent, -1) {
		headings = append(headings, headingMatch[1])
	}
	return headings
}

func extractCodeBlocks(documentContent string) []string {
	codeBlocks := []string{}
	for _, blockMatch := range fencedCodeBlockPattern.FindAllStringSubmatch(documentContent, -1) {
		codeBlocks = append(codeBlocks, blockMatch[1])
	}
	return codeBlocks
}

// extractKeywords scans prose (code blocks removed first, so identifiers inside
// samples never register as keyword matches) against the fixed pattern groups.
func extractKeywords(documentContent string) map[string]struct{} {
	proseContent := anyFencedBlockPattern.ReplaceAllString(documentContent, "")

	keywords := map[string]struct{}{}
	for _, keywordPattern := range keywordGroupPatterns {
		for _, keywordMatch := range keywordPattern.FindAllString(proseContent, -1) {
			keywords[strings.ToLower(keywordMatch)] = struct{}{}
		}
	}
	return keywords
}

// extractTopics derives the topic set from the normalized filename stem and headings.
func extractTopics(relativePath string, headings []string) map[string]struct{} {
	topics := map[string]struct{}{}

	filenameStem := strings.TrimSuffix(filepath.Base(relativePath), filepath.Ext(relativePath))
	topics[strings.ReplaceAll(strings.ToLower(filenameStem), "-", " ")] = struct{}{}

	for _, heading := range headings {
		normalizedHeading := strings.TrimSpace(strings.ToLower(heading))
		normalizedHeading = topicPunctuationPattern.ReplaceAllString(normalizedHeading, "")
		topics[normalizedHeading] = struct{}{}
	}

	return topics
}
