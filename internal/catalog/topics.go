package catalog

import (
	"path/filepath"
	"strings"
)

// topicKeywordEntry associates a topic tag with the filename keywords that imply it.
type topicKeywordEntry struct {
	topic    string
	keywords []string
}

// topicKeywordTable is the fixed dictionary used to derive topic tags from rule
// filenames. The table is constructed once and never mutated at runtime.
var topicKeywordTable = []topicKeywordEntry{
	{topic: "security", keywords: []string{"security", "auth", "jwt", "oauth"}},
	{topic: "testing", keywords: []string{"testing", "test", "pytest", "jest"}},
	{topic: "quality", keywords: []string{"quality", "standards", "style"}},
	{topic: "performance", keywords: []string{"performance", "optimization", "cache"}},
	{topic: "api", keywords: []string{"api", "rest", "graphql", "endpoint"}},
	{topic: "database", keywords: []string{"database", "db", "sql", "query"}},
	{topic: "deployment", keywords: []string{"deployment", "deploy", "ci", "cd"}},
}

// topicsFromPath derives topic tags by matching the filename stem against the keyword table.
func topicsFromPath(rulePath string) []string {
	filenameStem := strings.ToLower(strings.TrimSuffix(filepath.Base(rulePath), filepath.Ext(rulePath)))

	topics := []string{}
	for _, tableEntry := range topicKeywordTable {
		for _, keyword := range tableEntry.keywords {
			if strings.Contains(filenameStem, keyword) {
				topics = append(topics, tableEntry.topic)
				break
			}
		}
	}

	return topics
}
