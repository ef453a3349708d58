package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rulekit/ruleaudit/internal/detect"
)

const (
	rulesDirectoryRelativePathConstant = ".claude/rules"
	indexFileNameConstant              = "index.json"

	indexParseErrorTemplateConstant  = "failed to parse rules index %s: %w"
	entryMissingNameTemplateConstant = "rules index entry %d in category %s is missing a name"
	entryMissingPathTemplateConstant = "rules index entry %q in category %s carries neither a %q nor a %q key"
	legacyPathKeyNameConstant        = "path"
	legacyFileKeyNameConstant        = "file"

	defaultBaseTokenEstimateConstant      = 800
	defaultLanguageTokenEstimateConstant  = 1000
	defaultFrameworkTokenEstimateConstant = 1200
	defaultCloudTokenEstimateConstant     = 1400

	ruleDocumentSuffixConstant       = ".md"
	baseRulesDirectoryNameConstant   = "base"
	rulePathSeparatorLiteralConstant = "/"
)

var groupedRuleDirectoryNames = []string{"languages", "frameworks", "cloud"}

// Loader parses the declarative rules index into category-bucketed RuleRecords.
type Loader struct {
	repositoryRoot string
}

// NewLoader constructs a Loader rooted at the rules repository.
func NewLoader(repositoryRoot string) *Loader {
	return &Loader{repositoryRoot: repositoryRoot}
}

// IndexPath reports the location of the rules index file.
func (loader *Loader) IndexPath() string {
	return filepath.Join(loader.repositoryRoot, filepath.FromSlash(rulesDirectoryRelativePathConstant), indexFileNameConstant)
}

type indexDocument struct {
	Rules indexRuleGroups `yaml:"rules"`
}

type indexRuleGroups struct {
	Base       []indexEntry            `yaml:"base"`
	Languages  map[string][]indexEntry `yaml:"languages"`
	Frameworks map[string][]indexEntry `yaml:"frameworks"`
	Cloud      map[string][]indexEntry `yaml:"cloud"`
}

type indexEntry struct {
	Name            string   `yaml:"name"`
	Path            string   `yaml:"path"`
	File            string   `yaml:"file"`
	EstimatedTokens *int     `yaml:"estimatedTokens"`
	Maturity        []string `yaml:"maturity"`
}

// ParseIndex reads the rules index and normalizes every entry into a RuleRecord.
// A missing index file is not an error: it yields a catalog with four empty buckets.
func (loader *Loader) ParseIndex() (Catalog, error) {
	indexPath := loader.IndexPath()

	indexContent, readError := os.ReadFile(indexPath)
	if readError != nil {
		if os.IsNotExist(readError) {
			return Catalog{Base: []RuleRecord{}, Language: []RuleRecord{}, Framework: []RuleRecord{}, Cloud: []RuleRecord{}}, nil
		}
		return Catalog{}, readError
	}

	var document indexDocument
	if unmarshalError := yaml.Unmarshal(indexContent, &document); unmarshalError != nil {
		return Catalog{}, fmt.Errorf(indexParseErrorTemplateConstant, indexPath, unmarshalError)
	}

	catalog := Catalog{Base: []RuleRecord{}, Language: []RuleRecord{}, Framework: []RuleRecord{}, Cloud: []RuleRecord{}}

	for entryIndex, entry := range document.Rules.Base {
		record, recordError := normalizeEntry(entry, entryIndex, CategoryBase, "", defaultBaseTokenEstimateConstant)
		if recordError != nil {
			return Catalog{}, recordError
		}
		catalog.Base = append(catalog.Base, record)
	}

	languageRecords, languageError := normalizeGroupedEntries(document.Rules.Languages, CategoryLanguage, defaultLanguageTokenEstimateConstant)
	if languageError != nil {
		return Catalog{}, languageError
	}
	catalog.Language = append(catalog.Language, languageRecords...)

	frameworkRecords, frameworkError := normalizeGroupedEntries(document.Rules.Frameworks, CategoryFramework, defaultFrameworkTokenEstimateConstant)
	if frameworkError != nil {
		return Catalog{}, frameworkError
	}
	catalog.Framework = append(catalog.Framework, frameworkRecords...)

	cloudRecords, cloudError := normalizeGroupedEntries(document.Rules.Cloud, CategoryCloud, defaultCloudTokenEstimateConstant)
	if cloudError != nil {
		return Catalog{}, cloudError
	}
	catalog.Cloud = append(catalog.Cloud, cloudRecords...)

	return catalog, nil
}

// normalizeGroupedEntries flattens a sub-key keyed entry map into records, walking
// sub-keys in sorted order so catalog ordering stays deterministic.
func normalizeGroupedEntries(groupedEntries map[string][]indexEntry, category Category, defaultTokenEstimate int) ([]RuleRecord, error) {
	subKeys := make([]string, 0, len(groupedEntries))
	for subKey := range groupedEntries {
		subKeys = append(subKeys, subKey)
	}
	sort.Strings(subKeys)

	records := []RuleRecord{}
	for _, subKey := range subKeys {
		for entryIndex, entry := range groupedEntries[subKey] {
			record, recordError := normalizeEntry(entry, entryIndex, category, subKey, defaultTokenEstimate)
			if recordError != nil {
				return nil, recordError
			}
			records = append(records, record)
		}
	}

	return records, nil
}

// normalizeEntry resolves the legacy dual-key path tolerance into one canonical record.
func normalizeEntry(entry indexEntry, entryIndex int, category Category, subKey string, defaultTokenEstimate int) (RuleRecord, error) {
	categoryLabel := string(category)
	if len(subKey) > 0 {
		categoryLabel = fmt.Sprintf("%s/%s", category, subKey)
	}

	if len(strings.TrimSpace(entry.Name)) == 0 {
		return RuleRecord{}, fmt.Errorf(entryMissingNameTemplateConstant, entryIndex, categoryLabel)
	}

	rulePath := entry.Path
	if len(rulePath) == 0 {
		rulePath = entry.File
	}
	if len(rulePath) == 0 {
		return RuleRecord{}, fmt.Errorf(entryMissingPathTemplateConstant, entry.Name, categoryLabel, legacyPathKeyNameConstant, legacyFileKeyNameConstant)
	}

	// An explicit estimate is kept verbatim, zero included. Only an absent key falls
	// back to the category default.
	tokenEstimate := defaultTokenEstimate
	if entry.EstimatedTokens != nil {
		tokenEstimate = *entry.EstimatedTokens
	}

	maturityTiers := allMaturityTiers()
	if len(entry.Maturity) > 0 {
		maturityTiers = make([]detect.MaturityTier, 0, len(entry.Maturity))
		for _, rawTier := range entry.Maturity {
			maturityTiers = append(maturityTiers, detect.MaturityTier(strings.TrimSpace(rawTier)))
		}
	}

	return RuleRecord{
		Name:            entry.Name,
		Path:            rulePath,
		Category:        category,
		SubKey:          subKey,
		Topics:          topicsFromPath(rulePath),
		Maturity:        maturityTiers,
		EstimatedTokens: tokenEstimate,
	}, nil
}

// ListRulePaths inventories every markdown rule document in the repository as
// sorted slash-separated relative paths. Base documents sit directly inside
// base/; the grouped category directories are walked one sub-key level deep.
// Missing directories contribute nothing.
func (loader *Loader) ListRulePaths() []string {
	rulePaths := listMarkdownDocuments(filepath.Join(loader.repositoryRoot, baseRulesDirectoryNameConstant), baseRulesDirectoryNameConstant)

	for _, groupedDirectoryName := range groupedRuleDirectoryNames {
		groupedDirectoryPath := filepath.Join(loader.repositoryRoot, groupedDirectoryName)
		groupedEntries, readError := os.ReadDir(groupedDirectoryPath)
		if readError != nil {
			continue
		}
		for _, groupedEntry := range groupedEntries {
			if !groupedEntry.IsDir() {
				continue
			}
			subKeyPrefix := groupedDirectoryName + rulePathSeparatorLiteralConstant + groupedEntry.Name()
			rulePaths = append(rulePaths, listMarkdownDocuments(filepath.Join(groupedDirectoryPath, groupedEntry.Name()), subKeyPrefix)...)
		}
	}

	sort.Strings(rulePaths)
	return rulePaths
}

func listMarkdownDocuments(directoryPath string, pathPrefix string) []string {
	directoryEntries, readError := os.ReadDir(directoryPath)
	if readError != nil {
		return nil
	}

	documentPaths := []string{}
	for _, directoryEntry := range directoryEntries {
		if directoryEntry.IsDir() {
			continue
		}
		if !strings.HasSuffix(directoryEntry.Name(), ruleDocumentSuffixConstant) {
			continue
		}
		documentPaths = append(documentPaths, pathPrefix+rulePathSeparatorLiteralConstant+directoryEntry.Name())
	}
	return documentPaths
}
