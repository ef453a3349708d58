package catalog

import "github.com/rulekit/ruleaudit/internal/detect"

// Category identifies the scope bucket a rule document belongs to.
type Category string

// Rule categories recognized by the catalog.
const (
	CategoryBase      Category = "base"
	CategoryLanguage  Category = "language"
	CategoryFramework Category = "framework"
	CategoryCloud     Category = "cloud"
)

// RuleRecord is the normalized metadata for a single rule document.
// Records are constructed once per catalog load and never mutated afterwards.
type RuleRecord struct {
	Name            string                `json:"name"`
	Path            string                `json:"path"`
	Category        Category              `json:"category"`
	SubKey          string                `json:"sub_key,omitempty"`
	Topics          []string              `json:"topics"`
	Maturity        []detect.MaturityTier `json:"maturity"`
	EstimatedTokens int                   `json:"estimated_tokens"`
}

// Catalog holds the category-bucketed rule records parsed from the index.
type Catalog struct {
	Base      []RuleRecord
	Language  []RuleRecord
	Framework []RuleRecord
	Cloud     []RuleRecord
}

// TotalCount reports the number of records across all category buckets.
func (catalog Catalog) TotalCount() int {
	return len(catalog.Base) + len(catalog.Language) + len(catalog.Framework) + len(catalog.Cloud)
}

// allMaturityTiers returns the default applicability range covering every tier.
func allMaturityTiers() []detect.MaturityTier {
	return []detect.MaturityTier{detect.MaturityPrototype, detect.MaturityPreProduction, detect.MaturityProduction}
}
