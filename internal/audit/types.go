package audit

import (
	"fmt"
	"strings"

	"github.com/rulekit/ruleaudit/internal/consistency"
	"github.com/rulekit/ruleaudit/internal/detect"
	"github.com/rulekit/ruleaudit/internal/selection"
)

// Depth selects how many pipeline stages an audit run executes.
type Depth string

const (
	// DepthQuick runs context detection and rule selection only.
	DepthQuick Depth = "quick"
	// DepthStandard adds the content-consistency analysis and file disposition.
	DepthStandard Depth = "standard"
	// DepthFull adds the accuracy audit on top of the standard stages.
	DepthFull Depth = "full"
)

const unsupportedDepthTemplateConstant = "unsupported audit depth %q (expected %s, %s, or %s)"

// ParseDepth normalizes and validates a depth literal.
func ParseDepth(rawDepth string) (Depth, error) {
	normalizedDepth := Depth(strings.ToLower(strings.TrimSpace(rawDepth)))
	switch normalizedDepth {
	case DepthQuick, DepthStandard, DepthFull:
		return normalizedDepth, nil
	}
	return "", fmt.Errorf(unsupportedDepthTemplateConstant, rawDepth, DepthQuick, DepthStandard, DepthFull)
}

func (depth Depth) includesConsistency() bool {
	return depth == DepthStandard || depth == DepthFull
}

func (depth Depth) includesAccuracy() bool {
	return depth == DepthFull
}

// AgentsDocumentAnalysis summarizes the narrative reference document for the
// rules selection report.
type AgentsDocumentAnalysis struct {
	TotalReferences  int      `json:"total_references"`
	LanguagesCovered []string `json:"languages_covered"`
}

// RulesReport is the selection report augmented with the reference-document summary.
type RulesReport struct {
	selection.Report
	AgentsDocumentAnalysis AgentsDocumentAnalysis `json:"agents_md_analysis"`
}

// AccuracyReport is the placeholder accuracy-audit stage result.
type AccuracyReport struct {
	FilesAudited int    `json:"files_audited"`
	IssuesFound  int    `json:"issues_found"`
	Status       string `json:"status"`
}

// DispositionRecommendation itemizes the suggested handling of one archived document.
type DispositionRecommendation struct {
	File   string `json:"file"`
	Status string `json:"status"`
	Action string `json:"action"`
}

// DispositionReport classifies archived documents as deletion candidates.
type DispositionReport struct {
	TotalFiles      int                         `json:"total_files"`
	Redundant       int                         `json:"redundant"`
	Obsolete        int                         `json:"obsolete"`
	Unused          int                         `json:"unused"`
	Active          int                         `json:"active"`
	Recommendations []DispositionRecommendation `json:"recommendations"`
}

// Result is the complete audit outcome. Stage pointers stay nil when the
// configured depth skips the stage, so serialized reports carry explicit nulls
// rather than zero-valued sections.
type Result struct {
	Timestamp            string                `json:"timestamp"`
	Context              detect.ProjectContext `json:"context"`
	RulesSelectionReport RulesReport           `json:"rules_selection_report"`
	ContentMap           *consistency.Report   `json:"mece_content_map"`
	AccuracyAudit        *AccuracyReport       `json:"accuracy_audit"`
	FileDisposition      *DispositionReport    `json:"file_disposition"`
}
