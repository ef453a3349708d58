package consistency

// DocumentProfile captures the lexical features extracted from a single rule document.
// Profiles are rebuilt on every analysis run and never mutated in place.
type DocumentProfile struct {
	FilePath   string
	Category   string
	Topics     map[string]struct{}
	Keywords   map[string]struct{}
	Headings   []string
	CodeBlocks []string
	WordCount  int
}

// OverlapFinding reports redundant content between two documents of the same category.
type OverlapFinding struct {
	Category       string   `json:"category"`
	FirstFile      string   `json:"file1"`
	SecondFile     string   `json:"file2"`
	OverlapScore   float64  `json:"overlap_score"`
	CommonKeywords []string `json:"common_keywords"`
	CommonTopics   []string `json:"common_topics"`
}

// GapFinding reports expected topics absent from a category's corpus.
type GapFinding struct {
	Category       string   `json:"category"`
	MissingTopics  []string `json:"missing_topics"`
	Recommendation string   `json:"recommendation"`
}

// SkippedDocument records a document excluded from analysis because it could not be read.
type SkippedDocument struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// Summary condenses the analysis outcome into headline statistics.
type Summary struct {
	TotalFiles       int            `json:"total_files"`
	ByCategory       map[string]int `json:"by_category"`
	HighOverlapCount int            `json:"high_overlap_count"`
	CriticalGaps     int            `json:"critical_gaps"`
	Score            string         `json:"mece_score"`
}

// Report is the complete content-consistency analysis result.
type Report struct {
	FilesAnalyzed    int               `json:"files_analyzed"`
	TotalOverlaps    int               `json:"total_overlaps"`
	TotalGaps        int               `json:"total_gaps"`
	OverlapReports   []OverlapFinding  `json:"overlap_reports"`
	GapReports       []GapFinding      `json:"gap_reports"`
	SkippedDocuments []SkippedDocument `json:"skipped_documents"`
	Summary          Summary           `json:"summary"`
}
