package audit

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/rulekit/ruleaudit/internal/catalog"
	"github.com/rulekit/ruleaudit/internal/consistency"
	"github.com/rulekit/ruleaudit/internal/detect"
	"github.com/rulekit/ruleaudit/internal/selection"
)

const (
	archiveDirectoryNameConstant       = "archive"
	archiveDocumentExtensionConstant   = ".md"
	maxItemizedRecommendationsConstant = 5

	dispositionStatusObsoleteConstant = "obsolete"
	dispositionActionDeleteConstant   = "delete"

	accuracyStatusPlaceholderConstant = "not_implemented_yet"

	reportFileNameTemplateConstant    = "audit-report-%s.json"
	reportTimestampLayoutConstant     = "20060102-150405"
	reportIndentConstant              = "  "
	serializeFailureTemplateConstant  = "serialize audit report: %w"
	writeFailureTemplateConstant      = "write audit report %s: %w"
	rulesIndexFailureTemplateConstant = "parse rules index: %w"
	referenceFailureTemplateConstant  = "parse reference document: %w"

	startHeaderConstant            = "Repository audit starting\n"
	repositoryLineTemplateConstant = "Repository: %s\n"
	depthLineTemplateConstant      = "Audit depth: %s\n\n"

	contextStageHeaderConstant          = "[1/6] Detecting project context...\n"
	contextLanguagesTemplateConstant    = "      Languages: %s\n"
	contextFrameworksTemplateConstant   = "      Frameworks: %s\n"
	contextCloudTemplateConstant        = "      Cloud: %s\n"
	contextMaturityTemplateConstant     = "      Maturity: %s\n\n"
	selectionStageHeaderConstant        = "[2/6] Generating rules selection report...\n"
	selectionAvailableTemplateConstant  = "      Total rules available: %d\n"
	selectionSelectedTemplateConstant   = "      Rules selected: %d\n"
	selectionTokensTemplateConstant     = "      Estimated tokens: %d\n"
	selectionEfficiencyTemplateConstant = "      Selection efficiency: %s\n\n"
	consistencyStageHeaderConstant      = "[3/6] Creating content consistency map...\n"
	consistencySkippedConstant          = "[3/6] Skipping consistency analysis (quick mode)\n\n"
	consistencyFilesTemplateConstant    = "      Files analyzed: %d\n"
	consistencyOverlapsTemplateConstant = "      Overlaps found: %d\n"
	consistencyGapsTemplateConstant     = "      Coverage gaps: %d\n"
	consistencyScoreTemplateConstant    = "      Consistency score: %s\n\n"
	accuracyStageHeaderConstant         = "[4/6] Running accuracy audit...\n"
	accuracySkippedConstant             = "[4/6] Skipping accuracy audit (not full mode)\n\n"
	accuracyFilesTemplateConstant       = "      Files audited: %d\n\n"
	dispositionStageHeaderConstant      = "[5/6] Analyzing file disposition...\n"
	dispositionSkippedConstant          = "[5/6] Skipping disposition analysis (quick mode)\n\n"
	dispositionFilesTemplateConstant    = "      Files classified: %d\n\n"
	reportStageHeaderConstant           = "[6/6] Generating final reports...\n"
	completionLineConstant              = "Audit complete\n"
	emptyListLabelConstant              = "None"
	listSeparatorConstant               = ", "

	pipelineCompletedMessageConstant = "audit pipeline completed"
	logFieldRepositoryRootConstant   = "repository_root"
	logFieldDepthConstant            = "depth"
	logFieldRulesSelectedConstant    = "rules_selected"
	logFieldOverlapCountConstant     = "overlap_count"
	logFieldGapCountConstant         = "gap_count"
)

// Config carries the orchestrator settings resolved from flags and configuration.
type Config struct {
	Depth              Depth
	EnableCitations    bool
	EnableDisposition  bool
	MaxTasksPerFinding int
}

// Service orchestrates the audit pipeline over a rules repository.
type Service struct {
	repositoryRoot string
	configuration  Config
	logger         *zap.Logger
	outputWriter   io.Writer
	clock          func() time.Time
}

// NewService constructs an audit service writing stage progress to the provided writer.
func NewService(repositoryRoot string, configuration Config, logger *zap.Logger, outputWriter io.Writer) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if outputWriter == nil {
		outputWriter = io.Discard
	}
	return &Service{
		repositoryRoot: repositoryRoot,
		configuration:  configuration,
		logger:         logger,
		outputWriter:   outputWriter,
		clock:          time.Now,
	}
}

// Run executes the depth-gated pipeline and returns the assembled audit result.
func (service *Service) Run() (Result, error) {
	fmt.Fprint(service.outputWriter, startHeaderConstant)
	fmt.Fprintf(service.outputWriter, repositoryLineTemplateConstant, service.repositoryRoot)
	fmt.Fprintf(service.outputWriter, depthLineTemplateConstant, service.configuration.Depth)

	fmt.Fprint(service.outputWriter, contextStageHeaderConstant)
	projectContext := detect.NewDetector().DetectContext(service.repositoryRoot)
	fmt.Fprintf(service.outputWriter, contextLanguagesTemplateConstant, joinOrNone(projectContext.Languages))
	fmt.Fprintf(service.outputWriter, contextFrameworksTemplateConstant, joinOrNone(projectContext.Frameworks))
	fmt.Fprintf(service.outputWriter, contextCloudTemplateConstant, joinOrNone(projectContext.CloudProviders))
	fmt.Fprintf(service.outputWriter, contextMaturityTemplateConstant, projectContext.Maturity)

	fmt.Fprint(service.outputWriter, selectionStageHeaderConstant)
	rulesReport, rulesError := service.buildRulesReport(projectContext)
	if rulesError != nil {
		return Result{}, rulesError
	}
	fmt.Fprintf(service.outputWriter, selectionAvailableTemplateConstant, rulesReport.TotalRulesAvailable)
	fmt.Fprintf(service.outputWriter, selectionSelectedTemplateConstant, rulesReport.TotalRulesSelected)
	fmt.Fprintf(service.outputWriter, selectionTokensTemplateConstant, rulesReport.TotalEstimatedTokens)
	fmt.Fprintf(service.outputWriter, selectionEfficiencyTemplateConstant, rulesReport.SelectionEfficiency)

	var contentMap *consistency.Report
	if service.configuration.Depth.includesConsistency() {
		fmt.Fprint(service.outputWriter, consistencyStageHeaderConstant)
		analysisReport := consistency.NewAnalyzer(service.repositoryRoot).Analyze()
		contentMap = &analysisReport
		fmt.Fprintf(service.outputWriter, consistencyFilesTemplateConstant, analysisReport.FilesAnalyzed)
		fmt.Fprintf(service.outputWriter, consistencyOverlapsTemplateConstant, analysisReport.TotalOverlaps)
		fmt.Fprintf(service.outputWriter, consistencyGapsTemplateConstant, analysisReport.TotalGaps)
		fmt.Fprintf(service.outputWriter, consistencyScoreTemplateConstant, analysisReport.Summary.Score)
	} else {
		fmt.Fprint(service.outputWriter, consistencySkippedConstant)
	}

	var accuracyAudit *AccuracyReport
	if service.configuration.Depth.includesAccuracy() && service.configuration.EnableCitations {
		fmt.Fprint(service.outputWriter, accuracyStageHeaderConstant)
		accuracyAudit = &AccuracyReport{Status: accuracyStatusPlaceholderConstant}
		fmt.Fprintf(service.outputWriter, accuracyFilesTemplateConstant, accuracyAudit.FilesAudited)
	} else {
		fmt.Fprint(service.outputWriter, accuracySkippedConstant)
	}

	var fileDisposition *DispositionReport
	if service.configuration.Depth.includesConsistency() && service.configuration.EnableDisposition {
		fmt.Fprint(service.outputWriter, dispositionStageHeaderConstant)
		dispositionReport := service.analyzeDisposition()
		fileDisposition = &dispositionReport
		fmt.Fprintf(service.outputWriter, dispositionFilesTemplateConstant, dispositionReport.TotalFiles)
	} else {
		fmt.Fprint(service.outputWriter, dispositionSkippedConstant)
	}

	fmt.Fprint(service.outputWriter, reportStageHeaderConstant)

	result := Result{
		Timestamp:            service.clock().Format(time.RFC3339),
		Context:              projectContext,
		RulesSelectionReport: rulesReport,
		ContentMap:           contentMap,
		AccuracyAudit:        accuracyAudit,
		FileDisposition:      fileDisposition,
	}

	logFields := []zap.Field{
		zap.String(logFieldRepositoryRootConstant, service.repositoryRoot),
		zap.String(logFieldDepthConstant, string(service.configuration.Depth)),
		zap.Int(logFieldRulesSelectedConstant, rulesReport.TotalRulesSelected),
	}
	if contentMap != nil {
		logFields = append(logFields,
			zap.Int(logFieldOverlapCountConstant, contentMap.TotalOverlaps),
			zap.Int(logFieldGapCountConstant, contentMap.TotalGaps),
		)
	}
	service.logger.Info(pipelineCompletedMessageConstant, logFields...)

	fmt.Fprint(service.outputWriter, completionLineConstant)
	return result, nil
}

// buildRulesReport runs the catalog loader and selector, then augments the
// selection report with the narrative reference-document summary.
func (service *Service) buildRulesReport(projectContext detect.ProjectContext) (RulesReport, error) {
	loader := catalog.NewLoader(service.repositoryRoot)

	ruleCatalog, indexError := loader.ParseIndex()
	if indexError != nil {
		return RulesReport{}, fmt.Errorf(rulesIndexFailureTemplateConstant, indexError)
	}

	referenceAnalysis, referenceError := loader.ParseReferenceDocument()
	if referenceError != nil {
		return RulesReport{}, fmt.Errorf(referenceFailureTemplateConstant, referenceError)
	}

	selectionReport := selection.NewSelector().Select(ruleCatalog, projectContext)

	return RulesReport{
		Report: selectionReport,
		AgentsDocumentAnalysis: AgentsDocumentAnalysis{
			TotalReferences:  referenceAnalysis.TotalReferences,
			LanguagesCovered: referenceAnalysis.LanguagesCovered,
		},
	}, nil
}

// analyzeDisposition classifies every markdown document under the archive
// directory as an obsolete deletion candidate, itemizing the first five.
func (service *Service) analyzeDisposition() DispositionReport {
	archiveDirectory := filepath.Join(service.repositoryRoot, archiveDirectoryNameConstant)

	archivedDocuments := []string{}
	directoryEntries, readError := os.ReadDir(archiveDirectory)
	if readError == nil {
		for _, directoryEntry := range directoryEntries {
			if directoryEntry.IsDir() {
				continue
			}
			if !strings.HasSuffix(directoryEntry.Name(), archiveDocumentExtensionConstant) {
				continue
			}
			archivedDocuments = append(archivedDocuments, filepath.ToSlash(filepath.Join(archiveDirectoryNameConstant, directoryEntry.Name())))
		}
	}
	sort.Strings(archivedDocuments)

	recommendations := []DispositionRecommendation{}
	for _, archivedDocument := range archivedDocuments {
		if len(recommendations) >= maxItemizedRecommendationsConstant {
			break
		}
		recommendations = append(recommendations, DispositionRecommendation{
			File:   archivedDocument,
			Status: dispositionStatusObsoleteConstant,
			Action: dispositionActionDeleteConstant,
		})
	}

	return DispositionReport{
		TotalFiles:      len(archivedDocuments),
		Redundant:       len(archivedDocuments),
		Obsolete:        len(archivedDocuments),
		Unused:          0,
		Active:          0,
		Recommendations: recommendations,
	}
}

// WriteReport serializes the audit result to the provided path, or to a
// timestamped file in the working directory when the path is empty.
func (service *Service) WriteReport(result Result, outputPath string) (string, error) {
	if len(strings.TrimSpace(outputPath)) == 0 {
		outputPath = fmt.Sprintf(reportFileNameTemplateConstant, service.clock().Format(reportTimestampLayoutConstant))
	}

	serializedReport, serializeError := json.MarshalIndent(result, "", reportIndentConstant)
	if serializeError != nil {
		return "", fmt.Errorf(serializeFailureTemplateConstant, serializeError)
	}

	if writeError := os.WriteFile(outputPath, serializedReport, 0o644); writeError != nil {
		return "", fmt.Errorf(writeFailureTemplateConstant, outputPath, writeError)
	}

	return outputPath, nil
}

func joinOrNone(values []string) string {
	if len(values) == 0 {
		return emptyListLabelConstant
	}
	return strings.Join(values, listSeparatorConstant)
}
