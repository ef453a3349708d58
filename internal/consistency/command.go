package consistency

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	commandNameConstant             = "mece"
	commandShortDescriptionConstant = "Analyze the rules corpus for content overlaps and coverage gaps"
	commandLongDescriptionConstant  = "mece profiles every rule document, reports redundant same-category content and missing expected topics, and computes the composite consistency score."

	flagRootNameConstant        = "root"
	flagRootDescriptionConstant = "Rules repository root to analyze"

	resultsHeaderConstant             = "=== Consistency Analysis Results ===\n"
	filesAnalyzedTemplateConstant     = "Files analyzed: %d\n"
	overlapsFoundTemplateConstant     = "Overlaps found: %d\n"
	gapsFoundTemplateConstant         = "Gaps found: %d\n"
	scoreTemplateLineConstant         = "\nConsistency score: %s\n"
	topOverlapsHeaderConstant         = "\n=== Top Overlaps ===\n"
	overlapPairTemplateConstant       = "\n%s <-> %s\n"
	overlapScoreTemplateConstant      = "  Overlap: %.0f%%\n"
	overlapKeywordsTemplateConstant   = "  Common keywords: %s\n"
	gapsHeaderConstant                = "\n=== Coverage Gaps ===\n"
	gapCategoryTemplateConstant       = "\n%s\n"
	gapMissingTemplateConstant        = "  Missing: %s\n"
	gapRecommendationTemplateConstant = "  Recommendation: %s\n"
	listJoinSeparatorConstant         = ", "

	maxPrintedOverlapsConstant = 3
	maxPrintedGapsConstant     = 5

	analysisCompletedMessageConstant = "consistency analysis completed"
	logFieldRepositoryRootConstant   = "repository_root"
	logFieldFilesAnalyzedConstant    = "files_analyzed"
	logFieldOverlapCountConstant     = "overlap_count"
	logFieldGapCountConstant         = "gap_count"
)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the consistency cobra command with configurable dependencies.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider func() CommandConfiguration
}

// Build constructs the cobra command running the standalone consistency analysis.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandNameConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		RunE:  builder.run,
	}

	command.Flags().String(flagRootNameConstant, "", flagRootDescriptionConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := builder.resolveConfiguration()

	if command.Flags().Changed(flagRootNameConstant) {
		flagRoot, _ := command.Flags().GetString(flagRootNameConstant)
		configuration.Root = flagRoot
	}
	configuration = configuration.sanitize()

	analyzer := NewAnalyzer(configuration.Root)
	report := analyzer.Analyze()

	builder.resolveLogger().Info(
		analysisCompletedMessageConstant,
		zap.String(logFieldRepositoryRootConstant, configuration.Root),
		zap.Int(logFieldFilesAnalyzedConstant, report.FilesAnalyzed),
		zap.Int(logFieldOverlapCountConstant, report.TotalOverlaps),
		zap.Int(logFieldGapCountConstant, report.TotalGaps),
	)

	outputWriter := command.OutOrStdout()
	fmt.Fprint(outputWriter, resultsHeaderConstant)
	fmt.Fprintf(outputWriter, filesAnalyzedTemplateConstant, report.FilesAnalyzed)
	fmt.Fprintf(outputWriter, overlapsFoundTemplateConstant, report.TotalOverlaps)
	fmt.Fprintf(outputWriter, gapsFoundTemplateConstant, report.TotalGaps)
	fmt.Fprintf(outputWriter, scoreTemplateLineConstant, report.Summary.Score)

	if len(report.OverlapReports) > 0 {
		fmt.Fprint(outputWriter, topOverlapsHeaderConstant)
		for overlapIndex, overlap := range report.OverlapReports {
			if overlapIndex >= maxPrintedOverlapsConstant {
				break
			}
			fmt.Fprintf(outputWriter, overlapPairTemplateConstant, overlap.FirstFile, overlap.SecondFile)
			fmt.Fprintf(outputWriter, overlapScoreTemplateConstant, overlap.OverlapScore*100)
			fmt.Fprintf(outputWriter, overlapKeywordsTemplateConstant, strings.Join(overlap.CommonKeywords, listJoinSeparatorConstant))
		}
	}

	if len(report.GapReports) > 0 {
		fmt.Fprint(outputWriter, gapsHeaderConstant)
		for gapIndex, gap := range report.GapReports {
			if gapIndex >= maxPrintedGapsConstant {
				break
			}
			fmt.Fprintf(outputWriter, gapCategoryTemplateConstant, gap.Category)
			fmt.Fprintf(outputWriter, gapMissingTemplateConstant, strings.Join(gap.MissingTopics, listJoinSeparatorConstant))
			fmt.Fprintf(outputWriter, gapRecommendationTemplateConstant, gap.Recommendation)
		}
	}

	return nil
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider()
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
