package catalog

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	commandNameConstant             = "rules"
	commandShortDescriptionConstant = "Summarize the rules catalog and narrative reference document"
	commandLongDescriptionConstant  = "rules parses the declarative rules index and the narrative reference document, printing per-category record counts and reference statistics."

	flagRootNameConstant        = "root"
	flagRootDescriptionConstant = "Rules repository root to inspect"

	indexSectionHeaderConstant         = "=== Rules Index ===\n"
	categoryCountTemplateConstant      = "%s: %d rules\n"
	referenceSectionHeaderConstant     = "\n=== Reference Document Analysis ===\n"
	referenceCountTemplateConstant     = "Rule references: %d\n"
	referenceLanguagesTemplateConstant = "Languages covered: %s\n"
	languagesJoinSeparatorConstant     = ", "
	noLanguagesLabelConstant           = "none"

	rulePathsSectionHeaderConstant    = "\n=== All Rule Paths ===\n"
	rulePathsTotalTemplateConstant    = "Total rule files found: %d\n"
	rulePathItemTemplateConstant      = "  - %s\n"
	rulePathsOverflowTemplateConstant = "  ... and %d more\n"
	rulePathDisplayLimitConstant      = 10

	catalogParsedMessageConstant   = "rules catalog parsed"
	logFieldRepositoryRootConstant = "repository_root"
	logFieldTotalRulesConstant     = "total_rules"
)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the rules cobra command with configurable dependencies.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider func() CommandConfiguration
}

// Build constructs the cobra command summarizing the rules catalog.
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

	loader := NewLoader(configuration.Root)

	parsedCatalog, parseError := loader.ParseIndex()
	if parseError != nil {
		return parseError
	}

	referenceAnalysis, referenceError := loader.ParseReferenceDocument()
	if referenceError != nil {
		return referenceError
	}

	builder.resolveLogger().Info(
		catalogParsedMessageConstant,
		zap.String(logFieldRepositoryRootConstant, configuration.Root),
		zap.Int(logFieldTotalRulesConstant, parsedCatalog.TotalCount()),
	)

	outputWriter := command.OutOrStdout()
	fmt.Fprint(outputWriter, indexSectionHeaderConstant)
	fmt.Fprintf(outputWriter, categoryCountTemplateConstant, CategoryBase, len(parsedCatalog.Base))
	fmt.Fprintf(outputWriter, categoryCountTemplateConstant, CategoryLanguage, len(parsedCatalog.Language))
	fmt.Fprintf(outputWriter, categoryCountTemplateConstant, CategoryFramework, len(parsedCatalog.Framework))
	fmt.Fprintf(outputWriter, categoryCountTemplateConstant, CategoryCloud, len(parsedCatalog.Cloud))

	fmt.Fprint(outputWriter, referenceSectionHeaderConstant)
	fmt.Fprintf(outputWriter, referenceCountTemplateConstant, referenceAnalysis.TotalReferences)
	fmt.Fprintf(outputWriter, referenceLanguagesTemplateConstant, joinLanguages(referenceAnalysis.LanguagesCovered))

	rulePaths := loader.ListRulePaths()
	fmt.Fprint(outputWriter, rulePathsSectionHeaderConstant)
	fmt.Fprintf(outputWriter, rulePathsTotalTemplateConstant, len(rulePaths))

	displayedRulePaths := rulePaths
	if len(displayedRulePaths) > rulePathDisplayLimitConstant {
		displayedRulePaths = displayedRulePaths[:rulePathDisplayLimitConstant]
	}
	for _, rulePath := range displayedRulePaths {
		fmt.Fprintf(outputWriter, rulePathItemTemplateConstant, rulePath)
	}
	if len(rulePaths) > rulePathDisplayLimitConstant {
		fmt.Fprintf(outputWriter, rulePathsOverflowTemplateConstant, len(rulePaths)-rulePathDisplayLimitConstant)
	}

	return nil
}

func joinLanguages(languages []string) string {
	if len(languages) == 0 {
		return noLanguagesLabelConstant
	}
	return strings.Join(languages, languagesJoinSeparatorConstant)
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
