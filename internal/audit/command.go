package audit

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rulekit/ruleaudit/internal/utils"
	"github.com/rulekit/ruleaudit/internal/utils/flags"
)

const (
	commandNameConstant             = "audit"
	commandShortDescriptionConstant = "Run the depth-gated audit pipeline over a rules repository"
	commandLongDescriptionConstant  = "audit detects the project context, selects applicable rules, and, depending on the configured depth, analyzes content consistency, accuracy, and file disposition before writing a JSON report."

	flagRootNameConstant        = "root"
	flagRootDescriptionConstant = "Rules repository root to audit"

	flagDepthNameConstant        = "depth"
	flagDepthDescriptionConstant = "Audit depth"

	flagOutputNameConstant        = "output"
	flagOutputDescriptionConstant = "Report output path (timestamped file when empty)"

	flagCitationsNameConstant        = "citations"
	flagCitationsDescriptionConstant = "Run the accuracy audit at full depth"

	flagDispositionNameConstant        = "disposition"
	flagDispositionDescriptionConstant = "Classify archived documents at standard depth and above"

	flagMaxTasksNameConstant        = "max-tasks"
	flagMaxTasksDescriptionConstant = "Maximum follow-up tasks recorded per finding"

	reportSavedTemplateConstant = "\nReport saved to: %s\n"

	configurationResolvedMessageConstant = "audit configuration resolved"
	logFieldConfigurationFileConstant    = "configuration_file"
)

var depthChoiceLiterals = []string{string(DepthQuick), string(DepthStandard), string(DepthFull)}

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the audit cobra command with configurable dependencies.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider func() CommandConfiguration
}

// Build constructs the cobra command running the audit pipeline.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	defaults := DefaultCommandConfiguration()

	command := &cobra.Command{
		Use:   commandNameConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		RunE:  builder.run,
	}

	command.Flags().String(flagRootNameConstant, "", flagRootDescriptionConstant)
	command.Flags().String(flagDepthNameConstant, "", flags.FormatChoiceUsage(defaults.Depth, depthChoiceLiterals, flagDepthDescriptionConstant))
	command.Flags().String(flagOutputNameConstant, "", flagOutputDescriptionConstant)
	command.Flags().Int(flagMaxTasksNameConstant, defaults.MaxTasksPerFinding, flagMaxTasksDescriptionConstant)

	citationsTarget := defaults.Citations
	flags.AddToggleFlag(command.Flags(), &citationsTarget, flagCitationsNameConstant, defaults.Citations, flagCitationsDescriptionConstant)

	dispositionTarget := defaults.Disposition
	flags.AddToggleFlag(command.Flags(), &dispositionTarget, flagDispositionNameConstant, defaults.Disposition, flagDispositionDescriptionConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := builder.resolveConfiguration()

	if command.Flags().Changed(flagRootNameConstant) {
		flagRoot, _ := command.Flags().GetString(flagRootNameConstant)
		configuration.Root = flagRoot
	}
	if command.Flags().Changed(flagDepthNameConstant) {
		flagDepth, _ := command.Flags().GetString(flagDepthNameConstant)
		configuration.Depth = flagDepth
	}
	if command.Flags().Changed(flagOutputNameConstant) {
		flagOutput, _ := command.Flags().GetString(flagOutputNameConstant)
		configuration.Output = flagOutput
	}
	if command.Flags().Changed(flagCitationsNameConstant) {
		flagValue := command.Flags().Lookup(flagCitationsNameConstant)
		configuration.Citations = flagValue.Value.String() == "true"
	}
	if command.Flags().Changed(flagDispositionNameConstant) {
		flagValue := command.Flags().Lookup(flagDispositionNameConstant)
		configuration.Disposition = flagValue.Value.String() == "true"
	}
	if command.Flags().Changed(flagMaxTasksNameConstant) {
		flagMaxTasks, _ := command.Flags().GetInt(flagMaxTasksNameConstant)
		configuration.MaxTasksPerFinding = flagMaxTasks
	}
	configuration = configuration.sanitize()

	depth, depthError := ParseDepth(configuration.Depth)
	if depthError != nil {
		return depthError
	}

	commandLogger := builder.resolveLogger()

	contextAccessor := utils.NewCommandContextAccessor()
	configurationFilePath, configurationFilePathAvailable := contextAccessor.ConfigurationFilePath(command.Context())
	if configurationFilePathAvailable && len(strings.TrimSpace(configurationFilePath)) > 0 {
		commandLogger.Info(
			configurationResolvedMessageConstant,
			zap.String(logFieldConfigurationFileConstant, configurationFilePath),
			zap.String(logFieldRepositoryRootConstant, configuration.Root),
			zap.String(logFieldDepthConstant, string(depth)),
		)
	}

	serviceConfiguration := Config{
		Depth:              depth,
		EnableCitations:    configuration.Citations,
		EnableDisposition:  configuration.Disposition,
		MaxTasksPerFinding: configuration.MaxTasksPerFinding,
	}

	service := NewService(configuration.Root, serviceConfiguration, commandLogger, command.OutOrStdout())

	result, runError := service.Run()
	if runError != nil {
		return runError
	}

	reportPath, writeError := service.WriteReport(result, configuration.Output)
	if writeError != nil {
		return writeError
	}

	fmt.Fprintf(command.OutOrStdout(), reportSavedTemplateConstant, reportPath)
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
