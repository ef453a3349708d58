package audit

import "strings"

const (
	configurationRootKeyConstant        = "root"
	configurationDepthKeyConstant       = "depth"
	configurationOutputKeyConstant      = "output"
	configurationCitationsKeyConstant   = "citations"
	configurationDispositionKeyConstant = "disposition"
	configurationMaxTasksKeyConstant    = "max_tasks_per_finding"

	defaultRepositoryRootConstant     = "."
	defaultMaxTasksPerFindingConstant = 3
)

// CommandConfiguration captures persistent settings for the audit command.
type CommandConfiguration struct {
	Root               string `mapstructure:"root"`
	Depth              string `mapstructure:"depth"`
	Output             string `mapstructure:"output"`
	Citations          bool   `mapstructure:"citations"`
	Disposition        bool   `mapstructure:"disposition"`
	MaxTasksPerFinding int    `mapstructure:"max_tasks_per_finding"`
}

// DefaultCommandConfiguration returns baseline configuration values for the audit command.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		Root:               defaultRepositoryRootConstant,
		Depth:              string(DepthStandard),
		Output:             "",
		Citations:          true,
		Disposition:        true,
		MaxTasksPerFinding: defaultMaxTasksPerFindingConstant,
	}
}

// DefaultConfigurationValues exposes configuration defaults keyed under the provided prefix.
func DefaultConfigurationValues(configurationPrefix string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		configurationPrefix + "." + configurationRootKeyConstant:        defaults.Root,
		configurationPrefix + "." + configurationDepthKeyConstant:       defaults.Depth,
		configurationPrefix + "." + configurationOutputKeyConstant:      defaults.Output,
		configurationPrefix + "." + configurationCitationsKeyConstant:   defaults.Citations,
		configurationPrefix + "." + configurationDispositionKeyConstant: defaults.Disposition,
		configurationPrefix + "." + configurationMaxTasksKeyConstant:    defaults.MaxTasksPerFinding,
	}
}

func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.Root = strings.TrimSpace(configuration.Root)
	if len(sanitized.Root) == 0 {
		sanitized.Root = defaultRepositoryRootConstant
	}
	sanitized.Depth = strings.ToLower(strings.TrimSpace(configuration.Depth))
	if len(sanitized.Depth) == 0 {
		sanitized.Depth = string(DepthStandard)
	}
	sanitized.Output = strings.TrimSpace(configuration.Output)
	if sanitized.MaxTasksPerFinding <= 0 {
		sanitized.MaxTasksPerFinding = defaultMaxTasksPerFindingConstant
	}
	return sanitized
}
