package catalog

import "strings"

const (
	configurationRootKeyConstant  = "root"
	defaultRepositoryRootConstant = "."
)

// CommandConfiguration captures persistent settings for the rules command.
type CommandConfiguration struct {
	Root string `mapstructure:"root"`
}

// DefaultCommandConfiguration returns baseline configuration values for the rules command.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{Root: defaultRepositoryRootConstant}
}

// DefaultConfigurationValues exposes configuration defaults keyed under the provided prefix.
func DefaultConfigurationValues(configurationPrefix string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		configurationPrefix + "." + configurationRootKeyConstant: defaults.Root,
	}
}

func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.Root = strings.TrimSpace(configuration.Root)
	if len(sanitized.Root) == 0 {
		sanitized.Root = defaultRepositoryRootConstant
	}
	return sanitized
}
