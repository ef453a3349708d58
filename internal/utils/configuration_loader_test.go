package utils_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rulekit/ruleaudit/internal/utils"
)

type loaderTestConfiguration struct {
	Common struct {
		LogLevel string `mapstructure:"log_level"`
	} `mapstructure:"common"`
	Audit struct {
		Depth string `mapstructure:"depth"`
	} `mapstructure:"audit"`
}

func TestLoadConfigurationScenarios(testInstance *testing.T) {
	testCases := []struct {
		name              string
		configurationBody string
		defaultValues     map[string]any
		environment       map[string]string
		expectedLogLevel  string
		expectedDepth     string
	}{
		{
			name:              "defaults_apply_without_file",
			configurationBody: "",
			defaultValues: map[string]any{
				"common.log_level": "info",
				"audit.depth":      "standard",
			},
			expectedLogLevel: "info",
			expectedDepth:    "standard",
		},
		{
			name:              "file_overrides_defaults",
			configurationBody: "common:\n  log_level: debug\naudit:\n  depth: full\n",
			defaultValues: map[string]any{
				"common.log_level": "info",
				"audit.depth":      "standard",
			},
			expectedLogLevel: "debug",
			expectedDepth:    "full",
		},
		{
			name:              "environment_overrides_file",
			configurationBody: "common:\n  log_level: debug\n",
			defaultValues: map[string]any{
				"common.log_level": "info",
				"audit.depth":      "standard",
			},
			environment: map[string]string{
				"RULEAUDIT_COMMON_LOG_LEVEL": "warn",
			},
			expectedLogLevel: "warn",
			expectedDepth:    "standard",
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf("%d_%s", testCaseIndex, testCase.name), func(testInstance *testing.T) {
			for environmentKey, environmentValue := range testCase.environment {
				testInstance.Setenv(environmentKey, environmentValue)
			}

			configurationFilePath := ""
			if len(testCase.configurationBody) > 0 {
				configurationFilePath = filepath.Join(testInstance.TempDir(), "config.yaml")
				require.NoError(testInstance, os.WriteFile(configurationFilePath, []byte(testCase.configurationBody), 0o644))
			}

			loader := utils.NewConfigurationLoader("config", "yaml", "RULEAUDIT", []string{"."})

			var configuration loaderTestConfiguration
			loadedConfiguration, loadError := loader.LoadConfiguration(configurationFilePath, testCase.defaultValues, &configuration)
			require.NoError(testInstance, loadError)

			require.Equal(testInstance, testCase.expectedLogLevel, configuration.Common.LogLevel)
			require.Equal(testInstance, testCase.expectedDepth, configuration.Audit.Depth)

			if len(testCase.configurationBody) > 0 {
				require.Equal(testInstance, configurationFilePath, loadedConfiguration.ConfigFileUsed)
			}
		})
	}
}

func TestLoadConfigurationRejectsMalformedFile(testInstance *testing.T) {
	configurationFilePath := filepath.Join(testInstance.TempDir(), "config.yaml")
	require.NoError(testInstance, os.WriteFile(configurationFilePath, []byte(":\n  - broken"), 0o644))

	loader := utils.NewConfigurationLoader("config", "yaml", "RULEAUDIT", []string{"."})

	var configuration loaderTestConfiguration
	_, loadError := loader.LoadConfiguration(configurationFilePath, nil, &configuration)
	require.Error(testInstance, loadError)
}
