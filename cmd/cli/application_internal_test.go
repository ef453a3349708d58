package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const internalTestIndexDocumentConstant = `{
    "rules": {
        "base": [
            {"name": "Code Quality", "path": "base/code-quality.md"}
        ]
    }
}`

func writeInternalTestFile(testInstance *testing.T, rootDirectory string, relativePath string, content string) {
	testInstance.Helper()
	fullPath := filepath.Join(rootDirectory, filepath.FromSlash(relativePath))
	require.NoError(testInstance, os.MkdirAll(filepath.Dir(fullPath), 0o755))
	require.NoError(testInstance, os.WriteFile(fullPath, []byte(content), 0o644))
}

func TestNewApplicationRegistersSubcommands(testInstance *testing.T) {
	application := NewApplication()

	registeredCommandNames := map[string]bool{}
	for _, registeredCommand := range application.rootCommand.Commands() {
		registeredCommandNames[registeredCommand.Name()] = true
	}

	require.True(testInstance, registeredCommandNames["audit"])
	require.True(testInstance, registeredCommandNames["rules"])
	require.True(testInstance, registeredCommandNames["mece"])
}

func TestApplicationExecutesRulesCommandWithConfigurationFile(testInstance *testing.T) {
	rulesRoot := testInstance.TempDir()
	writeInternalTestFile(testInstance, rulesRoot, ".claude/rules/index.json", internalTestIndexDocumentConstant)

	configurationDirectory := testInstance.TempDir()
	configurationPath := filepath.Join(configurationDirectory, "config.yaml")
	configurationContent := "common:\n  log_level: error\n  log_format: structured\ntools:\n  rules:\n    root: " + rulesRoot + "\n"
	require.NoError(testInstance, os.WriteFile(configurationPath, []byte(configurationContent), 0o644))

	application := NewApplication()
	outputBuffer := &bytes.Buffer{}
	application.rootCommand.SetOut(outputBuffer)
	application.rootCommand.SetErr(outputBuffer)
	application.rootCommand.SetArgs([]string{"--config", configurationPath, "rules"})

	require.NoError(testInstance, application.Execute())
	require.Contains(testInstance, outputBuffer.String(), "=== Rules Index ===")
	require.Contains(testInstance, outputBuffer.String(), "base: 1 rules")
	require.Equal(testInstance, configurationPath, application.configurationMetadata.ConfigFileUsed)
}

func TestApplicationRootCommandPrintsHelpWithoutArguments(testInstance *testing.T) {
	application := NewApplication()
	outputBuffer := &bytes.Buffer{}
	application.rootCommand.SetOut(outputBuffer)
	application.rootCommand.SetErr(outputBuffer)
	application.rootCommand.SetArgs([]string{})

	require.NoError(testInstance, application.Execute())
	require.Contains(testInstance, outputBuffer.String(), "Usage:")
	require.Contains(testInstance, outputBuffer.String(), "audit")
}

func TestApplicationPersistentFlagsOverrideConfiguration(testInstance *testing.T) {
	rulesRoot := testInstance.TempDir()

	application := NewApplication()
	outputBuffer := &bytes.Buffer{}
	application.rootCommand.SetOut(outputBuffer)
	application.rootCommand.SetErr(outputBuffer)
	application.rootCommand.SetArgs([]string{"--log-level", "error", "--log-format", "console", "rules", "--root", rulesRoot})

	require.NoError(testInstance, application.Execute())
	require.Equal(testInstance, "error", application.configuration.Common.LogLevel)
	require.Equal(testInstance, "console", application.configuration.Common.LogFormat)
}

func TestApplicationEnvironmentOverridesLogLevel(testInstance *testing.T) {
	testInstance.Setenv("RULEAUDIT_COMMON_LOG_LEVEL", "warn")

	rulesRoot := testInstance.TempDir()

	application := NewApplication()
	outputBuffer := &bytes.Buffer{}
	application.rootCommand.SetOut(outputBuffer)
	application.rootCommand.SetErr(outputBuffer)
	application.rootCommand.SetArgs([]string{"rules", "--root", rulesRoot})

	require.NoError(testInstance, application.Execute())
	require.Equal(testInstance, "warn", application.configuration.Common.LogLevel)
}

func TestApplicationRejectsUnsupportedLogLevel(testInstance *testing.T) {
	application := NewApplication()
	application.rootCommand.SetOut(&bytes.Buffer{})
	application.rootCommand.SetErr(&bytes.Buffer{})
	application.rootCommand.SetArgs([]string{"--log-level", "verbose", "rules"})

	executionError := application.Execute()
	require.Error(testInstance, executionError)
	require.Contains(testInstance, executionError.Error(), "unable to create logger")
}
