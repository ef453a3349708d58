package utils_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rulekit/ruleaudit/internal/utils"
)

func TestCommandContextAccessorRoundTrip(testInstance *testing.T) {
	accessor := utils.NewCommandContextAccessor()

	updatedContext := accessor.WithConfigurationFilePath(context.Background(), "/etc/ruleaudit/config.yaml")

	configurationFilePath, configurationFilePathAvailable := accessor.ConfigurationFilePath(updatedContext)
	require.True(testInstance, configurationFilePathAvailable)
	require.Equal(testInstance, "/etc/ruleaudit/config.yaml", configurationFilePath)
}

func TestCommandContextAccessorToleratesNilParentContext(testInstance *testing.T) {
	accessor := utils.NewCommandContextAccessor()

	updatedContext := accessor.WithConfigurationFilePath(nil, "config.yaml")

	configurationFilePath, configurationFilePathAvailable := accessor.ConfigurationFilePath(updatedContext)
	require.True(testInstance, configurationFilePathAvailable)
	require.Equal(testInstance, "config.yaml", configurationFilePath)
}

func TestCommandContextAccessorReportsMissingValue(testInstance *testing.T) {
	accessor := utils.NewCommandContextAccessor()

	configurationFilePath, configurationFilePathAvailable := accessor.ConfigurationFilePath(context.Background())
	require.False(testInstance, configurationFilePathAvailable)
	require.Empty(testInstance, configurationFilePath)

	configurationFilePath, configurationFilePathAvailable = accessor.ConfigurationFilePath(nil)
	require.False(testInstance, configurationFilePathAvailable)
	require.Empty(testInstance, configurationFilePath)
}
