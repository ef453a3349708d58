package flags_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rulekit/ruleaudit/internal/utils/flags"
)

func TestFormatChoiceUsage(testInstance *testing.T) {
	testCases := []struct {
		name          string
		defaultChoice string
		choices       []string
		description   string
		expectedUsage string
	}{
		{
			name:          "default_highlighted",
			defaultChoice: "standard",
			choices:       []string{"quick", "standard", "full"},
			description:   "Audit depth.",
			expectedUsage: "`<quick|STANDARD|full>` Audit depth.",
		},
		{
			name:          "empty_description",
			defaultChoice: "quick",
			choices:       []string{"quick", "full"},
			description:   "",
			expectedUsage: "`<QUICK|full>`",
		},
		{
			name:          "duplicates_removed",
			defaultChoice: "full",
			choices:       []string{"full", "Full", "quick"},
			description:   "Depth.",
			expectedUsage: "`<FULL|quick>` Depth.",
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf("%d_%s", testCaseIndex, testCase.name), func(testInstance *testing.T) {
			usage := flags.FormatChoiceUsage(testCase.defaultChoice, testCase.choices, testCase.description)
			require.Equal(testInstance, testCase.expectedUsage, usage)
		})
	}
}
