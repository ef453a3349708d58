package flags

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

const (
	toggleTrueCanonicalValue               = "true"
	toggleFalseCanonicalValue              = "false"
	toggleParseErrorTemplate               = "invalid toggle value %q"
	toggleArgumentTruePlaceholderConstant  = "<YES|no>"
	toggleArgumentFalsePlaceholderConstant = "<yes|NO>"
	toggleUsageTemplateConstant            = "%s %s"
	toggleValueTypeNameConstant            = "toggle"
)

var trueToggleLiterals = map[string]struct{}{
	"true": {}, "yes": {}, "on": {}, "1": {}, "t": {}, "y": {},
}

var falseToggleLiterals = map[string]struct{}{
	"false": {}, "no": {}, "off": {}, "0": {}, "f": {}, "n": {},
}

// AddToggleFlag registers a boolean flag that accepts yes/no style literal values.
func AddToggleFlag(flagSet *pflag.FlagSet, target *bool, name string, defaultValue bool, usage string) {
	if flagSet == nil || target == nil || len(name) == 0 {
		return
	}

	*target = defaultValue
	flagSet.Var(&toggleFlagValue{target: target}, name, usage)

	registeredFlag := flagSet.Lookup(name)
	if registeredFlag == nil {
		return
	}
	registeredFlag.NoOptDefVal = toggleTrueCanonicalValue
	registeredFlag.Usage = formatToggleUsage(usage, defaultValue)
}

func formatToggleUsage(description string, defaultValue bool) string {
	placeholder := toggleArgumentFalsePlaceholderConstant
	if defaultValue {
		placeholder = toggleArgumentTruePlaceholderConstant
	}
	if len(strings.TrimSpace(description)) == 0 {
		return placeholder
	}
	return fmt.Sprintf(toggleUsageTemplateConstant, placeholder, description)
}

type toggleFlagValue struct {
	target *bool
}

// Set parses the provided literal and stores the boolean result.
func (value *toggleFlagValue) Set(rawValue string) error {
	normalized := strings.ToLower(strings.TrimSpace(rawValue))
	if _, isTrue := trueToggleLiterals[normalized]; isTrue {
		*value.target = true
		return nil
	}
	if _, isFalse := falseToggleLiterals[normalized]; isFalse {
		*value.target = false
		return nil
	}
	return fmt.Errorf(toggleParseErrorTemplate, rawValue)
}

// String renders the canonical literal for the stored boolean.
func (value *toggleFlagValue) String() string {
	if value == nil || value.target == nil || !*value.target {
		return toggleFalseCanonicalValue
	}
	return toggleTrueCanonicalValue
}

// Type reports the flag value type displayed in usage text.
func (value *toggleFlagValue) Type() string {
	return toggleValueTypeNameConstant
}
