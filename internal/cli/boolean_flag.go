package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	booleanFlagTypeName       = "toggle"
	booleanFlagTrueLiteral    = "true"
	booleanFlagAcceptedValues = "true, false, yes, no, on, off, 1, 0"
	booleanFlagInvalidFormat  = "invalid value %q for --%s; accepted values: %s"
	flagPrefix                = "--"
	flagTerminator            = "--"
)

var booleanFlagLiterals = map[string]bool{
	"true":  true,
	"yes":   true,
	"on":    true,
	"1":     true,
	"false": false,
	"no":    false,
	"off":   false,
	"0":     false,
}

func parseBooleanLiteral(input string) (bool, bool) {
	parsed, known := booleanFlagLiterals[strings.ToLower(strings.TrimSpace(input))]
	return parsed, known
}

// toggleFlagValue is a boolean flag that also accepts yes/no and on/off.
type toggleFlagValue struct {
	target *bool
	name   string
}

func (value *toggleFlagValue) Set(input string) error {
	if strings.TrimSpace(input) == "" {
		input = booleanFlagTrueLiteral
	}
	parsed, known := parseBooleanLiteral(input)
	if !known {
		return fmt.Errorf(booleanFlagInvalidFormat, input, value.name, booleanFlagAcceptedValues)
	}
	*value.target = parsed
	return nil
}

func (value *toggleFlagValue) String() string {
	if value == nil || value.target == nil {
		return strconv.FormatBool(false)
	}
	return strconv.FormatBool(*value.target)
}

func (value *toggleFlagValue) Type() string {
	return booleanFlagTypeName
}

func registerBooleanFlag(flagSet *pflag.FlagSet, target *bool, name string, defaultValue bool, usage string) {
	if flagSet == nil || target == nil {
		return
	}
	*target = defaultValue
	flagSet.Var(&toggleFlagValue{target: target, name: name}, name, usage)
	if lookup := flagSet.Lookup(name); lookup != nil {
		lookup.DefValue = strconv.FormatBool(defaultValue)
		lookup.NoOptDefVal = booleanFlagTrueLiteral
	}
}

// normalizeBooleanFlagArguments joins "--flag value" into "--flag=value" for
// toggle flags followed by a boolean literal. pflag only reads optional values
// written with an equals sign.
func normalizeBooleanFlagArguments(command *cobra.Command, arguments []string) []string {
	toggleNames := map[string]struct{}{}
	collectBooleanFlagNames(command, toggleNames)
	if len(toggleNames) == 0 {
		return arguments
	}
	normalized := make([]string, 0, len(arguments))
	for index := 0; index < len(arguments); index++ {
		argument := arguments[index]
		if argument == flagTerminator {
			normalized = append(normalized, arguments[index:]...)
			break
		}
		flagName, isLongFlag := strings.CutPrefix(argument, flagPrefix)
		if isLongFlag && !strings.Contains(flagName, "=") && index+1 < len(arguments) {
			if _, isToggle := toggleNames[flagName]; isToggle {
				if _, known := parseBooleanLiteral(arguments[index+1]); known {
					normalized = append(normalized, argument+"="+arguments[index+1])
					index++
					continue
				}
			}
		}
		normalized = append(normalized, argument)
	}
	return normalized
}

func collectBooleanFlagNames(command *cobra.Command, target map[string]struct{}) {
	if command == nil {
		return
	}
	visit := func(flag *pflag.Flag) {
		if flag.Value != nil && flag.Value.Type() == booleanFlagTypeName {
			target[flag.Name] = struct{}{}
		}
	}
	command.PersistentFlags().VisitAll(visit)
	command.Flags().VisitAll(visit)
	for _, child := range command.Commands() {
		collectBooleanFlagNames(child, target)
	}
}
