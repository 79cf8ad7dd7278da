package cli

import (
	"github.com/spf13/pflag"

	"github.com/temirov/changetree/internal/changes"
)

const sourceFlagTypeName = "source"

// sourceFlagValue parses --source into a changes.Source.
type sourceFlagValue struct {
	target *changes.Source
}

func (value *sourceFlagValue) Set(input string) error {
	parsed, parseError := changes.ParseSource(input)
	if parseError != nil {
		return parseError
	}
	*value.target = parsed
	return nil
}

func (value *sourceFlagValue) String() string {
	if value == nil || value.target == nil {
		return string(changes.SourceAll)
	}
	return string(*value.target)
}

func (value *sourceFlagValue) Type() string {
	return sourceFlagTypeName
}

func registerSourceFlag(flagSet *pflag.FlagSet, target *changes.Source, name string, defaultValue changes.Source, usage string) {
	if flagSet == nil || target == nil {
		return
	}
	*target = defaultValue
	flagSet.Var(&sourceFlagValue{target: target}, name, usage)
	if lookup := flagSet.Lookup(name); lookup != nil {
		lookup.DefValue = string(defaultValue)
	}
}
