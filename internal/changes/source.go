package changes

import (
	"fmt"
	"strings"
)

// Source names the subset of a change set rendered as a tree.
type Source string

const (
	SourceStaged     Source = "staged"
	SourceChanged    Source = "changed"
	SourceConflicted Source = "conflicted"
	SourceAll        Source = "all"
)

// Sources lists every accepted source in display order.
var Sources = []Source{SourceAll, SourceStaged, SourceChanged, SourceConflicted}

// ParseSource converts user input into a Source.
func ParseSource(input string) (Source, error) {
	normalized := Source(strings.ToLower(strings.TrimSpace(input)))
	for _, source := range Sources {
		if source == normalized {
			return source, nil
		}
	}
	return "", &UnknownSourceError{Value: input}
}

// UnknownSourceError reports an unsupported source name.
type UnknownSourceError struct {
	Value string
}

func (sourceError *UnknownSourceError) Error() string {
	names := make([]string, 0, len(Sources))
	for _, source := range Sources {
		names = append(names, string(source))
	}
	return fmt.Sprintf("%v %q; accepted values: %s", ErrUnknownSource, sourceError.Value, strings.Join(names, ", "))
}

func (sourceError *UnknownSourceError) Unwrap() error {
	return ErrUnknownSource
}
