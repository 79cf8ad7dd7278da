package pathtree

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedPath       = errors.New("malformed path")
	ErrDuplicatePath       = errors.New("duplicate path")
	ErrStructuralInvariant = errors.New("tree structure invariant violated")
)

const (
	reasonEmptyPath        = "path is empty"
	reasonLeadingSlash     = "path starts with a separator"
	reasonTrailingSlash    = "path ends with a separator"
	reasonEmptySegment     = "path contains an empty segment"
	reasonDuplicateOfIndex = "same path as record %d"

	pathErrorFormat = "%s: record %d %q: %s"
)

// PathError describes an input record rejected before building.
type PathError struct {
	Err    error
	Path   string
	Index  int
	Reason string
}

func (pathError *PathError) Error() string {
	return fmt.Sprintf(pathErrorFormat, pathError.Err, pathError.Index, pathError.Path, pathError.Reason)
}

func (pathError *PathError) Unwrap() error {
	return pathError.Err
}
