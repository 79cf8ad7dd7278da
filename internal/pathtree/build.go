package pathtree

import (
	"fmt"
	"strings"
)

const errorSimplifyFormat = "simplifying tree: %w"

// Build groups records by path segments, collapses single subdirectory
// chains and orders siblings. The records slice is not modified. Paths must
// be unique and well formed; otherwise a *PathError is returned and no tree
// is produced.
func Build[T any](records []Record[T]) ([]Node[T], error) {
	if validationError := ValidateRecords(records); validationError != nil {
		return nil, validationError
	}
	workingSet := make([]int, len(records))
	for index := range records {
		workingSet[index] = index
	}
	tree := groupRecords(records, workingSet, 0)
	simplified, simplifyError := Simplify(tree)
	if simplifyError != nil {
		return nil, fmt.Errorf(errorSimplifyFormat, simplifyError)
	}
	return simplified, nil
}

// ValidateRecords rejects malformed and duplicate paths.
func ValidateRecords[T any](records []Record[T]) error {
	firstIndexByPath := make(map[string]int, len(records))
	for index, record := range records {
		if reason := malformedReason(record.Path); reason != "" {
			return &PathError{Err: ErrMalformedPath, Path: record.Path, Index: index, Reason: reason}
		}
		if firstIndex, seen := firstIndexByPath[record.Path]; seen {
			return &PathError{
				Err:    ErrDuplicatePath,
				Path:   record.Path,
				Index:  index,
				Reason: fmt.Sprintf(reasonDuplicateOfIndex, firstIndex),
			}
		}
		firstIndexByPath[record.Path] = index
	}
	return nil
}

func malformedReason(path string) string {
	switch {
	case path == "":
		return reasonEmptyPath
	case strings.HasPrefix(path, PathSeparator):
		return reasonLeadingSlash
	case strings.HasSuffix(path, PathSeparator):
		return reasonTrailingSlash
	case strings.Contains(path, PathSeparator+PathSeparator):
		return reasonEmptySegment
	default:
		return ""
	}
}

// groupRecords builds the raw tree for the records referenced by workingSet,
// all of which share the first prefixLength bytes of their path.
func groupRecords[T any](records []Record[T], workingSet []int, prefixLength int) []Node[T] {
	nodes := make([]Node[T], 0, len(workingSet))
	for len(workingSet) > 0 {
		first := records[workingSet[0]]
		restPath := first.Path[prefixLength:]
		separatorIndex := strings.Index(restPath, PathSeparator)
		if separatorIndex < 0 {
			nodes = append(nodes, &Leaf[T]{
				Title: restPath,
				Path:  first.Path,
				Data:  first.Data,
			})
			workingSet = workingSet[1:]
			continue
		}

		title := restPath[:separatorIndex]
		directoryPrefix := title + PathSeparator
		matched := make([]int, 0, len(workingSet))
		remaining := make([]int, 0, len(workingSet))
		for _, recordIndex := range workingSet {
			if strings.HasPrefix(records[recordIndex].Path[prefixLength:], directoryPrefix) {
				matched = append(matched, recordIndex)
			} else {
				remaining = append(remaining, recordIndex)
			}
		}
		workingSet = remaining

		nodes = append(nodes, &Directory[T]{
			Title:    title,
			Path:     first.Path[:prefixLength+separatorIndex],
			Children: groupRecords(records, matched, prefixLength+len(directoryPrefix)),
		})
	}
	return nodes
}
