// Package changes reads the change set of a git working tree and prepares it
// for tree building.
package changes

import (
	"sort"

	"github.com/samber/lo"
)

// Porcelain status codes as reported for the index and the working tree.
const (
	CodeUnmodified = " "
	CodeUntracked  = "?"
	CodeModified   = "M"
	CodeAdded      = "A"
	CodeDeleted    = "D"
	CodeRenamed    = "R"
	CodeCopied     = "C"
	CodeUnmerged   = "U"
)

// FileStatus describes one changed file.
type FileStatus struct {
	Path       string // repository relative, slash separated
	VaultPath  string // path prefixed with the configured base path
	From       string // previous path for renames and copies
	Index      string // status code in the index
	WorkingDir string // status code in the working tree
}

// IsStaged reports whether the file has changes recorded in the index.
func (status FileStatus) IsStaged() bool {
	return status.Index != CodeUnmodified && status.Index != CodeUntracked && status.Index != ""
}

// IsChanged reports whether the working tree differs from the index.
func (status FileStatus) IsChanged() bool {
	return status.WorkingDir != CodeUnmodified && status.WorkingDir != ""
}

// IsConflicted reports whether the file is in an unmerged state.
func (status FileStatus) IsConflicted() bool {
	return status.Index == CodeUnmerged || status.WorkingDir == CodeUnmerged
}

// Code returns the two character porcelain code, for example "M " or "??".
func (status FileStatus) Code() string {
	return lo.Ternary(status.Index == "", CodeUnmodified, status.Index) +
		lo.Ternary(status.WorkingDir == "", CodeUnmodified, status.WorkingDir)
}

// Status is the change set of a repository split by area.
type Status struct {
	Staged     []FileStatus
	Changed    []FileStatus
	Conflicted []FileStatus
}

// NewStatus classifies files into the staged, changed and conflicted sets.
// A file can belong to more than one set.
func NewStatus(files []FileStatus) Status {
	sorted := append([]FileStatus(nil), files...)
	sort.Slice(sorted, func(left, right int) bool {
		return sorted[left].Path < sorted[right].Path
	})
	return Status{
		Staged:     lo.Filter(sorted, func(file FileStatus, _ int) bool { return file.IsStaged() }),
		Changed:    lo.Filter(sorted, func(file FileStatus, _ int) bool { return file.IsChanged() }),
		Conflicted: lo.Filter(sorted, func(file FileStatus, _ int) bool { return file.IsConflicted() }),
	}
}

// Select returns the files of the requested source. SourceAll returns every
// file once even when it is both staged and changed.
func (status Status) Select(source Source) ([]FileStatus, error) {
	switch source {
	case SourceStaged:
		return status.Staged, nil
	case SourceChanged:
		return status.Changed, nil
	case SourceConflicted:
		return status.Conflicted, nil
	case SourceAll:
		combined := make([]FileStatus, 0, len(status.Staged)+len(status.Changed)+len(status.Conflicted))
		combined = append(combined, status.Staged...)
		combined = append(combined, status.Changed...)
		combined = append(combined, status.Conflicted...)
		unique := lo.UniqBy(combined, func(file FileStatus) string { return file.Path })
		sort.Slice(unique, func(left, right int) bool {
			return unique[left].Path < unique[right].Path
		})
		return unique, nil
	default:
		return nil, &UnknownSourceError{Value: string(source)}
	}
}
