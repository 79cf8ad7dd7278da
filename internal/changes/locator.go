package changes

import (
	"strings"

	"github.com/samber/lo"

	"github.com/temirov/changetree/internal/pathtree"
)

// Locator maps repository paths to vault paths. The vault is the directory
// the user works in; BasePath is the location of the repository inside it.
type Locator struct {
	BasePath string
}

// NewLocator normalizes basePath, dropping surrounding separators.
func NewLocator(basePath string) Locator {
	return Locator{BasePath: strings.Trim(strings.TrimSpace(basePath), pathtree.PathSeparator)}
}

// VaultPath returns the vault path of a repository relative path.
func (locator Locator) VaultPath(path string) string {
	if locator.BasePath == "" {
		return path
	}
	return locator.BasePath + pathtree.PathSeparator + path
}

// RepositoryRelativePath converts path to a repository relative path.
// Paths not relative to the vault are returned unchanged.
func (locator Locator) RepositoryRelativePath(path string, relativeToVault bool) string {
	if !relativeToVault || locator.BasePath == "" {
		return path
	}
	return strings.TrimPrefix(path, locator.BasePath+pathtree.PathSeparator)
}

// RepositoryRelative rewrites every path with RepositoryRelativePath. The
// input is not modified.
func (locator Locator) RepositoryRelative(files []FileStatus, relativeToVault bool) []FileStatus {
	return lo.Map(files, func(file FileStatus, _ int) FileStatus {
		file.Path = locator.RepositoryRelativePath(file.Path, relativeToVault)
		return file
	})
}

// Annotate fills VaultPath for every file.
func (locator Locator) Annotate(files []FileStatus) []FileStatus {
	return lo.Map(files, func(file FileStatus, _ int) FileStatus {
		file.VaultPath = locator.VaultPath(file.Path)
		return file
	})
}

// Records converts files into tree builder input keyed by repository path.
func Records(files []FileStatus) []pathtree.Record[FileStatus] {
	return lo.Map(files, func(file FileStatus, _ int) pathtree.Record[FileStatus] {
		return pathtree.Record[FileStatus]{Path: file.Path, Data: file}
	})
}
