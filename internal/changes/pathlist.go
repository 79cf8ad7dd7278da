package changes

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

const (
	pathListCommentPrefix  = "#"
	currentDirectoryPrefix = "./"
)

// ParsePathList reads newline separated paths. Blank lines and lines starting
// with # are skipped, a leading ./ is removed and backslashes become forward
// slashes. Each path yields a FileStatus without status codes.
func ParsePathList(reader io.Reader) ([]FileStatus, error) {
	var files []FileStatus
	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, pathListCommentPrefix) {
			continue
		}
		path := strings.ReplaceAll(line, "\\", "/")
		for strings.HasPrefix(path, currentDirectoryPrefix) {
			path = strings.TrimPrefix(path, currentDirectoryPrefix)
		}
		files = append(files, FileStatus{Path: path})
	}
	if scanError := scanner.Err(); scanError != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadPathList, scanError)
	}
	return files, nil
}
