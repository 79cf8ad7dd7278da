package changes

import "errors"

var (
	ErrRepositoryNotFound = errors.New("repository not found")
	ErrInvalidRepository  = errors.New("invalid repository")
	ErrStatusFailed       = errors.New("failed to read repository status")
	ErrUnknownSource      = errors.New("unknown source")
	ErrReadPathList       = errors.New("failed to read path list")
)
