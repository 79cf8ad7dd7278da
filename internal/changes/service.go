package changes

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-git/go-git/v6"
	"go.uber.org/zap"
)

// StatusReader reads the change set of a repository.
type StatusReader interface {
	Status(ctx context.Context, repositoryPath string) (Status, error)
}

// Service reads working tree status with go-git.
type Service struct {
	logger *zap.Logger
}

// NewService creates a new Service.
func NewService(logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		logger: logger,
	}
}

// Status opens the repository containing repositoryPath and classifies its
// changed files.
func (s *Service) Status(ctx context.Context, repositoryPath string) (Status, error) {
	s.logger.Debug("reading repository status",
		zap.String("path", repositoryPath))

	if err := ctx.Err(); err != nil {
		return Status{}, err
	}

	repo, err := git.PlainOpenWithOptions(repositoryPath, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		s.logger.Debug("failed to open repository", zap.String("path", repositoryPath), zap.Error(err))
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return Status{}, fmt.Errorf("%w: %s", ErrRepositoryNotFound, repositoryPath)
		}
		return Status{}, fmt.Errorf("%w: %w", ErrInvalidRepository, err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		s.logger.Debug("failed to get worktree", zap.String("path", repositoryPath), zap.Error(err))
		return Status{}, fmt.Errorf("%w: %w", ErrInvalidRepository, err)
	}

	worktreeStatus, err := worktree.Status()
	if err != nil {
		s.logger.Debug("failed to read worktree status", zap.String("path", repositoryPath), zap.Error(err))
		return Status{}, fmt.Errorf("%w: %w", ErrStatusFailed, err)
	}

	if err := ctx.Err(); err != nil {
		return Status{}, err
	}

	files := make([]FileStatus, 0, len(worktreeStatus))
	for path, fileStatus := range worktreeStatus {
		if fileStatus == nil {
			continue
		}
		if fileStatus.Staging == git.Unmodified && fileStatus.Worktree == git.Unmodified {
			continue
		}
		files = append(files, FileStatus{
			Path:       path,
			From:       fileStatus.Extra,
			Index:      string(rune(fileStatus.Staging)),
			WorkingDir: string(rune(fileStatus.Worktree)),
		})
	}

	status := NewStatus(files)

	s.logger.Debug("repository status read",
		zap.String("path", repositoryPath),
		zap.Int("staged", len(status.Staged)),
		zap.Int("changed", len(status.Changed)),
		zap.Int("conflicted", len(status.Conflicted)))

	return status, nil
}

var _ StatusReader = (*Service)(nil)
