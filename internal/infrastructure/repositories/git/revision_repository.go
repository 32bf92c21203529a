package git

import (
	"context"
	"errors"
	"fmt"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/buildgraph/internal/domain/repositories"
)

// RevisionRepository reads the checked-out revision of the repository
// enclosing a workspace.
type RevisionRepository struct{}

// NewRevisionRepository creates a go-git backed revision reader.
func NewRevisionRepository() repositories.RevisionRepository {
	return &RevisionRepository{}
}

// Revision returns "<branch>@<hash>" for a branch checkout, the bare hash for
// a detached HEAD and an empty string when dir is not inside a repository or
// the repository has no commits yet.
func (r *RevisionRepository) Revision(ctx context.Context, dir string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	repo, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			logger.Debugf("Workspace %q is not inside a git repository", dir)
			return "", nil
		}
		return "", fmt.Errorf("failed to open repository at %q: %w", dir, err)
	}

	head, err := repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read HEAD: %w", err)
	}

	hash := head.Hash().String()
	if head.Name().IsBranch() {
		return head.Name().Short() + "@" + hash, nil
	}
	return hash, nil
}
