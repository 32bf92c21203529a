//go:build unit

package git_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/buildgraph/internal/infrastructure/repositories/git"
)

func commitFile(t *testing.T, repo *gogit.Repository, dir string) string {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "workspace.yaml"), []byte("modules: []\n"), 0o600))

	worktree, err := repo.Worktree()
	require.NoError(t, err)
	_, err = worktree.Add("workspace.yaml")
	require.NoError(t, err)

	hash, err := worktree.Commit("initial", &gogit.CommitOptions{
		Author: &object.Signature{Name: "dev", Email: "dev@example.com", When: time.Now()},
	})
	require.NoError(t, err)
	return hash.String()
}

func TestRevision(t *testing.T) {
	t.Parallel()

	t.Run("should return branch and hash of the enclosing repository", func(t *testing.T) {
		t.Parallel()

		// given
		dir := t.TempDir()
		repo, err := gogit.PlainInit(dir, false)
		require.NoError(t, err)
		hash := commitFile(t, repo, dir)
		head, err := repo.Head()
		require.NoError(t, err)
		nested := filepath.Join(dir, "modules", "core")
		require.NoError(t, os.MkdirAll(nested, 0o755))

		// when
		revision, revErr := git.NewRevisionRepository().Revision(context.Background(), nested)

		// then
		require.NoError(t, revErr)
		assert.Equal(t, head.Name().Short()+"@"+hash, revision)
	})

	t.Run("should return the bare hash for a detached HEAD", func(t *testing.T) {
		t.Parallel()

		// given
		dir := t.TempDir()
		repo, err := gogit.PlainInit(dir, false)
		require.NoError(t, err)
		hash := commitFile(t, repo, dir)
		worktree, err := repo.Worktree()
		require.NoError(t, err)
		require.NoError(t, worktree.Checkout(&gogit.CheckoutOptions{Hash: mustHash(t, repo)}))

		// when
		revision, revErr := git.NewRevisionRepository().Revision(context.Background(), dir)

		// then
		require.NoError(t, revErr)
		assert.Equal(t, hash, revision)
	})

	t.Run("should return an empty revision outside a repository", func(t *testing.T) {
		t.Parallel()

		// given
		dir := t.TempDir()

		// when
		revision, err := git.NewRevisionRepository().Revision(context.Background(), dir)

		// then
		require.NoError(t, err)
		assert.Empty(t, revision)
	})

	t.Run("should return an empty revision for a repository without commits", func(t *testing.T) {
		t.Parallel()

		// given
		dir := t.TempDir()
		_, err := gogit.PlainInit(dir, false)
		require.NoError(t, err)

		// when
		revision, revErr := git.NewRevisionRepository().Revision(context.Background(), dir)

		// then
		require.NoError(t, revErr)
		assert.Empty(t, revision)
	})
}

func mustHash(t *testing.T, repo *gogit.Repository) plumbing.Hash {
	t.Helper()
	head, err := repo.Head()
	require.NoError(t, err)
	return head.Hash()
}
