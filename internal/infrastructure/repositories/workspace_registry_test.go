//go:build unit

package repositories_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/buildgraph/internal/infrastructure/repositories"
	doubles "github.com/rios0rios0/buildgraph/test/infrastructure/repositorydoubles"
)

func TestWorkspaceRegistry(t *testing.T) {
	t.Parallel()

	t.Run("should keep registration order and replace loaders by name", func(t *testing.T) {
		t.Parallel()

		// given
		registry := repositories.NewWorkspaceRegistry()
		first := &doubles.SpyWorkspaceRepository{LoaderName: "yaml"}
		second := &doubles.SpyWorkspaceRepository{LoaderName: "hcl"}
		replacement := &doubles.SpyWorkspaceRepository{LoaderName: "yaml"}

		// when
		registry.Register(first)
		registry.Register(second)
		registry.Register(replacement)

		// then
		assert.Equal(t, []string{"yaml", "hcl"}, registry.Names())
		assert.Same(t, replacement, registry.Get("yaml"))
		assert.Nil(t, registry.Get("toml"))
		assert.Len(t, registry.All(), 2)
	})

	t.Run("should load with the first loader that detects a manifest", func(t *testing.T) {
		t.Parallel()

		// given
		workspace := &doubles.StubWorkspace{RootDir: "/repo"}
		skipped := &doubles.SpyWorkspaceRepository{LoaderName: "yaml"}
		matching := &doubles.SpyWorkspaceRepository{
			LoaderName:   "hcl",
			DetectResult: true,
			ManifestPath: "/repo/workspace.hcl",
			Workspace:    workspace,
		}
		registry := repositories.NewWorkspaceRegistry()
		registry.Register(skipped)
		registry.Register(matching)

		// when
		loaded, err := registry.Load(context.Background(), "/repo")

		// then
		require.NoError(t, err)
		assert.Same(t, workspace, loaded)
		assert.Equal(t, []string{"/repo"}, skipped.DetectedPaths)
		assert.Empty(t, skipped.LoadCalls)
		assert.Equal(t, []string{"/repo/workspace.hcl"}, matching.LoadCalls)
	})

	t.Run("should wrap the loader error", func(t *testing.T) {
		t.Parallel()

		// given
		loadErr := errors.New("syntax error")
		registry := repositories.NewWorkspaceRegistry()
		registry.Register(&doubles.SpyWorkspaceRepository{
			LoaderName:   "yaml",
			DetectResult: true,
			ManifestPath: "/repo/workspace.yaml",
			LoadErr:      loadErr,
		})

		// when
		_, err := registry.Load(context.Background(), "/repo")

		// then
		require.ErrorIs(t, err, loadErr)
		assert.Contains(t, err.Error(), "yaml")
	})

	t.Run("should return ErrNoLoader when nothing detects a manifest", func(t *testing.T) {
		t.Parallel()

		// given
		registry := repositories.NewWorkspaceRegistry()
		registry.Register(&doubles.SpyWorkspaceRepository{LoaderName: "yaml"})

		// when
		_, err := registry.Load(context.Background(), "/nowhere")

		// then
		require.ErrorIs(t, err, repositories.ErrNoLoader)
		assert.Contains(t, err.Error(), "/nowhere")
	})
}
