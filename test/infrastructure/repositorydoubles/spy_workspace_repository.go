//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/buildgraph/internal/domain/repositories"
)

// SpyWorkspaceRepository implements repositories.WorkspaceRepository as a configurable spy.
type SpyWorkspaceRepository struct {
	// --- identity ---
	LoaderName string

	// --- Detect ---
	DetectResult  bool
	ManifestPath  string
	DetectedPaths []string

	// --- Load ---
	Workspace repositories.Workspace
	LoadErr   error
	LoadCalls []string
}

var _ repositories.WorkspaceRepository = (*SpyWorkspaceRepository)(nil)

func (s *SpyWorkspaceRepository) Name() string { return s.LoaderName }

func (s *SpyWorkspaceRepository) Detect(path string) (string, bool) {
	s.DetectedPaths = append(s.DetectedPaths, path)
	return s.ManifestPath, s.DetectResult
}

func (s *SpyWorkspaceRepository) Load(_ context.Context, manifestPath string) (repositories.Workspace, error) {
	s.LoadCalls = append(s.LoadCalls, manifestPath)
	return s.Workspace, s.LoadErr
}
