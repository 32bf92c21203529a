//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"sync"

	"github.com/rios0rios0/buildgraph/internal/domain/entities"
	"github.com/rios0rios0/buildgraph/internal/domain/repositories"
)

// StubWorkspace implements repositories.Workspace from in-memory maps. It is
// safe for concurrent use once configured.
type StubWorkspace struct {
	RootDir  string
	Archives []string

	// --- ListModules ---
	ModuleList []entities.Module
	ListErr    error

	// --- SourceSetsFor ---
	SourceSets    map[string][]entities.SourceSet
	SourceSetErrs map[string]error

	// --- Resolve ---
	Roots        map[string][]entities.ExternalDependency
	ResolveErrs  map[string]error
	mu           sync.Mutex
	ResolveCalls []string
}

var _ repositories.Workspace = (*StubWorkspace)(nil)

func (s *StubWorkspace) Root() string             { return s.RootDir }
func (s *StubWorkspace) PluginArchives() []string { return s.Archives }

func (s *StubWorkspace) ListModules(_ context.Context) ([]entities.Module, error) {
	return s.ModuleList, s.ListErr
}

func (s *StubWorkspace) SourceSetsFor(_ context.Context, moduleID string) ([]entities.SourceSet, error) {
	if err := s.SourceSetErrs[moduleID]; err != nil {
		return nil, err
	}
	return s.SourceSets[moduleID], nil
}

func (s *StubWorkspace) Resolve(_ context.Context, moduleID string) ([]entities.ExternalDependency, error) {
	s.mu.Lock()
	s.ResolveCalls = append(s.ResolveCalls, moduleID)
	s.mu.Unlock()

	if err := s.ResolveErrs[moduleID]; err != nil {
		return nil, err
	}
	return s.Roots[moduleID], nil
}

// StubWorkspaceLoader implements repositories.WorkspaceLoader returning a fixed workspace.
type StubWorkspaceLoader struct {
	Workspace repositories.Workspace
	LoadErr   error
	LoadPaths []string
}

var _ repositories.WorkspaceLoader = (*StubWorkspaceLoader)(nil)

func (l *StubWorkspaceLoader) Load(_ context.Context, path string) (repositories.Workspace, error) {
	l.LoadPaths = append(l.LoadPaths, path)
	if l.LoadErr != nil {
		return nil, l.LoadErr
	}
	return l.Workspace, nil
}
