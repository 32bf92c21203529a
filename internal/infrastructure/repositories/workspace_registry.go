package repositories

import (
	"context"
	"errors"
	"fmt"

	logger "github.com/sirupsen/logrus"

	domainRepos "github.com/rios0rios0/buildgraph/internal/domain/repositories"
)

// ErrNoLoader is returned when no registered loader recognizes a workspace path.
var ErrNoLoader = errors.New("no workspace manifest found")

// WorkspaceRegistry manages all registered workspace loaders. Loaders are
// tried in registration order.
type WorkspaceRegistry struct {
	loaders map[string]domainRepos.WorkspaceRepository
	order   []string
}

// NewWorkspaceRegistry creates an empty workspace registry.
func NewWorkspaceRegistry() *WorkspaceRegistry {
	return &WorkspaceRegistry{
		loaders: make(map[string]domainRepos.WorkspaceRepository),
	}
}

// Register adds a loader under its name, replacing any loader with the same name.
func (r *WorkspaceRegistry) Register(loader domainRepos.WorkspaceRepository) {
	if _, ok := r.loaders[loader.Name()]; !ok {
		r.order = append(r.order, loader.Name())
	}
	r.loaders[loader.Name()] = loader
}

// Get returns the loader with the given name, or nil if not registered.
func (r *WorkspaceRegistry) Get(name string) domainRepos.WorkspaceRepository {
	return r.loaders[name]
}

// All returns every registered loader in registration order.
func (r *WorkspaceRegistry) All() []domainRepos.WorkspaceRepository {
	result := make([]domainRepos.WorkspaceRepository, 0, len(r.order))
	for _, name := range r.order {
		result = append(result, r.loaders[name])
	}
	return result
}

// Names returns the list of registered loader names in registration order.
func (r *WorkspaceRegistry) Names() []string {
	return append([]string(nil), r.order...)
}

// Load finds the first loader that detects a manifest at path and loads it.
func (r *WorkspaceRegistry) Load(ctx context.Context, path string) (domainRepos.Workspace, error) {
	for _, loader := range r.All() {
		manifestPath, ok := loader.Detect(path)
		if !ok {
			continue
		}
		logger.Infof("[%s] Loading workspace manifest %s", loader.Name(), manifestPath)
		workspace, err := loader.Load(ctx, manifestPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s manifest %q: %w", loader.Name(), manifestPath, err)
		}
		return workspace, nil
	}
	return nil, fmt.Errorf("%w at %q (loaders tried: %v)", ErrNoLoader, path, r.Names())
}
