package repositories

import (
	"go.uber.org/dig"

	domainRepos "github.com/rios0rios0/buildgraph/internal/domain/repositories"
	gitRepo "github.com/rios0rios0/buildgraph/internal/infrastructure/repositories/git"
	hclRepo "github.com/rios0rios0/buildgraph/internal/infrastructure/repositories/hclworkspace"
	pluginRepo "github.com/rios0rios0/buildgraph/internal/infrastructure/repositories/plugins"
	yamlRepo "github.com/rios0rios0/buildgraph/internal/infrastructure/repositories/yamlworkspace"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register workspace registry with all manifest loaders
	if err := container.Provide(func() *WorkspaceRegistry {
		reg := NewWorkspaceRegistry()
		reg.Register(yamlRepo.NewYAMLWorkspaceRepository())
		reg.Register(hclRepo.NewHCLWorkspaceRepository())
		return reg
	}); err != nil {
		return err
	}

	if err := container.Provide(func(impl *WorkspaceRegistry) domainRepos.WorkspaceLoader {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(pluginRepo.NewPluginDescriptorRepository); err != nil {
		return err
	}
	if err := container.Provide(gitRepo.NewRevisionRepository); err != nil {
		return err
	}

	return nil
}
