package repositories

import (
	"context"

	"github.com/rios0rios0/buildgraph/internal/domain/entities"
)

// ModuleEnumerator lists the modules of a build together with their applied plugins.
type ModuleEnumerator interface {
	ListModules(ctx context.Context) ([]entities.Module, error)
}

// SourceSetEnumerator supplies the raw source-set metadata of one module.
type SourceSetEnumerator interface {
	SourceSetsFor(ctx context.Context, moduleID string) ([]entities.SourceSet, error)
}

// DependencyResolver returns the already-resolved dependency roots of one module.
// The returned nodes may share children and contain cycles; callers copy them
// with entities.CopyGraphs before doing anything else.
type DependencyResolver interface {
	Resolve(ctx context.Context, moduleID string) ([]entities.ExternalDependency, error)
}

// Workspace is a loaded build description exposing every collaborator the
// report needs.
type Workspace interface {
	ModuleEnumerator
	SourceSetEnumerator
	DependencyResolver

	// Root returns the directory the build description was loaded from.
	Root() string

	// PluginArchives returns archives that should be scanned for plugin descriptors.
	PluginArchives() []string
}

// WorkspaceRepository abstracts a build description format (YAML manifest, HCL manifest, etc.).
type WorkspaceRepository interface {
	// Name returns the loader identifier (e.g. "yaml", "hcl").
	Name() string

	// Detect returns the manifest file this loader would read for the given path,
	// and whether one was found. The path may be a directory or a file.
	Detect(path string) (string, bool)

	// Load parses the manifest file into a Workspace.
	Load(ctx context.Context, manifestPath string) (Workspace, error)
}

// WorkspaceLoader picks a manifest format for a path and loads it.
type WorkspaceLoader interface {
	Load(ctx context.Context, path string) (Workspace, error)
}
