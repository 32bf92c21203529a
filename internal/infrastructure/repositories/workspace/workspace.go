// Package workspace holds the in-memory build description shared by the
// manifest loaders. It plays the part of the external resolver: the node
// pool it builds may share nodes between parents and may contain cycles,
// exactly like a real resolver result.
package workspace

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/buildgraph/internal/domain/entities"
	"github.com/rios0rios0/buildgraph/internal/domain/repositories"
)

const (
	KindLibrary        = "library"
	KindFiles          = "files"
	KindFileCollection = "file_collection"
	KindProject        = "project"
	KindUnresolved     = "unresolved"
)

// ErrModuleNotFound is returned for lookups of a module the workspace does not declare.
var ErrModuleNotFound = errors.New("module not found")

// NodeDefinition is a dependency node as written in a manifest.
type NodeDefinition struct {
	Key             string
	Kind            string
	Group           string
	Name            string
	Version         string
	Packaging       string
	Classifier      string
	Scope           string
	ClasspathOrder  int
	Exported        bool
	SelectionReason string

	File    string
	Source  string
	Javadoc string

	Files                []string
	ExcludedFromIndexing bool

	ProjectPath    string
	FailureMessage string

	// Dependencies are keys of other nodes; a node may reference itself.
	Dependencies []string
}

// SourceSetDefinition is a source set as written in a manifest.
type SourceSetDefinition struct {
	Name       string
	SourceDirs []string
	Output     string
	Artifact   string
}

// ModuleDefinition is a module as written in a manifest.
type ModuleDefinition struct {
	ID           string
	Plugins      []string
	SourceSets   []SourceSetDefinition
	Dependencies []string
}

// Definition is a whole manifest, independent of its file format.
type Definition struct {
	Root           string
	PluginArchives []string
	Nodes          []NodeDefinition
	Modules        []ModuleDefinition
}

// StaticWorkspace implements repositories.Workspace over a parsed Definition.
type StaticWorkspace struct {
	root           string
	pluginArchives []string
	modules        []ModuleDefinition
	moduleIndex    map[string]int
	nodes          map[string]entities.ExternalDependency
}

var _ repositories.Workspace = (*StaticWorkspace)(nil)

// New validates a definition and wires its node pool.
func New(def Definition) (*StaticWorkspace, error) {
	ws := &StaticWorkspace{
		root:        def.Root,
		moduleIndex: make(map[string]int, len(def.Modules)),
		nodes:       make(map[string]entities.ExternalDependency, len(def.Nodes)),
	}

	for _, archive := range def.PluginArchives {
		ws.pluginArchives = append(ws.pluginArchives, ws.resolvePath(archive))
	}

	for i, nodeDef := range def.Nodes {
		if nodeDef.Key == "" {
			return nil, fmt.Errorf("nodes[%d].key is required", i)
		}
		if _, dup := ws.nodes[nodeDef.Key]; dup {
			return nil, fmt.Errorf("duplicate node key: %s", nodeDef.Key)
		}
		ws.nodes[nodeDef.Key] = ws.newNode(nodeDef)
	}
	// second pass, so that references may point forward, backward or to the node itself
	for _, nodeDef := range def.Nodes {
		children := make([]entities.ExternalDependency, 0, len(nodeDef.Dependencies))
		for _, key := range nodeDef.Dependencies {
			children = append(children, ws.reference(key))
		}
		baseOf(ws.nodes[nodeDef.Key]).children = children
	}

	for i, module := range def.Modules {
		if module.ID == "" {
			return nil, fmt.Errorf("modules[%d].id is required", i)
		}
		if _, dup := ws.moduleIndex[module.ID]; dup {
			return nil, fmt.Errorf("duplicate module id: %s", module.ID)
		}
		ws.moduleIndex[module.ID] = len(ws.modules)
		ws.modules = append(ws.modules, ws.resolveModule(module))
		// Resolve runs concurrently and must only read the pool
		for _, key := range module.Dependencies {
			ws.reference(key)
		}
	}

	return ws, nil
}

func (ws *StaticWorkspace) Root() string { return ws.root }

func (ws *StaticWorkspace) PluginArchives() []string {
	return append([]string(nil), ws.pluginArchives...)
}

// ListModules returns the modules in declaration order.
func (ws *StaticWorkspace) ListModules(ctx context.Context) ([]entities.Module, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	modules := make([]entities.Module, 0, len(ws.modules))
	for _, module := range ws.modules {
		modules = append(modules, entities.Module{
			ID:             module.ID,
			AppliedPlugins: append([]string(nil), module.Plugins...),
		})
	}
	return modules, nil
}

// SourceSetsFor returns the source sets of a module with paths resolved against the root.
func (ws *StaticWorkspace) SourceSetsFor(ctx context.Context, moduleID string) ([]entities.SourceSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	module, err := ws.module(moduleID)
	if err != nil {
		return nil, err
	}
	sourceSets := make([]entities.SourceSet, 0, len(module.SourceSets))
	for _, sourceSet := range module.SourceSets {
		sourceSets = append(sourceSets, entities.SourceSet{
			Name:         sourceSet.Name,
			SourceDirs:   append([]string(nil), sourceSet.SourceDirs...),
			OutputPath:   sourceSet.Output,
			ArtifactPath: sourceSet.Artifact,
		})
	}
	return sourceSets, nil
}

// Resolve returns the dependency roots of a module. References to undeclared
// nodes come back as unresolved nodes rather than as an error.
func (ws *StaticWorkspace) Resolve(ctx context.Context, moduleID string) ([]entities.ExternalDependency, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	module, err := ws.module(moduleID)
	if err != nil {
		return nil, err
	}
	roots := make([]entities.ExternalDependency, 0, len(module.Dependencies))
	for _, key := range module.Dependencies {
		roots = append(roots, ws.nodes[key])
	}
	return roots, nil
}

func (ws *StaticWorkspace) module(moduleID string) (ModuleDefinition, error) {
	i, ok := ws.moduleIndex[moduleID]
	if !ok {
		return ModuleDefinition{}, fmt.Errorf("%w: %q", ErrModuleNotFound, moduleID)
	}
	return ws.modules[i], nil
}

// reference returns the node for key, creating a shared unresolved node for unknown keys.
func (ws *StaticWorkspace) reference(key string) entities.ExternalDependency {
	if existing, ok := ws.nodes[key]; ok {
		return existing
	}
	logger.Debugf("Dependency %q is not declared, treating it as unresolved", key)
	unresolved := &unresolvedNode{
		node:           node{id: entities.DependencyID{Name: key}},
		failureMessage: fmt.Sprintf("dependency %q is not declared in the workspace", key),
	}
	ws.nodes[key] = unresolved
	return unresolved
}

func (ws *StaticWorkspace) newNode(def NodeDefinition) entities.ExternalDependency {
	name := def.Name
	if name == "" {
		name = def.Key
	}
	base := node{
		id: entities.DependencyID{
			Group:      def.Group,
			Name:       name,
			Version:    def.Version,
			Packaging:  def.Packaging,
			Classifier: def.Classifier,
		},
		scope:           def.Scope,
		selectionReason: def.SelectionReason,
		classpathOrder:  def.ClasspathOrder,
		exported:        def.Exported,
	}

	switch def.Kind {
	case KindLibrary, "":
		if base.id.Packaging == "" {
			base.id.Packaging = "jar"
		}
		return &libraryNode{
			node:    base,
			file:    ws.resolvePath(def.File),
			source:  ws.resolvePath(def.Source),
			javadoc: ws.resolvePath(def.Javadoc),
		}
	case KindFiles, KindFileCollection:
		files := make([]string, 0, len(def.Files))
		for _, file := range def.Files {
			files = append(files, ws.resolvePath(file))
		}
		if def.Name == "" {
			base.id = entities.NewFileCollectionID(files)
		}
		return &fileCollectionNode{node: base, files: files, excludedFromIndexing: def.ExcludedFromIndexing}
	case KindProject:
		projectPath := def.ProjectPath
		if projectPath == "" {
			projectPath = name
		}
		return &projectNode{node: base, projectPath: projectPath}
	case KindUnresolved:
		return &unresolvedNode{node: base, failureMessage: def.FailureMessage}
	default:
		// bare node, the graph copier degrades unknown kinds
		logger.Debugf("Node %q has unsupported kind %q", def.Key, def.Kind)
		return &base
	}
}

func (ws *StaticWorkspace) resolveModule(def ModuleDefinition) ModuleDefinition {
	resolved := ModuleDefinition{
		ID:           def.ID,
		Plugins:      append([]string(nil), def.Plugins...),
		Dependencies: append([]string(nil), def.Dependencies...),
	}
	for _, sourceSet := range def.SourceSets {
		dirs := make([]string, 0, len(sourceSet.SourceDirs))
		for _, dir := range sourceSet.SourceDirs {
			dirs = append(dirs, ws.resolvePath(dir))
		}
		resolved.SourceSets = append(resolved.SourceSets, SourceSetDefinition{
			Name:       sourceSet.Name,
			SourceDirs: dirs,
			Output:     ws.resolvePath(sourceSet.Output),
			Artifact:   ws.resolvePath(sourceSet.Artifact),
		})
	}
	return resolved
}

// resolvePath makes relative manifest paths relative to the workspace root.
func (ws *StaticWorkspace) resolvePath(path string) string {
	if path == "" || filepath.IsAbs(path) || ws.root == "" {
		return path
	}
	return filepath.Join(ws.root, path)
}
