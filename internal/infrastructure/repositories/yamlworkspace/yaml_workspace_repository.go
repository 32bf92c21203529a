package yamlworkspace

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rios0rios0/buildgraph/internal/domain/entities"
	"github.com/rios0rios0/buildgraph/internal/domain/repositories"
	"github.com/rios0rios0/buildgraph/internal/infrastructure/repositories/workspace"
)

const loaderName = "yaml"

//nolint:gochecknoglobals // fixed list of file names probed in a directory
var manifestNames = []string{"workspace.yaml", "workspace.yml"}

type manifest struct {
	PluginArchives []string                `yaml:"plugin_archives"`
	Nodes          map[string]nodeManifest `yaml:"nodes"`
	Modules        []moduleManifest        `yaml:"modules"`
}

type nodeManifest struct {
	Kind                 string   `yaml:"kind"`
	Group                string   `yaml:"group"`
	Name                 string   `yaml:"name"`
	Version              string   `yaml:"version"`
	Packaging            string   `yaml:"packaging"`
	Classifier           string   `yaml:"classifier"`
	Scope                string   `yaml:"scope"`
	ClasspathOrder       int      `yaml:"classpath_order"`
	Exported             bool     `yaml:"exported"`
	SelectionReason      string   `yaml:"selection_reason"`
	File                 string   `yaml:"file"`
	Source               string   `yaml:"source"`
	Javadoc              string   `yaml:"javadoc"`
	Files                []string `yaml:"files"`
	ExcludedFromIndexing bool     `yaml:"excluded_from_indexing"`
	ProjectPath          string   `yaml:"project_path"`
	FailureMessage       string   `yaml:"failure_message"`
	Dependencies         []string `yaml:"dependencies"`
}

type sourceSetManifest struct {
	Name       string   `yaml:"name"`
	SourceDirs []string `yaml:"source_dirs"`
	Output     string   `yaml:"output"`
	Artifact   string   `yaml:"artifact"`
}

type moduleManifest struct {
	ID           string              `yaml:"id"`
	Plugins      []string            `yaml:"plugins"`
	SourceSets   []sourceSetManifest `yaml:"source_sets"`
	Dependencies []string            `yaml:"dependencies"`
}

// YAMLWorkspaceRepository loads workspaces from workspace.yaml manifests.
type YAMLWorkspaceRepository struct{}

// NewYAMLWorkspaceRepository creates a new YAML workspace loader.
func NewYAMLWorkspaceRepository() repositories.WorkspaceRepository {
	return &YAMLWorkspaceRepository{}
}

func (r *YAMLWorkspaceRepository) Name() string { return loaderName }

// Detect accepts a .yaml/.yml file or a directory containing workspace.yaml.
func (r *YAMLWorkspaceRepository) Detect(path string) (string, bool) {
	info, err := os.Stat(path)
	if err != nil {
		return "", false
	}
	if !info.IsDir() {
		ext := strings.ToLower(filepath.Ext(path))
		return path, ext == ".yaml" || ext == ".yml"
	}
	for _, name := range manifestNames {
		candidate := filepath.Join(path, name)
		if _, statErr := os.Stat(candidate); statErr == nil {
			return candidate, true
		}
	}
	return "", false
}

// Load parses a YAML manifest. Relative paths are resolved against the manifest directory.
func (r *YAMLWorkspaceRepository) Load(ctx context.Context, manifestPath string) (repositories.Workspace, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %q: %w", manifestPath, err)
	}

	var doc manifest
	if unmarshalErr := yaml.Unmarshal(data, &doc); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", unmarshalErr)
	}

	root, err := filepath.Abs(filepath.Dir(manifestPath))
	if err != nil {
		return nil, fmt.Errorf("invalid manifest path: %w", err)
	}

	return workspace.New(toDefinition(root, &doc))
}

func toDefinition(root string, doc *manifest) workspace.Definition {
	def := workspace.Definition{
		Root:           root,
		PluginArchives: expandAll(doc.PluginArchives),
	}

	// map order is random; keep the node pool deterministic
	keys := make([]string, 0, len(doc.Nodes))
	for key := range doc.Nodes {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		node := doc.Nodes[key]
		def.Nodes = append(def.Nodes, workspace.NodeDefinition{
			Key:                  key,
			Kind:                 node.Kind,
			Group:                node.Group,
			Name:                 node.Name,
			Version:              node.Version,
			Packaging:            node.Packaging,
			Classifier:           node.Classifier,
			Scope:                node.Scope,
			ClasspathOrder:       node.ClasspathOrder,
			Exported:             node.Exported,
			SelectionReason:      node.SelectionReason,
			File:                 entities.ExpandEnv(node.File),
			Source:               entities.ExpandEnv(node.Source),
			Javadoc:              entities.ExpandEnv(node.Javadoc),
			Files:                expandAll(node.Files),
			ExcludedFromIndexing: node.ExcludedFromIndexing,
			ProjectPath:          node.ProjectPath,
			FailureMessage:       node.FailureMessage,
			Dependencies:         node.Dependencies,
		})
	}

	for _, module := range doc.Modules {
		moduleDef := workspace.ModuleDefinition{
			ID:           module.ID,
			Plugins:      module.Plugins,
			Dependencies: module.Dependencies,
		}
		for _, sourceSet := range module.SourceSets {
			moduleDef.SourceSets = append(moduleDef.SourceSets, workspace.SourceSetDefinition{
				Name:       sourceSet.Name,
				SourceDirs: expandAll(sourceSet.SourceDirs),
				Output:     entities.ExpandEnv(sourceSet.Output),
				Artifact:   entities.ExpandEnv(sourceSet.Artifact),
			})
		}
		def.Modules = append(def.Modules, moduleDef)
	}

	return def
}

func expandAll(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	result := make([]string, 0, len(values))
	for _, value := range values {
		result = append(result, entities.ExpandEnv(value))
	}
	return result
}
