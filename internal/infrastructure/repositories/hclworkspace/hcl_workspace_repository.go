package hclworkspace

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/rios0rios0/buildgraph/internal/domain/repositories"
	"github.com/rios0rios0/buildgraph/internal/infrastructure/repositories/workspace"
)

const (
	loaderName   = "hcl"
	manifestName = "workspace.hcl"
)

//nolint:gochecknoglobals // static HCL schemas
var (
	rootSchema = &hcl.BodySchema{
		Attributes: []hcl.AttributeSchema{
			{Name: "plugin_archives"},
		},
		Blocks: []hcl.BlockHeaderSchema{
			{Type: "node", LabelNames: []string{"key"}},
			{Type: "module", LabelNames: []string{"id"}},
		},
	}

	nodeSchema = &hcl.BodySchema{
		Attributes: []hcl.AttributeSchema{
			{Name: "kind"},
			{Name: "group"},
			{Name: "name"},
			{Name: "version"},
			{Name: "packaging"},
			{Name: "classifier"},
			{Name: "scope"},
			{Name: "classpath_order"},
			{Name: "exported"},
			{Name: "selection_reason"},
			{Name: "file"},
			{Name: "source"},
			{Name: "javadoc"},
			{Name: "files"},
			{Name: "excluded_from_indexing"},
			{Name: "project_path"},
			{Name: "failure_message"},
			{Name: "dependencies"},
		},
	}

	moduleSchema = &hcl.BodySchema{
		Attributes: []hcl.AttributeSchema{
			{Name: "plugins"},
			{Name: "dependencies"},
		},
		Blocks: []hcl.BlockHeaderSchema{
			{Type: "source_set", LabelNames: []string{"name"}},
		},
	}

	sourceSetSchema = &hcl.BodySchema{
		Attributes: []hcl.AttributeSchema{
			{Name: "source_dirs"},
			{Name: "output"},
			{Name: "artifact"},
		},
	}
)

// HCLWorkspaceRepository loads workspaces from workspace.hcl manifests.
// Expressions can read environment variables through the "env" object,
// e.g. file = "${env.HOME}/.m2/repository/guava.jar".
type HCLWorkspaceRepository struct{}

// NewHCLWorkspaceRepository creates a new HCL workspace loader.
func NewHCLWorkspaceRepository() repositories.WorkspaceRepository {
	return &HCLWorkspaceRepository{}
}

func (r *HCLWorkspaceRepository) Name() string { return loaderName }

// Detect accepts a .hcl file or a directory containing workspace.hcl.
func (r *HCLWorkspaceRepository) Detect(path string) (string, bool) {
	info, err := os.Stat(path)
	if err != nil {
		return "", false
	}
	if !info.IsDir() {
		return path, strings.EqualFold(filepath.Ext(path), ".hcl")
	}
	candidate := filepath.Join(path, manifestName)
	if _, statErr := os.Stat(candidate); statErr == nil {
		return candidate, true
	}
	return "", false
}

// Load parses an HCL manifest. Relative paths are resolved against the manifest directory.
func (r *HCLWorkspaceRepository) Load(ctx context.Context, manifestPath string) (repositories.Workspace, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %q: %w", manifestPath, err)
	}

	root, err := filepath.Abs(filepath.Dir(manifestPath))
	if err != nil {
		return nil, fmt.Errorf("invalid manifest path: %w", err)
	}

	def, diags := Parse(data, manifestPath, environment())
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse manifest: %w", diags)
	}
	def.Root = root

	return workspace.New(def)
}

// Parse decodes manifest source into a workspace definition. The returned
// Definition has no Root; the caller decides what relative paths mean.
func Parse(src []byte, filename string, env map[string]string) (workspace.Definition, hcl.Diagnostics) {
	var def workspace.Definition

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return def, diags
	}

	content, contentDiags := file.Body.Content(rootSchema)
	diags = append(diags, contentDiags...)
	if contentDiags.HasErrors() {
		return def, diags
	}

	decoder := newAttributeDecoder(evalContext(env))

	def.PluginArchives = decoder.strings(content.Attributes, "plugin_archives")

	for _, block := range content.Blocks {
		switch block.Type {
		case "node":
			node, nodeDiags := decodeNode(decoder, block)
			diags = append(diags, nodeDiags...)
			def.Nodes = append(def.Nodes, node)
		case "module":
			module, moduleDiags := decodeModule(decoder, block)
			diags = append(diags, moduleDiags...)
			def.Modules = append(def.Modules, module)
		}
	}

	diags = append(diags, decoder.diags...)
	return def, diags
}

func decodeNode(decoder *attributeDecoder, block *hcl.Block) (workspace.NodeDefinition, hcl.Diagnostics) {
	node := workspace.NodeDefinition{Key: block.Labels[0]}

	content, diags := block.Body.Content(nodeSchema)
	if diags.HasErrors() {
		return node, diags
	}
	attrs := content.Attributes

	node.Kind = decoder.string(attrs, "kind")
	node.Group = decoder.string(attrs, "group")
	node.Name = decoder.string(attrs, "name")
	node.Version = decoder.string(attrs, "version")
	node.Packaging = decoder.string(attrs, "packaging")
	node.Classifier = decoder.string(attrs, "classifier")
	node.Scope = decoder.string(attrs, "scope")
	node.ClasspathOrder = decoder.int(attrs, "classpath_order")
	node.Exported = decoder.bool(attrs, "exported")
	node.SelectionReason = decoder.string(attrs, "selection_reason")
	node.File = decoder.string(attrs, "file")
	node.Source = decoder.string(attrs, "source")
	node.Javadoc = decoder.string(attrs, "javadoc")
	node.Files = decoder.strings(attrs, "files")
	node.ExcludedFromIndexing = decoder.bool(attrs, "excluded_from_indexing")
	node.ProjectPath = decoder.string(attrs, "project_path")
	node.FailureMessage = decoder.string(attrs, "failure_message")
	node.Dependencies = decoder.strings(attrs, "dependencies")

	return node, diags
}

func decodeModule(decoder *attributeDecoder, block *hcl.Block) (workspace.ModuleDefinition, hcl.Diagnostics) {
	module := workspace.ModuleDefinition{ID: block.Labels[0]}

	content, diags := block.Body.Content(moduleSchema)
	if diags.HasErrors() {
		return module, diags
	}

	module.Plugins = decoder.strings(content.Attributes, "plugins")
	module.Dependencies = decoder.strings(content.Attributes, "dependencies")

	for _, sourceSetBlock := range content.Blocks {
		sourceSetContent, sourceSetDiags := sourceSetBlock.Body.Content(sourceSetSchema)
		diags = append(diags, sourceSetDiags...)
		if sourceSetDiags.HasErrors() {
			continue
		}
		attrs := sourceSetContent.Attributes
		module.SourceSets = append(module.SourceSets, workspace.SourceSetDefinition{
			Name:       sourceSetBlock.Labels[0],
			SourceDirs: decoder.strings(attrs, "source_dirs"),
			Output:     decoder.string(attrs, "output"),
			Artifact:   decoder.string(attrs, "artifact"),
		})
	}

	return module, diags
}

// evalContext exposes the environment as the "env" object.
func evalContext(env map[string]string) *hcl.EvalContext {
	values := make(map[string]cty.Value, len(env))
	for key, value := range env {
		values[key] = cty.StringVal(value)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": cty.ObjectVal(values),
		},
	}
}

func environment() map[string]string {
	env := make(map[string]string)
	for _, entry := range os.Environ() {
		key, value, ok := strings.Cut(entry, "=")
		if !ok || key == "" {
			continue
		}
		env[key] = value
	}
	return env
}
