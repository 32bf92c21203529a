package entities

import "sort"

// Module is one buildable unit of a multi-module build.
type Module struct {
	ID             string
	AppliedPlugins []string
}

// SourceSet is a named group of source directories compiled to one output directory.
// ArtifactPath is the packaged output (e.g. a jar); when empty the output
// directory itself is the artifact.
type SourceSet struct {
	Name         string
	SourceDirs   []string
	OutputPath   string
	ArtifactPath string
}

// PluginSet returns the applied plugins sorted and without duplicates.
func (m Module) PluginSet() []string {
	return sortedUnique(m.AppliedPlugins)
}

// RestrictPlugins keeps only the applied plugins present in available.
func (m Module) RestrictPlugins(available map[string]struct{}) Module {
	restricted := make([]string, 0, len(m.AppliedPlugins))
	for _, plugin := range m.AppliedPlugins {
		if _, ok := available[plugin]; ok {
			restricted = append(restricted, plugin)
		}
	}
	m.AppliedPlugins = restricted
	return m
}

func sortedUnique(values []string) []string {
	set := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))
	for _, value := range values {
		if _, ok := set[value]; ok {
			continue
		}
		set[value] = struct{}{}
		result = append(result, value)
	}
	sort.Strings(result)
	return result
}

// ModuleSummary is one line of the module listing.
type ModuleSummary struct {
	ID             string   `json:"id"              yaml:"id"`
	AppliedPlugins []string `json:"applied_plugins" yaml:"applied_plugins"`
	SourceSets     []string `json:"source_sets"     yaml:"source_sets"`
	IndexStatus    string   `json:"index_status"    yaml:"index_status"`
	Error          string   `json:"error,omitempty" yaml:"error,omitempty"`
}
