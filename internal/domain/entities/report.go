package entities

import (
	"sort"
	"strings"

	"golang.org/x/mod/semver"
)

// Report is the data product handed to the calling tool.
type Report struct {
	Workspace      string                   `json:"workspace"                 yaml:"workspace"`
	Revision       string                   `json:"revision,omitempty"        yaml:"revision,omitempty"`
	PluginArchives []string                 `json:"plugin_archives,omitempty" yaml:"plugin_archives,omitempty"`
	Modules        map[string]*ModuleReport `json:"modules"                   yaml:"modules"`
	VersionSkews   []VersionSkew            `json:"version_skews,omitempty"   yaml:"version_skews,omitempty"`
}

// ModuleReport is the per-module record of a Report.
type ModuleReport struct {
	AppliedPlugins          []string           `json:"applied_plugins"           yaml:"applied_plugins"`
	Dependencies            []DependencyRecord `json:"dependencies"              yaml:"dependencies"`
	ResolvedArtifactSources []string           `json:"resolved_artifact_sources" yaml:"resolved_artifact_sources"`
	IndexStatus             string             `json:"index_status"              yaml:"index_status"`
	Error                   string             `json:"error,omitempty"           yaml:"error,omitempty"`
}

// DependencyRecord is one flattened dependency node. ClasspathOrder and Exported
// are descriptive; records with the same ID may differ in them.
type DependencyRecord struct {
	ID                   DependencyID   `json:"id"                               yaml:"id"`
	Kind                 DependencyKind `json:"kind"                             yaml:"kind"`
	Scope                string         `json:"scope,omitempty"                  yaml:"scope,omitempty"`
	ClasspathOrder       int            `json:"classpath_order"                  yaml:"classpath_order"`
	Exported             bool           `json:"exported"                         yaml:"exported"`
	SelectionReason      string         `json:"selection_reason,omitempty"       yaml:"selection_reason,omitempty"`
	File                 string         `json:"file,omitempty"                   yaml:"file,omitempty"`
	Source               string         `json:"source,omitempty"                 yaml:"source,omitempty"`
	Javadoc              string         `json:"javadoc,omitempty"                yaml:"javadoc,omitempty"`
	Files                []string       `json:"files,omitempty"                  yaml:"files,omitempty"`
	ExcludedFromIndexing bool           `json:"excluded_from_indexing,omitempty" yaml:"excluded_from_indexing,omitempty"`
	ProjectPath          string         `json:"project_path,omitempty"           yaml:"project_path,omitempty"`
	FailureMessage       string         `json:"failure_message,omitempty"        yaml:"failure_message,omitempty"`
	Dependencies         []string       `json:"dependencies,omitempty"           yaml:"dependencies,omitempty"`
}

// VersionSkew lists a coordinate seen with several versions, newest first.
type VersionSkew struct {
	Coordinate string   `json:"coordinate" yaml:"coordinate"`
	Versions   []string `json:"versions"   yaml:"versions"`
}

// NewDependencyRecord flattens a node into a record. Children are referenced by id.
func NewDependencyRecord(dependency *Dependency) DependencyRecord {
	record := DependencyRecord{
		ID:              dependency.ID,
		Kind:            dependency.Kind(),
		Scope:           dependency.Scope,
		ClasspathOrder:  dependency.ClasspathOrder,
		Exported:        dependency.Exported,
		SelectionReason: dependency.SelectionReason,
	}

	switch v := dependency.Variant.(type) {
	case LibraryDependency:
		record.File = v.File
		record.Source = v.Source
		record.Javadoc = v.Javadoc
	case FileCollectionDependency:
		record.Files = append([]string(nil), v.Files...)
		record.ExcludedFromIndexing = v.ExcludedFromIndexing
	case ProjectDependency:
		record.ProjectPath = v.ProjectPath
	case UnresolvedDependency:
		record.FailureMessage = v.FailureMessage
	case nil:
		record.FailureMessage = "dependency has no variant"
	}

	for _, child := range dependency.Dependencies {
		record.Dependencies = append(record.Dependencies, child.ID.String())
	}
	return record
}

// ComputeVersionSkews reports library coordinates that appear with more than one
// version across all modules. Nothing is selected; the list is informational.
func ComputeVersionSkews(modules map[string]*ModuleReport) []VersionSkew {
	versions := make(map[string]map[string]struct{})
	for _, module := range modules {
		for _, record := range module.Dependencies {
			if record.Kind != KindLibrary || record.ID.Version == "" {
				continue
			}
			coordinate := record.ID.Coordinate()
			if versions[coordinate] == nil {
				versions[coordinate] = make(map[string]struct{})
			}
			versions[coordinate][record.ID.Version] = struct{}{}
		}
	}

	var skews []VersionSkew
	for coordinate, set := range versions {
		if len(set) < 2 {
			continue
		}
		list := make([]string, 0, len(set))
		for version := range set {
			list = append(list, version)
		}
		sort.Slice(list, func(i, j int) bool {
			return IsNewerVersion(list[j], list[i])
		})
		skews = append(skews, VersionSkew{Coordinate: coordinate, Versions: list})
	}
	sort.Slice(skews, func(i, j int) bool {
		return skews[i].Coordinate < skews[j].Coordinate
	})
	return skews
}

// IsNewerVersion reports whether newVersion is newer than currentVersion,
// using semver when both parse and plain string order otherwise.
func IsNewerVersion(currentVersion, newVersion string) bool {
	current := normalizeVersion(currentVersion)
	candidate := normalizeVersion(newVersion)

	if semver.IsValid(current) && semver.IsValid(candidate) {
		if cmp := semver.Compare(candidate, current); cmp != 0 {
			return cmp > 0
		}
		return newVersion > currentVersion
	}
	return newVersion > currentVersion
}

// normalizeVersion ensures version has 'v' prefix for semver compatibility
func normalizeVersion(version string) string {
	version = strings.TrimSpace(version)
	if strings.HasPrefix(version, "v") {
		return version
	}
	return "v" + version
}
