package entities

import (
	"fmt"
	"strings"
)

// DependencyKind identifies the variant carried by a Dependency.
type DependencyKind string

const (
	KindLibrary        DependencyKind = "library"
	KindFileCollection DependencyKind = "file_collection"
	KindProject        DependencyKind = "project"
	KindUnresolved     DependencyKind = "unresolved"
)

// Variant is the closed set of dependency shapes. The unexported marker
// keeps implementations inside this package, so a type switch over the four
// variants below is exhaustive.
type Variant interface {
	Kind() DependencyKind
	isVariant()
}

// LibraryDependency is a single binary artifact with optional source and doc archives.
type LibraryDependency struct {
	File    string
	Source  string
	Javadoc string
}

// FileCollectionDependency is a loose set of files, e.g. a local libs directory.
type FileCollectionDependency struct {
	Files                []string
	ExcludedFromIndexing bool
}

// ProjectDependency points to another module of the same build.
type ProjectDependency struct {
	ProjectPath string
}

// UnresolvedDependency is a node the resolver could not resolve.
type UnresolvedDependency struct {
	FailureMessage string
}

func (LibraryDependency) Kind() DependencyKind        { return KindLibrary }
func (FileCollectionDependency) Kind() DependencyKind { return KindFileCollection }
func (ProjectDependency) Kind() DependencyKind        { return KindProject }
func (UnresolvedDependency) Kind() DependencyKind     { return KindUnresolved }

func (LibraryDependency) isVariant()        {}
func (FileCollectionDependency) isVariant() {}
func (ProjectDependency) isVariant()        {}
func (UnresolvedDependency) isVariant()     {}

// Dependency is one owned node of a module's dependency graph.
//
// Dependencies may form cycles and share children; node identity is the
// pointer, not the ID. Graphs are built once per report and are read-only
// afterwards.
type Dependency struct {
	ID              DependencyID
	Scope           string
	ClasspathOrder  int
	Exported        bool
	SelectionReason string
	Dependencies    []*Dependency
	Variant         Variant
}

// Kind returns the variant kind, treating a missing variant as unresolved.
func (d *Dependency) Kind() DependencyKind {
	if d.Variant == nil {
		return KindUnresolved
	}
	return d.Variant.Kind()
}

// Files returns every artifact file the node contributes to a classpath.
func (d *Dependency) Files() []string {
	switch v := d.Variant.(type) {
	case LibraryDependency:
		if v.File == "" {
			return nil
		}
		return []string{v.File}
	case FileCollectionDependency:
		return append([]string(nil), v.Files...)
	case ProjectDependency, UnresolvedDependency, nil:
		return nil
	}
	return nil
}

func (d *Dependency) String() string {
	switch v := d.Variant.(type) {
	case LibraryDependency:
		return fmt.Sprintf("library '%s'", v.File)
	case FileCollectionDependency:
		return fmt.Sprintf("file collection dependency{files=[%s]}", strings.Join(v.Files, ", "))
	case ProjectDependency:
		return fmt.Sprintf("project '%s'", v.ProjectPath)
	case UnresolvedDependency:
		return fmt.Sprintf("unresolved dependency '%s': %s", d.ID, v.FailureMessage)
	}
	return fmt.Sprintf("dependency '%s'", d.ID)
}

// NewFileCollectionID derives the id used for anonymous file collections.
func NewFileCollectionID(files []string) DependencyID {
	return DependencyID{Name: "[" + strings.Join(files, ", ") + "]"}
}
