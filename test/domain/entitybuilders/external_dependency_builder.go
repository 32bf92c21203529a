//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/buildgraph/internal/domain/entities"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

// StubExternalDependency is a resolver node of an unsupported kind. The
// kind-specific stubs below embed it.
type StubExternalDependency struct {
	DependencyID    entities.DependencyID
	DependencyScope string
	Reason          string
	Order           int
	IsExported      bool
	Children        []entities.ExternalDependency
}

func (s *StubExternalDependency) ID() entities.DependencyID { return s.DependencyID }
func (s *StubExternalDependency) Scope() string             { return s.DependencyScope }
func (s *StubExternalDependency) SelectionReason() string   { return s.Reason }
func (s *StubExternalDependency) ClasspathOrder() int       { return s.Order }
func (s *StubExternalDependency) Exported() bool            { return s.IsExported }

func (s *StubExternalDependency) Dependencies() []entities.ExternalDependency {
	return s.Children
}

// AddDependencies appends children after construction, which is how tests build cycles.
func (s *StubExternalDependency) AddDependencies(children ...entities.ExternalDependency) {
	s.Children = append(s.Children, children...)
}

// StubExternalLibrary is a library resolver node.
type StubExternalLibrary struct {
	StubExternalDependency
	LibraryFile string
	SourceFile  string
	JavadocFile string
}

func (s *StubExternalLibrary) File() string    { return s.LibraryFile }
func (s *StubExternalLibrary) Source() string  { return s.SourceFile }
func (s *StubExternalLibrary) Javadoc() string { return s.JavadocFile }

// StubExternalFileCollection is a file collection resolver node.
type StubExternalFileCollection struct {
	StubExternalDependency
	FileList []string
	Excluded bool
}

func (s *StubExternalFileCollection) Files() []string            { return s.FileList }
func (s *StubExternalFileCollection) ExcludedFromIndexing() bool { return s.Excluded }

// StubExternalProject is a project resolver node.
type StubExternalProject struct {
	StubExternalDependency
	Path string
}

func (s *StubExternalProject) ProjectPath() string { return s.Path }

// StubExternalUnresolved is a resolver node that failed to resolve.
type StubExternalUnresolved struct {
	StubExternalDependency
	Message string
}

func (s *StubExternalUnresolved) FailureMessage() string { return s.Message }

var (
	_ entities.ExternalLibraryDependency        = (*StubExternalLibrary)(nil)
	_ entities.ExternalFileCollectionDependency = (*StubExternalFileCollection)(nil)
	_ entities.ExternalProjectDependency        = (*StubExternalProject)(nil)
	_ entities.ExternalUnresolvedDependency     = (*StubExternalUnresolved)(nil)
)

// Link appends children to a node built by ExternalDependencyBuilder.
func Link(parent entities.ExternalDependency, children ...entities.ExternalDependency) {
	parent.(interface {
		AddDependencies(children ...entities.ExternalDependency)
	}).AddDependencies(children...)
}

const (
	externalKindLibrary        = "library"
	externalKindFileCollection = "file_collection"
	externalKindProject        = "project"
	externalKindUnresolved     = "unresolved"
	externalKindUnknown        = "unknown"
)

// ExternalDependencyBuilder helps create resolver nodes with a fluent interface.
type ExternalDependencyBuilder struct {
	*testkit.BaseBuilder
	kind           string
	id             entities.DependencyID
	scope          string
	reason         string
	order          int
	exported       bool
	file           string
	source         string
	javadoc        string
	files          []string
	excluded       bool
	projectPath    string
	failureMessage string
	children       []entities.ExternalDependency
}

// NewExternalDependencyBuilder creates a builder for a compile-scoped library with sensible defaults.
func NewExternalDependencyBuilder() *ExternalDependencyBuilder {
	return &ExternalDependencyBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		kind:        externalKindLibrary,
		id:          entities.NewDependencyID("com.example", "lib", "1.0"),
		scope:       "compile",
		file:        "/repo/lib-1.0.jar",
	}
}

// WithID sets the group, name and version.
func (b *ExternalDependencyBuilder) WithID(group, name, version string) *ExternalDependencyBuilder {
	b.id = entities.NewDependencyID(group, name, version)
	return b
}

// WithScope sets the configuration scope.
func (b *ExternalDependencyBuilder) WithScope(scope string) *ExternalDependencyBuilder {
	b.scope = scope
	return b
}

// WithClasspathOrder sets the classpath position.
func (b *ExternalDependencyBuilder) WithClasspathOrder(order int) *ExternalDependencyBuilder {
	b.order = order
	return b
}

// WithExported sets the exported flag.
func (b *ExternalDependencyBuilder) WithExported(exported bool) *ExternalDependencyBuilder {
	b.exported = exported
	return b
}

// WithSelectionReason sets the resolver's selection reason.
func (b *ExternalDependencyBuilder) WithSelectionReason(reason string) *ExternalDependencyBuilder {
	b.reason = reason
	return b
}

// AsLibrary makes the node a library with the given artifact file.
func (b *ExternalDependencyBuilder) AsLibrary(file string) *ExternalDependencyBuilder {
	b.kind = externalKindLibrary
	b.file = file
	return b
}

// WithSources sets the source and javadoc archives of a library.
func (b *ExternalDependencyBuilder) WithSources(source, javadoc string) *ExternalDependencyBuilder {
	b.source = source
	b.javadoc = javadoc
	return b
}

// AsFileCollection makes the node a file collection.
func (b *ExternalDependencyBuilder) AsFileCollection(excluded bool, files ...string) *ExternalDependencyBuilder {
	b.kind = externalKindFileCollection
	b.files = files
	b.excluded = excluded
	return b
}

// AsProject makes the node a reference to another module.
func (b *ExternalDependencyBuilder) AsProject(path string) *ExternalDependencyBuilder {
	b.kind = externalKindProject
	b.projectPath = path
	return b
}

// AsUnresolved makes the node a resolution failure.
func (b *ExternalDependencyBuilder) AsUnresolved(message string) *ExternalDependencyBuilder {
	b.kind = externalKindUnresolved
	b.failureMessage = message
	return b
}

// AsUnknown makes the node implement none of the kind-specific interfaces.
func (b *ExternalDependencyBuilder) AsUnknown() *ExternalDependencyBuilder {
	b.kind = externalKindUnknown
	return b
}

// WithDependencies sets the children of the node.
func (b *ExternalDependencyBuilder) WithDependencies(children ...entities.ExternalDependency) *ExternalDependencyBuilder {
	b.children = children
	return b
}

// Build creates the node (satisfies testkit.Builder interface).
func (b *ExternalDependencyBuilder) Build() interface{} {
	return b.BuildExternal()
}

// BuildExternal creates the node with a concrete return type.
func (b *ExternalDependencyBuilder) BuildExternal() entities.ExternalDependency {
	base := StubExternalDependency{
		DependencyID:    b.id,
		DependencyScope: b.scope,
		Reason:          b.reason,
		Order:           b.order,
		IsExported:      b.exported,
		Children:        append([]entities.ExternalDependency(nil), b.children...),
	}

	switch b.kind {
	case externalKindFileCollection:
		return &StubExternalFileCollection{
			StubExternalDependency: base,
			FileList:               append([]string(nil), b.files...),
			Excluded:               b.excluded,
		}
	case externalKindProject:
		return &StubExternalProject{StubExternalDependency: base, Path: b.projectPath}
	case externalKindUnresolved:
		return &StubExternalUnresolved{StubExternalDependency: base, Message: b.failureMessage}
	case externalKindUnknown:
		return &base
	default:
		return &StubExternalLibrary{
			StubExternalDependency: base,
			LibraryFile:            b.file,
			SourceFile:             b.source,
			JavadocFile:            b.javadoc,
		}
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *ExternalDependencyBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.kind = externalKindLibrary
	b.id = entities.NewDependencyID("com.example", "lib", "1.0")
	b.scope = "compile"
	b.reason = ""
	b.order = 0
	b.exported = false
	b.file = "/repo/lib-1.0.jar"
	b.source = ""
	b.javadoc = ""
	b.files = nil
	b.excluded = false
	b.projectPath = ""
	b.failureMessage = ""
	b.children = nil
	return b
}

// Clone creates a deep copy of the ExternalDependencyBuilder.
func (b *ExternalDependencyBuilder) Clone() testkit.Builder {
	return &ExternalDependencyBuilder{
		BaseBuilder:    b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		kind:           b.kind,
		id:             b.id,
		scope:          b.scope,
		reason:         b.reason,
		order:          b.order,
		exported:       b.exported,
		file:           b.file,
		source:         b.source,
		javadoc:        b.javadoc,
		files:          append([]string(nil), b.files...),
		excluded:       b.excluded,
		projectPath:    b.projectPath,
		failureMessage: b.failureMessage,
		children:       append([]entities.ExternalDependency(nil), b.children...),
	}
}
