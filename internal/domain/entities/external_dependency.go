package entities

// ExternalDependency is a dependency node as handed over by an external resolver.
// Implementations may share nodes between parents and may contain cycles, and
// are usually pointer types so that identical nodes can be recognized by identity.
type ExternalDependency interface {
	ID() DependencyID
	Scope() string
	SelectionReason() string
	ClasspathOrder() int
	Exported() bool
	Dependencies() []ExternalDependency
}

// ExternalLibraryDependency is an external node backed by a single binary artifact.
type ExternalLibraryDependency interface {
	ExternalDependency
	File() string
	Source() string
	Javadoc() string
}

// ExternalFileCollectionDependency is an external node backed by a set of files.
type ExternalFileCollectionDependency interface {
	ExternalDependency
	Files() []string
	ExcludedFromIndexing() bool
}

// ExternalProjectDependency is an external node referencing another module.
type ExternalProjectDependency interface {
	ExternalDependency
	ProjectPath() string
}

// ExternalUnresolvedDependency is an external node that failed to resolve.
type ExternalUnresolvedDependency interface {
	ExternalDependency
	FailureMessage() string
}
