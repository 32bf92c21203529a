package workspace

import "github.com/rios0rios0/buildgraph/internal/domain/entities"

// node carries the fields common to every external dependency kind.
// On its own it is a node of an unsupported kind.
type node struct {
	id              entities.DependencyID
	scope           string
	selectionReason string
	classpathOrder  int
	exported        bool
	children        []entities.ExternalDependency
}

func (n *node) ID() entities.DependencyID                   { return n.id }
func (n *node) Scope() string                               { return n.scope }
func (n *node) SelectionReason() string                     { return n.selectionReason }
func (n *node) ClasspathOrder() int                         { return n.classpathOrder }
func (n *node) Exported() bool                              { return n.exported }
func (n *node) Dependencies() []entities.ExternalDependency { return n.children }
func (n *node) base() *node                                 { return n }

type libraryNode struct {
	node
	file    string
	source  string
	javadoc string
}

func (n *libraryNode) File() string    { return n.file }
func (n *libraryNode) Source() string  { return n.source }
func (n *libraryNode) Javadoc() string { return n.javadoc }

type fileCollectionNode struct {
	node
	files                []string
	excludedFromIndexing bool
}

func (n *fileCollectionNode) Files() []string            { return n.files }
func (n *fileCollectionNode) ExcludedFromIndexing() bool { return n.excludedFromIndexing }

type projectNode struct {
	node
	projectPath string
}

func (n *projectNode) ProjectPath() string { return n.projectPath }

type unresolvedNode struct {
	node
	failureMessage string
}

func (n *unresolvedNode) FailureMessage() string { return n.failureMessage }

var (
	_ entities.ExternalLibraryDependency        = (*libraryNode)(nil)
	_ entities.ExternalFileCollectionDependency = (*fileCollectionNode)(nil)
	_ entities.ExternalProjectDependency        = (*projectNode)(nil)
	_ entities.ExternalUnresolvedDependency     = (*unresolvedNode)(nil)
)

func baseOf(dependency entities.ExternalDependency) *node {
	return dependency.(interface{ base() *node }).base()
}
