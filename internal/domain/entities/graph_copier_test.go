//go:build unit

package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/buildgraph/internal/domain/entities"
	"github.com/rios0rios0/buildgraph/test/domain/entitybuilders"
)

// valueDependency has a non-comparable dynamic type and must not be used as a memo key.
type valueDependency struct {
	children []entities.ExternalDependency
}

func (v valueDependency) ID() entities.DependencyID { return entities.DependencyID{Name: "value"} }
func (v valueDependency) Scope() string             { return "compile" }
func (v valueDependency) SelectionReason() string   { return "" }
func (v valueDependency) ClasspathOrder() int       { return 0 }
func (v valueDependency) Exported() bool            { return false }

func (v valueDependency) Dependencies() []entities.ExternalDependency { return v.children }

// taggedDependency is a comparable type whose interface field may hold an
// unhashable value at runtime.
type taggedDependency struct {
	tag      any
	children []entities.ExternalDependency
}

func (v taggedDependency) ID() entities.DependencyID { return entities.DependencyID{Name: "tagged"} }
func (v taggedDependency) Scope() string             { return "compile" }
func (v taggedDependency) SelectionReason() string   { return "" }
func (v taggedDependency) ClasspathOrder() int       { return 0 }
func (v taggedDependency) Exported() bool            { return false }

func (v taggedDependency) Dependencies() []entities.ExternalDependency { return v.children }

func TestCopyGraph(t *testing.T) {
	t.Parallel()

	t.Run("should return nil for a nil root", func(t *testing.T) {
		t.Parallel()

		// given
		var root entities.ExternalDependency

		// when
		result := entities.CopyGraph(root)

		// then
		assert.Nil(t, result)
	})

	t.Run("should copy every field of a library node", func(t *testing.T) {
		t.Parallel()

		// given
		root := entitybuilders.NewExternalDependencyBuilder().
			WithID("com.google.guava", "guava", "32.0").
			WithScope("runtime").
			WithClasspathOrder(3).
			WithExported(true).
			WithSelectionReason("requested").
			AsLibrary("/m2/guava-32.0.jar").
			WithSources("/m2/guava-32.0-sources.jar", "/m2/guava-32.0-javadoc.jar").
			BuildExternal()

		// when
		result := entities.CopyGraph(root)

		// then
		require.NotNil(t, result)
		assert.Equal(t, entities.NewDependencyID("com.google.guava", "guava", "32.0"), result.ID)
		assert.Equal(t, "runtime", result.Scope)
		assert.Equal(t, 3, result.ClasspathOrder)
		assert.True(t, result.Exported)
		assert.Equal(t, "requested", result.SelectionReason)
		assert.Equal(t, entities.LibraryDependency{
			File:    "/m2/guava-32.0.jar",
			Source:  "/m2/guava-32.0-sources.jar",
			Javadoc: "/m2/guava-32.0-javadoc.jar",
		}, result.Variant)
		assert.Empty(t, result.Dependencies)
	})

	t.Run("should copy the payload of every supported kind", func(t *testing.T) {
		t.Parallel()

		// given
		files := entitybuilders.NewExternalDependencyBuilder().AsFileCollection(true, "/libs/a.jar").BuildExternal()
		project := entitybuilders.NewExternalDependencyBuilder().AsProject(":core").BuildExternal()
		unresolved := entitybuilders.NewExternalDependencyBuilder().AsUnresolved("could not find x").BuildExternal()

		// when
		results := entities.CopyGraphs([]entities.ExternalDependency{files, project, unresolved})

		// then
		require.Len(t, results, 3)
		assert.Equal(t, entities.FileCollectionDependency{
			Files:                []string{"/libs/a.jar"},
			ExcludedFromIndexing: true,
		}, results[0].Variant)
		assert.Equal(t, entities.ProjectDependency{ProjectPath: ":core"}, results[1].Variant)
		assert.Equal(t, entities.UnresolvedDependency{FailureMessage: "could not find x"}, results[2].Variant)
	})

	t.Run("should not alias the file list of the source node", func(t *testing.T) {
		t.Parallel()

		// given
		source := entitybuilders.NewExternalDependencyBuilder().AsFileCollection(false, "/libs/a.jar").BuildExternal()
		collection := source.(*entitybuilders.StubExternalFileCollection)

		// when
		result := entities.CopyGraph(source)
		collection.FileList[0] = "/changed.jar"

		// then
		assert.Equal(t, []string{"/libs/a.jar"}, result.Files())
	})

	t.Run("should preserve sharing of a child reachable through two parents", func(t *testing.T) {
		t.Parallel()

		// given
		shared := entitybuilders.NewExternalDependencyBuilder().WithID("g", "shared", "1").BuildExternal()
		left := entitybuilders.NewExternalDependencyBuilder().WithID("g", "left", "1").WithDependencies(shared).BuildExternal()
		right := entitybuilders.NewExternalDependencyBuilder().WithID("g", "right", "1").WithDependencies(shared).BuildExternal()
		root := entitybuilders.NewExternalDependencyBuilder().AsProject(":app").WithDependencies(left, right).BuildExternal()

		// when
		result := entities.CopyGraph(root)

		// then
		require.Len(t, result.Dependencies, 2)
		require.Len(t, result.Dependencies[0].Dependencies, 1)
		require.Len(t, result.Dependencies[1].Dependencies, 1)
		assert.Same(t, result.Dependencies[0].Dependencies[0], result.Dependencies[1].Dependencies[0])
	})

	t.Run("should share nodes between roots copied together", func(t *testing.T) {
		t.Parallel()

		// given
		shared := entitybuilders.NewExternalDependencyBuilder().WithID("g", "shared", "1").BuildExternal()
		first := entitybuilders.NewExternalDependencyBuilder().WithID("g", "a", "1").WithDependencies(shared).BuildExternal()
		second := entitybuilders.NewExternalDependencyBuilder().WithID("g", "b", "1").WithDependencies(shared).BuildExternal()

		// when
		results := entities.CopyGraphs([]entities.ExternalDependency{first, second, nil})

		// then
		require.Len(t, results, 2)
		assert.Same(t, results[0].Dependencies[0], results[1].Dependencies[0])
	})

	t.Run("should terminate on a two-node cycle and link back to the copy", func(t *testing.T) {
		t.Parallel()

		// given
		a := entitybuilders.NewExternalDependencyBuilder().WithID("g", "a", "1").BuildExternal()
		b := entitybuilders.NewExternalDependencyBuilder().WithID("g", "b", "1").WithDependencies(a).BuildExternal()
		entitybuilders.Link(a, b)

		// when
		result := entities.CopyGraph(a)

		// then
		require.Len(t, result.Dependencies, 1)
		copiedB := result.Dependencies[0]
		assert.Equal(t, "b", copiedB.ID.Name)
		require.Len(t, copiedB.Dependencies, 1)
		assert.Same(t, result, copiedB.Dependencies[0])
	})

	t.Run("should terminate on a self reference", func(t *testing.T) {
		t.Parallel()

		// given
		self := entitybuilders.NewExternalDependencyBuilder().BuildExternal()
		entitybuilders.Link(self, self)

		// when
		result := entities.CopyGraph(self)

		// then
		require.Len(t, result.Dependencies, 1)
		assert.Same(t, result, result.Dependencies[0])
	})

	t.Run("should degrade an unknown kind to an unresolved node", func(t *testing.T) {
		t.Parallel()

		// given
		unknown := entitybuilders.NewExternalDependencyBuilder().WithID("g", "odd", "1").AsUnknown().BuildExternal()

		// when
		result := entities.CopyGraph(unknown)

		// then
		assert.Equal(t, entities.KindUnresolved, result.Kind())
		require.IsType(t, entities.UnresolvedDependency{}, result.Variant)
		assert.Contains(t, result.Variant.(entities.UnresolvedDependency).FailureMessage, "unknown dependency kind")
		assert.Equal(t, "odd", result.ID.Name)
	})

	t.Run("should skip nil children", func(t *testing.T) {
		t.Parallel()

		// given
		child := entitybuilders.NewExternalDependencyBuilder().WithID("g", "child", "1").BuildExternal()
		root := entitybuilders.NewExternalDependencyBuilder().WithDependencies(nil, child, nil).BuildExternal()

		// when
		result := entities.CopyGraph(root)

		// then
		require.Len(t, result.Dependencies, 1)
		assert.Equal(t, "child", result.Dependencies[0].ID.Name)
	})

	t.Run("should copy nodes of a non-comparable type without memoizing them", func(t *testing.T) {
		t.Parallel()

		// given
		child := entitybuilders.NewExternalDependencyBuilder().WithID("g", "child", "1").BuildExternal()
		root := valueDependency{children: []entities.ExternalDependency{child, child}}

		// when
		result := entities.CopyGraph(root)

		// then
		require.NotNil(t, result)
		assert.Equal(t, entities.KindUnresolved, result.Kind())
		require.Len(t, result.Dependencies, 2)
		assert.Same(t, result.Dependencies[0], result.Dependencies[1])
	})

	t.Run("should copy a value node holding an unhashable payload", func(t *testing.T) {
		t.Parallel()

		// given
		child := entitybuilders.NewExternalDependencyBuilder().WithID("g", "child", "1").BuildExternal()
		root := taggedDependency{tag: []string{"x"}, children: []entities.ExternalDependency{child}}

		// when
		var result *entities.Dependency
		require.NotPanics(t, func() { result = entities.CopyGraph(root) })

		// then
		require.NotNil(t, result)
		assert.Equal(t, "tagged", result.ID.Name)
		require.Len(t, result.Dependencies, 1)
		assert.Equal(t, "child", result.Dependencies[0].ID.Name)
	})

	t.Run("should close a cycle through a value node on its own copy", func(t *testing.T) {
		t.Parallel()

		// given
		children := make([]entities.ExternalDependency, 1)
		root := valueDependency{children: children}
		children[0] = root

		// when
		result := entities.CopyGraph(root)

		// then
		require.NotNil(t, result)
		require.Len(t, result.Dependencies, 1)
		assert.Same(t, result, result.Dependencies[0])
	})

	t.Run("should close a cycle that passes through pointer and value nodes", func(t *testing.T) {
		t.Parallel()

		// given
		pointer := entitybuilders.NewExternalDependencyBuilder().WithID("g", "pointer", "1").BuildExternal()
		value := valueDependency{children: []entities.ExternalDependency{pointer}}
		entitybuilders.Link(pointer, value)

		// when
		result := entities.CopyGraph(value)

		// then
		require.Len(t, result.Dependencies, 1)
		copiedPointer := result.Dependencies[0]
		require.Len(t, copiedPointer.Dependencies, 1)
		assert.Same(t, result, copiedPointer.Dependencies[0])
	})
}
