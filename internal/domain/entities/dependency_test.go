//go:build unit

package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rios0rios0/buildgraph/internal/domain/entities"
	"github.com/rios0rios0/buildgraph/test/domain/entitybuilders"
)

func TestDependency(t *testing.T) {
	t.Parallel()

	t.Run("should report a missing variant as unresolved", func(t *testing.T) {
		t.Parallel()

		// given
		dependency := entitybuilders.NewDependencyBuilder().WithVariant(nil).BuildDependency()

		// when
		kind := dependency.Kind()

		// then
		assert.Equal(t, entities.KindUnresolved, kind)
		assert.Empty(t, dependency.Files())
	})

	t.Run("should return the artifact file of a library", func(t *testing.T) {
		t.Parallel()

		// given
		dependency := entitybuilders.NewDependencyBuilder().
			WithVariant(entities.LibraryDependency{File: "/repo/guava.jar"}).
			BuildDependency()

		// when
		files := dependency.Files()

		// then
		assert.Equal(t, entities.KindLibrary, dependency.Kind())
		assert.Equal(t, []string{"/repo/guava.jar"}, files)
		assert.Equal(t, "library '/repo/guava.jar'", dependency.String())
	})

	t.Run("should return every file of a file collection", func(t *testing.T) {
		t.Parallel()

		// given
		dependency := entitybuilders.NewDependencyBuilder().
			WithVariant(entities.FileCollectionDependency{Files: []string{"/libs/a.jar", "/libs/b.jar"}}).
			BuildDependency()

		// when
		files := dependency.Files()

		// then
		assert.Equal(t, entities.KindFileCollection, dependency.Kind())
		assert.Equal(t, []string{"/libs/a.jar", "/libs/b.jar"}, files)
	})

	t.Run("should contribute no files for project and unresolved nodes", func(t *testing.T) {
		t.Parallel()

		// given
		project := entitybuilders.NewDependencyBuilder().
			WithVariant(entities.ProjectDependency{ProjectPath: ":core"}).
			BuildDependency()
		unresolved := entitybuilders.NewDependencyBuilder().
			WithVariant(entities.UnresolvedDependency{FailureMessage: "not found"}).
			BuildDependency()

		// when
		projectFiles := project.Files()
		unresolvedFiles := unresolved.Files()

		// then
		assert.Empty(t, projectFiles)
		assert.Empty(t, unresolvedFiles)
		assert.Equal(t, "project ':core'", project.String())
		assert.Contains(t, unresolved.String(), "not found")
	})

	t.Run("should name anonymous file collections after their files", func(t *testing.T) {
		t.Parallel()

		// given
		files := []string{"a.jar", "b.jar"}

		// when
		id := entities.NewFileCollectionID(files)

		// then
		assert.Equal(t, "[a.jar, b.jar]", id.Name)
	})
}
