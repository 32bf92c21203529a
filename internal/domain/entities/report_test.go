//go:build unit

package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/buildgraph/internal/domain/entities"
	"github.com/rios0rios0/buildgraph/test/domain/entitybuilders"
)

func libraryRecord(group, name, version string) entities.DependencyRecord {
	return entities.DependencyRecord{
		ID:   entities.NewDependencyID(group, name, version),
		Kind: entities.KindLibrary,
	}
}

func TestNewDependencyRecord(t *testing.T) {
	t.Parallel()

	t.Run("should flatten a library and reference children by id", func(t *testing.T) {
		t.Parallel()

		// given
		child := entitybuilders.NewDependencyBuilder().WithID("g", "child", "2.0").BuildDependency()
		dependency := entitybuilders.NewDependencyBuilder().
			WithID("g", "parent", "1.0").
			WithScope("runtime").
			WithExported(true).
			WithVariant(entities.LibraryDependency{File: "/m2/parent.jar", Source: "/m2/parent-sources.jar"}).
			WithDependencies(child).
			BuildDependency()

		// when
		record := entities.NewDependencyRecord(dependency)

		// then
		assert.Equal(t, entities.KindLibrary, record.Kind)
		assert.Equal(t, "runtime", record.Scope)
		assert.True(t, record.Exported)
		assert.Equal(t, "/m2/parent.jar", record.File)
		assert.Equal(t, "/m2/parent-sources.jar", record.Source)
		assert.Equal(t, []string{"g:child:2.0"}, record.Dependencies)
	})

	t.Run("should carry the failure message of an unresolved node", func(t *testing.T) {
		t.Parallel()

		// given
		dependency := entitybuilders.NewDependencyBuilder().
			WithVariant(entities.UnresolvedDependency{FailureMessage: "Could not resolve g:x:1"}).
			BuildDependency()

		// when
		record := entities.NewDependencyRecord(dependency)

		// then
		assert.Equal(t, entities.KindUnresolved, record.Kind)
		assert.Equal(t, "Could not resolve g:x:1", record.FailureMessage)
		assert.Empty(t, record.File)
	})

	t.Run("should carry project path and file collection fields", func(t *testing.T) {
		t.Parallel()

		// given
		project := entitybuilders.NewDependencyBuilder().
			WithVariant(entities.ProjectDependency{ProjectPath: ":core"}).
			BuildDependency()
		files := entitybuilders.NewDependencyBuilder().
			WithVariant(entities.FileCollectionDependency{Files: []string{"/libs/a.jar"}, ExcludedFromIndexing: true}).
			BuildDependency()

		// when
		projectRecord := entities.NewDependencyRecord(project)
		filesRecord := entities.NewDependencyRecord(files)

		// then
		assert.Equal(t, ":core", projectRecord.ProjectPath)
		assert.Equal(t, []string{"/libs/a.jar"}, filesRecord.Files)
		assert.True(t, filesRecord.ExcludedFromIndexing)
	})
}

func TestComputeVersionSkews(t *testing.T) {
	t.Parallel()

	t.Run("should report a coordinate seen with several versions newest first", func(t *testing.T) {
		t.Parallel()

		// given
		modules := map[string]*entities.ModuleReport{
			":app": {Dependencies: []entities.DependencyRecord{
				libraryRecord("com.google.guava", "guava", "31.1"),
				libraryRecord("org.slf4j", "slf4j-api", "2.0.7"),
			}},
			":core": {Dependencies: []entities.DependencyRecord{
				libraryRecord("com.google.guava", "guava", "32.0"),
				libraryRecord("com.google.guava", "guava", "1.9"),
				libraryRecord("org.slf4j", "slf4j-api", "2.0.7"),
			}},
		}

		// when
		skews := entities.ComputeVersionSkews(modules)

		// then
		require.Len(t, skews, 1)
		assert.Equal(t, "com.google.guava:guava", skews[0].Coordinate)
		assert.Equal(t, []string{"32.0", "31.1", "1.9"}, skews[0].Versions)
	})

	t.Run("should ignore non-library records and empty versions", func(t *testing.T) {
		t.Parallel()

		// given
		project := libraryRecord("", "core", "1.0")
		project.Kind = entities.KindProject
		modules := map[string]*entities.ModuleReport{
			":app": {Dependencies: []entities.DependencyRecord{
				project,
				libraryRecord("", "core", "2.0"),
				libraryRecord("g", "unversioned", ""),
			}},
		}

		// when
		skews := entities.ComputeVersionSkews(modules)

		// then
		assert.Empty(t, skews)
	})

	t.Run("should sort skews by coordinate", func(t *testing.T) {
		t.Parallel()

		// given
		modules := map[string]*entities.ModuleReport{
			":app": {Dependencies: []entities.DependencyRecord{
				libraryRecord("z", "last", "1.0"),
				libraryRecord("z", "last", "2.0"),
				libraryRecord("a", "first", "1.0"),
				libraryRecord("a", "first", "1.1"),
			}},
		}

		// when
		skews := entities.ComputeVersionSkews(modules)

		// then
		require.Len(t, skews, 2)
		assert.Equal(t, "a:first", skews[0].Coordinate)
		assert.Equal(t, "z:last", skews[1].Coordinate)
	})
}

func TestIsNewerVersion(t *testing.T) {
	t.Parallel()

	t.Run("should compare numerically when both versions are semver", func(t *testing.T) {
		t.Parallel()

		// given
		current, candidate := "1.9.0", "1.10.0"

		// when
		newer := entities.IsNewerVersion(current, candidate)

		// then
		assert.True(t, newer)
		assert.False(t, entities.IsNewerVersion(candidate, current))
	})

	t.Run("should fall back to string order for non-semver versions", func(t *testing.T) {
		t.Parallel()

		// given
		current, candidate := "release-a", "release-b"

		// when
		newer := entities.IsNewerVersion(current, candidate)

		// then
		assert.True(t, newer)
	})
}
