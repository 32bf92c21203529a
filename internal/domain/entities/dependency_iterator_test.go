//go:build unit

package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rios0rios0/buildgraph/internal/domain/entities"
	"github.com/rios0rios0/buildgraph/test/domain/entitybuilders"
)

func names(dependencies []*entities.Dependency) []string {
	result := make([]string, 0, len(dependencies))
	for _, dependency := range dependencies {
		result = append(result, dependency.ID.Name)
	}
	return result
}

func TestTraverse(t *testing.T) {
	t.Parallel()

	t.Run("should yield nothing for no roots", func(t *testing.T) {
		t.Parallel()

		// given
		var roots []*entities.Dependency

		// when
		result := entities.Flatten(roots)

		// then
		assert.Empty(t, result)
	})

	t.Run("should yield a shared child once in breadth-first order", func(t *testing.T) {
		t.Parallel()

		// given
		shared := entitybuilders.NewDependencyBuilder().WithID("g", "c", "1").BuildDependency()
		a := entitybuilders.NewDependencyBuilder().WithID("g", "a", "1").WithDependencies(shared).BuildDependency()
		b := entitybuilders.NewDependencyBuilder().WithID("g", "b", "1").WithDependencies(shared).BuildDependency()

		// when
		result := entities.Flatten([]*entities.Dependency{a, b})

		// then
		assert.Equal(t, []string{"a", "b", "c"}, names(result))
	})

	t.Run("should yield the same set regardless of root order", func(t *testing.T) {
		t.Parallel()

		// given
		shared := entitybuilders.NewDependencyBuilder().WithID("g", "c", "1").BuildDependency()
		a := entitybuilders.NewDependencyBuilder().WithID("g", "a", "1").WithDependencies(shared).BuildDependency()
		b := entitybuilders.NewDependencyBuilder().WithID("g", "b", "1").WithDependencies(shared, a).BuildDependency()

		// when
		forward := entities.Flatten([]*entities.Dependency{a, b})
		backward := entities.Flatten([]*entities.Dependency{b, a})

		// then
		assert.Len(t, forward, 3)
		assert.ElementsMatch(t, forward, backward)
	})

	t.Run("should terminate on a cycle and yield each node once", func(t *testing.T) {
		t.Parallel()

		// given
		a := entitybuilders.NewDependencyBuilder().WithID("g", "a", "1").BuildDependency()
		b := entitybuilders.NewDependencyBuilder().WithID("g", "b", "1").WithDependencies(a).BuildDependency()
		a.Dependencies = append(a.Dependencies, b)

		// when
		result := entities.Flatten([]*entities.Dependency{a})

		// then
		assert.Equal(t, []string{"a", "b"}, names(result))
	})

	t.Run("should treat a repeated root as one node and skip nil roots", func(t *testing.T) {
		t.Parallel()

		// given
		a := entitybuilders.NewDependencyBuilder().WithID("g", "a", "1").BuildDependency()

		// when
		result := entities.Flatten([]*entities.Dependency{a, nil, a})

		// then
		assert.Equal(t, []string{"a"}, names(result))
	})

	t.Run("should distinguish equal ids held by different nodes", func(t *testing.T) {
		t.Parallel()

		// given
		first := entitybuilders.NewDependencyBuilder().WithClasspathOrder(1).BuildDependency()
		second := entitybuilders.NewDependencyBuilder().WithClasspathOrder(2).BuildDependency()

		// when
		result := entities.Flatten([]*entities.Dependency{first, second})

		// then
		assert.Len(t, result, 2)
	})

	t.Run("should stop when the consumer breaks out of the loop", func(t *testing.T) {
		t.Parallel()

		// given
		child := entitybuilders.NewDependencyBuilder().WithID("g", "child", "1").BuildDependency()
		root := entitybuilders.NewDependencyBuilder().WithID("g", "root", "1").WithDependencies(child).BuildDependency()

		// when
		var visited []string
		for dependency := range entities.Traverse([]*entities.Dependency{root}) {
			visited = append(visited, dependency.ID.Name)
			break
		}

		// then
		assert.Equal(t, []string{"root"}, visited)
	})
}
