//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/buildgraph/internal/domain/entities"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

// DependencyBuilder helps create copied dependency nodes with a fluent interface.
type DependencyBuilder struct {
	*testkit.BaseBuilder
	id           entities.DependencyID
	scope        string
	order        int
	exported     bool
	variant      entities.Variant
	dependencies []*entities.Dependency
}

// NewDependencyBuilder creates a new dependency builder with sensible defaults.
func NewDependencyBuilder() *DependencyBuilder {
	return &DependencyBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		id:          entities.NewDependencyID("com.example", "lib", "1.0"),
		scope:       "compile",
		variant:     entities.LibraryDependency{File: "/repo/lib-1.0.jar"},
	}
}

// WithID sets the group, name and version.
func (b *DependencyBuilder) WithID(group, name, version string) *DependencyBuilder {
	b.id = entities.NewDependencyID(group, name, version)
	return b
}

// WithScope sets the configuration scope.
func (b *DependencyBuilder) WithScope(scope string) *DependencyBuilder {
	b.scope = scope
	return b
}

// WithClasspathOrder sets the classpath position.
func (b *DependencyBuilder) WithClasspathOrder(order int) *DependencyBuilder {
	b.order = order
	return b
}

// WithExported sets the exported flag.
func (b *DependencyBuilder) WithExported(exported bool) *DependencyBuilder {
	b.exported = exported
	return b
}

// WithVariant sets the kind-specific payload.
func (b *DependencyBuilder) WithVariant(variant entities.Variant) *DependencyBuilder {
	b.variant = variant
	return b
}

// WithDependencies sets the children.
func (b *DependencyBuilder) WithDependencies(dependencies ...*entities.Dependency) *DependencyBuilder {
	b.dependencies = dependencies
	return b
}

// Build creates the dependency (satisfies testkit.Builder interface).
func (b *DependencyBuilder) Build() interface{} {
	return b.BuildDependency()
}

// BuildDependency creates the dependency with a concrete return type.
func (b *DependencyBuilder) BuildDependency() *entities.Dependency {
	return &entities.Dependency{
		ID:             b.id,
		Scope:          b.scope,
		ClasspathOrder: b.order,
		Exported:       b.exported,
		Variant:        b.variant,
		Dependencies:   append([]*entities.Dependency(nil), b.dependencies...),
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *DependencyBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.id = entities.NewDependencyID("com.example", "lib", "1.0")
	b.scope = "compile"
	b.order = 0
	b.exported = false
	b.variant = entities.LibraryDependency{File: "/repo/lib-1.0.jar"}
	b.dependencies = nil
	return b
}

// Clone creates a deep copy of the DependencyBuilder.
func (b *DependencyBuilder) Clone() testkit.Builder {
	return &DependencyBuilder{
		BaseBuilder:  b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		id:           b.id,
		scope:        b.scope,
		order:        b.order,
		exported:     b.exported,
		variant:      b.variant,
		dependencies: append([]*entities.Dependency(nil), b.dependencies...),
	}
}
