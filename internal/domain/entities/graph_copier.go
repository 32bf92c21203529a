package entities

import (
	"fmt"
	"reflect"

	logger "github.com/sirupsen/logrus"
)

// CopyGraph deep-copies an external dependency and everything reachable from it
// into freshly owned nodes. Shared source nodes stay shared in the copy and
// cycles are linked back to the in-progress copy instead of being re-entered.
func CopyGraph(root ExternalDependency) *Dependency {
	if root == nil {
		return nil
	}
	return newGraphCopier().copy(root)
}

// CopyGraphs copies several roots with one memo, so nodes shared between
// roots are also shared between the returned graphs.
func CopyGraphs(roots []ExternalDependency) []*Dependency {
	copier := newGraphCopier()
	result := make([]*Dependency, 0, len(roots))
	for _, root := range roots {
		if root == nil {
			continue
		}
		result = append(result, copier.copy(root))
	}
	return result
}

// graphCopier holds the identity memo for a single copy call.
type graphCopier struct {
	copies map[nodeIdentity]*Dependency
	// value nodes being copied on the current path, innermost last
	inProgress []valueCopy
}

// nodeIdentity identifies a pointer-shaped source node. The type is part of
// the key because distinct zero-size values may share an address.
type nodeIdentity struct {
	typ     reflect.Type
	address uintptr
}

type valueCopy struct {
	source ExternalDependency
	target *Dependency
}

func newGraphCopier() *graphCopier {
	return &graphCopier{copies: make(map[nodeIdentity]*Dependency)}
}

func (c *graphCopier) copy(source ExternalDependency) *Dependency {
	value := reflect.ValueOf(source)
	byPointer := value.Kind() == reflect.Pointer
	var identity nodeIdentity
	if byPointer {
		identity = nodeIdentity{typ: value.Type(), address: value.Pointer()}
		if existing, ok := c.copies[identity]; ok {
			return existing
		}
	} else if existing, ok := c.onPath(source); ok {
		return existing
	}

	target := &Dependency{
		ID:              source.ID(),
		Scope:           source.Scope(),
		SelectionReason: source.SelectionReason(),
		ClasspathOrder:  source.ClasspathOrder(),
		Exported:        source.Exported(),
		Variant:         copyVariant(source),
	}
	// registered before the children so that back references link to this node
	if byPointer {
		c.copies[identity] = target
	} else {
		c.inProgress = append(c.inProgress, valueCopy{source: source, target: target})
		defer func() { c.inProgress = c.inProgress[:len(c.inProgress)-1] }()
	}

	children := source.Dependencies()
	if len(children) > 0 {
		target.Dependencies = make([]*Dependency, 0, len(children))
		for _, child := range children {
			if child == nil {
				continue
			}
			target.Dependencies = append(target.Dependencies, c.copy(child))
		}
	}
	return target
}

// onPath finds a value node that is already being copied further up the
// current path. Value nodes have no identity, so an equal ancestor is taken
// as the same node and the cycle is closed on its copy.
func (c *graphCopier) onPath(source ExternalDependency) (*Dependency, bool) {
	for i := len(c.inProgress) - 1; i >= 0; i-- {
		if reflect.DeepEqual(c.inProgress[i].source, source) {
			return c.inProgress[i].target, true
		}
	}
	return nil, false
}

func copyVariant(source ExternalDependency) Variant {
	switch node := source.(type) {
	case ExternalLibraryDependency:
		return LibraryDependency{
			File:    node.File(),
			Source:  node.Source(),
			Javadoc: node.Javadoc(),
		}
	case ExternalFileCollectionDependency:
		return FileCollectionDependency{
			Files:                append([]string(nil), node.Files()...),
			ExcludedFromIndexing: node.ExcludedFromIndexing(),
		}
	case ExternalProjectDependency:
		return ProjectDependency{ProjectPath: node.ProjectPath()}
	case ExternalUnresolvedDependency:
		return UnresolvedDependency{FailureMessage: node.FailureMessage()}
	default:
		logger.Warnf("Unknown dependency kind %T for '%s', copying it as unresolved", source, source.ID())
		return UnresolvedDependency{
			FailureMessage: fmt.Sprintf("unknown dependency kind %T", source),
		}
	}
}
