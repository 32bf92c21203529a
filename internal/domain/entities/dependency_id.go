package entities

import "strings"

const defaultPackaging = "jar"

// DependencyID is the logical coordinate of a dependency node.
// It is a comparable value type: two ids are equal iff all five fields are equal,
// so it can be used directly as a map key. An absent classifier is the empty string.
type DependencyID struct {
	Group      string `json:"group,omitempty"      yaml:"group,omitempty"`
	Name       string `json:"name"                 yaml:"name"`
	Version    string `json:"version,omitempty"    yaml:"version,omitempty"`
	Packaging  string `json:"packaging,omitempty"  yaml:"packaging,omitempty"`
	Classifier string `json:"classifier,omitempty" yaml:"classifier,omitempty"`
}

// NewDependencyID creates an id with the default "jar" packaging and no classifier.
func NewDependencyID(group, name, version string) DependencyID {
	return DependencyID{
		Group:     group,
		Name:      name,
		Version:   version,
		Packaging: defaultPackaging,
	}
}

// WithPackaging returns a copy of the id using the given packaging.
func (id DependencyID) WithPackaging(packaging string) DependencyID {
	id.Packaging = packaging
	return id
}

// WithClassifier returns a copy of the id using the given classifier.
func (id DependencyID) WithClassifier(classifier string) DependencyID {
	id.Classifier = classifier
	return id
}

// Coordinate renders "group:name", omitting an empty group.
func (id DependencyID) Coordinate() string {
	if id.Group == "" {
		return id.Name
	}
	return id.Group + ":" + id.Name
}

// String renders "group:name:version[:classifier][@packaging]".
// The packaging suffix is only written when it differs from "jar".
func (id DependencyID) String() string {
	var sb strings.Builder
	sb.WriteString(id.Coordinate())
	if id.Version != "" {
		sb.WriteString(":" + id.Version)
	}
	if id.Classifier != "" {
		sb.WriteString(":" + id.Classifier)
	}
	if id.Packaging != "" && id.Packaging != defaultPackaging {
		sb.WriteString("@" + id.Packaging)
	}
	return sb.String()
}
