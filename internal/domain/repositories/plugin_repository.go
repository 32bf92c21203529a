package repositories

import "context"

// PluginDescriptorRepository discovers the plugin ids published by packaged archives.
type PluginDescriptorRepository interface {
	DiscoverPlugins(ctx context.Context, archives []string) (map[string]struct{}, error)
}

// RevisionRepository reads the version-control revision a workspace is checked out at.
type RevisionRepository interface {
	// Revision returns an empty string without error when dir is not under version control.
	Revision(ctx context.Context, dir string) (string, error)
}
