//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/buildgraph/internal/domain/repositories"
)

// StubPluginDescriptorRepository implements repositories.PluginDescriptorRepository.
type StubPluginDescriptorRepository struct {
	Plugins      []string
	DiscoverErr  error
	ArchiveCalls [][]string
}

var _ repositories.PluginDescriptorRepository = (*StubPluginDescriptorRepository)(nil)

func (s *StubPluginDescriptorRepository) DiscoverPlugins(
	_ context.Context,
	archives []string,
) (map[string]struct{}, error) {
	s.ArchiveCalls = append(s.ArchiveCalls, archives)
	available := make(map[string]struct{}, len(s.Plugins))
	for _, plugin := range s.Plugins {
		available[plugin] = struct{}{}
	}
	return available, s.DiscoverErr
}

// StubRevisionRepository implements repositories.RevisionRepository.
type StubRevisionRepository struct {
	Value       string
	RevisionErr error
}

var _ repositories.RevisionRepository = (*StubRevisionRepository)(nil)

func (s *StubRevisionRepository) Revision(_ context.Context, _ string) (string, error) {
	return s.Value, s.RevisionErr
}
