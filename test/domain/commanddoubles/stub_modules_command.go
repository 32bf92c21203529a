//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/buildgraph/internal/domain/commands"
	"github.com/rios0rios0/buildgraph/internal/domain/entities"
)

// StubModulesCommand is a stub implementation of commands.Modules.
type StubModulesCommand struct {
	ExecuteCallCount int
	Result           []entities.ModuleSummary
	ExecuteErr       error
	LastSettings     *entities.Settings
	LastOpts         commands.ModulesOptions
}

var _ commands.Modules = (*StubModulesCommand)(nil)

func (s *StubModulesCommand) Execute(
	_ context.Context,
	settings *entities.Settings,
	opts commands.ModulesOptions,
) ([]entities.ModuleSummary, error) {
	s.ExecuteCallCount++
	s.LastSettings = settings
	s.LastOpts = opts
	return s.Result, s.ExecuteErr
}
