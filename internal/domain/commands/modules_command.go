package commands

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/rios0rios0/buildgraph/internal/domain/entities"
	"github.com/rios0rios0/buildgraph/internal/domain/repositories"
)

// Modules is the interface for the modules command.
type Modules interface {
	Execute(ctx context.Context, settings *entities.Settings, opts ModulesOptions) ([]entities.ModuleSummary, error)
}

// ModulesOptions holds runtime options for the module listing.
type ModulesOptions struct {
	Path    string
	Verbose bool
}

// ModulesCommand lists the modules of a workspace with their plugins and
// whether their outputs could be indexed.
type ModulesCommand struct {
	loader repositories.WorkspaceLoader
}

// NewModulesCommand creates a new ModulesCommand.
func NewModulesCommand(loader repositories.WorkspaceLoader) *ModulesCommand {
	return &ModulesCommand{loader: loader}
}

// Execute loads the workspace at opts.Path and summarizes every module in listing order.
func (it *ModulesCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	opts ModulesOptions,
) ([]entities.ModuleSummary, error) {
	if opts.Verbose {
		logger.SetLevel(logger.DebugLevel)
	}

	workspace, err := it.loader.Load(ctx, opts.Path)
	if err != nil {
		return nil, err
	}

	modules, err := workspace.ListModules(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list modules: %w", err)
	}

	index := entities.NewArtifactIndex(0)
	summaries := make([]entities.ModuleSummary, len(modules))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(settings.Workers)
	seen := make(map[string]struct{}, len(modules))
	for i, module := range modules {
		if _, dup := seen[module.ID]; dup {
			summaries[i] = entities.ModuleSummary{
				ID:             module.ID,
				AppliedPlugins: module.PluginSet(),
				SourceSets:     []string{},
				Error: fmt.Errorf(
					"%w: module %q is listed more than once", entities.ErrModuleReentry, module.ID,
				).Error(),
			}
			continue
		}
		seen[module.ID] = struct{}{}
		group.Go(func() error {
			if ctxErr := groupCtx.Err(); ctxErr != nil {
				return ctxErr
			}
			summaries[i] = summarize(groupCtx, workspace, index, module)
			return nil
		})
	}
	if waitErr := group.Wait(); waitErr != nil {
		return nil, waitErr
	}

	// statuses are final only once every module went through the index
	for i := range summaries {
		summaries[i].IndexStatus = index.Status(summaries[i].ID).String()
	}
	return summaries, nil
}

func summarize(
	ctx context.Context,
	workspace repositories.SourceSetEnumerator,
	index *entities.ArtifactIndex,
	module entities.Module,
) entities.ModuleSummary {
	summary := entities.ModuleSummary{
		ID:             module.ID,
		AppliedPlugins: module.PluginSet(),
		SourceSets:     []string{},
	}

	sourceSets, err := workspace.SourceSetsFor(ctx, module.ID)
	if err != nil {
		summary.Error = err.Error()
		if markErr := index.MarkModuleFailed(module.ID); markErr != nil {
			summary.Error = markErr.Error()
		}
		return summary
	}
	for _, sourceSet := range sourceSets {
		summary.SourceSets = append(summary.SourceSets, sourceSet.Name)
	}
	if recordErr := index.RecordModule(module.ID, sourceSets); recordErr != nil {
		summary.Error = recordErr.Error()
	}
	return summary
}
