package commands

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	logger "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/rios0rios0/buildgraph/internal/domain/entities"
	"github.com/rios0rios0/buildgraph/internal/domain/repositories"
)

// Report is the interface for the report command.
type Report interface {
	Execute(ctx context.Context, settings *entities.Settings, opts ReportOptions) (*entities.Report, error)
}

// ReportOptions holds runtime options for a single report.
type ReportOptions struct {
	Path    string   // Workspace directory or manifest file
	Modules []string // If set, only report these modules (CLI override)
	Verbose bool
}

// ReportCommand assembles the dependency report of a workspace:
// load workspace -> index module outputs -> copy and flatten graphs -> resolve sources.
type ReportCommand struct {
	loader    repositories.WorkspaceLoader
	plugins   repositories.PluginDescriptorRepository
	revisions repositories.RevisionRepository
}

// NewReportCommand creates a new ReportCommand with the given collaborators.
func NewReportCommand(
	loader repositories.WorkspaceLoader,
	plugins repositories.PluginDescriptorRepository,
	revisions repositories.RevisionRepository,
) *ReportCommand {
	return &ReportCommand{
		loader:    loader,
		plugins:   plugins,
		revisions: revisions,
	}
}

// Execute loads the workspace at opts.Path and builds its report.
func (it *ReportCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	opts ReportOptions,
) (*entities.Report, error) {
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
	modules = filterModules(modules, opts.Modules)

	logger.Infof("Building report for %d module(s) with %d worker(s)", len(modules), settings.Workers)
	return it.BuildReport(ctx, settings, workspace, modules)
}

// moduleRun tracks one listed module through both phases.
type moduleRun struct {
	module    entities.Module
	indexErr  error
	reentrant bool
}

// BuildReport indexes the outputs of every module, then assembles one record
// per module. Failures of one module are recorded in its record and never
// abort the others. Modules rejected with entities.ErrModuleReentry are left
// out of the report; their errors are joined and returned next to it.
func (it *ReportCommand) BuildReport(
	ctx context.Context,
	settings *entities.Settings,
	workspace repositories.Workspace,
	modules []entities.Module,
) (*entities.Report, error) {
	index := entities.NewArtifactIndex(settings.SourceCacheSize)

	// the first listing of a module wins; later ones never reach the index
	var reentryErrs []error
	runs := make([]*moduleRun, 0, len(modules))
	seen := make(map[string]struct{}, len(modules))
	for _, module := range modules {
		if _, dup := seen[module.ID]; dup {
			err := fmt.Errorf("%w: module %q is listed more than once", entities.ErrModuleReentry, module.ID)
			logger.Warnf("[%s] Skipping module: %v", module.ID, err)
			reentryErrs = append(reentryErrs, err)
			continue
		}
		seen[module.ID] = struct{}{}
		runs = append(runs, &moduleRun{module: module})
	}

	// all outputs must be indexed before any source lookup
	if err := it.indexModules(ctx, settings.Workers, workspace, index, runs); err != nil {
		return nil, err
	}

	scheduled := make([]*moduleRun, 0, len(runs))
	for _, run := range runs {
		if run.reentrant {
			logger.Warnf("[%s] Skipping module: %v", run.module.ID, run.indexErr)
			reentryErrs = append(reentryErrs, run.indexErr)
			continue
		}
		scheduled = append(scheduled, run)
	}

	archives := append(slices.Clone(workspace.PluginArchives()), settings.PluginArchives...)
	available := it.availablePlugins(ctx, archives)

	report := &entities.Report{
		Workspace:      workspace.Root(),
		PluginArchives: archives,
		Modules:        make(map[string]*entities.ModuleReport, len(scheduled)),
	}

	var mu sync.Mutex
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(settings.Workers)
	for _, run := range scheduled {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			moduleReport := it.assembleModule(groupCtx, settings, workspace, index, run, available)

			mu.Lock()
			report.Modules[run.module.ID] = moduleReport
			mu.Unlock()
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	report.Revision = it.revision(ctx, workspace.Root())
	report.VersionSkews = entities.ComputeVersionSkews(report.Modules)

	return report, errors.Join(reentryErrs...)
}

func (it *ReportCommand) indexModules(
	ctx context.Context,
	workers int,
	workspace repositories.Workspace,
	index *entities.ArtifactIndex,
	runs []*moduleRun,
) error {
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(workers)

	for _, run := range runs {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			id := run.module.ID

			sourceSets, err := workspace.SourceSetsFor(groupCtx, id)
			if err != nil {
				logger.Warnf("[%s] Failed to enumerate source sets: %v", id, err)
				run.indexErr = fmt.Errorf("failed to enumerate source sets: %w", err)
				if markErr := index.MarkModuleFailed(id); markErr != nil {
					run.indexErr = markErr
					run.reentrant = true
				}
				return nil
			}

			if recordErr := index.RecordModule(id, sourceSets); recordErr != nil {
				run.indexErr = recordErr
				run.reentrant = errors.Is(recordErr, entities.ErrModuleReentry)
				return nil
			}
			logger.Debugf("[%s] Indexed %d source set(s)", id, len(sourceSets))
			return nil
		})
	}

	return group.Wait()
}

func (it *ReportCommand) assembleModule(
	ctx context.Context,
	settings *entities.Settings,
	workspace repositories.Workspace,
	index *entities.ArtifactIndex,
	run *moduleRun,
	available map[string]struct{},
) *entities.ModuleReport {
	module := run.module
	if available != nil {
		module = module.RestrictPlugins(available)
	}

	moduleReport := &entities.ModuleReport{
		AppliedPlugins:          module.PluginSet(),
		Dependencies:            []entities.DependencyRecord{},
		ResolvedArtifactSources: []string{},
		IndexStatus:             index.Status(module.ID).String(),
	}

	var errs []error
	if run.indexErr != nil {
		errs = append(errs, run.indexErr)
	}

	roots, err := workspace.Resolve(ctx, module.ID)
	if err != nil {
		logger.Warnf("[%s] Failed to resolve dependencies: %v", module.ID, err)
		errs = append(errs, fmt.Errorf("failed to resolve dependencies: %w", err))
	} else {
		graph := entities.CopyGraphs(roots)

		var files []string
		unresolved := 0
		for dependency := range entities.Traverse(graph) {
			if settings.IsScopeExcluded(dependency.Scope) {
				continue
			}
			moduleReport.Dependencies = append(moduleReport.Dependencies, entities.NewDependencyRecord(dependency))
			if dependency.Kind() == entities.KindUnresolved {
				unresolved++
			}
			if collection, ok := dependency.Variant.(entities.FileCollectionDependency); ok && collection.ExcludedFromIndexing {
				continue
			}
			files = append(files, dependency.Files()...)
		}
		if unresolved > 0 {
			logger.Warnf("[%s] %d dependency(ies) could not be resolved", module.ID, unresolved)
		}
		moduleReport.ResolvedArtifactSources = index.FindSourcesForArtifacts(files)
	}

	if joined := errors.Join(errs...); joined != nil {
		moduleReport.Error = joined.Error()
	}

	logger.Debugf(
		"[%s] %d dependency record(s), %d resolved source dir(s)",
		module.ID, len(moduleReport.Dependencies), len(moduleReport.ResolvedArtifactSources),
	)
	return moduleReport
}

// availablePlugins returns the plugin ids packaged in archives, or nil when
// applied plugins should be reported unrestricted.
func (it *ReportCommand) availablePlugins(ctx context.Context, archives []string) map[string]struct{} {
	if len(archives) == 0 {
		return nil
	}

	available, err := it.plugins.DiscoverPlugins(ctx, archives)
	if err != nil {
		logger.Warnf("Plugin discovery failed, reporting applied plugins unrestricted: %v", err)
		return nil
	}
	logger.Debugf("Discovered %d plugin id(s) in %d archive(s)", len(available), len(archives))
	return available
}

func (it *ReportCommand) revision(ctx context.Context, root string) string {
	revision, err := it.revisions.Revision(ctx, root)
	if err != nil {
		logger.Warnf("Could not read the workspace revision: %v", err)
		return ""
	}
	return revision
}

// filterModules keeps the modules named in wanted, in listing order. An empty
// filter keeps every module.
func filterModules(modules []entities.Module, wanted []string) []entities.Module {
	if len(wanted) == 0 {
		return modules
	}

	set := make(map[string]struct{}, len(wanted))
	for _, id := range wanted {
		set[id] = struct{}{}
	}

	filtered := make([]entities.Module, 0, len(wanted))
	found := make(map[string]struct{}, len(wanted))
	for _, module := range modules {
		if _, ok := set[module.ID]; ok {
			filtered = append(filtered, module)
			found[module.ID] = struct{}{}
		}
	}
	for _, id := range wanted {
		if _, ok := found[id]; !ok {
			logger.Warnf("Module %q is not part of the workspace", id)
		}
	}
	return filtered
}
