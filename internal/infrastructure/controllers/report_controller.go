package controllers

import (
	"context"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/buildgraph/internal/domain/commands"
	"github.com/rios0rios0/buildgraph/internal/domain/entities"
)

// ReportController handles the "report" subcommand and the bare root command.
type ReportController struct {
	command commands.Report
}

// NewReportController creates a new ReportController.
func NewReportController(command commands.Report) *ReportController {
	return &ReportController{command: command}
}

// GetBind returns the Cobra command metadata for the report controller.
func (it *ReportController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "report [workspace]",
		Short: "Build the dependency report of a workspace",
		Long: `Load a workspace manifest, index the outputs of every module,
copy and flatten each module's dependency graph, and map library
artifacts that are really module outputs back to their source directories.

The report is written to stdout as JSON or YAML.`,
	}
}

// Execute builds the report and prints it.
func (it *ReportController) Execute(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	verbose, _ := cmd.Flags().GetBool("verbose")
	moduleFilter, _ := cmd.Flags().GetStringSlice("module")

	settings, err := loadSettings(cmd)
	if err != nil {
		logger.Errorf("%v", err)
		return
	}

	report, err := it.command.Execute(ctx, settings, commands.ReportOptions{
		Path:    workspacePath(args),
		Modules: moduleFilter,
		Verbose: verbose,
	})
	if report == nil {
		logger.Errorf("Report failed: %v", err)
		return
	}
	if err != nil {
		logger.Errorf("Report is incomplete: %v", err)
	}

	if writeErr := writeOutput(cmd.OutOrStdout(), settings.Format, report); writeErr != nil {
		logger.Errorf("%v", writeErr)
	}
}

// AddFlags adds the report-specific flags to the given Cobra command.
func (it *ReportController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceP("module", "m", nil, "Only report these modules (repeatable)")
}
