package main

import (
	"os"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/buildgraph/internal"
	"github.com/rios0rios0/buildgraph/internal/domain/entities"
	"github.com/rios0rios0/buildgraph/internal/infrastructure/controllers"
)

func buildRootCommand(reportController *controllers.ReportController) *cobra.Command {
	//nolint:exhaustruct // Minimal Command initialization with required fields only
	cmd := &cobra.Command{
		Use:   "buildgraph [workspace]",
		Short: "Dependency report for multi-module builds",
		Long: `Reads a workspace manifest (workspace.yaml or workspace.hcl) describing the
modules of a build, their source sets and their resolved dependency graphs,
and prints a report pairing every module with its applied plugins, its
flattened dependencies and the source directories of dependencies that are
really outputs of other modules.

Usage modes:
  buildgraph                    Report the workspace in the current directory
  buildgraph /path/to/workspace Report a specific workspace
  buildgraph modules [path]     List the modules of a workspace`,
		Args: cobra.MaximumNArgs(1),
		Run: func(command *cobra.Command, args []string) {
			reportController.Execute(command, args)
		},
	}

	// Global persistent flags
	cmd.PersistentFlags().StringP("config", "c", "",
		"Path to config file (default: auto-detect)")
	cmd.PersistentFlags().StringP("format", "f", entities.FormatJSON,
		"Output format (json, yaml)")
	cmd.PersistentFlags().IntP("workers", "w", 0,
		"Number of modules processed concurrently (default: from config)")
	cmd.PersistentFlags().BoolP("verbose", "v", false,
		"Enable verbose output")

	reportController.AddFlags(cmd)
	return cmd
}

func addSubcommands(rootCmd *cobra.Command, appContext *internal.AppInternal) {
	for _, controller := range appContext.GetControllers() {
		bind := controller.GetBind()
		ctrl := controller
		//nolint:exhaustruct // Minimal Command initialization with required fields only
		subCmd := &cobra.Command{
			Use:   bind.Use,
			Short: bind.Short,
			Long:  bind.Long,
			Args:  cobra.MaximumNArgs(1),
			Run: func(command *cobra.Command, arguments []string) {
				ctrl.Execute(command, arguments)
			},
		}

		// Add controller-specific flags
		if rc, ok := ctrl.(*controllers.ReportController); ok {
			rc.AddFlags(subCmd)
		}

		rootCmd.AddCommand(subCmd)
	}
}

func main() {
	//nolint:exhaustruct // Minimal TextFormatter initialization with required fields only
	logger.SetFormatter(&logger.TextFormatter{
		ForceColors:   true,
		FullTimestamp: true,
	})
	logger.SetOutput(os.Stderr)
	if os.Getenv("DEBUG") == "true" {
		logger.SetLevel(logger.DebugLevel)
	}

	appContext, reportController := injectApp()
	cobraRoot := buildRootCommand(reportController)
	addSubcommands(cobraRoot, appContext)

	if err := cobraRoot.Execute(); err != nil {
		logger.Fatalf("Error executing 'buildgraph': %s", err)
	}
}
