package controllers

import (
	"context"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/buildgraph/internal/domain/commands"
	"github.com/rios0rios0/buildgraph/internal/domain/entities"
)

// ModulesController handles the "modules" subcommand.
type ModulesController struct {
	command commands.Modules
}

// NewModulesController creates a new ModulesController.
func NewModulesController(command commands.Modules) *ModulesController {
	return &ModulesController{command: command}
}

// GetBind returns the Cobra command metadata for the modules controller.
func (it *ModulesController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "modules [workspace]",
		Short: "List the modules of a workspace",
		Long:  `List every module with its applied plugins, source sets and index status.`,
	}
}

// Execute lists the modules and prints them.
func (it *ModulesController) Execute(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	verbose, _ := cmd.Flags().GetBool("verbose")

	settings, err := loadSettings(cmd)
	if err != nil {
		logger.Errorf("%v", err)
		return
	}

	summaries, err := it.command.Execute(ctx, settings, commands.ModulesOptions{
		Path:    workspacePath(args),
		Verbose: verbose,
	})
	if err != nil {
		logger.Errorf("Listing modules failed: %v", err)
		return
	}

	if writeErr := writeOutput(cmd.OutOrStdout(), settings.Format, summaries); writeErr != nil {
		logger.Errorf("%v", writeErr)
	}
}
