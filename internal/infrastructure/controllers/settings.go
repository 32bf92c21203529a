package controllers

import (
	"encoding/json"
	"fmt"
	"io"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rios0rios0/buildgraph/internal/domain/entities"
)

// loadSettings reads the config file named by --config, or the first one found
// in the default locations, and applies the command-line overrides on top.
func loadSettings(cmd *cobra.Command) (*entities.Settings, error) {
	configPath, _ := cmd.Flags().GetString("config")

	settings := entities.DefaultSettings()
	cfgPath := configPath
	if cfgPath == "" {
		found, err := entities.FindConfigFile()
		if err != nil {
			logger.Debugf("No config file found, using defaults: %v", err)
		}
		cfgPath = found
	}

	if cfgPath != "" {
		logger.Infof("Using config file: %s", cfgPath)
		loaded, err := entities.NewSettings(cfgPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		settings = loaded
	}

	if flag := cmd.Flags().Lookup("format"); flag != nil && flag.Changed {
		settings.Format = flag.Value.String()
	}
	if flag := cmd.Flags().Lookup("workers"); flag != nil && flag.Changed {
		settings.Workers, _ = cmd.Flags().GetInt("workers")
	}

	if err := entities.ValidateSettings(settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// workspacePath returns the positional workspace argument, defaulting to ".".
func workspacePath(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}

// writeOutput encodes value in the configured format.
func writeOutput(writer io.Writer, format string, value any) error {
	switch format {
	case entities.FormatYAML:
		encoder := yaml.NewEncoder(writer)
		encoder.SetIndent(2)
		if err := encoder.Encode(value); err != nil {
			return fmt.Errorf("failed to encode YAML output: %w", err)
		}
		return encoder.Close()
	case entities.FormatJSON:
		encoder := json.NewEncoder(writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(value); err != nil {
			return fmt.Errorf("failed to encode JSON output: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}
