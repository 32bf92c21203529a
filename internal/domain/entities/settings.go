package entities

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	FormatJSON = "json"
	FormatYAML = "yaml"

	defaultWorkers = 4
)

// Settings is the top-level configuration for buildgraph.
type Settings struct {
	Workers         int      `yaml:"workers"`
	Format          string   `yaml:"format"`
	SourceCacheSize int      `yaml:"source_cache_size"`
	ExcludedScopes  []string `yaml:"excluded_scopes"`
	PluginArchives  []string `yaml:"plugin_archives"` // Extra archives scanned for plugin descriptors
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// DefaultSettings returns the settings used when no config file exists.
func DefaultSettings() *Settings {
	return &Settings{
		Workers:         defaultWorkers,
		Format:          FormatJSON,
		SourceCacheSize: DefaultSourceCacheSize,
	}
}

// NewSettings reads and parses a configuration file on top of the defaults,
// expanding environment variables in paths.
func NewSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	settings := DefaultSettings()
	if unmarshalErr := yaml.Unmarshal(data, settings); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
	}

	for i := range settings.PluginArchives {
		settings.PluginArchives[i] = ExpandEnv(settings.PluginArchives[i])
	}

	if validateErr := ValidateSettings(settings); validateErr != nil {
		return nil, validateErr
	}

	return settings, nil
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
		"configs",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".buildgraph.yaml",
		".buildgraph.yml",
		"buildgraph.yaml",
		"buildgraph.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

// ExpandEnv expands ${ENV_VAR} references, warning about unset variables.
func ExpandEnv(raw string) string {
	if raw == "" {
		return raw
	}
	return envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})
}

// ValidateSettings checks for invalid configuration values.
func ValidateSettings(settings *Settings) error {
	if settings.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", settings.Workers)
	}
	if settings.Format != FormatJSON && settings.Format != FormatYAML {
		return fmt.Errorf("format must be %q or %q, got %q", FormatJSON, FormatYAML, settings.Format)
	}
	if settings.SourceCacheSize < 0 {
		return fmt.Errorf("source_cache_size must not be negative, got %d", settings.SourceCacheSize)
	}
	return nil
}

// IsScopeExcluded reports whether records of the given scope are dropped from reports.
func (s *Settings) IsScopeExcluded(scope string) bool {
	for _, excluded := range s.ExcludedScopes {
		if excluded == scope {
			return true
		}
	}
	return false
}
