// Package config loads nbcommunities settings from defaults, an optional
// configuration file and COMMUNITIES_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variables read into the configuration.
const EnvPrefix = "COMMUNITIES_"

// DefaultConfigPath is the configuration file looked up when none is given.
const DefaultConfigPath = ".communities.yml"

// Configuration represents the nbcommunities CLI configuration
type Configuration struct {
	GoogleAPIKey     string `koanf:"google_api_key"`
	SheetsBaseURL    string `koanf:"sheets_base_url" validate:"required,url"`
	RequestTimeout   int    `koanf:"request_timeout" validate:"min=1,max=600"` // Seconds per Sheets API request
	ConfigsDir       string `koanf:"configs_dir" validate:"required"`
	NamespaceMapFile string `koanf:"namespace_map_file" validate:"required"`
	LogLevel         string `koanf:"log_level" validate:"oneof=debug info warn error"`
	LogJSON          bool   `koanf:"log_json"`
	ShowProgress     bool   `koanf:"show_progress"` // Show spinners while fetching spreadsheets
}

// Load loads configuration from defaults, the file at path (if it exists) and
// the environment.
// Priority: Environment variables > Config file > Defaults
func Load(path string) (*Configuration, error) {
	k := koanf.New(".")

	for key, value := range GetDefaults() {
		k.Set(key, value)
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			parser, err := parserFor(path)
			if err != nil {
				return nil, err
			}
			if err := k.Load(file.Provider(path), parser); err != nil {
				return nil, fmt.Errorf("failed to load config %s: %w", path, err)
			}
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateStruct(&cfg, path); err != nil {
		return nil, err
	}

	cfg.ConfigsDir = expandHomePath(cfg.ConfigsDir)
	cfg.NamespaceMapFile = expandHomePath(cfg.NamespaceMapFile)

	return &cfg, nil
}

// RequestTimeoutDuration returns the per-request timeout as a duration.
func (c *Configuration) RequestTimeoutDuration() time.Duration {
	return time.Duration(c.RequestTimeout) * time.Second
}

// validateStruct runs the struct tags and reports every failing field.
func validateStruct(cfg *Configuration, path string) error {
	validate := validator.New()
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("config validation failed: %w", err)
	}

	errs := make([]error, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		errs = append(errs, &ValidationError{
			FilePath: path,
			Field:    koanfKey(fe.StructField()),
			Message:  fmt.Sprintf("failed '%s' check (value %v)", fe.Tag(), fe.Value()),
		})
	}
	return fmt.Errorf("config validation failed: %w", errors.Join(errs...))
}

// koanfKey maps a struct field name back to its configuration key.
func koanfKey(structField string) string {
	for key, field := range fieldKeys {
		if field == structField {
			return key
		}
	}
	return structField
}

var fieldKeys = map[string]string{
	"google_api_key":     "GoogleAPIKey",
	"sheets_base_url":    "SheetsBaseURL",
	"request_timeout":    "RequestTimeout",
	"configs_dir":        "ConfigsDir",
	"namespace_map_file": "NamespaceMapFile",
	"log_level":          "LogLevel",
	"log_json":           "LogJSON",
	"show_progress":      "ShowProgress",
}

// parserFor selects a koanf parser from the file extension.
func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return json.Parser(), nil
	case ".yml", ".yaml":
		return YAMLParser(), nil
	default:
		return nil, fmt.Errorf("unsupported config file format %q (use .json, .yml or .yaml)", filepath.Ext(path))
	}
}

// envTransform converts environment variable names to config keys
// Example: COMMUNITIES_GOOGLE_API_KEY -> google_api_key
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}

// expandHomePath expands ~ to the user's home directory
func expandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(homeDir, path[2:])
		}
	}
	return path
}

// Map returns the configuration keyed by its file keys. A set API key is
// replaced with a fixed placeholder.
func (c *Configuration) Map() map[string]interface{} {
	apiKey := ""
	if c.GoogleAPIKey != "" {
		apiKey = "********"
	}
	return map[string]interface{}{
		"google_api_key":     apiKey,
		"sheets_base_url":    c.SheetsBaseURL,
		"request_timeout":    c.RequestTimeout,
		"configs_dir":        c.ConfigsDir,
		"namespace_map_file": c.NamespaceMapFile,
		"log_level":          c.LogLevel,
		"log_json":           c.LogJSON,
		"show_progress":      c.ShowProgress,
	}
}
