package shared

import (
	"fmt"
	"os"
	"strings"

	"github.com/neurobagel/communities/internal/config"
	apperrors "github.com/neurobagel/communities/internal/errors"
	"github.com/neurobagel/communities/internal/logger"
	"github.com/spf13/cobra"
)

// Runtime holds the configuration and logger resolved for a command run.
type Runtime struct {
	Config *config.Configuration
	Logger logger.Logger
}

// LoadRuntime loads the configuration named by the global --config flag and
// builds a logger writing to the command's error stream. The --log-level and
// --log-json flags override the configured values when set.
func LoadRuntime(cmd *cobra.Command) (*Runtime, *apperrors.CLIError) {
	path, _ := cmd.Flags().GetString("config")
	if cmd.Flags().Changed("config") {
		if _, err := os.Stat(path); err != nil {
			return nil, apperrors.ConfigParseError(path, err)
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, apperrors.ConfigParseError(path, err)
	}

	if cmd.Flags().Changed("log-level") {
		level, _ := cmd.Flags().GetString("log-level")
		if logger.ParseLevel(level) != logger.LogLevel(strings.ToLower(level)) {
			return nil, apperrors.NewArgumentError(
				fmt.Sprintf("invalid log level %q", level),
				"Use one of: debug, info, warn, error",
			)
		}
		cfg.LogLevel = strings.ToLower(level)
	}
	if cmd.Flags().Changed("log-json") {
		cfg.LogJSON, _ = cmd.Flags().GetBool("log-json")
	}

	log := logger.Setup(&logger.Config{
		Level:      logger.ParseLevel(cfg.LogLevel),
		Output:     cmd.ErrOrStderr(),
		JSON:       cfg.LogJSON,
		TimeFormat: logger.DefaultTimeFormat,
	})
	return &Runtime{Config: cfg, Logger: log}, nil
}
