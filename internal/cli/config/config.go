package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/neurobagel/communities/internal/cli/shared"
	"github.com/neurobagel/communities/internal/config"
	apperrors "github.com/neurobagel/communities/internal/errors"
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage nbcommunities configuration",
		Long: `Manage nbcommunities configuration.

Configuration precedence (highest to lowest):
  1. Command-line flags (--log-level, --log-json)
  2. Environment variables (COMMUNITIES_*)
  3. Config file (.communities.yml or --config)
  4. Built-in defaults`,
	}
	cmd.GroupID = shared.GroupConfiguration
	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newShowCmd())
	return cmd
}

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a configuration file holding the defaults",
		Example: `  # Create .communities.yml in the current directory
  nbcommunities config init

  # Overwrite an existing file
  nbcommunities config init --force`,
		Args: cobra.NoArgs,
		RunE: runInit,
	}
	cmd.Flags().BoolP("force", "f", false, "Overwrite existing config with defaults")
	return cmd
}

func runInit(cmd *cobra.Command, _ []string) error {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = config.DefaultConfigPath
	}
	force, _ := cmd.Flags().GetBool("force")

	if _, err := os.Stat(path); err == nil && !force {
		return shared.Fail(cmd, apperrors.NewArgumentError(
			fmt.Sprintf("Config file already exists: %s", path),
			"Use --force to overwrite it with the defaults",
		))
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return shared.Fail(cmd, apperrors.OutputWriteFailed(path, err))
		}
	}
	if err := os.WriteFile(path, []byte(config.GetDefaultConfigTemplate()), 0o644); err != nil {
		return shared.Fail(cmd, apperrors.OutputWriteFailed(path, err))
	}

	green := color.New(color.FgGreen).SprintFunc()
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", green("Created"), path)
	return nil
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, cliErr := shared.LoadRuntime(cmd)
			if cliErr != nil {
				return shared.Fail(cmd, cliErr)
			}
			out, err := config.YAMLParser().Marshal(rt.Config.Map())
			if err != nil {
				return shared.Fail(cmd, apperrors.Wrap(err, apperrors.Runtime))
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}
