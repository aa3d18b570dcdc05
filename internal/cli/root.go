// nbcommunities - Neurobagel community configuration tooling
// Source: https://github.com/neurobagel/communities

// Package cli provides Cobra-based CLI commands for nbcommunities.
// It defines the generation commands (terms, namespaces, check), configuration
// management (config) and utility commands (version).
package cli

import (
	"context"

	"github.com/neurobagel/communities/internal/cli/config"
	"github.com/neurobagel/communities/internal/cli/generate"
	"github.com/neurobagel/communities/internal/cli/shared"
	"github.com/neurobagel/communities/internal/cli/util"
	appconfig "github.com/neurobagel/communities/internal/config"
	"github.com/spf13/cobra"
)

// Command group IDs for organizing help output (re-exported from shared)
const (
	GroupGenerate      = shared.GroupGenerate
	GroupConfiguration = shared.GroupConfiguration
)

// NewRootCmd builds the nbcommunities command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "nbcommunities",
		Short: "Neurobagel community configuration tooling",
		Long: `Neurobagel community configuration tooling

Generate standardized term vocabularies from Google Sheets and keep the map of
namespaces used by each community configuration up to date.

Source: https://github.com/neurobagel/communities`,
		Example: `  # Regenerate the term vocabularies of a community
  COMMUNITIES_GOOGLE_API_KEY=... nbcommunities terms configs/ENIGMA-PD

  # Rebuild config_metadata/config_namespace_map.json
  nbcommunities namespaces

  # Validate a local export before editing the sheet
  nbcommunities check assessment.csv`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	// Define command groups in display order
	rootCmd.AddGroup(&cobra.Group{ID: GroupGenerate, Title: "Generate:"})
	rootCmd.AddGroup(&cobra.Group{ID: GroupConfiguration, Title: "Configuration:"})

	// Assign built-in help and completion to configuration group
	rootCmd.SetHelpCommandGroupID(GroupConfiguration)
	rootCmd.SetCompletionCommandGroupID(GroupConfiguration)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", appconfig.DefaultConfigPath, "Path to config file")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("log-json", false, "Write logs as JSON")

	// Register commands from subpackages
	generate.Register(rootCmd)
	config.Register(rootCmd)
	util.Register(rootCmd)

	return rootCmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().ExecuteContext(context.Background())
}
