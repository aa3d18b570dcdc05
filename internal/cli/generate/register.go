// Package generate provides the CLI commands that produce and check community
// configuration files.
// Includes: terms, namespaces, check
package generate

import (
	"github.com/spf13/cobra"
)

// Register adds all generation commands to the root command.
// This function is called from the root CLI package during initialization.
func Register(rootCmd *cobra.Command) {
	rootCmd.AddCommand(newTermsCmd())
	rootCmd.AddCommand(newNamespacesCmd())
	rootCmd.AddCommand(newCheckCmd())
}
