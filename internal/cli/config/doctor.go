package config

import (
	"fmt"

	"github.com/neurobagel/communities/internal/cli/shared"
	"github.com/neurobagel/communities/internal/health"
	"github.com/spf13/cobra"
)

func newDoctorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "doctor",
		Aliases: []string{"doc"},
		Short:   "Check configuration and community directories (doc)",
		Long: `Run health checks to verify that nbcommunities commands can run.

This command checks for:
  - A Google API key
  - The community configurations directory
  - A valid terms manifest in every community directory that has one
  - The directory of the namespace map file

Each check will display a checkmark if passed or an X with an error message if failed.`,
		Example: `  # Check everything
  nbcommunities doctor

  # Run before regenerating vocabularies
  nbcommunities doctor && nbcommunities terms configs/ENIGMA-PD`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, cliErr := shared.LoadRuntime(cmd)
			if cliErr != nil {
				return shared.Fail(cmd, cliErr)
			}

			report := health.RunHealthChecks(rt.Config)
			fmt.Fprint(cmd.OutOrStdout(), health.FormatReport(report))

			if !report.Passed {
				return shared.NewExitError(shared.ExitValidationFailed)
			}
			return nil
		},
	}
	cmd.GroupID = shared.GroupConfiguration
	return cmd
}
