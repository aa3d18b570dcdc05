package generate

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/neurobagel/communities/internal/cli/shared"
	apperrors "github.com/neurobagel/communities/internal/errors"
	"github.com/neurobagel/communities/internal/jsonfile"
	"github.com/neurobagel/communities/internal/namespaces"
	"github.com/spf13/cobra"
)

func newNamespacesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "namespaces",
		Short: "Write the map of namespaces used by each community configuration",
		Long: `Scan every community configuration directory and write the namespace map.

For each directory the unique namespace prefix and URL pairs of config.json are
listed under "variables", and those of every term vocabulary file under "terms".
The imaging namespaces nidm and np are always included in "terms".`,
		Example: `  # Use the directories from the configuration
  nbcommunities namespaces

  # Scan another directory and write elsewhere
  nbcommunities namespaces --configs-dir ./configs --output ./config_namespace_map.json`,
		Args: cobra.NoArgs,
		RunE: runNamespaces,
	}
	cmd.GroupID = shared.GroupGenerate
	cmd.Flags().String("configs-dir", "", "Directory holding the community configurations (default from config)")
	cmd.Flags().String("output", "", "Namespace map file to write (default from config)")
	return cmd
}

func runNamespaces(cmd *cobra.Command, _ []string) error {
	rt, cliErr := shared.LoadRuntime(cmd)
	if cliErr != nil {
		return shared.Fail(cmd, cliErr)
	}

	configsDir := rt.Config.ConfigsDir
	if v, _ := cmd.Flags().GetString("configs-dir"); v != "" {
		configsDir = v
	}
	output := rt.Config.NamespaceMapFile
	if v, _ := cmd.Flags().GetString("output"); v != "" {
		output = v
	}

	rt.Logger.Info("Scanning community configurations", "configs_dir", configsDir)
	nsMap, err := namespaces.Build(configsDir)
	if err != nil {
		return shared.Fail(cmd, apperrors.WrapWithMessage(err, apperrors.Prerequisite,
			"Failed to read community configurations",
			"Check that --configs-dir points at the directory holding one folder per community",
			"Every JSON file must be an array of objects with namespace_prefix and namespace_url",
		))
	}

	if err := jsonfile.Write(output, nsMap); err != nil {
		return shared.Fail(cmd, apperrors.OutputWriteFailed(output, err))
	}

	rt.Logger.Debug("namespace map written", "configs", len(nsMap))
	green := color.New(color.FgGreen).SprintFunc()
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%d configurations)\n", green("Wrote"), output, len(nsMap))
	return nil
}
