// nbcommunities - Neurobagel community configuration tooling
// Source: https://github.com/neurobagel/communities

package main

import (
	"os"

	"github.com/neurobagel/communities/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
