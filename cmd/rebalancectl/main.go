// Command rebalancectl runs the intermediate state computation against a
// config file and a cluster snapshot, and can print the JSON
// Schema of the throttle configuration surface.
//
// Grounded on the teacher's cli/cli.go (RegisterCommands attaching
// subcommands to a root *cobra.Command) and cli/run.go (re-using a
// zerolog.Logger across the command tree).
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Beaver-Company/helix/pkg/telemetry"
)

var rootCmd = &cobra.Command{
	Use:   "rebalancectl",
	Short: "compute intermediate cluster state assignments",
}

func main() {
	log.Logger = telemetry.NewLogger(false)
	RegisterCommands(rootCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// RegisterCommands wires every rebalancectl subcommand onto root, in the
// same style as the teacher's cli.RegisterCommands.
func RegisterCommands(root *cobra.Command) {
	root.AddCommand(runCmd)
	root.AddCommand(schemaCmd)
	root.AddCommand(batchCmd)
}
