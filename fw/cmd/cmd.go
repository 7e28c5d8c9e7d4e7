// Package cmd wires the path-selection simulator into a cobra command:
// a single positional scenario-file argument, loaded with
// toolutils.ReadYaml, driving a Run that exits with a diagnostic on
// failure rather than panicking.
package cmd

import (
	"fmt"
	"os"

	"github.com/named-data/ndnd-pathsel/fw/sim"
	"github.com/named-data/ndnd-pathsel/std/utils/toolutils"
	"github.com/spf13/cobra"
)

// CmdPathsel is the cobra command entry point for the CLI simulator.
var CmdPathsel = &cobra.Command{
	Use:   "pathsel SCENARIO-FILE",
	Short: "Simulate the NDN path-selection forwarding strategies against a synthetic traffic generator",
	Args:  cobra.ExactArgs(1),
	Run:   run,
}

func run(cmd *cobra.Command, args []string) {
	var scenario sim.Scenario
	toolutils.ReadYaml(&scenario, args[0])

	simulator, err := sim.NewSimulator(&scenario)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to build simulator:", err)
		os.Exit(1)
	}

	if err := simulator.Run(&scenario); err != nil {
		fmt.Fprintln(os.Stderr, "simulation failed:", err)
		os.Exit(1)
	}
}
