package main

import (
	"github.com/named-data/ndnd-pathsel/fw/cmd"
)

// Runs the path-selection strategy simulator's command-line interface.
func main() {
	cmd.CmdPathsel.Execute()
}
