// Package toolutils holds small, generic helpers shared by the CLI
// commands - not NDN-specific, just glue for reading configuration.
package toolutils

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// ReadYaml reads path and unmarshals its contents into dst, exiting the
// process with a diagnostic on any failure - matching the fail-fast
// config loading every CLI entrypoint in this codebase uses.
func ReadYaml(dst any, path string) {
	raw, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to read config file:", err)
		os.Exit(1)
	}
	if err := yaml.Unmarshal(raw, dst); err != nil {
		fmt.Fprintln(os.Stderr, "failed to parse config file:", err)
		os.Exit(1)
	}
}
