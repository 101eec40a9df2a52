// Command cqpolyfill transpiles stylesheets containing @container rules
// into plain CSS a browser without native container-query support can
// apply, using the host-side descriptors printed alongside the output.
package main

import (
	"fmt"
	"os"

	"github.com/tdewolff-labs/cqpolyfill/cmd/cqpolyfill/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
