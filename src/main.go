// Command chronos runs the persistent task scheduler daemon: it parses a
// schedule file, dispatches due commands, and reloads automatically when the
// file changes.
package main

import (
	"fmt"
	"os"

	"github.com/apimgr/chronos/src/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
