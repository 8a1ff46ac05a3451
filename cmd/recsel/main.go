// Command recsel runs conformance scenarios against the record store and
// explains how their predicates compile.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/recsel/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
