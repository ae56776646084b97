// Command athena compiles Athena DSL sources into Docker Compose
// manifests. The CLI is the only layer aware of files, exit codes, and
// logging; the compiler core in internal/pipeline stays a pure function
// of (source text, clock).
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCodeFor(err))
	}
}
