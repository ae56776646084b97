package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/athena-lang/athena/internal/diag"
	"github.com/athena-lang/athena/internal/parser"
	"github.com/athena-lang/athena/internal/validate"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file.ath>",
	Short: "Run a source file through the semantic validator without emitting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		source, err := os.ReadFile(path)
		if err != nil {
			return ioErr(fmt.Errorf("read %s: %w", path, err))
		}

		dep, err := parser.Parse(path, string(source))
		if err != nil {
			if d, ok := err.(*diag.Diagnostic); ok {
				fmt.Fprintln(os.Stderr, diag.Render(string(source), d))
				return compileErr(fmt.Errorf("parse failed"))
			}
			return compileErr(err)
		}

		bag := validate.Validate(dep)
		return reportDiagnostics(string(source), bag.All())
	},
}
