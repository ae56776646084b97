package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/athena-lang/athena/internal/clock"
	"github.com/athena-lang/athena/internal/diag"
	"github.com/athena-lang/athena/internal/pipeline"
)

var outputPath string

var buildCmd = &cobra.Command{
	Use:   "build <file.ath>",
	Short: "Compile a source file into a Compose manifest",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		source, err := os.ReadFile(path)
		if err != nil {
			return ioErr(fmt.Errorf("read %s: %w", path, err))
		}

		result := pipeline.Compile(path, string(source), clock.System{})
		if err := reportDiagnostics(string(source), result.Diagnostics); err != nil {
			return err
		}

		out := outputPath
		if out == "" {
			out = "docker-compose.yml"
		}
		if err := os.WriteFile(out, []byte(result.YAML), 0o644); err != nil {
			return ioErr(fmt.Errorf("write %s: %w", out, err))
		}

		if logger != nil {
			logger.Info("compiled", zap.String("output", out))
		}
		return nil
	},
}

func init() {
	buildCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output path (default docker-compose.yml)")
}

// reportDiagnostics renders every diagnostic to stderr and returns a
// compileErr if any of them is an error-severity diagnostic. Warnings are
// printed but never change the outcome.
func reportDiagnostics(source string, diags []*diag.Diagnostic) error {
	hasError := false
	for _, d := range diags {
		fmt.Fprintln(os.Stderr, diag.Render(source, d))
		if d.Severity == diag.SeverityError {
			hasError = true
		}
	}
	if hasError {
		return compileErr(fmt.Errorf("compilation failed with %d diagnostic(s)", len(diags)))
	}
	return nil
}
