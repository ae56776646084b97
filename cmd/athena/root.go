package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	verbose bool
	quiet   bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "athena",
	Short: "Athena compiles a COBOL-styled infrastructure DSL into Docker Compose",
	Long: `Athena reads .ath source files describing a deployment and compiles
them into a Docker Compose manifest, through a validating, enriching
pipeline: parse, validate, classify, enrich with defaults, topologically
order, and emit.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		if quiet {
			config.Level = zap.NewAtomicLevelAt(zapcore.ErrorLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug-level logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress all but error-level logging")

	rootCmd.AddCommand(buildCmd, validateCmd, infoCmd)
}
