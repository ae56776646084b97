package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	showExamples   bool
	showDirectives bool
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Print directive syntax and worked examples",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !showExamples && !showDirectives {
			showExamples, showDirectives = true, true
		}
		if showDirectives {
			fmt.Println("Directives:")
			for _, d := range directiveCatalog {
				fmt.Printf("  %-16s %s\n", d.keyword, d.shape)
			}
		}
		if showExamples {
			if showDirectives {
				fmt.Println()
			}
			fmt.Println("Examples:")
			for _, ex := range exampleCatalog {
				fmt.Printf("  # %s\n%s\n\n", ex.archetype, ex.source)
			}
		}
		return nil
	},
}

func init() {
	infoCmd.Flags().BoolVar(&showExamples, "examples", false, "print one worked example per archetype")
	infoCmd.Flags().BoolVar(&showDirectives, "directives", false, "print directive syntax reference")
}
