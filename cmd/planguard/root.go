package main

import (
	"github.com/spf13/cobra"

	"planguard/internal/version"
)

var (
	// rootFlag is the CLI --root flag value
	rootFlag string
	// verboseFlag enables debug logging
	verboseFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "planguard",
	Short: "planguard - Plan Quality Gate",
	Long: `planguard validates feature implementation plans and analyzes the blast
radius of the code elements they touch. It combines plan schema validation,
dependency-graph impact traversal, and heuristic complexity estimates into a
single approval gate for plan review.`,
	Version: version.Version,
}

func init() {
	rootCmd.SetVersionTemplate("planguard version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&rootFlag, "root", ".",
		"Project root containing the .planguard directory")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false,
		"Enable debug logging")
}
