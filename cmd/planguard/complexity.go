package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"planguard/internal/complexity"
)

var (
	complexityFormat   string
	complexitySnapshot string
)

var complexityCmd = &cobra.Command{
	Use:   "complexity <element>",
	Short: "Estimate the change complexity of a code element",
	Long: `Estimate how complex the named element is to change.

The score is a structural heuristic over the scan snapshot: element kind,
parameter count, and caller count. It measures change risk, not cyclomatic
complexity of the element's body.

Examples:
  planguard complexity AuthService
  planguard complexity --format=human hashPassword`,
	Args: cobra.ExactArgs(1),
	Run:  runComplexity,
}

func init() {
	complexityCmd.Flags().StringVar(&complexityFormat, "format", "json", "Output format (json, human)")
	complexityCmd.Flags().StringVar(&complexitySnapshot, "snapshot", "", "Snapshot file to analyze (overrides config)")
	rootCmd.AddCommand(complexityCmd)
}

func runComplexity(cmd *cobra.Command, args []string) {
	cfg := mustLoadConfig()
	logger := newLogger(cfg)

	index := mustLoadIndex(cfg, complexitySnapshot, logger)
	estimator := complexity.NewEstimator(index)

	score, ok := estimator.Estimate(args[0])
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: element not found in snapshot: %s\n", args[0])
		os.Exit(1)
	}

	switch OutputFormat(complexityFormat) {
	case FormatHuman:
		fmt.Printf("%s: score %d (%s)\n", score.ElementName, score.Score, score.RiskLevel)
		if len(score.ContributingFactors) > 0 {
			fmt.Printf("Factors: %s\n", strings.Join(score.ContributingFactors, ", "))
		}
	default:
		output, err := formatJSON(score)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(output)
	}
}
