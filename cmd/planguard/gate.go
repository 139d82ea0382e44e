package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"planguard/internal/gate"
	"planguard/internal/plan"
	"planguard/internal/validate"
)

var (
	gateFormat   string
	gateSchema   string
	gateSnapshot string
	gateDepth    int
)

var gateCmd = &cobra.Command{
	Use:   "gate <plan-file>",
	Short: "Run the full quality gate over a plan",
	Long: `Run plan validation plus impact and complexity analysis for every
code element the plan's tasks reference.

Exits non-zero when the plan is not approved.

Examples:
  planguard gate plans/auth-refresh.yaml
  planguard gate --format=markdown plans/auth-refresh.yaml
  planguard gate --snapshot=out/snapshot.json --depth=2 plan.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runGate,
}

func init() {
	gateCmd.Flags().StringVar(&gateFormat, "format", "markdown", "Output format (json, human, markdown)")
	gateCmd.Flags().StringVar(&gateSchema, "schema", "", "Path to a TOML schema override file")
	gateCmd.Flags().StringVar(&gateSnapshot, "snapshot", "", "Snapshot file to analyze (overrides config)")
	gateCmd.Flags().IntVar(&gateDepth, "depth", 0, "Impact traversal depth (0 uses the configured default)")
	rootCmd.AddCommand(gateCmd)
}

func runGate(cmd *cobra.Command, args []string) {
	cfg := mustLoadConfig()
	logger := newLogger(cfg)

	p, err := plan.Load(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading plan: %v\n", err)
		os.Exit(1)
	}

	schemaPath := gateSchema
	if schemaPath == "" {
		schemaPath = cfg.Validation.SchemaPath
	}
	schema := validate.LoadSchema(schemaPath, logger)

	depth := gateDepth
	if depth <= 0 {
		depth = cfg.Impact.MaxDepth
	}

	index := mustLoadIndex(cfg, gateSnapshot, logger)
	orchestrator := gate.NewOrchestrator(index, logger)

	report, err := orchestrator.Run(context.Background(), p, gate.Options{
		Schema:   schema,
		MaxDepth: depth,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running gate: %v\n", err)
		os.Exit(1)
	}

	switch OutputFormat(gateFormat) {
	case FormatJSON:
		output, err := formatJSON(report)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(output)
	case FormatHuman:
		fmt.Println(formatValidationHuman(report.Validation))
		fmt.Printf("Highest impact risk: %s\n", report.HighestRisk)
	default:
		fmt.Println(gate.RenderMarkdown(report))
	}

	if !report.Approved {
		os.Exit(2)
	}
}
