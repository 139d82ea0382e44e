package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"planguard/internal/impact"
)

var (
	impactFormat    string
	impactDirection string
	impactDepth     int
	impactSnapshot  string
)

var impactCmd = &cobra.Command{
	Use:   "impact <element>",
	Short: "Analyze the blast radius of changing a code element",
	Long: `Analyze which elements are affected by changing the named element.

Walks the snapshot dependency graph breadth-first up to --depth levels.
Downstream follows callers (what breaks if this element changes);
upstream follows dependencies (what this element relies on).

Examples:
  planguard impact AuthService
  planguard impact --direction=upstream --depth=2 hashPassword
  planguard impact --format=markdown AuthService`,
	Args: cobra.ExactArgs(1),
	Run:  runImpact,
}

func init() {
	impactCmd.Flags().StringVar(&impactFormat, "format", "json", "Output format (json, human, markdown)")
	impactCmd.Flags().StringVar(&impactDirection, "direction", "downstream", "Traversal direction (downstream, upstream)")
	impactCmd.Flags().IntVar(&impactDepth, "depth", 0, "Traversal depth bound (0 uses the configured default)")
	impactCmd.Flags().StringVar(&impactSnapshot, "snapshot", "", "Snapshot file to analyze (overrides config)")
	rootCmd.AddCommand(impactCmd)
}

func runImpact(cmd *cobra.Command, args []string) {
	cfg := mustLoadConfig()
	logger := newLogger(cfg)

	var direction impact.Direction
	switch impactDirection {
	case "downstream":
		direction = impact.Downstream
	case "upstream":
		direction = impact.Upstream
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown direction %q (use downstream or upstream)\n", impactDirection)
		os.Exit(1)
	}

	depth := impactDepth
	if depth <= 0 {
		depth = cfg.Impact.MaxDepth
	}

	index := mustLoadIndex(cfg, impactSnapshot, logger)
	analyzer := impact.NewAnalyzer(index, depth, logger)

	result, err := analyzer.Traverse(context.Background(), args[0], direction)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error analyzing impact: %v\n", err)
		os.Exit(1)
	}

	switch OutputFormat(impactFormat) {
	case FormatMarkdown:
		fmt.Println(impact.RenderMarkdownCap(result, cfg.Impact.DiagramNodeCap))
	case FormatHuman:
		fmt.Println(formatImpactHuman(result))
	default:
		output, err := formatJSON(result)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(output)
	}
}

func formatImpactHuman(r *impact.Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Impact of %s (%s, depth %d)\n", r.RootElement, r.Direction, r.MaxDepth)
	if !r.RootFound {
		b.WriteString("Element not found in snapshot.\n")
		return b.String()
	}

	fmt.Fprintf(&b, "Affected: %d elements, risk %s\n", r.ImpactScore, r.RiskLevel)
	for _, el := range r.AffectedElements {
		fmt.Fprintf(&b, "  depth %d: %s", el.Depth, el.Name)
		if len(el.Path) > 1 {
			fmt.Fprintf(&b, "  (via %s)", strings.Join(el.Path, " -> "))
		}
		b.WriteString("\n")
	}

	return b.String()
}
