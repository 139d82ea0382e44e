package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"planguard/internal/plan"
	"planguard/internal/validate"
)

var (
	validateFormat string
	validateSchema string
	validateStrict bool
)

var validateCmd = &cobra.Command{
	Use:   "validate <plan-file>",
	Short: "Validate an implementation plan against the quality checks",
	Long: `Validate an implementation plan (YAML or JSON) and report a 0-100 score.

Runs structure, completeness, quality, autonomy, and workorder checks.
Scoring: 100 minus 20 per critical, 10 per major, and 5 per minor finding.

Examples:
  planguard validate plans/auth-refresh.yaml
  planguard validate --format=human plans/auth-refresh.yaml
  planguard validate --schema=.planguard/schema.toml --strict plan.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runValidate,
}

func init() {
	validateCmd.Flags().StringVar(&validateFormat, "format", "json", "Output format (json, human)")
	validateCmd.Flags().StringVar(&validateSchema, "schema", "", "Path to a TOML schema override file")
	validateCmd.Flags().BoolVar(&validateStrict, "strict", false, "Exit non-zero when the plan is not approved")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) {
	cfg := mustLoadConfig()
	logger := newLogger(cfg)

	p, err := plan.Load(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading plan: %v\n", err)
		os.Exit(1)
	}

	schemaPath := validateSchema
	if schemaPath == "" {
		schemaPath = cfg.Validation.SchemaPath
	}
	schema := validate.LoadSchema(schemaPath, logger)

	result, err := validate.Validate(p, schema, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error validating plan: %v\n", err)
		os.Exit(1)
	}

	switch OutputFormat(validateFormat) {
	case FormatHuman:
		fmt.Println(formatValidationHuman(result))
	default:
		output, err := formatJSON(result)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(output)
	}

	if validateStrict && !result.Approved {
		os.Exit(2)
	}
}

func formatValidationHuman(r *validate.Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Plan score: %d/100 (%s)\n", r.Score, r.Category)
	if r.Approved {
		b.WriteString("Verdict: APPROVED\n")
	} else {
		b.WriteString("Verdict: NEEDS REVISION\n")
	}
	if r.WorkorderID != "" {
		fmt.Fprintf(&b, "Workorder: %s\n", r.WorkorderID)
	}

	b.WriteString("\nChecks:\n")
	names := make([]string, 0, len(r.Checklist))
	for name := range r.Checklist {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		status := r.Checklist[name]
		mark := "PASS"
		if !status.Passed {
			mark = "FAIL"
		}
		fmt.Fprintf(&b, "  [%s] %-13s %3.0f%% (%d issues)\n", mark, name, status.Percentage, status.Issues)
	}

	if len(r.Issues) > 0 {
		b.WriteString("\nFindings:\n")
		for _, issue := range r.Issues {
			fmt.Fprintf(&b, "  %-8s %s: %s\n", issue.Severity, issue.Section, issue.Message)
			if issue.Suggestion != "" {
				fmt.Fprintf(&b, "           -> %s\n", issue.Suggestion)
			}
		}
	}

	return b.String()
}
