package gate

import (
	"fmt"
	"strings"

	"planguard/internal/validate"
)

// RenderMarkdown renders a gate report as a reviewer-facing summary.
func RenderMarkdown(r *Report) string {
	var b strings.Builder

	b.WriteString("# Quality Gate Report\n\n")
	fmt.Fprintf(&b, "- **Run:** %s\n", r.RunID)
	if r.WorkorderID != "" {
		fmt.Fprintf(&b, "- **Workorder:** %s\n", r.WorkorderID)
	}
	if r.PlanHash != "" {
		fmt.Fprintf(&b, "- **Plan hash:** %s\n", r.PlanHash)
	}
	fmt.Fprintf(&b, "- **Verdict:** %s\n\n", verdict(r.Approved))

	v := r.Validation
	b.WriteString("## Validation\n\n")
	fmt.Fprintf(&b, "Score **%d/100** (%s): %d critical, %d major, %d minor\n\n",
		v.Score, v.Category,
		v.CountBySeverity(validate.SeverityCritical),
		v.CountBySeverity(validate.SeverityMajor),
		v.CountBySeverity(validate.SeverityMinor))

	if len(v.Issues) > 0 {
		b.WriteString("| Severity | Section | Issue |\n")
		b.WriteString("|----------|---------|-------|\n")
		for _, issue := range v.Issues {
			fmt.Fprintf(&b, "| %s | %s | %s |\n", issue.Severity, issue.Section, issue.Message)
		}
		b.WriteString("\n")
	}

	if len(r.Elements) > 0 {
		b.WriteString("## Touched Elements\n\n")
		fmt.Fprintf(&b, "Highest impact risk: **%s**\n\n", r.HighestRisk)
		b.WriteString("| Element | Impact | Risk | Complexity |\n")
		b.WriteString("|---------|--------|------|------------|\n")
		for _, el := range r.Elements {
			if !el.Found {
				fmt.Fprintf(&b, "| %s | not in snapshot | - | - |\n", el.Name)
				continue
			}
			cpx := "-"
			if el.Complexity != nil {
				cpx = fmt.Sprintf("%d (%s)", el.Complexity.Score, el.Complexity.RiskLevel)
			}
			fmt.Fprintf(&b, "| %s | %d affected | %s | %s |\n",
				el.Name, el.Impact.ImpactScore, el.Impact.RiskLevel, cpx)
		}
		b.WriteString("\n")
	}

	return b.String()
}

func verdict(approved bool) string {
	if approved {
		return "APPROVED"
	}
	return "NEEDS REVISION"
}
