package validate

import (
	"fmt"
	"log/slog"

	gerrors "planguard/internal/errors"
	"planguard/internal/plan"
)

// Validate scores a plan against a schema. It is a pure function: a fresh
// issue list is built per call and the same inputs always produce the same
// result. A nil schema uses the defaults. A nil plan is a contract
// violation and is the only way this function returns an error.
func Validate(p *plan.Plan, schema *Schema, logger *slog.Logger) (*Result, error) {
	if p == nil {
		return nil, gerrors.Newf(gerrors.InternalError, "plan must not be nil")
	}
	if schema == nil {
		schema = DefaultSchema()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	result := &Result{
		Issues:      make([]Issue, 0),
		Checklist:   make(map[string]CheckStatus, 5),
		PlanHash:    p.ContentHash,
		WorkorderID: p.Meta.WorkorderID,
	}

	// Fixed check order; each check is independent and a malformed section
	// aborts only the assertions that need it.
	runCheck(result, CheckStructure, checkStructure(p))
	runCheck(result, CheckCompleteness, checkCompleteness(p, schema))
	runCheck(result, CheckQuality, checkQuality(p, schema))
	runCheck(result, CheckAutonomy, checkAutonomy(p, schema))
	runCheck(result, CheckWorkorder, checkWorkorder(p, schema))

	score := 100
	for _, issue := range result.Issues {
		score -= schema.penalty(issue.Severity)
	}
	if score < 0 {
		score = 0
	}

	result.Score = score
	result.Category = categoryFor(score)
	result.Approved = score >= schema.ApprovalThreshold

	logger.Debug("plan validated",
		"score", score, "category", string(result.Category),
		"approved", result.Approved, "issues", len(result.Issues))

	return result, nil
}

// checkOutcome is one check's issues plus its assertion tally.
type checkOutcome struct {
	issues []Issue
	total  int // assertions evaluated
	failed int // assertions that did not hold
}

// runCheck folds a check outcome into the result.
func runCheck(result *Result, name string, out checkOutcome) {
	result.Issues = append(result.Issues, out.issues...)

	pct := 100.0
	if out.total > 0 {
		pct = 100.0 * float64(out.total-out.failed) / float64(out.total)
		if pct < 0 {
			pct = 0
		}
	}
	result.Checklist[name] = CheckStatus{
		Passed:     len(out.issues) == 0,
		Issues:     len(out.issues),
		Percentage: pct,
	}
}

// checkStructure verifies all ten required sections are present.
func checkStructure(p *plan.Plan) checkOutcome {
	out := checkOutcome{}
	for _, section := range plan.RequiredSections() {
		out.total++
		if p.HasSection(section) {
			continue
		}
		out.failed++
		out.issues = append(out.issues, Issue{
			Severity:   SeverityCritical,
			Section:    section,
			Message:    fmt.Sprintf("required section '%s' is missing", section),
			Suggestion: fmt.Sprintf("Add a '%s' section to the plan", section),
		})
	}
	return out
}
