// Package validate scores implementation plans for completeness, internal
// consistency, and actionability.
//
// Validation is a pure function of (Plan, Schema): every call builds a
// fresh issue list and returns an immutable result. There is no per-run
// accumulator to reset, so validating independent plans concurrently needs
// no coordination at all.
package validate

// Severity grades a validation issue
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityMajor    Severity = "major"
	SeverityMinor    Severity = "minor"
)

// Check names, in the fixed evaluation order. Order affects only issue
// listing, never scores.
const (
	CheckStructure    = "structure"
	CheckCompleteness = "completeness"
	CheckQuality      = "quality"
	CheckAutonomy     = "autonomy"
	CheckWorkorder    = "workorder"
)

// Issue is one finding against a plan.
type Issue struct {
	// Severity grades the issue
	Severity Severity `json:"severity"`

	// Section is the plan section (or task id) the issue is about
	Section string `json:"section"`

	// Message describes the finding
	Message string `json:"message"`

	// Suggestion says how to fix it
	Suggestion string `json:"suggestion,omitempty"`
}

// Category buckets a score for human consumption
type Category string

const (
	CategoryExcellent Category = "excellent"
	CategoryGood      Category = "good"
	CategoryNeedsWork Category = "needs_work"
	CategoryPoor      Category = "poor"
)

// CheckStatus is the per-check entry in the checklist breakdown.
type CheckStatus struct {
	// Passed is true when the check raised no issues
	Passed bool `json:"passed"`

	// Issues is the number of issues the check raised
	Issues int `json:"issues"`

	// Percentage is the share of the check's assertions that held
	Percentage float64 `json:"percentage"`
}

// Result is an immutable validation outcome, recomputed fresh per call.
type Result struct {
	// Score is the 0-100 plan score
	Score int `json:"score"`

	// Category buckets the score
	Category Category `json:"category"`

	// Approved is true when the score meets the schema threshold
	Approved bool `json:"approved"`

	// Issues lists all findings in check order
	Issues []Issue `json:"issues"`

	// Checklist is the per-check breakdown
	Checklist map[string]CheckStatus `json:"checklist"`

	// PlanHash is the validated document's content hash, if known
	PlanHash string `json:"planHash,omitempty"`

	// WorkorderID echoes the plan's workorder id, if any
	WorkorderID string `json:"workorderId,omitempty"`
}

// CountBySeverity tallies issues at the given severity.
func (r *Result) CountBySeverity(sev Severity) int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Severity == sev {
			n++
		}
	}
	return n
}

// categoryFor buckets a score.
func categoryFor(score int) Category {
	switch {
	case score >= 90:
		return CategoryExcellent
	case score >= 75:
		return CategoryGood
	case score >= 50:
		return CategoryNeedsWork
	default:
		return CategoryPoor
	}
}
