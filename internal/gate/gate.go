// Package gate runs a full quality gate over an implementation plan:
// schema validation, impact traversal for every element the plan
// touches, and complexity estimates for those elements.
package gate

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"planguard/internal/complexity"
	"planguard/internal/graph"
	"planguard/internal/impact"
	"planguard/internal/plan"
	"planguard/internal/validate"
)

// Options tunes a single gate run.
type Options struct {
	// Schema overrides the validation schema; nil uses the defaults.
	Schema *validate.Schema

	// MaxDepth bounds impact traversal; 0 uses the default depth.
	MaxDepth int
}

// ElementReport is the gate's view of one element a plan task touches.
type ElementReport struct {
	Name string `json:"name"`

	// Found is false when the element is not in the loaded snapshot.
	Found bool `json:"found"`

	Impact     *impact.Result    `json:"impact,omitempty"`
	Complexity *complexity.Score `json:"complexity,omitempty"`
}

// Report aggregates everything a gate run produced.
type Report struct {
	RunID       string    `json:"runId"`
	GeneratedAt time.Time `json:"generatedAt"`

	PlanHash    string `json:"planHash,omitempty"`
	WorkorderID string `json:"workorderId,omitempty"`

	Validation *validate.Result `json:"validation"`

	// Elements is sorted by name so reports are stable across runs.
	Elements []ElementReport `json:"elements,omitempty"`

	// HighestRisk is the worst impact tier across all found elements.
	HighestRisk impact.RiskLevel `json:"highestRisk"`

	// Approved mirrors the validation verdict. Impact and complexity
	// inform the reviewer but never block a plan on their own.
	Approved bool `json:"approved"`
}

// Orchestrator wires the validator and the graph analyzers together.
type Orchestrator struct {
	index  *graph.Index
	logger *slog.Logger
}

// NewOrchestrator builds an orchestrator over a loaded snapshot index.
// index may be nil when no snapshot is available; the gate then skips
// impact and complexity and reports every referenced element as missing.
func NewOrchestrator(index *graph.Index, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Orchestrator{index: index, logger: logger}
}

// Run validates the plan and analyzes every element its tasks reference.
func (o *Orchestrator) Run(ctx context.Context, p *plan.Plan, opts Options) (*Report, error) {
	schema := opts.Schema
	if schema == nil {
		schema = validate.DefaultSchema()
	}

	result, err := validate.Validate(p, schema, o.logger)
	if err != nil {
		return nil, err
	}

	report := &Report{
		RunID:       uuid.New().String(),
		GeneratedAt: time.Now().UTC(),
		PlanHash:    result.PlanHash,
		WorkorderID: result.WorkorderID,
		Validation:  result,
		HighestRisk: impact.RiskLow,
		Approved:    result.Approved,
	}

	names := referencedElements(p)
	if len(names) == 0 {
		return report, nil
	}

	o.logger.Info("Analyzing plan elements", "count", len(names))

	var analyzer *impact.Analyzer
	var estimator *complexity.Estimator
	if o.index != nil {
		analyzer = impact.NewAnalyzer(o.index, opts.MaxDepth, o.logger)
		estimator = complexity.NewEstimator(o.index)
	}

	for _, name := range names {
		er := ElementReport{Name: name}

		if analyzer != nil {
			res, err := analyzer.Traverse(ctx, name, impact.Downstream)
			if err != nil {
				return nil, err
			}
			er.Found = res.RootFound
			if res.RootFound {
				er.Impact = res
				if score, ok := estimator.Estimate(name); ok {
					er.Complexity = score
				}
				if riskRank(res.RiskLevel) > riskRank(report.HighestRisk) {
					report.HighestRisk = res.RiskLevel
				}
			} else {
				o.logger.Warn("Plan references unknown element", "element", name)
			}
		}

		report.Elements = append(report.Elements, er)
	}

	return report, nil
}

// referencedElements collects the unique element names across all
// tasks, sorted for deterministic reports.
func referencedElements(p *plan.Plan) []string {
	seen := make(map[string]bool)
	for _, task := range p.Tasks() {
		for _, name := range task.Elements {
			if name != "" {
				seen[name] = true
			}
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func riskRank(level impact.RiskLevel) int {
	switch level {
	case impact.RiskLow:
		return 0
	case impact.RiskMedium:
		return 1
	case impact.RiskHigh:
		return 2
	case impact.RiskCritical:
		return 3
	default:
		return 0
	}
}
