// Package complexity provides a fast heuristic complexity estimate for
// scanned elements.
//
// The score is an additive proxy built from scan facts (kind, parameter
// count, outgoing reference count). It is deliberately NOT cyclomatic or
// cognitive complexity: scanners may attach their own formal metric on
// Element.Complexity, and the two must never be conflated. This score
// exists to rank review attention cheaply, nothing more.
package complexity

import (
	"fmt"

	"planguard/internal/graph"
	"planguard/internal/scan"
)

// RiskLevel represents the coarse risk tier derived from a score
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// Base scores by element kind. Components carry the highest base because
// they typically aggregate state, rendering, and side effects.
const (
	baseClass     = 3
	baseComponent = 4
	baseFunction  = 2
	baseOther     = 1
)

// Parameter and fan-out thresholds for the additive bumps.
const (
	paramThreshold     = 3
	paramHighThreshold = 5
	callThreshold      = 5
	callHighThreshold  = 10
)

// Score is a heuristic complexity assessment for one element.
type Score struct {
	ElementName         string    `json:"elementName"`
	Score               int       `json:"score"`
	RiskLevel           RiskLevel `json:"riskLevel"`
	ContributingFactors []string  `json:"contributingFactors"`
}

// Estimator computes heuristic complexity scores against a graph index.
type Estimator struct {
	index *graph.Index
}

// NewEstimator creates an estimator over the given index.
func NewEstimator(index *graph.Index) *Estimator {
	return &Estimator{index: index}
}

// Estimate scores the named element. A missing element returns (nil, false):
// absence is "no data", not an error.
func (e *Estimator) Estimate(name string) (*Score, bool) {
	el, ok := e.index.Lookup(name)
	if !ok {
		return nil, false
	}
	s := EstimateElement(el)
	return &s, true
}

// EstimateElement scores a single element without an index lookup.
func EstimateElement(el scan.Element) Score {
	score := 0
	factors := make([]string, 0, 4)

	switch el.Kind {
	case scan.KindClass:
		score += baseClass
		factors = append(factors, fmt.Sprintf("base: class (+%d)", baseClass))
	case scan.KindComponent:
		score += baseComponent
		factors = append(factors, fmt.Sprintf("base: component (+%d)", baseComponent))
	case scan.KindFunction:
		score += baseFunction
		factors = append(factors, fmt.Sprintf("base: function (+%d)", baseFunction))
	default:
		score += baseOther
		factors = append(factors, fmt.Sprintf("base: %s (+%d)", el.Kind, baseOther))
	}

	params := len(el.Parameters)
	if params > paramThreshold {
		score++
		factors = append(factors, fmt.Sprintf("%d parameters (+1)", params))
	}
	if params > paramHighThreshold {
		score += 2
		factors = append(factors, fmt.Sprintf("more than %d parameters (+2)", paramHighThreshold))
	}

	calls := len(el.Dependencies)
	if calls > callThreshold {
		score++
		factors = append(factors, fmt.Sprintf("%d outgoing calls (+1)", calls))
	}
	if calls > callHighThreshold {
		score++
		factors = append(factors, fmt.Sprintf("more than %d outgoing calls (+1)", callHighThreshold))
	}

	return Score{
		ElementName:         el.Name,
		Score:               score,
		RiskLevel:           TierFor(score),
		ContributingFactors: factors,
	}
}

// TierFor buckets a heuristic score into a risk tier.
func TierFor(score int) RiskLevel {
	switch {
	case score <= 3:
		return RiskLow
	case score <= 6:
		return RiskMedium
	case score <= 8:
		return RiskHigh
	default:
		return RiskCritical
	}
}
