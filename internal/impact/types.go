package impact

// Direction selects which adjacency the traversal follows.
type Direction string

const (
	// Downstream expands via calledBy: who breaks if the root changes.
	Downstream Direction = "downstream"
	// Upstream expands via dependencies: what the root relies on.
	Upstream Direction = "upstream"
)

// RiskLevel represents the reviewer-workload tier for an impact result
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// Risk bucket boundaries on the affected-element count. These are tunable
// reviewer-workload heuristics, not statistical cutoffs.
const (
	lowMaxCount    = 5
	mediumMaxCount = 15
	highMaxCount   = 50
)

// AffectedElement is one element reached by the traversal.
type AffectedElement struct {
	// Name is the element name
	Name string `json:"name"`

	// Depth is the BFS distance from the root (1 = direct)
	Depth int `json:"depth"`

	// Path is the traversal path from the root to this element, inclusive
	// of both endpoints
	Path []string `json:"path"`
}

// Result is an immutable impact analysis result.
type Result struct {
	// RootElement is the analyzed element name
	RootElement string `json:"rootElement"`

	// Direction is the traversal direction
	Direction Direction `json:"direction"`

	// MaxDepth is the traversal bound that was applied
	MaxDepth int `json:"maxDepth"`

	// RootFound is false when the root element is not in the snapshot.
	// The rest of the result is then empty but still renderable.
	RootFound bool `json:"rootFound"`

	// AffectedElements are all reached elements in BFS order
	AffectedElements []AffectedElement `json:"affectedElements"`

	// ImpactScore is the count of affected elements
	ImpactScore int `json:"impactScore"`

	// RiskLevel is the bucketed reviewer-workload tier
	RiskLevel RiskLevel `json:"riskLevel"`
}

// ClassifyCount buckets an affected-element count into a risk tier.
func ClassifyCount(count int) RiskLevel {
	switch {
	case count <= lowMaxCount:
		return RiskLow
	case count <= mediumMaxCount:
		return RiskMedium
	case count <= highMaxCount:
		return RiskHigh
	default:
		return RiskCritical
	}
}
