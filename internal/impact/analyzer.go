// Package impact provides bounded transitive impact analysis over the
// element dependency graph.
//
// The traversal is a breadth-first walk along one adjacency direction:
// downstream follows calledBy edges (who breaks if the root changes),
// upstream follows dependency edges (what the root relies on). Call graphs
// legitimately contain cycles, so the visited set is mandatory correctness,
// not an optimization. Results past the depth bound are simply not
// reported; that means "not shown", never "no relationship".
package impact

import (
	"context"
	"log/slog"

	gerrors "planguard/internal/errors"
	"planguard/internal/graph"
)

// DefaultMaxDepth bounds the traversal when the caller does not specify one.
const DefaultMaxDepth = 3

// Analyzer performs impact traversals against a graph index.
type Analyzer struct {
	index    *graph.Index
	maxDepth int
	logger   *slog.Logger
}

// NewAnalyzer creates an analyzer over the given index. A non-positive
// maxDepth falls back to DefaultMaxDepth.
func NewAnalyzer(index *graph.Index, maxDepth int, logger *slog.Logger) *Analyzer {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Analyzer{index: index, maxDepth: maxDepth, logger: logger}
}

// Traverse runs a bounded BFS from root in the given direction.
//
// An unknown root yields a typed not-found result (RootFound=false), not an
// error, so callers can still emit a partial report. The only returned
// errors are contract violations (empty root name) and context
// cancellation, which is checked between BFS levels to keep the hot loop
// simple.
func (a *Analyzer) Traverse(ctx context.Context, root string, direction Direction) (*Result, error) {
	if root == "" {
		return nil, gerrors.Newf(gerrors.InternalError, "root element name must not be empty")
	}
	if direction != Upstream {
		direction = Downstream
	}

	result := &Result{
		RootElement: root,
		Direction:   direction,
		MaxDepth:    a.maxDepth,
		RiskLevel:   RiskLow,
	}

	if _, ok := a.index.Lookup(root); !ok {
		a.logger.Warn("impact root not in snapshot", "element", root)
		result.AffectedElements = []AffectedElement{}
		return result, nil
	}
	result.RootFound = true

	neighbors := a.index.CalledBy
	if direction == Upstream {
		neighbors = a.index.Dependencies
	}

	visited := map[string]bool{root: true}
	paths := map[string][]string{root: {root}}
	frontier := []string{root}
	affected := make([]AffectedElement, 0)

	for depth := 1; depth <= a.maxDepth && len(frontier) > 0; depth++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		next := make([]string, 0)
		for _, name := range frontier {
			for _, neighbor := range neighbors(name) {
				if neighbor == "" || visited[neighbor] {
					continue
				}
				visited[neighbor] = true

				path := make([]string, 0, len(paths[name])+1)
				path = append(path, paths[name]...)
				path = append(path, neighbor)
				paths[neighbor] = path

				affected = append(affected, AffectedElement{
					Name:  neighbor,
					Depth: depth,
					Path:  path,
				})
				next = append(next, neighbor)
			}
		}
		frontier = next
	}

	result.AffectedElements = affected
	result.ImpactScore = len(affected)
	result.RiskLevel = ClassifyCount(result.ImpactScore)

	a.logger.Debug("impact traversal complete",
		"root", root, "direction", string(direction),
		"affected", result.ImpactScore, "risk", string(result.RiskLevel))

	return result, nil
}
