package impact

import (
	"fmt"
	"sort"
	"strings"
)

// DefaultDiagramNodeCap limits how many nodes the dependency diagram
// renders. Larger graphs get an explicit "...and N more" note instead;
// the cap is a usability choice and callers may override it.
const DefaultDiagramNodeCap = 50

// RenderMarkdown produces the markdown report fragment for a result:
// a summary, the affected elements grouped by depth, and the dependency
// diagram. Serialization beyond this fragment is the caller's business.
func RenderMarkdown(r *Result) string {
	return RenderMarkdownCap(r, DefaultDiagramNodeCap)
}

// RenderMarkdownCap is RenderMarkdown with an explicit diagram node cap.
func RenderMarkdownCap(r *Result, nodeCap int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "## Impact Analysis: %s\n\n", r.RootElement)

	if !r.RootFound {
		fmt.Fprintf(&b, "Element `%s` was not found in the scanned snapshot. ", r.RootElement)
		b.WriteString("No impact data is available; re-scan or check the element name.\n")
		return b.String()
	}

	fmt.Fprintf(&b, "- Direction: %s\n", r.Direction)
	fmt.Fprintf(&b, "- Max depth: %d\n", r.MaxDepth)
	fmt.Fprintf(&b, "- Affected elements: %d\n", r.ImpactScore)
	fmt.Fprintf(&b, "- Risk level: **%s**\n\n", r.RiskLevel)

	if r.ImpactScore == 0 {
		b.WriteString("No elements are affected within the depth bound.\n")
		return b.String()
	}

	for _, depth := range depthsOf(r.AffectedElements) {
		fmt.Fprintf(&b, "### Depth %d\n\n", depth)
		for _, el := range r.AffectedElements {
			if el.Depth != depth {
				continue
			}
			fmt.Fprintf(&b, "- `%s` (via %s)\n", el.Name, strings.Join(el.Path, " -> "))
		}
		b.WriteString("\n")
	}

	b.WriteString("### Dependency Diagram\n\n")
	b.WriteString(RenderDiagram(r, nodeCap))

	return b.String()
}

// RenderDiagram produces a mermaid graph fragment for the result, rendering
// at most nodeCap nodes. Edges follow the recorded traversal paths.
func RenderDiagram(r *Result, nodeCap int) string {
	if nodeCap <= 0 {
		nodeCap = DefaultDiagramNodeCap
	}

	var b strings.Builder
	b.WriteString("```mermaid\ngraph TD\n")

	if !r.RootFound {
		fmt.Fprintf(&b, "    %s[\"%s (not found)\"]\n", nodeID(r.RootElement), sanitizeLabel(r.RootElement))
		b.WriteString("```\n")
		return b.String()
	}

	rendered := map[string]bool{r.RootElement: true}
	fmt.Fprintf(&b, "    %s[\"%s\"]\n", nodeID(r.RootElement), sanitizeLabel(r.RootElement))

	edges := map[string]bool{}
	omitted := 0
	for _, el := range r.AffectedElements {
		if !rendered[el.Name] {
			if len(rendered) >= nodeCap {
				omitted++
				continue
			}
			rendered[el.Name] = true
			fmt.Fprintf(&b, "    %s[\"%s\"]\n", nodeID(el.Name), sanitizeLabel(el.Name))
		}
		// The last hop of the path is the edge that discovered this node.
		if n := len(el.Path); n >= 2 {
			from, to := el.Path[n-2], el.Path[n-1]
			if !rendered[from] || !rendered[to] {
				continue
			}
			key := from + "\x00" + to
			if edges[key] {
				continue
			}
			edges[key] = true
			fmt.Fprintf(&b, "    %s --> %s\n", nodeID(from), nodeID(to))
		}
	}

	if omitted > 0 {
		fmt.Fprintf(&b, "    more[\"...and %d more\"]\n", omitted)
	}

	b.WriteString("```\n")
	return b.String()
}

// depthsOf returns the sorted distinct depths present in the result.
func depthsOf(elements []AffectedElement) []int {
	seen := map[int]bool{}
	depths := make([]int, 0)
	for _, el := range elements {
		if !seen[el.Depth] {
			seen[el.Depth] = true
			depths = append(depths, el.Depth)
		}
	}
	sort.Ints(depths)
	return depths
}

// sanitizeLabel strips characters that carry meaning in diagram syntax.
func sanitizeLabel(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '[', ']', '(', ')', '{', '}', '<', '>', '"', '|', '`', ';', '\n':
			return -1
		default:
			return r
		}
	}, name)
}

// nodeID derives a diagram-safe node identifier from an element name.
func nodeID(name string) string {
	id := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
	if id == "" {
		id = "node"
	}
	return id
}
