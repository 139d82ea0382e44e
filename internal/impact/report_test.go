package impact

import (
	"fmt"
	"strings"
	"testing"
)

func sampleResult() *Result {
	return &Result{
		RootElement: "svc",
		Direction:   Downstream,
		MaxDepth:    3,
		RootFound:   true,
		AffectedElements: []AffectedElement{
			{Name: "handler", Depth: 1, Path: []string{"svc", "handler"}},
			{Name: "page", Depth: 2, Path: []string{"svc", "handler", "page"}},
		},
		ImpactScore: 2,
		RiskLevel:   RiskLow,
	}
}

func TestRenderMarkdown(t *testing.T) {
	out := RenderMarkdown(sampleResult())

	for _, want := range []string{
		"## Impact Analysis: svc",
		"Direction: downstream",
		"Affected elements: 2",
		"### Depth 1",
		"### Depth 2",
		"`page` (via svc -> handler -> page)",
		"```mermaid",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown missing %q:\n%s", want, out)
		}
	}
}

func TestRenderMarkdownNotFound(t *testing.T) {
	r := &Result{RootElement: "ghost", Direction: Downstream, MaxDepth: 3}
	out := RenderMarkdown(r)

	if !strings.Contains(out, "not found in the scanned snapshot") {
		t.Errorf("expected not-found note:\n%s", out)
	}
	if strings.Contains(out, "### Depth") {
		t.Error("not-found report must not list depths")
	}
}

func TestRenderMarkdownNoImpact(t *testing.T) {
	r := &Result{RootElement: "leaf", Direction: Downstream, MaxDepth: 3, RootFound: true, RiskLevel: RiskLow}
	out := RenderMarkdown(r)

	if !strings.Contains(out, "No elements are affected") {
		t.Errorf("expected empty-impact note:\n%s", out)
	}
}

func TestRenderDiagramEdges(t *testing.T) {
	out := RenderDiagram(sampleResult(), DefaultDiagramNodeCap)

	for _, want := range []string{
		"graph TD",
		`svc["svc"]`,
		"svc --> handler",
		"handler --> page",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("diagram missing %q:\n%s", want, out)
		}
	}
}

func TestRenderDiagramCap(t *testing.T) {
	r := &Result{
		RootElement: "root",
		Direction:   Downstream,
		MaxDepth:    1,
		RootFound:   true,
	}
	for i := 0; i < 60; i++ {
		name := fmt.Sprintf("dep%02d", i)
		r.AffectedElements = append(r.AffectedElements, AffectedElement{
			Name: name, Depth: 1, Path: []string{"root", name},
		})
	}
	r.ImpactScore = 60
	r.RiskLevel = ClassifyCount(60)

	out := RenderDiagram(r, 50)

	// 49 rendered dependents + the root makes 50 nodes; 11 are omitted.
	if !strings.Contains(out, "...and 11 more") {
		t.Errorf("expected omission note:\n%s", out)
	}
	if strings.Contains(out, "dep59[") {
		t.Error("node beyond the cap must not be rendered")
	}
}

func TestSanitizeLabel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"fn(arg)", "fnarg"},
		{`weird["x"]|y`, "weirdxy"},
		{"Type<Param>", "TypeParam"},
	}
	for _, tt := range tests {
		if got := sanitizeLabel(tt.in); got != tt.want {
			t.Errorf("sanitizeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNodeID(t *testing.T) {
	if got := nodeID("pkg.Func"); got != "pkg_Func" {
		t.Errorf("nodeID = %q", got)
	}
	if got := nodeID(""); got != "node" {
		t.Errorf("nodeID empty = %q", got)
	}
}
