package complexity

import (
	"strings"
	"testing"

	"planguard/internal/graph"
	"planguard/internal/scan"
)

func manyNames(prefix string, n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = prefix + string(rune('a'+i))
	}
	return names
}

func TestEstimateElement(t *testing.T) {
	tests := []struct {
		name      string
		el        scan.Element
		wantScore int
		wantTier  RiskLevel
	}{
		{
			name:      "plain function",
			el:        scan.Element{Name: "f", Kind: scan.KindFunction},
			wantScore: 2,
			wantTier:  RiskLow,
		},
		{
			name:      "plain class",
			el:        scan.Element{Name: "c", Kind: scan.KindClass},
			wantScore: 3,
			wantTier:  RiskLow,
		},
		{
			name:      "component with four params",
			el:        scan.Element{Name: "w", Kind: scan.KindComponent, Parameters: manyNames("p", 4)},
			wantScore: 5,
			wantTier:  RiskMedium,
		},
		{
			name: "class with six params and twelve calls",
			el: scan.Element{Name: "big", Kind: scan.KindClass,
				Parameters:   manyNames("p", 6),
				Dependencies: manyNames("d", 12)},
			wantScore: 8,
			wantTier:  RiskHigh,
		},
		{
			name: "decorator kind uses other base",
			el: scan.Element{Name: "dec", Kind: scan.KindDecorator,
				Dependencies: manyNames("d", 11)},
			wantScore: 3,
			wantTier:  RiskLow,
		},
		{
			name: "critical pile-up",
			el: scan.Element{Name: "monster", Kind: scan.KindComponent,
				Parameters:   manyNames("p", 7),
				Dependencies: manyNames("d", 12)},
			wantScore: 9,
			wantTier:  RiskCritical,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EstimateElement(tt.el)
			if got.Score != tt.wantScore {
				t.Errorf("score = %d, want %d (factors: %v)", got.Score, tt.wantScore, got.ContributingFactors)
			}
			if got.RiskLevel != tt.wantTier {
				t.Errorf("tier = %s, want %s", got.RiskLevel, tt.wantTier)
			}
			if len(got.ContributingFactors) == 0 {
				t.Error("expected contributing factors")
			}
		})
	}
}

func TestContributingFactorsExplainBumps(t *testing.T) {
	got := EstimateElement(scan.Element{
		Name: "big", Kind: scan.KindClass,
		Parameters:   manyNames("p", 6),
		Dependencies: manyNames("d", 12),
	})

	joined := strings.Join(got.ContributingFactors, "; ")
	for _, want := range []string{"base: class", "6 parameters", "more than 5 parameters", "12 outgoing calls", "more than 10 outgoing calls"} {
		if !strings.Contains(joined, want) {
			t.Errorf("factors missing %q: %v", want, got.ContributingFactors)
		}
	}
}

func TestTierBoundaries(t *testing.T) {
	tests := []struct {
		score int
		want  RiskLevel
	}{
		{0, RiskLow}, {3, RiskLow},
		{4, RiskMedium}, {6, RiskMedium},
		{7, RiskHigh}, {8, RiskHigh},
		{9, RiskCritical}, {20, RiskCritical},
	}
	for _, tt := range tests {
		if got := TierFor(tt.score); got != tt.want {
			t.Errorf("TierFor(%d) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

func TestEstimateMissingElement(t *testing.T) {
	est := NewEstimator(graph.NewIndex(nil))

	score, ok := est.Estimate("ghost")
	if ok {
		t.Error("expected ok=false for missing element")
	}
	if score != nil {
		t.Errorf("expected nil score, got %+v", score)
	}
}

func TestEstimateViaIndex(t *testing.T) {
	idx := graph.NewIndex([]scan.Element{
		{Name: "svc", File: "svc.go", Line: 1, Kind: scan.KindClass,
			Dependencies: manyNames("d", 6)},
	})
	est := NewEstimator(idx)

	score, ok := est.Estimate("svc")
	if !ok {
		t.Fatal("expected element to be scored")
	}
	if score.Score != 4 || score.RiskLevel != RiskMedium {
		t.Errorf("unexpected score: %+v", score)
	}
}
