package validate

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultSchema(t *testing.T) {
	s := DefaultSchema()

	if s.Weights.Critical != 20 || s.Weights.Major != 10 || s.Weights.Minor != 5 {
		t.Errorf("unexpected default weights: %+v", s.Weights)
	}
	if s.ApprovalThreshold != 90 {
		t.Errorf("threshold = %d, want 90", s.ApprovalThreshold)
	}
	if len(s.Placeholders) == 0 || len(s.TestingTiers) != 3 {
		t.Errorf("default lists incomplete: %+v", s)
	}
}

func TestLoadSchemaMissingFileFallsBack(t *testing.T) {
	s := LoadSchema(filepath.Join(t.TempDir(), "absent.toml"), nil)
	if s.Weights.Critical != 20 {
		t.Errorf("expected defaults on missing file, got %+v", s.Weights)
	}
}

func TestLoadSchemaEmptyPathFallsBack(t *testing.T) {
	s := LoadSchema("", nil)
	if s.ApprovalThreshold != 90 {
		t.Errorf("expected defaults on empty path, got %+v", s)
	}
}

func TestLoadSchemaOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.toml")
	content := `
approval_threshold = 80

[weights]
critical = 50
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	s := LoadSchema(path, nil)
	if s.Weights.Critical != 50 {
		t.Errorf("critical = %d, want 50", s.Weights.Critical)
	}
	// Keys the file does not define keep their defaults.
	if s.Weights.Major != 10 || s.Weights.Minor != 5 {
		t.Errorf("unset weights changed: %+v", s.Weights)
	}
	if s.ApprovalThreshold != 80 {
		t.Errorf("threshold = %d, want 80", s.ApprovalThreshold)
	}
	if len(s.Placeholders) == 0 {
		t.Error("placeholder defaults lost")
	}
}

func TestLoadSchemaBadTOMLFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.toml")
	if err := os.WriteFile(path, []byte("weights = ["), 0644); err != nil {
		t.Fatal(err)
	}

	s := LoadSchema(path, nil)
	if s.Weights.Critical != 20 {
		t.Errorf("expected defaults on unreadable schema, got %+v", s.Weights)
	}
}

func TestCustomWeightsAffectScore(t *testing.T) {
	p := cleanPlan()
	markAllBut(p, "preparation")
	p.Preparation = ""

	schema := DefaultSchema()
	schema.Weights.Critical = 50

	result, err := Validate(p, schema, nil)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if result.Score != 50 {
		t.Errorf("score = %d, want 50 under -50 critical weight", result.Score)
	}
}
