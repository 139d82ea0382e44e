package store

import (
	"testing"

	"planguard/internal/scan"
)

func testSnapshot() *scan.Snapshot {
	return &scan.Snapshot{
		GeneratedAt: "2026-03-01T10:00:00Z",
		Tool:        "repo-scan",
		Elements: []scan.Element{
			{
				Name:         "AuthService",
				File:         "src/auth/service.ts",
				Line:         12,
				Kind:         scan.KindClass,
				Parameters:   []string{"tokenStore", "clock"},
				Dependencies: []string{"TokenStore", "hashPassword"},
				CalledBy:     []string{"LoginController"},
				Complexity:   6,
			},
			{
				Name: "hashPassword",
				File: "src/auth/crypto.ts",
				Line: 3,
				Kind: scan.KindFunction,
			},
		},
	}
}

func TestSaveAndLoadSnapshot(t *testing.T) {
	s, err := OpenStore(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer s.Close()

	if err := s.SaveSnapshot(testSnapshot()); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := s.LoadSnapshot()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded == nil {
		t.Fatal("expected cached snapshot, got nil")
	}
	if loaded.Tool != "repo-scan" {
		t.Errorf("expected tool repo-scan, got %q", loaded.Tool)
	}
	if len(loaded.Elements) != 2 {
		t.Fatalf("expected 2 elements, got %d", len(loaded.Elements))
	}

	// Rows come back ordered by name.
	auth := loaded.Elements[0]
	if auth.Name != "AuthService" {
		t.Fatalf("expected AuthService first, got %q", auth.Name)
	}
	if auth.Kind != scan.KindClass {
		t.Errorf("expected class kind, got %q", auth.Kind)
	}
	if len(auth.Parameters) != 2 || auth.Parameters[0] != "tokenStore" || auth.Parameters[1] != "clock" {
		t.Errorf("parameters not round-tripped: %v", auth.Parameters)
	}
	if len(auth.Dependencies) != 2 || auth.Dependencies[0] != "TokenStore" {
		t.Errorf("dependencies not round-tripped: %v", auth.Dependencies)
	}
	if len(auth.CalledBy) != 1 || auth.CalledBy[0] != "LoginController" {
		t.Errorf("callers not round-tripped: %v", auth.CalledBy)
	}
	if auth.Complexity != 6 {
		t.Errorf("expected complexity 6, got %d", auth.Complexity)
	}
}

func TestLoadSnapshotEmpty(t *testing.T) {
	s, err := OpenStore(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer s.Close()

	snap, err := s.LoadSnapshot()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap != nil {
		t.Errorf("expected nil snapshot before any save, got %+v", snap)
	}

	count, err := s.ElementCount()
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 elements, got %d", count)
	}
}

func TestSaveReplacesPreviousSnapshot(t *testing.T) {
	s, err := OpenStore(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer s.Close()

	if err := s.SaveSnapshot(testSnapshot()); err != nil {
		t.Fatalf("first save failed: %v", err)
	}

	replacement := &scan.Snapshot{
		Tool: "repo-scan",
		Elements: []scan.Element{
			{Name: "parseConfig", File: "src/config.ts", Line: 1, Kind: scan.KindFunction},
		},
	}
	if err := s.SaveSnapshot(replacement); err != nil {
		t.Fatalf("second save failed: %v", err)
	}

	count, err := s.ElementCount()
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected replacement to leave 1 element, got %d", count)
	}

	loaded, err := s.LoadSnapshot()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Elements[0].Name != "parseConfig" {
		t.Errorf("expected parseConfig, got %q", loaded.Elements[0].Name)
	}
}

func TestReopenKeepsData(t *testing.T) {
	dir := t.TempDir()

	s, err := OpenStore(dir, nil)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	if err := s.SaveSnapshot(testSnapshot()); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	reopened, err := OpenStore(dir, nil)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()

	count, err := reopened.ElementCount()
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 elements after reopen, got %d", count)
	}
}
