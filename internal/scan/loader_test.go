package scan

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"

	gerrors "planguard/internal/errors"
)

func TestParseSnapshotObject(t *testing.T) {
	data := []byte(`{
		"generatedAt": "2026-08-01T12:00:00Z",
		"tool": "scanner",
		"elements": [
			{"name": "loadUser", "file": "user.ts", "line": 10, "kind": "function",
			 "dependencies": ["dbQuery"], "calledBy": ["UserPage"]}
		]
	}`)

	snap, err := ParseSnapshot(data, nil)
	if err != nil {
		t.Fatalf("ParseSnapshot failed: %v", err)
	}
	if len(snap.Elements) != 1 {
		t.Fatalf("expected 1 element, got %d", len(snap.Elements))
	}
	el := snap.Elements[0]
	if el.Name != "loadUser" || el.Kind != KindFunction {
		t.Errorf("unexpected element: %+v", el)
	}
	if len(el.Dependencies) != 1 || el.Dependencies[0] != "dbQuery" {
		t.Errorf("unexpected dependencies: %v", el.Dependencies)
	}
}

func TestParseSnapshotBareArray(t *testing.T) {
	data := []byte(`[{"name": "A", "file": "a.go", "line": 1, "kind": "class"}]`)

	snap, err := ParseSnapshot(data, nil)
	if err != nil {
		t.Fatalf("ParseSnapshot failed: %v", err)
	}
	if len(snap.Elements) != 1 || snap.Elements[0].Name != "A" {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
}

func TestParseSnapshotSkipsMalformedRecords(t *testing.T) {
	data := []byte(`{"elements": [
		{"name": "good", "file": "a.go", "line": 1, "kind": "function"},
		{"name": "", "file": "b.go", "line": 2, "kind": "function"},
		{"name": "noFile", "line": 3, "kind": "function"},
		{"name": "noKind", "file": "c.go", "line": 4}
	]}`)

	snap, err := ParseSnapshot(data, nil)
	if err != nil {
		t.Fatalf("ParseSnapshot failed: %v", err)
	}
	if len(snap.Elements) != 1 {
		t.Fatalf("expected only the good record, got %d", len(snap.Elements))
	}
	if snap.Elements[0].Name != "good" {
		t.Errorf("wrong surviving record: %+v", snap.Elements[0])
	}
}

func TestParseSnapshotGarbage(t *testing.T) {
	_, err := ParseSnapshot([]byte(`not json`), nil)
	if err == nil {
		t.Fatal("expected error for garbage input")
	}
	if gerrors.CodeOf(err) != gerrors.MalformedInput {
		t.Errorf("expected MALFORMED_INPUT, got %s", gerrors.CodeOf(err))
	}
}

func TestLoadSnapshotMissingFile(t *testing.T) {
	_, err := LoadSnapshot(filepath.Join(t.TempDir(), "nope.json"), nil)
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if gerrors.CodeOf(err) != gerrors.SnapshotMissing {
		t.Errorf("expected SNAPSHOT_MISSING, got %s", gerrors.CodeOf(err))
	}
	// Cache fallbacks branch on IsNotFound, so a missing snapshot file
	// must satisfy it.
	if !gerrors.IsNotFound(err) {
		t.Error("missing snapshot error should satisfy IsNotFound")
	}
}

func TestLoadSnapshotZstd(t *testing.T) {
	snap := Snapshot{Elements: []Element{
		{Name: "handler", File: "h.go", Line: 5, Kind: KindFunction},
	}}
	raw, err := json.Marshal(snap)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	enc, err := zstd.NewWriter(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := enc.Write(raw); err != nil {
		t.Fatal(err)
	}
	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "snap.json.zst")
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadSnapshot(path, nil)
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}
	if len(loaded.Elements) != 1 || loaded.Elements[0].Name != "handler" {
		t.Fatalf("unexpected snapshot: %+v", loaded)
	}
}

func TestSymbolName(t *testing.T) {
	tests := []struct {
		symbol string
		want   string
	}{
		{"scip-go gomod example . `example.com/pkg`/LoadUser().", "LoadUser"},
		{"scip-go gomod example . `example.com/pkg`/Store#", "Store"},
		{"scip-go gomod example . `example.com/pkg`/Store#Get().", "Store.Get"},
	}

	for _, tt := range tests {
		if got := symbolName(tt.symbol); got != tt.want {
			t.Errorf("symbolName(%q) = %q, want %q", tt.symbol, got, tt.want)
		}
	}
}
