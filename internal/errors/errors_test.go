package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name     string
		err      *GateError
		contains []string
	}{
		{
			name:     "without cause",
			err:      New(NotFound, "element 'foo' not in snapshot", nil),
			contains: []string{"NOT_FOUND", "element 'foo' not in snapshot"},
		},
		{
			name:     "with cause",
			err:      New(MalformedInput, "bad plan document", fmt.Errorf("yaml: line 3")),
			contains: []string{"MALFORMED_INPUT", "bad plan document", "yaml: line 3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, want := range tt.contains {
				if !strings.Contains(msg, want) {
					t.Errorf("error %q missing %q", msg, want)
				}
			}
		})
	}
}

func TestUnwrap(t *testing.T) {
	cause := fmt.Errorf("root cause")
	err := New(InternalError, "wrapper", cause)
	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to find the cause")
	}
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{"direct", New(GraphAnomaly, "cycle", nil), GraphAnomaly},
		{"wrapped", fmt.Errorf("outer: %w", New(ConfigGap, "no schema", nil)), ConfigGap},
		{"plain error", fmt.Errorf("plain"), InternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CodeOf(tt.err); got != tt.want {
				t.Errorf("CodeOf = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestIsNotFound(t *testing.T) {
	if !IsNotFound(New(NotFound, "missing", nil)) {
		t.Error("expected IsNotFound true for NotFound error")
	}
	if !IsNotFound(New(SnapshotMissing, "no snapshot on disk", nil)) {
		t.Error("expected IsNotFound true for SnapshotMissing error")
	}
	if IsNotFound(New(InternalError, "boom", nil)) {
		t.Error("expected IsNotFound false for other codes")
	}
}

func TestSuggestedFixes(t *testing.T) {
	err := New(SnapshotMissing, "no snapshot", nil)
	if len(err.SuggestedFixes) == 0 {
		t.Fatal("expected suggested fixes for SnapshotMissing")
	}
	if !strings.Contains(err.SuggestedFixes[0], "snapshot import") {
		t.Errorf("unexpected fix: %s", err.SuggestedFixes[0])
	}
}
