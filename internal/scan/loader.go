package scan

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"

	gerrors "planguard/internal/errors"
)

// LoadSnapshot reads an element snapshot from a JSON file. Files ending in
// .zst are transparently decompressed. The top level may be either a
// Snapshot object or a bare element array.
//
// Individual malformed records (missing name, file, or kind) are skipped
// with a warning rather than failing the load: partial scans are expected
// and callers treat absent elements as "no data".
func LoadSnapshot(path string, logger *slog.Logger) (*Snapshot, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, gerrors.New(gerrors.SnapshotMissing,
				fmt.Sprintf("snapshot not found at %s", path), err)
		}
		return nil, gerrors.New(gerrors.InternalError,
			fmt.Sprintf("failed to open snapshot %s", path), err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".zst") {
		dec, err := zstd.NewReader(f)
		if err != nil {
			return nil, gerrors.New(gerrors.MalformedInput,
				fmt.Sprintf("failed to open zstd stream in %s", path), err)
		}
		defer dec.Close()
		r = dec
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, gerrors.New(gerrors.InternalError,
			fmt.Sprintf("failed to read snapshot %s", path), err)
	}

	return ParseSnapshot(data, logger)
}

// ParseSnapshot decodes snapshot bytes. See LoadSnapshot for shape rules.
func ParseSnapshot(data []byte, logger *slog.Logger) (*Snapshot, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		// Fall back to a bare element array
		var elems []Element
		if arrErr := json.Unmarshal(data, &elems); arrErr != nil {
			return nil, gerrors.New(gerrors.MalformedInput,
				"snapshot is neither a snapshot object nor an element array", err)
		}
		snap = Snapshot{Elements: elems}
	}

	kept := make([]Element, 0, len(snap.Elements))
	skipped := 0
	for _, el := range snap.Elements {
		if reason := checkShape(el); reason != "" {
			skipped++
			logger.Warn("skipping malformed element", "reason", reason, "name", el.Name, "file", el.File)
			continue
		}
		kept = append(kept, el)
	}
	snap.Elements = kept

	if skipped > 0 {
		logger.Warn("snapshot loaded with malformed records dropped",
			"kept", len(kept), "skipped", skipped)
	}

	return &snap, nil
}

// checkShape returns a non-empty reason string for a malformed element.
func checkShape(el Element) string {
	switch {
	case strings.TrimSpace(el.Name) == "":
		return "missing name"
	case strings.TrimSpace(el.File) == "":
		return "missing file"
	case el.Kind == "":
		return "missing kind"
	default:
		return ""
	}
}
