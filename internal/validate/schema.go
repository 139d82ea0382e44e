package validate

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/BurntSushi/toml"

	gerrors "planguard/internal/errors"
)

// Schema carries the tunable constants behind plan validation. The zero
// value is not usable; start from DefaultSchema and override. The scoring
// weights are deliberately data, not law: the wider ecosystem has used at
// least two incompatible weight schemes, so nothing here is authoritative.
type Schema struct {
	// Weights are the per-severity score deductions
	Weights Weights `toml:"weights"`

	// ApprovalThreshold is the minimum score for approval
	ApprovalThreshold int `toml:"approval_threshold"`

	// MinTaskDescriptionLen is the minimum acceptable task description length
	MinTaskDescriptionLen int `toml:"min_task_description_len"`

	// Placeholders are case-insensitive markers of unfinished plan text
	Placeholders []string `toml:"placeholders"`

	// VagueTerms flag success criteria that cannot be objectively checked
	VagueTerms []string `toml:"vague_terms"`

	// GenericVerbs flag task descriptions that read as busywork labels
	GenericVerbs []string `toml:"generic_verbs"`

	// OrderingHints are words implying sequencing that requires depends_on
	OrderingHints []string `toml:"ordering_hints"`

	// TestingTiers are the tier names a testing strategy must mention
	TestingTiers []string `toml:"testing_tiers"`

	// WorkorderPattern validates meta.workorder_id when present
	WorkorderPattern string `toml:"workorder_pattern"`
}

// Weights are the per-severity score deductions.
type Weights struct {
	Critical int `toml:"critical"`
	Major    int `toml:"major"`
	Minor    int `toml:"minor"`
}

// DefaultSchema returns the built-in validation schema.
func DefaultSchema() *Schema {
	return &Schema{
		Weights:               Weights{Critical: 20, Major: 10, Minor: 5},
		ApprovalThreshold:     90,
		MinTaskDescriptionLen: 20,
		Placeholders: []string{
			"tbd", "todo", "[placeholder]", "coming soon", "fill this in", "to be determined",
		},
		VagueTerms: []string{
			"better", "improved", "good", "faster", "nicer", "cleaner",
			"some", "various", "as needed", "should work", "etc",
		},
		GenericVerbs: []string{
			"handle", "manage", "do", "improve", "fix", "support", "deal with", "misc",
		},
		OrderingHints: []string{
			"after", "then", "once", "before", "following", "first", "finally",
		},
		TestingTiers:     []string{"unit", "integration", "e2e"},
		WorkorderPattern: `^WO-[A-Z0-9-]+-\d{3}$`,
	}
}

// LoadSchema reads schema overrides from a TOML file and merges them over
// the defaults. A missing file is a configuration gap, not a failure: the
// defaults are returned and a warning is logged so validation always runs.
func LoadSchema(path string, logger *slog.Logger) *Schema {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	schema := DefaultSchema()
	if path == "" {
		return schema
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		gap := gerrors.Newf(gerrors.ConfigGap, "validation schema not found at %s", path)
		logger.Warn("falling back to built-in validation schema", "error", gap.Error())
		return schema
	}

	var overrides Schema
	meta, err := toml.DecodeFile(path, &overrides)
	if err != nil {
		logger.Warn("ignoring unreadable validation schema",
			"path", path, "error", err.Error())
		return schema
	}

	mergeSchema(schema, &overrides, meta)
	logger.Debug("validation schema loaded", "path", path)
	return schema
}

// mergeSchema copies only the keys the file actually defined.
func mergeSchema(dst, src *Schema, meta toml.MetaData) {
	if meta.IsDefined("weights", "critical") {
		dst.Weights.Critical = src.Weights.Critical
	}
	if meta.IsDefined("weights", "major") {
		dst.Weights.Major = src.Weights.Major
	}
	if meta.IsDefined("weights", "minor") {
		dst.Weights.Minor = src.Weights.Minor
	}
	if meta.IsDefined("approval_threshold") {
		dst.ApprovalThreshold = src.ApprovalThreshold
	}
	if meta.IsDefined("min_task_description_len") {
		dst.MinTaskDescriptionLen = src.MinTaskDescriptionLen
	}
	if meta.IsDefined("placeholders") {
		dst.Placeholders = src.Placeholders
	}
	if meta.IsDefined("vague_terms") {
		dst.VagueTerms = src.VagueTerms
	}
	if meta.IsDefined("generic_verbs") {
		dst.GenericVerbs = src.GenericVerbs
	}
	if meta.IsDefined("ordering_hints") {
		dst.OrderingHints = src.OrderingHints
	}
	if meta.IsDefined("testing_tiers") {
		dst.TestingTiers = src.TestingTiers
	}
	if meta.IsDefined("workorder_pattern") {
		dst.WorkorderPattern = src.WorkorderPattern
	}
}

// penalty returns the deduction for a severity under this schema.
func (s *Schema) penalty(sev Severity) int {
	switch sev {
	case SeverityCritical:
		return s.Weights.Critical
	case SeverityMajor:
		return s.Weights.Major
	case SeverityMinor:
		return s.Weights.Minor
	default:
		return 0
	}
}

// String summarizes the schema for debug logging.
func (s *Schema) String() string {
	return fmt.Sprintf("schema{-%d/-%d/-%d threshold=%d}",
		s.Weights.Critical, s.Weights.Major, s.Weights.Minor, s.ApprovalThreshold)
}
