// Package scan defines the scanned-element model and snapshot loading.
//
// Elements are immutable scan facts produced by an external scanner. This
// package never mutates them; it only validates shape on the way in and
// hands the list to the graph index.
package scan

// ElementKind represents the kind of a scanned code element
type ElementKind string

const (
	KindFunction  ElementKind = "function"
	KindClass     ElementKind = "class"
	KindComponent ElementKind = "component"
	KindInterface ElementKind = "interface"
	KindType      ElementKind = "type"
	KindDecorator ElementKind = "decorator"
	KindMethod    ElementKind = "method"
	KindVariable  ElementKind = "variable"
)

// Element represents a named code unit with known dependency/caller edges
// from static scanning.
type Element struct {
	// Name is the unique element name within the snapshot
	Name string `json:"name"`

	// File is the path of the file the element was scanned from
	File string `json:"file"`

	// Line is the 1-indexed line the element starts on
	Line int `json:"line"`

	// Kind is the element kind (function, class, component, ...)
	Kind ElementKind `json:"kind"`

	// Parameters are the declared parameter names, if any
	Parameters []string `json:"parameters,omitempty"`

	// Dependencies are names this element statically references
	Dependencies []string `json:"dependencies,omitempty"`

	// CalledBy are names referencing this element
	CalledBy []string `json:"calledBy,omitempty"`

	// Complexity is an optional scanner-provided complexity value.
	// This is the scanner's own metric (often cyclomatic) and is NOT
	// the heuristic score computed by internal/complexity.
	Complexity int `json:"complexity,omitempty"`
}

// Snapshot is a full element listing produced by one scanner run.
type Snapshot struct {
	// GeneratedAt is the scanner's RFC3339 timestamp, if recorded
	GeneratedAt string `json:"generatedAt,omitempty"`

	// Tool identifies the scanner that produced the snapshot
	Tool string `json:"tool,omitempty"`

	// Elements are the scanned elements
	Elements []Element `json:"elements"`
}
