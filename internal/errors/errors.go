// Package errors defines coded errors for all Planguard failure modes.
//
// The four domain codes (MalformedInput, NotFound, GraphAnomaly, ConfigGap)
// are recoverable by design: analyzers and validators fold them into report
// entries and keep going. Only contract violations (nil plan, nil index,
// empty required argument) propagate to the caller as returned errors.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// MalformedInput indicates plan or element data failed basic shape checks
	MalformedInput ErrorCode = "MALFORMED_INPUT"
	// NotFound indicates a referenced element or task id is absent
	NotFound ErrorCode = "NOT_FOUND"
	// GraphAnomaly indicates a structural finding such as a dependency cycle
	GraphAnomaly ErrorCode = "GRAPH_ANOMALY"
	// ConfigGap indicates optional schema or reference data is missing
	ConfigGap ErrorCode = "CONFIG_GAP"
	// SnapshotMissing indicates no element snapshot has been imported
	SnapshotMissing ErrorCode = "SNAPSHOT_MISSING"
	// InternalError indicates an unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// GateError represents a Planguard error with code, message, and suggestions
type GateError struct {
	Code           ErrorCode   `json:"code"`
	Message        string      `json:"message"`
	Details        interface{} `json:"details,omitempty"`
	SuggestedFixes []string    `json:"suggestedFixes,omitempty"`
	cause          error       // Underlying error (not exported to JSON)
}

// New creates a new GateError
func New(code ErrorCode, message string, cause error) *GateError {
	return &GateError{
		Code:           code,
		Message:        message,
		cause:          cause,
		SuggestedFixes: suggestedFixes(code),
	}
}

// Newf creates a new GateError with a formatted message and no cause
func Newf(code ErrorCode, format string, args ...interface{}) *GateError {
	return New(code, fmt.Sprintf(format, args...), nil)
}

// Error implements the error interface
func (e *GateError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *GateError) Unwrap() error {
	return e.cause
}

// WithDetails adds details to the error
func (e *GateError) WithDetails(details interface{}) *GateError {
	e.Details = details
	return e
}

// CodeOf extracts the ErrorCode from an error chain.
// Returns InternalError for non-GateError values.
func CodeOf(err error) ErrorCode {
	var ge *GateError
	if errors.As(err, &ge) {
		return ge.Code
	}
	return InternalError
}

// IsNotFound reports whether the error chain carries an absence code:
// NotFound for elements and plans, SnapshotMissing for snapshot files.
// Callers branch on "the data is not there", not on which loader said so.
func IsNotFound(err error) bool {
	code := CodeOf(err)
	return code == NotFound || code == SnapshotMissing
}

// suggestedFixes returns canned follow-up actions for a code.
func suggestedFixes(code ErrorCode) []string {
	switch code {
	case SnapshotMissing:
		return []string{"Run 'planguard snapshot import <file>' to load scanned elements"}
	case ConfigGap:
		return []string{"Provide a validation schema file or rely on built-in defaults"}
	case MalformedInput:
		return []string{"Check the plan or snapshot file against the documented shape"}
	default:
		return nil
	}
}
