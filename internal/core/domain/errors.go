package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent parse and join failures.
// These are distinct from infrastructure errors (network, cache).
var (
	// ErrMalformedTable indicates the raw table has no recognisable
	// segments, or a segment header run is shorter than the declared depth.
	ErrMalformedTable = errors.New("malformed isochrone table")

	// ErrSchema indicates an empty or invalid column header line, or a
	// column required by an operation is absent.
	ErrSchema = errors.New("invalid column schema")

	// ErrInconsistent indicates the structural and content-derived segment
	// counts disagree. Either the parser is wrong or the upstream file is
	// ambiguous; neither is recoverable.
	ErrInconsistent = errors.New("inconsistent segment boundaries")

	// ErrShape indicates join inputs have mismatched lengths.
	ErrShape = errors.New("mismatched set shapes")

	// ErrUnknownKey indicates a metadata or settings key does not exist.
	ErrUnknownKey = errors.New("unknown key")

	// ErrNotFound indicates a requested cache entry does not exist.
	ErrNotFound = errors.New("not found")

	// ErrServerResponse indicates the remote CMD service returned a page
	// without a result table link.
	ErrServerResponse = errors.New("unexpected server response")
)

// ParseError reports a data field that failed to convert to its declared
// column type. Line is zero-based within the raw table text.
type ParseError struct {
	Line   int
	Column string
	Value  string
	Err    error
}

// Error returns a formatted error string with position context.
func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d, column %q: cannot parse %q: %v",
		e.Line, e.Column, e.Value, e.Err)
}

// Unwrap returns the underlying conversion error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError reports a settings value rejected by the schema.
type ValidationError struct {
	Key    string
	Value  any
	Reason string
}

// Error returns a formatted error string naming the offending key.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("setting %q: %v %s", e.Key, e.Value, e.Reason)
}
