package engine

import "errors"

// Sentinel errors returned by the engine. Callers should test with errors.Is
// since the engine wraps these with additional context.
var (
	// ErrInvalidInput indicates a required field was empty or malformed.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound indicates a lookup yielded no candidate. Distinct from a
	// mismatch, which means a candidate exists but disagrees.
	ErrNotFound = errors.New("not found")

	// ErrConfiguration indicates the rule table or registry was empty or
	// malformed at initialization. Fatal, never returned per call.
	ErrConfiguration = errors.New("configuration error")
)
