package types

import "errors"

// Storage error kinds. Callers match them with errors.Is; the concrete error
// carries the path and the underlying cause.
var (
	// ErrIO reports a failed read, write, or directory creation.
	ErrIO = errors.New("storage I/O error")

	// ErrParse reports malformed JSON or a legacy shape that no decoder recognizes.
	ErrParse = errors.New("unrecognized data format")

	// ErrSerialization reports a failure to encode an already-typed value.
	ErrSerialization = errors.New("serialization failed")
)
