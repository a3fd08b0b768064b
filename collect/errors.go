package collect

import "errors"

var (
	// ErrDuplicateKey is returned when two elements resolve to an
	// equivalent key and the active merge policy is fail-fast. The
	// failure is deliberate: silently overwriting would hide a caller
	// logic error. Callers that want overwrite-or-combine semantics must
	// supply an explicit MergeFunc.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrMissingKeyFunc is returned when a configuration lacks a key
	// extraction function.
	ErrMissingKeyFunc = errors.New("missing key function")

	// ErrMissingValueFunc is returned when a configuration lacks a value
	// extraction function.
	ErrMissingValueFunc = errors.New("missing value function")

	// ErrMissingComparator is returned when a configuration lacks a key
	// or value comparator.
	ErrMissingComparator = errors.New("missing comparator")
)
