package folding

import "errors"

// Errors returned by folding operations.
var (
	// ErrNotTrigger is returned when constructing a Scope from a line that
	// does not open a fold-able scope.
	ErrNotTrigger = errors.New("line is not a fold trigger")
)
