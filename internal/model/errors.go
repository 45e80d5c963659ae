package model

import "errors"

// Structural errors. All are recoverable: the operation that raised one
// simply did not apply.
var (
	ErrNotFound      = errors.New("item not found")
	ErrInvalidParent = errors.New("parent is not an existing group")
	ErrCycle         = errors.New("move would create a cycle")
)
