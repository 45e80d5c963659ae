package importer

import (
	"errors"
	"fmt"
)

// Sentinel errors for whole-snapshot failures. Any failure aborts the
// entire import; no partial set is ever returned.
var (
	ErrEmptyInput        = errors.New("empty import data")
	ErrMalformedJSON     = errors.New("invalid JSON format")
	ErrForbiddenKeys     = errors.New("import data contains forbidden keys")
	ErrNotAnArray        = errors.New("import data must be an array")
	ErrTooManyItems      = fmt.Errorf("too many items (max %d)", MaxItems)
	ErrInvalidItem       = errors.New("invalid item")
	ErrDuplicateID       = errors.New("duplicate id")
	ErrDanglingParent    = errors.New("invalid parent reference")
	ErrCircularReference = errors.New("circular reference")
)

// ItemError reports the first item that failed schema validation.
type ItemError struct {
	Index int
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("invalid item at index %d", e.Index)
}

func (e *ItemError) Is(target error) bool {
	return target == ErrInvalidItem
}

// DuplicateIDError reports a repeated item id.
type DuplicateIDError struct {
	ID string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("duplicate id: %s", e.ID)
}

func (e *DuplicateIDError) Is(target error) bool {
	return target == ErrDuplicateID
}

// DanglingParentError reports a parentId that matches no item in the set.
type DanglingParentError struct {
	ID string
}

func (e *DanglingParentError) Error() string {
	return fmt.Sprintf("invalid parent reference: %s", e.ID)
}

func (e *DanglingParentError) Is(target error) bool {
	return target == ErrDanglingParent
}

// CircularReferenceError names the first id at which a parent cycle closes.
type CircularReferenceError struct {
	ID string
}

func (e *CircularReferenceError) Error() string {
	return fmt.Sprintf("circular reference detected: %s", e.ID)
}

func (e *CircularReferenceError) Is(target error) bool {
	return target == ErrCircularReference
}
