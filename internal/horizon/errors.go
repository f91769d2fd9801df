package horizon

import (
	"errors"
	"fmt"
)

// Sentinel errors. The typed errors below match them via errors.Is.
var (
	ErrDuplicateID   = errors.New("duplicate id")
	ErrNotFound      = errors.New("not found")
	ErrInvalidParent = errors.New("invalid parent")
)

// DuplicateIDError reports two input records sharing an id. Positions are
// indexes into the slice given to Build.
type DuplicateIDError[K comparable] struct {
	ID     K
	First  int
	Second int
}

func (e *DuplicateIDError[K]) Error() string {
	return fmt.Sprintf("duplicate id %v at positions %d and %d", e.ID, e.First, e.Second)
}

func (e *DuplicateIDError[K]) Is(target error) bool {
	return target == ErrDuplicateID
}

// NotFoundError reports a lookup by an id the index does not contain.
type NotFoundError[K comparable] struct {
	ID K
}

func (e *NotFoundError[K]) Error() string {
	return fmt.Sprintf("record %v not found", e.ID)
}

func (e *NotFoundError[K]) Is(target error) bool {
	return target == ErrNotFound
}

// InvalidParentError reports a parent_id naming an id absent from the input.
// Only returned when Options.StrictParents is set.
type InvalidParentError[K comparable] struct {
	ID       K
	ParentID K
}

func (e *InvalidParentError[K]) Error() string {
	return fmt.Sprintf("record %v: parent %v does not exist", e.ID, e.ParentID)
}

func (e *InvalidParentError[K]) Is(target error) bool {
	return target == ErrInvalidParent
}
