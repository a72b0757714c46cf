package sorter

import (
	"errors"
	"fmt"

	"github.com/roach88/deepsort/internal/value"
)

// ErrCycle matches every *CycleError via errors.Is.
var ErrCycle = errors.New("cyclic reference")

// CycleError reports that the traversal reached a container that is
// still being normalized further up the current path.
//
// The call that produced it returned no partial result.
type CycleError struct {
	// Kind is the kind of the revisited container (object or array).
	Kind value.Kind

	// Path locates the revisit, e.g. "$.child.parent".
	Path string

	// First locates where the container was first entered, e.g. "$".
	First string
}

// Error implements the error interface.
func (e *CycleError) Error() string {
	return fmt.Sprintf("%v: %s at %s refers back to %s", ErrCycle, e.Kind, e.Path, e.First)
}

// Is makes errors.Is(err, ErrCycle) succeed.
func (e *CycleError) Is(target error) bool {
	return target == ErrCycle
}

// IsCycleError returns true if the error is a cycle detection error.
// Uses errors.As to handle wrapped errors.
func IsCycleError(err error) bool {
	var ce *CycleError
	return errors.As(err, &ce)
}
