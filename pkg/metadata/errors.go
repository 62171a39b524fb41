package metadata

import (
	"errors"
	"fmt"
)

// ErrNotFound is matched by every LookupError.
var ErrNotFound = errors.New("metadata: not found")

// LookupError reports an entity, property or column descriptor that has no
// resolvable metadata. It aborts the form build.
type LookupError struct {
	Class    string
	Property string
	Reason   string
}

func (e *LookupError) Error() string {
	if e.Property == "" {
		return fmt.Sprintf("metadata: %s: %s", e.Class, e.Reason)
	}
	return fmt.Sprintf("metadata: %s::%s: %s", e.Class, e.Property, e.Reason)
}

// Is makes errors.Is(err, ErrNotFound) succeed.
func (e *LookupError) Is(target error) bool {
	return target == ErrNotFound
}
