package wizard

import (
	"errors"
	"fmt"
)

// ErrStepNotReady is returned when a transition would move past a step whose
// status is not valid. Hosts normally prevent this by disabling the control.
var ErrStepNotReady = errors.New("step not ready")

// ErrOutOfRange matches any *OutOfRangeError via errors.Is.
var ErrOutOfRange = errors.New("step index out of range")

// OutOfRangeError reports a jump target outside [0, Len).
type OutOfRangeError struct {
	Index int
	Len   int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("step index %d out of range [0, %d)", e.Index, e.Len)
}

// Is lets errors.Is(err, ErrOutOfRange) match.
func (e *OutOfRangeError) Is(target error) bool {
	return target == ErrOutOfRange
}
