package oerror

import "fmt"

// LocomotionError is a plain error carrying a formatted message.
type LocomotionError struct {
	Err string
}

// New returns a new error with a message formatted from the arguments passed.
func New(format string, args ...any) *LocomotionError {
	if len(args) == 0 {
		return &LocomotionError{Err: format}
	}
	return &LocomotionError{Err: fmt.Sprintf(format, args...)}
}

func (e *LocomotionError) Error() string {
	return e.Err
}
