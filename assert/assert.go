package assert

import "github.com/oomph-ac/locomotion/oerror"

// IsTrue panics with a formatted error if ok is false. It is reserved for programming errors made
// by the caller, never for degenerate runtime input.
func IsTrue(ok bool, message string, args ...any) {
	if !ok {
		panic(oerror.New(message, args...))
	}
}
