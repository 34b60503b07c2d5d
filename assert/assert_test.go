package assert

import (
	"testing"

	"github.com/oomph-ac/locomotion/oerror"
)

func TestIsTruePanicsWithFormattedError(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected a panic")
		}
		err, ok := r.(*oerror.LocomotionError)
		if !ok {
			t.Fatalf("expected *oerror.LocomotionError, got %T", r)
		}
		if err.Error() != "fixed step must be positive, got -1" {
			t.Fatalf("unexpected message %q", err.Error())
		}
	}()
	IsTrue(false, "fixed step must be positive, got %v", -1)
}

func TestIsTrueNoPanic(t *testing.T) {
	IsTrue(true, "never")
}
