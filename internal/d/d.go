// Package d holds low-level invariant-assertion helpers. These panic on
// violation because they signal a bug inside the kernel itself, never a
// caller mistake — caller-recoverable failures are reported through
// cheaperr instead.
package d

import "fmt"

// PanicIfError panics with err if it is non-nil.
func PanicIfError(err error) {
	if err != nil {
		panic(err)
	}
}

// PanicIfTrue panics if b is true.
func PanicIfTrue(b bool, args ...interface{}) {
	if b {
		panic(fmt.Sprint(args...))
	}
}

// PanicIfFalse panics if b is false.
func PanicIfFalse(b bool, args ...interface{}) {
	if !b {
		panic(fmt.Sprint(args...))
	}
}

// Chk panics with a formatted message if cond is false. Used to guard
// structural invariants (e.g. "hierarchy's catalog pointer matches its owner")
// that should never fail unless the kernel itself has a defect.
func Chk(cond bool, format string, args ...interface{}) {
	if !cond {
		panic(fmt.Sprintf(format, args...))
	}
}
