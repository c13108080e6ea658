package interp

import "github.com/latch-lang/latch/internal/value"

// Control-flow signals unwind the Go stack via panic/recover, mirroring
// the returnSig/rtErr convention of the interpreter this evolved from
// (interpreter.go), generalized to the full set spec.md §4.4 requires.

type breakSignal struct{}
type continueSignal struct{}

type returnSignal struct{ value value.Value }

type stopSignal struct{ code int64 }

// rt panics with a *value.RuntimeError; the sole construction point so
// every raised error flows through one chokepoint.
func rt(err *value.RuntimeError) {
	panic(err)
}
