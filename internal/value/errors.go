package value

import (
	"fmt"

	"github.com/latch-lang/latch/internal/token"
)

// ErrorKind is spec.md §7's closed set of runtime error kinds.
type ErrorKind string

const (
	TypeError          ErrorKind = "TypeError"
	ValueError         ErrorKind = "ValueError"
	ArityError         ErrorKind = "ArityError"
	IndexError         ErrorKind = "IndexError"
	KeyError           ErrorKind = "KeyError"
	DivisionByZero     ErrorKind = "DivisionByZero"
	FileError          ErrorKind = "FileError"
	NetworkError       ErrorKind = "NetworkError"
	ProcessError       ErrorKind = "ProcessError"
	ParseError         ErrorKind = "ParseError" // from json.parse et al.
	UnsupportedControl ErrorKind = "UnsupportedControl"
	AssertionError     ErrorKind = "AssertionError"
	Undefined          ErrorKind = "Undefined" // field access on non-null non-container
)

// RuntimeError is Latch's single error carrier, propagated across the
// evaluator's Go call stack as a panic (see interp.rt) and surfaced to
// script-level `catch` as a dict with kind/message/(optional data).
//
// Grounded on the interpreter it evolved from's RuntimeError{Message string, ...} plus its
// panic/recover convention in interpreter.go: the evaluator never threads
// errors through every recursive call's return value; it panics with a
// *RuntimeError and a recover() at each boundary that handles it (`try`,
// the `or` fallback, `?.`, a `parallel` worker, top-level Run) takes it
// from there; function calls let it pass through.
type RuntimeError struct {
	Kind    ErrorKind
	Message string
	Span    token.Span
	Data    Value // optional payload, surfaced as "data" by ToDict; Null if absent
}

func (e *RuntimeError) Error() string {
	if e.Span.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Span.File, e.Span.Line, e.Span.Col, e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// NewError constructs a RuntimeError with no payload.
func NewError(kind ErrorKind, sp token.Span, format string, args ...interface{}) *RuntimeError {
	return &RuntimeError{Kind: kind, Message: fmt.Sprintf(format, args...), Span: sp, Data: Null}
}

// ToDict renders the error as the dict shape `catch` binds: {kind, message}.
func (e *RuntimeError) ToDict() Value {
	d := NewDict()
	d.Set("kind", Str(string(e.Kind)))
	d.Set("message", Str(e.Message))
	if !e.Data.IsNull() {
		d.Set("data", e.Data)
	}
	return DictValue(d)
}
