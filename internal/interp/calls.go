package interp

import (
	"sync/atomic"

	"github.com/latch-lang/latch/internal/ast"
	"github.com/latch-lang/latch/internal/token"
	"github.com/latch-lang/latch/internal/value"
)

// yieldSinks is a stack of destinations for `yield` inside the function
// currently executing. spec.md §4.4/§9 permits realizing generators by
// eager materialization: a function containing `yield` anywhere in its
// body runs to completion on call, and each yielded value is appended to
// the sink instead of suspending the call; the call's own return value is
// then the collected list rather than its `return` value (or Null if it
// never returns explicitly).
//
// The stack lives on Interp and is not safe for concurrent use, so calling
// a generator from inside a parallel worker is rejected (see
// ip.parallelDepth in callFn) rather than letting two goroutines push/pop
// the same slice.
type yieldSinks struct {
	stack [][]value.Value
}

func (ys *yieldSinks) push() { ys.stack = append(ys.stack, nil) }
func (ys *yieldSinks) pop() []value.Value {
	n := len(ys.stack) - 1
	top := ys.stack[n]
	ys.stack = ys.stack[:n]
	return top
}
func (ys *yieldSinks) append(v value.Value) {
	n := len(ys.stack) - 1
	if n < 0 {
		return
	}
	ys.stack[n] = append(ys.stack[n], v)
}

// containsYield reports whether body directly or lexically contains a
// `yield` (not crossing into a nested FnLit, which has its own call frame).
func containsYield(body []ast.Stmt) bool {
	for _, s := range body {
		if stmtContainsYield(s) {
			return true
		}
	}
	return false
}

func stmtContainsYield(s ast.Stmt) bool {
	switch n := s.(type) {
	case *ast.Yield:
		return true
	case *ast.If:
		for _, br := range n.Branches {
			if containsYield(br.Body) {
				return true
			}
		}
		return containsYield(n.Else)
	case *ast.For:
		return containsYield(n.Body)
	case *ast.While:
		return containsYield(n.Body)
	case *ast.Try:
		return containsYield(n.Body) || containsYield(n.CatchBody) || containsYield(n.Finally)
	}
	return false
}

// CallValue invokes callee (Fn, Builtin, or Class-as-constructor) with
// already-evaluated args (spec.md §4.4 Calls). sp is the call site span for
// error reporting.
func (ip *Interp) CallValue(callee value.Value, args []value.Value, sp token.Span) value.Value {
	switch callee.Tag {
	case value.TagFn:
		return ip.callFn(callee.AsFn(), args, sp)
	case value.TagBuiltin:
		b := callee.AsBuiltin()
		if b.Arity >= 0 && len(args) != b.Arity {
			rt(value.NewError(value.ArityError, sp, "%s expects %d argument(s), got %d", b.Name, b.Arity, len(args)))
		}
		v, err := b.Impl(args)
		if err != nil {
			err.Span = sp
			rt(err)
		}
		return v
	case value.TagClass:
		return ip.instantiate(callee.AsClass(), args, sp)
	default:
		rt(value.NewError(value.TypeError, sp, "value of type %s is not callable", callee.Tag))
		panic("unreachable")
	}
}

func (ip *Interp) callFn(fn *value.Fn, args []value.Value, sp token.Span) value.Value {
	if len(args) > len(fn.Params) {
		rt(value.NewError(value.ArityError, sp, "%s expects at most %d argument(s), got %d", fnLabel(fn), len(fn.Params), len(args)))
	}
	callEnv := fn.Env.Child()
	for i, p := range fn.Params {
		if i < len(args) {
			callEnv.Declare(p.Name, args[i], false)
			continue
		}
		if p.Default == nil {
			rt(value.NewError(value.ArityError, sp, "%s missing required argument %q", fnLabel(fn), p.Name))
		}
		callEnv.Declare(p.Name, ip.eval(p.Default, fn.Env), false)
	}

	isGen := containsYield(fn.Body)
	if isGen {
		if atomic.LoadInt32(&ip.parallelDepth) > 0 {
			rt(value.NewError(value.UnsupportedControl, sp, "generator calls are not allowed inside a parallel worker"))
		}
		ip.yields.push()
	}

	result := value.Null
	func() {
		defer func() {
			if r := recover(); r != nil {
				if rs, ok := r.(returnSignal); ok {
					result = rs.value
					return
				}
				if isGen {
					ip.yields.pop()
				}
				panic(r)
			}
		}()
		ip.execBlockIn(fn.Body, callEnv)
	}()

	if isGen {
		items := ip.yields.pop()
		return value.NewList(items)
	}
	return result
}

func fnLabel(fn *value.Fn) string {
	if fn.Name != "" {
		return fn.Name
	}
	return "<fn>"
}

func (ip *Interp) instantiate(cls *value.Class, args []value.Value, sp token.Span) value.Value {
	inst := &value.Instance{Class: cls, Fields: map[string]value.Value{}}
	for i, f := range cls.Fields {
		if i < len(args) {
			inst.Fields[f.Name] = args[i]
		} else if f.Default != nil {
			inst.Fields[f.Name] = ip.eval(f.Default, ip.Globals)
		} else {
			inst.Fields[f.Name] = value.Null
		}
	}
	return value.InstanceValue(inst)
}

// boundMethod wraps a class method so calling it implicitly binds `self`
// (spec.md §3: "method lookup binds self implicitly to field-access inside
// the method").
func (ip *Interp) boundMethod(inst *value.Instance, m *value.Fn) value.Value {
	methodEnv := m.Env.Child()
	methodEnv.Declare("self", value.InstanceValue(inst), false)
	bound := &value.Fn{Name: m.Name, Params: m.Params, Body: m.Body, Env: methodEnv, IsMethod: true}
	return value.FnValue(bound)
}
