package interp

import (
	"strings"

	"github.com/latch-lang/latch/internal/ast"
	"github.com/latch-lang/latch/internal/token"
	"github.com/latch-lang/latch/internal/value"
)

func (ip *Interp) eval(e ast.Expr, env *value.Env) value.Value {
	switch n := e.(type) {
	case *ast.IntLit:
		return value.Int(n.Value)
	case *ast.FloatLit:
		return value.Float(n.Value)
	case *ast.BoolLit:
		return value.Bool(n.Value)
	case *ast.NullLit:
		return value.Null
	case *ast.StringLit:
		return ip.evalStringLit(n, env)
	case *ast.Ident:
		v, ok := env.Lookup(n.Name)
		if !ok {
			rt(value.NewError(value.Undefined, n.Span(), "undefined name %q", n.Name))
		}
		return v
	case *ast.ListLit:
		items := make([]value.Value, len(n.Items))
		for i, it := range n.Items {
			items[i] = ip.eval(it, env)
		}
		return value.NewList(items)
	case *ast.DictLit:
		d := value.NewDict()
		for _, entry := range n.Pairs {
			k := ip.eval(entry.Key, env)
			if k.Tag != value.TagString {
				rt(value.NewError(value.TypeError, n.Span(), "dict keys must be strings"))
			}
			d.Set(k.AsString(), ip.eval(entry.Value, env))
		}
		return value.DictValue(d)
	case *ast.Index:
		target := ip.eval(n.Target, env)
		idx := ip.eval(n.Index, env)
		return ip.indexGet(target, idx, n.Span())
	case *ast.Slice:
		return ip.evalSlice(n, env)
	case *ast.Field:
		target := ip.eval(n.Target, env)
		return ip.fieldGet(target, n.Name, n.Span())
	case *ast.SafeField:
		target := ip.eval(n.Target, env)
		if target.IsNull() {
			return value.Null
		}
		return ip.fieldGetSafe(target, n.Name, n.Span())
	case *ast.Call:
		return ip.evalCall(n, env)
	case *ast.Pipe:
		return ip.evalPipe(n, env)
	case *ast.Unary:
		return ip.evalUnary(n, env)
	case *ast.Binary:
		return ip.evalBinary(n, env)
	case *ast.Ternary:
		if value.Truthy(ip.eval(n.Cond, env)) {
			return ip.eval(n.Then, env)
		}
		return ip.eval(n.Else, env)
	case *ast.Range:
		return ip.evalRange(n, env)
	case *ast.FnLit:
		return value.FnValue(&value.Fn{Name: n.Name, Params: n.Params, Body: n.Body, Env: env})
	case *ast.ListComp:
		return ip.evalListComp(n, env)
	}
	rt(value.NewError(value.TypeError, e.Span(), "unsupported expression"))
	panic("unreachable")
}

func (ip *Interp) evalStringLit(n *ast.StringLit, env *value.Env) value.Value {
	if len(n.Parts) == 1 && n.Parts[0].Expr == nil {
		return value.Str(n.Parts[0].Literal)
	}
	var b strings.Builder
	for _, part := range n.Parts {
		if part.Expr == nil {
			b.WriteString(part.Literal)
			continue
		}
		b.WriteString(value.Format(ip.eval(part.Expr, env)))
	}
	return value.Str(b.String())
}

func (ip *Interp) evalCall(n *ast.Call, env *value.Env) value.Value {
	callee := ip.eval(n.Callee, env)
	args := make([]value.Value, len(n.Args))
	for i, a := range n.Args {
		args[i] = ip.eval(a, env)
	}
	return ip.CallValue(callee, args, n.Span())
}

// evalPipe implements `x |> f(args…)` as `f(x, args…)` (spec.md §4.4).
func (ip *Interp) evalPipe(n *ast.Pipe, env *value.Env) value.Value {
	lhs := ip.eval(n.Lhs, env)
	callee := ip.eval(n.Rhs.Callee, env)
	args := make([]value.Value, 0, len(n.Rhs.Args)+1)
	args = append(args, lhs)
	for _, a := range n.Rhs.Args {
		args = append(args, ip.eval(a, env))
	}
	return ip.CallValue(callee, args, n.Span())
}

func (ip *Interp) evalUnary(n *ast.Unary, env *value.Env) value.Value {
	v := ip.eval(n.Arg, env)
	switch n.Op {
	case token.Bang, token.KwNot:
		return value.Bool(!value.Truthy(v))
	case token.Minus:
		if !v.IsNumeric() {
			rt(value.NewError(value.TypeError, n.Span(), "unary '-' requires a number"))
		}
		if v.Tag == value.TagInt {
			return value.Int(-v.AsInt())
		}
		return value.Float(-v.AsFloat())
	}
	rt(value.NewError(value.TypeError, n.Span(), "unsupported unary operator"))
	panic("unreachable")
}

func (ip *Interp) evalRange(n *ast.Range, env *value.Env) value.Value {
	a := ip.eval(n.Start, env)
	b := ip.eval(n.End, env)
	if a.Tag != value.TagInt || b.Tag != value.TagInt {
		rt(value.NewError(value.TypeError, n.Span(), "range bounds must be integers"))
	}
	lo, hi := a.AsInt(), b.AsInt()
	if lo >= hi {
		return value.NewList(nil)
	}
	items := make([]value.Value, 0, hi-lo)
	for i := lo; i < hi; i++ {
		items = append(items, value.Int(i))
	}
	return value.NewList(items)
}

func (ip *Interp) evalSlice(n *ast.Slice, env *value.Env) value.Value {
	target := ip.eval(n.Target, env)
	switch target.Tag {
	case value.TagList:
		items := target.AsList().Items
		start, end := sliceBounds(n, env, ip, len(items))
		out := append([]value.Value(nil), items[start:end]...)
		return value.NewList(out)
	case value.TagString:
		s := target.AsString()
		runes := []rune(s)
		start, end := sliceBounds(n, env, ip, len(runes))
		return value.Str(string(runes[start:end]))
	}
	rt(value.NewError(value.TypeError, n.Span(), "cannot slice a %s", target.Tag))
	panic("unreachable")
}

func sliceBounds(n *ast.Slice, env *value.Env, ip *Interp, length int) (int, int) {
	start, end := 0, length
	if n.Start != nil {
		start = clampIndex(ip.eval(n.Start, env).AsInt(), length)
	}
	if n.End != nil {
		end = clampIndex(ip.eval(n.End, env).AsInt(), length)
	}
	if start > end {
		start = end
	}
	return start, end
}

func clampIndex(i int64, length int) int {
	if i < 0 {
		i += int64(length)
	}
	if i < 0 {
		i = 0
	}
	if i > int64(length) {
		i = int64(length)
	}
	return int(i)
}

func (ip *Interp) evalListComp(n *ast.ListComp, env *value.Env) value.Value {
	iterVal := ip.eval(n.Iter, env)
	items := ip.iterableItems(iterVal, n.Span())
	var out []value.Value
	for _, item := range items {
		scope := env.Child()
		scope.Declare(n.Var, item, false)
		if n.Guard != nil && !value.Truthy(ip.eval(n.Guard, scope)) {
			continue
		}
		out = append(out, ip.eval(n.Expr, scope))
	}
	return value.NewList(out)
}

// iterableItems implements spec.md's `in`-iteration for for/parallel/list
// comprehensions: lists iterate their elements, dicts iterate sorted keys,
// strings iterate UTF-8 runes as single-character strings.
func (ip *Interp) iterableItems(v value.Value, sp token.Span) []value.Value {
	switch v.Tag {
	case value.TagList:
		return v.AsList().Items
	case value.TagDict:
		d := v.AsDict()
		keys := d.SortedKeys()
		out := make([]value.Value, len(keys))
		for i, k := range keys {
			out[i] = value.Str(k)
		}
		return out
	case value.TagString:
		runes := []rune(v.AsString())
		out := make([]value.Value, len(runes))
		for i, r := range runes {
			out[i] = value.Str(string(r))
		}
		return out
	}
	rt(value.NewError(value.TypeError, sp, "value of type %s is not iterable", v.Tag))
	panic("unreachable")
}
