package interp

import (
	"math"
	"strings"

	"github.com/latch-lang/latch/internal/ast"
	"github.com/latch-lang/latch/internal/token"
	"github.com/latch-lang/latch/internal/value"
)

// evalBinary dispatches all binary operators including the ones spec.md
// §4.4 singles out for special evaluation order: `&&`/`||` short-circuit
// and return the deciding operand, `??` short-circuits the right side,
// `or` discards a runtime error from the left subtree, `in` dispatches on
// the right operand's type.
func (ip *Interp) evalBinary(n *ast.Binary, env *value.Env) value.Value {
	switch n.Op {
	case token.AndAnd:
		l := ip.eval(n.Left, env)
		if !value.Truthy(l) {
			return l
		}
		return ip.eval(n.Right, env)
	case token.OrOr:
		l := ip.eval(n.Left, env)
		if value.Truthy(l) {
			return l
		}
		return ip.eval(n.Right, env)
	case token.NullCoal:
		l := ip.eval(n.Left, env)
		if !l.IsNull() {
			return l
		}
		return ip.eval(n.Right, env)
	case token.KwOr:
		return ip.evalOrFallback(n, env)
	case token.KwIn:
		return ip.evalIn(n, env)
	}

	l := ip.eval(n.Left, env)
	r := ip.eval(n.Right, env)
	return ip.applyBinary(n.Op, l, r, n.Span())
}

// evalOrFallback implements error-fallback `or`: evaluate the left side;
// any *value.RuntimeError panic raised anywhere in its subtree is
// discarded and the right side is evaluated instead. break/continue/
// return/stop propagate unchanged (spec.md §4.4).
func (ip *Interp) evalOrFallback(n *ast.Binary, env *value.Env) (result value.Value) {
	ok := func() (success bool) {
		defer func() {
			if r := recover(); r != nil {
				if _, isRt := r.(*value.RuntimeError); isRt {
					success = false
					return
				}
				panic(r)
			}
		}()
		result = ip.eval(n.Left, env)
		return true
	}()
	if ok {
		return result
	}
	return ip.eval(n.Right, env)
}

func (ip *Interp) evalIn(n *ast.Binary, env *value.Env) value.Value {
	l := ip.eval(n.Left, env)
	r := ip.eval(n.Right, env)
	switch r.Tag {
	case value.TagList:
		for _, it := range r.AsList().Items {
			if value.DeepEqual(l, it) {
				return value.Bool(true)
			}
		}
		return value.Bool(false)
	case value.TagDict:
		if l.Tag != value.TagString {
			rt(value.NewError(value.TypeError, n.Span(), "dict membership requires a string key"))
		}
		_, ok := r.AsDict().Entries[l.AsString()]
		return value.Bool(ok)
	case value.TagString:
		if l.Tag != value.TagString {
			rt(value.NewError(value.TypeError, n.Span(), "substring membership requires a string"))
		}
		return value.Bool(strings.Contains(r.AsString(), l.AsString()))
	}
	rt(value.NewError(value.TypeError, n.Span(), "'in' requires a list, dict, or string on the right"))
	panic("unreachable")
}

func (ip *Interp) applyBinary(op token.Kind, l, r value.Value, sp token.Span) value.Value {
	switch op {
	case token.Eq:
		return value.Bool(value.DeepEqual(l, r))
	case token.Neq:
		return value.Bool(!value.DeepEqual(l, r))
	case token.Lt, token.Le, token.Gt, token.Ge:
		return ip.compare(op, l, r, sp)
	case token.Plus:
		return ip.add(l, r, sp)
	case token.Minus, token.Star, token.Slash, token.Percent, token.StarStar:
		return ip.arith(op, l, r, sp)
	}
	rt(value.NewError(value.TypeError, sp, "unsupported binary operator"))
	panic("unreachable")
}

func (ip *Interp) compare(op token.Kind, l, r value.Value, sp token.Span) value.Value {
	var less, equal bool
	switch {
	case l.IsNumeric() && r.IsNumeric():
		a, b := l.AsFloat64(), r.AsFloat64()
		less, equal = a < b, a == b
	case l.Tag == value.TagString && r.Tag == value.TagString:
		a, b := l.AsString(), r.AsString()
		less, equal = a < b, a == b
	default:
		rt(value.NewError(value.TypeError, sp, "cannot compare %s and %s", l.Tag, r.Tag))
	}
	switch op {
	case token.Lt:
		return value.Bool(less)
	case token.Le:
		return value.Bool(less || equal)
	case token.Gt:
		return value.Bool(!less && !equal)
	default: // Ge
		return value.Bool(!less || equal)
	}
}

// add implements spec.md §4.4: string+string concatenates; string+non-string
// coerces the non-string side via str(...) (i.e. value.Format) then
// concatenates; numeric+numeric widens to float if either side is float.
func (ip *Interp) add(l, r value.Value, sp token.Span) value.Value {
	if l.Tag == value.TagString || r.Tag == value.TagString {
		return value.Str(value.Format(l) + value.Format(r))
	}
	if !l.IsNumeric() || !r.IsNumeric() {
		rt(value.NewError(value.TypeError, sp, "'+' requires numbers or strings, got %s and %s", l.Tag, r.Tag))
	}
	if l.Tag == value.TagFloat || r.Tag == value.TagFloat {
		return value.Float(l.AsFloat64() + r.AsFloat64())
	}
	return value.Int(l.AsInt() + r.AsInt())
}

func (ip *Interp) arith(op token.Kind, l, r value.Value, sp token.Span) value.Value {
	if !l.IsNumeric() || !r.IsNumeric() {
		rt(value.NewError(value.TypeError, sp, "'%s' requires numbers, got %s and %s", op, l.Tag, r.Tag))
	}
	bothInt := l.Tag == value.TagInt && r.Tag == value.TagInt
	switch op {
	case token.Minus:
		if bothInt {
			return value.Int(l.AsInt() - r.AsInt())
		}
		return value.Float(l.AsFloat64() - r.AsFloat64())
	case token.Star:
		if bothInt {
			return value.Int(l.AsInt() * r.AsInt())
		}
		return value.Float(l.AsFloat64() * r.AsFloat64())
	case token.Slash:
		if r.AsFloat64() == 0 {
			rt(value.NewError(value.DivisionByZero, sp, "division by zero"))
		}
		if bothInt {
			return value.Int(l.AsInt() / r.AsInt())
		}
		return value.Float(l.AsFloat64() / r.AsFloat64())
	case token.Percent:
		if r.AsFloat64() == 0 {
			rt(value.NewError(value.DivisionByZero, sp, "division by zero"))
		}
		if bothInt {
			return value.Int(l.AsInt() % r.AsInt())
		}
		return value.Float(modFloat(l.AsFloat64(), r.AsFloat64()))
	case token.StarStar:
		return powValue(l, r, bothInt)
	}
	rt(value.NewError(value.TypeError, sp, "unsupported arithmetic operator"))
	panic("unreachable")
}

func modFloat(a, b float64) float64 {
	for a >= b {
		a -= b
	}
	for a < 0 {
		a += b
	}
	return a
}

func powValue(l, r value.Value, bothInt bool) value.Value {
	if bothInt && r.AsInt() >= 0 {
		result := int64(1)
		base := l.AsInt()
		for i := int64(0); i < r.AsInt(); i++ {
			result *= base
		}
		return value.Int(result)
	}
	return value.Float(math.Pow(l.AsFloat64(), r.AsFloat64()))
}

func (ip *Interp) applyCompound(op token.Kind, cur, rhs value.Value, sp token.Span) value.Value {
	switch op {
	case token.PlusEq:
		return ip.add(cur, rhs, sp)
	case token.MinusEq:
		return ip.arith(token.Minus, cur, rhs, sp)
	case token.StarEq:
		return ip.arith(token.Star, cur, rhs, sp)
	case token.SlashEq:
		return ip.arith(token.Slash, cur, rhs, sp)
	case token.PercentEq:
		return ip.arith(token.Percent, cur, rhs, sp)
	}
	rt(value.NewError(value.TypeError, sp, "unsupported compound assignment operator"))
	panic("unreachable")
}

// ---- index/field access ----------------------------------------------------

func (ip *Interp) indexGet(target, idx value.Value, sp token.Span) value.Value {
	switch target.Tag {
	case value.TagList:
		items := target.AsList().Items
		if idx.Tag != value.TagInt {
			rt(value.NewError(value.TypeError, sp, "list index must be an integer"))
		}
		i := idx.AsInt()
		if i < 0 {
			i += int64(len(items))
		}
		if i < 0 || i >= int64(len(items)) {
			rt(value.NewError(value.IndexError, sp, "index %d out of range for list of length %d", idx.AsInt(), len(items)))
		}
		return items[i]
	case value.TagDict:
		if idx.Tag != value.TagString {
			rt(value.NewError(value.TypeError, sp, "dict key must be a string"))
		}
		v, ok := target.AsDict().Entries[idx.AsString()]
		if !ok {
			rt(value.NewError(value.KeyError, sp, "key %q not found", idx.AsString()))
		}
		return v
	case value.TagString:
		runes := []rune(target.AsString())
		if idx.Tag != value.TagInt {
			rt(value.NewError(value.TypeError, sp, "string index must be an integer"))
		}
		i := idx.AsInt()
		if i < 0 {
			i += int64(len(runes))
		}
		if i < 0 || i >= int64(len(runes)) {
			rt(value.NewError(value.IndexError, sp, "index %d out of range for string of length %d", idx.AsInt(), len(runes)))
		}
		return value.Str(string(runes[i]))
	}
	rt(value.NewError(value.TypeError, sp, "value of type %s is not indexable", target.Tag))
	panic("unreachable")
}

func (ip *Interp) indexSet(target, idx, v value.Value, sp token.Span) {
	switch target.Tag {
	case value.TagList:
		l := target.AsList()
		if idx.Tag != value.TagInt {
			rt(value.NewError(value.TypeError, sp, "list index must be an integer"))
		}
		i := idx.AsInt()
		if i < 0 {
			i += int64(len(l.Items))
		}
		if i < 0 || i >= int64(len(l.Items)) {
			rt(value.NewError(value.IndexError, sp, "index %d out of range for list of length %d", idx.AsInt(), len(l.Items)))
		}
		l.Items[i] = v
	case value.TagDict:
		if idx.Tag != value.TagString {
			rt(value.NewError(value.TypeError, sp, "dict key must be a string"))
		}
		target.AsDict().Set(idx.AsString(), v)
	default:
		rt(value.NewError(value.TypeError, sp, "value of type %s does not support index assignment", target.Tag))
	}
}

func (ip *Interp) fieldGet(target value.Value, name string, sp token.Span) value.Value {
	switch target.Tag {
	case value.TagDict:
		v, ok := target.AsDict().Entries[name]
		if !ok {
			rt(value.NewError(value.Undefined, sp, "field %q not found", name))
		}
		return v
	case value.TagInstance:
		inst := target.AsInstance()
		if v, ok := inst.Fields[name]; ok {
			return v
		}
		if m, ok := inst.Class.Methods[name]; ok {
			return ip.boundMethod(inst, m)
		}
		rt(value.NewError(value.Undefined, sp, "%s has no field or method %q", inst.Class.Name, name))
	case value.TagProcess:
		p := target.AsProcess()
		switch name {
		case "stdout":
			return value.Str(p.Stdout)
		case "stderr":
			return value.Str(p.Stderr)
		case "code":
			return value.Int(p.Code)
		}
	case value.TagResponse:
		r := target.AsResponse()
		switch name {
		case "status":
			return value.Int(r.Status)
		case "body":
			return value.Str(r.Body)
		case "headers":
			return value.DictValue(r.Headers)
		}
	}
	rt(value.NewError(value.Undefined, sp, "field %q not found on %s", name, target.Tag))
	panic("unreachable")
}

// fieldGetSafe is `?.`'s field read: missing fields are Null, not an error
// (spec.md §4.4 — the behavior that distinguishes `?.` from `.`).
func (ip *Interp) fieldGetSafe(target value.Value, name string, sp token.Span) (result value.Value) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(*value.RuntimeError); ok {
				result = value.Null
				return
			}
			panic(r)
		}
	}()
	return ip.fieldGet(target, name, sp)
}

func (ip *Interp) fieldSet(target value.Value, name string, v value.Value, sp token.Span) {
	switch target.Tag {
	case value.TagDict:
		target.AsDict().Set(name, v)
	case value.TagInstance:
		target.AsInstance().Fields[name] = v
	default:
		rt(value.NewError(value.TypeError, sp, "value of type %s does not support field assignment", target.Tag))
	}
}
