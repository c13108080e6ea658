package interp

import (
	"bufio"
	"fmt"
	"sort"
	"strconv"
	"sync"

	"github.com/latch-lang/latch/internal/token"
	"github.com/latch-lang/latch/internal/value"
)

var printMu sync.Mutex

// registerCoreBuiltins wires the free-standing functions spec.md's language
// core exposes independent of any `use` (§4.4/§6), plus the closures that
// need to call back into the evaluator (filter/map/reduce/sort take Fn
// values as arguments).
//
// Grounded on the interpreter it evolved from's RegisterNative convention (builtin_core.go):
// every core function is a plain entry in a name→Builtin table rather than
// AST-level special forms.
func registerCoreBuiltins(ip *Interp) {
	reg := func(name string, arity int, impl func(args []value.Value) (value.Value, *value.RuntimeError)) {
		ip.Globals.Declare(name, value.BuiltinValue(&value.Builtin{Name: name, Arity: arity, Impl: impl}), false)
	}

	reg("print", -1, func(args []value.Value) (value.Value, *value.RuntimeError) {
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = value.Format(a)
		}
		printMu.Lock()
		defer printMu.Unlock()
		for i, p := range parts {
			if i > 0 {
				fmt.Fprint(ip.Stdout, " ")
			}
			fmt.Fprint(ip.Stdout, p)
		}
		fmt.Fprintln(ip.Stdout)
		return value.Null, nil
	})

	reg("str", 1, func(args []value.Value) (value.Value, *value.RuntimeError) {
		return value.Str(value.Format(args[0])), nil
	})

	reg("len", 1, func(args []value.Value) (value.Value, *value.RuntimeError) {
		switch args[0].Tag {
		case value.TagList:
			return value.Int(int64(len(args[0].AsList().Items))), nil
		case value.TagDict:
			return value.Int(int64(len(args[0].AsDict().Entries))), nil
		case value.TagString:
			return value.Int(int64(len([]rune(args[0].AsString())))), nil
		}
		return value.Value{}, value.NewError(value.TypeError, token.Span{}, "len() requires a list, dict, or string, got %s", args[0].Tag)
	})

	reg("type", 1, func(args []value.Value) (value.Value, *value.RuntimeError) {
		return value.Str(args[0].Tag.String()), nil
	})

	reg("assert", -1, func(args []value.Value) (value.Value, *value.RuntimeError) {
		if len(args) < 1 || len(args) > 2 {
			return value.Value{}, value.NewError(value.ArityError, token.Span{}, "assert expects 1 or 2 arguments")
		}
		if value.Truthy(args[0]) {
			return value.Null, nil
		}
		msg := "assertion failed"
		if len(args) == 2 {
			msg = value.Format(args[1])
		}
		return value.Value{}, value.NewError(value.AssertionError, token.Span{}, "%s", msg)
	})

	reg("range", -1, func(args []value.Value) (value.Value, *value.RuntimeError) {
		var lo, hi int64
		switch len(args) {
		case 1:
			hi = args[0].AsInt()
		case 2:
			lo, hi = args[0].AsInt(), args[1].AsInt()
		default:
			return value.Value{}, value.NewError(value.ArityError, token.Span{}, "range expects 1 or 2 arguments")
		}
		if lo >= hi {
			return value.NewList(nil), nil
		}
		items := make([]value.Value, 0, hi-lo)
		for i := lo; i < hi; i++ {
			items = append(items, value.Int(i))
		}
		return value.NewList(items), nil
	})

	reg("filter", 2, func(args []value.Value) (value.Value, *value.RuntimeError) {
		items, err := requireList(args[0])
		if err != nil {
			return value.Value{}, err
		}
		var out []value.Value
		for _, it := range items {
			if value.Truthy(ip.CallValue(args[1], []value.Value{it}, token.Span{})) {
				out = append(out, it)
			}
		}
		return value.NewList(out), nil
	})

	reg("map", 2, func(args []value.Value) (value.Value, *value.RuntimeError) {
		items, err := requireList(args[0])
		if err != nil {
			return value.Value{}, err
		}
		out := make([]value.Value, len(items))
		for i, it := range items {
			out[i] = ip.CallValue(args[1], []value.Value{it}, token.Span{})
		}
		return value.NewList(out), nil
	})

	reg("reduce", 3, func(args []value.Value) (value.Value, *value.RuntimeError) {
		items, err := requireList(args[0])
		if err != nil {
			return value.Value{}, err
		}
		acc := args[2]
		for _, it := range items {
			acc = ip.CallValue(args[1], []value.Value{acc, it}, token.Span{})
		}
		return acc, nil
	})

	reg("sort", -1, func(args []value.Value) (value.Value, *value.RuntimeError) {
		if len(args) < 1 || len(args) > 2 {
			return value.Value{}, value.NewError(value.ArityError, token.Span{}, "sort expects 1 or 2 arguments")
		}
		items, err := requireList(args[0])
		if err != nil {
			return value.Value{}, err
		}
		out := append([]value.Value(nil), items...)
		if len(args) == 2 {
			sort.SliceStable(out, func(i, j int) bool {
				return value.Truthy(ip.CallValue(args[1], []value.Value{out[i], out[j]}, token.Span{}))
			})
		} else {
			sort.SliceStable(out, func(i, j int) bool { return defaultLess(out[i], out[j]) })
		}
		return value.NewList(out), nil
	})

	reg("keys", 1, func(args []value.Value) (value.Value, *value.RuntimeError) {
		d, err := requireDict(args[0])
		if err != nil {
			return value.Value{}, err
		}
		ks := d.SortedKeys()
		out := make([]value.Value, len(ks))
		for i, k := range ks {
			out[i] = value.Str(k)
		}
		return value.NewList(out), nil
	})

	reg("values", 1, func(args []value.Value) (value.Value, *value.RuntimeError) {
		d, err := requireDict(args[0])
		if err != nil {
			return value.Value{}, err
		}
		ks := d.SortedKeys()
		out := make([]value.Value, len(ks))
		for i, k := range ks {
			out[i] = d.Entries[k]
		}
		return value.NewList(out), nil
	})

	reg("items", 1, func(args []value.Value) (value.Value, *value.RuntimeError) {
		d, err := requireDict(args[0])
		if err != nil {
			return value.Value{}, err
		}
		ks := d.SortedKeys()
		out := make([]value.Value, len(ks))
		for i, k := range ks {
			out[i] = value.NewList([]value.Value{value.Str(k), d.Entries[k]})
		}
		return value.NewList(out), nil
	})

	reg("get", -1, func(args []value.Value) (value.Value, *value.RuntimeError) {
		if len(args) < 2 || len(args) > 3 {
			return value.Value{}, value.NewError(value.ArityError, token.Span{}, "get expects 2 or 3 arguments")
		}
		fallback := value.Null
		if len(args) == 3 {
			fallback = args[2]
		}
		d, err := requireDict(args[0])
		if err != nil {
			return value.Value{}, err
		}
		key, err := requireString(args[1])
		if err != nil {
			return value.Value{}, err
		}
		if v, ok := d.Entries[key]; ok {
			return v, nil
		}
		return fallback, nil
	})

	stdinReader := bufio.NewReader(ip.Stdin)
	reg("input", -1, func(args []value.Value) (value.Value, *value.RuntimeError) {
		if len(args) > 1 {
			return value.Value{}, value.NewError(value.ArityError, token.Span{}, "input expects at most 1 argument")
		}
		if len(args) == 1 {
			fmt.Fprint(ip.Stdout, value.Format(args[0]))
		}
		line, _ := stdinReader.ReadString('\n')
		return value.Str(trimNewline(line)), nil
	})

	reg("int", 1, func(args []value.Value) (value.Value, *value.RuntimeError) {
		switch args[0].Tag {
		case value.TagInt:
			return args[0], nil
		case value.TagFloat:
			return value.Int(int64(args[0].AsFloat())), nil
		case value.TagString:
			n, e := strconv.ParseInt(args[0].AsString(), 10, 64)
			if e != nil {
				return value.Value{}, value.NewError(value.ValueError, token.Span{}, "cannot convert %q to int", args[0].AsString())
			}
			return value.Int(n), nil
		case value.TagBool:
			if args[0].AsBool() {
				return value.Int(1), nil
			}
			return value.Int(0), nil
		}
		return value.Value{}, value.NewError(value.TypeError, token.Span{}, "cannot convert %s to int", args[0].Tag)
	})

	reg("float", 1, func(args []value.Value) (value.Value, *value.RuntimeError) {
		switch args[0].Tag {
		case value.TagFloat:
			return args[0], nil
		case value.TagInt:
			return value.Float(float64(args[0].AsInt())), nil
		case value.TagString:
			f, e := strconv.ParseFloat(args[0].AsString(), 64)
			if e != nil {
				return value.Value{}, value.NewError(value.ValueError, token.Span{}, "cannot convert %q to float", args[0].AsString())
			}
			return value.Float(f), nil
		}
		return value.Value{}, value.NewError(value.TypeError, token.Span{}, "cannot convert %s to float", args[0].Tag)
	})

	reg("bool", 1, func(args []value.Value) (value.Value, *value.RuntimeError) {
		return value.Bool(value.Truthy(args[0])), nil
	})

	reg("abs", 1, func(args []value.Value) (value.Value, *value.RuntimeError) {
		if args[0].Tag == value.TagInt {
			n := args[0].AsInt()
			if n < 0 {
				n = -n
			}
			return value.Int(n), nil
		}
		if args[0].Tag == value.TagFloat {
			f := args[0].AsFloat()
			if f < 0 {
				f = -f
			}
			return value.Float(f), nil
		}
		return value.Value{}, value.NewError(value.TypeError, token.Span{}, "abs() requires a number")
	})

	reg("min", -1, func(args []value.Value) (value.Value, *value.RuntimeError) { return minMax(args, true) })
	reg("max", -1, func(args []value.Value) (value.Value, *value.RuntimeError) { return minMax(args, false) })
}

func requireList(v value.Value) ([]value.Value, *value.RuntimeError) {
	if v.Tag != value.TagList {
		return nil, value.NewError(value.TypeError, token.Span{}, "expected a list, got %s", v.Tag)
	}
	return v.AsList().Items, nil
}

func requireDict(v value.Value) (*value.Dict, *value.RuntimeError) {
	if v.Tag != value.TagDict {
		return nil, value.NewError(value.TypeError, token.Span{}, "expected a dict, got %s", v.Tag)
	}
	return v.AsDict(), nil
}

func requireString(v value.Value) (string, *value.RuntimeError) {
	if v.Tag != value.TagString {
		return "", value.NewError(value.TypeError, token.Span{}, "expected a string, got %s", v.Tag)
	}
	return v.AsString(), nil
}

func defaultLess(a, b value.Value) bool {
	if a.IsNumeric() && b.IsNumeric() {
		return a.AsFloat64() < b.AsFloat64()
	}
	if a.Tag == value.TagString && b.Tag == value.TagString {
		return a.AsString() < b.AsString()
	}
	return false
}

func minMax(args []value.Value, wantMin bool) (value.Value, *value.RuntimeError) {
	items := args
	if len(args) == 1 && args[0].Tag == value.TagList {
		items = args[0].AsList().Items
	}
	if len(items) == 0 {
		return value.Value{}, value.NewError(value.ValueError, token.Span{}, "min/max requires at least one value")
	}
	best := items[0]
	for _, it := range items[1:] {
		if (wantMin && defaultLess(it, best)) || (!wantMin && defaultLess(best, it)) {
			best = it
		}
	}
	return best, nil
}

func trimNewline(s string) string {
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r') {
		s = s[:len(s)-1]
	}
	return s
}
