// Package setmod implements Latch's `set` host module as a thin wrapper
// over value.Dict, using the value side as a Bool(true) placeholder. Fully
// supplemented from original_source/src/runtime/set.rs — spec.md's
// distillation drops the `set` module's exact surface entirely.
package setmod

import (
	"github.com/latch-lang/latch/internal/token"
	"github.com/latch-lang/latch/internal/value"
)

func Module() map[string]*value.Builtin {
	return map[string]*value.Builtin{
		"new":          {Name: "set.new", Arity: -1, Impl: newSet},
		"add":          {Name: "set.add", Arity: 2, Impl: add},
		"remove":       {Name: "set.remove", Arity: 2, Impl: remove},
		"has":          {Name: "set.has", Arity: 2, Impl: has},
		"union":        {Name: "set.union", Arity: 2, Impl: union},
		"intersection": {Name: "set.intersection", Arity: 2, Impl: intersection},
		"difference":   {Name: "set.difference", Arity: 2, Impl: difference},
		"to_list":      {Name: "set.to_list", Arity: 1, Impl: toList},
	}
}

// Sets are represented at the language level as a Dict whose values are
// always Bool(true); the original element is recovered by re-deriving it
// from the string key for String/Int/Float/Bool elements (the only keys
// set.rs itself supports), so no side-channel is needed at the value.Dict
// level.
func newSet(args []value.Value) (value.Value, *value.RuntimeError) {
	d := value.NewDict()
	if len(args) == 1 {
		if args[0].Tag != value.TagList {
			return value.Value{}, value.NewError(value.TypeError, token.Span{}, "set.new expects a list")
		}
		for _, it := range args[0].AsList().Items {
			k, err := keyOf(it)
			if err != nil {
				return value.Value{}, err
			}
			d.Set(k, value.Bool(true))
		}
	} else if len(args) != 0 {
		return value.Value{}, value.NewError(value.ArityError, token.Span{}, "set.new expects 0 or 1 arguments")
	}
	return value.DictValue(d), nil
}

func keyOf(v value.Value) (string, *value.RuntimeError) {
	switch v.Tag {
	case value.TagString:
		return "s:" + v.AsString(), nil
	case value.TagInt:
		return "i:" + value.Repr(v), nil
	case value.TagFloat:
		return "f:" + value.Repr(v), nil
	case value.TagBool:
		return "b:" + value.Repr(v), nil
	}
	return "", value.NewError(value.TypeError, token.Span{}, "set elements must be string, int, float, or bool")
}

func requireSet(v value.Value) (*value.Dict, *value.RuntimeError) {
	if v.Tag != value.TagDict {
		return nil, value.NewError(value.TypeError, token.Span{}, "expected a set")
	}
	return v.AsDict(), nil
}

func add(args []value.Value) (value.Value, *value.RuntimeError) {
	d, err := requireSet(args[0])
	if err != nil {
		return value.Value{}, err
	}
	k, err := keyOf(args[1])
	if err != nil {
		return value.Value{}, err
	}
	d.Set(k, value.Bool(true))
	return args[0], nil
}

func remove(args []value.Value) (value.Value, *value.RuntimeError) {
	d, err := requireSet(args[0])
	if err != nil {
		return value.Value{}, err
	}
	k, err := keyOf(args[1])
	if err != nil {
		return value.Value{}, err
	}
	d.Delete(k)
	return args[0], nil
}

func has(args []value.Value) (value.Value, *value.RuntimeError) {
	d, err := requireSet(args[0])
	if err != nil {
		return value.Value{}, err
	}
	k, err := keyOf(args[1])
	if err != nil {
		return value.Value{}, err
	}
	_, ok := d.Entries[k]
	return value.Bool(ok), nil
}

func union(args []value.Value) (value.Value, *value.RuntimeError) {
	a, err := requireSet(args[0])
	if err != nil {
		return value.Value{}, err
	}
	b, err := requireSet(args[1])
	if err != nil {
		return value.Value{}, err
	}
	out := value.NewDict()
	for _, k := range a.Keys {
		out.Set(k, value.Bool(true))
	}
	for _, k := range b.Keys {
		out.Set(k, value.Bool(true))
	}
	return value.DictValue(out), nil
}

func intersection(args []value.Value) (value.Value, *value.RuntimeError) {
	a, err := requireSet(args[0])
	if err != nil {
		return value.Value{}, err
	}
	b, err := requireSet(args[1])
	if err != nil {
		return value.Value{}, err
	}
	out := value.NewDict()
	for _, k := range a.Keys {
		if _, ok := b.Entries[k]; ok {
			out.Set(k, value.Bool(true))
		}
	}
	return value.DictValue(out), nil
}

func difference(args []value.Value) (value.Value, *value.RuntimeError) {
	a, err := requireSet(args[0])
	if err != nil {
		return value.Value{}, err
	}
	b, err := requireSet(args[1])
	if err != nil {
		return value.Value{}, err
	}
	out := value.NewDict()
	for _, k := range a.Keys {
		if _, ok := b.Entries[k]; !ok {
			out.Set(k, value.Bool(true))
		}
	}
	return value.DictValue(out), nil
}

func toList(args []value.Value) (value.Value, *value.RuntimeError) {
	d, err := requireSet(args[0])
	if err != nil {
		return value.Value{}, err
	}
	out := make([]value.Value, 0, len(d.Keys))
	for _, k := range d.SortedKeys() {
		v, decErr := elementFromKey(k)
		if decErr != nil {
			return value.Value{}, decErr
		}
		out = append(out, v)
	}
	return value.NewList(out), nil
}

func elementFromKey(k string) (value.Value, *value.RuntimeError) {
	if len(k) < 2 {
		return value.Value{}, value.NewError(value.ValueError, token.Span{}, "corrupt set key %q", k)
	}
	payload := k[2:]
	switch k[0] {
	case 's':
		return value.Str(payload), nil
	case 'i':
		return parseReprInt(payload)
	case 'f':
		return parseReprFloat(payload)
	case 'b':
		return value.Bool(payload == "true"), nil
	}
	return value.Value{}, value.NewError(value.ValueError, token.Span{}, "corrupt set key %q", k)
}
