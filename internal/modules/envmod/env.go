// Package envmod implements Latch's `env` host module: process
// environment access, grounded on the interpreter it evolved from's builtin_sys.go and
// original_source/src/runtime/env.rs (get/set/list). os is stdlib with no
// third-party alternative present anywhere in the example pack.
package envmod

import (
	"os"
	"strings"

	"github.com/latch-lang/latch/internal/token"
	"github.com/latch-lang/latch/internal/value"
)

func Module() map[string]*value.Builtin {
	return map[string]*value.Builtin{
		"get":  {Name: "env.get", Arity: -1, Impl: get},
		"set":  {Name: "env.set", Arity: 2, Impl: set},
		"list": {Name: "env.list", Arity: 0, Impl: list},
	}
}

// get implements env.get(name, default?) -> String|Null.
func get(args []value.Value) (value.Value, *value.RuntimeError) {
	if len(args) < 1 || len(args) > 2 {
		return value.Value{}, value.NewError(value.ArityError, token.Span{}, "env.get expects 1 or 2 arguments")
	}
	if args[0].Tag != value.TagString {
		return value.Value{}, value.NewError(value.TypeError, token.Span{}, "env.get expects a string argument")
	}
	if v, ok := os.LookupEnv(args[0].AsString()); ok {
		return value.Str(v), nil
	}
	if len(args) == 2 {
		return args[1], nil
	}
	return value.Null, nil
}

func set(args []value.Value) (value.Value, *value.RuntimeError) {
	if args[0].Tag != value.TagString || args[1].Tag != value.TagString {
		return value.Value{}, value.NewError(value.TypeError, token.Span{}, "env.set expects two string arguments")
	}
	if err := os.Setenv(args[0].AsString(), args[1].AsString()); err != nil {
		return value.Value{}, value.NewError(value.ValueError, token.Span{}, "env.set: %s", err)
	}
	return value.Bool(true), nil
}

func list(args []value.Value) (value.Value, *value.RuntimeError) {
	d := value.NewDict()
	for _, kv := range os.Environ() {
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) == 2 {
			d.Set(parts[0], value.Str(parts[1]))
		}
	}
	return value.DictValue(d), nil
}
