// Package pathmod implements Latch's `path` host module: pure path-string
// manipulation, grounded on original_source/src/runtime/path.rs
// (join/basename/dirname/ext/abs). path/filepath is stdlib and the only
// path-manipulation library anywhere in the example pack.
package pathmod

import (
	"path/filepath"

	"github.com/latch-lang/latch/internal/token"
	"github.com/latch-lang/latch/internal/value"
)

func Module() map[string]*value.Builtin {
	return map[string]*value.Builtin{
		"join":     {Name: "path.join", Arity: -1, Impl: join},
		"basename": {Name: "path.basename", Arity: 1, Impl: wrap1(filepath.Base)},
		"dirname":  {Name: "path.dirname", Arity: 1, Impl: wrap1(filepath.Dir)},
		"ext":      {Name: "path.ext", Arity: 1, Impl: wrap1(filepath.Ext)},
		"abs":      {Name: "path.abs", Arity: 1, Impl: absPath},
	}
}

func wrap1(f func(string) string) func([]value.Value) (value.Value, *value.RuntimeError) {
	return func(args []value.Value) (value.Value, *value.RuntimeError) {
		if args[0].Tag != value.TagString {
			return value.Value{}, value.NewError(value.TypeError, token.Span{}, "expects a string argument")
		}
		return value.Str(f(args[0].AsString())), nil
	}
}

func join(args []value.Value) (value.Value, *value.RuntimeError) {
	parts := make([]string, len(args))
	for i, a := range args {
		if a.Tag != value.TagString {
			return value.Value{}, value.NewError(value.TypeError, token.Span{}, "path.join expects string arguments")
		}
		parts[i] = a.AsString()
	}
	return value.Str(filepath.Join(parts...)), nil
}

func absPath(args []value.Value) (value.Value, *value.RuntimeError) {
	if args[0].Tag != value.TagString {
		return value.Value{}, value.NewError(value.TypeError, token.Span{}, "path.abs expects a string argument")
	}
	abs, err := filepath.Abs(args[0].AsString())
	if err != nil {
		return value.Value{}, value.NewError(value.FileError, token.Span{}, "path.abs: %s", err)
	}
	return value.Str(abs), nil
}
