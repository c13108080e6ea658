// Package base64mod implements Latch's `base64` host module, grounded on
// rubiojr-rugo's modules/base64. encoding/base64 is stdlib with no
// third-party alternative present anywhere in the example pack.
package base64mod

import (
	"encoding/base64"

	"github.com/latch-lang/latch/internal/token"
	"github.com/latch-lang/latch/internal/value"
)

func Module() map[string]*value.Builtin {
	return map[string]*value.Builtin{
		"encode": {Name: "base64.encode", Arity: 1, Impl: encode},
		"decode": {Name: "base64.decode", Arity: 1, Impl: decode},
	}
}

func encode(args []value.Value) (value.Value, *value.RuntimeError) {
	if args[0].Tag != value.TagString {
		return value.Value{}, value.NewError(value.TypeError, token.Span{}, "base64.encode expects a string argument")
	}
	return value.Str(base64.StdEncoding.EncodeToString([]byte(args[0].AsString()))), nil
}

func decode(args []value.Value) (value.Value, *value.RuntimeError) {
	if args[0].Tag != value.TagString {
		return value.Value{}, value.NewError(value.TypeError, token.Span{}, "base64.decode expects a string argument")
	}
	data, err := base64.StdEncoding.DecodeString(args[0].AsString())
	if err != nil {
		return value.Value{}, value.NewError(value.ValueError, token.Span{}, "base64.decode: %s", err)
	}
	return value.Str(string(data)), nil
}
