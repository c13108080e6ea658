// Package jsonmod implements Latch's `json` host module (spec.md §6 JSON
// round-trip contract: null<->Null, numbers <-> Int|Float where integers
// that fit become Int, stringify pretty-prints with 2-space indent and
// sorted dict keys).
//
// Grounded on the interpreter it evolved from's json.go (a hand-written parser) — we keep its
// *shape* (Int-fits detection, sorted-key stringify) but back decoding with
// encoding/json's json.Number so integral floats like 3.0 still round-trip
// as Float, only underlying-integer literals become Int; see DESIGN.md.
package jsonmod

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/latch-lang/latch/internal/token"
	"github.com/latch-lang/latch/internal/value"
)

func Module() map[string]*value.Builtin {
	return map[string]*value.Builtin{
		"parse":     {Name: "json.parse", Arity: 1, Impl: parseJSON},
		"stringify": {Name: "json.stringify", Arity: -1, Impl: stringify},
	}
}

func parseJSON(args []value.Value) (value.Value, *value.RuntimeError) {
	if args[0].Tag != value.TagString {
		return value.Value{}, value.NewError(value.TypeError, token.Span{}, "json.parse expects a string argument")
	}
	dec := json.NewDecoder(strings.NewReader(args[0].AsString()))
	dec.UseNumber()
	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		return value.Value{}, value.NewError(value.ParseError, token.Span{}, "json.parse: %s", err)
	}
	return fromGo(raw), nil
}

func fromGo(raw interface{}) value.Value {
	switch v := raw.(type) {
	case nil:
		return value.Null
	case bool:
		return value.Bool(v)
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return value.Int(i)
		}
		f, _ := v.Float64()
		return value.Float(f)
	case string:
		return value.Str(v)
	case []interface{}:
		items := make([]value.Value, len(v))
		for i, it := range v {
			items[i] = fromGo(it)
		}
		return value.NewList(items)
	case map[string]interface{}:
		d := value.NewDict()
		for _, k := range sortedMapKeys(v) {
			d.Set(k, fromGo(v[k]))
		}
		return value.DictValue(d)
	default:
		return value.Null
	}
}

func sortedMapKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j-1] > keys[j]; j-- {
			keys[j-1], keys[j] = keys[j], keys[j-1]
		}
	}
	return keys
}

// stringify implements json.stringify(value, pretty?); pretty defaults to
// true (spec.md's examples show pretty JSON output by default).
func stringify(args []value.Value) (value.Value, *value.RuntimeError) {
	if len(args) < 1 || len(args) > 2 {
		return value.Value{}, value.NewError(value.ArityError, token.Span{}, "json.stringify expects 1 or 2 arguments")
	}
	pretty := true
	if len(args) == 2 {
		pretty = value.Truthy(args[1])
	}
	goVal := toGo(args[0])
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(goVal); err != nil {
		return value.Value{}, value.NewError(value.ValueError, token.Span{}, "json.stringify: %s", err)
	}
	return value.Str(strings.TrimRight(buf.String(), "\n")), nil
}

// toGo converts a Value into nested map[string]interface{}/[]interface{}
// wired through encoding/json so keys come out sorted ascending (spec.md:
// "dict keys sorted ascending") and integers lose no precision.
func toGo(v value.Value) interface{} {
	switch v.Tag {
	case value.TagNull:
		return nil
	case value.TagBool:
		return v.AsBool()
	case value.TagInt:
		return v.AsInt()
	case value.TagFloat:
		return v.AsFloat()
	case value.TagString:
		return v.AsString()
	case value.TagList:
		items := v.AsList().Items
		out := make([]interface{}, len(items))
		for i, it := range items {
			out[i] = toGo(it)
		}
		return out
	case value.TagDict:
		d := v.AsDict()
		out := make(map[string]interface{}, len(d.Entries))
		for k, vv := range d.Entries {
			out[k] = toGo(vv)
		}
		return out
	default:
		return v.Tag.String()
	}
}
