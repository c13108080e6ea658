// Package regexmod implements Latch's `regex` host module, grounded on
// rubiojr-rugo's modules/re and original_source/src/runtime/regex.rs
// (match/search/findall/split/replace). regexp is stdlib with no
// third-party regex engine present anywhere in the example pack.
package regexmod

import (
	"regexp"

	"github.com/latch-lang/latch/internal/token"
	"github.com/latch-lang/latch/internal/value"
)

func Module() map[string]*value.Builtin {
	return map[string]*value.Builtin{
		"match":   {Name: "regex.match", Arity: 2, Impl: matchFn},
		"search":  {Name: "regex.search", Arity: 2, Impl: search},
		"findall": {Name: "regex.findall", Arity: 2, Impl: findall},
		"split":   {Name: "regex.split", Arity: 2, Impl: split},
		"replace": {Name: "regex.replace", Arity: 3, Impl: replace},
	}
}

func compile(args []value.Value, i int) (*regexp.Regexp, *value.RuntimeError) {
	if args[i].Tag != value.TagString {
		return nil, value.NewError(value.TypeError, token.Span{}, "regex pattern must be a string")
	}
	re, err := regexp.Compile(args[i].AsString())
	if err != nil {
		return nil, value.NewError(value.ValueError, token.Span{}, "invalid regex %q: %s", args[i].AsString(), err)
	}
	return re, nil
}

func requireString(v value.Value, what string) (string, *value.RuntimeError) {
	if v.Tag != value.TagString {
		return "", value.NewError(value.TypeError, token.Span{}, "%s must be a string", what)
	}
	return v.AsString(), nil
}

// matchFn implements regex.match(pattern, text) -> Bool: whole-string match.
func matchFn(args []value.Value) (value.Value, *value.RuntimeError) {
	re, err := compile(args, 0)
	if err != nil {
		return value.Value{}, err
	}
	text, err := requireString(args[1], "regex.match's text argument")
	if err != nil {
		return value.Value{}, err
	}
	loc := re.FindStringIndex(text)
	return value.Bool(loc != nil && loc[0] == 0 && loc[1] == len(text)), nil
}

// search implements regex.search(pattern, text) -> String|Null: first match.
func search(args []value.Value) (value.Value, *value.RuntimeError) {
	re, err := compile(args, 0)
	if err != nil {
		return value.Value{}, err
	}
	text, err := requireString(args[1], "regex.search's text argument")
	if err != nil {
		return value.Value{}, err
	}
	m := re.FindString(text)
	if m == "" && !re.MatchString(text) {
		return value.Null, nil
	}
	return value.Str(m), nil
}

// findall implements regex.findall(pattern, text) -> List<String>.
func findall(args []value.Value) (value.Value, *value.RuntimeError) {
	re, err := compile(args, 0)
	if err != nil {
		return value.Value{}, err
	}
	text, err := requireString(args[1], "regex.findall's text argument")
	if err != nil {
		return value.Value{}, err
	}
	matches := re.FindAllString(text, -1)
	out := make([]value.Value, len(matches))
	for i, m := range matches {
		out[i] = value.Str(m)
	}
	return value.NewList(out), nil
}

// split implements regex.split(pattern, text) -> List<String>.
func split(args []value.Value) (value.Value, *value.RuntimeError) {
	re, err := compile(args, 0)
	if err != nil {
		return value.Value{}, err
	}
	text, err := requireString(args[1], "regex.split's text argument")
	if err != nil {
		return value.Value{}, err
	}
	parts := re.Split(text, -1)
	out := make([]value.Value, len(parts))
	for i, p := range parts {
		out[i] = value.Str(p)
	}
	return value.NewList(out), nil
}

// replace implements regex.replace(pattern, text, replacement) -> String.
func replace(args []value.Value) (value.Value, *value.RuntimeError) {
	re, err := compile(args, 0)
	if err != nil {
		return value.Value{}, err
	}
	text, err := requireString(args[1], "regex.replace's text argument")
	if err != nil {
		return value.Value{}, err
	}
	repl, err := requireString(args[2], "regex.replace's replacement argument")
	if err != nil {
		return value.Value{}, err
	}
	return value.Str(re.ReplaceAllString(text, repl)), nil
}
