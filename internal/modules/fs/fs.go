// Package fs implements Latch's `fs` host module: local filesystem access.
//
// Grounded on the interpreter it evolved from's builtin_file.go (a RegisterNative-per-operation
// table wrapping os/io) and original_source/src/runtime/fs.rs for the exact
// operation set (read/write/exists/glob/append/readlines/mkdir/remove/stat).
// No example repo carries a third-party filesystem abstraction; os/io/bufio
// are the idiomatic, and only, fit.
package fs

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/latch-lang/latch/internal/token"
	"github.com/latch-lang/latch/internal/value"
)

func Module() map[string]*value.Builtin {
	return map[string]*value.Builtin{
		"read":      {Name: "fs.read", Arity: 1, Impl: read},
		"write":     {Name: "fs.write", Arity: 2, Impl: write},
		"append":    {Name: "fs.append", Arity: 2, Impl: appendFile},
		"exists":    {Name: "fs.exists", Arity: 1, Impl: exists},
		"glob":      {Name: "fs.glob", Arity: 1, Impl: glob},
		"readlines": {Name: "fs.readlines", Arity: 1, Impl: readlines},
		"mkdir":     {Name: "fs.mkdir", Arity: 1, Impl: mkdir},
		"remove":    {Name: "fs.remove", Arity: 1, Impl: remove},
		"stat":      {Name: "fs.stat", Arity: 1, Impl: stat},
	}
}

func argString(args []value.Value, i int, op string) (string, *value.RuntimeError) {
	if args[i].Tag != value.TagString {
		return "", value.NewError(value.TypeError, token.Span{}, "%s expects a string argument", op)
	}
	return args[i].AsString(), nil
}

func read(args []value.Value) (value.Value, *value.RuntimeError) {
	path, err := argString(args, 0, "fs.read")
	if err != nil {
		return value.Value{}, err
	}
	data, ferr := os.ReadFile(path)
	if ferr != nil {
		return value.Value{}, value.NewError(value.FileError, token.Span{}, "fs.read(%q): %s", path, ferr)
	}
	return value.Str(string(data)), nil
}

func write(args []value.Value) (value.Value, *value.RuntimeError) {
	path, err := argString(args, 0, "fs.write")
	if err != nil {
		return value.Value{}, err
	}
	content, err := argString(args, 1, "fs.write")
	if err != nil {
		return value.Value{}, err
	}
	if ferr := os.WriteFile(path, []byte(content), 0o644); ferr != nil {
		return value.Value{}, value.NewError(value.FileError, token.Span{}, "fs.write(%q): %s", path, ferr)
	}
	return value.Bool(true), nil
}

func appendFile(args []value.Value) (value.Value, *value.RuntimeError) {
	path, err := argString(args, 0, "fs.append")
	if err != nil {
		return value.Value{}, err
	}
	content, err := argString(args, 1, "fs.append")
	if err != nil {
		return value.Value{}, err
	}
	f, ferr := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if ferr != nil {
		return value.Value{}, value.NewError(value.FileError, token.Span{}, "fs.append(%q): %s", path, ferr)
	}
	defer f.Close()
	if _, ferr := f.WriteString(content); ferr != nil {
		return value.Value{}, value.NewError(value.FileError, token.Span{}, "fs.append(%q): %s", path, ferr)
	}
	return value.Bool(true), nil
}

func exists(args []value.Value) (value.Value, *value.RuntimeError) {
	path, err := argString(args, 0, "fs.exists")
	if err != nil {
		return value.Value{}, err
	}
	_, ferr := os.Stat(path)
	return value.Bool(ferr == nil), nil
}

func glob(args []value.Value) (value.Value, *value.RuntimeError) {
	pattern, err := argString(args, 0, "fs.glob")
	if err != nil {
		return value.Value{}, err
	}
	matches, ferr := filepath.Glob(pattern)
	if ferr != nil {
		return value.Value{}, value.NewError(value.FileError, token.Span{}, "fs.glob(%q): %s", pattern, ferr)
	}
	items := make([]value.Value, len(matches))
	for i, m := range matches {
		items[i] = value.Str(m)
	}
	return value.NewList(items), nil
}

func readlines(args []value.Value) (value.Value, *value.RuntimeError) {
	path, err := argString(args, 0, "fs.readlines")
	if err != nil {
		return value.Value{}, err
	}
	f, ferr := os.Open(path)
	if ferr != nil {
		return value.Value{}, value.NewError(value.FileError, token.Span{}, "fs.readlines(%q): %s", path, ferr)
	}
	defer f.Close()
	var lines []value.Value
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		lines = append(lines, value.Str(sc.Text()))
	}
	return value.NewList(lines), nil
}

func mkdir(args []value.Value) (value.Value, *value.RuntimeError) {
	path, err := argString(args, 0, "fs.mkdir")
	if err != nil {
		return value.Value{}, err
	}
	if ferr := os.MkdirAll(path, 0o755); ferr != nil {
		return value.Value{}, value.NewError(value.FileError, token.Span{}, "fs.mkdir(%q): %s", path, ferr)
	}
	return value.Bool(true), nil
}

func remove(args []value.Value) (value.Value, *value.RuntimeError) {
	path, err := argString(args, 0, "fs.remove")
	if err != nil {
		return value.Value{}, err
	}
	if ferr := os.RemoveAll(path); ferr != nil {
		return value.Value{}, value.NewError(value.FileError, token.Span{}, "fs.remove(%q): %s", path, ferr)
	}
	return value.Bool(true), nil
}

func stat(args []value.Value) (value.Value, *value.RuntimeError) {
	path, err := argString(args, 0, "fs.stat")
	if err != nil {
		return value.Value{}, err
	}
	info, ferr := os.Stat(path)
	if ferr != nil {
		return value.Value{}, value.NewError(value.FileError, token.Span{}, "fs.stat(%q): %s", path, ferr)
	}
	d := value.NewDict()
	d.Set("size", value.Int(info.Size()))
	d.Set("is_dir", value.Bool(info.IsDir()))
	d.Set("mode", value.Str(info.Mode().String()))
	d.Set("name", value.Str(strings.TrimSuffix(filepath.Base(path), "/")))
	d.Set("modified", value.Str(info.ModTime().UTC().Format("2006-01-02T15:04:05Z")))
	return value.DictValue(d), nil
}
