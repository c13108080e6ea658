// Package proc implements Latch's `proc` host module: subprocess execution.
//
// Grounded on the interpreter it evolved from's process-handling builtins (builtin_exec_test.go,
// builtin_sys.go) and original_source/src/runtime/proc.rs, which is explicit
// that a list argument bypasses the shell and a string argument goes
// through `sh -c` (spec.md §4.5). os/exec is stdlib with no third-party
// alternative present anywhere in the example pack.
package proc

import (
	"bytes"
	"os/exec"

	"github.com/latch-lang/latch/internal/token"
	"github.com/latch-lang/latch/internal/value"
)

func Module() map[string]*value.Builtin {
	return map[string]*value.Builtin{
		"exec": {Name: "proc.exec", Arity: -1, Impl: execCmd},
	}
}

// execCmd implements proc.exec(cmd, input?, opts?): cmd is either a string
// (run through `sh -c`) or a list of argv (run directly, no shell). opts,
// if given, is a dict with optional "cwd" and "env" (dict of string→string)
// keys — supplemented from original_source/src/runtime/proc.rs, which
// takes a third options argument the distilled spec.md omits.
func execCmd(args []value.Value) (value.Value, *value.RuntimeError) {
	if len(args) < 1 || len(args) > 3 {
		return value.Value{}, value.NewError(value.ArityError, token.Span{}, "proc.exec expects 1 to 3 arguments")
	}

	var cmd *exec.Cmd
	switch args[0].Tag {
	case value.TagString:
		cmd = exec.Command("sh", "-c", args[0].AsString())
	case value.TagList:
		items := args[0].AsList().Items
		if len(items) == 0 {
			return value.Value{}, value.NewError(value.ValueError, token.Span{}, "proc.exec([]) requires at least one argument naming the program")
		}
		argv := make([]string, len(items))
		for i, it := range items {
			if it.Tag != value.TagString {
				return value.Value{}, value.NewError(value.TypeError, token.Span{}, "proc.exec(list) requires a list of strings")
			}
			argv[i] = it.AsString()
		}
		cmd = exec.Command(argv[0], argv[1:]...)
	default:
		return value.Value{}, value.NewError(value.TypeError, token.Span{}, "proc.exec expects a string or a list")
	}

	if len(args) >= 2 && args[1].Tag == value.TagString {
		cmd.Stdin = bytes.NewReader([]byte(args[1].AsString()))
	}
	if len(args) == 3 {
		if args[2].Tag != value.TagDict {
			return value.Value{}, value.NewError(value.TypeError, token.Span{}, "proc.exec's third argument must be a dict")
		}
		opts := args[2].AsDict()
		if cwd, ok := opts.Entries["cwd"]; ok {
			if cwd.Tag != value.TagString {
				return value.Value{}, value.NewError(value.TypeError, token.Span{}, "proc.exec opts.cwd must be a string")
			}
			cmd.Dir = cwd.AsString()
		}
		if envVal, ok := opts.Entries["env"]; ok {
			if envVal.Tag != value.TagDict {
				return value.Value{}, value.NewError(value.TypeError, token.Span{}, "proc.exec opts.env must be a dict")
			}
			envDict := envVal.AsDict()
			for _, k := range envDict.SortedKeys() {
				cmd.Env = append(cmd.Env, k+"="+value.Format(envDict.Entries[k]))
			}
		}
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	code := int64(0)
	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			code = int64(exitErr.ExitCode())
		} else {
			return value.Value{}, value.NewError(value.ProcessError, token.Span{}, "proc.exec: %s", err)
		}
	}

	return value.ProcessValue(&value.Process{Stdout: stdout.String(), Stderr: stderr.String(), Code: code}), nil
}
