// Package repl implements Latch's interactive line-editing shell.
//
// Grounded on the interpreter it evolved from's cmd/msg/main.go (cmdRepl/readByParseProbe):
// peterh/liner for history and line editing, and a persistent value.Env so
// bindings survive across evaluated lines. Multi-line input is submitted by
// a line ending in ";;" or a blank line, per the CLI surface's convention.
package repl

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/latch-lang/latch/internal/interp"
	"github.com/latch-lang/latch/internal/parser"
	"github.com/latch-lang/latch/internal/sema"
	"github.com/latch-lang/latch/internal/value"
)

const (
	historyFile = ".latch_history"
	promptMain  = "latch> "
	promptCont  = "   ... "
)

// Run starts the REPL loop against ip, reading lines from the terminal
// through liner and writing output to ip.Stdout until EOF or :quit.
func Run(ip *interp.Interp) int {
	fmt.Fprintln(ip.Stdout, "Latch REPL. Ctrl+D or :quit to exit.")

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	env := ip.Globals

	for {
		src, ok := readByParseProbe(ln)
		if !ok {
			fmt.Fprintln(ip.Stdout)
			break
		}

		trimmed := strings.TrimSpace(src)
		if trimmed == "" {
			continue
		}
		if trimmed == ":quit" {
			return 0
		}

		result := evalLine(ip, env, src)
		if result != "" {
			fmt.Fprintln(ip.Stdout, result)
		}
		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))
	}
	return 0
}

// evalLine parses+analyzes+evaluates one REPL submission against env,
// recovering from a *value.RuntimeError the same way Run does at the
// top level, but without exiting the process.
func evalLine(ip *interp.Interp, env *value.Env, src string) (out string) {
	prog, diags := parser.Parse("<repl>", src)
	for _, d := range diags {
		fmt.Fprintln(ip.Stderr, d.Error())
	}
	if len(diags) > 0 {
		return ""
	}
	if semaDiags := sema.Analyze("<repl>", prog); len(semaDiags) > 0 {
		for _, d := range semaDiags {
			fmt.Fprintln(ip.Stderr, d.Error())
		}
		return ""
	}

	defer func() {
		if r := recover(); r != nil {
			if rerr, ok := r.(*value.RuntimeError); ok {
				fmt.Fprintln(ip.Stderr, rerr.Error())
				return
			}
			panic(r)
		}
	}()

	var last value.Value = value.Null
	for _, stmt := range prog.Stmts {
		last = ip.EvalTopLevel(stmt, env)
	}
	if last.IsNull() {
		return ""
	}
	return value.Repr(last)
}

// readByParseProbe reads lines until the buffer ends with ";;" or the user
// submits a blank line after at least one line of input, per the CLI
// surface's multi-line submit convention.
func readByParseProbe(ln *liner.State) (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			return "", true
		}

		trimmed := strings.TrimSuffix(strings.TrimRight(line, " \t"), ";;")
		endsSubmit := trimmed != line || (b.Len() > 0 && line == "")

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(trimmed)

		if endsSubmit {
			return b.String(), true
		}
	}
}
