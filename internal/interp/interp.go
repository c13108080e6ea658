// Package interp is Latch's tree-walking evaluator (spec.md §4.4): it walks
// the typed AST against a lexically-scoped value.Env, producing a result
// value or a runtime error, and dispatches to host modules for side effects.
//
// Grounded on the interpreter it evolved from's interpreter.go/interpreter_exec.go/
// interpreter_ops.go split (a core eval loop plus separate files for
// statement execution and operator semantics) and on its panic/recover
// control-flow convention: break/continue/return/stop and runtime errors
// all unwind the Go call stack as typed panics (yield does not: it appends
// to the running generator's result list), caught at the
// nearest boundary that can handle them (loop, function call, try, Run).
package interp

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"

	"github.com/latch-lang/latch/internal/ast"
	"github.com/latch-lang/latch/internal/value"
)

// Interp owns the module registry and the global environment for one run.
type Interp struct {
	Globals *value.Env
	Modules map[string]map[string]*value.Builtin
	Stdout  *os.File
	Stderr  *os.File
	Stdin   *os.File
	Logger  *slog.Logger
	// MaxWorkers caps how many goroutines a `parallel` block may run at
	// once (SPEC_FULL.md §4.3, fed by config.Config.MaxWorkers). A
	// `workers=` clause lower than this still wins; one higher is clamped.
	MaxWorkers    int
	yields        yieldSinks
	parallelDepth int32
}

// New creates an Interp with core free functions registered and modules
// from modules wired for `use`/`import` (SPEC_FULL.md Domain Stack). Logger
// defaults to a discard handler; callers wanting ambient logging set
// ip.Logger after construction (see cmd/latch's newInterp). MaxWorkers
// defaults to 4x NumCPU; callers wanting the configured ceiling set
// ip.MaxWorkers after construction from config.Config.
func New(modules map[string]map[string]*value.Builtin) *Interp {
	ip := &Interp{
		Globals:    value.NewEnv(),
		Modules:    modules,
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
		Stdin:      os.Stdin,
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		MaxWorkers: runtime.NumCPU() * 4,
	}
	registerCoreBuiltins(ip)
	return ip
}

// Result is what Run reports back to the CLI front end.
type Result struct {
	ExitCode int
	Stopped  bool // true if a `stop N` statement set ExitCode
}

// Run evaluates prog's top-level statements against Globals. A panic of
// type *value.RuntimeError that escapes all the way here is the "uncaught
// error" case (spec.md §7): printed and translated into exit code 1. A
// stopSignal sets Result.ExitCode and Result.Stopped.
func (ip *Interp) Run(prog *ast.Program) (res Result, err error) {
	ip.Logger.Debug("run start", "statements", len(prog.Stmts))
	defer func() {
		if r := recover(); r != nil {
			switch sig := r.(type) {
			case stopSignal:
				ip.Logger.Debug("run stopped", "code", sig.code)
				res = Result{ExitCode: int(sig.code), Stopped: true}
			case *value.RuntimeError:
				ip.Logger.Error("uncaught runtime error", "kind", sig.Kind, "message", sig.Message)
				fmt.Fprintln(ip.Stderr, sig.Error())
				res = Result{ExitCode: 1}
			default:
				panic(r)
			}
		}
	}()
	ip.execBlockIn(prog.Stmts, ip.Globals)
	ip.Logger.Debug("run complete")
	return Result{ExitCode: 0}, nil
}

// EvalTopLevel executes a single top-level statement against env, returning
// the statement's value if it is a bare expression (so the REPL can print
// it) or Null otherwise. Used by internal/repl to evaluate one line at a
// time against a persistent environment.
func (ip *Interp) EvalTopLevel(s ast.Stmt, env *value.Env) value.Value {
	if es, ok := s.(*ast.ExprStmt); ok {
		return ip.eval(es.X, env)
	}
	ip.exec(s, env)
	return value.Null
}
