// Package sema implements Latch's semantic analysis pass: resolving
// declarations and uses, validating keyword positions, and flagging const
// reassignments — a non-fatal pass whose diagnostics gate evaluation but
// never rewrite the AST (spec.md §2, §4.3).
//
// Grounded on the interpreter it evolved from's resolver conventions in interpreter.go (a scope
// stack of name sets walked alongside the AST) generalized into its own
// pass, since spec.md calls for semantic analysis as a distinct pipeline
// stage rather than resolution-on-the-fly during evaluation.
package sema

import (
	"fmt"

	"github.com/latch-lang/latch/internal/ast"
	"github.com/latch-lang/latch/internal/diag"
	"github.com/latch-lang/latch/internal/token"
)

type symbol struct {
	konst bool
}

type scope struct {
	names  map[string]*symbol
	parent *scope
}

func newScope(parent *scope) *scope { return &scope{names: map[string]*symbol{}, parent: parent} }

func (s *scope) declare(name string, konst bool) { s.names[name] = &symbol{konst: konst} }

func (s *scope) lookup(name string) (*symbol, bool) {
	for sc := s; sc != nil; sc = sc.parent {
		if sym, ok := sc.names[name]; ok {
			return sym, true
		}
	}
	return nil, false
}

// Analyzer walks a parsed Program and accumulates diagnostics.
type Analyzer struct {
	file     string
	errs     []diag.Diagnostic
	scope    *scope
	loopDepth int
	fnDepth   int
	// parallelDepth tracks nesting inside a `parallel` worker body, where
	// break/continue/return are UnsupportedControl rather than the usual
	// position errors (spec.md §5) — a runtime-error concern, not sema's,
	// but sema still needs to avoid misreporting them as "outside a loop".
	parallelDepth int
}

// Analyze resolves and validates prog, returning accumulated diagnostics.
// An empty slice means the program is safe to evaluate.
func Analyze(file string, prog *ast.Program) []diag.Diagnostic {
	a := &Analyzer{file: file, scope: newScope(nil)}
	declareBuiltinNames(a.scope)
	a.block(prog.Stmts)
	return a.errs
}

// declareBuiltinNames seeds the root scope with the free-standing functions
// spec.md's language core exposes independent of any `use` (print, str,
// len, type, assert, range, filter, map, sort, keys, values, items, get,
// input) so referencing them never reports NameError. The evaluator wires
// their actual implementations; sema only needs to know the names exist.
func declareBuiltinNames(root *scope) {
	for _, name := range []string{
		"print", "str", "len", "type", "assert", "range", "filter", "map",
		"reduce", "sort", "keys", "values", "items", "get", "input", "int",
		"float", "bool", "abs", "min", "max", "self",
	} {
		root.declare(name, false)
	}
}

func (a *Analyzer) errorf(sp token.Span, hint, format string, args ...interface{}) {
	a.errs = append(a.errs, diag.New(diag.Semantic, a.file, sp, fmt.Sprintf(format, args...), hint))
}

func (a *Analyzer) push()  { a.scope = newScope(a.scope) }
func (a *Analyzer) pop()   { a.scope = a.scope.parent }

func (a *Analyzer) block(stmts []ast.Stmt) {
	a.push()
	defer a.pop()
	for _, s := range stmts {
		a.stmt(s)
	}
}

// blockNoScope walks stmts without opening a new lexical scope; used for a
// function body immediately after parameters have been declared into the
// enclosing (freshly pushed) scope.
func (a *Analyzer) blockNoScope(stmts []ast.Stmt) {
	for _, s := range stmts {
		a.stmt(s)
	}
}

func (a *Analyzer) stmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.Let:
		a.expr(n.Value)
		a.scope.declare(n.Name, n.IsConst)
	case *ast.Assign:
		a.assignTarget(n.Target)
		a.expr(n.Value)
	case *ast.ExprStmt:
		a.expr(n.X)
	case *ast.If:
		for _, br := range n.Branches {
			a.expr(br.Cond)
			a.block(br.Body)
		}
		if n.Else != nil {
			a.block(n.Else)
		}
	case *ast.For:
		a.expr(n.Iter)
		a.push()
		a.scope.declare(n.Var, false)
		a.loopDepth++
		a.blockNoScope(n.Body)
		a.loopDepth--
		a.pop()
	case *ast.While:
		a.expr(n.Cond)
		a.loopDepth++
		a.block(n.Body)
		a.loopDepth--
	case *ast.Parallel:
		a.expr(n.Iter)
		if n.Workers != nil {
			a.expr(n.Workers)
		}
		a.push()
		a.scope.declare(n.Var, false)
		a.parallelDepth++
		a.blockNoScope(n.Body)
		a.parallelDepth--
		a.pop()
	case *ast.Break:
		if a.loopDepth == 0 && a.parallelDepth == 0 {
			a.errorf(n.Span(), "wrap this in a for/while loop", "'break' used outside a loop")
		}
	case *ast.Continue:
		if a.loopDepth == 0 && a.parallelDepth == 0 {
			a.errorf(n.Span(), "wrap this in a for/while loop", "'continue' used outside a loop")
		}
	case *ast.Return:
		if n.Value != nil {
			a.expr(n.Value)
		}
		if a.fnDepth == 0 {
			a.errorf(n.Span(), "move this inside a function body", "'return' used outside a function")
		}
	case *ast.Yield:
		a.expr(n.Value)
		if a.fnDepth == 0 {
			a.errorf(n.Span(), "move this inside a function body", "'yield' used outside a function")
		}
	case *ast.Try:
		a.block(n.Body)
		a.push()
		a.scope.declare(n.CatchVar, false)
		a.blockNoScope(n.CatchBody)
		a.pop()
		if n.Finally != nil {
			a.block(n.Finally)
		}
	case *ast.Stop:
		if n.Code != nil {
			a.expr(n.Code)
		}
	case *ast.FnDecl:
		a.scope.declare(n.Name, false)
		a.analyzeFn(n.Params, n.Body)
	case *ast.ClassDecl:
		a.scope.declare(n.Name, false)
		for _, f := range n.Fields {
			if f.Default != nil {
				a.expr(f.Default)
			}
		}
		for _, m := range n.Methods {
			a.analyzeFn(m.Params, m.Body)
		}
	case *ast.Import:
		for _, name := range n.Names {
			a.scope.declare(name, false)
		}
	case *ast.Export:
		for _, name := range n.Names {
			if _, ok := a.scope.lookup(name); !ok {
				a.errorf(n.Span(), "", "export of undeclared name %q", name)
			}
		}
	}
}

// analyzeFn opens a fresh function scope: parameters are declared there,
// and neither loopDepth nor parallelDepth carry in from an enclosing loop
// (a `return` inside a loop inside a function is fine; a `break` in a
// function nested in a loop is not, because the break can't see the loop
// through the intervening call boundary).
func (a *Analyzer) analyzeFn(params []ast.Param, body []ast.Stmt) {
	a.push()
	for _, p := range params {
		if p.Default != nil {
			a.expr(p.Default)
		}
		a.scope.declare(p.Name, false)
	}
	savedLoop, savedParallel := a.loopDepth, a.parallelDepth
	a.loopDepth, a.parallelDepth = 0, 0
	a.fnDepth++
	a.blockNoScope(body)
	a.fnDepth--
	a.loopDepth, a.parallelDepth = savedLoop, savedParallel
	a.pop()
}

func (a *Analyzer) assignTarget(t ast.AssignTarget) {
	switch n := t.(type) {
	case *ast.Ident:
		sym, ok := a.scope.lookup(n.Name)
		if !ok {
			a.errorf(n.Span(), "", "assignment to undeclared name %q", n.Name)
			return
		}
		if sym.konst {
			a.errorf(n.Span(), "declare with ':=' instead of 'const' if it needs to change", "cannot assign to const %q", n.Name)
		}
	case *ast.Index:
		a.expr(n.Target)
		a.expr(n.Index)
	case *ast.Field:
		a.expr(n.Target)
	}
}

func (a *Analyzer) expr(e ast.Expr) {
	switch n := e.(type) {
	case *ast.Ident:
		if _, ok := a.scope.lookup(n.Name); !ok {
			a.errorf(n.Span(), "", "undefined name %q", n.Name)
		}
	case *ast.StringLit:
		for _, part := range n.Parts {
			if part.Expr != nil {
				a.expr(part.Expr)
			}
		}
	case *ast.ListLit:
		for _, it := range n.Items {
			a.expr(it)
		}
	case *ast.DictLit:
		for _, entry := range n.Pairs {
			a.expr(entry.Key)
			a.expr(entry.Value)
		}
	case *ast.Index:
		a.expr(n.Target)
		a.expr(n.Index)
	case *ast.Slice:
		a.expr(n.Target)
		if n.Start != nil {
			a.expr(n.Start)
		}
		if n.End != nil {
			a.expr(n.End)
		}
	case *ast.Field:
		a.expr(n.Target)
	case *ast.SafeField:
		a.expr(n.Target)
	case *ast.Call:
		a.expr(n.Callee)
		for _, arg := range n.Args {
			a.expr(arg)
		}
	case *ast.Pipe:
		a.expr(n.Lhs)
		a.expr(n.Rhs)
	case *ast.Unary:
		a.expr(n.Arg)
	case *ast.Binary:
		a.expr(n.Left)
		a.expr(n.Right)
	case *ast.Ternary:
		a.expr(n.Cond)
		a.expr(n.Then)
		a.expr(n.Else)
	case *ast.Range:
		a.expr(n.Start)
		a.expr(n.End)
	case *ast.FnLit:
		a.analyzeFn(n.Params, n.Body)
	case *ast.ListComp:
		a.expr(n.Iter)
		a.push()
		a.scope.declare(n.Var, false)
		a.expr(n.Expr)
		if n.Guard != nil {
			a.expr(n.Guard)
		}
		a.pop()
	}
}
