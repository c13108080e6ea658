package interp

import (
	"github.com/latch-lang/latch/internal/ast"
	"github.com/latch-lang/latch/internal/token"
	"github.com/latch-lang/latch/internal/value"
)

// execBlockIn runs stmts against env directly (no child scope pushed) —
// callers that need a fresh scope push one first (spec.md §4.4: `if`,
// `for`, `while`, `parallel`, `try`, and function/fn-literal bodies each
// open their own scope at the call site, not inside execBlockIn itself).
func (ip *Interp) execBlockIn(stmts []ast.Stmt, env *value.Env) {
	for _, s := range stmts {
		ip.exec(s, env)
	}
}

func (ip *Interp) execBlock(stmts []ast.Stmt, parent *value.Env) {
	ip.execBlockIn(stmts, parent.Child())
}

func (ip *Interp) exec(s ast.Stmt, env *value.Env) {
	switch n := s.(type) {
	case *ast.Let:
		v := ip.eval(n.Value, env)
		env.Declare(n.Name, v, n.IsConst)

	case *ast.Assign:
		ip.execAssign(n, env)

	case *ast.ExprStmt:
		ip.eval(n.X, env)

	case *ast.If:
		for _, br := range n.Branches {
			if value.Truthy(ip.eval(br.Cond, env)) {
				ip.execBlock(br.Body, env)
				return
			}
		}
		if n.Else != nil {
			ip.execBlock(n.Else, env)
		}

	case *ast.For:
		ip.execFor(n, env)

	case *ast.While:
		ip.execWhile(n, env)

	case *ast.Parallel:
		ip.execParallel(n, env)

	case *ast.Break:
		panic(breakSignal{})

	case *ast.Continue:
		panic(continueSignal{})

	case *ast.Return:
		v := value.Null
		if n.Value != nil {
			v = ip.eval(n.Value, env)
		}
		panic(returnSignal{value: v})

	case *ast.Yield:
		ip.yields.append(ip.eval(n.Value, env))

	case *ast.Try:
		ip.execTry(n, env)

	case *ast.Stop:
		code := int64(0)
		if n.Code != nil {
			code = ip.eval(n.Code, env).AsInt()
		}
		panic(stopSignal{code: code})

	case *ast.FnDecl:
		env.Declare(n.Name, value.FnValue(&value.Fn{Name: n.Name, Params: n.Params, Body: n.Body, Env: env}), false)

	case *ast.ClassDecl:
		cls := &value.Class{Name: n.Name, Fields: n.Fields, Methods: map[string]*value.Fn{}}
		for _, m := range n.Methods {
			cls.Methods[m.Name] = &value.Fn{Name: m.Name, Params: m.Params, Body: m.Body, Env: env, IsMethod: true}
		}
		env.Declare(n.Name, value.ClassValue(cls), false)

	case *ast.Import:
		ip.execImport(n, env)

	case *ast.Export:
		// No module resolver/caching (spec.md Non-goals): `export` only
		// validates (sema) that the names exist; it has no further runtime
		// effect inside a single-file run/check/repl session.
	}
}

func (ip *Interp) execAssign(n *ast.Assign, env *value.Env) {
	rhs := ip.eval(n.Value, env)

	switch t := n.Target.(type) {
	case *ast.Ident:
		final := rhs
		if n.Op != token.Assign {
			cur, ok := env.Lookup(t.Name)
			if !ok {
				rt(value.NewError(value.Undefined, n.Span(), "undefined name %q", t.Name))
			}
			final = ip.applyCompound(n.Op, cur, rhs, n.Span())
		}
		ok, isConst := env.Assign(t.Name, final)
		if !ok {
			rt(value.NewError(value.Undefined, n.Span(), "undefined name %q", t.Name))
		}
		if isConst {
			rt(value.NewError(value.TypeError, n.Span(), "cannot assign to const %q", t.Name))
		}

	case *ast.Index:
		target := ip.eval(t.Target, env)
		idx := ip.eval(t.Index, env)
		final := rhs
		if n.Op != token.Assign {
			cur := ip.indexGet(target, idx, n.Span())
			final = ip.applyCompound(n.Op, cur, rhs, n.Span())
		}
		ip.indexSet(target, idx, final, n.Span())

	case *ast.Field:
		target := ip.eval(t.Target, env)
		final := rhs
		if n.Op != token.Assign {
			cur := ip.fieldGet(target, t.Name, n.Span())
			final = ip.applyCompound(n.Op, cur, rhs, n.Span())
		}
		ip.fieldSet(target, t.Name, final, n.Span())
	}
}

func (ip *Interp) execFor(n *ast.For, env *value.Env) {
	iterVal := ip.eval(n.Iter, env)
	items := ip.iterableItems(iterVal, n.Span())
	for _, item := range items {
		scope := env.Child()
		scope.Declare(n.Var, item, false)
		if ip.runLoopBody(n.Body, scope) {
			break
		}
	}
}

func (ip *Interp) execWhile(n *ast.While, env *value.Env) {
	for value.Truthy(ip.eval(n.Cond, env)) {
		scope := env.Child()
		if ip.runLoopBody(n.Body, scope) {
			break
		}
	}
}

// runLoopBody executes one iteration's body, absorbing a continueSignal and
// reporting whether a breakSignal terminated the loop.
func (ip *Interp) runLoopBody(body []ast.Stmt, scope *value.Env) (brk bool) {
	defer func() {
		if r := recover(); r != nil {
			switch r.(type) {
			case breakSignal:
				brk = true
			case continueSignal:
				brk = false
			default:
				panic(r)
			}
		}
	}()
	ip.execBlockIn(body, scope)
	return false
}

func (ip *Interp) execTry(n *ast.Try, env *value.Env) {
	var pendingPanic interface{}

	func() {
		defer func() {
			if r := recover(); r != nil {
				rte, ok := r.(*value.RuntimeError)
				if !ok {
					// break/continue/return/stop: deferred until finally runs.
					pendingPanic = r
					return
				}
				func() {
					defer func() {
						if r2 := recover(); r2 != nil {
							pendingPanic = r2
						}
					}()
					catchEnv := env.Child()
					catchEnv.Declare(n.CatchVar, rte.ToDict(), false)
					ip.execBlockIn(n.CatchBody, catchEnv)
				}()
			}
		}()
		ip.execBlock(n.Body, env)
	}()

	if n.Finally != nil {
		func() {
			defer func() {
				if r := recover(); r != nil {
					// a new control-flow/error in finally supersedes any pending one
					pendingPanic = r
				}
			}()
			ip.execBlock(n.Finally, env)
		}()
	}

	if pendingPanic != nil {
		panic(pendingPanic)
	}
}

func (ip *Interp) execImport(n *ast.Import, env *value.Env) {
	mod, ok := ip.Modules[n.Source]
	if !ok {
		rt(value.NewError(value.FileError, n.Span(), "unknown module %q", n.Source))
	}
	if len(n.Names) == 1 && n.Names[0] == n.Source {
		d := value.NewDict()
		for name, b := range mod {
			d.Set(name, value.BuiltinValue(b))
		}
		env.Declare(n.Source, value.DictValue(d), false)
		return
	}
	for _, name := range n.Names {
		b, ok := mod[name]
		if !ok {
			rt(value.NewError(value.Undefined, n.Span(), "module %q has no member %q", n.Source, name))
		}
		env.Declare(name, value.BuiltinValue(b), false)
	}
}
