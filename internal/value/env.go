package value

// Env is a lexically-scoped binding chain (spec.md §3: Env.parent forms the
// lookup chain; `:=` always binds in the innermost Env, `=` walks the chain
// to rebind an existing name, `const` marks a binding immutable).
//
// Grounded on the interpreter it evolved from's Env{vars map[string]*Value, parent *Env} shape
// (interpreter.go) — a parent-pointer chain of maps rather than a single
// flat symbol table, which is what gives Latch's block scoping and closures
// their shape for free.
type Env struct {
	vars   map[string]*binding
	parent *Env
}

type binding struct {
	val   Value
	konst bool
}

// NewEnv creates a root environment with no parent.
func NewEnv() *Env { return &Env{vars: map[string]*binding{}} }

// Child creates a new scope nested under e.
func (e *Env) Child() *Env { return &Env{vars: map[string]*binding{}, parent: e} }

// Declare binds name in e's own scope, shadowing any outer binding of the
// same name. Used for `:=`, function parameters, `for`/`parallel` loop
// variables, and `catch`/class `self` bindings.
func (e *Env) Declare(name string, v Value, konst bool) {
	e.vars[name] = &binding{val: v, konst: konst}
}

// Lookup searches e and its ancestors for name.
func (e *Env) Lookup(name string) (Value, bool) {
	for env := e; env != nil; env = env.parent {
		if b, ok := env.vars[name]; ok {
			return b.val, true
		}
	}
	return Value{}, false
}

// Assign rebinds an existing name found anywhere in the chain. It reports
// ok=false if the name is undeclared, and isConst=true if the name is a
// const binding (callers turn that into a RuntimeError).
func (e *Env) Assign(name string, v Value) (ok bool, isConst bool) {
	for env := e; env != nil; env = env.parent {
		if b, found := env.vars[name]; found {
			if b.konst {
				return true, true
			}
			b.val = v
			return true, false
		}
	}
	return false, false
}

// Snapshot flattens the whole parent chain into a single new root Env with
// no parent, giving a `parallel` worker its own binding cells (spec.md §5:
// rebinding a name inside one worker must not be visible to other workers
// or reflected back to the spawning scope). The Values copied into those
// cells are shallow copies: List/Dict/Instance payloads are pointers, so a
// List/Dict/Instance already bound at fan-out time stays the *same*
// container across every worker's snapshot — spec.md §5's explicit policy
// that "reference values inside the snapshot are aliased; if workers
// mutate them, races are the user's responsibility." Only the cell map
// (which names point to which value) is isolated, never the containers
// those values may reference.
//
// Grounded on the interpreter it evolved from's deepSnapshotEnvInto (builtin_concurrency.go):
// walk the full chain outer-to-inner so inner bindings shadow outer ones
// when flattened into the single new scope.
func (e *Env) Snapshot() *Env {
	var chain []*Env
	for env := e; env != nil; env = env.parent {
		chain = append(chain, env)
	}
	out := NewEnv()
	for i := len(chain) - 1; i >= 0; i-- {
		for name, b := range chain[i].vars {
			out.vars[name] = &binding{val: b.val, konst: b.konst}
		}
	}
	return out
}
