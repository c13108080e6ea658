package interp

import (
	"sync"
	"sync/atomic"

	"github.com/latch-lang/latch/internal/ast"
	"github.com/latch-lang/latch/internal/value"
)

// execParallel implements spec.md §5: iterations fan out across up to N
// goroutines, each running in a scope whose parent is a fresh snapshot of
// the surrounding environment taken independently for that iteration
// (spec.md §4.4/§5: binding cells are isolated per worker, but reference
// values already bound at fan-out stay aliased). Taking the snapshot per
// iteration rather than once keeps worker cells from sharing a single
// underlying map, which would make a `=` rebind in one worker racily
// visible to its siblings. Every worker runs to completion; if any raised
// an error, the lowest-iteration-index error is re-raised after all
// workers join. break/continue/return inside a worker are UnsupportedControl.
func (ip *Interp) execParallel(n *ast.Parallel, env *value.Env) {
	iterVal := ip.eval(n.Iter, env)
	items := ip.iterableItems(iterVal, n.Span())
	if len(items) == 0 {
		return
	}

	workers := len(items)
	if n.Workers != nil {
		w := ip.eval(n.Workers, env)
		if w.Tag != value.TagInt || w.AsInt() <= 0 {
			rt(value.NewError(value.TypeError, n.Span(), "workers= must be a positive integer"))
		}
		workers = int(w.AsInt())
	}
	if workers > len(items) {
		workers = len(items)
	}
	if ip.MaxWorkers > 0 && workers > ip.MaxWorkers {
		workers = ip.MaxWorkers
	}

	type outcome struct {
		err *value.RuntimeError
	}
	results := make([]outcome, len(items))

	atomic.AddInt32(&ip.parallelDepth, 1)
	defer atomic.AddInt32(&ip.parallelDepth, -1)

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = ip.runParallelIteration(n, env, idx, items[idx])
			}
		}()
	}
	for i := range items {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for _, res := range results {
		if res.err != nil {
			rt(res.err)
		}
	}
}

func (ip *Interp) runParallelIteration(n *ast.Parallel, env *value.Env, idx int, item value.Value) (out struct {
	err *value.RuntimeError
}) {
	defer func() {
		if r := recover(); r != nil {
			switch sig := r.(type) {
			case *value.RuntimeError:
				out.err = sig
			case breakSignal, continueSignal, returnSignal, stopSignal:
				out.err = value.NewError(value.UnsupportedControl, n.Span(), "break/continue/return/stop are not allowed inside a parallel worker")
			default:
				panic(r)
			}
		}
	}()
	scope := env.Snapshot().Child()
	scope.Declare(n.Var, item, false)
	ip.execBlockIn(n.Body, scope)
	return out
}
