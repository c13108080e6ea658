// Package mathmod implements Latch's `math` host module, grounded on
// rubiojr-rugo's modules/math. math and math/rand are stdlib with no
// third-party alternative present anywhere in the example pack.
package mathmod

import (
	"math"
	"math/rand"

	"github.com/latch-lang/latch/internal/token"
	"github.com/latch-lang/latch/internal/value"
)

func Module() map[string]*value.Builtin {
	return map[string]*value.Builtin{
		"sqrt":   {Name: "math.sqrt", Arity: 1, Impl: unary(math.Sqrt)},
		"abs":    {Name: "math.abs", Arity: 1, Impl: unary(math.Abs)},
		"floor":  {Name: "math.floor", Arity: 1, Impl: unary(math.Floor)},
		"ceil":   {Name: "math.ceil", Arity: 1, Impl: unary(math.Ceil)},
		"round":  {Name: "math.round", Arity: 1, Impl: unary(math.Round)},
		"pow":    {Name: "math.pow", Arity: 2, Impl: pow},
		"sin":    {Name: "math.sin", Arity: 1, Impl: unary(math.Sin)},
		"cos":    {Name: "math.cos", Arity: 1, Impl: unary(math.Cos)},
		"tan":    {Name: "math.tan", Arity: 1, Impl: unary(math.Tan)},
		"log":    {Name: "math.log", Arity: 1, Impl: unary(math.Log)},
		"exp":    {Name: "math.exp", Arity: 1, Impl: unary(math.Exp)},
		"pi":     {Name: "math.pi", Arity: 0, Impl: constant(math.Pi)},
		"e":      {Name: "math.e", Arity: 0, Impl: constant(math.E)},
		"random": {Name: "math.random", Arity: 0, Impl: random},
	}
}

func unary(f func(float64) float64) func([]value.Value) (value.Value, *value.RuntimeError) {
	return func(args []value.Value) (value.Value, *value.RuntimeError) {
		if !args[0].IsNumeric() {
			return value.Value{}, value.NewError(value.TypeError, token.Span{}, "expects a numeric argument")
		}
		return value.Float(f(args[0].AsFloat64())), nil
	}
}

func constant(c float64) func([]value.Value) (value.Value, *value.RuntimeError) {
	return func(args []value.Value) (value.Value, *value.RuntimeError) {
		return value.Float(c), nil
	}
}

func pow(args []value.Value) (value.Value, *value.RuntimeError) {
	if !args[0].IsNumeric() || !args[1].IsNumeric() {
		return value.Value{}, value.NewError(value.TypeError, token.Span{}, "math.pow expects two numeric arguments")
	}
	return value.Float(math.Pow(args[0].AsFloat64(), args[1].AsFloat64())), nil
}

// random implements math.random() -> Float in [0, 1).
func random(args []value.Value) (value.Value, *value.RuntimeError) {
	return value.Float(rand.Float64()), nil
}
