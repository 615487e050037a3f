package expr

import (
	"math"
	"sort"
)

type function struct {
	arity int
	eval  func(args []float64) (float64, error)
}

func unary(f func(float64) float64) function {
	return function{arity: 1, eval: func(a []float64) (float64, error) {
		return f(a[0]), nil
	}}
}

// guarded rejects arguments for which ok returns false.
func guarded(name string, f func(float64) float64, ok func(float64) bool) function {
	return function{arity: 1, eval: func(a []float64) (float64, error) {
		if !ok(a[0]) {
			return 0, domainError(name, a[0])
		}
		return f(a[0]), nil
	}}
}

func binary(f func(a, b float64) float64) function {
	return function{arity: 2, eval: func(a []float64) (float64, error) {
		return f(a[0], a[1]), nil
	}}
}

func positive(v float64) bool    { return v > 0 }
func nonNegative(v float64) bool { return v >= 0 }
func unitRange(v float64) bool   { return v >= -1 && v <= 1 }

var functions = map[string]function{
	"sin":   unary(math.Sin),
	"cos":   unary(math.Cos),
	"tan":   unary(math.Tan),
	"asin":  guarded("asin", math.Asin, unitRange),
	"acos":  guarded("acos", math.Acos, unitRange),
	"atan":  unary(math.Atan),
	"sinh":  unary(math.Sinh),
	"cosh":  unary(math.Cosh),
	"tanh":  unary(math.Tanh),
	"exp":   unary(math.Exp),
	"log":   guarded("log", math.Log, positive),
	"ln":    guarded("ln", math.Log, positive),
	"log10": guarded("log10", math.Log10, positive),
	"log2":  guarded("log2", math.Log2, positive),
	"sqrt":  guarded("sqrt", math.Sqrt, nonNegative),
	"abs":   unary(math.Abs),
	"fabs":  unary(math.Abs),
	"floor": unary(math.Floor),
	"ceil":  unary(math.Ceil),
	"atan2": binary(math.Atan2),
	"min":   binary(math.Min),
	"max":   binary(math.Max),
	"pow": {arity: 2, eval: func(a []float64) (float64, error) {
		return power(a[0], a[1])
	}},
}

var constants = map[string]float64{
	"pi": math.Pi,
	"e":  math.E,
}

// Functions lists the callable names, for help text.
func Functions() []string {
	names := make([]string, 0, len(functions))
	for name := range functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
