// Package catalog names the source functions the command line can sample.
package catalog

import (
	"fmt"
	"math"
	"sort"
)

var functions = map[string]func(float64) float64{
	"identity": func(x float64) float64 { return x },
	"square":   func(x float64) float64 { return x * x },
	"sin":      math.Sin,
	"cos":      math.Cos,
	"exp":      math.Exp,
	"tanh":     math.Tanh,
	"sqrt":     math.Sqrt,
	"gauss":    gauss,
	"sigmoid":  sigmoid,
	"landau":   landau,
}

// Lookup returns the function registered under name.
func Lookup(name string) (func(float64) float64, error) {
	fn, ok := functions[name]
	if !ok {
		return nil, fmt.Errorf("unknown function %q (known: %v)", name, Names())
	}
	return fn, nil
}

// Names returns the registered names in order.
func Names() []string {
	names := make([]string, 0, len(functions))
	for name := range functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// gauss is the standard normal density.
func gauss(x float64) float64 {
	return math.Exp(-x*x/2) / math.Sqrt(2*math.Pi)
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// landau approximates the Landau density
//
//	p(x) = 1/π ∫₀^∞ exp(-t log t - x t) sin(π t) dt
//
// by the midpoint rule. It is slow on purpose: it is the kind of function
// worth sampling once.
func landau(x float64) float64 {
	const (
		n     = 4000
		upper = 50.0
	)
	h := upper / n
	sum := 0.0
	for i := 0; i < n; i++ {
		t := (float64(i) + 0.5) * h
		sum += math.Exp(-t*math.Log(t)-x*t) * math.Sin(math.Pi*t)
	}
	return sum * h / math.Pi
}
