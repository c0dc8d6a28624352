package interp

import (
	"math"

	"github.com/cwbudde/go-es5/internal/runtime"
)

// installMathObject wires the Math namespace object (15.8). Math.random
// draws from the context RNG seeded at Context construction, so runs are reproducible under a fixed seed.
func (c *Context) installMathObject() {
	m := runtime.NewObject(c.objectProto, "Math")

	m.DefineOwnData("E", runtime.Num(math.E), false, false, false)
	m.DefineOwnData("PI", runtime.Num(math.Pi), false, false, false)
	m.DefineOwnData("LN2", runtime.Num(math.Ln2), false, false, false)
	m.DefineOwnData("LN10", runtime.Num(math.Log(10)), false, false, false)
	m.DefineOwnData("SQRT2", runtime.Num(math.Sqrt2), false, false, false)

	unary := func(name string, fn func(float64) float64) {
		c.defineMethod(m, name, 1, func(h runtime.Host, this runtime.Value, args []runtime.Value) (runtime.Value, error) {
			n, err := runtime.ToNumber(c, argOr(args, 0))
			if err != nil {
				return runtime.Undefined, err
			}
			return runtime.Num(fn(n)), nil
		})
	}
	unary("abs", math.Abs)
	unary("floor", math.Floor)
	unary("ceil", math.Ceil)
	unary("sqrt", math.Sqrt)
	unary("sin", math.Sin)
	unary("cos", math.Cos)
	unary("tan", math.Tan)
	unary("log", math.Log)
	unary("exp", math.Exp)
	unary("round", func(f float64) float64 {
		// 15.8.2.15 rounds half-way cases toward +Infinity, unlike Go's
		// round-half-away-from-zero.
		return math.Floor(f + 0.5)
	})

	c.defineMethod(m, "pow", 2, func(h runtime.Host, this runtime.Value, args []runtime.Value) (runtime.Value, error) {
		x, err := runtime.ToNumber(c, argOr(args, 0))
		if err != nil {
			return runtime.Undefined, err
		}
		y, err := runtime.ToNumber(c, argOr(args, 1))
		if err != nil {
			return runtime.Undefined, err
		}
		return runtime.Num(math.Pow(x, y)), nil
	})

	extremum := func(name string, better func(a, b float64) bool, empty float64) {
		c.defineMethod(m, name, 2, func(h runtime.Host, this runtime.Value, args []runtime.Value) (runtime.Value, error) {
			result := empty
			for _, a := range args {
				n, err := runtime.ToNumber(c, a)
				if err != nil {
					return runtime.Undefined, err
				}
				if math.IsNaN(n) {
					return runtime.Num(math.NaN()), nil
				}
				if better(n, result) {
					result = n
				}
			}
			return runtime.Num(result), nil
		})
	}
	extremum("max", func(a, b float64) bool { return a > b }, math.Inf(-1))
	extremum("min", func(a, b float64) bool { return a < b }, math.Inf(1))

	c.defineMethod(m, "random", 0, func(h runtime.Host, this runtime.Value, args []runtime.Value) (runtime.Value, error) {
		return runtime.Num(c.rng.Float64()), nil
	})

	c.global.DefineOwnData("Math", runtime.Obj(m), true, false, true)
}
