package interp

import (
	"math"
	"strings"

	"github.com/cwbudde/go-es5/internal/runtime"
)

// bootstrap installs the builtin surface the evaluator touches, in
// dependency order: prototypes before constructors, constructors before
// globals, globals before user code.
func (c *Context) bootstrap() {
	c.objectProto = runtime.NewObject(nil, "Object")
	c.functionProto = c.makeFunctionProto()
	c.arrayProto = runtime.NewObject(c.objectProto, "Array")
	c.booleanProto = runtime.NewObject(c.objectProto, "Boolean")
	c.numberProto = runtime.NewObject(c.objectProto, "Number")
	c.stringProto = runtime.NewObject(c.objectProto, "String")
	c.regexpProto = runtime.NewObject(c.objectProto, "RegExp")

	c.global = runtime.NewObject(c.objectProto, "global")
	c.globalEnv = runtime.NewObjectEnv(nil, c.global, false)
	c.lexicalEnv, c.variableEnv = c.globalEnv, c.globalEnv
	c.thisValue = runtime.Obj(c.global)

	c.installObjectProto()
	c.installFunctionProto()
	c.installErrorBuiltins()
	c.installWrapperBuiltins()
	c.installArrayBuiltins()
	c.installMathObject()
	c.installJSONObject()
	c.installGlobals()
}

// makeFunctionProto builds Function.prototype: itself callable, accepting
// any arguments and returning undefined (15.3.4).
func (c *Context) makeFunctionProto() *runtime.Object {
	fp := runtime.NewObject(c.objectProto, "Function")
	fp.Call = func(h runtime.Host, this runtime.Value, args []runtime.Value) (runtime.Value, error) {
		return runtime.Undefined, nil
	}
	fp.Function = &runtime.FunctionData{Name: "", Length: 0, IsNative: true}
	return fp
}

func (c *Context) installGlobals() {
	g := c.global
	g.DefineOwnData("undefined", runtime.Undefined, false, false, false)
	g.DefineOwnData("NaN", runtime.Num(math.NaN()), false, false, false)
	g.DefineOwnData("Infinity", runtime.Num(math.Inf(1)), false, false, false)

	// eval is kept on the context so direct-eval detection can compare the
	// resolved callee against it.
	c.builtinEval = c.newNativeFunction("eval", func(h runtime.Host, this runtime.Value, args []runtime.Value) (runtime.Value, error) {
		return c.indirectEval(args)
	}, 1)
	g.DefineOwnData("eval", runtime.Obj(c.builtinEval), true, false, true)

	c.DefineFunction("print", c.builtinPrint, 1)
	c.DefineFunction("isNaN", c.builtinIsNaN, 1)
	c.DefineFunction("isFinite", c.builtinIsFinite, 1)
	c.DefineFunction("parseInt", c.builtinParseInt, 2)
	c.DefineFunction("parseFloat", c.builtinParseFloat, 1)
}

func (c *Context) builtinPrint(h runtime.Host, this runtime.Value, args []runtime.Value) (runtime.Value, error) {
	parts := make([]string, 0, len(args))
	for _, a := range args {
		s, err := runtime.ToString(c, a)
		if err != nil {
			return runtime.Undefined, err
		}
		parts = append(parts, s)
	}
	if _, err := c.output.Write([]byte(strings.Join(parts, " ") + "\n")); err != nil {
		return runtime.Undefined, runtime.ThrowTypeError(c, "print: "+err.Error())
	}
	return runtime.Undefined, nil
}

func (c *Context) builtinIsNaN(h runtime.Host, this runtime.Value, args []runtime.Value) (runtime.Value, error) {
	n, err := runtime.ToNumber(c, argOr(args, 0))
	if err != nil {
		return runtime.Undefined, err
	}
	return runtime.Bool(math.IsNaN(n)), nil
}

func (c *Context) builtinIsFinite(h runtime.Host, this runtime.Value, args []runtime.Value) (runtime.Value, error) {
	n, err := runtime.ToNumber(c, argOr(args, 0))
	if err != nil {
		return runtime.Undefined, err
	}
	return runtime.Bool(!math.IsNaN(n) && !math.IsInf(n, 0)), nil
}

// builtinParseInt implements 15.1.2.2's radix-driven prefix parse: strip
// whitespace, honor a sign, auto-detect 0x, and stop at the first
// non-digit rather than rejecting the whole string.
func (c *Context) builtinParseInt(h runtime.Host, this runtime.Value, args []runtime.Value) (runtime.Value, error) {
	s, err := runtime.ToString(c, argOr(args, 0))
	if err != nil {
		return runtime.Undefined, err
	}
	radix := 0
	if len(args) > 1 {
		r, err := runtime.ToInt32(c, args[1])
		if err != nil {
			return runtime.Undefined, err
		}
		radix = int(r)
	}

	s = strings.TrimLeft(s, ecmaWhitespace)
	sign := 1.0
	if len(s) > 0 && (s[0] == '+' || s[0] == '-') {
		if s[0] == '-' {
			sign = -1
		}
		s = s[1:]
	}
	if radix == 0 {
		if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
			radix = 16
			s = s[2:]
		} else {
			radix = 10
		}
	} else if radix == 16 && len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}
	if radix < 2 || radix > 36 {
		return runtime.Num(math.NaN()), nil
	}

	value := 0.0
	digits := 0
	for i := 0; i < len(s); i++ {
		d := digitValue(s[i])
		if d < 0 || d >= radix {
			break
		}
		value = value*float64(radix) + float64(d)
		digits++
	}
	if digits == 0 {
		return runtime.Num(math.NaN()), nil
	}
	return runtime.Num(sign * value), nil
}

func digitValue(b byte) int {
	switch {
	case b >= '0' && b <= '9':
		return int(b - '0')
	case b >= 'a' && b <= 'z':
		return int(b-'a') + 10
	case b >= 'A' && b <= 'Z':
		return int(b-'A') + 10
	}
	return -1
}

func (c *Context) builtinParseFloat(h runtime.Host, this runtime.Value, args []runtime.Value) (runtime.Value, error) {
	s, err := runtime.ToString(c, argOr(args, 0))
	if err != nil {
		return runtime.Undefined, err
	}
	s = strings.TrimLeft(s, ecmaWhitespace)
	// Longest prefix matching StrDecimalLiteral (15.1.2.3): probe
	// shrinking prefixes through the shared StringToDouble grammar, minus
	// its hex branch which parseFloat does not accept.
	for end := len(s); end > 0; end-- {
		prefix := s[:end]
		if strings.ContainsAny(prefix, "xX") {
			continue
		}
		if v := runtime.StringToDouble(prefix); !math.IsNaN(v) && strings.TrimSpace(prefix) != "" {
			return runtime.Num(v), nil
		}
	}
	return runtime.Num(math.NaN()), nil
}

const ecmaWhitespace = " \t\n\r\v\f\u00a0\ufeff\u2028\u2029"

func argOr(args []runtime.Value, i int) runtime.Value {
	if i < len(args) {
		return args[i]
	}
	return runtime.Undefined
}
