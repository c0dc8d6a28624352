package interp

import (
	"math"
	"strings"

	"github.com/cwbudde/go-es5/internal/runtime"
)

// installWrapperBuiltins wires the Boolean/Number/String wrapper
// constructors and the toString/valueOf coercion entry points on their
// prototypes. String additionally
// gets the handful of methods the evaluator's own tests and typical eval
// workloads touch.
func (c *Context) installWrapperBuiltins() {
	c.installBooleanBuiltin()
	c.installNumberBuiltin()
	c.installStringBuiltin()
}

// primitiveOf extracts the [[PrimitiveValue]] a wrapper method operates
// on: either the primitive receiver itself or a wrapper object of the
// expected class.
func (c *Context) primitiveOf(this runtime.Value, class string) (runtime.Value, error) {
	if obj := runtime.AsObject(this); obj != nil {
		if obj.Class != class || obj.PrimitiveValue == nil {
			return runtime.Undefined, runtime.ThrowTypeError(c, class+".prototype method called on incompatible receiver")
		}
		return obj.PrimitiveValue, nil
	}
	return this, nil
}

func (c *Context) installBooleanBuiltin() {
	bp := c.booleanProto

	c.defineMethod(bp, "toString", 0, func(h runtime.Host, this runtime.Value, args []runtime.Value) (runtime.Value, error) {
		v, err := c.primitiveOf(this, "Boolean")
		if err != nil {
			return runtime.Undefined, err
		}
		if _, ok := v.(runtime.BooleanValue); !ok {
			return runtime.Undefined, runtime.ThrowTypeError(c, "Boolean.prototype.toString requires a boolean receiver")
		}
		s, err := runtime.ToString(c, v)
		if err != nil {
			return runtime.Undefined, err
		}
		return runtime.Str(s), nil
	})
	c.defineMethod(bp, "valueOf", 0, func(h runtime.Host, this runtime.Value, args []runtime.Value) (runtime.Value, error) {
		return c.primitiveOf(this, "Boolean")
	})

	ctor := c.newNativeFunction("Boolean", func(h runtime.Host, this runtime.Value, args []runtime.Value) (runtime.Value, error) {
		return runtime.Bool(runtime.ToBoolean(argOr(args, 0))), nil
	}, 1)
	ctor.Construct = func(h runtime.Host, args []runtime.Value) (runtime.Value, error) {
		return c.newWrapper(bp, "Boolean", runtime.Bool(runtime.ToBoolean(argOr(args, 0)))), nil
	}
	c.finishWrapperCtor(ctor, bp, "Boolean")
}

func (c *Context) installNumberBuiltin() {
	np := c.numberProto

	c.defineMethod(np, "toString", 1, func(h runtime.Host, this runtime.Value, args []runtime.Value) (runtime.Value, error) {
		v, err := c.primitiveOf(this, "Number")
		if err != nil {
			return runtime.Undefined, err
		}
		n, ok := v.(runtime.NumberValue)
		if !ok {
			return runtime.Undefined, runtime.ThrowTypeError(c, "Number.prototype.toString requires a number receiver")
		}
		return runtime.Str(runtime.NumberToString(float64(n))), nil
	})
	c.defineMethod(np, "valueOf", 0, func(h runtime.Host, this runtime.Value, args []runtime.Value) (runtime.Value, error) {
		return c.primitiveOf(this, "Number")
	})

	ctor := c.newNativeFunction("Number", func(h runtime.Host, this runtime.Value, args []runtime.Value) (runtime.Value, error) {
		if len(args) == 0 {
			return runtime.Num(0), nil
		}
		n, err := runtime.ToNumber(c, args[0])
		if err != nil {
			return runtime.Undefined, err
		}
		return runtime.Num(n), nil
	}, 1)
	ctor.Construct = func(h runtime.Host, args []runtime.Value) (runtime.Value, error) {
		n := 0.0
		if len(args) > 0 {
			var err error
			n, err = runtime.ToNumber(c, args[0])
			if err != nil {
				return runtime.Undefined, err
			}
		}
		return c.newWrapper(np, "Number", runtime.Num(n)), nil
	}
	c.finishWrapperCtor(ctor, np, "Number")
}

func (c *Context) installStringBuiltin() {
	sp := c.stringProto

	c.defineMethod(sp, "toString", 0, func(h runtime.Host, this runtime.Value, args []runtime.Value) (runtime.Value, error) {
		return c.primitiveOf(this, "String")
	})
	c.defineMethod(sp, "valueOf", 0, func(h runtime.Host, this runtime.Value, args []runtime.Value) (runtime.Value, error) {
		return c.primitiveOf(this, "String")
	})

	c.defineMethod(sp, "charAt", 1, func(h runtime.Host, this runtime.Value, args []runtime.Value) (runtime.Value, error) {
		s, err := c.stringReceiver(this)
		if err != nil {
			return runtime.Undefined, err
		}
		n, err := runtime.ToNumber(c, argOr(args, 0))
		if err != nil {
			return runtime.Undefined, err
		}
		runes := []rune(s)
		idx := int(n)
		if n != n || idx < 0 || idx >= len(runes) {
			return runtime.Str(""), nil
		}
		return runtime.Str(string(runes[idx])), nil
	})

	c.defineMethod(sp, "charCodeAt", 1, func(h runtime.Host, this runtime.Value, args []runtime.Value) (runtime.Value, error) {
		s, err := c.stringReceiver(this)
		if err != nil {
			return runtime.Undefined, err
		}
		n, err := runtime.ToNumber(c, argOr(args, 0))
		if err != nil {
			return runtime.Undefined, err
		}
		runes := []rune(s)
		idx := int(n)
		if n != n || idx < 0 || idx >= len(runes) {
			return runtime.Num(math.NaN()), nil
		}
		return runtime.Num(float64(runes[idx])), nil
	})

	c.defineMethod(sp, "indexOf", 1, func(h runtime.Host, this runtime.Value, args []runtime.Value) (runtime.Value, error) {
		s, err := c.stringReceiver(this)
		if err != nil {
			return runtime.Undefined, err
		}
		needle, err := runtime.ToString(c, argOr(args, 0))
		if err != nil {
			return runtime.Undefined, err
		}
		return runtime.Num(float64(strings.Index(s, needle))), nil
	})

	c.defineMethod(sp, "substring", 2, func(h runtime.Host, this runtime.Value, args []runtime.Value) (runtime.Value, error) {
		s, err := c.stringReceiver(this)
		if err != nil {
			return runtime.Undefined, err
		}
		runes := []rune(s)
		start := clampIndex(c, argOr(args, 0), 0, len(runes))
		end := len(runes)
		if len(args) > 1 {
			if _, isUndef := args[1].(runtime.UndefinedValue); !isUndef {
				end = clampIndex(c, args[1], 0, len(runes))
			}
		}
		if start > end {
			start, end = end, start
		}
		return runtime.Str(string(runes[start:end])), nil
	})

	c.defineMethod(sp, "split", 2, func(h runtime.Host, this runtime.Value, args []runtime.Value) (runtime.Value, error) {
		s, err := c.stringReceiver(this)
		if err != nil {
			return runtime.Undefined, err
		}
		if len(args) == 0 {
			return runtime.Obj(c.newArray([]runtime.Value{runtime.Str(s)})), nil
		}
		sep, err := runtime.ToString(c, args[0])
		if err != nil {
			return runtime.Undefined, err
		}
		parts := strings.Split(s, sep)
		elems := make([]runtime.Value, len(parts))
		for i, p := range parts {
			elems[i] = runtime.Str(p)
		}
		return runtime.Obj(c.newArray(elems)), nil
	})

	ctor := c.newNativeFunction("String", func(h runtime.Host, this runtime.Value, args []runtime.Value) (runtime.Value, error) {
		if len(args) == 0 {
			return runtime.Str(""), nil
		}
		s, err := runtime.ToString(c, args[0])
		if err != nil {
			return runtime.Undefined, err
		}
		return runtime.Str(s), nil
	}, 1)
	ctor.Construct = func(h runtime.Host, args []runtime.Value) (runtime.Value, error) {
		s := ""
		if len(args) > 0 {
			var err error
			s, err = runtime.ToString(c, args[0])
			if err != nil {
				return runtime.Undefined, err
			}
		}
		obj, err := runtime.ToObject(c, runtime.Str(s))
		if err != nil {
			return runtime.Undefined, err
		}
		return runtime.Obj(obj), nil
	}
	c.finishWrapperCtor(ctor, sp, "String")
}

func (c *Context) stringReceiver(this runtime.Value) (string, error) {
	v, err := c.primitiveOf(this, "String")
	if err != nil {
		return "", err
	}
	return runtime.ToString(c, v)
}

func (c *Context) newWrapper(proto *runtime.Object, class string, prim runtime.Value) runtime.Value {
	o := runtime.NewObject(proto, class)
	c.arena.Record(64)
	o.PrimitiveValue = prim
	return runtime.Obj(o)
}

func (c *Context) finishWrapperCtor(ctor *runtime.Object, proto *runtime.Object, name string) {
	ctor.DefineOwnData("prototype", runtime.Obj(proto), false, false, false)
	proto.DefineOwnData("constructor", runtime.Obj(ctor), true, false, true)
	c.global.DefineOwnData(name, runtime.Obj(ctor), true, false, true)
}

func clampIndex(c *Context, v runtime.Value, lo, hi int) int {
	n, err := runtime.ToNumber(c, v)
	if err != nil || n != n {
		return lo
	}
	i := int(n)
	if i < lo {
		return lo
	}
	if i > hi {
		return hi
	}
	return i
}
