package interp

import (
	"strconv"
	"strings"

	"github.com/cwbudde/go-es5/internal/runtime"
)

func itoa(i int) string { return strconv.Itoa(i) }

// newArray allocates an Array-class object with the given initial
// elements. Array length here is maintained cooperatively by the literal
// evaluator and the Array.prototype mutators rather than by an exotic
// [[DefineOwnProperty]]; the full auto-updating length semantics belong
// to the builtin library outside the core.
func (c *Context) newArray(elems []runtime.Value) *runtime.Object {
	arr := runtime.NewObject(c.arrayProto, "Array")
	c.arena.Record(64)
	for i, v := range elems {
		arr.DefineOwnData(itoa(i), v, true, true, true)
	}
	c.setArrayLength(arr, len(elems))
	return arr
}

func (c *Context) setArrayLength(arr *runtime.Object, n int) {
	arr.DefineOwnData("length", runtime.Num(float64(n)), true, false, false)
}

func (c *Context) arrayLength(arr *runtime.Object) (int, error) {
	lv, err := arr.Get(c, "length")
	if err != nil {
		return 0, err
	}
	n, err := runtime.ToUInt32(c, lv)
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// installArrayBuiltins wires the Array constructor and the
// Array.prototype methods the evaluator's own surface needs (join for
// ToString, push/pop for the common eval workloads).
func (c *Context) installArrayBuiltins() {
	ap := c.arrayProto

	c.defineMethod(ap, "push", 1, func(h runtime.Host, this runtime.Value, args []runtime.Value) (runtime.Value, error) {
		arr, err := runtime.ToObject(c, this)
		if err != nil {
			return runtime.Undefined, err
		}
		n, err := c.arrayLength(arr)
		if err != nil {
			return runtime.Undefined, err
		}
		for _, v := range args {
			if err := arr.Put(c, itoa(n), v, false); err != nil {
				return runtime.Undefined, err
			}
			n++
		}
		if err := arr.Put(c, "length", runtime.Num(float64(n)), false); err != nil {
			return runtime.Undefined, err
		}
		return runtime.Num(float64(n)), nil
	})

	c.defineMethod(ap, "pop", 0, func(h runtime.Host, this runtime.Value, args []runtime.Value) (runtime.Value, error) {
		arr, err := runtime.ToObject(c, this)
		if err != nil {
			return runtime.Undefined, err
		}
		n, err := c.arrayLength(arr)
		if err != nil {
			return runtime.Undefined, err
		}
		if n == 0 {
			if err := arr.Put(c, "length", runtime.Num(0), false); err != nil {
				return runtime.Undefined, err
			}
			return runtime.Undefined, nil
		}
		last := itoa(n - 1)
		v, err := arr.Get(c, last)
		if err != nil {
			return runtime.Undefined, err
		}
		if _, err := arr.Delete(c, last, false); err != nil {
			return runtime.Undefined, err
		}
		if err := arr.Put(c, "length", runtime.Num(float64(n-1)), false); err != nil {
			return runtime.Undefined, err
		}
		return v, nil
	})

	c.defineMethod(ap, "join", 1, func(h runtime.Host, this runtime.Value, args []runtime.Value) (runtime.Value, error) {
		return c.arrayJoin(this, args)
	})

	// Array.prototype.toString delegates to join with the default
	// separator (15.4.4.2).
	c.defineMethod(ap, "toString", 0, func(h runtime.Host, this runtime.Value, args []runtime.Value) (runtime.Value, error) {
		return c.arrayJoin(this, nil)
	})

	c.defineMethod(ap, "indexOf", 1, func(h runtime.Host, this runtime.Value, args []runtime.Value) (runtime.Value, error) {
		arr, err := runtime.ToObject(c, this)
		if err != nil {
			return runtime.Undefined, err
		}
		n, err := c.arrayLength(arr)
		if err != nil {
			return runtime.Undefined, err
		}
		target := argOr(args, 0)
		for i := 0; i < n; i++ {
			v, err := arr.Get(c, itoa(i))
			if err != nil {
				return runtime.Undefined, err
			}
			if runtime.StrictEqual(v, target) {
				return runtime.Num(float64(i)), nil
			}
		}
		return runtime.Num(-1), nil
	})

	c.defineMethod(ap, "slice", 2, func(h runtime.Host, this runtime.Value, args []runtime.Value) (runtime.Value, error) {
		arr, err := runtime.ToObject(c, this)
		if err != nil {
			return runtime.Undefined, err
		}
		n, err := c.arrayLength(arr)
		if err != nil {
			return runtime.Undefined, err
		}
		start := relativeIndex(c, argOr(args, 0), n, 0)
		end := n
		if len(args) > 1 {
			if _, isUndef := args[1].(runtime.UndefinedValue); !isUndef {
				end = relativeIndex(c, args[1], n, n)
			}
		}
		var out []runtime.Value
		for i := start; i < end; i++ {
			v, err := arr.Get(c, itoa(i))
			if err != nil {
				return runtime.Undefined, err
			}
			out = append(out, v)
		}
		return runtime.Obj(c.newArray(out)), nil
	})

	arrayCtor := c.newNativeFunction("Array", func(h runtime.Host, this runtime.Value, args []runtime.Value) (runtime.Value, error) {
		return c.constructArray(args)
	}, 1)
	arrayCtor.Construct = func(h runtime.Host, args []runtime.Value) (runtime.Value, error) {
		return c.constructArray(args)
	}
	c.defineMethod(arrayCtor, "isArray", 1, func(h runtime.Host, this runtime.Value, args []runtime.Value) (runtime.Value, error) {
		obj := runtime.AsObject(argOr(args, 0))
		return runtime.Bool(obj != nil && obj.Class == "Array"), nil
	})
	arrayCtor.DefineOwnData("prototype", runtime.Obj(ap), false, false, false)
	ap.DefineOwnData("constructor", runtime.Obj(arrayCtor), true, false, true)
	c.global.DefineOwnData("Array", runtime.Obj(arrayCtor), true, false, true)
}

// constructArray implements 15.4.2: a single numeric argument sets the
// length, anything else becomes the element list.
func (c *Context) constructArray(args []runtime.Value) (runtime.Value, error) {
	if len(args) == 1 {
		if n, ok := args[0].(runtime.NumberValue); ok {
			u, err := runtime.ToUInt32(c, n)
			if err != nil {
				return runtime.Undefined, err
			}
			if float64(u) != float64(n) {
				return runtime.Undefined, runtime.Throw(c.NewError("RangeError", "invalid array length"))
			}
			arr := c.newArray(nil)
			c.setArrayLength(arr, int(u))
			return runtime.Obj(arr), nil
		}
	}
	return runtime.Obj(c.newArray(args)), nil
}

func (c *Context) arrayJoin(this runtime.Value, args []runtime.Value) (runtime.Value, error) {
	arr, err := runtime.ToObject(c, this)
	if err != nil {
		return runtime.Undefined, err
	}
	n, err := c.arrayLength(arr)
	if err != nil {
		return runtime.Undefined, err
	}
	sep := ","
	if len(args) > 0 {
		if _, isUndef := args[0].(runtime.UndefinedValue); !isUndef {
			sep, err = runtime.ToString(c, args[0])
			if err != nil {
				return runtime.Undefined, err
			}
		}
	}
	var sb strings.Builder
	for i := 0; i < n; i++ {
		if i > 0 {
			sb.WriteString(sep)
		}
		v, err := arr.Get(c, itoa(i))
		if err != nil {
			return runtime.Undefined, err
		}
		switch v.(type) {
		case runtime.UndefinedValue, runtime.NullValue:
			continue
		}
		s, err := runtime.ToString(c, v)
		if err != nil {
			return runtime.Undefined, err
		}
		sb.WriteString(s)
	}
	return runtime.Str(sb.String()), nil
}

func relativeIndex(c *Context, v runtime.Value, length, absentDefault int) int {
	if _, isUndef := v.(runtime.UndefinedValue); isUndef {
		return absentDefault
	}
	n, err := runtime.ToNumber(c, v)
	if err != nil || n != n {
		return 0
	}
	i := int(n)
	if i < 0 {
		i += length
		if i < 0 {
			return 0
		}
	}
	if i > length {
		return length
	}
	return i
}
