package interp

import (
	"github.com/cwbudde/go-es5/internal/runtime"
)

// installObjectProto fills in Object.prototype (15.2.4) and the Object
// constructor (15.2.1/15.2.2).
func (c *Context) installObjectProto() {
	op := c.objectProto

	c.defineMethod(op, "toString", 0, func(h runtime.Host, this runtime.Value, args []runtime.Value) (runtime.Value, error) {
		switch this.(type) {
		case runtime.UndefinedValue:
			return runtime.Str("[object Undefined]"), nil
		case runtime.NullValue:
			return runtime.Str("[object Null]"), nil
		}
		obj, err := runtime.ToObject(c, this)
		if err != nil {
			return runtime.Undefined, err
		}
		return runtime.Str("[object " + obj.Class + "]"), nil
	})

	c.defineMethod(op, "toLocaleString", 0, func(h runtime.Host, this runtime.Value, args []runtime.Value) (runtime.Value, error) {
		obj, err := runtime.ToObject(c, this)
		if err != nil {
			return runtime.Undefined, err
		}
		fnVal, err := obj.Get(c, "toString")
		if err != nil {
			return runtime.Undefined, err
		}
		fn := runtime.AsObject(fnVal)
		if fn == nil || fn.Call == nil {
			return runtime.Undefined, runtime.ThrowTypeError(c, "toString is not callable")
		}
		return fn.Call(c, this, nil)
	})

	c.defineMethod(op, "valueOf", 0, func(h runtime.Host, this runtime.Value, args []runtime.Value) (runtime.Value, error) {
		obj, err := runtime.ToObject(c, this)
		if err != nil {
			return runtime.Undefined, err
		}
		return runtime.Obj(obj), nil
	})

	c.defineMethod(op, "hasOwnProperty", 1, func(h runtime.Host, this runtime.Value, args []runtime.Value) (runtime.Value, error) {
		name, err := runtime.ToString(c, argOr(args, 0))
		if err != nil {
			return runtime.Undefined, err
		}
		obj, err := runtime.ToObject(c, this)
		if err != nil {
			return runtime.Undefined, err
		}
		return runtime.Bool(obj.GetOwnProperty(name) != nil), nil
	})

	c.defineMethod(op, "isPrototypeOf", 1, func(h runtime.Host, this runtime.Value, args []runtime.Value) (runtime.Value, error) {
		candidate := runtime.AsObject(argOr(args, 0))
		if candidate == nil {
			return runtime.Bool(false), nil
		}
		obj, err := runtime.ToObject(c, this)
		if err != nil {
			return runtime.Undefined, err
		}
		for cur := candidate.Prototype; cur != nil; cur = cur.Prototype {
			if cur == obj {
				return runtime.Bool(true), nil
			}
		}
		return runtime.Bool(false), nil
	})

	c.defineMethod(op, "propertyIsEnumerable", 1, func(h runtime.Host, this runtime.Value, args []runtime.Value) (runtime.Value, error) {
		name, err := runtime.ToString(c, argOr(args, 0))
		if err != nil {
			return runtime.Undefined, err
		}
		obj, err := runtime.ToObject(c, this)
		if err != nil {
			return runtime.Undefined, err
		}
		d := obj.GetOwnProperty(name)
		return runtime.Bool(d != nil && d.Enumerable.Bool(false)), nil
	})

	// The Object constructor: as a function and via `new` it boxes its
	// argument, or makes a fresh empty object for undefined/null (15.2.1).
	objectCtor := c.newNativeFunction("Object", func(h runtime.Host, this runtime.Value, args []runtime.Value) (runtime.Value, error) {
		return c.objectFrom(argOr(args, 0))
	}, 1)
	objectCtor.Construct = func(h runtime.Host, args []runtime.Value) (runtime.Value, error) {
		return c.objectFrom(argOr(args, 0))
	}
	objectCtor.DefineOwnData("prototype", runtime.Obj(op), false, false, false)
	op.DefineOwnData("constructor", runtime.Obj(objectCtor), true, false, true)
	c.global.DefineOwnData("Object", runtime.Obj(objectCtor), true, false, true)
}

func (c *Context) objectFrom(v runtime.Value) (runtime.Value, error) {
	switch v.(type) {
	case runtime.UndefinedValue, runtime.NullValue:
		o := runtime.NewObject(c.objectProto, "Object")
		c.arena.Record(64)
		return runtime.Obj(o), nil
	}
	obj, err := runtime.ToObject(c, v)
	if err != nil {
		return runtime.Undefined, err
	}
	return runtime.Obj(obj), nil
}

// defineMethod registers a native method as a non-enumerable property,
// the attribute shape every 15.x prototype method uses.
func (c *Context) defineMethod(on *runtime.Object, name string, arity int, fn runtime.NativeFunc) {
	on.DefineOwnData(name, runtime.Obj(c.newNativeFunction(name, fn, arity)), true, false, true)
}
