package interp

import (
	"github.com/cwbudde/go-es5/internal/runtime"
)

// installFunctionProto fills in Function.prototype's call/apply/toString
// (15.3.4) and the Function constructor object. Compiling new function
// bodies from strings is not part of the core surface, so the constructor
// exists for identity and prototype wiring but rejects invocation.
func (c *Context) installFunctionProto() {
	fp := c.functionProto

	c.defineMethod(fp, "toString", 0, func(h runtime.Host, this runtime.Value, args []runtime.Value) (runtime.Value, error) {
		fn := runtime.AsObject(this)
		if fn == nil || fn.Function == nil {
			return runtime.Undefined, runtime.ThrowTypeError(c, "Function.prototype.toString requires a function receiver")
		}
		name := fn.Function.Name
		if fn.Function.IsNative {
			return runtime.Str("function " + name + "() { [native code] }"), nil
		}
		return runtime.Str("function " + name + "() { [source code] }"), nil
	})

	c.defineMethod(fp, "call", 1, func(h runtime.Host, this runtime.Value, args []runtime.Value) (runtime.Value, error) {
		fn := runtime.AsObject(this)
		if fn == nil || fn.Call == nil {
			return runtime.Undefined, runtime.ThrowTypeError(c, "Function.prototype.call requires a function receiver")
		}
		var thisArg runtime.Value = runtime.Undefined
		if len(args) > 0 {
			thisArg = args[0]
		}
		var rest []runtime.Value
		if len(args) > 1 {
			rest = args[1:]
		}
		return fn.Call(c, thisArg, rest)
	})

	c.defineMethod(fp, "apply", 2, func(h runtime.Host, this runtime.Value, args []runtime.Value) (runtime.Value, error) {
		fn := runtime.AsObject(this)
		if fn == nil || fn.Call == nil {
			return runtime.Undefined, runtime.ThrowTypeError(c, "Function.prototype.apply requires a function receiver")
		}
		var thisArg runtime.Value = runtime.Undefined
		if len(args) > 0 {
			thisArg = args[0]
		}
		var callArgs []runtime.Value
		if len(args) > 1 {
			switch av := args[1].(type) {
			case runtime.UndefinedValue, runtime.NullValue:
			case runtime.ObjectValue:
				lengthVal, err := av.Object.Get(c, "length")
				if err != nil {
					return runtime.Undefined, err
				}
				n, err := runtime.ToUInt32(c, lengthVal)
				if err != nil {
					return runtime.Undefined, err
				}
				for i := uint32(0); i < n; i++ {
					elem, err := av.Object.Get(c, itoa(int(i)))
					if err != nil {
						return runtime.Undefined, err
					}
					callArgs = append(callArgs, elem)
				}
			default:
				return runtime.Undefined, runtime.ThrowTypeError(c, "Function.prototype.apply: arguments list must be an object")
			}
		}
		return fn.Call(c, thisArg, callArgs)
	})

	functionCtor := c.newNativeFunction("Function", func(h runtime.Host, this runtime.Value, args []runtime.Value) (runtime.Value, error) {
		return runtime.Undefined, runtime.ThrowTypeError(c, "the Function constructor is not supported")
	}, 1)
	functionCtor.DefineOwnData("prototype", runtime.Obj(fp), false, false, false)
	fp.DefineOwnData("constructor", runtime.Obj(functionCtor), true, false, true)
	fp.DefineOwnData("length", runtime.Num(0), false, false, false)
	c.global.DefineOwnData("Function", runtime.Obj(functionCtor), true, false, true)
}
