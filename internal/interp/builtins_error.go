package interp

import (
	"github.com/cwbudde/go-es5/internal/runtime"
)

// errorKinds is the builtin error hierarchy the core produces or that
// eval re-parsing can surface. RangeError is installed even
// though the core never raises it, so native-function implementors have
// the full set.
var errorKinds = []string{"Error", "TypeError", "ReferenceError", "SyntaxError", "RangeError"}

// installErrorBuiltins wires Error and its subkinds: each constructor has
// a prototype carrying `name`, an empty `message`, and toString; subkind
// prototypes chain to Error.prototype (15.11).
func (c *Context) installErrorBuiltins() {
	errorProto := runtime.NewObject(c.objectProto, "Error")
	c.errorProtos["Error"] = errorProto
	errorProto.DefineOwnData("name", runtime.Str("Error"), true, false, true)
	errorProto.DefineOwnData("message", runtime.Str(""), true, false, true)

	c.defineMethod(errorProto, "toString", 0, func(h runtime.Host, this runtime.Value, args []runtime.Value) (runtime.Value, error) {
		obj := runtime.AsObject(this)
		if obj == nil {
			return runtime.Undefined, runtime.ThrowTypeError(c, "Error.prototype.toString requires an object receiver")
		}
		nameVal, err := obj.Get(c, "name")
		if err != nil {
			return runtime.Undefined, err
		}
		name := "Error"
		if _, isUndef := nameVal.(runtime.UndefinedValue); !isUndef {
			name, err = runtime.ToString(c, nameVal)
			if err != nil {
				return runtime.Undefined, err
			}
		}
		msgVal, err := obj.Get(c, "message")
		if err != nil {
			return runtime.Undefined, err
		}
		msg := ""
		if _, isUndef := msgVal.(runtime.UndefinedValue); !isUndef {
			msg, err = runtime.ToString(c, msgVal)
			if err != nil {
				return runtime.Undefined, err
			}
		}
		switch {
		case name == "":
			return runtime.Str(msg), nil
		case msg == "":
			return runtime.Str(name), nil
		default:
			return runtime.Str(name + ": " + msg), nil
		}
	})

	for _, kind := range errorKinds {
		kind := kind
		proto := errorProto
		if kind != "Error" {
			proto = runtime.NewObject(errorProto, "Error")
			proto.DefineOwnData("name", runtime.Str(kind), true, false, true)
			proto.DefineOwnData("message", runtime.Str(""), true, false, true)
			c.errorProtos[kind] = proto
		}

		construct := func(args []runtime.Value) (runtime.Value, error) {
			o := runtime.NewObject(proto, "Error")
			c.arena.Record(64)
			if len(args) > 0 {
				if _, isUndef := args[0].(runtime.UndefinedValue); !isUndef {
					msg, err := runtime.ToString(c, args[0])
					if err != nil {
						return runtime.Undefined, err
					}
					o.DefineOwnData("message", runtime.Str(msg), true, false, true)
				}
			}
			return runtime.Obj(o), nil
		}

		ctor := c.newNativeFunction(kind, func(h runtime.Host, this runtime.Value, args []runtime.Value) (runtime.Value, error) {
			// Calling an error constructor as a function behaves like new
			// (15.11.1).
			return construct(args)
		}, 1)
		ctor.Construct = func(h runtime.Host, args []runtime.Value) (runtime.Value, error) {
			return construct(args)
		}
		ctor.DefineOwnData("prototype", runtime.Obj(proto), false, false, false)
		proto.DefineOwnData("constructor", runtime.Obj(ctor), true, false, true)
		c.global.DefineOwnData(kind, runtime.Obj(ctor), true, false, true)
	}
}
