package interp

import (
	jsonlib "github.com/cwbudde/go-es5/internal/builtins/json"
	"github.com/cwbudde/go-es5/internal/runtime"
)

// installJSONObject wires the JSON namespace object with parse/stringify
// backed by internal/builtins/json (gjson for reads, sjson for
// insertion-ordered writes).
func (c *Context) installJSONObject() {
	j := runtime.NewObject(c.objectProto, "JSON")

	builder := &jsonlib.Builder{
		Host: c,
		NewObject: func() *runtime.Object {
			o := runtime.NewObject(c.objectProto, "Object")
			c.arena.Record(64)
			return o
		},
		NewArray: c.newArray,
	}

	c.defineMethod(j, "parse", 1, func(h runtime.Host, this runtime.Value, args []runtime.Value) (runtime.Value, error) {
		text, err := runtime.ToString(c, argOr(args, 0))
		if err != nil {
			return runtime.Undefined, err
		}
		return builder.Parse(text)
	})

	c.defineMethod(j, "stringify", 1, func(h runtime.Host, this runtime.Value, args []runtime.Value) (runtime.Value, error) {
		out, ok, err := jsonlib.Stringify(c, argOr(args, 0))
		if err != nil {
			return runtime.Undefined, err
		}
		if !ok {
			return runtime.Undefined, nil
		}
		return runtime.Str(out), nil
	})

	c.global.DefineOwnData("JSON", runtime.Obj(j), true, false, true)
}
