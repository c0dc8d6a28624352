package interp

import (
	"strconv"

	"github.com/cwbudde/go-es5/internal/ast"
	"github.com/cwbudde/go-es5/internal/runtime"
)

// newNativeFunction builds the native function-object variant: a Go function plus arity, with [[Call]], a default [[Construct]],
// and the shared [[HasInstance]].
func (c *Context) newNativeFunction(name string, fn runtime.NativeFunc, arity int) *runtime.Object {
	o := runtime.NewObject(c.functionProto, "Function")
	o.Function = &runtime.FunctionData{Name: name, Length: arity, IsNative: true, Native: fn}
	o.DefineOwnData("length", runtime.Num(float64(arity)), false, false, false)

	o.Call = func(h runtime.Host, this runtime.Value, args []runtime.Value) (runtime.Value, error) {
		return fn(h, this, args)
	}
	o.Construct = func(h runtime.Host, args []runtime.Value) (runtime.Value, error) {
		return c.defaultConstruct(o, args)
	}
	o.HasInstance = func(h runtime.Host, v runtime.Value) (bool, error) {
		return c.ordinaryHasInstance(o, v)
	}
	return o
}

// newCodeFunction builds the code function-object variant (13.2): the
// function literal, the captured lexical environment, and the strict
// flag, plus a fresh `prototype` object with a back-pointing constructor
// property.
func (c *Context) newCodeFunction(fl *ast.FunctionLiteral, scopeEnv *runtime.Env) *runtime.Object {
	o := runtime.NewObject(c.functionProto, "Function")
	o.Function = &runtime.FunctionData{
		Name:        fl.Name,
		Length:      len(fl.Params),
		CodeAST:     fl,
		CapturedEnv: scopeEnv,
		Strict:      fl.Strict,
		IsExprName:  fl.IsExpr && fl.Name != "",
	}
	o.DefineOwnData("length", runtime.Num(float64(len(fl.Params))), false, false, false)

	proto := runtime.NewObject(c.objectProto, "Object")
	proto.DefineOwnData("constructor", runtime.Obj(o), true, false, true)
	o.DefineOwnData("prototype", runtime.Obj(proto), true, false, false)

	o.Call = func(h runtime.Host, this runtime.Value, args []runtime.Value) (runtime.Value, error) {
		return c.callCodeFunction(o, this, args)
	}
	o.Construct = func(h runtime.Host, args []runtime.Value) (runtime.Value, error) {
		return c.defaultConstruct(o, args)
	}
	o.HasInstance = func(h runtime.Host, v runtime.Value) (bool, error) {
		return c.ordinaryHasInstance(o, v)
	}
	return o
}

// callCodeFunction implements [[Call]] for code functions.
func (c *Context) callCodeFunction(fn *runtime.Object, this runtime.Value, args []runtime.Value) (runtime.Value, error) {
	fd := fn.Function
	fl := fd.CodeAST.(*ast.FunctionLiteral)

	// Step 1: determine `this`.
	thisVal, err := c.resolveThis(this, fd.Strict)
	if err != nil {
		return runtime.Undefined, err
	}

	// Step 2: fresh declarative environment over the captured env.
	env := runtime.NewDeclarativeEnv(fd.CapturedEnv)
	c.arena.Record(64)

	var result runtime.Value = runtime.Undefined
	comp := c.withFrame(env, env, thisVal, fd.Strict, func() Completion {
		// Declaration binding instantiation, in 10.5's order: formals and
		// nested function declarations, then the arguments object (which a
		// mere `var arguments;` must not suppress), then hoisted vars.
		if err := c.bindParamsAndFunctions(fl.Scope, fl.Params, args, false, fd.Strict); err != nil {
			return throwToCompletion(err)
		}
		if err := c.bindArgumentsObject(env, fn, fl.Params, args, fd.Strict); err != nil {
			return throwToCompletion(err)
		}
		if err := c.bindVarDeclarations(fl.Scope, false, fd.Strict); err != nil {
			return throwToCompletion(err)
		}
		if fd.IsExprName && !env.HasBinding(fd.Name) {
			env.CreateImmutableBinding(fd.Name)
			env.InitializeImmutableBinding(fd.Name, runtime.Obj(fn))
		}

		// Step 9: execute the body.
		return c.evalStatements(fl.Body)
	})

	switch comp.Mode {
	case CompletionReturn:
		if comp.Value != nil {
			result = comp.Value
		}
		return result, nil
	case CompletionThrow:
		return runtime.Undefined, runtime.Throw(comp.Value)
	case CompletionNormal:
		return runtime.Undefined, nil
	default:
		// break/continue escaping a function body is a caller bug the
		// parser's target resolution prevents.
		return runtime.Undefined, runtime.ThrowTypeError(c, "illegal "+comp.Mode.String()+" completion escaping a function body")
	}
}

// resolveThis implements 10.4.3's entry steps: strict code receives `this`
// unchanged; sloppy code substitutes the global object for
// undefined/null and boxes a primitive receiver.
func (c *Context) resolveThis(this runtime.Value, strict bool) (runtime.Value, error) {
	if strict {
		return this, nil
	}
	switch this.(type) {
	case runtime.UndefinedValue, runtime.NullValue:
		return runtime.Obj(c.global), nil
	case runtime.ObjectValue:
		return this, nil
	default:
		boxed, err := runtime.ToObject(c, this)
		if err != nil {
			return runtime.Undefined, err
		}
		return runtime.Obj(boxed), nil
	}
}

// bindParamsAndFunctions runs Declaration Binding Instantiation's formal
// parameter and function declaration steps (10.5 steps 4 and 5) against
// the current variable environment. configurableBindings is true only for
// direct-eval code.
func (c *Context) bindParamsAndFunctions(scope *ast.Scope, params []string, args []runtime.Value, configurableBindings, strict bool) error {
	env := c.variableEnv

	// Formals, in order; later duplicates overwrite earlier ones.
	for i, name := range params {
		c.Intern(name)
		if !env.HasBinding(name) {
			if err := env.CreateMutableBinding(c, name, configurableBindings); err != nil {
				return err
			}
		}
		var v runtime.Value = runtime.Undefined
		if i < len(args) {
			v = args[i]
		}
		if err := env.SetMutableBinding(c, name, v, strict); err != nil {
			return err
		}
	}

	// Nested function declarations, in source order.
	if scope != nil {
		for _, fl := range scope.FunctionDeclarations {
			c.Intern(fl.Name)
			fnObj := c.newCodeFunction(fl, c.lexicalEnv)
			if !env.HasBinding(fl.Name) {
				if err := env.CreateMutableBinding(c, fl.Name, configurableBindings); err != nil {
					return err
				}
			}
			if err := env.SetMutableBinding(c, fl.Name, runtime.Obj(fnObj), strict); err != nil {
				return err
			}
		}
	}
	return nil
}

// bindVarDeclarations runs the hoisted-var step (10.5 step 8): each var
// initializes to undefined only when its name is still unbound, so a
// parameter, function declaration, or the arguments object of the same
// name survives.
func (c *Context) bindVarDeclarations(scope *ast.Scope, configurableBindings, strict bool) error {
	if scope == nil {
		return nil
	}
	env := c.variableEnv
	for _, name := range scope.VarDeclared {
		c.Intern(name)
		if !env.HasBinding(name) {
			if err := env.CreateMutableBinding(c, name, configurableBindings); err != nil {
				return err
			}
			if err := env.SetMutableBinding(c, name, runtime.Undefined, strict); err != nil {
				return err
			}
		}
	}
	return nil
}

// bindArgumentsObject implements 10.5 step 7: construct an `arguments`
// object reflecting the actual arguments unless the frame already binds
// that name, with an immutable binding in strict code.
func (c *Context) bindArgumentsObject(env *runtime.Env, fn *runtime.Object, params []string, args []runtime.Value, strict bool) error {
	if env.HasBinding("arguments") {
		return nil
	}
	argsObj := c.newArgumentsObject(env, fn, params, args, strict)
	if strict {
		env.CreateImmutableBinding("arguments")
		env.InitializeImmutableBinding("arguments", runtime.Obj(argsObj))
		return nil
	}
	if err := env.CreateMutableBinding(c, "arguments", false); err != nil {
		return err
	}
	return env.SetMutableBinding(c, "arguments", runtime.Obj(argsObj), false)
}

// newArgumentsObject builds the arguments object (10.6). In non-strict
// code each index below the formal count aliases the corresponding
// parameter binding: reads and writes go through accessor properties
// closed over the call frame, which is the parameter-map contract
// expressed with the ordinary property machinery.
func (c *Context) newArgumentsObject(env *runtime.Env, fn *runtime.Object, params []string, args []runtime.Value, strict bool) *runtime.Object {
	o := runtime.NewObject(c.objectProto, "Arguments")
	o.DefineOwnData("length", runtime.Num(float64(len(args))), true, false, true)

	mapped := map[string]string{}
	for i, arg := range args {
		name := strconv.Itoa(i)
		if !strict && i < len(params) {
			param := params[i]
			mapped[name] = param
			getter := c.newNativeFunction("", func(h runtime.Host, this runtime.Value, _ []runtime.Value) (runtime.Value, error) {
				return env.GetBindingValue(c, param, false)
			}, 0)
			setter := c.newNativeFunction("", func(h runtime.Host, this runtime.Value, a []runtime.Value) (runtime.Value, error) {
				v := runtime.Value(runtime.Undefined)
				if len(a) > 0 {
					v = a[0]
				}
				return runtime.Undefined, env.SetMutableBinding(c, param, v, false)
			}, 1)
			o.DefineOwnProperty(c, name, runtime.NewAccessorDescriptor(runtime.Obj(getter), runtime.Obj(setter), true, true), false)
			continue
		}
		o.DefineOwnData(name, arg, true, true, true)
	}
	o.ParameterMap = mapped
	o.ParamEnv = env

	if strict {
		thrower := c.newNativeFunction("ThrowTypeError", func(h runtime.Host, this runtime.Value, _ []runtime.Value) (runtime.Value, error) {
			return runtime.Undefined, runtime.ThrowTypeError(c, "'caller' and 'callee' may not be accessed in strict mode")
		}, 0)
		poison := runtime.NewAccessorDescriptor(runtime.Obj(thrower), runtime.Obj(thrower), false, false)
		o.DefineOwnProperty(c, "callee", poison, false)
		o.DefineOwnProperty(c, "caller", poison, false)
	} else {
		o.DefineOwnData("callee", runtime.Obj(fn), true, false, true)
	}
	return o
}

// defaultConstruct implements [[Construct]] (13.2.2):
// allocate an object whose prototype is the callee's `prototype` property
// when that is an object, invoke [[Call]] with it as `this`, and keep the
// returned value only when it is itself an object.
func (c *Context) defaultConstruct(fn *runtime.Object, args []runtime.Value) (runtime.Value, error) {
	protoVal, err := fn.Get(c, "prototype")
	if err != nil {
		return runtime.Undefined, err
	}
	proto := runtime.AsObject(protoVal)
	if proto == nil {
		proto = c.objectProto
	}
	obj := runtime.NewObject(proto, "Object")
	c.arena.Record(64)

	result, err := fn.Call(c, runtime.Obj(obj), args)
	if err != nil {
		return runtime.Undefined, err
	}
	if ro := runtime.AsObject(result); ro != nil {
		return result, nil
	}
	return runtime.Obj(obj), nil
}

// ordinaryHasInstance implements [[HasInstance]] (15.3.5.3): walk the
// candidate's prototype chain looking for the function's `prototype`
// property.
func (c *Context) ordinaryHasInstance(fn *runtime.Object, v runtime.Value) (bool, error) {
	obj := runtime.AsObject(v)
	if obj == nil {
		return false, nil
	}
	protoVal, err := fn.Get(c, "prototype")
	if err != nil {
		return false, err
	}
	proto := runtime.AsObject(protoVal)
	if proto == nil {
		return false, runtime.ThrowTypeError(c, "function has non-object prototype in instanceof check")
	}
	for cur := obj.Prototype; cur != nil; cur = cur.Prototype {
		if cur == proto {
			return true, nil
		}
	}
	return false, nil
}
