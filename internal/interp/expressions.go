package interp

import (
	"math"

	"github.com/cwbudde/go-es5/internal/ast"
	"github.com/cwbudde/go-es5/internal/runtime"
)

// evalExpression evaluates an expression to a runtime.Value which may be
// a ReferenceValue; only evalAndGetValue and the reference-consuming
// operators (assignment, delete, typeof, ++/--, call) ever see one, so a
// Reference never leaks past GetValue/PutValue.
func (c *Context) evalExpression(expr ast.Expression) (runtime.Value, error) {
	switch e := expr.(type) {
	case *ast.Identifier:
		return runtime.ReferenceValue{Ref: c.identifierReference(e.Name)}, nil
	case *ast.NumberLiteral:
		return runtime.Num(e.Value), nil
	case *ast.StringLiteral:
		return runtime.Str(e.Value), nil
	case *ast.BooleanLiteral:
		return runtime.Bool(e.Value), nil
	case *ast.NullLiteral:
		return runtime.Null, nil
	case *ast.ThisExpression:
		if c.thisValue == nil {
			return runtime.Undefined, nil
		}
		return c.thisValue, nil
	case *ast.RegexLiteral:
		return c.evalRegexLiteral(e)
	case *ast.ArrayLiteral:
		return c.evalArrayLiteral(e)
	case *ast.ObjectLiteral:
		return c.evalObjectLiteral(e)
	case *ast.FunctionLiteral:
		return c.evalFunctionLiteral(e)
	case *ast.BinaryExpression:
		return c.evalBinaryExpression(e)
	case *ast.LogicalExpression:
		return c.evalLogicalExpression(e)
	case *ast.UnaryExpression:
		return c.evalUnaryExpression(e)
	case *ast.UpdateExpression:
		return c.evalUpdateExpression(e)
	case *ast.AssignmentExpression:
		return c.evalAssignmentExpression(e)
	case *ast.ConditionalExpression:
		return c.evalConditionalExpression(e)
	case *ast.CallExpression:
		return c.evalCallExpression(e)
	case *ast.NewExpression:
		return c.evalNewExpression(e)
	case *ast.MemberExpression:
		return c.evalMemberExpression(e)
	case *ast.SequenceExpression:
		return c.evalSequenceExpression(e)
	}
	return runtime.Undefined, runtime.ThrowTypeError(c, "unknown expression node")
}

// getValue dereferences a ReferenceValue (8.7.1); plain values pass
// through.
func (c *Context) getValue(v runtime.Value) (runtime.Value, error) {
	if rv, ok := v.(runtime.ReferenceValue); ok {
		return rv.Ref.GetValue(c)
	}
	return v, nil
}

func (c *Context) evalAndGetValue(expr ast.Expression) (runtime.Value, error) {
	v, err := c.evalExpression(expr)
	if err != nil {
		return runtime.Undefined, err
	}
	return c.getValue(v)
}

// identifierReference implements GetIdentifierReference (10.2.2.1): walk
// the lexical environment chain; no binding anywhere yields an
// unresolvable reference.
func (c *Context) identifierReference(name string) *runtime.Reference {
	if env := runtime.ResolveEnv(c.lexicalEnv, name); env != nil {
		return runtime.NewEnvReference(env, name, c.strict)
	}
	return runtime.NewUnresolvableReference(name, c.strict)
}

func (c *Context) evalRegexLiteral(e *ast.RegexLiteral) (runtime.Value, error) {
	o := runtime.NewObject(c.regexpProto, "RegExp")
	o.DefineOwnData("source", runtime.Str(e.Pattern), false, false, false)
	o.DefineOwnData("global", runtime.Bool(containsFlag(e.Flags, 'g')), false, false, false)
	o.DefineOwnData("ignoreCase", runtime.Bool(containsFlag(e.Flags, 'i')), false, false, false)
	o.DefineOwnData("multiline", runtime.Bool(containsFlag(e.Flags, 'm')), false, false, false)
	o.DefineOwnData("lastIndex", runtime.Num(0), true, false, false)
	return runtime.Obj(o), nil
}

func containsFlag(flags string, f byte) bool {
	for i := 0; i < len(flags); i++ {
		if flags[i] == f {
			return true
		}
	}
	return false
}

func (c *Context) evalArrayLiteral(e *ast.ArrayLiteral) (runtime.Value, error) {
	arr := c.newArray(nil)
	length := 0
	for i, elem := range e.Elements {
		length = i + 1
		if elem == nil {
			continue // elision: the slot contributes to length but stays absent
		}
		v, err := c.evalAndGetValue(elem)
		if err != nil {
			return runtime.Undefined, err
		}
		arr.DefineOwnData(itoa(i), v, true, true, true)
	}
	c.setArrayLength(arr, length)
	return runtime.Obj(arr), nil
}

func (c *Context) evalObjectLiteral(e *ast.ObjectLiteral) (runtime.Value, error) {
	obj := runtime.NewObject(c.objectProto, "Object")
	c.arena.Record(64)
	for _, prop := range e.Properties {
		name, err := c.propertyKeyString(prop.Key)
		if err != nil {
			return runtime.Undefined, err
		}
		switch prop.Kind {
		case ast.PropertyInit:
			v, err := c.evalAndGetValue(prop.Value)
			if err != nil {
				return runtime.Undefined, err
			}
			if _, err := obj.DefineOwnProperty(c, name, runtime.NewDataDescriptor(v, true, true, true), false); err != nil {
				return runtime.Undefined, err
			}
		case ast.PropertyGet, ast.PropertySet:
			fl := prop.Value.(*ast.FunctionLiteral)
			fn := c.newCodeFunction(fl, c.lexicalEnv)
			desc := &runtime.PropertyDescriptor{IsAccessor: true, Enumerable: runtime.True, Configurable: runtime.True}
			if prop.Kind == ast.PropertyGet {
				desc.Get = runtime.Obj(fn)
			} else {
				desc.Set = runtime.Obj(fn)
			}
			if _, err := obj.DefineOwnProperty(c, name, desc, false); err != nil {
				return runtime.Undefined, err
			}
		}
	}
	return runtime.Obj(obj), nil
}

func (c *Context) propertyKeyString(key ast.Expression) (string, error) {
	switch k := key.(type) {
	case *ast.Identifier:
		return k.Name, nil
	case *ast.StringLiteral:
		return k.Value, nil
	case *ast.NumberLiteral:
		return runtime.NumberToString(k.Value), nil
	}
	return "", runtime.ThrowTypeError(c, "invalid property key")
}

func (c *Context) evalFunctionLiteral(e *ast.FunctionLiteral) (runtime.Value, error) {
	return runtime.Obj(c.newCodeFunction(e, c.lexicalEnv)), nil
}

func (c *Context) evalLogicalExpression(e *ast.LogicalExpression) (runtime.Value, error) {
	left, err := c.evalAndGetValue(e.Left)
	if err != nil {
		return runtime.Undefined, err
	}
	if e.Operator == ast.OpLogAnd {
		if !runtime.ToBoolean(left) {
			return left, nil
		}
	} else {
		if runtime.ToBoolean(left) {
			return left, nil
		}
	}
	return c.evalAndGetValue(e.Right)
}

func (c *Context) evalConditionalExpression(e *ast.ConditionalExpression) (runtime.Value, error) {
	cond, err := c.evalAndGetValue(e.Test)
	if err != nil {
		return runtime.Undefined, err
	}
	if runtime.ToBoolean(cond) {
		return c.evalAndGetValue(e.Consequent)
	}
	return c.evalAndGetValue(e.Alternate)
}

func (c *Context) evalSequenceExpression(e *ast.SequenceExpression) (runtime.Value, error) {
	var v runtime.Value = runtime.Undefined
	for _, expr := range e.Expressions {
		var err error
		v, err = c.evalAndGetValue(expr)
		if err != nil {
			return runtime.Undefined, err
		}
	}
	return v, nil
}

// evalMemberExpression builds a property reference (11.2.1). The base is
// checked for object-coercibility here, at reference-creation time, so
// both reads and writes of `undefined.x` report a TypeError naming the
// property.
func (c *Context) evalMemberExpression(e *ast.MemberExpression) (runtime.Value, error) {
	base, err := c.evalAndGetValue(e.Object)
	if err != nil {
		return runtime.Undefined, err
	}

	var name string
	if e.Computed {
		keyVal, err := c.evalAndGetValue(e.Property)
		if err != nil {
			return runtime.Undefined, err
		}
		name, err = runtime.ToString(c, keyVal)
		if err != nil {
			return runtime.Undefined, err
		}
	} else {
		name = e.Property.(*ast.Identifier).Name
	}

	switch base.(type) {
	case runtime.UndefinedValue, runtime.NullValue:
		return runtime.Undefined, runtime.ThrowTypeError(c, "cannot read property '"+name+"' of "+runtime.Describe(base))
	}
	return runtime.ReferenceValue{Ref: runtime.NewPropertyReference(base, name, c.strict)}, nil
}

func (c *Context) evalAssignmentExpression(e *ast.AssignmentExpression) (runtime.Value, error) {
	lhs, err := c.evalExpression(e.Target)
	if err != nil {
		return runtime.Undefined, err
	}
	ref, isRef := lhs.(runtime.ReferenceValue)
	if !isRef {
		return runtime.Undefined, runtime.ThrowReferenceError(c, "invalid assignment target")
	}

	if e.Operator == "=" {
		v, err := c.evalAndGetValue(e.Value)
		if err != nil {
			return runtime.Undefined, err
		}
		if err := ref.Ref.PutValue(c, v); err != nil {
			return runtime.Undefined, err
		}
		return v, nil
	}

	// Compound op=: GetValue the LHS before the RHS.
	lval, err := ref.Ref.GetValue(c)
	if err != nil {
		return runtime.Undefined, err
	}
	rval, err := c.evalAndGetValue(e.Value)
	if err != nil {
		return runtime.Undefined, err
	}
	result, err := c.applyBinary(ast.BinaryOperator(e.Operator), lval, rval)
	if err != nil {
		return runtime.Undefined, err
	}
	if err := ref.Ref.PutValue(c, result); err != nil {
		return runtime.Undefined, err
	}
	return result, nil
}

func (c *Context) evalUpdateExpression(e *ast.UpdateExpression) (runtime.Value, error) {
	operand, err := c.evalExpression(e.Operand)
	if err != nil {
		return runtime.Undefined, err
	}
	rv, isRef := operand.(runtime.ReferenceValue)
	if !isRef {
		return runtime.Undefined, runtime.ThrowReferenceError(c, "invalid "+e.Operator+" operand")
	}
	old, err := rv.Ref.GetValue(c)
	if err != nil {
		return runtime.Undefined, err
	}
	oldNum, err := runtime.ToNumber(c, old)
	if err != nil {
		return runtime.Undefined, err
	}
	newNum := oldNum + 1
	if e.Operator == "--" {
		newNum = oldNum - 1
	}
	if err := rv.Ref.PutValue(c, runtime.Num(newNum)); err != nil {
		return runtime.Undefined, err
	}
	if e.Prefix {
		return runtime.Num(newNum), nil
	}
	return runtime.Num(oldNum), nil
}

func (c *Context) evalUnaryExpression(e *ast.UnaryExpression) (runtime.Value, error) {
	switch e.Operator {
	case ast.OpDelete:
		return c.evalDelete(e)
	case ast.OpTypeof:
		return c.evalTypeof(e)
	case ast.OpVoid:
		if _, err := c.evalAndGetValue(e.Operand); err != nil {
			return runtime.Undefined, err
		}
		return runtime.Undefined, nil
	}

	v, err := c.evalAndGetValue(e.Operand)
	if err != nil {
		return runtime.Undefined, err
	}
	switch e.Operator {
	case ast.OpUnaryMinus:
		n, err := runtime.ToNumber(c, v)
		if err != nil {
			return runtime.Undefined, err
		}
		return runtime.Num(-n), nil
	case ast.OpUnaryPlus:
		n, err := runtime.ToNumber(c, v)
		if err != nil {
			return runtime.Undefined, err
		}
		return runtime.Num(n), nil
	case ast.OpNot:
		return runtime.Bool(!runtime.ToBoolean(v)), nil
	case ast.OpBitNot:
		n, err := runtime.ToInt32(c, v)
		if err != nil {
			return runtime.Undefined, err
		}
		return runtime.Num(float64(^n)), nil
	}
	return runtime.Undefined, runtime.ThrowTypeError(c, "unknown unary operator "+string(e.Operator))
}

// evalDelete implements 11.4.1: non-references yield true,
// an unresolvable reference yields true (the strict form was rejected by
// the parser), property references go through [[Delete]] on the boxed
// base, env references through DeleteBinding.
func (c *Context) evalDelete(e *ast.UnaryExpression) (runtime.Value, error) {
	operand, err := c.evalExpression(e.Operand)
	if err != nil {
		return runtime.Undefined, err
	}
	rv, isRef := operand.(runtime.ReferenceValue)
	if !isRef {
		return runtime.Bool(true), nil
	}
	switch rv.Ref.Kind {
	case runtime.RefUnresolvable:
		return runtime.Bool(true), nil
	case runtime.RefProperty:
		obj, err := runtime.ToObject(c, rv.Ref.Base)
		if err != nil {
			return runtime.Undefined, err
		}
		ok, err := obj.Delete(c, rv.Ref.Name, rv.Ref.Strict)
		if err != nil {
			return runtime.Undefined, err
		}
		return runtime.Bool(ok), nil
	default:
		ok, err := rv.Ref.Env.DeleteBinding(c, rv.Ref.Name)
		if err != nil {
			return runtime.Undefined, err
		}
		return runtime.Bool(ok), nil
	}
}

// evalTypeof implements 11.4.3: an unresolvable reference
// yields "undefined" without throwing; everything else dereferences and
// reports the class tag.
func (c *Context) evalTypeof(e *ast.UnaryExpression) (runtime.Value, error) {
	operand, err := c.evalExpression(e.Operand)
	if err != nil {
		return runtime.Undefined, err
	}
	if rv, isRef := operand.(runtime.ReferenceValue); isRef {
		if rv.Ref.Kind == runtime.RefUnresolvable {
			return runtime.Str("undefined"), nil
		}
		v, err := rv.Ref.GetValue(c)
		if err != nil {
			return runtime.Undefined, err
		}
		return runtime.Str(runtime.TypeString(v)), nil
	}
	return runtime.Str(runtime.TypeString(operand)), nil
}

func (c *Context) evalBinaryExpression(e *ast.BinaryExpression) (runtime.Value, error) {
	left, err := c.evalAndGetValue(e.Left)
	if err != nil {
		return runtime.Undefined, err
	}
	right, err := c.evalAndGetValue(e.Right)
	if err != nil {
		return runtime.Undefined, err
	}
	return c.applyBinary(e.Operator, left, right)
}

// applyBinary applies one binary operator to already-dereferenced
// operands; shared between BinaryExpression and compound assignment.
func (c *Context) applyBinary(op ast.BinaryOperator, left, right runtime.Value) (runtime.Value, error) {
	switch op {
	case ast.OpAdd:
		return c.addValues(left, right)
	case ast.OpSub, ast.OpMul, ast.OpDiv, ast.OpMod:
		ln, err := runtime.ToNumber(c, left)
		if err != nil {
			return runtime.Undefined, err
		}
		rn, err := runtime.ToNumber(c, right)
		if err != nil {
			return runtime.Undefined, err
		}
		switch op {
		case ast.OpSub:
			return runtime.Num(ln - rn), nil
		case ast.OpMul:
			return runtime.Num(ln * rn), nil
		case ast.OpDiv:
			return runtime.Num(ln / rn), nil
		default:
			return runtime.Num(math.Mod(ln, rn)), nil
		}

	case ast.OpBitAnd, ast.OpBitOr, ast.OpBitXor:
		li, err := runtime.ToInt32(c, left)
		if err != nil {
			return runtime.Undefined, err
		}
		ri, err := runtime.ToInt32(c, right)
		if err != nil {
			return runtime.Undefined, err
		}
		switch op {
		case ast.OpBitAnd:
			return runtime.Num(float64(li & ri)), nil
		case ast.OpBitOr:
			return runtime.Num(float64(li | ri)), nil
		default:
			return runtime.Num(float64(li ^ ri)), nil
		}

	case ast.OpShl, ast.OpShr:
		li, err := runtime.ToInt32(c, left)
		if err != nil {
			return runtime.Undefined, err
		}
		shift, err := runtime.ToUInt32(c, right)
		if err != nil {
			return runtime.Undefined, err
		}
		// Shift count masked with 0x1f.
		if op == ast.OpShl {
			return runtime.Num(float64(li << (shift & 0x1f))), nil
		}
		return runtime.Num(float64(li >> (shift & 0x1f))), nil

	case ast.OpUShr:
		lu, err := runtime.ToUInt32(c, left)
		if err != nil {
			return runtime.Undefined, err
		}
		shift, err := runtime.ToUInt32(c, right)
		if err != nil {
			return runtime.Undefined, err
		}
		return runtime.Num(float64(lu >> (shift & 0x1f))), nil

	case ast.OpLT:
		r, err := runtime.Compare(c, left, right, true)
		if err != nil {
			return runtime.Undefined, err
		}
		return runtime.Bool(r == runtime.CompareTrue), nil
	case ast.OpGT:
		r, err := runtime.Compare(c, right, left, false)
		if err != nil {
			return runtime.Undefined, err
		}
		return runtime.Bool(r == runtime.CompareTrue), nil
	case ast.OpLE:
		r, err := runtime.Compare(c, right, left, false)
		if err != nil {
			return runtime.Undefined, err
		}
		return runtime.Bool(r == runtime.CompareFalse), nil
	case ast.OpGE:
		r, err := runtime.Compare(c, left, right, true)
		if err != nil {
			return runtime.Undefined, err
		}
		return runtime.Bool(r == runtime.CompareFalse), nil

	case ast.OpEq:
		eq, err := runtime.AbstractEqual(c, left, right)
		if err != nil {
			return runtime.Undefined, err
		}
		return runtime.Bool(eq), nil
	case ast.OpNotEq:
		eq, err := runtime.AbstractEqual(c, left, right)
		if err != nil {
			return runtime.Undefined, err
		}
		return runtime.Bool(!eq), nil
	case ast.OpStrictEq:
		return runtime.Bool(runtime.StrictEqual(left, right)), nil
	case ast.OpStrictNeq:
		return runtime.Bool(!runtime.StrictEqual(left, right)), nil

	case ast.OpInstanceof:
		fn := runtime.AsObject(right)
		if fn == nil || fn.HasInstance == nil {
			return runtime.Undefined, runtime.ThrowTypeError(c, "right-hand side of 'instanceof' is not callable")
		}
		ok, err := fn.HasInstance(c, left)
		if err != nil {
			return runtime.Undefined, err
		}
		return runtime.Bool(ok), nil

	case ast.OpIn:
		obj := runtime.AsObject(right)
		if obj == nil {
			return runtime.Undefined, runtime.ThrowTypeError(c, "right-hand side of 'in' is not an object")
		}
		name, err := runtime.ToString(c, left)
		if err != nil {
			return runtime.Undefined, err
		}
		return runtime.Bool(obj.HasProperty(name)), nil
	}
	return runtime.Undefined, runtime.ThrowTypeError(c, "unknown binary operator "+string(op))
}

// addValues implements `+` (11.6.1): ToPrimitive with no hint on both
// sides, string concatenation when either primitive is a string,
// otherwise numeric addition.
func (c *Context) addValues(left, right runtime.Value) (runtime.Value, error) {
	lp, err := runtime.ToPrimitive(c, left, runtime.HintNone)
	if err != nil {
		return runtime.Undefined, err
	}
	rp, err := runtime.ToPrimitive(c, right, runtime.HintNone)
	if err != nil {
		return runtime.Undefined, err
	}
	_, lStr := lp.(runtime.StringValue)
	_, rStr := rp.(runtime.StringValue)
	if lStr || rStr {
		ls, err := runtime.ToString(c, lp)
		if err != nil {
			return runtime.Undefined, err
		}
		rs, err := runtime.ToString(c, rp)
		if err != nil {
			return runtime.Undefined, err
		}
		return runtime.Str(ls + rs), nil
	}
	ln, err := runtime.ToNumber(c, lp)
	if err != nil {
		return runtime.Undefined, err
	}
	rn, err := runtime.ToNumber(c, rp)
	if err != nil {
		return runtime.Undefined, err
	}
	return runtime.Num(ln + rn), nil
}

// evalCallExpression implements 11.2.3, including the direct-eval
// check: the parser tagged the candidate, and the resolved callee must
// still be the builtin eval function for direct-eval mode.
func (c *Context) evalCallExpression(e *ast.CallExpression) (runtime.Value, error) {
	calleeRaw, err := c.evalExpression(e.Callee)
	if err != nil {
		return runtime.Undefined, err
	}
	callee, err := c.getValue(calleeRaw)
	if err != nil {
		return runtime.Undefined, err
	}

	args := make([]runtime.Value, 0, len(e.Arguments))
	for _, argExpr := range e.Arguments {
		a, err := c.evalAndGetValue(argExpr)
		if err != nil {
			return runtime.Undefined, err
		}
		args = append(args, a)
	}

	fn := runtime.AsObject(callee)
	if fn == nil || fn.Call == nil {
		return runtime.Undefined, runtime.ThrowTypeError(c, c.callErrorName(e)+" is not a function")
	}

	if e.IsDirectEvalCandidate && fn == c.builtinEval {
		return c.directEval(args)
	}

	var this runtime.Value = runtime.Undefined
	if rv, isRef := calleeRaw.(runtime.ReferenceValue); isRef {
		if rv.Ref.IsPropertyReference() {
			this = rv.Ref.Base
		} else if rv.Ref.Kind == runtime.RefEnv {
			this = rv.Ref.Env.ImplicitThisValue()
		}
	}
	return fn.Call(c, this, args)
}

func (c *Context) callErrorName(e *ast.CallExpression) string {
	switch callee := e.Callee.(type) {
	case *ast.Identifier:
		return callee.Name
	case *ast.MemberExpression:
		if !callee.Computed {
			return callee.Property.(*ast.Identifier).Name
		}
	}
	return "expression"
}

func (c *Context) evalNewExpression(e *ast.NewExpression) (runtime.Value, error) {
	callee, err := c.evalAndGetValue(e.Callee)
	if err != nil {
		return runtime.Undefined, err
	}
	args := make([]runtime.Value, 0, len(e.Arguments))
	for _, argExpr := range e.Arguments {
		a, err := c.evalAndGetValue(argExpr)
		if err != nil {
			return runtime.Undefined, err
		}
		args = append(args, a)
	}
	fn := runtime.AsObject(callee)
	if fn == nil || fn.Construct == nil {
		return runtime.Undefined, runtime.ThrowTypeError(c, "value is not a constructor")
	}
	return fn.Construct(c, args)
}
