package interp

import (
	"github.com/cwbudde/go-es5/internal/ast"
	"github.com/cwbudde/go-es5/internal/runtime"
)

// evalStatements runs a statement list, accumulating the "last
// non-undefined value" and propagating the first
// non-normal completion with that accumulated value attached.
func (c *Context) evalStatements(body []ast.Statement) Completion {
	var value runtime.Value
	for _, stmt := range body {
		comp := c.evalStatement(stmt, nil)
		value = mergeValue(value, comp)
		if comp.isAbrupt() {
			comp.Value = value
			return comp
		}
	}
	return Completion{Mode: CompletionNormal, Value: value}
}

// evalStatement dispatches one statement. labels is the
// label set contributed by directly enclosing LabelledStatements; it
// attaches to the first breakable statement it reaches.
func (c *Context) evalStatement(stmt ast.Statement, labels []string) Completion {
	switch s := stmt.(type) {
	case *ast.BlockStatement:
		return c.evalStatements(s.Body)
	case *ast.VariableStatement:
		return c.evalVariableStatement(s)
	case *ast.ExpressionStatement:
		v, err := c.evalAndGetValue(s.Expression)
		if err != nil {
			return throwToCompletion(err)
		}
		return normalCompletion(v)
	case *ast.EmptyStatement:
		return emptyCompletion()
	case *ast.IfStatement:
		return c.evalIfStatement(s)
	case *ast.WhileStatement:
		return c.evalWhileStatement(s, labels)
	case *ast.DoWhileStatement:
		return c.evalDoWhileStatement(s, labels)
	case *ast.ForStatement:
		return c.evalForStatement(s, labels)
	case *ast.ForInStatement:
		return c.evalForInStatement(s, labels)
	case *ast.BreakStatement:
		return Completion{Mode: CompletionBreak, Label: s.Label}
	case *ast.ContinueStatement:
		return Completion{Mode: CompletionContinue, Label: s.Label}
	case *ast.ReturnStatement:
		return c.evalReturnStatement(s)
	case *ast.WithStatement:
		return c.evalWithStatement(s)
	case *ast.SwitchStatement:
		return c.evalSwitchStatement(s, labels)
	case *ast.ThrowStatement:
		v, err := c.evalAndGetValue(s.Argument)
		if err != nil {
			return throwToCompletion(err)
		}
		return throwCompletion(v)
	case *ast.TryStatement:
		return c.evalTryStatement(s)
	case *ast.DebuggerStatement:
		return emptyCompletion()
	case *ast.LabeledStatement:
		return c.evalLabeledStatement(s, labels)
	case *ast.FunctionDeclaration:
		// Binding happened during declaration instantiation; the statement
		// itself is inert (12, FunctionDeclaration produces empty).
		return emptyCompletion()
	default:
		return throwToCompletion(runtime.ThrowTypeError(c, "unknown statement node"))
	}
}

func (c *Context) evalVariableStatement(s *ast.VariableStatement) Completion {
	for _, decl := range s.Declarations {
		if decl.Init == nil {
			continue
		}
		v, err := c.evalAndGetValue(decl.Init)
		if err != nil {
			return throwToCompletion(err)
		}
		// The binding itself was hoisted; `var x = e` assigns like `x = e`
		// through the identifier reference so `with`/eval frames resolve
		// the same way an assignment would (12.2).
		ref := c.identifierReference(decl.Name)
		if err := ref.PutValue(c, v); err != nil {
			return throwToCompletion(err)
		}
	}
	return emptyCompletion()
}

func (c *Context) evalIfStatement(s *ast.IfStatement) Completion {
	cond, err := c.evalAndGetValue(s.Test)
	if err != nil {
		return throwToCompletion(err)
	}
	if runtime.ToBoolean(cond) {
		return c.evalStatement(s.Consequent, nil)
	}
	if s.Alternate != nil {
		return c.evalStatement(s.Alternate, nil)
	}
	return emptyCompletion()
}

func (c *Context) evalWhileStatement(s *ast.WhileStatement, labels []string) Completion {
	var value runtime.Value
	for {
		cond, err := c.evalAndGetValue(s.Test)
		if err != nil {
			return throwToCompletion(err)
		}
		if !runtime.ToBoolean(cond) {
			return Completion{Mode: CompletionNormal, Value: value}
		}
		comp := c.evalStatement(s.Body, nil)
		value = mergeValue(value, comp)
		if continuesHere(comp, labels) {
			continue
		}
		if breaksHere(comp, labels) {
			return Completion{Mode: CompletionNormal, Value: value}
		}
		if comp.isAbrupt() {
			comp.Value = value
			return comp
		}
	}
}

func (c *Context) evalDoWhileStatement(s *ast.DoWhileStatement, labels []string) Completion {
	var value runtime.Value
	for {
		comp := c.evalStatement(s.Body, nil)
		value = mergeValue(value, comp)
		if breaksHere(comp, labels) {
			return Completion{Mode: CompletionNormal, Value: value}
		}
		if comp.isAbrupt() && !continuesHere(comp, labels) {
			comp.Value = value
			return comp
		}
		cond, err := c.evalAndGetValue(s.Test)
		if err != nil {
			return throwToCompletion(err)
		}
		if !runtime.ToBoolean(cond) {
			return Completion{Mode: CompletionNormal, Value: value}
		}
	}
}

func (c *Context) evalForStatement(s *ast.ForStatement, labels []string) Completion {
	switch init := s.Init.(type) {
	case nil:
	case *ast.VariableStatement:
		if comp := c.evalVariableStatement(init); comp.isAbrupt() {
			return comp
		}
	case ast.Expression:
		// The init expression's reference is dropped via GetValue (12.6.3).
		if _, err := c.evalAndGetValue(init); err != nil {
			return throwToCompletion(err)
		}
	}

	var value runtime.Value
	for {
		if s.Test != nil {
			cond, err := c.evalAndGetValue(s.Test)
			if err != nil {
				return throwToCompletion(err)
			}
			if !runtime.ToBoolean(cond) {
				return Completion{Mode: CompletionNormal, Value: value}
			}
		}
		comp := c.evalStatement(s.Body, nil)
		value = mergeValue(value, comp)
		if breaksHere(comp, labels) {
			return Completion{Mode: CompletionNormal, Value: value}
		}
		if comp.isAbrupt() && !continuesHere(comp, labels) {
			comp.Value = value
			return comp
		}
		if s.Update != nil {
			if _, err := c.evalAndGetValue(s.Update); err != nil {
				return throwToCompletion(err)
			}
		}
	}
}

// evalForInStatement implements 12.6.4: snapshot the enumerable
// keys in own-then-prototype insertion order, re-check each key still
// exists before yielding it (deletion during iteration must not resurrect
// it), and assign the key through either the single declared identifier
// or the freshly re-evaluated LHS reference.
func (c *Context) evalForInStatement(s *ast.ForInStatement, labels []string) Completion {
	src, err := c.evalAndGetValue(s.Object)
	if err != nil {
		return throwToCompletion(err)
	}
	switch src.(type) {
	case runtime.UndefinedValue, runtime.NullValue:
		return emptyCompletion()
	}
	obj, err := runtime.ToObject(c, src)
	if err != nil {
		return throwToCompletion(err)
	}

	var value runtime.Value
	for _, key := range obj.Enumerate() {
		if !obj.HasProperty(key) {
			continue
		}
		var ref *runtime.Reference
		if s.Declare {
			ref = c.identifierReference(s.VarName)
		} else {
			lhs, err := c.evalExpression(s.Target)
			if err != nil {
				return throwToCompletion(err)
			}
			rv, ok := lhs.(runtime.ReferenceValue)
			if !ok {
				return throwToCompletion(runtime.ThrowTypeError(c, "invalid for-in assignment target"))
			}
			ref = rv.Ref
		}
		if err := ref.PutValue(c, runtime.Str(key)); err != nil {
			return throwToCompletion(err)
		}

		comp := c.evalStatement(s.Body, nil)
		value = mergeValue(value, comp)
		if breaksHere(comp, labels) {
			return Completion{Mode: CompletionNormal, Value: value}
		}
		if comp.isAbrupt() && !continuesHere(comp, labels) {
			comp.Value = value
			return comp
		}
	}
	return Completion{Mode: CompletionNormal, Value: value}
}

func (c *Context) evalReturnStatement(s *ast.ReturnStatement) Completion {
	var v runtime.Value = runtime.Undefined
	if s.Argument != nil {
		val, err := c.evalAndGetValue(s.Argument)
		if err != nil {
			return throwToCompletion(err)
		}
		v = val
	}
	return Completion{Mode: CompletionReturn, Value: v}
}

// evalWithStatement implements 12.10: ToObject the expression,
// push an object environment with provide_this over the current lexical
// env, run the body, restore. The parser already rejected this in strict
// mode.
func (c *Context) evalWithStatement(s *ast.WithStatement) Completion {
	v, err := c.evalAndGetValue(s.Object)
	if err != nil {
		return throwToCompletion(err)
	}
	obj, err := runtime.ToObject(c, v)
	if err != nil {
		return throwToCompletion(err)
	}
	env := runtime.NewObjectEnv(c.lexicalEnv, obj, true)
	c.arena.Record(64)
	return c.withLexicalEnv(env, func() Completion {
		return c.evalStatement(s.Body, nil)
	})
}

// evalSwitchStatement implements 12.11: find the first case
// whose expression is StrictEqual to the discriminant, fall through
// subsequent clauses until a Break targeting this switch; with no match,
// start at `default:`.
func (c *Context) evalSwitchStatement(s *ast.SwitchStatement, labels []string) Completion {
	disc, err := c.evalAndGetValue(s.Discriminant)
	if err != nil {
		return throwToCompletion(err)
	}

	match := -1
	for i, cs := range s.Cases {
		if cs.Test == nil {
			continue
		}
		t, err := c.evalAndGetValue(cs.Test)
		if err != nil {
			return throwToCompletion(err)
		}
		if runtime.StrictEqual(disc, t) {
			match = i
			break
		}
	}
	if match < 0 {
		for i, cs := range s.Cases {
			if cs.Test == nil {
				match = i
				break
			}
		}
	}
	if match < 0 {
		return emptyCompletion()
	}

	var value runtime.Value
	for _, cs := range s.Cases[match:] {
		comp := c.evalStatements(cs.Body)
		value = mergeValue(value, comp)
		if breaksHere(comp, labels) {
			return Completion{Mode: CompletionNormal, Value: value}
		}
		if comp.isAbrupt() {
			comp.Value = value
			return comp
		}
	}
	return Completion{Mode: CompletionNormal, Value: value}
}

// evalTryStatement implements 12.14: a Throw from
// the block binds the thrown value in a fresh declarative env for the
// catch clause; the finally block then runs under the saved completion,
// and its own abrupt completion (if any) replaces the saved one.
func (c *Context) evalTryStatement(s *ast.TryStatement) Completion {
	comp := c.evalStatements(s.Block.Body)

	if comp.Mode == CompletionThrow && s.Catch != nil {
		catchEnv := runtime.NewDeclarativeEnv(c.lexicalEnv)
		c.arena.Record(64)
		thrown := comp.Value
		if thrown == nil {
			thrown = runtime.Undefined
		}
		if err := catchEnv.CreateMutableBinding(c, s.Catch.Param, false); err != nil {
			return throwToCompletion(err)
		}
		if err := catchEnv.SetMutableBinding(c, s.Catch.Param, thrown, false); err != nil {
			return throwToCompletion(err)
		}
		comp = c.withLexicalEnv(catchEnv, func() Completion {
			return c.evalStatements(s.Catch.Body.Body)
		})
	}

	if s.Finally != nil {
		finComp := c.evalStatements(s.Finally.Body)
		if finComp.isAbrupt() {
			return finComp
		}
	}
	return comp
}

// evalLabeledStatement attaches the label to the directly following
// statement's label set; a Break carrying this label that reaches back
// here (from a non-breakable labeled body) converts to Normal.
func (c *Context) evalLabeledStatement(s *ast.LabeledStatement, labels []string) Completion {
	comp := c.evalStatement(s.Body, append(labels, s.Label))
	if comp.Mode == CompletionBreak && comp.Label == s.Label {
		return Completion{Mode: CompletionNormal, Value: comp.Value}
	}
	return comp
}
