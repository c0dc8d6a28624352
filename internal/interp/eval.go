package interp

import (
	"github.com/cwbudde/go-es5/internal/ast"
	"github.com/cwbudde/go-es5/internal/parser"
	"github.com/cwbudde/go-es5/internal/runtime"
)

// evalKind distinguishes direct from indirect eval invocations, modeled
// as an explicit enum passed into the eval entry point rather than
// re-inferred from the callee.
type evalKind int

const (
	directEvalKind evalKind = iota
	indirectEvalKind
)

// directEval runs eval code in the caller's lexical/variable environments
// and strict mode.
func (c *Context) directEval(args []runtime.Value) (runtime.Value, error) {
	return c.evalSource(args, directEvalKind)
}

// indirectEval is the behavior of calling the eval function through any
// path other than a direct `eval(...)` call expression: the code runs in
// the global environment (10.4.2).
func (c *Context) indirectEval(args []runtime.Value) (runtime.Value, error) {
	return c.evalSource(args, indirectEvalKind)
}

func (c *Context) evalSource(args []runtime.Value, kind evalKind) (runtime.Value, error) {
	if len(args) == 0 {
		return runtime.Undefined, nil
	}
	src, ok := args[0].(runtime.StringValue)
	if !ok {
		// A non-string argument is returned unchanged (15.1.2.1 step 1).
		return args[0], nil
	}

	callerStrict := kind == directEvalKind && c.strict
	prog, parseErrs := parser.ParseProgram(string(src), "<eval>", callerStrict)
	if len(parseErrs) > 0 {
		// Runtime SyntaxError: eval re-parsing is the only place the core
		// produces one.
		first := parseErrs[0]
		return runtime.Undefined, runtime.Throw(c.NewError("SyntaxError", first.Message))
	}

	lex, vars := c.lexicalEnv, c.variableEnv
	this := c.thisValue
	if kind == indirectEvalKind {
		lex, vars = c.globalEnv, c.globalEnv
		this = runtime.Obj(c.global)
	}

	// Strict eval code gets its own declarative environment so its
	// bindings cannot leak into the caller (10.4.2.1); sloppy direct eval
	// instantiates bindings directly in the caller's variable environment
	// with configurable_bindings = true.
	strict := prog.Strict
	if strict {
		env := runtime.NewDeclarativeEnv(lex)
		c.arena.Record(64)
		lex, vars = env, env
	}

	comp := c.withFrame(lex, vars, this, strict, func() Completion {
		// Eval code binds no formals and gets no arguments object; its
		// declarations instantiate with configurable_bindings = true.
		if err := c.bindParamsAndFunctions(prog.Scope, nil, nil, true, strict); err != nil {
			return throwToCompletion(err)
		}
		if err := c.bindVarDeclarations(prog.Scope, true, strict); err != nil {
			return throwToCompletion(err)
		}
		return c.evalStatements(prog.Body)
	})

	switch comp.Mode {
	case CompletionThrow:
		return runtime.Undefined, runtime.Throw(comp.Value)
	case CompletionNormal:
		if comp.Value == nil {
			return runtime.Undefined, nil
		}
		return comp.Value, nil
	default:
		return runtime.Undefined, runtime.ThrowTypeError(c, "illegal "+comp.Mode.String()+" completion in eval code")
	}
}

// RunSource parses and runs source in this context, a convenience used by
// the REPL and by embedding tests. On a parse failure nothing runs and the
// first *errors.CompilerError is returned as the error; the CLI's run
// command uses parser.ParseProgram directly for its two-channel reporting.
func (c *Context) RunSource(source, file string, forceStrict bool) (runtime.Value, *ast.Program, error) {
	prog, parseErrs := parser.ParseProgram(source, file, forceStrict)
	if len(parseErrs) > 0 {
		return runtime.Undefined, prog, parseErrs[0]
	}
	v, err := c.Run(prog)
	return v, prog, err
}
