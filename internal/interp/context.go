package interp

import (
	"io"
	"math/rand"
	"os"

	"github.com/cwbudde/go-es5/internal/ast"
	"github.com/cwbudde/go-es5/internal/runtime"
)

// Context is the process-wide interpreter root: the symbol
// table, the global object and its environment, the current lexical and
// variable environments, the strict flag, the RNG, and the builtin class
// registry. It implements runtime.Host so the object model can construct
// native errors and box primitives without importing this package.
type Context struct {
	symbols *SymbolTable
	arena   *runtime.Arena
	rng     *rand.Rand
	output  io.Writer

	global    *runtime.Object
	globalEnv *runtime.Env

	// Current execution frame.
	lexicalEnv  *runtime.Env
	variableEnv *runtime.Env
	thisValue   runtime.Value
	strict      bool

	// Builtin class registry, installed by the bootstrap in dependency
	// order: prototypes before constructors, constructors before any user
	// code.
	objectProto   *runtime.Object
	functionProto *runtime.Object
	arrayProto    *runtime.Object
	booleanProto  *runtime.Object
	numberProto   *runtime.Object
	stringProto   *runtime.Object
	regexpProto   *runtime.Object
	errorProtos   map[string]*runtime.Object

	// builtinEval is the native eval function object; the evaluator
	// compares a direct-eval candidate's resolved callee against it.
	builtinEval *runtime.Object
}

// Option configures a Context at construction time.
type Option func(*Context)

// WithOutput redirects the `print` builtin (default os.Stdout).
func WithOutput(w io.Writer) Option {
	return func(c *Context) { c.output = w }
}

// WithArena installs a pre-configured allocation-accounting arena.
func WithArena(a *runtime.Arena) Option {
	return func(c *Context) { c.arena = a }
}

// WithRandSeed seeds the context RNG deterministically (tests, REPL
// reproducibility). The default seed is fixed so runs are reproducible
// until the host asks for entropy.
func WithRandSeed(seed int64) Option {
	return func(c *Context) { c.rng = rand.New(rand.NewSource(seed)) }
}

// NewContext initializes the global object, installs the Object/Function
// prototypes and the always-present natives, and seeds the RNG.
func NewContext(opts ...Option) *Context {
	c := &Context{
		symbols:     NewSymbolTable(),
		arena:       runtime.NewArena(256, 0),
		rng:         rand.New(rand.NewSource(42)),
		output:      os.Stdout,
		errorProtos: map[string]*runtime.Object{},
	}
	for _, opt := range opts {
		opt(c)
	}

	c.bootstrap()
	return c
}

// Intern interns an identifier in the context's symbol table.
func (c *Context) Intern(name string) Symbol {
	return c.symbols.Intern(name)
}

// Symbols exposes the symbol table for diagnostics.
func (c *Context) Symbols() *SymbolTable { return c.symbols }

// Arena exposes the allocation-accounting arena for the CLI's --trace
// reporting.
func (c *Context) Arena() *runtime.Arena { return c.arena }

// DefineFunction registers a native function on the global object.
func (c *Context) DefineFunction(name string, fn runtime.NativeFunc, arity int) {
	c.global.DefineOwnData(name, runtime.Obj(c.newNativeFunction(name, fn, arity)), true, false, true)
}

// Global returns the global object.
func (c *Context) Global() *runtime.Object { return c.global }

// GlobalEnv returns the global (object) environment record.
func (c *Context) GlobalEnv() *runtime.Env { return c.globalEnv }

// --- runtime.Host ---

// NewError constructs a native error object of the given kind, wired to
// the matching builtin error prototype so `e.name`/`instanceof` behave.
func (c *Context) NewError(kind, message string) runtime.Value {
	proto := c.errorProtos[kind]
	if proto == nil {
		proto = c.errorProtos["Error"]
	}
	o := runtime.NewObject(proto, "Error")
	if message != "" {
		o.DefineOwnData("message", runtime.Str(message), true, false, true)
	}
	return runtime.Obj(o)
}

// ToObjectPrototypeFor returns the wrapper prototype used to read a
// property off a primitive base.
func (c *Context) ToObjectPrototypeFor(k runtime.ValueKind) *runtime.Object {
	switch k {
	case runtime.KindBoolean:
		return c.booleanProto
	case runtime.KindNumber:
		return c.numberProto
	case runtime.KindString:
		return c.stringProto
	}
	return nil
}

// Call invokes a callable object's [[Call]]. Used both by
// the evaluator and, through the Host interface, by accessor-property
// reads/writes inside internal/runtime.
func (c *Context) Call(fn *runtime.Object, this runtime.Value, args []runtime.Value) (runtime.Value, error) {
	if fn == nil || fn.Call == nil {
		return runtime.Undefined, runtime.ThrowTypeError(c, "value is not a function")
	}
	return fn.Call(c, this, args)
}

// GlobalObject returns the global object for unresolvable-reference
// PutValue.
func (c *Context) GlobalObject() *runtime.Object { return c.global }

// --- frame switching ---

// frame captures the per-call execution state so [[Call]], `with`,
// `catch`, and eval can switch and restore it on every exit path.
type frame struct {
	lexicalEnv  *runtime.Env
	variableEnv *runtime.Env
	thisValue   runtime.Value
	strict      bool
}

func (c *Context) saveFrame() frame {
	return frame{c.lexicalEnv, c.variableEnv, c.thisValue, c.strict}
}

func (c *Context) restoreFrame(f frame) {
	c.lexicalEnv, c.variableEnv, c.thisValue, c.strict = f.lexicalEnv, f.variableEnv, f.thisValue, f.strict
}

// withFrame runs fn with the given execution frame installed, restoring
// the previous frame on every exit path including panics.
func (c *Context) withFrame(lex, vars *runtime.Env, this runtime.Value, strict bool, fn func() Completion) Completion {
	saved := c.saveFrame()
	defer c.restoreFrame(saved)
	c.lexicalEnv, c.variableEnv, c.thisValue, c.strict = lex, vars, this, strict
	return fn()
}

// withLexicalEnv runs fn with only the lexical environment switched
// (`with` and `catch` frames).
func (c *Context) withLexicalEnv(env *runtime.Env, fn func() Completion) Completion {
	saved := c.lexicalEnv
	defer func() { c.lexicalEnv = saved }()
	c.lexicalEnv = env
	return fn()
}

// Run executes a parsed program and returns its final value, or the
// uncaught thrown value as a *runtime.JSError.
func (c *Context) Run(prog *ast.Program) (runtime.Value, error) {
	comp := c.withFrame(c.globalEnv, c.globalEnv, runtime.Obj(c.global), prog.Strict, func() Completion {
		if err := c.bindGlobalDeclarations(prog); err != nil {
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
		// break/continue/return cannot escape a program body; the parser
		// rejects them outside their statements.
		return runtime.Undefined, runtime.ThrowTypeError(c, "illegal "+comp.Mode.String()+" completion at top level")
	}
}

// bindGlobalDeclarations performs Declaration Binding Instantiation for
// global code (10.5): hoisted function declarations then vars, with
// configurable_bindings = false, onto the global object environment.
// Global code has no arguments object, so the two halves run back to
// back.
func (c *Context) bindGlobalDeclarations(prog *ast.Program) error {
	if err := c.bindParamsAndFunctions(prog.Scope, nil, nil, false, prog.Strict); err != nil {
		return err
	}
	return c.bindVarDeclarations(prog.Scope, false, prog.Strict)
}
