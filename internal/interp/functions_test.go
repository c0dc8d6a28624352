package interp

import (
	"testing"

	"github.com/cwbudde/go-es5/internal/runtime"
)

func TestClosuresCaptureEnvironment(t *testing.T) {
	src := `
		function counter() {
			var n = 0;
			return function() { n += 1; return n; };
		}
		var c = counter();
		c(); c(); c();`
	wantNumber(t, mustRun(t, src), 3)

	// Two closures over the same frame share state.
	src = `
		function pair() {
			var n = 0;
			return { inc: function(){ n++; }, get: function(){ return n; } };
		}
		var p = pair();
		p.inc(); p.inc();
		p.get();`
	wantNumber(t, mustRun(t, src), 2)
}

func TestParameterBinding(t *testing.T) {
	wantNumber(t, mustRun(t, `function f(a, b) { return a + b; } f(1, 2);`), 3)
	// Missing arguments bind undefined.
	wantString(t, mustRun(t, `function f(a, b) { return typeof b; } f(1);`), "undefined")
	// Extra arguments are reachable through arguments.
	wantNumber(t, mustRun(t, `function f(a) { return arguments.length; } f(1, 2, 3);`), 3)
	wantNumber(t, mustRun(t, `function f() { return arguments[2]; } f(10, 20, 30);`), 30)
}

func TestArgumentsAliasesParameters(t *testing.T) {
	// Non-strict: writing arguments[0] updates the parameter, and vice
	// versa.
	src := `function f(a) { arguments[0] = 99; return a; } f(1);`
	wantNumber(t, mustRun(t, src), 99)

	src = `function f(a) { a = 7; return arguments[0]; } f(1);`
	wantNumber(t, mustRun(t, src), 7)

	// Strict mode severs the link.
	src = `"use strict"; function f(a) { arguments[0] = 99; return a; } f(1);`
	wantNumber(t, mustRun(t, src), 1)
}

func TestVarArgumentsDoesNotSuppressArgumentsObject(t *testing.T) {
	// The arguments object binds before hoisted vars, so a bare
	// `var arguments;` leaves it in place.
	wantString(t, mustRun(t, `(function(){ var arguments; return typeof arguments; })();`), "object")
	wantNumber(t, mustRun(t, `(function(){ var arguments; return arguments.length; })(7, 8);`), 2)
	// An initialized var still overwrites it when the body runs.
	wantString(t, mustRun(t, `(function(){ var arguments = 1; return typeof arguments; })();`), "number")
}

func TestNamedFunctionExpression(t *testing.T) {
	// The name binds inside the function only.
	src := `var f = function fact(n) { return n <= 1 ? 1 : n * fact(n - 1); }; f(5);`
	wantNumber(t, mustRun(t, src), 120)
	wantString(t, mustRun(t, `var f = function g(){}; typeof g;`), "undefined")
}

func TestFunctionDeclarationHoisting(t *testing.T) {
	wantNumber(t, mustRun(t, `var r = f(); function f() { return 42; } r;`), 42)
	// A var of the same name does not clobber the hoisted function until
	// assigned.
	src := `(function(){ var t = typeof f; var f = 1; function f(){} return t; })();`
	wantString(t, mustRun(t, src), "function")
}

func TestThisBinding(t *testing.T) {
	// Method call: this is the base object.
	wantNumber(t, mustRun(t, `var o = { v: 5, m: function(){ return this.v; } }; o.m();`), 5)
	// Bare call in non-strict code: this is the global object.
	wantBool(t, mustRun(t, `function f(){ return this; } f() === this;`), true)
	// Strict bare call: this is undefined.
	wantString(t, mustRun(t, `"use strict"; function f(){ return typeof this; } f();`), "undefined")
	// Primitive receivers box in sloppy mode.
	wantString(t, mustRun(t, `function f(){ return typeof this; } f.call("str");`), "object")
	// ...and pass through unchanged in strict mode.
	wantString(t, mustRun(t, `"use strict"; function f(){ return typeof this; } f.call("str");`), "string")
}

func TestNewExpression(t *testing.T) {
	src := `function Point(x, y) { this.x = x; this.y = y; } var p = new Point(3, 4); p.x + p.y;`
	wantNumber(t, mustRun(t, src), 7)

	// A constructor returning an object overrides the allocated one.
	src = `function C() { return {marker: 1}; } new C().marker;`
	wantNumber(t, mustRun(t, src), 1)

	// A constructor returning a primitive keeps the allocated object.
	src = `function C() { this.ok = true; return 42; } new C().ok;`
	wantBool(t, mustRun(t, src), true)

	// Prototype chain wiring.
	src = `function C(){} C.prototype.m = function(){ return "proto"; }; new C().m();`
	wantString(t, mustRun(t, src), "proto")
}

func TestCallAndApply(t *testing.T) {
	wantNumber(t, mustRun(t, `function f(a, b){ return this.base + a + b; } f.call({base: 10}, 1, 2);`), 13)
	wantNumber(t, mustRun(t, `function f(a, b){ return this.base + a + b; } f.apply({base: 10}, [1, 2]);`), 13)
	wantNumber(t, mustRun(t, `function f(){ return arguments.length; } f.apply(null);`), 0)
}

func TestRecursion(t *testing.T) {
	wantNumber(t, mustRun(t, `function fib(n){ return n < 2 ? n : fib(n-1) + fib(n-2); } fib(10);`), 55)
}

func TestNotCallable(t *testing.T) {
	_, _, err := runSource(t, `var x = 3; x();`)
	if err == nil {
		t.Fatal("expected TypeError calling a number")
	}
	je := err.(*runtime.JSError)
	obj := runtime.AsObject(je.Value)
	if obj == nil {
		t.Fatalf("thrown value is not an object: %v", runtime.Describe(je.Value))
	}
}

func TestFunctionLengthProperty(t *testing.T) {
	wantNumber(t, mustRun(t, `function f(a, b, c){} f.length;`), 3)
	wantNumber(t, mustRun(t, `(function(){}).length;`), 0)
}

func TestReturnWithoutValue(t *testing.T) {
	wantString(t, mustRun(t, `function f(){ return; } typeof f();`), "undefined")
	wantString(t, mustRun(t, `function f(){ } typeof f();`), "undefined")
}

func TestImplicitGlobalFromSloppyAssignment(t *testing.T) {
	// Assignment to an unresolvable reference creates a global property.
	wantNumber(t, mustRun(t, `function f(){ leaked = 11; } f(); leaked;`), 11)
}

func TestVarIsFunctionScoped(t *testing.T) {
	src := `function f(){ if (true) { var inner = 1; } return inner; } f();`
	wantNumber(t, mustRun(t, src), 1)
	// Globals declared via var are non-configurable bindings.
	wantBool(t, mustRun(t, `var fixed = 1; delete fixed;`), false)
}

func TestDirectEvalBindingsAreDeletable(t *testing.T) {
	// Eval code instantiates bindings with configurable_bindings = true.
	wantBool(t, mustRun(t, `eval("var viaEval = 5;"); delete viaEval;`), true)
}
