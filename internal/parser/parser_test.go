package parser

import (
	"strings"
	"testing"

	"github.com/cwbudde/go-es5/internal/ast"
)

func parseOK(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, errs := ParseProgram(src, "test.js", false)
	if len(errs) > 0 {
		t.Fatalf("unexpected parse error for %q: %v", src, errs[0])
	}
	return prog
}

func parseFail(t *testing.T, src string, wantSubstr string) {
	t.Helper()
	_, errs := ParseProgram(src, "test.js", false)
	if len(errs) == 0 {
		t.Fatalf("expected a SyntaxError for %q", src)
	}
	if wantSubstr != "" && !strings.Contains(errs[0].Message, wantSubstr) {
		t.Fatalf("for %q: error %q does not mention %q", src, errs[0].Message, wantSubstr)
	}
}

func TestProgramStructure(t *testing.T) {
	prog := parseOK(t, `var a = 1; function f(x) { return x; } a;`)
	if len(prog.Body) != 3 {
		t.Fatalf("got %d statements, want 3", len(prog.Body))
	}
	if prog.Strict {
		t.Fatal("program should not be strict")
	}
	if len(prog.Scope.VarDeclared) != 1 || prog.Scope.VarDeclared[0] != "a" {
		t.Fatalf("VarDeclared = %v", prog.Scope.VarDeclared)
	}
	if len(prog.Scope.FunctionDeclarations) != 1 || prog.Scope.FunctionDeclarations[0].Name != "f" {
		t.Fatal("function declaration not hoisted into the program scope")
	}
}

func TestDirectivePrologue(t *testing.T) {
	if !parseOK(t, `"use strict"; var x;`).Strict {
		t.Fatal("use strict directive not recognized")
	}
	if !parseOK(t, `"other directive"; "use strict"; var x;`).Strict {
		t.Fatal("directives before use strict must not terminate the prologue")
	}
	if parseOK(t, `var x; "use strict";`).Strict {
		t.Fatal("a directive after a real statement must not enable strict mode")
	}
	// An escaped literal is not Directivable.
	if parseOK(t, `"use\u0020strict"; var x;`).Strict {
		t.Fatal("an escaped literal must not be a directive")
	}
	// Parenthesized strings are expressions, not directives.
	if parseOK(t, `("use strict"); var x;`).Strict {
		t.Fatal("a parenthesized string is not a directive")
	}
}

func TestFunctionDirectivePrologue(t *testing.T) {
	prog := parseOK(t, `function f() { "use strict"; } function g() {}`)
	if !prog.Scope.FunctionDeclarations[0].Strict {
		t.Fatal("f should be strict")
	}
	if prog.Scope.FunctionDeclarations[1].Strict {
		t.Fatal("g should not be strict")
	}
	if prog.Strict {
		t.Fatal("function-level strict must not leak to the program")
	}
}

func TestStrictModeRestrictions(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"with statement", `"use strict"; with (o) {}`},
		{"octal literal", `"use strict"; var x = 010;`},
		{"octal escape", `"use strict"; var s = "\101";`},
		{"delete identifier", `"use strict"; var x; delete x;`},
		{"assign to eval", `"use strict"; eval = 1;`},
		{"assign to arguments", `"use strict"; arguments = 1;`},
		{"increment eval", `"use strict"; eval++;`},
		{"eval as parameter", `"use strict"; function f(eval) {}`},
		{"arguments as function name", `"use strict"; function arguments() {}`},
		{"duplicate parameters", `"use strict"; function f(a, a) {}`},
		{"eval as catch identifier", `"use strict"; try {} catch (eval) {}`},
		{"eval as var name", `"use strict"; var eval;`},
		{"function in statement position", `"use strict"; if (x) { function g() {} }`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			parseFail(t, c.src, "")
		})
	}

	// All of the above are legal outside strict mode.
	parseOK(t, `with (o) {} var x = 010; var s = "\101";`)
	parseOK(t, `function f(a, a) { return a; }`)
}

func TestStrictFunctionBodyTriggersParameterChecks(t *testing.T) {
	// The directive inside the body restricts the parameter list of the
	// same function.
	parseFail(t, `function f(a, a) { "use strict"; }`, "duplicate parameter")
	parseFail(t, `function f(eval) { "use strict"; }`, "eval")
}

func TestAutomaticSemicolonInsertion(t *testing.T) {
	parseOK(t, "var a = 1\nvar b = 2")
	parseOK(t, "a = 1; b = 2")
	parseOK(t, "if (x) { y = 1 }")
	parseOK(t, "do x++; while (x < 5)\ny = 1")
	// No line terminator and no semicolon: error.
	parseFail(t, "var a = 1 var b = 2", "semicolon")
}

func TestRestrictedProductions(t *testing.T) {
	// return with a line terminator returns undefined; the value becomes
	// an expression statement.
	prog := parseOK(t, "function f() { return\n42; }")
	fn := prog.Scope.FunctionDeclarations[0]
	ret, ok := fn.Body[0].(*ast.ReturnStatement)
	if !ok {
		t.Fatalf("first body statement is %T, want return", fn.Body[0])
	}
	if ret.Argument != nil {
		t.Fatal("return across a line terminator must have no argument")
	}

	// throw across a line terminator is an error (12.13).
	parseFail(t, "throw\nnew Error()", "")

	// Postfix ++ must not attach across a line terminator.
	prog = parseOK(t, "x\n++y")
	if len(prog.Body) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(prog.Body))
	}
}

func TestConstantFolding(t *testing.T) {
	cases := []struct {
		src  string
		want float64
	}{
		{`1 + 2;`, 3},
		{`10 - 4;`, 6},
		{`6 * 7;`, 42},
		{`1 / 2;`, 0.5},
		{`12 & 10;`, 8},
		{`12 | 10;`, 14},
		{`12 ^ 10;`, 6},
		{`1 << 32;`, 1}, // shift count masked with 0x1f
		{`-8 >> 1;`, -4},
		{`-1 >>> 0;`, 4294967295},
		{`-3;`, -3},
		{`+4;`, 4},
		{`~0;`, -1},
	}
	for _, c := range cases {
		prog := parseOK(t, c.src)
		es, ok := prog.Body[0].(*ast.ExpressionStatement)
		if !ok {
			t.Fatalf("%q: statement is %T", c.src, prog.Body[0])
		}
		lit, ok := es.Expression.(*ast.NumberLiteral)
		if !ok {
			t.Fatalf("%q: expression not folded, got %T", c.src, es.Expression)
		}
		if lit.Value != c.want {
			t.Errorf("%q folded to %v, want %v", c.src, lit.Value, c.want)
		}
	}

	// Non-literal operands must not fold.
	prog := parseOK(t, `x + 2;`)
	es := prog.Body[0].(*ast.ExpressionStatement)
	if _, folded := es.Expression.(*ast.NumberLiteral); folded {
		t.Fatal("x + 2 must not fold")
	}
}

func TestBreakContinueTargetResolution(t *testing.T) {
	parseOK(t, `while (1) break;`)
	parseOK(t, `for (;;) continue;`)
	parseOK(t, `outer: for (;;) { for (;;) { break outer; } }`)
	parseOK(t, `outer: for (;;) { continue outer; }`)
	parseOK(t, `lbl: { break lbl; }`)
	parseOK(t, `lbl: break lbl;`)
	parseOK(t, `sw: switch (x) { default: break sw; }`)

	parseFail(t, `break;`, "illegal break")
	parseFail(t, `continue;`, "illegal continue")
	parseFail(t, `while (1) { break missing; }`, "missing")
	parseFail(t, `lbl: { continue lbl; }`, "lbl")
	parseFail(t, `lbl: { } while (1) { break lbl; }`, "lbl")
	parseFail(t, `a: a: ;`, "already been declared")
}

func TestLabelDoesNotLeakToLaterLoop(t *testing.T) {
	// The label attaches to the empty block, not the following loop.
	parseFail(t, `x: { } for (;;) { break x; }`, "x")
}

func TestForStatementVariants(t *testing.T) {
	parseOK(t, `for (;;) break;`)
	parseOK(t, `for (var i = 0; i < 3; i++) ;`)
	parseOK(t, `for (i = 0, j = 9; i < j; i++, j--) ;`)
	parseOK(t, `for (var k in obj) ;`)
	parseOK(t, `for (k in obj) ;`)
	prog := parseOK(t, `for (var k in obj) ;`)
	fin, ok := prog.Body[0].(*ast.ForInStatement)
	if !ok {
		t.Fatalf("got %T", prog.Body[0])
	}
	if !fin.Declare || fin.VarName != "k" {
		t.Fatalf("Declare=%t VarName=%q", fin.Declare, fin.VarName)
	}
}

func TestRegexLiteralPositions(t *testing.T) {
	prog := parseOK(t, `var re = /ab+c/gi;`)
	vs := prog.Body[0].(*ast.VariableStatement)
	re, ok := vs.Declarations[0].Init.(*ast.RegexLiteral)
	if !ok {
		t.Fatalf("init is %T, want regex literal", vs.Declarations[0].Init)
	}
	if re.Pattern != "ab+c" || re.Flags != "gi" {
		t.Fatalf("pattern=%q flags=%q", re.Pattern, re.Flags)
	}
	// Division in an operand position must not scan as a regex.
	parseOK(t, `var x = a / b / c;`)
}

func TestMemberAccessWithReservedWords(t *testing.T) {
	// IdentifierName after `.` accepts reserved words.
	parseOK(t, `obj.if = 1; obj.delete; obj.new;`)
	parseOK(t, `var o = { "if": 1, in: 2, 3: "x" };`)
}

func TestObjectLiteralAccessors(t *testing.T) {
	prog := parseOK(t, `var o = { get x() { return 1; }, set x(v) {} };`)
	vs := prog.Body[0].(*ast.VariableStatement)
	ol := vs.Declarations[0].Init.(*ast.ObjectLiteral)
	if len(ol.Properties) != 2 {
		t.Fatalf("got %d properties", len(ol.Properties))
	}
	if ol.Properties[0].Kind != ast.PropertyGet || ol.Properties[1].Kind != ast.PropertySet {
		t.Fatal("accessor kinds not recognized")
	}
	// Duplicate data + accessor of the same name is an error in any mode.
	parseFail(t, `var o = { x: 1, get x() {} };`, "")
}

func TestDirectEvalTagging(t *testing.T) {
	prog := parseOK(t, `eval("x"); other("x"); obj.eval("x");`)
	calls := make([]*ast.CallExpression, 0, 3)
	for _, s := range prog.Body {
		calls = append(calls, s.(*ast.ExpressionStatement).Expression.(*ast.CallExpression))
	}
	if !calls[0].IsDirectEvalCandidate {
		t.Fatal("bare eval(...) must be tagged as a direct-eval candidate")
	}
	if calls[1].IsDirectEvalCandidate || calls[2].IsDirectEvalCandidate {
		t.Fatal("only the bare identifier eval is a direct-eval candidate")
	}
}

func TestSyntaxErrorPositions(t *testing.T) {
	_, errs := ParseProgram("var a = 1;\nvar = 2;", "file.js", false)
	if len(errs) == 0 {
		t.Fatal("expected an error")
	}
	if errs[0].Pos.Line != 2 {
		t.Fatalf("error line = %d, want 2", errs[0].Pos.Line)
	}
	if !strings.HasPrefix(errs[0].Error(), "file.js:2:") {
		t.Fatalf("error not prefixed with filename:line: %q", errs[0].Error())
	}
}

func TestErrorRecoveryReportsMultiple(t *testing.T) {
	_, errs := ParseProgram("var = 1;\nvar = 2;", "file.js", false)
	if len(errs) < 2 {
		t.Fatalf("expected at least 2 errors after recovery, got %d", len(errs))
	}
}

func TestNestedFunctionScopes(t *testing.T) {
	prog := parseOK(t, `function a() { var x; function b() { var y; } }`)
	fa := prog.Scope.FunctionDeclarations[0]
	if fa.Scope.Parent != prog.Scope {
		t.Fatal("function scope parent not wired to the program scope")
	}
	fb := fa.Scope.FunctionDeclarations[0]
	if fb.Scope.Parent != fa.Scope {
		t.Fatal("nested function scope parent not wired")
	}
	if len(fa.Scope.VarDeclared) != 1 || fa.Scope.VarDeclared[0] != "x" {
		t.Fatalf("a's vars = %v", fa.Scope.VarDeclared)
	}
}
