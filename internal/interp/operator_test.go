package interp

import (
	"math"
	"testing"

	"github.com/cwbudde/go-es5/internal/runtime"
)

func TestAdditionOperator(t *testing.T) {
	wantNumber(t, mustRun(t, `1 + 2;`), 3)
	wantString(t, mustRun(t, `"a" + 1;`), "a1")
	wantString(t, mustRun(t, `1 + "a";`), "1a")
	wantString(t, mustRun(t, `"" + null;`), "null")
	wantString(t, mustRun(t, `"" + undefined;`), "undefined")
	// Objects coerce through ToPrimitive before the string check.
	wantString(t, mustRun(t, `({toString: function(){ return "obj"; }}) + "!";`), "obj!")
	wantNumber(t, mustRun(t, `true + true;`), 2)
	wantString(t, mustRun(t, `[1,2] + "";`), "1,2")
}

func TestArithmeticEdgeCases(t *testing.T) {
	wantBool(t, mustRun(t, `+0 === -0;`), true)
	wantNumber(t, mustRun(t, `1 / +0;`), math.Inf(1))
	wantNumber(t, mustRun(t, `var z = -0; 1 / z;`), math.Inf(-1))
	wantBool(t, mustRun(t, `NaN !== NaN;`), true)
	wantNumber(t, mustRun(t, `0 / 0;`), math.NaN())
	wantNumber(t, mustRun(t, `5 % 3;`), 2)
	wantNumber(t, mustRun(t, `"8" * "4";`), 32)
}

func TestShiftMasking(t *testing.T) {
	wantNumber(t, mustRun(t, `var n = 32; 1 << n;`), 1)
	wantNumber(t, mustRun(t, `var n = 1; -1 >>> n;`), 2147483647)
	wantNumber(t, mustRun(t, `var n = 1; -8 >> n;`), -4)
	// The parser folds literal operands; both paths must agree.
	wantNumber(t, mustRun(t, `1 << 32;`), 1)
	wantNumber(t, mustRun(t, `-1 >>> 0;`), 4294967295)
}

func TestBitwiseOperators(t *testing.T) {
	wantNumber(t, mustRun(t, `var a = 12, b = 10; a & b;`), 8)
	wantNumber(t, mustRun(t, `var a = 12, b = 10; a | b;`), 14)
	wantNumber(t, mustRun(t, `var a = 12, b = 10; a ^ b;`), 6)
	wantNumber(t, mustRun(t, `var a = 0; ~a;`), -1)
	wantNumber(t, mustRun(t, `var x = "255"; x & 0xff;`), 255)
}

func TestAbstractEquality(t *testing.T) {
	wantBool(t, mustRun(t, `null == undefined;`), true)
	wantBool(t, mustRun(t, `null == 0;`), false)
	wantBool(t, mustRun(t, `1 == "1";`), true)
	wantBool(t, mustRun(t, `true == 1;`), true)
	wantBool(t, mustRun(t, `false == "";`), true)
	wantBool(t, mustRun(t, `({valueOf: function(){ return 3; }}) == 3;`), true)
	wantBool(t, mustRun(t, `var o = {}; o == o;`), true)
	wantBool(t, mustRun(t, `({}) == ({});`), false)
}

func TestStrictEquality(t *testing.T) {
	wantBool(t, mustRun(t, `1 === 1;`), true)
	wantBool(t, mustRun(t, `1 === "1";`), false)
	wantBool(t, mustRun(t, `null === undefined;`), false)
	wantBool(t, mustRun(t, `"abc" === "abc";`), true)
}

func TestRelationalOperators(t *testing.T) {
	wantBool(t, mustRun(t, `1 < 2;`), true)
	wantBool(t, mustRun(t, `2 <= 2;`), true)
	wantBool(t, mustRun(t, `3 > 2;`), true)
	wantBool(t, mustRun(t, `"a" < "b";`), true)
	wantBool(t, mustRun(t, `"10" < "9";`), true) // both strings: code-unit order
	wantBool(t, mustRun(t, `10 < "9";`), false)  // mixed: numeric
	// NaN poisons every relational operator, including <= and >=.
	wantBool(t, mustRun(t, `NaN < 1;`), false)
	wantBool(t, mustRun(t, `NaN >= 1;`), false)
	wantBool(t, mustRun(t, `1 <= NaN;`), false)
}

func TestLogicalShortCircuit(t *testing.T) {
	// The right side must not evaluate when the left decides.
	wantNumber(t, mustRun(t, `var n = 0; false && n++; n;`), 0)
	wantNumber(t, mustRun(t, `var n = 0; true || n++; n;`), 0)
	// && / || yield the deciding operand, not a boolean.
	wantString(t, mustRun(t, `"left" || "right";`), "left")
	wantString(t, mustRun(t, `null || "right";`), "right")
	wantNumber(t, mustRun(t, `1 && 2;`), 2)
}

func TestTypeofOperator(t *testing.T) {
	wantString(t, mustRun(t, `typeof 1;`), "number")
	wantString(t, mustRun(t, `typeof "s";`), "string")
	wantString(t, mustRun(t, `typeof true;`), "boolean")
	wantString(t, mustRun(t, `typeof undefined;`), "undefined")
	wantString(t, mustRun(t, `typeof null;`), "object")
	wantString(t, mustRun(t, `typeof {};`), "object")
	wantString(t, mustRun(t, `typeof function(){};`), "function")
	// An unresolvable reference must not throw under typeof.
	wantString(t, mustRun(t, `typeof neverDeclared;`), "undefined")
}

func TestDeleteOperator(t *testing.T) {
	wantBool(t, mustRun(t, `var o = {x: 1}; delete o.x;`), true)
	wantBool(t, mustRun(t, `var o = {x: 1}; delete o.x; "x" in o;`), false)
	wantBool(t, mustRun(t, `delete 42;`), true)
	wantBool(t, mustRun(t, `delete neverDeclared;`), true)
	// length on a string wrapper is non-configurable.
	wantBool(t, mustRun(t, `delete new String("ab").length;`), false)
	// Deleting survivors must not reorder the remaining keys.
	src := `
		var o = {a:1, b:2, c:3, d:4};
		delete o.b;
		var keys = [];
		for (var k in o) keys.push(k);
		keys.join(",");`
	wantString(t, mustRun(t, src), "a,c,d")
}

func TestInOperator(t *testing.T) {
	wantBool(t, mustRun(t, `"x" in {x: undefined};`), true)
	wantBool(t, mustRun(t, `"y" in {x: 1};`), false)
	wantBool(t, mustRun(t, `"toString" in {};`), true) // inherited counts
	_, _, err := runSource(t, `"x" in "not an object";`)
	if err == nil {
		t.Fatal("expected TypeError for `in` on a primitive")
	}
}

func TestInstanceofOperator(t *testing.T) {
	wantBool(t, mustRun(t, `function C(){} new C() instanceof C;`), true)
	wantBool(t, mustRun(t, `function C(){} function D(){} new C() instanceof D;`), false)
	wantBool(t, mustRun(t, `new TypeError("x") instanceof Error;`), true)
	wantBool(t, mustRun(t, `1 instanceof Object;`), false)
	_, _, err := runSource(t, `({}) instanceof 1;`)
	if err == nil {
		t.Fatal("expected TypeError for instanceof with non-callable RHS")
	}
}

func TestConditionalAndSequence(t *testing.T) {
	wantString(t, mustRun(t, `true ? "a" : "b";`), "a")
	wantString(t, mustRun(t, `0 ? "a" : "b";`), "b")
	wantNumber(t, mustRun(t, `(1, 2, 3);`), 3)
}

func TestUpdateExpressions(t *testing.T) {
	wantNumber(t, mustRun(t, `var i = 5; i++;`), 5)
	wantNumber(t, mustRun(t, `var i = 5; i++; i;`), 6)
	wantNumber(t, mustRun(t, `var i = 5; ++i;`), 6)
	wantNumber(t, mustRun(t, `var i = 5; --i; i;`), 4)
	// Update coerces through ToNumber.
	wantNumber(t, mustRun(t, `var s = "4"; s++; s;`), 5)
	wantNumber(t, mustRun(t, `var o = {p: 1}; o.p++; o.p;`), 2)
}

func TestCompoundAssignment(t *testing.T) {
	wantNumber(t, mustRun(t, `var x = 10; x -= 4; x;`), 6)
	wantString(t, mustRun(t, `var s = "a"; s += "b"; s;`), "ab")
	wantNumber(t, mustRun(t, `var x = 7; x %= 4; x;`), 3)
	wantNumber(t, mustRun(t, `var x = 2; x <<= 3; x;`), 16)
	// The LHS reference is read before the RHS evaluates.
	src := `var o = {n: 1}; o.n += (o.n = 10, 5); o.n;`
	wantNumber(t, mustRun(t, src), 6)
}

func TestVoidOperator(t *testing.T) {
	v := mustRun(t, `void "anything";`)
	if _, ok := v.(runtime.UndefinedValue); !ok {
		t.Fatalf("void produced %s", v.Kind())
	}
}

func TestAssignmentYieldsRHS(t *testing.T) {
	wantNumber(t, mustRun(t, `var x; (x = 5);`), 5)
	wantNumber(t, mustRun(t, `var a, b; a = b = 3; a;`), 3)
}
