package interp

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/cwbudde/go-es5/internal/parser"
	"github.com/cwbudde/go-es5/internal/runtime"
)

func TestPrintWritesToConfiguredOutput(t *testing.T) {
	var buf bytes.Buffer
	ctx := NewContext(WithOutput(&buf))
	prog, errs := parser.ParseProgram(`print("hello", 1, true);`, "t.js", false)
	if len(errs) > 0 {
		t.Fatalf("parse: %v", errs[0])
	}
	if _, err := ctx.Run(prog); err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := buf.String(); got != "hello 1 true\n" {
		t.Fatalf("print wrote %q", got)
	}
}

func TestObjectPrototypeMethods(t *testing.T) {
	wantString(t, mustRun(t, `({}).toString();`), "[object Object]")
	wantString(t, mustRun(t, `Object.prototype.toString.call([]);`), "[object Array]")
	wantBool(t, mustRun(t, `({x: 1}).hasOwnProperty("x");`), true)
	wantBool(t, mustRun(t, `({}).hasOwnProperty("toString");`), false)
	wantBool(t, mustRun(t, `Object.prototype.isPrototypeOf({});`), true)
	wantBool(t, mustRun(t, `({a: 1}).propertyIsEnumerable("a");`), true)
	wantBool(t, mustRun(t, `[].propertyIsEnumerable("length");`), false)
}

func TestObjectConstructor(t *testing.T) {
	wantString(t, mustRun(t, `typeof Object();`), "object")
	wantString(t, mustRun(t, `typeof new Object();`), "object")
	wantBool(t, mustRun(t, `var o = {x: 1}; Object(o) === o;`), true)
}

func TestErrorBuiltins(t *testing.T) {
	wantString(t, mustRun(t, `new Error("msg").message;`), "msg")
	wantString(t, mustRun(t, `new RangeError("r").name;`), "RangeError")
	wantString(t, mustRun(t, `new TypeError("bad").toString();`), "TypeError: bad")
	wantString(t, mustRun(t, `new Error().toString();`), "Error")
	wantBool(t, mustRun(t, `new SyntaxError("x") instanceof Error;`), true)
	// Calling an error constructor without new still constructs.
	wantString(t, mustRun(t, `TypeError("called").message;`), "called")
}

func TestWrapperCoercionEntryPoints(t *testing.T) {
	wantString(t, mustRun(t, `(5).toString();`), "5")
	wantNumber(t, mustRun(t, `new Number(8).valueOf();`), 8)
	wantString(t, mustRun(t, `new Boolean(true).toString();`), "true")
	wantString(t, mustRun(t, `new String("wrapped").valueOf();`), "wrapped")
	wantNumber(t, mustRun(t, `new String("abc").length;`), 3)
	// Wrapper + primitive coerces through valueOf.
	wantNumber(t, mustRun(t, `new Number(4) + 1;`), 5)
}

func TestStringPrototypeMethods(t *testing.T) {
	wantString(t, mustRun(t, `"hello".charAt(1);`), "e")
	wantNumber(t, mustRun(t, `"hello".charCodeAt(0);`), 104)
	wantNumber(t, mustRun(t, `"hello".indexOf("llo");`), 2)
	wantNumber(t, mustRun(t, `"hello".indexOf("z");`), -1)
	wantString(t, mustRun(t, `"hello".substring(1, 3);`), "el")
	wantString(t, mustRun(t, `"hello".substring(3, 1);`), "el") // swapped bounds
	wantString(t, mustRun(t, `"a,b,c".split(",").join("|");`), "a|b|c")
	// String indexing on a primitive base reads through the reference.
	wantString(t, mustRun(t, `"abc"[1];`), "b")
	wantNumber(t, mustRun(t, `"abc".length;`), 3)
}

func TestArrayBuiltins(t *testing.T) {
	wantNumber(t, mustRun(t, `[1,2,3].length;`), 3)
	wantNumber(t, mustRun(t, `var a = []; a.push(9); a.length;`), 1)
	wantNumber(t, mustRun(t, `var a = [1,2]; a.push(3, 4); a.length;`), 4)
	wantNumber(t, mustRun(t, `[5, 6, 7].pop();`), 7)
	wantNumber(t, mustRun(t, `var a = [5, 6]; a.pop(); a.length;`), 1)
	wantString(t, mustRun(t, `[1, "x", true].join("-");`), "1-x-true")
	wantString(t, mustRun(t, `[1, null, 2, undefined, 3].join(",");`), "1,,2,,3")
	wantNumber(t, mustRun(t, `[4, 5, 6].indexOf(5);`), 1)
	wantString(t, mustRun(t, `[1,2,3,4].slice(1, 3).join(",");`), "2,3")
	wantString(t, mustRun(t, `[1,2,3,4].slice(-2).join(",");`), "3,4")
	wantBool(t, mustRun(t, `Array.isArray([]);`), true)
	wantBool(t, mustRun(t, `Array.isArray({});`), false)
	wantNumber(t, mustRun(t, `new Array(5).length;`), 5)
	wantNumber(t, mustRun(t, `new Array(1, 2, 3).length;`), 3)
	// Elisions contribute to length but stay absent.
	wantNumber(t, mustRun(t, `[1,,3].length;`), 3)
	wantBool(t, mustRun(t, `"1" in [1,,3];`), false)
}

func TestGlobalNumericFunctions(t *testing.T) {
	wantBool(t, mustRun(t, `isNaN("not a number");`), true)
	wantBool(t, mustRun(t, `isNaN("12");`), false)
	wantBool(t, mustRun(t, `isFinite(1/0);`), false)
	wantNumber(t, mustRun(t, `parseInt("42");`), 42)
	wantNumber(t, mustRun(t, `parseInt("  -13px");`), -13)
	wantNumber(t, mustRun(t, `parseInt("0x1f");`), 31)
	wantNumber(t, mustRun(t, `parseInt("101", 2);`), 5)
	wantNumber(t, mustRun(t, `parseInt("zz", 36);`), 1295)
	wantBool(t, mustRun(t, `isNaN(parseInt("px"));`), true)
	wantNumber(t, mustRun(t, `parseFloat("3.25rem");`), 3.25)
	wantBool(t, mustRun(t, `isNaN(parseFloat("rem"));`), true)
	// Go's float parser accepts "inf" spellings; the numeric grammar does
	// not, so these must all be NaN.
	wantBool(t, mustRun(t, `isNaN(parseFloat("inf"));`), true)
	wantBool(t, mustRun(t, `isNaN(Number("inf"));`), true)
	wantBool(t, mustRun(t, `isNaN(Number("infinity"));`), true)
	wantBool(t, mustRun(t, `isNaN(Number("  inf  "));`), true)
	wantNumber(t, mustRun(t, `Number("Infinity");`), math.Inf(1))
	wantNumber(t, mustRun(t, `parseFloat("Infinity");`), math.Inf(1))
}

func TestNumberStringification(t *testing.T) {
	wantString(t, mustRun(t, `String(1e20);`), "100000000000000000000")
	wantString(t, mustRun(t, `String(1e21);`), "1e+21")
	wantString(t, mustRun(t, `String(0.000001);`), "0.000001")
	wantString(t, mustRun(t, `String(1e-7);`), "1e-7")
	wantString(t, mustRun(t, `1e-7 + "";`), "1e-7")
	wantString(t, mustRun(t, `JSON.stringify([1e21, 0.000001]);`), `[1e+21,0.000001]`)
}

func TestMathObject(t *testing.T) {
	wantNumber(t, mustRun(t, `Math.floor(2.9);`), 2)
	wantNumber(t, mustRun(t, `Math.abs(-4);`), 4)
	wantNumber(t, mustRun(t, `Math.max(1, 9, 3);`), 9)
	wantNumber(t, mustRun(t, `Math.min(1, 9, 3);`), 1)
	wantNumber(t, mustRun(t, `Math.pow(2, 10);`), 1024)
	wantNumber(t, mustRun(t, `Math.round(2.5);`), 3)
	wantNumber(t, mustRun(t, `Math.round(-2.5);`), -2) // half rounds toward +Infinity
	wantBool(t, mustRun(t, `var r = Math.random(); r >= 0 && r < 1;`), true)
}

func TestMathRandomIsSeeded(t *testing.T) {
	run := func() string {
		ctx := NewContext(WithRandSeed(7))
		v, _, err := ctx.RunSource(`"" + Math.random() + "," + Math.random();`, "rng.js", false)
		if err != nil {
			t.Fatalf("run: %v", err)
		}
		s, _ := runtime.ToString(ctx, v)
		return s
	}
	if run() != run() {
		t.Fatal("same seed must reproduce the same sequence")
	}
}

func TestJSONParse(t *testing.T) {
	wantNumber(t, mustRun(t, `JSON.parse("3.5");`), 3.5)
	wantBool(t, mustRun(t, `JSON.parse("true");`), true)
	wantString(t, mustRun(t, `JSON.parse('"s"');`), "s")
	wantBool(t, mustRun(t, `JSON.parse("null") === null;`), true)
	wantNumber(t, mustRun(t, `JSON.parse('{"a": {"b": [1, 2, 3]}}').a.b[2];`), 3)
	wantNumber(t, mustRun(t, `JSON.parse("[10, 20]").length;`), 2)

	// Document order becomes property insertion order.
	src := `
		var o = JSON.parse('{"z": 1, "a": 2, "m": 3}');
		var keys = [];
		for (var k in o) keys.push(k);
		keys.join(",");`
	wantString(t, mustRun(t, src), "z,a,m")

	src = `var r; try { JSON.parse("{bad"); } catch (e) { r = e.name; } r;`
	wantString(t, mustRun(t, src), "SyntaxError")
}

func TestJSONStringify(t *testing.T) {
	wantString(t, mustRun(t, `JSON.stringify(1.5);`), "1.5")
	wantString(t, mustRun(t, `JSON.stringify("x\n");`), `"x\n"`)
	wantString(t, mustRun(t, `JSON.stringify(null);`), "null")
	wantString(t, mustRun(t, `JSON.stringify(true);`), "true")
	wantString(t, mustRun(t, `typeof JSON.stringify(undefined);`), "undefined")
	wantString(t, mustRun(t, `JSON.stringify([1, "a", null]);`), `[1,"a",null]`)
	// Functions vanish from objects and become null in arrays.
	wantString(t, mustRun(t, `JSON.stringify({f: function(){}, n: 1});`), `{"n":1}`)
	wantString(t, mustRun(t, `JSON.stringify([function(){}]);`), `[null]`)
	// NaN and Infinity serialize as null.
	wantString(t, mustRun(t, `JSON.stringify([0/0, 1/0]);`), `[null,null]`)

	// Insertion order is preserved on output.
	wantString(t, mustRun(t, `JSON.stringify({z: 1, a: {m: true, b: "x"}});`), `{"z":1,"a":{"m":true,"b":"x"}}`)

	// Round trip keeps order.
	src := `JSON.stringify(JSON.parse('{"q":1,"b":[2,{"k":null}]}'));`
	wantString(t, mustRun(t, src), `{"q":1,"b":[2,{"k":null}]}`)

	src = `var a = {}; a.self = a; var r; try { JSON.stringify(a); } catch (e) { r = e.name; } r;`
	wantString(t, mustRun(t, src), "TypeError")
}

func TestGlobalConstants(t *testing.T) {
	wantBool(t, mustRun(t, `isNaN(NaN);`), true)
	wantBool(t, mustRun(t, `Infinity > 0 && !isFinite(Infinity);`), true)
	wantString(t, mustRun(t, `typeof undefined;`), "undefined")
	// Global NaN/Infinity/undefined are read-only.
	wantBool(t, mustRun(t, `NaN = 1; isNaN(NaN);`), true)
}

func TestFunctionPrototypeToString(t *testing.T) {
	v := mustRun(t, `print.toString();`)
	s, ok := v.(runtime.StringValue)
	if !ok || !strings.Contains(string(s), "[native code]") {
		t.Fatalf("got %v", runtime.Describe(v))
	}
}
