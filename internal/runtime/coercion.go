package runtime

import (
	"math"
	"strconv"
	"strings"
)

// Hint selects the preferred primitive type for ToPrimitive and
// [[DefaultValue]] (8.12.8).
type Hint int

const (
	HintNone Hint = iota
	HintNumber
	HintString
)

// ToPrimitive implements 9.1: primitives pass through unchanged; objects
// call [[DefaultValue]](hint).
func ToPrimitive(h Host, v Value, hint Hint) (Value, error) {
	ov, ok := v.(ObjectValue)
	if !ok {
		return v, nil
	}
	return DefaultValue(h, ov.Object, hint)
}

// DefaultValue implements 8.12.8: tries valueOf/toString in the order the
// hint dictates (Number: valueOf first; String: toString first; None:
// Number's order, except objects whose Class is "Date" take String's
// order).
func DefaultValue(h Host, o *Object, hint Hint) (Value, error) {
	if hint == HintNone {
		if o.Class == "Date" {
			hint = HintString
		} else {
			hint = HintNumber
		}
	}
	methods := [2]string{"valueOf", "toString"}
	if hint == HintString {
		methods = [2]string{"toString", "valueOf"}
	}
	for _, name := range methods {
		fnVal, err := o.Get(h, name)
		if err != nil {
			return Undefined, err
		}
		fn := AsObject(fnVal)
		if fn == nil || fn.Call == nil {
			continue
		}
		result, err := h.Call(fn, Obj(o), nil)
		if err != nil {
			return Undefined, err
		}
		if _, isObj := result.(ObjectValue); !isObj {
			return result, nil
		}
	}
	return Undefined, ThrowTypeError(h, "cannot convert object to a primitive value")
}

// ToBoolean implements 9.2.
func ToBoolean(v Value) bool {
	switch t := v.(type) {
	case UndefinedValue, NullValue:
		return false
	case BooleanValue:
		return bool(t)
	case NumberValue:
		f := float64(t)
		return f != 0 && !math.IsNaN(f)
	case StringValue:
		return len(string(t)) != 0
	case ObjectValue:
		return true
	}
	return false
}

// ToNumber implements 9.3.
func ToNumber(h Host, v Value) (float64, error) {
	switch t := v.(type) {
	case UndefinedValue:
		return math.NaN(), nil
	case NullValue:
		return 0, nil
	case BooleanValue:
		if t {
			return 1, nil
		}
		return 0, nil
	case NumberValue:
		return float64(t), nil
	case StringValue:
		return StringToDouble(string(t)), nil
	case ObjectValue:
		prim, err := ToPrimitive(h, v, HintNumber)
		if err != nil {
			return 0, err
		}
		return ToNumber(h, prim)
	}
	return math.NaN(), nil
}

// StringToDouble implements the StringNumericLiteral grammar (9.3.1):
// optional leading/trailing whitespace and line terminators, an optional
// sign, then Infinity / a decimal literal / a 0x-or-0X hex literal; empty
// or whitespace-only input is +0, and a bare "0x" with no hex digits is
// NaN.
func StringToDouble(s string) float64 {
	trimmed := strings.TrimFunc(s, isStrWhiteOrLineTerm)
	if trimmed == "" {
		return 0
	}

	neg := false
	rest := trimmed
	if len(rest) > 0 && (rest[0] == '+' || rest[0] == '-') {
		neg = rest[0] == '-'
		rest = rest[1:]
	}

	if rest == "Infinity" {
		if neg {
			return math.Inf(-1)
		}
		return math.Inf(1)
	}

	if len(rest) >= 2 && rest[0] == '0' && (rest[1] == 'x' || rest[1] == 'X') {
		digits := rest[2:]
		if digits == "" {
			return math.NaN()
		}
		v, err := strconv.ParseUint(digits, 16, 64)
		if err != nil {
			return math.NaN()
		}
		f := float64(v)
		if neg {
			f = -f
		}
		return f
	}

	if !isStrDecimalLiteral(rest) {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(rest, 64)
	if err != nil {
		return math.NaN()
	}
	if neg {
		f = -f
	}
	return f
}

// isStrDecimalLiteral recognizes the unsigned StrUnsignedDecimalLiteral
// grammar (9.3.1): digits, digits '.' digits?, or '.' digits, each with an
// optional exponent part. Go's ParseFloat is laxer -- it also accepts
// "inf"/"infinity" in any case, and underscores in some forms -- so the
// input is validated here first; only the exact token Infinity (handled
// by the caller) may produce an infinity.
func isStrDecimalLiteral(s string) bool {
	i := 0
	digits := func() int {
		start := i
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
		}
		return i - start
	}

	intLen := digits()
	fracLen := 0
	if i < len(s) && s[i] == '.' {
		i++
		fracLen = digits()
	}
	if intLen == 0 && fracLen == 0 {
		return false
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		if digits() == 0 {
			return false
		}
	}
	return i == len(s)
}

func isStrWhiteOrLineTerm(r rune) bool {
	return isWhiteSpaceRune(r) || isLineTermRune(r)
}

// isWhiteSpaceRune/isLineTermRune duplicate the lexer's whitespace/line
// terminator classification without importing the lexer
// package, since StringToDouble is a runtime-level coercion, not a lexical
// concern.
func isWhiteSpaceRune(r rune) bool {
	switch r {
	case '\t', '\v', '\f', ' ', '\u00a0', '\ufeff':
		return true
	}
	return false
}

func isLineTermRune(r rune) bool {
	switch r {
	case '\n', '\r', '\u2028', '\u2029':
		return true
	}
	return false
}

// ToInt32 implements 9.5, ported from the same conversions.h fast-path
// shape: fast-exit for NaN/±Infinity/±0, otherwise floor(|d|)*sign reduced
// modulo 2^32 and reinterpreted as signed.
func ToInt32(h Host, v Value) (int32, error) {
	f, err := ToNumber(h, v)
	if err != nil {
		return 0, err
	}
	return DoubleToInt32(f), nil
}

// ToUInt32 implements 9.6.
func ToUInt32(h Host, v Value) (uint32, error) {
	f, err := ToNumber(h, v)
	if err != nil {
		return 0, err
	}
	return DoubleToUInt32(f), nil
}

func DoubleToUInt32(d float64) uint32 {
	if math.IsNaN(d) || math.IsInf(d, 0) || d == 0 {
		return 0
	}
	sign := 1.0
	if d < 0 {
		sign = -1
	}
	m := math.Floor(math.Abs(d))
	m = math.Mod(m, 4294967296) // 2^32
	if m < 0 {
		m += 4294967296
	}
	if sign < 0 {
		m = 4294967296 - m
		if m == 4294967296 {
			m = 0
		}
	}
	return uint32(uint64(m))
}

// DoubleToInt32 reinterprets DoubleToUInt32's bit pattern as signed,
// satisfying the testable property "DoubleToInt32(d) mod 2^32 equals
// DoubleToUInt32(d) mod 2^32".
func DoubleToInt32(d float64) int32 {
	return int32(DoubleToUInt32(d))
}

// ToString implements 9.8.
func ToString(h Host, v Value) (string, error) {
	switch t := v.(type) {
	case UndefinedValue:
		return "undefined", nil
	case NullValue:
		return "null", nil
	case BooleanValue:
		if t {
			return "true", nil
		}
		return "false", nil
	case NumberValue:
		return NumberToString(float64(t)), nil
	case StringValue:
		return string(t), nil
	case ObjectValue:
		prim, err := ToPrimitive(h, v, HintString)
		if err != nil {
			return "", err
		}
		return ToString(h, prim)
	}
	return "", nil
}

// NumberToString implements 9.8.1. The shortest round-trip digit string
// comes from Go's float formatter; the layout around it -- fixed notation
// for exponents in (-6, 21], exponential otherwise, exponent printed with
// an explicit sign and no leading zero -- follows the k/n algorithm of
// the clause, so String(1e20) is "100000000000000000000" and String(1e-7)
// is "1e-7".
func NumberToString(f float64) string {
	if math.IsNaN(f) {
		return "NaN"
	}
	if math.IsInf(f, 1) {
		return "Infinity"
	}
	if math.IsInf(f, -1) {
		return "-Infinity"
	}
	if f == 0 {
		return "0"
	}
	if f < 0 {
		return "-" + NumberToString(-f)
	}

	// Shortest digits via 'e' format: "d[.ddd]e±XX" gives the decimal
	// mantissa and exponent directly.
	mant := strconv.FormatFloat(f, 'e', -1, 64)
	ePos := strings.IndexByte(mant, 'e')
	exp10, _ := strconv.Atoi(mant[ePos+1:])
	digits := mant[:ePos]
	if dot := strings.IndexByte(digits, '.'); dot >= 0 {
		digits = digits[:dot] + digits[dot+1:]
	}

	// With s = digits (no trailing zeros), k = len(s), the value is
	// s * 10^(n-k) where n is the position of the decimal point.
	k := len(digits)
	n := exp10 + 1

	switch {
	case k <= n && n <= 21:
		return digits + strings.Repeat("0", n-k)
	case 0 < n && n <= 21:
		return digits[:n] + "." + digits[n:]
	case -6 < n && n <= 0:
		return "0." + strings.Repeat("0", -n) + digits
	}

	e := n - 1
	sign := "+"
	if e < 0 {
		sign = "-"
		e = -e
	}
	mantissa := digits[:1]
	if k > 1 {
		mantissa += "." + digits[1:]
	}
	return mantissa + "e" + sign + strconv.Itoa(e)
}

// ToObject implements 9.9: wraps a primitive in its corresponding wrapper
// object, or returns the object unchanged; undefined/null raise TypeError.
func ToObject(h Host, v Value) (*Object, error) {
	switch t := v.(type) {
	case UndefinedValue, NullValue:
		return nil, ThrowTypeError(h, "cannot convert undefined or null to object")
	case ObjectValue:
		return t.Object, nil
	default:
		proto := h.ToObjectPrototypeFor(v.Kind())
		wrapperClass := map[ValueKind]string{KindBoolean: "Boolean", KindNumber: "Number", KindString: "String"}[v.Kind()]
		o := NewObject(proto, wrapperClass)
		o.PrimitiveValue = v
		if s, ok := v.(StringValue); ok {
			installStringIndices(o, string(s))
		}
		return o, nil
	}
}

func installStringIndices(o *Object, s string) {
	runes := []rune(s)
	o.DefineOwnData("length", Num(float64(len(runes))), false, false, false)
	for i, r := range runes {
		o.DefineOwnData(strconv.Itoa(i), Str(string(r)), false, true, false)
	}
}
