package runtime

import (
	"math"
	"math/rand"
	"testing"
)

// sampleDoubles yields a deterministic mix of boundary and random values
// for the numeric property checks.
func sampleDoubles() []float64 {
	out := []float64{
		0, math.Copysign(0, -1), 1, -1, 0.5, -0.5,
		math.MaxFloat64, -math.MaxFloat64, math.SmallestNonzeroFloat64,
		2147483647, -2147483648, 2147483648, 4294967295, 4294967296,
		1e21, -1e21, 0.1, 1.0 / 3.0,
	}
	rng := rand.New(rand.NewSource(99))
	for i := 0; i < 500; i++ {
		out = append(out, (rng.Float64()-0.5)*math.Pow(10, float64(rng.Intn(40)-20)))
	}
	return out
}

func TestNumberStringRoundTrip(t *testing.T) {
	h := newFakeHost()
	for _, d := range sampleDoubles() {
		s := NumberToString(d)
		back, err := ToNumber(h, Str(s))
		if err != nil {
			t.Fatalf("ToNumber(%q): %v", s, err)
		}
		if back != d && !(d == 0 && back == 0) {
			t.Fatalf("round trip %v -> %q -> %v", d, s, back)
		}
	}
	if NumberToString(math.NaN()) != "NaN" {
		t.Fatal("NaN must render as NaN")
	}
}

func TestInt32UInt32Agreement(t *testing.T) {
	values := sampleDoubles()
	values = append(values, math.NaN(), math.Inf(1), math.Inf(-1))
	for _, d := range values {
		i := DoubleToInt32(d)
		u := DoubleToUInt32(d)
		if uint32(i) != u {
			t.Fatalf("DoubleToInt32(%v)=%d and DoubleToUInt32(%v)=%d disagree mod 2^32", d, i, d, u)
		}
	}
}

func TestStrictEqualReflexive(t *testing.T) {
	values := []Value{
		Undefined, Null, Bool(true), Bool(false),
		Num(0), Num(math.Copysign(0, -1)), Num(1.5), Num(math.Inf(1)),
		Str(""), Str("x"), Obj(NewObject(nil, "Object")),
	}
	for _, v := range values {
		if !StrictEqual(v, v) {
			t.Fatalf("StrictEqual(%v, itself) is false", Describe(v))
		}
	}
	nan := Num(math.NaN())
	if StrictEqual(nan, nan) {
		t.Fatal("StrictEqual(NaN, NaN) must be false")
	}
}

func TestAbstractEqualSymmetric(t *testing.T) {
	h := newFakeHost()
	o := NewObject(nil, "Object")
	o.DefineOwnData("valueOf", Obj(nativeFn(func(h Host, this Value, args []Value) (Value, error) {
		return Num(1), nil
	})), true, false, true)
	obj := Obj(o)
	values := []Value{
		Undefined, Null, Bool(true), Bool(false),
		Num(0), Num(1), Num(math.NaN()), Str(""), Str("1"), Str("x"), obj,
	}
	for _, a := range values {
		for _, b := range values {
			ab, err := AbstractEqual(h, a, b)
			if err != nil {
				t.Fatalf("AbstractEqual(%v, %v): %v", Describe(a), Describe(b), err)
			}
			ba, err := AbstractEqual(h, b, a)
			if err != nil {
				t.Fatalf("AbstractEqual(%v, %v): %v", Describe(b), Describe(a), err)
			}
			if ab != ba {
				t.Fatalf("AbstractEqual not symmetric for %v, %v", Describe(a), Describe(b))
			}
		}
	}
}

func TestShiftCountMasking(t *testing.T) {
	// 1 << 32 must equal 1 at the semantic level: the count reduces
	// through ToUInt32 and masks with 0x1f.
	if DoubleToUInt32(32)&0x1f != 0 {
		t.Fatal("shift count 32 must mask to 0")
	}
	if DoubleToUInt32(33)&0x1f != 1 {
		t.Fatal("shift count 33 must mask to 1")
	}
}
