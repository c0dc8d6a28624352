package runtime

import "testing"

func TestReferenceUnresolvableGetThrows(t *testing.T) {
	h := newFakeHost()
	ref := NewUnresolvableReference("missing", false)
	if _, err := ref.GetValue(h); err == nil {
		t.Fatal("GetValue on an unresolvable reference should throw")
	}
}

func TestReferenceEnvRoundTrip(t *testing.T) {
	h := newFakeHost()
	env := NewDeclarativeEnv(nil)
	env.CreateMutableBinding(h, "x", true)
	ref := NewEnvReference(env, "x", false)

	if err := ref.PutValue(h, Num(7)); err != nil {
		t.Fatal(err)
	}
	v, err := ref.GetValue(h)
	if err != nil || v != Num(7) {
		t.Fatalf("env reference round-trip = %v, %v", v, err)
	}
}

func TestReferencePropertyRoundTrip(t *testing.T) {
	h := newFakeHost()
	o := NewObject(nil, "Object")
	ref := NewPropertyReference(Obj(o), "x", false)

	if err := ref.PutValue(h, Str("hi")); err != nil {
		t.Fatal(err)
	}
	v, err := ref.GetValue(h)
	if err != nil || v != Str("hi") {
		t.Fatalf("property reference round-trip = %v, %v", v, err)
	}
	if !ref.IsPropertyReference() {
		t.Error("IsPropertyReference should be true for a property reference")
	}
}

func TestReferencePrimitiveBaseStringIndexAndLength(t *testing.T) {
	h := newFakeHost()
	ref := NewPropertyReference(Str("abc"), "length", false)
	v, err := ref.GetValue(h)
	if err != nil || v != Num(3) {
		t.Fatalf("string.length = %v, %v", v, err)
	}

	ref = NewPropertyReference(Str("abc"), "1", false)
	v, err = ref.GetValue(h)
	if err != nil || v != Str("b") {
		t.Fatalf("string[1] = %v, %v", v, err)
	}
}

func TestReferencePrimitiveBasePutNonStrictIsNoop(t *testing.T) {
	h := newFakeHost()
	ref := NewPropertyReference(Str("abc"), "foo", false)
	if err := ref.PutValue(h, Num(1)); err != nil {
		t.Fatalf("non-strict put to a primitive base should not error: %v", err)
	}
}

func TestReferencePrimitiveBasePutStrictThrows(t *testing.T) {
	h := newFakeHost()
	ref := NewPropertyReference(Str("abc"), "foo", true)
	if err := ref.PutValue(h, Num(1)); err == nil {
		t.Fatal("strict put to a primitive base without a reachable setter should throw")
	}
}

func TestReferenceUnresolvablePutNonStrictWritesGlobal(t *testing.T) {
	h := newFakeHost()
	ref := NewUnresolvableReference("g", false)
	if err := ref.PutValue(h, Num(1)); err != nil {
		t.Fatal(err)
	}
	v, err := h.GlobalObject().Get(h, "g")
	if err != nil || v != Num(1) {
		t.Fatalf("implicit global write = %v, %v", v, err)
	}
}

func TestReferenceUnresolvablePutStrictThrows(t *testing.T) {
	h := newFakeHost()
	ref := NewUnresolvableReference("g", true)
	if err := ref.PutValue(h, Num(1)); err == nil {
		t.Fatal("strict put to an unresolvable reference should throw")
	}
}
