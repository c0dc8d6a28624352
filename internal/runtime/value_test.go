package runtime

import "testing"

func TestValueKinds(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want ValueKind
	}{
		{"undefined", Undefined, KindUndefined},
		{"null", Null, KindNull},
		{"bool", Bool(true), KindBoolean},
		{"number", Num(3.5), KindNumber},
		{"string", Str("hi"), KindString},
		{"object", Obj(NewObject(nil, "Object")), KindObject},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Kind(); got != tt.want {
				t.Errorf("Kind() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsCallable(t *testing.T) {
	plain := NewObject(nil, "Object")
	fn := NewObject(nil, "Function")
	fn.Call = func(h Host, this Value, args []Value) (Value, error) { return Undefined, nil }

	if IsCallable(Obj(plain)) {
		t.Error("plain object reported callable")
	}
	if !IsCallable(Obj(fn)) {
		t.Error("function object reported not callable")
	}
	if IsCallable(Num(1)) {
		t.Error("number reported callable")
	}
}

func TestTypeString(t *testing.T) {
	fn := NewObject(nil, "Function")
	fn.Call = func(h Host, this Value, args []Value) (Value, error) { return Undefined, nil }

	tests := []struct {
		v    Value
		want string
	}{
		{Undefined, "undefined"},
		{Null, "object"},
		{Bool(false), "boolean"},
		{Num(0), "number"},
		{Str(""), "string"},
		{Obj(NewObject(nil, "Object")), "object"},
		{Obj(fn), "function"},
	}
	for _, tt := range tests {
		if got := TypeString(tt.v); got != tt.want {
			t.Errorf("TypeString(%v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func TestAsObject(t *testing.T) {
	o := NewObject(nil, "Object")
	if AsObject(Obj(o)) != o {
		t.Error("AsObject did not round-trip the pointer")
	}
	if AsObject(Num(1)) != nil {
		t.Error("AsObject on a non-object should be nil")
	}
}
