package runtime

// fakeHost is a minimal runtime.Host stand-in for unit tests that don't
// need a real interpreter Context.
type fakeHost struct {
	global    *Object
	boolProto *Object
	numProto  *Object
	strProto  *Object
}

func newFakeHost() *fakeHost {
	return &fakeHost{
		global:    NewObject(nil, "global"),
		boolProto: NewObject(nil, "Boolean"),
		numProto:  NewObject(nil, "Number"),
		strProto:  NewObject(nil, "String"),
	}
}

func (h *fakeHost) NewError(kind, message string) Value {
	o := NewObject(nil, "Error")
	o.DefineOwnData("name", Str(kind), true, false, true)
	o.DefineOwnData("message", Str(message), true, false, true)
	return Obj(o)
}

func (h *fakeHost) ToObjectPrototypeFor(k ValueKind) *Object {
	switch k {
	case KindBoolean:
		return h.boolProto
	case KindNumber:
		return h.numProto
	case KindString:
		return h.strProto
	}
	return nil
}

func (h *fakeHost) Call(fn *Object, this Value, args []Value) (Value, error) {
	if fn == nil || fn.Call == nil {
		return Undefined, ThrowTypeError(h, "value is not callable")
	}
	return fn.Call(h, this, args)
}

func (h *fakeHost) GlobalObject() *Object { return h.global }
