package runtime

// RefKind is the classification of a Reference.
type RefKind int

const (
	RefUnresolvable RefKind = iota
	RefProperty
	RefEnv
)

// Reference is the intermediate evaluation result for the left-hand side
// of assignments, delete, typeof, and postfix/prefix ++/--.
// A Reference value must never be stored in a property or a binding;
// GetValue/PutValue are its only consumers.
type Reference struct {
	Kind RefKind

	// RefProperty
	Base Value // object or primitive value

	// RefEnv
	Env *Env

	Name   string
	Strict bool
}

func NewUnresolvableReference(name string, strict bool) *Reference {
	return &Reference{Kind: RefUnresolvable, Name: name, Strict: strict}
}

func NewPropertyReference(base Value, name string, strict bool) *Reference {
	return &Reference{Kind: RefProperty, Base: base, Name: name, Strict: strict}
}

func NewEnvReference(env *Env, name string, strict bool) *Reference {
	return &Reference{Kind: RefEnv, Env: env, Name: name, Strict: strict}
}

// GetValue implements 8.7.1. On a property reference with a primitive
// base, no wrapper Object is allocated: a string's length and index
// properties are read directly, anything else from the wrapper prototype.
func (r *Reference) GetValue(h Host) (Value, error) {
	switch r.Kind {
	case RefUnresolvable:
		return Undefined, ThrowReferenceError(h, r.Name+" is not defined")
	case RefEnv:
		return r.Env.GetBindingValue(h, r.Name, r.Strict)
	case RefProperty:
		if ov, ok := r.Base.(ObjectValue); ok {
			return ov.Object.Get(h, r.Name)
		}
		return getFromPrimitive(h, r.Base, r.Name)
	}
	return Undefined, nil
}

// getFromPrimitive implements [[Get]] for a primitive base value by
// chaining to its wrapper prototype (8.7.1 step 3-5): the property search
// includes the primitive's own "virtual" properties (string index/length)
// before falling back to the prototype.
func getFromPrimitive(h Host, base Value, name string) (Value, error) {
	if s, ok := base.(StringValue); ok {
		if name == "length" {
			return Num(float64(len([]rune(string(s))))), nil
		}
		if idx, ok := stringIndex(string(s), name); ok {
			return Str(string([]rune(string(s))[idx])), nil
		}
	}
	proto := h.ToObjectPrototypeFor(base.Kind())
	if proto == nil {
		return Undefined, nil
	}
	return proto.Get(h, name)
}

func stringIndex(s, name string) (int, bool) {
	if name == "" {
		return 0, false
	}
	n := 0
	for _, c := range name {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	if n < 0 || n >= len([]rune(s)) {
		return 0, false
	}
	return n, true
}

// PutValue implements 8.7.2.
func (r *Reference) PutValue(h Host, value Value) error {
	switch r.Kind {
	case RefUnresolvable:
		if r.Strict {
			return ThrowReferenceError(h, r.Name+" is not defined")
		}
		return h.GlobalObject().Put(h, r.Name, value, false)
	case RefEnv:
		return r.Env.SetMutableBinding(h, r.Name, value, r.Strict)
	case RefProperty:
		if ov, ok := r.Base.(ObjectValue); ok {
			return ov.Object.Put(h, r.Name, value, r.Strict)
		}
		return putToPrimitive(h, r.Base, r.Name, value, r.Strict)
	}
	return nil
}

// putToPrimitive implements 8.7.2's primitive-base case: if an own data
// property would exist, or no setter is reachable, it's a TypeError in
// strict mode and a silent no-op otherwise; an inherited accessor's
// setter is still invoked.
func putToPrimitive(h Host, base Value, name string, value Value, strict bool) error {
	proto := h.ToObjectPrototypeFor(base.Kind())
	if proto != nil {
		if d := proto.GetProperty(name); d != nil && d.IsAccessorDescriptor() {
			if setter := AsObject(d.Set); setter != nil {
				_, err := h.Call(setter, base, []Value{value})
				return err
			}
		}
	}
	if strict {
		return ThrowTypeError(h, "cannot create property '"+name+"' on a primitive value")
	}
	return nil
}

// IsPropertyReference reports whether r's base is a value (not an env),
// used by the evaluator to pick `this` for a function call.
func (r *Reference) IsPropertyReference() bool { return r.Kind == RefProperty }
