package runtime

// EnvKind distinguishes the two environment-record variants.
type EnvKind int

const (
	DeclarativeEnv EnvKind = iota
	ObjectEnv
)

type binding struct {
	value       Value
	mutable     bool
	deletable   bool
	initialized bool
}

// Env is a lexical environment record. Declarative
// records hold their own bindings map; Object records proxy bindings to a
// wrapped JSObject's properties (used for the global object and for
// `with`).
type Env struct {
	Outer *Env
	Kind  EnvKind

	// Declarative
	bindings map[string]*binding
	order    []string

	// Object
	Base        *Object
	ProvideThis bool
}

// NewDeclarativeEnv creates a fresh declarative environment record whose
// outer is the given env.
func NewDeclarativeEnv(outer *Env) *Env {
	return &Env{Outer: outer, Kind: DeclarativeEnv, bindings: map[string]*binding{}}
}

// NewObjectEnv wraps base as an object environment record; provideThis is
// true only for `with`.
func NewObjectEnv(outer *Env, base *Object, provideThis bool) *Env {
	return &Env{Outer: outer, Kind: ObjectEnv, Base: base, ProvideThis: provideThis}
}

// HasBinding implements 10.2.1's HasBinding for both record kinds.
func (e *Env) HasBinding(name string) bool {
	if e.Kind == ObjectEnv {
		return e.Base.HasProperty(name)
	}
	_, ok := e.bindings[name]
	return ok
}

// CreateMutableBinding implements CreateMutableBinding; deletable controls
// whether the binding may later be removed by `delete`.
func (e *Env) CreateMutableBinding(h Host, name string, deletable bool) error {
	if e.Kind == ObjectEnv {
		if e.Base.HasProperty(name) {
			return nil
		}
		_, err := e.Base.DefineOwnProperty(h, name, NewDataDescriptor(Undefined, true, true, deletable), true)
		return err
	}
	if _, ok := e.bindings[name]; ok {
		return nil
	}
	e.bindings[name] = &binding{value: Undefined, mutable: true, deletable: deletable, initialized: true}
	e.order = append(e.order, name)
	return nil
}

// SetMutableBinding implements SetMutableBinding.
func (e *Env) SetMutableBinding(h Host, name string, value Value, strict bool) error {
	if e.Kind == ObjectEnv {
		return e.Base.Put(h, name, value, strict)
	}
	b, ok := e.bindings[name]
	if !ok {
		if strict {
			return ThrowReferenceError(h, name+" is not defined")
		}
		e.bindings[name] = &binding{value: value, mutable: true, deletable: true, initialized: true}
		e.order = append(e.order, name)
		return nil
	}
	if !b.mutable {
		if strict {
			return ThrowTypeError(h, "assignment to constant variable '"+name+"'")
		}
		return nil
	}
	b.value = value
	return nil
}

// GetBindingValue implements GetBindingValue.
func (e *Env) GetBindingValue(h Host, name string, strict bool) (Value, error) {
	if e.Kind == ObjectEnv {
		if !e.Base.HasProperty(name) {
			return Undefined, ThrowReferenceError(h, name+" is not defined")
		}
		return e.Base.Get(h, name)
	}
	b, ok := e.bindings[name]
	if !ok || !b.initialized {
		if !ok {
			return Undefined, ThrowReferenceError(h, name+" is not defined")
		}
		if strict {
			return Undefined, ThrowReferenceError(h, name+" is not initialized")
		}
		return Undefined, nil
	}
	return b.value, nil
}

// DeleteBinding implements DeleteBinding.
func (e *Env) DeleteBinding(h Host, name string) (bool, error) {
	if e.Kind == ObjectEnv {
		return e.Base.Delete(h, name, false)
	}
	b, ok := e.bindings[name]
	if !ok {
		return true, nil
	}
	if !b.deletable {
		return false, nil
	}
	delete(e.bindings, name)
	for i, n := range e.order {
		if n == name {
			e.order = append(e.order[:i], e.order[i+1:]...)
			break
		}
	}
	return true, nil
}

// CreateImmutableBinding implements CreateImmutableBinding (10.2.1): used
// for the function name of a named function expression and for
// `arguments` in strict-mode code.
func (e *Env) CreateImmutableBinding(name string) {
	if e.Kind != DeclarativeEnv {
		panic("CreateImmutableBinding on an object environment record")
	}
	if _, ok := e.bindings[name]; ok {
		return
	}
	e.bindings[name] = &binding{mutable: false, initialized: false}
	e.order = append(e.order, name)
}

// InitializeImmutableBinding implements InitializeImmutableBinding.
func (e *Env) InitializeImmutableBinding(name string, value Value) {
	b, ok := e.bindings[name]
	if !ok {
		panic("InitializeImmutableBinding on unknown binding " + name)
	}
	b.value = value
	b.initialized = true
}

// ImplicitThisValue implements 10.2.1.2.6: undefined for declarative
// records and ordinary object records, but the wrapped object itself for
// an object record created by `with`.
func (e *Env) ImplicitThisValue() Value {
	if e.Kind == ObjectEnv && e.ProvideThis {
		return Obj(e.Base)
	}
	return Undefined
}

// ResolveEnv walks the scope chain starting at e to find the environment
// record that has a binding for name (10.2.2.1 GetIdentifierReference),
// returning nil if none does (an unresolvable reference).
func ResolveEnv(e *Env, name string) *Env {
	for cur := e; cur != nil; cur = cur.Outer {
		if cur.HasBinding(name) {
			return cur
		}
	}
	return nil
}
