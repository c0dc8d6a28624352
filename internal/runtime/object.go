package runtime

// NativeFunc is the native-function variant's callable slot.
type NativeFunc func(h Host, this Value, args []Value) (Value, error)

// FunctionData distinguishes the two function-object variants: a *code function* (AST + captured lexical env + strict flag) or a
// *native function* (Go function + arity). Exactly one of Code/Native is
// set. CapturedEnv and Strict are meaningful only for code functions;
// CodeAST is an `any` (rather than *ast.FunctionLiteral) purely to avoid
// internal/runtime importing internal/ast -- internal/interp stores and
// type-asserts the concrete node.
type FunctionData struct {
	Name   string
	Length int // arity

	IsNative bool
	Native   NativeFunc

	CodeAST     any
	CapturedEnv *Env
	Strict      bool
	IsExprName  bool // named function expression: the name binds in the call frame
}

// Object is the runtime representation of a JS object.
type Object struct {
	Prototype  *Object
	Class      string
	Extensible bool

	props propMap

	// PrimitiveValue holds [[PrimitiveValue]] for Boolean/Number/String
	// wrapper objects.
	PrimitiveValue Value

	// Call/Construct/HasInstance are the optional callable slot. Call is
	// non-nil iff this object is a function (`typeof` reports "function").
	Call        func(h Host, this Value, args []Value) (Value, error)
	Construct   func(h Host, args []Value) (Value, error)
	HasInstance func(h Host, v Value) (bool, error)

	Function *FunctionData // non-nil iff this object is a function

	// ParameterMap backs the non-strict `arguments` object's indexed
	// property aliasing to the corresponding formal parameter binding
	//; nil for ordinary objects.
	ParameterMap map[string]string
	ParamEnv     *Env
}

// NewObject creates a plain extensible object with the given prototype
// and class name.
func NewObject(proto *Object, class string) *Object {
	return &Object{
		Prototype:  proto,
		Class:      class,
		Extensible: true,
		props:      newPropMap(),
	}
}

// OwnPropertyNames returns own property names in insertion order.
func (o *Object) OwnPropertyNames() []string {
	return o.props.keys()
}

// GetOwnProperty implements 8.12.1.
func (o *Object) GetOwnProperty(name string) *PropertyDescriptor {
	d, ok := o.props.get(name)
	if !ok {
		return nil
	}
	return d
}

// GetProperty implements 8.12.2: own property, else walk [[Prototype]].
func (o *Object) GetProperty(name string) *PropertyDescriptor {
	if d := o.GetOwnProperty(name); d != nil {
		return d
	}
	if o.Prototype != nil {
		return o.Prototype.GetProperty(name)
	}
	return nil
}

// Get implements [[Get]] (8.12.3): reads through an accessor's getter if
// present.
func (o *Object) Get(h Host, name string) (Value, error) {
	d := o.GetProperty(name)
	if d == nil {
		return Undefined, nil
	}
	if d.IsDataDescriptor() {
		return d.Value, nil
	}
	getter := AsObject(d.Get)
	if getter == nil {
		return Undefined, nil
	}
	return h.Call(getter, Obj(o), nil)
}

// CanPut implements [[CanPut]] (8.12.4).
func (o *Object) CanPut(name string) bool {
	if d := o.GetOwnProperty(name); d != nil {
		if d.IsAccessorDescriptor() {
			return AsObject(d.Set) != nil
		}
		return d.Writable.Bool(true)
	}
	if o.Prototype == nil {
		return o.Extensible
	}
	d := o.Prototype.GetProperty(name)
	if d == nil {
		return o.Extensible
	}
	if d.IsAccessorDescriptor() {
		return AsObject(d.Set) != nil
	}
	if !o.Extensible {
		return false
	}
	return d.Writable.Bool(true)
}

// Put implements [[Put]] (8.12.5).
func (o *Object) Put(h Host, name string, value Value, strict bool) error {
	if !o.CanPut(name) {
		if strict {
			return ThrowTypeError(h, "cannot assign to read-only property '"+name+"'")
		}
		return nil
	}
	own := o.GetOwnProperty(name)
	if own != nil && own.IsDataDescriptor() {
		o.props.set(name, &PropertyDescriptor{
			Value: value, Writable: own.Writable, Enumerable: own.Enumerable, Configurable: own.Configurable,
		})
		return nil
	}
	// Walk the prototype chain for an inherited accessor.
	d := o.GetProperty(name)
	if d != nil && d.IsAccessorDescriptor() {
		setter := AsObject(d.Set)
		_, err := h.Call(setter, Obj(o), []Value{value})
		return err
	}
	// No existing own property, and no inherited accessor: create a new
	// own writable/enumerable/configurable data property.
	o.props.set(name, NewDataDescriptor(value, true, true, true))
	return nil
}

// HasProperty implements [[HasProperty]] (8.12.6).
func (o *Object) HasProperty(name string) bool {
	return o.GetProperty(name) != nil
}

// Delete implements [[Delete]] (8.12.7).
func (o *Object) Delete(h Host, name string, strict bool) (bool, error) {
	d := o.GetOwnProperty(name)
	if d == nil {
		return true, nil
	}
	if d.Configurable.Bool(false) {
		o.props.delete(name)
		return true, nil
	}
	if strict {
		return false, ThrowTypeError(h, "cannot delete non-configurable property '"+name+"'")
	}
	return false, nil
}

// DefineOwnProperty implements [[DefineOwnProperty]] (8.12.9) literally:
// rejects configurations that widen a non-configurable binding, collapses
// between Data and Accessor forms only when configurable, and preserves
// any attribute the partial descriptor left Absent.
func (o *Object) DefineOwnProperty(h Host, name string, desc *PropertyDescriptor, throwOnReject bool) (bool, error) {
	reject := func(msg string) (bool, error) {
		if throwOnReject {
			return false, ThrowTypeError(h, msg)
		}
		return false, nil
	}

	current := o.GetOwnProperty(name)
	if current == nil {
		if !o.Extensible {
			return reject("object is not extensible")
		}
		merged := desc.clone()
		fillDefaults(merged)
		o.props.set(name, merged)
		return true, nil
	}

	// No actual changes requested: always succeeds.
	if descNoop(current, desc) {
		return true, nil
	}

	if !current.Configurable.Bool(false) {
		if desc.Configurable == True {
			return reject("cannot redefine non-configurable property '" + name + "'")
		}
		if desc.Enumerable != Absent && desc.Enumerable.Bool(current.Enumerable.Bool(false)) != current.Enumerable.Bool(false) {
			return reject("cannot change enumerable attribute of non-configurable property '" + name + "'")
		}
		if current.IsAccessor != desc.IsAccessor && descSpecifiesKind(desc) {
			return reject("cannot change property '" + name + "' between data and accessor")
		}
		if !current.IsAccessor {
			if !current.Writable.Bool(false) {
				if desc.Writable == True {
					return reject("cannot make non-configurable, non-writable property '" + name + "' writable")
				}
				if desc.Value != nil && !SameValue(current.Value, desc.Value) {
					return reject("cannot change value of non-configurable, non-writable property '" + name + "'")
				}
			}
		} else {
			if desc.Get != nil && !sameFnValue(current.Get, desc.Get) {
				return reject("cannot change getter of non-configurable accessor property '" + name + "'")
			}
			if desc.Set != nil && !sameFnValue(current.Set, desc.Set) {
				return reject("cannot change setter of non-configurable accessor property '" + name + "'")
			}
		}
	}

	merged := mergeDescriptor(current, desc)
	o.props.set(name, merged)
	return true, nil
}

func descSpecifiesKind(desc *PropertyDescriptor) bool {
	return desc.Value != nil || desc.Writable != Absent || desc.Get != nil || desc.Set != nil
}

func sameFnValue(a, b Value) bool {
	ao, aok := a.(ObjectValue)
	bo, bok := b.(ObjectValue)
	if aok != bok {
		return false
	}
	if !aok {
		return true
	}
	return ao.Object == bo.Object
}

func descNoop(current, desc *PropertyDescriptor) bool {
	if desc.IsAccessor != current.IsAccessor && descSpecifiesKind(desc) {
		return false
	}
	if desc.Enumerable != Absent && desc.Enumerable != current.Enumerable {
		return false
	}
	if desc.Configurable != Absent && desc.Configurable != current.Configurable {
		return false
	}
	if !current.IsAccessor {
		if desc.Writable != Absent && desc.Writable != current.Writable {
			return false
		}
		if desc.Value != nil && !SameValue(current.Value, desc.Value) {
			return false
		}
	} else {
		if desc.Get != nil && !sameFnValue(desc.Get, current.Get) {
			return false
		}
		if desc.Set != nil && !sameFnValue(desc.Set, current.Set) {
			return false
		}
	}
	return true
}

func mergeDescriptor(current, desc *PropertyDescriptor) *PropertyDescriptor {
	out := current.clone()
	if desc.IsAccessor != current.IsAccessor && descSpecifiesKind(desc) {
		out.IsAccessor = desc.IsAccessor
		out.Value, out.Writable, out.Get, out.Set = nil, Absent, nil, nil
	}
	if out.IsAccessor {
		if desc.Get != nil {
			out.Get = desc.Get
		} else if out.Get == nil {
			out.Get = Undefined
		}
		if desc.Set != nil {
			out.Set = desc.Set
		} else if out.Set == nil {
			out.Set = Undefined
		}
	} else {
		if desc.Value != nil {
			out.Value = desc.Value
		}
		if desc.Writable != Absent {
			out.Writable = desc.Writable
		}
	}
	if desc.Enumerable != Absent {
		out.Enumerable = desc.Enumerable
	}
	if desc.Configurable != Absent {
		out.Configurable = desc.Configurable
	}
	return out
}

// fillDefaults fills Absent attributes on a brand-new property with
// their 8.12.9 "Default Attribute Values" (8.6.1): false for everything,
// Undefined for an unspecified Get/Set.
func fillDefaults(d *PropertyDescriptor) {
	if d.Writable == Absent {
		d.Writable = False
	}
	if d.Enumerable == Absent {
		d.Enumerable = False
	}
	if d.Configurable == Absent {
		d.Configurable = False
	}
	if d.IsAccessor {
		if d.Get == nil {
			d.Get = Undefined
		}
		if d.Set == nil {
			d.Set = Undefined
		}
	} else if d.Value == nil {
		d.Value = Undefined
	}
}

// DefineOwnData is a convenience for defining a simple own data property
// outright (used by object-literal and builtin setup code).
func (o *Object) DefineOwnData(name string, value Value, writable, enumerable, configurable bool) {
	o.props.set(name, NewDataDescriptor(value, writable, enumerable, configurable))
}

// Enumerate returns keys for for-in iteration: own-then-prototype,
// insertion order, each key yielded once, enumerable-only, with a
// non-enumerable own/shadowing key correctly hiding an enumerable
// same-named key further up the chain.
func (o *Object) Enumerate() []string {
	seen := map[string]bool{}
	var out []string
	for cur := o; cur != nil; cur = cur.Prototype {
		for _, name := range cur.props.keys() {
			if seen[name] {
				continue
			}
			seen[name] = true
			if d, _ := cur.props.get(name); d != nil && d.Enumerable.Bool(false) {
				out = append(out, name)
			}
		}
	}
	return out
}

// SameValue implements the ES5 SameValue algorithm (9.12), used internally
// by [[DefineOwnProperty]] to decide whether a "no-op" redefinition is
// permitted even on a non-configurable property. It distinguishes +0/-0
// and treats NaN as equal to itself, unlike StrictEqual; callers must
// not conflate it with relational Compare.
func SameValue(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case UndefinedValue, NullValue:
		return true
	case BooleanValue:
		return av == b.(BooleanValue)
	case StringValue:
		return av == b.(StringValue)
	case NumberValue:
		bn := b.(NumberValue)
		if av != av && bn != bn { // both NaN
			return true
		}
		if av == 0 && bn == 0 {
			return isNegZero(float64(av)) == isNegZero(float64(bn))
		}
		return av == bn
	case ObjectValue:
		return av.Object == b.(ObjectValue).Object
	}
	return false
}

func isNegZero(f float64) bool {
	return f == 0 && (1/f) < 0
}
