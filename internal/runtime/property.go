package runtime

// TriBool models a partial-descriptor attribute: a
// [[DefineOwnProperty]] call may specify true, false, or leave the
// attribute untouched.
type TriBool int

const (
	Absent TriBool = iota
	True
	False
)

func (t TriBool) Bool(defaultIfAbsent bool) bool {
	switch t {
	case True:
		return true
	case False:
		return false
	default:
		return defaultIfAbsent
	}
}

func TriFromBool(b bool) TriBool {
	if b {
		return True
	}
	return False
}

// PropertyDescriptor is tagged Data or Accessor. IsAccessor
// distinguishes the two; Value is meaningful only for data descriptors,
// Get/Set only for accessor descriptors.
type PropertyDescriptor struct {
	IsAccessor bool

	Value Value // data descriptor payload

	Get Value // accessor getter (a callable Object, or Undefined)
	Set Value // accessor setter (a callable Object, or Undefined)

	Writable     TriBool // data only
	Enumerable   TriBool
	Configurable TriBool
}

// NewDataDescriptor builds a fully-specified data descriptor (no Absent
// attributes), the common case for object-literal properties and
// arguments-object indices.
func NewDataDescriptor(value Value, writable, enumerable, configurable bool) *PropertyDescriptor {
	return &PropertyDescriptor{
		Value:        value,
		Writable:     TriFromBool(writable),
		Enumerable:   TriFromBool(enumerable),
		Configurable: TriFromBool(configurable),
	}
}

// NewAccessorDescriptor builds a fully-specified accessor descriptor.
func NewAccessorDescriptor(get, set Value, enumerable, configurable bool) *PropertyDescriptor {
	return &PropertyDescriptor{
		IsAccessor:   true,
		Get:          get,
		Set:          set,
		Enumerable:   TriFromBool(enumerable),
		Configurable: TriFromBool(configurable),
	}
}

func (d *PropertyDescriptor) IsDataDescriptor() bool {
	return d != nil && !d.IsAccessor
}

func (d *PropertyDescriptor) IsAccessorDescriptor() bool {
	return d != nil && d.IsAccessor
}

// IsGenericDescriptor reports a descriptor with neither data nor accessor
// fields specified (only enumerable/configurable given), as classified in
// 8.12.9.
func (d *PropertyDescriptor) IsGenericDescriptor(hasValueOrWritable, hasGetOrSet bool) bool {
	return !hasValueOrWritable && !hasGetOrSet
}

// clone returns a shallow copy, used when [[DefineOwnProperty]] merges a
// partial descriptor onto an existing one without mutating the original
// in place until validation succeeds.
func (d *PropertyDescriptor) clone() *PropertyDescriptor {
	c := *d
	return &c
}

// propMap is an insertion-order-preserving map from property name to
// descriptor. Delete removes the key without reordering survivors.
type propMap struct {
	order  []string
	values map[string]*PropertyDescriptor
}

func newPropMap() propMap {
	return propMap{values: make(map[string]*PropertyDescriptor)}
}

func (m *propMap) get(name string) (*PropertyDescriptor, bool) {
	d, ok := m.values[name]
	return d, ok
}

func (m *propMap) set(name string, d *PropertyDescriptor) {
	if _, exists := m.values[name]; !exists {
		m.order = append(m.order, name)
	}
	m.values[name] = d
}

func (m *propMap) delete(name string) {
	if _, ok := m.values[name]; !ok {
		return
	}
	delete(m.values, name)
	for i, k := range m.order {
		if k == name {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

func (m *propMap) has(name string) bool {
	_, ok := m.values[name]
	return ok
}

// keys returns property names in insertion order.
func (m *propMap) keys() []string {
	return m.order
}

func (m *propMap) len() int { return len(m.order) }
