package runtime

// JSError wraps a thrown Value so it can travel through Go's error
// channel. Callers in internal/interp convert a returned *JSError back
// into a Throw completion at the statement-dispatch boundary.
type JSError struct {
	Value Value
}

func (e *JSError) Error() string {
	return Describe(e.Value)
}

// Throw wraps v as a *JSError, for use by runtime-package code that needs
// to signal a thrown value through a Go error return.
func Throw(v Value) error {
	return &JSError{Value: v}
}

// Host is the minimal surface internal/runtime needs from the embedding
// Context to construct native error objects and box
// primitives, without importing internal/interp. internal/interp's
// Context implements this interface.
type Host interface {
	// NewError constructs a native error object of the given kind
	// ("TypeError", "ReferenceError", "RangeError", "SyntaxError") with the
	// given message.
	NewError(kind, message string) Value

	// ToObjectPrototypeFor returns the prototype object used to box a
	// primitive value of the given Kind when a property reference with a
	// primitive base needs to read a property.
	ToObjectPrototypeFor(k ValueKind) *Object

	// Call invokes a callable Object's [[Call]] (used by GetValue to
	// invoke an accessor property's getter, and by PutValue for setters).
	Call(fn *Object, this Value, args []Value) (Value, error)

	// GlobalObject returns the global object, onto which an unresolvable
	// reference's non-strict PutValue creates an implicit global property.
	GlobalObject() *Object
}

// ThrowTypeError is a convenience wrapper for the common case.
func ThrowTypeError(h Host, message string) error {
	return Throw(h.NewError("TypeError", message))
}

// ThrowReferenceError is a convenience wrapper for the common case.
func ThrowReferenceError(h Host, message string) error {
	return Throw(h.NewError("ReferenceError", message))
}
