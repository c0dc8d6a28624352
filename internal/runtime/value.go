// Package runtime implements the value and object model: the tagged JSVal union, property descriptors, the
// lexical environment chain, the reference type, and the Object/Function
// representations the evaluator drives.
//
// This package never imports the interp package. Function objects carry
// plain closures (Call/Construct fields) rather than an interpreter
// reference, so the evaluator can wire code-function invocation back into
// itself without creating an import cycle.
package runtime

import "fmt"

// ValueKind tags the variant of a Value: one tag per 8.x language type
// plus the Reference and Environment specification types.
type ValueKind int

const (
	KindUndefined ValueKind = iota
	KindNull
	KindBoolean
	KindNumber
	KindString
	KindObject
	KindReference
	KindEnvironment
)

func (k ValueKind) String() string {
	switch k {
	case KindUndefined:
		return "undefined"
	case KindNull:
		return "null"
	case KindBoolean:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindObject:
		return "object"
	case KindReference:
		return "reference"
	case KindEnvironment:
		return "environment"
	}
	return "unknown"
}

// Value is the tagged JSVal union. Exactly one of the concrete
// types below implements it.
type Value interface {
	Kind() ValueKind
}

// UndefinedValue and NullValue are nullary variants; use the package-level
// Undefined and Null singletons rather than constructing new ones.
type UndefinedValue struct{}

func (UndefinedValue) Kind() ValueKind { return KindUndefined }

type NullValue struct{}

func (NullValue) Kind() ValueKind { return KindNull }

var (
	Undefined = UndefinedValue{}
	Null      = NullValue{}
)

// BooleanValue, NumberValue and StringValue are Go value types: equality
// and hashing fall out of Go's built-in comparisons (strings compare
// pointwise; numbers compare as IEEE-754 doubles, with NaN/±0 handled
// explicitly by StrictEqual).
type BooleanValue bool

func (BooleanValue) Kind() ValueKind { return KindBoolean }

type NumberValue float64

func (NumberValue) Kind() ValueKind { return KindNumber }

type StringValue string

func (StringValue) Kind() ValueKind { return KindString }

// ObjectValue wraps a *Object; equality is Go pointer identity.
type ObjectValue struct{ Object *Object }

func (ObjectValue) Kind() ValueKind { return KindObject }

// ReferenceValue and EnvironmentValue are the two specification-type
// variants: they must never leak into a property map or environment
// binding, and appear only as intermediate evaluation results.
type ReferenceValue struct{ Ref *Reference }

func (ReferenceValue) Kind() ValueKind { return KindReference }

type EnvironmentValue struct{ Env *Env }

func (EnvironmentValue) Kind() ValueKind { return KindEnvironment }

// Bool is a convenience constructor.
func Bool(b bool) Value { return BooleanValue(b) }

// Num is a convenience constructor.
func Num(f float64) Value { return NumberValue(f) }

// Str is a convenience constructor.
func Str(s string) Value { return StringValue(s) }

// Obj wraps an *Object as a Value.
func Obj(o *Object) Value { return ObjectValue{Object: o} }

// IsCallable reports whether v is an object with a non-nil Call slot.
func IsCallable(v Value) bool {
	ov, ok := v.(ObjectValue)
	return ok && ov.Object != nil && ov.Object.Call != nil
}

// AsObject extracts the *Object from v, or nil if v is not an object.
func AsObject(v Value) *Object {
	if ov, ok := v.(ObjectValue); ok {
		return ov.Object
	}
	return nil
}

// TypeString implements the `typeof` class tags.
func TypeString(v Value) string {
	switch t := v.(type) {
	case UndefinedValue:
		return "undefined"
	case NullValue:
		return "object"
	case BooleanValue:
		return "boolean"
	case NumberValue:
		return "number"
	case StringValue:
		return "string"
	case ObjectValue:
		if t.Object != nil && t.Object.Call != nil {
			return "function"
		}
		return "object"
	default:
		return "undefined"
	}
}

// Describe renders a Value for debugging/panic messages only; it is not
// the ToString coercion (see coercion.go).
func Describe(v Value) string {
	switch t := v.(type) {
	case UndefinedValue:
		return "undefined"
	case NullValue:
		return "null"
	case BooleanValue:
		return fmt.Sprintf("%t", bool(t))
	case NumberValue:
		return fmt.Sprintf("%v", float64(t))
	case StringValue:
		return string(t)
	case ObjectValue:
		if t.Object == nil {
			return "<nil object>"
		}
		return "[object " + t.Object.Class + "]"
	default:
		return fmt.Sprintf("%v", v)
	}
}
