package runtime

import "math"

// StrictEqual implements 11.9.6: same variant compares the
// payload (NaN != NaN; strings by contents; objects by handle identity);
// different variants are always false.
func StrictEqual(a, b Value) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case UndefinedValue, NullValue:
		return true
	case BooleanValue:
		return av == b.(BooleanValue)
	case NumberValue:
		bn := b.(NumberValue)
		return float64(av) == float64(bn) // Go's == already treats NaN != NaN and +0 == -0
	case StringValue:
		return av == b.(StringValue)
	case ObjectValue:
		return av.Object == b.(ObjectValue).Object
	}
	return false
}

// AbstractEqual implements 11.9.3: same-type defers to
// StrictEqual; null/undefined compare equal to each other only; numeric
// and boolean operands coerce toward number; an object compared against a
// primitive uses ToPrimitive(obj, None) before recursing.
func AbstractEqual(h Host, a, b Value) (bool, error) {
	if a.Kind() == b.Kind() {
		return StrictEqual(a, b), nil
	}

	_, aNull := a.(NullValue)
	_, aUndef := a.(UndefinedValue)
	_, bNull := b.(NullValue)
	_, bUndef := b.(UndefinedValue)
	if (aNull || aUndef) && (bNull || bUndef) {
		return true, nil
	}
	if aNull || aUndef || bNull || bUndef {
		return false, nil
	}

	if _, ok := a.(NumberValue); ok {
		if _, ok := b.(StringValue); ok {
			bn, err := ToNumber(h, b)
			if err != nil {
				return false, err
			}
			return AbstractEqual(h, a, Num(bn))
		}
	}
	if _, ok := a.(StringValue); ok {
		if _, ok := b.(NumberValue); ok {
			an, err := ToNumber(h, a)
			if err != nil {
				return false, err
			}
			return AbstractEqual(h, Num(an), b)
		}
	}
	if _, ok := a.(BooleanValue); ok {
		an, err := ToNumber(h, a)
		if err != nil {
			return false, err
		}
		return AbstractEqual(h, Num(an), b)
	}
	if _, ok := b.(BooleanValue); ok {
		bn, err := ToNumber(h, b)
		if err != nil {
			return false, err
		}
		return AbstractEqual(h, a, Num(bn))
	}
	if _, aObj := a.(ObjectValue); aObj {
		if _, bPrim := b.(ObjectValue); !bPrim {
			prim, err := ToPrimitive(h, a, HintNone)
			if err != nil {
				return false, err
			}
			return AbstractEqual(h, prim, b)
		}
	}
	if _, bObj := b.(ObjectValue); bObj {
		if _, aPrim := a.(ObjectValue); !aPrim {
			prim, err := ToPrimitive(h, b, HintNone)
			if err != nil {
				return false, err
			}
			return AbstractEqual(h, a, prim)
		}
	}
	return false, nil
}

// CompareResult is the three-valued outcome of the relational compare
// algorithm: Undefined arises whenever either side reduces to
// NaN, and is consumed differently by each relational operator.
type CompareResult int

const (
	CompareFalse CompareResult = iota
	CompareTrue
	CompareUndefined
)

// Compare implements 11.8.5's abstract relational comparison x < y.
// leftFirst picks which operand ToPrimitive(hint Number) converts first:
// x when true, y when false. `>` and `<=` pass their operands swapped with
// leftFirst == false, so their left operand is still converted first.
// Either way the result answers x < y.
func Compare(h Host, x, y Value, leftFirst bool) (CompareResult, error) {
	var px, py Value
	var err error
	if leftFirst {
		px, err = ToPrimitive(h, x, HintNumber)
		if err != nil {
			return CompareFalse, err
		}
		py, err = ToPrimitive(h, y, HintNumber)
		if err != nil {
			return CompareFalse, err
		}
	} else {
		py, err = ToPrimitive(h, y, HintNumber)
		if err != nil {
			return CompareFalse, err
		}
		px, err = ToPrimitive(h, x, HintNumber)
		if err != nil {
			return CompareFalse, err
		}
	}

	sx, xIsStr := px.(StringValue)
	sy, yIsStr := py.(StringValue)
	if xIsStr && yIsStr {
		if sx < sy {
			return CompareTrue, nil
		}
		return CompareFalse, nil
	}

	nx, err := ToNumber(h, px)
	if err != nil {
		return CompareFalse, err
	}
	ny, err := ToNumber(h, py)
	if err != nil {
		return CompareFalse, err
	}
	if math.IsNaN(nx) || math.IsNaN(ny) {
		return CompareUndefined, nil
	}
	if nx < ny {
		return CompareTrue, nil
	}
	return CompareFalse, nil
}
