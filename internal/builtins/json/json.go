// Package json implements the JSON.parse/JSON.stringify surface on top
// of gjson (read-side) and sjson (write-side). Both directions preserve
// key order: gjson walks the document in source order, which becomes the
// constructed object's property insertion order, and stringify emits in
// the object's own insertion order by building the output document
// key-by-key with sjson rather than round-tripping through a Go map.
package json

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/cwbudde/go-es5/internal/runtime"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Builder parses JSON text into runtime values. The two factories supply
// prototype-wired containers so this package needs no knowledge of the
// interpreter's builtin class registry.
type Builder struct {
	Host      runtime.Host
	NewObject func() *runtime.Object
	NewArray  func(elems []runtime.Value) *runtime.Object
}

// Parse converts text to a runtime value tree, or a SyntaxError for
// malformed input.
func (b *Builder) Parse(text string) (runtime.Value, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || !gjson.Valid(trimmed) {
		return runtime.Undefined, runtime.Throw(b.Host.NewError("SyntaxError", "unexpected token in JSON input"))
	}
	return b.fromResult(gjson.Parse(trimmed)), nil
}

func (b *Builder) fromResult(r gjson.Result) runtime.Value {
	switch {
	case r.Type == gjson.Null:
		return runtime.Null
	case r.Type == gjson.False:
		return runtime.Bool(false)
	case r.Type == gjson.True:
		return runtime.Bool(true)
	case r.Type == gjson.Number:
		return runtime.Num(r.Num)
	case r.Type == gjson.String:
		return runtime.Str(r.Str)
	case r.IsArray():
		var elems []runtime.Value
		r.ForEach(func(_, item gjson.Result) bool {
			elems = append(elems, b.fromResult(item))
			return true
		})
		return runtime.Obj(b.NewArray(elems))
	case r.IsObject():
		obj := b.NewObject()
		r.ForEach(func(key, item gjson.Result) bool {
			obj.DefineOwnData(key.Str, b.fromResult(item), true, true, true)
			return true
		})
		return runtime.Obj(obj)
	}
	return runtime.Undefined
}

// Stringify renders v as JSON text. The second return is false when the
// value is not serializable at the top level (undefined or a function),
// which JSON.stringify surfaces as the undefined result rather than an
// error. Cyclic structures raise a TypeError.
func Stringify(h runtime.Host, v runtime.Value) (string, bool, error) {
	s := &stringifier{host: h, seen: map[*runtime.Object]bool{}}
	return s.raw(v)
}

type stringifier struct {
	host runtime.Host
	seen map[*runtime.Object]bool
}

// raw produces the raw JSON encoding of v; ok == false means "omit this
// value" (undefined and callables, 15.12.3).
func (s *stringifier) raw(v runtime.Value) (string, bool, error) {
	switch t := v.(type) {
	case runtime.UndefinedValue:
		return "", false, nil
	case runtime.NullValue:
		return "null", true, nil
	case runtime.BooleanValue:
		if t {
			return "true", true, nil
		}
		return "false", true, nil
	case runtime.NumberValue:
		f := float64(t)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return "null", true, nil
		}
		return runtime.NumberToString(f), true, nil
	case runtime.StringValue:
		return quote(string(t)), true, nil
	case runtime.ObjectValue:
		return s.rawObject(t.Object)
	}
	return "", false, nil
}

func (s *stringifier) rawObject(o *runtime.Object) (string, bool, error) {
	if o.Call != nil {
		return "", false, nil
	}
	// Wrapper objects serialize as their primitive (15.12.3 Str step 4).
	if o.PrimitiveValue != nil {
		switch o.Class {
		case "Number":
			n, err := runtime.ToNumber(s.host, o.PrimitiveValue)
			if err != nil {
				return "", false, err
			}
			return s.raw(runtime.Num(n))
		case "String":
			str, err := runtime.ToString(s.host, o.PrimitiveValue)
			if err != nil {
				return "", false, err
			}
			return quote(str), true, nil
		case "Boolean":
			return s.raw(o.PrimitiveValue)
		}
	}

	if s.seen[o] {
		return "", false, runtime.ThrowTypeError(s.host, "converting circular structure to JSON")
	}
	s.seen[o] = true
	defer delete(s.seen, o)

	if o.Class == "Array" {
		return s.rawArray(o)
	}

	doc := "{}"
	for _, key := range o.OwnPropertyNames() {
		d := o.GetOwnProperty(key)
		if d == nil || !d.Enumerable.Bool(false) {
			continue
		}
		v, err := o.Get(s.host, key)
		if err != nil {
			return "", false, err
		}
		raw, include, err := s.raw(v)
		if err != nil {
			return "", false, err
		}
		if !include {
			continue
		}
		doc, err = sjson.SetRaw(doc, escapePath(key), raw)
		if err != nil {
			return "", false, runtime.ThrowTypeError(s.host, "JSON.stringify: "+err.Error())
		}
	}
	return doc, true, nil
}

func (s *stringifier) rawArray(o *runtime.Object) (string, bool, error) {
	lengthVal, err := o.Get(s.host, "length")
	if err != nil {
		return "", false, err
	}
	n, err := runtime.ToUInt32(s.host, lengthVal)
	if err != nil {
		return "", false, err
	}
	doc := "[]"
	for i := uint32(0); i < n; i++ {
		v, err := o.Get(s.host, itoa(int(i)))
		if err != nil {
			return "", false, err
		}
		raw, include, err := s.raw(v)
		if err != nil {
			return "", false, err
		}
		if !include {
			raw = "null" // holes and unserializable entries become null in arrays
		}
		doc, err = sjson.SetRaw(doc, "-1", raw)
		if err != nil {
			return "", false, runtime.ThrowTypeError(s.host, "JSON.stringify: "+err.Error())
		}
	}
	return doc, true, nil
}

// escapePath escapes sjson path metacharacters so a property name like
// "a.b" addresses a single key instead of a nested path.
func escapePath(key string) string {
	var sb strings.Builder
	for _, r := range key {
		switch r {
		case '.', '*', '?', '\\', '|', '#', '@':
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// quote renders a JSON string literal (15.12.3 Quote), escaping control
// characters and encoding non-BMP code points as surrogate pairs.
func quote(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\b':
			sb.WriteString(`\b`)
		case '\f':
			sb.WriteString(`\f`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			if r < 0x20 {
				sb.WriteString(`\u`)
				writeHex4(&sb, uint16(r))
			} else if r > 0xffff {
				hi, lo := utf16.EncodeRune(r)
				sb.WriteString(`\u`)
				writeHex4(&sb, uint16(hi))
				sb.WriteString(`\u`)
				writeHex4(&sb, uint16(lo))
			} else {
				sb.WriteRune(r)
			}
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

const hexDigits = "0123456789abcdef"

func writeHex4(sb *strings.Builder, v uint16) {
	sb.WriteByte(hexDigits[v>>12&0xf])
	sb.WriteByte(hexDigits[v>>8&0xf])
	sb.WriteByte(hexDigits[v>>4&0xf])
	sb.WriteByte(hexDigits[v&0xf])
}

func itoa(i int) string { return strconv.Itoa(i) }
