// Package jsonflex provides flexible string/number coercions for JSON
// deserialization. External data sources encode numbers inconsistently,
// sometimes as JSON numbers and sometimes as quoted strings; the helpers
// here accept either wire shape and produce a single strongly typed value.
//
// The two coercion functions operate on the raw JSON text of a single
// value, which makes them usable inside UnmarshalJSON methods as per-field
// hooks. The wrapper types in this package (String, Int64, Uint64, Float64)
// are ready-made fields built on top of them.
package jsonflex

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// ParseFunc converts the textual form of a value into T. It is the
// text-parsing capability a caller supplies to NumberFromString; the
// strconv parse functions fit after a thin wrapper, as do constructors on
// domain ID types.
type ParseFunc[T any] func(string) (T, error)

// StringFromNumber decodes raw, the JSON text of a single value, into a
// string. A JSON string is returned unchanged; there is deliberately no
// check that the text looks numeric. A signed 64-bit integer is formatted
// as canonical base-10 text. Every other shape, floats included, fails
// with a *ShapeError.
func StringFromNumber(raw []byte) (string, error) {
	const want = "a string or a signed 64-bit integer"

	raw = bytes.TrimSpace(raw)
	switch shape := shapeOf(raw); shape {
	case shapeString:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err
		}
		return s, nil
	case shapeNumber:
		n, err := strconv.ParseInt(string(raw), 10, 64)
		if err != nil {
			return "", &ShapeError{Want: want, Got: "a number that is not a signed 64-bit integer"}
		}
		return strconv.FormatInt(n, 10), nil
	default:
		return "", &ShapeError{Want: want, Got: shape.String()}
	}
}

// NumberFromString decodes raw, the JSON text of a single value, into a T.
// A JSON string is handed to parse, and a parse failure is returned to the
// caller verbatim. Any other shape is decoded natively into T and returned
// unchanged, so a value that already arrived in T's native form keeps
// whatever the native decode accepted, with no further validation. A value
// matching neither shape surfaces the native decoder's mismatch error.
func NumberFromString[T any](raw []byte, parse ParseFunc[T]) (T, error) {
	var zero T

	raw = bytes.TrimSpace(raw)
	if shapeOf(raw) == shapeString {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return zero, err
		}
		return parse(s)
	}

	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return zero, err
	}
	return v, nil
}
