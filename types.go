package jsonflex

import "strconv"

// String is a string field that also accepts a signed 64-bit integer on
// the wire. Existing text passes through untouched, so the value is not
// guaranteed to be numeric.
type String string

func (s *String) UnmarshalJSON(raw []byte) error {
	v, err := StringFromNumber(raw)
	if err != nil {
		return err
	}
	*s = String(v)
	return nil
}

// Int64 is an int64 field that also accepts its base-10 text form.
type Int64 int64

func (n *Int64) UnmarshalJSON(raw []byte) error {
	v, err := NumberFromString(raw, func(s string) (int64, error) {
		return strconv.ParseInt(s, 10, 64)
	})
	if err != nil {
		return err
	}
	*n = Int64(v)
	return nil
}

// Uint64 is a uint64 field that also accepts its base-10 text form.
type Uint64 uint64

func (n *Uint64) UnmarshalJSON(raw []byte) error {
	v, err := NumberFromString(raw, func(s string) (uint64, error) {
		return strconv.ParseUint(s, 10, 64)
	})
	if err != nil {
		return err
	}
	*n = Uint64(v)
	return nil
}

// Float64 is a float64 field that also accepts its text form.
type Float64 float64

func (n *Float64) UnmarshalJSON(raw []byte) error {
	v, err := NumberFromString(raw, func(s string) (float64, error) {
		return strconv.ParseFloat(s, 64)
	})
	if err != nil {
		return err
	}
	*n = Float64(v)
	return nil
}
