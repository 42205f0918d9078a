package corpus

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Kind identifies the scalar kind carried by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindInt
	KindFloat
)

// Value is a scalar attribute value. Source data is noisy, so the kind set is
// deliberately small: string, int, float, or null. Anything else in the input
// (booleans, nested objects) is preserved as its JSON text rather than rejected.
type Value struct {
	kind Kind
	s    string
	i    int64
	f    float64
}

// Null is the zero Value.
var Null = Value{}

func String(s string) Value { return Value{kind: KindString, s: s} }
func Int(i int64) Value     { return Value{kind: KindInt, i: i} }
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

func (v Value) Kind() Kind   { return v.kind }
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsString returns the string value. The second result is false when the
// value is not a string.
func (v Value) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.s, true
}

// AsInt returns the integer value. Floats with an integral value convert.
func (v Value) AsInt() (int64, bool) {
	switch v.kind {
	case KindInt:
		return v.i, true
	case KindFloat:
		if v.f == float64(int64(v.f)) {
			return int64(v.f), true
		}
	}
	return 0, false
}

// AsFloat returns the numeric value as a float64. Ints convert.
func (v Value) AsFloat() (float64, bool) {
	switch v.kind {
	case KindInt:
		return float64(v.i), true
	case KindFloat:
		return v.f, true
	}
	return 0, false
}

// String renders the value for display and CSV emission.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.s
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	}
	return ""
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString:
		return json.Marshal(v.s)
	case KindInt:
		return json.Marshal(v.i)
	case KindFloat:
		return json.Marshal(v.f)
	}
	return []byte("null"), nil
}

func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return fmt.Errorf("decode attribute value: %w", err)
	}
	switch x := raw.(type) {
	case nil:
		*v = Null
	case string:
		*v = String(x)
	case json.Number:
		if i, err := strconv.ParseInt(x.String(), 10, 64); err == nil {
			*v = Int(i)
		} else if f, err := strconv.ParseFloat(x.String(), 64); err == nil {
			*v = Float(f)
		} else {
			*v = String(x.String())
		}
	default:
		// Booleans, arrays, objects: keep the JSON text so nothing is lost.
		*v = String(string(data))
	}
	return nil
}

// Attrs is a schema-less attribute bag keyed by attribute name.
type Attrs map[string]Value

// Lookup returns the value for key. The second result is false when absent,
// so callers can distinguish "missing" from "present but null".
func (a Attrs) Lookup(key string) (Value, bool) {
	v, ok := a[key]
	return v, ok
}

// Clone returns a shallow copy (Values are immutable scalars).
func (a Attrs) Clone() Attrs {
	if a == nil {
		return nil
	}
	out := make(Attrs, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}
