package chart

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

var jsonNull = []byte("null")

// Value is a nullable data point. The zero Value is null.
type Value struct {
	Float64 float64
	Valid   bool
}

// V returns a valid Value holding f.
func V(f float64) Value { return Value{Float64: f, Valid: true} }

// Null returns an invalid Value.
func Null() Value { return Value{} }

// Values builds a slice of valid Values.
func Values(fs ...float64) []Value {
	out := make([]Value, len(fs))
	for i, f := range fs {
		out[i] = V(f)
	}
	return out
}

// Or0 returns the value, or 0 when it is null.
func (v Value) Or0() float64 {
	if !v.Valid {
		return 0
	}
	return v.Float64
}

// MarshalJSON encodes null values as JSON null.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.Valid {
		return jsonNull, nil
	}
	return json.Marshal(v.Float64)
}

// UnmarshalJSON accepts numbers, numeric strings and null.
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, jsonNull) {
		*v = Value{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("data value %q is not a number", s)
		}
		*v = V(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*v = V(f)
	return nil
}

// Labels is the ordered list of category labels. A nil Labels means the
// field was absent; an empty non-nil Labels is a valid empty chart.
type Labels []string

// UnmarshalJSON accepts strings, numbers and nulls as labels. Numbers keep
// their JSON spelling, null becomes the empty string.
func (l *Labels) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), jsonNull) {
		return nil
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Labels, 0, len(raw))
	for i, r := range raw {
		r = bytes.TrimSpace(r)
		switch {
		case bytes.Equal(r, jsonNull):
			out = append(out, "")
		case len(r) > 0 && r[0] == '"':
			var s string
			if err := json.Unmarshal(r, &s); err != nil {
				return err
			}
			out = append(out, s)
		default:
			var n json.Number
			if err := json.Unmarshal(r, &n); err != nil {
				return fmt.Errorf("label %d: %w", i, err)
			}
			out = append(out, n.String())
		}
	}
	*l = out
	return nil
}

// Colors is a dataset color setting: absent, a single color, or a list.
type Colors struct {
	Values []string
	List   bool
}

// Color returns a single-color setting.
func Color(c string) Colors { return Colors{Values: []string{c}} }

// ColorList returns a list-valued color setting.
func ColorList(cs ...string) Colors { return Colors{Values: cs, List: true} }

// IsZero reports whether the setting is absent.
func (c Colors) IsZero() bool { return !c.List && len(c.Values) == 0 }

// Scalar returns the single color when the setting is not a list.
func (c Colors) Scalar() (string, bool) {
	if c.List || len(c.Values) != 1 || c.Values[0] == "" {
		return "", false
	}
	return c.Values[0], true
}

// MarshalJSON encodes a single color as a string and a list as an array.
func (c Colors) MarshalJSON() ([]byte, error) {
	if c.List {
		if c.Values == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(c.Values)
	}
	if len(c.Values) == 0 {
		return jsonNull, nil
	}
	return json.Marshal(c.Values[0])
}

// UnmarshalJSON accepts a color string or an array of color strings.
func (c *Colors) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, jsonNull) {
		*c = Colors{}
		return nil
	}
	if len(data) > 0 && data[0] == '[' {
		var list []string
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		*c = ColorList(list...)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*c = Colors{}
		return nil
	}
	*c = Color(s)
	return nil
}
