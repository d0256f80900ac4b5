// Package attrs implements the opaque per-item attribute store the engine
// persists its state into.
package attrs

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Value is a typed attribute value: an integer, a float or a bool.
type Value struct {
	Int   *int64   `json:"i,omitempty"`
	Float *float64 `json:"f,omitempty"`
	Bool  *bool    `json:"b,omitempty"`
}

// IntValue wraps an integer.
func IntValue(v int64) Value { return Value{Int: &v} }

// FloatValue wraps a float.
func FloatValue(v float64) Value { return Value{Float: &v} }

// BoolValue wraps a bool.
func BoolValue(v bool) Value { return Value{Bool: &v} }

// AsInt converts the value leniently: floats truncate, true is 1.
func (v Value) AsInt() int64 {
	switch {
	case v.Int != nil:
		return *v.Int
	case v.Float != nil:
		return int64(*v.Float)
	case v.Bool != nil && *v.Bool:
		return 1
	}
	return 0
}

// AsFloat converts the value leniently.
func (v Value) AsFloat() float64 {
	switch {
	case v.Float != nil:
		return *v.Float
	case v.Int != nil:
		return float64(*v.Int)
	case v.Bool != nil && *v.Bool:
		return 1
	}
	return 0
}

// AsBool converts the value leniently: any non-zero number is true.
func (v Value) AsBool() bool {
	switch {
	case v.Bool != nil:
		return *v.Bool
	case v.Int != nil:
		return *v.Int != 0
	case v.Float != nil:
		return *v.Float != 0
	}
	return false
}

func (v Value) String() string {
	switch {
	case v.Int != nil:
		return fmt.Sprintf("%d", *v.Int)
	case v.Float != nil:
		return fmt.Sprintf("%g", *v.Float)
	case v.Bool != nil:
		return fmt.Sprintf("%t", *v.Bool)
	}
	return "<nil>"
}

// Attributes is a string-keyed attribute map. The zero value is not usable; use New.
type Attributes struct {
	m map[string]Value
}

// New returns an empty attribute map.
func New() *Attributes {
	return &Attributes{m: make(map[string]Value)}
}

// Has reports whether key is present.
func (a *Attributes) Has(key string) bool {
	_, ok := a.m[key]
	return ok
}

// Get returns the raw value for key.
func (a *Attributes) Get(key string) (Value, bool) {
	v, ok := a.m[key]
	return v, ok
}

// Int returns key as an integer, 0 if absent.
func (a *Attributes) Int(key string) int64 { return a.m[key].AsInt() }

// Float returns key as a float, 0 if absent.
func (a *Attributes) Float(key string) float64 { return a.m[key].AsFloat() }

// Bool returns key as a bool, false if absent.
func (a *Attributes) Bool(key string) bool { return a.m[key].AsBool() }

// SetInt stores an integer.
func (a *Attributes) SetInt(key string, v int64) { a.m[key] = IntValue(v) }

// SetFloat stores a float.
func (a *Attributes) SetFloat(key string, v float64) { a.m[key] = FloatValue(v) }

// SetBool stores a bool.
func (a *Attributes) SetBool(key string, v bool) { a.m[key] = BoolValue(v) }

// Set stores a raw value.
func (a *Attributes) Set(key string, v Value) { a.m[key] = v }

// Remove deletes key.
func (a *Attributes) Remove(key string) { delete(a.m, key) }

// RemovePrefix deletes every key starting with prefix.
func (a *Attributes) RemovePrefix(prefix string) {
	for k := range a.m {
		if strings.HasPrefix(k, prefix) {
			delete(a.m, k)
		}
	}
}

// Keys returns all keys in sorted order.
func (a *Attributes) Keys() []string {
	return slices.Sorted(maps.Keys(a.m))
}

// Len returns the number of keys.
func (a *Attributes) Len() int { return len(a.m) }

// Clone returns an independent copy.
func (a *Attributes) Clone() *Attributes {
	return &Attributes{m: maps.Clone(a.m)}
}

// MarshalJSON encodes the attributes as an object of typed values.
func (a *Attributes) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.m)
}

// UnmarshalJSON decodes attributes written by MarshalJSON.
func (a *Attributes) UnmarshalJSON(data []byte) error {
	m := make(map[string]Value)
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("decoding attributes: %w", err)
	}
	a.m = m
	return nil
}
