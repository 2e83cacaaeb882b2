package veil

import (
	"fmt"
	"strconv"
)

// Provider transforms a single field value into a non-sensitive replacement.
//
// Providers are stateless aside from randomness and hashing: the same
// provider instance is invoked concurrently for many field values and must
// not write shared state. Arguments arrive per call via Args.
type Provider interface {
	// AlterValue returns the replacement for original. Missing or malformed
	// arguments fail with an error wrapping ErrInvalidArgument; providers
	// never panic on arbitrary kwargs.
	AlterValue(original string, args Args) (Value, error)
}

// ProviderFunc adapts a plain function to the Provider interface.
type ProviderFunc func(original string, args Args) (Value, error)

// AlterValue calls f.
func (f ProviderFunc) AlterValue(original string, args Args) (Value, error) {
	return f(original, args)
}

// Value is a replacement value. The zero Value is SQL NULL.
type Value struct {
	str   string
	valid bool
}

// NewValue returns a non-NULL Value holding s.
func NewValue(s string) Value {
	return Value{str: s, valid: true}
}

// Null returns the NULL Value.
func Null() Value {
	return Value{}
}

// IsNull reports whether v is NULL.
func (v Value) IsNull() bool {
	return !v.valid
}

// String returns the held string, or "" for NULL.
func (v Value) String() string {
	return v.str
}

// Args carries the keyword arguments of a provider invocation.
//
// Values originate from YAML (scalars decode as string/int/bool/float) or
// from struct tags (always strings), so the typed getters coerce across
// those representations.
type Args map[string]any

// Lookup returns the raw argument value.
func (a Args) Lookup(key string) (any, bool) {
	v, ok := a[key]
	return v, ok
}

// String returns the argument as a string.
func (a Args) String(key string) (string, bool) {
	v, ok := a[key]
	if !ok {
		return "", false
	}
	switch s := v.(type) {
	case string:
		return s, true
	case nil:
		return "", false
	default:
		return fmt.Sprint(v), true
	}
}

// StringDefault returns the argument as a string, or def when absent or empty.
func (a Args) StringDefault(key, def string) string {
	if s, ok := a.String(key); ok && s != "" {
		return s
	}
	return def
}

// IntDefault returns the argument as an int, or def when absent or
// unparseable.
func (a Args) IntDefault(key string, def int) int {
	v, ok := a[key]
	if !ok {
		return def
	}
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	case string:
		if i, err := strconv.Atoi(n); err == nil {
			return i
		}
	}
	return def
}

// Bool returns the argument as a bool; absent or unparseable is false.
func (a Args) Bool(key string) bool {
	v, ok := a[key]
	if !ok {
		return false
	}
	switch b := v.(type) {
	case bool:
		return b
	case string:
		parsed, err := strconv.ParseBool(b)
		return err == nil && parsed
	case int:
		return b != 0
	}
	return false
}

// Strings returns the argument as a string slice. YAML sequences decode as
// []any, so elements are coerced individually.
func (a Args) Strings(key string) ([]string, bool) {
	v, ok := a[key]
	if !ok {
		return nil, false
	}
	switch vs := v.(type) {
	case []string:
		return vs, true
	case []any:
		out := make([]string, len(vs))
		for i, e := range vs {
			out[i] = fmt.Sprint(e)
		}
		return out, true
	}
	return nil, false
}

// clone returns a shallow copy, so call sites can inject call-scoped keys
// without mutating configured argument maps.
func (a Args) clone() Args {
	out := make(Args, len(a)+2)
	for k, v := range a {
		out[k] = v
	}
	return out
}
