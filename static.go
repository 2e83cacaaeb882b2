package veil

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
)

// alterChoice returns one element chosen uniformly at random from the
// required values list.
func alterChoice(_ string, args Args) (Value, error) {
	values, ok := args.Strings("values")
	if !ok || len(values) == 0 {
		return Null(), invalidArg("choice", "requires a non-empty values list")
	}
	return NewValue(values[rand.IntN(len(values))]), nil
}

// alterClear sets the value to NULL regardless of input.
func alterClear(string, Args) (Value, error) {
	return Null(), nil
}

// alterSet returns the fixed configured value, ignoring input. A missing
// value argument yields NULL.
func alterSet(_ string, args Args) (Value, error) {
	v, ok := args.Lookup("value")
	if !ok || v == nil {
		return Null(), nil
	}
	if s, isString := v.(string); isString {
		return NewValue(s), nil
	}
	return NewValue(fmt.Sprint(v)), nil
}

// alterJSONString returns the JSON serialization of the configured object
// argument, ignoring input. A missing object serializes to "null".
func alterJSONString(_ string, args Args) (Value, error) {
	obj, _ := args.Lookup("object")
	data, err := json.Marshal(obj)
	if err != nil {
		return Null(), invalidArg("jsonstring", "object is not serializable: %v", err)
	}
	return NewValue(string(data)), nil
}
