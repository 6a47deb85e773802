// Package jsonx provides tolerant accessors over documents decoded into
// map[string]any / []any, the shape encoding/json produces for unknown input.
package jsonx

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strings"
)

var ErrTrailingData = errors.New("unexpected data after top-level value")

// Object is a decoded JSON object.
type Object map[string]any

// Decode parses data into a generic value. Numbers stay float64. Anything
// but whitespace after the first value is an error.
func Decode(data []byte) (any, error) {
	var v any
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, ErrTrailingData
	}
	return v, nil
}

// AsObject reports whether v is a JSON object.
func AsObject(v any) (Object, bool) {
	switch t := v.(type) {
	case map[string]any:
		return Object(t), true
	case Object:
		return t, true
	}
	return nil, false
}

// AsArray reports whether v is a JSON array.
func AsArray(v any) ([]any, bool) {
	arr, ok := v.([]any)
	return arr, ok
}

// List resolves a value that is either a native array or a string holding a
// JSON array. Anything else resolves to nil.
func List(v any) []any {
	switch t := v.(type) {
	case []any:
		return t
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return nil
		}
		var parsed any
		if err := json.Unmarshal([]byte(s), &parsed); err != nil {
			return nil
		}
		if arr, ok := parsed.([]any); ok {
			return arr
		}
	}
	return nil
}

// Objects keeps the object elements of arr, in order.
func Objects(arr []any) []Object {
	out := make([]Object, 0, len(arr))
	for _, item := range arr {
		if obj, ok := AsObject(item); ok {
			out = append(out, obj)
		}
	}
	return out
}

// Strings keeps the string elements of arr, in order.
func Strings(arr []any) []string {
	out := make([]string, 0, len(arr))
	for _, item := range arr {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Has reports whether key is present, even when its value is null.
func (o Object) Has(key string) bool {
	_, ok := o[key]
	return ok
}

func (o Object) String(key string) (string, bool) {
	s, ok := o[key].(string)
	return s, ok
}

// StringOr returns the string at key or def when the value is not a string.
func (o Object) StringOr(key, def string) string {
	if s, ok := o.String(key); ok {
		return s
	}
	return def
}

// FirstString returns the first key holding a non-empty string.
func (o Object) FirstString(keys ...string) string {
	for _, k := range keys {
		if s, ok := o.String(k); ok && s != "" {
			return s
		}
	}
	return ""
}

func (o Object) Bool(key string) (bool, bool) {
	b, ok := o[key].(bool)
	return b, ok
}

func (o Object) Object(key string) (Object, bool) {
	return AsObject(o[key])
}

func (o Object) Array(key string) ([]any, bool) {
	return AsArray(o[key])
}

// Truthy mirrors the loose truthiness used when checking optional fields:
// null, false, zero and the empty string are all "absent".
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0
	case json.Number:
		return t != "" && t != "0"
	}
	return true
}

// Normalize trims and lowercases strings for identity comparison; non-strings
// normalize to the empty string.
func Normalize(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(s))
}
