// Package jsontext converts between native values and the serialized JSON
// text stored in list and object columns. Writes never fail silently; reads
// degrade to an empty list or object.
package jsontext

import (
	"encoding/json"
	"strings"
)

// EncodeList serializes v as a JSON array. A nil slice encodes as "[]".
func EncodeList[T any](v []T) (string, error) {
	if v == nil {
		return "[]", nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// EncodeObject serializes v. A nil value encodes as "{}".
func EncodeObject(v any) (string, error) {
	if v == nil {
		return "{}", nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	s := string(b)
	if s == "null" {
		return "{}", nil
	}
	return s, nil
}

// DecodeList parses s as a JSON array of T. Empty or malformed text, or any
// non-array value, yields an empty non-nil slice.
func DecodeList[T any](s string) []T {
	out := []T{}
	s = strings.TrimSpace(s)
	if s == "" {
		return out
	}
	var parsed []T
	if err := json.Unmarshal([]byte(s), &parsed); err != nil || parsed == nil {
		return out
	}
	return parsed
}

// DecodeStrings parses a JSON array of strings. Non-string elements are
// kept as their raw JSON text.
func DecodeStrings(s string) []string {
	raw := DecodeList[json.RawMessage](s)
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		var str string
		if err := json.Unmarshal(r, &str); err == nil {
			out = append(out, str)
			continue
		}
		out = append(out, strings.TrimSpace(string(r)))
	}
	return out
}

// DecodeObject parses s as a JSON object. Empty or malformed text, or any
// non-object value, yields an empty non-nil map.
func DecodeObject(s string) map[string]any {
	out := map[string]any{}
	s = strings.TrimSpace(s)
	if s == "" {
		return out
	}
	var parsed map[string]any
	if err := json.Unmarshal([]byte(s), &parsed); err != nil || parsed == nil {
		return out
	}
	return parsed
}
