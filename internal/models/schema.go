package models

import (
	"bytes"
	"encoding/json"
)

// The backend is not consistent about key casing: some handlers answer with
// camelCase keys, others with PascalCase. Each entity decodes through one wire
// struct listing both spellings; the canonical spelling wins unless it is
// missing or holds the zero value.

// Identifiable is implemented by every entity and drives list ordering.
type Identifiable interface {
	Identifier() int64
}

func coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}

func coalescePtr[T any](values ...*T) *T {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}

func isNull(data []byte) bool {
	return bytes.Equal(bytes.TrimSpace(data), []byte("null"))
}

// looksNumeric reports whether data is a bare JSON number.
func looksNumeric(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return false
	}
	c := trimmed[0]
	return c == '-' || (c >= '0' && c <= '9')
}

// Unwrap returns the object stored under key when data is an object holding
// that key with an object value, and data itself otherwise. Create/update
// answers come either bare or wrapped, e.g. {"note": {...}}.
func Unwrap(data []byte, key string) []byte {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return data
	}
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return data
	}
	inner, ok := envelope[key]
	if !ok {
		return data
	}
	inner = bytes.TrimSpace(inner)
	if len(inner) == 0 || inner[0] != '{' {
		return data
	}
	return inner
}
