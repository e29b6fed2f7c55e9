package models

import (
	"encoding/json"
	"fmt"
)

// Fields is a loosely typed payload or change set keyed by JSON field name.
type Fields map[string]any

// immutableKeys cannot be changed through Merge.
var immutableKeys = []string{"id", "createdAt"}

// Decode builds a T from fields through the JSON encoding.
func Decode[T any](fields Fields) (T, error) {
	var v T
	b, err := json.Marshal(fields)
	if err != nil {
		return v, fmt.Errorf("encode fields: %w", err)
	}
	if err := json.Unmarshal(b, &v); err != nil {
		return v, fmt.Errorf("decode fields: %w", err)
	}
	return v, nil
}

// Merge returns a copy of v with changes applied shallowly. Keys v does not
// know are ignored; id and createdAt are preserved.
func Merge[T any](v T, changes Fields) (T, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return v, fmt.Errorf("encode entity: %w", err)
	}

	current := make(map[string]any)
	if err := json.Unmarshal(b, &current); err != nil {
		return v, fmt.Errorf("decode entity: %w", err)
	}

	for k, val := range changes {
		current[k] = val
	}
	for _, k := range immutableKeys {
		if orig, ok := original(b, k); ok {
			current[k] = orig
		}
	}

	merged, err := json.Marshal(current)
	if err != nil {
		return v, fmt.Errorf("encode merged entity: %w", err)
	}
	var out T
	if err := json.Unmarshal(merged, &out); err != nil {
		return v, fmt.Errorf("decode merged entity: %w", err)
	}
	return out, nil
}

func original(b []byte, key string) (json.RawMessage, bool) {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, false
	}
	v, ok := m[key]
	return v, ok
}
