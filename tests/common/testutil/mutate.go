//go:build unit || e2e

package testutil

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

// Mutation edits a request body decoded into a generic JSON map.
type Mutation func(m map[string]any)

// DtoMap round-trips v through JSON so tests can break a valid request field by field.
func DtoMap(t *testing.T, v any, muts ...func(map[string]any)) map[string]any {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	for _, f := range muts {
		f(m)
	}
	return m
}

// Field sets key to value. A nil value removes the key.
func Field(key string, value any) Mutation {
	return func(m map[string]any) {
		if value == nil {
			delete(m, key)
		} else {
			m[key] = value
		}
	}
}

// Nested applies muts to the object stored under key.
func Nested(key string, muts ...Mutation) Mutation {
	return func(m map[string]any) {
		child, ok := m[key].(map[string]any)
		if !ok {
			return
		}
		for _, f := range muts {
			f(child)
		}
	}
}

// Item applies muts to element index of the array stored under key.
func Item(key string, index int, muts ...Mutation) Mutation {
	return func(m map[string]any) {
		items, ok := m[key].([]any)
		if !ok || index >= len(items) {
			return
		}
		child, ok := items[index].(map[string]any)
		if !ok {
			return
		}
		for _, f := range muts {
			f(child)
		}
	}
}
