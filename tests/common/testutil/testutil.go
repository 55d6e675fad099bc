//go:build unit || e2e

package testutil

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

// Mutation edits the JSON form of a request body before it is sent.
type Mutation func(map[string]any)

// Field sets key to value; a nil value removes the key so required-field
// validation can be exercised.
func Field(key string, value any) Mutation {
	return func(m map[string]any) {
		if value == nil {
			delete(m, key)
		} else {
			m[key] = value
		}
	}
}

// DtoMap round-trips v through JSON and applies the mutations, producing a
// request body map that no longer has to satisfy the DTO's types.
func DtoMap(t *testing.T, v any, muts ...Mutation) map[string]any {
	t.Helper()

	b, err := json.Marshal(v)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))

	for _, mut := range muts {
		if mut != nil {
			mut(m)
		}
	}
	return m
}
