package statepass

import (
	"encoding/json"
	"fmt"
)

// ToPtr returns a pointer to the given value.
// Useful for literal ContextIndex values in MapIterationEvent.
func ToPtr[T any](v T) *T {
	return &v
}

// AsItems widens a typed slice into the []any that PutItems accepts.
func AsItems[T any](items []T) []any {
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = item
	}
	return out
}

// DecodeItems deserializes the raw elements returned by GetItems into a typed
// slice, preserving order.
func DecodeItems[T any](raw []json.RawMessage) ([]T, error) {
	items := make([]T, len(raw))
	for i, r := range raw {
		if err := json.Unmarshal(r, &items[i]); err != nil {
			return nil, fmt.Errorf("failed to unmarshal list element %d: %w", i, err)
		}
	}
	return items, nil
}
