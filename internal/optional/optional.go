// Package optional models per-field update intent: leave the stored value
// alone, overwrite it, or clear it.
package optional

import (
	"bytes"
	"encoding/json"
)

type state uint8

const (
	stateKeep state = iota
	stateSet
	stateClear
)

// Value is a tagged update for a single optional field. The zero Value is Keep.
//
// When decoded from JSON an absent key stays Keep, an explicit null becomes
// Clear and any other value becomes Set.
type Value[T any] struct {
	state state
	value T
}

// Keep returns a Value that leaves the stored field unchanged.
func Keep[T any]() Value[T] { return Value[T]{} }

// Set returns a Value that overwrites the stored field with v.
func Set[T any](v T) Value[T] { return Value[T]{state: stateSet, value: v} }

// Clear returns a Value that removes the stored field.
func Clear[T any]() Value[T] { return Value[T]{state: stateClear} }

// FromPtr maps nil to Keep and a non-nil pointer to Set.
func FromPtr[T any](p *T) Value[T] {
	if p == nil {
		return Keep[T]()
	}
	return Set(*p)
}

func (v Value[T]) IsKeep() bool  { return v.state == stateKeep }
func (v Value[T]) IsSet() bool   { return v.state == stateSet }
func (v Value[T]) IsClear() bool { return v.state == stateClear }

// Get returns the value and whether it is Set.
func (v Value[T]) Get() (T, bool) {
	return v.value, v.state == stateSet
}

// Apply returns the field as it should be stored after the update, given
// its current value.
func (v Value[T]) Apply(current *T) *T {
	switch v.state {
	case stateSet:
		out := v.value
		return &out
	case stateClear:
		return nil
	default:
		return current
	}
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*v = Clear[T]()
		return nil
	}
	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		return err
	}
	*v = Set(out)
	return nil
}
