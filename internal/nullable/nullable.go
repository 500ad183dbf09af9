// Package nullable provides a JSON value that tells an absent field apart from an explicit null.
package nullable

import (
	"bytes"
	"encoding/json"
)

// Value holds an optional T. The zero Value is absent.
type Value[T any] struct {
	set   bool
	valid bool
	v     T
}

// Of returns a present, non-null value.
func Of[T any](v T) Value[T] { return Value[T]{set: true, valid: true, v: v} }

// Null returns a present, explicitly null value.
func Null[T any]() Value[T] { return Value[T]{set: true} }

// IsSet reports whether the field appeared in the payload, null or not.
func (n Value[T]) IsSet() bool { return n.set }

// IsNull reports whether there is no usable value (absent or null).
func (n Value[T]) IsNull() bool { return !n.valid }

// IsZero lets `omitzero` drop absent fields when encoding.
func (n Value[T]) IsZero() bool { return !n.set }

// Get returns the value and whether it is usable.
func (n Value[T]) Get() (T, bool) { return n.v, n.valid }

// OrZero returns the value, or T's zero value when absent or null.
func (n Value[T]) OrZero() T {
	if !n.valid {
		var zero T
		return zero
	}
	return n.v
}

// Ptr returns a pointer to a copy of the value, nil when absent or null.
func (n Value[T]) Ptr() *T {
	if !n.valid {
		return nil
	}
	v := n.v
	return &v
}

// ValidationValue exposes the wrapped value to struct validators; nil when unusable.
func (n Value[T]) ValidationValue() any {
	if !n.valid {
		return nil
	}
	return n.v
}

// FromPtr converts a pointer: nil becomes an explicit null.
func FromPtr[T any](p *T) Value[T] {
	if p == nil {
		return Null[T]()
	}
	return Of(*p)
}

func (n *Value[T]) UnmarshalJSON(b []byte) error {
	n.set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		n.valid = false
		var zero T
		n.v = zero
		return nil
	}
	if err := json.Unmarshal(b, &n.v); err != nil {
		return err
	}
	n.valid = true
	return nil
}

func (n Value[T]) MarshalJSON() ([]byte, error) {
	if !n.valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.v)
}
