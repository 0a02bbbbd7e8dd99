package models

import "encoding/json"

// Optional holds a domain value that is either present or absent.
// The zero value is absent.
type Optional[T any] struct {
	value   T
	present bool
}

// -----------------------------------------------------------------------------

// Some wraps a present value.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, present: true}
}

// None returns an absent value.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// -----------------------------------------------------------------------------

// Get returns the value and whether it is present. Values with a Clone
// method are returned as a copy.
func (o Optional[T]) Get() (T, bool) {
	return o.copied(), o.present
}

// IsPresent reports whether a value was set.
func (o Optional[T]) IsPresent() bool {
	return o.present
}

// OrElse returns the value when present, def otherwise.
func (o Optional[T]) OrElse(def T) T {
	if o.present {
		return o.copied()
	}
	return def
}

func (o Optional[T]) copied() T {
	if c, ok := any(o.value).(interface{ Clone() T }); ok {
		return c.Clone()
	}
	return o.value
}

// MarshalJSON renders an absent value as null.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.present {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}
