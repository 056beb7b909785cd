// Package opt provides an explicit optional value type. It distinguishes
// "absent" from "present but zero", which pointers and zero values blur.
package opt

// Value holds an optional value of type T.
// The zero Value is absent.
type Value[T any] struct {
	value T
	ok    bool
}

// Of returns a present Value holding v.
func Of[T any](v T) Value[T] {
	return Value[T]{value: v, ok: true}
}

// None returns an absent Value.
func None[T any]() Value[T] {
	return Value[T]{}
}

// Get returns the held value and whether it is present.
func (v Value[T]) Get() (T, bool) {
	return v.value, v.ok
}

// IsPresent reports whether a value is held.
func (v Value[T]) IsPresent() bool {
	return v.ok
}

// OrElse returns the held value, or fallback when absent.
func (v Value[T]) OrElse(fallback T) T {
	if v.ok {
		return v.value
	}
	return fallback
}

// Ptr returns a pointer to a copy of the held value, or nil when absent.
func (v Value[T]) Ptr() *T {
	if !v.ok {
		return nil
	}
	c := v.value
	return &c
}
