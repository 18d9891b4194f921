package adapter

import "fmt"

// Nullable holds a value of T or null.
// The zero value is null.
type Nullable[T any] struct {
	value T
	valid bool
}

// Value returns a non-null Nullable holding v.
func Value[T any](v T) Nullable[T] {
	return Nullable[T]{value: v, valid: true}
}

// Null returns a null Nullable.
func Null[T any]() Nullable[T] {
	return Nullable[T]{}
}

// Get returns the value and whether it is present.
func (n Nullable[T]) Get() (T, bool) {
	return n.value, n.valid
}

// IsNull reports whether n holds no value.
func (n Nullable[T]) IsNull() bool {
	return !n.valid
}

// OrElse returns the value, or def when n is null.
func (n Nullable[T]) OrElse(def T) T {
	if !n.valid {
		return def
	}

	return n.value
}

func (n Nullable[T]) String() string {
	if !n.valid {
		return "<null>"
	}

	return fmt.Sprint(n.value)
}
