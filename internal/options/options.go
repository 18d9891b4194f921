// Package options implements the functional options used by every dtext constructor.
package options

// Option configures a target of type T. Only this package can create
// implementations, so every option goes through New or NoError.
type Option[T any] interface {
	apply(T) error
}

// Func adapts a plain function into an Option.
type Func[T any] func(T) error

func (f Func[T]) apply(target T) error {
	return f(target)
}

// New wraps fn as an option that may reject its argument.
func New[T any](fn func(T) error) Func[T] {
	return Func[T](fn)
}

// NoError wraps fn as an option that always succeeds.
func NoError[T any](fn func(T)) Func[T] {
	return func(target T) error {
		fn(target)
		return nil
	}
}

// Apply applies opts to target in order and stops at the first failure.
// Nil options are skipped.
func Apply[T any](target T, opts ...Option[T]) error {
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt.apply(target); err != nil {
			return err
		}
	}

	return nil
}
