// Package options implements the generic functional-option machinery
// shared by the allocator, container and message constructors. Each
// package declares its own exported Option alias over its private config
// type, so callers only ever see strongly typed WithXxx helpers.
package options

// Option configures a value of type T during construction.
type Option[T any] interface {
	apply(T) error
}

// Func adapts a plain function into an Option.
type Func[T any] struct {
	applyFunc func(T) error
}

func (f *Func[T]) apply(target T) error {
	return f.applyFunc(target)
}

// New wraps a fallible configuration function as an Option. Use it for
// options that validate their argument, such as memory limits.
func New[T any](fn func(T) error) *Func[T] {
	return &Func[T]{applyFunc: fn}
}

// NoError wraps an infallible configuration function as an Option.
func NoError[T any](fn func(T)) *Func[T] {
	return &Func[T]{
		applyFunc: func(target T) error {
			fn(target)
			return nil
		},
	}
}

// Apply runs the options against target in order, stopping at the first
// error.
func Apply[T any](target T, opts ...Option[T]) error {
	for _, opt := range opts {
		if err := opt.apply(target); err != nil {
			return err
		}
	}

	return nil
}
