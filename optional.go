package objc

// Optional is a value that may be absent. Lookups that report absence with a
// nil handle have Optional returning twins.
type Optional[T any] struct {
	Value  T
	isSome bool
}

func Some[T any](value T) Optional[T] { return Optional[T]{Value: value, isSome: true} }
func None[T any]() Optional[T]        { return Optional[T]{} }

func (o Optional[T]) IsSome() bool { return o.isSome }
func (o Optional[T]) IsNone() bool { return !o.isSome }

func (o Optional[T]) Get() (T, bool) { return o.Value, o.isSome }

func (o Optional[T]) OrElse(value T) T {
	if o.isSome {
		return o.Value
	}
	return value
}

func (o *Optional[T]) Clear() {
	var zero T
	o.Value = zero
	o.isSome = false
}

func (o *Optional[T]) Set(value T) {
	o.Value = value
	o.isSome = true
}

type nilable interface {
	comparable
	IsNil() bool
}

// OptionalOf maps a nil handle to None and anything else to Some.
func OptionalOf[T nilable](h T) Optional[T] {
	if h.IsNil() {
		return None[T]()
	}
	return Some(h)
}
