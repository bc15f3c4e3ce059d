package observable

// Value is either a known payload or the unknown marker. The zero Value is unknown.
type Value[T any] struct {
	value T
	known bool
}

// Known wraps v as a known value
func Known[T any](v T) Value[T] {
	return Value[T]{value: v, known: true}
}

// Unknown returns the marker for a value that cannot be determined
func Unknown[T any]() Value[T] {
	return Value[T]{}
}

// Get returns the payload and whether it is known
func (v Value[T]) Get() (T, bool) {
	return v.value, v.known
}

// IsKnown reports whether v carries a payload
func (v Value[T]) IsKnown() bool {
	return v.known
}
