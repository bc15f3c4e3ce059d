package observable

// Funcs adapts plain functions to interfaces.Observer. Nil fields are skipped.
// Use it by pointer so that subscribe and unsubscribe see the same identity.
type Funcs[T any] struct {
	NextFunc      func(value T)
	ErrorFunc     func(err error)
	CompletedFunc func()
}

// OnNext calls NextFunc
func (f *Funcs[T]) OnNext(value T) {
	if f.NextFunc != nil {
		f.NextFunc(value)
	}
}

// OnError calls ErrorFunc
func (f *Funcs[T]) OnError(err error) {
	if f.ErrorFunc != nil {
		f.ErrorFunc(err)
	}
}

// OnCompleted calls CompletedFunc
func (f *Funcs[T]) OnCompleted() {
	if f.CompletedFunc != nil {
		f.CompletedFunc()
	}
}
