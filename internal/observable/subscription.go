package observable

import (
	"github.com/mooncorn/locationtracker/internal/interfaces"
	"go.uber.org/atomic"
)

var _ interfaces.Subscription = (*Subscription[struct{}])(nil)

// Subscription binds a subject to one observer. Unsubscribe removes that
// observer if it is still registered, including after it subscribed again.
type Subscription[T any] struct {
	id       string
	subject  *Subject[T]
	observer interfaces.Observer[T]
	released atomic.Bool
}

func newSubscription[T any](subject *Subject[T], id string, observer interfaces.Observer[T]) *Subscription[T] {
	return &Subscription[T]{
		id:       id,
		subject:  subject,
		observer: observer,
	}
}

// releasedSubscription returns an inert handle for rejected subscribe calls
func releasedSubscription[T any]() *Subscription[T] {
	sub := &Subscription[T]{}
	sub.released.Store(true)
	return sub
}

// ID returns the registration id the handle was issued for, empty for an inert handle
func (s *Subscription[T]) ID() string {
	return s.id
}

// Unsubscribe removes the bound observer from the subject if still present.
// Only the first call has an effect.
func (s *Subscription[T]) Unsubscribe() {
	if !s.released.CompareAndSwap(false, true) {
		return
	}
	if s.subject != nil {
		s.subject.Unsubscribe(s.observer)
	}
}

// Released reports whether Unsubscribe has been called on this handle
func (s *Subscription[T]) Released() bool {
	return s.released.Load()
}

// Active reports whether the bound observer is still receiving notifications
func (s *Subscription[T]) Active() bool {
	return !s.released.Load() && s.subject != nil && s.subject.contains(s.observer)
}
