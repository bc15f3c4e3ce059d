package interfaces

// Observer defines the interface for observers that want to be notified of events
type Observer[T any] interface {
	// OnNext is called for every value the subject emits
	OnNext(value T)

	// OnError is called when the subject cannot produce a value
	OnError(err error)

	// OnCompleted is called once the subject has finished emitting
	OnCompleted()
}

// Subscription is the handle returned by Subscribe. Unsubscribe may be called
// any number of times.
type Subscription interface {
	// ID identifies the registration the handle was issued for
	ID() string

	// Unsubscribe removes the bound observer from the subject if still present
	Unsubscribe()
}

// Observable defines the interface for sources that observers can register with
type Observable[T any] interface {
	// Subscribe adds an observer to the list of observers
	Subscribe(observer Observer[T]) Subscription

	// Unsubscribe removes an observer from the list of observers
	Unsubscribe(observer Observer[T])
}

// Subject defines the interface for subjects that can be observed and driven
type Subject[T any] interface {
	Observable[T]

	// Next notifies all registered observers of a value
	Next(value T)

	// Error notifies all registered observers of an error
	Error(err error)

	// Complete notifies all registered observers of completion and removes them
	Complete()
}
