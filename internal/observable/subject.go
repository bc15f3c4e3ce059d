package observable

import (
	"errors"
	"fmt"
	"reflect"
	"runtime/debug"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/mooncorn/locationtracker/internal/interfaces"
	"github.com/sirupsen/logrus"
	"go.uber.org/atomic"
)

// ErrUnknownValue is delivered to observers when an Unknown value is emitted
var ErrUnknownValue = errors.New("value cannot be determined")

var _ interfaces.Subject[struct{}] = (*Subject[struct{}])(nil)

// Config holds the settings for a Subject
type Config struct {
	// Name is attached to every log entry of the subject
	Name string

	// Logger defaults to the logrus standard logger
	Logger *logrus.Logger

	// UnknownErr is passed to OnError when Emit receives an Unknown value.
	// Defaults to ErrUnknownValue.
	UnknownErr error

	// OnPanic is called after a panicking observer callback has been recovered
	OnPanic func(registrationID string, recovered any)
}

// Stats contains observable metrics for a Subject
type Stats struct {
	Observers   int
	Delivered   uint64
	Recovered   uint64
	Completions uint64
}

// registration is a single entry of the observer list
type registration[T any] struct {
	id       string
	observer interfaces.Observer[T]
}

// Subject keeps an ordered list of unique observers and notifies them
// synchronously. Observers are compared by identity (usually pointers).
type Subject[T any] struct {
	log        *logrus.Entry
	unknownErr error
	onPanic    func(string, any)

	registrations   []registration[T]
	registrationsMu sync.RWMutex

	delivered   atomic.Uint64
	recovered   atomic.Uint64
	completions atomic.Uint64
}

// New creates a new Subject with no observers
func New[T any](config Config) *Subject[T] {
	logger := config.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	unknownErr := config.UnknownErr
	if unknownErr == nil {
		unknownErr = ErrUnknownValue
	}

	return &Subject[T]{
		log:        logger.WithField("subject", config.Name),
		unknownErr: unknownErr,
		onPanic:    config.OnPanic,
	}
}

// Subscribe adds an observer to the list of observers. Subscribing an observer
// that is already registered does not add it again; the returned handle is bound
// to the existing registration. Nil and non-comparable observers are rejected
// with an inert handle.
func (s *Subject[T]) Subscribe(observer interfaces.Observer[T]) interfaces.Subscription {
	if reason := rejectObserver(observer); reason != "" {
		s.log.WithField("observer", fmt.Sprintf("%T", observer)).Warnf("Ignoring subscribe of %s observer", reason)
		return releasedSubscription[T]()
	}

	s.registrationsMu.Lock()
	defer s.registrationsMu.Unlock()

	if i := s.indexOf(observer); i >= 0 {
		reg := s.registrations[i]
		s.log.WithField("registration", reg.id).Debug("Observer already subscribed")
		return newSubscription(s, reg.id, observer)
	}

	reg := registration[T]{
		id:       uuid.New().String(),
		observer: observer,
	}
	s.registrations = append(s.registrations, reg)

	s.log.WithFields(logrus.Fields{
		"registration": reg.id,
		"observers":    len(s.registrations),
	}).Debug("Observer subscribed")

	return newSubscription(s, reg.id, observer)
}

// Unsubscribe removes an observer from the list of observers. Unknown, nil and
// non-comparable observers are ignored.
func (s *Subject[T]) Unsubscribe(observer interfaces.Observer[T]) {
	if rejectObserver(observer) != "" {
		return
	}

	s.registrationsMu.Lock()
	defer s.registrationsMu.Unlock()

	i := s.indexOf(observer)
	if i < 0 {
		return
	}
	reg := s.registrations[i]
	s.registrations = slices.Delete(s.registrations, i, i+1)
	s.log.WithField("registration", reg.id).Debug("Observer unsubscribed")
}

// Next sends value to every observer registered when the call starts
func (s *Subject[T]) Next(value T) {
	for _, reg := range s.snapshot() {
		s.deliver(reg, func(o interfaces.Observer[T]) { o.OnNext(value) })
	}
}

// Error sends err to every observer registered when the call starts.
// A nil err is replaced by the configured unknown-value error.
func (s *Subject[T]) Error(err error) {
	if err == nil {
		err = s.unknownErr
	}
	for _, reg := range s.snapshot() {
		s.deliver(reg, func(o interfaces.Observer[T]) { o.OnError(err) })
	}
}

// Emit dispatches on v: known values go to OnNext, unknown values to OnError
func (s *Subject[T]) Emit(v Value[T]) {
	if value, ok := v.Get(); ok {
		s.Next(value)
		return
	}
	s.Error(s.unknownErr)
}

// Complete notifies every observer registered when the call starts and then
// clears the list. The subject stays usable afterwards.
func (s *Subject[T]) Complete() {
	for _, reg := range s.snapshot() {
		s.deliver(reg, func(o interfaces.Observer[T]) { o.OnCompleted() })
	}

	s.registrationsMu.Lock()
	remaining := len(s.registrations)
	s.registrations = nil
	s.registrationsMu.Unlock()

	s.completions.Inc()
	s.log.WithField("cleared", remaining).Debug("Subject completed")
}

// Len returns the number of registered observers
func (s *Subject[T]) Len() int {
	s.registrationsMu.RLock()
	defer s.registrationsMu.RUnlock()
	return len(s.registrations)
}

// Stats returns current subject metrics without side effects
func (s *Subject[T]) Stats() Stats {
	return Stats{
		Observers:   s.Len(),
		Delivered:   s.delivered.Load(),
		Recovered:   s.recovered.Load(),
		Completions: s.completions.Load(),
	}
}

// contains reports whether observer is currently registered
func (s *Subject[T]) contains(observer interfaces.Observer[T]) bool {
	s.registrationsMu.RLock()
	defer s.registrationsMu.RUnlock()
	return s.indexOf(observer) >= 0
}

// indexOf returns the position of observer or -1. Callers hold registrationsMu.
func (s *Subject[T]) indexOf(observer interfaces.Observer[T]) int {
	for i, reg := range s.registrations {
		if reg.observer == observer {
			return i
		}
	}
	return -1
}

// snapshot copies the observer list so callbacks can mutate it freely
func (s *Subject[T]) snapshot() []registration[T] {
	s.registrationsMu.RLock()
	defer s.registrationsMu.RUnlock()

	regs := make([]registration[T], len(s.registrations))
	copy(regs, s.registrations)
	return regs
}

// deliver runs one callback with panic recovery so the rest of the pass continues
func (s *Subject[T]) deliver(reg registration[T], notify func(interfaces.Observer[T])) {
	defer func() {
		if r := recover(); r != nil {
			s.recovered.Inc()
			s.log.WithFields(logrus.Fields{
				"registration": reg.id,
				"panic":        r,
			}).Errorf("Observer panicked during notification\n%s", debug.Stack())
			s.reportPanic(reg.id, r)
		}
	}()

	notify(reg.observer)
	s.delivered.Inc()
}

func (s *Subject[T]) reportPanic(id string, r any) {
	if s.onPanic == nil {
		return
	}
	defer func() {
		if p := recover(); p != nil {
			s.log.WithField("panic", p).Error("Panic handler panicked")
		}
	}()
	s.onPanic(id, r)
}

// rejectObserver returns why observer cannot be registered, or "" if it can.
// Identity checks use ==, which panics on values that are not comparable.
func rejectObserver(observer any) string {
	if IsNil(observer) {
		return "nil"
	}
	if !reflect.ValueOf(observer).Comparable() {
		return "non-comparable"
	}
	return ""
}

// IsNil reports whether v is nil or an interface holding a nil pointer, map,
// slice, func or chan
func IsNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// SameIdentity reports whether a and b are the same comparable value. It never
// panics, values that cannot be compared are never identical.
func SameIdentity(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if !reflect.ValueOf(a).Comparable() || !reflect.ValueOf(b).Comparable() {
		return false
	}
	return a == b
}
