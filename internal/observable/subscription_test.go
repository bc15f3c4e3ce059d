package observable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscription_UnsubscribeIsIdempotent(t *testing.T) {
	subject := newTestSubject(t)
	j := &journal{}

	sub := subject.Subscribe(&recorder{name: "a", journal: j})
	subject.Subscribe(&recorder{name: "b", journal: j})

	handle, ok := sub.(*Subscription[int])
	require.True(t, ok)
	assert.True(t, handle.Active())
	assert.False(t, handle.Released())

	for range 3 {
		assert.NotPanics(t, sub.Unsubscribe)
	}

	assert.True(t, handle.Released())
	assert.False(t, handle.Active())
	assert.Equal(t, 1, subject.Len())

	subject.Next(1)
	assert.Equal(t, []string{"b:next:1"}, j.list())
}

func TestSubscription_DuplicateHandlesShareRegistration(t *testing.T) {
	subject := newTestSubject(t)
	a := &recorder{name: "a", journal: &journal{}}

	first := subject.Subscribe(a)
	second := subject.Subscribe(a)

	first.Unsubscribe()
	assert.Equal(t, 0, subject.Len())

	// Second handle is equivalent and finds nothing left to remove
	assert.NotPanics(t, second.Unsubscribe)
	assert.Equal(t, 0, subject.Len())
}

func TestSubscription_InactiveAfterDirectUnsubscribe(t *testing.T) {
	subject := newTestSubject(t)
	a := &recorder{name: "a", journal: &journal{}}

	sub := subject.Subscribe(a).(*Subscription[int])
	subject.Unsubscribe(a)

	assert.False(t, sub.Active())
	assert.False(t, sub.Released())
	assert.NotPanics(t, sub.Unsubscribe)
}

func TestSubscription_ReleasesObserverAfterResubscribe(t *testing.T) {
	subject := newTestSubject(t)
	j := &journal{}
	a := &recorder{name: "a", journal: j}
	b := &recorder{name: "b", journal: j}

	handle := subject.Subscribe(a)
	subject.Subscribe(b)
	subject.Unsubscribe(a)
	subject.Subscribe(a)
	require.Equal(t, 2, subject.Len())

	handle.Unsubscribe()
	assert.Equal(t, 1, subject.Len())

	subject.Next(1)
	assert.Equal(t, []string{"b:next:1"}, j.list())
}

func TestSubscription_InertHandle(t *testing.T) {
	sub := releasedSubscription[int]()

	assert.True(t, sub.Released())
	assert.False(t, sub.Active())
	assert.NotPanics(t, sub.Unsubscribe)
}

func TestValue(t *testing.T) {
	known := Known(42)
	v, ok := known.Get()
	assert.True(t, ok)
	assert.True(t, known.IsKnown())
	assert.Equal(t, 42, v)

	unknown := Unknown[int]()
	_, ok = unknown.Get()
	assert.False(t, ok)
	assert.False(t, unknown.IsKnown())

	var zero Value[string]
	assert.False(t, zero.IsKnown())
}

func TestIsNil(t *testing.T) {
	var nilRecorder *recorder
	var nilMap map[string]int
	var nilFunc func()

	tests := []struct {
		name  string
		value any
		want  bool
	}{
		{name: "untyped nil", value: nil, want: true},
		{name: "nil pointer", value: nilRecorder, want: true},
		{name: "nil map", value: nilMap, want: true},
		{name: "nil func", value: nilFunc, want: true},
		{name: "pointer", value: &recorder{}, want: false},
		{name: "struct value", value: sliceObserver{}, want: false},
		{name: "int", value: 0, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsNil(tt.value))
		})
	}
}

func TestSameIdentity(t *testing.T) {
	a := &recorder{name: "a"}
	b := &recorder{name: "a"}

	assert.True(t, SameIdentity(a, a))
	assert.False(t, SameIdentity(a, b))
	assert.True(t, SameIdentity(nil, nil))
	assert.False(t, SameIdentity(a, nil))
	assert.False(t, SameIdentity(funcObserver(nil), funcObserver(nil)))
	assert.False(t, SameIdentity(boxedObserver{inner: []int{}}, boxedObserver{inner: []int{}}))
	assert.True(t, SameIdentity(boxedObserver{inner: 1}, boxedObserver{inner: 1}))
}
