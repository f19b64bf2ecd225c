package event

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func testEvents() []*Event[int] {
	return []*Event[int]{
		NewTriggered(5, WithEmitter("A"), WithReceiver("B")),
		NewTriggered(0),
		NewTriggered(1, WithEmitter(42)),
		NewConsumed[int](WithEmitter("A"), WithReceiver("B")),
		NewConsumed[int](),
	}
}

func TestConsumed_Idempotent(t *testing.T) {
	for _, e := range testEvents() {
		consumed := e.Consumed()

		require.True(t, consumed.IsConsumed())
		require.True(t, consumed.Consumed().Equal(consumed), "consumed twice: %s", e)
	}
}

func TestConsumed_PreservesTags(t *testing.T) {
	for _, e := range testEvents() {
		consumed := e.Consumed()

		require.Equal(t, e.Emitter(), consumed.Emitter())
		require.Equal(t, e.Receiver(), consumed.Receiver())
	}
}

func TestConsumed_Transform(t *testing.T) {
	triggered := NewTriggered("payload", WithEmitter("A"), WithReceiver("B"))

	consumed := triggered.Consumed()
	require.True(t, consumed.Equal(NewConsumed[string](WithEmitter("A"), WithReceiver("B"))))
	require.Zero(t, consumed.Data())
	require.NotSame(t, triggered, consumed)

	// the source Event is never modified
	require.True(t, triggered.IsTriggered())
	require.Equal(t, "payload", triggered.Data())

	require.Same(t, consumed, consumed.Consumed())

	var absent *Event[string]
	require.Nil(t, absent.Consumed())
}

func TestEqual(t *testing.T) {
	require.True(t, NewTriggered([]int{1, 2}).Equal(NewTriggered([]int{1, 2})))
	require.False(t, NewTriggered([]int{1, 2}).Equal(NewTriggered([]int{1})))
	require.False(t, NewTriggered(1).Equal(NewConsumed[int]()))
	require.False(t, NewTriggered(1, WithEmitter("A")).Equal(NewTriggered(1, WithEmitter("B"))))
	require.False(t, NewTriggered(1, WithEmitter(1)).Equal(NewTriggered(1, WithEmitter("1"))))
	require.True(t, NewTriggered(1, WithReceiver([]string{"x"})).Equal(NewTriggered(1, WithReceiver([]string{"x"}))))

	var absent *Event[int]
	require.True(t, absent.Equal(nil))
	require.False(t, absent.Equal(NewConsumed[int]()))
}

func TestIsQuiescent(t *testing.T) {
	require.True(t, IsQuiescent[int](nil))
	require.True(t, IsQuiescent(NewConsumed[int]()))
	require.False(t, IsQuiescent(NewTriggered(1)))

	var absent *Event[int]
	require.False(t, absent.IsTriggered())
	require.False(t, absent.IsConsumed())
}

func TestString(t *testing.T) {
	require.Equal(t, "Triggered(data=5, emitter=A, receiver=B)", NewTriggered(5, WithEmitter("A"), WithReceiver("B")).String())
	require.Equal(t, "Consumed(emitter=<nil>, receiver=<nil>)", NewConsumed[int]().String())
	require.Equal(t, "Triggered", KindTriggered.String())
	require.Equal(t, "Kind(7)", Kind(7).String())
}

func TestIdentityEqual(t *testing.T) {
	type wrapper struct{ Value any }

	require.True(t, IdentityEqual(nil, nil))
	require.False(t, IdentityEqual(nil, "A"))
	require.True(t, IdentityEqual("A", "A"))
	require.False(t, IdentityEqual(int32(1), int64(1)))
	require.True(t, IdentityEqual(wrapper{Value: []int{1}}, wrapper{Value: []int{1}}))
	require.False(t, IdentityEqual(wrapper{Value: []int{1}}, wrapper{Value: []int{2}}))
}
