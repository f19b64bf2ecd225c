package uievent

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iotaledger/oneshot/event"
	"github.com/iotaledger/oneshot/ierrors"
)

type payload struct {
	Title string
	Count int
}

func TestMapper_RoundTrip(t *testing.T) {
	events := []*event.Event[payload]{
		event.NewTriggered(payload{Title: "saved", Count: 2}, event.WithEmitter("A"), event.WithReceiver("B")),
		event.NewTriggered(payload{}),
		event.NewConsumed[payload](event.WithEmitter(7)),
		event.NewConsumed[payload](),
		nil,
	}

	for _, e := range events {
		require.True(t, FromEvent(e).ToEvent().Equal(e), "round trip of %s", e)
	}

	uiEvents := []*UiEvent[payload]{
		NewTriggered(payload{Title: "x"}, event.WithReceiver(Transient{Value: "screen"})),
		NewConsumed[payload](event.WithEmitter("A"), event.WithReceiver("B")),
		nil,
	}

	for _, u := range uiEvents {
		require.True(t, FromEvent(u.ToEvent()).Equal(u), "round trip of %s", u)
	}
}

func TestMapper_PreservesFields(t *testing.T) {
	e := event.NewTriggered(5, event.WithEmitter("A"), event.WithReceiver("B"))

	u := FromEvent(e)
	require.True(t, u.IsTriggered())
	require.Equal(t, 5, u.Data())
	require.Equal(t, "A", u.Emitter())
	require.Equal(t, "B", u.Receiver())

	consumed := u.Consumed()
	require.True(t, consumed.IsConsumed())
	require.Same(t, consumed, consumed.Consumed())
	require.True(t, consumed.ToEvent().Equal(e.Consumed()))
}

func TestPersist_RoundTrip(t *testing.T) {
	uiEvents := []*UiEvent[payload]{
		NewTriggered(payload{Title: "saved", Count: 2}, event.WithEmitter("A"), event.WithReceiver(int64(-3))),
		NewTriggered(payload{}, event.WithEmitter(true), event.WithReceiver(uint32(9))),
		NewConsumed[payload](event.WithEmitter(12)),
		NewConsumed[payload](),
	}

	for _, u := range uiEvents {
		bytes, err := u.Bytes()
		require.NoError(t, err)

		restored, err := FromBytes[payload](bytes)
		require.NoError(t, err)
		require.True(t, restored.Equal(u), "persisted %s, restored %s", u, restored)
	}
}

func TestPersist_Transient(t *testing.T) {
	type screen struct{ id []byte }

	u := NewTriggered("go back", event.WithEmitter("A"), event.WithReceiver(Transient{Value: screen{id: []byte{1}}}))

	bytes, err := u.Bytes()
	require.NoError(t, err)

	restored, err := FromBytes[string](bytes)
	require.NoError(t, err)
	require.Equal(t, "go back", restored.Data())
	require.Equal(t, "A", restored.Emitter())
	require.Nil(t, restored.Receiver())
}

func TestPersist_Errors(t *testing.T) {
	_, err := NewTriggered(1, event.WithEmitter(3.5)).Bytes()
	require.True(t, ierrors.Is(err, ErrTagNotPersistable))

	_, err = FromBytes[int]([]byte(`{"kind":"Pending"}`))
	require.True(t, ierrors.Is(err, ErrInvalidEncoding))

	_, err = FromBytes[int]([]byte(`{"kind":"Consumed","emitter":{"type":"int","value":"x"}}`))
	require.True(t, ierrors.Is(err, ErrInvalidEncoding))

	_, err = FromBytes[int]([]byte(`{"kind":"Consumed","emitter":{"type":"float","value":"1"}}`))
	require.True(t, ierrors.Is(err, ErrInvalidEncoding))

	_, err = FromBytes[int]([]byte(`not json`))
	require.Error(t, err)
}
