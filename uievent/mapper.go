package uievent

import (
	"github.com/iotaledger/oneshot/event"
)

// FromEvent maps the given event.Event to a matching UiEvent.
func FromEvent[T any](e *event.Event[T]) *UiEvent[T] {
	switch {
	case e == nil:
		return nil
	case e.IsTriggered():
		return NewTriggered(e.Data(), event.WithTags(e.Tags()))
	default:
		return NewConsumed[T](event.WithTags(e.Tags()))
	}
}

// ToEvent maps the UiEvent to a matching event.Event.
func (u *UiEvent[T]) ToEvent() *event.Event[T] {
	switch {
	case u == nil:
		return nil
	case u.IsTriggered():
		return event.NewTriggered(u.data, event.WithTags(u.tags))
	default:
		return event.NewConsumed[T](event.WithTags(u.tags))
	}
}
