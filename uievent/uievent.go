// Package uievent contains the UI-bound variant of the one-time event.Event.
//
// A UiEvent is structurally identical to an event.Event but can additionally be persisted by the savedstate layer so
// that a pending event survives a restart of the component that owns it.
package uievent

import (
	"fmt"
	"reflect"

	"github.com/iotaledger/oneshot/event"
	"github.com/iotaledger/oneshot/runtime/options"
)

// UiEvent is a one-time UI event that is either Triggered or Consumed.
type UiEvent[T any] struct {
	kind event.Kind
	data T
	tags event.Tags
}

// NewTriggered creates a new Triggered UiEvent that carries the given data.
func NewTriggered[T any](data T, opts ...options.Option[event.Tags]) *UiEvent[T] {
	return &UiEvent[T]{
		kind: event.KindTriggered,
		data: data,
		tags: *options.Apply(new(event.Tags), opts),
	}
}

// NewConsumed creates a new Consumed UiEvent.
func NewConsumed[T any](opts ...options.Option[event.Tags]) *UiEvent[T] {
	return &UiEvent[T]{
		kind: event.KindConsumed,
		tags: *options.Apply(new(event.Tags), opts),
	}
}

// Kind returns the Kind of the UiEvent.
func (u *UiEvent[T]) Kind() event.Kind {
	return u.kind
}

// IsTriggered returns true if the UiEvent is Triggered.
func (u *UiEvent[T]) IsTriggered() bool {
	return u != nil && u.kind == event.KindTriggered
}

// IsConsumed returns true if the UiEvent is Consumed.
func (u *UiEvent[T]) IsConsumed() bool {
	return u != nil && u.kind == event.KindConsumed
}

// Data returns the data of a Triggered UiEvent (or the zero value if the UiEvent is Consumed).
func (u *UiEvent[T]) Data() T {
	return u.data
}

// Emitter returns the identity of the emitter of the UiEvent.
func (u *UiEvent[T]) Emitter() event.Identity {
	return u.tags.Emitter
}

// Receiver returns the identity of the designated receiver of the UiEvent.
func (u *UiEvent[T]) Receiver() event.Identity {
	return u.tags.Receiver
}

// Consumed returns the Consumed form of the UiEvent (a UiEvent that is already Consumed is returned as is).
func (u *UiEvent[T]) Consumed() *UiEvent[T] {
	if u == nil || u.kind == event.KindConsumed {
		return u
	}

	return NewConsumed[T](event.WithTags(u.tags))
}

// Equal returns true if both UiEvents have the same Kind, tags and data.
func (u *UiEvent[T]) Equal(other *UiEvent[T]) bool {
	if u == nil || other == nil {
		return u == other
	}

	if u.kind != other.kind || !event.IdentityEqual(u.tags.Emitter, other.tags.Emitter) || !event.IdentityEqual(u.tags.Receiver, other.tags.Receiver) {
		return false
	}

	return u.kind == event.KindConsumed || reflect.DeepEqual(u.data, other.data)
}

// String returns a human-readable version of the UiEvent.
func (u *UiEvent[T]) String() string {
	if u == nil {
		return "UiEvent(nil)"
	}

	if u.kind == event.KindConsumed {
		return fmt.Sprintf("UiEvent.Consumed(emitter=%v, receiver=%v)", u.tags.Emitter, u.tags.Receiver)
	}

	return fmt.Sprintf("UiEvent.Triggered(data=%v, emitter=%v, receiver=%v)", u.data, u.tags.Emitter, u.tags.Receiver)
}
