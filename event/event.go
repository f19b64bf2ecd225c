// Package event contains the one-time Event type that is either Triggered (carrying data to be handled) or Consumed.
//
// Events are immutable and handled by pointer: a nil *Event represents an empty slot, and every call to one of the
// constructors creates a distinct occurrence that can be told apart from earlier ones even if it carries equal data.
package event

import (
	"fmt"
	"reflect"

	"github.com/iotaledger/oneshot/runtime/options"
)

// Kind is the type of the state of an Event.
type Kind uint8

const (
	// KindTriggered is the Kind of an Event that still needs to be handled.
	KindTriggered Kind = iota + 1

	// KindConsumed is the Kind of an Event that was handled and can not be handled again.
	KindConsumed
)

// String returns a human-readable version of the Kind.
func (k Kind) String() string {
	switch k {
	case KindTriggered:
		return "Triggered"
	case KindConsumed:
		return "Consumed"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Event is a one-time event that is either Triggered or Consumed.
type Event[T any] struct {
	kind Kind
	data T
	tags Tags
}

// NewTriggered creates a new Triggered Event that carries the given data.
func NewTriggered[T any](data T, opts ...options.Option[Tags]) *Event[T] {
	return &Event[T]{
		kind: KindTriggered,
		data: data,
		tags: *options.Apply(new(Tags), opts),
	}
}

// NewConsumed creates a new Consumed Event.
func NewConsumed[T any](opts ...options.Option[Tags]) *Event[T] {
	return &Event[T]{
		kind: KindConsumed,
		tags: *options.Apply(new(Tags), opts),
	}
}

// Kind returns the Kind of the Event.
func (e *Event[T]) Kind() Kind {
	return e.kind
}

// IsTriggered returns true if the Event is Triggered.
func (e *Event[T]) IsTriggered() bool {
	return e != nil && e.kind == KindTriggered
}

// IsConsumed returns true if the Event is Consumed.
func (e *Event[T]) IsConsumed() bool {
	return e != nil && e.kind == KindConsumed
}

// Data returns the data of a Triggered Event (or the zero value if the Event is Consumed).
func (e *Event[T]) Data() T {
	return e.data
}

// Emitter returns the identity of the emitter of the Event.
func (e *Event[T]) Emitter() Identity {
	return e.tags.Emitter
}

// Receiver returns the identity of the designated receiver of the Event.
func (e *Event[T]) Receiver() Identity {
	return e.tags.Receiver
}

// Tags returns the identity tags of the Event.
func (e *Event[T]) Tags() Tags {
	return e.tags
}

// Consumed returns the Consumed form of the Event. A Triggered Event is converted into a new Consumed Event with the
// same tags, an Event that is already Consumed is returned as is.
func (e *Event[T]) Consumed() *Event[T] {
	if e == nil || e.kind == KindConsumed {
		return e
	}

	return NewConsumed[T](WithTags(e.tags))
}

// Equal returns true if both Events have the same Kind, tags and data.
func (e *Event[T]) Equal(other *Event[T]) bool {
	if e == nil || other == nil {
		return e == other
	}

	if e.kind != other.kind || !IdentityEqual(e.tags.Emitter, other.tags.Emitter) || !IdentityEqual(e.tags.Receiver, other.tags.Receiver) {
		return false
	}

	return e.kind == KindConsumed || reflect.DeepEqual(e.data, other.data)
}

// String returns a human-readable version of the Event.
func (e *Event[T]) String() string {
	if e == nil {
		return "Event(nil)"
	}

	if e.kind == KindConsumed {
		return fmt.Sprintf("Consumed(emitter=%v, receiver=%v)", e.tags.Emitter, e.tags.Receiver)
	}

	return fmt.Sprintf("Triggered(data=%v, emitter=%v, receiver=%v)", e.data, e.tags.Emitter, e.tags.Receiver)
}

// IsQuiescent returns true if the given slot value is empty or Consumed.
func IsQuiescent[T any](e *Event[T]) bool {
	return e == nil || e.kind == KindConsumed
}
