package effect

import (
	"github.com/iotaledger/oneshot/ds/reactive"
	"github.com/iotaledger/oneshot/event"
)

// Slot is a reactive variable that holds the current one-time event of its owner (nil means that nothing is pending).
type Slot[T any] reactive.Variable[*event.Event[T]]

// NewSlot creates a new Slot with an optional initial event.
func NewSlot[T any](initialEvent ...*event.Event[T]) Slot[T] {
	slot := reactive.NewVariable[*event.Event[T]]()
	if len(initialEvent) != 0 {
		slot.Set(initialEvent[0])
	}

	return slot
}

// ConsumeInto returns a consumption callback that stores the Consumed event in the given slot.
func ConsumeInto[T any](slot reactive.WritableVariable[*event.Event[T]]) func(consumed *event.Event[T]) {
	return func(consumed *event.Event[T]) {
		slot.Set(consumed)
	}
}
