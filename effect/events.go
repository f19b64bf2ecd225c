package effect

import (
	"github.com/iotaledger/oneshot/event"
	hooks "github.com/iotaledger/oneshot/runtime/event"
)

// Events contains the events of an EventEffect.
type Events[T any] struct {
	// Dispatched is triggered when a Triggered event is passed to the handler.
	Dispatched *hooks.Event1[*event.Event[T]]

	// Consumed is triggered after the consumption callback was invoked with the Consumed event.
	Consumed *hooks.Event1[*event.Event[T]]

	// ConsumptionSkipped is triggered when the stale consumption guard prevented a consumption.
	ConsumptionSkipped *hooks.Event1[*event.Event[T]]

	// Cancelled is triggered when the handler of a consume-after dispatch was cancelled before it completed.
	Cancelled *hooks.Event1[*event.Event[T]]

	// Relaunched is triggered with the new keys when a key change restarted the observation.
	Relaunched *hooks.Event1[[]any]

	// QuiescentLaunched is triggered when the while-quiescent effect was launched.
	QuiescentLaunched *hooks.Event
}

// newEvents creates the Events of an EventEffect.
func newEvents[T any]() *Events[T] {
	return &Events[T]{
		Dispatched:         hooks.New1[*event.Event[T]](),
		Consumed:           hooks.New1[*event.Event[T]](),
		ConsumptionSkipped: hooks.New1[*event.Event[T]](),
		Cancelled:          hooks.New1[*event.Event[T]](),
		Relaunched:         hooks.New1[[]any](),
		QuiescentLaunched:  hooks.New(),
	}
}
