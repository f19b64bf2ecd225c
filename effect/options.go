package effect

import (
	"context"

	"github.com/iotaledger/oneshot/log"
	"github.com/iotaledger/oneshot/runtime/options"
)

// WithConsumeImmediately selects the consumption policy. If set to true, the consumption callback is invoked before
// the handler is launched on the owner scope, so the event is consumed even if the handler never returns. Otherwise
// (default) the consumption callback is invoked after the handler returned successfully.
func WithConsumeImmediately[T any](consumeImmediately bool) options.Option[EventEffect[T]] {
	return func(e *EventEffect[T]) {
		e.optsConsumeImmediately = consumeImmediately
	}
}

// WithWhileQuiescent sets an effect that is launched whenever the slot becomes empty or Consumed. A running effect is
// cancelled when the slot becomes quiescent again.
func WithWhileQuiescent[T any](whileQuiescent func(ctx context.Context) error) options.Option[EventEffect[T]] {
	return func(e *EventEffect[T]) {
		e.optsWhileQuiescent = whileQuiescent
	}
}

// WithStaleConsumptionGuard makes the EventEffect skip the consumption callback if the slot no longer holds the event
// that was dispatched (i.e. because the handler replaced it).
func WithStaleConsumptionGuard[T any](enabled bool) options.Option[EventEffect[T]] {
	return func(e *EventEffect[T]) {
		e.optsStaleConsumptionGuard = enabled
	}
}

// WithLogger sets the logger of the EventEffect.
func WithLogger[T any](logger log.Logger) options.Option[EventEffect[T]] {
	return func(e *EventEffect[T]) {
		e.logger = logger
	}
}

// WithName sets the name of the EventEffect that is used for its scopes and log messages.
func WithName[T any](name string) options.Option[EventEffect[T]] {
	return func(e *EventEffect[T]) {
		e.optsName = name
	}
}

// WithParameters applies the configurable Parameters.
func WithParameters[T any](parameters *Parameters) options.Option[EventEffect[T]] {
	return func(e *EventEffect[T]) {
		e.optsConsumeImmediately = parameters.ConsumeImmediately
		e.optsStaleConsumptionGuard = parameters.StaleConsumptionGuard
	}
}
