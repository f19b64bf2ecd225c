// Package effect contains the EventEffect that handles the one-time events of a slot.
//
// An EventEffect observes a reactive slot that holds an *event.Event. Every time the slot changes to a new Triggered
// event, the handler is invoked exactly once with its data and the consumption callback receives the Consumed form of
// the event, so the owner of the slot can replace it and the event is not handled again.
package effect

import (
	"context"
	"reflect"

	"github.com/iotaledger/oneshot/ds/reactive"
	"github.com/iotaledger/oneshot/event"
	"github.com/iotaledger/oneshot/ierrors"
	"github.com/iotaledger/oneshot/log"
	"github.com/iotaledger/oneshot/runtime/options"
	"github.com/iotaledger/oneshot/runtime/scope"
	"github.com/iotaledger/oneshot/runtime/syncutils"
)

// defaultKey is the key that is used when Evaluate is called without keys.
var defaultKey = struct{}{}

// EventEffect handles the Triggered events of a slot exactly once.
type EventEffect[T any] struct {
	// Events contains the events of the EventEffect.
	Events *Events[T]

	slot       reactive.ReadableVariable[*event.Event[T]]
	onConsumed func(consumed *event.Event[T])
	handler    func(ctx context.Context, data T) error
	owner      *scope.Scope
	logger     log.Logger

	// observation is the scope of the currently running observation (nil before the first evaluation).
	observation *scope.Scope

	// keys are the keys of the currently running observation.
	keys []any

	// disposed is set once the EventEffect was disposed.
	disposed bool

	// teardownQuiescence stops the observation of the quiescent state.
	teardownQuiescence func()

	// whileQuiescentRun is the scope of the currently running while-quiescent effect.
	whileQuiescentRun *scope.Scope

	// whileQuiescentStopped is set once no further while-quiescent effect may be launched.
	whileQuiescentStopped bool

	mutex          syncutils.Mutex
	quiescentMutex syncutils.Mutex

	// consumptionMutex orders the cancellation of an observation against the consumption of its events.
	consumptionMutex syncutils.Mutex

	optsConsumeImmediately    bool
	optsWhileQuiescent        func(ctx context.Context) error
	optsStaleConsumptionGuard bool
	optsName                  string
}

// New creates a new EventEffect that handles the events of the given slot. The owner scope defines the lifetime of
// the EventEffect: the observation runs in a child of it and consume-immediately handlers are launched in it directly.
//
// The EventEffect starts observing the slot with the first call to Evaluate. The onConsumed callback must not call
// Evaluate or Dispose of the same EventEffect.
func New[T any](owner *scope.Scope, slot reactive.ReadableVariable[*event.Event[T]], onConsumed func(consumed *event.Event[T]), handler func(ctx context.Context, data T) error, opts ...options.Option[EventEffect[T]]) *EventEffect[T] {
	return options.Apply(&EventEffect[T]{
		Events:     newEvents[T](),
		slot:       slot,
		onConsumed: onConsumed,
		handler:    handler,
		owner:      owner,
		logger:     log.EmptyLogger,
		optsName:   "EventEffect",
	}, opts, func(e *EventEffect[T]) {
		e.logger = e.logger.NewChildLogger(e.optsName, true)
	})
}

// Evaluate is called by the host on every evaluation of the component that owns the EventEffect. The first call starts
// the observation of the slot, later calls restart it if the given keys differ from the keys of the previous call.
// Restarting cancels the running observation including an unfinished consume-after handler.
func (e *EventEffect[T]) Evaluate(keys ...any) {
	if len(keys) == 0 {
		keys = []any{defaultKey}
	}

	e.mutex.Lock()
	defer e.mutex.Unlock()

	if e.disposed || e.observation != nil && reflect.DeepEqual(e.keys, keys) {
		return
	}

	if e.observation != nil {
		e.cancelObservation()

		e.logger.LogDebug("relaunching observation", "keys", keys)
		e.Events.Relaunched.Trigger(keys)
	}

	e.keys = append([]any(nil), keys...)
	e.observation = e.owner.NewChild(e.optsName + ".observation")

	if err := e.observation.GoDedicated(e.observe); err != nil {
		e.logger.LogWarn("failed to launch observation", "err", err)
	}

	if e.optsWhileQuiescent != nil && e.teardownQuiescence == nil {
		e.teardownQuiescence = e.observeQuiescence()
	}
}

// Dispose stops the observation of the slot and the while-quiescent effect. Handlers that were launched on the owner
// scope by the consume-immediately policy keep running.
func (e *EventEffect[T]) Dispose() {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	if e.disposed {
		return
	}

	e.disposed = true

	if e.observation != nil {
		e.cancelObservation()
	}

	if e.teardownQuiescence != nil {
		e.teardownQuiescence()
	}
}

// cancelObservation cancels the running observation. An event whose consumption was already committed is still
// consumed, every later one is not.
func (e *EventEffect[T]) cancelObservation() {
	e.consumptionMutex.Lock()
	defer e.consumptionMutex.Unlock()

	e.observation.Cancel()
}

// observe is the observation loop that dispatches the slot's events. Every transition of the slot into a Triggered
// event is dispatched once, unless the slot moved on before the loop picked it up.
func (e *EventEffect[T]) observe(ctx context.Context) error {
	pending := make(chan *event.Event[T], 1)

	defer e.slot.OnUpdate(func(_, current *event.Event[T]) {
		// only the latest value is relevant, so an event that was not picked up yet is replaced
		select {
		case <-pending:
		default:
		}

		if current.IsTriggered() {
			pending <- current
		}
	}, true)()

	for {
		select {
		case <-ctx.Done():
			return nil
		case triggered := <-pending:
			if ctx.Err() != nil {
				return nil
			}

			if err := e.dispatch(ctx, triggered); err != nil {
				return err
			}
		}
	}
}

// dispatch hands the given Triggered event to the handler according to the configured consumption policy.
func (e *EventEffect[T]) dispatch(ctx context.Context, triggered *event.Event[T]) error {
	e.logger.LogDebug("dispatching event", "event", triggered)
	e.Events.Dispatched.Trigger(triggered)

	if e.optsConsumeImmediately {
		if !e.consumeUnlessCancelled(ctx, triggered) {
			return nil
		}

		if err := e.owner.Go(func(ctx context.Context) error { return e.handle(ctx, triggered) }); err != nil {
			e.logger.LogWarn("failed to launch handler", "event", triggered, "err", err)
		}

		return nil
	}

	if err := e.handle(ctx, triggered); err != nil {
		return err
	}

	e.consumeUnlessCancelled(ctx, triggered)

	return nil
}

// consumeUnlessCancelled consumes the given event if the observation was not cancelled and returns true if it did.
func (e *EventEffect[T]) consumeUnlessCancelled(ctx context.Context, triggered *event.Event[T]) bool {
	e.consumptionMutex.Lock()

	if ctx.Err() != nil {
		e.consumptionMutex.Unlock()

		e.logger.LogDebug("observation was cancelled", "event", triggered)
		e.Events.Cancelled.Trigger(triggered)

		return false
	}

	defer e.consumptionMutex.Unlock()

	e.consume(triggered)

	return true
}

// handle invokes the handler with the data of the given event.
func (e *EventEffect[T]) handle(ctx context.Context, triggered *event.Event[T]) error {
	if err := e.handler(ctx, triggered.Data()); err != nil {
		if ctx.Err() != nil && ierrors.Is(err, ctx.Err()) {
			return nil
		}

		return ierrors.Wrapf(err, "failed to handle %s", triggered)
	}

	return nil
}

// consume passes the Consumed form of the given event to the consumption callback.
func (e *EventEffect[T]) consume(triggered *event.Event[T]) {
	if e.optsStaleConsumptionGuard && e.slot.Get() != triggered {
		e.logger.LogDebug("skipping consumption of replaced event", "event", triggered)
		e.Events.ConsumptionSkipped.Trigger(triggered)

		return
	}

	consumed := triggered.Consumed()
	e.onConsumed(consumed)

	e.logger.LogDebug("consumed event", "event", consumed)
	e.Events.Consumed.Trigger(consumed)
}

// observeQuiescence launches the while-quiescent effect whenever the slot becomes quiescent.
func (e *EventEffect[T]) observeQuiescence() (teardown func()) {
	// the callbacks of a subscription never run concurrently
	var initialized bool

	unsubscribe := e.slot.OnUpdate(func(previous, current *event.Event[T]) {
		becameQuiescent := event.IsQuiescent(current) && (!initialized || !event.IsQuiescent(previous))
		initialized = true

		if becameQuiescent {
			e.launchWhileQuiescent()
		}
	}, true)

	return func() {
		unsubscribe()
		e.stopWhileQuiescent()
	}
}

// launchWhileQuiescent cancels the running while-quiescent effect and launches a new one.
func (e *EventEffect[T]) launchWhileQuiescent() {
	e.quiescentMutex.Lock()
	defer e.quiescentMutex.Unlock()

	if e.whileQuiescentStopped {
		return
	}

	if e.whileQuiescentRun != nil {
		e.whileQuiescentRun.Cancel()
	}

	e.whileQuiescentRun = e.owner.NewChild(e.optsName + ".whileQuiescent")
	if err := e.whileQuiescentRun.GoDedicated(e.optsWhileQuiescent); err != nil {
		e.logger.LogWarn("failed to launch while-quiescent effect", "err", err)

		return
	}

	e.logger.LogDebug("launched while-quiescent effect")
	e.Events.QuiescentLaunched.Trigger()
}

// stopWhileQuiescent cancels the running while-quiescent effect and prevents new launches.
func (e *EventEffect[T]) stopWhileQuiescent() {
	e.quiescentMutex.Lock()
	defer e.quiescentMutex.Unlock()

	e.whileQuiescentStopped = true

	if e.whileQuiescentRun != nil {
		e.whileQuiescentRun.Cancel()
		e.whileQuiescentRun = nil
	}
}
