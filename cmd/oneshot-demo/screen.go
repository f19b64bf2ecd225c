package main

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/atomic"

	"github.com/iotaledger/oneshot/effect"
	"github.com/iotaledger/oneshot/event"
	"github.com/iotaledger/oneshot/log"
	"github.com/iotaledger/oneshot/savedstate"
)

const toastKey = "screen/toast"

// screen owns a toast slot that is filled by a producer and drained by an EventEffect.
type screen struct {
	dependencies

	logger     log.Logger
	toasts     effect.Slot[string]
	producerID string
}

func newScreen(deps dependencies) *screen {
	return &screen{
		dependencies: deps,
		logger:       deps.Logger.NewChildLogger("Screen"),
		toasts:       effect.NewSlot[string](),
		producerID:   "producer-" + uuid.NewString(),
	}
}

// Run shows all toasts and returns once the producer is done and no toast is pending anymore, or the scope ended.
func (s *screen) Run() error {
	unbind, err := savedstate.BindSlot[string](s.Registry, toastKey, s.toasts)
	if err != nil {
		return err
	}
	defer unbind()

	if pending := s.toasts.Get(); pending.IsTriggered() {
		s.logger.LogInfo("restored pending toast", "event", pending)
	}

	var (
		shownCount   atomic.Int64
		producerDone atomic.Bool
		finishedOnce sync.Once
		finished     = make(chan struct{})
	)

	finishIfSettled := func(current *event.Event[string]) {
		if producerDone.Load() && event.IsQuiescent(current) {
			finishedOnce.Do(func() { close(finished) })
		}
	}
	defer s.toasts.OnUpdate(func(_, current *event.Event[string]) { finishIfSettled(current) })()

	toastEffect := effect.New[string](s.Scope, s.toasts, effect.ConsumeInto[string](s.toasts), s.showToast,
		effect.WithParameters[string](s.Effect),
		effect.WithWhileQuiescent[string](s.idle),
		effect.WithName[string]("ToastEffect"),
		effect.WithLogger[string](s.logger),
	)
	defer toastEffect.Dispose()

	toastEffect.Events.Consumed.Hook(func(*event.Event[string]) { shownCount.Inc() })
	toastEffect.Evaluate()

	if err := s.Scope.Go(func(ctx context.Context) error {
		if err := s.produce(ctx); err != nil {
			return err
		}

		producerDone.Store(true)
		finishIfSettled(s.toasts.Get())

		return nil
	}); err != nil {
		return err
	}

	select {
	case <-finished:
		s.logger.LogInfo("all toasts were shown", "count", shownCount.Load())
	case <-s.Scope.Done():
	}

	return s.Scope.Err()
}

// produce emits the configured number of toasts.
func (s *screen) produce(ctx context.Context) error {
	for i := 1; i <= s.Demo.Toasts; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.Demo.Interval):
		}

		s.toasts.Set(event.NewTriggered(fmt.Sprintf("toast %d", i), event.WithEmitter(s.producerID), event.WithReceiver("screen")))
	}

	return nil
}

// showToast displays the toast for the configured duration.
func (s *screen) showToast(ctx context.Context, message string) error {
	s.logger.LogInfo("showing toast", "message", message)

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(s.Demo.DisplayDuration):
		return nil
	}
}

// idle runs while no toast is pending.
func (s *screen) idle(ctx context.Context) error {
	s.logger.LogDebug("screen is idle")

	<-ctx.Done()

	return nil
}
