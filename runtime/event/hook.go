package event

import (
	"sync"

	"github.com/iotaledger/oneshot/runtime/options"
)

// Hook is a container that holds a trigger function and its trigger settings.
type Hook[TriggerFunc any] struct {
	id         uint64
	trigger    TriggerFunc
	unhook     func()
	unhookOnce sync.Once

	*triggerSettings
}

// newHook creates a new Hook.
func newHook[TriggerFunc any](trigger TriggerFunc, unhook func(), opts ...Option) *Hook[TriggerFunc] {
	return &Hook[TriggerFunc]{
		trigger:         trigger,
		unhook:          unhook,
		triggerSettings: options.Apply(new(triggerSettings), opts),
	}
}

// Unhook removes the callback from the event.
func (h *Hook[TriggerFunc]) Unhook() {
	h.unhookOnce.Do(h.unhook)
}
