package event

import (
	"go.uber.org/atomic"

	"github.com/iotaledger/oneshot/runtime/options"
	"github.com/iotaledger/oneshot/runtime/syncutils"
)

// base is the generic base type for all events.
type base[TriggerFunc any] struct {
	// hooks holds the currently registered hooks in the order they were added.
	hooks []*Hook[TriggerFunc]

	// hooksMutex is used to synchronize access to the hooks.
	hooksMutex syncutils.RWMutex

	// hooksCounter is used to assign a unique ID to each hook.
	hooksCounter atomic.Uint64

	// triggerSettings is the settings that are used to trigger the event.
	*triggerSettings
}

// newBase creates a new base instance.
func newBase[TriggerFunc any](opts ...Option) *base[TriggerFunc] {
	return &base[TriggerFunc]{
		triggerSettings: options.Apply(new(triggerSettings), opts),
	}
}

// Hook adds a new hook to the event and returns it.
func (b *base[TriggerFunc]) Hook(triggerFunc TriggerFunc, opts ...Option) *Hook[TriggerFunc] {
	hookID := b.hooksCounter.Inc()
	hook := newHook(triggerFunc, func() { b.unhook(hookID) }, opts...)
	hook.id = hookID

	b.hooksMutex.Lock()
	defer b.hooksMutex.Unlock()

	b.hooks = append(b.hooks, hook)

	return hook
}

// HookCount returns the number of hooks that are currently registered.
func (b *base[TriggerFunc]) HookCount() int {
	b.hooksMutex.RLock()
	defer b.hooksMutex.RUnlock()

	return len(b.hooks)
}

// currentHooks returns a snapshot of the registered hooks.
func (b *base[TriggerFunc]) currentHooks() []*Hook[TriggerFunc] {
	b.hooksMutex.RLock()
	defer b.hooksMutex.RUnlock()

	return append(make([]*Hook[TriggerFunc], 0, len(b.hooks)), b.hooks...)
}

// unhook removes the hook with the given id.
func (b *base[TriggerFunc]) unhook(hookID uint64) {
	b.hooksMutex.Lock()
	defer b.hooksMutex.Unlock()

	for i, hook := range b.hooks {
		if hook.id == hookID {
			b.hooks = append(b.hooks[:i], b.hooks[i+1:]...)

			return
		}
	}
}
