package event

// Event is an event without parameters.
type Event struct {
	*base[func()]
}

// New creates a new event without parameters.
func New(opts ...Option) *Event {
	return &Event{
		base: newBase[func()](opts...),
	}
}

// Trigger invokes the hooked callbacks.
func (e *Event) Trigger() {
	if e.currentTriggerExceedsMaxTriggerCount() {
		return
	}

	for _, hook := range e.currentHooks() {
		if hook.currentTriggerExceedsMaxTriggerCount() {
			hook.Unhook()

			continue
		}

		hook.trigger()
	}
}

// Event1 is an event with one generic parameter.
type Event1[T1 any] struct {
	*base[func(T1)]
}

// New1 creates a new event with one generic parameter.
func New1[T1 any](opts ...Option) *Event1[T1] {
	return &Event1[T1]{
		base: newBase[func(T1)](opts...),
	}
}

// Trigger invokes the hooked callbacks with the given parameter.
func (e *Event1[T1]) Trigger(arg1 T1) {
	if e.currentTriggerExceedsMaxTriggerCount() {
		return
	}

	for _, hook := range e.currentHooks() {
		if hook.currentTriggerExceedsMaxTriggerCount() {
			hook.Unhook()

			continue
		}

		hook.trigger(arg1)
	}
}

// Event2 is an event with two generic parameters.
type Event2[T1, T2 any] struct {
	*base[func(T1, T2)]
}

// New2 creates a new event with two generic parameters.
func New2[T1, T2 any](opts ...Option) *Event2[T1, T2] {
	return &Event2[T1, T2]{
		base: newBase[func(T1, T2)](opts...),
	}
}

// Trigger invokes the hooked callbacks with the given parameters.
func (e *Event2[T1, T2]) Trigger(arg1 T1, arg2 T2) {
	if e.currentTriggerExceedsMaxTriggerCount() {
		return
	}

	for _, hook := range e.currentHooks() {
		if hook.currentTriggerExceedsMaxTriggerCount() {
			hook.Unhook()

			continue
		}

		hook.trigger(arg1, arg2)
	}
}
