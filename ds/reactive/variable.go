// Package reactive contains observable variables.
//
// A Variable numbers its changes and delivers them to its subscribers in the order in which they were written. A
// subscriber that is registered while a write is in flight only sees the changes that happened after it subscribed,
// so no change is delivered twice and none is skipped.
package reactive

import (
	"go.uber.org/atomic"

	"github.com/iotaledger/oneshot/runtime/syncutils"
)

// Variable is a value that can be read and written and that informs its subscribers about changes.
type Variable[Type comparable] interface {
	// Init sets the value and returns the Variable, so it can be chained with the constructor.
	Init(value Type) Variable[Type]

	ReadableVariable[Type]
	WritableVariable[Type]
}

// ReadableVariable is the read side of a Variable.
type ReadableVariable[Type comparable] interface {
	// Get returns the current value.
	Get() Type

	// OnUpdate subscribes the callback to the changes of the value. The callback is invoked with the current value
	// right away unless it is the zero value and triggerWithInitialZeroValue is not set. Callbacks must not write the
	// Variable they are subscribed to.
	OnUpdate(callback func(oldValue, newValue Type), triggerWithInitialZeroValue ...bool) (unsubscribe func())
}

// WritableVariable is the write side of a Variable.
type WritableVariable[Type comparable] interface {
	// Set replaces the value and notifies the subscribers if it changed.
	Set(newValue Type) (oldValue Type)

	// Compute replaces the value with the result of the given function and notifies the subscribers if it changed.
	Compute(computeFunc func(currentValue Type) Type) (oldValue Type)
}

// NewVariable creates a new Variable that holds the zero value.
func NewVariable[Type comparable]() Variable[Type] {
	return &variable[Type]{}
}

type variable[Type comparable] struct {
	value Type

	// version is the number of changes that were applied to the value.
	version uint64

	// subscribers are kept in the order of their subscription.
	subscribers []*subscriber[Type]

	// writeMutex serializes the writers, so every change is delivered before the next one is applied.
	writeMutex syncutils.Mutex

	valueMutex syncutils.RWMutex
}

func (v *variable[Type]) Init(value Type) Variable[Type] {
	v.Set(value)

	return v
}

func (v *variable[Type]) Get() Type {
	v.valueMutex.RLock()
	defer v.valueMutex.RUnlock()

	return v.value
}

func (v *variable[Type]) Set(newValue Type) (oldValue Type) {
	return v.Compute(func(Type) Type { return newValue })
}

func (v *variable[Type]) Compute(computeFunc func(currentValue Type) Type) (oldValue Type) {
	v.writeMutex.Lock()
	defer v.writeMutex.Unlock()

	oldValue, newValue, version, subscribers := v.apply(computeFunc)
	for _, s := range subscribers {
		s.deliver(version, oldValue, newValue)
	}

	return oldValue
}

func (v *variable[Type]) OnUpdate(callback func(oldValue, newValue Type), triggerWithInitialZeroValue ...bool) (unsubscribe func()) {
	s := &subscriber[Type]{callback: callback}
	s.active.Store(true)

	// writers that apply a change after the subscription wait for the initial delivery
	s.mutex.Lock()
	defer s.mutex.Unlock()

	v.valueMutex.Lock()
	s.delivered = v.version
	v.subscribers = append(v.subscribers, s)
	currentValue := v.value
	v.valueMutex.Unlock()

	var zeroValue Type
	if currentValue != zeroValue || len(triggerWithInitialZeroValue) != 0 && triggerWithInitialZeroValue[0] {
		callback(zeroValue, currentValue)
	}

	return func() { v.unsubscribe(s) }
}

// apply computes the new value and returns the subscribers that have to be notified (none if the value did not change).
func (v *variable[Type]) apply(computeFunc func(currentValue Type) Type) (oldValue, newValue Type, version uint64, subscribers []*subscriber[Type]) {
	v.valueMutex.Lock()
	defer v.valueMutex.Unlock()

	if oldValue, newValue = v.value, computeFunc(v.value); oldValue == newValue {
		return oldValue, newValue, v.version, nil
	}

	v.value = newValue
	v.version++

	return oldValue, newValue, v.version, append([]*subscriber[Type](nil), v.subscribers...)
}

func (v *variable[Type]) unsubscribe(s *subscriber[Type]) {
	if !s.active.CAS(true, false) {
		return
	}

	v.valueMutex.Lock()
	defer v.valueMutex.Unlock()

	for i, registered := range v.subscribers {
		if registered == s {
			v.subscribers = append(v.subscribers[:i:i], v.subscribers[i+1:]...)

			return
		}
	}
}

// subscriber is a callback that is registered with a Variable.
type subscriber[Type comparable] struct {
	callback func(oldValue, newValue Type)

	// delivered is the version of the last change that was passed to the callback.
	delivered uint64

	active atomic.Bool
	mutex  syncutils.Mutex
}

// deliver passes the change with the given version to the callback unless it was unsubscribed or already knows it.
func (s *subscriber[Type]) deliver(version uint64, oldValue, newValue Type) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if !s.active.Load() || version <= s.delivered {
		return
	}

	s.delivered = version
	s.callback(oldValue, newValue)
}
