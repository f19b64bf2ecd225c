// Package savedstate persists the one-time events of slots so they survive the recreation of their owner.
//
// A Registry stores the UiEvent form of events under string keys in a realm of a kvstore.KVStore. BindSlot restores a
// slot from its saved state and keeps the saved state in sync with every later update of the slot.
package savedstate

import (
	"github.com/iotaledger/oneshot/byteutils"
	"github.com/iotaledger/oneshot/ds/reactive"
	"github.com/iotaledger/oneshot/event"
	"github.com/iotaledger/oneshot/ierrors"
	"github.com/iotaledger/oneshot/kvstore"
	"github.com/iotaledger/oneshot/log"
	hooks "github.com/iotaledger/oneshot/runtime/event"
	"github.com/iotaledger/oneshot/runtime/options"
	"github.com/iotaledger/oneshot/uievent"
)

// DefaultRealm is the realm of the store that holds the saved events.
var DefaultRealm = kvstore.Realm("savedstate/")

// Registry stores the saved state of event slots.
type Registry struct {
	// Events contains the events of the Registry.
	Events *Events

	store  kvstore.KVStore
	logger log.Logger

	optsRealm kvstore.Realm
}

// Events contains the events of a Registry.
type Events struct {
	// PersistFailed is triggered with the key and the error when a bound slot could not be persisted.
	PersistFailed *hooks.Event2[string, error]
}

// NewRegistry creates a new Registry that stores its entries in a realm of the given store.
func NewRegistry(store kvstore.KVStore, opts ...options.Option[Registry]) (*Registry, error) {
	r := options.Apply(&Registry{
		Events: &Events{
			PersistFailed: hooks.New2[string, error](),
		},
		logger:    log.EmptyLogger,
		optsRealm: DefaultRealm,
	}, opts)

	realmStore, err := store.WithRealm(r.optsRealm)
	if err != nil {
		return nil, ierrors.Wrap(err, "failed to create saved state realm")
	}
	r.store = realmStore

	return r, nil
}

// WithRealm sets the realm of the store that holds the saved events.
func WithRealm(realm kvstore.Realm) options.Option[Registry] {
	return func(r *Registry) {
		r.optsRealm = byteutils.ConcatBytes(realm)
	}
}

// WithLogger sets the logger of the Registry.
func WithLogger(logger log.Logger) options.Option[Registry] {
	return func(r *Registry) {
		r.logger = logger
	}
}

// Delete removes the saved state of the given key.
func (r *Registry) Delete(key string) error {
	if err := r.store.Delete([]byte(key)); err != nil {
		return ierrors.Wrapf(err, "failed to delete saved state of %s", key)
	}

	return nil
}

// Has returns true if there is a saved state for the given key.
func (r *Registry) Has(key string) (bool, error) {
	has, err := r.store.Has([]byte(key))
	if err != nil {
		return false, ierrors.Wrapf(err, "failed to check saved state of %s", key)
	}

	return has, nil
}

// Keys returns the keys that have a saved state in ascending order.
func (r *Registry) Keys() (keys []string, err error) {
	if err = r.store.IterateKeys(kvstore.EmptyPrefix, func(key kvstore.Key) bool {
		keys = append(keys, string(key))

		return true
	}); err != nil {
		return nil, ierrors.Wrap(err, "failed to iterate saved state")
	}

	return keys, nil
}

// Clear removes the saved state of all keys.
func (r *Registry) Clear() error {
	return r.store.Clear()
}

// SaveEvent stores the given event under the given key. Saving nil removes the saved state.
func SaveEvent[T any](r *Registry, key string, uiEvent *uievent.UiEvent[T]) error {
	if uiEvent == nil {
		return r.Delete(key)
	}

	bytes, err := uiEvent.Bytes()
	if err != nil {
		return ierrors.Wrapf(err, "failed to encode saved state of %s", key)
	}

	if err := r.store.Set([]byte(key), bytes); err != nil {
		return ierrors.Wrapf(err, "failed to store saved state of %s", key)
	}

	return nil
}

// RestoreEvent loads the event that is stored under the given key. It returns nil if there is no saved state.
func RestoreEvent[T any](r *Registry, key string) (*uievent.UiEvent[T], error) {
	bytes, err := r.store.Get([]byte(key))
	if err != nil {
		if ierrors.Is(err, kvstore.ErrKeyNotFound) {
			return nil, nil
		}

		return nil, ierrors.Wrapf(err, "failed to load saved state of %s", key)
	}

	uiEvent, err := uievent.FromBytes[T](bytes)
	if err != nil {
		return nil, ierrors.Wrapf(err, "failed to decode saved state of %s", key)
	}

	return uiEvent, nil
}

// BindSlot restores the slot from the saved state of the given key (if there is one) and persists every later update
// of the slot. An empty slot removes the saved state. The returned function stops the persistence.
func BindSlot[T any](r *Registry, key string, slot reactive.Variable[*event.Event[T]]) (unsubscribe func(), err error) {
	restored, err := RestoreEvent[T](r, key)
	if err != nil {
		return nil, err
	}

	if restored != nil {
		r.logger.LogDebug("restored saved state", "key", key, "event", restored)
		slot.Set(restored.ToEvent())
	}

	return slot.OnUpdate(func(_, newValue *event.Event[T]) {
		if err := SaveEvent(r, key, uievent.FromEvent(newValue)); err != nil {
			r.logger.LogError("failed to persist slot", "key", key, "err", err)
			r.Events.PersistFailed.Trigger(key, err)
		}
	}), nil
}
