package savedstate

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iotaledger/oneshot/ds/reactive"
	"github.com/iotaledger/oneshot/event"
	"github.com/iotaledger/oneshot/kvstore"
	"github.com/iotaledger/oneshot/kvstore/mapdb"
	"github.com/iotaledger/oneshot/uievent"
)

func newRegistry(t *testing.T, store kvstore.KVStore) *Registry {
	registry, err := NewRegistry(store)
	require.NoError(t, err)

	return registry
}

func TestRegistry_SaveRestore(t *testing.T) {
	store := mapdb.New()
	registry := newRegistry(t, store)

	restored, err := RestoreEvent[string](registry, "missing")
	require.NoError(t, err)
	require.Nil(t, restored)

	saved := uievent.NewTriggered("toast", event.WithEmitter("viewmodel"), event.WithReceiver(uievent.Transient{Value: "screen"}))
	require.NoError(t, SaveEvent(registry, "screen/toast", saved))
	require.NoError(t, SaveEvent(registry, "screen/navigation", uievent.NewConsumed[string]()))

	restored, err = RestoreEvent[string](registry, "screen/toast")
	require.NoError(t, err)
	require.True(t, restored.Equal(uievent.NewTriggered("toast", event.WithEmitter("viewmodel"))))

	keys, err := registry.Keys()
	require.NoError(t, err)
	require.Equal(t, []string{"screen/navigation", "screen/toast"}, keys)

	// entries are stored in their own realm
	has, err := store.Has([]byte("screen/toast"))
	require.NoError(t, err)
	require.False(t, has)

	require.NoError(t, SaveEvent[string](registry, "screen/toast", nil))
	has, err = registry.Has("screen/toast")
	require.NoError(t, err)
	require.False(t, has)

	require.NoError(t, registry.Clear())
	keys, err = registry.Keys()
	require.NoError(t, err)
	require.Empty(t, keys)
}

func TestRegistry_NotPersistable(t *testing.T) {
	registry := newRegistry(t, mapdb.New())

	err := SaveEvent(registry, "key", uievent.NewTriggered(1, event.WithEmitter(struct{ ID int }{ID: 1})))
	require.ErrorIs(t, err, uievent.ErrTagNotPersistable)

	has, err := registry.Has("key")
	require.NoError(t, err)
	require.False(t, has)
}

func TestRegistry_CorruptedEntry(t *testing.T) {
	store := mapdb.New()
	registry := newRegistry(t, store)

	realm, err := store.WithRealm(DefaultRealm)
	require.NoError(t, err)
	require.NoError(t, realm.Set([]byte("key"), []byte("{")))

	_, err = RestoreEvent[int](registry, "key")
	require.Error(t, err)
}

func TestBindSlot(t *testing.T) {
	store := mapdb.New()

	// the first owner saves a pending event
	slot := reactive.NewVariable[*event.Event[int]]()
	unsubscribe, err := BindSlot[int](newRegistry(t, store), "counter", slot)
	require.NoError(t, err)

	slot.Set(event.NewTriggered(42, event.WithEmitter("producer")))
	unsubscribe()

	// updates after unsubscribing are not persisted
	slot.Set(nil)

	// the recreated owner restores it
	restoredSlot := reactive.NewVariable[*event.Event[int]]()
	registry := newRegistry(t, store)
	unsubscribe, err = BindSlot[int](registry, "counter", restoredSlot)
	require.NoError(t, err)
	t.Cleanup(unsubscribe)

	require.True(t, restoredSlot.Get().Equal(event.NewTriggered(42, event.WithEmitter("producer"))))

	restoredSlot.Set(restoredSlot.Get().Consumed())
	restored, err := RestoreEvent[int](registry, "counter")
	require.NoError(t, err)
	require.True(t, restored.IsConsumed())
	require.Equal(t, "producer", restored.Emitter())

	restoredSlot.Set(nil)
	has, err := registry.Has("counter")
	require.NoError(t, err)
	require.False(t, has)
}

func TestBindSlot_PersistFailed(t *testing.T) {
	registry := newRegistry(t, mapdb.New())

	var failedKeys []string
	registry.Events.PersistFailed.Hook(func(key string, err error) {
		require.ErrorIs(t, err, uievent.ErrTagNotPersistable)
		failedKeys = append(failedKeys, key)
	})

	slot := reactive.NewVariable[*event.Event[int]]()
	unsubscribe, err := BindSlot[int](registry, "key", slot)
	require.NoError(t, err)
	t.Cleanup(unsubscribe)

	slot.Set(event.NewTriggered(1, event.WithReceiver([]string{"not", "persistable"})))
	require.Equal(t, []string{"key"}, failedKeys)
}
