// Package testutil contains a test suite that every kvstore.KVStore backend has to pass.
package testutil

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iotaledger/oneshot/kvstore"
)

// TestStore runs the common test suite against the stores that are created by the given function.
func TestStore(t *testing.T, newStore func(t *testing.T) kvstore.KVStore) {
	t.Run("GetSetHasDelete", func(t *testing.T) {
		store := newStore(t)

		_, err := store.Get([]byte("key"))
		require.ErrorIs(t, err, kvstore.ErrKeyNotFound)

		require.NoError(t, store.Set([]byte("key"), []byte("value")))

		value, err := store.Get([]byte("key"))
		require.NoError(t, err)
		require.Equal(t, []byte("value"), value)

		has, err := store.Has([]byte("key"))
		require.NoError(t, err)
		require.True(t, has)

		require.NoError(t, store.Delete([]byte("key")))

		has, err = store.Has([]byte("key"))
		require.NoError(t, err)
		require.False(t, has)
	})

	t.Run("Realms", func(t *testing.T) {
		store := newStore(t)

		first, err := store.WithRealm([]byte("first/"))
		require.NoError(t, err)
		second, err := store.WithRealm([]byte("second/"))
		require.NoError(t, err)
		nested, err := first.WithExtendedRealm([]byte("nested/"))
		require.NoError(t, err)

		require.Equal(t, kvstore.Realm("first/nested/"), nested.Realm())

		require.NoError(t, first.Set([]byte("key"), []byte("first")))
		require.NoError(t, second.Set([]byte("key"), []byte("second")))
		require.NoError(t, nested.Set([]byte("key"), []byte("nested")))

		value, err := first.Get([]byte("key"))
		require.NoError(t, err)
		require.Equal(t, []byte("first"), value)

		value, err = nested.Get([]byte("key"))
		require.NoError(t, err)
		require.Equal(t, []byte("nested"), value)

		require.NoError(t, second.Clear())
		assert.Equal(t, 0, CountKeys(t, second))
		assert.Equal(t, 2, CountKeys(t, first))
	})

	t.Run("IterateInOrder", func(t *testing.T) {
		store := newStore(t)

		for _, i := range []int{3, 1, 4, 0, 2} {
			require.NoError(t, store.Set([]byte(fmt.Sprintf("item/%d", i)), []byte(fmt.Sprint(i))))
		}
		require.NoError(t, store.Set([]byte("other"), []byte("x")))

		var values []string
		require.NoError(t, store.Iterate([]byte("item/"), func(key kvstore.Key, value kvstore.Value) bool {
			require.Equal(t, "item/"+string(value), string(key))
			values = append(values, string(value))

			return true
		}))
		require.Equal(t, []string{"0", "1", "2", "3", "4"}, values)

		var keys []string
		require.NoError(t, store.IterateKeys(kvstore.EmptyPrefix, func(key kvstore.Key) bool {
			keys = append(keys, string(key))

			return len(keys) < 2
		}))
		require.Equal(t, []string{"item/0", "item/1"}, keys)

		require.NoError(t, store.DeletePrefix([]byte("item/")))
		assert.Equal(t, 1, CountKeys(t, store))
	})

	t.Run("Close", func(t *testing.T) {
		store := newStore(t)

		require.NoError(t, store.Flush())
		require.NoError(t, store.Close())

		require.ErrorIs(t, store.Set([]byte("key"), []byte("value")), kvstore.ErrStoreClosed)

		_, err := store.Get([]byte("key"))
		require.ErrorIs(t, err, kvstore.ErrStoreClosed)

		_, err = store.WithRealm([]byte("realm"))
		require.ErrorIs(t, err, kvstore.ErrStoreClosed)
	})
}

// CountKeys returns the number of keys in the realm of the given store.
func CountKeys(t *testing.T, store kvstore.KVStore) int {
	count := 0
	err := store.IterateKeys(kvstore.EmptyPrefix, func(kvstore.Key) bool {
		count++

		return true
	})
	require.NoError(t, err)

	return count
}
