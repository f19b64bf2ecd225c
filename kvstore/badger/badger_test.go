package badger

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iotaledger/oneshot/kvstore"
	"github.com/iotaledger/oneshot/kvstore/testutil"
)

func TestBadgerStore(t *testing.T) {
	testutil.TestStore(t, newBadgerStore)
}

func TestBadgerStore_Clear(t *testing.T) {
	const itemCount = 5

	store := newBadgerStore(t)
	require.EqualValues(t, 0, testutil.CountKeys(t, store))

	for i := 0; i < itemCount; i++ {
		err := store.Set([]byte(fmt.Sprint(i)), []byte("a"))
		require.NoError(t, err)
	}
	assert.EqualValues(t, itemCount, testutil.CountKeys(t, store))

	// check that Clear removes all the keys
	err := store.Clear()
	assert.NoError(t, err)
	assert.EqualValues(t, 0, testutil.CountKeys(t, store))
}

func TestBadgerStore_DeletePrefixManyEntries(t *testing.T) {
	store := newBadgerStore(t)

	realm, err := store.WithRealm([]byte("large/"))
	require.NoError(t, err)

	for i := 0; i < 20000; i++ {
		require.NoError(t, realm.Set([]byte(fmt.Sprintf("%05d", i)), []byte("value")))
	}
	require.NoError(t, store.Set([]byte("kept"), []byte("value")))

	require.NoError(t, realm.Clear())
	require.Equal(t, 0, testutil.CountKeys(t, realm))
	require.Equal(t, 1, testutil.CountKeys(t, store))
}

func TestBadgerStore_Reopen(t *testing.T) {
	directory := t.TempDir()

	db, err := CreateDB(directory)
	require.NoError(t, err)

	store, err := New(db).WithRealm([]byte("saved/"))
	require.NoError(t, err)
	require.NoError(t, store.Set([]byte("key"), []byte("value")))
	require.NoError(t, store.Flush())
	require.NoError(t, store.Close())

	db, err = CreateDB(directory)
	require.NoError(t, err)

	reopened, err := New(db).WithRealm([]byte("saved/"))
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, reopened.Close()) })

	value, err := reopened.Get([]byte("key"))
	require.NoError(t, err)
	require.Equal(t, []byte("value"), value)
}

func newBadgerStore(t *testing.T) kvstore.KVStore {
	db, err := CreateInMemoryDB()
	require.NoError(t, err)

	store := New(db)
	t.Cleanup(func() { _ = store.Close() })

	return store
}
