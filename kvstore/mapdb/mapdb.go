// Package mapdb implements an in-memory kvstore.KVStore.
//
// All realms of a store share one map, so it behaves like the persistent backends except that nothing survives a
// restart. Hosts use it for tests and for saved state that only has to outlive a re-evaluation.
package mapdb

import (
	"sort"

	"go.uber.org/atomic"

	"github.com/iotaledger/oneshot/byteutils"
	"github.com/iotaledger/oneshot/kvstore"
	"github.com/iotaledger/oneshot/runtime/syncutils"
)

// table holds the entries of all realms.
type table struct {
	entries map[string][]byte
	closed  atomic.Bool
	mutex   syncutils.RWMutex
}

// Store is the view of a single realm on a table.
type Store struct {
	table *table
	realm kvstore.Realm
}

var _ kvstore.KVStore = &Store{}

// New creates an empty Store.
func New() *Store {
	return &Store{table: &table{entries: make(map[string][]byte)}}
}

func (s *Store) WithRealm(realm kvstore.Realm) (kvstore.KVStore, error) {
	if s.table.closed.Load() {
		return nil, kvstore.ErrStoreClosed
	}

	return &Store{table: s.table, realm: byteutils.ConcatBytes(realm)}, nil
}

func (s *Store) WithExtendedRealm(realm kvstore.Realm) (kvstore.KVStore, error) {
	return s.WithRealm(byteutils.ConcatBytes(s.realm, realm))
}

func (s *Store) Realm() kvstore.Realm {
	return byteutils.ConcatBytes(s.realm)
}

// Iterate passes copies of the matching entries to the consumer, so the consumer may modify the store.
func (s *Store) Iterate(prefix kvstore.KeyPrefix, consumerFunc kvstore.IteratorKeyValueConsumerFunc) error {
	keys, values, err := s.matching(prefix)
	if err != nil {
		return err
	}

	for i, key := range keys {
		if !consumerFunc(key, values[i]) {
			break
		}
	}

	return nil
}

func (s *Store) IterateKeys(prefix kvstore.KeyPrefix, consumerFunc kvstore.IteratorKeyConsumerFunc) error {
	keys, _, err := s.matching(prefix)
	if err != nil {
		return err
	}

	for _, key := range keys {
		if !consumerFunc(key) {
			break
		}
	}

	return nil
}

func (s *Store) Clear() error {
	return s.DeletePrefix(kvstore.EmptyPrefix)
}

func (s *Store) Get(key kvstore.Key) (value kvstore.Value, err error) {
	err = s.read(func(entries map[string][]byte) error {
		stored, exists := entries[s.realmKey(key)]
		if !exists {
			return kvstore.ErrKeyNotFound
		}

		value = byteutils.ConcatBytes(stored)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return value, nil
}

func (s *Store) Set(key kvstore.Key, value kvstore.Value) error {
	return s.write(func(entries map[string][]byte) {
		entries[s.realmKey(key)] = byteutils.ConcatBytes(value)
	})
}

func (s *Store) Has(key kvstore.Key) (bool, error) {
	var has bool
	if err := s.read(func(entries map[string][]byte) error {
		_, has = entries[s.realmKey(key)]

		return nil
	}); err != nil {
		return false, err
	}

	return has, nil
}

func (s *Store) Delete(key kvstore.Key) error {
	return s.write(func(entries map[string][]byte) {
		delete(entries, s.realmKey(key))
	})
}

func (s *Store) DeletePrefix(prefix kvstore.KeyPrefix) error {
	keyPrefix := []byte(s.realmKey(prefix))

	return s.write(func(entries map[string][]byte) {
		for key := range entries {
			if byteutils.HasPrefix([]byte(key), keyPrefix) {
				delete(entries, key)
			}
		}
	})
}

func (s *Store) Flush() error {
	return s.read(func(map[string][]byte) error { return nil })
}

// Close closes the store for all realms. The entries are kept, so stores that were created before are still closed.
func (s *Store) Close() error {
	s.table.closed.Store(true)

	return nil
}

// matching returns the keys (without the realm) and copies of the values of the realm's entries that start with the
// given prefix in ascending key order.
func (s *Store) matching(prefix kvstore.KeyPrefix) (keys []kvstore.Key, values []kvstore.Value, err error) {
	keyPrefix := []byte(s.realmKey(prefix))

	var matchingKeys []string
	if err = s.read(func(entries map[string][]byte) error {
		for key := range entries {
			if byteutils.HasPrefix([]byte(key), keyPrefix) {
				matchingKeys = append(matchingKeys, key)
			}
		}

		sort.Strings(matchingKeys)

		for _, key := range matchingKeys {
			keys = append(keys, kvstore.Key(key[len(s.realm):]))
			values = append(values, byteutils.ConcatBytes(entries[key]))
		}

		return nil
	}); err != nil {
		return nil, nil, err
	}

	return keys, values, nil
}

// read runs the given function while holding the read lock of the table.
func (s *Store) read(fn func(entries map[string][]byte) error) error {
	s.table.mutex.RLock()
	defer s.table.mutex.RUnlock()

	if s.table.closed.Load() {
		return kvstore.ErrStoreClosed
	}

	return fn(s.table.entries)
}

// write runs the given function while holding the write lock of the table.
func (s *Store) write(fn func(entries map[string][]byte)) error {
	s.table.mutex.Lock()
	defer s.table.mutex.Unlock()

	if s.table.closed.Load() {
		return kvstore.ErrStoreClosed
	}

	fn(s.table.entries)

	return nil
}

// realmKey returns the map key of the given key of the realm.
func (s *Store) realmKey(key []byte) string {
	return string(s.realm) + string(key)
}
