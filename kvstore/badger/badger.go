// Package badger implements a persistent kvstore.KVStore on top of BadgerDB.
package badger

import (
	"github.com/dgraph-io/badger/v2"
	"go.uber.org/atomic"

	"github.com/iotaledger/oneshot/byteutils"
	"github.com/iotaledger/oneshot/ierrors"
	"github.com/iotaledger/oneshot/kvstore"
)

// Store is a kvstore.KVStore that keeps the entries of one realm in a BadgerDB. Stores of different realms share the
// same database and close it together.
type Store struct {
	db    *badger.DB
	realm kvstore.Realm

	// closed is shared by all realms of the same database.
	closed *atomic.Bool
}

var _ kvstore.KVStore = &Store{}

// New creates a Store for the empty realm of the given database.
func New(db *badger.DB) *Store {
	return &Store{db: db, closed: atomic.NewBool(false)}
}

func (s *Store) WithRealm(realm kvstore.Realm) (kvstore.KVStore, error) {
	if s.closed.Load() {
		return nil, kvstore.ErrStoreClosed
	}

	return &Store{db: s.db, realm: byteutils.ConcatBytes(realm), closed: s.closed}, nil
}

func (s *Store) WithExtendedRealm(realm kvstore.Realm) (kvstore.KVStore, error) {
	return s.WithRealm(byteutils.ConcatBytes(s.realm, realm))
}

func (s *Store) Realm() kvstore.Realm {
	return byteutils.ConcatBytes(s.realm)
}

func (s *Store) Iterate(prefix kvstore.KeyPrefix, consumerFunc kvstore.IteratorKeyValueConsumerFunc) error {
	return s.view(func(txn *badger.Txn) error {
		return s.scan(txn, prefix, true, func(item *badger.Item) (bool, error) {
			value, err := item.ValueCopy(nil)
			if err != nil {
				return false, ierrors.Wrapf(err, "failed to read value of %x", item.Key())
			}

			return consumerFunc(s.trimRealm(item), value), nil
		})
	})
}

func (s *Store) IterateKeys(prefix kvstore.KeyPrefix, consumerFunc kvstore.IteratorKeyConsumerFunc) error {
	return s.view(func(txn *badger.Txn) error {
		return s.scan(txn, prefix, false, func(item *badger.Item) (bool, error) {
			return consumerFunc(s.trimRealm(item)), nil
		})
	})
}

func (s *Store) Clear() error {
	return s.DeletePrefix(kvstore.EmptyPrefix)
}

func (s *Store) Get(key kvstore.Key) (kvstore.Value, error) {
	var value kvstore.Value
	if err := s.view(func(txn *badger.Txn) (err error) {
		item, err := txn.Get(s.realmKey(key))
		if err != nil {
			return err
		}

		value, err = item.ValueCopy(nil)

		return err
	}); err != nil {
		return nil, err
	}

	return value, nil
}

func (s *Store) Set(key kvstore.Key, value kvstore.Value) error {
	return s.update(func(txn *badger.Txn) error {
		return txn.Set(s.realmKey(key), byteutils.ConcatBytes(value))
	})
}

func (s *Store) Has(key kvstore.Key) (bool, error) {
	if err := s.view(func(txn *badger.Txn) error {
		_, err := txn.Get(s.realmKey(key))

		return err
	}); err != nil {
		if ierrors.Is(err, kvstore.ErrKeyNotFound) {
			return false, nil
		}

		return false, err
	}

	return true, nil
}

func (s *Store) Delete(key kvstore.Key) error {
	return s.update(func(txn *badger.Txn) error {
		return txn.Delete(s.realmKey(key))
	})
}

// DeletePrefix deletes the matching entries with a write batch, so the number of entries is not limited by the maximum
// size of a transaction.
func (s *Store) DeletePrefix(prefix kvstore.KeyPrefix) error {
	var keys [][]byte
	if err := s.view(func(txn *badger.Txn) error {
		return s.scan(txn, prefix, false, func(item *badger.Item) (bool, error) {
			keys = append(keys, item.KeyCopy(nil))

			return true, nil
		})
	}); err != nil {
		return err
	}

	batch := s.db.NewWriteBatch()
	defer batch.Cancel()

	for _, key := range keys {
		if err := batch.Delete(key); err != nil {
			return ierrors.Wrapf(err, "failed to delete %x", key)
		}
	}

	return batch.Flush()
}

func (s *Store) Flush() error {
	if s.closed.Load() {
		return kvstore.ErrStoreClosed
	}

	return s.db.Sync()
}

// Close closes the database of all realms.
func (s *Store) Close() error {
	if !s.closed.CAS(false, true) {
		return nil
	}

	return s.db.Close()
}

// view runs the given function in a read-only transaction.
func (s *Store) view(fn func(txn *badger.Txn) error) error {
	if s.closed.Load() {
		return kvstore.ErrStoreClosed
	}

	return translateError(s.db.View(fn))
}

// update runs the given function in a read-write transaction.
func (s *Store) update(fn func(txn *badger.Txn) error) error {
	if s.closed.Load() {
		return kvstore.ErrStoreClosed
	}

	return translateError(s.db.Update(fn))
}

// scan passes the items of the realm that start with the given prefix to the consumer in ascending key order until it
// returns false or an error.
func (s *Store) scan(txn *badger.Txn, prefix kvstore.KeyPrefix, prefetchValues bool, consumer func(item *badger.Item) (bool, error)) error {
	scanPrefix := s.realmKey(prefix)

	iteratorOptions := badger.DefaultIteratorOptions
	iteratorOptions.Prefix = scanPrefix
	iteratorOptions.PrefetchValues = prefetchValues

	iterator := txn.NewIterator(iteratorOptions)
	defer iterator.Close()

	for iterator.Seek(scanPrefix); iterator.ValidForPrefix(scanPrefix); iterator.Next() {
		if proceed, err := consumer(iterator.Item()); err != nil || !proceed {
			return err
		}
	}

	return nil
}

// realmKey returns the database key of the given key of the realm.
func (s *Store) realmKey(key []byte) []byte {
	return byteutils.ConcatBytes(s.realm, key)
}

// trimRealm returns a copy of the key of the item without the realm.
func (s *Store) trimRealm(item *badger.Item) kvstore.Key {
	return item.KeyCopy(nil)[len(s.realm):]
}

// translateError maps the errors of BadgerDB to the errors of the kvstore package.
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case ierrors.Is(err, badger.ErrKeyNotFound):
		return kvstore.ErrKeyNotFound
	case ierrors.Is(err, badger.ErrDBClosed):
		return kvstore.ErrStoreClosed
	default:
		return ierrors.Wrap(err, "badger operation failed")
	}
}
