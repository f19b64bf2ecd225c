package badger

import (
	"os"

	"github.com/dgraph-io/badger/v2"

	"github.com/iotaledger/oneshot/ierrors"
)

// CreateDB creates or opens the BadgerDB in the given directory.
func CreateDB(directory string, optionalOptions ...badger.Options) (*badger.DB, error) {
	if err := os.MkdirAll(directory, 0700); err != nil {
		return nil, ierrors.Wrapf(err, "could not create directory %s", directory)
	}

	var opts badger.Options

	if len(optionalOptions) > 0 {
		opts = optionalOptions[0]
	} else {
		opts = badger.DefaultOptions(directory)
		opts.Logger = nil

		opts.LevelSizeMultiplier = 10
		opts.MaxLevels = 7
		opts.MaxTableSize = 4 << 20
		opts.NumCompactors = 2 // Compactions can be expensive. Only run 2.
		opts.NumLevelZeroTables = 5
		opts.NumLevelZeroTablesStall = 10
		opts.NumMemtables = 5
		opts.SyncWrites = true
		opts.NumVersionsToKeep = 1
		opts.CompactL0OnClose = true

		opts.ValueLogFileSize = 1<<30 - 1
		opts.ValueLogMaxEntries = 1000000
		opts.ValueThreshold = 32
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, ierrors.Wrap(err, "could not open new DB")
	}

	return db, nil
}

// CreateInMemoryDB creates a BadgerDB that keeps all of its data in memory.
func CreateInMemoryDB() (*badger.DB, error) {
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	if err != nil {
		return nil, ierrors.Wrap(err, "could not open in-memory DB")
	}

	return db, nil
}
