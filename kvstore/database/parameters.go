package database

import (
	"github.com/iotaledger/oneshot/kvstore"
)

// Parameters contains the configuration of the saved state database.
type Parameters struct {
	// Engine is the database engine that is used to persist the saved state.
	Engine string `default:"mapdb" usage:"the used database engine (auto/badger/mapdb)"`

	// Path is the directory of the persistent database engines.
	Path string `default:"savedstate" usage:"the path to the database folder"`

	// CreateIfMissing creates a new database if none exists at the configured path.
	CreateIfMissing bool `default:"true" usage:"create the database if it does not exist yet"`
}

// ParamsDatabase contains the configuration of the saved state database.
var ParamsDatabase = &Parameters{}

// Open opens the kvstore.KVStore that is described by the given Parameters.
func Open(parameters *Parameters) (kvstore.KVStore, error) {
	engine, err := ParseEngine(parameters.Engine)
	if err != nil {
		return nil, err
	}

	return OpenStore(parameters.Path, parameters.CreateIfMissing, engine)
}
