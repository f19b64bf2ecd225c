// Package database selects and opens the kvstore.KVStore backend that holds the saved state.
package database

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/iotaledger/oneshot/ierrors"
	"github.com/iotaledger/oneshot/kvstore"
	"github.com/iotaledger/oneshot/kvstore/badger"
	"github.com/iotaledger/oneshot/kvstore/mapdb"
)

// Engine names a storage backend for the saved state.
type Engine string

const (
	EngineUnknown Engine = "unknown"
	EngineAuto    Engine = "auto"
	EngineBadger  Engine = "badger"
	EngineMapDB   Engine = "mapdb"
)

// markerFormatVersion is written into every marker file and rejected if it does not match.
const markerFormatVersion = 1

// markerFileName is the file inside the database folder that records which engine created it.
const markerFileName = "savedstate.toml"

var (
	ErrEngineMismatch  = ierrors.New("database engine mismatch")
	ErrUnknownEngine   = ierrors.New("unknown database engine")
	ErrDatabaseMissing = ierrors.New("database not found")

	// Engines contains the engines that can be selected.
	Engines = []Engine{EngineAuto, EngineBadger, EngineMapDB}
)

// marker is the content of the marker file.
type marker struct {
	Engine        Engine `toml:"engine"`
	FormatVersion int    `toml:"formatVersion"`
}

// ParseEngine parses a case insensitive engine name. The empty name selects EngineAuto.
func ParseEngine(name string, supported ...Engine) (Engine, error) {
	if len(supported) == 0 {
		supported = Engines
	}

	engine := EngineAuto
	if name != "" {
		engine = Engine(strings.ToLower(name))
	}

	for _, candidate := range supported {
		if candidate == engine {
			return engine, nil
		}
	}

	names := make([]string, 0, len(supported))
	for _, candidate := range supported {
		names = append(names, string(candidate))
	}

	return EngineUnknown, ierrors.Wrapf(ErrUnknownEngine, "%s (supported engines: %s)", name, strings.Join(names, "/"))
}

// ResolveEngine determines the engine that serves the database at path.
//
// The in-memory engine never touches the file system. For the persistent engines the marker file decides: an existing
// marker must agree with a requested engine, a missing marker is written for a requested engine and EngineAuto only
// resolves if a marker exists.
func ResolveEngine(path string, createIfMissing bool, requested Engine) (Engine, error) {
	if requested == EngineMapDB {
		return EngineMapDB, nil
	}

	markerPath := filepath.Join(path, markerFileName)

	recorded, err := readMarker(markerPath)
	switch {
	case err == nil:
		if requested != EngineAuto && requested != recorded {
			return recorded, ierrors.Wrapf(ErrEngineMismatch, "requested %s but %s was created by %s", requested, path, recorded)
		}

		return recorded, nil

	case !os.IsNotExist(err):
		return EngineUnknown, err
	}

	populated, err := isPopulated(path)
	if err != nil {
		return EngineUnknown, err
	}

	switch {
	case !populated && !createIfMissing:
		return EngineUnknown, ierrors.Wrap(ErrDatabaseMissing, path)
	case requested == EngineAuto:
		return EngineUnknown, ierrors.Errorf("no marker file in %s, the engine must be named explicitly", path)
	}

	if err := writeMarker(markerPath, requested); err != nil {
		return EngineUnknown, err
	}

	return requested, nil
}

// OpenStore opens the kvstore.KVStore of the engine that ResolveEngine picks for path.
func OpenStore(path string, createIfMissing bool, requested Engine) (kvstore.KVStore, error) {
	engine, err := ResolveEngine(path, createIfMissing, requested)
	if err != nil {
		return nil, err
	}

	switch engine {
	case EngineMapDB:
		return mapdb.New(), nil
	case EngineBadger:
		db, err := badger.CreateDB(path)
		if err != nil {
			return nil, ierrors.Wrap(err, "failed to open badger database")
		}

		return badger.New(db), nil
	default:
		return nil, ierrors.Wrapf(ErrUnknownEngine, "%s", engine)
	}
}

func readMarker(markerPath string) (Engine, error) {
	content, err := os.ReadFile(markerPath)
	if err != nil {
		return EngineUnknown, err
	}

	var recorded marker
	if err := toml.Unmarshal(content, &recorded); err != nil {
		return EngineUnknown, ierrors.Wrapf(err, "unable to parse %s", markerPath)
	}

	if recorded.FormatVersion != markerFormatVersion {
		return EngineUnknown, ierrors.Errorf("%s has format version %d, expected %d", markerPath, recorded.FormatVersion, markerFormatVersion)
	}

	return ParseEngine(string(recorded.Engine), EngineBadger, EngineMapDB)
}

func writeMarker(markerPath string, engine Engine) error {
	if err := os.MkdirAll(filepath.Dir(markerPath), 0700); err != nil {
		return ierrors.Wrapf(err, "unable to create %s", filepath.Dir(markerPath))
	}

	content, err := toml.Marshal(&marker{Engine: engine, FormatVersion: markerFormatVersion})
	if err != nil {
		return ierrors.Wrap(err, "unable to encode marker file")
	}

	return ierrors.Wrap(os.WriteFile(markerPath, content, 0600), "unable to write marker file")
}

// isPopulated reports whether path is a directory with at least one entry.
func isPopulated(path string) (bool, error) {
	entries, err := os.ReadDir(path)
	if os.IsNotExist(err) {
		return false, nil
	} else if err != nil {
		return false, ierrors.Wrapf(err, "unable to read %s", path)
	}

	return len(entries) != 0, nil
}
