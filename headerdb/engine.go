// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package headerdb

import (
	"fmt"
	"sort"
)

// Engine is a key value store the header store keeps its records in.
// Implementations must be safe for concurrent access.
type Engine interface {
	// Get returns a copy of the value stored under key, or nil when the
	// key does not exist.
	Get(key []byte) ([]byte, error)

	// Has returns whether key exists.
	Has(key []byte) (bool, error)

	// NewBatch returns a batch of writes that is applied atomically on
	// Commit.
	NewBatch() (Batch, error)

	// Close releases the engine.  Every call after the first returns an
	// error with ErrDbClosed.
	Close() error
}

// Batch collects writes to an Engine.  A batch must be committed or
// discarded, and is done after either.
type Batch interface {
	Put(key, value []byte) error
	Commit() error
	Discard()
}

// Supported engine types.
const (
	TypeLevelDB = "leveldb"
	TypePebble  = "pebble"
)

// openFuncs maps the engine types to the functions opening them.  An empty
// path opens the engine in memory.
var openFuncs = map[string]func(path string) (Engine, error){
	TypeLevelDB: func(path string) (Engine, error) {
		if path == "" {
			return OpenMemLevelDB()
		}
		return OpenLevelDB(path)
	},
	TypePebble: func(path string) (Engine, error) {
		if path == "" {
			return OpenMemPebble()
		}
		return OpenPebble(path)
	},
}

// SupportedEngines returns the engine types Open accepts, sorted.
func SupportedEngines() []string {
	types := make([]string, 0, len(openFuncs))
	for dbType := range openFuncs {
		types = append(types, dbType)
	}
	sort.Strings(types)
	return types
}

// Open opens the engine of the given type at path, creating it when it does
// not exist.  An empty path keeps everything in memory.
func Open(dbType, path string) (Engine, error) {
	open, ok := openFuncs[dbType]
	if !ok {
		str := fmt.Sprintf("engine type %q is not one of %v", dbType,
			SupportedEngines())
		return nil, makeError(ErrDbUnknownType, str, nil)
	}

	log.Debugf("Opening %s header engine at %q", dbType, path)
	return open(path)
}

// engineError wraps a failure reported by an engine.
func engineError(op string, err error) error {
	return makeError(ErrEngine, op, err)
}
