// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package headerdb

import (
	"errors"
	"sync/atomic"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/bloom"
	"github.com/cockroachdb/pebble/vfs"
)

const (
	// pebbleCacheSize is the block cache of a pebble engine in bytes.
	// Headers are small, so it is far below what a full node uses.
	pebbleCacheSize = 8 * 1024 * 1024

	// pebbleHandles is the number of files a pebble engine keeps open.
	pebbleHandles = 16
)

// pebbleDB is an Engine backed by pebble.
type pebbleDB struct {
	db     *pebble.DB
	closed atomic.Bool
}

// openPebble opens or creates a pebble engine at path on fs.
func openPebble(path string, fs vfs.FS) (Engine, error) {
	cache := pebble.NewCache(pebbleCacheSize)
	defer cache.Unref()

	opts := &pebble.Options{
		Cache:        cache,
		FS:           fs,
		MaxOpenFiles: pebbleHandles,
		Levels: []pebble.LevelOptions{
			{TargetFileSize: 2 * 1024 * 1024, FilterPolicy: bloom.FilterPolicy(10)},
			{TargetFileSize: 4 * 1024 * 1024, FilterPolicy: bloom.FilterPolicy(10)},
		},
	}
	db, err := pebble.Open(path, opts)
	if err != nil {
		return nil, engineError("open pebble", err)
	}
	return &pebbleDB{db: db}, nil
}

// OpenPebble opens or creates a pebble engine in the directory path.
func OpenPebble(path string) (Engine, error) {
	return openPebble(path, vfs.Default)
}

// OpenMemPebble opens a pebble engine that keeps everything in memory.
func OpenMemPebble() (Engine, error) {
	return openPebble("", vfs.NewMem())
}

func (p *pebbleDB) Get(key []byte) ([]byte, error) {
	if p.closed.Load() {
		return nil, makeError(ErrDbClosed, "pebble: closed", nil)
	}
	value, closer, err := p.db.Get(key)
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, engineError("pebble get", err)
	}
	defer closer.Close()

	// The returned slice is only valid until the closer is called.
	return append([]byte(nil), value...), nil
}

func (p *pebbleDB) Has(key []byte) (bool, error) {
	value, err := p.Get(key)
	if err != nil {
		return false, err
	}
	return value != nil, nil
}

func (p *pebbleDB) NewBatch() (Batch, error) {
	if p.closed.Load() {
		return nil, makeError(ErrDbClosed, "pebble: closed", nil)
	}
	return &pebbleBatch{batch: p.db.NewBatch()}, nil
}

func (p *pebbleDB) Close() error {
	if p.closed.Swap(true) {
		return makeError(ErrDbClosed, "pebble: closed", nil)
	}
	if err := p.db.Close(); err != nil {
		return engineError("pebble close", err)
	}
	return nil
}

// pebbleBatch wraps a pebble batch that is committed with a sync.
type pebbleBatch struct {
	batch    *pebble.Batch
	released bool
}

func (b *pebbleBatch) Put(key, value []byte) error {
	if b.released {
		return makeError(ErrDbClosed, "pebble: batch already done", nil)
	}
	if err := b.batch.Set(key, value, nil); err != nil {
		return engineError("pebble set", err)
	}
	return nil
}

func (b *pebbleBatch) Commit() error {
	if b.released {
		return makeError(ErrDbClosed, "pebble: batch already done", nil)
	}
	b.released = true
	defer b.batch.Close()
	if err := b.batch.Commit(pebble.Sync); err != nil {
		return engineError("pebble commit", err)
	}
	return nil
}

func (b *pebbleBatch) Discard() {
	if !b.released {
		b.released = true
		b.batch.Close()
	}
}
