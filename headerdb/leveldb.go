// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package headerdb

import (
	"sync/atomic"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/filter"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"
)

// levelDB is an Engine backed by goleveldb.
type levelDB struct {
	db     *leveldb.DB
	closed atomic.Bool
}

// levelDBOptions returns the options every leveldb engine is opened with.
func levelDBOptions() *opt.Options {
	return &opt.Options{
		Strict:      opt.DefaultStrict,
		Compression: opt.NoCompression,
		Filter:      filter.NewBloomFilter(10),
	}
}

// OpenLevelDB opens or creates a leveldb engine in the directory path.
func OpenLevelDB(path string) (Engine, error) {
	db, err := leveldb.OpenFile(path, levelDBOptions())
	if err != nil {
		return nil, engineError("open leveldb", err)
	}
	return &levelDB{db: db}, nil
}

// OpenMemLevelDB opens a leveldb engine that keeps everything in memory.
func OpenMemLevelDB() (Engine, error) {
	db, err := leveldb.Open(storage.NewMemStorage(), levelDBOptions())
	if err != nil {
		return nil, engineError("open leveldb", err)
	}
	return &levelDB{db: db}, nil
}

func (l *levelDB) Get(key []byte) ([]byte, error) {
	if l.closed.Load() {
		return nil, makeError(ErrDbClosed, "leveldb: closed", nil)
	}
	value, err := l.db.Get(key, nil)
	if err == leveldb.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, engineError("leveldb get", err)
	}
	return value, nil
}

func (l *levelDB) Has(key []byte) (bool, error) {
	if l.closed.Load() {
		return false, makeError(ErrDbClosed, "leveldb: closed", nil)
	}
	has, err := l.db.Has(key, nil)
	if err != nil {
		return false, engineError("leveldb has", err)
	}
	return has, nil
}

func (l *levelDB) NewBatch() (Batch, error) {
	if l.closed.Load() {
		return nil, makeError(ErrDbClosed, "leveldb: closed", nil)
	}
	return &levelDBBatch{db: l.db, batch: new(leveldb.Batch)}, nil
}

func (l *levelDB) Close() error {
	if l.closed.Swap(true) {
		return makeError(ErrDbClosed, "leveldb: closed", nil)
	}
	if err := l.db.Close(); err != nil {
		return engineError("leveldb close", err)
	}
	return nil
}

// levelDBBatch buffers writes in a leveldb batch and writes it synced on
// Commit.
type levelDBBatch struct {
	db       *leveldb.DB
	batch    *leveldb.Batch
	released bool
}

func (b *levelDBBatch) Put(key, value []byte) error {
	if b.released {
		return makeError(ErrDbClosed, "leveldb: batch already done", nil)
	}
	b.batch.Put(key, value)
	return nil
}

func (b *levelDBBatch) Commit() error {
	if b.released {
		return makeError(ErrDbClosed, "leveldb: batch already done", nil)
	}
	b.released = true
	if err := b.db.Write(b.batch, &opt.WriteOptions{Sync: true}); err != nil {
		return engineError("leveldb write", err)
	}
	return nil
}

func (b *levelDBBatch) Discard() {
	if !b.released {
		b.released = true
		b.batch.Reset()
	}
}
