// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package headerdb

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math/big"
	"sync"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/btcsuite/btcspv/blockchain"
)

var (
	// headerKeyPrefix prefixes the key of every header record, which is
	// followed by the header hash.
	headerKeyPrefix = []byte("hdr")

	// tipKey holds the hash of the stored header with the most work.
	tipKey = []byte("tip")
)

// StoredHeader is a header together with what the store knows about its
// place in the chain.
type StoredHeader struct {
	Header wire.BlockHeader
	Hash   chainhash.Hash

	// Height counts the headers between this one and the first header put
	// into the store, which is at height 0.
	Height int32

	// Work is the sum of the work of this header and all its stored
	// ancestors.
	Work *big.Int
}

// headerKey returns the key of the record of the header with hash.
func headerKey(hash *chainhash.Hash) []byte {
	key := make([]byte, 0, len(headerKeyPrefix)+chainhash.HashSize)
	key = append(key, headerKeyPrefix...)
	return append(key, hash[:]...)
}

// serialize encodes the record as the 80 byte header, the height as a little
// endian uint32 and the big-endian bytes of the work.
func (s *StoredHeader) serialize() ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(wire.MaxBlockHeaderPayload + 4 + 32)
	if err := s.Header.Serialize(&buf); err != nil {
		return nil, err
	}
	var height [4]byte
	binary.LittleEndian.PutUint32(height[:], uint32(s.Height))
	buf.Write(height[:])
	buf.Write(s.Work.Bytes())
	return buf.Bytes(), nil
}

// deserializeStoredHeader decodes a record written by serialize.
func deserializeStoredHeader(b []byte) (*StoredHeader, error) {
	if len(b) < wire.MaxBlockHeaderPayload+4 {
		str := fmt.Sprintf("header record of %d bytes is too short",
			len(b))
		return nil, makeError(ErrCorruption, str, nil)
	}

	var s StoredHeader
	err := s.Header.Deserialize(bytes.NewReader(b[:wire.MaxBlockHeaderPayload]))
	if err != nil {
		return nil, makeError(ErrCorruption, "decode header record", err)
	}
	b = b[wire.MaxBlockHeaderPayload:]
	s.Hash = s.Header.BlockHash()
	s.Height = int32(binary.LittleEndian.Uint32(b[:4]))
	s.Work = new(big.Int).SetBytes(b[4:])
	return &s, nil
}

// HeaderDB stores block headers that passed their proof of work check and
// connect to headers already stored, and tracks the one with the most
// cumulative work.  It is safe for concurrent access.
type HeaderDB struct {
	mtx      sync.RWMutex
	engine   Engine
	powLimit *big.Int
	closed   bool
}

// New returns a header store keeping its records in engine.  Headers with a
// target above powLimit are rejected.  The store owns engine and closes it
// on Close.
func New(engine Engine, powLimit *big.Int) *HeaderDB {
	return &HeaderDB{
		engine:   engine,
		powLimit: new(big.Int).Set(powLimit),
	}
}

// fetchHeader returns the stored header with hash or an ErrHeaderNotFound
// error.  It must be called with the lock held.
func (db *HeaderDB) fetchHeader(hash *chainhash.Hash) (*StoredHeader, error) {
	b, err := db.engine.Get(headerKey(hash))
	if err != nil {
		return nil, err
	}
	if b == nil {
		str := fmt.Sprintf("header %v is not stored", hash)
		return nil, makeError(ErrHeaderNotFound, str, nil)
	}
	return deserializeStoredHeader(b)
}

// tip returns the stored header with the most work, or nil when the store is
// empty.  It must be called with the lock held.
func (db *HeaderDB) tip() (*StoredHeader, error) {
	b, err := db.engine.Get(tipKey)
	if err != nil || b == nil {
		return nil, err
	}
	hash, err := chainhash.NewHash(b)
	if err != nil {
		return nil, makeError(ErrCorruption, "decode tip", err)
	}
	return db.fetchHeader(hash)
}

func (db *HeaderDB) checkOpen() error {
	if db.closed {
		return makeError(ErrDbClosed, "header store is closed", nil)
	}
	return nil
}

// PutHeader validates header and stores it.  The header must meet the target
// its bits claim, and its parent must be stored unless the store is empty.
// Putting a header that is already stored returns the stored record.
func (db *HeaderDB) PutHeader(header *wire.BlockHeader) (*StoredHeader, error) {
	db.mtx.Lock()
	defer db.mtx.Unlock()

	if err := db.checkOpen(); err != nil {
		return nil, err
	}
	if err := blockchain.CheckProofOfWork(header, db.powLimit); err != nil {
		return nil, err
	}

	hash := header.BlockHash()
	existing, err := db.fetchHeader(&hash)
	if err == nil {
		return existing, nil
	}
	if !IsErrorCode(err, ErrHeaderNotFound) {
		return nil, err
	}

	tip, err := db.tip()
	if err != nil {
		return nil, err
	}

	stored := &StoredHeader{
		Header: *header,
		Hash:   hash,
		Work:   blockchain.CalcWork(header.Bits),
	}
	parent, err := db.fetchHeader(&header.PrevBlock)
	switch {
	case err == nil:
		stored.Height = parent.Height + 1
		stored.Work.Add(stored.Work, parent.Work)

	case IsErrorCode(err, ErrHeaderNotFound) && tip == nil:
		// The first header anchors the store.

	case IsErrorCode(err, ErrHeaderNotFound):
		str := fmt.Sprintf("header %v does not connect to a stored "+
			"header, parent %v is unknown", hash, header.PrevBlock)
		return nil, makeError(ErrOrphanHeader, str, nil)

	default:
		return nil, err
	}

	record, err := stored.serialize()
	if err != nil {
		return nil, makeError(ErrCorruption, "encode header record", err)
	}

	batch, err := db.engine.NewBatch()
	if err != nil {
		return nil, err
	}
	if err := batch.Put(headerKey(&hash), record); err != nil {
		batch.Discard()
		return nil, err
	}
	newTip := tip == nil || stored.Work.Cmp(tip.Work) > 0
	if newTip {
		if err := batch.Put(tipKey, hash[:]); err != nil {
			batch.Discard()
			return nil, err
		}
	}
	if err := batch.Commit(); err != nil {
		return nil, err
	}

	if newTip {
		log.Infof("New header tip %v (height %d)", hash, stored.Height)
	} else {
		log.Debugf("Stored side header %v (height %d)", hash,
			stored.Height)
	}
	return stored, nil
}

// FetchHeader returns the stored header with hash.
func (db *HeaderDB) FetchHeader(hash *chainhash.Hash) (*StoredHeader, error) {
	db.mtx.RLock()
	defer db.mtx.RUnlock()

	if err := db.checkOpen(); err != nil {
		return nil, err
	}
	return db.fetchHeader(hash)
}

// HasHeader returns whether the header with hash is stored.
func (db *HeaderDB) HasHeader(hash *chainhash.Hash) (bool, error) {
	db.mtx.RLock()
	defer db.mtx.RUnlock()

	if err := db.checkOpen(); err != nil {
		return false, err
	}
	return db.engine.Has(headerKey(hash))
}

// Tip returns the stored header with the most cumulative work.  An empty
// store returns an ErrHeaderNotFound error.
func (db *HeaderDB) Tip() (*StoredHeader, error) {
	db.mtx.RLock()
	defer db.mtx.RUnlock()

	if err := db.checkOpen(); err != nil {
		return nil, err
	}
	tip, err := db.tip()
	if err != nil {
		return nil, err
	}
	if tip == nil {
		return nil, makeError(ErrHeaderNotFound, "header store is empty",
			nil)
	}
	return tip, nil
}

// VerifyMerkleBlock checks that the header of msg is stored and that its
// partial merkle tree commits to the header merkle root.  It returns the
// hashes of the transactions the merkle block proves.
func (db *HeaderDB) VerifyMerkleBlock(msg *wire.MsgMerkleBlock) ([]chainhash.Hash, error) {
	hash := msg.Header.BlockHash()
	if _, err := db.FetchHeader(&hash); err != nil {
		return nil, err
	}
	return blockchain.MerkleBlockMatches(msg)
}

// Close closes the store and its engine.
func (db *HeaderDB) Close() error {
	db.mtx.Lock()
	defer db.mtx.Unlock()

	if err := db.checkOpen(); err != nil {
		return err
	}
	db.closed = true
	return db.engine.Close()
}
