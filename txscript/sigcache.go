// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"math/big"

	"github.com/decred/dcrd/lru"
)

// sigCacheEntry is the key of a verified signature: the message hash
// reduced to 32 bytes, the DER signature and the SEC public key.
type sigCacheEntry struct {
	z      [32]byte
	sig    string
	pubKey string
}

func newSigCacheEntry(z *big.Int, sig, pubKey []byte) sigCacheEntry {
	var entry sigCacheEntry
	new(big.Int).Mod(z, curveOrder).FillBytes(entry.z[:])
	entry.sig = string(sig)
	entry.pubKey = string(pubKey)
	return entry
}

// SigCache remembers signatures that verified successfully so the same
// check inside several scripts only costs one verification.  Only valid
// signatures are added.  The least recently used entry is evicted once the
// cache is full.
//
// A SigCache is safe for concurrent use and may be shared by engines
// running in parallel.
type SigCache struct {
	cache lru.Cache
}

// NewSigCache returns a cache holding up to maxEntries signatures.
func NewSigCache(maxEntries uint) *SigCache {
	return &SigCache{cache: lru.NewCache(maxEntries)}
}

// Exists returns whether sig over z under pubKey was previously added.
func (s *SigCache) Exists(z *big.Int, sig, pubKey []byte) bool {
	return s.cache.Contains(newSigCacheEntry(z, sig, pubKey))
}

// Add records that sig over z under pubKey is valid.
func (s *SigCache) Add(z *big.Int, sig, pubKey []byte) {
	s.cache.Add(newSigCacheEntry(z, sig, pubKey))
}
