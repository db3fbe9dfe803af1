// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// HashMerkleBranches takes two hashes, treated as the left and right tree
// nodes, and returns the hash of their concatenation.  This is a helper
// function used to aid in the generation of a merkle tree.
func HashMerkleBranches(left, right *chainhash.Hash) chainhash.Hash {
	// Concatenate the left and right nodes.
	var hash [chainhash.HashSize * 2]byte
	copy(hash[:chainhash.HashSize], left[:])
	copy(hash[chainhash.HashSize:], right[:])

	return chainhash.DoubleHashH(hash[:])
}

// MerkleParentLevel returns the level above hashes.  When the level has an
// odd number of nodes the last one is paired with itself, as is required by
// consensus.
func MerkleParentLevel(hashes []chainhash.Hash) []chainhash.Hash {
	parents := make([]chainhash.Hash, 0, (len(hashes)+1)/2)
	for i := 0; i < len(hashes); i += 2 {
		right := &hashes[i]
		if i+1 < len(hashes) {
			right = &hashes[i+1]
		}
		parents = append(parents, HashMerkleBranches(&hashes[i], right))
	}
	return parents
}

// CalcMerkleRoot computes the merkle root over the given leaf hashes, which
// are in internal byte order.  The root of an empty set of leaves is the
// zero hash.
func CalcMerkleRoot(hashes []chainhash.Hash) chainhash.Hash {
	if len(hashes) == 0 {
		return chainhash.Hash{}
	}

	level := hashes
	for len(level) > 1 {
		level = MerkleParentLevel(level)
	}
	return level[0]
}
