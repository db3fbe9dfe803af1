// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

// populateMerkleBlock rebuilds the partial merkle tree carried by msg and
// checks its root against the header.
func populateMerkleBlock(msg *wire.MsgMerkleBlock) (*PartialMerkleTree, error) {
	tree, err := NewPartialMerkleTree(msg.Transactions)
	if err != nil {
		return nil, err
	}

	hashes := make([]chainhash.Hash, 0, len(msg.Hashes))
	for i, hash := range msg.Hashes {
		if hash == nil {
			str := fmt.Sprintf("merkle block hash %d is missing", i)
			return nil, ruleError(ErrMalformedProof, str)
		}
		hashes = append(hashes, *hash)
	}

	root, err := tree.Populate(BytesToBitField(msg.Flags), hashes)
	if err != nil {
		return nil, err
	}
	if !root.IsEqual(&msg.Header.MerkleRoot) {
		str := fmt.Sprintf("merkle block root %v does not match the "+
			"header merkle root %v", root, msg.Header.MerkleRoot)
		return nil, ruleError(ErrBadMerkleRoot, str)
	}
	return tree, nil
}

// ValidateMerkleBlock checks that the partial merkle tree of msg commits to
// the merkle root in its header and returns that root.  The proof of work of
// the header is not checked.
func ValidateMerkleBlock(msg *wire.MsgMerkleBlock) (chainhash.Hash, error) {
	tree, err := populateMerkleBlock(msg)
	if err != nil {
		return chainhash.Hash{}, err
	}
	root, _ := tree.Root()
	return *root, nil
}

// MerkleBlockMatches validates msg like ValidateMerkleBlock and returns the
// hashes of the transactions it proves are in the block.
func MerkleBlockMatches(msg *wire.MsgMerkleBlock) ([]chainhash.Hash, error) {
	tree, err := populateMerkleBlock(msg)
	if err != nil {
		return nil, err
	}
	return tree.Matches(), nil
}
