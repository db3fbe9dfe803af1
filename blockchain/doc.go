// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package blockchain implements the block level checks a simplified payment
verification client needs: merkle roots, partial merkle trees from merkle
blocks, and header proof of work.

# Partial Merkle Trees

A merkle block carries the number of transactions in a block, a list of
hashes and a list of flag bits.  Walking the tree depth first, each flag says
whether the node is an ancestor of a matched transaction.  Nodes that are not
are given by the next hash, the children of those that are get visited in
turn.  PartialMerkleTree performs that walk and rebuilds the root, which
ValidateMerkleBlock then compares with the merkle root of the header:

	root, err := blockchain.ValidateMerkleBlock(msg)
	if err != nil {
		// The proof is malformed or does not match the header.
	}

# Errors

Errors returned by this package are of type blockchain.RuleError.  The
ErrorCode field tells the kinds of failure apart, and IsErrorCode checks for
one through wrapped errors.
*/
package blockchain
