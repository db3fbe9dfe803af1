// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// treeState tracks whether a PartialMerkleTree may still be populated.
type treeState byte

const (
	treeFresh treeState = iota
	treePopulated
	treePoisoned
)

// PartialMerkleTree rebuilds the root of a merkle tree from the depth first
// flags and hashes of a merkle block.  Nodes are stored per level with the
// root at level 0 and the leaves at level Depth.  A nil node is not known
// yet.
//
// A PartialMerkleTree is populated exactly once and is not safe for
// concurrent access.
type PartialMerkleTree struct {
	total    uint32
	maxDepth int
	nodes    [][]*chainhash.Hash
	matches  []chainhash.Hash
	state    treeState

	// depth and index locate the node the traversal is currently at.
	depth int
	index int
}

const (
	// maxBlockWeight is the consensus weight limit of a block.
	maxBlockWeight = 4000000

	// minTxWeight is the weight of the smallest transaction that can be
	// in a block.
	minTxWeight = 60

	// MaxMerkleLeaves is the most transactions a block can hold and so the
	// largest tree NewPartialMerkleTree accepts.
	MaxMerkleLeaves = maxBlockWeight / minTxWeight
)

// calcTreeWidth returns the number of nodes at the given height above the
// leaves of a tree with total leaves.
func calcTreeWidth(total uint32, height int) int {
	return int((uint64(total) + (1 << uint(height)) - 1) >> uint(height))
}

// NewPartialMerkleTree returns an empty tree for total leaves.
func NewPartialMerkleTree(total uint32) (*PartialMerkleTree, error) {
	if total == 0 {
		return nil, ruleError(ErrEmptyTree, "merkle tree must have at "+
			"least one leaf")
	}
	if total > MaxMerkleLeaves {
		str := fmt.Sprintf("merkle tree of %d leaves exceeds the max "+
			"of %d transactions in a block", total, MaxMerkleLeaves)
		return nil, ruleError(ErrMalformedProof, str)
	}

	// The depth is the number of times the leaf count has to be halved,
	// rounding up, to reach a single node.
	maxDepth := 0
	for uint64(1)<<uint(maxDepth) < uint64(total) {
		maxDepth++
	}

	nodes := make([][]*chainhash.Hash, maxDepth+1)
	for depth := range nodes {
		nodes[depth] = make([]*chainhash.Hash,
			calcTreeWidth(total, maxDepth-depth))
	}

	return &PartialMerkleTree{
		total:    total,
		maxDepth: maxDepth,
		nodes:    nodes,
	}, nil
}

// Total returns the number of leaves.
func (t *PartialMerkleTree) Total() uint32 {
	return t.total
}

// Depth returns the level of the leaves.  A tree with a single leaf has
// depth 0.
func (t *PartialMerkleTree) Depth() int {
	return t.maxDepth
}

func (t *PartialMerkleTree) up() {
	if t.depth > 0 {
		t.depth--
		t.index /= 2
	}
}

func (t *PartialMerkleTree) left() {
	t.depth++
	t.index *= 2
}

func (t *PartialMerkleTree) right() {
	t.depth++
	t.index = t.index*2 + 1
}

func (t *PartialMerkleTree) root() *chainhash.Hash {
	return t.nodes[0][0]
}

func (t *PartialMerkleTree) setCurrentNode(hash chainhash.Hash) {
	t.nodes[t.depth][t.index] = &hash
}

func (t *PartialMerkleTree) getCurrentNode() *chainhash.Hash {
	return t.nodes[t.depth][t.index]
}

func (t *PartialMerkleTree) getLeftNode() *chainhash.Hash {
	return t.nodes[t.depth+1][t.index*2]
}

func (t *PartialMerkleTree) getRightNode() *chainhash.Hash {
	return t.nodes[t.depth+1][t.index*2+1]
}

func (t *PartialMerkleTree) isLeaf() bool {
	return t.depth == t.maxDepth
}

// rightExists reports whether the current node has a right child.  The last
// node of a level with an odd width has none.
func (t *PartialMerkleTree) rightExists() bool {
	return len(t.nodes[t.depth+1]) > t.index*2+1
}

// Populate walks the tree depth first, consuming one flag per visited node
// and one hash per node that is not descended into, and returns the root.
// A set flag on an inner node means one of the leaves below it matched, so
// the traversal descends.  A set flag on a leaf marks the leaf as matched.
//
// The slices are not modified.  Any failure leaves the tree unusable and
// further calls return ErrTreePoisoned.
func (t *PartialMerkleTree) Populate(flags []bool,
	hashes []chainhash.Hash) (chainhash.Hash, error) {

	switch t.state {
	case treePopulated:
		return chainhash.Hash{}, ruleError(ErrTreePopulated,
			"merkle tree has already been populated")
	case treePoisoned:
		return chainhash.Hash{}, ruleError(ErrTreePoisoned,
			"merkle tree failed an earlier populate")
	}

	root, err := t.populate(flags, hashes)
	if err != nil {
		t.state = treePoisoned
		t.matches = nil
		log.Debugf("Unable to populate merkle tree of %d leaves: %v",
			t.total, err)
		return chainhash.Hash{}, err
	}
	t.state = treePopulated

	log.Tracef("Populated merkle tree:\n%v", t)
	return root, nil
}

func (t *PartialMerkleTree) populate(flags []bool,
	hashes []chainhash.Hash) (chainhash.Hash, error) {

	// Every hash fills a distinct node on or above the leaves, and no
	// level is wider than the leaf count.
	if uint64(len(hashes)) > uint64(t.total) {
		str := fmt.Sprintf("%d hashes given for a tree of %d leaves",
			len(hashes), t.total)
		return chainhash.Hash{}, ruleError(ErrMalformedProof, str)
	}

	var flagsUsed, hashesUsed int
	nextFlag := func() (bool, error) {
		if flagsUsed >= len(flags) {
			str := fmt.Sprintf("ran out of flags after %d", flagsUsed)
			return false, ruleError(ErrMalformedProof, str)
		}
		flagsUsed++
		return flags[flagsUsed-1], nil
	}
	nextHash := func() (chainhash.Hash, error) {
		if hashesUsed >= len(hashes) {
			str := fmt.Sprintf("ran out of hashes after %d",
				hashesUsed)
			return chainhash.Hash{}, ruleError(ErrMalformedProof, str)
		}
		hashesUsed++
		return hashes[hashesUsed-1], nil
	}

	for t.root() == nil {
		if t.isLeaf() {
			matched, err := nextFlag()
			if err != nil {
				return chainhash.Hash{}, err
			}
			hash, err := nextHash()
			if err != nil {
				return chainhash.Hash{}, err
			}
			if matched {
				t.matches = append(t.matches, hash)
			}
			t.setCurrentNode(hash)
			t.up()
			continue
		}

		left := t.getLeftNode()
		switch {
		case left == nil:
			descend, err := nextFlag()
			if err != nil {
				return chainhash.Hash{}, err
			}
			if descend {
				t.left()
				continue
			}
			hash, err := nextHash()
			if err != nil {
				return chainhash.Hash{}, err
			}
			t.setCurrentNode(hash)
			t.up()

		case t.rightExists():
			right := t.getRightNode()
			if right == nil {
				t.right()
				continue
			}
			t.setCurrentNode(HashMerkleBranches(left, right))
			t.up()

		default:
			// The last node of an odd level is paired with itself.
			t.setCurrentNode(HashMerkleBranches(left, left))
			t.up()
		}
	}

	if hashesUsed != len(hashes) {
		str := fmt.Sprintf("%d of %d hashes were not consumed",
			len(hashes)-hashesUsed, len(hashes))
		return chainhash.Hash{}, ruleError(ErrUnusedHashes, str)
	}
	for _, flag := range flags[flagsUsed:] {
		if flag {
			str := fmt.Sprintf("%d flags were not consumed",
				len(flags)-flagsUsed)
			return chainhash.Hash{}, ruleError(ErrUnusedFlags, str)
		}
	}

	return *t.root(), nil
}

// Root returns the root of the tree and whether it is known.
func (t *PartialMerkleTree) Root() (*chainhash.Hash, bool) {
	if t.state != treePopulated {
		return nil, false
	}
	root := *t.root()
	return &root, true
}

// Matches returns the leaves whose flag was set, in tree order.  It is empty
// until the tree has been populated.
func (t *PartialMerkleTree) Matches() []chainhash.Hash {
	return append([]chainhash.Hash(nil), t.matches...)
}

// String returns one line per level, root first.  Known hashes are
// abbreviated and the node the traversal is at is enclosed in asterisks.
func (t *PartialMerkleTree) String() string {
	var sb strings.Builder
	for depth, level := range t.nodes {
		if depth > 0 {
			sb.WriteByte('\n')
		}
		for index, hash := range level {
			if index > 0 {
				sb.WriteString(", ")
			}
			short := "<nil>"
			if hash != nil {
				short = hash.String()[:8] + "..."
			}
			if depth == t.depth && index == t.index {
				short = "*" + short + "*"
			}
			sb.WriteString(short)
		}
	}
	return sb.String()
}

// BytesToBitField expands the flag bytes of a merkle block into one bool per
// bit, least significant bit first.
func BytesToBitField(b []byte) []bool {
	flags := make([]bool, 0, len(b)*8)
	for _, octet := range b {
		for i := uint(0); i < 8; i++ {
			flags = append(flags, octet&(1<<i) != 0)
		}
	}
	return flags
}
