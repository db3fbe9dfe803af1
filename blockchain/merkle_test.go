// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/stretchr/testify/require"
)

// hexToBytes converts the passed hex string into bytes and will panic if there
// is an error.  This is only provided for the hard-coded constants so errors in
// the source code can be detected. It will only (and must only) be called with
// hard-coded values.
func hexToBytes(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic("invalid hex in source file: " + s)
	}
	return b
}

// newHashFromStr converts the passed big-endian hex string into a
// chainhash.Hash.  It only differs from the one available in chainhash in that
// it panics on an error since it will only (and must only) be called with
// hard-coded, and therefore known good, hashes.
func newHashFromStr(hexStr string) chainhash.Hash {
	hash, err := chainhash.NewHashFromStr(hexStr)
	if err != nil {
		panic(err)
	}
	return *hash
}

// testnetMerkleBlockHex is a merkle block from testnet3 proving one of the
// 3519 transactions of its block.
const testnetMerkleBlockHex = "00000020df3b053dc46f162a9b00c7f0d5124e2676d47b" +
	"be7c5d0793a500000000000000ef445fef2ed495c275892206ca533e7411907971013a" +
	"b83e3b47bd0d692d14d4dc7c835b67d8001ac157e670bf0d00000aba412a0d1480e370" +
	"173072c9562becffe87aa661c1e4a6dbc305d38ec5dc088a7cf92e6458aca7b32edae8" +
	"18f9c2c98c37e06bf72ae0ce80649a38655ee1e27d34d9421d940b16732f24b94023e9" +
	"d572a7f9ab8023434a4feb532d2adfc8c2c2158785d1bd04eb99df2e86c54bc13e1398" +
	"62897217400def5d72c280222c4cbaee7261831e1550dbb8fa82853e9fe506fc5fda3f" +
	"7b919d8fe74b6282f92763cef8e625f977af7c8619c32a369b832bc2d051ecd9c73c51" +
	"e76370ceabd4f25097c256597fa898d404ed53425de608ac6bfe426f6e2bb457f1c554" +
	"866eb69dcb8d6bf6f880e9a59b3cd053e6c7060eeacaacf4dac6697dac20e4bd3f38a2" +
	"ea2543d1ab7953e3430790a9f81e1c67f5b58c825acf46bd02848384eebe9af917274c" +
	"dfbb1a28a5d58a23a17977def0de10d644258d9c54f886d47d293a411cb6226103b556" +
	"35"

func decodeMerkleBlock(t *testing.T, s string) *wire.MsgMerkleBlock {
	t.Helper()
	var msg wire.MsgMerkleBlock
	err := msg.BtcDecode(bytes.NewReader(hexToBytes(s)), wire.ProtocolVersion,
		wire.BaseEncoding)
	require.NoError(t, err)
	return &msg
}

func TestHashMerkleBranches(t *testing.T) {
	t.Parallel()

	left := chainhash.DoubleHashH([]byte{0})
	right := chainhash.DoubleHashH([]byte{1})
	want := chainhash.DoubleHashH(append(left[:], right[:]...))
	require.Equal(t, want, HashMerkleBranches(&left, &right))
	require.NotEqual(t, want, HashMerkleBranches(&right, &left))
}

func TestMerkleParentLevel(t *testing.T) {
	t.Parallel()

	h := leafHashes(3)
	level := MerkleParentLevel(h)
	require.Len(t, level, 2)
	require.Equal(t, HashMerkleBranches(&h[0], &h[1]), level[0])
	require.Equal(t, HashMerkleBranches(&h[2], &h[2]), level[1])

	require.Empty(t, MerkleParentLevel(nil))
}

func TestCalcMerkleRoot(t *testing.T) {
	t.Parallel()

	require.Equal(t, chainhash.Hash{}, CalcMerkleRoot(nil))

	h := leafHashes(1)
	require.Equal(t, h[0], CalcMerkleRoot(h))

	// The genesis block has only its coinbase.
	genesis := chaincfg.MainNetParams.GenesisBlock
	coinbase := genesis.Transactions[0].TxHash()
	require.True(t, ValidateMerkleRoot(&genesis.Header,
		[]chainhash.Hash{coinbase}))
	require.False(t, ValidateMerkleRoot(&genesis.Header, leafHashes(2)))
}

func TestValidateMerkleBlock(t *testing.T) {
	t.Parallel()

	msg := decodeMerkleBlock(t, testnetMerkleBlockHex)
	require.Equal(t, uint32(3519), msg.Transactions)

	root, err := ValidateMerkleBlock(msg)
	require.NoError(t, err)
	require.Equal(t, msg.Header.MerkleRoot, root)

	matches, err := MerkleBlockMatches(msg)
	require.NoError(t, err)
	want := newHashFromStr("6122b61c413a297dd486f8549c8d2544d610def0de7779" +
		"a1238ad5a5281abbdf")
	require.Equal(t, []chainhash.Hash{want}, matches)

	require.NoError(t, CheckProofOfWork(&msg.Header,
		chaincfg.TestNet3Params.PowLimit))
	require.Equal(t, "00000000000000cac712b726e4326e596170574c01a16001692510"+
		"c44025eb30", msg.Header.BlockHash().String())
}

func TestValidateMerkleBlockErrors(t *testing.T) {
	t.Parallel()

	badRoot := decodeMerkleBlock(t, testnetMerkleBlockHex)
	badRoot.Header.MerkleRoot[0] ^= 0x01

	extraHash := decodeMerkleBlock(t, testnetMerkleBlockHex)
	extra := chainhash.DoubleHashH([]byte("extra"))
	extraHash.Hashes = append(extraHash.Hashes, &extra)

	missingHash := decodeMerkleBlock(t, testnetMerkleBlockHex)
	missingHash.Hashes = missingHash.Hashes[:len(missingHash.Hashes)-1]

	nilHash := decodeMerkleBlock(t, testnetMerkleBlockHex)
	nilHash.Hashes[3] = nil

	extraFlag := decodeMerkleBlock(t, testnetMerkleBlockHex)
	extraFlag.Flags = append(extraFlag.Flags, 0x01)

	empty := decodeMerkleBlock(t, testnetMerkleBlockHex)
	empty.Transactions = 0

	huge := decodeMerkleBlock(t, testnetMerkleBlockHex)
	huge.Transactions = 0xffffffff

	tests := []struct {
		name string
		msg  *wire.MsgMerkleBlock
		code ErrorCode
	}{
		{"bad root", badRoot, ErrBadMerkleRoot},
		{"extra hash", extraHash, ErrUnusedHashes},
		{"missing hash", missingHash, ErrMalformedProof},
		{"nil hash", nilHash, ErrMalformedProof},
		{"extra flag", extraFlag, ErrUnusedFlags},
		{"no transactions", empty, ErrEmptyTree},
		{"too many transactions", huge, ErrMalformedProof},
	}

	t.Logf("Running %d tests", len(tests))
	for _, test := range tests {
		_, err := ValidateMerkleBlock(test.msg)
		require.Truef(t, IsErrorCode(err, test.code), "%s: got %v, want %v",
			test.name, err, test.code)

		_, err = MerkleBlockMatches(test.msg)
		require.Truef(t, IsErrorCode(err, test.code), "%s: got %v, want %v",
			test.name, err, test.code)
	}
}
