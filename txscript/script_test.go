// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"bytes"
	"encoding/hex"
	"testing"

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

// mustParse parses a varint prefixed script given as hex.
func mustParse(t *testing.T, s string) *Script {
	t.Helper()
	script, err := ParseScript(bytes.NewReader(hexToBytes(s)))
	require.NoError(t, err)
	return script
}

// A signature script spending a pay-to-pubkey-hash output: a DER signature
// with its hash type byte followed by a compressed public key.
const p2pkhSigScriptHex = "6a47304402207899531a52d59a6de200179928ca900254a36b" +
	"8dff8bb75f5f5d71b1cdc26125022008b422690b8461cb52c3cc30330b23d57435187" +
	"2b7c361e9aae3649071c1a7160121035d5c93d9ac96881f19ba1f686f15f009ded7c6" +
	"2efe85a872e6a19b43c15a2937"

func TestParseScript(t *testing.T) {
	t.Parallel()

	script := mustParse(t, p2pkhSigScriptHex)
	cmds := script.Commands()
	require.Len(t, cmds, 2)
	require.True(t, cmds[0].IsPush())
	require.Equal(t, "304402207899531a52d59a6de200179928ca900254a36b8dff8bb7"+
		"5f5f5d71b1cdc26125022008b422690b8461cb52c3cc30330b23d574351872b7c"+
		"361e9aae3649071c1a71601", hex.EncodeToString(cmds[0].Data()))
	require.Equal(t, "035d5c93d9ac96881f19ba1f686f15f009ded7c62efe85a872e6a1"+
		"9b43c15a2937", hex.EncodeToString(cmds[1].Data()))

	serialized, err := script.Serialize()
	require.NoError(t, err)
	require.Equal(t, p2pkhSigScriptHex, hex.EncodeToString(serialized))
}

func TestParseScriptOpcodes(t *testing.T) {
	t.Parallel()

	// OP_DUP OP_HASH160 <20 bytes> OP_EQUALVERIFY OP_CHECKSIG
	script := mustParse(t, "1976a914bc3b654dca7e56b04dca18f2566cdaf02e8d9ada88ac")
	cmds := script.Commands()
	require.Len(t, cmds, 5)
	require.False(t, cmds[0].IsPush())
	require.Equal(t, byte(OP_DUP), cmds[0].Opcode())
	require.Equal(t, byte(OP_HASH160), cmds[1].Opcode())
	require.Len(t, cmds[2].Data(), 20)
	require.Equal(t, byte(OP_EQUALVERIFY), cmds[3].Opcode())
	require.Equal(t, byte(OP_CHECKSIG), cmds[4].Opcode())

	require.Equal(t, "OP_DUP OP_HASH160 bc3b654dca7e56b04dca18f2566cdaf02e8"+
		"d9ada OP_EQUALVERIFY OP_CHECKSIG", script.String())
}

// TestPushEncoding checks the length encoding chosen for each push size and
// that every one parses back to the same script.
func TestPushEncoding(t *testing.T) {
	t.Parallel()

	tests := []struct {
		size   int
		prefix []byte
	}{
		{1, []byte{0x01}},
		{20, []byte{0x14}},
		{75, []byte{0x4b}},
		{76, []byte{OP_PUSHDATA1, 0x4c}},
		{255, []byte{OP_PUSHDATA1, 0xff}},
		{256, []byte{OP_PUSHDATA2, 0x00, 0x01}},
		{520, []byte{OP_PUSHDATA2, 0x08, 0x02}},
	}

	t.Logf("Running %d tests", len(tests))
	for _, test := range tests {
		data := bytes.Repeat([]byte{0x49}, test.size)
		script := NewScript(Push(data), Op(OP_DROP))

		raw, err := script.RawSerialize()
		require.NoError(t, err)
		want := append(append(append([]byte{}, test.prefix...), data...),
			OP_DROP)
		require.Equalf(t, want, raw, "size %d", test.size)

		serialized, err := script.Serialize()
		require.NoError(t, err)
		parsed, err := ParseScript(bytes.NewReader(serialized))
		require.NoError(t, err)
		require.Truef(t, parsed.Equal(script), "size %d", test.size)
	}

	_, err := NewScript(Push(make([]byte, 521))).Serialize()
	require.True(t, IsErrorCode(err, ErrElementTooBig))
}

func TestSerializeMaxScriptSize(t *testing.T) {
	t.Parallel()

	// 19 full pushes of 523 bytes each plus 63 single byte opcodes make
	// exactly MaxScriptSize bytes.
	element := bytes.Repeat([]byte{0x49}, MaxScriptElementSize)
	cmds := make([]Command, 0, 19+63)
	for i := 0; i < 19; i++ {
		cmds = append(cmds, Push(element))
	}
	for i := 0; i < 63; i++ {
		cmds = append(cmds, Op(OP_NOP))
	}
	script := NewScript(cmds...)

	serialized, err := script.Serialize()
	require.NoError(t, err)
	parsed, err := ParseScript(bytes.NewReader(serialized))
	require.NoError(t, err)
	require.True(t, parsed.Equal(script))

	// One more byte, or one more full push, can not be parsed back so it
	// is not serialized either.
	tests := []*Script{
		script.Concat(NewScript(Op(OP_NOP))),
		script.Concat(NewScript(Push(element))),
	}
	t.Logf("Running %d tests", len(tests))
	for _, test := range tests {
		_, err := test.Serialize()
		require.True(t, IsErrorCode(err, ErrScriptLength), "got %v", err)
	}
}

func TestPushEmpty(t *testing.T) {
	t.Parallel()

	require.True(t, Push(nil).Equal(Op(OP_0)))
	require.True(t, Push([]byte{}).Equal(Op(OP_0)))

	script := NewScript(Push(nil))
	raw, err := script.RawSerialize()
	require.NoError(t, err)
	require.Equal(t, []byte{OP_0}, raw)
}

func TestParseScriptErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		hex  string
		code ErrorCode
	}{
		{"empty input", "", ErrMalformedPush},
		{"short script", "0376a9", ErrMalformedPush},
		{"push past end", "03030102", ErrScriptLength},
		{"truncated pushdata1", "014c", ErrMalformedPush},
		{"truncated pushdata2", "024d01", ErrMalformedPush},
		{"pushdata1 past end", "034c0501", ErrScriptLength},
		{"oversized declared length", "fd1127", ErrScriptLength},
	}

	for _, test := range tests {
		_, err := ParseScript(bytes.NewReader(hexToBytes(test.hex)))
		require.Truef(t, IsErrorCode(err, test.code),
			"%s: got %v, want %v", test.name, err, test.code)
	}

	// A push above the element limit can not come from Serialize.
	raw := append([]byte{OP_PUSHDATA2, 0x09, 0x02}, make([]byte, 521)...)
	_, err := ParseRawScript(raw)
	require.True(t, IsErrorCode(err, ErrElementTooBig))
}

func TestParseEmptyScript(t *testing.T) {
	t.Parallel()

	script := mustParse(t, "00")
	require.Equal(t, 0, script.Len())
	require.Equal(t, "", script.String())

	serialized, err := script.Serialize()
	require.NoError(t, err)
	require.Equal(t, []byte{0x00}, serialized)
}

func TestScriptConcat(t *testing.T) {
	t.Parallel()

	sigScript := NewScript(Op(OP_1))
	pkScript := NewScript(Op(OP_2), Op(OP_ADD))
	combined := sigScript.Concat(pkScript)

	require.Equal(t, "OP_1 OP_2 OP_ADD", combined.String())
	require.Equal(t, 1, sigScript.Len())
	require.Equal(t, 2, pkScript.Len())
}

func TestScriptImmutable(t *testing.T) {
	t.Parallel()

	data := []byte{1, 2, 3}
	script := NewScript(Push(data))
	data[0] = 9

	cmds := script.Commands()
	require.Equal(t, []byte{1, 2, 3}, cmds[0].Data())

	cmds[0] = Op(OP_NOP)
	require.True(t, script.Commands()[0].IsPush())
}

func TestOpcodeNames(t *testing.T) {
	t.Parallel()

	tests := []struct {
		op   byte
		name string
	}{
		{OP_0, "OP_0"},
		{OP_1, "OP_1"},
		{OP_16, "OP_16"},
		{OP_DATA_20, "OP_DATA_20"},
		{OP_CHECKLOCKTIMEVERIFY, "OP_CHECKLOCKTIMEVERIFY"},
		{OP_CHECKSEQUENCEVERIFY, "OP_CHECKSEQUENCEVERIFY"},
		{OP_NOP10, "OP_NOP10"},
		{0xba, "OP_UNKNOWN186"},
		{0xff, "OP_UNKNOWN255"},
	}

	for _, test := range tests {
		require.Equal(t, test.name, Op(test.op).String())
	}
}
