// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/btcsuite/btcd/wire"
)

const (
	// MaxScriptSize is the largest script length ParseScript accepts and
	// Serialize produces.
	MaxScriptSize = 10000

	// MaxScriptElementSize is the largest data push a script may contain.
	MaxScriptElementSize = 520

	// maxDirectPush is the largest push encoded with its length as the
	// opcode byte itself.
	maxDirectPush = OP_DATA_75
)

// Command is a single element of a script: either an opcode or a data push.
// The zero value is OP_0.
type Command struct {
	op   byte
	data []byte
	push bool
}

// Op returns the command for the given opcode.
func Op(op byte) Command {
	return Command{op: op}
}

// Push returns a command pushing a copy of data.  Pushing nothing is the
// same as OP_0, which is how such a push is serialized.
func Push(data []byte) Command {
	if len(data) == 0 {
		return Command{op: OP_0}
	}
	return Command{data: append([]byte(nil), data...), push: true}
}

// IsPush returns whether the command pushes data.
func (c Command) IsPush() bool {
	return c.push
}

// Opcode returns the opcode value.  It is only meaningful when IsPush is
// false.
func (c Command) Opcode() byte {
	return c.op
}

// Data returns the pushed bytes, or nil for an opcode.  The returned slice
// must not be modified.
func (c Command) Data() []byte {
	return c.data
}

// Equal reports whether two commands are identical.
func (c Command) Equal(other Command) bool {
	if c.push != other.push {
		return false
	}
	if c.push {
		return bytes.Equal(c.data, other.data)
	}
	return c.op == other.op
}

// String returns the opcode name or the hex of the pushed data.
func (c Command) String() string {
	if c.push {
		return hex.EncodeToString(c.data)
	}
	return opcodeArray[c.op].name
}

// isOpcode reports whether c is the given opcode.
func (c Command) isOpcode(op byte) bool {
	return !c.push && c.op == op
}

// Script is an immutable sequence of commands.
type Script struct {
	cmds []Command
}

// NewScript returns a script made of the given commands.
func NewScript(cmds ...Command) *Script {
	return &Script{cmds: append([]Command(nil), cmds...)}
}

// Commands returns a copy of the script's commands.
func (s *Script) Commands() []Command {
	return append([]Command(nil), s.cmds...)
}

// Len returns the number of commands.
func (s *Script) Len() int {
	return len(s.cmds)
}

// Concat returns a new script running s followed by other.  This is how a
// signature script is combined with the public key script it spends.
func (s *Script) Concat(other *Script) *Script {
	cmds := make([]Command, 0, len(s.cmds)+len(other.cmds))
	cmds = append(cmds, s.cmds...)
	cmds = append(cmds, other.cmds...)
	return &Script{cmds: cmds}
}

// Equal reports whether both scripts hold the same commands.
func (s *Script) Equal(other *Script) bool {
	if len(s.cmds) != len(other.cmds) {
		return false
	}
	for i := range s.cmds {
		if !s.cmds[i].Equal(other.cmds[i]) {
			return false
		}
	}
	return true
}

// String returns the one line disassembly of the script.
func (s *Script) String() string {
	parts := make([]string, len(s.cmds))
	for i, cmd := range s.cmds {
		parts[i] = cmd.String()
	}
	return strings.Join(parts, " ")
}

// Evaluate runs the script against the message hash z.  See Evaluate.
func (s *Script) Evaluate(z *big.Int) bool {
	return Evaluate(s, z)
}

// ParseScript reads a script serialized as a varint length followed by the
// encoded commands.
func ParseScript(r io.Reader) (*Script, error) {
	length, err := wire.ReadVarInt(r, 0)
	if err != nil {
		return nil, scriptError(ErrMalformedPush,
			fmt.Sprintf("unable to read script length: %v", err))
	}
	if length > MaxScriptSize {
		str := fmt.Sprintf("script length %d exceeds the max allowed "+
			"of %d", length, MaxScriptSize)
		return nil, scriptError(ErrScriptLength, str)
	}

	raw := make([]byte, length)
	if _, err := io.ReadFull(r, raw); err != nil {
		str := fmt.Sprintf("script declares %d bytes but reading failed: "+
			"%v", length, err)
		return nil, scriptError(ErrMalformedPush, str)
	}
	return ParseRawScript(raw)
}

// ParseRawScript decodes script bytes without a length prefix.
func ParseRawScript(raw []byte) (*Script, error) {
	var cmds []Command
	for offset := 0; offset < len(raw); {
		op := raw[offset]
		offset++

		var dataLen int
		switch {
		case op >= OP_DATA_1 && op <= maxDirectPush:
			dataLen = int(op)

		case op == OP_PUSHDATA1:
			if offset+1 > len(raw) {
				return nil, malformedPush(op, offset, len(raw))
			}
			dataLen = int(raw[offset])
			offset++

		case op == OP_PUSHDATA2:
			if offset+2 > len(raw) {
				return nil, malformedPush(op, offset, len(raw))
			}
			dataLen = int(binary.LittleEndian.Uint16(raw[offset:]))
			offset += 2

		default:
			cmds = append(cmds, Op(op))
			continue
		}

		if offset+dataLen > len(raw) {
			str := fmt.Sprintf("push of %d bytes at offset %d runs past "+
				"the end of a %d byte script", dataLen, offset, len(raw))
			return nil, scriptError(ErrScriptLength, str)
		}
		if dataLen > MaxScriptElementSize {
			str := fmt.Sprintf("push of %d bytes exceeds the max allowed "+
				"of %d", dataLen, MaxScriptElementSize)
			return nil, scriptError(ErrElementTooBig, str)
		}

		cmds = append(cmds, Push(raw[offset:offset+dataLen]))
		offset += dataLen
	}
	return &Script{cmds: cmds}, nil
}

// malformedPush returns the error for a push whose length prefix is cut off.
func malformedPush(op byte, offset, size int) error {
	str := fmt.Sprintf("%s at offset %d has a truncated length in a %d "+
		"byte script", opcodeArray[op].name, offset-1, size)
	return scriptError(ErrMalformedPush, str)
}

// RawSerialize encodes the commands without a length prefix.  Pushes of up
// to 75 bytes use the length as the opcode, longer ones use OP_PUSHDATA1 or
// OP_PUSHDATA2.
func (s *Script) RawSerialize() ([]byte, error) {
	var buf bytes.Buffer
	for _, cmd := range s.cmds {
		if !cmd.push {
			buf.WriteByte(cmd.op)
			continue
		}

		n := len(cmd.data)
		switch {
		case n <= maxDirectPush:
			buf.WriteByte(byte(n))
		case n <= 0xff:
			buf.WriteByte(OP_PUSHDATA1)
			buf.WriteByte(byte(n))
		case n <= MaxScriptElementSize:
			var l [2]byte
			binary.LittleEndian.PutUint16(l[:], uint16(n))
			buf.WriteByte(OP_PUSHDATA2)
			buf.Write(l[:])
		default:
			str := fmt.Sprintf("push of %d bytes exceeds the max "+
				"allowed of %d", n, MaxScriptElementSize)
			return nil, scriptError(ErrElementTooBig, str)
		}
		buf.Write(cmd.data)
	}
	return buf.Bytes(), nil
}

// Serialize encodes the script with its varint length prefix, the form read
// by ParseScript.  Scripts longer than MaxScriptSize are rejected since they
// could not be parsed back.
func (s *Script) Serialize() ([]byte, error) {
	raw, err := s.RawSerialize()
	if err != nil {
		return nil, err
	}
	if len(raw) > MaxScriptSize {
		str := fmt.Sprintf("script length %d exceeds the max allowed "+
			"of %d", len(raw), MaxScriptSize)
		return nil, scriptError(ErrScriptLength, str)
	}

	var buf bytes.Buffer
	buf.Grow(wire.VarIntSerializeSize(uint64(len(raw))) + len(raw))
	if err := wire.WriteVarInt(&buf, 0, uint64(len(raw))); err != nil {
		return nil, err
	}
	buf.Write(raw)
	return buf.Bytes(), nil
}
