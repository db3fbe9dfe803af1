// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"fmt"
	"math"
)

const (
	// maxInt32 and minInt32 bound the values Int32 can return.
	maxInt32 = math.MaxInt32
	minInt32 = math.MinInt32

	// defaultScriptNumLen is the longest byte sequence accepted as a
	// numeric operand by the arithmetic opcodes.
	defaultScriptNumLen = 4

	// lockTimeScriptNumLen is the operand length accepted by
	// OP_CHECKLOCKTIMEVERIFY and OP_CHECKSEQUENCEVERIFY, which need to
	// represent unsigned 32-bit values.
	lockTimeScriptNumLen = 5
)

// scriptNum is a number as seen by the script engine.  On the stack numbers
// are little endian with the high bit of the last byte holding the sign.
// Zero is the empty byte sequence.
//
// Arithmetic results may overflow the 4 byte operand range; that is allowed
// as long as the result is not used as an operand again.
type scriptNum int64

// Bytes returns the minimal stack encoding of n.
//
// Example encodings:
//
//	   127 -> [0x7f]
//	  -127 -> [0xff]
//	   128 -> [0x80 0x00]
//	  -128 -> [0x80 0x80]
//	     0 -> []
func (n scriptNum) Bytes() []byte {
	if n == 0 {
		return nil
	}

	negative := n < 0
	abs := uint64(n)
	if negative {
		abs = uint64(-n)
	}

	result := make([]byte, 0, 9)
	for abs > 0 {
		result = append(result, byte(abs&0xff))
		abs >>= 8
	}

	// The high bit of the last byte carries the sign, so add a byte when
	// it is already taken by the magnitude.
	if result[len(result)-1]&0x80 != 0 {
		extra := byte(0x00)
		if negative {
			extra = 0x80
		}
		result = append(result, extra)
	} else if negative {
		result[len(result)-1] |= 0x80
	}

	return result
}

// Int32 returns n clamped to the int32 range.
func (n scriptNum) Int32() int32 {
	if n > maxInt32 {
		return maxInt32
	}
	if n < minInt32 {
		return minInt32
	}
	return int32(n)
}

// makeScriptNum decodes v as a script number.  Operands longer than
// maxLen bytes are rejected with ErrNumberTooBig.  Non-minimal encodings,
// including negative zero, are accepted.
func makeScriptNum(v []byte, maxLen int) (scriptNum, error) {
	if len(v) > maxLen {
		str := fmt.Sprintf("numeric value encoded as %x is %d bytes "+
			"which exceeds the max allowed of %d", v, len(v), maxLen)
		return 0, scriptError(ErrNumberTooBig, str)
	}
	if len(v) == 0 {
		return 0, nil
	}

	var result int64
	for i, val := range v {
		result |= int64(val) << uint8(8*i)
	}

	// A set sign bit means the number is negative; clear it from the
	// magnitude before negating.
	if v[len(v)-1]&0x80 != 0 {
		result &= ^(int64(0x80) << uint8(8*(len(v)-1)))
		return scriptNum(-result), nil
	}

	return scriptNum(result), nil
}

// asBool reports whether t is true as a script boolean.  Any byte sequence
// that is not some form of zero, including negative zero, is true.
func asBool(t []byte) bool {
	for i := range t {
		if t[i] != 0 {
			// Negative zero is still zero.
			if i == len(t)-1 && t[i] == 0x80 {
				return false
			}
			return true
		}
	}
	return false
}

// fromBool converts a boolean into the byte sequence pushed for it.
func fromBool(v bool) []byte {
	if v {
		return []byte{1}
	}
	return nil
}
