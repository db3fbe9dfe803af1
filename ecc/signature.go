// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ecc

import (
	"fmt"
	"math/big"
)

const (
	// minSigLen is the length of a DER signature with one byte R and S:
	// 0x30 + <1-byte> + 0x02 + 0x01 + <byte> + 0x02 + 0x01 + <byte>
	minSigLen = 8

	// maxSigLen is the length of a DER signature with 33 byte R and S.
	maxSigLen = 72

	asn1SequenceID = 0x30
	asn1IntegerID  = 0x02
)

// Signature is an ECDSA signature over secp256k1.
type Signature struct {
	R *big.Int
	S *big.Int
}

// NewSignature returns the signature (r, s).
func NewSignature(r, s *big.Int) *Signature {
	return &Signature{R: new(big.Int).Set(r), S: new(big.Int).Set(s)}
}

// Equal returns whether both signatures have the same R and S.
func (sig *Signature) Equal(other *Signature) bool {
	return sig.R.Cmp(other.R) == 0 && sig.S.Cmp(other.S) == 0
}

// String returns the signature as Signature(r,s) in hex.
func (sig *Signature) String() string {
	return fmt.Sprintf("Signature(%x,%x)", sig.R, sig.S)
}

// IsLowS returns whether S is at most half the group order.
func (sig *Signature) IsLowS() bool {
	return sig.S.Cmp(halfN) <= 0
}

// Normalize returns the low-S form of the signature.  Since (r, s) and
// (r, N-s) are both valid, only the low form is produced when signing.
func (sig *Signature) Normalize() *Signature {
	if sig.IsLowS() {
		return NewSignature(sig.R, sig.S)
	}
	return &Signature{
		R: new(big.Int).Set(sig.R),
		S: new(big.Int).Sub(curveN, sig.S),
	}
}

// Serialize returns the signature in strict DER format.  The returned bytes
// do not include the hash type byte appended in Bitcoin scripts.
//
// 0x30 <length> 0x02 <length r> r 0x02 <length s> s
func (sig *Signature) Serialize() []byte {
	rb := canonicalizeInt(sig.R)
	sb := canonicalizeInt(sig.S)

	length := 6 + len(rb) + len(sb)
	b := make([]byte, length)
	b[0] = asn1SequenceID
	b[1] = byte(length - 2)
	b[2] = asn1IntegerID
	b[3] = byte(len(rb))
	offset := copy(b[4:], rb) + 4
	b[offset] = asn1IntegerID
	b[offset+1] = byte(len(sb))
	copy(b[offset+2:], sb)
	return b
}

// ParseDERSignature parses a strict DER encoded signature.  R and S must be
// minimally encoded positive integers in [1, N-1].
func ParseDERSignature(sigStr []byte) (*Signature, error) {
	if len(sigStr) < minSigLen {
		str := fmt.Sprintf("malformed signature: too short: %d < %d",
			len(sigStr), minSigLen)
		return nil, eccError(ErrSigTooShort, str)
	}
	if len(sigStr) > maxSigLen {
		str := fmt.Sprintf("malformed signature: too long: %d > %d",
			len(sigStr), maxSigLen)
		return nil, eccError(ErrSigTooLong, str)
	}
	if sigStr[0] != asn1SequenceID {
		str := fmt.Sprintf("malformed signature: format has wrong type: "+
			"%#x", sigStr[0])
		return nil, eccError(ErrSigInvalidSeqID, str)
	}
	if int(sigStr[1]) != len(sigStr)-2 {
		str := fmt.Sprintf("malformed signature: bad length: %d != %d",
			sigStr[1], len(sigStr)-2)
		return nil, eccError(ErrSigInvalidDataLen, str)
	}

	index := 2
	r, index, err := parseSigInt(sigStr, index, "R")
	if err != nil {
		return nil, err
	}
	s, index, err := parseSigInt(sigStr, index, "S")
	if err != nil {
		return nil, err
	}
	if index != len(sigStr) {
		str := fmt.Sprintf("malformed signature: bad final length %d != %d",
			index, len(sigStr))
		return nil, eccError(ErrSigInvalidDataLen, str)
	}

	return &Signature{R: r, S: s}, nil
}

// parseSigInt parses the integer named name starting at index and returns it
// along with the index of the next unread byte.
func parseSigInt(sigStr []byte, index int, name string) (*big.Int, int, error) {
	if index+2 > len(sigStr) {
		str := fmt.Sprintf("malformed signature: missing %s", name)
		return nil, 0, eccError(ErrSigInvalidLen, str)
	}
	if sigStr[index] != asn1IntegerID {
		str := fmt.Sprintf("malformed signature: %s integer marker: "+
			"%#x != %#x", name, sigStr[index], asn1IntegerID)
		return nil, 0, eccError(ErrSigInvalidIntID, str)
	}
	index++

	n := int(sigStr[index])
	index++
	if n == 0 || index+n > len(sigStr) {
		str := fmt.Sprintf("malformed signature: bogus %s length %d", name,
			n)
		return nil, 0, eccError(ErrSigInvalidLen, str)
	}

	b := sigStr[index : index+n]
	switch {
	case b[0]&0x80 != 0:
		str := fmt.Sprintf("signature %s is negative", name)
		return nil, 0, eccError(ErrSigNegative, str)
	case len(b) > 1 && b[0] == 0x00 && b[1]&0x80 == 0:
		str := fmt.Sprintf("signature %s is excessively padded", name)
		return nil, 0, eccError(ErrSigExcessivelyPadded, str)
	}

	v := new(big.Int).SetBytes(b)
	if v.Sign() == 0 || v.Cmp(curveN) >= 0 {
		str := fmt.Sprintf("signature %s is not in range [1, N-1]", name)
		return nil, 0, eccError(ErrSigRange, str)
	}
	return v, index + n, nil
}

// canonicalizeInt returns the bytes for the passed big integer adjusted as
// necessary to ensure that a big-endian encoded integer can't possibly be
// misinterpreted as a negative number.  A zero value encodes as one byte.
func canonicalizeInt(val *big.Int) []byte {
	b := val.Bytes()
	if len(b) == 0 {
		b = []byte{0x00}
	}
	if b[0]&0x80 != 0 {
		paddedBytes := make([]byte, len(b)+1)
		copy(paddedBytes[1:], b)
		b = paddedBytes
	}
	return b
}
