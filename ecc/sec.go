// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ecc

import (
	"fmt"
	"math/big"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
)

const (
	// PubKeyBytesLenCompressed is the length of a compressed SEC point.
	PubKeyBytesLenCompressed = 33

	// PubKeyBytesLenUncompressed is the length of an uncompressed SEC point.
	PubKeyBytesLenUncompressed = 65

	pubkeyCompressed   byte = 0x2 // y_bit + x coord
	pubkeyUncompressed byte = 0x4 // x coord + y coord
)

func isOdd(a *big.Int) bool {
	return a.Bit(0) == 1
}

// SEC serializes the point in the SEC format: 0x04 || x || y when
// uncompressed, 0x02 || x or 0x03 || x, depending on the parity of y, when
// compressed.  Coordinates are 32 byte big endian.  The point at infinity has
// no encoding and yields nil.
func (p *S256Point) SEC(compressed bool) []byte {
	if p.IsInfinity() {
		return nil
	}
	x, y := p.point.x.num, p.point.y.num

	if compressed {
		b := make([]byte, PubKeyBytesLenCompressed)
		b[0] = pubkeyCompressed
		if isOdd(y) {
			b[0] |= 0x1
		}
		x.FillBytes(b[1:33])
		return b
	}

	b := make([]byte, PubKeyBytesLenUncompressed)
	b[0] = pubkeyUncompressed
	x.FillBytes(b[1:33])
	y.FillBytes(b[33:])
	return b
}

// Hash160 returns RIPEMD160(SHA256(sec)) of the SEC encoding of p.
func (p *S256Point) Hash160(compressed bool) []byte {
	return btcutil.Hash160(p.SEC(compressed))
}

// ParseSEC parses a SEC encoded secp256k1 point.  The compressed form is
// decompressed by computing sqrt(x^3 + 7) and choosing the root whose parity
// matches the prefix.  An x with no square root, which would otherwise yield
// a point off the curve, is rejected.
func ParseSEC(sec []byte) (*S256Point, error) {
	if len(sec) == 0 {
		return nil, eccError(ErrInvalidSECLength, "empty SEC encoding")
	}

	format := sec[0]
	ybit := (format & 0x1) == 0x1
	format &= ^byte(0x1)

	switch {
	case sec[0] == pubkeyUncompressed:
		if len(sec) != PubKeyBytesLenUncompressed {
			str := fmt.Sprintf("uncompressed SEC encoding has length "+
				"%d, want %d", len(sec), PubKeyBytesLenUncompressed)
			return nil, eccError(ErrInvalidSECLength, str)
		}
		x := new(big.Int).SetBytes(sec[1:33])
		y := new(big.Int).SetBytes(sec[33:])
		return NewS256Point(x, y)

	case format == pubkeyCompressed:
		if len(sec) != PubKeyBytesLenCompressed {
			str := fmt.Sprintf("compressed SEC encoding has length "+
				"%d, want %d", len(sec), PubKeyBytesLenCompressed)
			return nil, eccError(ErrInvalidSECLength, str)
		}
		x, err := NewS256FieldElement(new(big.Int).SetBytes(sec[1:33]))
		if err != nil {
			return nil, err
		}

		// y^2 = x^3 + 7
		var c fieldCalc
		alpha := c.add(c.mul(c.mul(x, x), x), s256B)
		if c.err != nil {
			return nil, c.err
		}
		beta, err := alpha.Sqrt()
		if err != nil {
			return nil, err
		}
		if !c.mul(beta, beta).Equal(alpha) {
			str := fmt.Sprintf("x %064x has no point on the curve", x.num)
			return nil, eccError(ErrNotOnCurve, str)
		}

		y := beta.num
		if isOdd(y) != ybit {
			y = new(big.Int).Sub(fieldP, y)
		}
		return NewS256Point(x.num, y)
	}

	str := fmt.Sprintf("invalid SEC prefix 0x%02x", sec[0])
	return nil, eccError(ErrInvalidSECPrefix, str)
}

// ToBTCEC converts the point into a btcec public key.
func (p *S256Point) ToBTCEC() (*btcec.PublicKey, error) {
	if p.IsInfinity() {
		return nil, eccError(ErrInvalidPoint, "point at infinity has "+
			"no public key form")
	}
	return btcec.ParsePubKey(p.SEC(true))
}

// S256PointFromBTCEC converts a btcec public key into a point.
func S256PointFromBTCEC(pub *btcec.PublicKey) (*S256Point, error) {
	return ParseSEC(pub.SerializeUncompressed())
}
