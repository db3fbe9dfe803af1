// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ecc

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// PrivKeyBytesLen defines the length in bytes of a serialized private key.
const PrivKeyBytesLen = 32

// PrivateKey is a secp256k1 secret scalar together with its public point.
//
// The arithmetic behind it is plain math/big and is not constant time.  It is
// suitable for validation tooling and tests, not for holding keys where an
// attacker can measure signing time.
type PrivateKey struct {
	secret *big.Int
	pub    *S256Point
}

// NewPrivateKey returns the private key for secret, which must be in
// [1, N-1].
func NewPrivateKey(secret *big.Int) (*PrivateKey, error) {
	if secret.Sign() <= 0 || secret.Cmp(curveN) >= 0 {
		return nil, eccError(ErrInvalidPrivKey, "private key secret "+
			"must be in range [1, N-1]")
	}
	d := new(big.Int).Set(secret)
	return &PrivateKey{secret: d, pub: generator.ScalarMul(d)}, nil
}

// PrivKeyFromBytes returns the private key for a big endian secret.
func PrivKeyFromBytes(b []byte) (*PrivateKey, error) {
	if len(b) > PrivKeyBytesLen {
		str := fmt.Sprintf("private key is %d bytes, want at most %d",
			len(b), PrivKeyBytesLen)
		return nil, eccError(ErrInvalidPrivKey, str)
	}
	return NewPrivateKey(new(big.Int).SetBytes(b))
}

// GeneratePrivateKey returns a new private key drawn from crypto/rand.
func GeneratePrivateKey() (*PrivateKey, error) {
	d, err := randScalar(rand.Reader)
	if err != nil {
		return nil, err
	}
	return NewPrivateKey(d)
}

// randScalar returns a uniformly random integer in [1, N-1].
func randScalar(r io.Reader) (*big.Int, error) {
	k, err := rand.Int(r, new(big.Int).Sub(curveN, bigOne))
	if err != nil {
		return nil, err
	}
	return k.Add(k, bigOne), nil
}

// PubKey returns the public point secret * G.
func (k *PrivateKey) PubKey() *S256Point {
	return k.pub
}

// Secret returns a copy of the secret scalar.
func (k *PrivateKey) Secret() *big.Int {
	return new(big.Int).Set(k.secret)
}

// Serialize returns the secret as a 32 byte big endian number.
func (k *PrivateKey) Serialize() []byte {
	b := make([]byte, PrivKeyBytesLen)
	return k.secret.FillBytes(b)
}

// ToBTCEC converts the key into a btcec private key.
func (k *PrivateKey) ToBTCEC() *btcec.PrivateKey {
	priv, _ := btcec.PrivKeyFromBytes(k.Serialize())
	return priv
}

// Sign signs the message hash z.  The nonce is derived deterministically from
// the key and z per RFC 6979, and the result is in low-S form, so signing the
// same z twice gives the same signature.
func (k *PrivateKey) Sign(z *big.Int) *Signature {
	var hash [32]byte
	new(big.Int).Mod(z, curveN).FillBytes(hash[:])
	keyBytes := k.Serialize()

	for iteration := uint32(0); ; iteration++ {
		nonce := secp256k1.NonceRFC6979(keyBytes, hash[:], nil, nil,
			iteration)
		nb := nonce.Bytes()
		nonce.Zero()
		if sig := k.signWithNonce(z, new(big.Int).SetBytes(nb[:])); sig != nil {
			return sig
		}
	}
}

// SignWithNonceSource signs z with a nonce read from src.  A weak source
// leaks the private key, so Sign should be preferred.
func (k *PrivateKey) SignWithNonceSource(src io.Reader, z *big.Int) (*Signature, error) {
	for {
		nonce, err := randScalar(src)
		if err != nil {
			return nil, err
		}
		if sig := k.signWithNonce(z, nonce); sig != nil {
			return sig, nil
		}
	}
}

// signWithNonce computes s = (z + r*d) / nonce.  It returns nil when the
// nonce produces r == 0 or s == 0 and a new one is needed.
func (k *PrivateKey) signWithNonce(z, nonce *big.Int) *Signature {
	r := generator.ScalarMul(nonce).X()
	r.Mod(r, curveN)
	if r.Sign() == 0 {
		return nil
	}

	kInv := new(big.Int).Exp(nonce, new(big.Int).Sub(curveN, bigTwo), curveN)
	s := new(big.Int).Mul(r, k.secret)
	s.Add(s, z)
	s.Mul(s, kInv)
	s.Mod(s, curveN)
	if s.Sign() == 0 {
		return nil
	}
	if s.Cmp(halfN) > 0 {
		s.Sub(curveN, s)
	}
	return &Signature{R: r, S: s}
}
