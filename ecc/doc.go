// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package ecc implements finite field and elliptic curve arithmetic with
math/big, specialized to the secp256k1 curve used by Bitcoin.

It provides generic prime field elements and short Weierstrass points, the
secp256k1 group with its generator, ECDSA signing and verification, SEC point
encoding and strict DER signatures.

None of the arithmetic in this package is constant time.  It exists for
validating scripts and proofs, and for tooling, not for guarding secrets
against side channel attacks.  Signing uses RFC 6979 deterministic nonces.

Errors

Errors returned by this package are of type ecc.Error, which carries an
ErrorCode identifying the failure, so callers can distinguish a point that is
off the curve from a malformed encoding with IsErrorCode.
*/
package ecc
