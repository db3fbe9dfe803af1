// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ecc

import (
	"fmt"
	"math/big"
)

// fromHex converts the passed hex string into a big integer.  It is only
// meant for the hard-coded constants below, so it panics on bad input.
func fromHex(s string) *big.Int {
	r, ok := new(big.Int).SetString(s, 16)
	if !ok {
		panic("invalid hex in source file: " + s)
	}
	return r
}

// secp256k1 parameters.  See [SECG] section 2.7.1.  None of these are ever
// modified after initialization.
var (
	fieldP = fromHex("FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEFFFFFC2F")
	curveN = fromHex("FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEBAAEDCE6AF48A03BBFD25E8CD0364141")
	halfN  = new(big.Int).Rsh(curveN, 1)

	s256A = &FieldElement{num: big.NewInt(0), prime: fieldP}
	s256B = &FieldElement{num: big.NewInt(7), prime: fieldP}

	generator = mustS256Point(
		fromHex("79BE667EF9DCBBAC55A06295CE870B07029BFCDB2DCE28D959F2815B16F81798"),
		fromHex("483ADA7726A3C4655DA4FBFC0E1108A8FD17B448A68554199C47D08FFB10D4B8"),
	)
)

// FieldPrime returns the prime P of the secp256k1 base field.
func FieldPrime() *big.Int {
	return new(big.Int).Set(fieldP)
}

// CurveOrder returns the order N of the secp256k1 group.
func CurveOrder() *big.Int {
	return new(big.Int).Set(curveN)
}

// NewS256FieldElement returns num as an element of the secp256k1 base field.
func NewS256FieldElement(num *big.Int) (*FieldElement, error) {
	return NewFieldElement(num, fieldP)
}

// S256Point is a point on secp256k1, y^2 = x^3 + 7 over the field of order P.
type S256Point struct {
	point *Point
}

// NewS256Point returns the secp256k1 point with the given affine coordinates.
// An error is returned when a coordinate is out of range or the point is not
// on the curve.
func NewS256Point(x, y *big.Int) (*S256Point, error) {
	fx, err := NewS256FieldElement(x)
	if err != nil {
		return nil, err
	}
	fy, err := NewS256FieldElement(y)
	if err != nil {
		return nil, err
	}
	p, err := NewPoint(fx, fy, s256A, s256B)
	if err != nil {
		return nil, err
	}
	return &S256Point{point: p}, nil
}

func mustS256Point(x, y *big.Int) *S256Point {
	p, err := NewS256Point(x, y)
	if err != nil {
		panic(err)
	}
	return p
}

// Generator returns the secp256k1 base point G.
func Generator() *S256Point {
	return generator
}

// S256Infinity returns the identity element of the secp256k1 group.
func S256Infinity() *S256Point {
	return &S256Point{point: &Point{a: s256A, b: s256B}}
}

// Point returns the underlying generic curve point.
func (p *S256Point) Point() *Point {
	return p.point
}

// X returns a copy of the x coordinate, or nil for the point at infinity.
func (p *S256Point) X() *big.Int {
	if p.point.IsInfinity() {
		return nil
	}
	return p.point.x.Num()
}

// Y returns a copy of the y coordinate, or nil for the point at infinity.
func (p *S256Point) Y() *big.Int {
	if p.point.IsInfinity() {
		return nil
	}
	return p.point.y.Num()
}

// IsInfinity returns whether p is the identity element.
func (p *S256Point) IsInfinity() bool {
	return p.point.IsInfinity()
}

// Equal returns whether both points are the same.
func (p *S256Point) Equal(other *S256Point) bool {
	return p.point.Equal(other.point)
}

// String returns the point as S256Point(x, y) with 64 digit hex coordinates.
func (p *S256Point) String() string {
	if p.IsInfinity() {
		return "S256Point(infinity)"
	}
	return fmt.Sprintf("S256Point(%064x, %064x)", p.point.x.num,
		p.point.y.num)
}

// Add returns p + other.
func (p *S256Point) Add(other *S256Point) *S256Point {
	sum, err := p.point.Add(other.point)
	if err != nil {
		// Both operands are on secp256k1 by construction.
		panic(fmt.Sprintf("secp256k1 addition failed: %v", err))
	}
	return &S256Point{point: sum}
}

// ScalarMul returns k * p.  The scalar is reduced modulo the group order
// first, so any integer, including a negative one, is accepted.
func (p *S256Point) ScalarMul(k *big.Int) *S256Point {
	coef := new(big.Int).Mod(k, curveN)
	prod, err := p.point.ScalarMul(coef)
	if err != nil {
		panic(fmt.Sprintf("secp256k1 scalar multiplication failed: %v",
			err))
	}
	return &S256Point{point: prod}
}

// Verify returns whether sig is a valid signature of the message hash z by
// the private key whose public key is p.  Both (r, s) and (r, N-s) verify.
func (p *S256Point) Verify(z *big.Int, sig *Signature) bool {
	if sig == nil || p.IsInfinity() {
		return false
	}
	if sig.R.Sign() <= 0 || sig.R.Cmp(curveN) >= 0 {
		return false
	}
	if sig.S.Sign() <= 0 || sig.S.Cmp(curveN) >= 0 {
		return false
	}

	// s^-1 by Fermat since N is prime.
	sInv := new(big.Int).Exp(sig.S, new(big.Int).Sub(curveN, bigTwo), curveN)
	u := new(big.Int).Mul(z, sInv)
	u.Mod(u, curveN)
	v := new(big.Int).Mul(sig.R, sInv)
	v.Mod(v, curveN)

	total := generator.ScalarMul(u).Add(p.ScalarMul(v))
	if total.IsInfinity() {
		return false
	}
	x := total.point.x.Num()
	return x.Mod(x, curveN).Cmp(sig.R) == 0
}
