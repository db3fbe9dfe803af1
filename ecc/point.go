// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ecc

import (
	"fmt"
	"math/big"
)

// fieldCalc chains field operations and keeps the first error so curve
// formulas can be written without checking every intermediate step.
type fieldCalc struct {
	err error
}

func (c *fieldCalc) add(a, b *FieldElement) *FieldElement {
	if c.err != nil {
		return nil
	}
	r, err := a.Add(b)
	c.err = err
	return r
}

func (c *fieldCalc) sub(a, b *FieldElement) *FieldElement {
	if c.err != nil {
		return nil
	}
	r, err := a.Sub(b)
	c.err = err
	return r
}

func (c *fieldCalc) mul(a, b *FieldElement) *FieldElement {
	if c.err != nil {
		return nil
	}
	r, err := a.Mul(b)
	c.err = err
	return r
}

func (c *fieldCalc) div(a, b *FieldElement) *FieldElement {
	if c.err != nil {
		return nil
	}
	r, err := a.Div(b)
	c.err = err
	return r
}

// Point is a point on the short Weierstrass curve y^2 = x^3 + a*x + b over a
// prime field.  The point at infinity, the group identity, has nil
// coordinates.  Points are immutable.
type Point struct {
	x, y *FieldElement
	a, b *FieldElement
}

// NewPoint returns the point (x, y) on the curve defined by a and b.  Passing
// nil for both coordinates returns the point at infinity.  An error is returned
// when the point is not on the curve.
func NewPoint(x, y, a, b *FieldElement) (*Point, error) {
	if x == nil && y == nil {
		return &Point{a: a, b: b}, nil
	}
	if x == nil || y == nil {
		return nil, eccError(ErrInvalidPoint, "point must have both "+
			"coordinates or neither")
	}

	var c fieldCalc
	lhs := c.mul(y, y)
	rhs := c.add(c.add(c.mul(c.mul(x, x), x), c.mul(a, x)), b)
	if c.err != nil {
		return nil, c.err
	}
	if !lhs.Equal(rhs) {
		str := fmt.Sprintf("(%v, %v) is not on the curve", x.num, y.num)
		return nil, eccError(ErrNotOnCurve, str)
	}
	return &Point{x: x, y: y, a: a, b: b}, nil
}

// X returns the x coordinate or nil for the point at infinity.
func (p *Point) X() *FieldElement {
	return p.x
}

// Y returns the y coordinate or nil for the point at infinity.
func (p *Point) Y() *FieldElement {
	return p.y
}

// IsInfinity returns whether p is the identity element.
func (p *Point) IsInfinity() bool {
	return p.x == nil
}

func (p *Point) infinity() *Point {
	return &Point{a: p.a, b: p.b}
}

func (p *Point) sameCurve(other *Point) bool {
	return p.a.Equal(other.a) && p.b.Equal(other.b)
}

// Equal returns whether both points have the same coordinates and curve.
func (p *Point) Equal(other *Point) bool {
	return p.x.Equal(other.x) && p.y.Equal(other.y) && p.sameCurve(other)
}

// String returns a human-readable form of the point.
func (p *Point) String() string {
	if p.IsInfinity() {
		return "Point(infinity)"
	}
	return fmt.Sprintf("Point(%v,%v)_%v_%v FieldElement(%v)", p.x.num,
		p.y.num, p.a.num, p.b.num, p.x.prime)
}

// Add returns p + other using the elliptic curve group law.
func (p *Point) Add(other *Point) (*Point, error) {
	if !p.sameCurve(other) {
		str := fmt.Sprintf("points %v and %v are not on the same curve",
			p, other)
		return nil, eccError(ErrCurveMismatch, str)
	}

	switch {
	case p.IsInfinity():
		return other, nil
	case other.IsInfinity():
		return p, nil
	}

	// Vertical line through two inverse points.
	if p.x.Equal(other.x) && !p.y.Equal(other.y) {
		return p.infinity(), nil
	}

	var c fieldCalc
	var s *FieldElement
	switch {
	case !p.x.Equal(other.x):
		s = c.div(c.sub(other.y, p.y), c.sub(other.x, p.x))

	case p.y.IsZero():
		// Tangent is vertical.
		return p.infinity(), nil

	default:
		num := c.add(c.mul(p.x, p.x).ScalarMul(bigThree), p.a)
		s = c.div(num, p.y.ScalarMul(bigTwo))
	}

	x3 := c.sub(c.sub(c.mul(s, s), p.x), other.x)
	y3 := c.sub(c.mul(s, c.sub(p.x, x3)), p.y)
	if c.err != nil {
		return nil, c.err
	}
	return &Point{x: x3, y: y3, a: p.a, b: p.b}, nil
}

// ScalarMul returns k * p using double-and-add over the bits of k.  The
// running time depends on k, so it must not be used where timing leaks of k
// matter.
func (p *Point) ScalarMul(k *big.Int) (*Point, error) {
	if k.Sign() < 0 {
		return nil, eccError(ErrNegativeScalar, "cannot multiply a "+
			"point by a negative scalar")
	}

	current := p
	result := p.infinity()
	var err error
	for i := 0; i < k.BitLen(); i++ {
		if k.Bit(i) == 1 {
			if result, err = result.Add(current); err != nil {
				return nil, err
			}
		}
		if current, err = current.Add(current); err != nil {
			return nil, err
		}
	}
	return result, nil
}
