// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ecc

import (
	"fmt"
	"math/big"
)

var (
	bigZero  = big.NewInt(0)
	bigOne   = big.NewInt(1)
	bigTwo   = big.NewInt(2)
	bigThree = big.NewInt(3)
	bigFour  = big.NewInt(4)
)

// FieldElement is an integer in the range [0, prime) with arithmetic performed
// modulo prime.  It is immutable; every operation returns a new element and the
// receiver and arguments are never modified, so elements may be shared between
// goroutines freely.
type FieldElement struct {
	num   *big.Int
	prime *big.Int
}

// NewFieldElement returns the element num of the field of order prime.  An
// error is returned when num is outside [0, prime).
func NewFieldElement(num, prime *big.Int) (*FieldElement, error) {
	if num.Sign() < 0 || num.Cmp(prime) >= 0 {
		str := fmt.Sprintf("num %v not in field range 0 to %v", num,
			new(big.Int).Sub(prime, bigOne))
		return nil, eccError(ErrFieldRange, str)
	}
	return &FieldElement{
		num:   new(big.Int).Set(num),
		prime: new(big.Int).Set(prime),
	}, nil
}

// newFieldElementMod reduces num into the field without range checks.
func newFieldElementMod(num, prime *big.Int) *FieldElement {
	return &FieldElement{num: new(big.Int).Mod(num, prime), prime: prime}
}

// Num returns a copy of the element value.
func (e *FieldElement) Num() *big.Int {
	return new(big.Int).Set(e.num)
}

// Prime returns a copy of the field order.
func (e *FieldElement) Prime() *big.Int {
	return new(big.Int).Set(e.prime)
}

// IsZero returns whether the element is the additive identity.
func (e *FieldElement) IsZero() bool {
	return e.num.Sign() == 0
}

// Equal returns whether both elements have the same value and field.  A nil
// element is only equal to another nil element.
func (e *FieldElement) Equal(other *FieldElement) bool {
	if e == nil || other == nil {
		return e == other
	}
	return e.num.Cmp(other.num) == 0 && e.prime.Cmp(other.prime) == 0
}

// String returns the element as FieldElement_<prime>(<num>).
func (e *FieldElement) String() string {
	return fmt.Sprintf("FieldElement_%v(%v)", e.prime, e.num)
}

func (e *FieldElement) checkField(other *FieldElement, op string) error {
	if e.prime.Cmp(other.prime) != 0 {
		str := fmt.Sprintf("cannot %s elements of fields %v and %v", op,
			e.prime, other.prime)
		return eccError(ErrFieldMismatch, str)
	}
	return nil
}

// Add returns e + other.
func (e *FieldElement) Add(other *FieldElement) (*FieldElement, error) {
	if err := e.checkField(other, "add"); err != nil {
		return nil, err
	}
	sum := new(big.Int).Add(e.num, other.num)
	return newFieldElementMod(sum, e.prime), nil
}

// Sub returns e - other.
func (e *FieldElement) Sub(other *FieldElement) (*FieldElement, error) {
	if err := e.checkField(other, "subtract"); err != nil {
		return nil, err
	}
	diff := new(big.Int).Sub(e.num, other.num)
	return newFieldElementMod(diff, e.prime), nil
}

// Mul returns e * other.
func (e *FieldElement) Mul(other *FieldElement) (*FieldElement, error) {
	if err := e.checkField(other, "multiply"); err != nil {
		return nil, err
	}
	prod := new(big.Int).Mul(e.num, other.num)
	return newFieldElementMod(prod, e.prime), nil
}

// Pow returns e raised to exp.  The exponent is first reduced into
// [0, prime-1) using Fermat's little theorem, so negative exponents yield
// powers of the inverse.
func (e *FieldElement) Pow(exp *big.Int) *FieldElement {
	order := new(big.Int).Sub(e.prime, bigOne)
	n := new(big.Int).Mod(exp, order)
	return &FieldElement{
		num:   new(big.Int).Exp(e.num, n, e.prime),
		prime: e.prime,
	}
}

// Div returns e / other, computed as e * other^(prime-2).
func (e *FieldElement) Div(other *FieldElement) (*FieldElement, error) {
	if err := e.checkField(other, "divide"); err != nil {
		return nil, err
	}
	if other.IsZero() {
		return nil, eccError(ErrDivideByZero, "division by the zero "+
			"field element")
	}
	inv := new(big.Int).Exp(other.num, new(big.Int).Sub(e.prime, bigTwo),
		e.prime)
	return newFieldElementMod(inv.Mul(inv, e.num), e.prime), nil
}

// ScalarMul returns k * e where k is an ordinary integer.
func (e *FieldElement) ScalarMul(k *big.Int) *FieldElement {
	prod := new(big.Int).Mod(k, e.prime)
	return newFieldElementMod(prod.Mul(prod, e.num), e.prime)
}

// Sqrt returns a square root of e computed as e^((prime+1)/4).  This only
// works for primes congruent to 3 mod 4, which includes the secp256k1 prime.
// The result is only meaningful when e is a quadratic residue, so callers that
// cannot guarantee that must check the result squares back to e.
func (e *FieldElement) Sqrt() (*FieldElement, error) {
	if new(big.Int).Mod(e.prime, bigFour).Cmp(bigThree) != 0 {
		str := fmt.Sprintf("no (p+1)/4 square root in field %v", e.prime)
		return nil, eccError(ErrFieldNoSqrt, str)
	}
	exp := new(big.Int).Add(e.prime, bigOne)
	exp.Rsh(exp, 2)
	return &FieldElement{
		num:   new(big.Int).Exp(e.num, exp, e.prime),
		prime: e.prime,
	}, nil
}
