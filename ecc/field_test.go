// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ecc

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

// fe is a test helper that builds a field element from small integers.
func fe(t *testing.T, num, prime int64) *FieldElement {
	t.Helper()
	e, err := NewFieldElement(big.NewInt(num), big.NewInt(prime))
	require.NoError(t, err)
	return e
}

func TestNewFieldElementRange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		num, prime int64
		valid      bool
	}{
		{0, 31, true},
		{30, 31, true},
		{31, 31, false},
		{-1, 31, false},
		{100, 31, false},
	}

	for i, test := range tests {
		_, err := NewFieldElement(big.NewInt(test.num),
			big.NewInt(test.prime))
		if test.valid {
			require.NoErrorf(t, err, "test #%d", i)
			continue
		}
		require.Truef(t, IsErrorCode(err, ErrFieldRange),
			"test #%d: unexpected error %v", i, err)
	}
}

func TestFieldArithmetic(t *testing.T) {
	t.Parallel()

	type binop func(a, b *FieldElement) (*FieldElement, error)
	add := func(a, b *FieldElement) (*FieldElement, error) { return a.Add(b) }
	sub := func(a, b *FieldElement) (*FieldElement, error) { return a.Sub(b) }
	mul := func(a, b *FieldElement) (*FieldElement, error) { return a.Mul(b) }
	div := func(a, b *FieldElement) (*FieldElement, error) { return a.Div(b) }

	tests := []struct {
		name  string
		op    binop
		prime int64
		a, b  int64
		want  int64
	}{
		{"add", add, 57, 44, 33, 20},
		{"add wrap", add, 57, 17, 42, 2},
		{"sub", sub, 57, 9, 29, 37},
		{"sub zero", sub, 57, 52, 52, 0},
		{"mul", mul, 97, 95, 45, 7},
		{"mul by zero", mul, 97, 95, 0, 0},
		{"div", div, 31, 3, 24, 4},
		{"div by one", div, 31, 17, 1, 17},
	}

	t.Logf("Running %d tests", len(tests))
	for _, test := range tests {
		a := fe(t, test.a, test.prime)
		b := fe(t, test.b, test.prime)
		got, err := test.op(a, b)
		require.NoErrorf(t, err, "%s", test.name)
		require.Truef(t, got.Equal(fe(t, test.want, test.prime)),
			"%s: got %v, want %d", test.name, got, test.want)
	}
}

func TestFieldChains(t *testing.T) {
	t.Parallel()

	// 17 + 42 + 49 in F57
	s, err := fe(t, 17, 57).Add(fe(t, 42, 57))
	require.NoError(t, err)
	s, err = s.Add(fe(t, 49, 57))
	require.NoError(t, err)
	require.Equal(t, int64(51), s.Num().Int64())

	// 52 - 30 - 38 in F57
	d, err := fe(t, 52, 57).Sub(fe(t, 30, 57))
	require.NoError(t, err)
	d, err = d.Sub(fe(t, 38, 57))
	require.NoError(t, err)
	require.Equal(t, int64(41), d.Num().Int64())

	// 95 * 45 * 31 and 17 * 13 * 19 * 44 in F97
	m, err := fe(t, 95, 97).Mul(fe(t, 45, 97))
	require.NoError(t, err)
	m, err = m.Mul(fe(t, 31, 97))
	require.NoError(t, err)
	require.Equal(t, int64(23), m.Num().Int64())

	m, err = fe(t, 17, 97).Mul(fe(t, 13, 97))
	require.NoError(t, err)
	m, err = m.Mul(fe(t, 19, 97))
	require.NoError(t, err)
	m, err = m.Mul(fe(t, 44, 97))
	require.NoError(t, err)
	require.Equal(t, int64(68), m.Num().Int64())

	// 12^7 * 77^49 in F97
	m, err = fe(t, 12, 97).Pow(big.NewInt(7)).Mul(fe(t, 77, 97).Pow(big.NewInt(49)))
	require.NoError(t, err)
	require.Equal(t, int64(63), m.Num().Int64())
}

func TestFieldPow(t *testing.T) {
	t.Parallel()

	tests := []struct {
		num, prime, exp int64
		want            int64
	}{
		{17, 31, 3, 15},
		{17, 31, -3, 29},
		{4, 31, -4, 4},
		{5, 31, 0, 1},
		{5, 31, 30, 1},
		{5, 31, 31, 5},
	}

	for i, test := range tests {
		got := fe(t, test.num, test.prime).Pow(big.NewInt(test.exp))
		require.Equalf(t, test.want, got.Num().Int64(), "test #%d", i)
	}

	p, err := fe(t, 4, 31).Pow(big.NewInt(-4)).Mul(fe(t, 11, 31))
	require.NoError(t, err)
	require.Equal(t, int64(13), p.Num().Int64())
}

func TestFieldErrors(t *testing.T) {
	t.Parallel()

	a := fe(t, 2, 31)
	b := fe(t, 2, 37)

	_, err := a.Add(b)
	require.True(t, IsErrorCode(err, ErrFieldMismatch))
	_, err = a.Sub(b)
	require.True(t, IsErrorCode(err, ErrFieldMismatch))
	_, err = a.Mul(b)
	require.True(t, IsErrorCode(err, ErrFieldMismatch))
	_, err = a.Div(b)
	require.True(t, IsErrorCode(err, ErrFieldMismatch))

	_, err = a.Div(fe(t, 0, 31))
	require.True(t, IsErrorCode(err, ErrDivideByZero))

	_, err = fe(t, 4, 13).Sqrt()
	require.True(t, IsErrorCode(err, ErrFieldNoSqrt))
}

// TestFieldIdentities checks (a+b)-b == a and a*b^-1*b == a over every pair
// of a small field.
func TestFieldIdentities(t *testing.T) {
	t.Parallel()

	const prime = 19
	for i := int64(0); i < prime; i++ {
		for j := int64(0); j < prime; j++ {
			a, b := fe(t, i, prime), fe(t, j, prime)

			sum, err := a.Add(b)
			require.NoError(t, err)
			back, err := sum.Sub(b)
			require.NoError(t, err)
			require.True(t, back.Equal(a))

			if b.IsZero() {
				continue
			}
			q, err := a.Div(b)
			require.NoError(t, err)
			back, err = q.Mul(b)
			require.NoError(t, err)
			require.True(t, back.Equal(a))
		}
	}
}

func TestFieldScalarMul(t *testing.T) {
	t.Parallel()

	a := fe(t, 7, 31)
	got := a.ScalarMul(big.NewInt(5))
	require.Equal(t, int64(4), got.Num().Int64())

	// Repeated addition gives the same result.
	sum := fe(t, 0, 31)
	for i := 0; i < 5; i++ {
		var err error
		sum, err = sum.Add(a)
		require.NoError(t, err)
	}
	require.True(t, sum.Equal(got))

	// Scalars larger than the prime and negative scalars are reduced.
	require.True(t, a.ScalarMul(big.NewInt(36)).Equal(got))
	require.Equal(t, int64(24), a.ScalarMul(big.NewInt(-1)).Num().Int64())
}

func TestFieldSqrt(t *testing.T) {
	t.Parallel()

	for i := int64(1); i < 31; i++ {
		a := fe(t, i, 31)
		sq, err := a.Mul(a)
		require.NoError(t, err)

		root, err := sq.Sqrt()
		require.NoError(t, err)
		back, err := root.Mul(root)
		require.NoError(t, err)
		require.Truef(t, back.Equal(sq), "sqrt(%v) = %v", sq, root)
	}

	// Secp256k1 field.
	x, err := NewS256FieldElement(big.NewInt(12345))
	require.NoError(t, err)
	sq, err := x.Mul(x)
	require.NoError(t, err)
	root, err := sq.Sqrt()
	require.NoError(t, err)
	require.True(t, root.Equal(x) || root.Num().Cmp(
		new(big.Int).Sub(FieldPrime(), x.Num())) == 0)
}

func TestFieldImmutable(t *testing.T) {
	t.Parallel()

	num := big.NewInt(5)
	a, err := NewFieldElement(num, big.NewInt(31))
	require.NoError(t, err)
	num.SetInt64(6)
	require.Equal(t, int64(5), a.Num().Int64())

	b := fe(t, 9, 31)
	_, err = a.Add(b)
	require.NoError(t, err)
	_ = a.Pow(big.NewInt(3))
	require.Equal(t, int64(5), a.Num().Int64())
	require.Equal(t, int64(9), b.Num().Int64())

	a.Num().SetInt64(0)
	require.Equal(t, int64(5), a.Num().Int64())
	require.Equal(t, "FieldElement_31(5)", a.String())
}
