// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ecc

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

const testPrime = 223

// testCurvePoint returns (x, y) on y^2 = x^3 + 7 over F223.  Passing a
// negative x returns the point at infinity.
func testCurvePoint(t *testing.T, x, y int64) *Point {
	t.Helper()
	a, b := fe(t, 0, testPrime), fe(t, 7, testPrime)
	if x < 0 {
		p, err := NewPoint(nil, nil, a, b)
		require.NoError(t, err)
		return p
	}
	p, err := NewPoint(fe(t, x, testPrime), fe(t, y, testPrime), a, b)
	require.NoError(t, err)
	return p
}

func TestPointOnCurve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		x, y  int64
		valid bool
	}{
		{192, 105, true},
		{17, 56, true},
		{1, 193, true},
		{200, 119, false},
		{42, 99, false},
	}

	a, b := fe(t, 0, testPrime), fe(t, 7, testPrime)
	for _, test := range tests {
		_, err := NewPoint(fe(t, test.x, testPrime),
			fe(t, test.y, testPrime), a, b)
		if test.valid {
			require.NoErrorf(t, err, "(%d, %d)", test.x, test.y)
		} else {
			require.Truef(t, IsErrorCode(err, ErrNotOnCurve),
				"(%d, %d): unexpected error %v", test.x, test.y, err)
		}
	}

	_, err := NewPoint(fe(t, 192, testPrime), nil, a, b)
	require.True(t, IsErrorCode(err, ErrInvalidPoint))
}

func TestPointAdd(t *testing.T) {
	t.Parallel()

	tests := []struct {
		x1, y1, x2, y2 int64
		x3, y3         int64
	}{
		{170, 142, 60, 139, 220, 181},
		{47, 71, 17, 56, 215, 68},
		{143, 98, 76, 66, 47, 71},
		// Inverse points sum to infinity.
		{47, 71, 47, 152, -1, 0},
	}

	t.Logf("Running %d tests", len(tests))
	for i, test := range tests {
		p1 := testCurvePoint(t, test.x1, test.y1)
		p2 := testCurvePoint(t, test.x2, test.y2)
		want := testCurvePoint(t, test.x3, test.y3)

		got, err := p1.Add(p2)
		require.NoErrorf(t, err, "test #%d", i)
		require.Truef(t, got.Equal(want), "test #%d\n got: %v want: %v",
			i, got, want)
	}
}

func TestPointIdentity(t *testing.T) {
	t.Parallel()

	inf := testCurvePoint(t, -1, 0)
	p := testCurvePoint(t, 192, 105)

	got, err := p.Add(inf)
	require.NoError(t, err)
	require.True(t, got.Equal(p))

	got, err = inf.Add(p)
	require.NoError(t, err)
	require.True(t, got.Equal(p))

	got, err = inf.Add(inf)
	require.NoError(t, err)
	require.True(t, got.IsInfinity())

	got, err = p.ScalarMul(big.NewInt(0))
	require.NoError(t, err)
	require.True(t, got.IsInfinity())
	require.Equal(t, "Point(infinity)", got.String())
}

func TestPointVerticalTangent(t *testing.T) {
	t.Parallel()

	// y^2 = x^3 + 7 over F7 contains (0, 0), whose tangent is vertical.
	a, b := fe(t, 0, 7), fe(t, 0, 7)
	p, err := NewPoint(fe(t, 0, 7), fe(t, 0, 7), a, b)
	require.NoError(t, err)

	got, err := p.Add(p)
	require.NoError(t, err)
	require.True(t, got.IsInfinity())
}

func TestPointCurveMismatch(t *testing.T) {
	t.Parallel()

	p := testCurvePoint(t, 192, 105)
	a, b := fe(t, 0, testPrime), fe(t, 5, testPrime)
	other, err := NewPoint(nil, nil, a, b)
	require.NoError(t, err)

	_, err = p.Add(other)
	require.True(t, IsErrorCode(err, ErrCurveMismatch))
}

func TestPointScalarMul(t *testing.T) {
	t.Parallel()

	tests := []struct {
		k      int64
		x1, y1 int64
		x2, y2 int64
	}{
		{2, 192, 105, 49, 71},
		{2, 143, 98, 64, 168},
		{2, 47, 71, 36, 111},
		{4, 47, 71, 194, 51},
		{8, 47, 71, 116, 55},
		{21, 47, 71, -1, 0},
	}

	for i, test := range tests {
		p := testCurvePoint(t, test.x1, test.y1)
		want := testCurvePoint(t, test.x2, test.y2)

		got, err := p.ScalarMul(big.NewInt(test.k))
		require.NoErrorf(t, err, "test #%d", i)
		require.Truef(t, got.Equal(want), "test #%d\n got: %v want: %v",
			i, got, want)

		// Repeated addition agrees with double-and-add.
		sum := testCurvePoint(t, -1, 0)
		for j := int64(0); j < test.k; j++ {
			sum, err = sum.Add(p)
			require.NoError(t, err)
		}
		require.Truef(t, sum.Equal(want), "test #%d repeated add", i)
	}

	_, err := testCurvePoint(t, 47, 71).ScalarMul(big.NewInt(-1))
	require.True(t, IsErrorCode(err, ErrNegativeScalar))
}

// TestPointGroupOrder walks the subgroup generated by (15, 86), which has
// order 7.
func TestPointGroupOrder(t *testing.T) {
	t.Parallel()

	g := testCurvePoint(t, 15, 86)
	want := [][2]int64{
		{15, 86}, {139, 86}, {69, 137}, {69, 86}, {139, 137}, {15, 137},
	}

	current := g
	for i, w := range want {
		require.Truef(t, current.Equal(testCurvePoint(t, w[0], w[1])),
			"multiple %d: got %v", i+1, current)
		var err error
		current, err = current.Add(g)
		require.NoError(t, err)
	}
	require.True(t, current.IsInfinity())
}

func TestPointGroupLaws(t *testing.T) {
	t.Parallel()

	points := []*Point{
		testCurvePoint(t, 192, 105),
		testCurvePoint(t, 17, 56),
		testCurvePoint(t, 1, 193),
		testCurvePoint(t, 47, 71),
		testCurvePoint(t, -1, 0),
	}

	add := func(p, q *Point) *Point {
		r, err := p.Add(q)
		require.NoError(t, err)
		return r
	}

	for _, p := range points {
		for _, q := range points {
			require.True(t, add(p, q).Equal(add(q, p)), "%v + %v", p, q)
			for _, r := range points {
				require.True(t, add(add(p, q), r).Equal(add(p, add(q, r))),
					"(%v + %v) + %v", p, q, r)
			}
		}
	}
}
