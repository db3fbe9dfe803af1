// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ecc

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewPrivateKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		secret *big.Int
		valid  bool
	}{
		{"one", big.NewInt(1), true},
		{"N-1", new(big.Int).Sub(CurveOrder(), big.NewInt(1)), true},
		{"zero", big.NewInt(0), false},
		{"negative", big.NewInt(-5), false},
		{"N", CurveOrder(), false},
	}

	for _, test := range tests {
		priv, err := NewPrivateKey(test.secret)
		if !test.valid {
			require.True(t, IsErrorCode(err, ErrInvalidPrivKey), test.name)
			continue
		}
		require.NoError(t, err, test.name)
		require.True(t, priv.PubKey().Equal(Generator().ScalarMul(test.secret)),
			test.name)
		require.Zero(t, priv.Secret().Cmp(test.secret), test.name)
	}
}

func TestPrivKeyFromBytes(t *testing.T) {
	t.Parallel()

	priv, err := NewPrivateKey(big.NewInt(1234567))
	require.NoError(t, err)

	ser := priv.Serialize()
	require.Len(t, ser, PrivKeyBytesLen)

	back, err := PrivKeyFromBytes(ser)
	require.NoError(t, err)
	require.True(t, back.PubKey().Equal(priv.PubKey()))

	// Short encodings are zero extended.
	short, err := PrivKeyFromBytes([]byte{0x12, 0xd6, 0x87})
	require.NoError(t, err)
	require.True(t, short.PubKey().Equal(priv.PubKey()))

	_, err = PrivKeyFromBytes(bytes.Repeat([]byte{0x01}, 33))
	require.True(t, IsErrorCode(err, ErrInvalidPrivKey))
}

func TestSignRoundTrip(t *testing.T) {
	t.Parallel()

	for i := 0; i < 5; i++ {
		priv, err := GeneratePrivateKey()
		require.NoError(t, err)

		z := new(big.Int).SetBytes(bytes.Repeat([]byte{byte(i + 1)}, 32))
		sig := priv.Sign(z)
		require.True(t, priv.PubKey().Verify(z, sig))

		der := sig.Serialize()
		parsed, err := ParseDERSignature(der)
		require.NoError(t, err)
		require.True(t, priv.PubKey().Verify(z, parsed))

		other, err := GeneratePrivateKey()
		require.NoError(t, err)
		require.False(t, other.PubKey().Verify(z, sig))
	}
}
