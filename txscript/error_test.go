// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestErrorCodeStringer tests the stringized output for the ErrorCode type.
func TestErrorCodeStringer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   ErrorCode
		want string
	}{
		{ErrInternal, "ErrInternal"},
		{ErrMalformedPush, "ErrMalformedPush"},
		{ErrScriptLength, "ErrScriptLength"},
		{ErrElementTooBig, "ErrElementTooBig"},
		{ErrEvalFalse, "ErrEvalFalse"},
		{ErrEmptyStack, "ErrEmptyStack"},
		{ErrEarlyReturn, "ErrEarlyReturn"},
		{ErrVerify, "ErrVerify"},
		{ErrEqualVerify, "ErrEqualVerify"},
		{ErrNumEqualVerify, "ErrNumEqualVerify"},
		{ErrCheckSigVerify, "ErrCheckSigVerify"},
		{ErrCheckMultiSigVerify, "ErrCheckMultiSigVerify"},
		{ErrP2SHMismatch, "ErrP2SHMismatch"},
		{ErrDisabledOpcode, "ErrDisabledOpcode"},
		{ErrReservedOpcode, "ErrReservedOpcode"},
		{ErrUnbalancedConditional, "ErrUnbalancedConditional"},
		{ErrInvalidStackOperation, "ErrInvalidStackOperation"},
		{ErrInvalidAltStackOperation, "ErrInvalidAltStackOperation"},
		{ErrNumberTooBig, "ErrNumberTooBig"},
		{ErrNegativeLockTime, "ErrNegativeLockTime"},
		{ErrUnsatisfiedLockTime, "ErrUnsatisfiedLockTime"},
		{ErrInvalidPubKeyCount, "ErrInvalidPubKeyCount"},
		{ErrInvalidSignatureCount, "ErrInvalidSignatureCount"},
		{ErrTooManyOperations, "ErrTooManyOperations"},
		{ErrStackOverflow, "ErrStackOverflow"},
		{0xffff, "Unknown ErrorCode (65535)"},
	}

	// Detect additional error codes that don't have the stringer added.
	if len(tests)-1 != int(numErrorCodes) {
		t.Errorf("It appears an error code was added without adding an " +
			"associated stringer test")
	}

	t.Logf("Running %d tests", len(tests))
	for _, test := range tests {
		require.Equal(t, test.want, test.in.String())
	}
}

func TestErrorClasses(t *testing.T) {
	t.Parallel()

	for c := ErrorCode(0); c < numErrorCodes; c++ {
		decode := c == ErrMalformedPush || c == ErrScriptLength ||
			c == ErrElementTooBig
		require.Equal(t, decode, c.IsDecodeFailure(), c.String())
		require.Equal(t, !decode && c != ErrInternal, c.IsEvalFailure(),
			c.String())
	}
}

func TestIsErrorCode(t *testing.T) {
	t.Parallel()

	err := scriptError(ErrVerify, "OP_VERIFY failed")
	require.Equal(t, "OP_VERIFY failed", err.Error())
	require.True(t, IsErrorCode(err, ErrVerify))
	require.False(t, IsErrorCode(err, ErrEvalFalse))

	wrapped := fmt.Errorf("input 0: %w", err)
	require.True(t, IsErrorCode(wrapped, ErrVerify))
	require.False(t, IsErrorCode(fmt.Errorf("plain"), ErrVerify))
}
