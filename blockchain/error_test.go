// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"errors"
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
		{ErrEmptyTree, "ErrEmptyTree"},
		{ErrMalformedProof, "ErrMalformedProof"},
		{ErrUnusedHashes, "ErrUnusedHashes"},
		{ErrUnusedFlags, "ErrUnusedFlags"},
		{ErrTreePoisoned, "ErrTreePoisoned"},
		{ErrTreePopulated, "ErrTreePopulated"},
		{ErrBadMerkleRoot, "ErrBadMerkleRoot"},
		{ErrUnexpectedDifficulty, "ErrUnexpectedDifficulty"},
		{ErrHighHash, "ErrHighHash"},
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

// TestRuleError tests the error output for the RuleError type.
func TestRuleError(t *testing.T) {
	t.Parallel()

	err := ruleError(ErrHighHash, "block hash too high")
	require.Equal(t, "block hash too high", err.Error())
	require.True(t, IsErrorCode(err, ErrHighHash))
	require.False(t, IsErrorCode(err, ErrUnexpectedDifficulty))

	wrapped := fmt.Errorf("header 1: %w", err)
	require.True(t, IsErrorCode(wrapped, ErrHighHash))

	var rerr RuleError
	require.True(t, errors.As(wrapped, &rerr))
	require.Equal(t, ErrHighHash, rerr.ErrorCode)

	require.False(t, IsErrorCode(errors.New("plain"), ErrHighHash))
	require.False(t, IsErrorCode(nil, ErrHighHash))
}
