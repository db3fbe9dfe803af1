// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"errors"
	"fmt"
)

// ErrorCode identifies a kind of error.
type ErrorCode int

// These constants are used to identify a specific RuleError.
const (
	// ErrEmptyTree indicates a partial merkle tree was requested for zero
	// leaves.
	ErrEmptyTree ErrorCode = iota

	// ErrMalformedProof indicates the flags or hashes of a partial merkle
	// proof ran out before the root could be computed.
	ErrMalformedProof

	// ErrUnusedHashes indicates hashes were left over after the root of a
	// partial merkle tree was computed.
	ErrUnusedHashes

	// ErrUnusedFlags indicates a set flag was left over after the root of a
	// partial merkle tree was computed.
	ErrUnusedFlags

	// ErrTreePoisoned indicates a partial merkle tree that failed to
	// populate was used again.
	ErrTreePoisoned

	// ErrTreePopulated indicates a partial merkle tree was populated a
	// second time.
	ErrTreePopulated

	// ErrBadMerkleRoot indicates the computed merkle root does not match
	// the one committed to by the block header.
	ErrBadMerkleRoot

	// ErrUnexpectedDifficulty indicates the difficulty bits of a header are
	// out of range.
	ErrUnexpectedDifficulty

	// ErrHighHash indicates the header hash is above the target claimed by
	// its difficulty bits.
	ErrHighHash

	// numErrorCodes is the maximum error code number used in tests.
	numErrorCodes
)

// Map of ErrorCode values back to their constant names for pretty printing.
var errorCodeStrings = map[ErrorCode]string{
	ErrEmptyTree:            "ErrEmptyTree",
	ErrMalformedProof:       "ErrMalformedProof",
	ErrUnusedHashes:         "ErrUnusedHashes",
	ErrUnusedFlags:          "ErrUnusedFlags",
	ErrTreePoisoned:         "ErrTreePoisoned",
	ErrTreePopulated:        "ErrTreePopulated",
	ErrBadMerkleRoot:        "ErrBadMerkleRoot",
	ErrUnexpectedDifficulty: "ErrUnexpectedDifficulty",
	ErrHighHash:             "ErrHighHash",
}

// String returns the ErrorCode as a human-readable name.
func (e ErrorCode) String() string {
	if s := errorCodeStrings[e]; s != "" {
		return s
	}
	return fmt.Sprintf("Unknown ErrorCode (%d)", int(e))
}

// RuleError identifies a rule violation.  It is used to indicate that a
// merkle proof or block header failed validation.  The caller can use type
// assertions or IsErrorCode to access the ErrorCode field and ascertain the
// specific reason for the violation.
type RuleError struct {
	ErrorCode   ErrorCode // Describes the kind of error
	Description string    // Human readable description of the issue
}

// Error satisfies the error interface and prints human-readable errors.
func (e RuleError) Error() string {
	return e.Description
}

// ruleError creates an RuleError given a set of arguments.
func ruleError(c ErrorCode, desc string) RuleError {
	return RuleError{ErrorCode: c, Description: desc}
}

// IsErrorCode returns whether or not the provided error is a rule error with
// the provided error code.
func IsErrorCode(err error, c ErrorCode) bool {
	var rerr RuleError
	return errors.As(err, &rerr) && rerr.ErrorCode == c
}
