// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"errors"
	"fmt"
)

// ErrorCode identifies a kind of script error.
type ErrorCode int

// These constants are used to identify a specific Error.
const (
	// ErrInternal is returned if internal consistency checks fail.
	ErrInternal ErrorCode = iota

	// ---------------------------------------
	// Failures related to decoding a script.
	// ---------------------------------------

	// ErrMalformedPush is returned when a data push claims more bytes than
	// the script holds.
	ErrMalformedPush

	// ErrScriptLength is returned when the bytes consumed while parsing do
	// not match the declared script length, or the declared length exceeds
	// MaxScriptSize.
	ErrScriptLength

	// ErrElementTooBig is returned when a pushed element is larger than
	// MaxScriptElementSize.
	ErrElementTooBig

	// ---------------------------------------
	// Failures related to evaluating a script.
	// ---------------------------------------

	// ErrEvalFalse is returned when the script evaluated without error but
	// terminated with an empty element on top of the stack.
	ErrEvalFalse

	// ErrEmptyStack is returned when the script evaluated without error but
	// terminated with an empty stack.
	ErrEmptyStack

	// ErrEarlyReturn is returned when OP_RETURN is executed.
	ErrEarlyReturn

	// ErrVerify is returned when OP_VERIFY is encountered and the top item
	// on the data stack evaluates to false.
	ErrVerify

	// ErrEqualVerify is returned when OP_EQUALVERIFY is encountered and the
	// top two items are not equal.
	ErrEqualVerify

	// ErrNumEqualVerify is returned when OP_NUMEQUALVERIFY is encountered
	// and the top two numbers are not equal.
	ErrNumEqualVerify

	// ErrCheckSigVerify is returned when OP_CHECKSIGVERIFY fails.
	ErrCheckSigVerify

	// ErrCheckMultiSigVerify is returned when OP_CHECKMULTISIGVERIFY fails.
	ErrCheckMultiSigVerify

	// ErrP2SHMismatch is returned when the hash of a pay-to-script-hash
	// redeem script does not match the committed hash.
	ErrP2SHMismatch

	// ErrDisabledOpcode is returned when a disabled opcode is executed.
	ErrDisabledOpcode

	// ErrReservedOpcode is returned when a reserved or undefined opcode is
	// executed.
	ErrReservedOpcode

	// ErrUnbalancedConditional is returned when an OP_IF or OP_NOTIF has no
	// matching OP_ENDIF, or an OP_ELSE or OP_ENDIF appears on its own.
	ErrUnbalancedConditional

	// ErrInvalidStackOperation is returned when an opcode needs more items
	// than the stack holds.
	ErrInvalidStackOperation

	// ErrInvalidAltStackOperation is returned when OP_FROMALTSTACK runs
	// with an empty alternate stack.
	ErrInvalidAltStackOperation

	// ErrNumberTooBig is returned when a numeric operand is longer than
	// the allowed number of bytes.
	ErrNumberTooBig

	// ErrNegativeLockTime is returned when a lock time operand is negative.
	ErrNegativeLockTime

	// ErrUnsatisfiedLockTime is returned when the transaction context does
	// not satisfy a lock time or sequence requirement.
	ErrUnsatisfiedLockTime

	// ErrInvalidPubKeyCount is returned when the number of public keys
	// given to OP_CHECKMULTISIG is negative or above MaxPubKeysPerMultiSig.
	ErrInvalidPubKeyCount

	// ErrInvalidSignatureCount is returned when the number of signatures
	// given to OP_CHECKMULTISIG is negative or above the key count.
	ErrInvalidSignatureCount

	// ErrTooManyOperations is returned when a script runs more than the
	// allowed number of non-push operations.
	ErrTooManyOperations

	// ErrStackOverflow is returned when the combined stacks hold more than
	// MaxStackSize items.
	ErrStackOverflow

	// numErrorCodes is the maximum error code number used in tests.  This
	// entry MUST be the last entry in the enum.
	numErrorCodes
)

// Map of ErrorCode values back to their constant names for pretty printing.
var errorCodeStrings = map[ErrorCode]string{
	ErrInternal:                 "ErrInternal",
	ErrMalformedPush:            "ErrMalformedPush",
	ErrScriptLength:             "ErrScriptLength",
	ErrElementTooBig:            "ErrElementTooBig",
	ErrEvalFalse:                "ErrEvalFalse",
	ErrEmptyStack:               "ErrEmptyStack",
	ErrEarlyReturn:              "ErrEarlyReturn",
	ErrVerify:                   "ErrVerify",
	ErrEqualVerify:              "ErrEqualVerify",
	ErrNumEqualVerify:           "ErrNumEqualVerify",
	ErrCheckSigVerify:           "ErrCheckSigVerify",
	ErrCheckMultiSigVerify:      "ErrCheckMultiSigVerify",
	ErrP2SHMismatch:             "ErrP2SHMismatch",
	ErrDisabledOpcode:           "ErrDisabledOpcode",
	ErrReservedOpcode:           "ErrReservedOpcode",
	ErrUnbalancedConditional:    "ErrUnbalancedConditional",
	ErrInvalidStackOperation:    "ErrInvalidStackOperation",
	ErrInvalidAltStackOperation: "ErrInvalidAltStackOperation",
	ErrNumberTooBig:             "ErrNumberTooBig",
	ErrNegativeLockTime:         "ErrNegativeLockTime",
	ErrUnsatisfiedLockTime:      "ErrUnsatisfiedLockTime",
	ErrInvalidPubKeyCount:       "ErrInvalidPubKeyCount",
	ErrInvalidSignatureCount:    "ErrInvalidSignatureCount",
	ErrTooManyOperations:        "ErrTooManyOperations",
	ErrStackOverflow:            "ErrStackOverflow",
}

// String returns the ErrorCode as a human-readable name.
func (e ErrorCode) String() string {
	if s := errorCodeStrings[e]; s != "" {
		return s
	}
	return fmt.Sprintf("Unknown ErrorCode (%d)", int(e))
}

// IsDecodeFailure returns whether the code describes a script that could not
// be decoded at all.
func (e ErrorCode) IsDecodeFailure() bool {
	return e >= ErrMalformedPush && e <= ErrElementTooBig
}

// IsEvalFailure returns whether the code describes a script that decoded
// fine but did not evaluate successfully.
func (e ErrorCode) IsEvalFailure() bool {
	return e >= ErrEvalFalse && e < numErrorCodes
}

// Error identifies a script-related error.  The caller can use type
// assertions or IsErrorCode to access the ErrorCode field.
type Error struct {
	ErrorCode   ErrorCode
	Description string
}

// Error satisfies the error interface and prints human-readable errors.
func (e Error) Error() string {
	return e.Description
}

// scriptError creates an Error given a set of arguments.
func scriptError(c ErrorCode, desc string) Error {
	return Error{ErrorCode: c, Description: desc}
}

// IsErrorCode returns whether or not the provided error is a script error
// with the provided error code.
func IsErrorCode(err error, c ErrorCode) bool {
	var serr Error
	return errors.As(err, &serr) && serr.ErrorCode == c
}
