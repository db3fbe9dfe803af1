// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ecc

import (
	"errors"
	"fmt"
)

// ErrorCode identifies a kind of error.
type ErrorCode int

// These constants are used to identify a specific Error.
const (
	// ErrFieldRange is returned when a field element value is negative or
	// not less than its prime.
	ErrFieldRange ErrorCode = iota

	// ErrFieldMismatch is returned when an operation combines elements of
	// two different fields.
	ErrFieldMismatch

	// ErrDivideByZero is returned when dividing by the zero element.
	ErrDivideByZero

	// ErrFieldNoSqrt is returned when a square root is requested in a field
	// whose prime is not congruent to 3 mod 4.
	ErrFieldNoSqrt

	// ErrInvalidPoint is returned when only one of the two coordinates of a
	// point is provided.
	ErrInvalidPoint

	// ErrNotOnCurve is returned when a point does not satisfy the curve
	// equation.
	ErrNotOnCurve

	// ErrCurveMismatch is returned when adding points that live on
	// different curves.
	ErrCurveMismatch

	// ErrNegativeScalar is returned when multiplying a point by a negative
	// integer.
	ErrNegativeScalar

	// ErrInvalidSECPrefix is returned when a SEC encoded point starts with
	// an unknown prefix byte.
	ErrInvalidSECPrefix

	// ErrInvalidSECLength is returned when a SEC encoded point has the wrong
	// length for its prefix.
	ErrInvalidSECLength

	// ErrInvalidPrivKey is returned when a private key secret is zero or not
	// less than the group order.
	ErrInvalidPrivKey

	// ErrSigTooShort is returned when a DER signature is shorter than the
	// smallest possible encoding.
	ErrSigTooShort

	// ErrSigTooLong is returned when a DER signature is longer than the
	// largest possible encoding.
	ErrSigTooLong

	// ErrSigInvalidSeqID is returned when a DER signature does not start
	// with the sequence identifier.
	ErrSigInvalidSeqID

	// ErrSigInvalidDataLen is returned when the sequence length of a DER
	// signature does not match the data that follows.
	ErrSigInvalidDataLen

	// ErrSigInvalidIntID is returned when R or S is not tagged as an ASN.1
	// integer.
	ErrSigInvalidIntID

	// ErrSigInvalidLen is returned when the length of R or S runs past the
	// end of the signature or is zero.
	ErrSigInvalidLen

	// ErrSigNegative is returned when R or S is encoded as a negative
	// number.
	ErrSigNegative

	// ErrSigExcessivelyPadded is returned when R or S has a superfluous
	// leading zero byte.
	ErrSigExcessivelyPadded

	// ErrSigRange is returned when R or S is zero or not less than the group
	// order.
	ErrSigRange

	// numErrorCodes is the maximum error code number used in tests.
	numErrorCodes
)

// Map of ErrorCode values back to their constant names for pretty printing.
var errorCodeStrings = map[ErrorCode]string{
	ErrFieldRange:           "ErrFieldRange",
	ErrFieldMismatch:        "ErrFieldMismatch",
	ErrDivideByZero:         "ErrDivideByZero",
	ErrFieldNoSqrt:          "ErrFieldNoSqrt",
	ErrInvalidPoint:         "ErrInvalidPoint",
	ErrNotOnCurve:           "ErrNotOnCurve",
	ErrCurveMismatch:        "ErrCurveMismatch",
	ErrNegativeScalar:       "ErrNegativeScalar",
	ErrInvalidSECPrefix:     "ErrInvalidSECPrefix",
	ErrInvalidSECLength:     "ErrInvalidSECLength",
	ErrInvalidPrivKey:       "ErrInvalidPrivKey",
	ErrSigTooShort:          "ErrSigTooShort",
	ErrSigTooLong:           "ErrSigTooLong",
	ErrSigInvalidSeqID:      "ErrSigInvalidSeqID",
	ErrSigInvalidDataLen:    "ErrSigInvalidDataLen",
	ErrSigInvalidIntID:      "ErrSigInvalidIntID",
	ErrSigInvalidLen:        "ErrSigInvalidLen",
	ErrSigNegative:          "ErrSigNegative",
	ErrSigExcessivelyPadded: "ErrSigExcessivelyPadded",
	ErrSigRange:             "ErrSigRange",
}

// String returns the ErrorCode as a human-readable name.
func (e ErrorCode) String() string {
	if s := errorCodeStrings[e]; s != "" {
		return s
	}
	return fmt.Sprintf("Unknown ErrorCode (%d)", int(e))
}

// Error identifies an arithmetic, encoding or signature error.  The caller can
// use type assertions or IsErrorCode to determine the specific reason.
type Error struct {
	ErrorCode   ErrorCode // Describes the kind of error
	Description string    // Human readable description of the issue
}

// Error satisfies the error interface and prints human-readable errors.
func (e Error) Error() string {
	return e.Description
}

// eccError creates an Error given a set of arguments.
func eccError(c ErrorCode, desc string) Error {
	return Error{ErrorCode: c, Description: desc}
}

// IsErrorCode returns whether or not the provided error is an Error with the
// provided error code.
func IsErrorCode(err error, c ErrorCode) bool {
	var e Error
	return errors.As(err, &e) && e.ErrorCode == c
}
