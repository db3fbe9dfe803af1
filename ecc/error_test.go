// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ecc

import (
	"fmt"
	"testing"
)

// TestErrorCodeStringer tests the stringized output for the ErrorCode type.
func TestErrorCodeStringer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   ErrorCode
		want string
	}{
		{ErrFieldRange, "ErrFieldRange"},
		{ErrFieldMismatch, "ErrFieldMismatch"},
		{ErrDivideByZero, "ErrDivideByZero"},
		{ErrFieldNoSqrt, "ErrFieldNoSqrt"},
		{ErrInvalidPoint, "ErrInvalidPoint"},
		{ErrNotOnCurve, "ErrNotOnCurve"},
		{ErrCurveMismatch, "ErrCurveMismatch"},
		{ErrNegativeScalar, "ErrNegativeScalar"},
		{ErrInvalidSECPrefix, "ErrInvalidSECPrefix"},
		{ErrInvalidSECLength, "ErrInvalidSECLength"},
		{ErrInvalidPrivKey, "ErrInvalidPrivKey"},
		{ErrSigTooShort, "ErrSigTooShort"},
		{ErrSigTooLong, "ErrSigTooLong"},
		{ErrSigInvalidSeqID, "ErrSigInvalidSeqID"},
		{ErrSigInvalidDataLen, "ErrSigInvalidDataLen"},
		{ErrSigInvalidIntID, "ErrSigInvalidIntID"},
		{ErrSigInvalidLen, "ErrSigInvalidLen"},
		{ErrSigNegative, "ErrSigNegative"},
		{ErrSigExcessivelyPadded, "ErrSigExcessivelyPadded"},
		{ErrSigRange, "ErrSigRange"},
		{0xffff, "Unknown ErrorCode (65535)"},
	}

	// Detect additional error codes that don't have the stringer added.
	if len(tests)-1 != int(numErrorCodes) {
		t.Errorf("It appears an error code was added without adding an " +
			"associated stringer test")
	}

	t.Logf("Running %d tests", len(tests))
	for i, test := range tests {
		result := test.in.String()
		if result != test.want {
			t.Errorf("String #%d\n got: %s want: %s", i, result,
				test.want)
			continue
		}
	}
}

// TestError tests the error output for the Error type.
func TestError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   Error
		want string
	}{
		{
			Error{Description: "some error"},
			"some error",
		},
		{
			Error{Description: "human-readable error"},
			"human-readable error",
		},
	}

	t.Logf("Running %d tests", len(tests))
	for i, test := range tests {
		result := test.in.Error()
		if result != test.want {
			t.Errorf("Error #%d\n got: %s want: %s", i, result,
				test.want)
			continue
		}
	}

	wrapped := fmt.Errorf("parse: %w", eccError(ErrNotOnCurve, "off curve"))
	if !IsErrorCode(wrapped, ErrNotOnCurve) {
		t.Errorf("IsErrorCode did not unwrap %v", wrapped)
	}
	if IsErrorCode(wrapped, ErrFieldRange) {
		t.Errorf("IsErrorCode matched the wrong code for %v", wrapped)
	}
}
