// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package headerdb

import (
	"errors"
	"fmt"
)

// ErrorCode identifies a kind of error.
type ErrorCode int

// These constants are used to identify a specific Error.
const (
	// ErrDbClosed indicates the store or its engine was used after Close.
	ErrDbClosed ErrorCode = iota

	// ErrDbUnknownType indicates an engine type that is not registered.
	ErrDbUnknownType

	// ErrHeaderNotFound indicates a header is not in the store.
	ErrHeaderNotFound

	// ErrOrphanHeader indicates a header whose parent is not in the store.
	ErrOrphanHeader

	// ErrCorruption indicates a stored record could not be decoded.
	ErrCorruption

	// ErrEngine indicates a failure reported by the storage engine.  The
	// Err field of the Error holds the underlying error.
	ErrEngine

	// numErrorCodes is the maximum error code number used in tests.
	numErrorCodes
)

// Map of ErrorCode values back to their constant names for pretty printing.
var errorCodeStrings = map[ErrorCode]string{
	ErrDbClosed:       "ErrDbClosed",
	ErrDbUnknownType:  "ErrDbUnknownType",
	ErrHeaderNotFound: "ErrHeaderNotFound",
	ErrOrphanHeader:   "ErrOrphanHeader",
	ErrCorruption:     "ErrCorruption",
	ErrEngine:         "ErrEngine",
}

// String returns the ErrorCode as a human-readable name.
func (e ErrorCode) String() string {
	if s := errorCodeStrings[e]; s != "" {
		return s
	}
	return fmt.Sprintf("Unknown ErrorCode (%d)", int(e))
}

// Error provides a single type for errors that can happen while using the
// header store.  Err is set when the error was caused by the engine.
type Error struct {
	ErrorCode   ErrorCode // Describes the kind of error
	Description string    // Human readable description of the issue
	Err         error     // Underlying error
}

// Error satisfies the error interface and prints human-readable errors.
func (e Error) Error() string {
	if e.Err != nil {
		return e.Description + ": " + e.Err.Error()
	}
	return e.Description
}

// Unwrap returns the underlying engine error, if any.
func (e Error) Unwrap() error {
	return e.Err
}

// makeError creates an Error given a set of arguments.
func makeError(c ErrorCode, desc string, err error) Error {
	return Error{ErrorCode: c, Description: desc, Err: err}
}

// IsErrorCode returns whether or not the provided error is a header store
// error with the provided error code.
func IsErrorCode(err error, c ErrorCode) bool {
	var derr Error
	return errors.As(err, &derr) && derr.ErrorCode == c
}
