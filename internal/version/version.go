// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package version holds the version of spvtool.
package version

import (
	"fmt"
	"strings"
)

// semanticAlphabet is the set of characters allowed in the pre-release and
// build metadata parts of a semantic version string.
const semanticAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz-."

// The application version follows semantic versioning 2.0.0.
const (
	Major uint = 0
	Minor uint = 1
	Patch uint = 0
)

var (
	// PreRelease can be set at build time with
	// '-ldflags "-X github.com/btcsuite/btcspv/internal/version.PreRelease=foo"'.
	PreRelease = "beta"

	// BuildMetadata can be set at build time the same way as PreRelease.
	BuildMetadata = ""
)

// String returns the application version.  Invalid characters in the
// pre-release and build parts are dropped.
func String() string {
	version := fmt.Sprintf("%d.%d.%d", Major, Minor, Patch)
	if pre := normalize(PreRelease); pre != "" {
		version += "-" + pre
	}
	if build := normalize(BuildMetadata); build != "" {
		version += "+" + build
	}
	return version
}

// normalize strips the characters of str outside semanticAlphabet.
func normalize(str string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(semanticAlphabet, r) {
			return r
		}
		return -1
	}, str)
}
