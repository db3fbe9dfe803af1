// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package version

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestString(t *testing.T) {
	tests := []struct {
		pre, build string
		want       string
	}{
		{"", "", "0.1.0"},
		{"beta", "", "0.1.0-beta"},
		{"rc.1", "abc123", "0.1.0-rc.1+abc123"},
		{"b eta!", "x/y", "0.1.0-beta+xy"},
	}

	oldPre, oldBuild := PreRelease, BuildMetadata
	defer func() { PreRelease, BuildMetadata = oldPre, oldBuild }()

	t.Logf("Running %d tests", len(tests))
	for _, test := range tests {
		PreRelease, BuildMetadata = test.pre, test.build
		require.Equal(t, test.want, String())
	}
}
