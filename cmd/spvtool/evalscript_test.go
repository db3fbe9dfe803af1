// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"testing"

	"github.com/btcsuite/btcspv/txscript"
	"github.com/stretchr/testify/require"
)

// newEvalScriptCmd returns the command with its flag defaults.
func newEvalScriptCmd() *evalScriptCmd {
	cmd := evalScriptCfg
	return &cmd
}

func TestEvalScript(t *testing.T) {
	t.Parallel()

	const (
		p2pkZ   = "0x7c076ff316692a3d7eb3c3bb0f8b1488cf72e1afcd929e29307032997a838a3d"
		p2pkSig = "483045022000eff69ef2b1bd93a66ed5219add4fb51e11a840f40487632" +
			"5a1e8ffe0529a2c022100c7207fee197d27c618aea621406f6bf5ef6fca3868" +
			"1d82b2f06fddbdce6feab601"
		p2pkPubKey = "4104887387e452b8eacc4acfde10d9aaf7f6d9a0f975aabb10d006e4da5" +
			"68744d06c61de6d95231cd89026e286df3b6ae4a894a3378e393e93a0f45b66" +
			"6329a0ae34ac"

		// 500 OP_CHECKLOCKTIMEVERIFY OP_DROP OP_1
		cltv = "02f401b17551"
	)

	tests := []struct {
		name    string
		z       string
		scripts []string
		setup   func(*evalScriptCmd)
		ok      bool
	}{
		{"arithmetic", "0", []string{"5253935587"}, nil, true},
		{"arithmetic split", "0", []string{"5253", "935587"}, nil, true},
		{"arithmetic false", "0", []string{"5253935687"}, nil, false},
		{"pay to pubkey", p2pkZ, []string{p2pkSig, p2pkPubKey}, nil, true},
		{"pay to pubkey wrong z", "0x1", []string{p2pkSig, p2pkPubKey},
			nil, false},
		{"prefixed", "0", []string{"055253935587"},
			func(c *evalScriptCmd) { c.Prefixed = true }, true},
		{"lock time ignored", "0", []string{cltv}, nil, true},
		{"lock time met", "0", []string{cltv}, func(c *evalScriptCmd) {
			c.TxContext, c.LockTime, c.Sequence = true, 600, 0
		}, true},
		{"lock time unmet", "0", []string{cltv}, func(c *evalScriptCmd) {
			c.TxContext, c.LockTime, c.Sequence = true, 400, 0
		}, false},
		{"lock time finalized input", "0", []string{cltv},
			func(c *evalScriptCmd) {
				c.TxContext, c.LockTime = true, 600
			}, false},
		{"op limit", "0", []string{"61616151"},
			func(c *evalScriptCmd) { c.MaxOps = 2 }, false},
		{"bad hex", "0", []string{"zz"}, nil, false},
		{"bad z", "z", []string{"51"}, nil, false},
		{"truncated push", "0", []string{"0301"}, nil, false},
	}

	t.Logf("Running %d tests", len(tests))
	for _, test := range tests {
		cmd := newEvalScriptCmd()
		if test.setup != nil {
			test.setup(cmd)
		}

		var out bytes.Buffer
		err := cmd.run(&out, test.z, test.scripts)
		if test.ok {
			require.NoError(t, err, test.name)
			require.Contains(t, out.String(), "result: true", test.name)
		} else {
			require.Error(t, err, test.name)
		}
	}
}

func TestEvalScriptTrace(t *testing.T) {
	t.Parallel()

	cmd := newEvalScriptCmd()
	cmd.Trace = true

	var out bytes.Buffer
	require.NoError(t, cmd.run(&out, "0", []string{"5253935587"}))

	want := "script: OP_2 OP_3 OP_ADD OP_5 OP_EQUAL\n" +
		"step 1: OP_2\n  stack: 02\n  altstack: <empty>\n" +
		"step 2: OP_3\n  stack: 02 03\n  altstack: <empty>\n" +
		"step 3: OP_ADD\n  stack: 05\n  altstack: <empty>\n" +
		"step 4: OP_5\n  stack: 05 05\n  altstack: <empty>\n" +
		"step 5: OP_EQUAL\n  stack: 01\n  altstack: <empty>\n" +
		"result: true\n"
	require.Equal(t, want, out.String())

	// A failing script reports the error after the last step.
	out.Reset()
	err := cmd.run(&out, "0", []string{"5151879169"})
	require.True(t, txscript.IsErrorCode(err, txscript.ErrVerify),
		"got %v", err)
	require.Contains(t, out.String(), "step 4: OP_NOT\n  stack: []\n")
	require.NotContains(t, out.String(), "step 5")
	require.Contains(t, out.String(), "result: false")

	// An empty script runs no steps and fails the final check.
	out.Reset()
	err = cmd.run(&out, "0", []string{""})
	require.True(t, txscript.IsErrorCode(err, txscript.ErrEmptyStack),
		"got %v", err)
	require.NotContains(t, out.String(), "step")
	require.Contains(t, out.String(), "result: false")
}
