// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/btcsuite/btcspv/ecc"
)

// errInvalidSignature is returned by the verify command for a signature that
// parses but does not verify.
var errInvalidSignature = errors.New("signature is not valid")

// verifyCmd defines the configuration options for the verify command.
type verifyCmd struct {
	Message bool `short:"m" long:"message" description:"Treat the second argument as a message and verify against its double SHA256"`
}

var (
	// verifyCfg defines the configuration options for the command.
	verifyCfg = verifyCmd{}
)

// Usage overrides the usage display for the command.
func (cmd *verifyCmd) Usage() string {
	return "<sec-hex> <z|message> <der-hex>"
}

// Execute is the main entry point for the command.  It's invoked by the parser.
func (cmd *verifyCmd) Execute(args []string) error {
	// Setup the global config options and ensure they are valid.
	if err := setupGlobalConfig(); err != nil {
		return err
	}
	if err := checkArgs(args, 3, cmd.Usage()); err != nil {
		return err
	}
	return cmd.run(os.Stdout, args[0], args[1], args[2])
}

// run verifies the DER signature over z against the SEC encoded public key.
func (cmd *verifyCmd) run(w io.Writer, secStr, zStr, derStr string) error {
	sec, err := decodeHex("public key", secStr)
	if err != nil {
		return err
	}
	pub, err := ecc.ParseSEC(sec)
	if err != nil {
		return fmt.Errorf("public key: %w", err)
	}
	z, err := messageHash(cmd.Message, zStr)
	if err != nil {
		return err
	}
	der, err := decodeHex("signature", derStr)
	if err != nil {
		return err
	}
	sig, err := ecc.ParseDERSignature(der)
	if err != nil {
		return fmt.Errorf("signature: %w", err)
	}

	if !pub.Verify(z, sig) {
		fmt.Fprintln(w, "invalid")
		return errInvalidSignature
	}
	fmt.Fprintln(w, "valid")
	return nil
}
