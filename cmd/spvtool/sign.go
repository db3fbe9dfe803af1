// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"math/big"
	"os"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcspv/ecc"
)

// signCmd defines the configuration options for the sign command.
type signCmd struct {
	Message  bool  `short:"m" long:"message" description:"Treat the second argument as a message and sign its double SHA256"`
	HashType uint8 `long:"hashtype" description:"Append this hash type byte to the signature, as a signature script carries it"`
}

var (
	// signCfg defines the configuration options for the command.
	signCfg = signCmd{}
)

// Usage overrides the usage display for the command.
func (cmd *signCmd) Usage() string {
	return "<secret> <z|message>"
}

// Execute is the main entry point for the command.  It's invoked by the parser.
func (cmd *signCmd) Execute(args []string) error {
	// Setup the global config options and ensure they are valid.
	if err := setupGlobalConfig(); err != nil {
		return err
	}
	if err := checkArgs(args, 2, cmd.Usage()); err != nil {
		return err
	}
	return cmd.run(os.Stdout, args[0], args[1])
}

// messageHash returns z for the command: the number given, or the double
// SHA256 of the message when --message is set.
func messageHash(isMessage bool, arg string) (*big.Int, error) {
	if isMessage {
		return new(big.Int).SetBytes(chainhash.DoubleHashB([]byte(arg))), nil
	}
	return parseBigInt("z", arg)
}

// run signs z with secret and writes the DER signature.
func (cmd *signCmd) run(w io.Writer, secretStr, zStr string) error {
	secret, err := parseBigInt("secret", secretStr)
	if err != nil {
		return err
	}
	key, err := ecc.NewPrivateKey(secret)
	if err != nil {
		return err
	}
	z, err := messageHash(cmd.Message, zStr)
	if err != nil {
		return err
	}

	sig := key.Sign(z)
	der := sig.Serialize()
	if cmd.HashType != 0 {
		der = append(der, cmd.HashType)
	}

	fmt.Fprintf(w, "z:            %064x\n", z)
	fmt.Fprintf(w, "signature:    %v\n", sig)
	fmt.Fprintf(w, "der:          %x\n", der)
	return nil
}
