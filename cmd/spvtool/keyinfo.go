// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcspv/ecc"
)

// keyInfoCmd defines the configuration options for the keyinfo command.
type keyInfoCmd struct{}

var (
	// keyInfoCfg defines the configuration options for the command.
	keyInfoCfg = keyInfoCmd{}
)

// Usage overrides the usage display for the command.
func (cmd *keyInfoCmd) Usage() string {
	return "<secret>"
}

// Execute is the main entry point for the command.  It's invoked by the parser.
func (cmd *keyInfoCmd) Execute(args []string) error {
	// Setup the global config options and ensure they are valid.
	if err := setupGlobalConfig(); err != nil {
		return err
	}
	if err := checkArgs(args, 1, cmd.Usage()); err != nil {
		return err
	}
	return cmd.run(os.Stdout, activeNetParams, args[0])
}

// run writes the encodings of the public key of secret and the addresses
// derived from it on net.
func (cmd *keyInfoCmd) run(w io.Writer, net *chaincfg.Params, secretStr string) error {
	secret, err := parseBigInt("secret", secretStr)
	if err != nil {
		return err
	}
	key, err := ecc.NewPrivateKey(secret)
	if err != nil {
		return err
	}
	pub := key.PubKey()

	fmt.Fprintf(w, "secret:       %x\n", key.Serialize())
	fmt.Fprintf(w, "public key:   %v\n", pub)
	for _, compressed := range []bool{true, false} {
		form := "uncompressed"
		if compressed {
			form = "compressed"
		}

		addr, err := btcutil.NewAddressPubKeyHash(pub.Hash160(compressed),
			net)
		if err != nil {
			return err
		}
		wif, err := btcutil.NewWIF(key.ToBTCEC(), net, compressed)
		if err != nil {
			return err
		}

		fmt.Fprintf(w, "%s:\n", form)
		fmt.Fprintf(w, "  sec:        %x\n", pub.SEC(compressed))
		fmt.Fprintf(w, "  hash160:    %x\n", pub.Hash160(compressed))
		fmt.Fprintf(w, "  address:    %s\n", addr.EncodeAddress())
		fmt.Fprintf(w, "  wif:        %s\n", wif.String())
	}
	return nil
}
