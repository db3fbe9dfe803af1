// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/btcsuite/btcspv/internal/log"
	flags "github.com/jessevdk/go-flags"
)

// appName returns the name the utility was invoked as.
func appName() string {
	name := filepath.Base(os.Args[0])
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// newParser returns the command line parser with every command registered.
func newParser() *flags.Parser {
	parserFlags := flags.Options(flags.HelpFlag | flags.PassDoubleDash)
	parser := flags.NewNamedParser(appName(), parserFlags)
	parser.AddGroup("Global Options", "", cfg)
	parser.AddCommand("keyinfo",
		"Show the public key, addresses and WIF of a secret",
		"Show the SEC encodings, hash160, pay-to-pubkey-hash addresses "+
			"and WIF of the key with the given secret on the active "+
			"network.", &keyInfoCfg)
	parser.AddCommand("sign", "Sign a message hash",
		"Sign z with the key with the given secret and print the DER "+
			"signature.  The nonce is derived with RFC6979 and the "+
			"signature has a low S.", &signCfg)
	parser.AddCommand("verify", "Verify a DER signature",
		"Verify a DER signature over z against a SEC encoded public key.",
		&verifyCfg)
	parser.AddCommand("evalscript", "Evaluate a script",
		"Concatenate the given scripts in order and evaluate them against "+
			"z.  Pass the signature script before the public key "+
			"script it spends.", &evalScriptCfg)
	parser.AddCommand("verifyproof", "Verify a merkle block proof",
		"Check the proof of work and partial merkle tree of a merkleblock "+
			"message and print the transactions it proves.",
		&verifyProofCfg)
	parser.AddCommand("addheader", "Add block headers to the database",
		"Add serialized block headers to the header database in order.  "+
			"The first header added to an empty database anchors it.",
		&addHeaderCfg)
	parser.AddCommand("tip", "Show the header with the most work", "",
		&tipCfg)
	parser.AddCommand("version", "Show the version", "", &versionCfg)
	return parser
}

// realMain is the real main function for the utility.  It is necessary to work
// around the fact that deferred functions do not run when os.Exit() is called.
func realMain() error {
	defer os.Stdout.Sync()
	defer func() {
		if log.LogRotator != nil {
			log.LogRotator.Close()
		}
	}()

	// Parse command line and invoke the Execute function for the specified
	// command.
	parser := newParser()
	if _, err := parser.Parse(); err != nil {
		var flagsErr *flags.Error
		switch {
		case errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp:
			parser.WriteHelp(os.Stderr)
		case errors.Is(err, errShowSubsystems):
			return nil
		default:
			log.SpvtLog.Error(err)
		}

		return err
	}

	return nil
}

func main() {
	// Work around defer not working after os.Exit()
	if err := realMain(); err != nil {
		os.Exit(1)
	}
}
