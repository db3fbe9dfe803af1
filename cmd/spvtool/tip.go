// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/btcsuite/btcspv/blockchain"
	"github.com/btcsuite/btcspv/headerdb"
)

// tipCmd defines the configuration options for the tip command.
type tipCmd struct{}

var (
	// tipCfg defines the configuration options for the command.
	tipCfg = tipCmd{}
)

// Usage overrides the usage display for the command.
func (cmd *tipCmd) Usage() string {
	return ""
}

// Execute is the main entry point for the command.  It's invoked by the parser.
func (cmd *tipCmd) Execute(args []string) error {
	// Setup the global config options and ensure they are valid.
	if err := setupGlobalConfig(); err != nil {
		return err
	}
	if err := checkArgs(args, 0, cmd.Usage()); err != nil {
		return err
	}

	db, err := loadHeaderDB()
	if err != nil {
		return err
	}
	defer db.Close()

	return writeTip(os.Stdout, db)
}

// writeTip writes the header with the most work in db.
func writeTip(w io.Writer, db *headerdb.HeaderDB) error {
	tip, err := db.Tip()
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "tip:          %v\n", tip.Hash)
	fmt.Fprintf(w, "height:       %d\n", tip.Height)
	fmt.Fprintf(w, "work:         %#x\n", tip.Work)
	fmt.Fprintf(w, "difficulty:   %s\n",
		blockchain.HeaderDifficulty(&tip.Header).Text('g', 10))
	fmt.Fprintf(w, "bip9:         %v\n", blockchain.SignalsBIP9(&tip.Header))
	return nil
}
