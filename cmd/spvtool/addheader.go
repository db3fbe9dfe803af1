// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/wire"
	"github.com/btcsuite/btcspv/headerdb"
)

// addHeaderCmd defines the configuration options for the addheader command.
type addHeaderCmd struct {
	Genesis bool `long:"genesis" description:"Add the genesis header of the active network before the given headers"`
}

var (
	// addHeaderCfg defines the configuration options for the command.
	addHeaderCfg = addHeaderCmd{}
)

// Usage overrides the usage display for the command.
func (cmd *addHeaderCmd) Usage() string {
	return "<header-hex>..."
}

// Execute is the main entry point for the command.  It's invoked by the parser.
func (cmd *addHeaderCmd) Execute(args []string) error {
	// Setup the global config options and ensure they are valid.
	if err := setupGlobalConfig(); err != nil {
		return err
	}
	if len(args) == 0 && !cmd.Genesis {
		return fmt.Errorf("no headers given -- usage: %s", cmd.Usage())
	}

	db, err := loadHeaderDB()
	if err != nil {
		return err
	}
	defer db.Close()

	return cmd.run(os.Stdout, activeNetParams, db, args)
}

// decodeHeader decodes a serialized 80 byte block header.
func decodeHeader(i int, s string) (*wire.BlockHeader, error) {
	raw, err := decodeHex(fmt.Sprintf("header %d", i), s)
	if err != nil {
		return nil, err
	}
	if len(raw) != wire.MaxBlockHeaderPayload {
		return nil, fmt.Errorf("header %d is %d bytes, want %d", i,
			len(raw), wire.MaxBlockHeaderPayload)
	}
	var header wire.BlockHeader
	if err := header.Deserialize(bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("header %d: %w", i, err)
	}
	return &header, nil
}

// run stores the headers in order, stopping at the first one rejected.  The
// genesis header comes from net.
func (cmd *addHeaderCmd) run(w io.Writer, net *chaincfg.Params, db *headerdb.HeaderDB, headerStrs []string) error {
	headers := make([]*wire.BlockHeader, 0, len(headerStrs)+1)
	if cmd.Genesis {
		headers = append(headers, &net.GenesisBlock.Header)
	}
	for i, s := range headerStrs {
		header, err := decodeHeader(i, s)
		if err != nil {
			return err
		}
		headers = append(headers, header)
	}

	for _, header := range headers {
		stored, err := db.PutHeader(header)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "stored %v at height %d\n", stored.Hash,
			stored.Height)
	}
	return writeTip(w, db)
}
