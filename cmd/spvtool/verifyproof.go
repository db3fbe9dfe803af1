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
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/btcsuite/btcspv/blockchain"
	"github.com/btcsuite/btcspv/headerdb"
	"github.com/btcsuite/btcspv/internal/log"
)

// verifyProofCmd defines the configuration options for the verifyproof
// command.
type verifyProofCmd struct {
	CheckDB bool `long:"checkdb" description:"Require the block header to be in the header database"`
}

var (
	// verifyProofCfg defines the configuration options for the command.
	verifyProofCfg = verifyProofCmd{}
)

// Usage overrides the usage display for the command.
func (cmd *verifyProofCmd) Usage() string {
	return "<merkleblock-hex>"
}

// Execute is the main entry point for the command.  It's invoked by the parser.
func (cmd *verifyProofCmd) Execute(args []string) error {
	// Setup the global config options and ensure they are valid.
	if err := setupGlobalConfig(); err != nil {
		return err
	}
	if err := checkArgs(args, 1, cmd.Usage()); err != nil {
		return err
	}

	var db *headerdb.HeaderDB
	if cmd.CheckDB {
		var err error
		db, err = loadHeaderDB()
		if err != nil {
			return err
		}
		defer db.Close()
	}
	return cmd.run(os.Stdout, activeNetParams, db, args[0])
}

// decodeMerkleBlock decodes a merkleblock message payload.
func decodeMerkleBlock(s string) (*wire.MsgMerkleBlock, error) {
	raw, err := decodeHex("merkle block", s)
	if err != nil {
		return nil, err
	}
	var msg wire.MsgMerkleBlock
	err = msg.BtcDecode(bytes.NewReader(raw), wire.ProtocolVersion,
		wire.BaseEncoding)
	if err != nil {
		return nil, fmt.Errorf("merkle block: %w", err)
	}
	return &msg, nil
}

// run validates the merkle block against the proof of work limit of net and
// writes the transactions it proves.  The header must be stored in db unless
// db is nil.
func (cmd *verifyProofCmd) run(w io.Writer, net *chaincfg.Params, db *headerdb.HeaderDB, msgStr string) error {
	msg, err := decodeMerkleBlock(msgStr)
	if err != nil {
		return err
	}

	err = blockchain.CheckProofOfWork(&msg.Header, net.PowLimit)
	if err != nil {
		return err
	}

	var matches []chainhash.Hash
	if db != nil {
		matches, err = db.VerifyMerkleBlock(msg)
	} else {
		matches, err = blockchain.MerkleBlockMatches(msg)
	}
	if err != nil {
		return err
	}

	log.SpvtLog.Debugf("Merkle block %v proves %d of %d transactions",
		msg.Header.BlockHash(), len(matches), msg.Transactions)

	fmt.Fprintf(w, "block:        %v\n", msg.Header.BlockHash())
	fmt.Fprintf(w, "merkle root:  %v\n", msg.Header.MerkleRoot)
	fmt.Fprintf(w, "transactions: %d\n", msg.Transactions)
	for _, hash := range matches {
		fmt.Fprintf(w, "match:        %v\n", hash)
	}
	return nil
}
