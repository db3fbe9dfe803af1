// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/btcsuite/btcspv/txscript"
)

// evalScriptCmd defines the configuration options for the evalscript command.
type evalScriptCmd struct {
	Prefixed  bool   `long:"prefixed" description:"Scripts are serialized with a varint length prefix"`
	Trace     bool   `long:"trace" description:"Print the stacks after every step"`
	TxContext bool   `long:"txcontext" description:"Provide the lock time, sequence and version below to the lock time opcodes"`
	TxVersion int32  `long:"txversion" description:"Version of the spending transaction" default:"1"`
	LockTime  uint32 `long:"locktime" description:"Lock time of the spending transaction"`
	Sequence  uint32 `long:"sequence" description:"Sequence of the input being spent" default:"4294967295"`
	MaxOps    int    `long:"maxops" description:"Maximum number of counted operations" default:"201"`
}

var (
	// evalScriptCfg defines the configuration options for the command.
	evalScriptCfg = evalScriptCmd{
		TxVersion: 1,
		Sequence:  0xffffffff,
		MaxOps:    txscript.MaxOpsPerScript,
	}
)

// Usage overrides the usage display for the command.
func (cmd *evalScriptCmd) Usage() string {
	return "<z> <script-hex> [<script-hex>...]"
}

// Execute is the main entry point for the command.  It's invoked by the parser.
func (cmd *evalScriptCmd) Execute(args []string) error {
	// Setup the global config options and ensure they are valid.
	if err := setupGlobalConfig(); err != nil {
		return err
	}
	if len(args) < 2 {
		return fmt.Errorf("expected at least 2 arguments, got %d -- "+
			"usage: %s", len(args), cmd.Usage())
	}
	return cmd.run(os.Stdout, args[0], args[1:])
}

// parseScript decodes one script argument.
func (cmd *evalScriptCmd) parseScript(i int, s string) (*txscript.Script, error) {
	raw, err := decodeHex(fmt.Sprintf("script %d", i), s)
	if err != nil {
		return nil, err
	}
	if cmd.Prefixed {
		return txscript.ParseScript(bytes.NewReader(raw))
	}
	return txscript.ParseRawScript(raw)
}

// writeStack writes the items of a stack from bottom to top.
func writeStack(w io.Writer, name string, stk [][]byte) {
	fmt.Fprintf(w, "  %s:", name)
	if len(stk) == 0 {
		fmt.Fprint(w, " <empty>")
	}
	for _, item := range stk {
		if len(item) == 0 {
			fmt.Fprint(w, " []")
			continue
		}
		fmt.Fprintf(w, " %x", item)
	}
	fmt.Fprintln(w)
}

// run concatenates the scripts in order and evaluates them against z.
func (cmd *evalScriptCmd) run(w io.Writer, zStr string, scripts []string) error {
	z, err := parseBigInt("z", zStr)
	if err != nil {
		return err
	}

	script := txscript.NewScript()
	for i, s := range scripts {
		part, err := cmd.parseScript(i, s)
		if err != nil {
			return err
		}
		script = script.Concat(part)
	}
	fmt.Fprintf(w, "script: %v\n", script)

	opts := []txscript.EngineOption{
		txscript.WithSigCache(txscript.NewSigCache(100)),
		txscript.WithMaxOps(cmd.MaxOps),
	}
	if cmd.TxContext {
		opts = append(opts, txscript.WithTxContext(&txscript.TxContext{
			Version:  cmd.TxVersion,
			LockTime: cmd.LockTime,
			Sequence: cmd.Sequence,
		}))
	}
	vm := txscript.NewEngine(script, z, opts...)

	if !cmd.Trace {
		err = vm.Execute()
	} else {
		err = traceEngine(w, vm)
	}
	if err != nil {
		fmt.Fprintf(w, "result: false (%v)\n", err)
		return err
	}
	fmt.Fprintln(w, "result: true")
	return nil
}

// traceEngine steps vm to completion and writes its state after each step.
func traceEngine(w io.Writer, vm *txscript.Engine) error {
	for step := 1; ; step++ {
		remaining := vm.Remaining()
		if len(remaining) == 0 {
			break
		}
		next := remaining[0].String()

		done, err := vm.Step()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "step %d: %s\n", step, next)
		writeStack(w, "stack", vm.GetStack())
		writeStack(w, "altstack", vm.GetAltStack())
		if done {
			break
		}
	}
	return vm.CheckErrorCondition()
}
