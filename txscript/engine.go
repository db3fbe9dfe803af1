// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"bytes"
	"fmt"
	"math/big"

	"github.com/btcsuite/btcd/wire"
	"github.com/btcsuite/btcspv/ecc"
	"github.com/davecgh/go-spew/spew"
)

// curveOrder is used to reduce message hashes for the signature cache.
var curveOrder = ecc.CurveOrder()

// TxContext carries the fields of the spending transaction that
// OP_CHECKLOCKTIMEVERIFY and OP_CHECKSEQUENCEVERIFY compare against.
type TxContext struct {
	// Version is the transaction version.
	Version int32

	// LockTime is the transaction lock time.
	LockTime uint32

	// Sequence is the sequence number of the input being validated.
	Sequence uint32
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithSigCache makes the engine consult and fill cache when checking
// signatures.
func WithSigCache(cache *SigCache) EngineOption {
	return func(vm *Engine) {
		vm.sigCache = cache
	}
}

// WithTxContext enables the lock time opcodes, which are no-ops otherwise.
func WithTxContext(tx *TxContext) EngineOption {
	return func(vm *Engine) {
		if tx != nil {
			ctx := *tx
			vm.tx = &ctx
		}
	}
}

// WithMaxOps overrides MaxOpsPerScript.
func WithMaxOps(n int) EngineOption {
	return func(vm *Engine) {
		vm.maxOps = n
	}
}

// Engine executes a script against a message hash.  It owns a queue of the
// commands left to run, which the flow control opcodes rewrite and the
// pay-to-script-hash rule extends with the redeem script.
//
// An Engine is single use and not safe for concurrent access.
type Engine struct {
	queue    []Command
	dstack   stack // data stack
	astack   stack // alt stack
	z        *big.Int
	tx       *TxContext
	sigCache *SigCache
	numOps   int
	maxOps   int
	steps    int
}

// NewEngine returns an engine ready to execute script with the message hash
// z used by the signature opcodes.
func NewEngine(script *Script, z *big.Int, opts ...EngineOption) *Engine {
	vm := &Engine{
		queue:  script.Commands(),
		z:      new(big.Int).Set(z),
		maxOps: MaxOpsPerScript,
	}
	for _, opt := range opts {
		opt(vm)
	}
	return vm
}

// Evaluate runs script against z and reports whether it succeeded.  Every
// failure, from an opcode error to a false result, is reported as false.
// Use NewEngine and Execute to learn why a script failed.
func Evaluate(script *Script, z *big.Int, opts ...EngineOption) bool {
	err := NewEngine(script, z, opts...).Execute()
	if err != nil {
		log.Debugf("script %v failed: %v", script, err)
		return false
	}
	return true
}

// Execute runs the script to completion.  It returns nil when the script
// leaves a non-empty item on top of the stack.
func (vm *Engine) Execute() error {
	for {
		done, err := vm.Step()
		if err != nil {
			return err
		}
		if done {
			break
		}
	}
	return vm.CheckErrorCondition()
}

// Step executes the next command.  It returns true once the queue is
// empty.  The engine must not be used after Step returns an error.
func (vm *Engine) Step() (done bool, err error) {
	if len(vm.queue) == 0 {
		return true, nil
	}

	cmd := vm.queue[0]
	vm.queue = vm.queue[1:]
	vm.steps++

	log.Tracef("%v", newLogClosure(func() string {
		return fmt.Sprintf("step %d: %v", vm.steps, cmd)
	}))

	if cmd.push {
		if len(cmd.data) > MaxScriptElementSize {
			str := fmt.Sprintf("element size %d exceeds max allowed "+
				"size %d", len(cmd.data), MaxScriptElementSize)
			return true, scriptError(ErrElementTooBig, str)
		}
		vm.dstack.PushByteArray(cmd.data)

		if vm.isPayToScriptHashTail() {
			if err := vm.spliceRedeemScript(); err != nil {
				return true, err
			}
		}
	} else {
		op := &opcodeArray[cmd.op]
		if isCountedOp(op.value) {
			vm.numOps++
			if vm.numOps > vm.maxOps {
				str := fmt.Sprintf("exceeded max operation limit "+
					"of %d", vm.maxOps)
				return true, scriptError(ErrTooManyOperations, str)
			}
		}
		if err := op.opfunc(op, vm); err != nil {
			return true, err
		}
	}

	if depth := vm.dstack.Depth() + vm.astack.Depth(); depth > MaxStackSize {
		str := fmt.Sprintf("combined stack size %d > max allowed %d",
			depth, MaxStackSize)
		return true, scriptError(ErrStackOverflow, str)
	}

	log.Tracef("%v", newLogClosure(func() string {
		return "stack:\n" + spew.Sdump(vm.dstack.stk)
	}))

	return len(vm.queue) == 0, nil
}

// isPayToScriptHashTail reports whether the rest of the queue is exactly
// OP_HASH160 <20 bytes> OP_EQUAL, the pay-to-script-hash pattern that
// follows the redeem script push.
func (vm *Engine) isPayToScriptHashTail() bool {
	return len(vm.queue) == 3 &&
		vm.queue[0].isOpcode(OP_HASH160) &&
		vm.queue[1].push && len(vm.queue[1].data) == 20 &&
		vm.queue[2].isOpcode(OP_EQUAL)
}

// spliceRedeemScript checks the element just pushed against the hash in the
// pay-to-script-hash tail and replaces the tail with the commands of the
// redeem script.
func (vm *Engine) spliceRedeemScript() error {
	redeemScript, err := vm.dstack.PeekByteArray(0)
	if err != nil {
		return err
	}
	scriptHash := vm.queue[1].data
	vm.queue = nil

	if err := opcodeHash160(&opcodeArray[OP_HASH160], vm); err != nil {
		return err
	}
	vm.dstack.PushByteArray(scriptHash)
	if err := opcodeEqual(&opcodeArray[OP_EQUAL], vm); err != nil {
		return err
	}
	if ok, err := vm.dstack.PopBool(); err != nil || !ok {
		return scriptError(ErrP2SHMismatch,
			"redeem script hash does not match the script hash")
	}

	var buf bytes.Buffer
	if err := wire.WriteVarInt(&buf, 0, uint64(len(redeemScript))); err != nil {
		return err
	}
	buf.Write(redeemScript)
	redeem, err := ParseScript(&buf)
	if err != nil {
		return err
	}

	log.Tracef("%v", newLogClosure(func() string {
		return fmt.Sprintf("pay-to-script-hash redeem script: %v", redeem)
	}))

	vm.queue = append(redeem.Commands(), vm.queue...)
	return nil
}

// checkSig reports whether fullSig, a DER signature followed by a hash type
// byte, is valid for pkBytes over the engine's message hash.
func (vm *Engine) checkSig(fullSig, pkBytes []byte) bool {
	if len(fullSig) < 1 {
		return false
	}
	sigBytes := fullSig[:len(fullSig)-1]

	if vm.sigCache != nil && vm.sigCache.Exists(vm.z, sigBytes, pkBytes) {
		return true
	}

	sig, err := ecc.ParseDERSignature(sigBytes)
	if err != nil {
		log.Tracef("unable to parse signature %x: %v", sigBytes, err)
		return false
	}
	pubKey, err := ecc.ParseSEC(pkBytes)
	if err != nil {
		log.Tracef("unable to parse public key %x: %v", pkBytes, err)
		return false
	}

	valid := pubKey.Verify(vm.z, sig)
	if valid && vm.sigCache != nil {
		vm.sigCache.Add(vm.z, sigBytes, pkBytes)
	}
	return valid
}

// CheckErrorCondition returns nil if the script left a non-empty item on
// top of the stack.  The top item is not removed.
func (vm *Engine) CheckErrorCondition() error {
	if len(vm.queue) != 0 {
		return scriptError(ErrInternal, "script has not finished")
	}
	if vm.dstack.Depth() < 1 {
		return scriptError(ErrEmptyStack,
			"stack empty at end of script execution")
	}

	top, err := vm.dstack.PeekByteArray(0)
	if err != nil {
		return err
	}
	if len(top) == 0 {
		log.Tracef("%v", newLogClosure(func() string {
			return "script failed with stack:\n" + vm.dstack.String()
		}))
		return scriptError(ErrEvalFalse,
			"false stack entry at end of script execution")
	}
	return nil
}

// GetStack returns a copy of the data stack, bottom first.
func (vm *Engine) GetStack() [][]byte {
	return vm.dstack.items()
}

// GetAltStack returns a copy of the alternate stack, bottom first.
func (vm *Engine) GetAltStack() [][]byte {
	return vm.astack.items()
}

// Remaining returns the commands not yet executed.
func (vm *Engine) Remaining() []Command {
	return append([]Command(nil), vm.queue...)
}
