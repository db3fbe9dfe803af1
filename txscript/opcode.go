// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"bytes"
	"crypto/sha1"
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"golang.org/x/crypto/ripemd160"
)

// These constants are the values of the opcodes the engine knows by name.
// Bytes 0x01 through 0x4b push that many bytes and are only named by the
// three constants below that the package refers to.
const (
	OP_0                   = 0x00 // 0
	OP_FALSE               = 0x00 // 0 - AKA OP_0
	OP_DATA_1              = 0x01 // 1
	OP_DATA_20             = 0x14 // 20
	OP_DATA_75             = 0x4b // 75
	OP_PUSHDATA1           = 0x4c // 76
	OP_PUSHDATA2           = 0x4d // 77
	OP_PUSHDATA4           = 0x4e // 78
	OP_1NEGATE             = 0x4f // 79
	OP_RESERVED            = 0x50 // 80
	OP_1                   = 0x51 // 81 - AKA OP_TRUE
	OP_TRUE                = 0x51 // 81
	OP_2                   = 0x52 // 82
	OP_3                   = 0x53 // 83
	OP_4                   = 0x54 // 84
	OP_5                   = 0x55 // 85
	OP_6                   = 0x56 // 86
	OP_7                   = 0x57 // 87
	OP_8                   = 0x58 // 88
	OP_9                   = 0x59 // 89
	OP_10                  = 0x5a // 90
	OP_11                  = 0x5b // 91
	OP_12                  = 0x5c // 92
	OP_13                  = 0x5d // 93
	OP_14                  = 0x5e // 94
	OP_15                  = 0x5f // 95
	OP_16                  = 0x60 // 96
	OP_NOP                 = 0x61 // 97
	OP_VER                 = 0x62 // 98
	OP_IF                  = 0x63 // 99
	OP_NOTIF               = 0x64 // 100
	OP_VERIF               = 0x65 // 101
	OP_VERNOTIF            = 0x66 // 102
	OP_ELSE                = 0x67 // 103
	OP_ENDIF               = 0x68 // 104
	OP_VERIFY              = 0x69 // 105
	OP_RETURN              = 0x6a // 106
	OP_TOALTSTACK          = 0x6b // 107
	OP_FROMALTSTACK        = 0x6c // 108
	OP_2DROP               = 0x6d // 109
	OP_2DUP                = 0x6e // 110
	OP_3DUP                = 0x6f // 111
	OP_2OVER               = 0x70 // 112
	OP_2ROT                = 0x71 // 113
	OP_2SWAP               = 0x72 // 114
	OP_IFDUP               = 0x73 // 115
	OP_DEPTH               = 0x74 // 116
	OP_DROP                = 0x75 // 117
	OP_DUP                 = 0x76 // 118
	OP_NIP                 = 0x77 // 119
	OP_OVER                = 0x78 // 120
	OP_PICK                = 0x79 // 121
	OP_ROLL                = 0x7a // 122
	OP_ROT                 = 0x7b // 123
	OP_SWAP                = 0x7c // 124
	OP_TUCK                = 0x7d // 125
	OP_CAT                 = 0x7e // 126
	OP_SUBSTR              = 0x7f // 127
	OP_LEFT                = 0x80 // 128
	OP_RIGHT               = 0x81 // 129
	OP_SIZE                = 0x82 // 130
	OP_INVERT              = 0x83 // 131
	OP_AND                 = 0x84 // 132
	OP_OR                  = 0x85 // 133
	OP_XOR                 = 0x86 // 134
	OP_EQUAL               = 0x87 // 135
	OP_EQUALVERIFY         = 0x88 // 136
	OP_RESERVED1           = 0x89 // 137
	OP_RESERVED2           = 0x8a // 138
	OP_1ADD                = 0x8b // 139
	OP_1SUB                = 0x8c // 140
	OP_2MUL                = 0x8d // 141
	OP_2DIV                = 0x8e // 142
	OP_NEGATE              = 0x8f // 143
	OP_ABS                 = 0x90 // 144
	OP_NOT                 = 0x91 // 145
	OP_0NOTEQUAL           = 0x92 // 146
	OP_ADD                 = 0x93 // 147
	OP_SUB                 = 0x94 // 148
	OP_MUL                 = 0x95 // 149
	OP_DIV                 = 0x96 // 150
	OP_MOD                 = 0x97 // 151
	OP_LSHIFT              = 0x98 // 152
	OP_RSHIFT              = 0x99 // 153
	OP_BOOLAND             = 0x9a // 154
	OP_BOOLOR              = 0x9b // 155
	OP_NUMEQUAL            = 0x9c // 156
	OP_NUMEQUALVERIFY      = 0x9d // 157
	OP_NUMNOTEQUAL         = 0x9e // 158
	OP_LESSTHAN            = 0x9f // 159
	OP_GREATERTHAN         = 0xa0 // 160
	OP_LESSTHANOREQUAL     = 0xa1 // 161
	OP_GREATERTHANOREQUAL  = 0xa2 // 162
	OP_MIN                 = 0xa3 // 163
	OP_MAX                 = 0xa4 // 164
	OP_WITHIN              = 0xa5 // 165
	OP_RIPEMD160           = 0xa6 // 166
	OP_SHA1                = 0xa7 // 167
	OP_SHA256              = 0xa8 // 168
	OP_HASH160             = 0xa9 // 169
	OP_HASH256             = 0xaa // 170
	OP_CODESEPARATOR       = 0xab // 171
	OP_CHECKSIG            = 0xac // 172
	OP_CHECKSIGVERIFY      = 0xad // 173
	OP_CHECKMULTISIG       = 0xae // 174
	OP_CHECKMULTISIGVERIFY = 0xaf // 175
	OP_NOP1                = 0xb0 // 176
	OP_NOP2                = 0xb1 // 177
	OP_CHECKLOCKTIMEVERIFY = 0xb1 // 177 - AKA OP_NOP2
	OP_NOP3                = 0xb2 // 178
	OP_CHECKSEQUENCEVERIFY = 0xb2 // 178 - AKA OP_NOP3
	OP_NOP4                = 0xb3 // 179
	OP_NOP5                = 0xb4 // 180
	OP_NOP6                = 0xb5 // 181
	OP_NOP7                = 0xb6 // 182
	OP_NOP8                = 0xb7 // 183
	OP_NOP9                = 0xb8 // 184
	OP_NOP10               = 0xb9 // 185
)

const (
	// MaxOpsPerScript is the default limit on executed non-push opcodes.
	MaxOpsPerScript = 201

	// MaxPubKeysPerMultiSig is the most keys OP_CHECKMULTISIG accepts.
	MaxPubKeysPerMultiSig = 20

	// MaxStackSize is the most items the data and alternate stacks may
	// hold together.
	MaxStackSize = 1000

	// LockTimeThreshold is the number below which a lock time is a block
	// height and at or above which it is a unix timestamp.
	LockTimeThreshold = 5e8
)

// An opcode is one entry of the opcode table.  The handler has access to
// the whole engine: the flow control opcodes work on its command queue, the
// alt stack opcodes on its alternate stack, the signature opcodes on the
// message hash and the lock time opcodes on its transaction context.
type opcode struct {
	value  byte
	name   string
	opfunc func(*opcode, *Engine) error
}

// opcodeArray holds the handler of every byte value.  Entries for unnamed
// values are filled in by init.
var opcodeArray [256]opcode

// namedOpcodes lists the opcodes with a dedicated handler.
var namedOpcodes = []opcode{
	{OP_0, "OP_0", opcodeFalse},
	{OP_PUSHDATA1, "OP_PUSHDATA1", opcodeBarePush},
	{OP_PUSHDATA2, "OP_PUSHDATA2", opcodeBarePush},
	{OP_PUSHDATA4, "OP_PUSHDATA4", opcodeReserved},
	{OP_1NEGATE, "OP_1NEGATE", opcode1Negate},
	{OP_RESERVED, "OP_RESERVED", opcodeReserved},

	{OP_NOP, "OP_NOP", opcodeNop},
	{OP_VER, "OP_VER", opcodeReserved},
	{OP_IF, "OP_IF", opcodeIf},
	{OP_NOTIF, "OP_NOTIF", opcodeIf},
	{OP_VERIF, "OP_VERIF", opcodeReserved},
	{OP_VERNOTIF, "OP_VERNOTIF", opcodeReserved},
	{OP_ELSE, "OP_ELSE", opcodeUnbalanced},
	{OP_ENDIF, "OP_ENDIF", opcodeUnbalanced},
	{OP_VERIFY, "OP_VERIFY", opcodeVerify},
	{OP_RETURN, "OP_RETURN", opcodeReturn},

	{OP_TOALTSTACK, "OP_TOALTSTACK", opcodeToAltStack},
	{OP_FROMALTSTACK, "OP_FROMALTSTACK", opcodeFromAltStack},
	{OP_2DROP, "OP_2DROP", opcode2Drop},
	{OP_2DUP, "OP_2DUP", opcode2Dup},
	{OP_3DUP, "OP_3DUP", opcode3Dup},
	{OP_2OVER, "OP_2OVER", opcode2Over},
	{OP_2ROT, "OP_2ROT", opcode2Rot},
	{OP_2SWAP, "OP_2SWAP", opcode2Swap},
	{OP_IFDUP, "OP_IFDUP", opcodeIfDup},
	{OP_DEPTH, "OP_DEPTH", opcodeDepth},
	{OP_DROP, "OP_DROP", opcodeDrop},
	{OP_DUP, "OP_DUP", opcodeDup},
	{OP_NIP, "OP_NIP", opcodeNip},
	{OP_OVER, "OP_OVER", opcodeOver},
	{OP_PICK, "OP_PICK", opcodePick},
	{OP_ROLL, "OP_ROLL", opcodeRoll},
	{OP_ROT, "OP_ROT", opcodeRot},
	{OP_SWAP, "OP_SWAP", opcodeSwap},
	{OP_TUCK, "OP_TUCK", opcodeTuck},

	{OP_CAT, "OP_CAT", opcodeDisabled},
	{OP_SUBSTR, "OP_SUBSTR", opcodeDisabled},
	{OP_LEFT, "OP_LEFT", opcodeDisabled},
	{OP_RIGHT, "OP_RIGHT", opcodeDisabled},
	{OP_SIZE, "OP_SIZE", opcodeSize},

	{OP_INVERT, "OP_INVERT", opcodeDisabled},
	{OP_AND, "OP_AND", opcodeDisabled},
	{OP_OR, "OP_OR", opcodeDisabled},
	{OP_XOR, "OP_XOR", opcodeDisabled},
	{OP_EQUAL, "OP_EQUAL", opcodeEqual},
	{OP_EQUALVERIFY, "OP_EQUALVERIFY", opcodeEqualVerify},
	{OP_RESERVED1, "OP_RESERVED1", opcodeReserved},
	{OP_RESERVED2, "OP_RESERVED2", opcodeReserved},

	{OP_1ADD, "OP_1ADD", opcode1Add},
	{OP_1SUB, "OP_1SUB", opcode1Sub},
	{OP_2MUL, "OP_2MUL", opcodeDisabled},
	{OP_2DIV, "OP_2DIV", opcodeDisabled},
	{OP_NEGATE, "OP_NEGATE", opcodeNegate},
	{OP_ABS, "OP_ABS", opcodeAbs},
	{OP_NOT, "OP_NOT", opcodeNot},
	{OP_0NOTEQUAL, "OP_0NOTEQUAL", opcode0NotEqual},
	{OP_ADD, "OP_ADD", opcodeAdd},
	{OP_SUB, "OP_SUB", opcodeSub},
	{OP_MUL, "OP_MUL", opcodeDisabled},
	{OP_DIV, "OP_DIV", opcodeDisabled},
	{OP_MOD, "OP_MOD", opcodeDisabled},
	{OP_LSHIFT, "OP_LSHIFT", opcodeDisabled},
	{OP_RSHIFT, "OP_RSHIFT", opcodeDisabled},
	{OP_BOOLAND, "OP_BOOLAND", opcodeBoolAnd},
	{OP_BOOLOR, "OP_BOOLOR", opcodeBoolOr},
	{OP_NUMEQUAL, "OP_NUMEQUAL", opcodeNumEqual},
	{OP_NUMEQUALVERIFY, "OP_NUMEQUALVERIFY", opcodeNumEqualVerify},
	{OP_NUMNOTEQUAL, "OP_NUMNOTEQUAL", opcodeNumNotEqual},
	{OP_LESSTHAN, "OP_LESSTHAN", opcodeLessThan},
	{OP_GREATERTHAN, "OP_GREATERTHAN", opcodeGreaterThan},
	{OP_LESSTHANOREQUAL, "OP_LESSTHANOREQUAL", opcodeLessThanOrEqual},
	{OP_GREATERTHANOREQUAL, "OP_GREATERTHANOREQUAL", opcodeGreaterThanOrEqual},
	{OP_MIN, "OP_MIN", opcodeMin},
	{OP_MAX, "OP_MAX", opcodeMax},
	{OP_WITHIN, "OP_WITHIN", opcodeWithin},

	{OP_RIPEMD160, "OP_RIPEMD160", opcodeRipemd160},
	{OP_SHA1, "OP_SHA1", opcodeSha1},
	{OP_SHA256, "OP_SHA256", opcodeSha256},
	{OP_HASH160, "OP_HASH160", opcodeHash160},
	{OP_HASH256, "OP_HASH256", opcodeHash256},
	{OP_CODESEPARATOR, "OP_CODESEPARATOR", opcodeNop},
	{OP_CHECKSIG, "OP_CHECKSIG", opcodeCheckSig},
	{OP_CHECKSIGVERIFY, "OP_CHECKSIGVERIFY", opcodeCheckSigVerify},
	{OP_CHECKMULTISIG, "OP_CHECKMULTISIG", opcodeCheckMultiSig},
	{OP_CHECKMULTISIGVERIFY, "OP_CHECKMULTISIGVERIFY", opcodeCheckMultiSigVerify},

	{OP_NOP1, "OP_NOP1", opcodeNop},
	{OP_CHECKLOCKTIMEVERIFY, "OP_CHECKLOCKTIMEVERIFY", opcodeCheckLockTimeVerify},
	{OP_CHECKSEQUENCEVERIFY, "OP_CHECKSEQUENCEVERIFY", opcodeCheckSequenceVerify},
	{OP_NOP4, "OP_NOP4", opcodeNop},
	{OP_NOP5, "OP_NOP5", opcodeNop},
	{OP_NOP6, "OP_NOP6", opcodeNop},
	{OP_NOP7, "OP_NOP7", opcodeNop},
	{OP_NOP8, "OP_NOP8", opcodeNop},
	{OP_NOP9, "OP_NOP9", opcodeNop},
	{OP_NOP10, "OP_NOP10", opcodeNop},
}

func init() {
	for i := range opcodeArray {
		op := byte(i)
		switch {
		case op >= OP_DATA_1 && op <= OP_DATA_75:
			opcodeArray[i] = opcode{op, fmt.Sprintf("OP_DATA_%d", op),
				opcodeBarePush}
		case op >= OP_1 && op <= OP_16:
			opcodeArray[i] = opcode{op, fmt.Sprintf("OP_%d", op-OP_1+1),
				opcodeN}
		default:
			opcodeArray[i] = opcode{op, fmt.Sprintf("OP_UNKNOWN%d", op),
				opcodeReserved}
		}
	}
	for _, op := range namedOpcodes {
		opcodeArray[op.value] = op
	}
}

// isCountedOp reports whether executing op counts towards MaxOpsPerScript.
func isCountedOp(op byte) bool {
	return op > OP_16
}

// *******************************************
// Opcode implementation functions start here.
// *******************************************

// opcodeDisabled is the handler for opcodes removed from the language.
func opcodeDisabled(op *opcode, vm *Engine) error {
	str := fmt.Sprintf("attempt to execute disabled opcode %s", op.name)
	return scriptError(ErrDisabledOpcode, str)
}

// opcodeReserved is the handler for reserved and undefined opcodes.
func opcodeReserved(op *opcode, vm *Engine) error {
	str := fmt.Sprintf("attempt to execute reserved opcode %s", op.name)
	return scriptError(ErrReservedOpcode, str)
}

// opcodeBarePush is the handler for a push opcode built with Op instead of
// Push, which has no data attached.
func opcodeBarePush(op *opcode, vm *Engine) error {
	str := fmt.Sprintf("attempt to execute %s without push data", op.name)
	return scriptError(ErrReservedOpcode, str)
}

// opcodeFalse pushes an empty item.
func opcodeFalse(op *opcode, vm *Engine) error {
	vm.dstack.PushByteArray(nil)
	return nil
}

// opcode1Negate pushes -1.
func opcode1Negate(op *opcode, vm *Engine) error {
	vm.dstack.PushInt(scriptNum(-1))
	return nil
}

// opcodeN pushes the number 1 through 16 the opcode names.
func opcodeN(op *opcode, vm *Engine) error {
	vm.dstack.PushInt(scriptNum(op.value - (OP_1 - 1)))
	return nil
}

func opcodeNop(op *opcode, vm *Engine) error {
	return nil
}

// opcodeIf pops the condition and keeps the branch it selects at the front
// of the command queue, discarding the other one up to the matching
// OP_ENDIF.  OP_NOTIF selects the opposite branch.
func opcodeIf(op *opcode, vm *Engine) error {
	if vm.dstack.Depth() < 1 {
		str := fmt.Sprintf("%s requires a condition on the stack",
			op.name)
		return scriptError(ErrInvalidStackOperation, str)
	}

	taken, skipped, rest, err := splitBranches(vm.queue)
	if err != nil {
		return err
	}

	cond, err := vm.dstack.PopBool()
	if err != nil {
		return err
	}
	if op.value == OP_NOTIF {
		cond = !cond
	}
	if !cond {
		taken = skipped
	}

	queue := make([]Command, 0, len(taken)+len(rest))
	queue = append(queue, taken...)
	vm.queue = append(queue, rest...)
	return nil
}

// splitBranches splits the commands following an OP_IF into the true
// branch, the false branch and whatever follows the matching OP_ENDIF.
// Every OP_ELSE at the outer level switches which branch collects the
// commands after it.
func splitBranches(queue []Command) (trueCmds, falseCmds, rest []Command, err error) {
	depth := 0
	inTrue := true
	for i, cmd := range queue {
		switch {
		case cmd.isOpcode(OP_IF) || cmd.isOpcode(OP_NOTIF):
			depth++

		case cmd.isOpcode(OP_ELSE) && depth == 0:
			inTrue = !inTrue
			continue

		case cmd.isOpcode(OP_ENDIF):
			if depth == 0 {
				return trueCmds, falseCmds, queue[i+1:], nil
			}
			depth--
		}

		if inTrue {
			trueCmds = append(trueCmds, cmd)
		} else {
			falseCmds = append(falseCmds, cmd)
		}
	}
	return nil, nil, nil, scriptError(ErrUnbalancedConditional,
		"end of script reached in conditional execution")
}

// opcodeUnbalanced handles OP_ELSE and OP_ENDIF when they are executed,
// which only happens without a preceding OP_IF.
func opcodeUnbalanced(op *opcode, vm *Engine) error {
	str := fmt.Sprintf("encountered %s with no matching opcode to begin "+
		"conditional execution", op.name)
	return scriptError(ErrUnbalancedConditional, str)
}

// abstractVerify pops the top item and returns an error with the given code
// if it is false.
func abstractVerify(op *opcode, vm *Engine, c ErrorCode) error {
	verified, err := vm.dstack.PopBool()
	if err != nil {
		return err
	}
	if !verified {
		str := fmt.Sprintf("%s failed", op.name)
		return scriptError(c, str)
	}
	return nil
}

func opcodeVerify(op *opcode, vm *Engine) error {
	return abstractVerify(op, vm, ErrVerify)
}

func opcodeReturn(op *opcode, vm *Engine) error {
	return scriptError(ErrEarlyReturn, "script returned early")
}

// verifyLockTime checks that lockTime is satisfied by txLockTime, where both
// must be on the same side of threshold.
func verifyLockTime(txLockTime, threshold, lockTime int64) error {
	if !((txLockTime < threshold && lockTime < threshold) ||
		(txLockTime >= threshold && lockTime >= threshold)) {
		str := fmt.Sprintf("mismatched locktime types -- tx locktime "+
			"%d, stack locktime %d", txLockTime, lockTime)
		return scriptError(ErrUnsatisfiedLockTime, str)
	}

	if lockTime > txLockTime {
		str := fmt.Sprintf("locktime requirement not satisfied -- "+
			"locktime is greater than the transaction locktime: "+
			"%d > %d", lockTime, txLockTime)
		return scriptError(ErrUnsatisfiedLockTime, str)
	}
	return nil
}

// peekLockTime returns the top item as a non-negative 5 byte number.
func peekLockTime(vm *Engine) (int64, error) {
	n, err := vm.dstack.PeekInt(0, lockTimeScriptNumLen)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		str := fmt.Sprintf("negative lock time: %d", n)
		return 0, scriptError(ErrNegativeLockTime, str)
	}
	return int64(n), nil
}

// opcodeCheckLockTimeVerify checks the top item against the lock time of
// the transaction context.  Without a context it is OP_NOP2.
func opcodeCheckLockTimeVerify(op *opcode, vm *Engine) error {
	if vm.tx == nil {
		return nil
	}

	lockTime, err := peekLockTime(vm)
	if err != nil {
		return err
	}
	if err := verifyLockTime(int64(vm.tx.LockTime), LockTimeThreshold,
		lockTime); err != nil {
		return err
	}

	// A finalized input ignores the transaction lock time, which would let
	// it bypass the check.
	if vm.tx.Sequence == wire.MaxTxInSequenceNum {
		return scriptError(ErrUnsatisfiedLockTime,
			"transaction input is finalized")
	}
	return nil
}

// opcodeCheckSequenceVerify checks the top item against the relative lock
// time in the input sequence of the transaction context.  Without a context
// it is OP_NOP3.
func opcodeCheckSequenceVerify(op *opcode, vm *Engine) error {
	if vm.tx == nil {
		return nil
	}

	sequence, err := peekLockTime(vm)
	if err != nil {
		return err
	}

	// Operands with the disable flag set are left for future soft forks.
	if sequence&int64(wire.SequenceLockTimeDisabled) != 0 {
		return nil
	}

	if vm.tx.Version < 2 {
		str := fmt.Sprintf("invalid transaction version: %d",
			vm.tx.Version)
		return scriptError(ErrUnsatisfiedLockTime, str)
	}

	txSequence := int64(vm.tx.Sequence)
	if txSequence&int64(wire.SequenceLockTimeDisabled) != 0 {
		str := fmt.Sprintf("transaction sequence has sequence "+
			"locktime disabled bit set: 0x%x", txSequence)
		return scriptError(ErrUnsatisfiedLockTime, str)
	}

	lockTimeMask := int64(wire.SequenceLockTimeIsSeconds |
		wire.SequenceLockTimeMask)
	return verifyLockTime(txSequence&lockTimeMask,
		wire.SequenceLockTimeIsSeconds, sequence&lockTimeMask)
}

// opcodeToAltStack moves the top data stack item to the alternate stack.
func opcodeToAltStack(op *opcode, vm *Engine) error {
	so, err := vm.dstack.PopByteArray()
	if err != nil {
		return err
	}
	vm.astack.PushByteArray(so)
	return nil
}

// opcodeFromAltStack moves the top alternate stack item to the data stack.
func opcodeFromAltStack(op *opcode, vm *Engine) error {
	so, err := vm.astack.PopByteArray()
	if err != nil {
		return scriptError(ErrInvalidAltStackOperation,
			"OP_FROMALTSTACK with an empty alternate stack")
	}
	vm.dstack.PushByteArray(so)
	return nil
}

func opcode2Drop(op *opcode, vm *Engine) error {
	return vm.dstack.DropN(2)
}

func opcode2Dup(op *opcode, vm *Engine) error {
	return vm.dstack.DupN(2)
}

func opcode3Dup(op *opcode, vm *Engine) error {
	return vm.dstack.DupN(3)
}

func opcode2Over(op *opcode, vm *Engine) error {
	return vm.dstack.OverN(2)
}

func opcode2Rot(op *opcode, vm *Engine) error {
	return vm.dstack.RotN(2)
}

func opcode2Swap(op *opcode, vm *Engine) error {
	return vm.dstack.SwapN(2)
}

// opcodeIfDup duplicates the top item when it is true.
func opcodeIfDup(op *opcode, vm *Engine) error {
	so, err := vm.dstack.PeekByteArray(0)
	if err != nil {
		return err
	}
	if asBool(so) {
		vm.dstack.PushByteArray(so)
	}
	return nil
}

// opcodeDepth pushes the number of items on the data stack.
func opcodeDepth(op *opcode, vm *Engine) error {
	vm.dstack.PushInt(scriptNum(vm.dstack.Depth()))
	return nil
}

func opcodeDrop(op *opcode, vm *Engine) error {
	return vm.dstack.DropN(1)
}

func opcodeDup(op *opcode, vm *Engine) error {
	return vm.dstack.DupN(1)
}

func opcodeNip(op *opcode, vm *Engine) error {
	return vm.dstack.NipN(1)
}

func opcodeOver(op *opcode, vm *Engine) error {
	return vm.dstack.OverN(1)
}

// opcodePick pops n and copies the nth remaining item to the top.
func opcodePick(op *opcode, vm *Engine) error {
	val, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	return vm.dstack.PickN(val.Int32())
}

// opcodeRoll pops n and moves the nth remaining item to the top.
func opcodeRoll(op *opcode, vm *Engine) error {
	val, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	return vm.dstack.RollN(val.Int32())
}

func opcodeRot(op *opcode, vm *Engine) error {
	return vm.dstack.RotN(1)
}

func opcodeSwap(op *opcode, vm *Engine) error {
	return vm.dstack.SwapN(1)
}

func opcodeTuck(op *opcode, vm *Engine) error {
	return vm.dstack.Tuck()
}

// opcodeSize pushes the length of the top item, leaving the item in place.
func opcodeSize(op *opcode, vm *Engine) error {
	so, err := vm.dstack.PeekByteArray(0)
	if err != nil {
		return err
	}
	vm.dstack.PushInt(scriptNum(len(so)))
	return nil
}

// opcodeEqual pops two items and pushes whether they are byte-equal.
func opcodeEqual(op *opcode, vm *Engine) error {
	a, err := vm.dstack.PopByteArray()
	if err != nil {
		return err
	}
	b, err := vm.dstack.PopByteArray()
	if err != nil {
		return err
	}
	vm.dstack.PushBool(bytes.Equal(a, b))
	return nil
}

func opcodeEqualVerify(op *opcode, vm *Engine) error {
	if err := opcodeEqual(op, vm); err != nil {
		return err
	}
	return abstractVerify(op, vm, ErrEqualVerify)
}

// unaryNumOp pops one number and pushes fn of it.
func unaryNumOp(vm *Engine, fn func(scriptNum) scriptNum) error {
	m, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	vm.dstack.PushInt(fn(m))
	return nil
}

// binaryNumOp pops b then a and pushes fn(a, b).
func binaryNumOp(vm *Engine, fn func(a, b scriptNum) scriptNum) error {
	v0, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	v1, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	vm.dstack.PushInt(fn(v1, v0))
	return nil
}

// boolNum converts a boolean to the numbers 1 and 0.
func boolNum(b bool) scriptNum {
	if b {
		return 1
	}
	return 0
}

func opcode1Add(op *opcode, vm *Engine) error {
	return unaryNumOp(vm, func(m scriptNum) scriptNum { return m + 1 })
}

func opcode1Sub(op *opcode, vm *Engine) error {
	return unaryNumOp(vm, func(m scriptNum) scriptNum { return m - 1 })
}

func opcodeNegate(op *opcode, vm *Engine) error {
	return unaryNumOp(vm, func(m scriptNum) scriptNum { return -m })
}

func opcodeAbs(op *opcode, vm *Engine) error {
	return unaryNumOp(vm, func(m scriptNum) scriptNum {
		if m < 0 {
			return -m
		}
		return m
	})
}

// opcodeNot pushes 1 for 0 and 0 for anything else.
func opcodeNot(op *opcode, vm *Engine) error {
	return unaryNumOp(vm, func(m scriptNum) scriptNum {
		return boolNum(m == 0)
	})
}

func opcode0NotEqual(op *opcode, vm *Engine) error {
	return unaryNumOp(vm, func(m scriptNum) scriptNum {
		return boolNum(m != 0)
	})
}

func opcodeAdd(op *opcode, vm *Engine) error {
	return binaryNumOp(vm, func(a, b scriptNum) scriptNum { return a + b })
}

// opcodeSub pushes a - b where b is the top item.
func opcodeSub(op *opcode, vm *Engine) error {
	return binaryNumOp(vm, func(a, b scriptNum) scriptNum { return a - b })
}

func opcodeBoolAnd(op *opcode, vm *Engine) error {
	return binaryNumOp(vm, func(a, b scriptNum) scriptNum {
		return boolNum(a != 0 && b != 0)
	})
}

func opcodeBoolOr(op *opcode, vm *Engine) error {
	return binaryNumOp(vm, func(a, b scriptNum) scriptNum {
		return boolNum(a != 0 || b != 0)
	})
}

func opcodeNumEqual(op *opcode, vm *Engine) error {
	return binaryNumOp(vm, func(a, b scriptNum) scriptNum {
		return boolNum(a == b)
	})
}

func opcodeNumEqualVerify(op *opcode, vm *Engine) error {
	if err := opcodeNumEqual(op, vm); err != nil {
		return err
	}
	return abstractVerify(op, vm, ErrNumEqualVerify)
}

func opcodeNumNotEqual(op *opcode, vm *Engine) error {
	return binaryNumOp(vm, func(a, b scriptNum) scriptNum {
		return boolNum(a != b)
	})
}

func opcodeLessThan(op *opcode, vm *Engine) error {
	return binaryNumOp(vm, func(a, b scriptNum) scriptNum {
		return boolNum(a < b)
	})
}

func opcodeGreaterThan(op *opcode, vm *Engine) error {
	return binaryNumOp(vm, func(a, b scriptNum) scriptNum {
		return boolNum(a > b)
	})
}

func opcodeLessThanOrEqual(op *opcode, vm *Engine) error {
	return binaryNumOp(vm, func(a, b scriptNum) scriptNum {
		return boolNum(a <= b)
	})
}

func opcodeGreaterThanOrEqual(op *opcode, vm *Engine) error {
	return binaryNumOp(vm, func(a, b scriptNum) scriptNum {
		return boolNum(a >= b)
	})
}

func opcodeMin(op *opcode, vm *Engine) error {
	return binaryNumOp(vm, func(a, b scriptNum) scriptNum {
		if a < b {
			return a
		}
		return b
	})
}

func opcodeMax(op *opcode, vm *Engine) error {
	return binaryNumOp(vm, func(a, b scriptNum) scriptNum {
		if a > b {
			return a
		}
		return b
	})
}

// opcodeWithin pops max, min and x and pushes whether min <= x < max.
func opcodeWithin(op *opcode, vm *Engine) error {
	maxVal, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	minVal, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	x, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	vm.dstack.PushBool(x >= minVal && x < maxVal)
	return nil
}

// hashOp replaces the top item with fn of it.
func hashOp(vm *Engine, fn func([]byte) []byte) error {
	buf, err := vm.dstack.PopByteArray()
	if err != nil {
		return err
	}
	vm.dstack.PushByteArray(fn(buf))
	return nil
}

func calcRipemd160(buf []byte) []byte {
	h := ripemd160.New()
	h.Write(buf)
	return h.Sum(nil)
}

func calcSha1(buf []byte) []byte {
	hash := sha1.Sum(buf)
	return hash[:]
}

func opcodeRipemd160(op *opcode, vm *Engine) error {
	return hashOp(vm, calcRipemd160)
}

func opcodeSha1(op *opcode, vm *Engine) error {
	return hashOp(vm, calcSha1)
}

func opcodeSha256(op *opcode, vm *Engine) error {
	return hashOp(vm, chainhash.HashB)
}

func opcodeHash160(op *opcode, vm *Engine) error {
	return hashOp(vm, btcutil.Hash160)
}

func opcodeHash256(op *opcode, vm *Engine) error {
	return hashOp(vm, chainhash.DoubleHashB)
}

// opcodeCheckSig pops a public key and a signature and pushes whether the
// signature is valid for the engine's message hash.  The signature is DER
// followed by one hash type byte and the key is SEC encoded.  Encodings
// that do not parse count as an invalid signature.
func opcodeCheckSig(op *opcode, vm *Engine) error {
	pkBytes, err := vm.dstack.PopByteArray()
	if err != nil {
		return err
	}
	fullSig, err := vm.dstack.PopByteArray()
	if err != nil {
		return err
	}

	vm.dstack.PushBool(vm.checkSig(fullSig, pkBytes))
	return nil
}

func opcodeCheckSigVerify(op *opcode, vm *Engine) error {
	if err := opcodeCheckSig(op, vm); err != nil {
		return err
	}
	return abstractVerify(op, vm, ErrCheckSigVerify)
}

// popCount pops a number and checks it is in [0, limit].
func popCount(vm *Engine, limit int, c ErrorCode, what string) (int, error) {
	n, err := vm.dstack.PopInt()
	if err != nil {
		return 0, err
	}
	if n < 0 || int(n) > limit {
		str := fmt.Sprintf("number of %s %d is not in [0, %d]", what,
			n, limit)
		return 0, scriptError(c, str)
	}
	return int(n), nil
}

// opcodeCheckMultiSig pops a key count, the keys, a signature count, the
// signatures and one extra unused item, then pushes whether every
// signature matches one of the keys in order.
//
// Stack transformation:
// [... dummy [sig ...] numsigs [pubkey ...] numpubkeys] -> [... bool]
func opcodeCheckMultiSig(op *opcode, vm *Engine) error {
	numPubKeys, err := popCount(vm, MaxPubKeysPerMultiSig,
		ErrInvalidPubKeyCount, "pubkeys")
	if err != nil {
		return err
	}

	vm.numOps += numPubKeys
	if vm.numOps > vm.maxOps {
		str := fmt.Sprintf("exceeded max operation limit of %d",
			vm.maxOps)
		return scriptError(ErrTooManyOperations, str)
	}

	pubKeys := make([][]byte, numPubKeys)
	for i := range pubKeys {
		if pubKeys[i], err = vm.dstack.PopByteArray(); err != nil {
			return err
		}
	}

	numSigs, err := popCount(vm, numPubKeys, ErrInvalidSignatureCount,
		"signatures")
	if err != nil {
		return err
	}
	sigs := make([][]byte, numSigs)
	for i := range sigs {
		if sigs[i], err = vm.dstack.PopByteArray(); err != nil {
			return err
		}
	}

	// Consensus pops one more item than it uses, so every caller has to
	// provide it.
	if _, err := vm.dstack.PopByteArray(); err != nil {
		return err
	}

	// Items were popped top first, so walk both lists from the end to
	// match them in the order they were pushed.
	success := true
	pubKeyIdx := numPubKeys - 1
	for sigIdx := numSigs - 1; sigIdx >= 0; sigIdx-- {
		matched := false
		for pubKeyIdx >= 0 && pubKeyIdx >= sigIdx {
			pk := pubKeys[pubKeyIdx]
			pubKeyIdx--
			if vm.checkSig(sigs[sigIdx], pk) {
				matched = true
				break
			}
		}
		if !matched {
			success = false
			break
		}
	}

	vm.dstack.PushBool(success)
	return nil
}

func opcodeCheckMultiSigVerify(op *opcode, vm *Engine) error {
	if err := opcodeCheckMultiSig(op, vm); err != nil {
		return err
	}
	return abstractVerify(op, vm, ErrCheckMultiSigVerify)
}
