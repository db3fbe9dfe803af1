// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package txscript implements the bitcoin transaction script language.

This package provides data structures and functions to parse, serialize and
execute bitcoin scripts against a message hash.

Script Overview

Bitcoin transaction scripts are written in a stack-based, FORTH-like
language.  A script is a sequence of commands, each either a data push or an
opcode.  Scripts are processed from left to right and do not provide loops.

A script is serialized as a varint length followed by its commands.  Pushes
of up to 75 bytes use their length as the opcode, longer pushes use
OP_PUSHDATA1 or OP_PUSHDATA2, and a single push may not exceed 520 bytes.

Execution

An Engine consumes a queue of commands.  OP_IF and OP_NOTIF rewrite the queue
so only the selected branch remains, the signature opcodes verify against
the message hash given to NewEngine, and the lock time opcodes compare
against an optional TxContext.  When a push is followed by exactly
OP_HASH160 <20 bytes> OP_EQUAL, the pushed element is treated as a
pay-to-script-hash redeem script: its hash is checked and its commands are
run next.

A script succeeds when it finishes with a non-empty item on top of the
stack.

Errors

Errors returned by this package are of type txscript.Error and carry an
ErrorCode.  IsErrorCode tests for a specific code, and ErrorCode.IsEvalFailure
separates scripts that failed to evaluate from scripts that could not be
decoded.
*/
package txscript
