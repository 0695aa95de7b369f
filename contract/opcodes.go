// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package contract

// primary operations, exactly one starts every contract
const (
	OpWrite     = 0x10
	OpAppend    = 0x11
	OpCreate    = 0x12
	OpTransfer  = 0x13
	OpClaim     = 0x14
	OpCoinbase  = 0x20
	OpTrust     = 0x21
	OpGenesis   = 0x22
	OpStake     = 0x23
	OpUnstake   = 0x24
	OpDebit     = 0x25
	OpCredit    = 0x26
	OpAuthorize = 0x27
	OpLegacy    = 0x28
)

// suffix operations, at most one follows the primary
const (
	OpCondition = 0x30
	OpValidate  = 0x31
)

// register state markers
const (
	PreState  = 0x01
	PostState = 0x02
)

// validation script opcodes
const (
	// comparators
	OpEquals      = 0x01
	OpLessThan    = 0x02
	OpGreaterThan = 0x03
	OpNotEquals   = 0x04
	OpContains    = 0x05

	// boolean combinators
	OpAnd = 0x10
	OpOr  = 0x11

	// arithmetic
	OpAdd     = 0x20
	OpSub     = 0x21
	OpInc     = 0x22
	OpDec     = 0x23
	OpDiv     = 0x24
	OpMul     = 0x25
	OpExp     = 0x26
	OpMod     = 0x27
	OpSubData = 0x28

	// literals
	OpUint8    = 0x30
	OpUint16   = 0x31
	OpUint32   = 0x32
	OpUint64   = 0x33
	OpUint256  = 0x34
	OpUint512  = 0x35
	OpUint1024 = 0x36
	OpString   = 0x37
	OpBytes    = 0x38

	// register introspection
	OpRegisterTimestamp = 0x40
	OpRegisterOwner     = 0x41
	OpRegisterType      = 0x42
	OpRegisterState     = 0x43
	OpRegisterValue     = 0x44

	// caller of the validating contract
	OpCallerGenesis    = 0x50
	OpCallerTimestamp  = 0x51
	OpCallerOperations = 0x52

	// chain state
	OpLedgerHeight    = 0x60
	OpLedgerSupply    = 0x61
	OpLedgerTimestamp = 0x62

	OpUnified = 0x70

	// hashing
	OpSK256 = 0x80
	OpSK512 = 0x81
)

var operationNames = map[byte]string{
	OpWrite:     "WRITE",
	OpAppend:    "APPEND",
	OpCreate:    "CREATE",
	OpTransfer:  "TRANSFER",
	OpClaim:     "CLAIM",
	OpCoinbase:  "COINBASE",
	OpTrust:     "TRUST",
	OpGenesis:   "GENESIS",
	OpStake:     "STAKE",
	OpUnstake:   "UNSTAKE",
	OpDebit:     "DEBIT",
	OpCredit:    "CREDIT",
	OpAuthorize: "AUTHORIZE",
	OpLegacy:    "LEGACY",
	OpCondition: "CONDITION",
	OpValidate:  "VALIDATE",
}

// OperationName - name of a primary or suffix operation
func OperationName(op byte) string {
	if name, ok := operationNames[op]; ok {
		return name
	}
	return "UNKNOWN"
}
