// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package operation

import (
	"github.com/bitmark-inc/ledgerd/contract"
	"github.com/bitmark-inc/ledgerd/register"
)

// Primitive - the decoded primary operation of a contract
//
// must cast to the correct type
//
// e.g.
//
//	switch p := d.Primitive.(type) {
//	case *operation.Debit:
type Primitive interface {
	Opcode() byte
}

// Transition - the pre-state and claimed post-state checksum carried
// by every operation that changes a register
type Transition struct {
	PreState register.State `json:"preState"`
	Checksum uint64         `json:"checksum"`
}

// Write - replace the data of a raw register or update object fields
type Write struct {
	Address register.Address `json:"address"`
	Data    []byte           `json:"data"`
	Transition
}

// Append - extend the data of an append register
type Append struct {
	Address register.Address `json:"address"`
	Data    []byte           `json:"data"`
	Transition
}

// Create - a new register owned by the caller, no pre-state
type Create struct {
	Address  register.Address `json:"address"`
	Type     register.Type    `json:"type"`
	Data     []byte           `json:"data"`
	Checksum uint64           `json:"checksum"`
}

// Transfer - release a register so the recipient can claim it
type Transfer struct {
	Address   register.Address `json:"address"`
	Recipient register.Address `json:"recipient"`
	Transition
}

// Claim - take ownership of a transferred register
type Claim struct {
	Reference contract.Reference `json:"reference"`
	Address   register.Address   `json:"address"`
	Transition
}

// Coinbase - mint reward, realised later by a credit
type Coinbase struct {
	Genesis register.Address `json:"genesis"`
	Amount  uint64           `json:"amount"`
	Nonce   uint64           `json:"nonce"`
}

// Trust - set the trust score of the caller's trust register and add a stake reward
type Trust struct {
	Score  uint64 `json:"score"`
	Reward uint64 `json:"reward"`
	Transition
}

// Genesis - move the trust balance into stake to begin staking
type Genesis struct {
	Reward uint64 `json:"reward"`
	Transition
}

// Stake - move balance into stake
type Stake struct {
	Amount uint64 `json:"amount"`
	Transition
}

// Unstake - move stake back to balance with a trust penalty
type Unstake struct {
	Amount  uint64 `json:"amount"`
	Penalty uint64 `json:"penalty"`
	Transition
}

// Debit - remove an amount from an account towards a recipient
type Debit struct {
	From   register.Address `json:"from"`
	To     register.Address `json:"to"`
	Amount uint64           `json:"amount"`
	Transition
}

// Credit - receive the amount of a debit or coinbase
type Credit struct {
	Reference contract.Reference `json:"reference"`
	To        register.Address   `json:"to"`
	Proof     register.Address   `json:"proof"`
	Amount    uint64             `json:"amount"`
	Transition
}

// Authorize - authorise a transaction for a genesis
type Authorize struct {
	TxID    contract.TxID    `json:"txId"`
	Genesis register.Address `json:"genesis"`
}

// Legacy - debit an account into a legacy output script
type Legacy struct {
	From   register.Address `json:"from"`
	Amount uint64           `json:"amount"`
	Script []byte           `json:"script"`
	Transition
}

// Opcode - the wire value of each operation
func (*Write) Opcode() byte     { return contract.OpWrite }
func (*Append) Opcode() byte    { return contract.OpAppend }
func (*Create) Opcode() byte    { return contract.OpCreate }
func (*Transfer) Opcode() byte  { return contract.OpTransfer }
func (*Claim) Opcode() byte     { return contract.OpClaim }
func (*Coinbase) Opcode() byte  { return contract.OpCoinbase }
func (*Trust) Opcode() byte     { return contract.OpTrust }
func (*Genesis) Opcode() byte   { return contract.OpGenesis }
func (*Stake) Opcode() byte     { return contract.OpStake }
func (*Unstake) Opcode() byte   { return contract.OpUnstake }
func (*Debit) Opcode() byte     { return contract.OpDebit }
func (*Credit) Opcode() byte    { return contract.OpCredit }
func (*Authorize) Opcode() byte { return contract.OpAuthorize }
func (*Legacy) Opcode() byte    { return contract.OpLegacy }

// Suffix - the optional operation after the primitive
type Suffix struct {
	Op        byte               `json:"op"`
	Script    []byte             `json:"script,omitempty"`    // condition
	Reference contract.Reference `json:"reference,omitempty"` // validate
}

// Decoded - one contract in typed form
type Decoded struct {
	Primitive Primitive `json:"primitive"`
	Suffix    *Suffix   `json:"suffix,omitempty"`
}

// Condition - the condition script, nil when there is none
func (d *Decoded) Condition() []byte {
	if nil == d.Suffix || contract.OpCondition != d.Suffix.Op {
		return nil
	}
	return d.Suffix.Script
}
