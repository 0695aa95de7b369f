// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package operation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/ledgerd/contract"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/operation"
	"github.com/bitmark-inc/ledgerd/register"
)

// a debit up to the end of its operands
func debitOperands() *contract.Builder {
	return contract.NewBuilder(contract.OpDebit).
		Address(aliceAccount).Address(bobAccount).Uint64(25)
}

func debitPre() register.State {
	o := register.NewAccount(alice, tokenAddress, 1200)
	return o.State
}

func TestDecode(t *testing.T) {
	pre := debitPre()
	script := []byte{0x01, 0x02, 0x03}

	c := debitOperands().PreState(pre).PostState(0x1234).Condition(script).Contract(alice, 1300)

	// decode twice; the second run starts from a moved cursor
	for i := 0; i < 2; i += 1 {
		d, err := operation.Decode(c)
		require.Nil(t, err, "decode error")
		assert.True(t, c.End(), "cursor not at end")

		debit, ok := d.Primitive.(*operation.Debit)
		require.True(t, ok, "not a debit: %T", d.Primitive)

		assert.Equal(t, byte(contract.OpDebit), debit.Opcode(), "opcode")
		assert.Equal(t, aliceAccount, debit.From, "from")
		assert.Equal(t, bobAccount, debit.To, "to")
		assert.Equal(t, uint64(25), debit.Amount, "amount")
		assert.Equal(t, pre.Pack(), debit.PreState.Pack(), "pre-state")
		assert.Equal(t, uint64(0x1234), debit.Checksum, "checksum")

		require.NotNil(t, d.Suffix, "missing suffix")
		assert.Equal(t, byte(contract.OpCondition), d.Suffix.Op, "suffix op")
		assert.Equal(t, script, d.Condition(), "condition")
	}
}

func TestDecodeValidate(t *testing.T) {
	txid := contract.NewTxID([]byte("previous"))
	c := contract.NewBuilder(contract.OpAuthorize).
		TxID(txid).Address(alice).
		Validate(txid, 3).
		Contract(bob, 10)

	d, err := operation.Decode(c)
	require.Nil(t, err, "decode error")

	a, ok := d.Primitive.(*operation.Authorize)
	require.True(t, ok, "not an authorize: %T", d.Primitive)
	assert.Equal(t, txid, a.TxID, "txid")
	assert.Equal(t, alice, a.Genesis, "genesis")

	require.NotNil(t, d.Suffix, "missing suffix")
	assert.Equal(t, byte(contract.OpValidate), d.Suffix.Op, "suffix op")
	assert.Equal(t, contract.Reference{TxID: txid, Index: 3}, d.Suffix.Reference, "reference")
	assert.Nil(t, d.Condition(), "validate is not a condition")
}

func TestDecodeCreate(t *testing.T) {
	c := contract.NewBuilder(contract.OpCreate).
		Address(carol).Uint8(uint8(register.TypeAppend)).String("log").
		PostState(99).
		Contract(carol, 10)

	d, err := operation.Decode(c)
	require.Nil(t, err, "decode error")

	cr, ok := d.Primitive.(*operation.Create)
	require.True(t, ok, "not a create: %T", d.Primitive)
	assert.Equal(t, carol, cr.Address, "address")
	assert.Equal(t, register.TypeAppend, cr.Type, "type")
	assert.Equal(t, []byte("log"), cr.Data, "data")
	assert.Equal(t, uint64(99), cr.Checksum, "checksum")
	assert.Nil(t, d.Suffix, "unexpected suffix")
}

func TestDecodeErrors(t *testing.T) {
	pre := debitPre()

	items := []struct {
		name string
		b    *contract.Builder
		err  error
	}{
		{
			name: "unknown opcode",
			b:    contract.NewBuilder(0xee),
			err:  fault.ErrInvalidOpcode,
		},
		{
			name: "zero opcode",
			b:    contract.NewBuilder(0),
			err:  fault.ErrInvalidOpcode,
		},
		{
			name: "short operands",
			b:    contract.NewBuilder(contract.OpDebit).Address(aliceAccount),
			err:  fault.ErrReadPastEnd,
		},
		{
			name: "bad pre-state marker",
			b:    debitOperands().Uint8(0x09),
			err:  fault.ErrInvalidPreStateMarker,
		},
		{
			name: "bad post-state marker",
			b:    debitOperands().PreState(pre).Uint8(0x09),
			err:  fault.ErrInvalidPostStateMarker,
		},
		{
			name: "short checksum",
			b:    debitOperands().PreState(pre).Uint8(contract.PostState).Uint32(7),
			err:  fault.ErrMissingChecksum,
		},
		{
			name: "second primitive",
			b:    debitOperands().PreState(pre).PostState(1).Op(contract.OpDebit),
			err:  fault.ErrTooManyPrimitives,
		},
		{
			name: "data after suffix",
			b:    debitOperands().PreState(pre).PostState(1).Condition([]byte{1}).Uint8(0),
			err:  fault.ErrTooManyPrimitives,
		},
		{
			name: "truncated suffix",
			b:    debitOperands().PreState(pre).PostState(1).Uint8(contract.OpValidate),
			err:  fault.ErrReadPastEnd,
		},
	}

	for _, item := range items {
		_, err := operation.Decode(item.b.Contract(alice, 10))
		assert.Equal(t, item.err, err, item.name)
	}

	_, err := operation.Decode(contract.New(alice, 10, nil))
	assert.Equal(t, fault.ErrReadPastEnd, err, "no operations")
}
