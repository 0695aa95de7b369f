// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package contract_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/ledgerd/contract"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/register"
)

var (
	caller = register.NewAddress([]byte("caller"))
	target = register.NewAddress([]byte("target"))
)

func TestReadSequence(t *testing.T) {
	txid := contract.NewTxID([]byte("transaction"))
	state := register.NewState(register.TypeRaw, caller, 7, []byte("data"))

	c := contract.NewBuilder(contract.OpWrite).
		Address(target).
		Uint8(0xaa).
		Uint16(0x1234).
		Uint32(0xdeadbeef).
		Uint64(0x0102030405060708).
		TxID(txid).
		String("hello").
		PreState(state).
		PostState(42).
		Contract(caller, 99)

	op, err := c.ReadUint8()
	require.Nil(t, err)
	assert.Equal(t, uint8(contract.OpWrite), op)

	a, err := c.ReadAddress()
	require.Nil(t, err)
	assert.Equal(t, target, a)

	u8, _ := c.ReadUint8()
	u16, _ := c.ReadUint16()
	u32, _ := c.ReadUint32()
	u64, _ := c.ReadUint64()
	assert.Equal(t, uint8(0xaa), u8)
	assert.Equal(t, uint16(0x1234), u16)
	assert.Equal(t, uint32(0xdeadbeef), u32)
	assert.Equal(t, uint64(0x0102030405060708), u64)

	id, err := c.ReadTxID()
	require.Nil(t, err)
	assert.Equal(t, txid, id)

	s, err := c.ReadString()
	require.Nil(t, err)
	assert.Equal(t, "hello", s)

	marker, _ := c.ReadUint8()
	assert.Equal(t, uint8(contract.PreState), marker)
	pre, err := c.ReadState()
	require.Nil(t, err)
	assert.Equal(t, state, pre)

	marker, _ = c.ReadUint8()
	assert.Equal(t, uint8(contract.PostState), marker)
	checksum, _ := c.ReadUint64()
	assert.Equal(t, uint64(42), checksum)

	assert.True(t, c.End())
	_, err = c.ReadUint8()
	assert.Equal(t, fault.ErrReadPastEnd, err)

	// rewind and read again
	c.Reset()
	assert.False(t, c.End())
	op, _ = c.ReadUint8()
	assert.Equal(t, uint8(contract.OpWrite), op)
}

func TestSeek(t *testing.T) {
	c := contract.NewBuilder(contract.OpCoinbase).Uint64(1).Uint64(2).Contract(caller, 1)

	require.Nil(t, c.Seek(9))
	assert.Equal(t, 9, c.Position())
	v, _ := c.ReadUint64()
	assert.Equal(t, uint64(2), v)
	assert.True(t, c.End())

	assert.Equal(t, fault.ErrReadPastEnd, c.Seek(1))
	assert.Equal(t, fault.ErrReadPastEnd, c.Seek(-1))
}

func TestTruncated(t *testing.T) {
	c := contract.New(caller, 1, []byte{contract.OpWrite, 0x01, 0x02})
	_, _ = c.ReadUint8()
	_, err := c.ReadAddress()
	assert.Equal(t, fault.ErrReadPastEnd, err)

	c = contract.New(caller, 1, []byte{0x05, 'a'})
	_, err = c.ReadBytes()
	assert.Equal(t, fault.ErrReadPastEnd, err)
	assert.Equal(t, 0, c.Position(), "failed read must not move the cursor")
}

func TestPack(t *testing.T) {
	c := contract.NewBuilder(contract.OpAppend).Address(target).Bytes([]byte("more")).Contract(caller, 1234)
	_, _ = c.ReadUint8()

	u, err := contract.Unpack(c.Pack())
	require.Nil(t, err)
	assert.Equal(t, caller, u.Caller)
	assert.Equal(t, uint64(1234), u.Timestamp)
	assert.Equal(t, c.Operations(), u.Operations())
	assert.Equal(t, 0, u.Position(), "unpacked cursor at start")

	_, err = contract.Unpack(append(c.Pack(), 0))
	assert.Equal(t, fault.ErrTrailingBytes, err)

	_, err = contract.Unpack([]byte{1, 2, 3})
	assert.Equal(t, fault.ErrBufferTruncated, err)
}

func TestTxID(t *testing.T) {
	txid := contract.NewTxID([]byte("a transaction"))
	s := txid.String()
	assert.Equal(t, 128, len(s))

	decoded, err := contract.TxIDFromString(s)
	require.Nil(t, err)
	assert.Equal(t, txid, decoded)

	_, err = contract.TxIDFromString("abcd")
	assert.Equal(t, fault.ErrInvalidTransactionID, err)
	_, err = contract.TxIDFromString(strings.Repeat("zz", 64))
	assert.Equal(t, fault.ErrInvalidTransactionID, err)

	_, err = contract.TxIDFromBytes([]byte{1})
	assert.Equal(t, fault.ErrInvalidTransactionID, err)
}

func TestOperationName(t *testing.T) {
	assert.Equal(t, "CREDIT", contract.OperationName(contract.OpCredit))
	assert.Equal(t, "VALIDATE", contract.OperationName(contract.OpValidate))
	assert.Equal(t, "UNKNOWN", contract.OperationName(0xff))
}
