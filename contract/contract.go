// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package contract - the serialised operation stream of one contract
//
// a contract is immutable once built; reads advance a cursor which
// Reset rewinds, so a contract taken from the mempool can be
// interpreted again from the start
package contract

import (
	"encoding/binary"

	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/register"
	"github.com/bitmark-inc/ledgerd/util"
)

// Contract - operation stream plus the identity and time of its caller
type Contract struct {
	Caller    register.Address
	Timestamp uint64
	ops       []byte
	cursor    int
}

// New - wrap an operation stream
func New(caller register.Address, timestamp uint64, ops []byte) *Contract {
	return &Contract{
		Caller:    caller,
		Timestamp: timestamp,
		ops:       append([]byte{}, ops...),
	}
}

// Operations - the raw stream
func (c *Contract) Operations() []byte {
	return append([]byte{}, c.ops...)
}

// Reset - rewind to the start of the stream
func (c *Contract) Reset() {
	c.cursor = 0
}

// Seek - move the cursor forward by n bytes
func (c *Contract) Seek(n int) error {
	if n < 0 || c.cursor+n > len(c.ops) {
		return fault.ErrReadPastEnd
	}
	c.cursor += n
	return nil
}

// Position - current cursor offset
func (c *Contract) Position() int {
	return c.cursor
}

// End - true when the stream is exhausted
func (c *Contract) End() bool {
	return c.cursor >= len(c.ops)
}

func (c *Contract) next(n int) ([]byte, error) {
	if n < 0 || c.cursor+n > len(c.ops) {
		return nil, fault.ErrReadPastEnd
	}
	b := c.ops[c.cursor : c.cursor+n]
	c.cursor += n
	return b, nil
}

// ReadUint8 - one byte
func (c *Contract) ReadUint8() (uint8, error) {
	b, err := c.next(1)
	if nil != err {
		return 0, err
	}
	return b[0], nil
}

// ReadUint16 - little endian
func (c *Contract) ReadUint16() (uint16, error) {
	b, err := c.next(2)
	if nil != err {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// ReadUint32 - little endian
func (c *Contract) ReadUint32() (uint32, error) {
	b, err := c.next(4)
	if nil != err {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// ReadUint64 - little endian
func (c *Contract) ReadUint64() (uint64, error) {
	b, err := c.next(8)
	if nil != err {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// ReadFixed - exactly n bytes, copied
func (c *Contract) ReadFixed(n int) ([]byte, error) {
	b, err := c.next(n)
	if nil != err {
		return nil, err
	}
	return append([]byte{}, b...), nil
}

// ReadAddress - 256 bit register address
func (c *Contract) ReadAddress() (register.Address, error) {
	b, err := c.next(register.AddressLength)
	if nil != err {
		return register.Address{}, err
	}
	return register.AddressFromBytes(b)
}

// ReadTxID - 512 bit transaction id
func (c *Contract) ReadTxID() (TxID, error) {
	b, err := c.next(TxIDLength)
	if nil != err {
		return TxID{}, err
	}
	return TxIDFromBytes(b)
}

// ReadBytes - varint length prefixed data
func (c *Contract) ReadBytes() ([]byte, error) {
	if c.End() {
		return nil, fault.ErrReadPastEnd
	}
	data, n, err := util.ReadBytes(c.ops[c.cursor:])
	if nil != err {
		return nil, fault.ErrReadPastEnd
	}
	c.cursor += n
	return data, nil
}

// ReadString - varint length prefixed text
func (c *Contract) ReadString() (string, error) {
	b, err := c.ReadBytes()
	return string(b), err
}

// ReadState - a serialised register state
func (c *Contract) ReadState() (register.State, error) {
	s, n, err := register.Unpack(c.ops[c.cursor:])
	if nil != err {
		return register.State{}, err
	}
	c.cursor += n
	return s, nil
}

// Pack - caller, timestamp and stream for storage
func (c *Contract) Pack() []byte {
	buffer := make([]byte, 0, register.AddressLength+8+util.Varint64MaximumBytes+len(c.ops))
	buffer = append(buffer, c.Caller[:]...)
	buffer = util.AppendUint64(buffer, c.Timestamp)
	return util.AppendBytes(buffer, c.ops)
}

// Unpack - decode a stored contract, cursor at the start
func Unpack(buffer []byte) (*Contract, error) {
	if len(buffer) < register.AddressLength+8 {
		return nil, fault.ErrBufferTruncated
	}
	c := &Contract{}
	copy(c.Caller[:], buffer[:register.AddressLength])
	n := register.AddressLength
	c.Timestamp = binary.LittleEndian.Uint64(buffer[n:])
	n += 8

	ops, used, err := util.ReadBytes(buffer[n:])
	if nil != err {
		return nil, err
	}
	if n+used != len(buffer) {
		return nil, fault.ErrTrailingBytes
	}
	c.ops = ops
	return c, nil
}
