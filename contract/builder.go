// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package contract

import (
	"encoding/binary"

	"github.com/bitmark-inc/ledgerd/register"
	"github.com/bitmark-inc/ledgerd/util"
)

// Builder - append fields to an operation stream
//
// every method returns the builder so calls can be chained
type Builder struct {
	buffer []byte
}

// NewBuilder - start a stream with its first opcode
func NewBuilder(op byte) *Builder {
	return &Builder{
		buffer: []byte{op},
	}
}

// Op - one opcode byte
func (b *Builder) Op(op byte) *Builder {
	b.buffer = append(b.buffer, op)
	return b
}

// Uint8 - one byte
func (b *Builder) Uint8(v uint8) *Builder {
	b.buffer = append(b.buffer, v)
	return b
}

// Uint16 - little endian
func (b *Builder) Uint16(v uint16) *Builder {
	buffer := make([]byte, 2)
	binary.LittleEndian.PutUint16(buffer, v)
	b.buffer = append(b.buffer, buffer...)
	return b
}

// Uint32 - little endian
func (b *Builder) Uint32(v uint32) *Builder {
	buffer := make([]byte, 4)
	binary.LittleEndian.PutUint32(buffer, v)
	b.buffer = append(b.buffer, buffer...)
	return b
}

// Uint64 - little endian
func (b *Builder) Uint64(v uint64) *Builder {
	b.buffer = util.AppendUint64(b.buffer, v)
	return b
}

// Fixed - raw bytes with no length prefix
func (b *Builder) Fixed(data []byte) *Builder {
	b.buffer = append(b.buffer, data...)
	return b
}

// Address - 256 bit register address
func (b *Builder) Address(a register.Address) *Builder {
	b.buffer = append(b.buffer, a[:]...)
	return b
}

// TxID - 512 bit transaction id
func (b *Builder) TxID(txid TxID) *Builder {
	b.buffer = append(b.buffer, txid[:]...)
	return b
}

// Bytes - varint length prefixed data
func (b *Builder) Bytes(data []byte) *Builder {
	b.buffer = util.AppendBytes(b.buffer, data)
	return b
}

// String - varint length prefixed text
func (b *Builder) String(s string) *Builder {
	return b.Bytes([]byte(s))
}

// PreState - marker followed by the serialised state
func (b *Builder) PreState(s register.State) *Builder {
	b.buffer = append(b.buffer, PreState)
	b.buffer = append(b.buffer, s.Pack()...)
	return b
}

// PostState - marker followed by the claimed checksum
func (b *Builder) PostState(checksum uint64) *Builder {
	b.buffer = append(b.buffer, PostState)
	return b.Uint64(checksum)
}

// Condition - condition suffix carrying a validation script
func (b *Builder) Condition(script []byte) *Builder {
	b.buffer = append(b.buffer, OpCondition)
	return b.Bytes(script)
}

// Validate - validate suffix naming the contract whose condition is authorised
func (b *Builder) Validate(txid TxID, index uint32) *Builder {
	b.buffer = append(b.buffer, OpValidate)
	return b.TxID(txid).Uint32(index)
}

// Build - copy of the stream so far
func (b *Builder) Build() []byte {
	return append([]byte{}, b.buffer...)
}

// Contract - wrap the stream for a caller
func (b *Builder) Contract(caller register.Address, timestamp uint64) *Contract {
	return New(caller, timestamp, b.buffer)
}
