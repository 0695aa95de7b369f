// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package keychain

import (
	"encoding/binary"
	"fmt"

	"github.com/bitmark-inc/ledgerd/fault"
)

// State - lifecycle tag of a sector record
type State uint8

// sector states, stored as the first byte of every record
const (
	StateEmpty       State = 0
	StateRead        State = 1
	StateWrite       State = 2
	StateReady       State = 3
	StateTransaction State = 4
)

// HeaderSize - fixed size of the record header
const HeaderSize = 15

// MaximumKeyLength - a key length must fit the uint16 length field
const MaximumKeyLength = 0xffff

// SectorKey - the on-disk index record for one stored value
type SectorKey struct {
	State       State
	Length      uint16
	SectorFile  uint16
	SectorSize  uint16
	SectorStart uint32
	Checksum    uint32
	Key         []byte
}

// NewSectorKey - a ready record for a key
func NewSectorKey(state State, key []byte, sectorFile uint16, sectorStart uint32, sectorSize uint16) SectorKey {
	k := make([]byte, len(key))
	copy(k, key)
	return SectorKey{
		State:       state,
		Length:      uint16(len(key)),
		SectorFile:  sectorFile,
		SectorSize:  sectorSize,
		SectorStart: sectorStart,
		Key:         k,
	}
}

// IsValid - state is one of the known values
func (s State) IsValid() bool {
	return s <= StateTransaction
}

// IsReadable - only ready and in-flight transaction records can be read
func (s State) IsReadable() bool {
	return StateReady == s || StateTransaction == s
}

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "EMPTY"
	case StateRead:
		return "READ"
	case StateWrite:
		return "WRITE"
	case StateReady:
		return "READY"
	case StateTransaction:
		return "TRANSACTION"
	default:
		return fmt.Sprintf("STATE(%d)", uint8(s))
	}
}

// Size - total bytes of the record on disk
func (k SectorKey) Size() int {
	return HeaderSize + int(k.Length)
}

// Pack - header followed by the key bytes
func (k SectorKey) Pack() []byte {
	buffer := make([]byte, HeaderSize, HeaderSize+len(k.Key))
	k.packHeader(buffer)
	return append(buffer, k.Key...)
}

func (k SectorKey) packHeader(buffer []byte) {
	buffer[0] = byte(k.State)
	binary.LittleEndian.PutUint16(buffer[1:3], k.Length)
	binary.LittleEndian.PutUint16(buffer[3:5], k.SectorFile)
	binary.LittleEndian.PutUint16(buffer[5:7], k.SectorSize)
	binary.LittleEndian.PutUint32(buffer[7:11], k.SectorStart)
	binary.LittleEndian.PutUint32(buffer[11:15], k.Checksum)
}

// UnpackHeader - decode the fixed header, the Key field is left nil
func UnpackHeader(buffer []byte) (SectorKey, error) {
	if len(buffer) < HeaderSize {
		return SectorKey{}, fault.ErrBufferTruncated
	}
	k := SectorKey{
		State:       State(buffer[0]),
		Length:      binary.LittleEndian.Uint16(buffer[1:3]),
		SectorFile:  binary.LittleEndian.Uint16(buffer[3:5]),
		SectorSize:  binary.LittleEndian.Uint16(buffer[5:7]),
		SectorStart: binary.LittleEndian.Uint32(buffer[7:11]),
		Checksum:    binary.LittleEndian.Uint32(buffer[11:15]),
	}
	if !k.State.IsValid() {
		return k, fault.ErrInvalidState
	}
	return k, nil
}

// Unpack - decode a header and its trailing key
func Unpack(buffer []byte) (SectorKey, error) {
	k, err := UnpackHeader(buffer)
	if nil != err {
		return k, err
	}
	if len(buffer) < k.Size() {
		return k, fault.ErrBufferTruncated
	}
	k.Key = make([]byte, k.Length)
	copy(k.Key, buffer[HeaderSize:k.Size()])
	return k, nil
}
