// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package register

import (
	"encoding/binary"

	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/util"
)

// Type - register type tag
type Type uint8

// register types
const (
	TypeRaw      Type = 0x01 // free form data, any write replaces it
	TypeAppend   Type = 0x02 // data can only be extended
	TypeReadOnly Type = 0x03 // data fixed at creation
	TypeObject   Type = 0x04 // field map, see Object
)

// Version - current state serialisation version
const Version = 1

// MaximumDataSize - largest data payload of a register
const MaximumDataSize = 1024

// fixed part: version, type, owner, timestamp
const headerSize = 1 + 1 + AddressLength + 8

// IsValid - known register type
func (t Type) IsValid() bool {
	return t >= TypeRaw && t <= TypeObject
}

func (t Type) String() string {
	switch t {
	case TypeRaw:
		return "RAW"
	case TypeAppend:
		return "APPEND"
	case TypeReadOnly:
		return "READONLY"
	case TypeObject:
		return "OBJECT"
	default:
		return "UNKNOWN"
	}
}

// State - a register value
type State struct {
	Version   uint8
	Type      Type
	Owner     Address
	Timestamp uint64
	Data      []byte
	Checksum  uint64
}

// NewState - a state with its checksum set
func NewState(t Type, owner Address, timestamp uint64, data []byte) State {
	s := State{
		Version:   Version,
		Type:      t,
		Owner:     owner,
		Timestamp: timestamp,
		Data:      append([]byte{}, data...),
	}
	s.SetChecksum()
	return s
}

func (s State) body() []byte {
	buffer := make([]byte, 0, headerSize+util.Varint64MaximumBytes+len(s.Data)+8)
	buffer = append(buffer, s.Version, byte(s.Type))
	buffer = append(buffer, s.Owner[:]...)
	buffer = util.AppendUint64(buffer, s.Timestamp)
	return util.AppendBytes(buffer, s.Data)
}

// Pack - serialise including the checksum
func (s State) Pack() []byte {
	return util.AppendUint64(s.body(), s.Checksum)
}

// GetHash - first 8 bytes of the SHA3-256 of the serialised state
// without its checksum, as a little endian number
func (s State) GetHash() uint64 {
	digest := sha3.Sum256(s.body())
	return binary.LittleEndian.Uint64(digest[:8])
}

// SetChecksum - store the current hash
func (s *State) SetChecksum() {
	s.Checksum = s.GetHash()
}

// Verify - structural checks and checksum
func (s State) Verify() error {
	if Version != s.Version {
		return fault.ErrInvalidState
	}
	if !s.Type.IsValid() {
		return fault.ErrInvalidRegisterType
	}
	if len(s.Data) > MaximumDataSize {
		return fault.ErrStateTooLarge
	}
	if s.Checksum != s.GetHash() {
		return fault.ErrChecksumMismatch
	}
	return nil
}

// Clone - deep copy
func (s State) Clone() State {
	c := s
	c.Data = append([]byte{}, s.Data...)
	return c
}

// Unpack - decode a state from the front of a buffer
//
// returns the state and the number of bytes used
func Unpack(buffer []byte) (State, int, error) {
	s := State{}
	if len(buffer) < headerSize {
		return s, 0, fault.ErrBufferTruncated
	}
	s.Version = buffer[0]
	s.Type = Type(buffer[1])
	copy(s.Owner[:], buffer[2:2+AddressLength])
	n := 2 + AddressLength
	s.Timestamp = binary.LittleEndian.Uint64(buffer[n:])
	n += 8

	data, used, err := util.ReadBytes(buffer[n:])
	if nil != err {
		return s, 0, err
	}
	if len(data) > MaximumDataSize {
		return s, 0, fault.ErrStateTooLarge
	}
	s.Data = data
	n += used

	if len(buffer) < n+8 {
		return s, 0, fault.ErrBufferTruncated
	}
	s.Checksum = binary.LittleEndian.Uint64(buffer[n:])
	n += 8

	if Version != s.Version {
		return s, 0, fault.ErrInvalidState
	}
	if !s.Type.IsValid() {
		return s, 0, fault.ErrInvalidRegisterType
	}
	return s, n, nil
}
