// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package register

import (
	"encoding/binary"

	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/util"
)

// FieldType - type of an object field value
type FieldType uint8

// field types
const (
	FieldUint8   FieldType = 0x01
	FieldUint16  FieldType = 0x02
	FieldUint32  FieldType = 0x03
	FieldUint64  FieldType = 0x04
	FieldString  FieldType = 0x05
	FieldBytes   FieldType = 0x06
	FieldAddress FieldType = 0x07
)

// well known field names
const (
	FieldBalance = "balance"
	FieldSupply  = "supply"
	FieldStake   = "stake"
	FieldToken   = "token"
	FieldTrust   = "trust"
)

const flagMutable = 0x01

// IsNumber - the field holds an unsigned integer
func (t FieldType) IsNumber() bool {
	return t >= FieldUint8 && t <= FieldUint64
}

// width in bytes of a numeric field
func (t FieldType) width() int {
	switch t {
	case FieldUint8:
		return 1
	case FieldUint16:
		return 2
	case FieldUint32:
		return 4
	case FieldUint64:
		return 8
	}
	return 0
}

// Field - one named value of an object
type Field struct {
	Type    FieldType
	Mutable bool
	Number  uint64 // numeric types
	Bytes   []byte // string, bytes and address types
}

// Standard - recognised object layouts
type Standard uint8

// object standards
const (
	StandardNone Standard = iota
	StandardAccount
	StandardTrust
	StandardToken
)

func (s Standard) String() string {
	switch s {
	case StandardAccount:
		return "ACCOUNT"
	case StandardTrust:
		return "TRUST"
	case StandardToken:
		return "TOKEN"
	default:
		return "OBJECT"
	}
}

// Object - an OBJECT register with its fields decoded
//
// field changes are encoded back into State.Data immediately; the
// checksum is left for the caller to set
type Object struct {
	State
	fields map[string]*Field
	names  []string
}

// NewObject - an object register with no fields
func NewObject(owner Address, timestamp uint64) Object {
	o := Object{
		State: State{
			Version:   Version,
			Type:      TypeObject,
			Owner:     owner,
			Timestamp: timestamp,
		},
		fields: make(map[string]*Field),
	}
	o.encode()
	return o
}

// NewAccount - balance in one token
func NewAccount(owner Address, token Address, timestamp uint64) Object {
	o := NewObject(owner, timestamp)
	o.mustAdd(FieldBalance, Field{Type: FieldUint64, Mutable: true})
	o.mustAdd(FieldToken, Field{Type: FieldAddress, Bytes: token[:]})
	o.SetChecksum()
	return o
}

// NewTrust - the trust account of a signature chain
func NewTrust(owner Address, timestamp uint64) Object {
	o := NewObject(owner, timestamp)
	o.mustAdd(FieldBalance, Field{Type: FieldUint64, Mutable: true})
	o.mustAdd(FieldTrust, Field{Type: FieldUint64, Mutable: true})
	o.mustAdd(FieldStake, Field{Type: FieldUint64, Mutable: true})
	o.mustAdd(FieldToken, Field{Type: FieldAddress, Bytes: make([]byte, AddressLength)})
	o.SetChecksum()
	return o
}

// NewToken - a token whose whole supply starts in its own balance
func NewToken(owner Address, token Address, supply uint64, timestamp uint64) Object {
	o := NewObject(owner, timestamp)
	o.mustAdd(FieldBalance, Field{Type: FieldUint64, Mutable: true, Number: supply})
	o.mustAdd(FieldSupply, Field{Type: FieldUint64, Number: supply})
	o.mustAdd(FieldToken, Field{Type: FieldAddress, Bytes: token[:]})
	o.SetChecksum()
	return o
}

// ObjectFromState - decode the fields of an OBJECT register
func ObjectFromState(s State) (Object, error) {
	if TypeObject != s.Type {
		return Object{}, fault.ErrInvalidObject
	}
	o := Object{
		State: s.Clone(),
	}
	err := o.Parse()
	if nil != err {
		return Object{}, err
	}
	return o, nil
}

// Parse - rebuild the field map from State.Data
func (o *Object) Parse() error {
	o.fields = make(map[string]*Field)
	o.names = nil

	buffer := o.Data
	count, n := util.FromVarint64(buffer)
	if 0 == n {
		return fault.ErrInvalidObject
	}
	buffer = buffer[n:]

	for i := uint64(0); i < count; i += 1 {
		name, n, err := util.ReadBytes(buffer)
		if nil != err {
			return fault.ErrInvalidObject
		}
		buffer = buffer[n:]
		if len(buffer) < 2 {
			return fault.ErrInvalidObject
		}
		f := Field{
			Mutable: 0 != buffer[0]&flagMutable,
			Type:    FieldType(buffer[1]),
		}
		buffer = buffer[2:]

		switch {
		case f.Type.IsNumber():
			w := f.Type.width()
			if len(buffer) < w {
				return fault.ErrInvalidObject
			}
			b := make([]byte, 8)
			copy(b, buffer[:w])
			f.Number = binary.LittleEndian.Uint64(b)
			buffer = buffer[w:]
		case FieldString == f.Type, FieldBytes == f.Type:
			data, n, err := util.ReadBytes(buffer)
			if nil != err {
				return fault.ErrInvalidObject
			}
			f.Bytes = data
			buffer = buffer[n:]
		case FieldAddress == f.Type:
			if len(buffer) < AddressLength {
				return fault.ErrInvalidObject
			}
			f.Bytes = append([]byte{}, buffer[:AddressLength]...)
			buffer = buffer[AddressLength:]
		default:
			return fault.ErrInvalidFieldType
		}

		if _, ok := o.fields[string(name)]; ok {
			return fault.ErrFieldExists
		}
		o.fields[string(name)] = &f
		o.names = append(o.names, string(name))
	}
	if 0 != len(buffer) {
		return fault.ErrInvalidObject
	}
	return nil
}

// field values are written in insertion order
func (o *Object) encode() {
	buffer := util.ToVarint64(uint64(len(o.names)))
	for _, name := range o.names {
		f := o.fields[name]
		buffer = util.AppendBytes(buffer, []byte(name))
		flags := byte(0)
		if f.Mutable {
			flags |= flagMutable
		}
		buffer = append(buffer, flags, byte(f.Type))
		switch {
		case f.Type.IsNumber():
			b := make([]byte, 8)
			binary.LittleEndian.PutUint64(b, f.Number)
			buffer = append(buffer, b[:f.Type.width()]...)
		case FieldAddress == f.Type:
			buffer = append(buffer, f.Bytes...)
		default:
			buffer = util.AppendBytes(buffer, f.Bytes)
		}
	}
	o.Data = buffer
}

// Add - append a new field
func (o *Object) Add(name string, f Field) error {
	if _, ok := o.fields[name]; ok {
		return fault.ErrFieldExists
	}
	switch {
	case f.Type.IsNumber():
		if f.Type.width() < 8 && f.Number >= uint64(1)<<(8*uint(f.Type.width())) {
			return fault.ErrValueOverflow
		}
	case FieldAddress == f.Type:
		if AddressLength != len(f.Bytes) {
			return fault.ErrInvalidAddress
		}
	case FieldString == f.Type, FieldBytes == f.Type:
	default:
		return fault.ErrInvalidFieldType
	}
	f.Bytes = append([]byte{}, f.Bytes...)
	o.fields[name] = &f
	o.names = append(o.names, name)
	o.encode()
	return nil
}

func (o *Object) mustAdd(name string, f Field) {
	err := o.Add(name, f)
	fault.PanicIfError("object add", err)
}

// Names - field names in stored order
func (o Object) Names() []string {
	return append([]string{}, o.names...)
}

// Field - read a field
func (o Object) Field(name string) (Field, bool) {
	f, ok := o.fields[name]
	if !ok {
		return Field{}, false
	}
	return *f, true
}

// GetNumber - value of a numeric field
func (o Object) GetNumber(name string) (uint64, error) {
	f, ok := o.fields[name]
	if !ok {
		return 0, fault.ErrFieldNotFound
	}
	if !f.Type.IsNumber() {
		return 0, fault.ErrFieldTypeMismatch
	}
	return f.Number, nil
}

// GetBytes - value of a string, bytes or address field
func (o Object) GetBytes(name string) ([]byte, error) {
	f, ok := o.fields[name]
	if !ok {
		return nil, fault.ErrFieldNotFound
	}
	if f.Type.IsNumber() {
		return nil, fault.ErrFieldTypeMismatch
	}
	return append([]byte{}, f.Bytes...), nil
}

// GetAddress - value of an address field
func (o Object) GetAddress(name string) (Address, error) {
	f, ok := o.fields[name]
	if !ok {
		return Address{}, fault.ErrFieldNotFound
	}
	if FieldAddress != f.Type {
		return Address{}, fault.ErrFieldTypeMismatch
	}
	return AddressFromBytes(f.Bytes)
}

// WriteNumber - change a mutable numeric field
func (o *Object) WriteNumber(name string, value uint64) error {
	f, err := o.writable(name)
	if nil != err {
		return err
	}
	if !f.Type.IsNumber() {
		return fault.ErrFieldTypeMismatch
	}
	if f.Type.width() < 8 && value >= uint64(1)<<(8*uint(f.Type.width())) {
		return fault.ErrValueOverflow
	}
	f.Number = value
	o.encode()
	return nil
}

// WriteBytes - change a mutable string or bytes field
func (o *Object) WriteBytes(name string, value []byte) error {
	f, err := o.writable(name)
	if nil != err {
		return err
	}
	if FieldString != f.Type && FieldBytes != f.Type {
		return fault.ErrFieldTypeMismatch
	}
	f.Bytes = append([]byte{}, value...)
	o.encode()
	return nil
}

func (o *Object) writable(name string) (*Field, error) {
	f, ok := o.fields[name]
	if !ok {
		return nil, fault.ErrFieldNotFound
	}
	if !f.Mutable {
		return nil, fault.ErrFieldIsImmutable
	}
	return f, nil
}

// Standard - classify by the fields present
func (o Object) Standard() Standard {
	has := func(name string) bool {
		_, ok := o.fields[name]
		return ok
	}
	switch {
	case has(FieldBalance) && has(FieldTrust) && has(FieldStake):
		return StandardTrust
	case has(FieldBalance) && has(FieldSupply):
		return StandardToken
	case has(FieldBalance):
		return StandardAccount
	default:
		return StandardNone
	}
}
