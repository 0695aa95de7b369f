// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package register_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/register"
)

var token = register.NewAddress([]byte("token"))

func TestStandards(t *testing.T) {
	account := register.NewAccount(owner, token, 10)
	assert.Equal(t, register.StandardAccount, account.Standard())
	assert.Nil(t, account.Verify())

	trust := register.NewTrust(owner, 10)
	assert.Equal(t, register.StandardTrust, trust.Standard())

	tok := register.NewToken(owner, token, 1000, 10)
	assert.Equal(t, register.StandardToken, tok.Standard())
	balance, err := tok.GetNumber(register.FieldBalance)
	require.Nil(t, err)
	assert.Equal(t, uint64(1000), balance)

	o := register.NewObject(owner, 10)
	assert.Equal(t, register.StandardNone, o.Standard())
	assert.Equal(t, "OBJECT", o.Standard().String())
}

func TestObjectRoundTrip(t *testing.T) {
	o := register.NewObject(owner, 99)
	require.Nil(t, o.Add("count", register.Field{Type: register.FieldUint16, Mutable: true, Number: 300}))
	require.Nil(t, o.Add("name", register.Field{Type: register.FieldString, Bytes: []byte("widget")}))
	require.Nil(t, o.Add("blob", register.Field{Type: register.FieldBytes, Mutable: true, Bytes: []byte{1, 2, 3}}))
	require.Nil(t, o.Add("link", register.Field{Type: register.FieldAddress, Bytes: token[:]}))
	o.SetChecksum()

	packed := o.Pack()
	s, _, err := register.Unpack(packed)
	require.Nil(t, err)

	p, err := register.ObjectFromState(s)
	require.Nil(t, err, "parse error")
	assert.Equal(t, []string{"count", "name", "blob", "link"}, p.Names(), "field order")

	n, err := p.GetNumber("count")
	assert.Nil(t, err)
	assert.Equal(t, uint64(300), n)

	b, err := p.GetBytes("name")
	assert.Nil(t, err)
	assert.Equal(t, []byte("widget"), b)

	a, err := p.GetAddress("link")
	assert.Nil(t, err)
	assert.Equal(t, token, a)

	assert.Equal(t, o.GetHash(), p.GetHash(), "re-encoding must be stable")
}

func TestObjectWrite(t *testing.T) {
	o := register.NewAccount(owner, token, 1)
	before := o.GetHash()

	require.Nil(t, o.WriteNumber(register.FieldBalance, 500))
	assert.NotEqual(t, before, o.GetHash(), "write must change data")
	assert.Equal(t, fault.ErrChecksumMismatch, o.Verify(), "checksum left to caller")
	o.SetChecksum()
	assert.Nil(t, o.Verify())

	assert.Equal(t, fault.ErrFieldIsImmutable, o.WriteBytes(register.FieldToken, []byte{}))
	assert.Equal(t, fault.ErrFieldNotFound, o.WriteNumber("missing", 1))
	_, err := o.GetNumber("missing")
	assert.Equal(t, fault.ErrFieldNotFound, err)
	_, err = o.GetNumber(register.FieldToken)
	assert.Equal(t, fault.ErrFieldTypeMismatch, err)

	x := register.NewObject(owner, 1)
	require.Nil(t, x.Add("small", register.Field{Type: register.FieldUint8, Mutable: true}))
	assert.Equal(t, fault.ErrValueOverflow, x.WriteNumber("small", 256))
	assert.Equal(t, fault.ErrFieldTypeMismatch, x.WriteBytes("small", []byte("x")))
	assert.Equal(t, fault.ErrFieldExists, x.Add("small", register.Field{Type: register.FieldUint8}))
	assert.Equal(t, fault.ErrInvalidFieldType, x.Add("bad", register.Field{Type: register.FieldType(0x55)}))
	assert.Equal(t, fault.ErrInvalidAddress, x.Add("addr", register.Field{Type: register.FieldAddress, Bytes: []byte{1}}))
}

func TestObjectInvalid(t *testing.T) {
	raw := register.NewState(register.TypeRaw, owner, 1, []byte{0})
	_, err := register.ObjectFromState(raw)
	assert.Equal(t, fault.ErrInvalidObject, err, "raw register")

	// one field declared, none present
	bad := register.NewState(register.TypeObject, owner, 1, []byte{0x01})
	_, err = register.ObjectFromState(bad)
	assert.Equal(t, fault.ErrInvalidObject, err, "truncated fields")

	// trailing garbage
	bad = register.NewState(register.TypeObject, owner, 1, []byte{0x00, 0x00})
	_, err = register.ObjectFromState(bad)
	assert.Equal(t, fault.ErrInvalidObject, err, "trailing bytes")
}
