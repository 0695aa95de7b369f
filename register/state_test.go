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

var owner = register.NewAddress([]byte("owner"))

func TestAddress(t *testing.T) {
	a := register.NewAddress([]byte("some register"))
	assert.False(t, a.IsZero())
	assert.True(t, register.Address{}.IsZero())

	decoded, err := register.AddressFromString(a.String())
	require.Nil(t, err, "decode error")
	assert.Equal(t, a, decoded, "base58 round trip")

	_, err = register.AddressFromString("0OIl")
	assert.Equal(t, fault.ErrInvalidAddress, err, "invalid base58")

	_, err = register.AddressFromBytes([]byte{1, 2, 3})
	assert.Equal(t, fault.ErrInvalidAddress, err, "short address")

	assert.NotEqual(t, a, register.TrustAddress(a), "trust address must differ")
	assert.Equal(t, register.TrustAddress(a), register.TrustAddress(a), "trust address is deterministic")

	text, err := a.MarshalText()
	require.Nil(t, err)
	var b register.Address
	require.Nil(t, b.UnmarshalText(text))
	assert.Equal(t, a, b)
}

func TestStatePack(t *testing.T) {
	s := register.NewState(register.TypeRaw, owner, 1234, []byte("payload"))
	assert.Nil(t, s.Verify())

	packed := s.Pack()
	assert.Equal(t, 1+1+32+8+1+len("payload")+8, len(packed), "packed size")
	assert.Equal(t, byte(register.Version), packed[0])
	assert.Equal(t, byte(register.TypeRaw), packed[1])

	u, n, err := register.Unpack(append(packed, 0xff))
	require.Nil(t, err, "unpack error")
	assert.Equal(t, len(packed), n, "trailing byte consumed")
	assert.Equal(t, s, u)
	assert.Equal(t, s.GetHash(), u.GetHash())

	_, _, err = register.Unpack(packed[:len(packed)-1])
	assert.Equal(t, fault.ErrBufferTruncated, err)

	bad := append([]byte{}, packed...)
	bad[1] = 0x7f
	_, _, err = register.Unpack(bad)
	assert.Equal(t, fault.ErrInvalidRegisterType, err)
}

func TestStateHash(t *testing.T) {
	s1 := register.NewState(register.TypeRaw, owner, 1, []byte("a"))
	s2 := register.NewState(register.TypeRaw, owner, 1, []byte("b"))
	s3 := register.NewState(register.TypeRaw, owner, 2, []byte("a"))
	assert.NotEqual(t, s1.GetHash(), s2.GetHash(), "data must change hash")
	assert.NotEqual(t, s1.GetHash(), s3.GetHash(), "timestamp must change hash")

	// checksum is not part of the hash
	c := s1.Clone()
	c.Checksum = 0
	assert.Equal(t, s1.GetHash(), c.GetHash())
	assert.Equal(t, fault.ErrChecksumMismatch, c.Verify())

	c = s1.Clone()
	c.Data[0] = 'z'
	assert.Equal(t, []byte("a"), s1.Data, "clone must not share data")

	big := register.NewState(register.TypeRaw, owner, 1, make([]byte, register.MaximumDataSize+1))
	assert.Equal(t, fault.ErrStateTooLarge, big.Verify())
}

func TestTypes(t *testing.T) {
	for _, item := range []struct {
		t     register.Type
		s     string
		valid bool
	}{
		{register.TypeRaw, "RAW", true},
		{register.TypeAppend, "APPEND", true},
		{register.TypeReadOnly, "READONLY", true},
		{register.TypeObject, "OBJECT", true},
		{register.Type(0), "UNKNOWN", false},
		{register.Type(9), "UNKNOWN", false},
	} {
		assert.Equal(t, item.s, item.t.String())
		assert.Equal(t, item.valid, item.t.IsValid())
	}
}
