// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package register_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/keychain"
	"github.com/bitmark-inc/ledgerd/register"
	"github.com/bitmark-inc/ledgerd/sector"
)

func TestDatabase(t *testing.T) {
	directory := setupDirectory(t)
	defer os.RemoveAll(directory)

	registry := keychain.NewRegistry(directory, keychain.Options{})
	defer registry.Close()

	db, err := register.Open(registry, directory, sector.Options{})
	require.Nil(t, err, "open error")

	address := register.NewAddress([]byte("register-one"))
	_, err = db.ReadState(address)
	assert.Equal(t, fault.ErrRegisterNotFound, err)
	assert.False(t, db.HasState(address))

	s := register.NewState(register.TypeRaw, owner, 5, []byte("first"))
	require.Nil(t, db.WriteState(address, s))
	assert.True(t, db.HasState(address))

	r, err := db.ReadState(address)
	require.Nil(t, err)
	assert.Equal(t, s, r)

	// checksum must be set by the writer
	unchecked := s.Clone()
	unchecked.Data = []byte("second")
	assert.Equal(t, fault.ErrChecksumMismatch, db.WriteState(address, unchecked))

	assert.Equal(t, fault.ErrAddressIsZero, db.WriteState(register.Address{}, s))

	require.Nil(t, db.EraseState(address))
	assert.Equal(t, fault.ErrRegisterNotFound, db.EraseState(address))

	require.Nil(t, db.Close())
}

func TestDatabaseTransaction(t *testing.T) {
	directory := setupDirectory(t)
	defer os.RemoveAll(directory)

	registry := keychain.NewRegistry(directory, keychain.Options{})
	defer registry.Close()

	db, err := register.Open(registry, directory, sector.Options{})
	require.Nil(t, err, "open error")
	defer db.Close()

	a1 := register.NewAddress([]byte("a1"))
	a2 := register.NewAddress([]byte("a2"))

	require.Nil(t, db.Begin())
	require.Nil(t, db.WriteState(a1, register.NewState(register.TypeRaw, owner, 1, []byte("one"))))
	require.Nil(t, db.Abort())
	assert.False(t, db.HasState(a1), "aborted write")

	require.Nil(t, db.Begin())
	require.Nil(t, db.WriteState(a1, register.NewState(register.TypeRaw, owner, 1, []byte("one"))))
	require.Nil(t, db.WriteState(a2, register.NewAccount(owner, token, 1).State))
	require.Nil(t, db.Commit())

	s, err := db.ReadState(a2)
	require.Nil(t, err)
	o, err := register.ObjectFromState(s)
	require.Nil(t, err)
	assert.Equal(t, register.StandardAccount, o.Standard())
	assert.Equal(t, 2, db.Sector().Stats().Keychain.Keys)
}
