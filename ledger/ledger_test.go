// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/ledgerd/contract"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/ledger"
	"github.com/bitmark-inc/ledgerd/register"
)

var (
	caller = register.NewAddress([]byte("caller"))
	proof  = register.NewAddress([]byte("proof"))
	txid   = contract.NewTxID([]byte("tx"))
)

func setupStore(t *testing.T) (*ledger.Store, string) {
	directory := setupDirectory(t)
	s, err := ledger.Open(filepath.Join(directory, "test"), false)
	require.Nil(t, err, "open error")
	return s, directory
}

func TestContracts(t *testing.T) {
	s, directory := setupStore(t)
	defer os.RemoveAll(directory)
	defer s.Close()

	c := contract.NewBuilder(contract.OpDebit).Uint64(10).Contract(caller, 55)
	require.Nil(t, s.WriteContract(txid, 1, c))
	assert.True(t, s.HasContract(txid, 1))
	assert.False(t, s.HasContract(txid, 0))

	r, err := s.ReadContract(txid, 1)
	require.Nil(t, err)
	assert.Equal(t, caller, r.Caller)
	assert.Equal(t, uint64(55), r.Timestamp)
	assert.Equal(t, c.Operations(), r.Operations())

	_, err = s.ReadContract(txid, 2)
	assert.Equal(t, fault.ErrContractNotFound, err)

	other := contract.NewTxID([]byte("other"))
	require.Nil(t, s.WriteContract(other, 0, c))

	count := 0
	err = s.Contracts(func(ref contract.Reference, c *contract.Contract) error {
		count += 1
		assert.Equal(t, caller, c.Caller)
		return nil
	})
	assert.Nil(t, err)
	assert.Equal(t, 2, count)
}

func TestProofsAndValidators(t *testing.T) {
	s, directory := setupStore(t)
	defer os.RemoveAll(directory)
	defer s.Close()

	assert.False(t, s.HasProof(proof, txid, 0))
	require.Nil(t, s.WriteProof(proof, txid, 0, 250))
	assert.True(t, s.HasProof(proof, txid, 0))
	assert.False(t, s.HasProof(caller, txid, 0), "proof is per register")

	amount, ok := s.ReadProof(proof, txid, 0)
	assert.True(t, ok)
	assert.Equal(t, uint64(250), amount)

	_, err := s.ReadValidator(txid, 3)
	assert.Equal(t, fault.ErrValidatorNotFound, err)
	require.Nil(t, s.WriteValidator(txid, 3, caller))
	v, err := s.ReadValidator(txid, 3)
	require.Nil(t, err)
	assert.Equal(t, caller, v)
}

func TestChainState(t *testing.T) {
	s, directory := setupStore(t)
	defer os.RemoveAll(directory)
	defer s.Close()

	assert.Equal(t, ledger.ChainState{}, s.ReadChainState())

	state := ledger.ChainState{Height: 100, Supply: 5000000, Timestamp: 1600000000}
	require.Nil(t, s.WriteChainState(state))
	assert.Equal(t, state, s.ReadChainState())
}

func TestTransaction(t *testing.T) {
	s, directory := setupStore(t)
	defer os.RemoveAll(directory)
	defer s.Close()

	require.Nil(t, s.Begin())
	assert.Equal(t, fault.ErrTransactionInProgress, s.Begin())

	require.Nil(t, s.WriteProof(proof, txid, 0, 1))
	assert.True(t, s.HasProof(proof, txid, 0), "transaction must see its own writes")

	require.Nil(t, s.Abort())
	assert.False(t, s.HasProof(proof, txid, 0), "aborted write")
	assert.Equal(t, fault.ErrNotInTransaction, s.Abort())

	require.Nil(t, s.Begin())
	require.Nil(t, s.WriteProof(proof, txid, 0, 2))
	require.Nil(t, s.WriteChainState(ledger.ChainState{Height: 1}))
	require.Nil(t, s.Commit())
	assert.Equal(t, fault.ErrNotInTransaction, s.Commit())

	amount, ok := s.ReadProof(proof, txid, 0)
	assert.True(t, ok)
	assert.Equal(t, uint64(2), amount)
	assert.Equal(t, uint64(1), s.ReadChainState().Height)
}

func TestReopen(t *testing.T) {
	s, directory := setupStore(t)
	defer os.RemoveAll(directory)

	require.Nil(t, s.WriteValidator(txid, 0, caller))
	s.Close()

	s, err := ledger.Open(filepath.Join(directory, "test"), true)
	require.Nil(t, err, "read only reopen")
	defer s.Close()

	v, err := s.ReadValidator(txid, 0)
	require.Nil(t, err)
	assert.Equal(t, caller, v)

	_, err = ledger.Open(filepath.Join(directory, "missing"), true)
	assert.NotNil(t, err, "read only must not create")
}
