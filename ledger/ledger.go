// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"encoding/binary"

	"github.com/bitmark-inc/ledgerd/contract"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/register"
)

var chainStateKey = []byte("state")

// ChainState - current tip of the chain
type ChainState struct {
	Height    uint64 `json:"height"`
	Supply    uint64 `json:"supply"`
	Timestamp uint64 `json:"timestamp"`
}

func referenceKey(txid contract.TxID, index uint32) []byte {
	key := make([]byte, contract.TxIDLength+4)
	copy(key, txid[:])
	binary.BigEndian.PutUint32(key[contract.TxIDLength:], index)
	return key
}

func proofKey(proof register.Address, txid contract.TxID, index uint32) []byte {
	return append(append([]byte{}, proof[:]...), referenceKey(txid, index)...)
}

// WriteContract - store a contract under its transaction reference
func (s *Store) WriteContract(txid contract.TxID, index uint32, c *contract.Contract) error {
	s.log.Debugf("write contract: %s[%d]", txid, index)
	return s.pool.Contracts.Put(referenceKey(txid, index), c.Pack())
}

// ReadContract - fetch a stored contract, cursor at the start
func (s *Store) ReadContract(txid contract.TxID, index uint32) (*contract.Contract, error) {
	buffer := s.pool.Contracts.Get(referenceKey(txid, index))
	if nil == buffer {
		return nil, fault.ErrContractNotFound
	}
	c, err := contract.Unpack(buffer)
	if nil != err {
		s.log.Criticalf("decode contract: %s[%d]  error: %s", txid, index, err)
		return nil, err
	}
	return c, nil
}

// HasContract - check for a stored contract
func (s *Store) HasContract(txid contract.TxID, index uint32) bool {
	return s.pool.Contracts.Has(referenceKey(txid, index))
}

// Contracts - visit every committed contract
func (s *Store) Contracts(f func(contract.Reference, *contract.Contract) error) error {
	return s.pool.Contracts.Map(func(key []byte, value []byte) error {
		if contract.TxIDLength+4 != len(key) {
			return fault.ErrInvalidContractReference
		}
		r := contract.Reference{
			Index: binary.BigEndian.Uint32(key[contract.TxIDLength:]),
		}
		copy(r.TxID[:], key)

		c, err := contract.Unpack(value)
		if nil != err {
			return err
		}
		return f(r, c)
	})
}

// WriteProof - record that a referenced contract was used by a proof register
func (s *Store) WriteProof(proof register.Address, txid contract.TxID, index uint32, amount uint64) error {
	s.log.Debugf("write proof: %s  for: %s[%d]  amount: %d", proof, txid, index, amount)
	return s.pool.Proofs.PutN(proofKey(proof, txid, index), amount)
}

// ReadProof - amount recorded by a proof
func (s *Store) ReadProof(proof register.Address, txid contract.TxID, index uint32) (uint64, bool) {
	return s.pool.Proofs.GetN(proofKey(proof, txid, index))
}

// HasProof - check for a proof
func (s *Store) HasProof(proof register.Address, txid contract.TxID, index uint32) bool {
	return s.pool.Proofs.Has(proofKey(proof, txid, index))
}

// WriteValidator - record the caller that authorised a contract condition
func (s *Store) WriteValidator(txid contract.TxID, index uint32, caller register.Address) error {
	s.log.Debugf("write validator: %s[%d]  caller: %s", txid, index, caller)
	return s.pool.Validators.Put(referenceKey(txid, index), caller[:])
}

// ReadValidator - the caller that authorised a contract condition
func (s *Store) ReadValidator(txid contract.TxID, index uint32) (register.Address, error) {
	buffer := s.pool.Validators.Get(referenceKey(txid, index))
	if nil == buffer {
		return register.Address{}, fault.ErrValidatorNotFound
	}
	return register.AddressFromBytes(buffer)
}

// ReadChainState - zero state for an empty chain
func (s *Store) ReadChainState() ChainState {
	buffer := s.pool.Chain.Get(chainStateKey)
	if len(buffer) < 24 {
		return ChainState{}
	}
	return ChainState{
		Height:    binary.BigEndian.Uint64(buffer[0:8]),
		Supply:    binary.BigEndian.Uint64(buffer[8:16]),
		Timestamp: binary.BigEndian.Uint64(buffer[16:24]),
	}
}

// WriteChainState - replace the chain state
func (s *Store) WriteChainState(state ChainState) error {
	buffer := make([]byte, 24)
	binary.BigEndian.PutUint64(buffer[0:8], state.Height)
	binary.BigEndian.PutUint64(buffer[8:16], state.Supply)
	binary.BigEndian.PutUint64(buffer[16:24], state.Timestamp)
	return s.pool.Chain.Put(chainStateKey, buffer)
}
