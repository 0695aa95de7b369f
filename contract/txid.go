// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package contract

import (
	"encoding/hex"

	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/ledgerd/fault"
)

// TxIDLength - bytes in a transaction id
const TxIDLength = 64

// TxID - 512 bit transaction hash
type TxID [TxIDLength]byte

// NewTxID - SHA3-512 of a transaction record
func NewTxID(record []byte) TxID {
	return TxID(sha3.Sum512(record))
}

// TxIDFromBytes - convert and validate a byte slice
func TxIDFromBytes(buffer []byte) (TxID, error) {
	txid := TxID{}
	if TxIDLength != len(buffer) {
		return txid, fault.ErrInvalidTransactionID
	}
	copy(txid[:], buffer)
	return txid, nil
}

// TxIDFromString - decode hex text
func TxIDFromString(s string) (TxID, error) {
	txid := TxID{}
	err := txid.UnmarshalText([]byte(s))
	return txid, err
}

// String - hex text for the fmt package (%s)
func (txid TxID) String() string {
	return hex.EncodeToString(txid[:])
}

// GoString - for the fmt package (%#v)
func (txid TxID) GoString() string {
	return "<txid:" + hex.EncodeToString(txid[:]) + ">"
}

// MarshalText - convert to hex text
func (txid TxID) MarshalText() ([]byte, error) {
	buffer := make([]byte, hex.EncodedLen(len(txid)))
	hex.Encode(buffer, txid[:])
	return buffer, nil
}

// UnmarshalText - convert hex text
func (txid *TxID) UnmarshalText(s []byte) error {
	if len(txid) != hex.DecodedLen(len(s)) {
		return fault.ErrInvalidTransactionID
	}
	byteCount, err := hex.Decode(txid[:], s)
	if nil != err {
		return fault.ErrInvalidTransactionID
	}
	if TxIDLength != byteCount {
		return fault.ErrInvalidTransactionID
	}
	return nil
}

// Reference - one contract of a transaction
type Reference struct {
	TxID  TxID
	Index uint32
}
