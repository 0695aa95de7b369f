// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package register

import (
	"github.com/mr-tron/base58"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/ledgerd/fault"
)

// AddressLength - bytes in a register address
const AddressLength = 32

// Address - 256 bit register address
type Address [AddressLength]byte

// AddressFromBytes - convert a byte slice to an address
func AddressFromBytes(b []byte) (Address, error) {
	a := Address{}
	if AddressLength != len(b) {
		return a, fault.ErrInvalidAddress
	}
	copy(a[:], b)
	return a, nil
}

// AddressFromString - decode a base58 address
func AddressFromString(s string) (Address, error) {
	b, err := base58.Decode(s)
	if nil != err {
		return Address{}, fault.ErrInvalidAddress
	}
	return AddressFromBytes(b)
}

// NewAddress - derive an address from arbitrary name bytes
func NewAddress(name []byte) Address {
	return Address(sha3.Sum256(name))
}

// TrustAddress - the trust register of a signature chain genesis
func TrustAddress(genesis Address) Address {
	return NewAddress(append([]byte("trust"), genesis[:]...))
}

// String - base58 form
func (a Address) String() string {
	return base58.Encode(a[:])
}

// IsZero - true for the all zero address
func (a Address) IsZero() bool {
	return a == Address{}
}

// MarshalText - for JSON output
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText - from JSON input
func (a *Address) UnmarshalText(s []byte) error {
	decoded, err := AddressFromString(string(s))
	if nil != err {
		return err
	}
	*a = decoded
	return nil
}
