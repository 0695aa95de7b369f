// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package validate

import (
	"bytes"
	"encoding/binary"
	"math/bits"

	"github.com/bitmark-inc/ledgerd/fault"
)

// values are byte strings read as little endian unsigned numbers

func fromUint64(v uint64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, v)
	return b
}

// only values that fit one 64 bit register take part in arithmetic
func toUint64(b []byte) (uint64, error) {
	if len(b) > 8 {
		return 0, fault.ErrValueTooWide
	}
	buffer := make([]byte, 8)
	copy(buffer, b)
	return binary.LittleEndian.Uint64(buffer), nil
}

// drop high order zero bytes
func trim(b []byte) []byte {
	n := len(b)
	for n > 0 && 0 == b[n-1] {
		n -= 1
	}
	return b[:n]
}

// numeric comparison of any width: -1, 0, +1
func compare(a []byte, b []byte) int {
	a = trim(a)
	b = trim(b)
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	for i := len(a) - 1; i >= 0; i -= 1 {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

func isTrue(b []byte) bool {
	return 0 != len(trim(b))
}

func contains(a []byte, b []byte) bool {
	return bytes.Contains(a, b)
}

func add(a uint64, b uint64) (uint64, error) {
	sum, carry := bits.Add64(a, b, 0)
	if 0 != carry {
		return 0, fault.ErrValueOverflow
	}
	return sum, nil
}

func sub(a uint64, b uint64) (uint64, error) {
	diff, borrow := bits.Sub64(a, b, 0)
	if 0 != borrow {
		return 0, fault.ErrValueOverflow
	}
	return diff, nil
}

func mul(a uint64, b uint64) (uint64, error) {
	hi, lo := bits.Mul64(a, b)
	if 0 != hi {
		return 0, fault.ErrValueOverflow
	}
	return lo, nil
}

// exponent by squaring with overflow detection
func exp(base uint64, exponent uint64) (uint64, error) {
	result := uint64(1)
	for exponent > 0 {
		if 0 != exponent&1 {
			r, err := mul(result, base)
			if nil != err {
				return 0, err
			}
			result = r
		}
		exponent >>= 1
		if exponent > 0 {
			b, err := mul(base, base)
			if nil != err {
				return 0, err
			}
			base = b
		}
	}
	return result, nil
}
