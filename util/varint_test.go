// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/util"
)

var varint64Tests = []struct {
	value   uint64
	encoded []byte
}{
	{0, []byte{0x00}},
	{1, []byte{0x01}},
	{127, []byte{0x7f}},
	{128, []byte{0x80, 0x01}},
	{255, []byte{0xff, 0x01}},
	{16383, []byte{0xff, 0x7f}},
	{16384, []byte{0x80, 0x80, 0x01}},
	{0x7fffffffffffffff, []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x7f}},
	{0xffffffffffffffff, []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}},
}

func TestVarint64(t *testing.T) {
	for i, item := range varint64Tests {
		if result := util.ToVarint64(item.value); !bytes.Equal(result, item.encoded) {
			t.Errorf("%d: ToVarint64(%x) -> %x  expected: %x", i, item.value, result, item.encoded)
		}

		// trailing bytes are not consumed
		b := append(append([]byte{}, item.encoded...), 0xff, 0x97)
		value, count := util.FromVarint64(b)
		if value != item.value || count != len(item.encoded) {
			t.Errorf("%d: FromVarint64(%x) -> %d, %d  expected: %d, %d", i, b, value, count, item.value, len(item.encoded))
		}
	}
}

func TestVarint64Truncated(t *testing.T) {
	for i, b := range [][]byte{{}, {0x80}, {0xff, 0xff}} {
		value, count := util.FromVarint64(b)
		if 0 != value || 0 != count {
			t.Errorf("%d: FromVarint64(%x) -> %d, %d  expected: 0, 0", i, b, value, count)
		}
	}
}

func TestBytes(t *testing.T) {
	buffer := util.AppendBytes(nil, []byte("hello"))
	buffer = util.AppendBytes(buffer, []byte{})
	assert.Equal(t, []byte{0x05, 'h', 'e', 'l', 'l', 'o', 0x00}, buffer)

	data, n, err := util.ReadBytes(buffer)
	assert.Nil(t, err)
	assert.Equal(t, []byte("hello"), data)
	assert.Equal(t, 6, n)

	data, n, err = util.ReadBytes(buffer[n:])
	assert.Nil(t, err)
	assert.Equal(t, 0, len(data))
	assert.Equal(t, 1, n)

	_, _, err = util.ReadBytes([]byte{0x05, 'h'})
	assert.Equal(t, fault.ErrBufferTruncated, err)
}

func TestUint64(t *testing.T) {
	assert.Equal(t, []byte{0x01, 0x02, 0, 0, 0, 0, 0, 0}, util.AppendUint64(nil, 0x0201))
}
