// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package keychain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/keychain"
)

func TestPackLayout(t *testing.T) {
	k := keychain.SectorKey{
		State:       keychain.StateReady,
		Length:      3,
		SectorFile:  0x0102,
		SectorSize:  0x0304,
		SectorStart: 0x05060708,
		Checksum:    0x090a0b0c,
		Key:         []byte("abc"),
	}

	expected := []byte{
		0x03,       // state
		0x03, 0x00, // length
		0x02, 0x01, // sector file
		0x04, 0x03, // sector size
		0x08, 0x07, 0x06, 0x05, // sector start
		0x0c, 0x0b, 0x0a, 0x09, // checksum
		'a', 'b', 'c',
	}

	packed := k.Pack()
	assert.Equal(t, expected, packed, "wrong packed record")
	assert.Equal(t, keychain.HeaderSize+3, k.Size(), "wrong size")

	unpacked, err := keychain.Unpack(packed)
	assert.Nil(t, err, "unpack error")
	assert.Equal(t, k, unpacked, "wrong unpacked record")
}

func TestUnpackErrors(t *testing.T) {
	_, err := keychain.UnpackHeader([]byte{0x03, 0x00})
	assert.Equal(t, fault.ErrBufferTruncated, err, "short header")

	header := keychain.SectorKey{State: keychain.StateReady, Length: 10}.Pack()
	_, err = keychain.Unpack(header)
	assert.Equal(t, fault.ErrBufferTruncated, err, "missing key bytes")

	header[0] = 0x7f
	_, err = keychain.UnpackHeader(header)
	assert.Equal(t, fault.ErrInvalidState, err, "unknown state")
}

func TestStates(t *testing.T) {
	assert.True(t, keychain.StateReady.IsReadable())
	assert.True(t, keychain.StateTransaction.IsReadable())
	assert.False(t, keychain.StateEmpty.IsReadable())
	assert.False(t, keychain.StateWrite.IsReadable())
	assert.Equal(t, "READY", keychain.StateReady.String())
}

func TestGetBucket(t *testing.T) {
	assert.Equal(t, 0, keychain.GetBucket([]byte{0x00, 0x00, 0xff}))
	assert.Equal(t, 0x1234, keychain.GetBucket([]byte{0x12, 0x34}))
	assert.Equal(t, keychain.BucketCount-1, keychain.GetBucket([]byte{0xff, 0xff, 0x01}))

	assert.Panics(t, func() { keychain.GetBucket([]byte{0x01}) }, "short key must panic")
}
