// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package operation

import (
	"encoding/binary"

	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/register"
	"github.com/bitmark-inc/ledgerd/util"
)

// FieldUpdate - one field change carried by a WRITE to an object register
type FieldUpdate struct {
	Name   string `json:"name"`
	Number uint64 `json:"number,omitempty"`
	Bytes  []byte `json:"bytes,omitempty"`
}

// PackUpdates - serialise field changes; the value encoding follows the
// field type so the same update cannot be read two ways
//
//	name: varint length prefixed
//	number fields: 8 bytes little endian
//	other fields: varint length prefixed
func PackUpdates(o register.Object, updates []FieldUpdate) ([]byte, error) {
	buffer := make([]byte, 0, 64)
	for _, u := range updates {
		f, ok := o.Field(u.Name)
		if !ok {
			return nil, fault.ErrFieldNotFound
		}
		buffer = util.AppendBytes(buffer, []byte(u.Name))
		if f.Type.IsNumber() {
			buffer = util.AppendUint64(buffer, u.Number)
		} else {
			buffer = util.AppendBytes(buffer, u.Bytes)
		}
	}
	return buffer, nil
}

// ApplyUpdates - decode field changes and write them to an object
func ApplyUpdates(o *register.Object, data []byte) error {
	_, err := applyUpdates(o, data)
	return err
}

// UpdatedFields - names of the fields a WRITE would change, in order
func UpdatedFields(o register.Object, data []byte) ([]string, error) {
	scratch, err := register.ObjectFromState(o.State)
	if nil != err {
		return nil, err
	}
	return applyUpdates(&scratch, data)
}

func applyUpdates(o *register.Object, data []byte) ([]string, error) {
	if 0 == len(data) {
		return nil, fault.ErrBufferTruncated
	}
	names := make([]string, 0, 4)
	for n := 0; n < len(data); {
		name, used, err := util.ReadBytes(data[n:])
		if nil != err {
			return nil, err
		}
		n += used

		f, ok := o.Field(string(name))
		if !ok {
			return nil, fault.ErrFieldNotFound
		}

		if f.Type.IsNumber() {
			if n+8 > len(data) {
				return nil, fault.ErrBufferTruncated
			}
			err = o.WriteNumber(string(name), binary.LittleEndian.Uint64(data[n:]))
			n += 8
		} else {
			value, used, e := util.ReadBytes(data[n:])
			if nil != e {
				return nil, e
			}
			n += used
			err = o.WriteBytes(string(name), value)
		}
		if nil != err {
			return nil, err
		}
		names = append(names, string(name))
	}
	return names, nil
}
