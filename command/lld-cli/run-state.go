// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/ledgerd/register"
)

type fieldView struct {
	Name    string      `json:"name"`
	Mutable bool        `json:"mutable"`
	Value   interface{} `json:"value"`
}

type stateView struct {
	Address   register.Address `json:"address"`
	Version   uint8            `json:"version"`
	Type      string           `json:"type"`
	Owner     register.Address `json:"owner"`
	Timestamp uint64           `json:"timestamp"`
	Checksum  string           `json:"checksum"`
	Data      string           `json:"data,omitempty"`
	Standard  string           `json:"standard,omitempty"`
	Fields    []fieldView      `json:"fields,omitempty"`
}

func runState(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	address, err := register.AddressFromString(c.Args().Get(0))
	if nil != err {
		return err
	}

	s := newStores(m)
	defer s.close()

	registers, err := s.openRegisters()
	if nil != err {
		return err
	}

	state, err := registers.ReadState(address)
	if nil != err {
		return err
	}

	view, err := describeState(address, state)
	if nil != err {
		return err
	}
	return printJSON(m.w, view)
}

// describeState - object registers are shown field by field
func describeState(address register.Address, state register.State) (*stateView, error) {
	view := &stateView{
		Address:   address,
		Version:   state.Version,
		Type:      state.Type.String(),
		Owner:     state.Owner,
		Timestamp: state.Timestamp,
		Checksum:  fmt.Sprintf("%016x", state.Checksum),
	}

	if register.TypeObject != state.Type {
		view.Data = hex.EncodeToString(state.Data)
		return view, nil
	}

	o, err := register.ObjectFromState(state)
	if nil != err {
		return nil, err
	}
	view.Standard = o.Standard().String()
	for _, name := range o.Names() {
		f, _ := o.Field(name)
		fv := fieldView{
			Name:    name,
			Mutable: f.Mutable,
		}
		switch {
		case f.Type.IsNumber():
			fv.Value = f.Number
		case register.FieldString == f.Type:
			fv.Value = string(f.Bytes)
		case register.FieldAddress == f.Type:
			a, err := register.AddressFromBytes(f.Bytes)
			if nil != err {
				return nil, err
			}
			fv.Value = a
		default:
			fv.Value = hex.EncodeToString(f.Bytes)
		}
		view.Fields = append(view.Fields, fv)
	}
	return view, nil
}
