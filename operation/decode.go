// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package operation

import (
	"github.com/bitmark-inc/ledgerd/contract"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/register"
)

// Decode - read a contract from its start into typed form
//
// the cursor is rewound first and is left at the end of the stream
func Decode(c *contract.Contract) (*Decoded, error) {
	c.Reset()

	op, err := c.ReadUint8()
	if nil != err {
		return nil, err
	}

	var p Primitive

	switch op {
	case contract.OpWrite:
		w := &Write{}
		if w.Address, err = c.ReadAddress(); nil != err {
			return nil, err
		}
		if w.Data, err = c.ReadBytes(); nil != err {
			return nil, err
		}
		if err = readTransition(c, &w.Transition); nil != err {
			return nil, err
		}
		p = w

	case contract.OpAppend:
		a := &Append{}
		if a.Address, err = c.ReadAddress(); nil != err {
			return nil, err
		}
		if a.Data, err = c.ReadBytes(); nil != err {
			return nil, err
		}
		if err = readTransition(c, &a.Transition); nil != err {
			return nil, err
		}
		p = a

	case contract.OpCreate:
		cr := &Create{}
		if cr.Address, err = c.ReadAddress(); nil != err {
			return nil, err
		}
		var t uint8
		if t, err = c.ReadUint8(); nil != err {
			return nil, err
		}
		cr.Type = register.Type(t)
		if cr.Data, err = c.ReadBytes(); nil != err {
			return nil, err
		}
		if cr.Checksum, err = readPostState(c); nil != err {
			return nil, err
		}
		p = cr

	case contract.OpTransfer:
		t := &Transfer{}
		if t.Address, err = c.ReadAddress(); nil != err {
			return nil, err
		}
		if t.Recipient, err = c.ReadAddress(); nil != err {
			return nil, err
		}
		if err = readTransition(c, &t.Transition); nil != err {
			return nil, err
		}
		p = t

	case contract.OpClaim:
		cl := &Claim{}
		if cl.Reference, err = readReference(c); nil != err {
			return nil, err
		}
		if cl.Address, err = c.ReadAddress(); nil != err {
			return nil, err
		}
		if err = readTransition(c, &cl.Transition); nil != err {
			return nil, err
		}
		p = cl

	case contract.OpCoinbase:
		cb := &Coinbase{}
		if cb.Genesis, err = c.ReadAddress(); nil != err {
			return nil, err
		}
		if cb.Amount, err = c.ReadUint64(); nil != err {
			return nil, err
		}
		if cb.Nonce, err = c.ReadUint64(); nil != err {
			return nil, err
		}
		p = cb

	case contract.OpTrust:
		t := &Trust{}
		if t.Score, err = c.ReadUint64(); nil != err {
			return nil, err
		}
		if t.Reward, err = c.ReadUint64(); nil != err {
			return nil, err
		}
		if err = readTransition(c, &t.Transition); nil != err {
			return nil, err
		}
		p = t

	case contract.OpGenesis:
		g := &Genesis{}
		if g.Reward, err = c.ReadUint64(); nil != err {
			return nil, err
		}
		if err = readTransition(c, &g.Transition); nil != err {
			return nil, err
		}
		p = g

	case contract.OpStake:
		s := &Stake{}
		if s.Amount, err = c.ReadUint64(); nil != err {
			return nil, err
		}
		if err = readTransition(c, &s.Transition); nil != err {
			return nil, err
		}
		p = s

	case contract.OpUnstake:
		u := &Unstake{}
		if u.Amount, err = c.ReadUint64(); nil != err {
			return nil, err
		}
		if u.Penalty, err = c.ReadUint64(); nil != err {
			return nil, err
		}
		if err = readTransition(c, &u.Transition); nil != err {
			return nil, err
		}
		p = u

	case contract.OpDebit:
		d := &Debit{}
		if d.From, err = c.ReadAddress(); nil != err {
			return nil, err
		}
		if d.To, err = c.ReadAddress(); nil != err {
			return nil, err
		}
		if d.Amount, err = c.ReadUint64(); nil != err {
			return nil, err
		}
		if err = readTransition(c, &d.Transition); nil != err {
			return nil, err
		}
		p = d

	case contract.OpCredit:
		cr := &Credit{}
		if cr.Reference, err = readReference(c); nil != err {
			return nil, err
		}
		if cr.To, err = c.ReadAddress(); nil != err {
			return nil, err
		}
		if cr.Proof, err = c.ReadAddress(); nil != err {
			return nil, err
		}
		if cr.Amount, err = c.ReadUint64(); nil != err {
			return nil, err
		}
		if err = readTransition(c, &cr.Transition); nil != err {
			return nil, err
		}
		p = cr

	case contract.OpAuthorize:
		a := &Authorize{}
		if a.TxID, err = c.ReadTxID(); nil != err {
			return nil, err
		}
		if a.Genesis, err = c.ReadAddress(); nil != err {
			return nil, err
		}
		p = a

	case contract.OpLegacy:
		l := &Legacy{}
		if l.From, err = c.ReadAddress(); nil != err {
			return nil, err
		}
		if l.Amount, err = c.ReadUint64(); nil != err {
			return nil, err
		}
		if l.Script, err = c.ReadBytes(); nil != err {
			return nil, err
		}
		if err = readTransition(c, &l.Transition); nil != err {
			return nil, err
		}
		p = l

	default:
		return nil, fault.ErrInvalidOpcode
	}

	d := &Decoded{
		Primitive: p,
	}
	if c.End() {
		return d, nil
	}

	d.Suffix, err = readSuffix(c)
	if nil != err {
		return nil, err
	}
	if !c.End() {
		return nil, fault.ErrTooManyPrimitives
	}
	return d, nil
}

func readTransition(c *contract.Contract, t *Transition) error {
	marker, err := c.ReadUint8()
	if nil != err {
		return err
	}
	if contract.PreState != marker {
		return fault.ErrInvalidPreStateMarker
	}
	t.PreState, err = c.ReadState()
	if nil != err {
		return err
	}
	t.Checksum, err = readPostState(c)
	return err
}

func readPostState(c *contract.Contract) (uint64, error) {
	marker, err := c.ReadUint8()
	if nil != err {
		return 0, err
	}
	if contract.PostState != marker {
		return 0, fault.ErrInvalidPostStateMarker
	}
	checksum, err := c.ReadUint64()
	if nil != err {
		return 0, fault.ErrMissingChecksum
	}
	return checksum, nil
}

func readReference(c *contract.Contract) (contract.Reference, error) {
	txid, err := c.ReadTxID()
	if nil != err {
		return contract.Reference{}, err
	}
	index, err := c.ReadUint32()
	if nil != err {
		return contract.Reference{}, err
	}
	return contract.Reference{TxID: txid, Index: index}, nil
}

func readSuffix(c *contract.Contract) (*Suffix, error) {
	op, err := c.ReadUint8()
	if nil != err {
		return nil, err
	}

	s := &Suffix{
		Op: op,
	}
	switch op {
	case contract.OpCondition:
		s.Script, err = c.ReadBytes()
	case contract.OpValidate:
		s.Reference, err = readReference(c)
	default:
		return nil, fault.ErrTooManyPrimitives
	}
	if nil != err {
		return nil, err
	}
	return s, nil
}
