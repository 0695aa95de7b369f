// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package operation

import (
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/register"
)

// an operation that changes one existing register
//
// verify checks the contract against its own pre-state only; execute
// is a pure function of its arguments and must not touch any store
type stateful interface {
	Primitive
	target(caller register.Address) register.Address
	transition() *Transition
	verify(caller register.Address) error
	execute(caller register.Address, s register.State, timestamp uint64) (register.State, error)
}

func (t *Transition) transition() *Transition { return t }

func (w *Write) target(register.Address) register.Address {
	return w.Address
}

func (a *Append) target(register.Address) register.Address {
	return a.Address
}

func (t *Transfer) target(register.Address) register.Address {
	return t.Address
}

func (c *Claim) target(register.Address) register.Address {
	return c.Address
}

func (d *Debit) target(register.Address) register.Address {
	return d.From
}

func (c *Credit) target(register.Address) register.Address {
	return c.To
}

func (l *Legacy) target(register.Address) register.Address {
	return l.From
}

func (t *Trust) target(caller register.Address) register.Address {
	return register.TrustAddress(caller)
}

func (g *Genesis) target(caller register.Address) register.Address {
	return register.TrustAddress(caller)
}

func (s *Stake) target(caller register.Address) register.Address {
	return register.TrustAddress(caller)
}

func (u *Unstake) target(caller register.Address) register.Address {
	return register.TrustAddress(caller)
}

func ownedBy(s register.State, caller register.Address) error {
	if s.Owner != caller {
		return fault.ErrInvalidOwner
	}
	return nil
}

// decode an object register of one of the given standards
func objectOf(s register.State, standards ...register.Standard) (register.Object, error) {
	o, err := register.ObjectFromState(s)
	if nil != err {
		return register.Object{}, err
	}
	for _, standard := range standards {
		if standard == o.Standard() {
			return o, nil
		}
	}
	return register.Object{}, fault.ErrInvalidStandard
}

func addBalance(o *register.Object, name string, amount uint64) error {
	balance, err := o.GetNumber(name)
	if nil != err {
		return err
	}
	if balance+amount < balance {
		return fault.ErrBalanceOverflow
	}
	return o.WriteNumber(name, balance+amount)
}

func subBalance(o *register.Object, name string, amount uint64, insufficient error) error {
	balance, err := o.GetNumber(name)
	if nil != err {
		return err
	}
	if balance < amount {
		return insufficient
	}
	return o.WriteNumber(name, balance-amount)
}

// write

// balances and token identity only change through DEBIT, CREDIT and the
// trust operations
var reservedFields = map[string]struct{}{
	register.FieldBalance: {},
	register.FieldStake:   {},
	register.FieldSupply:  {},
	register.FieldToken:   {},
	register.FieldTrust:   {},
}

func (w *Write) verify(caller register.Address) error {
	err := ownedBy(w.PreState, caller)
	if nil != err {
		return err
	}
	switch w.PreState.Type {
	case register.TypeRaw:
		return nil
	case register.TypeObject:
		o, err := register.ObjectFromState(w.PreState)
		if nil != err {
			return err
		}
		names, err := UpdatedFields(o, w.Data)
		if nil != err {
			return err
		}
		for _, name := range names {
			if _, ok := reservedFields[name]; ok {
				return fault.ErrFieldIsReserved
			}
		}
		return nil
	}
	return fault.ErrInvalidRegisterType
}

func (w *Write) execute(_ register.Address, s register.State, timestamp uint64) (register.State, error) {
	if register.TypeObject == s.Type {
		o, err := register.ObjectFromState(s)
		if nil != err {
			return s, err
		}
		err = ApplyUpdates(&o, w.Data)
		if nil != err {
			return s, err
		}
		s = o.State
	} else {
		s.Data = append([]byte{}, w.Data...)
	}
	s.Timestamp = timestamp
	return s, nil
}

// append

func (a *Append) verify(caller register.Address) error {
	err := ownedBy(a.PreState, caller)
	if nil != err {
		return err
	}
	if register.TypeAppend != a.PreState.Type {
		return fault.ErrInvalidRegisterType
	}
	if 0 == len(a.Data) {
		return fault.ErrAmountIsZero
	}
	return nil
}

func (a *Append) execute(_ register.Address, s register.State, timestamp uint64) (register.State, error) {
	s.Data = append(s.Data, a.Data...)
	if len(s.Data) > register.MaximumDataSize {
		return s, fault.ErrStateTooLarge
	}
	s.Timestamp = timestamp
	return s, nil
}

// transfer: the owner is cleared until the recipient claims

func (t *Transfer) verify(caller register.Address) error {
	err := ownedBy(t.PreState, caller)
	if nil != err {
		return err
	}
	if t.Recipient.IsZero() {
		return fault.ErrAddressIsZero
	}
	if t.Recipient == caller {
		return fault.ErrSelfTransfer
	}
	return nil
}

func (t *Transfer) execute(_ register.Address, s register.State, timestamp uint64) (register.State, error) {
	s.Owner = register.Address{}
	s.Timestamp = timestamp
	return s, nil
}

// claim

func (c *Claim) verify(caller register.Address) error {
	if !c.PreState.Owner.IsZero() {
		return fault.ErrAlreadyClaimed
	}
	return nil
}

func (c *Claim) execute(caller register.Address, s register.State, timestamp uint64) (register.State, error) {
	s.Owner = caller
	s.Timestamp = timestamp
	return s, nil
}

// debit

func (d *Debit) verify(caller register.Address) error {
	err := ownedBy(d.PreState, caller)
	if nil != err {
		return err
	}
	if 0 == d.Amount {
		return fault.ErrAmountIsZero
	}
	if d.To.IsZero() {
		return fault.ErrAddressIsZero
	}
	if d.To == d.From {
		return fault.ErrSelfTransfer
	}
	return nil
}

func (d *Debit) execute(_ register.Address, s register.State, timestamp uint64) (register.State, error) {
	o, err := objectOf(s, register.StandardAccount, register.StandardToken)
	if nil != err {
		return s, err
	}
	err = subBalance(&o, register.FieldBalance, d.Amount, fault.ErrInsufficientBalance)
	if nil != err {
		return s, err
	}
	o.Timestamp = timestamp
	return o.State, nil
}

// credit: authorisation against the referenced contract is checked by
// the executor, which can see the ledger

func (c *Credit) verify(register.Address) error {
	if 0 == c.Amount {
		return fault.ErrAmountIsZero
	}
	if c.Proof.IsZero() {
		return fault.ErrAddressIsZero
	}
	return nil
}

func (c *Credit) execute(_ register.Address, s register.State, timestamp uint64) (register.State, error) {
	o, err := objectOf(s, register.StandardAccount, register.StandardTrust)
	if nil != err {
		return s, err
	}
	err = addBalance(&o, register.FieldBalance, c.Amount)
	if nil != err {
		return s, err
	}
	o.Timestamp = timestamp
	return o.State, nil
}

// legacy

func (l *Legacy) verify(caller register.Address) error {
	err := ownedBy(l.PreState, caller)
	if nil != err {
		return err
	}
	if 0 == l.Amount {
		return fault.ErrAmountIsZero
	}
	if 0 == len(l.Script) {
		return fault.ErrInvalidOpcode
	}
	return nil
}

func (l *Legacy) execute(_ register.Address, s register.State, timestamp uint64) (register.State, error) {
	o, err := objectOf(s, register.StandardAccount)
	if nil != err {
		return s, err
	}
	err = subBalance(&o, register.FieldBalance, l.Amount, fault.ErrInsufficientBalance)
	if nil != err {
		return s, err
	}
	o.Timestamp = timestamp
	return o.State, nil
}

// trust register operations

func verifyTrust(s register.State, caller register.Address) error {
	err := ownedBy(s, caller)
	if nil != err {
		return err
	}
	if register.TypeObject != s.Type {
		return fault.ErrInvalidTrust
	}
	return nil
}

func trustOf(s register.State) (register.Object, error) {
	o, err := objectOf(s, register.StandardTrust)
	if fault.ErrInvalidStandard == err {
		return o, fault.ErrInvalidTrust
	}
	return o, err
}

func (t *Trust) verify(caller register.Address) error {
	return verifyTrust(t.PreState, caller)
}

// a trust update needs an existing stake
func (t *Trust) execute(_ register.Address, s register.State, timestamp uint64) (register.State, error) {
	o, err := trustOf(s)
	if nil != err {
		return s, err
	}
	stake, err := o.GetNumber(register.FieldStake)
	if nil != err {
		return s, err
	}
	if 0 == stake {
		return s, fault.ErrInvalidTrust
	}
	err = o.WriteNumber(register.FieldTrust, t.Score)
	if nil != err {
		return s, err
	}
	err = addBalance(&o, register.FieldStake, t.Reward)
	if nil != err {
		return s, err
	}
	o.Timestamp = timestamp
	return o.State, nil
}

func (g *Genesis) verify(caller register.Address) error {
	return verifyTrust(g.PreState, caller)
}

// genesis starts from no stake and no trust
func (g *Genesis) execute(_ register.Address, s register.State, timestamp uint64) (register.State, error) {
	o, err := trustOf(s)
	if nil != err {
		return s, err
	}
	stake, err := o.GetNumber(register.FieldStake)
	if nil != err {
		return s, err
	}
	trust, err := o.GetNumber(register.FieldTrust)
	if nil != err {
		return s, err
	}
	if 0 != stake || 0 != trust {
		return s, fault.ErrInvalidTrust
	}
	balance, err := o.GetNumber(register.FieldBalance)
	if nil != err {
		return s, err
	}
	if 0 == balance {
		return s, fault.ErrInsufficientBalance
	}
	if balance+g.Reward < balance {
		return s, fault.ErrBalanceOverflow
	}
	err = o.WriteNumber(register.FieldStake, balance+g.Reward)
	if nil != err {
		return s, err
	}
	err = o.WriteNumber(register.FieldBalance, 0)
	if nil != err {
		return s, err
	}
	o.Timestamp = timestamp
	return o.State, nil
}

func (k *Stake) verify(caller register.Address) error {
	if 0 == k.Amount {
		return fault.ErrAmountIsZero
	}
	return verifyTrust(k.PreState, caller)
}

func (k *Stake) execute(_ register.Address, s register.State, timestamp uint64) (register.State, error) {
	o, err := trustOf(s)
	if nil != err {
		return s, err
	}
	err = subBalance(&o, register.FieldBalance, k.Amount, fault.ErrInsufficientBalance)
	if nil != err {
		return s, err
	}
	err = addBalance(&o, register.FieldStake, k.Amount)
	if nil != err {
		return s, err
	}
	o.Timestamp = timestamp
	return o.State, nil
}

func (u *Unstake) verify(caller register.Address) error {
	if 0 == u.Amount {
		return fault.ErrAmountIsZero
	}
	return verifyTrust(u.PreState, caller)
}

// the penalty reduces trust but never below zero
func (u *Unstake) execute(_ register.Address, s register.State, timestamp uint64) (register.State, error) {
	o, err := trustOf(s)
	if nil != err {
		return s, err
	}
	err = subBalance(&o, register.FieldStake, u.Amount, fault.ErrInsufficientStake)
	if nil != err {
		return s, err
	}
	err = addBalance(&o, register.FieldBalance, u.Amount)
	if nil != err {
		return s, err
	}
	trust, err := o.GetNumber(register.FieldTrust)
	if nil != err {
		return s, err
	}
	if u.Penalty > trust {
		trust = 0
	} else {
		trust -= u.Penalty
	}
	err = o.WriteNumber(register.FieldTrust, trust)
	if nil != err {
		return s, err
	}
	o.Timestamp = timestamp
	return o.State, nil
}

// create has no pre-state so it is not a stateful operation
func (c *Create) verify(caller register.Address) error {
	if c.Address.IsZero() {
		return fault.ErrAddressIsZero
	}
	if !c.Type.IsValid() {
		return fault.ErrInvalidRegisterType
	}
	if register.TypeObject != c.Type {
		return nil
	}
	o, err := register.ObjectFromState(register.NewState(c.Type, caller, 0, c.Data))
	if nil != err {
		return err
	}
	return initialBalances(o, c.Address)
}

// a new register starts empty except for a token, which holds its
// whole supply and is named by its own address
func initialBalances(o register.Object, address register.Address) error {
	zero := func(names ...string) error {
		for _, name := range names {
			n, err := o.GetNumber(name)
			if nil != err {
				return err
			}
			if 0 != n {
				return fault.ErrInvalidInitialBalance
			}
		}
		return nil
	}

	switch o.Standard() {
	case register.StandardAccount:
		return zero(register.FieldBalance)

	case register.StandardTrust:
		err := zero(register.FieldBalance, register.FieldTrust, register.FieldStake)
		if nil != err {
			return err
		}
		token, err := o.GetAddress(register.FieldToken)
		if nil != err {
			return err
		}
		if !token.IsZero() {
			return fault.ErrTokenMismatch
		}

	case register.StandardToken:
		balance, err := o.GetNumber(register.FieldBalance)
		if nil != err {
			return err
		}
		supply, err := o.GetNumber(register.FieldSupply)
		if nil != err {
			return err
		}
		if balance != supply {
			return fault.ErrInvalidInitialBalance
		}
		token, err := o.GetAddress(register.FieldToken)
		if nil != err {
			return err
		}
		if token != address {
			return fault.ErrTokenMismatch
		}
	}
	return nil
}

func (c *Create) execute(caller register.Address, timestamp uint64) (register.State, error) {
	s := register.NewState(c.Type, caller, timestamp, c.Data)
	if register.TypeObject == c.Type {
		o, err := register.ObjectFromState(s)
		if nil != err {
			return s, err
		}
		s = o.State
	}
	return s, nil
}
