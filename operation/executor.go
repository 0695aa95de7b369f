// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package operation - execute contracts against the register and ledger stores
//
// a contract is decoded into one typed primitive plus an optional
// suffix; every register change is checked as
//
//	stored state == claimed pre-state
//	hash(transition(pre-state)) == claimed post-state checksum
//
// and nothing is written unless all checks pass
package operation

import (
	"bytes"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/ledgerd/contract"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/ledger"
	"github.com/bitmark-inc/ledgerd/register"
	"github.com/bitmark-inc/ledgerd/validate"
)

// Flags - execution mode
type Flags uint8

// execution modes
const (
	FlagVerify Flags = 1 << iota // all checks, no writes
	FlagWrite                    // all checks, then commit
)

// Ledger - contract, proof and validator records
type Ledger interface {
	HasContract(contract.TxID, uint32) bool
	ReadContract(contract.TxID, uint32) (*contract.Contract, error)
	WriteContract(contract.TxID, uint32, *contract.Contract) error
	HasProof(register.Address, contract.TxID, uint32) bool
	ReadProof(register.Address, contract.TxID, uint32) (uint64, bool)
	WriteProof(register.Address, contract.TxID, uint32, uint64) error
	ReadValidator(contract.TxID, uint32) (register.Address, error)
	WriteValidator(contract.TxID, uint32, register.Address) error
	ReadChainState() ledger.ChainState
	Begin() error
	Commit() error
	Abort() error
}

// Executor - applies contracts
type Executor struct {
	log       *logger.L
	registers register.Store
	ledger    Ledger
	machine   *validate.Machine
}

type proof struct {
	address   register.Address
	reference contract.Reference
	amount    uint64
}

// everything a contract will write once it is accepted
type effects struct {
	address   register.Address
	state     *register.State
	proofs    []proof
	validator *contract.Reference
}

// New - create an executor; options configure the condition machine
func New(registers register.Store, l Ledger, options validate.Options) (*Executor, error) {
	log := logger.New("operation")
	if nil == log {
		return nil, fault.ErrInvalidLoggerChannel
	}
	machine, err := validate.New(registers, l, options)
	if nil != err {
		return nil, err
	}
	return &Executor{
		log:       log,
		registers: registers,
		ledger:    l,
		machine:   machine,
	}, nil
}

// Execute - check a contract and, with FlagWrite, commit its effects
//
// the contract is stored under ref so later claims and credits can
// find it; any failure leaves both stores untouched
func (e *Executor) Execute(ref contract.Reference, c *contract.Contract, flags Flags) (err error) {
	defer func() {
		if r := recover(); nil != r {
			e.log.Criticalf("contract: %s[%d]  panic: %v", ref.TxID, ref.Index, r)
			err = fault.ErrExecutionPanic
		}
	}()

	d, err := Decode(c)
	if nil != err {
		e.log.Warnf("reject contract: %s[%d]  decode error: %s  offset: %d", ref.TxID, ref.Index, err, c.Position())
		return err
	}
	op := contract.OperationName(d.Primitive.Opcode())

	if e.ledger.HasContract(ref.TxID, ref.Index) {
		e.log.Warnf("reject contract: %s[%d]  op: %s  already applied", ref.TxID, ref.Index, op)
		return fault.ErrContractExists
	}

	fx, err := e.check(c, d)
	if nil != err {
		e.log.Warnf("reject contract: %s[%d]  op: %s  error: %s", ref.TxID, ref.Index, op, err)
		return err
	}

	if 0 == flags&FlagWrite {
		e.log.Debugf("verified contract: %s[%d]  op: %s", ref.TxID, ref.Index, op)
		return nil
	}

	err = e.commit(ref, c, fx)
	if nil != err {
		e.log.Errorf("commit contract: %s[%d]  op: %s  error: %s", ref.TxID, ref.Index, op, err)
		return err
	}
	e.log.Infof("applied contract: %s[%d]  op: %s", ref.TxID, ref.Index, op)
	return nil
}

// run every check and collect the writes
func (e *Executor) check(c *contract.Contract, d *Decoded) (*effects, error) {
	fx := &effects{}

	if nil != d.Condition() {
		switch d.Primitive.(type) {
		case *Transfer, *Debit, *Credit:
		default:
			return nil, fault.ErrConditionNotAllowed
		}
	}

	switch p := d.Primitive.(type) {
	case *Coinbase, *Authorize:
		// seek only, realised by a later credit

	case *Create:
		err := p.verify(c.Caller)
		if nil != err {
			return nil, err
		}
		if e.registers.HasState(p.Address) {
			return nil, fault.ErrRegisterExists
		}
		s, err := p.execute(c.Caller, c.Timestamp)
		if nil != err {
			return nil, err
		}
		err = s.Verify()
		if nil != err {
			return nil, err
		}
		if s.Checksum != p.Checksum {
			return nil, fault.ErrChecksumMismatch
		}
		fx.address = p.Address
		fx.state = &s

	case *Claim:
		pr, err := e.authoriseClaim(c, p)
		if nil != err {
			return nil, err
		}
		fx.proofs = append(fx.proofs, pr)

	case *Credit:
		pr, err := e.authoriseCredit(c, p)
		if nil != err {
			return nil, err
		}
		fx.proofs = append(fx.proofs, pr)
	}

	if p, ok := d.Primitive.(stateful); ok {
		s, err := e.transition(c, p)
		if nil != err {
			return nil, err
		}
		fx.address = p.target(c.Caller)
		fx.state = &s
	}

	if nil != d.Suffix && contract.OpValidate == d.Suffix.Op {
		ref := d.Suffix.Reference
		script, err := e.priorCondition(ref)
		if nil != err {
			return nil, err
		}
		if nil == script {
			return nil, fault.ErrNoCondition
		}
		ok, err := e.machine.Execute(script, c)
		if nil != err {
			return nil, err
		}
		if !ok {
			return nil, fault.ErrConditionNotSatisfied
		}
		fx.validator = &ref
	}

	return fx, nil
}

// pre-state match, pure transition, post-state checksum
func (e *Executor) transition(c *contract.Contract, p stateful) (register.State, error) {
	t := p.transition()
	err := t.PreState.Verify()
	if nil != err {
		return register.State{}, err
	}
	err = p.verify(c.Caller)
	if nil != err {
		return register.State{}, err
	}

	address := p.target(c.Caller)
	stored, err := e.registers.ReadState(address)
	if nil != err {
		return register.State{}, err
	}
	if !bytes.Equal(stored.Pack(), t.PreState.Pack()) {
		return register.State{}, fault.ErrPreStateMismatch
	}

	post, err := p.execute(c.Caller, t.PreState.Clone(), c.Timestamp)
	if nil != err {
		return register.State{}, err
	}
	post.SetChecksum()
	err = post.Verify()
	if nil != err {
		return register.State{}, err
	}
	if post.Checksum != t.Checksum {
		e.log.Debugf("register: %s  checksum: %x  claimed: %x", address, post.Checksum, t.Checksum)
		return register.State{}, fault.ErrChecksumMismatch
	}
	return post, nil
}

// decode a stored contract
func (e *Executor) prior(ref contract.Reference) (*Decoded, error) {
	c, err := e.ledger.ReadContract(ref.TxID, ref.Index)
	if nil != err {
		return nil, err
	}
	d, err := Decode(c)
	if nil != err {
		e.log.Criticalf("stored contract: %s[%d]  decode error: %s", ref.TxID, ref.Index, err)
		return nil, err
	}
	return d, nil
}

func (e *Executor) priorCondition(ref contract.Reference) ([]byte, error) {
	d, err := e.prior(ref)
	if nil != err {
		return nil, err
	}
	return d.Condition(), nil
}

// the condition of a referenced contract holds for the caller, either
// inline or through an earlier VALIDATE
func (e *Executor) condition(ref contract.Reference, script []byte, caller *contract.Contract) error {
	ok, err := e.machine.Execute(script, caller)
	if nil == err && ok {
		return nil
	}
	validator, verr := e.ledger.ReadValidator(ref.TxID, ref.Index)
	if nil == verr {
		e.log.Debugf("condition: %s[%d]  validated by: %s", ref.TxID, ref.Index, validator)
		return nil
	}
	if nil != err {
		return err
	}
	return fault.ErrConditionNotSatisfied
}

func (e *Executor) authoriseClaim(c *contract.Contract, p *Claim) (proof, error) {
	ref := p.Reference
	d, err := e.prior(ref)
	if nil != err {
		return proof{}, err
	}
	transfer, ok := d.Primitive.(*Transfer)
	if !ok {
		return proof{}, fault.ErrWrongOperation
	}
	if transfer.Address != p.Address {
		return proof{}, fault.ErrInvalidContractReference
	}
	if e.ledger.HasProof(p.Address, ref.TxID, ref.Index) {
		return proof{}, fault.ErrAlreadyClaimed
	}

	if script := d.Condition(); nil != script {
		err = e.condition(ref, script, c)
		if nil != err {
			return proof{}, err
		}
	} else if transfer.Recipient != c.Caller {
		return proof{}, fault.ErrRecipientMismatch
	}

	return proof{address: p.Address, reference: ref}, nil
}

func (e *Executor) authoriseCredit(c *contract.Contract, p *Credit) (proof, error) {
	ref := p.Reference
	d, err := e.prior(ref)
	if nil != err {
		return proof{}, err
	}
	if e.ledger.HasProof(p.Proof, ref.TxID, ref.Index) {
		return proof{}, fault.ErrAlreadyClaimed
	}

	token, err := tokenOf(p.PreState)
	if nil != err {
		return proof{}, err
	}

	switch source := d.Primitive.(type) {
	case *Debit:
		// a credit lands on the debit recipient, a refund on the debit source
		if p.Proof != p.To || (p.To != source.To && p.To != source.From) {
			return proof{}, fault.ErrInvalidContractReference
		}

		total := p.Amount
		for _, side := range []register.Address{source.To, source.From} {
			amount, _ := e.ledger.ReadProof(side, ref.TxID, ref.Index)
			total += amount
			if total < amount {
				return proof{}, fault.ErrBalanceOverflow
			}
		}
		if total > source.Amount {
			return proof{}, fault.ErrInsufficientBalance
		}

		from, err := e.registers.ReadState(source.From)
		if nil != err {
			return proof{}, err
		}
		sourceToken, err := tokenOf(from)
		if nil != err {
			return proof{}, err
		}
		if sourceToken != token {
			return proof{}, fault.ErrTokenMismatch
		}

		if script := d.Condition(); nil != script {
			err = e.condition(ref, script, c)
			if nil != err {
				return proof{}, err
			}
		} else if p.PreState.Owner != c.Caller {
			return proof{}, fault.ErrInvalidOwner
		}

	case *Coinbase:
		if source.Genesis != c.Caller {
			return proof{}, fault.ErrRecipientMismatch
		}
		if p.Proof != source.Genesis {
			return proof{}, fault.ErrInvalidContractReference
		}
		if p.Amount > source.Amount {
			return proof{}, fault.ErrInsufficientBalance
		}
		if p.PreState.Owner != c.Caller {
			return proof{}, fault.ErrInvalidOwner
		}
		if !token.IsZero() {
			return proof{}, fault.ErrTokenMismatch
		}

	default:
		return proof{}, fault.ErrWrongOperation
	}

	return proof{address: p.Proof, reference: ref, amount: p.Amount}, nil
}

// token of an account, token or trust register
func tokenOf(s register.State) (register.Address, error) {
	o, err := objectOf(s, register.StandardAccount, register.StandardToken, register.StandardTrust)
	if nil != err {
		return register.Address{}, err
	}
	return o.GetAddress(register.FieldToken)
}

// write everything or nothing
func (e *Executor) commit(ref contract.Reference, c *contract.Contract, fx *effects) (err error) {
	err = e.registers.Begin()
	if nil != err {
		return err
	}
	err = e.ledger.Begin()
	if nil != err {
		_ = e.registers.Abort()
		return err
	}
	defer func() {
		if nil != err {
			_ = e.registers.Abort()
			_ = e.ledger.Abort()
		}
	}()

	if nil != fx.state {
		err = e.registers.WriteState(fx.address, *fx.state)
		if nil != err {
			return err
		}
	}
	for _, p := range fx.proofs {
		err = e.ledger.WriteProof(p.address, p.reference.TxID, p.reference.Index, p.amount)
		if nil != err {
			return err
		}
	}
	if nil != fx.validator {
		err = e.ledger.WriteValidator(fx.validator.TxID, fx.validator.Index, c.Caller)
		if nil != err {
			return err
		}
	}
	err = e.ledger.WriteContract(ref.TxID, ref.Index, c)
	if nil != err {
		return err
	}

	err = e.registers.Commit()
	if nil != err {
		return err
	}
	return e.ledger.Commit()
}
