// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package validate - condition script evaluator
//
// a script is parsed once into clauses then evaluated; every literal,
// query and operation is charged against a fixed budget and evaluation
// fails as soon as the budget is overdrawn
package validate

import (
	"time"

	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/ledgerd/contract"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/ledger"
	"github.com/bitmark-inc/ledgerd/register"
	"github.com/bitmark-inc/logger"
)

// DefaultLimit - computational budget of one script
const DefaultLimit = 4096

// operation costs, literals and caller data cost a step plus their
// length in bytes
const (
	costStep       = 1
	costArithmetic = 64
	costMultiply   = 128
	costExponent   = 256
	costSubData    = 64
	costRegister   = 128
	costChain      = 8
	costSK256      = 512
	costSK512      = 1024
)

// RegisterReader - register states visible to scripts
type RegisterReader interface {
	ReadState(register.Address) (register.State, error)
}

// ChainReader - chain state visible to scripts
type ChainReader interface {
	ReadChainState() ledger.ChainState
}

// Options - machine configuration
type Options struct {
	Limit int
	Clock func() uint64 // unified time in seconds
}

// Machine - evaluates condition scripts
type Machine struct {
	log       *logger.L
	registers RegisterReader
	chain     ChainReader
	limit     int
	clock     func() uint64
}

// New - create a machine over the register and chain stores
func New(registers RegisterReader, chain ChainReader, options Options) (*Machine, error) {
	log := logger.New("validate")
	if nil == log {
		return nil, fault.ErrInvalidLoggerChannel
	}
	if options.Limit <= 0 {
		options.Limit = DefaultLimit
	}
	if nil == options.Clock {
		options.Clock = func() uint64 {
			return uint64(time.Now().Unix())
		}
	}
	return &Machine{
		log:       log,
		registers: registers,
		chain:     chain,
		limit:     options.Limit,
		clock:     options.Clock,
	}, nil
}

// Execute - evaluate a script for the contract that wants to satisfy it
//
// false with a nil error means the condition did not hold
func (m *Machine) Execute(script []byte, caller *contract.Contract) (result bool, err error) {
	defer func() {
		if r := recover(); nil != r {
			m.log.Criticalf("script panic: %v", r)
			result = false
			err = fault.ErrExecutionPanic
		}
	}()

	clauses, err := parse(script)
	if nil != err {
		m.log.Debugf("parse error: %s", err)
		return false, err
	}

	e := &evaluator{
		machine:   m,
		caller:    caller,
		remaining: m.limit,
	}
	result, err = e.evaluate(clauses, 0)
	if fault.ErrComputationLimit == err {
		m.log.Warnf("computational limit exceeded  remaining: %d", e.remaining)
		return false, err
	} else if nil != err {
		m.log.Debugf("evaluation error: %s", err)
		return false, err
	}
	m.log.Debugf("result: %v  used: %d", result, m.limit-e.remaining)
	return result, nil
}

type evaluator struct {
	machine   *Machine
	caller    *contract.Contract
	remaining int
}

func (e *evaluator) consume(cost int) error {
	e.remaining -= cost
	if e.remaining < 0 {
		return fault.ErrComputationLimit
	}
	return nil
}

// AND evaluates its right side whatever the left; OR stops at the
// first true clause
func (e *evaluator) evaluate(clauses []clause, i int) (bool, error) {
	c := clauses[i]
	value, err := e.clause(c)
	if nil != err {
		return false, err
	}
	if 0 != c.combinator {
		err = e.consume(costStep)
		if nil != err {
			return false, err
		}
	}

	switch c.combinator {
	case contract.OpOr:
		if value {
			return true, nil
		}
		return e.evaluate(clauses, i+1)
	case contract.OpAnd:
		rest, err := e.evaluate(clauses, i+1)
		if nil != err {
			return false, err
		}
		return value && rest, nil
	}
	return value, nil
}

func (e *evaluator) clause(c clause) (bool, error) {
	left, err := e.expression(c.left)
	if nil != err {
		return false, err
	}
	if 0 == c.comparator {
		return isTrue(left), nil
	}

	right, err := e.expression(c.right)
	if nil != err {
		return false, err
	}

	cost := len(left)
	if len(right) > cost {
		cost = len(right)
	}
	err = e.consume(costStep + cost)
	if nil != err {
		return false, err
	}

	switch c.comparator {
	case contract.OpEquals:
		return 0 == compare(left, right), nil
	case contract.OpNotEquals:
		return 0 != compare(left, right), nil
	case contract.OpLessThan:
		return compare(left, right) < 0, nil
	case contract.OpGreaterThan:
		return compare(left, right) > 0, nil
	case contract.OpContains:
		return contains(left, right), nil
	}
	return false, fault.ErrInvalidOpcode
}

func (e *evaluator) expression(x expression) ([]byte, error) {
	value, err := e.term(x.term)
	if nil != err {
		return nil, err
	}

	for _, o := range x.operations {
		switch o.op {
		case contract.OpAdd, contract.OpSub, contract.OpMul, contract.OpDiv, contract.OpExp, contract.OpMod:
			value, err = e.arithmetic(o, value)

		case contract.OpInc, contract.OpDec:
			err = e.consume(costArithmetic)
			if nil != err {
				return nil, err
			}
			a, err := toUint64(value)
			if nil != err {
				return nil, err
			}
			r := uint64(0)
			if contract.OpInc == o.op {
				r, err = add(a, 1)
			} else {
				r, err = sub(a, 1)
			}
			if nil != err {
				return nil, err
			}
			value = fromUint64(r)

		case contract.OpSK256:
			err = e.consume(costSK256)
			if nil == err {
				digest := sha3.Sum256(value)
				value = digest[:]
			}

		case contract.OpSK512:
			err = e.consume(costSK512)
			if nil == err {
				digest := sha3.Sum512(value)
				value = digest[:]
			}

		case contract.OpSubData:
			err = e.consume(costSubData)
			if nil == err {
				end := int(o.start) + int(o.size)
				if end > len(value) {
					return nil, fault.ErrSubDataRange
				}
				value = append([]byte{}, value[o.start:end]...)
			}

		default:
			err = fault.ErrInvalidOpcode
		}
		if nil != err {
			return nil, err
		}
	}
	return value, nil
}

func (e *evaluator) arithmetic(o operation, value []byte) ([]byte, error) {
	cost := costArithmetic
	switch o.op {
	case contract.OpMul, contract.OpDiv, contract.OpMod:
		cost = costMultiply
	case contract.OpExp:
		cost = costExponent
	}
	err := e.consume(cost)
	if nil != err {
		return nil, err
	}

	operand, err := e.term(*o.operand)
	if nil != err {
		return nil, err
	}
	a, err := toUint64(value)
	if nil != err {
		return nil, err
	}
	b, err := toUint64(operand)
	if nil != err {
		return nil, err
	}

	r := uint64(0)
	switch o.op {
	case contract.OpAdd:
		r, err = add(a, b)
	case contract.OpSub:
		r, err = sub(a, b)
	case contract.OpMul:
		r, err = mul(a, b)
	case contract.OpExp:
		r, err = exp(a, b)
	case contract.OpDiv, contract.OpMod:
		if 0 == b {
			return nil, fault.ErrDivideByZero
		}
		if contract.OpDiv == o.op {
			r = a / b
		} else {
			r = a % b
		}
	}
	if nil != err {
		return nil, err
	}
	return fromUint64(r), nil
}

func (e *evaluator) term(t term) ([]byte, error) {
	if _, ok := literalWidth[t.op]; ok || contract.OpString == t.op || contract.OpBytes == t.op {
		err := e.consume(costStep + len(t.literal))
		if nil != err {
			return nil, err
		}
		return t.literal, nil
	}

	switch t.op {
	case contract.OpRegisterTimestamp, contract.OpRegisterOwner, contract.OpRegisterType, contract.OpRegisterState, contract.OpRegisterValue:
		return e.register(t)

	case contract.OpCallerGenesis, contract.OpCallerTimestamp, contract.OpCallerOperations:
		if nil == e.caller {
			return nil, fault.ErrInvalidContractReference
		}
		value := []byte(nil)
		switch t.op {
		case contract.OpCallerGenesis:
			value = append([]byte{}, e.caller.Caller[:]...)
		case contract.OpCallerTimestamp:
			value = fromUint64(e.caller.Timestamp)
		default:
			value = e.caller.Operations()
		}
		err := e.consume(costStep + len(value))
		if nil != err {
			return nil, err
		}
		return value, nil

	case contract.OpLedgerHeight, contract.OpLedgerSupply, contract.OpLedgerTimestamp:
		err := e.consume(costChain)
		if nil != err {
			return nil, err
		}
		state := e.machine.chain.ReadChainState()
		switch t.op {
		case contract.OpLedgerHeight:
			return fromUint64(state.Height), nil
		case contract.OpLedgerSupply:
			return fromUint64(state.Supply), nil
		default:
			return fromUint64(state.Timestamp), nil
		}

	case contract.OpUnified:
		err := e.consume(costChain)
		if nil != err {
			return nil, err
		}
		return fromUint64(e.machine.clock()), nil
	}
	return nil, fault.ErrInvalidOpcode
}

func (e *evaluator) register(t term) ([]byte, error) {
	err := e.consume(costRegister)
	if nil != err {
		return nil, err
	}
	s, err := e.machine.registers.ReadState(t.address)
	if nil != err {
		return nil, err
	}

	switch t.op {
	case contract.OpRegisterTimestamp:
		return fromUint64(s.Timestamp), nil
	case contract.OpRegisterOwner:
		return append([]byte{}, s.Owner[:]...), nil
	case contract.OpRegisterType:
		return []byte{byte(s.Type)}, nil
	case contract.OpRegisterState:
		return append([]byte{}, s.Data...), nil
	}

	o, err := register.ObjectFromState(s)
	if nil != err {
		return nil, err
	}
	f, ok := o.Field(t.field)
	if !ok {
		return nil, fault.ErrFieldNotFound
	}
	if f.Type.IsNumber() {
		return fromUint64(f.Number), nil
	}
	return f.Bytes, nil
}
