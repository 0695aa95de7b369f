// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package validate

import (
	"encoding/binary"

	"github.com/bitmark-inc/ledgerd/contract"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/register"
	"github.com/bitmark-inc/ledgerd/util"
)

// a leaf value: literal or environment query
type term struct {
	op      byte
	literal []byte
	address register.Address
	field   string
}

// a postfix operation applied to the running value
type operation struct {
	op      byte
	operand *term // binary arithmetic
	start   uint16
	size    uint16
}

type expression struct {
	term       term
	operations []operation
}

// value (COMPARATOR value)? (AND|OR next)?
type clause struct {
	left       expression
	comparator byte
	right      expression
	combinator byte
}

type parser struct {
	script []byte
	offset int
}

// parse a whole script into clauses joined by combinators
func parse(script []byte) ([]clause, error) {
	p := &parser{script: script}
	clauses := make([]clause, 0, 1)
	for {
		c, err := p.clause()
		if nil != err {
			return nil, err
		}
		clauses = append(clauses, c)
		if 0 == c.combinator {
			break
		}
	}
	if p.offset != len(p.script) {
		return nil, fault.ErrInvalidOpcode
	}
	return clauses, nil
}

func (p *parser) end() bool {
	return p.offset >= len(p.script)
}

func (p *parser) peek() byte {
	return p.script[p.offset]
}

func (p *parser) next(n int) ([]byte, error) {
	if p.offset+n > len(p.script) {
		return nil, fault.ErrScriptTruncated
	}
	b := p.script[p.offset : p.offset+n]
	p.offset += n
	return b, nil
}

func (p *parser) readByte() (byte, error) {
	b, err := p.next(1)
	if nil != err {
		return 0, err
	}
	return b[0], nil
}

func (p *parser) clause() (clause, error) {
	c := clause{}
	var err error
	c.left, err = p.expression()
	if nil != err {
		return c, err
	}
	if p.end() {
		return c, nil
	}

	switch op := p.peek(); op {
	case contract.OpEquals, contract.OpLessThan, contract.OpGreaterThan, contract.OpNotEquals, contract.OpContains:
		p.offset += 1
		c.comparator = op
		c.right, err = p.expression()
		if nil != err {
			return c, err
		}
	}
	if p.end() {
		return c, nil
	}

	switch op := p.peek(); op {
	case contract.OpAnd, contract.OpOr:
		p.offset += 1
		c.combinator = op
		if p.end() {
			return c, fault.ErrScriptTruncated
		}
	default:
		return c, fault.ErrInvalidOpcode
	}
	return c, nil
}

func (p *parser) expression() (expression, error) {
	e := expression{}
	var err error
	e.term, err = p.term()
	if nil != err {
		return e, err
	}

	// an unrecognised byte ends the expression
	for !p.end() {
		op := p.peek()
		switch op {
		case contract.OpAdd, contract.OpSub, contract.OpMul, contract.OpDiv, contract.OpExp, contract.OpMod:
			p.offset += 1
			t, err := p.term()
			if nil != err {
				return e, err
			}
			e.operations = append(e.operations, operation{op: op, operand: &t})

		case contract.OpInc, contract.OpDec, contract.OpSK256, contract.OpSK512:
			p.offset += 1
			e.operations = append(e.operations, operation{op: op})

		case contract.OpSubData:
			p.offset += 1
			b, err := p.next(4)
			if nil != err {
				return e, err
			}
			e.operations = append(e.operations, operation{
				op:    op,
				start: binary.LittleEndian.Uint16(b[0:2]),
				size:  binary.LittleEndian.Uint16(b[2:4]),
			})

		default:
			return e, nil
		}
	}
	return e, nil
}

// fixed widths of the numeric literals
var literalWidth = map[byte]int{
	contract.OpUint8:    1,
	contract.OpUint16:   2,
	contract.OpUint32:   4,
	contract.OpUint64:   8,
	contract.OpUint256:  32,
	contract.OpUint512:  64,
	contract.OpUint1024: 128,
}

func (p *parser) term() (term, error) {
	op, err := p.readByte()
	if nil != err {
		return term{}, err
	}
	t := term{op: op}

	if width, ok := literalWidth[op]; ok {
		b, err := p.next(width)
		if nil != err {
			return t, err
		}
		t.literal = append([]byte{}, b...)
		return t, nil
	}

	switch op {
	case contract.OpString, contract.OpBytes:
		if p.end() {
			return t, fault.ErrScriptTruncated
		}
		data, n, err := util.ReadBytes(p.script[p.offset:])
		if nil != err {
			return t, fault.ErrScriptTruncated
		}
		p.offset += n
		t.literal = data

	case contract.OpRegisterTimestamp, contract.OpRegisterOwner, contract.OpRegisterType, contract.OpRegisterState, contract.OpRegisterValue:
		b, err := p.next(register.AddressLength)
		if nil != err {
			return t, err
		}
		copy(t.address[:], b)
		if contract.OpRegisterValue == op {
			if p.end() {
				return t, fault.ErrScriptTruncated
			}
			name, n, err := util.ReadBytes(p.script[p.offset:])
			if nil != err {
				return t, fault.ErrScriptTruncated
			}
			p.offset += n
			t.field = string(name)
		}

	case contract.OpCallerGenesis, contract.OpCallerTimestamp, contract.OpCallerOperations,
		contract.OpLedgerHeight, contract.OpLedgerSupply, contract.OpLedgerTimestamp,
		contract.OpUnified:

	default:
		return t, fault.ErrInvalidOpcode
	}
	return t, nil
}
