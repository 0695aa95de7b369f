// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type LengthError GenericError
type LimitError GenericError
type NotFoundError GenericError
type ProcessError GenericError
type RecordError GenericError

// common errors - keep in alphabetic order
var (
	ErrAddressIsZero            = InvalidError("register address is zero")
	ErrAlreadyClaimed           = ExistsError("contract already claimed")
	ErrAlreadyInitialised       = ExistsError("already initialised")
	ErrAmountIsZero             = InvalidError("amount is zero")
	ErrBalanceOverflow          = InvalidError("balance overflow")
	ErrBufferTruncated          = LengthError("buffer truncated")
	ErrChecksumMismatch         = RecordError("post-state checksum mismatch")
	ErrComputationLimit         = LimitError("computational limit exceeded")
	ErrConditionNotAllowed      = InvalidError("operation cannot contain a condition")
	ErrConditionNotSatisfied    = InvalidError("condition not satisfied")
	ErrContractExists           = ExistsError("contract already applied")
	ErrContractNotFound         = NotFoundError("contract not found")
	ErrDatabaseIsClosed         = ProcessError("database is closed")
	ErrDivideByZero             = InvalidError("divide by zero")
	ErrExecutionPanic           = ProcessError("execution panic")
	ErrFieldExists              = ExistsError("object field already exists")
	ErrFieldIsImmutable         = InvalidError("object field is immutable")
	ErrFieldIsReserved          = InvalidError("object field can only change through its operations")
	ErrFieldNotFound            = NotFoundError("object field not found")
	ErrFieldTypeMismatch        = InvalidError("object field type mismatch")
	ErrIncompatibleVersion      = InvalidError("incompatible database version")
	ErrInsufficientBalance      = InvalidError("insufficient balance")
	ErrInsufficientStake        = InvalidError("insufficient stake")
	ErrInvalidAddress           = InvalidError("invalid register address")
	ErrInvalidConfiguration     = InvalidError("configuration must return a table")
	ErrInvalidContractReference = InvalidError("invalid contract reference")
	ErrInvalidFieldType         = InvalidError("invalid object field type")
	ErrInvalidInitialBalance    = InvalidError("new register must start with no balance")
	ErrInvalidLoggerChannel     = InvalidError("invalid logger channel")
	ErrInvalidObject            = InvalidError("invalid object register")
	ErrInvalidOpcode            = InvalidError("invalid opcode")
	ErrInvalidOwner             = InvalidError("caller is not register owner")
	ErrInvalidPostStateMarker   = InvalidError("invalid post-state marker")
	ErrInvalidPreStateMarker    = InvalidError("invalid pre-state marker")
	ErrInvalidRegisterType      = InvalidError("invalid register type")
	ErrInvalidStandard          = InvalidError("object is not of the required standard")
	ErrInvalidState             = InvalidError("invalid state")
	ErrInvalidStructPointer     = InvalidError("invalid struct pointer")
	ErrInvalidTransactionID     = InvalidError("invalid transaction id")
	ErrInvalidTrust             = InvalidError("invalid trust register")
	ErrKeyLength                = InvalidError("key length is invalid")
	ErrKeyMismatch              = RecordError("sector key mismatch")
	ErrKeyNotFound              = NotFoundError("key not found")
	ErrMissingChecksum          = LengthError("missing post-state checksum")
	ErrNoCondition              = NotFoundError("referenced contract has no condition")
	ErrNotInTransaction         = ProcessError("no transaction in progress")
	ErrPendingState             = InvalidError("cannot bulk remove pending entries")
	ErrPreStateMismatch         = RecordError("pre-state does not match stored register")
	ErrReadPastEnd              = LengthError("read past end of contract")
	ErrRecipientMismatch        = InvalidError("caller is not the recipient")
	ErrRegisterExists           = ExistsError("register already exists")
	ErrRegisterNotFound         = NotFoundError("register not found")
	ErrScriptTruncated          = LengthError("validation script truncated")
	ErrSectorChecksum           = RecordError("sector data checksum mismatch")
	ErrSectorNotFound           = NotFoundError("sector not found")
	ErrSelfTransfer             = InvalidError("cannot transfer to self")
	ErrStateTooLarge            = LengthError("state is too large")
	ErrSubDataRange             = LengthError("sub-data out of range")
	ErrTokenMismatch            = InvalidError("token identifiers do not match")
	ErrTooManyPrimitives        = InvalidError("contract cannot contain any more primitives")
	ErrTrailingBytes            = LengthError("unexpected trailing bytes")
	ErrTransactionInProgress    = ProcessError("transaction already in progress")
	ErrValidatorNotFound        = NotFoundError("validator record not found")
	ErrValueOverflow            = InvalidError("64-bit value overflow")
	ErrValueTooLarge            = LengthError("value is too large for a sector")
	ErrValueTooWide             = LengthError("value is wider than 64 bits")
	ErrWrongOperation           = InvalidError("referenced contract has wrong operation")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e LengthError) Error() string   { return string(e) }
func (e LimitError) Error() string    { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }
func (e RecordError) Error() string   { return string(e) }

// determine the class of an error
func IsErrExists(e error) bool   { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool  { _, ok := e.(InvalidError); return ok }
func IsErrLength(e error) bool   { _, ok := e.(LengthError); return ok }
func IsErrLimit(e error) bool    { _, ok := e.(LimitError); return ok }
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }
func IsErrProcess(e error) bool  { _, ok := e.(ProcessError); return ok }
func IsErrRecord(e error) bool   { _, ok := e.(RecordError); return ok }
