// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package minter

import "errors"

var (
	// ErrInsufficientBalance is returned by the factory variant when the
	// transferred value does not equal the flat mint fee.
	ErrInsufficientBalance = errors.New("transferred value does not match mint fee")

	// ErrNotOwner is returned when a privileged message is sent by an
	// account other than the contract owner.
	ErrNotOwner = errors.New("caller is not the contract owner")

	// ErrContractNotSet is returned by mint when the token contract was
	// the zero address at construction.
	ErrContractNotSet = errors.New("token contract is not set")

	// ErrBadMintValue is returned by the manic variant when the
	// transferred value does not equal price times amount.
	ErrBadMintValue = errors.New("transferred value does not match price times amount")

	// ErrOverflow is returned by the manic variant when price times
	// amount exceeds the 128-bit range.
	ErrOverflow = errors.New("price and amount multiplication overflows")

	ErrUnknownSelector = errors.New("unknown selector")
	ErrNonPayable      = errors.New("value attached to non-payable message")
)

// FactoryErrorCode returns the one-byte wire discriminator for an error of
// the factory variant's taxonomy. Codes follow declaration order:
// InsufficientBalance, NotOwner, ContractNotSet.
func FactoryErrorCode(err error) (byte, bool) {
	switch {
	case errors.Is(err, ErrInsufficientBalance):
		return 0, true
	case errors.Is(err, ErrNotOwner):
		return 1, true
	case errors.Is(err, ErrContractNotSet):
		return 2, true
	default:
		return 0, false
	}
}

// Result wire encoding: a single 0x00 byte for success, 0x01 followed by
// the variant's error discriminator for a recognized failure.
const (
	resultOk  byte = 0x00
	resultErr byte = 0x01
)

// EncodeFactoryResult renders a factory call result in its wire form.
// Errors outside the factory taxonomy have no wire form and are returned
// unchanged.
func EncodeFactoryResult(callErr error) ([]byte, error) {
	if callErr == nil {
		return []byte{resultOk}, nil
	}
	code, ok := FactoryErrorCode(callErr)
	if !ok {
		return nil, callErr
	}
	return []byte{resultErr, code}, nil
}

// EncodeManicResult renders a manic call result in its wire form. Errors
// outside the manic taxonomy have no wire form and are returned unchanged.
func EncodeManicResult(callErr error) ([]byte, error) {
	if callErr == nil {
		return []byte{resultOk}, nil
	}
	code, ok := ManicErrorCode(callErr)
	if !ok {
		return nil, callErr
	}
	return []byte{resultErr, code}, nil
}

// ManicErrorCode returns the one-byte wire discriminator for an error of
// the manic variant's taxonomy. Codes follow declaration order:
// BadMintValue, NotOwner, ContractNotSet, OverFlow.
func ManicErrorCode(err error) (byte, bool) {
	switch {
	case errors.Is(err, ErrBadMintValue):
		return 0, true
	case errors.Is(err, ErrNotOwner):
		return 1, true
	case errors.Is(err, ErrContractNotSet):
		return 2, true
	case errors.Is(err, ErrOverflow):
		return 3, true
	default:
		return 0, false
	}
}
