// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package minter implements the payment-gated minting facades. A facade
// validates the attached payment against its owner-set price, then issues a
// privileged mint on a separately deployed token ledger with the caller as
// the recipient. Two variants exist: Factory charges a flat per-call fee
// and targets a PSP34-style ledger; ManicMinter charges per unit and
// targets a PSP22-style ledger.
package minter

import (
	"github.com/luxfi/ids"
	"github.com/luxfi/log"

	"github.com/luxfi/minter/balance"
	"github.com/luxfi/minter/host"
	"github.com/luxfi/minter/selector"
	"github.com/luxfi/minter/wire"
)

// TokenMintGas is the fixed gas allowance on the outbound mint call.
const TokenMintGas = 5_000_000_000

// Entry point selectors.
var (
	MintSelector      = selector.Compute("Minting::mint")
	ManicMintSelector = selector.Compute("Minting::manic_mint")
	SetPriceSelector  = selector.Compute("Minting::set_price")
	GetPriceSelector  = selector.Compute("Minting::get_price")

	// Selectors of the privileged mint entry points on the token ledgers.
	psp22MintSelector = selector.Compute("PSP22Mintable::mint")
	psp34MintSelector = selector.Compute("PSP34::mint")

	_ host.Contract = (*Factory)(nil)
	_ host.Contract = (*ManicMinter)(nil)
)

// Factory gates minting on a PSP34-style ledger behind a flat per-call fee.
type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

// Instantiate records the deployer as owner and the 32-byte argument as the
// token contract address. The default price is 1. Passing the zero address
// leaves the contract permanently unable to mint; there is deliberately no
// setter for the token contract.
func (*Factory) Instantiate(env host.Env, args []byte) error {
	return instantiate(env, args, balance.New64(1))
}

func (*Factory) Invoke(env host.Env, sel selector.Selector, args []byte) ([]byte, error) {
	switch sel {
	case MintSelector:
		return mint(env, args, flatFeeRequired, ErrInsufficientBalance, psp34MintSelector)
	case SetPriceSelector:
		return setPrice(env, args)
	case GetPriceSelector:
		return getPrice(env, args)
	default:
		return nil, ErrUnknownSelector
	}
}

// ManicMinter gates minting on a PSP22-style ledger behind a per-unit
// price.
type ManicMinter struct{}

func NewManicMinter() *ManicMinter {
	return &ManicMinter{}
}

// Instantiate records the deployer as owner and the 32-byte argument as the
// token contract address. The default price is 0, so a zero-payment mint
// succeeds until the owner sets a price.
func (*ManicMinter) Instantiate(env host.Env, args []byte) error {
	return instantiate(env, args, balance.Zero)
}

func (*ManicMinter) Invoke(env host.Env, sel selector.Selector, args []byte) ([]byte, error) {
	switch sel {
	case ManicMintSelector:
		return mint(env, args, perUnitRequired, ErrBadMintValue, psp22MintSelector)
	case SetPriceSelector:
		return setPrice(env, args)
	case GetPriceSelector:
		return getPrice(env, args)
	default:
		return nil, ErrUnknownSelector
	}
}

func instantiate(env host.Env, args []byte, defaultPrice balance.Balance) error {
	r := wire.NewReader(args)
	tokenContract := r.UnpackID()
	if err := r.Done(); err != nil {
		return err
	}

	s := &state{
		Owner:         env.Caller(),
		TokenContract: tokenContract,
		Price:         defaultPrice,
	}
	return s.write(env)
}

// flatFeeRequired ignores the amount; the fee is the price itself.
func flatFeeRequired(price, _ balance.Balance) (balance.Balance, error) {
	return price, nil
}

// perUnitRequired is price times amount, checked over the 128-bit domain.
func perUnitRequired(price, amount balance.Balance) (balance.Balance, error) {
	required, err := balance.Mul(price, amount)
	if err != nil {
		return balance.Zero, ErrOverflow
	}
	return required, nil
}

func mint(
	env host.Env,
	args []byte,
	required func(price, amount balance.Balance) (balance.Balance, error),
	mismatchErr error,
	tokenMintSelector selector.Selector,
) ([]byte, error) {
	r := wire.NewReader(args)
	amount := r.UnpackBalance()
	if err := r.Done(); err != nil {
		return nil, err
	}

	s, err := readState(env)
	if err != nil {
		return nil, err
	}

	// The configuration check precedes payment validation so that a
	// misconfigured deployment never reaches the payment logic.
	if s.TokenContract == ids.Empty {
		return nil, ErrContractNotSet
	}

	requiredValue, err := required(s.Price, amount)
	if err != nil {
		return nil, err
	}

	// Exact payment only. There is no refund path, so overpayment would
	// silently lock funds.
	if env.TransferredValue().Cmp(requiredValue) != 0 {
		return nil, mismatchErr
	}

	caller := env.Caller()
	p := wire.New(ids.IDLen + balance.Size)
	p.PackID(caller)
	p.PackBalance(amount)

	// The ledger's result is ignored: the facade reports success and keeps
	// the payment even if the ledger refused the mint.
	if _, err := env.Call(host.Message{
		To:       s.TokenContract,
		Selector: tokenMintSelector,
		Args:     p.Bytes,
		GasLimit: TokenMintGas,
	}); err != nil {
		env.Log().Debug("token mint dispatch failed",
			log.Stringer("token", s.TokenContract),
			log.Stringer("recipient", caller),
			log.Err(err),
		)
	}
	return nil, nil
}

func setPrice(env host.Env, args []byte) ([]byte, error) {
	if !env.TransferredValue().IsZero() {
		return nil, ErrNonPayable
	}

	r := wire.NewReader(args)
	price := r.UnpackBalance()
	if err := r.Done(); err != nil {
		return nil, err
	}

	s, err := readState(env)
	if err != nil {
		return nil, err
	}
	if env.Caller() != s.Owner {
		return nil, ErrNotOwner
	}

	s.Price = price
	return nil, s.write(env)
}

func getPrice(env host.Env, args []byte) ([]byte, error) {
	if !env.TransferredValue().IsZero() {
		return nil, ErrNonPayable
	}
	if len(args) != 0 {
		return nil, wire.ErrExtraBytes
	}

	s, err := readState(env)
	if err != nil {
		return nil, err
	}

	p := wire.New(balance.Size)
	p.PackBalance(s.Price)
	return p.Bytes, nil
}
