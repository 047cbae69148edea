// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package token implements a PSP22-style fungible token ledger with an
// ownable, privileged mint. The minting facade is expected to be installed
// as the ledger's owner before delegated mints can succeed.
package token

import (
	"errors"

	"github.com/luxfi/database"
	"github.com/luxfi/ids"

	"github.com/luxfi/minter/balance"
	"github.com/luxfi/minter/host"
	"github.com/luxfi/minter/selector"
	"github.com/luxfi/minter/wire"
)

var (
	BalanceOfSelector         = selector.Compute("PSP22::balance_of")
	TotalSupplySelector       = selector.Compute("PSP22::total_supply")
	TransferSelector          = selector.Compute("PSP22::transfer")
	MintSelector              = selector.Compute("PSP22Mintable::mint")
	OwnerSelector             = selector.Compute("Ownable::owner")
	TransferOwnershipSelector = selector.Compute("Ownable::transfer_ownership")

	ErrInsufficientBalance = errors.New("insufficient token balance")
	ErrCallerIsNotOwner    = errors.New("caller is not the ledger owner")
	ErrUnknownSelector     = errors.New("unknown selector")
	ErrNonPayable          = errors.New("value attached to non-payable message")

	ownerKey      = []byte("owner")
	supplyKey     = []byte("supply")
	balancePrefix = []byte("balance/")

	_ host.Contract = (*Token)(nil)
)

// Token is the ledger contract. All balances live in host storage; the
// object itself is stateless.
type Token struct{}

func New() *Token {
	return &Token{}
}

// Instantiate mints the 16-byte initial supply argument to the deployer and
// installs the deployer as owner.
func (*Token) Instantiate(env host.Env, args []byte) error {
	r := wire.NewReader(args)
	initialSupply := r.UnpackBalance()
	if err := r.Done(); err != nil {
		return err
	}

	caller := env.Caller()
	if err := env.SetState(ownerKey, caller[:]); err != nil {
		return err
	}
	if err := putAmount(env, supplyKey, initialSupply); err != nil {
		return err
	}
	return putAmount(env, balanceKey(caller), initialSupply)
}

func (t *Token) Invoke(env host.Env, sel selector.Selector, args []byte) ([]byte, error) {
	if !env.TransferredValue().IsZero() {
		return nil, ErrNonPayable
	}

	switch sel {
	case BalanceOfSelector:
		return t.balanceOf(env, args)
	case TotalSupplySelector:
		return t.totalSupply(env, args)
	case TransferSelector:
		return t.transfer(env, args)
	case MintSelector:
		return t.mint(env, args)
	case OwnerSelector:
		return t.owner(env, args)
	case TransferOwnershipSelector:
		return t.transferOwnership(env, args)
	default:
		return nil, ErrUnknownSelector
	}
}

func (*Token) balanceOf(env host.Env, args []byte) ([]byte, error) {
	r := wire.NewReader(args)
	account := r.UnpackID()
	if err := r.Done(); err != nil {
		return nil, err
	}

	b, err := getAmount(env, balanceKey(account))
	if err != nil {
		return nil, err
	}
	p := wire.New(balance.Size)
	p.PackBalance(b)
	return p.Bytes, nil
}

func (*Token) totalSupply(env host.Env, args []byte) ([]byte, error) {
	if len(args) != 0 {
		return nil, wire.ErrExtraBytes
	}

	supply, err := getAmount(env, supplyKey)
	if err != nil {
		return nil, err
	}
	p := wire.New(balance.Size)
	p.PackBalance(supply)
	return p.Bytes, nil
}

func (*Token) transfer(env host.Env, args []byte) ([]byte, error) {
	r := wire.NewReader(args)
	to := r.UnpackID()
	amount := r.UnpackBalance()
	if err := r.Done(); err != nil {
		return nil, err
	}

	from := env.Caller()
	fromBalance, err := getAmount(env, balanceKey(from))
	if err != nil {
		return nil, err
	}
	newFromBalance, err := balance.Sub(fromBalance, amount)
	if err != nil {
		return nil, ErrInsufficientBalance
	}

	toBalance, err := getAmount(env, balanceKey(to))
	if err != nil {
		return nil, err
	}
	newToBalance, err := balance.Add(toBalance, amount)
	if err != nil {
		return nil, err
	}

	if err := putAmount(env, balanceKey(from), newFromBalance); err != nil {
		return nil, err
	}
	return nil, putAmount(env, balanceKey(to), newToBalance)
}

// mint credits amount to the recipient. Restricted to the ledger owner.
func (t *Token) mint(env host.Env, args []byte) ([]byte, error) {
	r := wire.NewReader(args)
	recipient := r.UnpackID()
	amount := r.UnpackBalance()
	if err := r.Done(); err != nil {
		return nil, err
	}

	if err := t.ensureOwner(env); err != nil {
		return nil, err
	}

	supply, err := getAmount(env, supplyKey)
	if err != nil {
		return nil, err
	}
	newSupply, err := balance.Add(supply, amount)
	if err != nil {
		return nil, err
	}

	recipientBalance, err := getAmount(env, balanceKey(recipient))
	if err != nil {
		return nil, err
	}
	newRecipientBalance, err := balance.Add(recipientBalance, amount)
	if err != nil {
		return nil, err
	}

	if err := putAmount(env, supplyKey, newSupply); err != nil {
		return nil, err
	}
	return nil, putAmount(env, balanceKey(recipient), newRecipientBalance)
}

func (*Token) owner(env host.Env, args []byte) ([]byte, error) {
	if len(args) != 0 {
		return nil, wire.ErrExtraBytes
	}
	return env.GetState(ownerKey)
}

func (t *Token) transferOwnership(env host.Env, args []byte) ([]byte, error) {
	r := wire.NewReader(args)
	newOwner := r.UnpackID()
	if err := r.Done(); err != nil {
		return nil, err
	}

	if err := t.ensureOwner(env); err != nil {
		return nil, err
	}
	return nil, env.SetState(ownerKey, newOwner[:])
}

func (*Token) ensureOwner(env host.Env) error {
	owner, err := env.GetState(ownerKey)
	if err != nil {
		return err
	}
	caller := env.Caller()
	if string(owner) != string(caller[:]) {
		return ErrCallerIsNotOwner
	}
	return nil
}

func balanceKey(account ids.ID) []byte {
	return append(balancePrefix, account[:]...)
}

func getAmount(env host.Env, key []byte) (balance.Balance, error) {
	b, err := env.GetState(key)
	switch {
	case err == nil:
		return balance.FromBytes(b)
	case errors.Is(err, database.ErrNotFound):
		// Absent keys read as zero.
		return balance.Zero, nil
	default:
		return balance.Zero, err
	}
}

func putAmount(env host.Env, key []byte, amount balance.Balance) error {
	encoded := amount.Bytes()
	return env.SetState(key, encoded[:])
}
