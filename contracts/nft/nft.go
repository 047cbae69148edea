// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package nft implements a PSP34-style non-fungible token collection with
// an ownable, privileged mint. Item identifiers share the 128-bit wire
// width of balances so the factory facade can forward its amount argument
// as an item id unchanged.
package nft

import (
	"errors"

	"github.com/luxfi/database"
	"github.com/luxfi/ids"
	safemath "github.com/luxfi/math"

	"github.com/luxfi/minter/balance"
	"github.com/luxfi/minter/host"
	"github.com/luxfi/minter/selector"
	"github.com/luxfi/minter/wire"
)

var (
	MintSelector              = selector.Compute("PSP34::mint")
	OwnerOfSelector           = selector.Compute("PSP34::owner_of")
	BalanceOfSelector         = selector.Compute("PSP34::balance_of")
	OwnerSelector             = selector.Compute("Ownable::owner")
	TransferOwnershipSelector = selector.Compute("Ownable::transfer_ownership")

	ErrTokenExists      = errors.New("item id already minted")
	ErrTokenNotFound    = errors.New("item id not minted")
	ErrCallerIsNotOwner = errors.New("caller is not the collection owner")
	ErrUnknownSelector  = errors.New("unknown selector")
	ErrNonPayable       = errors.New("value attached to non-payable message")

	ownerKey    = []byte("owner")
	itemPrefix  = []byte("item/")
	countPrefix = []byte("count/")

	_ host.Contract = (*Collection)(nil)
)

// Collection is the NFT contract.
type Collection struct{}

func New() *Collection {
	return &Collection{}
}

// Instantiate installs the deployer as the collection owner. The
// collection starts empty.
func (*Collection) Instantiate(env host.Env, args []byte) error {
	if len(args) != 0 {
		return wire.ErrExtraBytes
	}
	caller := env.Caller()
	return env.SetState(ownerKey, caller[:])
}

func (c *Collection) Invoke(env host.Env, sel selector.Selector, args []byte) ([]byte, error) {
	if !env.TransferredValue().IsZero() {
		return nil, ErrNonPayable
	}

	switch sel {
	case MintSelector:
		return c.mint(env, args)
	case OwnerOfSelector:
		return c.ownerOf(env, args)
	case BalanceOfSelector:
		return c.balanceOf(env, args)
	case OwnerSelector:
		return c.owner(env, args)
	case TransferOwnershipSelector:
		return c.transferOwnership(env, args)
	default:
		return nil, ErrUnknownSelector
	}
}

// mint assigns a fresh item id to the recipient. Restricted to the
// collection owner.
func (c *Collection) mint(env host.Env, args []byte) ([]byte, error) {
	r := wire.NewReader(args)
	recipient := r.UnpackID()
	id := r.UnpackBalance()
	if err := r.Done(); err != nil {
		return nil, err
	}

	if err := c.ensureOwner(env); err != nil {
		return nil, err
	}

	key := itemKey(id)
	if _, err := env.GetState(key); err == nil {
		return nil, ErrTokenExists
	} else if !errors.Is(err, database.ErrNotFound) {
		return nil, err
	}

	count, err := getCount(env, recipient)
	if err != nil {
		return nil, err
	}
	newCount, err := safemath.Add64(count, 1)
	if err != nil {
		return nil, err
	}

	if err := env.SetState(key, recipient[:]); err != nil {
		return nil, err
	}
	return nil, putCount(env, recipient, newCount)
}

func (*Collection) ownerOf(env host.Env, args []byte) ([]byte, error) {
	r := wire.NewReader(args)
	id := r.UnpackBalance()
	if err := r.Done(); err != nil {
		return nil, err
	}

	holder, err := env.GetState(itemKey(id))
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrTokenNotFound
	}
	return holder, err
}

func (*Collection) balanceOf(env host.Env, args []byte) ([]byte, error) {
	r := wire.NewReader(args)
	account := r.UnpackID()
	if err := r.Done(); err != nil {
		return nil, err
	}

	count, err := getCount(env, account)
	if err != nil {
		return nil, err
	}
	p := wire.New(wire.LongLen)
	p.PackLong(count)
	return p.Bytes, nil
}

func (*Collection) owner(env host.Env, args []byte) ([]byte, error) {
	if len(args) != 0 {
		return nil, wire.ErrExtraBytes
	}
	return env.GetState(ownerKey)
}

func (c *Collection) transferOwnership(env host.Env, args []byte) ([]byte, error) {
	r := wire.NewReader(args)
	newOwner := r.UnpackID()
	if err := r.Done(); err != nil {
		return nil, err
	}

	if err := c.ensureOwner(env); err != nil {
		return nil, err
	}
	return nil, env.SetState(ownerKey, newOwner[:])
}

func (*Collection) ensureOwner(env host.Env) error {
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

func itemKey(id balance.Balance) []byte {
	encoded := id.Bytes()
	return append(itemPrefix, encoded[:]...)
}

func countKey(account ids.ID) []byte {
	return append(countPrefix, account[:]...)
}

func getCount(env host.Env, account ids.ID) (uint64, error) {
	b, err := env.GetState(countKey(account))
	switch {
	case err == nil:
		r := wire.NewReader(b)
		count := r.UnpackLong()
		return count, r.Done()
	case errors.Is(err, database.ErrNotFound):
		return 0, nil
	default:
		return 0, err
	}
}

func putCount(env host.Env, account ids.ID, count uint64) error {
	p := wire.New(wire.LongLen)
	p.PackLong(count)
	return env.SetState(countKey(account), p.Bytes)
}
