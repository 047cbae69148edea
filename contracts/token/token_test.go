// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package token_test

import (
	"testing"

	"github.com/luxfi/database/memdb"
	"github.com/luxfi/ids"
	"github.com/luxfi/log"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/minter/balance"
	"github.com/luxfi/minter/config"
	"github.com/luxfi/minter/contracts/token"
	"github.com/luxfi/minter/host"
	"github.com/luxfi/minter/selector"
	"github.com/luxfi/minter/wire"
)

const testGas = 50_000_000_000

func newLedger(t *testing.T, deployer ids.ID, initialSupply balance.Balance) (*host.Host, ids.ID) {
	require := require.New(t)

	h, err := host.New(memdb.New(), config.DefaultConfig(), nil, log.NoLog{})
	require.NoError(err)

	p := wire.New(balance.Size)
	p.PackBalance(initialSupply)
	addr, err := h.Deploy(deployer, token.New(), p.Bytes)
	require.NoError(err)
	return h, addr
}

func call(h *host.Host, from, to ids.ID, sel selector.Selector, args []byte) ([]byte, error) {
	return h.Call(from, host.Message{
		To:       to,
		Selector: sel,
		Args:     args,
		GasLimit: testGas,
	})
}

func packID(id ids.ID) []byte {
	p := wire.New(ids.IDLen)
	p.PackID(id)
	return p.Bytes
}

func packIDAndBalance(id ids.ID, b balance.Balance) []byte {
	p := wire.New(ids.IDLen + balance.Size)
	p.PackID(id)
	p.PackBalance(b)
	return p.Bytes
}

func balanceOf(t *testing.T, h *host.Host, addr, account ids.ID) balance.Balance {
	require := require.New(t)

	out, err := call(h, account, addr, token.BalanceOfSelector, packID(account))
	require.NoError(err)
	b, err := balance.FromBytes(out)
	require.NoError(err)
	return b
}

func TestInstantiate(t *testing.T) {
	require := require.New(t)

	alice := ids.GenerateTestID()
	h, addr := newLedger(t, alice, balance.New64(1_000))

	require.Equal(balance.New64(1_000), balanceOf(t, h, addr, alice))

	out, err := call(h, alice, addr, token.TotalSupplySelector, nil)
	require.NoError(err)
	supply, err := balance.FromBytes(out)
	require.NoError(err)
	require.Equal(balance.New64(1_000), supply)

	out, err = call(h, alice, addr, token.OwnerSelector, nil)
	require.NoError(err)
	require.Equal(alice[:], out)
}

func TestTransfer(t *testing.T) {
	require := require.New(t)

	alice := ids.GenerateTestID()
	bob := ids.GenerateTestID()
	h, addr := newLedger(t, alice, balance.New64(1_000))

	_, err := call(h, alice, addr, token.TransferSelector, packIDAndBalance(bob, balance.New64(300)))
	require.NoError(err)

	require.Equal(balance.New64(700), balanceOf(t, h, addr, alice))
	require.Equal(balance.New64(300), balanceOf(t, h, addr, bob))

	// Overdrawing reverts the whole call.
	_, err = call(h, bob, addr, token.TransferSelector, packIDAndBalance(alice, balance.New64(301)))
	require.ErrorIs(err, token.ErrInsufficientBalance)
	require.Equal(balance.New64(300), balanceOf(t, h, addr, bob))
}

func TestMintRestrictedToOwner(t *testing.T) {
	require := require.New(t)

	alice := ids.GenerateTestID()
	bob := ids.GenerateTestID()
	h, addr := newLedger(t, alice, balance.New64(100))

	_, err := call(h, bob, addr, token.MintSelector, packIDAndBalance(bob, balance.New64(50)))
	require.ErrorIs(err, token.ErrCallerIsNotOwner)
	require.True(balanceOf(t, h, addr, bob).IsZero())

	_, err = call(h, alice, addr, token.MintSelector, packIDAndBalance(bob, balance.New64(50)))
	require.NoError(err)
	require.Equal(balance.New64(50), balanceOf(t, h, addr, bob))

	out, err := call(h, alice, addr, token.TotalSupplySelector, nil)
	require.NoError(err)
	supply, err := balance.FromBytes(out)
	require.NoError(err)
	require.Equal(balance.New64(150), supply)
}

func TestMintOverflowReverts(t *testing.T) {
	require := require.New(t)

	alice := ids.GenerateTestID()
	h, addr := newLedger(t, alice, balance.Max())

	_, err := call(h, alice, addr, token.MintSelector, packIDAndBalance(alice, balance.New64(1)))
	require.Error(err)
	require.Equal(balance.Max(), balanceOf(t, h, addr, alice))
}

func TestTransferOwnership(t *testing.T) {
	require := require.New(t)

	alice := ids.GenerateTestID()
	bob := ids.GenerateTestID()
	h, addr := newLedger(t, alice, balance.Zero)

	_, err := call(h, bob, addr, token.TransferOwnershipSelector, packID(bob))
	require.ErrorIs(err, token.ErrCallerIsNotOwner)

	_, err = call(h, alice, addr, token.TransferOwnershipSelector, packID(bob))
	require.NoError(err)

	// The previous owner lost the privilege, the new one gained it.
	_, err = call(h, alice, addr, token.MintSelector, packIDAndBalance(alice, balance.New64(1)))
	require.ErrorIs(err, token.ErrCallerIsNotOwner)

	_, err = call(h, bob, addr, token.MintSelector, packIDAndBalance(bob, balance.New64(1)))
	require.NoError(err)
}

func TestNonPayable(t *testing.T) {
	require := require.New(t)

	alice := ids.GenerateTestID()
	h, err := host.New(memdb.New(), config.DefaultConfig(), genesisWith(t, alice, balance.New64(100)), log.NoLog{})
	require.NoError(err)

	p := wire.New(balance.Size)
	p.PackBalance(balance.Zero)
	addr, err := h.Deploy(alice, token.New(), p.Bytes)
	require.NoError(err)

	_, err = h.Call(alice, host.Message{
		To:       addr,
		Selector: token.TotalSupplySelector,
		Value:    balance.New64(1),
		GasLimit: testGas,
	})
	require.ErrorIs(err, token.ErrNonPayable)
}

func genesisWith(t *testing.T, addr ids.ID, amount balance.Balance) []byte {
	require := require.New(t)

	b, err := (&host.Genesis{Allocations: []host.Allocation{
		host.NewAllocation(addr, amount),
	}}).Bytes()
	require.NoError(err)
	return b
}

func TestUnknownSelector(t *testing.T) {
	require := require.New(t)

	alice := ids.GenerateTestID()
	h, addr := newLedger(t, alice, balance.Zero)

	_, err := call(h, alice, addr, selector.Compute("PSP22::no_such_entry"), nil)
	require.ErrorIs(err, token.ErrUnknownSelector)
}
