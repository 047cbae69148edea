// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/luxfi/database/memdb"
	"github.com/luxfi/ids"
	"github.com/luxfi/log"
	metric "github.com/luxfi/metric"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/luxfi/minter/balance"
	"github.com/luxfi/minter/config"
	"github.com/luxfi/minter/contracts/minter"
	"github.com/luxfi/minter/contracts/token"
	"github.com/luxfi/minter/host"
	"github.com/luxfi/minter/wire"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type testEnv struct {
	service *Service
	alice   ids.ID
	bob     ids.ID
	ledger  ids.ID
	manic   ids.ID
}

// newTestEnv stands up a host with a funded account, a token ledger, and a
// manic facade installed as the ledger owner.
func newTestEnv(t *testing.T) *testEnv {
	require := require.New(t)

	alice := ids.GenerateTestID()
	bob := ids.GenerateTestID()

	genesisBytes, err := (&host.Genesis{Allocations: []host.Allocation{
		host.NewAllocation(bob, balance.New64(10_000)),
	}}).Bytes()
	require.NoError(err)

	cfg := config.DefaultConfig()
	h, err := host.New(memdb.New(), cfg, genesisBytes, log.NoLog{})
	require.NoError(err)

	p := wire.New(balance.Size)
	p.PackBalance(balance.Zero)
	ledgerAddr, err := h.Deploy(alice, token.New(), p.Bytes)
	require.NoError(err)

	p = wire.New(ids.IDLen)
	p.PackID(ledgerAddr)
	manicAddr, err := h.Deploy(alice, minter.NewManicMinter(), p.Bytes)
	require.NoError(err)

	p = wire.New(ids.IDLen)
	p.PackID(manicAddr)
	_, err = h.Call(alice, host.Message{
		To:       ledgerAddr,
		Selector: token.TransferOwnershipSelector,
		Args:     p.Bytes,
		GasLimit: cfg.MaxCallGas,
	})
	require.NoError(err)

	return &testEnv{
		service: NewService(log.NoLog{}, h, cfg.MaxCallGas),
		alice:   alice,
		bob:     bob,
		ledger:  ledgerAddr,
		manic:   manicAddr,
	}
}

func TestServiceBalance(t *testing.T) {
	require := require.New(t)
	env := newTestEnv(t)

	reply := BalanceReply{}
	require.NoError(env.service.Balance(nil, &BalanceArgs{
		Address: env.bob.String(),
	}, &reply))
	require.Equal(balance.New64(10_000), reply.Balance)

	require.Error(env.service.Balance(nil, &BalanceArgs{
		Address: "not an address",
	}, &reply))
}

func TestServicePriceLifecycle(t *testing.T) {
	require := require.New(t)
	env := newTestEnv(t)

	priceReply := GetPriceReply{}
	require.NoError(env.service.GetPrice(nil, &GetPriceArgs{
		Contract: env.manic.String(),
	}, &priceReply))
	require.Equal(balance.Zero, priceReply.Price)

	setReply := SetPriceReply{}
	require.NoError(env.service.SetPrice(nil, &SetPriceArgs{
		From:     env.alice.String(),
		Contract: env.manic.String(),
		Price:    balance.New64(10),
	}, &setReply))
	require.True(setReply.Success)

	require.NoError(env.service.GetPrice(nil, &GetPriceArgs{
		Contract: env.manic.String(),
	}, &priceReply))
	require.Equal(balance.New64(10), priceReply.Price)

	// Only the owner may change the price.
	err := env.service.SetPrice(nil, &SetPriceArgs{
		From:     env.bob.String(),
		Contract: env.manic.String(),
		Price:    balance.New64(1),
	}, &setReply)
	require.ErrorIs(err, minter.ErrNotOwner)
}

func TestServiceMint(t *testing.T) {
	require := require.New(t)
	env := newTestEnv(t)

	setReply := SetPriceReply{}
	require.NoError(env.service.SetPrice(nil, &SetPriceArgs{
		From:     env.alice.String(),
		Contract: env.manic.String(),
		Price:    balance.New64(10),
	}, &setReply))

	mintReply := MintReply{}
	err := env.service.ManicMint(nil, &MintArgs{
		From:     env.bob.String(),
		Contract: env.manic.String(),
		Amount:   balance.New64(100),
		Value:    balance.New64(999),
	}, &mintReply)
	require.ErrorIs(err, minter.ErrBadMintValue)

	require.NoError(env.service.ManicMint(nil, &MintArgs{
		From:     env.bob.String(),
		Contract: env.manic.String(),
		Amount:   balance.New64(100),
		Value:    balance.New64(1_000),
	}, &mintReply))
	require.True(mintReply.Success)

	tokenReply := TokenBalanceReply{}
	require.NoError(env.service.TokenBalance(nil, &TokenBalanceArgs{
		Contract: env.ledger.String(),
		Account:  env.bob.String(),
	}, &tokenReply))
	require.Equal(balance.New64(100), tokenReply.Balance)

	balanceReply := BalanceReply{}
	require.NoError(env.service.Balance(nil, &BalanceArgs{
		Address: env.manic.String(),
	}, &balanceReply))
	require.Equal(balance.New64(1_000), balanceReply.Balance)
}

func TestServiceDeployed(t *testing.T) {
	require := require.New(t)
	env := newTestEnv(t)

	reply := DeployedReply{}
	require.NoError(env.service.Deployed(nil, &DeployedArgs{
		Contract: env.manic.String(),
	}, &reply))
	require.True(reply.Deployed)

	require.NoError(env.service.Deployed(nil, &DeployedArgs{
		Contract: ids.GenerateTestID().String(),
	}, &reply))
	require.False(reply.Deployed)
}

func TestServerHealth(t *testing.T) {
	require := require.New(t)
	env := newTestEnv(t)

	server, err := NewServer(config.DefaultConfig(), log.NoLog{}, metric.NewRegistry(), env.service)
	require.NoError(err)

	w := httptest.NewRecorder()
	server.http.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, healthPath, nil))
	require.Equal(http.StatusOK, w.Code)
	require.JSONEq(`{"healthy":true}`, w.Body.String())
}
