// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package run starts an in-memory minting host, deploys a facade with its
// ledger, and serves the JSON-RPC API until interrupted.
package run

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/luxfi/database/memdb"
	"github.com/luxfi/ids"
	"github.com/luxfi/log"
	metric "github.com/luxfi/metric"

	"github.com/luxfi/minter/api"
	"github.com/luxfi/minter/balance"
	"github.com/luxfi/minter/config"
	"github.com/luxfi/minter/contracts/minter"
	"github.com/luxfi/minter/contracts/nft"
	"github.com/luxfi/minter/contracts/token"
	"github.com/luxfi/minter/host"
	"github.com/luxfi/minter/selector"
	"github.com/luxfi/minter/wire"
)

func Command() *cobra.Command {
	c := &cobra.Command{
		Use:   "minterd",
		Short: "Runs a minting host with a deployed facade and serves its API",
		RunE:  runFunc,
	}
	AddFlags(c.Flags())
	return c
}

func runFunc(c *cobra.Command, args []string) error {
	runCfg, err := ParseFlags(c.Flags(), args)
	if err != nil {
		return err
	}

	logger := log.NewLogger("minterd")

	cfg := config.DefaultConfig()
	cfg.HTTPHost = runCfg.HTTPHost
	cfg.HTTPPort = runCfg.HTTPPort

	genesisBytes, err := (&host.Genesis{Allocations: []host.Allocation{
		host.NewAllocation(runCfg.Funded, runCfg.FundedBalance),
	}}).Bytes()
	if err != nil {
		return err
	}

	h, err := host.New(memdb.New(), cfg, genesisBytes, logger)
	if err != nil {
		return err
	}

	ledgerAddr, facadeAddr, err := deploy(h, runCfg, cfg.MaxCallGas)
	if err != nil {
		return err
	}
	logger.Info("deployed contracts",
		log.String("variant", runCfg.Variant),
		log.Stringer("ledger", ledgerAddr),
		log.Stringer("facade", facadeAddr),
		log.Stringer("owner", runCfg.Owner),
	)

	if runCfg.Price != nil {
		p := wire.New(balance.Size)
		p.PackBalance(*runCfg.Price)
		if _, err := h.Call(runCfg.Owner, host.Message{
			To:       facadeAddr,
			Selector: minter.SetPriceSelector,
			Args:     p.Bytes,
			GasLimit: cfg.MaxCallGas,
		}); err != nil {
			return err
		}
		logger.Info("set price", log.Stringer("price", *runCfg.Price))
	}

	server, err := api.NewServer(cfg, logger, metric.NewRegistry(), api.NewService(logger, h, cfg.MaxCallGas))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.Serve()
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-serveErr
}

// deploy stands up the ledger and its facade, then hands the ledger to the
// facade so delegated mints succeed.
func deploy(h *host.Host, runCfg *Config, gasLimit uint64) (ids.ID, ids.ID, error) {
	var (
		ledgerAddr ids.ID
		err        error

		transferOwnership selector.Selector
		facade            host.Contract
	)
	switch runCfg.Variant {
	case VariantFactory:
		ledgerAddr, err = h.Deploy(runCfg.Owner, nft.New(), nil)
		transferOwnership = nft.TransferOwnershipSelector
		facade = minter.NewFactory()
	case VariantManic:
		p := wire.New(balance.Size)
		p.PackBalance(runCfg.InitialSupply)
		ledgerAddr, err = h.Deploy(runCfg.Owner, token.New(), p.Bytes)
		transferOwnership = token.TransferOwnershipSelector
		facade = minter.NewManicMinter()
	}
	if err != nil {
		return ids.Empty, ids.Empty, err
	}

	p := wire.New(ids.IDLen)
	p.PackID(ledgerAddr)
	facadeAddr, err := h.Deploy(runCfg.Owner, facade, p.Bytes)
	if err != nil {
		return ids.Empty, ids.Empty, err
	}

	p = wire.New(ids.IDLen)
	p.PackID(facadeAddr)
	if _, err := h.Call(runCfg.Owner, host.Message{
		To:       ledgerAddr,
		Selector: transferOwnership,
		Args:     p.Bytes,
		GasLimit: gasLimit,
	}); err != nil {
		return ids.Empty, ids.Empty, err
	}
	return ledgerAddr, facadeAddr, nil
}
