// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package host implements the execution environment contracts run in:
// caller identity, native value transfer, selector-routed dispatch with a
// gas budget, and transactional storage. Each externally submitted call is
// atomic; its storage mutations and balance changes are committed on
// success and discarded on failure.
package host

import (
	"encoding/binary"
	"errors"
	"sync"

	"github.com/luxfi/database"
	"github.com/luxfi/database/prefixdb"
	"github.com/luxfi/database/versiondb"
	"github.com/luxfi/ids"
	"github.com/luxfi/log"
	safemath "github.com/luxfi/math"
	"golang.org/x/crypto/blake2b"

	"github.com/luxfi/minter/balance"
	"github.com/luxfi/minter/config"
	"github.com/luxfi/minter/selector"
)

var (
	ErrUnknownContract   = errors.New("no contract deployed at address")
	ErrOutOfGas          = errors.New("gas allowance exhausted")
	ErrInsufficientFunds = errors.New("insufficient funds for transfer")
	ErrCallDepthExceeded = errors.New("maximum call depth exceeded")

	balancePrefix = []byte("balance")
	storagePrefix = []byte("storage")
)

// Contract is a deployable object. Instantiate runs exactly once, at
// deployment; Invoke handles every subsequent selector-routed call.
type Contract interface {
	Instantiate(env Env, args []byte) error
	Invoke(env Env, sel selector.Selector, args []byte) ([]byte, error)
}

// Host owns the contract registry, the native currency ledger, and all
// contract storage. Calls are serialized; each one observes and mutates
// state atomically.
type Host struct {
	log     log.Logger
	cfg     config.Config
	metrics *hostMetrics

	lock      sync.Mutex
	db        database.Database
	contracts map[ids.ID]Contract
	nonce     uint64
}

// New returns a host backed by db. If genesisBytes is non-empty it is
// parsed and its allocations are credited before the host serves calls.
func New(db database.Database, cfg config.Config, genesisBytes []byte, logger log.Logger) (*Host, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	h := &Host{
		log:       logger,
		cfg:       cfg,
		metrics:   newMetrics(),
		db:        db,
		contracts: make(map[ids.ID]Contract),
	}

	if len(genesisBytes) > 0 {
		g, err := ParseGenesis(genesisBytes)
		if err != nil {
			return nil, err
		}
		if err := h.applyGenesis(g); err != nil {
			return nil, err
		}
	}

	logger.Info("initialized host",
		log.Uint64("baseCallGas", cfg.BaseCallGas),
		log.Uint64("maxCallGas", cfg.MaxCallGas),
	)
	return h, nil
}

func (h *Host) applyGenesis(g *Genesis) error {
	vdb := versiondb.New(h.db)
	balances := prefixdb.New(balancePrefix, vdb)
	for _, alloc := range g.Allocations {
		amount, err := balance.FromBytes(alloc.Balance[:])
		if err != nil {
			return err
		}
		if err := putBalance(balances, alloc.Address, amount); err != nil {
			return err
		}
	}
	return vdb.Commit()
}

// Deploy registers the contract at a fresh address and runs its
// constructor with the deployer as caller. The address is returned even to
// callers that discard it in tests.
func (h *Host) Deploy(deployer ids.ID, c Contract, args []byte) (ids.ID, error) {
	h.lock.Lock()
	defer h.lock.Unlock()

	addr := h.newAddress(deployer)
	h.contracts[addr] = c

	gas := h.cfg.MaxCallGas
	vdb := versiondb.New(h.db)
	f := &frame{
		host:   h,
		db:     vdb,
		caller: deployer,
		self:   addr,
		gas:    &gas,
	}
	if err := c.Instantiate(f, args); err != nil {
		delete(h.contracts, addr)
		vdb.Abort()
		return ids.Empty, err
	}
	if err := vdb.Commit(); err != nil {
		delete(h.contracts, addr)
		return ids.Empty, err
	}

	h.metrics.numDeploys.Inc()
	h.log.Debug("deployed contract",
		log.Stringer("address", addr),
		log.Stringer("deployer", deployer),
	)
	return addr, nil
}

// Call submits an external call from the given account. The whole call,
// including everything it calls, either commits or leaves no trace.
func (h *Host) Call(from ids.ID, msg Message) ([]byte, error) {
	h.lock.Lock()
	defer h.lock.Unlock()

	if err := msg.Verify(); err != nil {
		return nil, err
	}

	h.metrics.numCalls.Inc()

	gas := min(msg.GasLimit, h.cfg.MaxCallGas)
	return h.dispatch(h.db, from, msg, &gas, 0)
}

// BalanceOf returns the committed native currency balance of an account.
func (h *Host) BalanceOf(addr ids.ID) (balance.Balance, error) {
	h.lock.Lock()
	defer h.lock.Unlock()

	return getBalance(prefixdb.New(balancePrefix, h.db), addr)
}

// IsDeployed reports whether a contract is registered at addr.
func (h *Host) IsDeployed(addr ids.ID) bool {
	h.lock.Lock()
	defer h.lock.Unlock()

	_, ok := h.contracts[addr]
	return ok
}

// dispatch runs one call frame. parent is the storage layer of the calling
// frame; gas is the remaining budget of the enclosing transaction.
func (h *Host) dispatch(parent database.Database, from ids.ID, msg Message, gas *uint64, depth int) ([]byte, error) {
	if depth > h.cfg.MaxCallDepth {
		return nil, ErrCallDepthExceeded
	}

	contract, ok := h.contracts[msg.To]
	if !ok {
		return nil, ErrUnknownContract
	}

	allowance := min(msg.GasLimit, *gas)
	frameGas, err := safemath.Sub(allowance, h.cfg.BaseCallGas)
	if err != nil {
		*gas -= allowance
		return nil, ErrOutOfGas
	}

	vdb := versiondb.New(parent)
	f := &frame{
		host:   h,
		db:     vdb,
		caller: from,
		self:   msg.To,
		value:  msg.Value,
		gas:    &frameGas,
		depth:  depth,
	}

	var out []byte
	if !msg.Value.IsZero() {
		err = f.transfer(from, msg.To, msg.Value)
	}
	if err == nil {
		out, err = contract.Invoke(f, msg.Selector, msg.Args)
	}

	// Everything spent inside this frame counts against the caller.
	*gas -= allowance - frameGas

	if err != nil {
		vdb.Abort()
		h.metrics.numReverts.Inc()
		return nil, err
	}
	if err := vdb.Commit(); err != nil {
		return nil, err
	}
	return out, nil
}

// newAddress derives a fresh contract address from the deployer and a
// monotonic nonce.
func (h *Host) newAddress(deployer ids.ID) ids.ID {
	h.nonce++

	preimage := make([]byte, ids.IDLen+8)
	copy(preimage, deployer[:])
	binary.BigEndian.PutUint64(preimage[ids.IDLen:], h.nonce)
	return ids.ID(blake2b.Sum256(preimage))
}
