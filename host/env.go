// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package host

import (
	"github.com/luxfi/database"
	"github.com/luxfi/database/prefixdb"
	"github.com/luxfi/database/versiondb"
	"github.com/luxfi/ids"
	"github.com/luxfi/log"

	"github.com/luxfi/minter/balance"
)

// Env is the view of the host environment handed to a contract for the
// duration of a single call. All storage access is scoped to the contract's
// own prefix and buffered until the call commits.
type Env interface {
	// Caller returns the account that issued this call.
	Caller() ids.ID

	// Self returns the address of the contract being executed.
	Self() ids.ID

	// TransferredValue returns the native currency attached to this call.
	TransferredValue() balance.Balance

	// BalanceOf returns the native currency balance of an account as seen
	// by the current transaction.
	BalanceOf(ids.ID) (balance.Balance, error)

	// Call dispatches a nested call. The callee runs on its own storage
	// layer; its writes are discarded if it errors.
	Call(Message) ([]byte, error)

	// GetState reads a value from the contract's storage. Returns
	// database.ErrNotFound if the key is absent.
	GetState(key []byte) ([]byte, error)

	// SetState writes a value to the contract's storage.
	SetState(key, value []byte) error

	// DeleteState removes a key from the contract's storage.
	DeleteState(key []byte) error

	// Log returns the host logger.
	Log() log.Logger
}

var _ Env = (*frame)(nil)

// frame is one level of the call stack. Writes go to a versiondb layer over
// the parent frame and only reach it when the call commits.
type frame struct {
	host   *Host
	db     *versiondb.Database
	caller ids.ID
	self   ids.ID
	value  balance.Balance
	gas    *uint64
	depth  int
}

func (f *frame) Caller() ids.ID {
	return f.caller
}

func (f *frame) Self() ids.ID {
	return f.self
}

func (f *frame) TransferredValue() balance.Balance {
	return f.value
}

func (f *frame) BalanceOf(addr ids.ID) (balance.Balance, error) {
	return getBalance(prefixdb.New(balancePrefix, f.db), addr)
}

func (f *frame) Call(msg Message) ([]byte, error) {
	f.host.metrics.numNestedCalls.Inc()
	return f.host.dispatch(f.db, f.self, msg, f.gas, f.depth+1)
}

func (f *frame) GetState(key []byte) ([]byte, error) {
	return f.storage().Get(key)
}

func (f *frame) SetState(key, value []byte) error {
	return f.storage().Put(key, value)
}

func (f *frame) DeleteState(key []byte) error {
	return f.storage().Delete(key)
}

func (f *frame) Log() log.Logger {
	return f.host.log
}

func (f *frame) storage() database.Database {
	return prefixdb.New(f.self[:], prefixdb.New(storagePrefix, f.db))
}

// transfer moves native currency between accounts inside this frame.
func (f *frame) transfer(from, to ids.ID, amount balance.Balance) error {
	balances := prefixdb.New(balancePrefix, f.db)

	fromBalance, err := getBalance(balances, from)
	if err != nil {
		return err
	}
	newFromBalance, err := balance.Sub(fromBalance, amount)
	if err != nil {
		return ErrInsufficientFunds
	}

	toBalance, err := getBalance(balances, to)
	if err != nil {
		return err
	}
	newToBalance, err := balance.Add(toBalance, amount)
	if err != nil {
		return err
	}

	if err := putBalance(balances, from, newFromBalance); err != nil {
		return err
	}
	return putBalance(balances, to, newToBalance)
}

func getBalance(balances database.Database, addr ids.ID) (balance.Balance, error) {
	b, err := balances.Get(addr[:])
	switch err {
	case nil:
		return balance.FromBytes(b)
	case database.ErrNotFound:
		return balance.Zero, nil
	default:
		return balance.Zero, err
	}
}

func putBalance(balances database.Database, addr ids.ID, amount balance.Balance) error {
	encoded := amount.Bytes()
	return balances.Put(addr[:], encoded[:])
}
