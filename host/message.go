// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package host

import (
	"errors"

	"github.com/luxfi/ids"

	"github.com/luxfi/minter/balance"
	"github.com/luxfi/minter/selector"
)

var (
	errNilMessage = errors.New("nil message")
	errNoGas      = errors.New("message has no gas allowance")
	errNoTarget   = errors.New("message has no target contract")
)

// Message describes a single selector-routed call to a contract.
type Message struct {
	// To is the address of the contract being invoked.
	To ids.ID

	// Selector routes the call to an entry point on the target.
	Selector selector.Selector

	// Args is the wire-encoded argument payload.
	Args []byte

	// Value is the native currency transferred to the target before the
	// entry point runs.
	Value balance.Balance

	// GasLimit bounds the gas spent by this call and everything it calls.
	GasLimit uint64
}

func (m *Message) Verify() error {
	switch {
	case m == nil:
		return errNilMessage
	case m.To == ids.Empty:
		return errNoTarget
	case m.GasLimit == 0:
		return errNoGas
	default:
		return nil
	}
}
