// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package minter

import (
	"github.com/luxfi/ids"

	"github.com/luxfi/minter/balance"
	"github.com/luxfi/minter/host"
	"github.com/luxfi/minter/wire"
)

// stateLen is the persisted footprint: owner (32) followed by the token
// contract address (32) followed by the price (16), 80 bytes total.
const stateLen = 2*ids.IDLen + balance.Size

var stateKey = []byte("state")

type state struct {
	// Contract owner
	Owner ids.ID

	// Token contract address
	TokenContract ids.ID

	// Minting price. Callers pay this price to mint new tokens from the
	// token contract.
	Price balance.Balance
}

func readState(env host.Env) (*state, error) {
	b, err := env.GetState(stateKey)
	if err != nil {
		return nil, err
	}

	r := wire.NewReader(b)
	s := &state{
		Owner:         r.UnpackID(),
		TokenContract: r.UnpackID(),
		Price:         r.UnpackBalance(),
	}
	if err := r.Done(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *state) write(env host.Env) error {
	p := wire.New(stateLen)
	p.PackID(s.Owner)
	p.PackID(s.TokenContract)
	p.PackBalance(s.Price)
	return env.SetState(stateKey, p.Bytes)
}
