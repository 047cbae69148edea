// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package host

import (
	"errors"

	"github.com/luxfi/codec"
	"github.com/luxfi/codec/linearcodec"
	"github.com/luxfi/ids"

	"github.com/luxfi/minter/balance"
)

const codecVersion = 0

var Codec codec.Manager

func init() {
	lc := linearcodec.NewDefault()

	err := errors.Join(
		lc.RegisterType(&Genesis{}),
		lc.RegisterType(&Allocation{}),
	)
	if err != nil {
		panic(err)
	}

	Codec = codec.NewDefaultManager()
	if err := Codec.RegisterCodec(codecVersion, lc); err != nil {
		panic(err)
	}
}

// Allocation credits an account with native currency at genesis.
type Allocation struct {
	Address ids.ID             `serialize:"true" json:"address"`
	Balance [balance.Size]byte `serialize:"true" json:"balance"`
}

// NewAllocation builds an allocation from a balance value.
func NewAllocation(addr ids.ID, amount balance.Balance) Allocation {
	return Allocation{
		Address: addr,
		Balance: amount.Bytes(),
	}
}

// Genesis is the initial native currency distribution.
type Genesis struct {
	Allocations []Allocation `serialize:"true" json:"allocations"`
}

// Bytes returns the codec encoding of the genesis.
func (g *Genesis) Bytes() ([]byte, error) {
	return Codec.Marshal(codecVersion, g)
}

// ParseGenesis decodes a genesis from its codec encoding.
func ParseGenesis(b []byte) (*Genesis, error) {
	g := &Genesis{}
	if _, err := Codec.Unmarshal(b, g); err != nil {
		return nil, err
	}
	return g, nil
}
