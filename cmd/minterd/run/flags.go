// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package run

import (
	"fmt"

	"github.com/spf13/pflag"
	"golang.org/x/crypto/blake2b"

	"github.com/luxfi/ids"

	"github.com/luxfi/minter/balance"
)

const (
	VariantKey       = "variant"
	HTTPHostKey      = "http-host"
	HTTPPortKey      = "http-port"
	OwnerKey         = "owner"
	FundedKey        = "funded"
	FundedBalanceKey = "funded-balance"
	InitialSupplyKey = "initial-supply"
	PriceKey         = "price"

	VariantFactory = "factory"
	VariantManic   = "manic"
)

func AddFlags(flags *pflag.FlagSet) {
	flags.String(VariantKey, VariantManic, "Facade variant to deploy: factory (flat fee, NFT ledger) or manic (per-unit price, token ledger)")
	flags.String(HTTPHostKey, "127.0.0.1", "Host to listen on")
	flags.Uint16(HTTPPortKey, 9750, "Port to listen on")
	flags.String(OwnerKey, "", "Address that owns the deployed facade (derived from the variant name if empty)")
	flags.String(FundedKey, "", "Address to fund in the genesis (defaults to the owner)")
	flags.String(FundedBalanceKey, "1000000000", "Amount to provide the funded address in the genesis")
	flags.String(InitialSupplyKey, "0", "Initial supply of the token ledger (manic variant only)")
	flags.String(PriceKey, "", "Minting price to set after deployment (leave empty to keep the default)")
}

type Config struct {
	Variant       string
	HTTPHost      string
	HTTPPort      uint16
	Owner         ids.ID
	Funded        ids.ID
	FundedBalance balance.Balance
	InitialSupply balance.Balance
	Price         *balance.Balance
}

func ParseFlags(flags *pflag.FlagSet, args []string) (*Config, error) {
	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	variant, err := flags.GetString(VariantKey)
	if err != nil {
		return nil, err
	}
	if variant != VariantFactory && variant != VariantManic {
		return nil, fmt.Errorf("unknown variant %q", variant)
	}

	httpHost, err := flags.GetString(HTTPHostKey)
	if err != nil {
		return nil, err
	}
	httpPort, err := flags.GetUint16(HTTPPortKey)
	if err != nil {
		return nil, err
	}

	ownerStr, err := flags.GetString(OwnerKey)
	if err != nil {
		return nil, err
	}
	var owner ids.ID
	if ownerStr == "" {
		// Deterministic development default.
		owner = ids.ID(blake2b.Sum256([]byte("minterd/owner/" + variant)))
	} else if owner, err = ids.FromString(ownerStr); err != nil {
		return nil, fmt.Errorf("invalid owner address: %w", err)
	}

	fundedStr, err := flags.GetString(FundedKey)
	if err != nil {
		return nil, err
	}
	funded := owner
	if fundedStr != "" {
		if funded, err = ids.FromString(fundedStr); err != nil {
			return nil, fmt.Errorf("invalid funded address: %w", err)
		}
	}

	fundedBalanceStr, err := flags.GetString(FundedBalanceKey)
	if err != nil {
		return nil, err
	}
	fundedBalance, err := balance.FromString(fundedBalanceStr)
	if err != nil {
		return nil, fmt.Errorf("invalid funded balance: %w", err)
	}

	initialSupplyStr, err := flags.GetString(InitialSupplyKey)
	if err != nil {
		return nil, err
	}
	initialSupply, err := balance.FromString(initialSupplyStr)
	if err != nil {
		return nil, fmt.Errorf("invalid initial supply: %w", err)
	}

	priceStr, err := flags.GetString(PriceKey)
	if err != nil {
		return nil, err
	}
	var price *balance.Balance
	if priceStr != "" {
		p, err := balance.FromString(priceStr)
		if err != nil {
			return nil, fmt.Errorf("invalid price: %w", err)
		}
		price = &p
	}

	return &Config{
		Variant:       variant,
		HTTPHost:      httpHost,
		HTTPPort:      httpPort,
		Owner:         owner,
		Funded:        funded,
		FundedBalance: fundedBalance,
		InitialSupply: initialSupply,
		Price:         price,
	}, nil
}
