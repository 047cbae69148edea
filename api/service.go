// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package api exposes the minting host over JSON-RPC.
package api

import (
	"fmt"
	"net/http"

	"github.com/luxfi/ids"
	"github.com/luxfi/log"

	"github.com/luxfi/minter/balance"
	"github.com/luxfi/minter/contracts/minter"
	"github.com/luxfi/minter/contracts/token"
	"github.com/luxfi/minter/host"
	"github.com/luxfi/minter/selector"
	"github.com/luxfi/minter/wire"
)

// Service provides the minter RPC service. All addresses travel as their
// string form; all amounts travel as quoted decimal strings.
type Service struct {
	log      log.Logger
	host     *host.Host
	gasLimit uint64
}

func NewService(logger log.Logger, h *host.Host, gasLimit uint64) *Service {
	return &Service{
		log:      logger,
		host:     h,
		gasLimit: gasLimit,
	}
}

// BalanceArgs are the arguments for Balance
type BalanceArgs struct {
	Address string `json:"address"`
}

// BalanceReply is the reply for Balance
type BalanceReply struct {
	Balance balance.Balance `json:"balance"`
}

// Balance returns the native currency balance of an account.
func (s *Service) Balance(_ *http.Request, args *BalanceArgs, reply *BalanceReply) error {
	s.log.Debug("API called",
		log.String("service", "minter"),
		log.String("method", "balance"),
	)

	addr, err := ids.FromString(args.Address)
	if err != nil {
		return fmt.Errorf("invalid address: %w", err)
	}

	b, err := s.host.BalanceOf(addr)
	if err != nil {
		return err
	}
	reply.Balance = b
	return nil
}

// GetPriceArgs are the arguments for GetPrice
type GetPriceArgs struct {
	Contract string `json:"contract"`
}

// GetPriceReply is the reply for GetPrice
type GetPriceReply struct {
	Price balance.Balance `json:"price"`
}

// GetPrice returns the current minting price of a facade.
func (s *Service) GetPrice(_ *http.Request, args *GetPriceArgs, reply *GetPriceReply) error {
	contract, err := ids.FromString(args.Contract)
	if err != nil {
		return fmt.Errorf("invalid contract address: %w", err)
	}

	out, err := s.call(contract, contract, minter.GetPriceSelector, nil, balance.Zero)
	if err != nil {
		return err
	}
	price, err := balance.FromBytes(out)
	if err != nil {
		return err
	}
	reply.Price = price
	return nil
}

// SetPriceArgs are the arguments for SetPrice
type SetPriceArgs struct {
	From     string          `json:"from"`
	Contract string          `json:"contract"`
	Price    balance.Balance `json:"price"`
}

// SetPriceReply is the reply for SetPrice
type SetPriceReply struct {
	Success bool `json:"success"`
}

// SetPrice updates the minting price of a facade. From must be the facade
// owner.
func (s *Service) SetPrice(_ *http.Request, args *SetPriceArgs, reply *SetPriceReply) error {
	from, err := ids.FromString(args.From)
	if err != nil {
		return fmt.Errorf("invalid from address: %w", err)
	}
	contract, err := ids.FromString(args.Contract)
	if err != nil {
		return fmt.Errorf("invalid contract address: %w", err)
	}

	p := wire.New(balance.Size)
	p.PackBalance(args.Price)
	if _, err := s.call(from, contract, minter.SetPriceSelector, p.Bytes, balance.Zero); err != nil {
		return err
	}
	reply.Success = true
	return nil
}

// MintArgs are the arguments for Mint and ManicMint
type MintArgs struct {
	From     string          `json:"from"`
	Contract string          `json:"contract"`
	Amount   balance.Balance `json:"amount"`
	Value    balance.Balance `json:"value"`
}

// MintReply is the reply for Mint and ManicMint
type MintReply struct {
	Success bool `json:"success"`
}

// Mint submits a paid mint through a factory facade.
func (s *Service) Mint(_ *http.Request, args *MintArgs, reply *MintReply) error {
	return s.mint(args, reply, minter.MintSelector)
}

// ManicMint submits a paid mint through a manic facade.
func (s *Service) ManicMint(_ *http.Request, args *MintArgs, reply *MintReply) error {
	return s.mint(args, reply, minter.ManicMintSelector)
}

func (s *Service) mint(args *MintArgs, reply *MintReply, sel selector.Selector) error {
	from, err := ids.FromString(args.From)
	if err != nil {
		return fmt.Errorf("invalid from address: %w", err)
	}
	contract, err := ids.FromString(args.Contract)
	if err != nil {
		return fmt.Errorf("invalid contract address: %w", err)
	}

	s.log.Debug("submitting mint",
		log.Stringer("contract", contract),
		log.Stringer("from", from),
	)

	p := wire.New(balance.Size)
	p.PackBalance(args.Amount)
	if _, err := s.call(from, contract, sel, p.Bytes, args.Value); err != nil {
		return err
	}
	reply.Success = true
	return nil
}

// TokenBalanceArgs are the arguments for TokenBalance
type TokenBalanceArgs struct {
	Contract string `json:"contract"`
	Account  string `json:"account"`
}

// TokenBalanceReply is the reply for TokenBalance
type TokenBalanceReply struct {
	Balance balance.Balance `json:"balance"`
}

// TokenBalance returns an account's balance on a token ledger.
func (s *Service) TokenBalance(_ *http.Request, args *TokenBalanceArgs, reply *TokenBalanceReply) error {
	contract, err := ids.FromString(args.Contract)
	if err != nil {
		return fmt.Errorf("invalid contract address: %w", err)
	}
	account, err := ids.FromString(args.Account)
	if err != nil {
		return fmt.Errorf("invalid account address: %w", err)
	}

	p := wire.New(ids.IDLen)
	p.PackID(account)
	out, err := s.call(account, contract, token.BalanceOfSelector, p.Bytes, balance.Zero)
	if err != nil {
		return err
	}
	b, err := balance.FromBytes(out)
	if err != nil {
		return err
	}
	reply.Balance = b
	return nil
}

// DeployedArgs are the arguments for Deployed
type DeployedArgs struct {
	Contract string `json:"contract"`
}

// DeployedReply is the reply for Deployed
type DeployedReply struct {
	Deployed bool `json:"deployed"`
}

// Deployed reports whether a contract exists at the given address.
func (s *Service) Deployed(_ *http.Request, args *DeployedArgs, reply *DeployedReply) error {
	contract, err := ids.FromString(args.Contract)
	if err != nil {
		return fmt.Errorf("invalid contract address: %w", err)
	}
	reply.Deployed = s.host.IsDeployed(contract)
	return nil
}

func (s *Service) call(from, to ids.ID, sel selector.Selector, callArgs []byte, value balance.Balance) ([]byte, error) {
	return s.host.Call(from, host.Message{
		To:       to,
		Selector: sel,
		Args:     callArgs,
		Value:    value,
		GasLimit: s.gasLimit,
	})
}
