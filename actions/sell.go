// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"
	"fmt"

	"github.com/ava-labs/curvevm/chain"
	"github.com/ava-labs/curvevm/codec"
	"github.com/ava-labs/curvevm/consts"
	"github.com/ava-labs/curvevm/state"
	"github.com/ava-labs/curvevm/storage"

	smath "github.com/ava-labs/avalanchego/utils/math"
)

var _ chain.Action = (*Sell)(nil)

// Sell burns [Amount] units of [Asset] held by the actor and refunds the
// curve value of the top [Amount] units out of the pool reserve.
type Sell struct {
	Asset  codec.Address `json:"asset"`
	Amount uint64        `json:"amount"`
}

func (*Sell) GetTypeID() uint8 {
	return consts.SellID
}

func (s *Sell) StateKeys(actor codec.Address, ledgers chain.Ledgers) state.Keys {
	return tradeStateKeys(s.Asset, actor, ledgers)
}

func (s *Sell) Execute(
	ctx context.Context,
	rules chain.Rules,
	ledgers chain.Ledgers,
	mu state.Mutable,
	actor codec.Address,
) (codec.Typed, error) {
	if err := checkAmount(rules, s.Amount); err != nil {
		return nil, err
	}
	pool, err := loadPool(ctx, mu, s.Asset)
	if err != nil {
		return nil, err
	}
	if err := checkActor(pool, actor); err != nil {
		return nil, err
	}
	if s.Amount > pool.Supply {
		return nil, fmt.Errorf("%w: amount=%d supply=%d", ErrInsufficientSupply, s.Amount, pool.Supply)
	}

	refund, newSupply, err := pool.Curve().SellRefund(pool.Supply, s.Amount)
	if err != nil {
		return nil, err
	}
	newReserve, err := smath.Sub(pool.Reserve, refund)
	if err != nil {
		return nil, fmt.Errorf("%w: reserve=%d refund=%d", ErrInvariantViolated, pool.Reserve, refund)
	}

	if err := ledgers.Token.Burn(ctx, mu, pool.Asset, actor, s.Amount); err != nil {
		return nil, err
	}
	if err := ledgers.Value.Transfer(ctx, mu, pool.Escrow(), actor, refund); err != nil {
		return nil, err
	}

	pool.Supply = newSupply
	pool.Reserve = newReserve
	if err := storage.SetPool(ctx, mu, pool); err != nil {
		return nil, err
	}
	return &TradeResult{
		TypeID:  consts.SellID,
		Asset:   pool.Asset,
		Amount:  s.Amount,
		Value:   refund,
		Supply:  pool.Supply,
		Reserve: pool.Reserve,
	}, nil
}
