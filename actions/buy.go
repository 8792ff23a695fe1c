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

var _ chain.Action = (*Buy)(nil)

// Buy issues [Amount] units of [Asset] to the actor in exchange for the
// curve cost, which is escrowed as pool reserve.
type Buy struct {
	Asset  codec.Address `json:"asset"`
	Amount uint64        `json:"amount"`
}

func (*Buy) GetTypeID() uint8 {
	return consts.BuyID
}

func (b *Buy) StateKeys(actor codec.Address, ledgers chain.Ledgers) state.Keys {
	return tradeStateKeys(b.Asset, actor, ledgers)
}

func (b *Buy) Execute(
	ctx context.Context,
	rules chain.Rules,
	ledgers chain.Ledgers,
	mu state.Mutable,
	actor codec.Address,
) (codec.Typed, error) {
	if err := checkAmount(rules, b.Amount); err != nil {
		return nil, err
	}
	pool, err := loadPool(ctx, mu, b.Asset)
	if err != nil {
		return nil, err
	}
	if err := checkActor(pool, actor); err != nil {
		return nil, err
	}

	cost, newSupply, err := pool.Curve().BuyCost(pool.Supply, b.Amount)
	if err != nil {
		return nil, err
	}
	newReserve, err := smath.Add64(pool.Reserve, cost)
	if err != nil {
		return nil, fmt.Errorf("%w: reserve=%d cost=%d", ErrArithmeticOverflow, pool.Reserve, cost)
	}

	if err := ledgers.Value.Transfer(ctx, mu, actor, pool.Escrow(), cost); err != nil {
		return nil, err
	}
	if err := ledgers.Token.Mint(ctx, mu, pool.Asset, pool.MintCapability(), actor, b.Amount); err != nil {
		return nil, err
	}

	pool.Supply = newSupply
	pool.Reserve = newReserve
	if err := storage.SetPool(ctx, mu, pool); err != nil {
		return nil, err
	}
	return &TradeResult{
		TypeID:  consts.BuyID,
		Asset:   pool.Asset,
		Amount:  b.Amount,
		Value:   cost,
		Supply:  pool.Supply,
		Reserve: pool.Reserve,
	}, nil
}
