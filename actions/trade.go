// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"
	"fmt"

	"github.com/ava-labs/curvevm/chain"
	"github.com/ava-labs/curvevm/codec"
	"github.com/ava-labs/curvevm/state"
	"github.com/ava-labs/curvevm/storage"
)

// tradeStateKeys enumerates every key a buy or sell of [asset] by [actor]
// can touch: the pool, both value accounts and both token records.
func tradeStateKeys(asset codec.Address, actor codec.Address, ledgers chain.Ledgers) state.Keys {
	keys := state.Keys{
		string(storage.PoolKey(asset)): state.Write,
	}
	for _, ks := range []state.Keys{
		ledgers.Value.StateKeys(actor),
		ledgers.Value.StateKeys(storage.EscrowAddress(asset)),
		ledgers.Token.AssetStateKeys(asset),
		ledgers.Token.HolderStateKeys(asset, actor),
	} {
		for k, perms := range ks {
			keys.Add(k, perms)
		}
	}
	return keys
}

func loadPool(ctx context.Context, im state.Immutable, asset codec.Address) (*storage.Pool, error) {
	pool, exists, err := storage.GetPool(ctx, im, asset)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrPoolNotFound, asset)
	}
	return pool, nil
}

func checkAmount(rules chain.Rules, amount uint64) error {
	if amount == 0 {
		return ErrInvalidAmount
	}
	if limit := rules.GetMaxTradeAmount(); limit > 0 && amount > limit {
		return fmt.Errorf("%w: %d exceeds max trade amount %d", ErrInvalidAmount, amount, limit)
	}
	return nil
}

// checkActor rejects trades signed by an account the pool itself controls.
func checkActor(pool *storage.Pool, actor codec.Address) error {
	if actor == pool.Escrow() || actor == pool.MintCapability() {
		return fmt.Errorf("%w: %s is owned by pool %s", ErrInvalidActor, actor, pool.Asset)
	}
	return nil
}
