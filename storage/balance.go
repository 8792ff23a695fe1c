// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/database"

	"github.com/ava-labs/curvevm/chain"
	"github.com/ava-labs/curvevm/codec"
	"github.com/ava-labs/curvevm/keys"
	"github.com/ava-labs/curvevm/pricing"
	"github.com/ava-labs/curvevm/state"

	smath "github.com/ava-labs/avalanchego/utils/math"
)

var _ chain.ValueLedger = (*BalanceLedger)(nil)

// BalanceLedger stores the value asset as one uint64 per account:
//
//	[balancePrefix] + [address] => balance
//
// Accounts are removed once their balance drops to zero.
type BalanceLedger struct{}

// [balancePrefix] + [address]
func BalanceKey(addr codec.Address) []byte {
	return keys.New(balancePrefix, BalanceChunks, addr[:])
}

func (BalanceLedger) StateKeys(addr codec.Address) state.Keys {
	return state.Keys{
		string(BalanceKey(addr)): state.All,
	}
}

func (BalanceLedger) GetBalance(ctx context.Context, im state.Immutable, addr codec.Address) (uint64, error) {
	bal, _, err := getUint64(ctx, im, BalanceKey(addr))
	return bal, err
}

func (BalanceLedger) AddBalance(ctx context.Context, mu state.Mutable, addr codec.Address, amount uint64) error {
	k := BalanceKey(addr)
	bal, _, err := getUint64(ctx, mu, k)
	if err != nil {
		return err
	}
	nbal, err := smath.Add64(bal, amount)
	if err != nil {
		return fmt.Errorf(
			"%w: could not add balance (bal=%d, addr=%s, amount=%d)",
			pricing.ErrArithmeticOverflow,
			bal,
			addr,
			amount,
		)
	}
	return setUint64(ctx, mu, k, nbal)
}

func (BalanceLedger) Transfer(
	ctx context.Context,
	mu state.Mutable,
	from codec.Address,
	to codec.Address,
	amount uint64,
) error {
	if from == to {
		return fmt.Errorf("%w: %s", chain.ErrSelfTransfer, from)
	}
	fromKey := BalanceKey(from)
	fromBal, _, err := getUint64(ctx, mu, fromKey)
	if err != nil {
		return err
	}
	if fromBal < amount {
		return fmt.Errorf(
			"%w: could not transfer (bal=%d, from=%s, amount=%d)",
			chain.ErrInsufficientFunds,
			fromBal,
			from,
			amount,
		)
	}
	if amount == 0 {
		return nil
	}

	toKey := BalanceKey(to)
	toBal, _, err := getUint64(ctx, mu, toKey)
	if err != nil {
		return err
	}
	ntoBal, err := smath.Add64(toBal, amount)
	if err != nil {
		return fmt.Errorf(
			"%w: could not credit transfer (bal=%d, to=%s, amount=%d)",
			pricing.ErrArithmeticOverflow,
			toBal,
			to,
			amount,
		)
	}
	if err := setUint64(ctx, mu, fromKey, fromBal-amount); err != nil {
		return err
	}
	return setUint64(ctx, mu, toKey, ntoBal)
}

func getUint64(ctx context.Context, im state.Immutable, key []byte) (uint64, bool, error) {
	v, err := im.GetValue(ctx, key)
	if errors.Is(err, database.ErrNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	val, err := database.ParseUInt64(v)
	if err != nil {
		return 0, false, err
	}
	return val, true, nil
}

// setUint64 writes [v] to [key], removing the key instead of storing zero.
func setUint64(ctx context.Context, mu state.Mutable, key []byte, v uint64) error {
	if v == 0 {
		_, exists, err := getUint64(ctx, mu, key)
		if err != nil || !exists {
			return err
		}
		return mu.Remove(ctx, key)
	}
	return mu.Insert(ctx, key, binary.BigEndian.AppendUint64(nil, v))
}
