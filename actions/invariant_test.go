// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/curvevm/chain/chaintest"
	"github.com/ava-labs/curvevm/codec"
	"github.com/ava-labs/curvevm/codec/codectest"
	"github.com/ava-labs/curvevm/storage"
)

func TestRandomTradesPreserveInvariant(t *testing.T) {
	var (
		require = require.New(t)
		ctx     = context.Background()
		rules   = &chaintest.Rules{}
		r       = rand.New(rand.NewSource(1)) //nolint:gosec
		traders = []uint64{}
		store   = newPoolState(t, codectest.NewRandomAddress(), 7, 3, 0)
	)
	addrs := make([]codec.Address, 4)
	for i := range addrs {
		addrs[i] = codectest.NewRandomAddress()
		require.NoError(testLedgers.Value.AddBalance(ctx, store, addrs[i], 1_000_000_000))
		traders = append(traders, 1_000_000_000)
	}

	for i := 0; i < 500; i++ {
		idx := r.Intn(len(addrs))
		actor := addrs[idx]
		held, err := testLedgers.Token.GetBalance(ctx, store, testAsset, actor)
		require.NoError(err)

		if held > 0 && r.Intn(2) == 0 {
			amount := uint64(r.Int63n(int64(held))) + 1
			out, err := (&Sell{Asset: testAsset, Amount: amount}).Execute(ctx, rules, testLedgers, store, actor)
			require.NoError(err)
			traders[idx] += out.(*TradeResult).Value
		} else {
			amount := uint64(r.Intn(50)) + 1
			out, err := (&Buy{Asset: testAsset, Amount: amount}).Execute(ctx, rules, testLedgers, store, actor)
			require.NoError(err)
			traders[idx] -= out.(*TradeResult).Value
		}

		pool, _, err := storage.GetPool(ctx, store, testAsset)
		require.NoError(err)
		require.NoError(pool.VerifyInvariant())
	}

	// Everyone sells out: the reserve returns to zero and value is conserved.
	for idx, actor := range addrs {
		held, err := testLedgers.Token.GetBalance(ctx, store, testAsset, actor)
		require.NoError(err)
		if held > 0 {
			out, err := (&Sell{Asset: testAsset, Amount: held}).Execute(ctx, rules, testLedgers, store, actor)
			require.NoError(err)
			traders[idx] += out.(*TradeResult).Value
		}
	}
	assertPool(ctx, t, store, 0, 0)

	var total uint64
	for idx, actor := range addrs {
		bal, err := testLedgers.Value.GetBalance(ctx, store, actor)
		require.NoError(err)
		require.Equal(traders[idx], bal)
		total += bal
	}
	require.Equal(uint64(len(addrs))*1_000_000_000, total)
}
