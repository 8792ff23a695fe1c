// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/curvevm/chain"
	"github.com/ava-labs/curvevm/chain/chaintest"
	"github.com/ava-labs/curvevm/codec"
	"github.com/ava-labs/curvevm/codec/codectest"
	"github.com/ava-labs/curvevm/consts"
	"github.com/ava-labs/curvevm/state"
	"github.com/ava-labs/curvevm/storage"
)

const (
	testBasePrice = 100
	testSlope     = 10
	testFunds     = 10_000
)

var (
	testAsset   = storage.AssetAddress("CURVE")
	testLedgers = chain.Ledgers{
		Value: storage.BalanceLedger{},
		Token: storage.TokenLedger{},
	}
)

// newPoolState returns a store holding an empty pool for [testAsset] and
// [funds] of value owned by [trader].
func newPoolState(t *testing.T, trader codec.Address, basePrice, slope, funds uint64) *chaintest.InMemoryStore {
	require := require.New(t)
	ctx := context.Background()

	store := chaintest.NewInMemoryStore()
	_, err := (&CreatePool{
		Asset:     testAsset,
		BasePrice: basePrice,
		Slope:     slope,
	}).Execute(ctx, &chaintest.Rules{}, testLedgers, store, trader)
	require.NoError(err)
	if funds > 0 {
		require.NoError(testLedgers.Value.AddBalance(ctx, store, trader, funds))
	}
	return store
}

// assertPool checks the pool record and that the escrow account holds
// exactly the reserve.
func assertPool(ctx context.Context, t *testing.T, im state.Immutable, supply, reserve uint64) {
	require := require.New(t)

	pool, exists, err := storage.GetPool(ctx, im, testAsset)
	require.NoError(err)
	require.True(exists)
	require.Equal(supply, pool.Supply)
	require.Equal(reserve, pool.Reserve)
	require.NoError(pool.VerifyInvariant())

	escrow, err := testLedgers.Value.GetBalance(ctx, im, pool.Escrow())
	require.NoError(err)
	require.Equal(reserve, escrow)

	issued, err := testLedgers.Token.GetSupply(ctx, im, testAsset)
	require.NoError(err)
	require.Equal(supply, issued)
}

func assertBalances(ctx context.Context, t *testing.T, im state.Immutable, trader codec.Address, value, tokens uint64) {
	require := require.New(t)

	bal, err := testLedgers.Value.GetBalance(ctx, im, trader)
	require.NoError(err)
	require.Equal(value, bal)

	held, err := testLedgers.Token.GetBalance(ctx, im, testAsset, trader)
	require.NoError(err)
	require.Equal(tokens, held)
}

func TestCreatePool(t *testing.T) {
	creator := codectest.NewRandomAddress()
	existing := newPoolState(t, creator, testBasePrice, testSlope, 0)

	tests := []chaintest.ActionTest{
		{
			Name:  "empty asset",
			Actor: creator,
			Action: &CreatePool{
				BasePrice: testBasePrice,
				Slope:     testSlope,
			},
			ExpectedErr: ErrInvalidAsset,
			State:       chaintest.NewInMemoryStore(),
		},
		{
			Name:  "metadata too large",
			Actor: creator,
			Action: &CreatePool{
				Asset:       testAsset,
				MetadataURI: strings.Repeat("a", consts.MaxMetadataURISize+1),
			},
			ExpectedErr: ErrInvalidMetadata,
			State:       chaintest.NewInMemoryStore(),
		},
		{
			Name:  "already exists",
			Actor: creator,
			Action: &CreatePool{
				Asset:     testAsset,
				BasePrice: 1,
			},
			ExpectedErr: ErrPoolAlreadyExists,
			State:       existing,
			Assertion: func(ctx context.Context, t *testing.T, mu state.Mutable) {
				pool, _, err := storage.GetPool(ctx, mu, testAsset)
				require.NoError(t, err)
				require.Equal(t, uint64(testBasePrice), pool.BasePrice)
			},
		},
		{
			Name:  "max metadata",
			Actor: creator,
			Action: &CreatePool{
				Asset:       testAsset,
				BasePrice:   testBasePrice,
				Slope:       testSlope,
				MetadataURI: strings.Repeat("a", consts.MaxMetadataURISize),
			},
			ExpectedOutputs: &PoolResult{
				Pool: storage.Pool{
					Asset:       testAsset,
					BasePrice:   testBasePrice,
					Slope:       testSlope,
					MetadataURI: strings.Repeat("a", consts.MaxMetadataURISize),
				},
				Escrow:         storage.EscrowAddress(testAsset),
				MintCapability: storage.MintCapability(testAsset),
			},
			State: chaintest.NewInMemoryStore(),
			Assertion: func(ctx context.Context, t *testing.T, mu state.Mutable) {
				assertPool(ctx, t, mu, 0, 0)
			},
		},
	}

	for _, tt := range tests {
		tt.Ledgers = testLedgers
		tt.Run(context.Background(), t)
	}
}

func TestTradeScenario(t *testing.T) {
	var (
		require = require.New(t)
		ctx     = context.Background()
		trader  = codectest.NewRandomAddress()
		store   = newPoolState(t, trader, testBasePrice, testSlope, testFunds)
	)

	steps := []chaintest.ActionTest{
		{
			Name:   "buy 5",
			Action: &Buy{Asset: testAsset, Amount: 5},
			ExpectedOutputs: &TradeResult{
				TypeID: consts.BuyID, Asset: testAsset, Amount: 5, Value: 600, Supply: 5, Reserve: 600,
			},
			Assertion: func(ctx context.Context, t *testing.T, mu state.Mutable) {
				assertPool(ctx, t, mu, 5, 600)
				assertBalances(ctx, t, mu, trader, testFunds-600, 5)
			},
		},
		{
			Name:   "buy 3",
			Action: &Buy{Asset: testAsset, Amount: 3},
			ExpectedOutputs: &TradeResult{
				TypeID: consts.BuyID, Asset: testAsset, Amount: 3, Value: 480, Supply: 8, Reserve: 1080,
			},
			Assertion: func(ctx context.Context, t *testing.T, mu state.Mutable) {
				assertPool(ctx, t, mu, 8, 1080)
				assertBalances(ctx, t, mu, trader, testFunds-1080, 8)
			},
		},
		{
			Name:   "sell 3",
			Action: &Sell{Asset: testAsset, Amount: 3},
			ExpectedOutputs: &TradeResult{
				TypeID: consts.SellID, Asset: testAsset, Amount: 3, Value: 480, Supply: 5, Reserve: 600,
			},
			Assertion: func(ctx context.Context, t *testing.T, mu state.Mutable) {
				assertPool(ctx, t, mu, 5, 600)
				assertBalances(ctx, t, mu, trader, testFunds-600, 5)
			},
		},
		{
			Name:   "sell remaining",
			Action: &Sell{Asset: testAsset, Amount: 5},
			ExpectedOutputs: &TradeResult{
				TypeID: consts.SellID, Asset: testAsset, Amount: 5, Value: 600, Supply: 0, Reserve: 0,
			},
			Assertion: func(ctx context.Context, t *testing.T, mu state.Mutable) {
				assertPool(ctx, t, mu, 0, 0)
				assertBalances(ctx, t, mu, trader, testFunds, 0)
			},
		},
	}

	// Steps share [store], so they must run in order.
	for _, step := range steps {
		step.Actor = trader
		step.Ledgers = testLedgers
		step.State = store
		step.Run(ctx, t)
	}
	require.Empty(store.Storage[string(storage.BalanceKey(storage.EscrowAddress(testAsset)))])
}

func TestTradeRejections(t *testing.T) {
	var (
		ctx    = context.Background()
		trader = codectest.NewRandomAddress()
		other  = codectest.NewRandomAddress()
	)

	// [funded] holds a pool with supply 5 owned by [trader].
	funded := newPoolState(t, trader, testBasePrice, testSlope, testFunds)
	_, err := (&Buy{Asset: testAsset, Amount: 5}).Execute(ctx, &chaintest.Rules{}, testLedgers, funded, trader)
	require.NoError(t, err)

	unchanged := func(supply, reserve uint64) func(context.Context, *testing.T, state.Mutable) {
		return func(ctx context.Context, t *testing.T, mu state.Mutable) {
			assertPool(ctx, t, mu, supply, reserve)
		}
	}

	tests := []chaintest.ActionTest{
		{
			Name:        "buy from missing pool",
			Actor:       trader,
			Action:      &Buy{Asset: storage.AssetAddress("MISSING"), Amount: 1},
			ExpectedErr: ErrPoolNotFound,
			State:       chaintest.NewInMemoryStore(),
		},
		{
			Name:        "buy zero from missing pool",
			Actor:       trader,
			Action:      &Buy{Asset: storage.AssetAddress("MISSING"), Amount: 0},
			ExpectedErr: ErrInvalidAmount,
			State:       chaintest.NewInMemoryStore(),
		},
		{
			Name:        "sell zero from missing pool",
			Actor:       trader,
			Action:      &Sell{Asset: storage.AssetAddress("MISSING"), Amount: 0},
			ExpectedErr: ErrInvalidAmount,
			State:       chaintest.NewInMemoryStore(),
		},
		{
			Name:        "buy zero",
			Actor:       trader,
			Action:      &Buy{Asset: testAsset, Amount: 0},
			ExpectedErr: ErrInvalidAmount,
			State:       funded,
			Assertion:   unchanged(5, 600),
		},
		{
			Name:        "sell zero",
			Actor:       trader,
			Action:      &Sell{Asset: testAsset, Amount: 0},
			ExpectedErr: ErrInvalidAmount,
			State:       funded,
			Assertion:   unchanged(5, 600),
		},
		{
			Name:        "buy above max trade amount",
			Actor:       trader,
			Action:      &Buy{Asset: testAsset, Amount: 3},
			Rules:       &chaintest.Rules{MaxTradeAmount: 2},
			ExpectedErr: ErrInvalidAmount,
			State:       funded,
			Assertion:   unchanged(5, 600),
		},
		{
			Name:        "oversell",
			Actor:       trader,
			Action:      &Sell{Asset: testAsset, Amount: 6},
			ExpectedErr: ErrInsufficientSupply,
			State:       funded,
			Assertion: func(ctx context.Context, t *testing.T, mu state.Mutable) {
				assertPool(ctx, t, mu, 5, 600)
				assertBalances(ctx, t, mu, trader, testFunds-600, 5)
			},
		},
		{
			Name:        "buy without funds",
			Actor:       other,
			Action:      &Buy{Asset: testAsset, Amount: 1},
			ExpectedErr: ErrInsufficientFunds,
			State:       funded,
			Assertion:   unchanged(5, 600),
		},
		{
			Name:        "sell without holdings",
			Actor:       other,
			Action:      &Sell{Asset: testAsset, Amount: 1},
			ExpectedErr: ErrInsufficientFunds,
			State:       funded,
			Assertion:   unchanged(5, 600),
		},
		{
			Name:        "buy as escrow",
			Actor:       storage.EscrowAddress(testAsset),
			Action:      &Buy{Asset: testAsset, Amount: 3},
			ExpectedErr: ErrInvalidActor,
			State:       funded,
			Assertion:   unchanged(5, 600),
		},
		{
			Name:        "sell as escrow",
			Actor:       storage.EscrowAddress(testAsset),
			Action:      &Sell{Asset: testAsset, Amount: 1},
			ExpectedErr: ErrInvalidActor,
			State:       funded,
			Assertion:   unchanged(5, 600),
		},
		{
			Name:        "buy as mint capability",
			Actor:       storage.MintCapability(testAsset),
			Action:      &Buy{Asset: testAsset, Amount: 1},
			ExpectedErr: ErrInvalidActor,
			State:       funded,
			Assertion:   unchanged(5, 600),
		},
		{
			Name:        "buy cost overflow",
			Actor:       trader,
			Action:      &Buy{Asset: testAsset, Amount: math.MaxUint64 / testBasePrice},
			ExpectedErr: ErrArithmeticOverflow,
			State:       funded,
			Assertion: func(ctx context.Context, t *testing.T, mu state.Mutable) {
				assertPool(ctx, t, mu, 5, 600)
				assertBalances(ctx, t, mu, trader, testFunds-600, 5)
			},
		},
	}

	for _, tt := range tests {
		tt.Ledgers = testLedgers
		tt.Run(ctx, t)
	}
}

func TestBuySupplyOverflow(t *testing.T) {
	var (
		ctx    = context.Background()
		trader = codectest.NewRandomAddress()
		store  = newPoolState(t, trader, 0, 0, 0)
	)

	// Seed a free pool already at the top of the supply range.
	pool, _, err := storage.GetPool(ctx, store, testAsset)
	require.NoError(t, err)
	pool.Supply = math.MaxUint64
	require.NoError(t, storage.SetPool(ctx, store, pool))

	test := chaintest.ActionTest{
		Name:        "supply overflow",
		Actor:       trader,
		Action:      &Buy{Asset: testAsset, Amount: 1},
		Ledgers:     testLedgers,
		ExpectedErr: ErrArithmeticOverflow,
		State:       store,
		Assertion: func(ctx context.Context, t *testing.T, mu state.Mutable) {
			got, _, err := storage.GetPool(ctx, mu, testAsset)
			require.NoError(t, err)
			require.Equal(t, uint64(math.MaxUint64), got.Supply)
		},
	}
	test.Run(ctx, t)
}

// The escrow can never trade against its own pool, so an honest holder can
// always sell back everything.
func TestEscrowCannotTrade(t *testing.T) {
	var (
		require = require.New(t)
		ctx     = context.Background()
		trader  = codectest.NewRandomAddress()
		escrow  = storage.EscrowAddress(testAsset)
		store   = newPoolState(t, trader, testBasePrice, testSlope, testFunds)
	)

	_, err := (&Buy{Asset: testAsset, Amount: 5}).Execute(ctx, &chaintest.Rules{}, testLedgers, store, trader)
	require.NoError(err)

	_, err = (&Buy{Asset: testAsset, Amount: 3}).Execute(ctx, &chaintest.Rules{}, testLedgers, store, escrow)
	require.ErrorIs(err, ErrInvalidActor)

	// Even without the actor check the ledger refuses to move value from
	// the escrow to itself.
	require.ErrorIs(testLedgers.Value.Transfer(ctx, store, escrow, escrow, 480), chain.ErrSelfTransfer)
	assertPool(ctx, t, store, 5, 600)

	out, err := (&Sell{Asset: testAsset, Amount: 5}).Execute(ctx, &chaintest.Rules{}, testLedgers, store, trader)
	require.NoError(err)
	require.Equal(uint64(600), out.(*TradeResult).Value)
	assertPool(ctx, t, store, 0, 0)
	assertBalances(ctx, t, store, trader, testFunds, 0)
}
