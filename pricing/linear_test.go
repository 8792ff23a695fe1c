// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pricing

import (
	"math"
	"math/big"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCost(t *testing.T) {
	curve := NewLinearCurve(100, 10)

	tests := []struct {
		name      string
		amount    uint64
		baseIndex uint64
		expected  uint64
		err       error
	}{
		{
			name:      "zero amount",
			amount:    0,
			baseIndex: 0,
			err:       ErrInvalidAmount,
		},
		{
			name:      "single unit at zero",
			amount:    1,
			baseIndex: 0,
			expected:  100,
		},
		{
			name:      "single unit at five",
			amount:    1,
			baseIndex: 5,
			expected:  150,
		},
		{
			name:      "five units from empty",
			amount:    5,
			baseIndex: 0,
			expected:  600,
		},
		{
			name:      "three units from five",
			amount:    3,
			baseIndex: 5,
			expected:  480,
		},
		{
			name:      "triangle overflows",
			amount:    math.MaxUint64,
			baseIndex: 0,
			err:       ErrArithmeticOverflow,
		},
		{
			name:      "offset overflows",
			amount:    2,
			baseIndex: math.MaxUint64,
			err:       ErrArithmeticOverflow,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			cost, err := curve.Cost(tt.amount, tt.baseIndex)
			require.ErrorIs(err, tt.err)
			require.Equal(tt.expected, cost)
		})
	}
}

func TestCostSlopeOverflow(t *testing.T) {
	require := require.New(t)

	// amount*(amount-1)/2 fits, slope*(...) does not
	curve := NewLinearCurve(0, math.MaxUint64/2)
	_, err := curve.Cost(3, 0)
	require.ErrorIs(err, ErrArithmeticOverflow)

	// base cost alone overflows
	curve = NewLinearCurve(math.MaxUint64, 0)
	_, err = curve.Cost(2, 0)
	require.ErrorIs(err, ErrArithmeticOverflow)
}

func TestZeroSlopeIsLinear(t *testing.T) {
	require := require.New(t)
	curve := NewLinearCurve(7, 0)

	for amount := uint64(1); amount < 50; amount++ {
		cost, err := curve.Cost(amount, 1_000)
		require.NoError(err)
		require.Equal(amount*7, cost)
	}
}

func TestCostMonotonic(t *testing.T) {
	require := require.New(t)
	curve := NewLinearCurve(3, 2)

	for _, supply := range []uint64{0, 1, 17, 1_000} {
		prev, err := curve.Cost(1, supply)
		require.NoError(err)
		for amount := uint64(2); amount < 100; amount++ {
			cost, err := curve.Cost(amount, supply)
			require.NoError(err)
			require.Greater(cost, prev)
			prev = cost
		}
	}
}

func TestBuySellSymmetry(t *testing.T) {
	require := require.New(t)
	curve := NewLinearCurve(100, 10)

	for _, supply := range []uint64{0, 5, 123} {
		for _, amount := range []uint64{1, 3, 40} {
			cost, afterBuy, err := curve.BuyCost(supply, amount)
			require.NoError(err)
			require.Equal(supply+amount, afterBuy)

			refund, afterSell, err := curve.SellRefund(afterBuy, amount)
			require.NoError(err)
			require.Equal(supply, afterSell)
			require.Equal(cost, refund)
		}
	}
}

func TestBuyCostSupplyOverflow(t *testing.T) {
	require := require.New(t)
	curve := NewLinearCurve(0, 0)

	_, _, err := curve.BuyCost(math.MaxUint64, 1)
	require.ErrorIs(err, ErrArithmeticOverflow)

	_, _, err = curve.BuyCost(10, 0)
	require.ErrorIs(err, ErrInvalidAmount)
}

func TestSellRefundBounds(t *testing.T) {
	require := require.New(t)
	curve := NewLinearCurve(100, 10)

	_, _, err := curve.SellRefund(5, 0)
	require.ErrorIs(err, ErrInvalidAmount)

	_, _, err = curve.SellRefund(5, 6)
	require.ErrorIs(err, ErrInsufficientSupply)

	refund, newSupply, err := curve.SellRefund(5, 5)
	require.NoError(err)
	require.Zero(newSupply)
	require.Equal(uint64(600), refund)
}

func TestReserveAt(t *testing.T) {
	require := require.New(t)
	curve := NewLinearCurve(100, 10)

	reserve, err := curve.ReserveAt(0)
	require.NoError(err)
	require.Zero(reserve)

	reserve, err = curve.ReserveAt(8)
	require.NoError(err)
	require.Equal(uint64(1080), reserve)
}

func TestSpotPrice(t *testing.T) {
	require := require.New(t)
	curve := NewLinearCurve(100, 10)

	price, err := curve.SpotPrice(5)
	require.NoError(err)
	require.Equal(uint64(150), price)

	_, err = NewLinearCurve(1, math.MaxUint64).SpotPrice(2)
	require.ErrorIs(err, ErrArithmeticOverflow)
}

// The reserve after any sequence of trades must equal the closed form for
// the resulting supply.
func TestInvariantRandomTrades(t *testing.T) {
	require := require.New(t)
	r := rand.New(rand.NewSource(1)) //nolint:gosec
	curve := NewLinearCurve(1_000, 3)

	var supply, reserve uint64
	for i := 0; i < 2_000; i++ {
		amount := uint64(r.Intn(50)) + 1
		if r.Intn(2) == 0 || supply < amount {
			cost, newSupply, err := curve.BuyCost(supply, amount)
			require.NoError(err)
			supply = newSupply
			reserve += cost
		} else {
			refund, newSupply, err := curve.SellRefund(supply, amount)
			require.NoError(err)
			supply = newSupply
			reserve -= refund
		}
		expected, err := curve.ReserveAt(supply)
		require.NoError(err)
		require.Equal(expected, reserve)
	}
}

func FuzzCost(f *testing.F) {
	f.Add(uint64(100), uint64(10), uint64(5), uint64(0))
	f.Add(uint64(0), uint64(1), uint64(1<<32), uint64(1<<31))
	f.Add(uint64(math.MaxUint64), uint64(0), uint64(1), uint64(0))

	f.Fuzz(func(t *testing.T, basePrice, slope, amount, baseIndex uint64) {
		if amount == 0 {
			return
		}
		cost, err := NewLinearCurve(basePrice, slope).Cost(amount, baseIndex)

		// Reproduce every intermediate with arbitrary precision and reject
		// the input if any of them leaves the uint64 range.
		var (
			maxU64   = new(big.Int).SetUint64(math.MaxUint64)
			a        = new(big.Int).SetUint64(amount)
			fits     = true
			checkFit = func(x *big.Int) *big.Int {
				if x.Cmp(maxU64) > 0 {
					fits = false
				}
				return x
			}
		)
		base := checkFit(new(big.Int).Mul(a, new(big.Int).SetUint64(basePrice)))
		offset := checkFit(new(big.Int).Mul(a, new(big.Int).SetUint64(baseIndex)))
		triangle := checkFit(new(big.Int).Mul(a, new(big.Int).SetUint64(amount-1)))
		steps := checkFit(new(big.Int).Add(offset, new(big.Int).Rsh(triangle, 1)))
		slopeCost := checkFit(new(big.Int).Mul(new(big.Int).SetUint64(slope), steps))
		total := checkFit(new(big.Int).Add(base, slopeCost))

		if !fits {
			require.ErrorIs(t, err, ErrArithmeticOverflow)
			return
		}
		require.NoError(t, err)
		require.Equal(t, total.Uint64(), cost)
	})
}
