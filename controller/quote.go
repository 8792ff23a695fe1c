// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package controller

import (
	"errors"

	"github.com/ava-labs/curvevm/codec"
	"github.com/ava-labs/curvevm/pricing"
)

// Quote is the exact outcome a trade would have against the pool as it is
// now. Nothing is reserved: a later trade may change the price.
type Quote struct {
	Asset  codec.Address `json:"asset"`
	Amount uint64        `json:"amount"`

	// Cost paid on a buy, refund received on a sell
	Value uint64 `json:"value"`

	Supply  uint64 `json:"supply"`
	Reserve uint64 `json:"reserve"`

	// Price of the next unit after the trade. Nil when that price does not
	// fit in a uint64; the trade itself may still be valid.
	SpotPrice *uint64 `json:"spotPrice,omitempty"`
}

// SpotPrice returns the price of the next unit minted at [supply], or nil
// if it overflows.
func SpotPrice(curve *pricing.LinearCurve, supply uint64) (*uint64, error) {
	spot, err := curve.SpotPrice(supply)
	if errors.Is(err, pricing.ErrArithmeticOverflow) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &spot, nil
}
