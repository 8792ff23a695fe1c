// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"github.com/ava-labs/curvevm/codec"
	"github.com/ava-labs/curvevm/consts"
	"github.com/ava-labs/curvevm/storage"
)

var (
	_ codec.Typed = (*PoolResult)(nil)
	_ codec.Typed = (*TradeResult)(nil)
)

type PoolResult struct {
	storage.Pool

	Escrow         codec.Address `json:"escrow"`
	MintCapability codec.Address `json:"mintCapability"`
}

func (*PoolResult) GetTypeID() uint8 {
	return consts.CreatePoolID
}

// TradeResult reports a completed buy or sell. [Value] is the cost paid
// on a buy and the refund received on a sell. [Supply] and [Reserve] are
// the pool's values after the trade.
type TradeResult struct {
	TypeID  uint8         `json:"-"`
	Asset   codec.Address `json:"asset"`
	Amount  uint64        `json:"amount"`
	Value   uint64        `json:"value"`
	Supply  uint64        `json:"supply"`
	Reserve uint64        `json:"reserve"`
}

func (r *TradeResult) GetTypeID() uint8 {
	return r.TypeID
}
