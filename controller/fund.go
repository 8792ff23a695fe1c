// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package controller

import (
	"context"

	"github.com/ava-labs/curvevm/chain"
	"github.com/ava-labs/curvevm/codec"
	"github.com/ava-labs/curvevm/consts"
	"github.com/ava-labs/curvevm/state"
)

var (
	_ chain.Action = (*fund)(nil)
	_ codec.Typed  = (*FundResult)(nil)
)

// fund credits [to] out of thin air. It is never exposed to traders: only
// the host (genesis tooling, tests, the CLI) may issue it.
type fund struct {
	To     codec.Address
	Amount uint64
}

type FundResult struct {
	To      codec.Address `json:"to"`
	Balance uint64        `json:"balance"`
}

func (*FundResult) GetTypeID() uint8 {
	return consts.FundID
}

func (*fund) GetTypeID() uint8 {
	return consts.FundID
}

func (f *fund) StateKeys(_ codec.Address, ledgers chain.Ledgers) state.Keys {
	return ledgers.Value.StateKeys(f.To)
}

func (f *fund) Execute(
	ctx context.Context,
	_ chain.Rules,
	ledgers chain.Ledgers,
	mu state.Mutable,
	_ codec.Address,
) (codec.Typed, error) {
	if err := ledgers.Value.AddBalance(ctx, mu, f.To, f.Amount); err != nil {
		return nil, err
	}
	bal, err := ledgers.Value.GetBalance(ctx, mu, f.To)
	if err != nil {
		return nil, err
	}
	return &FundResult{To: f.To, Balance: bal}, nil
}
