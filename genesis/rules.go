// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package genesis

import "github.com/ava-labs/curvevm/chain"

var _ chain.Rules = (*Rules)(nil)

type Rules struct {
	// MaxTradeAmount caps the amount of a single buy or sell. Zero disables
	// the cap.
	MaxTradeAmount uint64 `json:"maxTradeAmount"`
}

func NewDefaultRules() *Rules {
	return &Rules{}
}

func (r *Rules) GetMaxTradeAmount() uint64 {
	return r.MaxTradeAmount
}
