// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package genesis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ava-labs/avalanchego/trace"

	"github.com/ava-labs/curvevm/chain"
	"github.com/ava-labs/curvevm/codec"
	"github.com/ava-labs/curvevm/state"

	safemath "github.com/ava-labs/avalanchego/utils/math"
)

type CustomAllocation struct {
	Address codec.Address `json:"address"`
	Balance uint64        `json:"balance"`
}

// Genesis seeds the value ledger and fixes the rules every action runs
// under.
type Genesis struct {
	CustomAllocation []*CustomAllocation `json:"customAllocation"`
	Rules            *Rules              `json:"initialRules"`
}

func NewDefaultGenesis(customAllocations []*CustomAllocation) *Genesis {
	return &Genesis{
		CustomAllocation: customAllocations,
		Rules:            NewDefaultRules(),
	}
}

// Load parses [genesisBytes]. Missing rules fall back to the defaults.
func Load(genesisBytes []byte) (*Genesis, error) {
	g := &Genesis{}
	if err := json.Unmarshal(genesisBytes, g); err != nil {
		return nil, err
	}
	if g.Rules == nil {
		g.Rules = NewDefaultRules()
	}
	return g, nil
}

// StateKeys enumerates every key InitializeState writes.
func (g *Genesis) StateKeys(ledger chain.ValueLedger) state.Keys {
	keys := state.Keys{}
	for _, alloc := range g.CustomAllocation {
		for k, perms := range ledger.StateKeys(alloc.Address) {
			keys.Add(k, perms)
		}
	}
	return keys
}

func (g *Genesis) InitializeState(ctx context.Context, tracer trace.Tracer, mu state.Mutable, ledger chain.ValueLedger) error {
	_, span := tracer.Start(ctx, "Genesis.InitializeState")
	defer span.End()

	supply := uint64(0)
	for _, alloc := range g.CustomAllocation {
		var err error
		supply, err = safemath.Add64(supply, alloc.Balance)
		if err != nil {
			return err
		}
		if err := ledger.AddBalance(ctx, mu, alloc.Address, alloc.Balance); err != nil {
			return fmt.Errorf("%w: addr=%s, bal=%d", err, alloc.Address, alloc.Balance)
		}
	}
	return nil
}
