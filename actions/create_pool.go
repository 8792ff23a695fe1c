// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"
	"fmt"

	"github.com/ava-labs/curvevm/chain"
	"github.com/ava-labs/curvevm/codec"
	"github.com/ava-labs/curvevm/consts"
	"github.com/ava-labs/curvevm/state"
	"github.com/ava-labs/curvevm/storage"
)

var _ chain.Action = (*CreatePool)(nil)

// CreatePool opens an empty market for [Asset] and registers the pool's
// minting capability as the asset's only minter.
type CreatePool struct {
	Asset       codec.Address `json:"asset"`
	BasePrice   uint64        `json:"basePrice"`
	Slope       uint64        `json:"slope"`
	MetadataURI string        `json:"metadataURI"`
}

func (*CreatePool) GetTypeID() uint8 {
	return consts.CreatePoolID
}

func (c *CreatePool) StateKeys(_ codec.Address, ledgers chain.Ledgers) state.Keys {
	keys := state.Keys{
		string(storage.PoolKey(c.Asset)): state.All,
	}
	for k, perms := range ledgers.Token.AssetStateKeys(c.Asset) {
		keys.Add(k, perms)
	}
	return keys
}

func (c *CreatePool) Execute(
	ctx context.Context,
	_ chain.Rules,
	ledgers chain.Ledgers,
	mu state.Mutable,
	_ codec.Address,
) (codec.Typed, error) {
	if c.Asset == codec.EmptyAddress {
		return nil, ErrInvalidAsset
	}
	if len(c.MetadataURI) > consts.MaxMetadataURISize {
		return nil, fmt.Errorf("%w: uri is %d bytes (max=%d)", ErrInvalidMetadata, len(c.MetadataURI), consts.MaxMetadataURISize)
	}
	exists, err := storage.PoolExists(ctx, mu, c.Asset)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: %s", ErrPoolAlreadyExists, c.Asset)
	}

	pool := &storage.Pool{
		Asset:       c.Asset,
		BasePrice:   c.BasePrice,
		Slope:       c.Slope,
		MetadataURI: c.MetadataURI,
	}
	if err := ledgers.Token.Register(ctx, mu, pool.Asset, pool.MintCapability()); err != nil {
		return nil, err
	}
	if err := storage.SetPool(ctx, mu, pool); err != nil {
		return nil, err
	}
	return &PoolResult{
		Pool:           *pool,
		Escrow:         pool.Escrow(),
		MintCapability: pool.MintCapability(),
	}, nil
}
