// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/database"

	"github.com/ava-labs/curvevm/codec"
	"github.com/ava-labs/curvevm/consts"
	"github.com/ava-labs/curvevm/keys"
	"github.com/ava-labs/curvevm/pricing"
	"github.com/ava-labs/curvevm/state"
)

const maxPoolSize = codec.AddressLen + 4*consts.Uint64Len + consts.Uint16Len + consts.MaxMetadataURISize

// Pool is the persisted market for a single asset. [Reserve] and [Supply]
// are only changed by buys and sells; everything else is fixed at creation.
type Pool struct {
	Asset       codec.Address `json:"asset"`
	Reserve     uint64        `json:"reserve"`
	Supply      uint64        `json:"supply"`
	BasePrice   uint64        `json:"basePrice"`
	Slope       uint64        `json:"slope"`
	MetadataURI string        `json:"metadataURI"`
}

func (p *Pool) Curve() *pricing.LinearCurve {
	return pricing.NewLinearCurve(p.BasePrice, p.Slope)
}

func (p *Pool) Escrow() codec.Address {
	return EscrowAddress(p.Asset)
}

func (p *Pool) MintCapability() codec.Address {
	return MintCapability(p.Asset)
}

// VerifyInvariant checks that [Reserve] is exactly what the curve charges
// to issue [Supply] units starting from zero.
func (p *Pool) VerifyInvariant() error {
	expected, err := p.Curve().ReserveAt(p.Supply)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvariantViolated, err)
	}
	if expected != p.Reserve {
		return fmt.Errorf("%w: reserve=%d expected=%d supply=%d", ErrInvariantViolated, p.Reserve, expected, p.Supply)
	}
	return nil
}

func (p *Pool) Marshal() []byte {
	w := codec.NewWriter(codec.AddressLen+4*consts.Uint64Len+codec.StringLen(p.MetadataURI), maxPoolSize)
	w.PackAddress(p.Asset)
	w.PackUint64(p.Reserve)
	w.PackUint64(p.Supply)
	w.PackUint64(p.BasePrice)
	w.PackUint64(p.Slope)
	w.PackString(p.MetadataURI)
	return w.Bytes()
}

func UnmarshalPool(b []byte) (*Pool, error) {
	var p Pool
	r := codec.NewReader(b, maxPoolSize)
	r.UnpackAddress(&p.Asset)
	p.Reserve = r.UnpackUint64(false)
	p.Supply = r.UnpackUint64(false)
	p.BasePrice = r.UnpackUint64(false)
	p.Slope = r.UnpackUint64(false)
	p.MetadataURI = r.UnpackString(consts.MaxMetadataURISize, false)
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPool, err)
	}
	if !r.Empty() {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrInvalidPool, len(b)-r.Offset())
	}
	return &p, nil
}

// [poolPrefix] + [asset]
func PoolKey(asset codec.Address) []byte {
	return keys.New(poolPrefix, PoolChunks, asset[:])
}

// GetPool returns the pool for [asset]. The returned bool is false (with
// a nil error) if no pool exists.
func GetPool(ctx context.Context, im state.Immutable, asset codec.Address) (*Pool, bool, error) {
	v, err := im.GetValue(ctx, PoolKey(asset))
	if errors.Is(err, database.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	p, err := UnmarshalPool(v)
	if err != nil {
		return nil, false, err
	}
	return p, true, nil
}

func PoolExists(ctx context.Context, im state.Immutable, asset codec.Address) (bool, error) {
	_, exists, err := GetPool(ctx, im, asset)
	return exists, err
}

func SetPool(ctx context.Context, mu state.Mutable, p *Pool) error {
	return mu.Insert(ctx, PoolKey(p.Asset), p.Marshal())
}
