// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/database"

	"github.com/ava-labs/curvevm/chain"
	"github.com/ava-labs/curvevm/codec"
	"github.com/ava-labs/curvevm/consts"
	"github.com/ava-labs/curvevm/keys"
	"github.com/ava-labs/curvevm/pricing"
	"github.com/ava-labs/curvevm/state"

	smath "github.com/ava-labs/avalanchego/utils/math"
)

const tokenInfoSize = codec.AddressLen + consts.Uint64Len

var _ chain.TokenLedger = (*TokenLedger)(nil)

// TokenLedger tracks every asset issued by a pool:
//
//	[tokenPrefix] + [asset] => [capability] + [total supply]
//	[tokenBalancePrefix] + [asset] + [holder] => balance
type TokenLedger struct{}

// [tokenPrefix] + [asset]
func TokenKey(asset codec.Address) []byte {
	return keys.New(tokenPrefix, TokenChunks, asset[:])
}

// [tokenBalancePrefix] + [asset] + [holder]
func TokenBalanceKey(asset codec.Address, holder codec.Address) []byte {
	return keys.New(tokenBalancePrefix, TokenBalanceChunks, asset[:], holder[:])
}

func (TokenLedger) AssetStateKeys(asset codec.Address) state.Keys {
	return state.Keys{
		string(TokenKey(asset)): state.All,
	}
}

func (TokenLedger) HolderStateKeys(asset codec.Address, holder codec.Address) state.Keys {
	return state.Keys{
		string(TokenBalanceKey(asset, holder)): state.All,
	}
}

func (TokenLedger) Register(ctx context.Context, mu state.Mutable, asset codec.Address, capability codec.Address) error {
	_, _, exists, err := getTokenInfo(ctx, mu, asset)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: %s", ErrAssetAlreadyRegistered, asset)
	}
	return setTokenInfo(ctx, mu, asset, capability, 0)
}

func (TokenLedger) Mint(
	ctx context.Context,
	mu state.Mutable,
	asset codec.Address,
	capability codec.Address,
	to codec.Address,
	amount uint64,
) error {
	minter, supply, exists, err := getTokenInfo(ctx, mu, asset)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: %s", ErrAssetNotRegistered, asset)
	}
	if minter != capability {
		return fmt.Errorf("%w: cannot mint %s", chain.ErrInvalidCapability, asset)
	}
	k := TokenBalanceKey(asset, to)
	bal, _, err := getUint64(ctx, mu, k)
	if err != nil {
		return err
	}
	nsupply, err := smath.Add64(supply, amount)
	if err != nil {
		return fmt.Errorf("%w: could not mint (supply=%d, amount=%d)", pricing.ErrArithmeticOverflow, supply, amount)
	}
	nbal, err := smath.Add64(bal, amount)
	if err != nil {
		return fmt.Errorf("%w: could not mint (bal=%d, amount=%d)", pricing.ErrArithmeticOverflow, bal, amount)
	}
	if err := setTokenInfo(ctx, mu, asset, minter, nsupply); err != nil {
		return err
	}
	return setUint64(ctx, mu, k, nbal)
}

func (TokenLedger) Burn(
	ctx context.Context,
	mu state.Mutable,
	asset codec.Address,
	from codec.Address,
	amount uint64,
) error {
	minter, supply, exists, err := getTokenInfo(ctx, mu, asset)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: %s", ErrAssetNotRegistered, asset)
	}
	k := TokenBalanceKey(asset, from)
	bal, _, err := getUint64(ctx, mu, k)
	if err != nil {
		return err
	}
	if bal < amount {
		return fmt.Errorf(
			"%w: could not burn (bal=%d, from=%s, amount=%d)",
			chain.ErrInsufficientFunds,
			bal,
			from,
			amount,
		)
	}
	nsupply, err := smath.Sub(supply, amount)
	if err != nil {
		return fmt.Errorf("%w: supply=%d below holder balance=%d", ErrInvariantViolated, supply, bal)
	}
	if err := setTokenInfo(ctx, mu, asset, minter, nsupply); err != nil {
		return err
	}
	return setUint64(ctx, mu, k, bal-amount)
}

func (TokenLedger) GetBalance(ctx context.Context, im state.Immutable, asset codec.Address, holder codec.Address) (uint64, error) {
	bal, _, err := getUint64(ctx, im, TokenBalanceKey(asset, holder))
	return bal, err
}

func (TokenLedger) GetSupply(ctx context.Context, im state.Immutable, asset codec.Address) (uint64, error) {
	_, supply, _, err := getTokenInfo(ctx, im, asset)
	return supply, err
}

func getTokenInfo(ctx context.Context, im state.Immutable, asset codec.Address) (codec.Address, uint64, bool, error) {
	v, err := im.GetValue(ctx, TokenKey(asset))
	if errors.Is(err, database.ErrNotFound) {
		return codec.EmptyAddress, 0, false, nil
	}
	if err != nil {
		return codec.EmptyAddress, 0, false, err
	}
	if len(v) != tokenInfoSize {
		return codec.EmptyAddress, 0, false, fmt.Errorf("%w: token info is %d bytes", codec.ErrInvalidSize, len(v))
	}
	minter := codec.Address(v[:codec.AddressLen])
	return minter, binary.BigEndian.Uint64(v[codec.AddressLen:]), true, nil
}

func setTokenInfo(ctx context.Context, mu state.Mutable, asset codec.Address, capability codec.Address, supply uint64) error {
	v := make([]byte, tokenInfoSize)
	copy(v, capability[:])
	binary.BigEndian.PutUint64(v[codec.AddressLen:], supply)
	return mu.Insert(ctx, TokenKey(asset), v)
}
