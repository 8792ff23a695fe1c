// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"github.com/ava-labs/curvevm/codec"
	"github.com/ava-labs/curvevm/consts"
	"github.com/ava-labs/curvevm/utils"
)

// EscrowAddress is the value-ledger account holding the reserve of the pool
// for [asset]. No key controls it; only pool actions move value out of it.
func EscrowAddress(asset codec.Address) codec.Address {
	return deriveAddress(consts.EscrowID, escrowSeed, asset)
}

// MintCapability is the minting authority registered for [asset] when its
// pool is created.
func MintCapability(asset codec.Address) codec.Address {
	return deriveAddress(consts.MintAuthorityID, mintAuthoritySeed, asset)
}

// AssetAddress derives an asset identity from a human readable [name].
func AssetAddress(name string) codec.Address {
	return codec.CreateAddress(consts.AssetID, utils.ToID([]byte(name)))
}

func deriveAddress(typeID uint8, seed string, asset codec.Address) codec.Address {
	v := make([]byte, len(seed)+codec.AddressLen)
	copy(v, seed)
	copy(v[len(seed):], asset[:])
	return codec.CreateAddress(typeID, utils.ToID(v))
}
