// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"errors"

	"github.com/ava-labs/curvevm/chain"
	"github.com/ava-labs/curvevm/pricing"
	"github.com/ava-labs/curvevm/storage"
)

var (
	ErrInvalidAsset      = errors.New("invalid asset")
	ErrInvalidMetadata   = errors.New("invalid metadata")
	ErrPoolAlreadyExists = errors.New("pool already exists")
	ErrPoolNotFound      = errors.New("pool not found")
	ErrInvalidActor      = errors.New("invalid actor")

	ErrInvalidAmount      = pricing.ErrInvalidAmount
	ErrInsufficientSupply = pricing.ErrInsufficientSupply
	ErrArithmeticOverflow = pricing.ErrArithmeticOverflow
	ErrInsufficientFunds  = chain.ErrInsufficientFunds
	ErrInvariantViolated  = storage.ErrInvariantViolated
)
