// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import "errors"

var (
	ErrAssetAlreadyRegistered = errors.New("asset already registered")
	ErrAssetNotRegistered     = errors.New("asset not registered")
	ErrInvariantViolated      = errors.New("pool invariant violated")
	ErrInvalidPool            = errors.New("invalid pool record")
)
