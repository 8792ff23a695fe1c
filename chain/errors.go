// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import "errors"

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidCapability = errors.New("invalid capability")
	ErrSelfTransfer      = errors.New("self transfer")
	ErrMissingAction     = errors.New("missing action")
)
