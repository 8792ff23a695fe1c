// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pricing

import "errors"

var (
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInsufficientSupply = errors.New("insufficient supply")
	ErrArithmeticOverflow = errors.New("arithmetic overflow")
)
