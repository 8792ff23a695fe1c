// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codectest

import (
	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/curvevm/codec"
	"github.com/ava-labs/curvevm/consts"
)

// NewRandomAddress returns a random trader address
// for use during testing
func NewRandomAddress() codec.Address {
	return codec.CreateAddress(consts.AccountID, ids.GenerateTestID())
}
