// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import "github.com/ava-labs/curvevm/keys"

var genesisMarker = []byte("genesis")

// GenesisKey marks a database whose genesis allocations were applied.
func GenesisKey() []byte {
	return keys.New(metadataPrefix, 1, genesisMarker)
}
