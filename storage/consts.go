// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

// Key prefixes
const (
	balancePrefix byte = iota
	tokenPrefix
	tokenBalancePrefix
	poolPrefix
	metadataPrefix
)

// Chunks
const (
	BalanceChunks      uint16 = 1
	TokenChunks        uint16 = 1
	TokenBalanceChunks uint16 = 1
	PoolChunks         uint16 = 5
)

// Seeds for derived addresses
const (
	escrowSeed        = "escrow"
	mintAuthoritySeed = "mint-authority"
)
