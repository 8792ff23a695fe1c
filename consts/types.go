// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package consts

import "github.com/ava-labs/avalanchego/ids"

const (
	Name = "curvevm"
	HRP  = "curve"
)

// TypeIDs for actions
const (
	CreatePoolID uint8 = iota
	BuyID
	SellID

	// Host-only action that credits the value ledger
	FundID
)

// TypeIDs for derived addresses
const (
	AccountID uint8 = iota
	AssetID
	EscrowID
	MintAuthorityID
)

// MaxMetadataURISize bounds the metadata string stored with a pool.
const MaxMetadataURISize = 200

var ID ids.ID

func init() {
	b := make([]byte, ids.IDLen)
	copy(b, []byte(Name))
	vmID, err := ids.ToID(b)
	if err != nil {
		panic(err)
	}
	ID = vmID
}
