// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"context"

	"github.com/ava-labs/curvevm/codec"
	"github.com/ava-labs/curvevm/state"
)

//go:generate go run go.uber.org/mock/mockgen -package=chaintest -destination=chaintest/mock_ledgers.go . ValueLedger,TokenLedger

type Rules interface {
	// GetMaxTradeAmount caps the amount of a single buy or sell. Zero means
	// no cap.
	GetMaxTradeAmount() uint64
}

// ValueLedger holds the value asset that pools are priced in.
type ValueLedger interface {
	// StateKeys is a full enumeration of all database keys that could be
	// touched when moving value into or out of [addr].
	//
	// All keys specified must be suffixed with the number of chunks that
	// could ever be read from that key (formatted as a big-endian uint16).
	StateKeys(addr codec.Address) state.Keys

	// GetBalance returns the balance of [addr].
	// If [addr] does not exist, this should return 0 and no error.
	GetBalance(ctx context.Context, im state.Immutable, addr codec.Address) (uint64, error)

	// AddBalance credits [amount] to [addr].
	AddBalance(ctx context.Context, mu state.Mutable, addr codec.Address, amount uint64) error

	// Transfer moves [amount] from [from] to [to]. It returns
	// ErrInsufficientFunds (wrapped) if [from] cannot cover it and leaves
	// both balances untouched.
	Transfer(ctx context.Context, mu state.Mutable, from codec.Address, to codec.Address, amount uint64) error
}

// TokenLedger issues the assets traded by pools.
type TokenLedger interface {
	// AssetStateKeys enumerates the keys holding [asset]'s registration and
	// total supply.
	AssetStateKeys(asset codec.Address) state.Keys

	// HolderStateKeys enumerates the keys holding [holder]'s balance of
	// [asset].
	HolderStateKeys(asset codec.Address, holder codec.Address) state.Keys

	// Register records [asset] with zero supply and [capability] as its
	// only minter.
	Register(ctx context.Context, mu state.Mutable, asset codec.Address, capability codec.Address) error

	// Mint issues [amount] of [asset] to [to]. [capability] must match the
	// one recorded by Register.
	Mint(ctx context.Context, mu state.Mutable, asset codec.Address, capability codec.Address, to codec.Address, amount uint64) error

	// Burn destroys [amount] of [asset] held by [from].
	Burn(ctx context.Context, mu state.Mutable, asset codec.Address, from codec.Address, amount uint64) error

	GetBalance(ctx context.Context, im state.Immutable, asset codec.Address, holder codec.Address) (uint64, error)
	GetSupply(ctx context.Context, im state.Immutable, asset codec.Address) (uint64, error)
}

// Ledgers bundles the collaborators an [Action] moves value through.
type Ledgers struct {
	Value ValueLedger
	Token TokenLedger
}

type Action interface {
	codec.Typed

	// StateKeys is a full enumeration of all database keys that could be
	// touched during execution by [actor]. Execution fails if any other
	// key is read or written.
	StateKeys(actor codec.Address, ledgers Ledgers) state.Keys

	// Execute applies the action to [mu]. If an error is returned, the
	// caller must discard every change made to [mu].
	Execute(
		ctx context.Context,
		rules Rules,
		ledgers Ledgers,
		mu state.Mutable,
		actor codec.Address,
	) (codec.Typed, error)
}
