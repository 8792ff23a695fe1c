// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chaintest

import (
	"context"
	"testing"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/trace"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/curvevm/chain"
	"github.com/ava-labs/curvevm/codec"
	"github.com/ava-labs/curvevm/state"
	"github.com/ava-labs/curvevm/tstate"
)

var (
	_ state.Mutable                  = (*InMemoryStore)(nil)
	_ database.KeyValueWriterDeleter = (*InMemoryStore)(nil)
	_ chain.Rules                    = (*Rules)(nil)
)

// InMemoryStore is an in-memory implementation of `state.Mutable`
type InMemoryStore struct {
	Storage map[string][]byte
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		Storage: make(map[string][]byte),
	}
}

func (i *InMemoryStore) GetValue(_ context.Context, key []byte) ([]byte, error) {
	val, ok := i.Storage[string(key)]
	if !ok {
		return nil, database.ErrNotFound
	}
	return val, nil
}

func (i *InMemoryStore) Insert(_ context.Context, key []byte, value []byte) error {
	i.Storage[string(key)] = value
	return nil
}

func (i *InMemoryStore) Remove(_ context.Context, key []byte) error {
	delete(i.Storage, string(key))
	return nil
}

func (i *InMemoryStore) Put(key []byte, value []byte) error {
	return i.Insert(context.Background(), key, value)
}

func (i *InMemoryStore) Delete(key []byte) error {
	return i.Remove(context.Background(), key)
}

// Snapshot copies the current contents of the store.
func (i *InMemoryStore) Snapshot() map[string][]byte {
	s := make(map[string][]byte, len(i.Storage))
	for k, v := range i.Storage {
		s[k] = v
	}
	return s
}

type Rules struct {
	MaxTradeAmount uint64
}

func (r *Rules) GetMaxTradeAmount() uint64 {
	return r.MaxTradeAmount
}

// ActionTest is a single parameterized test. It calls Execute on the action
// with the passed parameters and checks that all assertions pass.
//
// The action runs inside a view scoped to the keys it declares, so an
// undeclared read or write fails the test. Changes reach [State] only if
// the action succeeds.
type ActionTest struct {
	Name string

	Action chain.Action

	Rules   chain.Rules
	Ledgers chain.Ledgers
	State   *InMemoryStore
	Actor   codec.Address

	ExpectedOutputs codec.Typed
	ExpectedErr     error

	Assertion func(context.Context, *testing.T, state.Mutable)
}

// Run executes the [ActionTest] and make sure all assertions pass.
func (test *ActionTest) Run(ctx context.Context, t *testing.T) {
	t.Run(test.Name, func(t *testing.T) {
		require := require.New(t)

		rules := test.Rules
		if rules == nil {
			rules = &Rules{}
		}
		ts := tstate.New(0)
		tsv := ts.NewView(test.Action.StateKeys(test.Actor, test.Ledgers), test.State.Snapshot())
		output, err := test.Action.Execute(ctx, rules, test.Ledgers, tsv, test.Actor)

		require.ErrorIs(err, test.ExpectedErr)
		require.Equal(test.ExpectedOutputs, output)

		if err == nil {
			tsv.Commit()
			require.NoError(ts.WriteTo(ctx, trace.Noop, test.State))
		}
		if test.Assertion != nil {
			test.Assertion(ctx, t, test.State)
		}
	})
}
