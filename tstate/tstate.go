// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package tstate

import (
	"context"
	"sync"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/maybe"
)

// TState accumulates the committed changes of every [TStateView] created
// from it. Nothing reaches the underlying database until [TState.WriteTo].
type TState struct {
	l           sync.RWMutex
	ops         int
	changedKeys map[string]maybe.Maybe[[]byte]
}

// New returns a new instance of TState.
//
// [changedSize] is an estimate of the number of keys that will be changed.
func New(changedSize int) *TState {
	return &TState{
		changedKeys: make(map[string]maybe.Maybe[[]byte], changedSize),
	}
}

func (ts *TState) getChangedValue(_ context.Context, key string) ([]byte, bool, bool) {
	ts.l.RLock()
	defer ts.l.RUnlock()

	if v, ok := ts.changedKeys[key]; ok {
		if v.IsNothing() {
			return nil, true, false
		}
		return v.Value(), true, true
	}
	return nil, false, false
}

// PendingChanges returns the number of keys modified by committed views.
func (ts *TState) PendingChanges() int {
	ts.l.RLock()
	defer ts.l.RUnlock()

	return len(ts.changedKeys)
}

// OpIndex returns the number of operations committed to [TState].
func (ts *TState) OpIndex() int {
	ts.l.RLock()
	defer ts.l.RUnlock()

	return ts.ops
}

// WriteTo flushes every change into [w] (typically a database batch).
//
// Once [WriteTo] is called, [TState] should not be used again.
func (ts *TState) WriteTo(
	ctx context.Context,
	t trace.Tracer, //nolint:interfacer
	w database.KeyValueWriterDeleter,
) error {
	_, span := t.Start(ctx, "TState.WriteTo")
	defer span.End()

	ts.l.Lock()
	defer ts.l.Unlock()

	for key, value := range ts.changedKeys {
		if value.IsNothing() {
			if err := w.Delete([]byte(key)); err != nil {
				return err
			}
			continue
		}
		if err := w.Put([]byte(key), value.Value()); err != nil {
			return err
		}
	}
	return nil
}
