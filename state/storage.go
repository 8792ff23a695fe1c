// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"context"

	"github.com/ava-labs/avalanchego/database"
)

var _ Immutable = (*dbReader)(nil)

type dbReader struct {
	db database.KeyValueReader
}

// NewReader serves committed records straight from [db]. Reads are not
// isolated from concurrent batch writes.
func NewReader(db database.KeyValueReader) Immutable {
	return &dbReader{db: db}
}

func (r *dbReader) GetValue(_ context.Context, key []byte) ([]byte, error) {
	return r.db.Get(key)
}
