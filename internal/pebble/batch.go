// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pebble

import (
	"time"

	"github.com/ava-labs/avalanchego/database"
)

var _ database.Batch = (*batch)(nil)

// batch buffers writes in memory and applies them as a single pebble
// batch on [Write].
type batch struct {
	database.BatchOps

	db *Database
}

func (db *Database) NewBatch() database.Batch {
	return &batch{db: db}
}

func (b *batch) Write() error {
	start := time.Now()
	pb := b.db.db.NewBatch()
	defer pb.Close()

	var puts, deletes int
	for _, op := range b.Ops {
		var err error
		if op.Delete {
			deletes++
			err = pb.Delete(op.Key, nil)
		} else {
			puts++
			err = pb.Set(op.Key, op.Value, nil)
		}
		if err != nil {
			return updateError(err)
		}
	}
	if err := pb.Commit(b.db.sync); err != nil {
		return updateError(err)
	}
	b.db.metrics.recordBatch(puts, deletes, b.Size(), time.Since(start))
	return nil
}

func (b *batch) Inner() database.Batch {
	return b
}
