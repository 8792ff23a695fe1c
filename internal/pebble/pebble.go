// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pebble

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"time"

	"github.com/ava-labs/avalanchego/database"
	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/bloom"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	_ database.KeyValueReaderWriterDeleter = (*Database)(nil)
	_ database.Batcher                     = (*Database)(nil)
)

type Config struct {
	CacheSize                   int64  `json:"cacheSize"`
	BytesPerSync                int    `json:"bytesPerSync"`
	WALBytesPerSync             int    `json:"walBytesPerSync"`
	MemTableStopWritesThreshold int    `json:"memTableStopWritesThreshold"`
	MemTableSize                uint64 `json:"memTableSize"`
	MaxOpenFiles                int    `json:"maxOpenFiles"`
	ConcurrentCompactions       int    `json:"concurrentCompactions"`
	Sync                        bool   `json:"sync"`
}

func NewDefaultConfig() Config {
	return Config{
		CacheSize:                   128 * 1024 * 1024,
		BytesPerSync:                1024 * 1024,
		WALBytesPerSync:             1024 * 1024,
		MemTableStopWritesThreshold: 8,
		MemTableSize:                64 * 1024 * 1024,
		MaxOpenFiles:                4_096,
		ConcurrentCompactions:       runtime.NumCPU(),
		Sync:                        true,
	}
}

// Database persists pool and ledger state. Only point reads and atomic
// batch writes are needed, so iteration is not exposed.
type Database struct {
	db      *pebble.DB
	metrics *metrics
	sync    *pebble.WriteOptions

	closeOnce sync.Once
	closing   chan struct{}
}

func New(file string, cfg Config, registerer prometheus.Registerer) (*Database, error) {
	d := &Database{
		closing: make(chan struct{}),
		sync:    pebble.NoSync,
	}
	if cfg.Sync {
		d.sync = pebble.Sync
	}
	m, err := newMetrics(registerer)
	if err != nil {
		return nil, err
	}
	d.metrics = m

	opts := &pebble.Options{
		Cache:                       pebble.NewCache(cfg.CacheSize),
		BytesPerSync:                cfg.BytesPerSync,
		Comparer:                    pebble.DefaultComparer,
		WALBytesPerSync:             cfg.WALBytesPerSync,
		MemTableStopWritesThreshold: cfg.MemTableStopWritesThreshold,
		MemTableSize:                cfg.MemTableSize,
		MaxOpenFiles:                cfg.MaxOpenFiles,
		MaxConcurrentCompactions:    func() int { return cfg.ConcurrentCompactions },
		Levels:                      make([]pebble.LevelOptions, 7),
	}
	for i := 0; i < len(opts.Levels); i++ {
		l := &opts.Levels[i]
		l.BlockSize = 32 * 1024
		l.IndexBlockSize = 256 * 1024
		l.FilterPolicy = bloom.FilterPolicy(10)
		l.FilterType = pebble.TableFilter
		if i > 0 {
			l.TargetFileSize = opts.Levels[i-1].TargetFileSize * 2
		}
		l.EnsureDefaults()
	}
	opts.Levels[6].FilterPolicy = nil
	opts.EventListener = m.listener()

	db, err := pebble.Open(file, opts)
	if err != nil {
		return nil, err
	}
	d.db = db
	go d.poll()
	return d, nil
}

func (db *Database) Has(key []byte) (bool, error) {
	_, err := db.Get(key)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, database.ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}

func (db *Database) Get(key []byte) ([]byte, error) {
	start := time.Now()
	data, closer, err := db.db.Get(key)
	db.metrics.readLatency.Observe(float64(time.Since(start)))
	if err != nil {
		return nil, updateError(err)
	}
	defer closer.Close()

	ret := make([]byte, len(data))
	copy(ret, data)
	return ret, nil
}

func (db *Database) Put(key []byte, value []byte) error {
	return updateError(db.db.Set(key, value, db.sync))
}

func (db *Database) Delete(key []byte) error {
	return updateError(db.db.Delete(key, db.sync))
}

// Compact compacts every key in [start, limit).
func (db *Database) Compact(start []byte, limit []byte) error {
	return updateError(db.db.Compact(start, limit, true))
}

func (db *Database) HealthCheck(context.Context) (interface{}, error) {
	select {
	case <-db.closing:
		return nil, database.ErrClosed
	default:
		return nil, nil
	}
}

func (db *Database) Close() error {
	err := database.ErrClosed
	db.closeOnce.Do(func() {
		close(db.closing)
		err = updateError(db.db.Close())
	})
	return err
}

func updateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, pebble.ErrNotFound):
		return database.ErrNotFound
	case errors.Is(err, pebble.ErrClosed):
		return database.ErrClosed
	default:
		return err
	}
}
