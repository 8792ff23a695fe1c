// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pebble

import (
	"time"

	"github.com/ava-labs/avalanchego/utils/metric"
	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/cockroachdb/pebble"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace    = "curvevm_statedb"
	pollInterval = 10 * time.Second
)

type metrics struct {
	readLatency  metric.Averager
	writeLatency metric.Averager
	stall        metric.Averager
	stallStart   time.Time

	opsWritten   *prometheus.CounterVec
	bytesWritten prometheus.Counter

	compactions       *prometheus.CounterVec
	activeCompactions prometheus.Gauge

	// sampled from pebble every [pollInterval]
	tombstones   prometheus.Gauge
	obsoleteSize *prometheus.GaugeVec
}

func newMetrics(r prometheus.Registerer) (*metrics, error) {
	m := &metrics{
		opsWritten: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ops_written",
			Help:      "state changes flushed to disk",
		}, []string{"op"}),
		bytesWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bytes_written",
			Help:      "key and value bytes flushed to disk",
		}),
		compactions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "compactions",
			Help:      "compactions started, by input level",
		}, []string{"level"}),
		activeCompactions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_compactions",
			Help:      "compactions in progress",
		}),
		tombstones: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "tombstones",
			Help:      "approximate number of deleted keys awaiting compaction",
		}),
		obsoleteSize: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "obsolete_bytes",
			Help:      "bytes no longer referenced by the store",
		}, []string{"kind"}),
	}

	var err error
	m.readLatency, err = metric.NewAverager("", namespace+"_read_latency", "time spent in point reads", r)
	if err != nil {
		return nil, err
	}
	m.writeLatency, err = metric.NewAverager("", namespace+"_write_latency", "time spent committing a batch", r)
	if err != nil {
		return nil, err
	}
	m.stall, err = metric.NewAverager("", namespace+"_write_stall", "time writes were stalled by compaction", r)
	if err != nil {
		return nil, err
	}

	errs := wrappers.Errs{}
	errs.Add(
		r.Register(m.opsWritten),
		r.Register(m.bytesWritten),
		r.Register(m.compactions),
		r.Register(m.activeCompactions),
		r.Register(m.tombstones),
		r.Register(m.obsoleteSize),
	)
	return m, errs.Err
}

func (m *metrics) listener() *pebble.EventListener {
	return &pebble.EventListener{
		CompactionBegin: func(info pebble.CompactionInfo) {
			m.activeCompactions.Inc()
			level := "other"
			if len(info.Input) > 0 && info.Input[0].Level == 0 {
				level = "l0"
			}
			m.compactions.WithLabelValues(level).Inc()
		},
		CompactionEnd: func(pebble.CompactionInfo) {
			m.activeCompactions.Dec()
		},
		WriteStallBegin: func(pebble.WriteStallBeginInfo) {
			m.stallStart = time.Now()
		},
		WriteStallEnd: func() {
			m.stall.Observe(float64(time.Since(m.stallStart)))
		},
	}
}

func (m *metrics) recordBatch(puts, deletes, size int, took time.Duration) {
	m.opsWritten.WithLabelValues("put").Add(float64(puts))
	m.opsWritten.WithLabelValues("delete").Add(float64(deletes))
	m.bytesWritten.Add(float64(size))
	m.writeLatency.Observe(float64(took))
}

func (db *Database) poll() {
	t := time.NewTicker(pollInterval)
	defer t.Stop()

	for {
		select {
		case <-t.C:
			stats := db.db.Metrics()
			db.metrics.tombstones.Set(float64(stats.Keys.TombstoneCount))
			db.metrics.obsoleteSize.WithLabelValues("table").Set(float64(stats.Table.ObsoleteSize))
			db.metrics.obsoleteSize.WithLabelValues("wal").Set(float64(stats.WAL.ObsoletePhysicalSize))
		case <-db.closing:
			return
		}
	}
}
