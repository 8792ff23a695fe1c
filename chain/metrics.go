// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"strconv"

	"github.com/ava-labs/avalanchego/utils/metric"
	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ava-labs/curvevm/internal/executor"
)

const namespace = "curvevm_chain"

type chainMetrics struct {
	actionsExecuted *prometheus.CounterVec
	actionsFailed   *prometheus.CounterVec

	stateChanges prometheus.Counter

	executeLatency metric.Averager
	batchLatency   metric.Averager

	executorBlocked    prometheus.Counter
	executorExecutable prometheus.Counter

	executorRecorder executor.Metrics
}

type executorMetrics struct {
	blocked    prometheus.Counter
	executable prometheus.Counter
}

func (em *executorMetrics) RecordBlocked() {
	em.blocked.Inc()
}

func (em *executorMetrics) RecordExecutable() {
	em.executable.Inc()
}

func newMetrics(r prometheus.Registerer) (*chainMetrics, error) {
	executeLatency, err := metric.NewAverager(
		"",
		namespace+"_execute",
		"time spent executing a single action",
		r,
	)
	if err != nil {
		return nil, err
	}
	batchLatency, err := metric.NewAverager(
		"",
		namespace+"_execute_batch",
		"time spent executing a batch of actions",
		r,
	)
	if err != nil {
		return nil, err
	}

	m := &chainMetrics{
		actionsExecuted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "actions_executed",
			Help:      "number of actions committed",
		}, []string{"action"}),
		actionsFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "actions_failed",
			Help:      "number of actions rolled back",
		}, []string{"action"}),
		stateChanges: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "state_changes",
			Help:      "number of keys written to the database",
		}),
		executeLatency: executeLatency,
		batchLatency:   batchLatency,
		executorBlocked: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "executor_blocked",
			Help:      "batched actions that waited on a conflicting action",
		}),
		executorExecutable: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "executor_executable",
			Help:      "batched actions that could run immediately",
		}),
	}
	m.executorRecorder = &executorMetrics{blocked: m.executorBlocked, executable: m.executorExecutable}

	errs := wrappers.Errs{}
	errs.Add(
		r.Register(m.actionsExecuted),
		r.Register(m.actionsFailed),
		r.Register(m.stateChanges),
		r.Register(m.executorBlocked),
		r.Register(m.executorExecutable),
	)
	return m, errs.Err
}

func (m *chainMetrics) recordAction(typeID uint8, err error) {
	label := strconv.Itoa(int(typeID))
	if err != nil {
		m.actionsFailed.WithLabelValues(label).Inc()
		return
	}
	m.actionsExecuted.WithLabelValues(label).Inc()
}
