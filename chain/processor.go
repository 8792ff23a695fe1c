// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"context"
	"errors"
	"time"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/ava-labs/curvevm/codec"
	"github.com/ava-labs/curvevm/internal/executor"
	"github.com/ava-labs/curvevm/lockmap"
	"github.com/ava-labs/curvevm/state"
	"github.com/ava-labs/curvevm/tstate"

	ctrace "github.com/ava-labs/curvevm/trace"
)

// Database is the durable store the [Processor] reads declared keys from
// and flushes committed changes into.
type Database interface {
	database.KeyValueReader
	database.Batcher
}

// Tx is a single action submitted by an already authenticated [Actor].
type Tx struct {
	Actor  codec.Address
	Action Action
}

// Result is the outcome of one [Tx] in a batch. [Err] is set, and
// [Output] nil, when the action was rolled back.
type Result struct {
	Output codec.Typed
	Err    error
}

// Processor executes actions atomically against a [Database]. Every action
// runs in its own view over the keys it declares: on error the view is
// rolled back and nothing it touched is written.
type Processor struct {
	log     logging.Logger
	tracer  trace.Tracer
	rules   Rules
	ledgers Ledgers
	db      Database
	metrics *chainMetrics
	locks   *lockmap.Lockmap
	cores   int
}

func NewProcessor(
	log logging.Logger,
	tracer trace.Tracer,
	registerer prometheus.Registerer,
	rules Rules,
	ledgers Ledgers,
	db Database,
	cores int,
) (*Processor, error) {
	m, err := newMetrics(registerer)
	if err != nil {
		return nil, err
	}
	return &Processor{
		log:     log,
		tracer:  tracer,
		rules:   rules,
		ledgers: ledgers,
		db:      db,
		metrics: m,
		locks:   lockmap.New(16),
		cores:   cores,
	}, nil
}

func (p *Processor) Rules() Rules {
	return p.rules
}

func (p *Processor) Ledgers() Ledgers {
	return p.ledgers
}

// Execute runs [action] on behalf of [actor] and persists its changes if
// it succeeds. Every key the action declares is locked for the whole
// read-execute-write cycle, so concurrent calls touching the same pool or
// account are serialized.
func (p *Processor) Execute(ctx context.Context, actor codec.Address, action Action) (codec.Typed, error) {
	if action == nil {
		return nil, ErrMissingAction
	}
	ctx, span := p.tracer.Start(ctx, "Processor.Execute")
	defer span.End()
	span.SetAttributes(ctrace.Action(action.GetTypeID()), ctrace.Actor(actor))

	start := time.Now()
	defer func() {
		p.metrics.executeLatency.Observe(float64(time.Since(start)))
	}()

	scope := action.StateKeys(actor, p.ledgers)
	release := p.locks.LockAll(lockSet(scope))
	defer release()

	storage, err := p.fetch(ctx, scope)
	if err != nil {
		return nil, err
	}
	ts := tstate.New(len(scope))
	output, err := p.run(ctx, ts, storage, scope, actor, action)
	if err != nil {
		return nil, err
	}
	if err := p.write(ctx, ts); err != nil {
		return nil, err
	}
	return output, nil
}

// ExecuteBatch runs [txs] against a single snapshot, ordering actions
// whose declared keys conflict by their position in [txs] and running the
// rest in parallel. A failing action only affects its own [Result]; the
// returned error is reserved for failures of the processor itself.
func (p *Processor) ExecuteBatch(ctx context.Context, txs []*Tx) ([]*Result, error) {
	ctx, span := p.tracer.Start(ctx, "Processor.ExecuteBatch")
	defer span.End()
	span.SetAttributes(attribute.Int("txs", len(txs)))

	start := time.Now()
	defer func() {
		p.metrics.batchLatency.Observe(float64(time.Since(start)))
	}()

	scopes := make([]state.Keys, len(txs))
	all := make(state.Keys, len(txs)*4)
	for i, tx := range txs {
		if tx == nil || tx.Action == nil {
			return nil, ErrMissingAction
		}
		scopes[i] = tx.Action.StateKeys(tx.Actor, p.ledgers)
		for k, perms := range scopes[i] {
			all.Add(k, perms)
		}
	}
	release := p.locks.LockAll(lockSet(all))
	defer release()

	storage, err := p.fetch(ctx, all)
	if err != nil {
		return nil, err
	}

	var (
		ts      = tstate.New(len(all))
		results = make([]*Result, len(txs))
		e       = executor.New(len(txs), p.cores, p.metrics.executorRecorder)
	)
	for i, tx := range txs {
		i, tx := i, tx
		e.Run(scopes[i], func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			output, err := p.run(ctx, ts, storage, scopes[i], tx.Actor, tx.Action)
			results[i] = &Result{Output: output, Err: err}
			return nil
		})
	}
	if err := e.Wait(); err != nil {
		return nil, err
	}
	if err := p.write(ctx, ts); err != nil {
		return nil, err
	}
	return results, nil
}

func (p *Processor) run(
	ctx context.Context,
	ts *tstate.TState,
	storage map[string][]byte,
	scope state.Keys,
	actor codec.Address,
	action Action,
) (codec.Typed, error) {
	tsv := ts.NewView(scope, storage)
	output, err := action.Execute(ctx, p.rules, p.ledgers, tsv, actor)
	p.metrics.recordAction(action.GetTypeID(), err)
	if err != nil {
		tsv.Rollback(ctx, 0)
		p.log.Debug("action rolled back",
			zap.Uint8("type", action.GetTypeID()),
			zap.Stringer("actor", actor),
			zap.Error(err),
		)
		return nil, err
	}
	tsv.Commit()
	return output, nil
}

// fetch loads every declared key that exists in the database.
func (p *Processor) fetch(ctx context.Context, scope state.Keys) (map[string][]byte, error) {
	_, span := p.tracer.Start(ctx, "Processor.fetch")
	defer span.End()

	storage := make(map[string][]byte, len(scope))
	for k := range scope {
		v, err := p.db.Get([]byte(k))
		if errors.Is(err, database.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		storage[k] = v
	}
	return storage, nil
}

func (p *Processor) write(ctx context.Context, ts *tstate.TState) error {
	changes := ts.PendingChanges()
	if changes == 0 {
		return nil
	}
	batch := p.db.NewBatch()
	if err := ts.WriteTo(ctx, p.tracer, batch); err != nil {
		return err
	}
	if err := batch.Write(); err != nil {
		return err
	}
	p.metrics.stateChanges.Add(float64(changes))
	return nil
}

func lockSet(scope state.Keys) map[string]bool {
	s := make(map[string]bool, len(scope))
	for k, perms := range scope {
		s[k] = perms.Writes()
	}
	return s
}
