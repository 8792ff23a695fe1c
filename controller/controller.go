// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package controller

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/atomic"
	"go.uber.org/zap"

	"github.com/ava-labs/curvevm/actions"
	"github.com/ava-labs/curvevm/chain"
	"github.com/ava-labs/curvevm/codec"
	"github.com/ava-labs/curvevm/config"
	"github.com/ava-labs/curvevm/genesis"
	"github.com/ava-labs/curvevm/state"
	"github.com/ava-labs/curvevm/storage"
	"github.com/ava-labs/curvevm/tstate"

	ctrace "github.com/ava-labs/curvevm/trace"
)

type stateDB interface {
	chain.Database
	io.Closer
}

// Controller is the host of the market: it owns the durable store and runs
// every state transition through a [chain.Processor].
type Controller struct {
	log     logging.Logger
	tracer  trace.Tracer
	config  *config.Config
	genesis *genesis.Genesis

	db        stateDB
	processor *chain.Processor
	ledgers   chain.Ledgers

	// Held for reading by every call that touches [db]; Close takes it
	// for writing.
	lock   sync.RWMutex
	closed atomic.Bool
}

// New opens the store named by [cfg] (in memory when no path is set),
// applies [gen] if the store has never seen it, and returns a ready
// [Controller].
func New(
	log logging.Logger,
	registerer prometheus.Registerer,
	cfg *config.Config,
	gen *genesis.Genesis,
) (*Controller, error) {
	c := &Controller{
		log:     log,
		config:  cfg,
		genesis: gen,
		ledgers: chain.Ledgers{
			Value: storage.BalanceLedger{},
			Token: storage.TokenLedger{},
		},
	}
	c.log.Info("initialized config", zap.Any("contents", c.config))
	c.log.Info("loaded genesis", zap.Any("genesis", c.genesis))

	tracer, err := ctrace.New(&cfg.Trace)
	if err != nil {
		return nil, err
	}
	c.tracer = tracer

	if len(cfg.DatabasePath) == 0 {
		c.db = memdb.New()
	} else {
		db, err := storage.New(cfg.Pebble, cfg.DatabasePath, registerer)
		if err != nil {
			_ = tracer.Close()
			return nil, err
		}
		c.db = db
	}

	c.processor, err = chain.NewProcessor(
		log,
		tracer,
		registerer,
		gen.Rules,
		c.ledgers,
		c.db,
		cfg.GetExecutorCores(),
	)
	if err != nil {
		_ = c.shutdown()
		return nil, err
	}
	if err := c.initializeGenesis(context.Background()); err != nil {
		_ = c.shutdown()
		return nil, err
	}
	return c, nil
}

// initializeGenesis credits the genesis allocations exactly once per store.
func (c *Controller) initializeGenesis(ctx context.Context) error {
	marker := storage.GenesisKey()
	has, err := c.db.Has(marker)
	if err != nil {
		return err
	}
	if has {
		c.log.Debug("genesis already applied")
		return nil
	}

	scope := c.genesis.StateKeys(c.ledgers.Value)
	scope.Add(string(marker), state.All)
	ts := tstate.New(len(scope))
	view := ts.NewView(scope, map[string][]byte{})
	if err := c.genesis.InitializeState(ctx, c.tracer, view, c.ledgers.Value); err != nil {
		return fmt.Errorf("%w: unable to set genesis state", err)
	}
	if err := view.Insert(ctx, marker, []byte{1}); err != nil {
		return err
	}
	view.Commit()

	batch := c.db.NewBatch()
	if err := ts.WriteTo(ctx, c.tracer, batch); err != nil {
		return err
	}
	if err := batch.Write(); err != nil {
		return err
	}
	c.log.Info("applied genesis", zap.Int("allocations", len(c.genesis.CustomAllocation)))
	return nil
}

func (c *Controller) Config() *config.Config {
	return c.config
}

func (c *Controller) Genesis() *genesis.Genesis {
	return c.genesis
}

// CreatePool opens a market for [asset] on behalf of [actor].
func (c *Controller) CreatePool(
	ctx context.Context,
	actor codec.Address,
	asset codec.Address,
	basePrice uint64,
	slope uint64,
	metadataURI string,
) (*actions.PoolResult, error) {
	output, err := c.execute(ctx, actor, &actions.CreatePool{
		Asset:       asset,
		BasePrice:   basePrice,
		Slope:       slope,
		MetadataURI: metadataURI,
	})
	if err != nil {
		return nil, err
	}
	result, ok := output.(*actions.PoolResult)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrUnexpectedOutput, output)
	}
	c.log.Info("created pool",
		zap.Stringer("asset", asset),
		zap.Stringer("escrow", result.Escrow),
		zap.Uint64("basePrice", basePrice),
		zap.Uint64("slope", slope),
	)
	return result, nil
}

func (c *Controller) Buy(ctx context.Context, actor codec.Address, asset codec.Address, amount uint64) (*actions.TradeResult, error) {
	return c.trade(ctx, actor, &actions.Buy{Asset: asset, Amount: amount})
}

func (c *Controller) Sell(ctx context.Context, actor codec.Address, asset codec.Address, amount uint64) (*actions.TradeResult, error) {
	return c.trade(ctx, actor, &actions.Sell{Asset: asset, Amount: amount})
}

func (c *Controller) trade(ctx context.Context, actor codec.Address, action chain.Action) (*actions.TradeResult, error) {
	output, err := c.execute(ctx, actor, action)
	if err != nil {
		return nil, err
	}
	result, ok := output.(*actions.TradeResult)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrUnexpectedOutput, output)
	}
	c.log.Debug("trade executed",
		zap.Uint8("type", result.TypeID),
		zap.Stringer("actor", actor),
		zap.Stringer("asset", result.Asset),
		zap.Uint64("amount", result.Amount),
		zap.Uint64("value", result.Value),
		zap.Uint64("supply", result.Supply),
	)
	return result, nil
}

// Fund credits [amount] of value to [to]. It returns the new balance.
func (c *Controller) Fund(ctx context.Context, to codec.Address, amount uint64) (uint64, error) {
	output, err := c.execute(ctx, codec.EmptyAddress, &fund{To: to, Amount: amount})
	if err != nil {
		return 0, err
	}
	result, ok := output.(*FundResult)
	if !ok {
		return 0, fmt.Errorf("%w: %T", ErrUnexpectedOutput, output)
	}
	return result.Balance, nil
}

// ExecuteBatch runs [txs] as one unit of work. See [chain.Processor.ExecuteBatch].
func (c *Controller) ExecuteBatch(ctx context.Context, txs []*chain.Tx) ([]*chain.Result, error) {
	release, err := c.acquire()
	if err != nil {
		return nil, err
	}
	defer release()

	results, err := c.processor.ExecuteBatch(ctx, txs)
	if err != nil {
		c.log.Warn("batch aborted", zap.Int("txs", len(txs)), zap.Error(err))
		return nil, err
	}
	return results, nil
}

func (c *Controller) execute(ctx context.Context, actor codec.Address, action chain.Action) (codec.Typed, error) {
	release, err := c.acquire()
	if err != nil {
		return nil, err
	}
	defer release()

	return c.processor.Execute(ctx, actor, action)
}

// acquire pins the store open until the returned func is called.
func (c *Controller) acquire() (func(), error) {
	c.lock.RLock()
	if c.closed.Load() {
		c.lock.RUnlock()
		return nil, ErrClosed
	}
	return c.lock.RUnlock, nil
}

// GetPool returns the current record for [asset].
func (c *Controller) GetPool(ctx context.Context, asset codec.Address) (*storage.Pool, error) {
	release, err := c.acquire()
	if err != nil {
		return nil, err
	}
	defer release()

	pool, exists, err := storage.GetPool(ctx, c.reader(), asset)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", actions.ErrPoolNotFound, asset)
	}
	return pool, nil
}

func (c *Controller) GetBalance(ctx context.Context, addr codec.Address) (uint64, error) {
	release, err := c.acquire()
	if err != nil {
		return 0, err
	}
	defer release()

	return c.ledgers.Value.GetBalance(ctx, c.reader(), addr)
}

func (c *Controller) GetTokenBalance(ctx context.Context, asset codec.Address, holder codec.Address) (uint64, error) {
	release, err := c.acquire()
	if err != nil {
		return 0, err
	}
	defer release()

	return c.ledgers.Token.GetBalance(ctx, c.reader(), asset, holder)
}

// QuoteBuy returns what buying [amount] of [asset] would cost right now.
func (c *Controller) QuoteBuy(ctx context.Context, asset codec.Address, amount uint64) (*Quote, error) {
	pool, err := c.quotable(ctx, asset, amount)
	if err != nil {
		return nil, err
	}
	curve := pool.Curve()
	cost, newSupply, err := curve.BuyCost(pool.Supply, amount)
	if err != nil {
		return nil, err
	}
	reserve, err := curve.ReserveAt(newSupply)
	if err != nil {
		return nil, err
	}
	spot, err := SpotPrice(curve, newSupply)
	if err != nil {
		return nil, err
	}
	return &Quote{
		Asset:     asset,
		Amount:    amount,
		Value:     cost,
		Supply:    newSupply,
		Reserve:   reserve,
		SpotPrice: spot,
	}, nil
}

// QuoteSell returns what selling [amount] of [asset] would refund right now.
func (c *Controller) QuoteSell(ctx context.Context, asset codec.Address, amount uint64) (*Quote, error) {
	pool, err := c.quotable(ctx, asset, amount)
	if err != nil {
		return nil, err
	}
	curve := pool.Curve()
	refund, newSupply, err := curve.SellRefund(pool.Supply, amount)
	if err != nil {
		return nil, err
	}
	if refund > pool.Reserve {
		return nil, fmt.Errorf("%w: refund=%d reserve=%d", actions.ErrInvariantViolated, refund, pool.Reserve)
	}
	spot, err := SpotPrice(curve, newSupply)
	if err != nil {
		return nil, err
	}
	return &Quote{
		Asset:     asset,
		Amount:    amount,
		Value:     refund,
		Supply:    newSupply,
		Reserve:   pool.Reserve - refund,
		SpotPrice: spot,
	}, nil
}

func (c *Controller) quotable(ctx context.Context, asset codec.Address, amount uint64) (*storage.Pool, error) {
	pool, err := c.GetPool(ctx, asset)
	if err != nil {
		return nil, err
	}
	if limit := c.genesis.Rules.GetMaxTradeAmount(); limit > 0 && amount > limit {
		return nil, fmt.Errorf("%w: amount=%d max=%d", actions.ErrInvalidAmount, amount, limit)
	}
	return pool, nil
}

func (c *Controller) reader() state.Immutable {
	return state.NewReader(c.db)
}

// Close waits for in-flight calls, then releases the store and flushes any
// pending traces. Calls after the first return [ErrClosed].
func (c *Controller) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return ErrClosed
	}
	c.lock.Lock()
	defer c.lock.Unlock()

	c.log.Info("shutting down")
	return c.shutdown()
}

func (c *Controller) shutdown() error {
	errs := wrappers.Errs{}
	if c.db != nil {
		errs.Add(c.db.Close())
	}
	errs.Add(c.tracer.Close())
	return errs.Err
}
