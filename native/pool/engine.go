package pool

import (
	"log/slog"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"anchorpool/core/events"
	nativecommon "anchorpool/native/common"
	"anchorpool/observability"
)

const moduleName = "pool"

var pricePrecision = big.NewInt(1_000_000)

const defaultStaleness = 24 * time.Hour

// Engine orchestrates every state transition of the pegged-dollar pool. All
// mutations flow through its methods against the single State it owns; the
// external token ledgers and price feeds are injected collaborators.
type Engine struct {
	state       *State
	poolAddress common.Address
	admin       common.Address
	dollar      DollarLedger
	governance  GovernanceLedger
	emitter     events.Emitter
	pauses      nativecommon.PauseView
	metrics     *observability.PoolMetrics
	logger      *slog.Logger
	tracer      trace.Tracer
	blockHeight uint64
	clock       func() time.Time
}

// NewEngine constructs a pool engine bound to its custody address and the
// governance admin permitted to call the gated setters.
func NewEngine(poolAddr, admin common.Address) *Engine {
	return &Engine{
		poolAddress: poolAddr,
		admin:       admin,
		emitter:     events.NoopEmitter{},
		tracer:      otel.Tracer("native/pool"),
		clock:       time.Now,
	}
}

// SetState wires the engine to its state container.
func (e *Engine) SetState(state *State) {
	if e == nil {
		return
	}
	e.state = state
}

// SetDollarLedger wires the pegged-dollar token ledger.
func (e *Engine) SetDollarLedger(ledger DollarLedger) {
	if e == nil {
		return
	}
	e.dollar = ledger
}

// SetGovernanceLedger wires the governance token ledger.
func (e *Engine) SetGovernanceLedger(ledger GovernanceLedger) {
	if e == nil {
		return
	}
	e.governance = ledger
}

// SetEmitter configures the sink receiving pool events. A nil emitter resets
// to the discarding default.
func (e *Engine) SetEmitter(emitter events.Emitter) {
	if e == nil {
		return
	}
	if emitter == nil {
		emitter = events.NoopEmitter{}
	}
	e.emitter = emitter
}

// SetPauses wires the global circuit breaker consulted before every flow.
func (e *Engine) SetPauses(p nativecommon.PauseView) {
	if e == nil {
		return
	}
	e.pauses = p
}

// SetMetrics wires the prometheus registry recording operation outcomes.
func (e *Engine) SetMetrics(m *observability.PoolMetrics) {
	if e == nil {
		return
	}
	e.metrics = m
}

// SetLogger configures structured logging for flow outcomes.
func (e *Engine) SetLogger(logger *slog.Logger) {
	if e == nil {
		return
	}
	e.logger = logger
}

// SetBlockHeight records the height the environment is executing at. The
// redemption delay and claim timestamps are measured against it.
func (e *Engine) SetBlockHeight(height uint64) {
	if e == nil {
		return
	}
	e.blockHeight = height
}

// BlockHeight returns the currently configured block height.
func (e *Engine) BlockHeight() uint64 {
	if e == nil {
		return 0
	}
	return e.blockHeight
}

// SetClock overrides the wall clock used for feed staleness checks.
func (e *Engine) SetClock(clock func() time.Time) {
	if e == nil || clock == nil {
		return
	}
	e.clock = clock
}

// PoolAddress returns the custody address holding pool collateral.
func (e *Engine) PoolAddress() common.Address {
	if e == nil {
		return common.Address{}
	}
	return e.poolAddress
}

func (e *Engine) emit(event events.Event) {
	if e == nil || e.emitter == nil {
		return
	}
	e.emitter.Emit(event)
}

func (e *Engine) now() time.Time {
	if e == nil || e.clock == nil {
		return time.Now()
	}
	return e.clock()
}

func (e *Engine) ready() error {
	if e == nil || e.state == nil {
		return errNilState
	}
	if e.dollar == nil {
		return errNilDollar
	}
	if e.governance == nil {
		return errNilGovernance
	}
	return nil
}

func (e *Engine) guardAdmin(caller common.Address) error {
	if e == nil || e.state == nil {
		return errNilState
	}
	if caller != e.admin {
		return ErrUnauthorized
	}
	return nil
}

func (e *Engine) collateral(index int) (*CollateralAsset, error) {
	if e == nil || e.state == nil {
		return nil, errNilState
	}
	if index < 0 || index >= len(e.state.Collaterals) {
		return nil, ErrUnknownCollateral
	}
	return e.state.Collaterals[index], nil
}

func (e *Engine) observe(op string, start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	if e.metrics != nil {
		e.metrics.RecordOperation(op, outcome, time.Since(start))
	}
	if e.logger != nil && err != nil {
		e.logger.Debug("pool operation rejected", "op", op, "err", err)
	}
}

// CollateralRatio returns the configured 6-decimal collateral ratio.
func (e *Engine) CollateralRatio() *big.Int {
	if e == nil || e.state == nil || e.state.Params.CollateralRatio == nil {
		return big.NewInt(0)
	}
	return new(big.Int).Set(e.state.Params.CollateralRatio)
}

// Config returns a copy of the protocol-wide parameters.
func (e *Engine) Config() Params {
	if e == nil || e.state == nil {
		return Params{}
	}
	return e.state.Params.Clone()
}

// CollateralCount returns the number of registered collateral assets,
// disabled entries included.
func (e *Engine) CollateralCount() int {
	if e == nil || e.state == nil {
		return 0
	}
	return len(e.state.Collaterals)
}

// CollateralIndex resolves a collateral token address to its registry index.
func (e *Engine) CollateralIndex(addr common.Address) (int, bool) {
	if e == nil || e.state == nil {
		return 0, false
	}
	index, ok := e.state.byAddress[addr]
	return index, ok
}

// CollateralInfo returns a defensive copy of the registry record at index.
func (e *Engine) CollateralInfo(index int) (*CollateralAsset, error) {
	asset, err := e.collateral(index)
	if err != nil {
		return nil, err
	}
	return asset.Clone(), nil
}

// AllSymbols lists the symbols of every registered collateral in index order.
func (e *Engine) AllSymbols() []string {
	if e == nil || e.state == nil {
		return nil
	}
	symbols := make([]string, 0, len(e.state.Collaterals))
	for _, asset := range e.state.Collaterals {
		symbols = append(symbols, asset.Symbol)
	}
	return symbols
}

// PendingRedemption reports the caller-owed balances for an (account,
// collateral) pair.
func (e *Engine) PendingRedemption(account common.Address, index int) (RedemptionClaim, error) {
	if e == nil || e.state == nil {
		return RedemptionClaim{}, errNilState
	}
	if _, err := e.collateral(index); err != nil {
		return RedemptionClaim{}, err
	}
	return RedemptionClaim{
		Collateral:        e.state.pendingCollateral(account, index),
		Governance:        e.state.pendingGovernance(account),
		LastRedeemedBlock: e.state.lastRedeemedBlock[account],
	}, nil
}

// UnclaimedGovernance returns the pool-wide governance total earmarked for
// pending collections.
func (e *Engine) UnclaimedGovernance() *big.Int {
	if e == nil || e.state == nil || e.state.UnclaimedGovernance == nil {
		return big.NewInt(0)
	}
	return new(big.Int).Set(e.state.UnclaimedGovernance)
}
