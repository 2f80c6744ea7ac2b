package pool

import (
	"errors"
	"io"
	"log/slog"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"anchorpool/core/events"
	"anchorpool/observability"
)

var exp18 = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)

func dollars(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), exp18)
}

type mockDollar struct {
	minted map[common.Address]*big.Int
	burned map[common.Address]*big.Int
}

func newMockDollar() *mockDollar {
	return &mockDollar{
		minted: make(map[common.Address]*big.Int),
		burned: make(map[common.Address]*big.Int),
	}
}

func accumulate(m map[common.Address]*big.Int, addr common.Address, amount *big.Int) {
	current := m[addr]
	if current == nil {
		current = big.NewInt(0)
	}
	m[addr] = new(big.Int).Add(current, amount)
}

func (m *mockDollar) Mint(to common.Address, amount *big.Int) error {
	accumulate(m.minted, to, amount)
	return nil
}

func (m *mockDollar) BurnFrom(from common.Address, amount *big.Int) error {
	accumulate(m.burned, from, amount)
	return nil
}

type mockGovernance struct {
	pool     common.Address
	balances map[common.Address]*big.Int
	burned   map[common.Address]*big.Int
}

func newMockGovernance(pool common.Address) *mockGovernance {
	return &mockGovernance{
		pool:     pool,
		balances: make(map[common.Address]*big.Int),
		burned:   make(map[common.Address]*big.Int),
	}
}

func (m *mockGovernance) Mint(to common.Address, amount *big.Int) error {
	accumulate(m.balances, to, amount)
	return nil
}

func (m *mockGovernance) BurnFrom(from common.Address, amount *big.Int) error {
	accumulate(m.burned, from, amount)
	return nil
}

func (m *mockGovernance) Transfer(to common.Address, amount *big.Int) error {
	custody := m.balances[m.pool]
	if custody == nil || custody.Cmp(amount) < 0 {
		return errors.New("mock governance: insufficient custody")
	}
	m.balances[m.pool] = new(big.Int).Sub(custody, amount)
	accumulate(m.balances, to, amount)
	return nil
}

type mockCollateral struct {
	symbol   string
	decimals uint8
	pool     common.Address
	balances map[common.Address]*big.Int
}

func newMockCollateral(symbol string, decimals uint8, pool common.Address) *mockCollateral {
	return &mockCollateral{
		symbol:   symbol,
		decimals: decimals,
		pool:     pool,
		balances: make(map[common.Address]*big.Int),
	}
}

func (m *mockCollateral) setBalance(addr common.Address, amount *big.Int) {
	m.balances[addr] = new(big.Int).Set(amount)
}

func (m *mockCollateral) BalanceOf(addr common.Address) (*big.Int, error) {
	balance := m.balances[addr]
	if balance == nil {
		return big.NewInt(0), nil
	}
	return new(big.Int).Set(balance), nil
}

func (m *mockCollateral) TransferFrom(from, to common.Address, amount *big.Int) error {
	balance := m.balances[from]
	if balance == nil || balance.Cmp(amount) < 0 {
		return errors.New("mock collateral: insufficient balance")
	}
	m.balances[from] = new(big.Int).Sub(balance, amount)
	accumulate(m.balances, to, amount)
	return nil
}

func (m *mockCollateral) Transfer(to common.Address, amount *big.Int) error {
	return m.TransferFrom(m.pool, to, amount)
}

func (m *mockCollateral) Decimals() (uint8, error) { return m.decimals, nil }

func (m *mockCollateral) Symbol() (string, error) { return m.symbol, nil }

type mockFeed struct {
	answer    *big.Int
	updatedAt time.Time
	decimals  uint8
	err       error
}

func (m *mockFeed) LatestQuote() (*big.Int, time.Time, uint8, error) {
	if m.err != nil {
		return nil, time.Time{}, 0, m.err
	}
	return new(big.Int).Set(m.answer), m.updatedAt, m.decimals, nil
}

type mockPoolOracle struct {
	price *big.Int
	err   error
}

func (m *mockPoolOracle) PoolPrice() (*big.Int, error) {
	if m.err != nil {
		return nil, m.err
	}
	return new(big.Int).Set(m.price), nil
}

type mockAmoMinter struct {
	index    int
	indexErr error
	balance  *big.Int
	balErr   error
}

func (m *mockAmoMinter) CollateralIndex() (int, error) {
	return m.index, m.indexErr
}

func (m *mockAmoMinter) CollateralDollarBalance() (*big.Int, error) {
	if m.balErr != nil {
		return nil, m.balErr
	}
	return m.balance, nil
}

type recordingEmitter struct {
	events []events.Event
}

func (r *recordingEmitter) Emit(event events.Event) {
	r.events = append(r.events, event)
}

func (r *recordingEmitter) lastOfType(eventType string) events.Event {
	for i := len(r.events) - 1; i >= 0; i-- {
		if r.events[i].EventType() == eventType {
			return r.events[i]
		}
	}
	return nil
}

type stubPauseView struct {
	modules map[string]bool
}

func (s stubPauseView) IsPaused(module string) bool {
	if s.modules == nil {
		return false
	}
	return s.modules[module]
}

type fixture struct {
	engine     *Engine
	state      *State
	admin      common.Address
	poolAddr   common.Address
	user       common.Address
	dollar     *mockDollar
	governance *mockGovernance
	collateral *mockCollateral
	feed       *mockFeed
	stableFeed *mockFeed
	ethFeed    *mockFeed
	emitter    *recordingEmitter
	now        time.Time
	index      int
}

// newFixture wires an engine with one enabled 18-decimal collateral priced at
// $1.00, a $1.00 dollar quote, and a $2.00 governance quote (ETH at $2000,
// 1000 governance per ETH). The redemption delay is two blocks and the engine
// starts at height 100.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	admin := common.HexToAddress("0x00000000000000000000000000000000000000AD")
	poolAddr := common.HexToAddress("0x0000000000000000000000000000000000000B0B")
	user := common.HexToAddress("0x00000000000000000000000000000000000000CE")
	assetAddr := common.HexToAddress("0x00000000000000000000000000000000000000DA")

	now := time.Unix(1_700_000_000, 0)

	dollar := newMockDollar()
	governance := newMockGovernance(poolAddr)
	collateral := newMockCollateral("DAI", 18, poolAddr)
	collateral.setBalance(user, dollars(1_000_000))

	feed := &mockFeed{answer: big.NewInt(100_000_000), updatedAt: now, decimals: 8}
	stableFeed := &mockFeed{answer: big.NewInt(100_000_000), updatedAt: now, decimals: 8}
	ethFeed := &mockFeed{answer: new(big.Int).Mul(big.NewInt(2000), big.NewInt(100_000_000)), updatedAt: now, decimals: 8}

	emitter := &recordingEmitter{}

	engine := NewEngine(poolAddr, admin)
	state := NewState()
	engine.SetState(state)
	engine.SetDollarLedger(dollar)
	engine.SetGovernanceLedger(governance)
	engine.SetEmitter(emitter)
	engine.SetMetrics(observability.Pool())
	engine.SetLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	engine.SetBlockHeight(100)
	engine.SetClock(func() time.Time { return now })

	state.Params.RedemptionDelayBlocks = 2
	state.Params.StableUsdFeed = stableFeed
	state.Params.StableUsdStaleness = time.Hour
	state.Params.EthUsdFeed = ethFeed
	state.Params.EthUsdStaleness = time.Hour
	state.Params.DollarStablePool = &mockPoolOracle{price: new(big.Int).Set(exp18)}
	state.Params.GovernanceEthPool = &mockPoolOracle{price: new(big.Int).Mul(big.NewInt(1000), exp18)}

	index, err := engine.AddCollateral(admin, assetAddr, collateral, feed, dollars(1_000_000))
	if err != nil {
		t.Fatalf("add collateral: %v", err)
	}
	if err := engine.ToggleCollateral(admin, index); err != nil {
		t.Fatalf("enable collateral: %v", err)
	}

	return &fixture{
		engine:     engine,
		state:      state,
		admin:      admin,
		poolAddr:   poolAddr,
		user:       user,
		dollar:     dollar,
		governance: governance,
		collateral: collateral,
		feed:       feed,
		stableFeed: stableFeed,
		ethFeed:    ethFeed,
		emitter:    emitter,
		now:        now,
		index:      index,
	}
}

func (f *fixture) setRatio(t *testing.T, ratio int64) {
	t.Helper()
	if err := f.engine.SetCollateralRatio(f.admin, big.NewInt(ratio)); err != nil {
		t.Fatalf("set ratio: %v", err)
	}
}
