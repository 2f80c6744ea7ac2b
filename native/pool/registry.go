package pool

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"anchorpool/core/events"
	"anchorpool/native/oracle"
)

// AddCollateral registers a new collateral asset and returns its index. The
// asset starts disabled with zero fees, all pauses cleared, a $1.00 fallback
// price, and a one-day staleness threshold; governance enables it once the
// feed binding is confirmed. The decimal offset to 18 is fixed here and never
// changes afterwards.
func (e *Engine) AddCollateral(caller, asset common.Address, ledger CollateralLedger, feed oracle.PriceFeed, ceiling *big.Int) (int, error) {
	if err := e.guardAdmin(caller); err != nil {
		return 0, err
	}
	if _, exists := e.state.byAddress[asset]; exists {
		return 0, ErrDuplicateCollateral
	}
	decimals, err := ledger.Decimals()
	if err != nil {
		return 0, err
	}
	if decimals > 18 {
		return 0, ErrUnsupportedDecimals
	}
	symbol, err := ledger.Symbol()
	if err != nil {
		return 0, err
	}
	if ceiling == nil {
		ceiling = big.NewInt(0)
	}
	entry := &CollateralAsset{
		Address:         asset,
		Symbol:          symbol,
		Ledger:          ledger,
		Feed:            feed,
		Staleness:       defaultStaleness,
		Price:           new(big.Int).Set(pricePrecision),
		MissingDecimals: 18 - decimals,
		Ceiling:         new(big.Int).Set(ceiling),
		MintingFee:      big.NewInt(0),
		RedemptionFee:   big.NewInt(0),
		Unclaimed:       big.NewInt(0),
	}
	index := len(e.state.Collaterals)
	e.state.Collaterals = append(e.state.Collaterals, entry)
	e.state.byAddress[asset] = index
	e.emit(events.PoolCollateralAdded{
		Index:      index,
		Asset:      asset,
		Symbol:     symbol,
		Ceiling:    new(big.Int).Set(ceiling),
		MissingDec: entry.MissingDecimals,
	})
	return index, nil
}

// ToggleCollateral flips the enablement flag at index.
func (e *Engine) ToggleCollateral(caller common.Address, index int) error {
	if err := e.guardAdmin(caller); err != nil {
		return err
	}
	asset, err := e.collateral(index)
	if err != nil {
		return err
	}
	asset.Enabled = !asset.Enabled
	e.emit(events.PoolCollateralToggled{Index: index, Enabled: asset.Enabled})
	return nil
}

// SetCollateralFeed rebinds the price feed and staleness threshold for the
// collateral identified by its token address.
func (e *Engine) SetCollateralFeed(caller, asset common.Address, feed oracle.PriceFeed, staleness time.Duration) error {
	if err := e.guardAdmin(caller); err != nil {
		return err
	}
	index, ok := e.state.byAddress[asset]
	if !ok {
		return ErrUnknownCollateral
	}
	entry := e.state.Collaterals[index]
	entry.Feed = feed
	entry.Staleness = staleness
	e.emit(events.PoolFeedSet{Feed: "collateral", Index: index, StalenessSeconds: int64(staleness / time.Second)})
	return nil
}

// SetCeiling updates the maximum net deposited collateral for index.
func (e *Engine) SetCeiling(caller common.Address, index int, ceiling *big.Int) error {
	if err := e.guardAdmin(caller); err != nil {
		return err
	}
	asset, err := e.collateral(index)
	if err != nil {
		return err
	}
	if ceiling == nil {
		ceiling = big.NewInt(0)
	}
	asset.Ceiling = new(big.Int).Set(ceiling)
	e.emit(events.PoolCeilingSet{Index: index, Ceiling: new(big.Int).Set(ceiling)})
	return nil
}

// SetFees updates the 6-decimal minting and redemption fees for index.
func (e *Engine) SetFees(caller common.Address, index int, mintingFee, redemptionFee *big.Int) error {
	if err := e.guardAdmin(caller); err != nil {
		return err
	}
	asset, err := e.collateral(index)
	if err != nil {
		return err
	}
	if mintingFee == nil || redemptionFee == nil ||
		mintingFee.Sign() < 0 || redemptionFee.Sign() < 0 ||
		mintingFee.Cmp(pricePrecision) > 0 || redemptionFee.Cmp(pricePrecision) > 0 {
		return ErrFeeOutOfRange
	}
	asset.MintingFee = new(big.Int).Set(mintingFee)
	asset.RedemptionFee = new(big.Int).Set(redemptionFee)
	e.emit(events.PoolFeesSet{
		Index:         index,
		MintingFee:    new(big.Int).Set(mintingFee),
		RedemptionFee: new(big.Int).Set(redemptionFee),
	})
	return nil
}

// TogglePause flips one of the three independent pause flags for index.
func (e *Engine) TogglePause(caller common.Address, index int, kind PauseKind) error {
	if err := e.guardAdmin(caller); err != nil {
		return err
	}
	asset, err := e.collateral(index)
	if err != nil {
		return err
	}
	var paused bool
	switch kind {
	case PauseMint:
		asset.MintPaused = !asset.MintPaused
		paused = asset.MintPaused
	case PauseRedeem:
		asset.RedeemPaused = !asset.RedeemPaused
		paused = asset.RedeemPaused
	case PauseBorrow:
		asset.BorrowPaused = !asset.BorrowPaused
		paused = asset.BorrowPaused
	default:
		return ErrUnknownCollateral
	}
	e.emit(events.PoolPauseToggled{Index: index, Kind: kind.String(), Paused: paused})
	return nil
}

// FreeCollateral reports the collateral at index available for minting
// payouts and AMO borrowing: the held balance minus the aggregate earmarked
// for pending redemption collections. The value saturates at zero; unclaimed
// exceeding the held balance would be an accounting violation upstream and
// must never surface as a negative figure here.
func (e *Engine) FreeCollateral(index int) (*big.Int, error) {
	asset, err := e.collateral(index)
	if err != nil {
		return nil, err
	}
	held, err := asset.Ledger.BalanceOf(e.poolAddress)
	if err != nil {
		return nil, err
	}
	free := new(big.Int).Sub(held, asset.Unclaimed)
	if free.Sign() < 0 {
		return big.NewInt(0), nil
	}
	return free, nil
}
