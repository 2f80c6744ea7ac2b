package pool

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"anchorpool/core/events"
	"anchorpool/native/oracle"
)

// SetCollateralRatio updates the 6-decimal fraction of mint/redeem value that
// must be backed by hard collateral. Values above 1_000_000 are rejected.
func (e *Engine) SetCollateralRatio(caller common.Address, ratio *big.Int) error {
	if err := e.guardAdmin(caller); err != nil {
		return err
	}
	if ratio == nil || ratio.Sign() < 0 || ratio.Cmp(pricePrecision) > 0 {
		return ErrRatioOutOfRange
	}
	e.state.Params.CollateralRatio = new(big.Int).Set(ratio)
	e.emit(events.PoolCollateralRatioSet{Ratio: new(big.Int).Set(ratio)})
	return nil
}

// SetPriceThresholds updates the 6-decimal USD band gating mint and redeem.
func (e *Engine) SetPriceThresholds(caller common.Address, mintThreshold, redeemThreshold *big.Int) error {
	if err := e.guardAdmin(caller); err != nil {
		return err
	}
	if mintThreshold == nil || redeemThreshold == nil ||
		mintThreshold.Sign() <= 0 || redeemThreshold.Sign() <= 0 {
		return errInvalidAmount
	}
	e.state.Params.MintPriceThreshold = new(big.Int).Set(mintThreshold)
	e.state.Params.RedeemPriceThreshold = new(big.Int).Set(redeemThreshold)
	e.emit(events.PoolPriceThresholdsSet{
		MintThreshold:   new(big.Int).Set(mintThreshold),
		RedeemThreshold: new(big.Int).Set(redeemThreshold),
	})
	return nil
}

// SetRedemptionDelayBlocks updates the block count between a redemption
// request and its collection.
func (e *Engine) SetRedemptionDelayBlocks(caller common.Address, blocks uint64) error {
	if err := e.guardAdmin(caller); err != nil {
		return err
	}
	e.state.Params.RedemptionDelayBlocks = blocks
	e.emit(events.PoolRedemptionDelaySet{Blocks: blocks})
	return nil
}

// SetEthUsdFeed rebinds the ETH/USD feed used for the governance price.
func (e *Engine) SetEthUsdFeed(caller common.Address, feed oracle.PriceFeed, staleness time.Duration) error {
	if err := e.guardAdmin(caller); err != nil {
		return err
	}
	e.state.Params.EthUsdFeed = feed
	e.state.Params.EthUsdStaleness = staleness
	e.emit(events.PoolFeedSet{Feed: "eth-usd", StalenessSeconds: int64(staleness / time.Second)})
	return nil
}

// SetStableUsdFeed rebinds the fiat-stable/USD feed used for the dollar price.
func (e *Engine) SetStableUsdFeed(caller common.Address, feed oracle.PriceFeed, staleness time.Duration) error {
	if err := e.guardAdmin(caller); err != nil {
		return err
	}
	e.state.Params.StableUsdFeed = feed
	e.state.Params.StableUsdStaleness = staleness
	e.emit(events.PoolFeedSet{Feed: "stable-usd", StalenessSeconds: int64(staleness / time.Second)})
	return nil
}

// SetGovernanceEthPool rebinds the governance/ETH AMM pool oracle.
func (e *Engine) SetGovernanceEthPool(caller common.Address, pool oracle.PoolOracle) error {
	if err := e.guardAdmin(caller); err != nil {
		return err
	}
	e.state.Params.GovernanceEthPool = pool
	e.emit(events.PoolFeedSet{Feed: "governance-eth-pool"})
	return nil
}

// SetDollarStablePool rebinds the dollar/stable AMM pool oracle.
func (e *Engine) SetDollarStablePool(caller common.Address, pool oracle.PoolOracle) error {
	if err := e.guardAdmin(caller); err != nil {
		return err
	}
	e.state.Params.DollarStablePool = pool
	e.emit(events.PoolFeedSet{Feed: "dollar-stable-pool"})
	return nil
}
