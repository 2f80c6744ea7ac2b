package pool

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"anchorpool/core/events"
	nativecommon "anchorpool/native/common"
)

// Redeem burns dollarAmount of pegged dollar from the caller and records the
// collateral and governance owed under the mirrored ratio split. The payout
// is not transferred here: it enters the account's pending claim and becomes
// collectable only after the redemption delay, so a price manipulated inside
// a single atomic transaction cannot be redeemed against. A second request
// while a claim is outstanding adds to the pending balances and resets the
// delay clock.
//
// Redemption is refused while the dollar trades above the redeem price
// threshold; retiring supply then would deepen the opposite depeg.
func (e *Engine) Redeem(ctx context.Context, caller common.Address, index int, dollarAmount, governanceOutMin, collateralOutMin *big.Int) (collateralOut, governanceOut *big.Int, err error) {
	_, span := e.tracer.Start(ctx, "pool.redeem")
	defer span.End()
	start := time.Now()
	defer func() {
		e.observe("redeem", start, err)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}()

	if err = e.ready(); err != nil {
		return nil, nil, err
	}
	if err = nativecommon.Guard(e.pauses, moduleName); err != nil {
		return nil, nil, err
	}
	asset, lookupErr := e.collateral(index)
	if lookupErr != nil {
		err = lookupErr
		return nil, nil, err
	}
	if !asset.Enabled {
		err = ErrCollateralDisabled
		return nil, nil, err
	}
	if asset.RedeemPaused {
		err = ErrRedeemingPaused
		return nil, nil, err
	}
	if dollarAmount == nil || dollarAmount.Sign() <= 0 {
		err = errInvalidAmount
		return nil, nil, err
	}

	dollarPrice, priceErr := e.DollarPriceUsd()
	if priceErr != nil {
		err = priceErr
		return nil, nil, err
	}
	if dollarPrice.Cmp(e.state.Params.RedeemPriceThreshold) > 0 {
		err = ErrPriceTooHigh
		return nil, nil, err
	}
	if err = e.UpdateCollateralPrice(index); err != nil {
		return nil, nil, err
	}

	dollarAfterFee := applyFee(dollarAmount, asset.RedemptionFee)

	ratio := e.state.Params.CollateralRatio
	collateralOut = big.NewInt(0)
	governanceOut = big.NewInt(0)
	switch {
	case ratio.Cmp(pricePrecision) >= 0:
		collateralOut = dollarInCollateral(asset, dollarAfterFee)
	case ratio.Sign() == 0:
		governanceOut, err = e.DollarInGovernance(dollarAfterFee)
		if err != nil {
			return nil, nil, err
		}
	default:
		// The collateral leg scales the already-converted full-value
		// amount by the ratio; the governance leg converts the ratio
		// remainder of the dollar value. These legs round differently
		// from the mint-side split and are kept exactly as is.
		fullCollateral := dollarInCollateral(asset, dollarAfterFee)
		collateralOut = new(big.Int).Mul(fullCollateral, ratio)
		collateralOut.Quo(collateralOut, pricePrecision)

		collateralValue := new(big.Int).Mul(dollarAfterFee, ratio)
		collateralValue.Quo(collateralValue, pricePrecision)
		governanceValue := new(big.Int).Sub(dollarAfterFee, collateralValue)
		governanceOut, err = e.DollarInGovernance(governanceValue)
		if err != nil {
			return nil, nil, err
		}
	}

	free, freeErr := e.FreeCollateral(index)
	if freeErr != nil {
		err = freeErr
		return nil, nil, err
	}
	if collateralOut.Cmp(free) > 0 {
		err = ErrInsufficientPoolCollateral
		return nil, nil, err
	}
	if belowMin(collateralOut, collateralOutMin) {
		err = ErrCollateralSlippage
		return nil, nil, err
	}
	if belowMin(governanceOut, governanceOutMin) {
		err = ErrGovernanceSlippage
		return nil, nil, err
	}

	// Caller-owed obligations are committed before any external transfer
	// so a hostile transfer target cannot re-enter against half-updated
	// balances.
	e.state.addPendingCollateral(caller, index, collateralOut)
	asset.Unclaimed = new(big.Int).Add(asset.Unclaimed, collateralOut)
	e.state.addPendingGovernance(caller, governanceOut)
	e.state.UnclaimedGovernance = new(big.Int).Add(e.state.UnclaimedGovernance, governanceOut)
	e.state.lastRedeemedBlock[caller] = e.blockHeight

	if err = e.dollar.BurnFrom(caller, dollarAmount); err != nil {
		return nil, nil, err
	}
	if governanceOut.Sign() > 0 {
		if err = e.governance.Mint(e.poolAddress, governanceOut); err != nil {
			return nil, nil, err
		}
	}

	span.SetAttributes(attribute.Int("collateral.index", index))
	e.emit(events.PoolDollarRedeemed{
		Account:       caller,
		Index:         index,
		DollarBurned:  new(big.Int).Set(dollarAmount),
		CollateralOut: new(big.Int).Set(collateralOut),
		GovernanceOut: new(big.Int).Set(governanceOut),
	})
	if e.logger != nil {
		e.logger.Info("pool redeem",
			"index", index,
			"dollar_burned", dollarAmount.String(),
			"collateral_out", collateralOut.String(),
			"governance_out", governanceOut.String(),
		)
	}
	return collateralOut, governanceOut, nil
}

// Collect pays out the caller's matured redemption claim for index. It is
// deliberately idempotent: with nothing pending it transfers zero of each
// asset and still succeeds, so callers can retry without tracking state.
func (e *Engine) Collect(ctx context.Context, caller common.Address, index int) (governanceAmount, collateralAmount *big.Int, err error) {
	_, span := e.tracer.Start(ctx, "pool.collect")
	defer span.End()
	start := time.Now()
	defer func() {
		e.observe("collect", start, err)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}()

	if err = e.ready(); err != nil {
		return nil, nil, err
	}
	if err = nativecommon.Guard(e.pauses, moduleName); err != nil {
		return nil, nil, err
	}
	asset, lookupErr := e.collateral(index)
	if lookupErr != nil {
		err = lookupErr
		return nil, nil, err
	}
	if asset.RedeemPaused {
		err = ErrRedeemingPaused
		return nil, nil, err
	}
	if e.blockHeight <= e.state.lastRedeemedBlock[caller]+e.state.Params.RedemptionDelayBlocks {
		err = ErrRedemptionTooSoon
		return nil, nil, err
	}

	governanceAmount = big.NewInt(0)
	collateralAmount = big.NewInt(0)

	if pending := e.state.pendingGovernance(caller); pending.Sign() > 0 {
		if e.state.UnclaimedGovernance.Cmp(pending) < 0 {
			err = ErrAccountingUnderflow
			return nil, nil, err
		}
		governanceAmount = e.state.takePendingGovernance(caller)
		e.state.UnclaimedGovernance = new(big.Int).Sub(e.state.UnclaimedGovernance, governanceAmount)
		if err = e.governance.Transfer(caller, governanceAmount); err != nil {
			return nil, nil, err
		}
	}
	if pending := e.state.pendingCollateral(caller, index); pending.Sign() > 0 {
		if asset.Unclaimed.Cmp(pending) < 0 {
			err = ErrAccountingUnderflow
			return nil, nil, err
		}
		collateralAmount = e.state.takePendingCollateral(caller, index)
		asset.Unclaimed = new(big.Int).Sub(asset.Unclaimed, collateralAmount)
		if err = asset.Ledger.Transfer(caller, collateralAmount); err != nil {
			return nil, nil, err
		}
	}

	span.SetAttributes(attribute.Int("collateral.index", index))
	e.emit(events.PoolRedemptionCollected{
		Account:    caller,
		Index:      index,
		Collateral: new(big.Int).Set(collateralAmount),
		Governance: new(big.Int).Set(governanceAmount),
	})
	return governanceAmount, collateralAmount, nil
}
