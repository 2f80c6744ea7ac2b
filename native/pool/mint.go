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

func belowMin(value, min *big.Int) bool {
	return min != nil && value.Cmp(min) < 0
}

func aboveMax(value, max *big.Int) bool {
	return max != nil && value.Cmp(max) > 0
}

func applyFee(amount, fee *big.Int) *big.Int {
	keep := new(big.Int).Sub(pricePrecision, fee)
	out := new(big.Int).Mul(amount, keep)
	return out.Quo(out, pricePrecision)
}

// Mint converts dollarAmount (18-decimal) into the collateral and governance
// inputs required under the current collateral ratio, burns/pulls those from
// the caller, and mints the fee-adjusted dollar amount back. oneToOne forces
// the fully-collateralised branch regardless of the configured ratio.
//
// Minting is refused while the dollar trades below the mint price threshold;
// issuing more supply then would deepen the depeg.
func (e *Engine) Mint(ctx context.Context, caller common.Address, index int, dollarAmount, dollarOutMin, maxCollateralIn, maxGovernanceIn *big.Int, oneToOne bool) (dollarOut, collateralIn, governanceIn *big.Int, err error) {
	_, span := e.tracer.Start(ctx, "pool.mint")
	defer span.End()
	start := time.Now()
	defer func() {
		e.observe("mint", start, err)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}()

	if err = e.ready(); err != nil {
		return nil, nil, nil, err
	}
	if err = nativecommon.Guard(e.pauses, moduleName); err != nil {
		return nil, nil, nil, err
	}
	asset, lookupErr := e.collateral(index)
	if lookupErr != nil {
		err = lookupErr
		return nil, nil, nil, err
	}
	if !asset.Enabled {
		err = ErrCollateralDisabled
		return nil, nil, nil, err
	}
	if asset.MintPaused {
		err = ErrMintingPaused
		return nil, nil, nil, err
	}
	if dollarAmount == nil || dollarAmount.Sign() <= 0 {
		err = errInvalidAmount
		return nil, nil, nil, err
	}

	dollarPrice, priceErr := e.DollarPriceUsd()
	if priceErr != nil {
		err = priceErr
		return nil, nil, nil, err
	}
	if dollarPrice.Cmp(e.state.Params.MintPriceThreshold) < 0 {
		err = ErrPriceTooLow
		return nil, nil, nil, err
	}
	if err = e.UpdateCollateralPrice(index); err != nil {
		return nil, nil, nil, err
	}

	ratio := e.state.Params.CollateralRatio
	collateralIn = big.NewInt(0)
	governanceIn = big.NewInt(0)
	switch {
	case oneToOne || ratio.Cmp(pricePrecision) >= 0:
		collateralIn = dollarInCollateral(asset, dollarAmount)
	case ratio.Sign() == 0:
		governanceIn, err = e.DollarInGovernance(dollarAmount)
		if err != nil {
			return nil, nil, nil, err
		}
	default:
		dollarForCollateral := new(big.Int).Mul(dollarAmount, ratio)
		dollarForCollateral.Quo(dollarForCollateral, pricePrecision)
		dollarForGovernance := new(big.Int).Sub(dollarAmount, dollarForCollateral)
		collateralIn = dollarInCollateral(asset, dollarForCollateral)
		governanceIn, err = e.DollarInGovernance(dollarForGovernance)
		if err != nil {
			return nil, nil, nil, err
		}
	}

	dollarOut = applyFee(dollarAmount, asset.MintingFee)

	if belowMin(dollarOut, dollarOutMin) {
		err = ErrDollarSlippage
		return nil, nil, nil, err
	}
	if aboveMax(collateralIn, maxCollateralIn) {
		err = ErrCollateralSlippage
		return nil, nil, nil, err
	}
	if aboveMax(governanceIn, maxGovernanceIn) {
		err = ErrGovernanceSlippage
		return nil, nil, nil, err
	}
	free, freeErr := e.FreeCollateral(index)
	if freeErr != nil {
		err = freeErr
		return nil, nil, nil, err
	}
	projected := new(big.Int).Add(free, collateralIn)
	if projected.Cmp(asset.Ceiling) > 0 {
		err = ErrCeilingExceeded
		return nil, nil, nil, err
	}

	if governanceIn.Sign() > 0 {
		if err = e.governance.BurnFrom(caller, governanceIn); err != nil {
			return nil, nil, nil, err
		}
	}
	if collateralIn.Sign() > 0 {
		if err = asset.Ledger.TransferFrom(caller, e.poolAddress, collateralIn); err != nil {
			return nil, nil, nil, err
		}
	}
	if err = e.dollar.Mint(caller, dollarOut); err != nil {
		return nil, nil, nil, err
	}

	span.SetAttributes(attribute.Int("collateral.index", index))
	e.emit(events.PoolDollarMinted{
		Account:      caller,
		Index:        index,
		DollarMinted: new(big.Int).Set(dollarOut),
		CollateralIn: new(big.Int).Set(collateralIn),
		GovernanceIn: new(big.Int).Set(governanceIn),
	})
	if e.logger != nil {
		e.logger.Info("pool mint",
			"index", index,
			"dollar_out", dollarOut.String(),
			"collateral_in", collateralIn.String(),
			"governance_in", governanceIn.String(),
		)
	}
	return dollarOut, collateralIn, governanceIn, nil
}
