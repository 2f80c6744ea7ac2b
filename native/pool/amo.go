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

// AddAmoMinter registers a strategy minter. The minter must answer a balance
// probe with a non-negative collateral-denominated value; the probe is a
// liveness check, the reported figure is otherwise unused.
func (e *Engine) AddAmoMinter(caller, minterAddr common.Address, minter AmoMinter) error {
	if err := e.guardAdmin(caller); err != nil {
		return err
	}
	if minter == nil {
		return ErrAmoMinterProbe
	}
	balance, err := minter.CollateralDollarBalance()
	if err != nil || balance == nil || balance.Sign() < 0 {
		return ErrAmoMinterProbe
	}
	e.state.amoMinters[minterAddr] = minter
	e.emit(events.PoolAmoMinterAdded{Minter: minterAddr})
	return nil
}

// RemoveAmoMinter deregisters a strategy minter.
func (e *Engine) RemoveAmoMinter(caller, minterAddr common.Address) error {
	if err := e.guardAdmin(caller); err != nil {
		return err
	}
	if _, ok := e.state.amoMinters[minterAddr]; !ok {
		return ErrNotAmoMinter
	}
	delete(e.state.amoMinters, minterAddr)
	e.emit(events.PoolAmoMinterRemoved{Minter: minterAddr})
	return nil
}

// IsAmoMinter reports whether addr is a registered strategy minter.
func (e *Engine) IsAmoMinter(addr common.Address) bool {
	if e == nil || e.state == nil {
		return false
	}
	_, ok := e.state.amoMinters[addr]
	return ok
}

// Borrow transfers free collateral to the calling strategy minter. The bound
// collateral index is re-derived from the minter on every call so a minter
// that migrated its collateral assignment without re-registration cannot draw
// against a stale binding. Borrowing never dips into collateral earmarked for
// pending redemptions. No loan balance is tracked here; the minter reports
// its own holdings.
func (e *Engine) Borrow(ctx context.Context, caller common.Address, collateralAmount *big.Int) (err error) {
	_, span := e.tracer.Start(ctx, "pool.borrow")
	defer span.End()
	start := time.Now()
	defer func() {
		e.observe("borrow", start, err)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}()

	if e == nil || e.state == nil {
		err = errNilState
		return err
	}
	if err = nativecommon.Guard(e.pauses, moduleName); err != nil {
		return err
	}
	minter, ok := e.state.amoMinters[caller]
	if !ok {
		err = ErrNotAmoMinter
		return err
	}
	if collateralAmount == nil || collateralAmount.Sign() <= 0 {
		err = errInvalidAmount
		return err
	}
	index, indexErr := minter.CollateralIndex()
	if indexErr != nil {
		err = indexErr
		return err
	}
	asset, lookupErr := e.collateral(index)
	if lookupErr != nil {
		err = lookupErr
		return err
	}
	if asset.BorrowPaused {
		err = ErrBorrowingPaused
		return err
	}
	if !asset.Enabled {
		err = ErrCollateralDisabled
		return err
	}
	free, freeErr := e.FreeCollateral(index)
	if freeErr != nil {
		err = freeErr
		return err
	}
	if collateralAmount.Cmp(free) > 0 {
		err = ErrInsufficientFreeCollateral
		return err
	}
	if err = asset.Ledger.Transfer(caller, collateralAmount); err != nil {
		return err
	}

	span.SetAttributes(attribute.Int("collateral.index", index))
	e.emit(events.PoolCollateralBorrowed{
		Minter: caller,
		Index:  index,
		Amount: new(big.Int).Set(collateralAmount),
	})
	if e.logger != nil {
		e.logger.Info("pool borrow", "index", index, "amount", collateralAmount.String())
	}
	return nil
}
