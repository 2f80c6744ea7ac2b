package pool

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"anchorpool/config"
)

// ApplyConfig pushes a validated configuration file through the gated
// setters: the pool-wide parameters first, then the per-collateral ceilings,
// fees, and staleness thresholds matched by token address. Collateral entries
// naming an unregistered address are rejected; registration itself stays a
// separate governance action because it needs live ledger and feed handles.
func (e *Engine) ApplyConfig(caller common.Address, cfg *config.Pool) error {
	if err := e.guardAdmin(caller); err != nil {
		return err
	}
	if cfg == nil {
		return errNilState
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := e.SetCollateralRatio(caller, new(big.Int).SetUint64(cfg.CollateralRatioPpm)); err != nil {
		return err
	}
	mintThreshold := new(big.Int).SetUint64(cfg.MintPriceThresholdPpm)
	redeemThreshold := new(big.Int).SetUint64(cfg.RedeemPriceThresholdPpm)
	if err := e.SetPriceThresholds(caller, mintThreshold, redeemThreshold); err != nil {
		return err
	}
	if err := e.SetRedemptionDelayBlocks(caller, cfg.RedemptionDelayBlocks); err != nil {
		return err
	}
	for _, entry := range cfg.Collateral {
		index, ok := e.CollateralIndex(common.HexToAddress(entry.Address))
		if !ok {
			return ErrUnknownCollateral
		}
		ceiling, err := entry.CeilingAmount()
		if err != nil {
			return err
		}
		if err := e.SetCeiling(caller, index, ceiling); err != nil {
			return err
		}
		mintingFee := new(big.Int).SetUint64(entry.MintingFeePpm)
		redemptionFee := new(big.Int).SetUint64(entry.RedemptionFeePpm)
		if err := e.SetFees(caller, index, mintingFee, redemptionFee); err != nil {
			return err
		}
		e.state.Collaterals[index].Staleness = time.Duration(entry.StalenessSeconds) * time.Second
	}
	return nil
}
