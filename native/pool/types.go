package pool

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"anchorpool/native/oracle"
)

// DollarLedger exposes the mint/burn primitives of the pegged-dollar token.
type DollarLedger interface {
	Mint(to common.Address, amount *big.Int) error
	BurnFrom(from common.Address, amount *big.Int) error
}

// GovernanceLedger exposes the governance-token primitives the pool needs:
// burning the caller's tokens during fractional mints, minting into the
// pool's own custody during redemption, and releasing custody on collection.
type GovernanceLedger interface {
	Mint(to common.Address, amount *big.Int) error
	BurnFrom(from common.Address, amount *big.Int) error
	Transfer(to common.Address, amount *big.Int) error
}

// CollateralLedger exposes the subset of an ERC-20 style token ledger the
// pool interacts with.
type CollateralLedger interface {
	BalanceOf(addr common.Address) (*big.Int, error)
	TransferFrom(from, to common.Address, amount *big.Int) error
	Transfer(to common.Address, amount *big.Int) error
	Decimals() (uint8, error)
	Symbol() (string, error)
}

// AmoMinter is a registered strategy contract permitted to borrow free
// collateral. The bound collateral index is reported by the minter itself and
// re-validated on every borrow.
type AmoMinter interface {
	CollateralIndex() (int, error)
	CollateralDollarBalance() (*big.Int, error)
}

// PauseKind selects one of the three independent per-collateral pause flags.
type PauseKind int

const (
	// PauseMint halts minting against the collateral.
	PauseMint PauseKind = iota
	// PauseRedeem halts redemption requests and collections.
	PauseRedeem
	// PauseBorrow halts AMO borrowing of the collateral.
	PauseBorrow
)

// String renders the pause kind for events and logs.
func (k PauseKind) String() string {
	switch k {
	case PauseMint:
		return "mint"
	case PauseRedeem:
		return "redeem"
	case PauseBorrow:
		return "borrow"
	default:
		return "unknown"
	}
}

// CollateralAsset holds the registry record for one approved collateral
// token. Price is cached in 6-decimal fixed point and refreshed from the
// bound feed on every mint/redeem. Unclaimed aggregates the collateral
// earmarked for pending redemption collections and is excluded from free
// collateral.
type CollateralAsset struct {
	Address         common.Address
	Symbol          string
	Ledger          CollateralLedger
	Feed            oracle.PriceFeed
	Staleness       time.Duration
	Price           *big.Int
	MissingDecimals uint8
	Ceiling         *big.Int
	MintingFee      *big.Int
	RedemptionFee   *big.Int
	MintPaused      bool
	RedeemPaused    bool
	BorrowPaused    bool
	Enabled         bool
	Unclaimed       *big.Int
}

// Clone returns a deep copy of the registry record for defensive reads.
func (c *CollateralAsset) Clone() *CollateralAsset {
	if c == nil {
		return nil
	}
	clone := *c
	if c.Price != nil {
		clone.Price = new(big.Int).Set(c.Price)
	}
	if c.Ceiling != nil {
		clone.Ceiling = new(big.Int).Set(c.Ceiling)
	}
	if c.MintingFee != nil {
		clone.MintingFee = new(big.Int).Set(c.MintingFee)
	}
	if c.RedemptionFee != nil {
		clone.RedemptionFee = new(big.Int).Set(c.RedemptionFee)
	}
	if c.Unclaimed != nil {
		clone.Unclaimed = new(big.Int).Set(c.Unclaimed)
	}
	return &clone
}

// Params groups the protocol-wide configuration: the collateral ratio, the
// peg price band gating mint/redeem, the collect delay, and the price-source
// bindings for the derived dollar and governance quotes.
type Params struct {
	// CollateralRatio is 6-decimal fixed point: 0 is fully algorithmic,
	// 1_000_000 fully collateralised. Invariant: never above 1_000_000.
	CollateralRatio *big.Int
	// MintPriceThreshold is the 6-decimal USD price the dollar must trade
	// at or above for minting to proceed.
	MintPriceThreshold *big.Int
	// RedeemPriceThreshold is the 6-decimal USD price the dollar must
	// trade at or below for redemption to proceed.
	RedeemPriceThreshold *big.Int
	// RedemptionDelayBlocks is the minimum block count between a
	// redemption request and its collection.
	RedemptionDelayBlocks uint64

	StableUsdFeed      oracle.PriceFeed
	StableUsdStaleness time.Duration
	EthUsdFeed         oracle.PriceFeed
	EthUsdStaleness    time.Duration
	DollarStablePool   oracle.PoolOracle
	GovernanceEthPool  oracle.PoolOracle
}

// Clone returns a copy of the parameters. Feed and pool-oracle bindings are
// shared handles; numeric values are deep-copied.
func (p Params) Clone() Params {
	clone := p
	if p.CollateralRatio != nil {
		clone.CollateralRatio = new(big.Int).Set(p.CollateralRatio)
	}
	if p.MintPriceThreshold != nil {
		clone.MintPriceThreshold = new(big.Int).Set(p.MintPriceThreshold)
	}
	if p.RedeemPriceThreshold != nil {
		clone.RedeemPriceThreshold = new(big.Int).Set(p.RedeemPriceThreshold)
	}
	return clone
}

// RedemptionClaim reports the pending balances for an (account, collateral)
// pair together with the block of the account's latest redemption request.
type RedemptionClaim struct {
	Collateral        *big.Int
	Governance        *big.Int
	LastRedeemedBlock uint64
}
