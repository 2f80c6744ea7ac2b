package events

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

const (
	// TypePoolCollateralAdded is emitted when governance registers a new
	// collateral asset with the pool.
	TypePoolCollateralAdded = "pool.collateral.added"
	// TypePoolCollateralToggled is emitted when a collateral asset is
	// enabled or disabled.
	TypePoolCollateralToggled = "pool.collateral.toggled"
	// TypePoolCollateralPriceSet is emitted when a collateral price is
	// refreshed from its feed.
	TypePoolCollateralPriceSet = "pool.collateral.price"
	// TypePoolFeedSet is emitted when a price feed binding changes.
	TypePoolFeedSet = "pool.feed.set"
	// TypePoolCeilingSet is emitted when a collateral ceiling changes.
	TypePoolCeilingSet = "pool.ceiling.set"
	// TypePoolFeesSet is emitted when minting/redemption fees change.
	TypePoolFeesSet = "pool.fees.set"
	// TypePoolPauseToggled is emitted when a per-collateral pause flag flips.
	TypePoolPauseToggled = "pool.pause.toggled"
	// TypePoolCollateralRatioSet is emitted when the collateral ratio changes.
	TypePoolCollateralRatioSet = "pool.ratio.set"
	// TypePoolPriceThresholdsSet is emitted when the mint/redeem price band changes.
	TypePoolPriceThresholdsSet = "pool.thresholds.set"
	// TypePoolRedemptionDelaySet is emitted when the collect delay changes.
	TypePoolRedemptionDelaySet = "pool.delay.set"
	// TypePoolAmoMinterAdded is emitted when a strategy minter is registered.
	TypePoolAmoMinterAdded = "pool.amo.added"
	// TypePoolAmoMinterRemoved is emitted when a strategy minter is removed.
	TypePoolAmoMinterRemoved = "pool.amo.removed"
	// TypePoolDollarMinted is emitted after a successful mint.
	TypePoolDollarMinted = "pool.dollar.minted"
	// TypePoolDollarRedeemed is emitted after a redemption request.
	TypePoolDollarRedeemed = "pool.dollar.redeemed"
	// TypePoolRedemptionCollected is emitted after a redemption payout.
	TypePoolRedemptionCollected = "pool.redemption.collected"
	// TypePoolCollateralBorrowed is emitted when an AMO minter borrows
	// free collateral.
	TypePoolCollateralBorrowed = "pool.collateral.borrowed"
)

// PoolCollateralAdded records registration of a collateral asset.
type PoolCollateralAdded struct {
	Index      int
	Asset      common.Address
	Symbol     string
	Ceiling    *big.Int
	MissingDec uint8
}

func (PoolCollateralAdded) EventType() string { return TypePoolCollateralAdded }

// PoolCollateralToggled records an enablement flip for a collateral asset.
type PoolCollateralToggled struct {
	Index   int
	Enabled bool
}

func (PoolCollateralToggled) EventType() string { return TypePoolCollateralToggled }

// PoolCollateralPriceSet records a refreshed collateral price in 6-decimal
// fixed point.
type PoolCollateralPriceSet struct {
	Index int
	Price *big.Int
}

func (PoolCollateralPriceSet) EventType() string { return TypePoolCollateralPriceSet }

// PoolFeedSet records a price-feed rebinding. Feed identifies the binding
// slot ("collateral", "eth-usd", "stable-usd", "governance-eth-pool",
// "dollar-stable-pool").
type PoolFeedSet struct {
	Feed             string
	Index            int
	StalenessSeconds int64
}

func (PoolFeedSet) EventType() string { return TypePoolFeedSet }

// PoolCeilingSet records a ceiling change for a collateral asset.
type PoolCeilingSet struct {
	Index   int
	Ceiling *big.Int
}

func (PoolCeilingSet) EventType() string { return TypePoolCeilingSet }

// PoolFeesSet records a fee change for a collateral asset.
type PoolFeesSet struct {
	Index         int
	MintingFee    *big.Int
	RedemptionFee *big.Int
}

func (PoolFeesSet) EventType() string { return TypePoolFeesSet }

// PoolPauseToggled records a pause flip for one flow of a collateral asset.
type PoolPauseToggled struct {
	Index  int
	Kind   string
	Paused bool
}

func (PoolPauseToggled) EventType() string { return TypePoolPauseToggled }

// PoolCollateralRatioSet records a collateral ratio change (6-decimal).
type PoolCollateralRatioSet struct {
	Ratio *big.Int
}

func (PoolCollateralRatioSet) EventType() string { return TypePoolCollateralRatioSet }

// PoolPriceThresholdsSet records the mint/redeem price band (6-decimal USD).
type PoolPriceThresholdsSet struct {
	MintThreshold   *big.Int
	RedeemThreshold *big.Int
}

func (PoolPriceThresholdsSet) EventType() string { return TypePoolPriceThresholdsSet }

// PoolRedemptionDelaySet records the block delay applied before Collect.
type PoolRedemptionDelaySet struct {
	Blocks uint64
}

func (PoolRedemptionDelaySet) EventType() string { return TypePoolRedemptionDelaySet }

// PoolAmoMinterAdded records registration of a strategy minter.
type PoolAmoMinterAdded struct {
	Minter common.Address
}

func (PoolAmoMinterAdded) EventType() string { return TypePoolAmoMinterAdded }

// PoolAmoMinterRemoved records removal of a strategy minter.
type PoolAmoMinterRemoved struct {
	Minter common.Address
}

func (PoolAmoMinterRemoved) EventType() string { return TypePoolAmoMinterRemoved }

// PoolDollarMinted records a successful mint.
type PoolDollarMinted struct {
	Account      common.Address
	Index        int
	DollarMinted *big.Int
	CollateralIn *big.Int
	GovernanceIn *big.Int
}

func (PoolDollarMinted) EventType() string { return TypePoolDollarMinted }

// PoolDollarRedeemed records a redemption request entering the pending phase.
type PoolDollarRedeemed struct {
	Account       common.Address
	Index         int
	DollarBurned  *big.Int
	CollateralOut *big.Int
	GovernanceOut *big.Int
}

func (PoolDollarRedeemed) EventType() string { return TypePoolDollarRedeemed }

// PoolRedemptionCollected records the payout of a matured redemption claim.
type PoolRedemptionCollected struct {
	Account    common.Address
	Index      int
	Collateral *big.Int
	Governance *big.Int
}

func (PoolRedemptionCollected) EventType() string { return TypePoolRedemptionCollected }

// PoolCollateralBorrowed records an AMO minter drawing free collateral.
type PoolCollateralBorrowed struct {
	Minter common.Address
	Index  int
	Amount *big.Int
}

func (PoolCollateralBorrowed) EventType() string { return TypePoolCollateralBorrowed }
