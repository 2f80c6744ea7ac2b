package pool

import "errors"

// Configuration errors.
var (
	ErrDuplicateCollateral = errors.New("pool: collateral already registered")
	ErrUnknownCollateral   = errors.New("pool: collateral not registered")
	ErrRatioOutOfRange     = errors.New("pool: collateral ratio exceeds precision")
	ErrFeeOutOfRange       = errors.New("pool: fee exceeds precision")
	ErrUnsupportedDecimals = errors.New("pool: collateral decimals exceed 18")
	ErrAmoMinterProbe      = errors.New("pool: amo minter failed balance probe")
)

// Access errors.
var (
	ErrUnauthorized = errors.New("pool: caller is not the pool admin")
	ErrNotAmoMinter = errors.New("pool: caller is not a registered amo minter")
)

// Per-collateral state errors.
var (
	ErrCollateralDisabled = errors.New("pool: collateral disabled")
	ErrMintingPaused      = errors.New("pool: minting paused for collateral")
	ErrRedeemingPaused    = errors.New("pool: redeeming paused for collateral")
	ErrBorrowingPaused    = errors.New("pool: borrowing paused for collateral")
)

// Economic guard errors. The pool refuses flows that would push the dollar
// further away from its peg.
var (
	ErrPriceTooLow  = errors.New("pool: dollar price below mint threshold")
	ErrPriceTooHigh = errors.New("pool: dollar price above redeem threshold")
)

// Slippage errors.
var (
	ErrDollarSlippage     = errors.New("pool: minted dollar below minimum")
	ErrCollateralSlippage = errors.New("pool: collateral amount outside bound")
	ErrGovernanceSlippage = errors.New("pool: governance amount outside bound")
)

// Capacity errors.
var (
	ErrCeilingExceeded            = errors.New("pool: collateral ceiling exceeded")
	ErrInsufficientPoolCollateral = errors.New("pool: insufficient free collateral for redemption")
	ErrInsufficientFreeCollateral = errors.New("pool: insufficient free collateral for borrow")
)

// Timing errors.
var (
	ErrRedemptionTooSoon = errors.New("pool: redemption delay not elapsed")
)

// ErrAccountingUnderflow signals corrupted unclaimed-balance bookkeeping. It
// must never be reachable while the engine is the sole mutator of its state;
// callers should treat it as fatal rather than retry.
var ErrAccountingUnderflow = errors.New("pool: unclaimed accounting underflow")

// Wiring errors.
var (
	errNilState      = errors.New("pool engine: state not configured")
	errNilDollar     = errors.New("pool engine: dollar ledger not configured")
	errNilGovernance = errors.New("pool engine: governance ledger not configured")
	errNilPoolOracle = errors.New("pool engine: amm pool oracle not configured")
	errInvalidAmount = errors.New("pool: amount must be positive")
)
