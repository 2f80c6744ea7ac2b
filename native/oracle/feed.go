package oracle

import (
	"errors"
	"math/big"
	"time"
)

// PricePrecision is the fixed-point scale shared by every validated quote:
// 1_000_000 represents $1.00.
var PricePrecision = big.NewInt(1_000_000)

var (
	// ErrInvalidPrice indicates the upstream feed reported a non-positive
	// answer.
	ErrInvalidPrice = errors.New("oracle: non-positive price")
	// ErrStalePrice indicates the quote is older than the configured
	// staleness threshold.
	ErrStalePrice = errors.New("oracle: stale price")

	errNilFeed = errors.New("oracle: feed not configured")
)

// PriceFeed exposes the latest quote from an external price source together
// with its update timestamp and the native decimal count of the answer.
type PriceFeed interface {
	LatestQuote() (answer *big.Int, updatedAt time.Time, decimals uint8, err error)
}

// PoolOracle exposes an 18-decimal spot/TWAP-style quote from an AMM pool.
type PoolOracle interface {
	PoolPrice() (*big.Int, error)
}

// FetchValidatedPrice pulls the latest quote from the feed and normalises it
// to 6-decimal fixed point. The quote is rejected when the answer is not
// strictly positive or when its age meets or exceeds the staleness threshold
// relative to now.
func FetchValidatedPrice(feed PriceFeed, staleness time.Duration, now time.Time) (*big.Int, error) {
	if feed == nil {
		return nil, errNilFeed
	}
	answer, updatedAt, decimals, err := feed.LatestQuote()
	if err != nil {
		return nil, err
	}
	if answer == nil || answer.Sign() <= 0 {
		return nil, ErrInvalidPrice
	}
	if staleness > 0 && now.Sub(updatedAt) >= staleness {
		return nil, ErrStalePrice
	}
	scaled := new(big.Int).Mul(answer, PricePrecision)
	divisor := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	return scaled.Quo(scaled, divisor), nil
}
