package pool

import (
	"math/big"
	"time"

	"anchorpool/core/events"
	"anchorpool/native/oracle"
)

// poolQuoteScale is the 18-decimal scale of AMM pool-oracle quotes.
var poolQuoteScale = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)

func (e *Engine) fetchFeed(name string, feed oracle.PriceFeed, staleness time.Duration) (*big.Int, error) {
	price, err := oracle.FetchValidatedPrice(feed, staleness, e.now())
	if err != nil {
		if e.metrics != nil {
			e.metrics.RecordOracleFailure(name)
		}
		return nil, err
	}
	return price, nil
}

// DollarPriceUsd derives the pegged dollar's USD price in 6-decimal fixed
// point: the stable/USD feed quote multiplied by the dollar-per-stable AMM
// pool quote.
func (e *Engine) DollarPriceUsd() (*big.Int, error) {
	if e == nil || e.state == nil {
		return nil, errNilState
	}
	params := &e.state.Params
	stableUsd, err := e.fetchFeed("stable-usd", params.StableUsdFeed, params.StableUsdStaleness)
	if err != nil {
		return nil, err
	}
	if params.DollarStablePool == nil {
		return nil, errNilPoolOracle
	}
	quote, err := params.DollarStablePool.PoolPrice()
	if err != nil {
		return nil, err
	}
	if quote == nil || quote.Sign() <= 0 {
		return nil, oracle.ErrInvalidPrice
	}
	price := new(big.Int).Mul(stableUsd, quote)
	return price.Quo(price, poolQuoteScale), nil
}

// GovernancePriceUsd derives the governance token's USD price in 6-decimal
// fixed point. The governance/ETH pool oracle reports ETH priced in
// governance terms, so the quote is inverted before scaling by ETH/USD.
func (e *Engine) GovernancePriceUsd() (*big.Int, error) {
	if e == nil || e.state == nil {
		return nil, errNilState
	}
	params := &e.state.Params
	ethUsd, err := e.fetchFeed("eth-usd", params.EthUsdFeed, params.EthUsdStaleness)
	if err != nil {
		return nil, err
	}
	if params.GovernanceEthPool == nil {
		return nil, errNilPoolOracle
	}
	quote, err := params.GovernanceEthPool.PoolPrice()
	if err != nil {
		return nil, err
	}
	if quote == nil || quote.Sign() <= 0 {
		return nil, oracle.ErrInvalidPrice
	}
	price := new(big.Int).Mul(ethUsd, poolQuoteScale)
	return price.Quo(price, quote), nil
}

// UpdateCollateralPrice refreshes the cached price for index from its bound
// feed. Mint and redeem call this before computing amounts so every flow
// settles against the freshest validated quote.
func (e *Engine) UpdateCollateralPrice(index int) error {
	asset, err := e.collateral(index)
	if err != nil {
		return err
	}
	price, err := e.fetchFeed(asset.Symbol, asset.Feed, asset.Staleness)
	if err != nil {
		return err
	}
	asset.Price = price
	e.emit(events.PoolCollateralPriceSet{Index: index, Price: new(big.Int).Set(price)})
	return nil
}

// DollarInCollateral converts an 18-decimal dollar amount into the collateral
// amount of equal value at the cached price, expressed in the asset's native
// decimals.
func (e *Engine) DollarInCollateral(index int, dollarAmount *big.Int) (*big.Int, error) {
	asset, err := e.collateral(index)
	if err != nil {
		return nil, err
	}
	if dollarAmount == nil || dollarAmount.Sign() < 0 {
		return nil, errInvalidAmount
	}
	return dollarInCollateral(asset, dollarAmount), nil
}

// DollarInGovernance converts an 18-decimal dollar amount into governance
// tokens of equal value at the current derived governance price.
func (e *Engine) DollarInGovernance(dollarAmount *big.Int) (*big.Int, error) {
	if dollarAmount == nil || dollarAmount.Sign() < 0 {
		return nil, errInvalidAmount
	}
	govPrice, err := e.GovernancePriceUsd()
	if err != nil {
		return nil, err
	}
	return dollarInGovernance(dollarAmount, govPrice), nil
}

func dollarInCollateral(asset *CollateralAsset, dollarAmount *big.Int) *big.Int {
	out := new(big.Int).Mul(dollarAmount, pricePrecision)
	offset := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(asset.MissingDecimals)), nil)
	out.Quo(out, offset)
	return out.Quo(out, asset.Price)
}

func dollarInGovernance(dollarAmount, governancePrice *big.Int) *big.Int {
	out := new(big.Int).Mul(dollarAmount, pricePrecision)
	return out.Quo(out, governancePrice)
}
