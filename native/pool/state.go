package pool

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// State is the process-wide mutable container for the pool: the collateral
// registry, the protocol parameters, the redemption-claim ledger, and the AMO
// minter registry. It is owned by exactly one Engine and mutated only through
// engine operations; registry entries are never deleted, only disabled.
type State struct {
	Params      Params
	Collaterals []*CollateralAsset

	byAddress map[common.Address]int

	// Redemption claims: per-(account, collateral) pending collateral and
	// per-account pending governance, plus the block of the account's
	// latest request. The per-asset Unclaimed aggregate lives on the
	// CollateralAsset record; UnclaimedGovernance is the pool-wide total.
	redeemCollateral    map[common.Address]map[int]*big.Int
	redeemGovernance    map[common.Address]*big.Int
	lastRedeemedBlock   map[common.Address]uint64
	UnclaimedGovernance *big.Int

	amoMinters map[common.Address]AmoMinter
}

// NewState constructs an empty pool state with a fully-collateralised ratio
// and a neutral $1.00 price band. Governance adjusts all of these before the
// pool goes live.
func NewState() *State {
	return &State{
		Params: Params{
			CollateralRatio:      big.NewInt(1_000_000),
			MintPriceThreshold:   big.NewInt(1_000_000),
			RedeemPriceThreshold: big.NewInt(1_000_000),
		},
		byAddress:           make(map[common.Address]int),
		redeemCollateral:    make(map[common.Address]map[int]*big.Int),
		redeemGovernance:    make(map[common.Address]*big.Int),
		lastRedeemedBlock:   make(map[common.Address]uint64),
		UnclaimedGovernance: big.NewInt(0),
		amoMinters:          make(map[common.Address]AmoMinter),
	}
}

func (s *State) pendingCollateral(account common.Address, index int) *big.Int {
	claims := s.redeemCollateral[account]
	if claims == nil {
		return big.NewInt(0)
	}
	amount := claims[index]
	if amount == nil {
		return big.NewInt(0)
	}
	return new(big.Int).Set(amount)
}

func (s *State) addPendingCollateral(account common.Address, index int, amount *big.Int) {
	claims := s.redeemCollateral[account]
	if claims == nil {
		claims = make(map[int]*big.Int)
		s.redeemCollateral[account] = claims
	}
	current := claims[index]
	if current == nil {
		current = big.NewInt(0)
	}
	claims[index] = new(big.Int).Add(current, amount)
}

func (s *State) takePendingCollateral(account common.Address, index int) *big.Int {
	claims := s.redeemCollateral[account]
	if claims == nil {
		return big.NewInt(0)
	}
	amount := claims[index]
	if amount == nil {
		return big.NewInt(0)
	}
	claims[index] = big.NewInt(0)
	return amount
}

func (s *State) pendingGovernance(account common.Address) *big.Int {
	amount := s.redeemGovernance[account]
	if amount == nil {
		return big.NewInt(0)
	}
	return new(big.Int).Set(amount)
}

func (s *State) addPendingGovernance(account common.Address, amount *big.Int) {
	current := s.redeemGovernance[account]
	if current == nil {
		current = big.NewInt(0)
	}
	s.redeemGovernance[account] = new(big.Int).Add(current, amount)
}

func (s *State) takePendingGovernance(account common.Address) *big.Int {
	amount := s.redeemGovernance[account]
	if amount == nil {
		return big.NewInt(0)
	}
	s.redeemGovernance[account] = big.NewInt(0)
	return amount
}
