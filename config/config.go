package config

import (
	"fmt"
	"math/big"
	"os"

	"github.com/BurntSushi/toml"
)

// Pool captures the governance-managed pool parameters loaded from TOML.
// Fixed-point values use parts-per-million: 1_000_000 is 100% (or $1.00).
type Pool struct {
	CollateralRatioPpm      uint64       `toml:"CollateralRatioPpm"`
	MintPriceThresholdPpm   uint64       `toml:"MintPriceThresholdPpm"`
	RedeemPriceThresholdPpm uint64       `toml:"RedeemPriceThresholdPpm"`
	RedemptionDelayBlocks   uint64       `toml:"RedemptionDelayBlocks"`
	Collateral              []Collateral `toml:"collateral"`
}

// Collateral configures one registered collateral asset, matched to the
// registry by token address.
type Collateral struct {
	Address          string `toml:"Address"`
	Ceiling          string `toml:"Ceiling"`
	MintingFeePpm    uint64 `toml:"MintingFeePpm"`
	RedemptionFeePpm uint64 `toml:"RedemptionFeePpm"`
	StalenessSeconds int64  `toml:"StalenessSeconds"`
}

const (
	ppmScale                = 1_000_000
	defaultStalenessSeconds = 86_400
)

// Load reads and validates a pool configuration file.
func Load(path string) (*Pool, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	cfg := &Pool{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (p *Pool) applyDefaults() {
	if p.MintPriceThresholdPpm == 0 {
		p.MintPriceThresholdPpm = ppmScale
	}
	if p.RedeemPriceThresholdPpm == 0 {
		p.RedeemPriceThresholdPpm = ppmScale
	}
	for i := range p.Collateral {
		if p.Collateral[i].StalenessSeconds <= 0 {
			p.Collateral[i].StalenessSeconds = defaultStalenessSeconds
		}
	}
}

// Validate checks the invariants the pool engine relies on.
func (p *Pool) Validate() error {
	if p.CollateralRatioPpm > ppmScale {
		return fmt.Errorf("pool config: CollateralRatioPpm %d exceeds %d", p.CollateralRatioPpm, ppmScale)
	}
	seen := make(map[string]struct{}, len(p.Collateral))
	for i, entry := range p.Collateral {
		if entry.Address == "" {
			return fmt.Errorf("pool config: collateral %d missing address", i)
		}
		if _, dup := seen[entry.Address]; dup {
			return fmt.Errorf("pool config: duplicate collateral address %s", entry.Address)
		}
		seen[entry.Address] = struct{}{}
		if entry.MintingFeePpm > ppmScale || entry.RedemptionFeePpm > ppmScale {
			return fmt.Errorf("pool config: collateral %s fee exceeds %d", entry.Address, ppmScale)
		}
		if _, err := entry.CeilingAmount(); err != nil {
			return err
		}
	}
	return nil
}

// CeilingAmount parses the decimal ceiling string into a non-negative big
// integer. An empty string means zero capacity.
func (c Collateral) CeilingAmount() (*big.Int, error) {
	if c.Ceiling == "" {
		return big.NewInt(0), nil
	}
	amount, ok := new(big.Int).SetString(c.Ceiling, 10)
	if !ok || amount.Sign() < 0 {
		return nil, fmt.Errorf("pool config: invalid ceiling %q for %s", c.Ceiling, c.Address)
	}
	return amount, nil
}
