package config

import (
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pool.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	body := `CollateralRatioPpm = 850000

[[collateral]]
Address = "0x00000000000000000000000000000000000000DA"
Ceiling = "1000"
`
	cfg, err := Load(writeConfig(t, body))
	require.NoError(t, err)

	require.Equal(t, uint64(850_000), cfg.CollateralRatioPpm)
	require.Equal(t, uint64(1_000_000), cfg.MintPriceThresholdPpm)
	require.Equal(t, uint64(1_000_000), cfg.RedeemPriceThresholdPpm)
	require.Len(t, cfg.Collateral, 1)
	require.Equal(t, int64(86_400), cfg.Collateral[0].StalenessSeconds)

	ceiling, err := cfg.Collateral[0].CeilingAmount()
	require.NoError(t, err)
	require.Equal(t, big.NewInt(1000), ceiling)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.Error(t, err)
}

func TestValidateRejectsRatioAboveScale(t *testing.T) {
	cfg := &Pool{CollateralRatioPpm: 1_000_001}
	require.Error(t, cfg.Validate())
}

func TestValidateRejectsDuplicateAddresses(t *testing.T) {
	cfg := &Pool{Collateral: []Collateral{
		{Address: "0xDA"},
		{Address: "0xDA"},
	}}
	require.Error(t, cfg.Validate())
}

func TestValidateRejectsMissingAddress(t *testing.T) {
	cfg := &Pool{Collateral: []Collateral{{}}}
	require.Error(t, cfg.Validate())
}

func TestValidateRejectsFeeAboveScale(t *testing.T) {
	cfg := &Pool{Collateral: []Collateral{{Address: "0xDA", MintingFeePpm: 1_000_001}}}
	require.Error(t, cfg.Validate())
}

func TestCeilingAmount(t *testing.T) {
	ceiling, err := Collateral{Ceiling: ""}.CeilingAmount()
	require.NoError(t, err)
	require.Equal(t, big.NewInt(0), ceiling)

	_, err = Collateral{Address: "0xDA", Ceiling: "12e9"}.CeilingAmount()
	require.Error(t, err)

	_, err = Collateral{Address: "0xDA", Ceiling: "-5"}.CeilingAmount()
	require.Error(t, err)
}
