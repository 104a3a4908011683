package config

import (
	"fmt"

	sdkmath "cosmossdk.io/math"
	"github.com/babylonlabs-io/staking-ledger/pkg"
	"github.com/ethereum/go-ethereum/common"
)

// AssetConfig seeds the in-process asset ledger.
type AssetConfig struct {
	// Genesis maps account addresses to their initial balance.
	Genesis map[string]string `mapstructure:"genesis"`
}

func (cfg *AssetConfig) Validate() error {
	_, err := cfg.GenesisBalances()
	return err
}

func (cfg *AssetConfig) GenesisBalances() (map[common.Address]sdkmath.Int, error) {
	balances := make(map[common.Address]sdkmath.Int, len(cfg.Genesis))
	for address, amount := range cfg.Genesis {
		addr, err := pkg.ParseAddress(address)
		if err != nil {
			return nil, fmt.Errorf("invalid genesis account: %w", err)
		}

		v, err := pkg.ParseAmount(amount)
		if err != nil {
			return nil, fmt.Errorf("invalid genesis balance for %s: %w", address, err)
		}
		if v.IsNegative() {
			return nil, fmt.Errorf("genesis balance for %s must not be negative", address)
		}

		balances[addr] = v
	}

	return balances, nil
}
