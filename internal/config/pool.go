package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/babylonlabs-io/staking-ledger/internal/staking"
	"github.com/babylonlabs-io/staking-ledger/pkg"
	"github.com/ethereum/go-ethereum/common"
)

type TierConfig struct {
	Threshold time.Duration `mapstructure:"threshold"`
	Rate      uint64        `mapstructure:"rate"`
}

type PoolConfig struct {
	// Address is the account the pool custodies the asset under.
	Address      string       `mapstructure:"address"`
	AssetAddress string       `mapstructure:"asset-address"`
	BasisPoints  uint64       `mapstructure:"basis-points"`
	Tiers        []TierConfig `mapstructure:"tiers"`
}

func (cfg *PoolConfig) Validate() error {
	if cfg.Address == "" {
		return errors.New("pool address is required")
	}
	if _, err := pkg.ParseAddress(cfg.Address); err != nil {
		return fmt.Errorf("invalid pool address: %w", err)
	}

	if cfg.AssetAddress == "" {
		return errors.New("asset address is required")
	}
	if _, err := pkg.ParseAddress(cfg.AssetAddress); err != nil {
		return fmt.Errorf("invalid asset address: %w", err)
	}

	if cfg.BasisPoints == 0 {
		cfg.BasisPoints = staking.DefaultBasisPoints
	}
	// the reference schedule only has its first tier confirmed, so tiers must be explicit
	if len(cfg.Tiers) == 0 {
		return errors.New("reward tiers are required")
	}

	_, err := cfg.Schedule()
	return err
}

func (cfg *PoolConfig) Schedule() (*staking.Schedule, error) {
	tiers := make([]staking.Tier, 0, len(cfg.Tiers))
	for _, tier := range cfg.Tiers {
		tiers = append(tiers, staking.Tier{
			Threshold: tier.Threshold,
			Rate:      tier.Rate,
		})
	}

	return staking.NewSchedule(tiers, cfg.BasisPoints)
}

func (cfg *PoolConfig) GetAddress() common.Address {
	return common.HexToAddress(cfg.Address)
}

func (cfg *PoolConfig) GetAssetAddress() common.Address {
	return common.HexToAddress(cfg.AssetAddress)
}
