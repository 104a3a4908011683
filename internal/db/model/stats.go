package model

import (
	"github.com/babylonlabs-io/staking-ledger/internal/staking"
)

// PoolStatsDocument is the latest snapshot of a pool's books against its custody.
type PoolStatsDocument struct {
	ID           string `bson:"_id"` // pool address
	TotalStaked  string `bson:"total_staked"`
	Principal    string `bson:"principal"`
	AssetBalance string `bson:"asset_balance"`
	SolvencyGap  string `bson:"solvency_gap"`
	StakerCount  int    `bson:"staker_count"`
	LastUpdated  int64  `bson:"last_updated"` // Unix timestamp of last update
}

func FromPoolStats(poolAddress string, stats *staking.Stats) *PoolStatsDocument {
	return &PoolStatsDocument{
		ID:           poolAddress,
		TotalStaked:  stats.TotalStaked.String(),
		Principal:    stats.Principal.String(),
		AssetBalance: stats.AssetBalance.String(),
		SolvencyGap:  stats.SolvencyGap.String(),
		StakerCount:  stats.StakerCount,
		LastUpdated:  stats.Timestamp,
	}
}
