package handlers

import (
	"net/http"

	sdkmath "cosmossdk.io/math"
	"github.com/babylonlabs-io/staking-ledger/internal/types"
)

type TierPublic struct {
	ThresholdSeconds int64  `json:"threshold_seconds"`
	Rate             uint64 `json:"rate"`
}

type PoolPublic struct {
	Address      string       `json:"address"`
	AssetAddress string       `json:"asset_address"`
	TotalStaked  sdkmath.Int  `json:"total_staked"`
	Principal    sdkmath.Int  `json:"principal"`
	AssetBalance sdkmath.Int  `json:"asset_balance"`
	SolvencyGap  sdkmath.Int  `json:"solvency_gap"`
	StakerCount  int          `json:"staker_count"`
	BasisPoints  uint64       `json:"basis_points"`
	Tiers        []TierPublic `json:"tiers"`
}

func (h *Handler) GetPool(r *http.Request) (*Result, *types.Error) {
	stats, err := h.pool.Stats(r.Context())
	if err != nil {
		return nil, MapError(err)
	}

	schedule := h.pool.Schedule()
	tiers := make([]TierPublic, 0, len(schedule.Tiers()))
	for _, tier := range schedule.Tiers() {
		tiers = append(tiers, TierPublic{
			ThresholdSeconds: int64(tier.Threshold.Seconds()),
			Rate:             tier.Rate,
		})
	}

	return NewResult(PoolPublic{
		Address:      h.pool.Address().Hex(),
		AssetAddress: h.pool.AssetAddress().Hex(),
		TotalStaked:  stats.TotalStaked,
		Principal:    stats.Principal,
		AssetBalance: stats.AssetBalance,
		SolvencyGap:  stats.SolvencyGap,
		StakerCount:  stats.StakerCount,
		BasisPoints:  schedule.BasisPoints(),
		Tiers:        tiers,
	}), nil
}
