package services

import (
	"context"
	"fmt"

	"github.com/babylonlabs-io/staking-ledger/internal/db/model"
	"github.com/babylonlabs-io/staking-ledger/internal/observability/metrics"
	"github.com/babylonlabs-io/staking-ledger/internal/utils/poller"
	"github.com/babylonlabs-io/staking-ledger/pkg"
	"github.com/rs/zerolog/log"
)

// StartStatsPoller starts the stats polling service
func (s *Service) StartStatsPoller(ctx context.Context) {
	var opts []poller.Option
	if s.cfg.Poller.SnapshotOnStart {
		opts = append(opts, poller.WithRunOnStart())
	}

	statsPoller := poller.NewPoller(
		s.cfg.Poller.StatsPollingInterval,
		metrics.RecordPollerDuration("stats", s.calculateAndUpdateStats),
		opts...,
	)
	go statsPoller.Start(ctx)
}

// calculateAndUpdateStats snapshots the pool books against its custody balance
func (s *Service) calculateAndUpdateStats(ctx context.Context) error {
	log := log.Ctx(ctx)

	stats, err := s.pool.Stats(ctx)
	if err != nil {
		return fmt.Errorf("failed to calculate pool stats: %w", err)
	}

	poolAddress := s.pool.Address().Hex()
	if err := s.db.UpsertPoolStats(ctx, model.FromPoolStats(poolAddress, stats)); err != nil {
		return fmt.Errorf("failed to upsert pool stats: %w", err)
	}

	metrics.RecordPoolStats(
		pkg.AmountToFloat64(stats.TotalStaked),
		pkg.AmountToFloat64(stats.AssetBalance),
		pkg.AmountToFloat64(stats.SolvencyGap),
		stats.StakerCount,
	)

	event := log.Info()
	if stats.SolvencyGap.IsPositive() {
		event = log.Warn()
	}
	event.
		Str("pool", poolAddress).
		Stringer("total_staked", stats.TotalStaked).
		Stringer("principal", stats.Principal).
		Stringer("asset_balance", stats.AssetBalance).
		Stringer("solvency_gap", stats.SolvencyGap).
		Int("staker_count", stats.StakerCount).
		Msg("Updated pool stats")

	return nil
}
