package db

import (
	"context"
	"time"

	"github.com/babylonlabs-io/staking-ledger/internal/db/model"
	"github.com/babylonlabs-io/staking-ledger/internal/observability/metrics"
	"github.com/ethereum/go-ethereum/common"
)

type DbWithMetrics struct {
	db DbInterface
}

func NewDbWithMetrics(db DbInterface) *DbWithMetrics {
	return &DbWithMetrics{db: db}
}

func (d *DbWithMetrics) Ping(ctx context.Context) error {
	return d.db.Ping(ctx)
}

func (d *DbWithMetrics) SaveStakingEvent(ctx context.Context, eventDoc *model.StakingEventDocument) error {
	return d.run("SaveStakingEvent", func() error {
		return d.db.SaveStakingEvent(ctx, eventDoc)
	})
}

func (d *DbWithMetrics) GetStakingEventsByAccount(ctx context.Context, account common.Address, limit int64) (result []model.StakingEventDocument, err error) {
	//nolint:errcheck
	d.run("GetStakingEventsByAccount", func() error {
		result, err = d.db.GetStakingEventsByAccount(ctx, account, limit)
		return err
	})

	return
}

func (d *DbWithMetrics) UpsertStakingAccount(ctx context.Context, accountDoc *model.StakingAccountDocument) error {
	return d.run("UpsertStakingAccount", func() error {
		return d.db.UpsertStakingAccount(ctx, accountDoc)
	})
}

func (d *DbWithMetrics) GetStakingAccount(ctx context.Context, account common.Address) (result *model.StakingAccountDocument, err error) {
	//nolint:errcheck
	d.run("GetStakingAccount", func() error {
		result, err = d.db.GetStakingAccount(ctx, account)
		return err
	})

	return
}

func (d *DbWithMetrics) UpsertPoolStats(ctx context.Context, statsDoc *model.PoolStatsDocument) error {
	return d.run("UpsertPoolStats", func() error {
		return d.db.UpsertPoolStats(ctx, statsDoc)
	})
}

func (d *DbWithMetrics) GetPoolStats(ctx context.Context, pool common.Address) (result *model.PoolStatsDocument, err error) {
	//nolint:errcheck
	d.run("GetPoolStats", func() error {
		result, err = d.db.GetPoolStats(ctx, pool)
		return err
	})

	return
}

// run is private method that executes passed lambda function and send metrics data with spent time, method name
// and an error if any. It returns the error from the lambda function for convenience
func (d *DbWithMetrics) run(method string, f func() error) error {
	startTime := time.Now()
	err := f()
	duration := time.Since(startTime)

	metrics.RecordDbLatency(duration, method, err != nil)
	return err
}
