package db

//go:generate mockery --name=DbInterface --output=../../tests/mocks --outpkg=mocks --filename=DbInterface.go

import (
	"context"

	"github.com/babylonlabs-io/staking-ledger/internal/db/model"
	"github.com/ethereum/go-ethereum/common"
)

type DbInterface interface {
	Ping(ctx context.Context) error
	// SaveStakingEvent returns DuplicateKeyError if the event was already saved.
	SaveStakingEvent(ctx context.Context, eventDoc *model.StakingEventDocument) error
	// GetStakingEventsByAccount returns the newest events first. A limit outside
	// (0, max-pagination-limit] is replaced by the configured maximum.
	GetStakingEventsByAccount(ctx context.Context, account common.Address, limit int64) ([]model.StakingEventDocument, error)
	UpsertStakingAccount(ctx context.Context, accountDoc *model.StakingAccountDocument) error
	GetStakingAccount(ctx context.Context, account common.Address) (*model.StakingAccountDocument, error)
	UpsertPoolStats(ctx context.Context, statsDoc *model.PoolStatsDocument) error
	GetPoolStats(ctx context.Context, pool common.Address) (*model.PoolStatsDocument, error)
}
