package services

import (
	"context"

	"github.com/babylonlabs-io/staking-ledger/consumer"
	"github.com/babylonlabs-io/staking-ledger/internal/config"
	"github.com/babylonlabs-io/staking-ledger/internal/db"
	"github.com/babylonlabs-io/staking-ledger/internal/staking"
)

type Service struct {
	cfg      *config.Config
	db       db.DbInterface
	pool     staking.PoolInterface
	consumer consumer.EventConsumer
	events   *EventQueue
}

// NewService wires the pool to its history store and publisher. events must be
// the sink the pool was created with.
func NewService(
	cfg *config.Config,
	db db.DbInterface,
	pool staking.PoolInterface,
	consumer consumer.EventConsumer,
	events *EventQueue,
) *Service {
	return &Service{
		cfg:      cfg,
		db:       db,
		pool:     pool,
		consumer: consumer,
		events:   events,
	}
}

func (s *Service) StartLedgerSync(ctx context.Context) {
	s.StartStatsPoller(ctx)
	// Keep processing events in the main thread
	s.StartEventProcessor(ctx)
}
