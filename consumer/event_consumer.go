package consumer

//go:generate mockery --name=EventConsumer --output=../tests/mocks --outpkg=mocks --filename=EventConsumer.go

import (
	"context"

	"github.com/babylonlabs-io/staking-ledger/internal/staking"
)

// EventConsumer receives committed staking events for downstream services.
type EventConsumer interface {
	Start() error
	PushStakingEvent(ctx context.Context, ev *staking.Event) error
	Stop() error
}
