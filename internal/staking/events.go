package staking

import (
	"context"

	sdkmath "cosmossdk.io/math"
	"github.com/babylonlabs-io/staking-ledger/internal/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Event describes a committed pool operation. Amount is the value the event is
// named after; Reward and Principal break down what an account received.
type Event struct {
	ID        string          `json:"id"`
	Type      types.EventType `json:"type"`
	Account   common.Address  `json:"account"`
	Amount    sdkmath.Int     `json:"amount"`
	Reward    sdkmath.Int     `json:"reward"`
	Principal sdkmath.Int     `json:"principal"`
	// StakedBalance and LastCheckpoint are the account record after the operation.
	StakedBalance  sdkmath.Int `json:"staked_balance"`
	LastCheckpoint int64       `json:"last_checkpoint"`
	TotalStaked    sdkmath.Int `json:"total_staked"`
	Timestamp      int64       `json:"timestamp"`
}

// EventSink receives events after the operation that produced them committed.
// A sink error is logged, it never undoes the operation.
type EventSink interface {
	Publish(ctx context.Context, ev Event) error
}

func newEvent(typ types.EventType, acc Account, totalStaked sdkmath.Int, now int64) Event {
	return Event{
		ID:             uuid.NewString(),
		Type:           typ,
		Account:        acc.Address,
		Amount:         sdkmath.ZeroInt(),
		Reward:         sdkmath.ZeroInt(),
		Principal:      sdkmath.ZeroInt(),
		StakedBalance:  acc.StakedBalance,
		LastCheckpoint: acc.LastCheckpoint,
		TotalStaked:    totalStaked,
		Timestamp:      now,
	}
}

func newStakedEvent(acc Account, totalStaked, amount, reward sdkmath.Int, now int64) Event {
	ev := newEvent(types.EventStaked, acc, totalStaked, now)
	ev.Amount = amount
	ev.Principal = amount
	ev.Reward = reward
	return ev
}

func newWithdrawEvent(acc Account, totalStaked, amount sdkmath.Int, now int64) Event {
	ev := newEvent(types.EventWithdraw, acc, totalStaked, now)
	ev.Amount = amount
	ev.Principal = amount
	return ev
}

func newRewardPaidEvent(acc Account, totalStaked, reward sdkmath.Int, now int64) Event {
	ev := newEvent(types.EventRewardPaid, acc, totalStaked, now)
	ev.Amount = reward
	ev.Reward = reward
	return ev
}

func newUnStakedEvent(acc Account, totalStaked, reward, principal sdkmath.Int, now int64) Event {
	ev := newEvent(types.EventUnStaked, acc, totalStaked, now)
	ev.Amount = reward.Add(principal)
	ev.Reward = reward
	ev.Principal = principal
	return ev
}

// emit expects the pool lock to be held so events leave in commit order.
func (p *Pool) emit(ctx context.Context, events ...Event) {
	if p.sink == nil {
		return
	}

	for _, ev := range events {
		if err := p.sink.Publish(ctx, ev); err != nil {
			log.Ctx(ctx).Error().
				Err(err).
				Str("event_id", ev.ID).
				Stringer("event_type", ev.Type).
				Str("account", ev.Account.Hex()).
				Msg("failed to publish staking event")
		}
	}
}
